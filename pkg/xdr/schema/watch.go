package schema

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/marmos91/xdrkit/internal/logger"
)

// Watcher reloads a schema document whenever its file changes.
//
// The parent directory is watched rather than the file itself, so editors
// that save by writing a temporary file and renaming it over the original
// are still seen.
type Watcher struct {
	path string
	fs   *fsnotify.Watcher
}

// NewWatcher starts watching path. Changes made after NewWatcher returns are
// delivered by Run.
func NewWatcher(path string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(path)); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("failed to watch schema: %w", err)
	}
	return &Watcher{path: filepath.Clean(path), fs: fw}, nil
}

// Run calls fn with the reloaded document after every write to the file, or
// with the load error when the new contents do not parse or validate. It
// returns when ctx is done and closes the watcher.
func (w *Watcher) Run(ctx context.Context, fn func(*Document, error)) error {
	defer func() { _ = w.fs.Close() }()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			logger.Debug("schema changed", logger.SchemaPath(w.path), "op", event.Op.String())
			fn(Load(w.path))

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watcher error: %w", err)
		}
	}
}

// Close stops watching without running.
func (w *Watcher) Close() error {
	return w.fs.Close()
}
