package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// Test Helper Functions
// ============================================================================

// captureOutput redirects logger output to a buffer and restores the
// previous output, level and format on cleanup.
func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	buf := new(bytes.Buffer)

	mu.Lock()
	originalOutput, originalColor := output, useColor
	output, useColor = buf, false
	mu.Unlock()
	originalLevel := GetLevel()
	originalFormat, _ := currentFormat.Load().(string)
	reconfigure()

	t.Cleanup(func() {
		mu.Lock()
		output, useColor = originalOutput, originalColor
		mu.Unlock()
		currentLevel.Store(int32(originalLevel))
		currentFormat.Store(originalFormat)
		reconfigure()
	})
	return buf
}

// ============================================================================
// Level Filtering Tests
// ============================================================================

func TestLevelFiltering(t *testing.T) {
	tests := []struct {
		level   string
		visible []string
		hidden  []string
	}{
		{"DEBUG", []string{"debug message", "info message", "warn message", "error message"}, nil},
		{"INFO", []string{"info message", "warn message", "error message"}, []string{"debug message"}},
		{"WARN", []string{"warn message", "error message"}, []string{"debug message", "info message"}},
		{"ERROR", []string{"error message"}, []string{"debug message", "info message", "warn message"}},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			buf := captureOutput(t)
			SetLevel(tt.level)

			Debug("debug message")
			Info("info message")
			Warn("warn message")
			Error("error message")

			out := buf.String()
			for _, s := range tt.visible {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.hidden {
				assert.NotContains(t, out, s)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]Level{
		"debug": LevelDebug, "INFO": LevelInfo, "Warn": LevelWarn, "warning": LevelWarn, "ERROR": LevelError,
	} {
		got, ok := ParseLevel(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}

	_, ok := ParseLevel("TRACE")
	assert.False(t, ok)
}

func TestSetLevelIgnoresUnknown(t *testing.T) {
	captureOutput(t)
	SetLevel("WARN")
	SetLevel("verbose")
	assert.Equal(t, LevelWarn, GetLevel())
	assert.Equal(t, "WARN", GetLevel().String())
	assert.Equal(t, "UNKNOWN", Level(42).String())
}

// ============================================================================
// Text Handler Tests
// ============================================================================

func TestTextFormat(t *testing.T) {
	t.Run("WritesLevelMessageAndFields", func(t *testing.T) {
		buf := captureOutput(t)
		SetLevel("DEBUG")
		SetFormat("text")

		Debug("decoded value", Type("point"), Offset(12), Width(8))

		out := buf.String()
		assert.Contains(t, out, "[DEBUG] decoded value")
		assert.Contains(t, out, "type=point")
		assert.Contains(t, out, "offset=12")
		assert.Contains(t, out, "width=8")
		assert.True(t, strings.HasSuffix(out, "\n"))
	})

	t.Run("QuotesSpacedValues", func(t *testing.T) {
		buf := captureOutput(t)
		SetFormat("text")

		Info("loaded", "path", "my schema.yaml", "expr", "a=b", "empty", "")

		out := buf.String()
		assert.Contains(t, out, `path="my schema.yaml"`)
		assert.Contains(t, out, `expr="a=b"`)
		assert.Contains(t, out, `empty=""`)
	})

	t.Run("NilErrorIsDropped", func(t *testing.T) {
		buf := captureOutput(t)
		SetFormat("text")

		Info("ok", Err(nil))
		Info("failed", Err(errors.New("boom")))

		out := buf.String()
		assert.Equal(t, 1, strings.Count(out, "error="))
		assert.Contains(t, out, "error=boom")
	})

	t.Run("GroupsBecomeKeyPrefixes", func(t *testing.T) {
		buf := new(bytes.Buffer)
		h := NewColorTextHandler(buf, nil, false)
		l := slog.New(h).With("session", "w1").WithGroup("codec").With("type", "int")

		l.Info("encoded", "width", 4, slog.Group("limits", "max", 10))

		out := buf.String()
		assert.Contains(t, out, "session=w1")
		assert.Contains(t, out, "codec.type=int")
		assert.Contains(t, out, "codec.width=4")
		assert.Contains(t, out, "codec.limits.max=10")
	})

	t.Run("ColorWrapsLevelAndKeys", func(t *testing.T) {
		buf := new(bytes.Buffer)
		l := slog.New(NewColorTextHandler(buf, nil, true))

		l.Warn("careful", "type", "uhyper")

		out := buf.String()
		assert.Contains(t, out, colorYellow+"WARN"+colorReset)
		assert.Contains(t, out, colorCyan+"type"+colorReset+"=uhyper")
	})

	t.Run("HandlerRespectsLevel", func(t *testing.T) {
		h := NewColorTextHandler(new(bytes.Buffer), &slog.HandlerOptions{Level: slog.LevelWarn}, false)
		assert.False(t, h.Enabled(t.Context(), slog.LevelInfo))
		assert.True(t, h.Enabled(t.Context(), slog.LevelError))
	})
}

// ============================================================================
// JSON Format Tests
// ============================================================================

func TestJSONFormat(t *testing.T) {
	buf := captureOutput(t)
	SetLevel("INFO")
	SetFormat("json")

	Info("schema applied", SchemaPath("/tmp/s.yaml"), Members(3))

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &entry))
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "schema applied", entry["msg"])
	assert.Equal(t, "/tmp/s.yaml", entry[KeySchemaPath])
	assert.Equal(t, float64(3), entry[KeyMembers])
	assert.Contains(t, entry, "time")
}

func TestFormatSwitching(t *testing.T) {
	buf := captureOutput(t)

	SetFormat("text")
	Info("text message")
	textOut := buf.String()
	buf.Reset()

	SetFormat("xml")
	SetFormat("JSON")
	Info("json message")

	assert.Contains(t, textOut, "[INFO]")
	assert.True(t, json.Valid(bytes.TrimSpace(buf.Bytes())))
}

// ============================================================================
// Concurrency Tests
// ============================================================================

func TestConcurrentLogging(t *testing.T) {
	buf := captureOutput(t)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				Info("concurrent", "goroutine", id, "iteration", j)
			}
		}(i)
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 500)
	for _, line := range lines {
		assert.True(t, strings.HasPrefix(line, "["), "interleaved line: %q", line)
	}
}

// ============================================================================
// Init Tests
// ============================================================================

func TestInit(t *testing.T) {
	t.Run("FileOutput", func(t *testing.T) {
		captureOutput(t)
		path := filepath.Join(t.TempDir(), "xdrkit.log")

		require.NoError(t, Init(Config{Level: "debug", Format: "text", Output: path}))
		Debug("to file", Type("string"))
		require.NoError(t, Init(Config{Output: "stderr"}))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "to file")
		assert.NotContains(t, string(data), "\033[")
	})

	t.Run("RejectsUnknownLevel", func(t *testing.T) {
		captureOutput(t)
		assert.Error(t, Init(Config{Level: "loud"}))
	})

	t.Run("UnwritableFile", func(t *testing.T) {
		captureOutput(t)
		err := Init(Config{Output: filepath.Join(t.TempDir(), "missing", "x.log")})
		assert.Error(t, err)
	})

	t.Run("EmptyConfig", func(t *testing.T) {
		captureOutput(t)
		assert.NoError(t, Init(Config{}))
	})

	t.Run("InitWithWriter", func(t *testing.T) {
		captureOutput(t)
		buf := new(bytes.Buffer)
		InitWithWriter(buf, "DEBUG", "json", false)

		Debug("hello")
		assert.True(t, json.Valid(bytes.TrimSpace(buf.Bytes())))
	})
}

// ============================================================================
// Benchmark Tests
// ============================================================================

func BenchmarkLogDisabled(b *testing.B) {
	InitWithWriter(new(bytes.Buffer), "ERROR", "text", false)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Debug("test message", "key", "value")
	}
}

func BenchmarkLogText(b *testing.B) {
	InitWithWriter(new(bytes.Buffer), "DEBUG", "text", false)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Info("test message", "key", "value", "count", i)
	}
}
