// Package bufpool provides a tiered byte-slice pool for encode buffers.
//
// An XDR writer measures its output before materializing it, so it always
// asks for a buffer of an exact, known size. The pool rounds that request
// up to the smallest size class that fits, hands back a slice of exactly
// the requested length, and keeps the backing array for the next session.
//
// Size classes default to 256 B (single records), 8 KiB (small batches)
// and 256 KiB (bulk payloads). Requests beyond the largest class are
// allocated directly and never pooled, so one huge message does not pin
// memory for the life of the process.
//
// Buffers come back with stale contents. Callers must overwrite every
// byte they use; the xdr Writer does.
//
// All operations are safe for concurrent use.
//
// # Usage
//
//	buf := bufpool.Get(size)
//	defer bufpool.Put(buf)
package bufpool

import (
	"slices"
	"sync"
)

// Default size classes.
const (
	DefaultSmallSize  = 256
	DefaultMediumSize = 8 << 10
	DefaultLargeSize  = 256 << 10
)

// Config lists the size classes of a pool. Zero or negative sizes are
// dropped; an empty list selects the defaults.
type Config struct {
	Sizes []int
}

// DefaultConfig returns the default size classes.
func DefaultConfig() Config {
	return Config{Sizes: []int{DefaultSmallSize, DefaultMediumSize, DefaultLargeSize}}
}

type class struct {
	size int
	pool sync.Pool
}

// Pool hands out byte slices from a fixed set of size classes.
type Pool struct {
	classes []*class
}

// NewPool creates a pool. A nil config uses DefaultConfig.
func NewPool(cfg *Config) *Pool {
	var sizes []int
	if cfg != nil {
		for _, s := range cfg.Sizes {
			if s > 0 {
				sizes = append(sizes, s)
			}
		}
	}
	if len(sizes) == 0 {
		sizes = DefaultConfig().Sizes
	}
	slices.Sort(sizes)
	sizes = slices.Compact(sizes)

	p := &Pool{classes: make([]*class, len(sizes))}
	for i, size := range sizes {
		c := &class{size: size}
		c.pool.New = func() any {
			buf := make([]byte, c.size)
			return &buf
		}
		p.classes[i] = c
	}
	return p
}

// Get returns a slice of length size. Its capacity is the size class that
// served it, or exactly size when no class is large enough.
func (p *Pool) Get(size int) []byte {
	if size < 0 {
		size = 0
	}
	for _, c := range p.classes {
		if size <= c.size {
			buf := *(c.pool.Get().(*[]byte))
			return buf[:size]
		}
	}
	return make([]byte, size)
}

// Put returns a slice obtained from Get. Slices whose capacity does not
// match a size class are left to the garbage collector.
func (p *Pool) Put(buf []byte) {
	if buf == nil {
		return
	}
	for _, c := range p.classes {
		if cap(buf) == c.size {
			full := buf[:c.size]
			c.pool.Put(&full)
			return
		}
	}
}

// Sizes returns the pool's size classes in ascending order.
func (p *Pool) Sizes() []int {
	out := make([]int, len(p.classes))
	for i, c := range p.classes {
		out[i] = c.size
	}
	return out
}

// =============================================================================
// Global Pool
// =============================================================================

var globalPool = NewPool(nil)

// Get returns a slice of length size from the global pool.
func Get(size int) []byte {
	return globalPool.Get(size)
}

// Put returns a slice to the global pool.
func Put(buf []byte) {
	globalPool.Put(buf)
}
