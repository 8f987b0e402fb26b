// Package pool provides object pools for allocation-free row scoring.
// Uses sync.Pool for automatic memory reuse of per-worker scratch buffers.
package pool

import (
	"sync"

	"github.com/hupe1980/vecfuzz/internal/levenshtein"
	"github.com/hupe1980/vecfuzz/internal/partial"
)

const (
	// DefaultRuneCapacity is the initial capacity of the decode buffers.
	DefaultRuneCapacity = 256

	// MaxRetainedRunes caps the decode buffers kept in the pool so one
	// very long cell does not pin memory for the lifetime of the process.
	MaxRetainedRunes = 1 << 16
)

// Scratch contains reusable buffers for scoring one row at a time.
// Buffers carry capacity between rows, never values.
type Scratch struct {
	Left  []rune
	Right []rune

	Lev     levenshtein.Context
	Partial partial.Matcher
}

var scratchPool = sync.Pool{
	New: func() any {
		return &Scratch{
			Left:  make([]rune, 0, DefaultRuneCapacity),
			Right: make([]rune, 0, DefaultRuneCapacity),
		}
	},
}

// Get retrieves a Scratch from the pool configured with opts.
func Get(opts partial.Options) *Scratch {
	s := scratchPool.Get().(*Scratch)
	s.Reset()
	s.Partial.Options = opts
	return s
}

// Put returns a Scratch to the pool for reuse.
func Put(s *Scratch) {
	if s == nil {
		return
	}
	if cap(s.Left) > MaxRetainedRunes {
		s.Left = make([]rune, 0, DefaultRuneCapacity)
	}
	if cap(s.Right) > MaxRetainedRunes {
		s.Right = make([]rune, 0, DefaultRuneCapacity)
	}
	scratchPool.Put(s)
}

// Reset truncates the decode buffers.
func (s *Scratch) Reset() {
	s.Left = s.Left[:0]
	s.Right = s.Right[:0]
	s.Partial.Options = partial.Options{}
}
