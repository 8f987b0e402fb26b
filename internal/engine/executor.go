package engine

import (
	"errors"
	"fmt"

	"github.com/hupe1980/vecfuzz/column"
	"github.com/hupe1980/vecfuzz/internal/gram"
	"github.com/hupe1980/vecfuzz/internal/normalize"
	"github.com/hupe1980/vecfuzz/internal/partial"
	"github.com/hupe1980/vecfuzz/internal/pool"
)

// Kind selects a scorer.
type Kind uint8

const (
	KindRatio Kind = iota
	KindPartialRatio
	KindGram
)

func (k Kind) String() string {
	switch k {
	case KindRatio:
		return "ratio"
	case KindPartialRatio:
		return "partial_ratio"
	case KindGram:
		return "gram"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

func (k Kind) valid() bool {
	return k <= KindGram
}

// Config holds the scorer configuration shared by every row of a batch.
type Config struct {
	Normalize normalize.Options
	Partial   partial.Options
	Gram      gram.Options

	// FailOnDecode makes Run stop at the first undecodable cell.
	// Otherwise such rows become null and are reported in Chunk.Errors.
	FailOnDecode bool
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{Gram: gram.DefaultOptions}
}

// Validate checks the configuration. Gram options are only checked by New
// when KindGram is requested.
func (c Config) Validate() error {
	if err := c.Normalize.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}
	return nil
}

// Chunk describes the rows of a Run that did not produce scores.
type Chunk struct {
	// Nulls holds absolute row indices in ascending order.
	Nulls []uint32
	// Errors holds decode failures in row order. Each row is also in Nulls.
	Errors []*RowError
}

// Executor scores row ranges of two string columns.
type Executor struct {
	cfg   Config
	kinds []Kind

	norm *normalize.Normalizer
	gram *gram.Scorer
}

// New creates an Executor computing kinds, in that order, for every row.
func New(cfg Config, kinds []Kind) (*Executor, error) {
	if len(kinds) == 0 {
		return nil, ErrNoKinds
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := &Executor{
		cfg:   cfg,
		kinds: make([]Kind, len(kinds)),
		norm:  normalize.New(cfg.Normalize),
	}
	copy(e.kinds, kinds)

	for _, k := range kinds {
		if !k.valid() {
			return nil, fmt.Errorf("%w: unknown kind %d", ErrInvalidArgument, uint8(k))
		}
		if k == KindGram && e.gram == nil {
			s, err := gram.NewScorer(cfg.Gram)
			if err != nil {
				return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
			}
			e.gram = s
		}
	}

	return e, nil
}

// Kinds returns the scorers computed per row.
func (e *Executor) Kinds() []Kind {
	return e.kinds
}

// Config returns the executor configuration.
func (e *Executor) Config() Config {
	return e.cfg
}

// Run scores rows [start, end) of left and right into out.
//
// out holds one buffer per kind, indexed by absolute row, each at least end
// long. Null rows are written as 0. Only the [start, end) range of every
// buffer is touched.
func (e *Executor) Run(left, right *column.Strings, start, end int, out [][]float64) (Chunk, error) {
	var chunk Chunk

	if left == nil || right == nil {
		return chunk, fmt.Errorf("%w: nil column", ErrInvalidArgument)
	}
	if left.Len() != right.Len() {
		return chunk, fmt.Errorf("%w: column lengths %d and %d differ", ErrInvalidArgument, left.Len(), right.Len())
	}
	if start < 0 || start > end || end > left.Len() {
		return chunk, fmt.Errorf("%w: range [%d, %d) outside [0, %d)", ErrInvalidArgument, start, end, left.Len())
	}
	if len(out) != len(e.kinds) {
		return chunk, fmt.Errorf("%w: %d output buffers for %d kinds", ErrInvalidArgument, len(out), len(e.kinds))
	}
	for k := range out {
		if len(out[k]) < end {
			return chunk, fmt.Errorf("%w: output buffer %d has length %d, need %d", ErrInvalidArgument, k, len(out[k]), end)
		}
	}

	s := pool.Get(e.cfg.Partial)
	defer pool.Put(s)

	for i := start; i < end; i++ {
		if left.IsNull(i) || right.IsNull(i) {
			e.writeNull(out, i)
			chunk.Nulls = append(chunk.Nulls, uint32(i))
			continue
		}

		if rerr := e.decode(s, i, left.Value(i), right.Value(i)); rerr != nil {
			e.writeNull(out, i)
			if e.cfg.FailOnDecode {
				return chunk, rerr
			}
			chunk.Nulls = append(chunk.Nulls, uint32(i))
			chunk.Errors = append(chunk.Errors, rerr)
			continue
		}

		for k, kind := range e.kinds {
			out[k][i] = e.score(s, kind)
		}
	}

	return chunk, nil
}

// Pair scores a single pair of cells, appending one score per kind to dst.
// Decode failures are reported as a *RowError for row 0.
func (e *Executor) Pair(a, b string, dst []float64) ([]float64, error) {
	s := pool.Get(e.cfg.Partial)
	defer pool.Put(s)

	if rerr := e.decode(s, 0, a, b); rerr != nil {
		return dst, rerr
	}
	for _, kind := range e.kinds {
		dst = append(dst, e.score(s, kind))
	}
	return dst, nil
}

func (e *Executor) decode(s *pool.Scratch, row int, a, b string) *RowError {
	var err error

	s.Left, err = e.norm.Runes(s.Left, a)
	if err != nil {
		return rowError(row, SideLeft, err)
	}
	s.Right, err = e.norm.Runes(s.Right, b)
	if err != nil {
		return rowError(row, SideRight, err)
	}
	return nil
}

func rowError(row int, side Side, err error) *RowError {
	var de *normalize.DecodeError
	if !errors.As(err, &de) {
		de = &normalize.DecodeError{}
	}
	return &RowError{Row: row, Side: side, Err: de}
}

func (e *Executor) score(s *pool.Scratch, kind Kind) float64 {
	switch kind {
	case KindPartialRatio:
		return s.Partial.Ratio(s.Left, s.Right)
	case KindGram:
		return e.gram.Score(s.Left, s.Right)
	default:
		return s.Lev.Ratio(s.Left, s.Right)
	}
}

func (e *Executor) writeNull(out [][]float64, i int) {
	for k := range out {
		out[k][i] = 0
	}
}
