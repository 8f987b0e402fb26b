// Package gram scores strings by the overlap of their n-gram (shingle) sets.
package gram

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrInvalidN is returned when the shingle length is less than 1.
var ErrInvalidN = errors.New("shingle length must be at least 1")

// Measure selects the overlap coefficient.
type Measure int

const (
	// Dice is 2|A∩B| / (|A|+|B|).
	Dice Measure = iota
	// Jaccard is |A∩B| / |A∪B|.
	Jaccard
	// Cosine is A·B / (|A||B|) over the indicator (or count) vectors.
	Cosine
)

var measureNames = map[Measure]string{
	Dice:    "dice",
	Jaccard: "jaccard",
	Cosine:  "cosine",
}

func (m Measure) String() string {
	if s, ok := measureNames[m]; ok {
		return s
	}
	return "unknown"
}

// ParseMeasure parses a measure name. The empty string maps to Dice.
func ParseMeasure(s string) (Measure, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return Dice, nil
	}
	for m, n := range measureNames {
		if n == name {
			return m, nil
		}
	}
	return Dice, fmt.Errorf("unknown gram measure %q", s)
}

// PadRune surrounds padded strings.
const PadRune = ' '

// Options configures shingling and scoring.
type Options struct {
	// N is the shingle length in code points.
	N int
	// Measure is the overlap coefficient.
	Measure Measure
	// Multiset counts repeated shingles instead of treating them once.
	Multiset bool
	// Pad surrounds non-empty strings with N-1 PadRune on both sides so
	// leading and trailing characters form their own shingles.
	Pad bool
}

// DefaultOptions are distinct bigrams scored with Dice.
var DefaultOptions = Options{
	N:       2,
	Measure: Dice,
}

// Validate checks the options.
func (o Options) Validate() error {
	if o.N < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidN, o.N)
	}
	if _, ok := measureNames[o.Measure]; !ok {
		return fmt.Errorf("unknown gram measure %d", int(o.Measure))
	}
	return nil
}

// Set maps each shingle to its number of occurrences.
type Set map[string]int

// Build returns the shingle set of s.
//
// An empty string has an empty set; a string shorter than n code points
// (after padding) is a single shingle.
func Build(s []rune, opts Options) Set {
	set := make(Set)
	fill(set, s, opts, nil)
	return set
}

func fill(set Set, s []rune, opts Options, buf []rune) []rune {
	clear(set)
	if len(s) == 0 {
		return buf
	}

	if opts.Pad && opts.N > 1 {
		buf = buf[:0]
		for range opts.N - 1 {
			buf = append(buf, PadRune)
		}
		buf = append(buf, s...)
		for range opts.N - 1 {
			buf = append(buf, PadRune)
		}
		s = buf
	}

	if len(s) < opts.N {
		set[string(s)] = 1
		return buf
	}
	for i := 0; i+opts.N <= len(s); i++ {
		set[string(s[i:i+opts.N])]++
	}
	return buf
}

// Scorer computes gram similarity with reusable sets.
//
// A Scorer is not safe for concurrent use.
type Scorer struct {
	opts        Options
	left, right Set
	buf         []rune
}

// NewScorer creates a Scorer.
func NewScorer(opts Options) (*Scorer, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Scorer{
		opts:  opts,
		left:  make(Set),
		right: make(Set),
	}, nil
}

// Options returns the configured options.
func (s *Scorer) Options() Options {
	return s.opts
}

// Score returns the similarity of a and b in [0, 1].
func (s *Scorer) Score(a, b []rune) float64 {
	s.buf = fill(s.left, a, s.opts, s.buf)
	s.buf = fill(s.right, b, s.opts, s.buf)
	return Compare(s.left, s.right, s.opts.Measure, s.opts.Multiset)
}

// Compare scores two shingle sets. Two empty sets are identical (1);
// exactly one empty set scores 0.
func Compare(a, b Set, m Measure, multiset bool) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1
	}
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	weight := func(c int) int {
		if multiset {
			return c
		}
		return 1
	}

	var inter, dot, sizeA, sizeB, sqA, sqB int
	for k, c := range a {
		ca := weight(c)
		sizeA += ca
		sqA += ca * ca
		if other, ok := b[k]; ok {
			cb := weight(other)
			inter += min(ca, cb)
			dot += ca * cb
		}
	}
	for _, c := range b {
		cb := weight(c)
		sizeB += cb
		sqB += cb * cb
	}

	var score float64
	switch m {
	case Jaccard:
		score = float64(inter) / float64(sizeA+sizeB-inter)
	case Cosine:
		// sqrt of the product keeps identical inputs at exactly 1.
		score = float64(dot) / math.Sqrt(float64(sqA)*float64(sqB))
	default:
		score = 2 * float64(inter) / float64(sizeA+sizeB)
	}

	return max(0, min(1, score))
}

// Score returns the similarity of a and b under opts.
func Score(a, b []rune, opts Options) (float64, error) {
	s, err := NewScorer(opts)
	if err != nil {
		return 0, err
	}
	return s.Score(a, b), nil
}
