// Package partial scores the best-aligned substring of the longer string
// against the whole shorter string.
//
// Only windows anchored at matching blocks are scored, plus the windows at
// both ends of the longer string, so the number of edit-distance
// evaluations is bounded by the number of blocks + 2 rather than by the
// length of the longer string.
package partial

import (
	"fmt"
	"strings"

	"github.com/hupe1980/vecfuzz/internal/levenshtein"
)

// EmptyNeedle selects the score of an empty shorter string against a
// non-empty longer string.
type EmptyNeedle int

const (
	// EmptyNeedleStrict scores an empty needle 0 unless the haystack is also empty.
	EmptyNeedleStrict EmptyNeedle = iota
	// EmptyNeedleMatch scores an empty needle 100 against any haystack.
	EmptyNeedleMatch
)

// String returns the policy name.
func (p EmptyNeedle) String() string {
	switch p {
	case EmptyNeedleStrict:
		return "strict"
	case EmptyNeedleMatch:
		return "match"
	default:
		return "unknown"
	}
}

// ParseEmptyNeedle parses a policy name. The empty string maps to
// EmptyNeedleStrict.
func ParseEmptyNeedle(s string) (EmptyNeedle, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "strict":
		return EmptyNeedleStrict, nil
	case "match":
		return EmptyNeedleMatch, nil
	default:
		return EmptyNeedleStrict, fmt.Errorf("unknown empty needle policy %q", s)
	}
}

// Options configures a Matcher.
type Options struct {
	EmptyNeedle EmptyNeedle
}

// Window is the candidate substring long[Start:End].
type Window struct {
	Start, End int
}

// CandidateWindows appends to dst the windows of length shortLen over a
// string of length longLen anchored at blocks, where blocks were computed
// with the shorter string as a. The windows starting at 0 and ending at
// longLen are always included. The result is ascending and has no
// duplicates.
func CandidateWindows(dst []Window, blocks []Block, shortLen, longLen int) []Window {
	dst = dst[:0]
	last := longLen - shortLen
	if last < 0 {
		return dst
	}

	add := func(start int) {
		start = max(0, min(start, last))
		w := Window{Start: start, End: start + shortLen}
		// Insertion keeps dst sorted; block anchors are almost sorted already.
		i := len(dst)
		for i > 0 && dst[i-1].Start > start {
			i--
		}
		if i > 0 && dst[i-1].Start == start {
			return
		}
		dst = append(dst, Window{})
		copy(dst[i+1:], dst[i:])
		dst[i] = w
	}

	add(0)
	for _, b := range blocks {
		add(b.B - b.A)
	}
	add(last)

	return dst
}

// Matcher computes partial ratios with reusable buffers.
//
// The zero value uses EmptyNeedleStrict. A Matcher is not safe for
// concurrent use.
type Matcher struct {
	Options Options

	finder  finder
	lev     levenshtein.Context
	windows []Window
}

// NewMatcher creates a Matcher.
func NewMatcher(opts Options) *Matcher {
	return &Matcher{Options: opts}
}

// Ratio returns the partial ratio of s1 and s2 in [0, 100].
//
// The shorter input is the needle; on equal lengths s1 is the needle and
// the only window is the whole of s2, which makes the result the plain
// ratio.
func (m *Matcher) Ratio(s1, s2 []rune) float64 {
	short, long := s1, s2
	if len(s1) > len(s2) {
		short, long = s2, s1
	}

	if len(short) == 0 {
		if len(long) == 0 || m.Options.EmptyNeedle == EmptyNeedleMatch {
			return 100
		}
		return 0
	}
	if len(short) == len(long) {
		return m.lev.Ratio(short, long)
	}

	blocks := m.finder.matchingBlocks(short, long)
	m.windows = CandidateWindows(m.windows, blocks, len(short), len(long))

	best := 0.0
	for _, w := range m.windows {
		r := m.lev.Ratio(short, long[w.Start:w.End])
		if r > best {
			best = r
			if best == 100 {
				break
			}
		}
	}
	return best
}

// Windows returns the candidate windows scored for s1 and s2, with the
// needle role assigned as in Ratio.
func (m *Matcher) Windows(s1, s2 []rune) []Window {
	short, long := s1, s2
	if len(s1) > len(s2) {
		short, long = s2, s1
	}
	blocks := m.finder.matchingBlocks(short, long)
	return CandidateWindows(nil, blocks, len(short), len(long))
}

// Ratio returns the partial ratio of s1 and s2 with default options.
func Ratio(s1, s2 []rune) float64 {
	var m Matcher
	return m.Ratio(s1, s2)
}
