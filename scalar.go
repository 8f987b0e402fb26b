package vecfuzz

import (
	"github.com/hupe1980/vecfuzz/internal/gram"
	"github.com/hupe1980/vecfuzz/internal/levenshtein"
	"github.com/hupe1980/vecfuzz/internal/partial"
)

// The scalar helpers below use the default configuration. Invalid UTF-8
// decodes to U+FFFD instead of failing.

// Ratio returns the edit-distance similarity of a and b in [0, 100].
func Ratio(a, b string) float64 {
	return levenshtein.Ratio([]rune(a), []rune(b))
}

// PartialRatio returns the best-aligned substring similarity of a and b
// in [0, 100].
func PartialRatio(a, b string) float64 {
	return partial.Ratio([]rune(a), []rune(b))
}

// Gram returns the Dice overlap of the distinct bigrams of a and b in [0, 1].
func Gram(a, b string) float64 {
	opts := gram.DefaultOptions
	return gram.Compare(gram.Build([]rune(a), opts), gram.Build([]rune(b), opts), opts.Measure, opts.Multiset)
}

// Distance returns the Levenshtein distance between a and b in code points.
func Distance(a, b string) int {
	return levenshtein.Distance([]rune(a), []rune(b))
}
