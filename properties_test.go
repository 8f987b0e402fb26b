package vecfuzz

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/vecfuzz/internal/gram"
	"github.com/hupe1980/vecfuzz/testutil"
)

func TestScalar_Properties(t *testing.T) {
	rng := testutil.NewRNG(2024)

	for _, alphabet := range [][]rune{testutil.AlphabetBinary, testutil.AlphabetNames, testutil.AlphabetUnicode} {
		a, b := rng.Pairs(300, alphabet, 0, 30)

		for i := range a {
			x, y := a[i], b[i]

			// Identity
			assert.Equal(t, 100.0, Ratio(x, x), "ratio(%q, %q)", x, x)
			assert.Equal(t, 100.0, PartialRatio(x, x), "partial_ratio(%q, %q)", x, x)
			if len([]rune(x)) >= 2 {
				assert.Equal(t, 1.0, Gram(x, x), "gram(%q, %q)", x, x)
			}

			// Symmetry
			assert.Equal(t, Ratio(x, y), Ratio(y, x), "ratio(%q, %q)", x, y)
			assert.Equal(t, PartialRatio(x, y), PartialRatio(y, x), "partial_ratio(%q, %q)", x, y)
			assert.Equal(t, Gram(x, y), Gram(y, x), "gram(%q, %q)", x, y)

			// Range
			for _, s := range []float64{Ratio(x, y), PartialRatio(x, y)} {
				assert.GreaterOrEqual(t, s, 0.0)
				assert.LessOrEqual(t, s, 100.0)
			}
			g := Gram(x, y)
			assert.GreaterOrEqual(t, g, 0.0)
			assert.LessOrEqual(t, g, 1.0)
		}
	}
}

func TestScalar_Containment(t *testing.T) {
	rng := testutil.NewRNG(99)

	for range 500 {
		hay := rng.String(testutil.AlphabetNames, 1, 40)
		runes := []rune(hay)
		lo := rng.Intn(len(runes))
		hi := lo + 1 + rng.Intn(len(runes)-lo)
		needle := string(runes[lo:hi])

		if !strings.Contains(hay, needle) {
			t.Fatalf("bad fixture %q / %q", hay, needle)
		}
		assert.Equal(t, 100.0, PartialRatio(hay, needle), "hay=%q needle=%q", hay, needle)
	}
}

func TestScalar_Values(t *testing.T) {
	assert.Equal(t, 100.0, Ratio("john smith", "john smith"))
	assert.InDelta(t, 50.0, Ratio("john smith", "smith john"), 1e-9)
	assert.InDelta(t, 75.0, PartialRatio("john albertson", "john smith"), 1e-9)
	assert.Zero(t, Gram("mary willis", "john smith"))
	assert.Equal(t, 1.0, Gram("", ""))
	assert.Equal(t, 100.0, Ratio("", ""))
	assert.Equal(t, 10, Distance("john smith", "smith john"))

	// Invalid UTF-8 decodes to U+FFFD.
	assert.Equal(t, 100.0, Ratio("a\xff", "a�"))
}

func TestScalar_GramMatchesScorer(t *testing.T) {
	rng := testutil.NewRNG(7)
	scorer, err := gram.NewScorer(gram.DefaultOptions)
	require.NoError(t, err)

	lefts, rights := rng.Pairs(200, testutil.AlphabetUnicode, 0, 16)
	for i := range lefts {
		want := scorer.Score([]rune(lefts[i]), []rune(rights[i]))
		assert.Equal(t, want, Gram(lefts[i], rights[i]), "a=%q b=%q", lefts[i], rights[i])
	}
	assert.InDelta(t, 0.25, Gram("night", "nacht"), 1e-9)
	assert.Zero(t, Gram("", "a"))
}
