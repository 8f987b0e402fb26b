// Package levenshtein computes the classic Levenshtein edit distance over
// code-point sequences and the derived 0-100 ratio score.
//
// Insertions, deletions and substitutions cost 1; transpositions are not
// a primitive operation. Results are exact and identical on every
// platform for identical inputs.
package levenshtein

// Context holds the DP row buffer so repeated calls do not allocate.
//
// The zero value is ready to use. A Context is not safe for concurrent use.
type Context struct {
	row []int
}

func (c *Context) buffer(n int) []int {
	if cap(c.row) < n {
		c.row = make([]int, n)
	}
	return c.row[:n]
}

// Distance returns the edit distance between a and b.
func (c *Context) Distance(a, b []rune) int {
	// Shared prefix and suffix never contribute to the distance.
	for len(a) > 0 && len(b) > 0 && a[0] == b[0] {
		a, b = a[1:], b[1:]
	}
	for len(a) > 0 && len(b) > 0 && a[len(a)-1] == b[len(b)-1] {
		a, b = a[:len(a)-1], b[:len(b)-1]
	}

	// Keep the row over the shorter sequence.
	if len(a) < len(b) {
		a, b = b, a
	}
	if len(b) == 0 {
		return len(a)
	}

	row := c.buffer(len(b) + 1)
	for j := range row {
		row[j] = j
	}

	for i := 1; i <= len(a); i++ {
		ai := a[i-1]
		diag := row[0]
		row[0] = i
		for j := 1; j <= len(b); j++ {
			up := row[j]
			cost := 1
			if ai == b[j-1] {
				cost = 0
			}
			row[j] = min(up+1, row[j-1]+1, diag+cost)
			diag = up
		}
	}

	return row[len(b)]
}

// Ratio returns 100 * (m + n - distance) / (m + n), or 100 when both
// sequences are empty.
func (c *Context) Ratio(a, b []rune) float64 {
	return Score(c.Distance(a, b), len(a)+len(b))
}

// Score converts a distance over sequences with total length total into
// the 0-100 ratio scale.
func Score(distance, total int) float64 {
	if total == 0 {
		return 100
	}
	return 100 * float64(total-distance) / float64(total)
}

// Distance returns the edit distance between a and b.
func Distance(a, b []rune) int {
	var c Context
	return c.Distance(a, b)
}

// Ratio returns the 0-100 similarity of a and b.
func Ratio(a, b []rune) float64 {
	var c Context
	return c.Ratio(a, b)
}
