package testutil

import (
	"math/rand"
	"sync"
)

// Alphabets for generated strings.
var (
	AlphabetBinary  = []rune("ab")
	AlphabetLower   = []rune("abcdefghijklmnopqrstuvwxyz")
	AlphabetNames   = []rune("abcdehijlmnorst ")
	AlphabetUnicode = []rune("aäbcçeéè东京ßøΩ ")
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// String returns a random string over alphabet with a rune length in [minLen, maxLen].
func (r *RNG) String(alphabet []rune, minLen, maxLen int) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stringLocked(alphabet, minLen, maxLen)
}

func (r *RNG) stringLocked(alphabet []rune, minLen, maxLen int) string {
	n := minLen
	if maxLen > minLen {
		n += r.rand.Intn(maxLen - minLen + 1)
	}
	out := make([]rune, n)
	for i := range out {
		out[i] = alphabet[r.rand.Intn(len(alphabet))]
	}
	return string(out)
}

// Strings returns n random strings.
func (r *RNG) Strings(n int, alphabet []rune, minLen, maxLen int) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]string, n)
	for i := range out {
		out[i] = r.stringLocked(alphabet, minLen, maxLen)
	}
	return out
}

// Mutate applies up to edits random insertions, deletions or substitutions to s.
func (r *RNG) Mutate(s string, edits int) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.mutateLocked(s, edits, []rune(s))
}

func (r *RNG) mutateLocked(s string, edits int, alphabet []rune) string {
	out := []rune(s)
	if len(alphabet) == 0 {
		alphabet = AlphabetLower
	}
	for range edits {
		c := alphabet[r.rand.Intn(len(alphabet))]
		switch op := r.rand.Intn(3); {
		case op == 0 || len(out) == 0:
			i := r.rand.Intn(len(out) + 1)
			out = append(out[:i], append([]rune{c}, out[i:]...)...)
		case op == 1:
			i := r.rand.Intn(len(out))
			out = append(out[:i], out[i+1:]...)
		default:
			out[r.rand.Intn(len(out))] = c
		}
	}
	return string(out)
}

// Pairs returns n left strings and n right strings where roughly half of
// the right strings are near-duplicates of their left counterpart.
func (r *RNG) Pairs(n int, alphabet []rune, minLen, maxLen int) ([]string, []string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	lefts := make([]string, n)
	rights := make([]string, n)
	for i := range n {
		lefts[i] = r.stringLocked(alphabet, minLen, maxLen)
		if r.rand.Intn(2) == 0 {
			rights[i] = r.mutateLocked(lefts[i], r.rand.Intn(4), alphabet)
		} else {
			rights[i] = r.stringLocked(alphabet, minLen, maxLen)
		}
	}
	return lefts, rights
}

// Present returns a presence mask where each entry is false with
// probability missingRate.
func (r *RNG) Present(n int, missingRate float64) []bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	present := make([]bool, n)
	for i := range n {
		present[i] = r.rand.Float64() >= missingRate
	}

	return present
}

// Optional converts values into a pointer slice with nil where present is false.
func Optional(values []string, present []bool) []*string {
	out := make([]*string, len(values))
	for i := range values {
		if present[i] {
			v := values[i]
			out[i] = &v
		}
	}
	return out
}
