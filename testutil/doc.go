// Package testutil provides testing utilities for vecfuzz.
//
// This package is intended for use in tests and benchmarks only.
// It provides seeded generators for random strings, edited string pairs
// and null masks.
//
// # Random Strings
//
//	rng := testutil.NewRNG(seed)
//	s := rng.String(testutil.AlphabetLower, 0, 16)
//	near := rng.Mutate(s, 2)          // up to 2 random edits
//	lefts, rights := rng.Pairs(1000, testutil.AlphabetNames, 4, 24)
//
// # Null Masks
//
//	present := rng.Present(1000, 0.1) // ~10% missing
package testutil
