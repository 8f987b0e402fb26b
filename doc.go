// Package vecfuzz provides vectorized fuzzy string similarity for Go.
//
// Vecfuzz scores paired columns of optional UTF-8 strings row by row and
// returns one float64 column per requested function. It is meant for
// fuzzy matching, deduplication and record linkage over millions of row
// pairs.
//
// # Quick Start
//
//	eng, _ := vecfuzz.New()
//	left := column.FromStrings("john smith", "john albertson")
//	right := column.FromStrings("smith john", "john smith")
//
//	res, _ := eng.Execute(ctx, left, right, vecfuzz.FuncRatio, vecfuzz.FuncGram)
//	res.Column(vecfuzz.FuncRatio).Value(0) // 50
//	res.Column(vecfuzz.FuncGram).Value(0)  // 0.777...
//
// For one-off comparisons use the scalar helpers:
//
//	vecfuzz.PartialRatio("john albertson", "john smith") // 75
//
// # Functions
//
//   - ratio: 100 * (m+n-d) / (m+n) where d is the Levenshtein distance
//     over code points. Two empty strings score 100.
//   - partial_ratio: the best ratio of the shorter string against an
//     equally long window of the longer one. Windows are anchored at the
//     matching blocks of the two strings.
//   - gram: the Dice coefficient of the distinct character bigrams.
//     Shingle length, measure, multiset counting and padding are options.
//
// # Nulls and Errors
//
// A row is null when either cell is null. Cells that are not valid UTF-8
// make the row null and are reported in Result.Errors, unless
// WithFailOnDecode is set, in which case the batch fails with *DecodeError.
//
// # Concurrency
//
// Execute scores chunks sequentially. ExecuteParallel scores chunks on up
// to Workers goroutines; the outcome of every row is identical to Execute.
// An Engine is safe for concurrent use.
package vecfuzz
