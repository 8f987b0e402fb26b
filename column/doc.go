// Package column provides the columnar input and output types scored by vecfuzz.
//
// A column is a dense slice of values plus a Roaring bitmap of null rows.
// Values at null positions are undefined and must not be read.
//
// # Usage
//
//	left := column.FromPointers([]*string{&a, nil, &b})
//	right := column.FromStrings("john smith", "john smith", "mary")
//
//	// Zero-copy views for chunked execution.
//	head := left.Slice(0, 2)
//
// # Thread Safety
//
// Columns are immutable once built and safe for concurrent reads.
package column
