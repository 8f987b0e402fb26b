package column

import (
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"
)

// Float64 is a column of optional scores.
type Float64 struct {
	values []float64
	nulls  *roaring.Bitmap
}

// NewFloat64 creates a score column that takes ownership of values and nulls.
// A nil bitmap means the column has no nulls.
func NewFloat64(values []float64, nulls *roaring.Bitmap) (*Float64, error) {
	if uint64(len(values)) > MaxLen {
		return nil, fmt.Errorf("%w: %d rows", ErrTooLarge, len(values))
	}
	if nulls == nil {
		nulls = roaring.New()
	}
	if !nulls.IsEmpty() && uint64(nulls.Maximum()) >= uint64(len(values)) {
		return nil, fmt.Errorf("%w: %d (len %d)", ErrOutOfRange, nulls.Maximum(), len(values))
	}
	// Null slots hold zero so Values never leaks scratch results.
	it := nulls.Iterator()
	for it.HasNext() {
		values[it.Next()] = 0
	}
	return &Float64{values: values, nulls: nulls}, nil
}

// Len returns the number of rows.
func (c *Float64) Len() int {
	return len(c.values)
}

// IsNull reports whether row i is null.
func (c *Float64) IsNull(i int) bool {
	return c.nulls.Contains(uint32(i))
}

// Value returns the score at row i. Null rows read as zero.
func (c *Float64) Value(i int) float64 {
	return c.values[i]
}

// Get returns the score at row i and false if the row is null.
func (c *Float64) Get(i int) (float64, bool) {
	if c.IsNull(i) {
		return 0, false
	}
	return c.values[i], true
}

// NullCount returns the number of null rows.
func (c *Float64) NullCount() int {
	return int(c.nulls.GetCardinality())
}

// Values returns the dense value buffer. Callers must not modify it.
func (c *Float64) Values() []float64 {
	return c.values
}

// Nulls returns a copy of the null bitmap.
func (c *Float64) Nulls() *roaring.Bitmap {
	return c.nulls.Clone()
}

// Pointers returns the column as optional values, nil for null rows.
func (c *Float64) Pointers() []*float64 {
	out := make([]*float64, len(c.values))
	for i := range c.values {
		if c.IsNull(i) {
			continue
		}
		v := c.values[i]
		out[i] = &v
	}
	return out
}
