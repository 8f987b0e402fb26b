package column

import (
	"errors"
	"fmt"
	"math"

	"github.com/RoaringBitmap/roaring/v2"
)

// MaxLen is the maximum number of rows in a column (row ids are uint32).
const MaxLen = math.MaxUint32

var (
	// ErrTooLarge is returned when a column exceeds MaxLen rows.
	ErrTooLarge = errors.New("column exceeds maximum length")

	// ErrOutOfRange is returned for null positions outside the column.
	ErrOutOfRange = errors.New("null position out of range")
)

// Strings is a column of optional strings.
type Strings struct {
	values []string
	nulls  *roaring.Bitmap
	offset int // row id of values[0] inside nulls
}

// NewStrings creates a column from values and the positions of null rows.
func NewStrings(values []string, nullRows ...int) (*Strings, error) {
	if uint64(len(values)) > MaxLen {
		return nil, fmt.Errorf("%w: %d rows", ErrTooLarge, len(values))
	}
	nulls := roaring.New()
	for _, r := range nullRows {
		if r < 0 || r >= len(values) {
			return nil, fmt.Errorf("%w: %d (len %d)", ErrOutOfRange, r, len(values))
		}
		nulls.Add(uint32(r))
	}
	return &Strings{values: values, nulls: nulls}, nil
}

// NewStringsWithBitmap creates a column that takes ownership of nulls.
// A nil bitmap means the column has no nulls.
func NewStringsWithBitmap(values []string, nulls *roaring.Bitmap) (*Strings, error) {
	if uint64(len(values)) > MaxLen {
		return nil, fmt.Errorf("%w: %d rows", ErrTooLarge, len(values))
	}
	if nulls == nil {
		nulls = roaring.New()
	}
	if !nulls.IsEmpty() && uint64(nulls.Maximum()) >= uint64(len(values)) {
		return nil, fmt.Errorf("%w: %d (len %d)", ErrOutOfRange, nulls.Maximum(), len(values))
	}
	return &Strings{values: values, nulls: nulls}, nil
}

// FromStrings creates a column without nulls.
func FromStrings(values ...string) *Strings {
	return &Strings{values: values, nulls: roaring.New()}
}

// FromPointers creates a column where nil pointers are null rows.
func FromPointers(values []*string) *Strings {
	out := make([]string, len(values))
	nulls := roaring.New()
	for i, v := range values {
		if v == nil {
			nulls.Add(uint32(i))
			continue
		}
		out[i] = *v
	}
	return &Strings{values: out, nulls: nulls}
}

// Len returns the number of rows.
func (c *Strings) Len() int {
	return len(c.values)
}

// IsNull reports whether row i is null.
func (c *Strings) IsNull(i int) bool {
	return c.nulls.Contains(uint32(c.offset + i))
}

// Value returns the value at row i. The result is undefined for null rows.
func (c *Strings) Value(i int) string {
	return c.values[i]
}

// Get returns the value at row i and false if the row is null.
func (c *Strings) Get(i int) (string, bool) {
	if c.IsNull(i) {
		return "", false
	}
	return c.values[i], true
}

// NullCount returns the number of null rows.
func (c *Strings) NullCount() int {
	return countRange(c.nulls, c.offset, len(c.values))
}

// countRange counts the bits set in [offset, offset+n).
func countRange(b *roaring.Bitmap, offset, n int) int {
	if n == 0 || b.IsEmpty() {
		return 0
	}
	count := b.Rank(uint32(offset + n - 1))
	if offset > 0 {
		count -= b.Rank(uint32(offset - 1))
	}
	return int(count)
}

// Slice returns the rows [start, end) as a view sharing storage with c.
func (c *Strings) Slice(start, end int) *Strings {
	if start < 0 || end > len(c.values) || start > end {
		panic(fmt.Sprintf("column: slice bounds [%d:%d] out of range (len %d)", start, end, len(c.values)))
	}
	return &Strings{
		values: c.values[start:end],
		nulls:  c.nulls,
		offset: c.offset + start,
	}
}
