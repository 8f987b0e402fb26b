package column

import (
	"testing"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(s string) *string { return &s }

func TestNewStrings(t *testing.T) {
	c, err := NewStrings([]string{"a", "", "c"}, 1)
	require.NoError(t, err)

	assert.Equal(t, 3, c.Len())
	assert.False(t, c.IsNull(0))
	assert.True(t, c.IsNull(1))
	assert.Equal(t, 1, c.NullCount())

	v, ok := c.Get(2)
	assert.True(t, ok)
	assert.Equal(t, "c", v)

	_, ok = c.Get(1)
	assert.False(t, ok)
}

func TestNewStrings_OutOfRange(t *testing.T) {
	_, err := NewStrings([]string{"a"}, 1)
	assert.ErrorIs(t, err, ErrOutOfRange)

	_, err = NewStrings([]string{"a"}, -1)
	assert.ErrorIs(t, err, ErrOutOfRange)

	_, err = NewStringsWithBitmap([]string{"a"}, roaring.BitmapOf(3))
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestFromPointers(t *testing.T) {
	c := FromPointers([]*string{ptr("john"), nil, ptr(""), nil})

	assert.Equal(t, 4, c.Len())
	assert.Equal(t, 2, c.NullCount())
	assert.True(t, c.IsNull(1))
	assert.True(t, c.IsNull(3))

	// Empty string is a value, not a null.
	v, ok := c.Get(2)
	assert.True(t, ok)
	assert.Equal(t, "", v)
}

func TestStrings_Slice(t *testing.T) {
	c := FromPointers([]*string{ptr("a"), nil, ptr("c"), nil, ptr("e")})

	tests := []struct {
		name       string
		start, end int
		wantNulls  []int
	}{
		{"full", 0, 5, []int{1, 3}},
		{"head", 0, 2, []int{1}},
		{"middle", 1, 4, []int{0, 2}},
		{"tail", 4, 5, nil},
		{"empty", 2, 2, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := c.Slice(tt.start, tt.end)
			require.Equal(t, tt.end-tt.start, s.Len())
			assert.Equal(t, len(tt.wantNulls), s.NullCount())

			var got []int
			for i := 0; i < s.Len(); i++ {
				if s.IsNull(i) {
					got = append(got, i)
					continue
				}
				assert.Equal(t, c.Value(tt.start+i), s.Value(i))
			}
			assert.Equal(t, tt.wantNulls, got)
		})
	}

	assert.Panics(t, func() { c.Slice(3, 6) })
}

func TestStrings_SliceOfSlice(t *testing.T) {
	c := FromPointers([]*string{ptr("a"), ptr("b"), nil, ptr("d")})
	s := c.Slice(1, 4).Slice(1, 3)

	require.Equal(t, 2, s.Len())
	assert.True(t, s.IsNull(0))
	assert.Equal(t, "d", s.Value(1))
}

func TestNewFloat64(t *testing.T) {
	values := []float64{1, 99, 3}
	c, err := NewFloat64(values, roaring.BitmapOf(1))
	require.NoError(t, err)

	assert.Equal(t, 3, c.Len())
	assert.Equal(t, 1, c.NullCount())
	assert.True(t, c.IsNull(1))
	assert.Equal(t, 0.0, c.Value(1), "null slots read as zero")

	v, ok := c.Get(2)
	assert.True(t, ok)
	assert.Equal(t, 3.0, v)

	ptrs := c.Pointers()
	require.Len(t, ptrs, 3)
	assert.Nil(t, ptrs[1])
	assert.Equal(t, 1.0, *ptrs[0])

	// Nulls returns a copy.
	n := c.Nulls()
	n.Add(0)
	assert.False(t, c.IsNull(0))
}

func TestNewFloat64_NilBitmap(t *testing.T) {
	c, err := NewFloat64([]float64{}, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, 0, c.NullCount())

	_, err = NewFloat64([]float64{1}, roaring.BitmapOf(1))
	assert.ErrorIs(t, err, ErrOutOfRange)
}
