package engine

import (
	"errors"
	"testing"

	"github.com/hupe1980/vecfuzz/column"
	"github.com/hupe1980/vecfuzz/internal/gram"
	"github.com/hupe1980/vecfuzz/internal/normalize"
	"github.com/hupe1980/vecfuzz/internal/partial"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allKinds = []Kind{KindRatio, KindPartialRatio, KindGram}

func buffers(kinds, n int) [][]float64 {
	out := make([][]float64, kinds)
	for k := range out {
		out[k] = make([]float64, n)
	}
	return out
}

func TestExecutor_Scenarios(t *testing.T) {
	left := column.FromStrings("john smith", "john albertson", "mary willis", "", "joan")
	right := column.FromStrings("smith john", "john smith", "john smith", "", "john")

	e, err := New(DefaultConfig(), allKinds)
	require.NoError(t, err)

	out := buffers(3, left.Len())
	chunk, err := e.Run(left, right, 0, left.Len(), out)
	require.NoError(t, err)
	assert.Empty(t, chunk.Nulls)
	assert.Empty(t, chunk.Errors)

	ratio, part, gr := out[0], out[1], out[2]

	assert.InDelta(t, 50.0, ratio[0], 1e-9)
	assert.InDelta(t, 7.0/9.0, gr[0], 1e-9)

	assert.InDelta(t, 200.0/3.0, ratio[1], 1e-9)
	assert.InDelta(t, 75.0, part[1], 1e-9)
	assert.Greater(t, part[1], ratio[1])

	assert.InDelta(t, 0.0, gr[2], 1e-9)

	assert.Equal(t, 100.0, ratio[3])
	assert.Equal(t, 100.0, part[3])
	assert.Equal(t, 1.0, gr[3])

	assert.InDelta(t, 87.5, ratio[4], 1e-9)
}

func TestExecutor_NullPropagation(t *testing.T) {
	a, b := "john", "smith"
	left := column.FromPointers([]*string{&a, nil, &a, nil})
	right := column.FromPointers([]*string{&b, &b, nil, nil})

	e, err := New(DefaultConfig(), allKinds)
	require.NoError(t, err)

	out := buffers(3, 4)
	for k := range out {
		for i := range out[k] {
			out[k][i] = -1
		}
	}

	chunk, err := e.Run(left, right, 0, 4, out)
	require.NoError(t, err)
	assert.Equal(t, []uint32{1, 2, 3}, chunk.Nulls)
	assert.Empty(t, chunk.Errors)

	for k := range out {
		assert.NotEqual(t, -1.0, out[k][0])
		for _, i := range []int{1, 2, 3} {
			assert.Zero(t, out[k][i], "null rows are zeroed")
		}
	}
}

func TestExecutor_NullSkipsDecode(t *testing.T) {
	left, err := column.NewStrings([]string{"\xff"}, 0)
	require.NoError(t, err)
	right := column.FromStrings("\xff")

	e, err := New(Config{FailOnDecode: true}, []Kind{KindRatio})
	require.NoError(t, err)

	chunk, err := e.Run(left, right, 0, 1, buffers(1, 1))
	require.NoError(t, err, "null rows are never decoded")
	assert.Equal(t, []uint32{0}, chunk.Nulls)
}

func TestExecutor_DecodeErrorReported(t *testing.T) {
	left := column.FromStrings("ok", "ab\xffcd", "fine")
	right := column.FromStrings("ok", "ab", "x\xe6")

	e, err := New(DefaultConfig(), []Kind{KindRatio})
	require.NoError(t, err)

	out := buffers(1, 3)
	chunk, err := e.Run(left, right, 0, 3, out)
	require.NoError(t, err)

	assert.Equal(t, []uint32{1, 2}, chunk.Nulls)
	require.Len(t, chunk.Errors, 2)

	assert.Equal(t, 1, chunk.Errors[0].Row)
	assert.Equal(t, SideLeft, chunk.Errors[0].Side)
	assert.Equal(t, 2, chunk.Errors[0].Err.Offset)

	assert.Equal(t, 2, chunk.Errors[1].Row)
	assert.Equal(t, SideRight, chunk.Errors[1].Side)
	assert.Equal(t, 1, chunk.Errors[1].Err.Offset)

	assert.Equal(t, 100.0, out[0][0])
}

func TestExecutor_DecodeErrorFails(t *testing.T) {
	left := column.FromStrings("ok", "ab\xffcd", "fine")
	right := column.FromStrings("ok", "ab", "fine")

	e, err := New(Config{FailOnDecode: true}, []Kind{KindRatio})
	require.NoError(t, err)

	_, err = e.Run(left, right, 0, 3, buffers(1, 3))
	require.Error(t, err)

	var rerr *RowError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, 1, rerr.Row)
	assert.Equal(t, "row 1 (left): invalid UTF-8 at byte offset 2", rerr.Error())

	var de *normalize.DecodeError
	assert.True(t, errors.As(err, &de))
}

func TestExecutor_Range(t *testing.T) {
	left := column.FromStrings("a", "b", "c", "d")
	right := column.FromStrings("a", "x", "c", "x")

	e, err := New(DefaultConfig(), []Kind{KindRatio})
	require.NoError(t, err)

	out := buffers(1, 4)
	out[0][0], out[0][3] = -1, -1

	_, err = e.Run(left, right, 1, 3, out)
	require.NoError(t, err)
	assert.Equal(t, []float64{-1, 50, 100, -1}, out[0], "only [start, end) is written")

	chunk, err := e.Run(left, right, 2, 2, out)
	require.NoError(t, err)
	assert.Empty(t, chunk.Nulls)
}

func TestExecutor_InvalidArguments(t *testing.T) {
	left := column.FromStrings("a", "b")
	right := column.FromStrings("a", "b")

	e, err := New(DefaultConfig(), []Kind{KindRatio, KindGram})
	require.NoError(t, err)

	tests := []struct {
		name        string
		left, right *column.Strings
		start, end  int
		out         [][]float64
	}{
		{"nil column", nil, right, 0, 2, buffers(2, 2)},
		{"length mismatch", left, column.FromStrings("a"), 0, 1, buffers(2, 2)},
		{"negative start", left, right, -1, 2, buffers(2, 2)},
		{"end past length", left, right, 0, 3, buffers(2, 3)},
		{"start after end", left, right, 2, 1, buffers(2, 2)},
		{"wrong buffer count", left, right, 0, 2, buffers(1, 2)},
		{"short buffer", left, right, 0, 2, buffers(2, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.Run(tt.left, tt.right, tt.start, tt.end, tt.out)
			assert.ErrorIs(t, err, ErrInvalidArgument)
		})
	}
}

func TestNew_Errors(t *testing.T) {
	_, err := New(DefaultConfig(), nil)
	assert.ErrorIs(t, err, ErrNoKinds)

	_, err = New(Config{Gram: gram.Options{N: 0}}, []Kind{KindGram})
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.ErrorIs(t, err, gram.ErrInvalidN)

	_, err = New(Config{Gram: gram.Options{N: 0}}, []Kind{KindRatio})
	assert.NoError(t, err, "gram options are ignored unless gram is requested")

	_, err = New(Config{Normalize: normalize.Options{Form: normalize.Form(42)}}, []Kind{KindRatio})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = New(DefaultConfig(), []Kind{Kind(9)})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestExecutor_Normalize(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Normalize = normalize.Options{CaseFold: true, CollapseSpace: true}

	e, err := New(cfg, allKinds)
	require.NoError(t, err)

	got, err := e.Pair("  John   SMITH", "john smith", nil)
	require.NoError(t, err)
	assert.Equal(t, []float64{100, 100, 1}, got)
}

func TestExecutor_PartialOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Partial = partial.Options{EmptyNeedle: partial.EmptyNeedleMatch}

	e, err := New(cfg, []Kind{KindPartialRatio})
	require.NoError(t, err)

	got, err := e.Pair("", "john", nil)
	require.NoError(t, err)
	assert.Equal(t, []float64{100}, got)

	strict, err := New(DefaultConfig(), []Kind{KindPartialRatio})
	require.NoError(t, err)

	got, err = strict.Pair("", "john", nil)
	require.NoError(t, err)
	assert.Equal(t, []float64{0}, got)
}

func TestExecutor_Pair(t *testing.T) {
	e, err := New(DefaultConfig(), []Kind{KindGram, KindRatio})
	require.NoError(t, err)
	assert.Equal(t, []Kind{KindGram, KindRatio}, e.Kinds())

	got, err := e.Pair("john smith", "smith john", make([]float64, 0, 2))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.InDelta(t, 7.0/9.0, got[0], 1e-9)
	assert.InDelta(t, 50.0, got[1], 1e-9)

	_, err = e.Pair("ok", "\xff", nil)
	var rerr *RowError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, SideRight, rerr.Side)
	assert.Equal(t, 0, rerr.Row)
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "ratio", KindRatio.String())
	assert.Equal(t, "partial_ratio", KindPartialRatio.String())
	assert.Equal(t, "gram", KindGram.String())
	assert.Equal(t, "Kind(7)", Kind(7).String())
	assert.Equal(t, "left", SideLeft.String())
	assert.Equal(t, "right", SideRight.String())
}
