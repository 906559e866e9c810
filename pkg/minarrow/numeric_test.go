package minarrow

import (
	"testing"

	"github.com/minarrow-go/minarrow/pkg/internal/arrays"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumericArray_AccessorsMatchKind(t *testing.T) {
	n := NewNumericInt32(arrays.FromSliceInt([]int32{1, 2, 3}))

	got, ok := n.I32()
	require.True(t, ok)
	assert.Equal(t, 3, got.Len())

	_, ok = n.F64()
	assert.False(t, ok)
}

func TestNumericArray_SlicePreservesKind(t *testing.T) {
	n := NewNumericFloat64(arrays.FromSliceFloat([]float64{1, 2, 3, 4}))
	w := n.Slice(1, 2)
	assert.Equal(t, KindFloat64, w.Kind)
	f, ok := w.F64()
	require.True(t, ok)
	assert.Equal(t, 2.0, f.Get(0))
	assert.Equal(t, 3.0, f.Get(1))
}

func TestNumericArray_NullDelegatesToUnderlying(t *testing.T) {
	a := arrays.FromSliceInt([]int8{1, 2, 3})
	a.SetNull(1)
	n := NewNumericInt8(a)
	assert.True(t, n.IsNull(1))
	assert.Equal(t, 1, n.NullCount())
	assert.True(t, n.HasNulls())
}
