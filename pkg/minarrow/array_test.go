package minarrow

import (
	"testing"

	"github.com/minarrow-go/minarrow/pkg/internal/arrays"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArray_NullKindIsAlwaysNull(t *testing.T) {
	a := NewArrayNull(5)
	assert.Equal(t, 5, a.Len())
	assert.Equal(t, 5, a.NullCount())
	for i := 0; i < 5; i++ {
		assert.True(t, a.IsNull(i))
	}
}

func TestArray_BooleanDelegates(t *testing.T) {
	b := arrays.FromSliceBool([]bool{true, false, true})
	a := NewArrayBoolean(b)
	assert.Equal(t, 3, a.Len())
	got, ok := a.Boolean()
	require.True(t, ok)
	assert.True(t, got.Get(0))
}

func TestArray_SliceOutOfBoundsPanics(t *testing.T) {
	a := NewArrayNumeric(NewNumericInt32(arrays.FromSliceInt([]int32{1, 2, 3})))
	assert.Panics(t, func() { a.Slice(1, 5) })
}

func TestArray_SlicePreservesKindAndData(t *testing.T) {
	a := NewArrayNumeric(NewNumericInt32(arrays.FromSliceInt([]int32{1, 2, 3, 4, 5})))
	w := a.Slice(2, 2)
	assert.Equal(t, KindNumeric, w.Kind)
	assert.Equal(t, 2, w.Offset())
	n, ok := w.Numeric()
	require.True(t, ok)
	i32, _ := n.I32()
	assert.Equal(t, int32(3), i32.Get(0))
	assert.Equal(t, int32(4), i32.Get(1))

	parent, _ := a.Numeric()
	parentI32, _ := parent.I32()
	assert.Same(t, parentI32.Values, i32.Values, "Array.Slice must share the parent's buffer, not copy it")
}
