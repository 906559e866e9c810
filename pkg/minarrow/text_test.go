package minarrow

import (
	"testing"

	"github.com/minarrow-go/minarrow/pkg/internal/arrays"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextArray_GetIsKindAgnostic(t *testing.T) {
	strs, ok := arrays.FromSliceString[int32]([]string{"a", "b"})
	require.True(t, ok)
	plain := NewTextUtf8(strs)
	assert.Equal(t, "a", plain.Get(0))

	cat := arrays.NewCategoricalArray[uint8]()
	cat.Push("x")
	cat.Push("y")
	dict := NewTextCategorical8(cat)
	assert.Equal(t, "x", dict.Get(0))
	assert.Equal(t, "y", dict.Get(1))
}

func TestTextArray_SlicePreservesKind(t *testing.T) {
	cat := arrays.NewCategoricalArray[uint16]()
	cat.Push("a")
	cat.Push("b")
	cat.Push("c")
	t16 := NewTextCategorical16(cat)
	w := t16.Slice(1, 2)
	assert.Equal(t, KindCategoricalUint16, w.Kind)
	assert.Equal(t, "b", w.Get(0))
	assert.Equal(t, "c", w.Get(1))
}

func TestTextArray_AccessorsMatchKind(t *testing.T) {
	strs, _ := arrays.FromSliceString[int64]([]string{"a"})
	t64 := NewTextLargeUtf8(strs)
	_, ok := t64.Utf8()
	assert.False(t, ok)
	got, ok := t64.LargeUtf8()
	require.True(t, ok)
	assert.Equal(t, 1, got.Len())
}
