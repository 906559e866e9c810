package arrays

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringArray_FromSliceRejectsInvalidUTF8(t *testing.T) {
	_, ok := FromSliceString[int32]([]string{"ok", string([]byte{0xff, 0xfe})})
	assert.False(t, ok)
}

func TestStringArray_PushAndGet(t *testing.T) {
	a, ok := FromSliceString[int32]([]string{"hello", "", "world"})
	require.True(t, ok)
	require.Equal(t, 3, a.Len())
	assert.Equal(t, "hello", a.Get(0))
	assert.Equal(t, "", a.Get(1))
	assert.Equal(t, "world", a.Get(2))
}

func TestStringArray_PushNullDoesNotAdvanceData(t *testing.T) {
	a := NewStringArray[int32]()
	a.Push("ab")
	a.PushNull()
	a.Push("cd")
	assert.True(t, a.IsNull(1))
	assert.Equal(t, "", a.Get(1))
	assert.Equal(t, "cd", a.Get(2))
}

func TestStringArray_SliceSharesOffsetsAndData(t *testing.T) {
	a, _ := FromSliceString[int32]([]string{"aa", "bb", "cc", "dd"})
	w := a.Slice(1, 2)
	require.Equal(t, 2, w.Len())
	assert.Equal(t, 1, w.Offset())
	assert.Equal(t, "bb", w.Get(0))
	assert.Equal(t, "cc", w.Get(1))
	assert.Same(t, a.Offsets, w.Offsets, "slice must share the offsets buffer, not rebase a copy")
	assert.Same(t, a.Data, w.Data, "slice must share the data buffer, not copy the referenced range")
}

func TestStringArray_LargeUtf8UsesInt64Offsets(t *testing.T) {
	a, ok := FromSliceString[int64]([]string{"x"})
	require.True(t, ok)
	assert.Equal(t, int64(1), a.Offsets.Get(1))
}

func TestStringArray_SetSameLengthRewritesInPlace(t *testing.T) {
	a, _ := FromSliceString[int32]([]string{"aa", "bb", "cc"})
	a.Set(1, "xy")
	assert.Equal(t, "aa", a.Get(0))
	assert.Equal(t, "xy", a.Get(1))
	assert.Equal(t, "cc", a.Get(2))
}

func TestStringArray_SetGrowingShiftsSubsequentValues(t *testing.T) {
	a, _ := FromSliceString[int32]([]string{"aa", "bb", "cc"})
	a.Set(1, "longer")
	assert.Equal(t, "aa", a.Get(0))
	assert.Equal(t, "longer", a.Get(1))
	assert.Equal(t, "cc", a.Get(2))
	assert.Equal(t, int32(a.Data.Len()), a.Offsets.Get(3))
}

func TestStringArray_SetShrinkingShiftsSubsequentValues(t *testing.T) {
	a, _ := FromSliceString[int32]([]string{"first", "second", "third"})
	a.Set(0, "")
	a.Set(1, "s")
	assert.Equal(t, "", a.Get(0))
	assert.Equal(t, "s", a.Get(1))
	assert.Equal(t, "third", a.Get(2))
	assert.Equal(t, int32(0), a.Offsets.Get(0))
	assert.Equal(t, int32(a.Data.Len()), a.Offsets.Get(3))
}

func TestStringArray_SetPanicsOnWindowNotOwningTail(t *testing.T) {
	a, _ := FromSliceString[int32]([]string{"aa", "bb", "cc"})
	w := a.Slice(0, 2)
	assert.Panics(t, func() { w.Set(1, "zz") })
}
