package arrays

import (
	"testing"

	"github.com/minarrow-go/minarrow/pkg/internal/buffer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoricalArray_RecodesRepeatedValues(t *testing.T) {
	a := NewCategoricalArray[uint8]()
	a.Push("red")
	a.Push("green")
	a.Push("red")

	require.Equal(t, 3, a.Len())
	assert.Equal(t, []string{"red", "green"}, a.Dictionary)
	assert.Equal(t, a.Code(0), a.Code(2))
	assert.Equal(t, "red", a.Get(0))
	assert.Equal(t, "green", a.Get(1))
}

func TestCategoricalArray_PushNull(t *testing.T) {
	a := NewCategoricalArray[uint8]()
	a.Push("a")
	a.PushNull()
	assert.True(t, a.IsNull(1))
	assert.Equal(t, 1, a.NullCount())
}

func TestCategoricalArray_PushWorksAfterStructLiteralConstruction(t *testing.T) {
	// Builds the array from a struct literal that sets Keys, Dictionary
	// and length but leaves index nil, so Push must rebuild the index.
	a := &CategoricalArray[uint8]{
		Keys:       buffer.FromSlice([]uint8{0, 1}),
		Dictionary: []string{"a", "b"},
		length:     2,
	}
	a.Push("a")
	assert.Equal(t, uint8(0), a.Code(2))
	a.Push("c")
	assert.Equal(t, []string{"a", "b", "c"}, a.Dictionary)
}

func TestCategoricalArray_DecodingAgreesRegardlessOfDictionaryOrder(t *testing.T) {
	// Two arrays built by pushing the same values in different orders get
	// dictionaries in different first-seen orders; each must still decode
	// every position back to the sequence it was built from, and both
	// dictionaries must hold the same distinct values.
	a := NewCategoricalArray[uint8]()
	for _, v := range []string{"red", "green", "red", "blue", "green"} {
		a.Push(v)
	}

	b := NewCategoricalArray[uint8]()
	for _, v := range []string{"blue", "green", "red", "red", "green"} {
		b.Push(v)
	}
	// b's dictionary insertion order differs from a's, so raw codes need
	// not match; what must hold is that each array decodes to its own
	// input sequence.
	want := []string{"red", "green", "red", "blue", "green"}
	for i, w := range want {
		assert.Equal(t, w, a.Get(i))
	}
	wantB := []string{"blue", "green", "red", "red", "green"}
	for i, w := range wantB {
		assert.Equal(t, w, b.Get(i))
	}
	assert.ElementsMatch(t, a.Dictionary, b.Dictionary)
}

func TestCategoricalArray_SliceSharesFullDictionary(t *testing.T) {
	a := NewCategoricalArray[uint8]()
	a.Push("a")
	a.Push("b")
	a.Push("c")
	w := a.Slice(1, 2)
	assert.Equal(t, []string{"a", "b", "c"}, w.Dictionary)
	assert.Equal(t, "b", w.Get(0))
	assert.Equal(t, "c", w.Get(1))
	assert.Same(t, a.Keys, w.Keys, "slice must share the keys buffer, not copy it")
}

func TestCategoricalArray_SetRecodesToExistingDictionaryEntry(t *testing.T) {
	a := NewCategoricalArray[uint8]()
	a.Push("red")
	a.Push("green")
	a.Push("red")
	a.Set(2, "green")
	assert.Equal(t, "green", a.Get(2))
	assert.Equal(t, []string{"red", "green"}, a.Dictionary)
}

func TestCategoricalArray_SetUnseenValueExtendsDictionary(t *testing.T) {
	a := NewCategoricalArray[uint8]()
	a.Push("red")
	a.Push("green")
	a.Set(0, "blue")
	assert.Equal(t, "blue", a.Get(0))
	assert.Equal(t, "green", a.Get(1))
	assert.Equal(t, []string{"red", "green", "blue"}, a.Dictionary)
}

func TestCategoricalArray_SetRebuildsIndexAfterImportConstruction(t *testing.T) {
	src := NewCategoricalArray[uint16]()
	src.Push("a")
	src.Push("b")
	imported := NewCategoricalArrayFrom(src.Keys.Clone(), []string{"a", "b"}, nil)
	imported.Set(1, "a")
	assert.Equal(t, "a", imported.Get(1))
	assert.Equal(t, []string{"a", "b"}, imported.Dictionary)
}
