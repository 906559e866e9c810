package minarrow

import (
	"testing"

	"github.com/minarrow-go/minarrow/pkg/cdata"
	"github.com/minarrow-go/minarrow/pkg/contracts"
	"github.com/minarrow-go/minarrow/pkg/internal/arrays"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportImport_Int32RoundTrips(t *testing.T) {
	a := arrays.FromSliceInt([]int32{10, 20, 30})
	a.SetNull(1)
	field := NewField("values", contracts.DType{ID: contracts.Int32}, true)
	fa := NewFieldArray(field, NewArrayNumeric(NewNumericInt32(a)))

	var cArr cdata.ArrowArray
	var cSchema cdata.ArrowSchema
	require.NoError(t, ExportToC(fa, &cArr, &cSchema))

	got, err := ImportFromC(&cArr, &cSchema)
	require.NoError(t, err)

	assert.Equal(t, "values", got.Field.Name)
	assert.True(t, got.Field.Nullable)
	assert.Equal(t, contracts.Int32, got.Field.Type.ID)
	assert.Equal(t, 3, got.Data.Len())
	assert.True(t, got.Data.IsNull(1))

	n, ok := got.Data.Numeric()
	require.True(t, ok)
	i32, ok := n.I32()
	require.True(t, ok)
	assert.Equal(t, int32(10), i32.Get(0))
	assert.Equal(t, int32(30), i32.Get(2))
}

func TestExportImport_Utf8RoundTrips(t *testing.T) {
	strs, ok := arrays.FromSliceString[int32]([]string{"alpha", "beta", "gamma"})
	require.True(t, ok)
	field := NewField("names", contracts.DType{ID: contracts.Utf8}, false)
	fa := NewFieldArray(field, NewArrayText(NewTextUtf8(strs)))

	var cArr cdata.ArrowArray
	var cSchema cdata.ArrowSchema
	require.NoError(t, ExportToC(fa, &cArr, &cSchema))

	got, err := ImportFromC(&cArr, &cSchema)
	require.NoError(t, err)

	text, ok := got.Data.Text()
	require.True(t, ok)
	assert.Equal(t, "alpha", text.Get(0))
	assert.Equal(t, "beta", text.Get(1))
	assert.Equal(t, "gamma", text.Get(2))
}

func TestExportImport_CategoricalRoundTripsDictionary(t *testing.T) {
	cat := arrays.NewCategoricalArray[uint8]()
	cat.Push("red")
	cat.Push("green")
	cat.Push("red")
	field := NewField("color", contracts.DType{ID: contracts.DictionaryUint8}, false)
	fa := NewFieldArray(field, NewArrayText(NewTextCategorical8(cat)))

	var cArr cdata.ArrowArray
	var cSchema cdata.ArrowSchema
	require.NoError(t, ExportToC(fa, &cArr, &cSchema))

	got, err := ImportFromC(&cArr, &cSchema)
	require.NoError(t, err)

	text, ok := got.Data.Text()
	require.True(t, ok)
	assert.Equal(t, KindCategoricalUint8, text.Kind)
	assert.Equal(t, "red", text.Get(0))
	assert.Equal(t, "green", text.Get(1))
	assert.Equal(t, "red", text.Get(2))
}

// TestExportImport_SlicedArrayRoundTrips exercises a nonzero ArrowArray
// offset end to end: slicing before export must leave ExportToC writing
// a nonzero offset field, and ImportFromC must read that offset back and
// window its rebuilt array down to match, rather than importing the
// whole underlying buffer.
func TestExportImport_SlicedArrayRoundTrips(t *testing.T) {
	a := arrays.FromSliceInt([]int32{10, 20, 30, 40, 50})
	a.SetNull(3)
	sliced := NewArrayNumeric(NewNumericInt32(a)).Slice(2, 2)
	assert.Equal(t, 2, sliced.Offset())

	field := NewField("values", contracts.DType{ID: contracts.Int32}, true)
	fa := NewFieldArray(field, sliced)

	var cArr cdata.ArrowArray
	var cSchema cdata.ArrowSchema
	require.NoError(t, ExportToC(fa, &cArr, &cSchema))

	got, err := ImportFromC(&cArr, &cSchema)
	require.NoError(t, err)

	assert.Equal(t, 2, got.Data.Len())
	n, ok := got.Data.Numeric()
	require.True(t, ok)
	i32, ok := n.I32()
	require.True(t, ok)
	assert.Equal(t, int32(30), i32.Get(0))
	assert.True(t, i32.IsNull(1))
}

// A crafted foreign producer handing over non-monotonic offsets must be
// rejected with the typed import failure, not round-tripped silently.
func TestImportFromC_RejectsNonMonotonicOffsets(t *testing.T) {
	var cArr cdata.ArrowArray
	var cSchema cdata.ArrowSchema
	cdata.ExportSchema("u", "bad", nil, 0, nil, &cSchema)
	cdata.ExportArray(2, 0, 0,
		[][]byte{nil, int32SliceToBytes([]int32{0, 5, 3}), []byte("hello")}, nil, &cArr)

	_, err := ImportFromC(&cArr, &cSchema)
	require.Error(t, err)
	assert.ErrorIs(t, err, contracts.ErrNonMonotonicOffset)
}

func TestImportFromC_RejectsInvalidUTF8Values(t *testing.T) {
	var cArr cdata.ArrowArray
	var cSchema cdata.ArrowSchema
	cdata.ExportSchema("u", "bad", nil, 0, nil, &cSchema)
	cdata.ExportArray(1, 0, 0,
		[][]byte{nil, int32SliceToBytes([]int32{0, 2}), {0xff, 0xfe}}, nil, &cArr)

	_, err := ImportFromC(&cArr, &cSchema)
	require.Error(t, err)
	assert.ErrorIs(t, err, contracts.ErrInvalidUTF8)
}

// A foreign array whose schema claims non-nullable but whose data
// carries nulls fails the same field/array invariant NewFieldArray
// enforces in-process, surfaced as an error rather than a panic.
func TestImportFromC_RejectsNullsInNonNullableColumn(t *testing.T) {
	a := arrays.FromSliceInt([]int32{1, 2, 3})
	a.SetNull(0)
	fa := NewFieldArray(NewField("x", contracts.DType{ID: contracts.Int32}, true), NewArrayNumeric(NewNumericInt32(a)))

	var cArr cdata.ArrowArray
	var cSchema cdata.ArrowSchema
	require.NoError(t, exportFieldData(fa, &cArr))
	// schema exported with the nullable flag clear, contradicting the data
	cdata.ExportSchema("i", "x", nil, 0, nil, &cSchema)

	_, err := ImportFromC(&cArr, &cSchema)
	require.Error(t, err)
}
