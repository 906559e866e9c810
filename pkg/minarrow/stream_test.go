package minarrow

import (
	"testing"

	"github.com/minarrow-go/minarrow/pkg/cdata"
	"github.com/minarrow-go/minarrow/pkg/contracts"
	"github.com/minarrow-go/minarrow/pkg/internal/arrays"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableStream_SingleBatchRoundTrips(t *testing.T) {
	ids := arrays.FromSliceInt([]int32{1, 2, 3})
	names, ok := arrays.FromSliceString[int32]([]string{"alice", "bob", "charlie"})
	require.True(t, ok)

	table, err := NewTable("people", []FieldArray{
		NewFieldArray(NewField("id", contracts.DType{ID: contracts.Int32}, false), NewArrayNumeric(NewNumericInt32(ids))),
		NewFieldArray(NewField("name", contracts.DType{ID: contracts.Utf8}, false), NewArrayText(NewTextUtf8(names))),
	})
	require.NoError(t, err)

	var stream cdata.ArrowArrayStream
	require.NoError(t, ExportTableToC(table, &stream))

	tables, err := ImportTablesFromC(&stream, "people")
	require.NoError(t, err)
	require.Len(t, tables, 1)

	got := tables[0]
	assert.Equal(t, 2, got.NumCols())
	assert.Equal(t, 3, got.NumRows())

	idCol, err := got.C("id")
	require.NoError(t, err)
	n, ok := idCol.Data.Numeric()
	require.True(t, ok)
	i32, ok := n.I32()
	require.True(t, ok)
	assert.Equal(t, int32(1), i32.Get(0))
	assert.Equal(t, int32(3), i32.Get(2))

	nameCol, err := got.C("name")
	require.NoError(t, err)
	text, ok := nameCol.Data.Text()
	require.True(t, ok)
	assert.Equal(t, "alice", text.Get(0))
	assert.Equal(t, "charlie", text.Get(2))

	// the importer released the stream; another release must be a no-op
	cdata.ReleaseStream(&stream)
}

func TestTableStream_NullableAndDictionaryColumns(t *testing.T) {
	scores := arrays.FromSliceInt([]int32{10, 20, 30})
	scores.SetNull(1)
	colors := arrays.NewCategoricalArray[uint32]()
	colors.Push("red")
	colors.Push("green")
	colors.Push("red")

	table, err := NewTable("readings", []FieldArray{
		NewFieldArray(NewField("score", contracts.DType{ID: contracts.Int32}, true), NewArrayNumeric(NewNumericInt32(scores))),
		NewFieldArray(NewField("color", contracts.DType{ID: contracts.DictionaryUint32}, false), NewArrayText(NewTextCategorical32(colors))),
	})
	require.NoError(t, err)

	var stream cdata.ArrowArrayStream
	require.NoError(t, ExportTableToC(table, &stream))

	tables, err := ImportTablesFromC(&stream, "readings")
	require.NoError(t, err)
	require.Len(t, tables, 1)
	got := tables[0]

	score, err := got.C("score")
	require.NoError(t, err)
	assert.True(t, score.Field.Nullable)
	assert.Equal(t, 1, score.Data.NullCount())
	assert.True(t, score.Data.IsNull(1))

	color, err := got.C("color")
	require.NoError(t, err)
	text, ok := color.Data.Text()
	require.True(t, ok)
	assert.Equal(t, KindCategoricalUint32, text.Kind)
	assert.Equal(t, "red", text.Get(0))
	assert.Equal(t, "green", text.Get(1))
	assert.Equal(t, "red", text.Get(2))
}

func TestTableStream_EmptyTableYieldsOneEmptyBatch(t *testing.T) {
	table, err := NewTable("empty", nil)
	require.NoError(t, err)

	var stream cdata.ArrowArrayStream
	require.NoError(t, ExportTableToC(table, &stream))

	tables, err := ImportTablesFromC(&stream, "empty")
	require.NoError(t, err)
	require.Len(t, tables, 1)
	assert.Equal(t, 0, tables[0].NumCols())
	assert.Equal(t, 0, tables[0].NumRows())
}

func TestTableStream_WindowedColumnsRoundTrip(t *testing.T) {
	ids := arrays.FromSliceInt([]int32{1, 2, 3, 4, 5})
	names, ok := arrays.FromSliceString[int32]([]string{"a", "b", "c", "d", "e"})
	require.True(t, ok)

	full, err := NewTable("window", []FieldArray{
		NewFieldArray(NewField("id", contracts.DType{ID: contracts.Int32}, false), NewArrayNumeric(NewNumericInt32(ids))),
		NewFieldArray(NewField("name", contracts.DType{ID: contracts.Utf8}, false), NewArrayText(NewTextUtf8(names))),
	})
	require.NoError(t, err)

	table, err := full.Slice(1, 3)
	require.NoError(t, err)

	var stream cdata.ArrowArrayStream
	require.NoError(t, ExportTableToC(table, &stream))

	tables, err := ImportTablesFromC(&stream, "window")
	require.NoError(t, err)
	require.Len(t, tables, 1)
	got := tables[0]
	assert.Equal(t, 3, got.NumRows())

	idCol, err := got.C("id")
	require.NoError(t, err)
	n, ok := idCol.Data.Numeric()
	require.True(t, ok)
	i32, ok := n.I32()
	require.True(t, ok)
	assert.Equal(t, int32(2), i32.Get(0))
	assert.Equal(t, int32(4), i32.Get(2))

	nameCol, err := got.C("name")
	require.NoError(t, err)
	text, ok := nameCol.Data.Text()
	require.True(t, ok)
	assert.Equal(t, "b", text.Get(0))
	assert.Equal(t, "d", text.Get(2))
}
