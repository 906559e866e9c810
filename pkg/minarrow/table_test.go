package minarrow

import (
	"testing"

	"github.com/minarrow-go/minarrow/pkg/contracts"
	"github.com/minarrow-go/minarrow/pkg/internal/arrays"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intColumn(name string, vs []int32) FieldArray {
	field := NewField(name, contracts.DType{ID: contracts.Int32}, false)
	data := NewArrayNumeric(NewNumericInt32(arrays.FromSliceInt(vs)))
	return NewFieldArray(field, data)
}

func TestNewTable_RejectsMismatchedColumnLengths(t *testing.T) {
	cols := []FieldArray{
		intColumn("a", []int32{1, 2, 3}),
		intColumn("b", []int32{1, 2}),
	}
	_, err := NewTable("t", cols)
	assert.ErrorIs(t, err, contracts.ErrLengthMismatch)
}

func TestTable_CAndColumnAt(t *testing.T) {
	cols := []FieldArray{
		intColumn("a", []int32{1, 2, 3}),
		intColumn("b", []int32{4, 5, 6}),
	}
	tbl, err := NewTable("t", cols)
	require.NoError(t, err)
	assert.Equal(t, 3, tbl.NumRows())
	assert.Equal(t, 2, tbl.NumCols())

	col, err := tbl.C("b")
	require.NoError(t, err)
	assert.Equal(t, "b", col.Field.Name)

	_, err = tbl.C("missing")
	assert.ErrorIs(t, err, contracts.ErrColumnNotFound)

	assert.Equal(t, "a", tbl.ColumnAt(0).Field.Name)
}

func TestTable_RReturnsOneRowPerColumn(t *testing.T) {
	cols := []FieldArray{
		intColumn("a", []int32{1, 2, 3}),
		intColumn("b", []int32{4, 5, 6}),
	}
	tbl, err := NewTable("t", cols)
	require.NoError(t, err)

	row := tbl.R(1)
	require.Len(t, row, 2)
	n0, _ := row[0].Numeric()
	i0, _ := n0.I32()
	assert.Equal(t, int32(2), i0.Get(0))
	n1, _ := row[1].Numeric()
	i1, _ := n1.I32()
	assert.Equal(t, int32(5), i1.Get(0))
}

func textColumn(name string, vs []string) FieldArray {
	field := NewField(name, contracts.DType{ID: contracts.Utf8}, false)
	strs, _ := arrays.FromSliceString[int32](vs)
	data := NewArrayText(NewTextUtf8(strs))
	return NewFieldArray(field, data)
}

func TestTable_ColumnSelectThenRowWindowMaterializesSubset(t *testing.T) {
	cols := []FieldArray{
		intColumn("id", []int32{1, 2, 3}),
		textColumn("name", []string{"alice", "bob", "charlie"}),
	}
	tbl, err := NewTable("people", cols)
	require.NoError(t, err)

	nameOnly, err := NewTable("people", []FieldArray{mustColumn(t, tbl, "name")})
	require.NoError(t, err)
	sub, err := nameOnly.Slice(0, 2)
	require.NoError(t, err)

	assert.Equal(t, 1, sub.NumCols())
	assert.Equal(t, 2, sub.NumRows())
	text, ok := sub.ColumnAt(0).Data.Text()
	require.True(t, ok)
	assert.Equal(t, "alice", text.Get(0))
	assert.Equal(t, "bob", text.Get(1))
}

func mustColumn(t *testing.T, tbl *Table, name string) FieldArray {
	t.Helper()
	fa, err := tbl.C(name)
	require.NoError(t, err)
	return fa
}

func TestTable_SliceWindowsEveryColumn(t *testing.T) {
	cols := []FieldArray{
		intColumn("a", []int32{1, 2, 3, 4}),
		intColumn("b", []int32{5, 6, 7, 8}),
	}
	tbl, err := NewTable("t", cols)
	require.NoError(t, err)

	sub, err := tbl.Slice(1, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, sub.NumRows())
	col, _ := sub.C("a")
	n, _ := col.Data.Numeric()
	i32, _ := n.I32()
	assert.Equal(t, int32(2), i32.Get(0))
	assert.Equal(t, int32(3), i32.Get(1))
}
