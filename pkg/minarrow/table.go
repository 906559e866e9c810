package minarrow

import (
	"fmt"

	"github.com/minarrow-go/minarrow/pkg/contracts"
)

// Table is an ordered collection of equal-length FieldArray columns
// (spec §3.8), the same role arrow.Table/arrow.Record plays across the
// example pack's schema and query layers.
type Table struct {
	Name    string
	Columns []FieldArray
}

// NewTable builds a Table from columns, validating every column shares
// the same row count (spec §4.5 invariant). A mismatch returns
// contracts.ErrLengthMismatch rather than panicking, since table
// construction from externally-sourced columns is a normal failure
// mode, not a programmer precondition violation.
func NewTable(name string, columns []FieldArray) (*Table, error) {
	if len(columns) == 0 {
		return &Table{Name: name}, nil
	}
	n := columns[0].Len()
	for _, c := range columns[1:] {
		if c.Len() != n {
			return nil, fmt.Errorf("%w: column %q has %d rows, expected %d", contracts.ErrLengthMismatch, c.Field.Name, c.Len(), n)
		}
	}
	return &Table{Name: name, Columns: columns}, nil
}

// NumRows returns the table's row count, or 0 for a columnless table.
func (t *Table) NumRows() int {
	if len(t.Columns) == 0 {
		return 0
	}
	return t.Columns[0].Len()
}

// NumCols returns the number of columns.
func (t *Table) NumCols() int { return len(t.Columns) }

// C selects a column by name, the table's column-oriented accessor
// (spec §4.5), mirroring the .c()/.r() naming used in the original's
// Table API.
func (t *Table) C(name string) (FieldArray, error) {
	for _, c := range t.Columns {
		if c.Field.Name == name {
			return c, nil
		}
	}
	return FieldArray{}, fmt.Errorf("%w: %q", contracts.ErrColumnNotFound, name)
}

// ColumnAt selects a column by positional index.
func (t *Table) ColumnAt(i int) FieldArray { return t.Columns[i] }

// Select returns a view containing only the named columns, in the order
// given — the direct entry point for spec §4.6's `Table::c(column_names)`,
// without requiring the caller to build a whole-table TableView first.
// Composing it with a row window (view.Slice) is order-independent: see
// TableView.SelectColumns.
func (t *Table) Select(names []string) (TableView, error) {
	return NewTableView(t).SelectColumns(names)
}

// R returns row i as a slice of one Array-window-of-length-1 per column,
// the table's row-oriented accessor (spec §4.5). Each entry aliases its
// source column via Slice, so this is a cheap positional view, not a
// decoded/boxed row.
func (t *Table) R(i int) []Array {
	if i < 0 || i >= t.NumRows() {
		panic("minarrow: row index out of bounds")
	}
	row := make([]Array, len(t.Columns))
	for j, c := range t.Columns {
		row[j] = c.Data.Slice(i, 1)
	}
	return row
}

// Slice returns a new Table whose every column is windowed to
// [offset, offset+length), preserving column names/types/nullability.
func (t *Table) Slice(offset, length int) (*Table, error) {
	cols := make([]FieldArray, len(t.Columns))
	for i, c := range t.Columns {
		cols[i] = NewFieldArray(c.Field, c.Data.Slice(offset, length))
	}
	return NewTable(t.Name, cols)
}
