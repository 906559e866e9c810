package minarrow

import (
	"fmt"

	"github.com/minarrow-go/minarrow/pkg/cdata"
	"github.com/minarrow-go/minarrow/pkg/contracts"
)

// ExportTableToC exports a table as an Arrow record batch stream: the
// stream's schema is a struct-typed schema whose children are the
// table's column fields in order, and a single record batch carries
// every column, after which the stream reports exhaustion — a one-table
// export yields exactly one batch. The consumer drives the stream's
// callbacks and calls its release exactly once; the producer state stays
// alive until then.
func ExportTableToC(t *Table, out *cdata.ArrowArrayStream) error {
	// Fail on an unexportable column dtype here, while the caller can
	// still handle the error directly, instead of from inside a stream
	// callback where it only surfaces through get_last_error.
	for _, c := range t.Columns {
		if _, err := cdata.FormatForDType(c.Field.Type); err != nil {
			return fmt.Errorf("column %q: %w", c.Field.Name, err)
		}
	}

	name := t.Name
	cols := t.Columns
	rows := t.NumRows()
	delivered := false

	cdata.ExportStream(
		func(outSchema *cdata.ArrowSchema) error {
			children := make([]*cdata.ArrowSchema, len(cols))
			for i, c := range cols {
				children[i] = &cdata.ArrowSchema{}
				if err := exportFieldSchema(c, children[i]); err != nil {
					for _, ch := range children[:i] {
						cdata.ReleaseSchema(ch)
					}
					return err
				}
			}
			cdata.ExportStructSchema(name, children, outSchema)
			return nil
		},
		func(outArray *cdata.ArrowArray) (bool, error) {
			if delivered {
				return false, nil
			}
			delivered = true
			children := make([]*cdata.ArrowArray, len(cols))
			for i, c := range cols {
				children[i] = &cdata.ArrowArray{}
				if err := exportFieldData(c, children[i]); err != nil {
					for _, ch := range children[:i] {
						cdata.ReleaseArray(ch)
					}
					return false, err
				}
			}
			cdata.ExportStructArray(int64(rows), children, outArray)
			return true, nil
		},
		out,
	)
	return nil
}

// ImportTablesFromC drains a record batch stream produced by a foreign
// Arrow implementation, building one owned Table per batch (a
// single-table export round-trips to a one-element result). Every column
// buffer is copied into Go memory batch by batch; the stream, its schema
// and each batch are released by this function on every path, success or
// error, so the caller must not release the stream again.
func ImportTablesFromC(stream *cdata.ArrowArrayStream, name string) ([]*Table, error) {
	defer cdata.ReleaseStream(stream)

	var schema cdata.ArrowSchema
	if err := cdata.StreamGetSchema(stream, &schema); err != nil {
		return nil, err
	}
	defer cdata.ReleaseSchema(&schema)

	if format := schema.Format(); format != "+s" {
		return nil, fmt.Errorf("%w: record batch schema format %q", contracts.ErrUnsupportedFormat, format)
	}
	width := schema.NChildren()

	var tables []*Table
	for {
		var batch cdata.ArrowArray
		ok, err := cdata.StreamGetNext(stream, &batch)
		if err != nil {
			return nil, err
		}
		if !ok {
			return tables, nil
		}
		table, err := importBatch(&batch, &schema, width, name)
		cdata.ReleaseArray(&batch)
		if err != nil {
			return nil, err
		}
		tables = append(tables, table)
	}
}

// importBatch copies one struct-typed record batch into an owned Table,
// importing each child column against the matching schema child. The
// children are owned by the batch struct and are not released here; the
// caller releases the batch itself once this returns.
func importBatch(batch *cdata.ArrowArray, schema *cdata.ArrowSchema, width int, name string) (*Table, error) {
	if batch.NChildren() != width {
		return nil, fmt.Errorf("%w: batch has %d columns, schema has %d", contracts.ErrBufferMismatch, batch.NChildren(), width)
	}
	columns := make([]FieldArray, width)
	for i := 0; i < width; i++ {
		fa, err := importFieldArray(batch.ChildAt(i), schema.ChildAt(i))
		if err != nil {
			return nil, err
		}
		columns[i] = fa
	}
	return NewTable(name, columns)
}
