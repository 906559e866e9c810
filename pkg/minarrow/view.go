package minarrow

import (
	"fmt"

	"github.com/minarrow-go/minarrow/pkg/contracts"
	"github.com/minarrow-go/minarrow/pkg/internal/arrays"
)

// ArrayView is a zero-copy window over a parent Array: offset/length
// metadata only, no duplicated buffers (spec §4.6). Composing views
// (slicing a view) must add offsets rather than nesting wrapper layers,
// per spec §8.1's window-composition property.
type ArrayView struct {
	parent *Array
	offset int
	length int
}

// NewArrayView wraps the whole of a, equivalent to a no-op window.
func NewArrayView(a *Array) ArrayView {
	return ArrayView{parent: a, offset: 0, length: a.Len()}
}

// Len returns the view's logical length, not the parent's.
func (v ArrayView) Len() int { return v.length }

// Offset returns the view's offset into its parent.
func (v ArrayView) Offset() int { return v.offset }

// IsNull reports whether logical position i within the view is null.
func (v ArrayView) IsNull(i int) bool {
	if i < 0 || i >= v.length {
		panic("minarrow: view index out of bounds")
	}
	return v.parent.IsNull(v.offset + i)
}

// Slice returns a new view over [offset, offset+length) of this view's
// own logical range; composing views adds offsets into the same parent
// rather than nesting, so repeated slicing stays O(1) regardless of how
// many times a view has been re-windowed.
func (v ArrayView) Slice(offset, length int) ArrayView {
	if offset < 0 || length < 0 || offset+length > v.length {
		panic(contracts.ErrWindowOutOfBounds)
	}
	return ArrayView{parent: v.parent, offset: v.offset + offset, length: length}
}

// ToOwned materialises the view as an independent, owned Array by
// copying only the windowed region into fresh, compact buffers — the
// point at which the zero-copy guarantee is deliberately given up,
// supplemented from the original source's `to_owned()` per SPEC_FULL.md
// §5.
func (v ArrayView) ToOwned() Array {
	return ownedArrayCopy(v.parent.Slice(v.offset, v.length))
}

// pushCopy rebuilds src's logical window into dst element by element
// through the variant's own accessors, preserving null positions. The
// value type V cannot be inferred from the constraint alone, so callers
// name it explicitly.
func pushCopy[V any, A interface {
	Len() int
	IsNull(i int) bool
	Get(i int) V
	Push(v V)
	PushNull()
}](dst, src A) A {
	for i := 0; i < src.Len(); i++ {
		if src.IsNull(i) {
			dst.PushNull()
		} else {
			dst.Push(src.Get(i))
		}
	}
	return dst
}

// ownedArrayCopy copies an Array's window into fresh buffers of the same
// Kind, dropping any shared parent storage and carried offset.
func ownedArrayCopy(a Array) Array {
	switch a.Kind {
	case KindNumeric:
		return NewArrayNumeric(ownedNumericCopy(a.numeric))
	case KindText:
		return NewArrayText(ownedTextCopy(a.text))
	case KindTemporal:
		return NewArrayTemporal(ownedTemporalCopy(a.temporal))
	case KindBoolean:
		return NewArrayBoolean(pushCopy[bool](arrays.NewBooleanArray(0), a.boolean))
	case KindNull:
		return NewArrayNull(a.nullLen)
	default:
		panic("minarrow: invalid Array kind")
	}
}

func ownedNumericCopy(n NumericArray) NumericArray {
	switch n.Kind {
	case KindInt8:
		return NewNumericInt8(pushCopy[int8](arrays.NewIntegerArray[int8](0), n.i8))
	case KindInt16:
		return NewNumericInt16(pushCopy[int16](arrays.NewIntegerArray[int16](0), n.i16))
	case KindInt32:
		return NewNumericInt32(pushCopy[int32](arrays.NewIntegerArray[int32](0), n.i32))
	case KindInt64:
		return NewNumericInt64(pushCopy[int64](arrays.NewIntegerArray[int64](0), n.i64))
	case KindUint8:
		return NewNumericUint8(pushCopy[uint8](arrays.NewIntegerArray[uint8](0), n.u8))
	case KindUint16:
		return NewNumericUint16(pushCopy[uint16](arrays.NewIntegerArray[uint16](0), n.u16))
	case KindUint32:
		return NewNumericUint32(pushCopy[uint32](arrays.NewIntegerArray[uint32](0), n.u32))
	case KindUint64:
		return NewNumericUint64(pushCopy[uint64](arrays.NewIntegerArray[uint64](0), n.u64))
	case KindFloat32:
		return NewNumericFloat32(pushCopy[float32](arrays.NewFloatArray[float32](0), n.f32))
	case KindFloat64:
		return NewNumericFloat64(pushCopy[float64](arrays.NewFloatArray[float64](0), n.f64))
	default:
		panic("minarrow: invalid NumericArray kind")
	}
}

func ownedTextCopy(t TextArray) TextArray {
	switch t.Kind {
	case KindUtf8:
		return NewTextUtf8(pushCopy[string](arrays.NewStringArray[int32](), t.utf8))
	case KindLargeUtf8:
		return NewTextLargeUtf8(pushCopy[string](arrays.NewStringArray[int64](), t.large))
	case KindCategoricalUint8:
		return NewTextCategorical8(pushCopy[string](arrays.NewCategoricalArray[uint8](), t.cat8))
	case KindCategoricalUint16:
		return NewTextCategorical16(pushCopy[string](arrays.NewCategoricalArray[uint16](), t.cat16))
	case KindCategoricalUint32:
		return NewTextCategorical32(pushCopy[string](arrays.NewCategoricalArray[uint32](), t.cat32))
	case KindCategoricalUint64:
		return NewTextCategorical64(pushCopy[string](arrays.NewCategoricalArray[uint64](), t.cat64))
	default:
		panic("minarrow: invalid TextArray kind")
	}
}

func ownedTemporalCopy(t TemporalArray) TemporalArray {
	out := TemporalArray{Kind: t.Kind, Unit: t.Unit, TimeZone: t.TimeZone}
	if src, ok := t.I32(); ok {
		out.i32 = pushCopy[int32](arrays.NewDatetimeArray[int32](src.Unit), src)
	} else if src, ok := t.I64(); ok {
		out.i64 = pushCopy[int64](arrays.NewDatetimeArray[int64](src.Unit), src)
	}
	return out
}

// TableView is a zero-copy window over a parent Table: a row offset/length
// pair shared by every visible column, plus an optional column subset
// (spec §4.6). A nil indices slice means "every column of parent, in
// parent order" — the common no-selection path taken by NewTableView.
// indices lets SelectColumns and Slice compose in either order: selecting
// columns narrows indices, windowing rows narrows offset/length, and
// neither touches the other, so `.SelectColumns(...).Slice(...)` and
// `.Slice(...).SelectColumns(...)` reach the same view (spec §4.6's order-independence note).
type TableView struct {
	parent  *Table
	indices []int
	offset  int
	length  int
}

// NewTableView wraps the whole of t, equivalent to a no-op window.
func NewTableView(t *Table) TableView {
	return TableView{parent: t, offset: 0, length: t.NumRows()}
}

// Len returns the view's row count.
func (v TableView) Len() int { return v.length }

// Offset returns the view's offset into its parent.
func (v TableView) Offset() int { return v.offset }

// NumCols returns the number of columns visible through this view.
func (v TableView) NumCols() int {
	if v.indices != nil {
		return len(v.indices)
	}
	return v.parent.NumCols()
}

// Slice returns a new view over [offset, offset+length) of this view's
// own row range, preserving any column selection already applied.
func (v TableView) Slice(offset, length int) TableView {
	if offset < 0 || length < 0 || offset+length > v.length {
		panic("minarrow: table view slice window out of bounds")
	}
	return TableView{parent: v.parent, indices: v.indices, offset: v.offset + offset, length: length}
}

// SelectColumns narrows the view to only the named columns, in the order
// given (spec §4.6's `Table::c(column_names)`). On a duplicate name within
// the underlying table, the first match wins; a name absent from the
// table (or from an already-narrower selection) is a typed error rather
// than a panic, since column selection is ordinary data-shape validation,
// not a programmer precondition.
func (v TableView) SelectColumns(names []string) (TableView, error) {
	idx := make([]int, 0, len(names))
	for _, name := range names {
		i, err := v.columnIndex(name)
		if err != nil {
			return TableView{}, err
		}
		idx = append(idx, i)
	}
	return TableView{parent: v.parent, indices: idx, offset: v.offset, length: v.length}, nil
}

func (v TableView) columnIndex(name string) (int, error) {
	if v.indices == nil {
		for i, c := range v.parent.Columns {
			if c.Field.Name == name {
				return i, nil
			}
		}
		return 0, fmt.Errorf("%w: %q", contracts.ErrColumnNotFound, name)
	}
	for _, i := range v.indices {
		if v.parent.Columns[i].Field.Name == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", contracts.ErrColumnNotFound, name)
}

// Column returns an ArrayView over one named column, windowed to this
// TableView's own offset/length and restricted to its column selection
// if one has been applied.
func (v TableView) Column(name string) (ArrayView, error) {
	i, err := v.columnIndex(name)
	if err != nil {
		return ArrayView{}, err
	}
	fa := v.parent.Columns[i]
	return ArrayView{parent: &fa.Data, offset: v.offset, length: v.length}, nil
}

// visibleIndices returns the concrete column indices this view exposes,
// resolving the nil-means-everything convention into an explicit list.
func (v TableView) visibleIndices() []int {
	if v.indices != nil {
		return v.indices
	}
	idx := make([]int, len(v.parent.Columns))
	for i := range idx {
		idx[i] = i
	}
	return idx
}

// ToOwned materialises the view as an independent, owned Table: only the
// selected columns, each windowed to the selected row range, are copied
// into fresh buffers sharing nothing with the parent.
func (v TableView) ToOwned() (*Table, error) {
	indices := v.visibleIndices()
	cols := make([]FieldArray, len(indices))
	for j, i := range indices {
		c := v.parent.Columns[i]
		cols[j] = NewFieldArray(c.Field, ownedArrayCopy(c.Data.Slice(v.offset, v.length)))
	}
	return NewTable(v.parent.Name, cols)
}
