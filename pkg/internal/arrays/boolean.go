package arrays

import "github.com/minarrow-go/minarrow/pkg/internal/bitmask"

// BooleanArray is the concrete storage for the Boolean DType (spec
// §3.3.1): unlike every other variant its values themselves are a
// bit-packed Bitmask, not a typed buffer.Buffer, since a boolean value
// and a boolean validity flag have the same physical representation.
// offset/length carry a logical window over Values/Nulls so Slice shares
// the parent's bitmasks instead of copying them (spec §4.6, §9).
type BooleanArray struct {
	Values *bitmask.Bitmask
	Nulls  *bitmask.Bitmask
	offset int
	length int
}

// NewBooleanArray returns an empty BooleanArray. n is accepted for
// symmetry with the other NewXxxArray constructors but ignored, since
// Bitmask has no capacity-only reservation distinct from its length.
func NewBooleanArray(n int) *BooleanArray {
	return &BooleanArray{Values: bitmask.NewZeroed(0)}
}

func FromSliceBool(vs []bool) *BooleanArray {
	a := NewBooleanArray(0)
	for _, v := range vs {
		a.Push(v)
	}
	return a
}

// NewBooleanArrayFrom builds a BooleanArray over already-constructed
// values/nulls bitmasks, e.g. when reconstructing from imported raw bytes.
func NewBooleanArrayFrom(values *bitmask.Bitmask, nulls *bitmask.Bitmask) *BooleanArray {
	return &BooleanArray{Values: values, Nulls: nulls, length: values.Len()}
}

func (a *BooleanArray) Len() int { return a.length }

func (a *BooleanArray) Offset() int { return a.offset }

func (a *BooleanArray) NullCount() int {
	if a.Nulls == nil {
		return 0
	}
	return a.length - a.Nulls.CountOnesRange(a.offset, a.length)
}

func (a *BooleanArray) HasNulls() bool { return a.NullCount() > 0 }

func (a *BooleanArray) IsNull(i int) bool {
	if i < 0 || i >= a.length {
		panic("arrays: index out of bounds")
	}
	if a.Nulls == nil {
		return false
	}
	return !a.Nulls.Get(a.offset + i)
}

func (a *BooleanArray) NullMask() *bitmask.Bitmask { return a.Nulls }

func (a *BooleanArray) ensureMask() {
	if a.Nulls == nil {
		a.Nulls = bitmask.NewAllValid(a.Values.Len())
	}
}

func (a *BooleanArray) requireTail() {
	if a.offset+a.length != a.Values.Len() {
		panic("arrays: cannot push onto a windowed array that does not own its buffer's tail")
	}
}

func (a *BooleanArray) Push(v bool) {
	a.requireTail()
	a.Values.Push(v)
	if a.Nulls != nil {
		a.Nulls.Push(true)
	}
	a.length++
}

func (a *BooleanArray) PushNull() {
	a.requireTail()
	a.ensureMask()
	a.Values.Push(false)
	a.Nulls.Push(false)
	a.length++
}

func (a *BooleanArray) Get(i int) bool {
	if i < 0 || i >= a.length {
		panic("arrays: index out of bounds")
	}
	return a.Values.Get(a.offset + i)
}

func (a *BooleanArray) Set(i int, v bool) {
	if i < 0 || i >= a.length {
		panic("arrays: index out of bounds")
	}
	a.Values.Set(a.offset+i, v)
}

func (a *BooleanArray) SetNull(i int) {
	if i < 0 || i >= a.length {
		panic("arrays: index out of bounds")
	}
	a.ensureMask()
	a.Nulls.Set(a.offset+i, false)
}

// Slice returns a new BooleanArray sharing this array's Values/Nulls
// bitmasks and windowed to [offset, offset+n) of its own logical range —
// a metadata-only operation per spec §4.6/§9: no bitmask is copied.
func (a *BooleanArray) Slice(offset, n int) *BooleanArray {
	if offset < 0 || n < 0 || offset+n > a.length {
		panic("arrays: slice window out of bounds")
	}
	return &BooleanArray{Values: a.Values, Nulls: a.Nulls, offset: a.offset + offset, length: n}
}
