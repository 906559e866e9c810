package arrays

import (
	"github.com/minarrow-go/minarrow/pkg/internal/bitmask"
	"github.com/minarrow-go/minarrow/pkg/internal/buffer"
)

// IntegerArray is the concrete storage for every fixed-width integer
// DType (spec §3.3.1): a values buffer plus an optional validity mask.
// A nil Nulls means "no nulls possible", mirroring the original's
// Option<Bitmask> rather than always allocating an all-valid mask.
// offset/length carry a logical window over Values/Nulls so that Slice
// can share the parent's buffers instead of copying them (spec §4.6, §9).
type IntegerArray[T Integer] struct {
	Values *buffer.Buffer[T]
	Nulls  *bitmask.Bitmask
	offset int
	length int
}

// NewIntegerArray builds an IntegerArray with capacity for n values and
// no validity mask (i.e. non-nullable until PushNull is first called).
func NewIntegerArray[T Integer](n int) *IntegerArray[T] {
	return &IntegerArray[T]{Values: buffer.WithCapacity[T](n)}
}

// FromSliceInt builds a non-nullable IntegerArray from vs.
func FromSliceInt[T Integer](vs []T) *IntegerArray[T] {
	return &IntegerArray[T]{Values: buffer.FromSlice(vs), length: len(vs)}
}

// NewIntegerArrayFrom builds an IntegerArray over already-constructed
// values/nulls buffers, e.g. when reconstructing an array from raw
// imported bytes (spec §4.7.2) from a package that can only set this
// type's exported fields.
func NewIntegerArrayFrom[T Integer](values *buffer.Buffer[T], nulls *bitmask.Bitmask) *IntegerArray[T] {
	return &IntegerArray[T]{Values: values, Nulls: nulls, length: values.Len()}
}

// Len returns the number of logical elements this window exposes.
func (a *IntegerArray[T]) Len() int { return a.length }

// Offset returns the element offset this window carries into Values/Nulls.
func (a *IntegerArray[T]) Offset() int { return a.offset }

// NullCount returns the number of null positions within this window.
func (a *IntegerArray[T]) NullCount() int {
	if a.Nulls == nil {
		return 0
	}
	return a.length - a.Nulls.CountOnesRange(a.offset, a.length)
}

// HasNulls reports whether a validity mask is present and any bit is clear.
func (a *IntegerArray[T]) HasNulls() bool { return a.NullCount() > 0 }

// IsNull reports whether position i is null.
func (a *IntegerArray[T]) IsNull(i int) bool {
	if i < 0 || i >= a.length {
		panic("arrays: index out of bounds")
	}
	if a.Nulls == nil {
		return false
	}
	return !a.Nulls.Get(a.offset + i)
}

// NullMask exposes the validity mask, or nil if the array carries none.
func (a *IntegerArray[T]) NullMask() *bitmask.Bitmask { return a.Nulls }

// ensureMask lazily allocates an all-valid mask sized to the current
// values length, used the first time a null is pushed or set.
func (a *IntegerArray[T]) ensureMask() {
	if a.Nulls == nil {
		a.Nulls = bitmask.NewAllValid(a.Values.Len())
	}
}

// requireTail panics unless this array owns the live tail of its shared
// Values buffer. Push always appends at the buffer's physical end, so
// appending through a window that ends short of that point would write
// past the window rather than extending it.
func (a *IntegerArray[T]) requireTail() {
	if a.offset+a.length != a.Values.Len() {
		panic("arrays: cannot push onto a windowed array that does not own its buffer's tail")
	}
}

// Push appends a non-null value.
func (a *IntegerArray[T]) Push(v T) {
	a.requireTail()
	a.Values.Push(v)
	if a.Nulls != nil {
		a.Nulls.Push(true)
	}
	a.length++
}

// PushNull appends a null position; the underlying value slot is written
// as the zero value, matching the Arrow convention that null slots carry
// unspecified-but-present storage.
func (a *IntegerArray[T]) PushNull() {
	a.requireTail()
	a.ensureMask()
	var zero T
	a.Values.Push(zero)
	a.Nulls.Push(false)
	a.length++
}

// Get returns the value at i. Callers must check IsNull first; this
// method does not itself distinguish a null zero value from a valid one.
func (a *IntegerArray[T]) Get(i int) T {
	if i < 0 || i >= a.length {
		panic("arrays: index out of bounds")
	}
	return a.Values.Get(a.offset + i)
}

// Set overwrites the value at i without affecting its validity.
func (a *IntegerArray[T]) Set(i int, v T) {
	if i < 0 || i >= a.length {
		panic("arrays: index out of bounds")
	}
	a.Values.Set(a.offset+i, v)
}

// SetNull marks position i as null.
func (a *IntegerArray[T]) SetNull(i int) {
	if i < 0 || i >= a.length {
		panic("arrays: index out of bounds")
	}
	a.ensureMask()
	a.Nulls.Set(a.offset+i, false)
}

// Slice returns a new IntegerArray sharing this array's Values/Nulls
// storage and windowed to [offset, offset+n) of its own logical range —
// a metadata-only operation per spec §4.6/§9: no buffer is copied.
// Materialising an independent copy is ToOwned's job, one layer up.
func (a *IntegerArray[T]) Slice(offset, n int) *IntegerArray[T] {
	if offset < 0 || n < 0 || offset+n > a.length {
		panic("arrays: slice window out of bounds")
	}
	return &IntegerArray[T]{Values: a.Values, Nulls: a.Nulls, offset: a.offset + offset, length: n}
}
