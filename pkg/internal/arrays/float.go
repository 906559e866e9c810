package arrays

import (
	"github.com/minarrow-go/minarrow/pkg/internal/bitmask"
	"github.com/minarrow-go/minarrow/pkg/internal/buffer"
)

// FloatArray is the concrete storage for Float32/Float64 (spec §3.3.1),
// structurally identical to IntegerArray but kept as a distinct type so
// the NumericArray union in pkg/minarrow can branch on a single Kind tag
// without a runtime type assertion on the storage width. offset/length
// carry a logical window over Values/Nulls, the same scheme IntegerArray
// uses, so Slice shares buffers instead of copying them (spec §4.6, §9).
type FloatArray[T Float] struct {
	Values *buffer.Buffer[T]
	Nulls  *bitmask.Bitmask
	offset int
	length int
}

func NewFloatArray[T Float](n int) *FloatArray[T] {
	return &FloatArray[T]{Values: buffer.WithCapacity[T](n)}
}

func FromSliceFloat[T Float](vs []T) *FloatArray[T] {
	return &FloatArray[T]{Values: buffer.FromSlice(vs), length: len(vs)}
}

// NewFloatArrayFrom builds a FloatArray over already-constructed
// values/nulls buffers, e.g. when reconstructing from imported raw bytes.
func NewFloatArrayFrom[T Float](values *buffer.Buffer[T], nulls *bitmask.Bitmask) *FloatArray[T] {
	return &FloatArray[T]{Values: values, Nulls: nulls, length: values.Len()}
}

func (a *FloatArray[T]) Len() int { return a.length }

func (a *FloatArray[T]) Offset() int { return a.offset }

func (a *FloatArray[T]) NullCount() int {
	if a.Nulls == nil {
		return 0
	}
	return a.length - a.Nulls.CountOnesRange(a.offset, a.length)
}

func (a *FloatArray[T]) HasNulls() bool { return a.NullCount() > 0 }

func (a *FloatArray[T]) IsNull(i int) bool {
	if i < 0 || i >= a.length {
		panic("arrays: index out of bounds")
	}
	if a.Nulls == nil {
		return false
	}
	return !a.Nulls.Get(a.offset + i)
}

func (a *FloatArray[T]) NullMask() *bitmask.Bitmask { return a.Nulls }

func (a *FloatArray[T]) ensureMask() {
	if a.Nulls == nil {
		a.Nulls = bitmask.NewAllValid(a.Values.Len())
	}
}

func (a *FloatArray[T]) requireTail() {
	if a.offset+a.length != a.Values.Len() {
		panic("arrays: cannot push onto a windowed array that does not own its buffer's tail")
	}
}

func (a *FloatArray[T]) Push(v T) {
	a.requireTail()
	a.Values.Push(v)
	if a.Nulls != nil {
		a.Nulls.Push(true)
	}
	a.length++
}

func (a *FloatArray[T]) PushNull() {
	a.requireTail()
	a.ensureMask()
	var zero T
	a.Values.Push(zero)
	a.Nulls.Push(false)
	a.length++
}

func (a *FloatArray[T]) Get(i int) T {
	if i < 0 || i >= a.length {
		panic("arrays: index out of bounds")
	}
	return a.Values.Get(a.offset + i)
}

func (a *FloatArray[T]) Set(i int, v T) {
	if i < 0 || i >= a.length {
		panic("arrays: index out of bounds")
	}
	a.Values.Set(a.offset+i, v)
}

func (a *FloatArray[T]) SetNull(i int) {
	if i < 0 || i >= a.length {
		panic("arrays: index out of bounds")
	}
	a.ensureMask()
	a.Nulls.Set(a.offset+i, false)
}

// Slice returns a new FloatArray sharing this array's Values/Nulls storage
// and windowed to [offset, offset+n) of its own logical range — a
// metadata-only operation per spec §4.6/§9: no buffer is copied.
func (a *FloatArray[T]) Slice(offset, n int) *FloatArray[T] {
	if offset < 0 || n < 0 || offset+n > a.length {
		panic("arrays: slice window out of bounds")
	}
	return &FloatArray[T]{Values: a.Values, Nulls: a.Nulls, offset: a.offset + offset, length: n}
}
