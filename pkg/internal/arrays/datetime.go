package arrays

import (
	"github.com/minarrow-go/minarrow/pkg/contracts"
	"github.com/minarrow-go/minarrow/pkg/internal/bitmask"
	"github.com/minarrow-go/minarrow/pkg/internal/buffer"
)

// DatetimeArray is the concrete storage shared by every temporal DType
// (spec §3.3.3): Date32/Time32 use T=int32, Date64/Time64/Timestamp/
// Duration64 use T=int64, all storing a physical integer count of Unit
// since the type-specific epoch. offset/length carry a logical window
// over Values/Nulls so Slice shares buffers instead of copying them
// (spec §4.6, §9).
type DatetimeArray[T DatetimeStorage] struct {
	Values *buffer.Buffer[T]
	Nulls  *bitmask.Bitmask
	Unit   contracts.TimeUnit
	offset int
	length int
}

func NewDatetimeArray[T DatetimeStorage](unit contracts.TimeUnit) *DatetimeArray[T] {
	return &DatetimeArray[T]{Values: buffer.New[T](), Unit: unit}
}

// NewDatetimeArrayFrom builds a DatetimeArray over an already-constructed
// values/nulls buffer, e.g. when reconstructing from imported raw bytes.
func NewDatetimeArrayFrom[T DatetimeStorage](values *buffer.Buffer[T], nulls *bitmask.Bitmask, unit contracts.TimeUnit) *DatetimeArray[T] {
	return &DatetimeArray[T]{Values: values, Nulls: nulls, Unit: unit, length: values.Len()}
}

func (a *DatetimeArray[T]) Len() int { return a.length }

func (a *DatetimeArray[T]) Offset() int { return a.offset }

func (a *DatetimeArray[T]) NullCount() int {
	if a.Nulls == nil {
		return 0
	}
	return a.length - a.Nulls.CountOnesRange(a.offset, a.length)
}

func (a *DatetimeArray[T]) HasNulls() bool { return a.NullCount() > 0 }

func (a *DatetimeArray[T]) IsNull(i int) bool {
	if i < 0 || i >= a.length {
		panic("arrays: index out of bounds")
	}
	if a.Nulls == nil {
		return false
	}
	return !a.Nulls.Get(a.offset + i)
}

func (a *DatetimeArray[T]) NullMask() *bitmask.Bitmask { return a.Nulls }

func (a *DatetimeArray[T]) ensureMask() {
	if a.Nulls == nil {
		a.Nulls = bitmask.NewAllValid(a.Values.Len())
	}
}

func (a *DatetimeArray[T]) requireTail() {
	if a.offset+a.length != a.Values.Len() {
		panic("arrays: cannot push onto a windowed array that does not own its buffer's tail")
	}
}

func (a *DatetimeArray[T]) Push(v T) {
	a.requireTail()
	a.Values.Push(v)
	if a.Nulls != nil {
		a.Nulls.Push(true)
	}
	a.length++
}

func (a *DatetimeArray[T]) PushNull() {
	a.requireTail()
	a.ensureMask()
	var zero T
	a.Values.Push(zero)
	a.Nulls.Push(false)
	a.length++
}

func (a *DatetimeArray[T]) Get(i int) T {
	if i < 0 || i >= a.length {
		panic("arrays: index out of bounds")
	}
	return a.Values.Get(a.offset + i)
}

func (a *DatetimeArray[T]) Set(i int, v T) {
	if i < 0 || i >= a.length {
		panic("arrays: index out of bounds")
	}
	a.Values.Set(a.offset+i, v)
}

func (a *DatetimeArray[T]) SetNull(i int) {
	if i < 0 || i >= a.length {
		panic("arrays: index out of bounds")
	}
	a.ensureMask()
	a.Nulls.Set(a.offset+i, false)
}

// AddUnits returns a new DatetimeArray with every non-null value shifted
// by delta raw storage units, preserving nulls at their original
// positions. This is a deliberately simplified stand-in for the
// calendar-arithmetic helpers the distilled spec dropped — the original
// source (original_source/src/structs/variants/datetime/datetime_ops.rs)
// carries add_duration/add_days/add_months/add_years, each unit-converting
// and calendar-aware (month/leap-year clamping, overflow-to-null); AddUnits
// folds the underlying idea back in per SPEC_FULL.md §5 as a flat
// value+delta shift with no unit conversion or calendar awareness.
func (a *DatetimeArray[T]) AddUnits(delta T) *DatetimeArray[T] {
	out := NewDatetimeArray[T](a.Unit)
	out.Values = buffer.WithCapacity[T](a.Len())
	for i := 0; i < a.Len(); i++ {
		if a.IsNull(i) {
			out.PushNull()
			continue
		}
		out.Push(a.Get(i) + delta)
	}
	return out
}

// Slice returns a new DatetimeArray sharing this array's Values/Nulls
// storage and windowed to [offset, offset+n) of its own logical range —
// a metadata-only operation per spec §4.6/§9: no buffer is copied.
func (a *DatetimeArray[T]) Slice(offset, n int) *DatetimeArray[T] {
	if offset < 0 || n < 0 || offset+n > a.length {
		panic("arrays: slice window out of bounds")
	}
	return &DatetimeArray[T]{Values: a.Values, Nulls: a.Nulls, Unit: a.Unit, offset: a.offset + offset, length: n}
}
