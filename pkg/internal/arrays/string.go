package arrays

import (
	"unicode/utf8"

	"github.com/minarrow-go/minarrow/pkg/internal/bitmask"
	"github.com/minarrow-go/minarrow/pkg/internal/buffer"
)

// StringArray is the concrete storage for Utf8 (O=int32) and LargeUtf8
// (O=int64) (spec §3.3.2): a values buffer of concatenated UTF-8 bytes
// plus a monotonically non-decreasing offsets buffer of length Len()+1,
// the same layout used across the example pack's apache-arrow cdata
// bridge for variable-width binary/string buffers. offset/length carry a
// logical window over Offsets/Data so Slice can share both buffers
// unrebased instead of copying them (spec §4.6, §9): position i's bytes
// are always Data[Offsets[offset+i]:Offsets[offset+i+1]].
type StringArray[O Offset] struct {
	Offsets *buffer.Buffer[O]
	Data    *buffer.Buffer[byte]
	Nulls   *bitmask.Bitmask
	offset  int
	length  int
}

// NewStringArray returns an empty StringArray with its offsets buffer
// seeded with the mandatory leading zero.
func NewStringArray[O Offset]() *StringArray[O] {
	offsets := buffer.WithCapacity[O](1)
	offsets.Push(0)
	return &StringArray[O]{
		Offsets: offsets,
		Data:    buffer.New[byte](),
	}
}

// FromSliceString builds a non-nullable StringArray from vs, validating
// each element is well-formed UTF-8 (spec §4.2 invariant; violations
// return contracts.ErrInvalidUTF8 one layer up where the error type is
// visible, so this package returns a plain bool here).
func FromSliceString[O Offset](vs []string) (*StringArray[O], bool) {
	a := NewStringArray[O]()
	for _, v := range vs {
		if !utf8.ValidString(v) {
			return nil, false
		}
		a.Push(v)
	}
	return a, true
}

// NewStringArrayFrom builds a StringArray over already-constructed
// offsets/data/nulls buffers, e.g. when reconstructing from imported raw
// bytes (spec §4.7.2) from a package that can only set exported fields.
func NewStringArrayFrom[O Offset](offsets *buffer.Buffer[O], data *buffer.Buffer[byte], nulls *bitmask.Bitmask) *StringArray[O] {
	return &StringArray[O]{Offsets: offsets, Data: data, Nulls: nulls, length: offsets.Len() - 1}
}

func (a *StringArray[O]) Len() int { return a.length }

func (a *StringArray[O]) Offset() int { return a.offset }

func (a *StringArray[O]) NullCount() int {
	if a.Nulls == nil {
		return 0
	}
	return a.length - a.Nulls.CountOnesRange(a.offset, a.length)
}

func (a *StringArray[O]) HasNulls() bool { return a.NullCount() > 0 }

func (a *StringArray[O]) IsNull(i int) bool {
	if i < 0 || i >= a.length {
		panic("arrays: index out of bounds")
	}
	if a.Nulls == nil {
		return false
	}
	return !a.Nulls.Get(a.offset + i)
}

func (a *StringArray[O]) NullMask() *bitmask.Bitmask { return a.Nulls }

func (a *StringArray[O]) ensureMask() {
	if a.Nulls == nil {
		a.Nulls = bitmask.NewAllValid(a.Offsets.Len() - 1)
	}
}

// requireTail panics unless this array owns the live tail of its shared
// Offsets/Data buffers, the only configuration in which appending is
// well-defined.
func (a *StringArray[O]) requireTail() {
	if a.offset+a.length != a.Offsets.Len()-1 {
		panic("arrays: cannot push onto a windowed array that does not own its buffer's tail")
	}
}

// Push appends a non-null string. Caller is responsible for UTF-8
// validity at the boundary where errors are surfaced (pkg/minarrow).
func (a *StringArray[O]) Push(v string) {
	a.requireTail()
	a.Data.ExtendFromSlice([]byte(v))
	a.Offsets.Push(O(a.Data.Len()))
	if a.Nulls != nil {
		a.Nulls.Push(true)
	}
	a.length++
}

// PushNull appends a null position with an empty string payload; per
// Arrow convention the offsets simply do not advance.
func (a *StringArray[O]) PushNull() {
	a.requireTail()
	a.ensureMask()
	a.Offsets.Push(O(a.Data.Len()))
	a.Nulls.Push(false)
	a.length++
}

// Get returns the string at i.
func (a *StringArray[O]) Get(i int) string {
	if i < 0 || i >= a.length {
		panic("arrays: index out of bounds")
	}
	start := a.Offsets.Get(a.offset + i)
	end := a.Offsets.Get(a.offset + i + 1)
	return string(a.Data.AsSlice()[start:end])
}

// Set rewrites the value at i. Values are variable-width, so unless the
// replacement has the old value's exact byte length the data bytes after
// it shift and every subsequent offset moves by the delta — an O(n)
// splice, not the O(1) store fixed-width arrays get. Like Push, this is
// only well-defined on an array that owns the live tail of its shared
// buffers: a window mid-buffer would shift a sibling window's bytes.
// Caller is responsible for UTF-8 validity at the boundary where errors
// are surfaced, same as Push.
func (a *StringArray[O]) Set(i int, v string) {
	if i < 0 || i >= a.length {
		panic("arrays: index out of bounds")
	}
	a.requireTail()
	start := int(a.Offsets.Get(a.offset + i))
	end := int(a.Offsets.Get(a.offset + i + 1))
	nb := []byte(v)
	delta := len(nb) - (end - start)

	if delta == 0 {
		copy(a.Data.AsSlice()[start:end], nb)
		return
	}
	tail := make([]byte, a.Data.Len()-end)
	copy(tail, a.Data.AsSlice()[end:])
	a.Data.Truncate(start)
	a.Data.ExtendFromSlice(nb)
	a.Data.ExtendFromSlice(tail)
	for j := a.offset + i + 1; j <= a.offset+a.length; j++ {
		a.Offsets.Set(j, a.Offsets.Get(j)+O(delta))
	}
}

func (a *StringArray[O]) SetNull(i int) {
	if i < 0 || i >= a.length {
		panic("arrays: index out of bounds")
	}
	a.ensureMask()
	a.Nulls.Set(a.offset+i, false)
}

// Slice returns a new StringArray sharing this array's Offsets/Data/Nulls
// storage, windowed to [offset, offset+n) of its own logical range — a
// metadata-only operation per spec §4.6/§9. Offsets are not rebased: a
// shared, unrebased offsets buffer already addresses the right bytes via
// Data[Offsets[offset+i]:Offsets[offset+i+1]], exactly as real variable-
// width Arrow slicing works.
func (a *StringArray[O]) Slice(offset, n int) *StringArray[O] {
	if offset < 0 || n < 0 || offset+n > a.length {
		panic("arrays: slice window out of bounds")
	}
	return &StringArray[O]{Offsets: a.Offsets, Data: a.Data, Nulls: a.Nulls, offset: a.offset + offset, length: n}
}
