// Package buffer implements the 64-byte aligned growable vector that backs
// every typed inner array in pkg/internal/arrays (spec §3.1/§4.1). The Go
// standard library has no aligned-allocation primitive, and the one real
// precedent in the example pack (github.com/apache/arrow/go/v17/arrow/memory)
// buries its aligned allocator behind an unexported, non-reusable internal
// mechanism — wiring the whole of that module here would also subsume the
// very algebra this repository exists to implement (see spec §1, DESIGN.md).
// So this package reaches for unsafe directly: it is the one place in the
// module where no third-party library could serve, and the justification
// is recorded in DESIGN.md.
package buffer

import (
	"unsafe"
)

// Alignment is the mandatory base alignment for any non-empty Buffer
// allocation (spec §3.1 invariant, spec §8.1 property 6).
const Alignment = 64

// Buffer is an ordered, growable sequence of values of a fixed primitive
// type T, whose backing allocation's base address is always a multiple of
// Alignment bytes. It plays the role Vec64<T> plays in the original source
// (original_source/src/structs/buffer.rs): unlike that type, this Buffer
// has no shared/zero-copy-from-foreign-memory backend, since the windowing
// story in this spec (spec §4.6) is handled purely with offset/length
// metadata over an owned Buffer, never a borrowed external one.
type Buffer[T any] struct {
	raw   []byte // full backing allocation, unaligned start
	data  []T    // aligned view over raw; len tracks count, cap is the capacity
	count int    // number of live elements
}

// New returns an empty, aligned Buffer. Per spec §4.1, an empty buffer may
// have a dangling-but-aligned sentinel; here it simply holds a nil typed
// slice until the first Push/Resize forces an allocation.
func New[T any]() *Buffer[T] {
	return &Buffer[T]{}
}

// WithCapacity returns an empty Buffer whose backing storage already holds
// room for n elements.
func WithCapacity[T any](n int) *Buffer[T] {
	b := &Buffer[T]{}
	if n > 0 {
		b.reserve(n)
	}
	return b
}

// FromSlice copies vs into a freshly aligned Buffer.
func FromSlice[T any](vs []T) *Buffer[T] {
	b := WithCapacity[T](len(vs))
	b.ExtendFromSlice(vs)
	return b
}

func elemSize[T any]() uintptr {
	var zero T
	return unsafe.Sizeof(zero)
}

// reserve grows the backing allocation so at least n elements fit, always
// producing a new 64-byte-aligned base address and copying live elements
// across. Growth policy is doubling with a floor of 1, per spec §4.1.
func (b *Buffer[T]) reserve(n int) {
	if n <= cap(b.data) {
		return
	}
	newCap := capAfterGrowth(cap(b.data), n)
	size := elemSize[T]()
	byteLen := uintptr(newCap) * size
	raw := make([]byte, byteLen+Alignment-1)

	base := uintptr(unsafe.Pointer(&raw[0]))
	misalign := base % Alignment
	var pad uintptr
	if misalign != 0 {
		pad = Alignment - misalign
	}
	aligned := raw[pad:]

	var newData []T
	if byteLen > 0 {
		newData = unsafe.Slice((*T)(unsafe.Pointer(&aligned[0])), newCap)
	}
	if b.count > 0 {
		copy(newData, b.data[:b.count])
	}

	b.raw = raw
	b.data = newData[:0:newCap]
}

func capAfterGrowth(oldCap, need int) int {
	newCap := oldCap
	if newCap == 0 {
		newCap = 1
	}
	for newCap < need {
		newCap *= 2
	}
	return newCap
}

// Push appends v, growing the backing allocation if necessary.
func (b *Buffer[T]) Push(v T) {
	if b.count == cap(b.data) {
		b.reserve(b.count + 1)
	}
	b.data = b.data[:b.count+1]
	b.data[b.count] = v
	b.count++
}

// ExtendFromSlice appends every element of vs.
func (b *Buffer[T]) ExtendFromSlice(vs []T) {
	if len(vs) == 0 {
		return
	}
	if b.count+len(vs) > cap(b.data) {
		b.reserve(b.count + len(vs))
	}
	b.data = b.data[:b.count+len(vs)]
	copy(b.data[b.count:], vs)
	b.count += len(vs)
}

// Len returns the number of live elements.
func (b *Buffer[T]) Len() int { return b.count }

// Capacity returns the number of elements the current allocation can hold
// without a further reallocation.
func (b *Buffer[T]) Capacity() int { return cap(b.data) }

// Get returns the element at index i. Out-of-bounds access is a fatal
// precondition violation per spec §4.1.
func (b *Buffer[T]) Get(i int) T {
	if i < 0 || i >= b.count {
		panic("buffer: index out of bounds")
	}
	return b.data[i]
}

// Set overwrites the element at index i.
func (b *Buffer[T]) Set(i int, v T) {
	if i < 0 || i >= b.count {
		panic("buffer: index out of bounds")
	}
	b.data[i] = v
}

// AsSlice exposes the live elements as a slice. The returned slice aliases
// the Buffer's storage and is only valid until the next mutating call.
func (b *Buffer[T]) AsSlice() []T { return b.data[:b.count] }

// AsPtr exposes the base pointer of the live elements, or nil if empty.
// Callers exporting across the C Data Interface (pkg/cdata) use this to
// populate the ArrowArray values buffer pointer.
func (b *Buffer[T]) AsPtr() unsafe.Pointer {
	if b.count == 0 {
		return nil
	}
	return unsafe.Pointer(&b.data[0])
}

// Resize grows or shrinks the live length to n, filling any newly exposed
// elements with fill.
func (b *Buffer[T]) Resize(n int, fill T) {
	if n < 0 {
		panic("buffer: negative resize length")
	}
	if n <= b.count {
		b.data = b.data[:n]
		b.count = n
		return
	}
	b.reserve(n)
	b.data = b.data[:n]
	for i := b.count; i < n; i++ {
		b.data[i] = fill
	}
	b.count = n
}

// Truncate shrinks the live length to n, which must be <= Len().
func (b *Buffer[T]) Truncate(n int) {
	if n < 0 || n > b.count {
		panic("buffer: truncate length out of bounds")
	}
	b.data = b.data[:n]
	b.count = n
}

// Clone returns a deep, independently-aligned copy.
func (b *Buffer[T]) Clone() *Buffer[T] {
	out := WithCapacity[T](b.count)
	out.ExtendFromSlice(b.AsSlice())
	return out
}

// BaseAddr returns the numeric base address of the live storage, purely
// for alignment assertions in tests (spec §8.1 property 6).
func (b *Buffer[T]) BaseAddr() uintptr {
	if b.count == 0 {
		return 0
	}
	return uintptr(b.AsPtr())
}
