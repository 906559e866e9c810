package cdata

/*
#include "abi.h"
*/
import "C"

import (
	"fmt"
	"unsafe"

	"github.com/minarrow-go/minarrow/pkg/contracts"
)

// ImportedSchema is the Go-owned, already-copied result of reading a
// foreign ArrowSchema: every string has been copied out of C memory, so
// the caller may call ReleaseSchema on the original struct immediately
// afterward without invalidating this value.
type ImportedSchema struct {
	Format     string
	Name       string
	Metadata   []byte
	Flags      int64
	Dictionary *ImportedSchema
}

// ImportSchema reads an ArrowSchema, copying its C strings into Go
// memory, and recursing into the dictionary child if present. Nested
// list/struct children are rejected: this module has no representation
// for them (spec §1 Non-goals).
func ImportSchema(s *ArrowSchema) (ImportedSchema, error) {
	cs := cSchema(s)
	if cs.release == nil {
		return ImportedSchema{}, contracts.ErrNilRelease
	}
	if cs.n_children != 0 {
		return ImportedSchema{}, fmt.Errorf("%w: nested struct/list children are not supported", contracts.ErrUnsupportedFormat)
	}

	out := ImportedSchema{
		Format: C.GoString(cs.format),
		Flags:  int64(cs.flags),
	}
	if cs.name != nil {
		out.Name = C.GoString(cs.name)
	}
	if cs.metadata != nil {
		out.Metadata = []byte(C.GoString(cs.metadata))
	}
	if cs.dictionary != nil {
		dict, err := ImportSchema((*ArrowSchema)(unsafe.Pointer(cs.dictionary)))
		if err != nil {
			return ImportedSchema{}, err
		}
		out.Dictionary = &dict
	}
	return out, nil
}

// ImportedArray is the Go-owned, already-copied result of reading a
// foreign ArrowArray: every buffer has been copied into a freshly
// aligned Go allocation (via the caller's buffer.Buffer construction one
// layer up), so the caller may release the original struct immediately.
type ImportedArray struct {
	Length     int64
	NullCount  int64
	Offset     int64
	Buffers    [][]byte
	Dictionary *ImportedArray
}

// ImportArray reads an ArrowArray's scalar fields and copies each
// buffer's bytes into a new Go-owned slice of the given byte lengths.
// bufferByteLens must have one entry per buffer the type expects (see
// BufferCount), computed by the caller from the array's logical length
// and DType, since an ArrowArray on its own carries no buffer sizes —
// only raw pointers, exactly the situation apache-arrow's cdata import
// path handles via its own per-type importers.
func ImportArray(a *ArrowArray, bufferByteLens []int, dictionaryBufferByteLens []int) (ImportedArray, error) {
	ca := cArray(a)
	if ca.release == nil {
		return ImportedArray{}, contracts.ErrNilRelease
	}
	if ca.n_children != 0 {
		return ImportedArray{}, fmt.Errorf("%w: nested struct/list children are not supported", contracts.ErrUnsupportedFormat)
	}
	if int(ca.n_buffers) != len(bufferByteLens) {
		return ImportedArray{}, fmt.Errorf("%w: expected %d buffers, array has %d", contracts.ErrBufferMismatch, len(bufferByteLens), ca.n_buffers)
	}

	out := ImportedArray{
		Length:    int64(ca.length),
		NullCount: int64(ca.null_count),
		Offset:    int64(ca.offset),
	}

	if ca.n_buffers > 0 {
		srcPtrs := unsafe.Slice((*unsafe.Pointer)(unsafe.Pointer(ca.buffers)), int(ca.n_buffers))
		out.Buffers = make([][]byte, ca.n_buffers)
		for i, n := range bufferByteLens {
			if srcPtrs[i] == nil || n == 0 {
				continue
			}
			src := unsafe.Slice((*byte)(srcPtrs[i]), n)
			dst := make([]byte, n)
			copy(dst, src)
			out.Buffers[i] = dst
		}
	}

	if ca.dictionary != nil {
		dict, err := ImportArray((*ArrowArray)(unsafe.Pointer(ca.dictionary)), dictionaryBufferByteLens, nil)
		if err != nil {
			return ImportedArray{}, err
		}
		out.Dictionary = &dict
	}

	return out, nil
}

// Format returns the schema's format string, copied out of C memory.
// Walking a struct-typed record batch schema needs this (and the child
// accessors below) before any per-column ImportSchema call, since
// ImportSchema itself rejects nested children by design.
func (s *ArrowSchema) Format() string { return C.GoString(cSchema(s).format) }

// NChildren returns the schema's child count.
func (s *ArrowSchema) NChildren() int { return int(cSchema(s).n_children) }

// ChildAt returns child i of a struct-typed schema. The child struct is
// owned by its parent: callers must not invoke release on it, only on
// the parent, per the C Data Interface's child-ownership rule.
func (s *ArrowSchema) ChildAt(i int) *ArrowSchema {
	cs := cSchema(s)
	kids := unsafe.Slice(cs.children, int(cs.n_children))
	return (*ArrowSchema)(unsafe.Pointer(kids[i]))
}

// NChildren returns the array's child count.
func (a *ArrowArray) NChildren() int { return int(cArray(a).n_children) }

// ChildAt returns child i of a struct-typed array (one record batch
// column). Owned by the parent; callers release only the parent.
func (a *ArrowArray) ChildAt(i int) *ArrowArray {
	ca := cArray(a)
	kids := unsafe.Slice(ca.children, int(ca.n_children))
	return (*ArrowArray)(unsafe.Pointer(kids[i]))
}

// PeekOffsetAt reads entry idx of a variable-width offsets buffer
// directly from the foreign array's memory, without copying the whole
// buffer. Importing a Utf8/LargeUtf8 array needs this to learn the byte
// length of the values buffer before it can be copied, since an
// ArrowArray carries no buffer sizes of its own — only the apache-arrow
// importer's own two-pass read of offsets-then-data resolves the same
// problem, which this mirrors. offsetBufferIndex is always 1 in this
// module's layout (spec §4.7: validity, offsets, data); width is 4 for
// Utf8 or 8 for LargeUtf8. The caller passes idx rather than this
// function deriving it from the array's own length, since a foreign
// array with a nonzero offset needs entry offset+length, not length, to
// cover the whole window it imports before normalising it down (spec
// §4.7.2).
func PeekOffsetAt(a *ArrowArray, offsetBufferIndex, width, idx int) int64 {
	ca := cArray(a)
	srcPtrs := unsafe.Slice((*unsafe.Pointer)(unsafe.Pointer(ca.buffers)), int(ca.n_buffers))
	base := srcPtrs[offsetBufferIndex]
	if width == 4 {
		vals := unsafe.Slice((*int32)(base), idx+1)
		return int64(vals[idx])
	}
	vals := unsafe.Slice((*int64)(base), idx+1)
	return vals[idx]
}

// PeekDictionaryOffsetAt is PeekOffsetAt applied to a's dictionary child
// array, used when the dictionary's values are themselves Utf8. A
// dictionary's values are never themselves offset/windowed in this
// module, so idx is ordinarily the dictionary's own length.
func PeekDictionaryOffsetAt(a *ArrowArray, width, idx int) int64 {
	ca := cArray(a)
	dict := (*ArrowArray)(unsafe.Pointer(ca.dictionary))
	return PeekOffsetAt(dict, 1, width, idx)
}
