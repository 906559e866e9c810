package cdata

import (
	"sync"
	"sync/atomic"
	"unsafe"
)

/*
#include "abi.h"
#include <stdlib.h>

extern void goReleaseExportedArray(struct ArrowArray* array);
extern void goReleaseExportedSchema(struct ArrowSchema* schema);
*/
import "C"

// No nested list/struct/union children are exported for column data:
// spec §1 excludes nested container types from this module's scope, so
// every exported column ArrowArray/ArrowSchema has n_children == 0. A
// dictionary-encoded array still carries its companion array/schema via
// the `dictionary` field, and the one struct-typed shape this package
// does produce is the record batch wrapper a stream yields
// (ExportStructArray/ExportStructSchema), whose children are whole
// columns rather than nested values.

var (
	handles   sync.Map
	handleIdx uintptr
)

// exportHolder pins the Go-owned memory an exported ArrowArray/ArrowSchema
// points into (buffer bytes, C-allocated strings, child structs) so the
// garbage collector cannot reclaim it while the C side still holds a
// reference, mirroring the sync.Map-keyed handle table used on the
// export side of the C Data Interface bridge in the wider Arrow Go
// ecosystem.
type exportHolder struct {
	buffers     [][]byte
	ptrSlice    []unsafe.Pointer
	children    []*ArrowArray
	childPtrs   []*C.struct_ArrowArray
	dictionary  *ArrowArray
	format      *C.char
	name        *C.char
	metadata    *C.char
	schemaKids  []*ArrowSchema
	schemaPtrs  []*C.struct_ArrowSchema
	schemaDict  *ArrowSchema
}

func storeHolder(h *exportHolder) uintptr {
	id := atomic.AddUintptr(&handleIdx, 1)
	if id == 0 {
		panic("cdata: exhausted export handle space")
	}
	handles.Store(id, h)
	return id
}

func loadAndDeleteHolder(id uintptr) (*exportHolder, bool) {
	v, ok := handles.LoadAndDelete(id)
	if !ok {
		return nil, false
	}
	return v.(*exportHolder), true
}

// ExportArray populates out with length/null_count/offset and a buffers
// array pointing directly at the bytes backing each entry of buffers
// (nil entries become a nil C pointer, used for a type's absent
// validity buffer). The buffer slices must remain alive and unmodified
// until the consumer calls out's release callback; this function pins
// them via the handle table to guarantee that even if the Go caller
// drops its own references.
func ExportArray(length, nullCount, offset int64, buffers [][]byte, dictionary *ArrowArray, out *ArrowArray) {
	holder := &exportHolder{dictionary: dictionary}

	co := cArray(out)
	co.length = C.int64_t(length)
	co.null_count = C.int64_t(nullCount)
	co.offset = C.int64_t(offset)
	co.n_children = 0
	co.children = nil

	if dictionary != nil {
		co.dictionary = cArray(dictionary)
	} else {
		co.dictionary = nil
	}

	co.n_buffers = C.int64_t(len(buffers))
	if len(buffers) > 0 {
		ptrs := make([]unsafe.Pointer, len(buffers))
		for i, b := range buffers {
			if len(b) == 0 {
				ptrs[i] = nil
				continue
			}
			ptrs[i] = unsafe.Pointer(&b[0])
		}
		holder.buffers = buffers
		holder.ptrSlice = ptrs
		co.buffers = (*unsafe.Pointer)(unsafe.Pointer(&ptrs[0]))
	}

	id := storeHolder(holder)
	co.private_data = unsafe.Pointer(id)
	co.release = (*[0]byte)(C.goReleaseExportedArray)
}

// ExportSchema populates out with the format/name/metadata strings
// (copied into C-owned memory so they outlive any Go string) and an
// optional dictionary child schema.
func ExportSchema(format, name string, metadata []byte, flags int64, dictionary *ArrowSchema, out *ArrowSchema) {
	holder := &exportHolder{
		format: C.CString(format),
	}
	if name != "" {
		holder.name = C.CString(name)
	}
	if len(metadata) > 0 {
		holder.metadata = C.CString(string(metadata))
	}
	holder.schemaDict = dictionary

	cs := cSchema(out)
	cs.format = holder.format
	cs.name = holder.name
	cs.metadata = holder.metadata
	cs.flags = C.int64_t(flags)
	cs.n_children = 0
	cs.children = nil
	if dictionary != nil {
		cs.dictionary = cSchema(dictionary)
	} else {
		cs.dictionary = nil
	}

	id := storeHolder(holder)
	cs.private_data = unsafe.Pointer(id)
	cs.release = (*[0]byte)(C.goReleaseExportedSchema)
}

// ExportStructArray populates out as a struct-typed array whose children
// are the given column arrays — the shape of one record batch in a C
// stream (spec §4.7.3). The batch itself carries a single, absent
// validity buffer and no nulls of its own; per the C Data Interface the
// consumer releases only this parent, whose release callback cascades
// into every child.
func ExportStructArray(length int64, children []*ArrowArray, out *ArrowArray) {
	holder := &exportHolder{children: children}

	co := cArray(out)
	co.length = C.int64_t(length)
	co.null_count = 0
	co.offset = 0
	co.dictionary = nil

	co.n_children = C.int64_t(len(children))
	if len(children) > 0 {
		ptrs := make([]*C.struct_ArrowArray, len(children))
		for i, ch := range children {
			ptrs[i] = cArray(ch)
		}
		holder.childPtrs = ptrs
		co.children = &ptrs[0]
	} else {
		co.children = nil
	}

	bufPtrs := make([]unsafe.Pointer, 1)
	holder.ptrSlice = bufPtrs
	co.n_buffers = 1
	co.buffers = (*unsafe.Pointer)(unsafe.Pointer(&bufPtrs[0]))

	id := storeHolder(holder)
	co.private_data = unsafe.Pointer(id)
	co.release = (*[0]byte)(C.goReleaseExportedArray)
}

// ExportStructSchema populates out as a struct-typed schema (format
// "+s") whose children are the given column schemas, paired with
// ExportStructArray as the per-batch schema of a record batch stream.
func ExportStructSchema(name string, children []*ArrowSchema, out *ArrowSchema) {
	holder := &exportHolder{
		format:     C.CString("+s"),
		schemaKids: children,
	}
	if name != "" {
		holder.name = C.CString(name)
	}

	cs := cSchema(out)
	cs.format = holder.format
	cs.name = holder.name
	cs.metadata = nil
	cs.flags = 0
	cs.dictionary = nil

	cs.n_children = C.int64_t(len(children))
	if len(children) > 0 {
		ptrs := make([]*C.struct_ArrowSchema, len(children))
		for i, ch := range children {
			ptrs[i] = cSchema(ch)
		}
		holder.schemaPtrs = ptrs
		cs.children = &ptrs[0]
	} else {
		cs.children = nil
	}

	id := storeHolder(holder)
	cs.private_data = unsafe.Pointer(id)
	cs.release = (*[0]byte)(C.goReleaseExportedSchema)
}
