// Package cdata implements the Arrow C Data Interface bridge (spec §4.7):
// exporting minarrow arrays/schemas across the cgo boundary as
// ArrowArray/ArrowSchema structs with a release-callback lifetime
// protocol, and importing the same structs back into Go-owned memory.
//
// This package intentionally knows nothing about pkg/internal/arrays or
// the union types in pkg/minarrow — it operates purely on raw buffer
// bytes, lengths and format strings, so that pkg/minarrow (which does
// know about the concrete array variants) can sit on top of it without
// a circular import.
package cdata

/*
#include "abi.h"

extern void goReleaseExportedArray(struct ArrowArray* array);
extern void goReleaseExportedSchema(struct ArrowSchema* schema);
*/
import "C"

import "unsafe"

// ArrowArray mirrors the C Data Interface's struct ArrowArray.
type ArrowArray C.struct_ArrowArray

// ArrowSchema mirrors the C Data Interface's struct ArrowSchema.
type ArrowSchema C.struct_ArrowSchema

func cArray(a *ArrowArray) *C.struct_ArrowArray    { return (*C.struct_ArrowArray)(unsafe.Pointer(a)) }
func cSchema(s *ArrowSchema) *C.struct_ArrowSchema { return (*C.struct_ArrowSchema)(unsafe.Pointer(s)) }

// cGoString converts a C char* to a Go string. Exists so that callers
// outside this package's cgo-enabled files (e.g. _test.go files, where
// cgo's "C" pseudo-package cannot be imported) can read format strings
// off the raw C structs.
func cGoString(s *C.char) string { return C.GoString(s) }

// ReleaseArray invokes the release callback on an ArrowArray, if one is
// set. The C helper skips the call when release is already null, and
// release callbacks null themselves out, so calling it a second time on
// an already-released struct is a no-op.
func ReleaseArray(a *ArrowArray) {
	C.minarrow_release_array(cArray(a))
}

// ReleaseSchema invokes the release callback on an ArrowSchema this
// process received from a foreign producer, if one is set.
func ReleaseSchema(s *ArrowSchema) {
	C.minarrow_release_schema(cSchema(s))
}

// Length returns the array's logical length, read directly off the C
// struct. Exposed as a method since pkg/minarrow needs it before it can
// compute the expected per-buffer byte lengths ImportArray requires.
func (a *ArrowArray) Length() int64 { return int64(cArray(a).length) }

// Offset returns the array's logical offset into its buffers, read
// directly off the C struct (spec §4.7's ArrowArray.offset). The importer
// needs this before copying buffers so it can size each copy to cover
// the full [0, offset+length) window the offset refers into.
func (a *ArrowArray) Offset() int64 { return int64(cArray(a).offset) }

// HasDictionary reports whether the array carries a dictionary child.
func (a *ArrowArray) HasDictionary() bool { return cArray(a).dictionary != nil }

// DictionaryLength returns the dictionary child's logical length, or 0
// if there is no dictionary.
func (a *ArrowArray) DictionaryLength() int64 {
	d := cArray(a).dictionary
	if d == nil {
		return 0
	}
	return int64(d.length)
}
