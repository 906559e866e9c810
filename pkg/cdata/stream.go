package cdata

/*
#include "abi.h"
#include <errno.h>
#include <stdlib.h>

extern int goStreamGetSchema(struct ArrowArrayStream* stream, struct ArrowSchema* out);
extern int goStreamGetNext(struct ArrowArrayStream* stream, struct ArrowArray* out);
extern char* goStreamGetLastError(struct ArrowArrayStream* stream);
extern void goReleaseExportedStream(struct ArrowArrayStream* stream);
*/
import "C"

import (
	"fmt"
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/minarrow-go/minarrow/pkg/contracts"
)

// ArrowArrayStream mirrors the C Data Interface's struct ArrowArrayStream,
// the record-batch stream variant of the ABI (spec §4.7.3): a trio of
// callbacks a consumer pulls the schema and successive batches through,
// plus the same release protocol the array/schema structs use.
type ArrowArrayStream C.struct_ArrowArrayStream

func cStream(s *ArrowArrayStream) *C.struct_ArrowArrayStream {
	return (*C.struct_ArrowArrayStream)(unsafe.Pointer(s))
}

// streamHolder backs one exported stream. getSchema must populate a
// fresh, consumer-owned ArrowSchema on every call; getNext populates the
// next batch and reports ok=false once the stream is exhausted, without
// touching out. lastErr carries the most recent callback failure for
// get_last_error, C-allocated so the consumer can read it from any
// thread after the failing call returns.
type streamHolder struct {
	getSchema func(*ArrowSchema) error
	getNext   func(*ArrowArray) (bool, error)
	lastErr   *C.char
}

func (h *streamHolder) setErr(err error) {
	if h.lastErr != nil {
		C.free(unsafe.Pointer(h.lastErr))
	}
	h.lastErr = C.CString(err.Error())
}

var streamHandles sync.Map

// ExportStream populates out as a live ArrowArrayStream whose callbacks
// delegate to the given Go functions. The producer state stays pinned in
// a handle table until the consumer calls the stream's release, which
// must happen exactly once; get_schema/get_next may be called any number
// of times before that from any thread the consumer chooses.
func ExportStream(getSchema func(*ArrowSchema) error, getNext func(*ArrowArray) (bool, error), out *ArrowArrayStream) {
	holder := &streamHolder{getSchema: getSchema, getNext: getNext}
	id := atomic.AddUintptr(&handleIdx, 1)
	if id == 0 {
		panic("cdata: exhausted export handle space")
	}
	streamHandles.Store(id, holder)

	cs := cStream(out)
	cs.get_schema = (*[0]byte)(C.goStreamGetSchema)
	cs.get_next = (*[0]byte)(C.goStreamGetNext)
	cs.get_last_error = (*[0]byte)(C.goStreamGetLastError)
	cs.release = (*[0]byte)(C.goReleaseExportedStream)
	cs.private_data = unsafe.Pointer(id)
}

func loadStreamHolder(id uintptr) *streamHolder {
	v, ok := streamHandles.Load(id)
	if !ok {
		return nil
	}
	return v.(*streamHolder)
}

//export goStreamGetSchema
func goStreamGetSchema(stream *C.struct_ArrowArrayStream, out *C.struct_ArrowSchema) C.int {
	holder := loadStreamHolder(uintptr(stream.private_data))
	if holder == nil {
		return C.EINVAL
	}
	if err := holder.getSchema((*ArrowSchema)(unsafe.Pointer(out))); err != nil {
		holder.setErr(err)
		return C.EINVAL
	}
	return 0
}

//export goStreamGetNext
func goStreamGetNext(stream *C.struct_ArrowArrayStream, out *C.struct_ArrowArray) C.int {
	holder := loadStreamHolder(uintptr(stream.private_data))
	if holder == nil {
		return C.EINVAL
	}
	ok, err := holder.getNext((*ArrowArray)(unsafe.Pointer(out)))
	if err != nil {
		holder.setErr(err)
		return C.EINVAL
	}
	if !ok {
		// end of stream: a result with a null release marks exhaustion
		out.length = 0
		out.release = nil
		out.private_data = nil
	}
	return 0
}

//export goStreamGetLastError
func goStreamGetLastError(stream *C.struct_ArrowArrayStream) *C.char {
	if holder := loadStreamHolder(uintptr(stream.private_data)); holder != nil {
		return holder.lastErr
	}
	return nil
}

//export goReleaseExportedStream
func goReleaseExportedStream(stream *C.struct_ArrowArrayStream) {
	id := uintptr(stream.private_data)
	if v, ok := streamHandles.LoadAndDelete(id); ok {
		holder := v.(*streamHolder)
		if holder.lastErr != nil {
			C.free(unsafe.Pointer(holder.lastErr))
		}
	}
	stream.release = nil
	stream.private_data = nil
}

// ReleaseStream invokes the release callback on an ArrowArrayStream, if
// one is set; a second call on an already-released stream is a no-op.
func ReleaseStream(s *ArrowArrayStream) {
	C.minarrow_release_stream(cStream(s))
}

// StreamGetSchema pulls the stream's schema into out. On a nonzero
// callback return the producer's get_last_error message, if any, is
// folded into the returned error.
func StreamGetSchema(s *ArrowArrayStream, out *ArrowSchema) error {
	if cStream(s).release == nil {
		return contracts.ErrNilRelease
	}
	if rc := C.minarrow_stream_get_schema(cStream(s), cSchema(out)); rc != 0 {
		return streamCallError(s, "get_schema", int(rc))
	}
	return nil
}

// StreamGetNext pulls the next record batch into out. ok is false once
// the stream is exhausted (the producer returned a batch with a null
// release callback), in which case out must not be used.
func StreamGetNext(s *ArrowArrayStream, out *ArrowArray) (bool, error) {
	if cStream(s).release == nil {
		return false, contracts.ErrNilRelease
	}
	if rc := C.minarrow_stream_get_next(cStream(s), cArray(out)); rc != 0 {
		return false, streamCallError(s, "get_next", int(rc))
	}
	if cArray(out).release == nil {
		return false, nil
	}
	return true, nil
}

func streamCallError(s *ArrowArrayStream, op string, rc int) error {
	if msg := C.minarrow_stream_get_last_error(cStream(s)); msg != nil {
		return fmt.Errorf("%w: %s: %s", contracts.ErrStreamFailure, op, C.GoString(msg))
	}
	return fmt.Errorf("%w: %s: errno %d", contracts.ErrStreamFailure, op, rc)
}
