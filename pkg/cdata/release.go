package cdata

/*
#include "abi.h"
#include <stdlib.h>
*/
import "C"

import "unsafe"

// The release callbacks cascade: releasing a parent array/schema also
// releases its dictionary companion and any struct children, per the C
// Data Interface rule that the consumer releases only top-level structs
// and never touches a child's release callback directly.

//export goReleaseExportedArray
func goReleaseExportedArray(array *C.struct_ArrowArray) {
	id := uintptr(array.private_data)
	if holder, ok := loadAndDeleteHolder(id); ok {
		for _, ch := range holder.children {
			ReleaseArray(ch)
		}
		if holder.dictionary != nil {
			ReleaseArray(holder.dictionary)
		}
	}
	array.release = nil
	array.private_data = nil
}

//export goReleaseExportedSchema
func goReleaseExportedSchema(schema *C.struct_ArrowSchema) {
	id := uintptr(schema.private_data)
	if holder, ok := loadAndDeleteHolder(id); ok {
		for _, ch := range holder.schemaKids {
			ReleaseSchema(ch)
		}
		if holder.schemaDict != nil {
			ReleaseSchema(holder.schemaDict)
		}
		if holder.format != nil {
			C.free(unsafe.Pointer(holder.format))
		}
		if holder.name != nil {
			C.free(unsafe.Pointer(holder.name))
		}
		if holder.metadata != nil {
			C.free(unsafe.Pointer(holder.metadata))
		}
	}
	schema.release = nil
	schema.private_data = nil
}
