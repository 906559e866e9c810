package cdata

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func int32Bytes(vs []int32) []byte {
	out := make([]byte, len(vs)*4)
	for i, v := range vs {
		out[i*4+0] = byte(v)
		out[i*4+1] = byte(v >> 8)
		out[i*4+2] = byte(v >> 16)
		out[i*4+3] = byte(v >> 24)
	}
	return out
}

func TestExportArray_NoNullsLeavesValidityBufferNil(t *testing.T) {
	var arr ArrowArray
	var schema ArrowSchema
	ExportSchema("i", "values", nil, 0, nil, &schema)
	ExportArray(3, 0, 0, [][]byte{nil, int32Bytes([]int32{11, 22, 33})}, nil, &arr)
	defer ReleaseArray(&arr)
	defer ReleaseSchema(&schema)

	ca := cArray(&arr)
	require.Equal(t, int64(2), int64(ca.n_buffers))
	ptrs := unsafe.Slice((*unsafe.Pointer)(unsafe.Pointer(ca.buffers)), 2)
	assert.Nil(t, ptrs[0])

	values := unsafe.Slice((*int32)(ptrs[1]), 3)
	assert.Equal(t, []int32{11, 22, 33}, []int32(values))
	assert.Equal(t, int64(3), arr.Length())
	assert.EqualValues(t, 0, ca.null_count)

	cs := cSchema(&schema)
	assert.Equal(t, "i", cGoString(cs.format))
}

func TestExportArray_NullBitmapLowThreeBitsPattern(t *testing.T) {
	var arr ArrowArray
	// [42, null, 88]: validity bits 1,0,1 -> low byte 0b101
	validity := []byte{0b00000101}
	ExportArray(3, 1, 0, [][]byte{validity, int32Bytes([]int32{42, 0, 88})}, nil, &arr)
	defer ReleaseArray(&arr)

	ca := cArray(&arr)
	ptrs := unsafe.Slice((*unsafe.Pointer)(unsafe.Pointer(ca.buffers)), 2)
	validityBytes := unsafe.Slice((*byte)(ptrs[0]), 1)
	assert.Equal(t, byte(0b101), validityBytes[0])

	values := unsafe.Slice((*int32)(ptrs[1]), 3)
	assert.Equal(t, int32(42), values[0])
	assert.Equal(t, int32(88), values[2])
	assert.EqualValues(t, 1, ca.null_count)
}

func TestExportArray_Utf8BuffersMatchOffsetsAndValues(t *testing.T) {
	var arr ArrowArray
	var schema ArrowSchema
	ExportSchema("u", "names", nil, 0, nil, &schema)
	offsets := int32Bytes([]int32{0, 3, 6})
	values := []byte("foobar")
	ExportArray(2, 0, 0, [][]byte{nil, offsets, values}, nil, &arr)
	defer ReleaseArray(&arr)
	defer ReleaseSchema(&schema)

	ca := cArray(&arr)
	require.EqualValues(t, 3, ca.n_buffers)
	ptrs := unsafe.Slice((*unsafe.Pointer)(unsafe.Pointer(ca.buffers)), 3)
	gotOffsets := unsafe.Slice((*int32)(ptrs[1]), 3)
	assert.Equal(t, []int32{0, 3, 6}, []int32(gotOffsets))
	gotValues := unsafe.Slice((*byte)(ptrs[2]), 6)
	assert.Equal(t, "foobar", string(gotValues))
}

func TestExportArray_BooleanPacksThreeValuesIntoOneByte(t *testing.T) {
	var arr ArrowArray
	// [true, false, true] -> 0b101 == 0x05
	ExportArray(3, 0, 0, [][]byte{nil, {0x05}}, nil, &arr)
	defer ReleaseArray(&arr)

	ca := cArray(&arr)
	ptrs := unsafe.Slice((*unsafe.Pointer)(unsafe.Pointer(ca.buffers)), 2)
	packed := unsafe.Slice((*byte)(ptrs[1]), 1)
	assert.Equal(t, byte(0x05), packed[0])
	assert.Equal(t, int64(3), arr.Length())
}

func TestExportArray_CategoricalCarriesDictionaryChild(t *testing.T) {
	var dictArr ArrowArray
	var dictSchema ArrowSchema
	ExportSchema("u", "", nil, 0, nil, &dictSchema)
	dictOffsets := int32Bytes([]int32{0, 1, 2})
	ExportArray(2, 0, 0, [][]byte{nil, dictOffsets, []byte("AB")}, nil, &dictArr)

	var topArr ArrowArray
	var topSchema ArrowSchema
	ExportSchema("I", "category", nil, 0, &dictSchema, &topSchema)
	codes := int32Bytes([]int32{0, 1, 0})
	ExportArray(3, 0, 0, [][]byte{nil, codes}, &dictArr, &topArr)
	defer ReleaseArray(&topArr)
	defer ReleaseSchema(&topSchema)

	ca := cArray(&topArr)
	require.EqualValues(t, 2, ca.n_buffers)
	assert.True(t, topArr.HasDictionary())
	assert.Equal(t, int64(2), topArr.DictionaryLength())

	cs := cSchema(&topSchema)
	assert.Equal(t, "I", cGoString(cs.format))
	require.NotNil(t, cs.dictionary)
	assert.Equal(t, "u", cGoString(cs.dictionary.format))
}

func TestExportArray_EmptyArrayHasNoValidityBuffer(t *testing.T) {
	var arr ArrowArray
	ExportArray(0, 0, 0, [][]byte{nil, nil}, nil, &arr)
	defer ReleaseArray(&arr)

	assert.Equal(t, int64(0), arr.Length())
	ca := cArray(&arr)
	ptrs := unsafe.Slice((*unsafe.Pointer)(unsafe.Pointer(ca.buffers)), 2)
	assert.Nil(t, ptrs[0])
}

func TestReleaseArray_NilsOutReleaseAndPrivateData(t *testing.T) {
	var arr ArrowArray
	ExportArray(1, 0, 0, [][]byte{nil, int32Bytes([]int32{7})}, nil, &arr)
	ReleaseArray(&arr)

	ca := cArray(&arr)
	assert.Nil(t, ca.release)
	assert.Nil(t, ca.private_data)
}
