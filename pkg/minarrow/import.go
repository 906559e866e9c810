package minarrow

import (
	"fmt"
	"unicode/utf8"
	"unsafe"

	"github.com/minarrow-go/minarrow/pkg/cdata"
	"github.com/minarrow-go/minarrow/pkg/contracts"
	"github.com/minarrow-go/minarrow/pkg/internal/arrays"
	"github.com/minarrow-go/minarrow/pkg/internal/bitmask"
	"github.com/minarrow-go/minarrow/pkg/internal/buffer"
)

// bufferFrom wraps a plain Go slice as an aligned buffer.Buffer, used
// when rebuilding a concrete array variant from freshly imported bytes.
func bufferFrom[T any](vs []T) *buffer.Buffer[T] { return buffer.FromSlice(vs) }

// bytesToValues reinterprets a raw byte buffer as a slice of T and
// copies it into a freshly allocated, GC-owned slice, the inverse of
// valuesToBytes used on export. A copy (rather than an unsafe alias
// over the imported bytes) keeps every array produced by ImportFromC an
// ordinary owned value indistinguishable from one built by hand.
func bytesToValues[T any](bs []byte) []T {
	if len(bs) == 0 {
		return nil
	}
	var zero T
	size := int(unsafe.Sizeof(zero))
	n := len(bs) / size
	src := unsafe.Slice((*T)(unsafe.Pointer(&bs[0])), n)
	out := make([]T, n)
	copy(out, src)
	return out
}

func importNullMask(bs []byte, n int) *bitmask.Bitmask {
	if bs == nil {
		return nil
	}
	return bitmask.FromBytes(bs, n)
}

// ImportFromC reads a linked ArrowArray/ArrowSchema pair produced by a
// foreign Arrow implementation and builds an owned FieldArray. Per spec
// §4.7.2, this function itself invokes release on the source inArray and
// inSchema exactly once before returning, on every path including an
// error return — the caller must not also release them. Buffers are
// copied into Go memory before release runs, so the source structs may
// safely belong to a foreign producer that frees or blocks on release.
func ImportFromC(inArray *cdata.ArrowArray, inSchema *cdata.ArrowSchema) (FieldArray, error) {
	defer cdata.ReleaseArray(inArray)
	defer cdata.ReleaseSchema(inSchema)
	return importFieldArray(inArray, inSchema)
}

// importFieldArray is ImportFromC without the release obligation, so the
// record batch stream importer can run it over a batch's child structs —
// which, per the C Data Interface, are owned by their parent and must
// not be released individually.
func importFieldArray(inArray *cdata.ArrowArray, inSchema *cdata.ArrowSchema) (FieldArray, error) {
	schema, err := cdata.ImportSchema(inSchema)
	if err != nil {
		return FieldArray{}, err
	}

	isDict := schema.Dictionary != nil
	dtype, err := cdata.DTypeForFormat(schema.Format, isDict)
	if err != nil {
		return FieldArray{}, err
	}

	length := int(inArray.Length())
	offset := int(inArray.Offset())
	// Buffers are copied wide enough to cover [0, offset+length), the
	// full window the foreign offset refers into; buildArray below
	// constructs an unwindowed array of that logical length, and this
	// function then normalises it down to [offset, offset+length) with
	// the same O(1) Slice an in-process caller would use (spec §4.6,
	// §4.7.2), rather than duplicating offset-skipping logic here.
	bufLens, err := bufferByteLens(dtype, offset+length, stringDataByteLen(dtype, inArray, false, offset+length))
	if err != nil {
		return FieldArray{}, err
	}

	var dictBufLens []int
	var dictValues []string
	if isDict {
		dictLength := int(inArray.DictionaryLength())
		// the dictionary is always a plain Utf8 values array in this
		// module (spec §4.3.2), and is never itself offset/windowed.
		dictDType := contracts.DType{ID: contracts.Utf8}
		dictBufLens, err = bufferByteLens(dictDType, dictLength, stringDataByteLen(dictDType, inArray, true, dictLength))
		if err != nil {
			return FieldArray{}, err
		}
	}

	imported, err := cdata.ImportArray(inArray, bufLens, dictBufLens)
	if err != nil {
		return FieldArray{}, err
	}

	if isDict && imported.Dictionary != nil {
		dictValues, err = decodeDictionaryValues(imported.Dictionary)
		if err != nil {
			return FieldArray{}, err
		}
	}

	field := Field{Name: schema.Name, Type: dtype, Nullable: schema.Flags&2 != 0}
	full, err := buildArray(dtype, offset+length, imported.Buffers, dictValues)
	if err != nil {
		return FieldArray{}, err
	}
	data := full.Slice(offset, length)
	// Foreign shape problems are a spec §7 class-2 failure, so the same
	// invariants NewFieldArray panics over come back as an error here.
	if err := validateFieldArray(field, data); err != nil {
		return FieldArray{}, fmt.Errorf("imported array: %w", err)
	}
	return FieldArray{Field: field, Data: data}, nil
}

// stringDataByteLen peeks offsets-buffer entry idx of a Utf8 or LargeUtf8
// array to learn its values buffer's byte length before that buffer can
// be copied — an ArrowArray's buffers carry no sizes of their own, only
// pointers (spec §4.7). Returns 0 (unused) for any other DType.
func stringDataByteLen(d contracts.DType, a *cdata.ArrowArray, dictionary bool, idx int) int {
	switch d.ID {
	case contracts.Utf8:
		if dictionary {
			return int(cdata.PeekDictionaryOffsetAt(a, 4, idx))
		}
		return int(cdata.PeekOffsetAt(a, 1, 4, idx))
	case contracts.LargeUtf8:
		if dictionary {
			return int(cdata.PeekDictionaryOffsetAt(a, 8, idx))
		}
		return int(cdata.PeekOffsetAt(a, 1, 8, idx))
	default:
		return 0
	}
}

func bufferByteLens(d contracts.DType, length int, dataByteLen int) ([]int, error) {
	validityLen := (length + 7) / 8
	switch d.ID {
	case contracts.Null:
		return nil, nil
	case contracts.Boolean:
		return []int{validityLen, (length + 7) / 8}, nil
	case contracts.Int8, contracts.Uint8:
		return []int{validityLen, length * 1}, nil
	case contracts.Int16, contracts.Uint16:
		return []int{validityLen, length * 2}, nil
	case contracts.Int32, contracts.Uint32, contracts.Float32, contracts.Date32, contracts.Time32, contracts.Duration32:
		return []int{validityLen, length * 4}, nil
	case contracts.Int64, contracts.Uint64, contracts.Float64, contracts.Date64, contracts.Time64, contracts.Timestamp, contracts.Duration64:
		return []int{validityLen, length * 8}, nil
	case contracts.Utf8:
		return []int{validityLen, (length + 1) * 4, dataByteLen}, nil
	case contracts.LargeUtf8:
		return []int{validityLen, (length + 1) * 8, dataByteLen}, nil
	case contracts.DictionaryUint8:
		return []int{validityLen, length * 1}, nil
	case contracts.DictionaryUint16:
		return []int{validityLen, length * 2}, nil
	case contracts.DictionaryUint32:
		return []int{validityLen, length * 4}, nil
	case contracts.DictionaryUint64:
		return []int{validityLen, length * 8}, nil
	default:
		return nil, fmt.Errorf("%w: dtype %v", contracts.ErrUnsupportedFormat, d)
	}
}

// validateStringBuffers checks a foreign variable-width column's buffers
// against the spec §4.7.2 import error conditions before any slicing
// indexes into them: offsets present, monotonically non-decreasing and
// within the values buffer's bounds, and the values bytes valid UTF-8 —
// validated once for the whole buffer, which is what lets Get skip
// per-call validation afterwards (spec §4.3.1).
func validateStringBuffers[O arrays.Offset](offsets []O, data []byte) error {
	if len(offsets) == 0 {
		return fmt.Errorf("imported string array has no offsets buffer: %w", contracts.ErrBufferMismatch)
	}
	if offsets[0] < 0 {
		return fmt.Errorf("imported string offsets: %w", contracts.ErrNonMonotonicOffset)
	}
	for i := 1; i < len(offsets); i++ {
		if offsets[i] < offsets[i-1] {
			return fmt.Errorf("imported string offsets: %w", contracts.ErrNonMonotonicOffset)
		}
	}
	if int64(offsets[len(offsets)-1]) > int64(len(data)) {
		return fmt.Errorf("imported string offsets exceed the values buffer: %w", contracts.ErrBufferMismatch)
	}
	if !utf8.Valid(data) {
		return fmt.Errorf("imported string values: %w", contracts.ErrInvalidUTF8)
	}
	return nil
}

func decodeDictionaryValues(d *cdata.ImportedArray) ([]string, error) {
	if len(d.Buffers) < 3 {
		return nil, contracts.ErrBufferMismatch
	}
	offsets := bytesToValues[int32](d.Buffers[1])
	data := d.Buffers[2]
	if err := validateStringBuffers(offsets, data); err != nil {
		return nil, err
	}
	out := make([]string, len(offsets)-1)
	for i := range out {
		out[i] = string(data[offsets[i]:offsets[i+1]])
	}
	return out, nil
}

// buildArray constructs an unwindowed (offset 0) Array of the given
// logical length from imported buffer bytes. Callers that imported a
// foreign array with a nonzero offset window the result down afterward
// via Array.Slice, rather than this function knowing about offsets at
// all.
func buildArray(d contracts.DType, length int, buffers [][]byte, dictValues []string) (Array, error) {
	if d.ID == contracts.Null {
		return NewArrayNull(length), nil
	}
	if len(buffers) < 2 {
		return Array{}, contracts.ErrBufferMismatch
	}
	nulls := importNullMask(buffers[0], length)

	switch d.ID {
	case contracts.Boolean:
		b := arrays.NewBooleanArrayFrom(bitmask.FromBytes(buffers[1], length), nulls)
		return NewArrayBoolean(b), nil
	case contracts.Int8:
		return NewArrayNumeric(NewNumericInt8(arrays.NewIntegerArrayFrom(bufferFrom(bytesToValues[int8](buffers[1])), nulls))), nil
	case contracts.Int16:
		return NewArrayNumeric(NewNumericInt16(arrays.NewIntegerArrayFrom(bufferFrom(bytesToValues[int16](buffers[1])), nulls))), nil
	case contracts.Int32:
		return NewArrayNumeric(NewNumericInt32(arrays.NewIntegerArrayFrom(bufferFrom(bytesToValues[int32](buffers[1])), nulls))), nil
	case contracts.Int64:
		return NewArrayNumeric(NewNumericInt64(arrays.NewIntegerArrayFrom(bufferFrom(bytesToValues[int64](buffers[1])), nulls))), nil
	case contracts.Uint8:
		return NewArrayNumeric(NewNumericUint8(arrays.NewIntegerArrayFrom(bufferFrom(bytesToValues[uint8](buffers[1])), nulls))), nil
	case contracts.Uint16:
		return NewArrayNumeric(NewNumericUint16(arrays.NewIntegerArrayFrom(bufferFrom(bytesToValues[uint16](buffers[1])), nulls))), nil
	case contracts.Uint32:
		return NewArrayNumeric(NewNumericUint32(arrays.NewIntegerArrayFrom(bufferFrom(bytesToValues[uint32](buffers[1])), nulls))), nil
	case contracts.Uint64:
		return NewArrayNumeric(NewNumericUint64(arrays.NewIntegerArrayFrom(bufferFrom(bytesToValues[uint64](buffers[1])), nulls))), nil
	case contracts.Float32:
		return NewArrayNumeric(NewNumericFloat32(arrays.NewFloatArrayFrom(bufferFrom(bytesToValues[float32](buffers[1])), nulls))), nil
	case contracts.Float64:
		return NewArrayNumeric(NewNumericFloat64(arrays.NewFloatArrayFrom(bufferFrom(bytesToValues[float64](buffers[1])), nulls))), nil
	case contracts.Utf8:
		offsets := bytesToValues[int32](buffers[1])
		if err := validateStringBuffers(offsets, buffers[2]); err != nil {
			return Array{}, err
		}
		return NewArrayText(NewTextUtf8(arrays.NewStringArrayFrom(
			bufferFrom(offsets), bufferFrom(buffers[2]), nulls,
		))), nil
	case contracts.LargeUtf8:
		offsets := bytesToValues[int64](buffers[1])
		if err := validateStringBuffers(offsets, buffers[2]); err != nil {
			return Array{}, err
		}
		return NewArrayText(NewTextLargeUtf8(arrays.NewStringArrayFrom(
			bufferFrom(offsets), bufferFrom(buffers[2]), nulls,
		))), nil
	case contracts.Date32:
		return NewArrayTemporal(NewTemporalDate32(arrays.NewDatetimeArrayFrom(bufferFrom(bytesToValues[int32](buffers[1])), nulls, contracts.Days))), nil
	case contracts.Date64:
		return NewArrayTemporal(NewTemporalDate64(arrays.NewDatetimeArrayFrom(bufferFrom(bytesToValues[int64](buffers[1])), nulls, contracts.Milliseconds))), nil
	case contracts.Time32:
		return NewArrayTemporal(NewTemporalTime32(arrays.NewDatetimeArrayFrom(bufferFrom(bytesToValues[int32](buffers[1])), nulls, d.Unit))), nil
	case contracts.Time64:
		return NewArrayTemporal(NewTemporalTime64(arrays.NewDatetimeArrayFrom(bufferFrom(bytesToValues[int64](buffers[1])), nulls, d.Unit))), nil
	case contracts.Timestamp:
		return NewArrayTemporal(NewTemporalTimestamp(arrays.NewDatetimeArrayFrom(bufferFrom(bytesToValues[int64](buffers[1])), nulls, d.Unit), d.TimeZone)), nil
	case contracts.Duration32:
		return NewArrayTemporal(NewTemporalDuration32(arrays.NewDatetimeArrayFrom(bufferFrom(bytesToValues[int32](buffers[1])), nulls, d.Unit))), nil
	case contracts.Duration64:
		return NewArrayTemporal(NewTemporalDuration64(arrays.NewDatetimeArrayFrom(bufferFrom(bytesToValues[int64](buffers[1])), nulls, d.Unit))), nil
	case contracts.DictionaryUint8:
		return NewArrayText(NewTextCategorical8(buildCategorical[uint8](buffers[1], nulls, dictValues))), nil
	case contracts.DictionaryUint16:
		return NewArrayText(NewTextCategorical16(buildCategorical[uint16](buffers[1], nulls, dictValues))), nil
	case contracts.DictionaryUint32:
		return NewArrayText(NewTextCategorical32(buildCategorical[uint32](buffers[1], nulls, dictValues))), nil
	case contracts.DictionaryUint64:
		return NewArrayText(NewTextCategorical64(buildCategorical[uint64](buffers[1], nulls, dictValues))), nil
	default:
		return Array{}, fmt.Errorf("%w: dtype %v", contracts.ErrUnsupportedFormat, d)
	}
}

func buildCategorical[K arrays.Code](keyBytes []byte, nulls *bitmask.Bitmask, dict []string) *arrays.CategoricalArray[K] {
	return arrays.NewCategoricalArrayFrom(bufferFrom(bytesToValues[K](keyBytes)), dict, nulls)
}
