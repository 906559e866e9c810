package minarrow

import (
	"fmt"
	"unsafe"

	"github.com/minarrow-go/minarrow/pkg/cdata"
	"github.com/minarrow-go/minarrow/pkg/contracts"
	"github.com/minarrow-go/minarrow/pkg/internal/arrays"
	"github.com/minarrow-go/minarrow/pkg/internal/bitmask"
)

// valuesToBytes reinterprets a slice of fixed-width values as its raw
// byte representation without copying, used when handing a typed
// buffer.Buffer's contents to pkg/cdata as an untyped buffer. This
// mirrors the reinterpret-cast every C Data Interface exporter performs
// at the moment it crosses from a typed language value into an
// untyped `const void*` buffer pointer.
func valuesToBytes[T any](vs []T) []byte {
	if len(vs) == 0 {
		return nil
	}
	var zero T
	size := int(unsafe.Sizeof(zero))
	return unsafe.Slice((*byte)(unsafe.Pointer(&vs[0])), len(vs)*size)
}

// ExportToC exports a FieldArray as a linked ArrowArray/ArrowSchema pair
// per the C Data Interface (spec §6), doing this package's own type
// switch over the union Kind before handing raw buffer bytes down to
// pkg/cdata, which knows nothing about arrays.* concrete types.
func ExportToC(fa FieldArray, outArray *cdata.ArrowArray, outSchema *cdata.ArrowSchema) error {
	if err := exportFieldData(fa, outArray); err != nil {
		return err
	}
	if err := exportFieldSchema(fa, outSchema); err != nil {
		cdata.ReleaseArray(outArray)
		return err
	}
	return nil
}

// exportFieldSchema exports the schema half of one column: format
// string, name, JSON-rendered metadata, nullability flag, and a Utf8
// dictionary child schema for categorical columns. Also used per column
// by ExportTableToC's stream schema callback.
func exportFieldSchema(fa FieldArray, out *cdata.ArrowSchema) error {
	format, err := cdata.FormatForDType(fa.Field.Type)
	if err != nil {
		return err
	}

	var metadata []byte
	if fa.Field.Metadata.Len() > 0 {
		metadata, err = fa.Field.Metadata.MarshalJSON()
		if err != nil {
			return err
		}
	}

	var flags int64
	if fa.Field.Nullable {
		flags = 2 // ARROW_FLAG_NULLABLE, per the C Data Interface spec
	}

	var dictSchema *cdata.ArrowSchema
	if isDictionaryDType(fa.Field.Type) {
		dictSchema = &cdata.ArrowSchema{}
		cdata.ExportSchema("u", "", nil, 0, nil, dictSchema)
	}

	cdata.ExportSchema(format, fa.Field.Name, metadata, flags, dictSchema, out)
	return nil
}

// exportFieldData exports the data half of one column: raw buffers,
// length, null count, window offset, and a dictionary child array for
// categorical columns.
func exportFieldData(fa FieldArray, out *cdata.ArrowArray) error {
	buffers, err := exportBuffers(fa.Data)
	if err != nil {
		return err
	}

	var dictArray *cdata.ArrowArray
	if dictVals, ok := dictionaryPayload(fa.Data); ok {
		dictArray = &cdata.ArrowArray{}
		cdata.ExportArray(int64(dictVals.count), 0, 0,
			[][]byte{nil, dictVals.offsets, dictVals.data}, nil, dictArray)
	}

	cdata.ExportArray(int64(fa.Data.Len()), int64(fa.Data.NullCount()), int64(fa.Data.Offset()), buffers, dictArray, out)
	return nil
}

func isDictionaryDType(d contracts.DType) bool {
	switch d.ID {
	case contracts.DictionaryUint8, contracts.DictionaryUint16, contracts.DictionaryUint32, contracts.DictionaryUint64:
		return true
	default:
		return false
	}
}

// dictionaryValues is the raw offsets/data pair backing a dictionary's
// string values, built once per export call.
type dictionaryValues struct {
	offsets []byte
	data    []byte
	count   int
}

func dictionaryPayload(a Array) (dictionaryValues, bool) {
	text, ok := a.Text()
	if !ok {
		return dictionaryValues{}, false
	}
	switch text.Kind {
	case KindCategoricalUint8:
		c, _ := text.Categorical8()
		return encodeDictionary(c.Dictionary), true
	case KindCategoricalUint16:
		c, _ := text.Categorical16()
		return encodeDictionary(c.Dictionary), true
	case KindCategoricalUint32:
		c, _ := text.Categorical32()
		return encodeDictionary(c.Dictionary), true
	case KindCategoricalUint64:
		c, _ := text.Categorical64()
		return encodeDictionary(c.Dictionary), true
	default:
		return dictionaryValues{}, false
	}
}

func encodeDictionary(values []string) dictionaryValues {
	sa := arrays.NewStringArray[int32]()
	for _, v := range values {
		sa.Push(v)
	}
	offsetBytes := int32SliceToBytes(sa.Offsets.AsSlice())
	return dictionaryValues{offsets: offsetBytes, data: sa.Data.AsSlice(), count: sa.Len()}
}

func int32SliceToBytes(vs []int32) []byte {
	out := make([]byte, len(vs)*4)
	for i, v := range vs {
		out[i*4+0] = byte(v)
		out[i*4+1] = byte(v >> 8)
		out[i*4+2] = byte(v >> 16)
		out[i*4+3] = byte(v >> 24)
	}
	return out
}

// exportBuffers assembles the raw buffer byte slices for an Array,
// following the per-type buffer layout of spec §4.7: a validity bitmap
// (nil when the array carries no nulls) followed by the type's payload
// buffers.
func exportBuffers(a Array) ([][]byte, error) {
	switch a.Kind {
	case KindNumeric:
		return exportNumericBuffers(a.numeric)
	case KindText:
		return exportTextBuffers(a.text)
	case KindTemporal:
		return exportTemporalBuffers(a.temporal)
	case KindBoolean:
		b, _ := a.Boolean()
		return [][]byte{nullMaskBytes(b.NullMask()), b.Values.AsBytes()}, nil
	case KindNull:
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: cannot export array kind %d", contracts.ErrUnsupportedFormat, a.Kind)
	}
}

// nullMaskBytes renders a possibly-absent validity mask as the raw byte
// slice the C Data Interface expects in buffer index 0, or nil when the
// array carries no nulls (a permitted omission per spec §4.7).
func nullMaskBytes(m *bitmask.Bitmask) []byte {
	if m == nil {
		return nil
	}
	return m.AsBytes()
}

func exportNumericBuffers(n NumericArray) ([][]byte, error) {
	switch n.Kind {
	case KindInt8:
		a, _ := n.I8()
		return [][]byte{nullMaskBytes(a.NullMask()), valuesToBytes(a.Values.AsSlice())}, nil
	case KindInt16:
		a, _ := n.I16()
		return [][]byte{nullMaskBytes(a.NullMask()), valuesToBytes(a.Values.AsSlice())}, nil
	case KindInt32:
		a, _ := n.I32()
		return [][]byte{nullMaskBytes(a.NullMask()), valuesToBytes(a.Values.AsSlice())}, nil
	case KindInt64:
		a, _ := n.I64()
		return [][]byte{nullMaskBytes(a.NullMask()), valuesToBytes(a.Values.AsSlice())}, nil
	case KindUint8:
		a, _ := n.U8()
		return [][]byte{nullMaskBytes(a.NullMask()), valuesToBytes(a.Values.AsSlice())}, nil
	case KindUint16:
		a, _ := n.U16()
		return [][]byte{nullMaskBytes(a.NullMask()), valuesToBytes(a.Values.AsSlice())}, nil
	case KindUint32:
		a, _ := n.U32()
		return [][]byte{nullMaskBytes(a.NullMask()), valuesToBytes(a.Values.AsSlice())}, nil
	case KindUint64:
		a, _ := n.U64()
		return [][]byte{nullMaskBytes(a.NullMask()), valuesToBytes(a.Values.AsSlice())}, nil
	case KindFloat32:
		a, _ := n.F32()
		return [][]byte{nullMaskBytes(a.NullMask()), valuesToBytes(a.Values.AsSlice())}, nil
	case KindFloat64:
		a, _ := n.F64()
		return [][]byte{nullMaskBytes(a.NullMask()), valuesToBytes(a.Values.AsSlice())}, nil
	default:
		return nil, fmt.Errorf("%w: numeric kind %d", contracts.ErrUnsupportedFormat, n.Kind)
	}
}

func exportTextBuffers(t TextArray) ([][]byte, error) {
	switch t.Kind {
	case KindUtf8:
		a, _ := t.Utf8()
		return [][]byte{nullMaskBytes(a.NullMask()), valuesToBytes(a.Offsets.AsSlice()), a.Data.AsSlice()}, nil
	case KindLargeUtf8:
		a, _ := t.LargeUtf8()
		return [][]byte{nullMaskBytes(a.NullMask()), valuesToBytes(a.Offsets.AsSlice()), a.Data.AsSlice()}, nil
	case KindCategoricalUint8:
		a, _ := t.Categorical8()
		return [][]byte{nullMaskBytes(a.NullMask()), valuesToBytes(a.Keys.AsSlice())}, nil
	case KindCategoricalUint16:
		a, _ := t.Categorical16()
		return [][]byte{nullMaskBytes(a.NullMask()), valuesToBytes(a.Keys.AsSlice())}, nil
	case KindCategoricalUint32:
		a, _ := t.Categorical32()
		return [][]byte{nullMaskBytes(a.NullMask()), valuesToBytes(a.Keys.AsSlice())}, nil
	case KindCategoricalUint64:
		a, _ := t.Categorical64()
		return [][]byte{nullMaskBytes(a.NullMask()), valuesToBytes(a.Keys.AsSlice())}, nil
	default:
		return nil, fmt.Errorf("%w: text kind %d", contracts.ErrUnsupportedFormat, t.Kind)
	}
}

func exportTemporalBuffers(t TemporalArray) ([][]byte, error) {
	if a, ok := t.I32(); ok {
		return [][]byte{nullMaskBytes(a.NullMask()), valuesToBytes(a.Values.AsSlice())}, nil
	}
	a, _ := t.I64()
	return [][]byte{nullMaskBytes(a.NullMask()), valuesToBytes(a.Values.AsSlice())}, nil
}
