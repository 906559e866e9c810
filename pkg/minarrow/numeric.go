package minarrow

import (
	"github.com/minarrow-go/minarrow/pkg/internal/arrays"
)

// NumericKind discriminates the concrete variant held by a NumericArray
// (spec §3.3.1). It plays the role the original source's NumericArray
// enum discriminant plays, translated from a Rust sum type into an
// explicit tag plus a matching concrete payload field.
type NumericKind int

const (
	KindInt8 NumericKind = iota
	KindInt16
	KindInt32
	KindInt64
	KindUint8
	KindUint16
	KindUint32
	KindUint64
	KindFloat32
	KindFloat64
)

// NumericArray is the semantic-group union over every fixed-width numeric
// inner array (spec §3.3.1, second union layer over the closed family of
// variants from pkg/internal/arrays). Exactly one of the typed fields is
// non-nil, matching Kind.
type NumericArray struct {
	Kind NumericKind

	i8  *arrays.IntegerArray[int8]
	i16 *arrays.IntegerArray[int16]
	i32 *arrays.IntegerArray[int32]
	i64 *arrays.IntegerArray[int64]
	u8  *arrays.IntegerArray[uint8]
	u16 *arrays.IntegerArray[uint16]
	u32 *arrays.IntegerArray[uint32]
	u64 *arrays.IntegerArray[uint64]
	f32 *arrays.FloatArray[float32]
	f64 *arrays.FloatArray[float64]
}

func NewNumericInt8(a *arrays.IntegerArray[int8]) NumericArray {
	return NumericArray{Kind: KindInt8, i8: a}
}
func NewNumericInt16(a *arrays.IntegerArray[int16]) NumericArray {
	return NumericArray{Kind: KindInt16, i16: a}
}
func NewNumericInt32(a *arrays.IntegerArray[int32]) NumericArray {
	return NumericArray{Kind: KindInt32, i32: a}
}
func NewNumericInt64(a *arrays.IntegerArray[int64]) NumericArray {
	return NumericArray{Kind: KindInt64, i64: a}
}
func NewNumericUint8(a *arrays.IntegerArray[uint8]) NumericArray {
	return NumericArray{Kind: KindUint8, u8: a}
}
func NewNumericUint16(a *arrays.IntegerArray[uint16]) NumericArray {
	return NumericArray{Kind: KindUint16, u16: a}
}
func NewNumericUint32(a *arrays.IntegerArray[uint32]) NumericArray {
	return NumericArray{Kind: KindUint32, u32: a}
}
func NewNumericUint64(a *arrays.IntegerArray[uint64]) NumericArray {
	return NumericArray{Kind: KindUint64, u64: a}
}
func NewNumericFloat32(a *arrays.FloatArray[float32]) NumericArray {
	return NumericArray{Kind: KindFloat32, f32: a}
}
func NewNumericFloat64(a *arrays.FloatArray[float64]) NumericArray {
	return NumericArray{Kind: KindFloat64, f64: a}
}

// I8 returns the int8 payload and whether Kind == KindInt8, the comma-ok
// style of union access required by spec §7.3 (never a panic for a
// Kind mismatch, since asking "is this an int8 array" is a normal query,
// not a precondition violation).
func (n NumericArray) I8() (*arrays.IntegerArray[int8], bool) { return n.i8, n.Kind == KindInt8 }
func (n NumericArray) I16() (*arrays.IntegerArray[int16], bool) {
	return n.i16, n.Kind == KindInt16
}
func (n NumericArray) I32() (*arrays.IntegerArray[int32], bool) {
	return n.i32, n.Kind == KindInt32
}
func (n NumericArray) I64() (*arrays.IntegerArray[int64], bool) {
	return n.i64, n.Kind == KindInt64
}
func (n NumericArray) U8() (*arrays.IntegerArray[uint8], bool) { return n.u8, n.Kind == KindUint8 }
func (n NumericArray) U16() (*arrays.IntegerArray[uint16], bool) {
	return n.u16, n.Kind == KindUint16
}
func (n NumericArray) U32() (*arrays.IntegerArray[uint32], bool) {
	return n.u32, n.Kind == KindUint32
}
func (n NumericArray) U64() (*arrays.IntegerArray[uint64], bool) {
	return n.u64, n.Kind == KindUint64
}
func (n NumericArray) F32() (*arrays.FloatArray[float32], bool) {
	return n.f32, n.Kind == KindFloat32
}
func (n NumericArray) F64() (*arrays.FloatArray[float64], bool) {
	return n.f64, n.Kind == KindFloat64
}

// masked returns the underlying concrete array as a contracts.MaskedArray,
// used by Len/NullCount/IsNull below so the union need not repeat a
// ten-way switch in every method.
func (n NumericArray) masked() maskedArray {
	switch n.Kind {
	case KindInt8:
		return n.i8
	case KindInt16:
		return n.i16
	case KindInt32:
		return n.i32
	case KindInt64:
		return n.i64
	case KindUint8:
		return n.u8
	case KindUint16:
		return n.u16
	case KindUint32:
		return n.u32
	case KindUint64:
		return n.u64
	case KindFloat32:
		return n.f32
	case KindFloat64:
		return n.f64
	default:
		panic("minarrow: invalid NumericArray kind")
	}
}

func (n NumericArray) Len() int        { return n.masked().Len() }
func (n NumericArray) NullCount() int  { return n.masked().NullCount() }
func (n NumericArray) IsNull(i int) bool { return n.masked().IsNull(i) }
func (n NumericArray) HasNulls() bool  { return n.masked().HasNulls() }
func (n NumericArray) Offset() int     { return n.masked().Offset() }

// Slice returns a window [offset, offset+length) of the same Kind,
// sharing the concrete inner array's buffers rather than copying them
// (spec §4.6, §9) — each arrays.*.Slice call below is itself O(1).
func (n NumericArray) Slice(offset, length int) NumericArray {
	switch n.Kind {
	case KindInt8:
		return NewNumericInt8(n.i8.Slice(offset, length))
	case KindInt16:
		return NewNumericInt16(n.i16.Slice(offset, length))
	case KindInt32:
		return NewNumericInt32(n.i32.Slice(offset, length))
	case KindInt64:
		return NewNumericInt64(n.i64.Slice(offset, length))
	case KindUint8:
		return NewNumericUint8(n.u8.Slice(offset, length))
	case KindUint16:
		return NewNumericUint16(n.u16.Slice(offset, length))
	case KindUint32:
		return NewNumericUint32(n.u32.Slice(offset, length))
	case KindUint64:
		return NewNumericUint64(n.u64.Slice(offset, length))
	case KindFloat32:
		return NewNumericFloat32(n.f32.Slice(offset, length))
	case KindFloat64:
		return NewNumericFloat64(n.f64.Slice(offset, length))
	default:
		panic("minarrow: invalid NumericArray kind")
	}
}
