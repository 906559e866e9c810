package minarrow

import (
	"github.com/minarrow-go/minarrow/pkg/internal/arrays"
)

// TextKind discriminates the concrete variant held by a TextArray (spec
// §3.3.2/§3.4): plain Utf8/LargeUtf8 storage, or one of the dictionary
// key widths for categorical storage.
type TextKind int

const (
	KindUtf8 TextKind = iota
	KindLargeUtf8
	KindCategoricalUint8
	KindCategoricalUint16
	KindCategoricalUint32
	KindCategoricalUint64
)

// TextArray is the semantic-group union over string-like inner arrays.
type TextArray struct {
	Kind TextKind

	utf8  *arrays.StringArray[int32]
	large *arrays.StringArray[int64]
	cat8  *arrays.CategoricalArray[uint8]
	cat16 *arrays.CategoricalArray[uint16]
	cat32 *arrays.CategoricalArray[uint32]
	cat64 *arrays.CategoricalArray[uint64]
}

func NewTextUtf8(a *arrays.StringArray[int32]) TextArray {
	return TextArray{Kind: KindUtf8, utf8: a}
}
func NewTextLargeUtf8(a *arrays.StringArray[int64]) TextArray {
	return TextArray{Kind: KindLargeUtf8, large: a}
}
func NewTextCategorical8(a *arrays.CategoricalArray[uint8]) TextArray {
	return TextArray{Kind: KindCategoricalUint8, cat8: a}
}
func NewTextCategorical16(a *arrays.CategoricalArray[uint16]) TextArray {
	return TextArray{Kind: KindCategoricalUint16, cat16: a}
}
func NewTextCategorical32(a *arrays.CategoricalArray[uint32]) TextArray {
	return TextArray{Kind: KindCategoricalUint32, cat32: a}
}
func NewTextCategorical64(a *arrays.CategoricalArray[uint64]) TextArray {
	return TextArray{Kind: KindCategoricalUint64, cat64: a}
}

func (t TextArray) Utf8() (*arrays.StringArray[int32], bool) { return t.utf8, t.Kind == KindUtf8 }
func (t TextArray) LargeUtf8() (*arrays.StringArray[int64], bool) {
	return t.large, t.Kind == KindLargeUtf8
}
func (t TextArray) Categorical8() (*arrays.CategoricalArray[uint8], bool) {
	return t.cat8, t.Kind == KindCategoricalUint8
}
func (t TextArray) Categorical16() (*arrays.CategoricalArray[uint16], bool) {
	return t.cat16, t.Kind == KindCategoricalUint16
}
func (t TextArray) Categorical32() (*arrays.CategoricalArray[uint32], bool) {
	return t.cat32, t.Kind == KindCategoricalUint32
}
func (t TextArray) Categorical64() (*arrays.CategoricalArray[uint64], bool) {
	return t.cat64, t.Kind == KindCategoricalUint64
}

func (t TextArray) masked() maskedArray {
	switch t.Kind {
	case KindUtf8:
		return t.utf8
	case KindLargeUtf8:
		return t.large
	case KindCategoricalUint8:
		return t.cat8
	case KindCategoricalUint16:
		return t.cat16
	case KindCategoricalUint32:
		return t.cat32
	case KindCategoricalUint64:
		return t.cat64
	default:
		panic("minarrow: invalid TextArray kind")
	}
}

func (t TextArray) Len() int         { return t.masked().Len() }
func (t TextArray) NullCount() int   { return t.masked().NullCount() }
func (t TextArray) IsNull(i int) bool { return t.masked().IsNull(i) }
func (t TextArray) HasNulls() bool   { return t.masked().HasNulls() }
func (t TextArray) Offset() int      { return t.masked().Offset() }

// Get decodes the string at i regardless of whether the underlying
// storage is plain or dictionary-encoded, the one accessor spec §3.4
// requires to be kind-agnostic.
func (t TextArray) Get(i int) string {
	switch t.Kind {
	case KindUtf8:
		return t.utf8.Get(i)
	case KindLargeUtf8:
		return t.large.Get(i)
	case KindCategoricalUint8:
		return t.cat8.Get(i)
	case KindCategoricalUint16:
		return t.cat16.Get(i)
	case KindCategoricalUint32:
		return t.cat32.Get(i)
	case KindCategoricalUint64:
		return t.cat64.Get(i)
	default:
		panic("minarrow: invalid TextArray kind")
	}
}

// Slice returns a window [offset, offset+length) of the same Kind,
// sharing the concrete inner array's buffers rather than copying them
// (spec §4.6, §9) — each arrays.*.Slice call below is itself O(1).
func (t TextArray) Slice(offset, length int) TextArray {
	switch t.Kind {
	case KindUtf8:
		return NewTextUtf8(t.utf8.Slice(offset, length))
	case KindLargeUtf8:
		return NewTextLargeUtf8(t.large.Slice(offset, length))
	case KindCategoricalUint8:
		return NewTextCategorical8(t.cat8.Slice(offset, length))
	case KindCategoricalUint16:
		return NewTextCategorical16(t.cat16.Slice(offset, length))
	case KindCategoricalUint32:
		return NewTextCategorical32(t.cat32.Slice(offset, length))
	case KindCategoricalUint64:
		return NewTextCategorical64(t.cat64.Slice(offset, length))
	default:
		panic("minarrow: invalid TextArray kind")
	}
}
