package minarrow

import "github.com/minarrow-go/minarrow/pkg/internal/arrays"

// ArrayKind discriminates which of the three semantic unions, or the
// standalone Boolean/Null variants, an Array holds (spec §3.2, the
// top-level union one layer above NumericArray/TextArray/TemporalArray).
type ArrayKind int

const (
	KindNumeric ArrayKind = iota
	KindText
	KindTemporal
	KindBoolean
	KindNull
)

// Array is the single top-level tagged union every column in a Table
// holds (spec §3.2). Exactly one payload field is populated, matching
// Kind; KindNull carries no payload at all, only a logical length.
type Array struct {
	Kind ArrayKind

	numeric  NumericArray
	text     TextArray
	temporal TemporalArray
	boolean  *arrays.BooleanArray
	nullLen  int
}

func NewArrayNumeric(n NumericArray) Array   { return Array{Kind: KindNumeric, numeric: n} }
func NewArrayText(t TextArray) Array         { return Array{Kind: KindText, text: t} }
func NewArrayTemporal(t TemporalArray) Array { return Array{Kind: KindTemporal, temporal: t} }
func NewArrayBoolean(b *arrays.BooleanArray) Array {
	return Array{Kind: KindBoolean, boolean: b}
}

// NewArrayNull builds a length-n array of all nulls with no backing
// storage at all, per spec §3.3's Null DType.
func NewArrayNull(n int) Array { return Array{Kind: KindNull, nullLen: n} }

func (a Array) Numeric() (NumericArray, bool)   { return a.numeric, a.Kind == KindNumeric }
func (a Array) Text() (TextArray, bool)         { return a.text, a.Kind == KindText }
func (a Array) Temporal() (TemporalArray, bool) { return a.temporal, a.Kind == KindTemporal }
func (a Array) Boolean() (*arrays.BooleanArray, bool) {
	return a.boolean, a.Kind == KindBoolean
}

// Len returns the number of logical elements, regardless of Kind.
func (a Array) Len() int {
	switch a.Kind {
	case KindNumeric:
		return a.numeric.Len()
	case KindText:
		return a.text.Len()
	case KindTemporal:
		return a.temporal.Len()
	case KindBoolean:
		return a.boolean.Len()
	case KindNull:
		return a.nullLen
	default:
		panic("minarrow: invalid Array kind")
	}
}

// NullCount returns the number of null positions. A KindNull array is
// null at every position by definition.
func (a Array) NullCount() int {
	switch a.Kind {
	case KindNumeric:
		return a.numeric.NullCount()
	case KindText:
		return a.text.NullCount()
	case KindTemporal:
		return a.temporal.NullCount()
	case KindBoolean:
		return a.boolean.NullCount()
	case KindNull:
		return a.nullLen
	default:
		panic("minarrow: invalid Array kind")
	}
}

// IsNull reports whether position i is null.
func (a Array) IsNull(i int) bool {
	switch a.Kind {
	case KindNumeric:
		return a.numeric.IsNull(i)
	case KindText:
		return a.text.IsNull(i)
	case KindTemporal:
		return a.temporal.IsNull(i)
	case KindBoolean:
		return a.boolean.IsNull(i)
	case KindNull:
		return true
	default:
		panic("minarrow: invalid Array kind")
	}
}

func (a Array) HasNulls() bool { return a.NullCount() > 0 }

// Offset returns the element offset this array carries into whatever
// buffers back it (spec §4.7's ArrowArray.offset) — always 0 for a
// KindNull array, since it has no backing storage to carry an offset
// into.
func (a Array) Offset() int {
	switch a.Kind {
	case KindNumeric:
		return a.numeric.Offset()
	case KindText:
		return a.text.Offset()
	case KindTemporal:
		return a.temporal.Offset()
	case KindBoolean:
		return a.boolean.Offset()
	case KindNull:
		return 0
	default:
		panic("minarrow: invalid Array kind")
	}
}

// Slice returns a window [offset, offset+length) of the same Kind,
// sharing the parent's buffers rather than copying them: for
// buffer-continuous types this is a metadata-only offset/length tweak
// (spec §4.6, §9). Materialising an independent copy is ArrayView's
// ToOwned, one layer up.
func (a Array) Slice(offset, length int) Array {
	if offset < 0 || length < 0 || offset+length > a.Len() {
		panic("minarrow: slice window out of bounds")
	}
	switch a.Kind {
	case KindNumeric:
		return NewArrayNumeric(a.numeric.Slice(offset, length))
	case KindText:
		return NewArrayText(a.text.Slice(offset, length))
	case KindTemporal:
		return NewArrayTemporal(a.temporal.Slice(offset, length))
	case KindBoolean:
		return NewArrayBoolean(a.boolean.Slice(offset, length))
	case KindNull:
		return NewArrayNull(length)
	default:
		panic("minarrow: invalid Array kind")
	}
}
