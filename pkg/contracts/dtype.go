// Package contracts holds the shared vocabulary of minarrow: the closed
// logical type enumeration, time units, field metadata and the sentinel
// errors the rest of the module returns. Nothing in this package touches
// buffers or cgo, so every other package can depend on it without risk of
// an import cycle.
package contracts

import "fmt"

// DTypeID enumerates every logical Arrow type this module supports. It is a
// closed set: see spec §3.5 and the Non-goals in spec §1 for what is
// deliberately absent (nested list/struct, union, decimal, run-end
// encoding, binary other than UTF-8).
type DTypeID int

const (
	Null DTypeID = iota
	Int8
	Int16
	Int32
	Int64
	Uint8
	Uint16
	Uint32
	Uint64
	Float32
	Float64
	Boolean
	Utf8
	LargeUtf8
	Date32
	Date64
	Time32
	Time64
	Timestamp
	Duration32
	Duration64
	DictionaryUint8
	DictionaryUint16
	DictionaryUint32
	DictionaryUint64
)

// TimeUnit is the physical resolution of a temporal value, shared by
// Time32/64, Timestamp and Duration32/64 per spec §3.3.3.
type TimeUnit int

const (
	Seconds TimeUnit = iota
	Milliseconds
	Microseconds
	Nanoseconds
	Days
)

func (u TimeUnit) String() string {
	switch u {
	case Seconds:
		return "s"
	case Milliseconds:
		return "ms"
	case Microseconds:
		return "us"
	case Nanoseconds:
		return "ns"
	case Days:
		return "days"
	default:
		return "unknown"
	}
}

// TimeZone wraps a timestamp's IANA zone identifier. An empty TimeZone is
// valid and means "naive" per the Arrow format string spec (an empty tz
// segment in "tss:<tz>" etc.) — see spec §6.1.
type TimeZone string

// IsNaive reports whether the timestamp carries no zone information.
func (tz TimeZone) IsNaive() bool { return tz == "" }

// DType is the closed tagged variant of spec §3.5's ArrowType. Fields
// outside those relevant to ID are zero-valued; e.g. Unit/TimeZone only
// matter for Time32/Time64/Timestamp/Duration32/Duration64, and Dict only
// for the Dictionary* variants.
type DType struct {
	ID       DTypeID
	Unit     TimeUnit
	TimeZone TimeZone
	// Dict is the dictionary value type for DictionaryUint* IDs. Per spec
	// §4.3.2 the value type is always a string dictionary in this module.
	Dict *DType
}

// String renders a human-readable type name, in the spirit of
// arrow.DataType.String() used throughout the example pack.
func (d DType) String() string {
	switch d.ID {
	case Null:
		return "null"
	case Int8, Int16, Int32, Int64, Uint8, Uint16, Uint32, Uint64, Float32, Float64, Boolean, Utf8, LargeUtf8:
		return simpleTypeNames[d.ID]
	case Date32:
		return "date32[day]"
	case Date64:
		return "date64[ms]"
	case Time32:
		return fmt.Sprintf("time32[%s]", d.Unit)
	case Time64:
		return fmt.Sprintf("time64[%s]", d.Unit)
	case Timestamp:
		if d.TimeZone.IsNaive() {
			return fmt.Sprintf("timestamp[%s]", d.Unit)
		}
		return fmt.Sprintf("timestamp[%s, tz=%s]", d.Unit, d.TimeZone)
	case Duration32, Duration64:
		return fmt.Sprintf("duration[%s]", d.Unit)
	case DictionaryUint8, DictionaryUint16, DictionaryUint32, DictionaryUint64:
		return fmt.Sprintf("dictionary<%s, %s>", simpleTypeNames[codeType(d.ID)], d.Dict)
	default:
		return "unknown"
	}
}

var simpleTypeNames = map[DTypeID]string{
	Int8: "int8", Int16: "int16", Int32: "int32", Int64: "int64",
	Uint8: "uint8", Uint16: "uint16", Uint32: "uint32", Uint64: "uint64",
	Float32: "float32", Float64: "float64", Boolean: "bool",
	Utf8: "utf8", LargeUtf8: "large_utf8",
}

func codeType(id DTypeID) DTypeID {
	switch id {
	case DictionaryUint8:
		return Uint8
	case DictionaryUint16:
		return Uint16
	case DictionaryUint32:
		return Uint32
	default:
		return Uint64
	}
}

// IsNumeric reports whether the type belongs in the NumericArray union.
func (d DType) IsNumeric() bool {
	switch d.ID {
	case Int8, Int16, Int32, Int64, Uint8, Uint16, Uint32, Uint64, Float32, Float64:
		return true
	default:
		return false
	}
}

// IsText reports whether the type belongs in the TextArray union.
func (d DType) IsText() bool {
	switch d.ID {
	case Utf8, LargeUtf8, DictionaryUint8, DictionaryUint16, DictionaryUint32, DictionaryUint64:
		return true
	default:
		return false
	}
}

// IsTemporal reports whether the type belongs in the TemporalArray union.
func (d DType) IsTemporal() bool {
	switch d.ID {
	case Date32, Date64, Time32, Time64, Timestamp, Duration32, Duration64:
		return true
	default:
		return false
	}
}

// MarshalJSON renders the DType the way a field's metadata would need to be
// serialised for interchange with JSON-speaking tooling (see SPEC_FULL.md
// domain-stack wiring for encoding/json usage).
func (d DType) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}
