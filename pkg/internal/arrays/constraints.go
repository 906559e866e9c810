// Package arrays implements the closed family of concrete inner array
// variants (spec §3.2/§4.2): integer, float, boolean, string, categorical
// and datetime storage, each pairing a typed buffer.Buffer with a
// bitmask.Bitmask validity mask. These are the leaves the three semantic
// unions in pkg/minarrow (NumericArray/TextArray/TemporalArray) and the
// top-level Array union dispatch onto.
package arrays

// Integer is the set of fixed-width signed/unsigned integer storage types
// a generic IntegerArray[T] may hold (spec §3.3.1).
type Integer interface {
	int8 | int16 | int32 | int64 | uint8 | uint16 | uint32 | uint64
}

// Float is the set of floating point storage types a generic
// FloatArray[T] may hold (spec §3.3.1).
type Float interface {
	float32 | float64
}

// Offset is the set of offset-buffer integer widths a generic
// StringArray[O] may use to index into its values buffer (spec §3.3.2):
// int32 for Utf8, int64 for LargeUtf8.
type Offset interface {
	int32 | int64
}

// Code is the set of dictionary key widths a generic CategoricalArray[K]
// may use (spec §3.4): uint8/16/32/64, matching the DictionaryUint*
// DTypeID family.
type Code interface {
	uint8 | uint16 | uint32 | uint64
}

// DatetimeStorage is the set of physical storage widths a generic
// DatetimeArray[T] may hold (spec §3.3.3): int32 for Date32/Time32,
// int64 for Date64/Time64/Timestamp/Duration64, with Duration32 also
// using int32.
type DatetimeStorage interface {
	int32 | int64
}
