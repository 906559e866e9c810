package minarrow

import (
	"github.com/minarrow-go/minarrow/pkg/contracts"
	"github.com/minarrow-go/minarrow/pkg/internal/arrays"
)

// TemporalKind discriminates the concrete temporal DType a TemporalArray
// holds (spec §3.3.3). Date32/Time32/Duration32 share int32 storage;
// Date64/Time64/Timestamp/Duration64 share int64 storage, but are kept
// as distinct Kind values since their semantics (epoch, valid units)
// differ even when the physical width does not.
type TemporalKind int

const (
	KindDate32 TemporalKind = iota
	KindDate64
	KindTime32
	KindTime64
	KindTimestamp
	KindDuration32
	KindDuration64
)

// TemporalArray is the semantic-group union over every temporal inner array.
type TemporalArray struct {
	Kind     TemporalKind
	Unit     contracts.TimeUnit
	TimeZone contracts.TimeZone // only meaningful when Kind == KindTimestamp

	i32 *arrays.DatetimeArray[int32]
	i64 *arrays.DatetimeArray[int64]
}

func newTemporal32(kind TemporalKind, a *arrays.DatetimeArray[int32]) TemporalArray {
	return TemporalArray{Kind: kind, Unit: a.Unit, i32: a}
}

func newTemporal64(kind TemporalKind, a *arrays.DatetimeArray[int64]) TemporalArray {
	return TemporalArray{Kind: kind, Unit: a.Unit, i64: a}
}

func NewTemporalDate32(a *arrays.DatetimeArray[int32]) TemporalArray {
	return newTemporal32(KindDate32, a)
}
func NewTemporalDate64(a *arrays.DatetimeArray[int64]) TemporalArray {
	return newTemporal64(KindDate64, a)
}
func NewTemporalTime32(a *arrays.DatetimeArray[int32]) TemporalArray {
	return newTemporal32(KindTime32, a)
}
func NewTemporalTime64(a *arrays.DatetimeArray[int64]) TemporalArray {
	return newTemporal64(KindTime64, a)
}
func NewTemporalDuration32(a *arrays.DatetimeArray[int32]) TemporalArray {
	return newTemporal32(KindDuration32, a)
}
func NewTemporalDuration64(a *arrays.DatetimeArray[int64]) TemporalArray {
	return newTemporal64(KindDuration64, a)
}

// NewTemporalTimestamp builds a Timestamp TemporalArray, the one variant
// that also carries a TimeZone (spec §3.3.3).
func NewTemporalTimestamp(a *arrays.DatetimeArray[int64], tz contracts.TimeZone) TemporalArray {
	t := newTemporal64(KindTimestamp, a)
	t.TimeZone = tz
	return t
}

func (t TemporalArray) I32() (*arrays.DatetimeArray[int32], bool) {
	return t.i32, t.i32 != nil
}
func (t TemporalArray) I64() (*arrays.DatetimeArray[int64], bool) {
	return t.i64, t.i64 != nil
}

func (t TemporalArray) masked() maskedArray {
	if t.i32 != nil {
		return t.i32
	}
	return t.i64
}

func (t TemporalArray) Len() int         { return t.masked().Len() }
func (t TemporalArray) NullCount() int   { return t.masked().NullCount() }
func (t TemporalArray) IsNull(i int) bool { return t.masked().IsNull(i) }
func (t TemporalArray) HasNulls() bool   { return t.masked().HasNulls() }
func (t TemporalArray) Offset() int      { return t.masked().Offset() }

// AddUnits shifts every non-null value by delta physical units,
// preserving Kind/Unit/TimeZone. A simplified stand-in for the original
// source's calendar-aware add_duration/add_days/add_months/add_years
// (original_source/src/structs/variants/datetime/datetime_ops.rs),
// supplemented per SPEC_FULL.md §5 as a flat shift with no unit
// conversion or calendar awareness.
func (t TemporalArray) AddUnits(delta int64) TemporalArray {
	out := t
	if t.i32 != nil {
		out.i32 = t.i32.AddUnits(int32(delta))
	} else {
		out.i64 = t.i64.AddUnits(delta)
	}
	return out
}

// Slice returns a window [offset, offset+length) of the same Kind,
// sharing the concrete inner array's buffers rather than copying them
// (spec §4.6, §9) — each arrays.*.Slice call below is itself O(1).
func (t TemporalArray) Slice(offset, length int) TemporalArray {
	out := t
	if t.i32 != nil {
		out.i32 = t.i32.Slice(offset, length)
	} else {
		out.i64 = t.i64.Slice(offset, length)
	}
	return out
}
