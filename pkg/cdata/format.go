package cdata

import (
	"fmt"
	"strings"

	"github.com/minarrow-go/minarrow/pkg/contracts"
)

// FormatForDType renders the Arrow C Data Interface format string for a
// logical type (spec §6.1). Dictionary types are represented purely by
// their index width here; the value type travels in the separate
// dictionary schema child, exactly as the C Data Interface specifies.
func FormatForDType(d contracts.DType) (string, error) {
	switch d.ID {
	case contracts.Null:
		return "n", nil
	case contracts.Boolean:
		return "b", nil
	case contracts.Int8:
		return "c", nil
	case contracts.Uint8:
		return "C", nil
	case contracts.Int16:
		return "s", nil
	case contracts.Uint16:
		return "S", nil
	case contracts.Int32:
		return "i", nil
	case contracts.Uint32:
		return "I", nil
	case contracts.Int64:
		return "l", nil
	case contracts.Uint64:
		return "L", nil
	case contracts.Float32:
		return "f", nil
	case contracts.Float64:
		return "g", nil
	case contracts.Utf8:
		return "u", nil
	case contracts.LargeUtf8:
		return "U", nil
	case contracts.Date32:
		return "tdD", nil
	case contracts.Date64:
		return "tdm", nil
	case contracts.Time32:
		return formatTime32(d.Unit)
	case contracts.Time64:
		return formatTime64(d.Unit)
	case contracts.Timestamp:
		return formatTimestamp(d.Unit, d.TimeZone)
	case contracts.Duration32, contracts.Duration64:
		return formatDuration(d.Unit)
	case contracts.DictionaryUint8:
		return "C", nil
	case contracts.DictionaryUint16:
		return "S", nil
	case contracts.DictionaryUint32:
		return "I", nil
	case contracts.DictionaryUint64:
		return "L", nil
	default:
		return "", fmt.Errorf("%w: dtype %v has no C Data Interface format", contracts.ErrUnsupportedFormat, d)
	}
}

func formatTime32(u contracts.TimeUnit) (string, error) {
	switch u {
	case contracts.Seconds:
		return "tts", nil
	case contracts.Milliseconds:
		return "ttm", nil
	default:
		return "", fmt.Errorf("%w: time32 unit %s", contracts.ErrUnsupportedFormat, u)
	}
}

func formatTime64(u contracts.TimeUnit) (string, error) {
	switch u {
	case contracts.Microseconds:
		return "ttu", nil
	case contracts.Nanoseconds:
		return "ttn", nil
	default:
		return "", fmt.Errorf("%w: time64 unit %s", contracts.ErrUnsupportedFormat, u)
	}
}

func formatTimestamp(u contracts.TimeUnit, tz contracts.TimeZone) (string, error) {
	var code string
	switch u {
	case contracts.Seconds:
		code = "tss"
	case contracts.Milliseconds:
		code = "tsm"
	case contracts.Microseconds:
		code = "tsu"
	case contracts.Nanoseconds:
		code = "tsn"
	default:
		return "", fmt.Errorf("%w: timestamp unit %s", contracts.ErrUnsupportedFormat, u)
	}
	return code + ":" + string(tz), nil
}

func formatDuration(u contracts.TimeUnit) (string, error) {
	switch u {
	case contracts.Seconds:
		return "tDs", nil
	case contracts.Milliseconds:
		return "tDm", nil
	case contracts.Microseconds:
		return "tDu", nil
	case contracts.Nanoseconds:
		return "tDn", nil
	default:
		return "", fmt.Errorf("%w: duration unit %s", contracts.ErrUnsupportedFormat, u)
	}
}

// DTypeForFormat parses an Arrow format string back into a DType, the
// inverse of FormatForDType. isDictionary indicates the format was read
// from an ArrowSchema whose dictionary field is non-nil, so the caller
// should wrap the result as the matching DictionaryUint* variant.
func DTypeForFormat(format string, isDictionary bool) (contracts.DType, error) {
	if isDictionary {
		return dictIndexDType(format)
	}
	switch format {
	case "n":
		return contracts.DType{ID: contracts.Null}, nil
	case "b":
		return contracts.DType{ID: contracts.Boolean}, nil
	case "c":
		return contracts.DType{ID: contracts.Int8}, nil
	case "C":
		return contracts.DType{ID: contracts.Uint8}, nil
	case "s":
		return contracts.DType{ID: contracts.Int16}, nil
	case "S":
		return contracts.DType{ID: contracts.Uint16}, nil
	case "i":
		return contracts.DType{ID: contracts.Int32}, nil
	case "I":
		return contracts.DType{ID: contracts.Uint32}, nil
	case "l":
		return contracts.DType{ID: contracts.Int64}, nil
	case "L":
		return contracts.DType{ID: contracts.Uint64}, nil
	case "f":
		return contracts.DType{ID: contracts.Float32}, nil
	case "g":
		return contracts.DType{ID: contracts.Float64}, nil
	case "u":
		return contracts.DType{ID: contracts.Utf8}, nil
	case "U":
		return contracts.DType{ID: contracts.LargeUtf8}, nil
	case "tdD":
		return contracts.DType{ID: contracts.Date32}, nil
	case "tdm":
		return contracts.DType{ID: contracts.Date64}, nil
	case "tts":
		return contracts.DType{ID: contracts.Time32, Unit: contracts.Seconds}, nil
	case "ttm":
		return contracts.DType{ID: contracts.Time32, Unit: contracts.Milliseconds}, nil
	case "ttu":
		return contracts.DType{ID: contracts.Time64, Unit: contracts.Microseconds}, nil
	case "ttn":
		return contracts.DType{ID: contracts.Time64, Unit: contracts.Nanoseconds}, nil
	case "tDs":
		return contracts.DType{ID: contracts.Duration32, Unit: contracts.Seconds}, nil
	case "tDm":
		return contracts.DType{ID: contracts.Duration32, Unit: contracts.Milliseconds}, nil
	case "tDu":
		return contracts.DType{ID: contracts.Duration64, Unit: contracts.Microseconds}, nil
	case "tDn":
		return contracts.DType{ID: contracts.Duration64, Unit: contracts.Nanoseconds}, nil
	}
	if strings.HasPrefix(format, "tss:") {
		return contracts.DType{ID: contracts.Timestamp, Unit: contracts.Seconds, TimeZone: contracts.TimeZone(format[4:])}, nil
	}
	if strings.HasPrefix(format, "tsm:") {
		return contracts.DType{ID: contracts.Timestamp, Unit: contracts.Milliseconds, TimeZone: contracts.TimeZone(format[4:])}, nil
	}
	if strings.HasPrefix(format, "tsu:") {
		return contracts.DType{ID: contracts.Timestamp, Unit: contracts.Microseconds, TimeZone: contracts.TimeZone(format[4:])}, nil
	}
	if strings.HasPrefix(format, "tsn:") {
		return contracts.DType{ID: contracts.Timestamp, Unit: contracts.Nanoseconds, TimeZone: contracts.TimeZone(format[4:])}, nil
	}
	return contracts.DType{}, fmt.Errorf("%w: %q", contracts.ErrUnsupportedFormat, format)
}

func dictIndexDType(format string) (contracts.DType, error) {
	switch format {
	case "C":
		return contracts.DType{ID: contracts.DictionaryUint8}, nil
	case "S":
		return contracts.DType{ID: contracts.DictionaryUint16}, nil
	case "I":
		return contracts.DType{ID: contracts.DictionaryUint32}, nil
	case "L":
		return contracts.DType{ID: contracts.DictionaryUint64}, nil
	default:
		return contracts.DType{}, fmt.Errorf("%w: dictionary index format %q", contracts.ErrUnsupportedFormat, format)
	}
}

// BufferCount returns how many buffers an ArrowArray of this DType must
// carry, per spec §4.7's per-type buffer-count table: validity is always
// buffer 0 (present or not depending on nullability upstream), followed
// by the type-specific payload buffers.
func BufferCount(d contracts.DType) int {
	switch d.ID {
	case contracts.Null:
		return 0
	case contracts.Utf8, contracts.LargeUtf8:
		return 3 // validity, offsets, data
	default:
		return 2 // validity, values
	}
}
