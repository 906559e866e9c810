package contracts

import "errors"

// Sentinel errors for the construction-failure class of spec §7.2:
// unsupported Arrow format strings, buffer-count mismatches, invalid UTF-8,
// and a missing release callback on an imported C struct. These are never
// panics — they are returned to the caller exactly like the teacher wraps
// every FFI failure into a returned error instead of aborting.
var (
	ErrUnsupportedFormat = errors.New("minarrow: unsupported arrow format string")
	ErrBufferMismatch    = errors.New("minarrow: buffer count does not match expected shape")
	ErrInvalidUTF8       = errors.New("minarrow: string array contains invalid utf-8")
	ErrNilRelease        = errors.New("minarrow: imported ArrowArray/ArrowSchema has a nil release callback")
	ErrNonMonotonicOffset = errors.New("minarrow: string offsets are not monotonically non-decreasing")
	ErrColumnNotFound    = errors.New("minarrow: no column with the requested name")
	ErrLengthMismatch    = errors.New("minarrow: column length does not match the table's row count")
	ErrWindowOutOfBounds = errors.New("minarrow: slice window exceeds the array's bounds")
	ErrStreamFailure     = errors.New("minarrow: record batch stream callback failed")
)
