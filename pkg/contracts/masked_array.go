package contracts

// MaskedArray is the common contract every typed inner array in
// pkg/internal/arrays satisfies (spec §4.3). It is intentionally narrow —
// just enough for a caller holding only this interface to answer "how long
// is this, and which positions are null" without knowing the concrete
// value type, mirroring how arrow.Array (github.com/apache/arrow/go/v17)
// exposes Len()/IsNull()/NullN() across every concrete array kind in the
// example pack.
type MaskedArray interface {
	Len() int
	NullCount() int
	IsNull(i int) bool
	HasNulls() bool
	// Offset returns the element offset this array carries into whatever
	// buffers back it (spec §4.7's ArrowArray.offset) — 0 for an array
	// that owns its buffers outright, nonzero for a window produced by
	// Slice sharing a parent's storage (spec §4.6, §9).
	Offset() int
}
