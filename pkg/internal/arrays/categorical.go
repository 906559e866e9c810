package arrays

import (
	"github.com/minarrow-go/minarrow/pkg/internal/bitmask"
	"github.com/minarrow-go/minarrow/pkg/internal/buffer"
)

// CategoricalArray is the concrete storage for the DictionaryUint*
// family (spec §3.4): an array of dictionary keys of width K plus a
// shared Utf8 dictionary of distinct values. This module only supports
// string dictionaries (spec §4.3.2), matching the original's
// CategoricalArray<T> restricted to the value type used throughout the
// spec's seed scenarios. offset/length carry a logical window over Keys
// so Slice shares Keys/Dictionary instead of copying them (spec §4.6, §9).
type CategoricalArray[K Code] struct {
	Keys       *buffer.Buffer[K]
	Dictionary []string
	// index speeds up Push-by-value by mapping each distinct string to
	// its key; it is rebuilt, never persisted, so it need not survive
	// a C Data Interface round trip.
	index  map[string]K
	Nulls  *bitmask.Bitmask
	offset int
	length int
}

func NewCategoricalArray[K Code]() *CategoricalArray[K] {
	return &CategoricalArray[K]{
		Keys:  buffer.New[K](),
		index: make(map[string]K),
	}
}

// NewCategoricalArrayFrom builds a CategoricalArray over an
// already-constructed keys/nulls buffer and decoded dictionary, e.g. when
// reconstructing from imported raw bytes (spec §4.7.2). index is left
// nil and lazily rebuilt on the first Push-by-value, same as a struct
// literal built from only this type's exported fields.
func NewCategoricalArrayFrom[K Code](keys *buffer.Buffer[K], dictionary []string, nulls *bitmask.Bitmask) *CategoricalArray[K] {
	return &CategoricalArray[K]{Keys: keys, Dictionary: dictionary, Nulls: nulls, length: keys.Len()}
}

func (a *CategoricalArray[K]) Len() int { return a.length }

func (a *CategoricalArray[K]) Offset() int { return a.offset }

func (a *CategoricalArray[K]) NullCount() int {
	if a.Nulls == nil {
		return 0
	}
	return a.length - a.Nulls.CountOnesRange(a.offset, a.length)
}

func (a *CategoricalArray[K]) HasNulls() bool { return a.NullCount() > 0 }

func (a *CategoricalArray[K]) IsNull(i int) bool {
	if i < 0 || i >= a.length {
		panic("arrays: index out of bounds")
	}
	if a.Nulls == nil {
		return false
	}
	return !a.Nulls.Get(a.offset + i)
}

func (a *CategoricalArray[K]) NullMask() *bitmask.Bitmask { return a.Nulls }

func (a *CategoricalArray[K]) ensureMask() {
	if a.Nulls == nil {
		a.Nulls = bitmask.NewAllValid(a.Keys.Len())
	}
}

func (a *CategoricalArray[K]) requireTail() {
	if a.offset+a.length != a.Keys.Len() {
		panic("arrays: cannot push onto a windowed array that does not own its buffer's tail")
	}
}

// code resolves v to its dictionary key, appending it to the dictionary
// in first-seen order if it has not been referenced before, and lazily
// rebuilding the lookup index when the array was constructed from
// already-decoded parts.
func (a *CategoricalArray[K]) code(v string) K {
	if a.index == nil {
		a.index = make(map[string]K, len(a.Dictionary))
		for i, s := range a.Dictionary {
			a.index[s] = K(i)
		}
	}
	key, ok := a.index[v]
	if !ok {
		key = K(len(a.Dictionary))
		a.Dictionary = append(a.Dictionary, v)
		a.index[v] = key
	}
	return key
}

// Push appends v, recoding it into the shared dictionary if it has not
// been seen before (spec §4.3.2 invariant: dictionary holds only the
// distinct values actually referenced, in first-seen order).
func (a *CategoricalArray[K]) Push(v string) {
	a.requireTail()
	a.Keys.Push(a.code(v))
	if a.Nulls != nil {
		a.Nulls.Push(true)
	}
	a.length++
}

func (a *CategoricalArray[K]) PushNull() {
	a.requireTail()
	a.ensureMask()
	var zero K
	a.Keys.Push(zero)
	a.Nulls.Push(false)
	a.length++
}

// Get returns the decoded string at i.
func (a *CategoricalArray[K]) Get(i int) string {
	if i < 0 || i >= a.length {
		panic("arrays: index out of bounds")
	}
	return a.Dictionary[a.Keys.Get(a.offset+i)]
}

// Code returns the raw dictionary key at i, without decoding.
func (a *CategoricalArray[K]) Code(i int) K {
	if i < 0 || i >= a.length {
		panic("arrays: index out of bounds")
	}
	return a.Keys.Get(a.offset + i)
}

// Set recodes position i to v with the same lookup-or-insert Push uses,
// so an unseen value still lands in the dictionary in first-seen order.
// A fixed-width key rewrite within the array's own window, so unlike
// Push it is safe on any slice.
func (a *CategoricalArray[K]) Set(i int, v string) {
	if i < 0 || i >= a.length {
		panic("arrays: index out of bounds")
	}
	a.Keys.Set(a.offset+i, a.code(v))
}

func (a *CategoricalArray[K]) SetNull(i int) {
	if i < 0 || i >= a.length {
		panic("arrays: index out of bounds")
	}
	a.ensureMask()
	a.Nulls.Set(a.offset+i, false)
}

// Slice returns a new CategoricalArray sharing this array's Keys/Nulls
// storage and full Dictionary, windowed to [offset, offset+n) of its own
// logical range — a metadata-only operation per spec §4.6/§9: no keys
// buffer is copied, and the dictionary is shared (not recompacted to only
// the referenced subset), so Code() values from the parent remain
// meaningful against the window's dictionary.
func (a *CategoricalArray[K]) Slice(offset, n int) *CategoricalArray[K] {
	if offset < 0 || n < 0 || offset+n > a.length {
		panic("arrays: slice window out of bounds")
	}
	return &CategoricalArray[K]{
		Keys:       a.Keys,
		Dictionary: a.Dictionary,
		index:      a.index,
		Nulls:      a.Nulls,
		offset:     a.offset + offset,
		length:     n,
	}
}
