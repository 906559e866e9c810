// Package bitmask implements the LSB-first, bit-packed validity bitmap
// shared by every nullable array variant (spec §3.2/§4.2). Bit i of byte
// i/8 corresponds to logical position i; a set bit means valid, a clear
// bit means null, matching the Arrow validity-bitmap convention that the
// C Data Interface bridge in pkg/cdata must also honour on export/import.
package bitmask

import (
	"math/bits"

	"github.com/minarrow-go/minarrow/pkg/internal/buffer"
)

// Bitmask is a growable, 64-byte-aligned bit-packed boolean vector backed
// by a buffer.Buffer[byte], mirroring how the original source's Bitmask
// (original_source/src/structs/bitmask.rs) layers bit semantics over the
// same Vec64<u8> used for byte buffers.
type Bitmask struct {
	bytes *buffer.Buffer[byte]
	len   int // number of logical bits in use
}

// NewZeroed returns a Bitmask of n bits, all clear (i.e. all null).
func NewZeroed(n int) *Bitmask {
	b := &Bitmask{bytes: buffer.WithCapacity[byte](byteLen(n))}
	b.bytes.Resize(byteLen(n), 0)
	b.len = n
	return b
}

// NewAllValid returns a Bitmask of n bits, all set (i.e. all valid).
func NewAllValid(n int) *Bitmask {
	b := NewZeroed(n)
	for i := range b.bytes.AsSlice() {
		b.bytes.Set(i, 0xFF)
	}
	return b
}

// FromBytes wraps an existing byte slice (e.g. imported across the C Data
// Interface) as a Bitmask of n logical bits. The bytes are copied into a
// freshly aligned Buffer so ownership of the Bitmask never depends on
// foreign-owned memory outliving it.
func FromBytes(bs []byte, n int) *Bitmask {
	buf := buffer.WithCapacity[byte](byteLen(n))
	buf.ExtendFromSlice(bs[:byteLen(n)])
	return &Bitmask{bytes: buf, len: n}
}

func byteLen(nBits int) int {
	return (nBits + 7) / 8
}

// Len returns the number of logical bits.
func (b *Bitmask) Len() int { return b.len }

// Get reports whether bit i is set (valid).
func (b *Bitmask) Get(i int) bool {
	if i < 0 || i >= b.len {
		panic("bitmask: index out of bounds")
	}
	byteVal := b.bytes.Get(i / 8)
	return byteVal&(1<<uint(i%8)) != 0
}

// Set assigns bit i.
func (b *Bitmask) Set(i int, valid bool) {
	if i < 0 || i >= b.len {
		panic("bitmask: index out of bounds")
	}
	byteIdx := i / 8
	mask := byte(1 << uint(i%8))
	cur := b.bytes.Get(byteIdx)
	if valid {
		b.bytes.Set(byteIdx, cur|mask)
	} else {
		b.bytes.Set(byteIdx, cur&^mask)
	}
}

// Push appends one logical bit, growing the backing Buffer as needed.
func (b *Bitmask) Push(valid bool) {
	if b.len%8 == 0 {
		b.bytes.Push(0)
	}
	b.len++
	b.Set(b.len-1, valid)
}

// SetAll overwrites every logical bit to the given validity.
func (b *Bitmask) SetAll(valid bool) {
	var fill byte
	if valid {
		fill = 0xFF
	}
	for i := 0; i < b.bytes.Len(); i++ {
		b.bytes.Set(i, fill)
	}
}

// CountOnes returns the number of set (valid) bits among the first Len
// logical bits, using a per-byte popcount with the final partial byte
// masked down to the logical length.
func (b *Bitmask) CountOnes() int {
	count := 0
	full := b.len / 8
	for i := 0; i < full; i++ {
		count += bits.OnesCount8(b.bytes.Get(i))
	}
	if rem := b.len % 8; rem != 0 {
		last := b.bytes.Get(full)
		mask := byte(1<<uint(rem)) - 1
		count += bits.OnesCount8(last & mask)
	}
	return count
}

// CountOnesRange returns the number of set (valid) bits among the n
// logical bits starting at offset. A windowed array's NullCount uses this
// to derive its count from a shared parent mask without copying it down
// to the window first (spec §4.6 offset-carrying views).
func (b *Bitmask) CountOnesRange(offset, n int) int {
	if offset < 0 || n < 0 || offset+n > b.len {
		panic("bitmask: range out of bounds")
	}
	count := 0
	for i := 0; i < n; i++ {
		if b.Get(offset + i) {
			count++
		}
	}
	return count
}

// AsBytes exposes the packed byte representation, the form the C Data
// Interface bridge exports/imports directly as the ArrowArray validity
// buffer (spec §4.7, buffer index 0 for nullable types).
func (b *Bitmask) AsBytes() []byte { return b.bytes.AsSlice() }

// Clone returns a deep, independently-aligned copy.
func (b *Bitmask) Clone() *Bitmask {
	return &Bitmask{bytes: b.bytes.Clone(), len: b.len}
}

// Slice returns a new Bitmask holding the logical bits [offset, offset+n),
// used when materialising a zero-copy view into an owned bitmask (spec
// §4.6). Unlike the array-level view, this copies: bit-packed storage
// cannot alias a non-byte-aligned bit offset without re-packing.
func (b *Bitmask) Slice(offset, n int) *Bitmask {
	if offset < 0 || n < 0 || offset+n > b.len {
		panic("bitmask: slice window out of bounds")
	}
	out := NewZeroed(n)
	for i := 0; i < n; i++ {
		out.Set(i, b.Get(offset+i))
	}
	return out
}
