package types

import (
	"fmt"

	"mcjavaproto/buffer"
)

// FixedBitset is a bitset of a fixed, caller-supplied bit count, stored as
// ceil(n/8) raw bytes with no length prefix — grounded on
// original_source/mcproto/types/bitset.py's FixedBitset.
type FixedBitset struct {
	bits int
	data []byte
}

// NewFixedBitset allocates a zeroed FixedBitset of n bits.
func NewFixedBitset(n int) FixedBitset {
	return FixedBitset{bits: n, data: make([]byte, (n+7)/8)}
}

func (b FixedBitset) Len() int { return b.bits }

func (b FixedBitset) Get(i int) bool {
	return b.data[i/8]&(1<<uint(i%8)) != 0
}

func (b *FixedBitset) Set(i int, v bool) {
	if v {
		b.data[i/8] |= 1 << uint(i%8)
	} else {
		b.data[i/8] &^= 1 << uint(i%8)
	}
}

func (b FixedBitset) SerializeTo(buf *buffer.Buffer) error {
	buf.Write(b.data)
	return nil
}

// DeserializeFixedBitset reads exactly ceil(n/8) bytes for a bitset of n
// bits — the size must be known from context (e.g. a preceding count field),
// matching the Python library's per-size FixedBitset subclasses.
func DeserializeFixedBitset(buf *buffer.Buffer, n int) (FixedBitset, error) {
	data, err := buf.Read((n + 7) / 8)
	if err != nil {
		return FixedBitset{}, err
	}
	out := make([]byte, len(data))
	copy(out, data)
	return FixedBitset{bits: n, data: out}, nil
}

func (b FixedBitset) And(other FixedBitset) (FixedBitset, error) {
	if b.bits != other.bits {
		return FixedBitset{}, fmt.Errorf("types: fixed bitsets of different sizes %d and %d", b.bits, other.bits)
	}
	out := NewFixedBitset(b.bits)
	for i := range out.data {
		out.data[i] = b.data[i] & other.data[i]
	}
	return out, nil
}

// Bitset is a length-prefixed variable-size bitset backed by a varint count
// of 64-bit words, used for chunk-section and entity-tracking fields.
type Bitset struct {
	Data []uint64
}

func (b Bitset) Len() int { return len(b.Data) * 64 }

func (b Bitset) Get(i int) bool {
	return b.Data[i/64]&(1<<uint(i%64)) != 0
}

func (b *Bitset) Set(i int, v bool) {
	if v {
		b.Data[i/64] |= 1 << uint(i%64)
	} else {
		b.Data[i/64] &^= 1 << uint(i%64)
	}
}

// BitsetFromUint64 builds a single-word Bitset holding n, matching the
// Python library's from_int sizing for values that fit in one 64-bit word.
func BitsetFromUint64(n uint64) Bitset {
	return Bitset{Data: []uint64{n}}
}

func (b Bitset) SerializeTo(buf *buffer.Buffer) error {
	if err := buf.WriteVarint(int32(len(b.Data))); err != nil {
		return err
	}
	for _, w := range b.Data {
		buf.WriteU64(w)
	}
	return nil
}

func DeserializeBitset(buf *buffer.Buffer) (Bitset, error) {
	size, err := buf.ReadVarint()
	if err != nil {
		return Bitset{}, err
	}
	if size < 0 {
		return Bitset{}, fmt.Errorf("%w: negative bitset size %d", buffer.ErrMalformed, size)
	}
	data := make([]uint64, size)
	for i := range data {
		w, err := buf.ReadU64()
		if err != nil {
			return Bitset{}, err
		}
		data[i] = w
	}
	return Bitset{Data: data}, nil
}
