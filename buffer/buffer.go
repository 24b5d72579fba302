// Package buffer implements the in-memory byte container the rest of the
// codec reads from and writes to (component C1 of the wire codec).
//
// A Buffer never performs I/O. It owns a growable byte slice and a read
// cursor; every read fails with ErrTruncated rather than returning a short
// result, so callers never have to handle partial reads. Buffers are
// short-lived — one Buffer is created per parse or per serialize call, the
// same way BX-D-mini-RPC's protocol.Decode hands a fresh byte slice to the
// codec for each frame rather than sharing state across frames.
package buffer

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"unicode/utf8"
)

// ErrTruncated is returned (wrapped) whenever fewer bytes remain than a read
// requested.
var ErrTruncated = errors.New("buffer: truncated")

// ErrMalformed is returned (wrapped) for values that violate an encoding
// invariant (negative length, varint overflow, bad UTF-8).
var ErrMalformed = errors.New("buffer: malformed")

// Buffer is a growable byte container with a monotonically advancing read
// cursor. The zero value is an empty, ready-to-use buffer.
type Buffer struct {
	data []byte
	pos  int
}

// New returns a Buffer primed to read the given bytes.
func New(data []byte) *Buffer {
	return &Buffer{data: data}
}

// Bytes returns the buffer's full backing slice (written bytes, not just the
// unread remainder).
func (b *Buffer) Bytes() []byte {
	return b.data
}

// Remaining returns the number of unread bytes.
func (b *Buffer) Remaining() int {
	return len(b.data) - b.pos
}

// Reset clears the buffer back to the zero value, keeping the backing array.
func (b *Buffer) Reset() {
	b.data = b.data[:0]
	b.pos = 0
}

// Write appends raw bytes to the buffer. It never fails.
func (b *Buffer) Write(p []byte) {
	b.data = append(b.data, p...)
}

// Read consumes and returns exactly n bytes, or fails with ErrTruncated.
func (b *Buffer) Read(n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: negative read length %d", ErrMalformed, n)
	}
	if b.Remaining() < n {
		return nil, fmt.Errorf("%w: need %d bytes, have %d", ErrTruncated, n, b.Remaining())
	}
	out := b.data[b.pos : b.pos+n]
	b.pos += n
	return out, nil
}

// ReadRemaining slurps and returns every unread byte.
func (b *Buffer) ReadRemaining() []byte {
	out := b.data[b.pos:]
	b.pos = len(b.data)
	return out
}

// ReadByte implements io.ByteReader, used by the varint decoder.
func (b *Buffer) ReadByte() (byte, error) {
	p, err := b.Read(1)
	if err != nil {
		return 0, err
	}
	return p[0], nil
}

// WriteU8 / ReadU8 — single unsigned byte, used by tag kinds, angles, booleans.
func (b *Buffer) WriteU8(v uint8) { b.data = append(b.data, v) }

func (b *Buffer) ReadU8() (uint8, error) {
	p, err := b.Read(1)
	if err != nil {
		return 0, err
	}
	return p[0], nil
}

// WriteBool / ReadBool — one byte, 0x00 = false, any other value is true on
// read (but we only ever write 0x00/0x01).
func (b *Buffer) WriteBool(v bool) {
	if v {
		b.WriteU8(1)
	} else {
		b.WriteU8(0)
	}
}

func (b *Buffer) ReadBool() (bool, error) {
	v, err := b.ReadU8()
	if err != nil {
		return false, err
	}
	return v != 0, nil
}

// Fixed-width big-endian integers, signed and unsigned, 16/32/64 bit, plus
// IEEE-754 floats. All fixed-width primitives outside NBT payload lists use
// this same big-endian convention (spec.md §6).

func (b *Buffer) WriteU16(v uint16) {
	var tmp [2]byte
	binary.BigEndian.PutUint16(tmp[:], v)
	b.data = append(b.data, tmp[:]...)
}

func (b *Buffer) ReadU16() (uint16, error) {
	p, err := b.Read(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(p), nil
}

func (b *Buffer) WriteI16(v int16) { b.WriteU16(uint16(v)) }

func (b *Buffer) ReadI16() (int16, error) {
	v, err := b.ReadU16()
	return int16(v), err
}

func (b *Buffer) WriteU32(v uint32) {
	var tmp [4]byte
	binary.BigEndian.PutUint32(tmp[:], v)
	b.data = append(b.data, tmp[:]...)
}

func (b *Buffer) ReadU32() (uint32, error) {
	p, err := b.Read(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(p), nil
}

func (b *Buffer) WriteI32(v int32) { b.WriteU32(uint32(v)) }

func (b *Buffer) ReadI32() (int32, error) {
	v, err := b.ReadU32()
	return int32(v), err
}

func (b *Buffer) WriteU64(v uint64) {
	var tmp [8]byte
	binary.BigEndian.PutUint64(tmp[:], v)
	b.data = append(b.data, tmp[:]...)
}

func (b *Buffer) ReadU64() (uint64, error) {
	p, err := b.Read(8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(p), nil
}

func (b *Buffer) WriteI64(v int64) { b.WriteU64(uint64(v)) }

func (b *Buffer) ReadI64() (int64, error) {
	v, err := b.ReadU64()
	return int64(v), err
}

func (b *Buffer) WriteI8(v int8) { b.WriteU8(uint8(v)) }

func (b *Buffer) ReadI8() (int8, error) {
	v, err := b.ReadU8()
	return int8(v), err
}

func (b *Buffer) WriteFloat32(v float32) { b.WriteU32(math.Float32bits(v)) }

func (b *Buffer) ReadFloat32() (float32, error) {
	v, err := b.ReadU32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

func (b *Buffer) WriteFloat64(v float64) { b.WriteU64(math.Float64bits(v)) }

func (b *Buffer) ReadFloat64() (float64, error) {
	v, err := b.ReadU64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(v), nil
}

// MaxStringLen is the largest number of UTF-8 scalar values a write_utf/
// read_utf string may contain (spec.md §3/§4.1).
const MaxStringLen = 32767

// WriteUTF writes a varint byte-length prefix followed by the UTF-8 bytes of
// s. Note the asymmetry documented on the nbt package: this is NOT the same
// framing NBT's String tag uses (that one is a bare uint16 length, never a
// varint) — plain UTF-8 with a varint length prefix is the convention
// everywhere else on the wire.
func (b *Buffer) WriteUTF(s string) error {
	n := 0
	for range s {
		n++
	}
	if n > MaxStringLen {
		return fmt.Errorf("%w: string has %d scalar values, max %d", ErrMalformed, n, MaxStringLen)
	}
	if err := b.WriteVarint(int32(len(s))); err != nil {
		return err
	}
	b.Write([]byte(s))
	return nil
}

func (b *Buffer) ReadUTF() (string, error) {
	n, err := b.ReadVarint()
	if err != nil {
		return "", err
	}
	if n < 0 {
		return "", fmt.Errorf("%w: negative string length %d", ErrMalformed, n)
	}
	raw, err := b.Read(int(n))
	if err != nil {
		return "", err
	}
	if !utf8.Valid(raw) {
		return "", fmt.Errorf("%w: string is not valid UTF-8", ErrMalformed)
	}
	s := string(raw)
	count := 0
	for range s {
		count++
	}
	if count > MaxStringLen {
		return "", fmt.Errorf("%w: string has %d scalar values, max %d", ErrMalformed, count, MaxStringLen)
	}
	return s, nil
}

// WriteByteArray writes a varint length prefix followed by the raw bytes.
func (b *Buffer) WriteByteArray(data []byte) error {
	if err := b.WriteVarint(int32(len(data))); err != nil {
		return err
	}
	b.Write(data)
	return nil
}

func (b *Buffer) ReadByteArray() ([]byte, error) {
	n, err := b.ReadVarint()
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, fmt.Errorf("%w: negative byte array length %d", ErrMalformed, n)
	}
	return b.Read(int(n))
}

// WriteOptional writes a boolean presence byte, calling f to write the
// payload only when present is true.
func WriteOptional[T any](b *Buffer, present bool, value T, f func(*Buffer, T) error) error {
	b.WriteBool(present)
	if !present {
		return nil
	}
	return f(b, value)
}

// ReadOptional reads a boolean presence byte and, if true, decodes a T via f.
// The second return value reports whether a value was present.
func ReadOptional[T any](b *Buffer, f func(*Buffer) (T, error)) (T, bool, error) {
	var zero T
	present, err := b.ReadBool()
	if err != nil {
		return zero, false, err
	}
	if !present {
		return zero, false, nil
	}
	v, err := f(b)
	if err != nil {
		return zero, false, err
	}
	return v, true, nil
}

// Drain reads exactly n bytes from r and appends them to the buffer, failing
// if r ends before n bytes have been read. Used by the framing
// layer to stage a whole frame (spec.md §5's "read the entire length-prefixed
// frame into a scratch buffer before invoking the codec").
func (b *Buffer) Drain(r io.Reader, n int) error {
	tmp := make([]byte, n)
	if _, err := io.ReadFull(r, tmp); err != nil {
		return err
	}
	b.Write(tmp)
	return nil
}
