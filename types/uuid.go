package types

import (
	"github.com/google/uuid"

	"mcjavaproto/buffer"
)

// UUID is a 128-bit value, written/read as two big-endian 64-bit halves
// (high bits then low bits) — equivalent to the 16 raw bytes of
// github.com/google/uuid's binary form, which is itself big-endian.
type UUID struct {
	inner uuid.UUID
}

// ParseUUID accepts the canonical "xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx"
// string form.
func ParseUUID(s string) (UUID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, err
	}
	return UUID{inner: u}, nil
}

// UUIDFromBytes builds a UUID from its 16 big-endian bytes.
func UUIDFromBytes(b []byte) (UUID, error) {
	u, err := uuid.FromBytes(b)
	if err != nil {
		return UUID{}, err
	}
	return UUID{inner: u}, nil
}

func (u UUID) String() string {
	return u.inner.String()
}

func (u UUID) Bytes() [16]byte {
	var out [16]byte
	copy(out[:], u.inner[:])
	return out
}

func (u UUID) Equal(other UUID) bool {
	return u.inner == other.inner
}

func (u UUID) SerializeTo(buf *buffer.Buffer) error {
	b := u.Bytes()
	hi := uint64(0)
	lo := uint64(0)
	for i := 0; i < 8; i++ {
		hi = hi<<8 | uint64(b[i])
	}
	for i := 8; i < 16; i++ {
		lo = lo<<8 | uint64(b[i])
	}
	buf.WriteU64(hi)
	buf.WriteU64(lo)
	return nil
}

func DeserializeUUID(buf *buffer.Buffer) (UUID, error) {
	hi, err := buf.ReadU64()
	if err != nil {
		return UUID{}, err
	}
	lo, err := buf.ReadU64()
	if err != nil {
		return UUID{}, err
	}
	var b [16]byte
	for i := 0; i < 8; i++ {
		b[7-i] = byte(hi >> (8 * i))
	}
	for i := 0; i < 8; i++ {
		b[15-i] = byte(lo >> (8 * i))
	}
	return UUIDFromBytes(b[:])
}
