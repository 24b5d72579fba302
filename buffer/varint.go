package buffer

import "fmt"

// Varint/varlong encoding (component C2): 7 payload bits per byte, LSB
// first, high bit set means "more bytes follow". Signed values are encoded
// in their raw two's-complement bit pattern — there is no zig-zag step,
// unlike protobuf's varint.
const (
	varintMaxBytes  = 5  // a 32-bit value never needs more than 5 bytes
	varlongMaxBytes = 10 // a 64-bit value never needs more than 10
	continueBit     = 0x80
	segmentBits     = 0x7f
)

// WriteVarint encodes a signed 32-bit integer.
func (b *Buffer) WriteVarint(v int32) error {
	uv := uint32(v)
	for {
		if uv&^segmentBits == 0 {
			b.WriteU8(uint8(uv))
			return nil
		}
		b.WriteU8(uint8(uv&segmentBits) | continueBit)
		uv >>= 7
	}
}

// ReadVarint decodes a signed 32-bit integer. Fails with ErrMalformed if the
// encoding runs past 5 bytes without a terminating byte.
func (b *Buffer) ReadVarint() (int32, error) {
	var result uint32
	for i := 0; i < varintMaxBytes; i++ {
		by, err := b.ReadU8()
		if err != nil {
			return 0, err
		}
		result |= uint32(by&segmentBits) << (7 * i)
		if by&continueBit == 0 {
			return int32(result), nil
		}
	}
	return 0, fmt.Errorf("%w: varint exceeds %d bytes", ErrMalformed, varintMaxBytes)
}

// WriteVarlong encodes a signed 64-bit integer.
func (b *Buffer) WriteVarlong(v int64) error {
	uv := uint64(v)
	for {
		if uv&^uint64(segmentBits) == 0 {
			b.WriteU8(uint8(uv))
			return nil
		}
		b.WriteU8(uint8(uv&segmentBits) | continueBit)
		uv >>= 7
	}
}

// ReadVarlong decodes a signed 64-bit integer. Fails with ErrMalformed if the
// encoding runs past 10 bytes without a terminating byte.
func (b *Buffer) ReadVarlong() (int64, error) {
	var result uint64
	for i := 0; i < varlongMaxBytes; i++ {
		by, err := b.ReadU8()
		if err != nil {
			return 0, err
		}
		result |= uint64(by&segmentBits) << (7 * i)
		if by&continueBit == 0 {
			return int64(result), nil
		}
	}
	return 0, fmt.Errorf("%w: varlong exceeds %d bytes", ErrMalformed, varlongMaxBytes)
}

// VarintSize returns the number of bytes WriteVarint would emit for v,
// without writing anything — used by packets that need to know a field's
// encoded length up front (e.g. a length-prefixed sub-message).
func VarintSize(v int32) int {
	uv := uint32(v)
	n := 1
	for uv&^segmentBits != 0 {
		uv >>= 7
		n++
	}
	return n
}
