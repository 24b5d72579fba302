package buffer

import (
	"bytes"
	"errors"
	"testing"
)

// TestVarintVectors checks the literal encodings from spec.md §8 E3.
func TestVarintVectors(t *testing.T) {
	cases := []struct {
		value int32
		want  string // hex-free, just raw bytes written inline below
	}{
		{0, "\x00"},
		{1, "\x01"},
		{127, "\x7f"},
		{128, "\x80\x01"},
		{2147483647, "\xff\xff\xff\xff\x07"},
		{-1, "\xff\xff\xff\xff\x0f"},
	}

	for _, c := range cases {
		buf := New(nil)
		if err := buf.WriteVarint(c.value); err != nil {
			t.Fatalf("WriteVarint(%d) failed: %v", c.value, err)
		}
		if !bytes.Equal(buf.Bytes(), []byte(c.want)) {
			t.Errorf("WriteVarint(%d) = %x, want %x", c.value, buf.Bytes(), []byte(c.want))
		}

		decodeBuf := New([]byte(c.want))
		got, err := decodeBuf.ReadVarint()
		if err != nil {
			t.Fatalf("ReadVarint(%x) failed: %v", []byte(c.want), err)
		}
		if got != c.value {
			t.Errorf("ReadVarint(%x) = %d, want %d", []byte(c.want), got, c.value)
		}
	}
}

// TestVarintRoundTrip checks property 2 from spec.md §8 across a spread of
// the 32-bit space, including both ends and the zig-zag-free sign pattern.
func TestVarintRoundTrip(t *testing.T) {
	values := []int32{
		0, 1, -1, 127, 128, -128, 300, -300,
		1 << 20, -(1 << 20), 2147483647, -2147483648,
	}
	for _, v := range values {
		buf := New(nil)
		if err := buf.WriteVarint(v); err != nil {
			t.Fatalf("WriteVarint(%d): %v", v, err)
		}
		readBack := New(buf.Bytes())
		got, err := readBack.ReadVarint()
		if err != nil {
			t.Fatalf("ReadVarint round trip for %d: %v", v, err)
		}
		if got != v {
			t.Errorf("round trip %d -> %x -> %d", v, buf.Bytes(), got)
		}
	}
}

func TestVarintOverlongIsMalformed(t *testing.T) {
	// 5 continuation bytes with no terminator: always "more" bits set.
	buf := New([]byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x80})
	_, err := buf.ReadVarint()
	if !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
}

func TestVarlongRoundTrip(t *testing.T) {
	values := []int64{0, 1, -1, 1 << 40, -(1 << 40), 9223372036854775807, -9223372036854775808}
	for _, v := range values {
		buf := New(nil)
		if err := buf.WriteVarlong(v); err != nil {
			t.Fatalf("WriteVarlong(%d): %v", v, err)
		}
		if n := len(buf.Bytes()); n > 10 {
			t.Errorf("varlong(%d) encoded to %d bytes, max is 10", v, n)
		}
		readBack := New(buf.Bytes())
		got, err := readBack.ReadVarlong()
		if err != nil {
			t.Fatalf("ReadVarlong round trip for %d: %v", v, err)
		}
		if got != v {
			t.Errorf("round trip %d -> %x -> %d", v, buf.Bytes(), got)
		}
	}
}

func TestReadVarintTruncated(t *testing.T) {
	buf := New([]byte{0x80}) // continuation bit set, no following byte
	_, err := buf.ReadVarint()
	if !errors.Is(err, ErrTruncated) {
		t.Fatalf("expected ErrTruncated, got %v", err)
	}
}
