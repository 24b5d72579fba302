package transport

import (
	"bytes"
	"testing"
)

func TestWriteReadFrameRoundTrip(t *testing.T) {
	var wire bytes.Buffer
	body := []byte{0x01, 0x02, 0x03, 0x04, 0x05}
	if err := writeFrame(&wire, body); err != nil {
		t.Fatal(err)
	}

	pool := newScratchPool()
	got, err := readFrame(&wire, pool)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, body) {
		t.Fatalf("round trip mismatch: got %v want %v", got, body)
	}
}

func TestWriteReadFrameEmptyBody(t *testing.T) {
	var wire bytes.Buffer
	if err := writeFrame(&wire, nil); err != nil {
		t.Fatal(err)
	}
	pool := newScratchPool()
	got, err := readFrame(&wire, pool)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty body, got %v", got)
	}
}

func TestReadFrameRejectsNegativeLength(t *testing.T) {
	var wire bytes.Buffer
	// A varint that decodes to a negative int32 when the high bit of the
	// 5th byte sets bit 31.
	wire.Write([]byte{0xFF, 0xFF, 0xFF, 0xFF, 0x0F})
	pool := newScratchPool()
	if _, err := readFrame(&wire, pool); err == nil {
		t.Fatal("expected an error for a frame whose declared length is negative")
	}
}
