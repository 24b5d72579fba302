package packets

import (
	"bytes"
	"testing"

	"mcjavaproto/buffer"
)

// TestHandshakeWireFormat is spec.md §8 E1.
func TestHandshakeWireFormat(t *testing.T) {
	h := Handshake{
		ProtocolVersion: 765,
		ServerAddress:   "localhost",
		ServerPort:      25565,
		NextState:       2,
	}
	buf := buffer.New(nil)
	if err := h.SerializeTo(buf); err != nil {
		t.Fatal(err)
	}

	want := []byte{0xFD, 0x05} // varint(765)
	want = append(want, 0x09)
	want = append(want, "localhost"...)
	want = append(want, 0x63, 0xDD) // u16be(25565)
	want = append(want, 0x02)       // varint(2)

	if !bytes.Equal(buf.Bytes(), want) {
		t.Fatalf("got % x, want % x", buf.Bytes(), want)
	}

	got, err := DeserializeHandshake(buffer.New(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if got != h {
		t.Fatalf("round trip mismatch: got %+v want %+v", got, h)
	}
}

func TestHandshakeValidateRejectsBadNextState(t *testing.T) {
	h := Handshake{ProtocolVersion: 1, ServerAddress: "x", ServerPort: 1, NextState: 5}
	if err := h.Validate(); err == nil {
		t.Fatal("expected validation error for next_state=5")
	}
}
