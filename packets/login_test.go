package packets

import (
	"bytes"
	"testing"

	"mcjavaproto/buffer"
	"mcjavaproto/types"
)

// TestLoginStartWireFormat is spec.md §8 E5.
func TestLoginStartWireFormat(t *testing.T) {
	id, err := types.ParseUUID("00112233-4455-6677-8899-AABBCCDDEEFF")
	if err != nil {
		t.Fatal(err)
	}
	l := LoginStart{Username: "Notch", UUID: id}

	buf := buffer.New(nil)
	if err := l.SerializeTo(buf); err != nil {
		t.Fatal(err)
	}

	want := []byte{0x05}
	want = append(want, "Notch"...)
	want = append(want, 0x00, 0x11, 0x22, 0x33, 0x44, 0x55, 0x66, 0x77, 0x88, 0x99, 0xAA, 0xBB, 0xCC, 0xDD, 0xEE, 0xFF)

	if !bytes.Equal(buf.Bytes(), want) {
		t.Fatalf("got % x, want % x", buf.Bytes(), want)
	}

	got, err := DeserializeLoginStart(buffer.New(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if got.Username != l.Username || !got.UUID.Equal(l.UUID) {
		t.Fatalf("round trip mismatch: got %+v want %+v", got, l)
	}
}

func TestLoginStartValidateRejectsBadUsername(t *testing.T) {
	l := LoginStart{Username: "this username is way too long for minecraft"}
	if err := l.Validate(); err == nil {
		t.Fatal("expected validation error for overlong username")
	}
}

func TestLoginSetCompressionRoundTrip(t *testing.T) {
	sc := LoginSetCompression{Threshold: 256}
	buf := buffer.New(nil)
	if err := sc.SerializeTo(buf); err != nil {
		t.Fatal(err)
	}
	got, err := DeserializeLoginSetCompression(buffer.New(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if got.Threshold != 256 {
		t.Fatalf("got %+v", got)
	}
}
