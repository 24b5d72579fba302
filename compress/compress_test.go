package compress

import (
	"bytes"
	"compress/zlib"
	"errors"
	"testing"

	"mcjavaproto/buffer"
	"mcjavaproto/proto"
)

func TestNoneRoundTrip(t *testing.T) {
	s := New(-1)
	inner := []byte{0x00, 0x01, 0x02}
	packed, err := s.Pack(inner)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(packed, inner) {
		t.Fatalf("None.Pack must be identity, got %v", packed)
	}
	got, err := s.Unpack(packed)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, inner) {
		t.Fatalf("round trip mismatch: got %v", got)
	}
}

func TestThresholdBelowLimitUncompressed(t *testing.T) {
	s := New(64)
	inner := []byte{0x00, 0x01, 0x02}
	packed, err := s.Pack(inner)
	if err != nil {
		t.Fatal(err)
	}
	buf := buffer.New(packed)
	n, err := buf.ReadVarint()
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Fatalf("expected zero uncompressed_len prefix, got %d", n)
	}
	got, err := s.Unpack(packed)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, inner) {
		t.Fatalf("round trip mismatch: got %v", got)
	}
}

func TestThresholdAtOrAboveLimitCompressed(t *testing.T) {
	s := New(4)
	inner := bytes.Repeat([]byte{0xAB}, 100)
	packed, err := s.Pack(inner)
	if err != nil {
		t.Fatal(err)
	}
	got, err := s.Unpack(packed)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, inner) {
		t.Fatalf("round trip mismatch: got %d bytes, want %d", len(got), len(inner))
	}
}

func TestThresholdReceiveLengthMismatch(t *testing.T) {
	s := Threshold{Limit: 4}
	var compressed bytes.Buffer
	w := zlib.NewWriter(&compressed)
	w.Write(bytes.Repeat([]byte{0x01}, 50))
	w.Close()

	buf := buffer.New(nil)
	buf.WriteVarint(999) // wrong declared length
	buf.Write(compressed.Bytes())

	_, err := s.Unpack(buf.Bytes())
	if !errors.Is(err, proto.ErrLengthMismatch) {
		t.Fatalf("expected ErrLengthMismatch, got %v", err)
	}
}

func TestThresholdReceiveRejectsSubThresholdCompressedFrame(t *testing.T) {
	s := Threshold{Limit: 1000}
	var compressed bytes.Buffer
	w := zlib.NewWriter(&compressed)
	w.Write(bytes.Repeat([]byte{0x01}, 5))
	w.Close()

	buf := buffer.New(nil)
	buf.WriteVarint(5)
	buf.Write(compressed.Bytes())

	_, err := s.Unpack(buf.Bytes())
	if !errors.Is(err, proto.ErrMalformed) {
		t.Fatalf("expected ErrMalformed for sub-threshold compressed frame, got %v", err)
	}
}
