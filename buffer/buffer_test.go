package buffer

import (
	"bytes"
	"errors"
	"testing"
)

func TestWriteReadPrimitives(t *testing.T) {
	buf := New(nil)
	buf.WriteBool(true)
	buf.WriteU8(0xab)
	buf.WriteI16(-1)
	buf.WriteU32(0xdeadbeef)
	buf.WriteI64(-42)
	buf.WriteFloat32(3.14)
	buf.WriteFloat64(2.71828)

	r := New(buf.Bytes())
	if v, err := r.ReadBool(); err != nil || v != true {
		t.Fatalf("ReadBool: %v, %v", v, err)
	}
	if v, err := r.ReadU8(); err != nil || v != 0xab {
		t.Fatalf("ReadU8: %v, %v", v, err)
	}
	if v, err := r.ReadI16(); err != nil || v != -1 {
		t.Fatalf("ReadI16: %v, %v", v, err)
	}
	if v, err := r.ReadU32(); err != nil || v != 0xdeadbeef {
		t.Fatalf("ReadU32: %v, %v", v, err)
	}
	if v, err := r.ReadI64(); err != nil || v != -42 {
		t.Fatalf("ReadI64: %v, %v", v, err)
	}
	if v, err := r.ReadFloat32(); err != nil || v != 3.14 {
		t.Fatalf("ReadFloat32: %v, %v", v, err)
	}
	if v, err := r.ReadFloat64(); err != nil || v != 2.71828 {
		t.Fatalf("ReadFloat64: %v, %v", v, err)
	}
	if r.Remaining() != 0 {
		t.Fatalf("expected buffer fully drained, %d bytes left", r.Remaining())
	}
}

func TestWriteReadUTF(t *testing.T) {
	buf := New(nil)
	if err := buf.WriteUTF("localhost"); err != nil {
		t.Fatalf("WriteUTF: %v", err)
	}
	want := []byte{0x09, 'l', 'o', 'c', 'a', 'l', 'h', 'o', 's', 't'}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Fatalf("WriteUTF encoding = %x, want %x", buf.Bytes(), want)
	}

	r := New(buf.Bytes())
	s, err := r.ReadUTF()
	if err != nil || s != "localhost" {
		t.Fatalf("ReadUTF = %q, %v", s, err)
	}
}

func TestWriteReadByteArray(t *testing.T) {
	buf := New(nil)
	payload := []byte{1, 2, 3, 4, 5}
	if err := buf.WriteByteArray(payload); err != nil {
		t.Fatalf("WriteByteArray: %v", err)
	}
	r := New(buf.Bytes())
	got, err := r.ReadByteArray()
	if err != nil {
		t.Fatalf("ReadByteArray: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("ReadByteArray = %v, want %v", got, payload)
	}
}

func TestOptional(t *testing.T) {
	buf := New(nil)
	writeI32 := func(b *Buffer, v int32) error { b.WriteI32(v); return nil }
	if err := WriteOptional(buf, true, int32(42), writeI32); err != nil {
		t.Fatalf("WriteOptional(present): %v", err)
	}
	if err := WriteOptional(buf, false, int32(0), writeI32); err != nil {
		t.Fatalf("WriteOptional(absent): %v", err)
	}

	r := New(buf.Bytes())
	readI32 := func(b *Buffer) (int32, error) { return b.ReadI32() }
	v, ok, err := ReadOptional(r, readI32)
	if err != nil || !ok || v != 42 {
		t.Fatalf("ReadOptional(present) = %v, %v, %v", v, ok, err)
	}
	v2, ok2, err := ReadOptional(r, readI32)
	if err != nil || ok2 || v2 != 0 {
		t.Fatalf("ReadOptional(absent) = %v, %v, %v", v2, ok2, err)
	}
}

func TestReadTruncated(t *testing.T) {
	buf := New([]byte{0x01, 0x02})
	if _, err := buf.Read(5); !errors.Is(err, ErrTruncated) {
		t.Fatalf("expected ErrTruncated, got %v", err)
	}
}

func TestReadRemaining(t *testing.T) {
	buf := New([]byte{1, 2, 3})
	if _, err := buf.ReadU8(); err != nil {
		t.Fatal(err)
	}
	rest := buf.ReadRemaining()
	if !bytes.Equal(rest, []byte{2, 3}) {
		t.Fatalf("ReadRemaining = %v, want [2 3]", rest)
	}
	if buf.Remaining() != 0 {
		t.Fatalf("expected 0 remaining after slurp, got %d", buf.Remaining())
	}
}
