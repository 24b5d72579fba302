package cipher

import (
	"bytes"
	"testing"
)

func sharedSecret() []byte {
	return bytes.Repeat([]byte{0x2A}, 16)
}

func TestStreamRoundTrip(t *testing.T) {
	enc, err := NewStream(sharedSecret())
	if err != nil {
		t.Fatal(err)
	}
	dec, err := NewStream(sharedSecret())
	if err != nil {
		t.Fatal(err)
	}

	plaintext := []byte("hello minecraft protocol frame bytes")
	ciphertext := append([]byte(nil), plaintext...)
	enc.Encrypt(ciphertext)
	if bytes.Equal(ciphertext, plaintext) {
		t.Fatal("encryption did not change the bytes")
	}

	got := append([]byte(nil), ciphertext...)
	dec.Decrypt(got)
	if !bytes.Equal(got, plaintext) {
		t.Fatalf("round trip mismatch: got %q want %q", got, plaintext)
	}
}

func TestStreamIsByteAtATimeStateful(t *testing.T) {
	enc1, err := NewStream(sharedSecret())
	if err != nil {
		t.Fatal(err)
	}
	enc2, err := NewStream(sharedSecret())
	if err != nil {
		t.Fatal(err)
	}

	plaintext := []byte{1, 2, 3, 4, 5}

	whole := append([]byte(nil), plaintext...)
	enc1.Encrypt(whole)

	var split []byte
	for _, b := range plaintext {
		chunk := []byte{b}
		enc2.Encrypt(chunk)
		split = append(split, chunk...)
	}

	if !bytes.Equal(whole, split) {
		t.Fatalf("single-byte reads must be decipherable without alignment: %v != %v", whole, split)
	}
}

func TestNewStreamRejectsInvalidKeySize(t *testing.T) {
	if _, err := NewStream([]byte{1, 2, 3}); err == nil {
		t.Fatal("expected error for invalid AES key size")
	}
}
