// Package cipher implements the post-key-exchange stream cipher the outer
// frame layer applies to every byte on the wire (component C7, spec.md
// §4.6): AES in 8-bit-feedback CFB mode, keyed and IV'd by the shared
// secret from the LOGIN encryption exchange.
//
// The standard library's cipher.NewCFBEncrypter/NewCFBDecrypter only
// implement full-block (128-bit) feedback, so the 8-bit variant is
// hand-rolled here around crypto/aes.NewCipher — there is no ecosystem
// CFB8 implementation in the example pack to reach for instead.
package cipher

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"

	"mcjavaproto/proto"
)

// Stream is one direction's AES-CFB8 state. It is not safe for concurrent
// use; spec.md §6 gives each connection half its own exclusive instance.
type Stream struct {
	block   cipher.Block
	shift   []byte
	scratch []byte
}

// NewStream builds a CFB8 stream keyed and IV'd by secret, per spec.md
// §4.6 ("the shared secret as both key and IV"). secret must be a valid
// AES key size (16, 24, or 32 bytes).
func NewStream(secret []byte) (*Stream, error) {
	block, err := aes.NewCipher(secret)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", proto.ErrCryptoFailure, err)
	}
	shift := make([]byte, block.BlockSize())
	copy(shift, secret)
	return &Stream{block: block, shift: shift, scratch: make([]byte, block.BlockSize())}, nil
}

// Encrypt transforms plaintext into ciphertext in place and returns it.
func (s *Stream) Encrypt(data []byte) []byte {
	for i, p := range data {
		s.block.Encrypt(s.scratch, s.shift)
		c := p ^ s.scratch[0]
		data[i] = c
		s.advance(c)
	}
	return data
}

// Decrypt transforms ciphertext into plaintext in place and returns it.
func (s *Stream) Decrypt(data []byte) []byte {
	for i, c := range data {
		s.block.Encrypt(s.scratch, s.shift)
		p := c ^ s.scratch[0]
		data[i] = p
		s.advance(c)
	}
	return data
}

func (s *Stream) advance(ciphertextByte byte) {
	copy(s.shift, s.shift[1:])
	s.shift[len(s.shift)-1] = ciphertextByte
}
