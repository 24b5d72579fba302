// Package compress implements the outer frame's optional zlib compression
// layer (component C7, spec.md §4.5). It follows the Strategy pattern
// BX-D-mini-RPC/codec/codec.go uses for its pluggable serialization
// formats: a small interface plus a factory, here keyed on a compression
// threshold rather than a codec type byte.
package compress

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"io"

	"mcjavaproto/buffer"
	"mcjavaproto/proto"
)

// Strategy turns an inner frame body (opcode + payload) into the bytes
// that follow the outer length prefix on the wire, and back.
type Strategy interface {
	// Pack produces the post-length-prefix frame body for inner.
	Pack(inner []byte) ([]byte, error)
	// Unpack recovers the inner opcode+payload bytes from a frame body
	// (everything after the outer length prefix).
	Unpack(body []byte) ([]byte, error)
}

// None is the T < 0 strategy: frames carry their payload uncompressed with
// no uncompressed-length prefix at all.
type None struct{}

func (None) Pack(inner []byte) ([]byte, error) { return inner, nil }

func (None) Unpack(body []byte) ([]byte, error) { return body, nil }

// Threshold is the T >= 0 strategy. Bodies whose inner length is below
// Limit are sent uncompressed (uncompressed_len prefix == 0); bodies at or
// above Limit are zlib-compressed. Compressing a body below the threshold
// is forbidden on send; a compressed frame below the threshold is rejected
// on receive, per spec.md §4.5.
type Threshold struct {
	Limit int32
}

// New selects the framing strategy for a given SetCompression threshold,
// mirroring codec.GetCodec's factory shape.
func New(threshold int32) Strategy {
	if threshold < 0 {
		return None{}
	}
	return Threshold{Limit: threshold}
}

func (t Threshold) Pack(inner []byte) ([]byte, error) {
	buf := buffer.New(nil)
	if int32(len(inner)) < t.Limit {
		if err := buf.WriteVarint(0); err != nil {
			return nil, err
		}
		buf.Write(inner)
		return buf.Bytes(), nil
	}
	if err := buf.WriteVarint(int32(len(inner))); err != nil {
		return nil, err
	}
	var compressed bytes.Buffer
	w := zlib.NewWriter(&compressed)
	if _, err := w.Write(inner); err != nil {
		return nil, fmt.Errorf("%w: zlib compress: %v", proto.ErrMalformed, err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("%w: zlib compress: %v", proto.ErrMalformed, err)
	}
	buf.Write(compressed.Bytes())
	return buf.Bytes(), nil
}

func (t Threshold) Unpack(body []byte) ([]byte, error) {
	buf := buffer.New(body)
	uncompressedLen, err := buf.ReadVarint()
	if err != nil {
		return nil, err
	}
	rest := buf.ReadRemaining()
	if uncompressedLen == 0 {
		if int32(len(rest)) >= t.Limit {
			return nil, fmt.Errorf("%w: uncompressed frame at or above compression threshold", proto.ErrMalformed)
		}
		return rest, nil
	}
	r, err := zlib.NewReader(bytes.NewReader(rest))
	if err != nil {
		return nil, fmt.Errorf("%w: zlib init: %v", proto.ErrMalformed, err)
	}
	defer r.Close()
	inflated, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: zlib inflate: %v", proto.ErrMalformed, err)
	}
	if int32(len(inflated)) != uncompressedLen {
		return nil, fmt.Errorf("%w: declared %d, inflated %d", proto.ErrLengthMismatch, uncompressedLen, len(inflated))
	}
	if int32(len(inflated)) < t.Limit {
		return nil, fmt.Errorf("%w: compressed frame below compression threshold", proto.ErrMalformed)
	}
	return inflated, nil
}
