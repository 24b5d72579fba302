package transport

import (
	"fmt"
	"io"

	"mcjavaproto/proto"
)

const (
	frameVarintMaxBytes = 5
	frameContinueBit    = 0x80
	frameSegmentBits    = 0x7f
)

// readFrameLength decodes a varint length prefix directly off r, one byte
// at a time. It cannot use buffer.ReadVarint because the total frame
// length is not yet known — that's exactly what this value determines.
func readFrameLength(r io.Reader) (int32, error) {
	var result uint32
	var b [1]byte
	for i := 0; i < frameVarintMaxBytes; i++ {
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return 0, err
		}
		result |= uint32(b[0]&frameSegmentBits) << (7 * i)
		if b[0]&frameContinueBit == 0 {
			return int32(result), nil
		}
	}
	return 0, fmt.Errorf("%w: frame length varint exceeds %d bytes", proto.ErrMalformed, frameVarintMaxBytes)
}

// writeFrameLength encodes v as a varint directly onto w.
func writeFrameLength(w io.Writer, v int32) error {
	uv := uint32(v)
	for {
		if uv&^frameSegmentBits == 0 {
			_, err := w.Write([]byte{byte(uv)})
			return err
		}
		if _, err := w.Write([]byte{byte(uv&frameSegmentBits) | frameContinueBit}); err != nil {
			return err
		}
		uv >>= 7
	}
}

// readFrame reads one complete length-prefixed frame body from r into a
// scratch buffer borrowed from pool. The caller must return it via
// pool.put when done. This is the all-or-nothing unit spec.md §5
// requires: once readFrameLength succeeds, io.ReadFull either reads the
// whole body or fails the frame outright — there is no partial-body state
// to leave behind.
func readFrame(r io.Reader, pool *scratchPool) ([]byte, error) {
	length, err := readFrameLength(r)
	if err != nil {
		return nil, err
	}
	if length < 0 {
		return nil, fmt.Errorf("%w: negative frame length %d", proto.ErrMalformed, length)
	}
	body := pool.get(int(length))
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, err
	}
	return body, nil
}

// writeFrame writes one complete length-prefixed frame to w.
func writeFrame(w io.Writer, body []byte) error {
	if err := writeFrameLength(w, int32(len(body))); err != nil {
		return err
	}
	_, err := w.Write(body)
	return err
}
