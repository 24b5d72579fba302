// Package transport wraps a net.Conn with the outer frame (component C7)
// and phase state machine (component C8) spec.md §4.5–§4.6 describe: a
// length-prefixed frame, optional zlib compression above a threshold,
// optional AES-CFB8 encryption over the whole frame including its length
// prefix, and a phase value that gates which (phase, direction, opcode)
// table a frame's opcode is looked up in.
//
// The reader/writer split below is grounded on
// BX-D-mini-RPC/transport/client_transport.go's recvLoop/Send split: one
// path owns reads, sends are serialized by a mutex so concurrent callers
// never interleave a frame's bytes on the wire.
package transport

import (
	"io"
	"net"
	"sync"
	"sync/atomic"

	"mcjavaproto/buffer"
	"mcjavaproto/cipher"
	"mcjavaproto/compress"
	"mcjavaproto/proto"
	"mcjavaproto/registry"
)

// inboundDirection and outboundDirection are fixed: this package
// implements the client side of the protocol, so every frame it reads
// carries a clientbound packet and every frame it writes carries a
// serverbound one.
const (
	inboundDirection  = proto.Clientbound
	outboundDirection = proto.Serverbound
)

// Conn is one client connection's framing and phase state. The embedded
// net.Conn is read by exactly one goroutine at a time (ReadPacket is not
// safe for concurrent callers); WritePacket may be called concurrently —
// writeMu serializes frames the same way client_transport.go's sending
// mutex does.
type Conn struct {
	conn net.Conn
	reg  *registry.Registry
	pool *scratchPool

	phase atomic.Int32

	writeMu     sync.Mutex
	compressOut compress.Strategy
	compressIn  compress.Strategy
	cipherOut   *cipher.Stream
	cipherIn    *cipher.Stream
}

// NewConn wraps conn for framed packet exchange against the given
// registry, starting in the HANDSHAKE phase with compression and
// encryption disabled.
func NewConn(conn net.Conn, reg *registry.Registry) *Conn {
	c := &Conn{
		conn:        conn,
		reg:         reg,
		pool:        newScratchPool(),
		compressOut: compress.New(-1),
		compressIn:  compress.New(-1),
	}
	c.phase.Store(int32(proto.Handshake))
	return c
}

// Phase returns the connection's current phase. Safe to call from either
// the reading or writing side; spec.md §4.6's ordering guarantee is met by
// the atomic store/load pair below.
func (c *Conn) Phase() proto.Phase {
	return proto.Phase(c.phase.Load())
}

// SetPhase transitions the connection. The consumer side owns phase
// transitions; the peer side observes the new value no later than the
// start of its next frame read, per spec.md §4.6.
func (c *Conn) SetPhase(p proto.Phase) {
	c.phase.Store(int32(p))
}

// EnableCompression activates the threshold-gated zlib strategy described
// in spec.md §4.5 for both directions of this connection.
func (c *Conn) EnableCompression(threshold int32) {
	c.compressOut = compress.New(threshold)
	c.compressIn = compress.New(threshold)
}

// EnableEncryption switches both directions over to AES-CFB8, keyed and
// IV'd by secret (spec.md §4.6). Each direction gets its own Stream
// instance — the cipher state is per-direction, never shared.
func (c *Conn) EnableEncryption(secret []byte) error {
	out, err := cipher.NewStream(secret)
	if err != nil {
		return err
	}
	in, err := cipher.NewStream(secret)
	if err != nil {
		return err
	}
	c.cipherOut = out
	c.cipherIn = in
	return nil
}

// WritePacket validates, serializes, optionally compresses, optionally
// encrypts, and frames p onto the wire. Concurrent callers are serialized
// by writeMu so one caller's frame is never interleaved with another's.
func (c *Conn) WritePacket(p proto.Packet) error {
	inner := buffer.New(nil)
	if err := inner.WriteVarint(p.Opcode()); err != nil {
		return err
	}
	if err := c.reg.Encode(p, inner); err != nil {
		return err
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	packed, err := c.compressOut.Pack(inner.Bytes())
	if err != nil {
		return err
	}
	return writeFrame(c.writer(), packed)
}

// ReadPacket reads one whole frame into a scratch buffer, then decrypts,
// decompresses, and decodes it against the registry for the connection's
// current phase. The scratch buffer is returned to the pool before
// ReadPacket returns, so the returned packet must not alias it. Buffer
// reads return sub-slices rather than copies, so ReadPacket decodes from a
// copy of the decompressed body instead of the scratch buffer itself.
func (c *Conn) ReadPacket() (proto.Packet, error) {
	body, err := readFrame(c.reader(), c.pool)
	if err != nil {
		return nil, err
	}
	defer c.pool.put(body)

	inner, err := c.compressIn.Unpack(body)
	if err != nil {
		return nil, err
	}

	buf := buffer.New(append([]byte(nil), inner...))
	opcode, err := buf.ReadVarint()
	if err != nil {
		return nil, err
	}
	key := registry.Key{Phase: c.Phase(), Direction: inboundDirection, Opcode: opcode}
	return c.reg.Decode(key, buf)
}

// Close closes the underlying connection.
func (c *Conn) Close() error {
	return c.conn.Close()
}

func (c *Conn) writer() io.Writer {
	if c.cipherOut == nil {
		return c.conn
	}
	return &cipherWriter{w: c.conn, s: c.cipherOut}
}

func (c *Conn) reader() io.Reader {
	if c.cipherIn == nil {
		return c.conn
	}
	return &cipherReader{r: c.conn, s: c.cipherIn}
}

// cipherWriter and cipherReader apply a Stream to every byte that crosses
// them, including the frame's own length prefix — spec.md §4.6 requires
// the cipher to wrap the whole frame, not just its body.
type cipherWriter struct {
	w io.Writer
	s *cipher.Stream
}

func (cw *cipherWriter) Write(p []byte) (int, error) {
	cw.s.Encrypt(p)
	return cw.w.Write(p)
}

type cipherReader struct {
	r io.Reader
	s *cipher.Stream
}

func (cr *cipherReader) Read(p []byte) (int, error) {
	n, err := cr.r.Read(p)
	if n > 0 {
		cr.s.Decrypt(p[:n])
	}
	return n, err
}
