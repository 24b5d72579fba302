// Package packets defines every concrete packet payload type in scope
// (component C6), and populates the registry package's Global table from
// each file's init() function — grounded on the (phase, direction,
// opcode) table layout of other_examples' go-mclib-protocol packet
// definitions, adapted into value types that implement proto.Packet
// directly rather than a separate "Packet descriptor + Data struct" pair.
package packets

import (
	"fmt"

	"mcjavaproto/buffer"
	"mcjavaproto/proto"
	"mcjavaproto/registry"
)

// Handshake is the single HANDSHAKE-phase packet: it carries the client's
// advertised protocol version and the next state it wants to enter
// (spec.md §8 E1).
type Handshake struct {
	ProtocolVersion int32
	ServerAddress   string
	ServerPort      uint16
	NextState       int32 // 1 = STATUS, 2 = LOGIN
}

const OpcodeHandshake = 0x00

func (Handshake) Opcode() int32           { return OpcodeHandshake }
func (Handshake) Phase() proto.Phase      { return proto.Handshake }
func (Handshake) Direction() proto.Direction { return proto.Serverbound }

func (h Handshake) Validate() error {
	if h.NextState != 1 && h.NextState != 2 {
		return fmt.Errorf("handshake: next_state must be 1 (status) or 2 (login), got %d", h.NextState)
	}
	return nil
}

func (h Handshake) SerializeTo(buf *buffer.Buffer) error {
	if err := buf.WriteVarint(h.ProtocolVersion); err != nil {
		return err
	}
	if err := buf.WriteUTF(h.ServerAddress); err != nil {
		return err
	}
	buf.WriteU16(h.ServerPort)
	return buf.WriteVarint(h.NextState)
}

func DeserializeHandshake(buf *buffer.Buffer) (Handshake, error) {
	version, err := buf.ReadVarint()
	if err != nil {
		return Handshake{}, err
	}
	addr, err := buf.ReadUTF()
	if err != nil {
		return Handshake{}, err
	}
	port, err := buf.ReadU16()
	if err != nil {
		return Handshake{}, err
	}
	next, err := buf.ReadVarint()
	if err != nil {
		return Handshake{}, err
	}
	return Handshake{ProtocolVersion: version, ServerAddress: addr, ServerPort: port, NextState: next}, nil
}

func init() {
	key := registry.Key{Phase: proto.Handshake, Direction: proto.Serverbound, Opcode: OpcodeHandshake}
	registry.Global.Register(key, registry.Codec{
		New: func() proto.Packet { return Handshake{} },
		Serialize: func(p proto.Packet, buf *buffer.Buffer) error {
			return p.(Handshake).SerializeTo(buf)
		},
		Deserialize: func(buf *buffer.Buffer) (proto.Packet, error) {
			return DeserializeHandshake(buf)
		},
	})
}
