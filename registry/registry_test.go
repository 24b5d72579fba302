package registry

import (
	"errors"
	"testing"

	"mcjavaproto/buffer"
	"mcjavaproto/proto"
)

type fakePacket struct {
	opcode    int32
	phase     proto.Phase
	direction proto.Direction
	failValidate bool
	value     int32
}

func (p *fakePacket) Opcode() int32           { return p.opcode }
func (p *fakePacket) Phase() proto.Phase      { return p.phase }
func (p *fakePacket) Direction() proto.Direction { return p.direction }
func (p *fakePacket) Validate() error {
	if p.failValidate {
		return errors.New("fake validation failure")
	}
	return nil
}

func newFakeCodec(opcode int32, phase proto.Phase, dir proto.Direction) Codec {
	return Codec{
		New: func() proto.Packet { return &fakePacket{opcode: opcode, phase: phase, direction: dir} },
		Serialize: func(p proto.Packet, buf *buffer.Buffer) error {
			return buf.WriteVarint(p.(*fakePacket).value)
		},
		Deserialize: func(buf *buffer.Buffer) (proto.Packet, error) {
			v, err := buf.ReadVarint()
			if err != nil {
				return nil, err
			}
			return &fakePacket{opcode: opcode, phase: phase, direction: dir, value: v}, nil
		},
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	r := New()
	key := Key{Phase: proto.Login, Direction: proto.Serverbound, Opcode: 0x00}
	r.Register(key, newFakeCodec(0x00, proto.Login, proto.Serverbound))

	pkt := &fakePacket{opcode: 0x00, phase: proto.Login, direction: proto.Serverbound, value: 7}
	buf := buffer.New(nil)
	if err := r.Encode(pkt, buf); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	decoded, err := r.Decode(key, buffer.New(buf.Bytes()))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if decoded.(*fakePacket).value != 7 {
		t.Fatalf("got %+v", decoded)
	}
}

func TestEncodeUnregisteredFails(t *testing.T) {
	r := New()
	pkt := &fakePacket{opcode: 0x99, phase: proto.Play, direction: proto.Clientbound}
	if err := r.Encode(pkt, buffer.New(nil)); !errors.Is(err, proto.ErrUnregistered) {
		t.Fatalf("expected ErrUnregistered, got %v", err)
	}
}

func TestDecodeUnknownOpcodeFails(t *testing.T) {
	r := New()
	key := Key{Phase: proto.Play, Direction: proto.Clientbound, Opcode: 0x99}
	if _, err := r.Decode(key, buffer.New(nil)); !errors.Is(err, proto.ErrUnknownOpcode) {
		t.Fatalf("expected ErrUnknownOpcode, got %v", err)
	}
}

func TestEncodeValidationFailure(t *testing.T) {
	r := New()
	key := Key{Phase: proto.Login, Direction: proto.Serverbound, Opcode: 0x00}
	r.Register(key, newFakeCodec(0x00, proto.Login, proto.Serverbound))

	pkt := &fakePacket{opcode: 0x00, phase: proto.Login, direction: proto.Serverbound, failValidate: true}
	if err := r.Encode(pkt, buffer.New(nil)); !errors.Is(err, proto.ErrValidationFailed) {
		t.Fatalf("expected ErrValidationFailed, got %v", err)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	r := New()
	key := Key{Phase: proto.Status, Direction: proto.Serverbound, Opcode: 0x00}
	r.Register(key, newFakeCodec(0x00, proto.Status, proto.Serverbound))

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on duplicate registration")
		}
	}()
	r.Register(key, newFakeCodec(0x00, proto.Status, proto.Serverbound))
}
