package packets

import (
	"mcjavaproto/buffer"
	"mcjavaproto/proto"
	"mcjavaproto/registry"
)

// StatusRequest is the serverbound STATUS ping — an empty payload.
type StatusRequest struct{}

const OpcodeStatusRequest = 0x00

func (StatusRequest) Opcode() int32              { return OpcodeStatusRequest }
func (StatusRequest) Phase() proto.Phase         { return proto.Status }
func (StatusRequest) Direction() proto.Direction { return proto.Serverbound }
func (StatusRequest) Validate() error            { return nil }
func (StatusRequest) SerializeTo(*buffer.Buffer) error { return nil }

func DeserializeStatusRequest(*buffer.Buffer) (StatusRequest, error) {
	return StatusRequest{}, nil
}

// StatusResponse carries the server's status JSON blob verbatim — the
// status payload's internal shape (version, players, description) is
// outside this module's scope, so it is left as an opaque JSON string the
// way Commands' graph is left as an opaque blob (spec.md §9).
type StatusResponse struct {
	JSON string
}

const OpcodeStatusResponse = 0x00

func (StatusResponse) Opcode() int32              { return OpcodeStatusResponse }
func (StatusResponse) Phase() proto.Phase         { return proto.Status }
func (StatusResponse) Direction() proto.Direction { return proto.Clientbound }
func (StatusResponse) Validate() error            { return nil }

func (r StatusResponse) SerializeTo(buf *buffer.Buffer) error {
	return buf.WriteUTF(r.JSON)
}

func DeserializeStatusResponse(buf *buffer.Buffer) (StatusResponse, error) {
	s, err := buf.ReadUTF()
	if err != nil {
		return StatusResponse{}, err
	}
	return StatusResponse{JSON: s}, nil
}

// PingRequest/PongResponse carry an opaque timestamp payload used to
// measure round-trip latency.
type PingRequest struct {
	Payload int64
}

const OpcodePingRequest = 0x01

func (PingRequest) Opcode() int32              { return OpcodePingRequest }
func (PingRequest) Phase() proto.Phase         { return proto.Status }
func (PingRequest) Direction() proto.Direction { return proto.Serverbound }
func (PingRequest) Validate() error            { return nil }

func (p PingRequest) SerializeTo(buf *buffer.Buffer) error {
	buf.WriteI64(p.Payload)
	return nil
}

func DeserializePingRequest(buf *buffer.Buffer) (PingRequest, error) {
	v, err := buf.ReadI64()
	if err != nil {
		return PingRequest{}, err
	}
	return PingRequest{Payload: v}, nil
}

type PongResponse struct {
	Payload int64
}

const OpcodePongResponse = 0x01

func (PongResponse) Opcode() int32              { return OpcodePongResponse }
func (PongResponse) Phase() proto.Phase         { return proto.Status }
func (PongResponse) Direction() proto.Direction { return proto.Clientbound }
func (PongResponse) Validate() error            { return nil }

func (p PongResponse) SerializeTo(buf *buffer.Buffer) error {
	buf.WriteI64(p.Payload)
	return nil
}

func DeserializePongResponse(buf *buffer.Buffer) (PongResponse, error) {
	v, err := buf.ReadI64()
	if err != nil {
		return PongResponse{}, err
	}
	return PongResponse{Payload: v}, nil
}

func init() {
	registry.Global.Register(
		registry.Key{Phase: proto.Status, Direction: proto.Serverbound, Opcode: OpcodeStatusRequest},
		registry.Codec{
			New:         func() proto.Packet { return StatusRequest{} },
			Serialize:   func(p proto.Packet, buf *buffer.Buffer) error { return p.(StatusRequest).SerializeTo(buf) },
			Deserialize: func(buf *buffer.Buffer) (proto.Packet, error) { return DeserializeStatusRequest(buf) },
		},
	)
	registry.Global.Register(
		registry.Key{Phase: proto.Status, Direction: proto.Clientbound, Opcode: OpcodeStatusResponse},
		registry.Codec{
			New:         func() proto.Packet { return StatusResponse{} },
			Serialize:   func(p proto.Packet, buf *buffer.Buffer) error { return p.(StatusResponse).SerializeTo(buf) },
			Deserialize: func(buf *buffer.Buffer) (proto.Packet, error) { return DeserializeStatusResponse(buf) },
		},
	)
	registry.Global.Register(
		registry.Key{Phase: proto.Status, Direction: proto.Serverbound, Opcode: OpcodePingRequest},
		registry.Codec{
			New:         func() proto.Packet { return PingRequest{} },
			Serialize:   func(p proto.Packet, buf *buffer.Buffer) error { return p.(PingRequest).SerializeTo(buf) },
			Deserialize: func(buf *buffer.Buffer) (proto.Packet, error) { return DeserializePingRequest(buf) },
		},
	)
	registry.Global.Register(
		registry.Key{Phase: proto.Status, Direction: proto.Clientbound, Opcode: OpcodePongResponse},
		registry.Codec{
			New:         func() proto.Packet { return PongResponse{} },
			Serialize:   func(p proto.Packet, buf *buffer.Buffer) error { return p.(PongResponse).SerializeTo(buf) },
			Deserialize: func(buf *buffer.Buffer) (proto.Packet, error) { return DeserializePongResponse(buf) },
		},
	)
}
