package packets

import (
	"fmt"
	"regexp"

	"mcjavaproto/buffer"
	"mcjavaproto/proto"
	"mcjavaproto/registry"
	"mcjavaproto/types"
)

// LOGIN-phase opcodes, per spec.md §6: serverbound LoginStart=0x00,
// LoginEncryptionResponse=0x01, LoginPluginResponse=0x02,
// LoginAcknowledged=0x03; clientbound LoginDisconnect=0x00,
// LoginEncryptionRequest=0x01, LoginSuccess=0x02, LoginSetCompression=0x03,
// LoginPluginRequest=0x04.
const (
	OpcodeLoginStart              = 0x00
	OpcodeLoginEncryptionResponse = 0x01
	OpcodeLoginPluginResponse     = 0x02
	OpcodeLoginAcknowledged       = 0x03

	OpcodeLoginDisconnect       = 0x00
	OpcodeLoginEncryptionRequest = 0x01
	OpcodeLoginSuccess          = 0x02
	OpcodeLoginSetCompression   = 0x03
	OpcodeLoginPluginRequest    = 0x04
)

// LoginStart is the client's request to begin login with a chosen
// username and (in modern revisions) a fixed UUID.
type LoginStart struct {
	Username string
	UUID     types.UUID
}

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{1,16}$`)

func (LoginStart) Opcode() int32              { return OpcodeLoginStart }
func (LoginStart) Phase() proto.Phase         { return proto.Login }
func (LoginStart) Direction() proto.Direction { return proto.Serverbound }

func (l LoginStart) Validate() error {
	if !usernamePattern.MatchString(l.Username) {
		return fmt.Errorf("login_start: invalid username %q", l.Username)
	}
	return nil
}

func (l LoginStart) SerializeTo(buf *buffer.Buffer) error {
	if err := buf.WriteUTF(l.Username); err != nil {
		return err
	}
	return l.UUID.SerializeTo(buf)
}

func DeserializeLoginStart(buf *buffer.Buffer) (LoginStart, error) {
	username, err := buf.ReadUTF()
	if err != nil {
		return LoginStart{}, err
	}
	id, err := types.DeserializeUUID(buf)
	if err != nil {
		return LoginStart{}, err
	}
	return LoginStart{Username: username, UUID: id}, nil
}

// LoginEncryptionResponse answers a LoginEncryptionRequest with an
// RSA-encrypted shared secret and verify token.
type LoginEncryptionResponse struct {
	SharedSecret []byte
	VerifyToken  []byte
}

func (LoginEncryptionResponse) Opcode() int32              { return OpcodeLoginEncryptionResponse }
func (LoginEncryptionResponse) Phase() proto.Phase         { return proto.Login }
func (LoginEncryptionResponse) Direction() proto.Direction { return proto.Serverbound }
func (LoginEncryptionResponse) Validate() error            { return nil }

func (l LoginEncryptionResponse) SerializeTo(buf *buffer.Buffer) error {
	if err := buf.WriteByteArray(l.SharedSecret); err != nil {
		return err
	}
	return buf.WriteByteArray(l.VerifyToken)
}

func DeserializeLoginEncryptionResponse(buf *buffer.Buffer) (LoginEncryptionResponse, error) {
	secret, err := buf.ReadByteArray()
	if err != nil {
		return LoginEncryptionResponse{}, err
	}
	token, err := buf.ReadByteArray()
	if err != nil {
		return LoginEncryptionResponse{}, err
	}
	return LoginEncryptionResponse{SharedSecret: secret, VerifyToken: token}, nil
}

// LoginPluginResponse answers a server-sent LoginPluginRequest.
type LoginPluginResponse struct {
	MessageID  int32
	Successful bool
	Data       []byte
}

func (LoginPluginResponse) Opcode() int32              { return OpcodeLoginPluginResponse }
func (LoginPluginResponse) Phase() proto.Phase         { return proto.Login }
func (LoginPluginResponse) Direction() proto.Direction { return proto.Serverbound }
func (LoginPluginResponse) Validate() error            { return nil }

func (l LoginPluginResponse) SerializeTo(buf *buffer.Buffer) error {
	if err := buf.WriteVarint(l.MessageID); err != nil {
		return err
	}
	buf.WriteBool(l.Successful)
	if l.Successful {
		buf.Write(l.Data)
	}
	return nil
}

func DeserializeLoginPluginResponse(buf *buffer.Buffer) (LoginPluginResponse, error) {
	id, err := buf.ReadVarint()
	if err != nil {
		return LoginPluginResponse{}, err
	}
	ok, err := buf.ReadBool()
	if err != nil {
		return LoginPluginResponse{}, err
	}
	var data []byte
	if ok {
		data = buf.ReadRemaining()
	}
	return LoginPluginResponse{MessageID: id, Successful: ok, Data: data}, nil
}

// LoginAcknowledged is the empty-payload packet that transitions the
// connection from LOGIN into CONFIGURATION (spec.md §4.6).
type LoginAcknowledged struct{}

func (LoginAcknowledged) Opcode() int32                  { return OpcodeLoginAcknowledged }
func (LoginAcknowledged) Phase() proto.Phase             { return proto.Login }
func (LoginAcknowledged) Direction() proto.Direction     { return proto.Serverbound }
func (LoginAcknowledged) Validate() error                { return nil }
func (LoginAcknowledged) SerializeTo(*buffer.Buffer) error { return nil }

func DeserializeLoginAcknowledged(*buffer.Buffer) (LoginAcknowledged, error) {
	return LoginAcknowledged{}, nil
}

// LoginDisconnect carries the disconnect reason as JSON text (the LOGIN
// phase predates the NBT TextComponent revision).
type LoginDisconnect struct {
	Reason types.TextComponent
}

func (LoginDisconnect) Opcode() int32              { return OpcodeLoginDisconnect }
func (LoginDisconnect) Phase() proto.Phase         { return proto.Login }
func (LoginDisconnect) Direction() proto.Direction { return proto.Clientbound }
func (l LoginDisconnect) Validate() error          { return l.Reason.Validate() }

func (l LoginDisconnect) SerializeTo(buf *buffer.Buffer) error {
	return l.Reason.SerializeJSON(buf)
}

func DeserializeLoginDisconnect(buf *buffer.Buffer) (LoginDisconnect, error) {
	r, err := types.DeserializeJSONTextComponent(buf)
	if err != nil {
		return LoginDisconnect{}, err
	}
	return LoginDisconnect{Reason: r}, nil
}

// LoginEncryptionRequest begins the authentication handshake.
type LoginEncryptionRequest struct {
	ServerID    string
	PublicKey   []byte
	VerifyToken []byte
}

func (LoginEncryptionRequest) Opcode() int32              { return OpcodeLoginEncryptionRequest }
func (LoginEncryptionRequest) Phase() proto.Phase         { return proto.Login }
func (LoginEncryptionRequest) Direction() proto.Direction { return proto.Clientbound }
func (LoginEncryptionRequest) Validate() error            { return nil }

func (l LoginEncryptionRequest) SerializeTo(buf *buffer.Buffer) error {
	if err := buf.WriteUTF(l.ServerID); err != nil {
		return err
	}
	if err := buf.WriteByteArray(l.PublicKey); err != nil {
		return err
	}
	return buf.WriteByteArray(l.VerifyToken)
}

func DeserializeLoginEncryptionRequest(buf *buffer.Buffer) (LoginEncryptionRequest, error) {
	serverID, err := buf.ReadUTF()
	if err != nil {
		return LoginEncryptionRequest{}, err
	}
	pubKey, err := buf.ReadByteArray()
	if err != nil {
		return LoginEncryptionRequest{}, err
	}
	token, err := buf.ReadByteArray()
	if err != nil {
		return LoginEncryptionRequest{}, err
	}
	return LoginEncryptionRequest{ServerID: serverID, PublicKey: pubKey, VerifyToken: token}, nil
}

// LoginSuccess finalizes login with the player's UUID and username.
type LoginSuccess struct {
	UUID     types.UUID
	Username string
}

func (LoginSuccess) Opcode() int32              { return OpcodeLoginSuccess }
func (LoginSuccess) Phase() proto.Phase         { return proto.Login }
func (LoginSuccess) Direction() proto.Direction { return proto.Clientbound }
func (LoginSuccess) Validate() error            { return nil }

func (l LoginSuccess) SerializeTo(buf *buffer.Buffer) error {
	if err := l.UUID.SerializeTo(buf); err != nil {
		return err
	}
	return buf.WriteUTF(l.Username)
}

func DeserializeLoginSuccess(buf *buffer.Buffer) (LoginSuccess, error) {
	id, err := types.DeserializeUUID(buf)
	if err != nil {
		return LoginSuccess{}, err
	}
	username, err := buf.ReadUTF()
	if err != nil {
		return LoginSuccess{}, err
	}
	return LoginSuccess{UUID: id, Username: username}, nil
}

// LoginSetCompression announces the post-login zlib compression threshold
// (spec.md §4.5). A negative threshold disables compression.
type LoginSetCompression struct {
	Threshold int32
}

func (LoginSetCompression) Opcode() int32              { return OpcodeLoginSetCompression }
func (LoginSetCompression) Phase() proto.Phase         { return proto.Login }
func (LoginSetCompression) Direction() proto.Direction { return proto.Clientbound }
func (LoginSetCompression) Validate() error            { return nil }

func (l LoginSetCompression) SerializeTo(buf *buffer.Buffer) error {
	return buf.WriteVarint(l.Threshold)
}

func DeserializeLoginSetCompression(buf *buffer.Buffer) (LoginSetCompression, error) {
	t, err := buf.ReadVarint()
	if err != nil {
		return LoginSetCompression{}, err
	}
	return LoginSetCompression{Threshold: t}, nil
}

// LoginPluginRequest lets the server query the client via a custom
// namespaced channel during login.
type LoginPluginRequest struct {
	MessageID int32
	Channel   types.Identifier
	Data      []byte
}

func (LoginPluginRequest) Opcode() int32              { return OpcodeLoginPluginRequest }
func (LoginPluginRequest) Phase() proto.Phase         { return proto.Login }
func (LoginPluginRequest) Direction() proto.Direction { return proto.Clientbound }
func (LoginPluginRequest) Validate() error            { return nil }

func (l LoginPluginRequest) SerializeTo(buf *buffer.Buffer) error {
	if err := buf.WriteVarint(l.MessageID); err != nil {
		return err
	}
	if err := l.Channel.SerializeTo(buf); err != nil {
		return err
	}
	buf.Write(l.Data)
	return nil
}

func DeserializeLoginPluginRequest(buf *buffer.Buffer) (LoginPluginRequest, error) {
	id, err := buf.ReadVarint()
	if err != nil {
		return LoginPluginRequest{}, err
	}
	channel, err := types.DeserializeIdentifier(buf)
	if err != nil {
		return LoginPluginRequest{}, err
	}
	return LoginPluginRequest{MessageID: id, Channel: channel, Data: buf.ReadRemaining()}, nil
}

func init() {
	registry.Global.Register(
		registry.Key{Phase: proto.Login, Direction: proto.Serverbound, Opcode: OpcodeLoginStart},
		registry.Codec{
			New:         func() proto.Packet { return LoginStart{} },
			Serialize:   func(p proto.Packet, buf *buffer.Buffer) error { return p.(LoginStart).SerializeTo(buf) },
			Deserialize: func(buf *buffer.Buffer) (proto.Packet, error) { return DeserializeLoginStart(buf) },
		},
	)
	registry.Global.Register(
		registry.Key{Phase: proto.Login, Direction: proto.Serverbound, Opcode: OpcodeLoginEncryptionResponse},
		registry.Codec{
			New: func() proto.Packet { return LoginEncryptionResponse{} },
			Serialize: func(p proto.Packet, buf *buffer.Buffer) error {
				return p.(LoginEncryptionResponse).SerializeTo(buf)
			},
			Deserialize: func(buf *buffer.Buffer) (proto.Packet, error) {
				return DeserializeLoginEncryptionResponse(buf)
			},
		},
	)
	registry.Global.Register(
		registry.Key{Phase: proto.Login, Direction: proto.Serverbound, Opcode: OpcodeLoginPluginResponse},
		registry.Codec{
			New: func() proto.Packet { return LoginPluginResponse{} },
			Serialize: func(p proto.Packet, buf *buffer.Buffer) error {
				return p.(LoginPluginResponse).SerializeTo(buf)
			},
			Deserialize: func(buf *buffer.Buffer) (proto.Packet, error) {
				return DeserializeLoginPluginResponse(buf)
			},
		},
	)
	registry.Global.Register(
		registry.Key{Phase: proto.Login, Direction: proto.Serverbound, Opcode: OpcodeLoginAcknowledged},
		registry.Codec{
			New: func() proto.Packet { return LoginAcknowledged{} },
			Serialize: func(p proto.Packet, buf *buffer.Buffer) error {
				return p.(LoginAcknowledged).SerializeTo(buf)
			},
			Deserialize: func(buf *buffer.Buffer) (proto.Packet, error) {
				return DeserializeLoginAcknowledged(buf)
			},
		},
	)
	registry.Global.Register(
		registry.Key{Phase: proto.Login, Direction: proto.Clientbound, Opcode: OpcodeLoginDisconnect},
		registry.Codec{
			New: func() proto.Packet { return LoginDisconnect{} },
			Serialize: func(p proto.Packet, buf *buffer.Buffer) error {
				return p.(LoginDisconnect).SerializeTo(buf)
			},
			Deserialize: func(buf *buffer.Buffer) (proto.Packet, error) {
				return DeserializeLoginDisconnect(buf)
			},
		},
	)
	registry.Global.Register(
		registry.Key{Phase: proto.Login, Direction: proto.Clientbound, Opcode: OpcodeLoginEncryptionRequest},
		registry.Codec{
			New: func() proto.Packet { return LoginEncryptionRequest{} },
			Serialize: func(p proto.Packet, buf *buffer.Buffer) error {
				return p.(LoginEncryptionRequest).SerializeTo(buf)
			},
			Deserialize: func(buf *buffer.Buffer) (proto.Packet, error) {
				return DeserializeLoginEncryptionRequest(buf)
			},
		},
	)
	registry.Global.Register(
		registry.Key{Phase: proto.Login, Direction: proto.Clientbound, Opcode: OpcodeLoginSuccess},
		registry.Codec{
			New:         func() proto.Packet { return LoginSuccess{} },
			Serialize:   func(p proto.Packet, buf *buffer.Buffer) error { return p.(LoginSuccess).SerializeTo(buf) },
			Deserialize: func(buf *buffer.Buffer) (proto.Packet, error) { return DeserializeLoginSuccess(buf) },
		},
	)
	registry.Global.Register(
		registry.Key{Phase: proto.Login, Direction: proto.Clientbound, Opcode: OpcodeLoginSetCompression},
		registry.Codec{
			New: func() proto.Packet { return LoginSetCompression{} },
			Serialize: func(p proto.Packet, buf *buffer.Buffer) error {
				return p.(LoginSetCompression).SerializeTo(buf)
			},
			Deserialize: func(buf *buffer.Buffer) (proto.Packet, error) {
				return DeserializeLoginSetCompression(buf)
			},
		},
	)
	registry.Global.Register(
		registry.Key{Phase: proto.Login, Direction: proto.Clientbound, Opcode: OpcodeLoginPluginRequest},
		registry.Codec{
			New: func() proto.Packet { return LoginPluginRequest{} },
			Serialize: func(p proto.Packet, buf *buffer.Buffer) error {
				return p.(LoginPluginRequest).SerializeTo(buf)
			},
			Deserialize: func(buf *buffer.Buffer) (proto.Packet, error) {
				return DeserializeLoginPluginRequest(buf)
			},
		},
	)
}
