package packets

import (
	"fmt"

	"mcjavaproto/buffer"
	"mcjavaproto/proto"
	"mcjavaproto/registry"
	"mcjavaproto/types"
)

const (
	OpcodePlayCommands       = 0x11
	OpcodePlayMapData        = 0x2C
	OpcodePlayMerchantOffers = 0x2D

	OpcodePlayServerboundChatMessage = 0x06
)

// Commands lists the server's command graph. The graph format itself is
// deliberately not modeled (spec.md §9 "surfaced raw payload" policy) — it
// is a deeply recursive node structure that adds no value to a client that
// only needs to forward the bytes; callers needing the parsed graph must
// build their own decoder on top of Data.
type Commands struct {
	Data []byte
}

func (Commands) Opcode() int32              { return OpcodePlayCommands }
func (Commands) Phase() proto.Phase         { return proto.Play }
func (Commands) Direction() proto.Direction { return proto.Clientbound }
func (Commands) Validate() error            { return nil }

func (c Commands) SerializeTo(buf *buffer.Buffer) error {
	buf.Write(c.Data)
	return nil
}

func DeserializeCommands(buf *buffer.Buffer) (Commands, error) {
	return Commands{Data: buf.ReadRemaining()}, nil
}

// MapData updates a rectangular region of a map item; columns == 0 means
// no pixel region follows.
type MapData struct {
	MapID    int32
	Scale    int8
	Locked   bool
	Icons    []types.MapIcon
	Columns  uint8
	Rows     uint8
	X        uint8
	Z        uint8
	Data     []uint8
}

func (MapData) Opcode() int32              { return OpcodePlayMapData }
func (MapData) Phase() proto.Phase         { return proto.Play }
func (MapData) Direction() proto.Direction { return proto.Clientbound }
func (MapData) Validate() error            { return nil }

func (m MapData) SerializeTo(buf *buffer.Buffer) error {
	if err := buf.WriteVarint(m.MapID); err != nil {
		return err
	}
	buf.WriteI8(m.Scale)
	buf.WriteBool(m.Locked)
	buf.WriteBool(len(m.Icons) > 0)
	if len(m.Icons) > 0 {
		if err := buf.WriteVarint(int32(len(m.Icons))); err != nil {
			return err
		}
		for _, icon := range m.Icons {
			if err := icon.SerializeTo(buf); err != nil {
				return err
			}
		}
	}
	buf.WriteU8(m.Columns)
	if m.Columns == 0 {
		return nil
	}
	buf.WriteU8(m.Rows)
	buf.WriteU8(m.X)
	buf.WriteU8(m.Z)
	if err := buf.WriteVarint(int32(len(m.Data))); err != nil {
		return err
	}
	for _, d := range m.Data {
		buf.WriteU8(d)
	}
	return nil
}

func DeserializeMapData(buf *buffer.Buffer) (MapData, error) {
	mapID, err := buf.ReadVarint()
	if err != nil {
		return MapData{}, err
	}
	scale, err := buf.ReadI8()
	if err != nil {
		return MapData{}, err
	}
	locked, err := buf.ReadBool()
	if err != nil {
		return MapData{}, err
	}
	hasIcons, err := buf.ReadBool()
	if err != nil {
		return MapData{}, err
	}
	m := MapData{MapID: mapID, Scale: scale, Locked: locked}
	if hasIcons {
		count, err := buf.ReadVarint()
		if err != nil {
			return MapData{}, err
		}
		icons := make([]types.MapIcon, count)
		for i := range icons {
			icons[i], err = types.DeserializeMapIcon(buf)
			if err != nil {
				return MapData{}, err
			}
		}
		m.Icons = icons
	}
	columns, err := buf.ReadU8()
	if err != nil {
		return MapData{}, err
	}
	m.Columns = columns
	if columns == 0 {
		return m, nil
	}
	if m.Rows, err = buf.ReadU8(); err != nil {
		return MapData{}, err
	}
	if m.X, err = buf.ReadU8(); err != nil {
		return MapData{}, err
	}
	if m.Z, err = buf.ReadU8(); err != nil {
		return MapData{}, err
	}
	dataLen, err := buf.ReadVarint()
	if err != nil {
		return MapData{}, err
	}
	data := make([]uint8, dataLen)
	for i := range data {
		data[i], err = buf.ReadU8()
		if err != nil {
			return MapData{}, err
		}
	}
	m.Data = data
	return m, nil
}

// MerchantOffers lists the trades a villager is currently offering.
type MerchantOffers struct {
	WindowID          int32
	Trades            []types.Trade
	VillagerLevel     int32
	Experience        int32
	IsRegularVillager bool
	CanRestock        bool
}

func (MerchantOffers) Opcode() int32              { return OpcodePlayMerchantOffers }
func (MerchantOffers) Phase() proto.Phase         { return proto.Play }
func (MerchantOffers) Direction() proto.Direction { return proto.Clientbound }
func (MerchantOffers) Validate() error            { return nil }

func (m MerchantOffers) SerializeTo(buf *buffer.Buffer) error {
	if err := buf.WriteVarint(m.WindowID); err != nil {
		return err
	}
	if err := buf.WriteVarint(int32(len(m.Trades))); err != nil {
		return err
	}
	for _, t := range m.Trades {
		if err := t.SerializeTo(buf); err != nil {
			return err
		}
	}
	if err := buf.WriteVarint(m.VillagerLevel); err != nil {
		return err
	}
	if err := buf.WriteVarint(m.Experience); err != nil {
		return err
	}
	buf.WriteBool(m.IsRegularVillager)
	buf.WriteBool(m.CanRestock)
	return nil
}

func DeserializeMerchantOffers(buf *buffer.Buffer) (MerchantOffers, error) {
	windowID, err := buf.ReadVarint()
	if err != nil {
		return MerchantOffers{}, err
	}
	count, err := buf.ReadVarint()
	if err != nil {
		return MerchantOffers{}, err
	}
	trades := make([]types.Trade, count)
	for i := range trades {
		trades[i], err = types.DeserializeTrade(buf)
		if err != nil {
			return MerchantOffers{}, err
		}
	}
	level, err := buf.ReadVarint()
	if err != nil {
		return MerchantOffers{}, err
	}
	xp, err := buf.ReadVarint()
	if err != nil {
		return MerchantOffers{}, err
	}
	isRegular, err := buf.ReadBool()
	if err != nil {
		return MerchantOffers{}, err
	}
	canRestock, err := buf.ReadBool()
	if err != nil {
		return MerchantOffers{}, err
	}
	return MerchantOffers{
		WindowID: windowID, Trades: trades, VillagerLevel: level, Experience: xp,
		IsRegularVillager: isRegular, CanRestock: canRestock,
	}, nil
}

// chatSignatureLength is the fixed, unprefixed signature size the
// Notchian protocol uses for serverbound chat — an Open Questions
// decision (SPEC_FULL §10) to follow the repository's literal behavior
// rather than adding a length prefix spec.md never mentions.
const chatSignatureLength = 256

// ChatMessage sends a signed chat message to the server. The optional
// signature, when present, is always exactly 256 raw bytes with no length
// prefix of its own.
type ChatMessage struct {
	Message       string
	Timestamp     int64
	Salt          int64
	Signature     []byte
	MessageCount  int32
	Acknowledged  types.FixedBitset
}

func (ChatMessage) Opcode() int32              { return OpcodePlayServerboundChatMessage }
func (ChatMessage) Phase() proto.Phase         { return proto.Play }
func (ChatMessage) Direction() proto.Direction { return proto.Serverbound }

func (c ChatMessage) Validate() error {
	if c.Signature != nil && len(c.Signature) != chatSignatureLength {
		return fmt.Errorf("%w: chat message signature must be exactly %d bytes, got %d",
			proto.ErrValidationFailed, chatSignatureLength, len(c.Signature))
	}
	return nil
}

func (c ChatMessage) SerializeTo(buf *buffer.Buffer) error {
	if err := buf.WriteUTF(c.Message); err != nil {
		return err
	}
	buf.WriteI64(c.Timestamp)
	buf.WriteI64(c.Salt)
	if err := buffer.WriteOptional(buf, c.Signature != nil, c.Signature, func(b *buffer.Buffer, sig []byte) error {
		b.Write(sig)
		return nil
	}); err != nil {
		return err
	}
	if err := buf.WriteVarint(c.MessageCount); err != nil {
		return err
	}
	return c.Acknowledged.SerializeTo(buf)
}

func DeserializeChatMessage(buf *buffer.Buffer) (ChatMessage, error) {
	message, err := buf.ReadUTF()
	if err != nil {
		return ChatMessage{}, err
	}
	timestamp, err := buf.ReadI64()
	if err != nil {
		return ChatMessage{}, err
	}
	salt, err := buf.ReadI64()
	if err != nil {
		return ChatMessage{}, err
	}
	signature, hasSignature, err := buffer.ReadOptional(buf, func(b *buffer.Buffer) ([]byte, error) {
		return b.Read(chatSignatureLength)
	})
	if err != nil {
		return ChatMessage{}, err
	}
	messageCount, err := buf.ReadVarint()
	if err != nil {
		return ChatMessage{}, err
	}
	acknowledged, err := types.DeserializeFixedBitset(buf, 20)
	if err != nil {
		return ChatMessage{}, err
	}
	c := ChatMessage{
		Message: message, Timestamp: timestamp, Salt: salt,
		MessageCount: messageCount, Acknowledged: acknowledged,
	}
	if hasSignature {
		c.Signature = signature
	}
	return c, nil
}

func init() {
	reg := func(key registry.Key, newFn registry.Factory, ser func(proto.Packet, *buffer.Buffer) error, de func(*buffer.Buffer) (proto.Packet, error)) {
		registry.Global.Register(key, registry.Codec{New: newFn, Serialize: ser, Deserialize: de})
	}

	reg(registry.Key{Phase: proto.Play, Direction: proto.Clientbound, Opcode: OpcodePlayCommands},
		func() proto.Packet { return Commands{} },
		func(p proto.Packet, buf *buffer.Buffer) error { return p.(Commands).SerializeTo(buf) },
		func(buf *buffer.Buffer) (proto.Packet, error) { return DeserializeCommands(buf) },
	)
	reg(registry.Key{Phase: proto.Play, Direction: proto.Clientbound, Opcode: OpcodePlayMapData},
		func() proto.Packet { return MapData{} },
		func(p proto.Packet, buf *buffer.Buffer) error { return p.(MapData).SerializeTo(buf) },
		func(buf *buffer.Buffer) (proto.Packet, error) { return DeserializeMapData(buf) },
	)
	reg(registry.Key{Phase: proto.Play, Direction: proto.Clientbound, Opcode: OpcodePlayMerchantOffers},
		func() proto.Packet { return MerchantOffers{} },
		func(p proto.Packet, buf *buffer.Buffer) error { return p.(MerchantOffers).SerializeTo(buf) },
		func(buf *buffer.Buffer) (proto.Packet, error) { return DeserializeMerchantOffers(buf) },
	)
	reg(registry.Key{Phase: proto.Play, Direction: proto.Serverbound, Opcode: OpcodePlayServerboundChatMessage},
		func() proto.Packet { return ChatMessage{} },
		func(p proto.Packet, buf *buffer.Buffer) error { return p.(ChatMessage).SerializeTo(buf) },
		func(buf *buffer.Buffer) (proto.Packet, error) { return DeserializeChatMessage(buf) },
	)
}
