package packets

import (
	"fmt"

	"mcjavaproto/buffer"
	"mcjavaproto/nbt"
	"mcjavaproto/proto"
	"mcjavaproto/registry"
	"mcjavaproto/types"
)

// CONFIGURATION-phase opcodes, grounded on
// original_source/mcproto/packets/configuration/configuration.py.
const (
	OpcodeCfgClientboundPluginMessage = 0x00
	OpcodeCfgDisconnect               = 0x01
	OpcodeCfgFinishConfiguration      = 0x02
	OpcodeCfgClientboundKeepAlive     = 0x03
	OpcodeCfgPing                     = 0x04
	OpcodeCfgRegistryData             = 0x05
	OpcodeCfgAddResourcePack          = 0x07
	OpcodeCfgUpdateTags               = 0x09

	OpcodeCfgClientInformation           = 0x00
	OpcodeCfgServerboundPluginMessage    = 0x01
	OpcodeCfgAcknowledgeFinishConfig     = 0x02
	OpcodeCfgServerboundKeepAlive        = 0x03
	OpcodeCfgPong                        = 0x04
	OpcodeCfgResourcePackResponse        = 0x05
)

// ClientboundPluginMessage carries opaque mod/plugin data over a
// namespaced channel; the payload shape is channel-defined and left raw
// (spec.md §9's Commands precedent).
type ClientboundPluginMessage struct {
	Channel types.Identifier
	Data    []byte
}

func (ClientboundPluginMessage) Opcode() int32              { return OpcodeCfgClientboundPluginMessage }
func (ClientboundPluginMessage) Phase() proto.Phase         { return proto.Configuration }
func (ClientboundPluginMessage) Direction() proto.Direction { return proto.Clientbound }
func (ClientboundPluginMessage) Validate() error            { return nil }

func (m ClientboundPluginMessage) SerializeTo(buf *buffer.Buffer) error {
	if err := m.Channel.SerializeTo(buf); err != nil {
		return err
	}
	buf.Write(m.Data)
	return nil
}

func DeserializeClientboundPluginMessage(buf *buffer.Buffer) (ClientboundPluginMessage, error) {
	channel, err := types.DeserializeIdentifier(buf)
	if err != nil {
		return ClientboundPluginMessage{}, err
	}
	return ClientboundPluginMessage{Channel: channel, Data: buf.ReadRemaining()}, nil
}

// ConfigurationDisconnect carries the disconnect reason as the NBT
// TextComponent form (CONFIGURATION postdates the JSON-only era).
type ConfigurationDisconnect struct {
	Reason types.TextComponent
}

func (ConfigurationDisconnect) Opcode() int32              { return OpcodeCfgDisconnect }
func (ConfigurationDisconnect) Phase() proto.Phase         { return proto.Configuration }
func (ConfigurationDisconnect) Direction() proto.Direction { return proto.Clientbound }
func (d ConfigurationDisconnect) Validate() error          { return d.Reason.Validate() }

func (d ConfigurationDisconnect) SerializeTo(buf *buffer.Buffer) error {
	return d.Reason.SerializeNBT(buf)
}

func DeserializeConfigurationDisconnect(buf *buffer.Buffer) (ConfigurationDisconnect, error) {
	r, err := types.DeserializeNBTTextComponent(buf)
	if err != nil {
		return ConfigurationDisconnect{}, err
	}
	return ConfigurationDisconnect{Reason: r}, nil
}

// FinishConfiguration (empty payload) tells the client the CONFIGURATION →
// PLAY transition is ready; the client answers with
// AcknowledgeFinishConfiguration (spec.md §4.6).
type FinishConfiguration struct{}

func (FinishConfiguration) Opcode() int32                  { return OpcodeCfgFinishConfiguration }
func (FinishConfiguration) Phase() proto.Phase             { return proto.Configuration }
func (FinishConfiguration) Direction() proto.Direction     { return proto.Clientbound }
func (FinishConfiguration) Validate() error                { return nil }
func (FinishConfiguration) SerializeTo(*buffer.Buffer) error { return nil }

func DeserializeFinishConfiguration(*buffer.Buffer) (FinishConfiguration, error) {
	return FinishConfiguration{}, nil
}

type AcknowledgeFinishConfiguration struct{}

func (AcknowledgeFinishConfiguration) Opcode() int32                  { return OpcodeCfgAcknowledgeFinishConfig }
func (AcknowledgeFinishConfiguration) Phase() proto.Phase             { return proto.Configuration }
func (AcknowledgeFinishConfiguration) Direction() proto.Direction     { return proto.Serverbound }
func (AcknowledgeFinishConfiguration) Validate() error                { return nil }
func (AcknowledgeFinishConfiguration) SerializeTo(*buffer.Buffer) error { return nil }

func DeserializeAcknowledgeFinishConfiguration(*buffer.Buffer) (AcknowledgeFinishConfiguration, error) {
	return AcknowledgeFinishConfiguration{}, nil
}

// ConfigurationKeepAlive (clientbound) / the serverbound echo both carry a
// single opaque i64 ID.
type ConfigurationKeepAlive struct {
	KeepAliveID int64
}

func (ConfigurationKeepAlive) Opcode() int32              { return OpcodeCfgClientboundKeepAlive }
func (ConfigurationKeepAlive) Phase() proto.Phase         { return proto.Configuration }
func (ConfigurationKeepAlive) Direction() proto.Direction { return proto.Clientbound }
func (ConfigurationKeepAlive) Validate() error            { return nil }

func (k ConfigurationKeepAlive) SerializeTo(buf *buffer.Buffer) error {
	buf.WriteI64(k.KeepAliveID)
	return nil
}

func DeserializeConfigurationKeepAlive(buf *buffer.Buffer) (ConfigurationKeepAlive, error) {
	v, err := buf.ReadI64()
	if err != nil {
		return ConfigurationKeepAlive{}, err
	}
	return ConfigurationKeepAlive{KeepAliveID: v}, nil
}

type ConfigurationKeepAliveResponse struct {
	KeepAliveID int64
}

func (ConfigurationKeepAliveResponse) Opcode() int32              { return OpcodeCfgServerboundKeepAlive }
func (ConfigurationKeepAliveResponse) Phase() proto.Phase         { return proto.Configuration }
func (ConfigurationKeepAliveResponse) Direction() proto.Direction { return proto.Serverbound }
func (ConfigurationKeepAliveResponse) Validate() error            { return nil }

func (k ConfigurationKeepAliveResponse) SerializeTo(buf *buffer.Buffer) error {
	buf.WriteI64(k.KeepAliveID)
	return nil
}

func DeserializeConfigurationKeepAliveResponse(buf *buffer.Buffer) (ConfigurationKeepAliveResponse, error) {
	v, err := buf.ReadI64()
	if err != nil {
		return ConfigurationKeepAliveResponse{}, err
	}
	return ConfigurationKeepAliveResponse{KeepAliveID: v}, nil
}

// ConfigurationPing/Pong is an unused-by-the-Notchian-server ping pair
// carrying a raw i32 payload, echoed verbatim.
type ConfigurationPing struct {
	Payload int32
}

func (ConfigurationPing) Opcode() int32              { return OpcodeCfgPing }
func (ConfigurationPing) Phase() proto.Phase         { return proto.Configuration }
func (ConfigurationPing) Direction() proto.Direction { return proto.Clientbound }
func (ConfigurationPing) Validate() error            { return nil }

func (p ConfigurationPing) SerializeTo(buf *buffer.Buffer) error {
	buf.WriteI32(p.Payload)
	return nil
}

func DeserializeConfigurationPing(buf *buffer.Buffer) (ConfigurationPing, error) {
	v, err := buf.ReadI32()
	if err != nil {
		return ConfigurationPing{}, err
	}
	return ConfigurationPing{Payload: v}, nil
}

type ConfigurationPong struct {
	Payload int32
}

func (ConfigurationPong) Opcode() int32              { return OpcodeCfgPong }
func (ConfigurationPong) Phase() proto.Phase         { return proto.Configuration }
func (ConfigurationPong) Direction() proto.Direction { return proto.Serverbound }
func (ConfigurationPong) Validate() error            { return nil }

func (p ConfigurationPong) SerializeTo(buf *buffer.Buffer) error {
	buf.WriteI32(p.Payload)
	return nil
}

func DeserializeConfigurationPong(buf *buffer.Buffer) (ConfigurationPong, error) {
	v, err := buf.ReadI32()
	if err != nil {
		return ConfigurationPong{}, err
	}
	return ConfigurationPong{Payload: v}, nil
}

// RegistryData hands the client an entire registry codec tree as a single
// unnamed NBT compound (1.20.2+ wire form drops the root tag's name).
type RegistryData struct {
	RegistryCodec nbt.Tag
}

func (RegistryData) Opcode() int32              { return OpcodeCfgRegistryData }
func (RegistryData) Phase() proto.Phase         { return proto.Configuration }
func (RegistryData) Direction() proto.Direction { return proto.Clientbound }
func (RegistryData) Validate() error            { return nil }

func (r RegistryData) SerializeTo(buf *buffer.Buffer) error {
	return r.RegistryCodec.Write(buf, true, false)
}

func DeserializeRegistryData(buf *buffer.Buffer) (RegistryData, error) {
	tag, err := nbt.Read(buf, true, nbt.KindEnd, false)
	if err != nil {
		return RegistryData{}, err
	}
	return RegistryData{RegistryCodec: tag}, nil
}

// AddResourcePack asks the client to download and apply a resource pack.
// hash_sha1 validation follows the Open Questions decision (SPEC_FULL §10):
// a non-empty hash that is non-hex OR not 40 characters is invalid — the
// Python source's literal `and` only rejects a hash failing *both* checks
// at once, which this module treats as a bug, not a spec requirement.
type AddResourcePack struct {
	UUID          types.UUID
	URL           string
	HashSHA1      string
	Forced        bool
	PromptMessage *types.TextComponent
}

func (AddResourcePack) Opcode() int32              { return OpcodeCfgAddResourcePack }
func (AddResourcePack) Phase() proto.Phase         { return proto.Configuration }
func (AddResourcePack) Direction() proto.Direction { return proto.Clientbound }

func (a AddResourcePack) Validate() error {
	if a.HashSHA1 == "" {
		return nil
	}
	if len(a.HashSHA1) != 40 || !isHexString(a.HashSHA1) {
		return fmt.Errorf("add_resource_pack: hash_sha1 must be a 40 character hexadecimal string, got %q", a.HashSHA1)
	}
	return nil
}

func isHexString(s string) bool {
	for _, c := range s {
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')) {
			return false
		}
	}
	return true
}

func (a AddResourcePack) SerializeTo(buf *buffer.Buffer) error {
	if err := a.UUID.SerializeTo(buf); err != nil {
		return err
	}
	if err := buf.WriteUTF(a.URL); err != nil {
		return err
	}
	if err := buf.WriteUTF(a.HashSHA1); err != nil {
		return err
	}
	buf.WriteBool(a.Forced)
	return buffer.WriteOptional(buf, a.PromptMessage != nil, a.PromptMessage, func(b *buffer.Buffer, v *types.TextComponent) error {
		return v.SerializeNBT(b)
	})
}

func DeserializeAddResourcePack(buf *buffer.Buffer) (AddResourcePack, error) {
	id, err := types.DeserializeUUID(buf)
	if err != nil {
		return AddResourcePack{}, err
	}
	url, err := buf.ReadUTF()
	if err != nil {
		return AddResourcePack{}, err
	}
	hash, err := buf.ReadUTF()
	if err != nil {
		return AddResourcePack{}, err
	}
	forced, err := buf.ReadBool()
	if err != nil {
		return AddResourcePack{}, err
	}
	prompt, present, err := buffer.ReadOptional(buf, types.DeserializeNBTTextComponent)
	if err != nil {
		return AddResourcePack{}, err
	}
	a := AddResourcePack{UUID: id, URL: url, HashSHA1: hash, Forced: forced}
	if present {
		a.PromptMessage = &prompt
	}
	return a, nil
}

// ResourcePackResult mirrors the Notchian client's resource pack load
// outcomes.
type ResourcePackResult int32

const (
	ResourcePackSuccessfullyDownloaded ResourcePackResult = 0
	ResourcePackDeclined               ResourcePackResult = 1
	ResourcePackFailedToDownload       ResourcePackResult = 2
	ResourcePackAccepted               ResourcePackResult = 3
	ResourcePackDownloaded             ResourcePackResult = 4
	ResourcePackInvalidURL             ResourcePackResult = 5
	ResourcePackFailedToReload         ResourcePackResult = 6
	ResourcePackDiscarded              ResourcePackResult = 7
)

type ResourcePackResponse struct {
	UUID   types.UUID
	Result ResourcePackResult
}

func (ResourcePackResponse) Opcode() int32              { return OpcodeCfgResourcePackResponse }
func (ResourcePackResponse) Phase() proto.Phase         { return proto.Configuration }
func (ResourcePackResponse) Direction() proto.Direction { return proto.Serverbound }
func (ResourcePackResponse) Validate() error            { return nil }

func (r ResourcePackResponse) SerializeTo(buf *buffer.Buffer) error {
	if err := r.UUID.SerializeTo(buf); err != nil {
		return err
	}
	return buf.WriteVarint(int32(r.Result))
}

func DeserializeResourcePackResponse(buf *buffer.Buffer) (ResourcePackResponse, error) {
	id, err := types.DeserializeUUID(buf)
	if err != nil {
		return ResourcePackResponse{}, err
	}
	result, err := buf.ReadVarint()
	if err != nil {
		return ResourcePackResponse{}, err
	}
	return ResourcePackResponse{UUID: id, Result: ResourcePackResult(result)}, nil
}

// RegistryTag is one named tag within an UpdateTags registry entry: a
// tag name plus the varint entry IDs it covers.
type RegistryTag struct {
	Name    types.Identifier
	Entries []int32
}

// TagGroup maps one registry (e.g. "minecraft:blocks") to its tags.
type TagGroup struct {
	Registry types.Identifier
	Tags     []RegistryTag
}

func serializeTagGroups(buf *buffer.Buffer, groups []TagGroup) error {
	if err := buf.WriteVarint(int32(len(groups))); err != nil {
		return err
	}
	for _, g := range groups {
		if err := g.Registry.SerializeTo(buf); err != nil {
			return err
		}
		if err := buf.WriteVarint(int32(len(g.Tags))); err != nil {
			return err
		}
		for _, tag := range g.Tags {
			if err := tag.Name.SerializeTo(buf); err != nil {
				return err
			}
			if err := buf.WriteVarint(int32(len(tag.Entries))); err != nil {
				return err
			}
			for _, e := range tag.Entries {
				if err := buf.WriteVarint(e); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func deserializeTagGroups(buf *buffer.Buffer) ([]TagGroup, error) {
	registryCount, err := buf.ReadVarint()
	if err != nil {
		return nil, err
	}
	if registryCount < 0 {
		return nil, fmt.Errorf("%w: negative registry count", buffer.ErrMalformed)
	}
	groups := make([]TagGroup, registryCount)
	for i := range groups {
		registry, err := types.DeserializeIdentifier(buf)
		if err != nil {
			return nil, err
		}
		tagCount, err := buf.ReadVarint()
		if err != nil {
			return nil, err
		}
		tags := make([]RegistryTag, tagCount)
		for j := range tags {
			name, err := types.DeserializeIdentifier(buf)
			if err != nil {
				return nil, err
			}
			entryCount, err := buf.ReadVarint()
			if err != nil {
				return nil, err
			}
			entries := make([]int32, entryCount)
			for k := range entries {
				entries[k], err = buf.ReadVarint()
				if err != nil {
					return nil, err
				}
			}
			tags[j] = RegistryTag{Name: name, Entries: entries}
		}
		groups[i] = TagGroup{Registry: registry, Tags: tags}
	}
	return groups, nil
}

// ConfigurationUpdateTags and PlayUpdateTags (play.go) share this exact
// wire shape under different opcodes/phases — two distinct registry
// entries per the Open Questions decision (SPEC_FULL §10), never a shared
// singleton type.
type ConfigurationUpdateTags struct {
	Groups []TagGroup
}

func (ConfigurationUpdateTags) Opcode() int32              { return OpcodeCfgUpdateTags }
func (ConfigurationUpdateTags) Phase() proto.Phase         { return proto.Configuration }
func (ConfigurationUpdateTags) Direction() proto.Direction { return proto.Clientbound }
func (ConfigurationUpdateTags) Validate() error            { return nil }

func (t ConfigurationUpdateTags) SerializeTo(buf *buffer.Buffer) error {
	return serializeTagGroups(buf, t.Groups)
}

func DeserializeConfigurationUpdateTags(buf *buffer.Buffer) (ConfigurationUpdateTags, error) {
	groups, err := deserializeTagGroups(buf)
	if err != nil {
		return ConfigurationUpdateTags{}, err
	}
	return ConfigurationUpdateTags{Groups: groups}, nil
}

// ClientInformation reports the player's locale/view-distance/chat
// settings; sent on join and whenever settings change.
type ClientInformation struct {
	Locale               string
	ViewDistance         int8
	ChatMode             int32
	ChatColors           bool
	DisplayedSkinParts   uint8
	MainHand             int32
	EnableTextFiltering  bool
	AllowServerListings  bool
}

func (ClientInformation) Opcode() int32              { return OpcodeCfgClientInformation }
func (ClientInformation) Phase() proto.Phase         { return proto.Configuration }
func (ClientInformation) Direction() proto.Direction { return proto.Serverbound }

func (c ClientInformation) Validate() error {
	if c.ChatMode < 0 || c.ChatMode > 2 {
		return fmt.Errorf("client_information: chat_mode must be 0, 1, or 2, got %d", c.ChatMode)
	}
	if c.MainHand < 0 || c.MainHand > 1 {
		return fmt.Errorf("client_information: main_hand must be 0 or 1, got %d", c.MainHand)
	}
	if len(c.Locale) > 16 {
		return fmt.Errorf("client_information: locale too long, got %d characters", len(c.Locale))
	}
	return nil
}

func (c ClientInformation) SerializeTo(buf *buffer.Buffer) error {
	if err := buf.WriteUTF(c.Locale); err != nil {
		return err
	}
	buf.WriteI8(c.ViewDistance)
	if err := buf.WriteVarint(c.ChatMode); err != nil {
		return err
	}
	buf.WriteBool(c.ChatColors)
	buf.WriteU8(c.DisplayedSkinParts)
	if err := buf.WriteVarint(c.MainHand); err != nil {
		return err
	}
	buf.WriteBool(c.EnableTextFiltering)
	buf.WriteBool(c.AllowServerListings)
	return nil
}

func DeserializeClientInformation(buf *buffer.Buffer) (ClientInformation, error) {
	locale, err := buf.ReadUTF()
	if err != nil {
		return ClientInformation{}, err
	}
	viewDistance, err := buf.ReadI8()
	if err != nil {
		return ClientInformation{}, err
	}
	chatMode, err := buf.ReadVarint()
	if err != nil {
		return ClientInformation{}, err
	}
	chatColors, err := buf.ReadBool()
	if err != nil {
		return ClientInformation{}, err
	}
	skinParts, err := buf.ReadU8()
	if err != nil {
		return ClientInformation{}, err
	}
	mainHand, err := buf.ReadVarint()
	if err != nil {
		return ClientInformation{}, err
	}
	textFiltering, err := buf.ReadBool()
	if err != nil {
		return ClientInformation{}, err
	}
	serverListings, err := buf.ReadBool()
	if err != nil {
		return ClientInformation{}, err
	}
	return ClientInformation{
		Locale:              locale,
		ViewDistance:        viewDistance,
		ChatMode:            chatMode,
		ChatColors:          chatColors,
		DisplayedSkinParts:  skinParts,
		MainHand:            mainHand,
		EnableTextFiltering: textFiltering,
		AllowServerListings: serverListings,
	}, nil
}

// ServerboundPluginMessage mirrors ClientboundPluginMessage in the other
// direction.
type ServerboundPluginMessage struct {
	Channel types.Identifier
	Data    []byte
}

func (ServerboundPluginMessage) Opcode() int32              { return OpcodeCfgServerboundPluginMessage }
func (ServerboundPluginMessage) Phase() proto.Phase         { return proto.Configuration }
func (ServerboundPluginMessage) Direction() proto.Direction { return proto.Serverbound }
func (ServerboundPluginMessage) Validate() error            { return nil }

func (m ServerboundPluginMessage) SerializeTo(buf *buffer.Buffer) error {
	if err := m.Channel.SerializeTo(buf); err != nil {
		return err
	}
	buf.Write(m.Data)
	return nil
}

func DeserializeServerboundPluginMessage(buf *buffer.Buffer) (ServerboundPluginMessage, error) {
	channel, err := types.DeserializeIdentifier(buf)
	if err != nil {
		return ServerboundPluginMessage{}, err
	}
	return ServerboundPluginMessage{Channel: channel, Data: buf.ReadRemaining()}, nil
}

func init() {
	reg := func(key registry.Key, newFn registry.Factory, ser func(proto.Packet, *buffer.Buffer) error, de func(*buffer.Buffer) (proto.Packet, error)) {
		registry.Global.Register(key, registry.Codec{New: newFn, Serialize: ser, Deserialize: de})
	}

	reg(registry.Key{Phase: proto.Configuration, Direction: proto.Clientbound, Opcode: OpcodeCfgClientboundPluginMessage},
		func() proto.Packet { return ClientboundPluginMessage{} },
		func(p proto.Packet, buf *buffer.Buffer) error { return p.(ClientboundPluginMessage).SerializeTo(buf) },
		func(buf *buffer.Buffer) (proto.Packet, error) { return DeserializeClientboundPluginMessage(buf) },
	)
	reg(registry.Key{Phase: proto.Configuration, Direction: proto.Clientbound, Opcode: OpcodeCfgDisconnect},
		func() proto.Packet { return ConfigurationDisconnect{} },
		func(p proto.Packet, buf *buffer.Buffer) error { return p.(ConfigurationDisconnect).SerializeTo(buf) },
		func(buf *buffer.Buffer) (proto.Packet, error) { return DeserializeConfigurationDisconnect(buf) },
	)
	reg(registry.Key{Phase: proto.Configuration, Direction: proto.Clientbound, Opcode: OpcodeCfgFinishConfiguration},
		func() proto.Packet { return FinishConfiguration{} },
		func(p proto.Packet, buf *buffer.Buffer) error { return p.(FinishConfiguration).SerializeTo(buf) },
		func(buf *buffer.Buffer) (proto.Packet, error) { return DeserializeFinishConfiguration(buf) },
	)
	reg(registry.Key{Phase: proto.Configuration, Direction: proto.Serverbound, Opcode: OpcodeCfgAcknowledgeFinishConfig},
		func() proto.Packet { return AcknowledgeFinishConfiguration{} },
		func(p proto.Packet, buf *buffer.Buffer) error { return p.(AcknowledgeFinishConfiguration).SerializeTo(buf) },
		func(buf *buffer.Buffer) (proto.Packet, error) { return DeserializeAcknowledgeFinishConfiguration(buf) },
	)
	reg(registry.Key{Phase: proto.Configuration, Direction: proto.Clientbound, Opcode: OpcodeCfgClientboundKeepAlive},
		func() proto.Packet { return ConfigurationKeepAlive{} },
		func(p proto.Packet, buf *buffer.Buffer) error { return p.(ConfigurationKeepAlive).SerializeTo(buf) },
		func(buf *buffer.Buffer) (proto.Packet, error) { return DeserializeConfigurationKeepAlive(buf) },
	)
	reg(registry.Key{Phase: proto.Configuration, Direction: proto.Serverbound, Opcode: OpcodeCfgServerboundKeepAlive},
		func() proto.Packet { return ConfigurationKeepAliveResponse{} },
		func(p proto.Packet, buf *buffer.Buffer) error { return p.(ConfigurationKeepAliveResponse).SerializeTo(buf) },
		func(buf *buffer.Buffer) (proto.Packet, error) { return DeserializeConfigurationKeepAliveResponse(buf) },
	)
	reg(registry.Key{Phase: proto.Configuration, Direction: proto.Clientbound, Opcode: OpcodeCfgPing},
		func() proto.Packet { return ConfigurationPing{} },
		func(p proto.Packet, buf *buffer.Buffer) error { return p.(ConfigurationPing).SerializeTo(buf) },
		func(buf *buffer.Buffer) (proto.Packet, error) { return DeserializeConfigurationPing(buf) },
	)
	reg(registry.Key{Phase: proto.Configuration, Direction: proto.Serverbound, Opcode: OpcodeCfgPong},
		func() proto.Packet { return ConfigurationPong{} },
		func(p proto.Packet, buf *buffer.Buffer) error { return p.(ConfigurationPong).SerializeTo(buf) },
		func(buf *buffer.Buffer) (proto.Packet, error) { return DeserializeConfigurationPong(buf) },
	)
	reg(registry.Key{Phase: proto.Configuration, Direction: proto.Clientbound, Opcode: OpcodeCfgRegistryData},
		func() proto.Packet { return RegistryData{} },
		func(p proto.Packet, buf *buffer.Buffer) error { return p.(RegistryData).SerializeTo(buf) },
		func(buf *buffer.Buffer) (proto.Packet, error) { return DeserializeRegistryData(buf) },
	)
	reg(registry.Key{Phase: proto.Configuration, Direction: proto.Clientbound, Opcode: OpcodeCfgAddResourcePack},
		func() proto.Packet { return AddResourcePack{} },
		func(p proto.Packet, buf *buffer.Buffer) error { return p.(AddResourcePack).SerializeTo(buf) },
		func(buf *buffer.Buffer) (proto.Packet, error) { return DeserializeAddResourcePack(buf) },
	)
	reg(registry.Key{Phase: proto.Configuration, Direction: proto.Serverbound, Opcode: OpcodeCfgResourcePackResponse},
		func() proto.Packet { return ResourcePackResponse{} },
		func(p proto.Packet, buf *buffer.Buffer) error { return p.(ResourcePackResponse).SerializeTo(buf) },
		func(buf *buffer.Buffer) (proto.Packet, error) { return DeserializeResourcePackResponse(buf) },
	)
	reg(registry.Key{Phase: proto.Configuration, Direction: proto.Clientbound, Opcode: OpcodeCfgUpdateTags},
		func() proto.Packet { return ConfigurationUpdateTags{} },
		func(p proto.Packet, buf *buffer.Buffer) error { return p.(ConfigurationUpdateTags).SerializeTo(buf) },
		func(buf *buffer.Buffer) (proto.Packet, error) { return DeserializeConfigurationUpdateTags(buf) },
	)
	reg(registry.Key{Phase: proto.Configuration, Direction: proto.Serverbound, Opcode: OpcodeCfgClientInformation},
		func() proto.Packet { return ClientInformation{} },
		func(p proto.Packet, buf *buffer.Buffer) error { return p.(ClientInformation).SerializeTo(buf) },
		func(buf *buffer.Buffer) (proto.Packet, error) { return DeserializeClientInformation(buf) },
	)
	reg(registry.Key{Phase: proto.Configuration, Direction: proto.Serverbound, Opcode: OpcodeCfgServerboundPluginMessage},
		func() proto.Packet { return ServerboundPluginMessage{} },
		func(p proto.Packet, buf *buffer.Buffer) error { return p.(ServerboundPluginMessage).SerializeTo(buf) },
		func(buf *buffer.Buffer) (proto.Packet, error) { return DeserializeServerboundPluginMessage(buf) },
	)
}
