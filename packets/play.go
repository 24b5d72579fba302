package packets

import (
	"fmt"

	"mcjavaproto/buffer"
	"mcjavaproto/proto"
	"mcjavaproto/registry"
	"mcjavaproto/types"
)

// PLAY-phase opcodes. The Notchian PLAY table carries roughly 120 opcodes
// per direction; this module implements a representative subset chosen to
// exercise every wire pattern named in spec.md §4.4/§9 (action-gated
// optional fields, bitmask sub-actions, mode discriminators, entity
// metadata streams, opaque surfaced payloads) rather than the full
// opcode catalogue — see DESIGN.md for the scope decision.
const (
	OpcodePlaySpawnEntity        = 0x01
	OpcodePlayChunkBatchFinished = 0x0C
	OpcodePlayChunkBatchStart    = 0x0D
	OpcodePlayBlockAction        = 0x08
	OpcodePlayBossBar            = 0x0A
	OpcodePlayDisconnect         = 0x1D
	OpcodePlayPluginMessage      = 0x18
	OpcodePlayKeepAlive          = 0x27
	OpcodePlayerInfoUpdate       = 0x3E
	OpcodePlayRespawn            = 0x47
	OpcodePlaySetEntityMetadata  = 0x58
	OpcodePlaySetEquipment       = 0x5B
	OpcodePlayUpdateObjectives   = 0x5E
	OpcodePlayUpdateScore        = 0x61
	OpcodePlaySystemChatMessage  = 0x6C
	OpcodePlayUpdateTags         = 0x7D

	OpcodePlayServerboundKeepAlive     = 0x1A
	OpcodePlayServerboundPluginMessage = 0x10
)

// SpawnEntity introduces a non-player entity into the client's world view.
type SpawnEntity struct {
	EntityID     int32
	EntityUUID   types.UUID
	EntityType   int32
	Position     types.Vec3
	Pitch        types.Angle
	Yaw          types.Angle
	HeadYaw      types.Angle
	Data         int32
	VelocityX    int16
	VelocityY    int16
	VelocityZ    int16
}

func (SpawnEntity) Opcode() int32              { return OpcodePlaySpawnEntity }
func (SpawnEntity) Phase() proto.Phase         { return proto.Play }
func (SpawnEntity) Direction() proto.Direction { return proto.Clientbound }
func (SpawnEntity) Validate() error            { return nil }

func (s SpawnEntity) SerializeTo(buf *buffer.Buffer) error {
	if err := buf.WriteVarint(s.EntityID); err != nil {
		return err
	}
	if err := s.EntityUUID.SerializeTo(buf); err != nil {
		return err
	}
	if err := buf.WriteVarint(s.EntityType); err != nil {
		return err
	}
	if err := s.Position.SerializeTo(buf); err != nil {
		return err
	}
	if err := s.Pitch.SerializeTo(buf); err != nil {
		return err
	}
	if err := s.Yaw.SerializeTo(buf); err != nil {
		return err
	}
	if err := s.HeadYaw.SerializeTo(buf); err != nil {
		return err
	}
	if err := buf.WriteVarint(s.Data); err != nil {
		return err
	}
	buf.WriteI16(s.VelocityX)
	buf.WriteI16(s.VelocityY)
	buf.WriteI16(s.VelocityZ)
	return nil
}

func DeserializeSpawnEntity(buf *buffer.Buffer) (SpawnEntity, error) {
	entityID, err := buf.ReadVarint()
	if err != nil {
		return SpawnEntity{}, err
	}
	uuid, err := types.DeserializeUUID(buf)
	if err != nil {
		return SpawnEntity{}, err
	}
	entityType, err := buf.ReadVarint()
	if err != nil {
		return SpawnEntity{}, err
	}
	pos, err := types.DeserializeVec3(buf)
	if err != nil {
		return SpawnEntity{}, err
	}
	pitch, err := types.DeserializeAngle(buf)
	if err != nil {
		return SpawnEntity{}, err
	}
	yaw, err := types.DeserializeAngle(buf)
	if err != nil {
		return SpawnEntity{}, err
	}
	headYaw, err := types.DeserializeAngle(buf)
	if err != nil {
		return SpawnEntity{}, err
	}
	data, err := buf.ReadVarint()
	if err != nil {
		return SpawnEntity{}, err
	}
	vx, err := buf.ReadI16()
	if err != nil {
		return SpawnEntity{}, err
	}
	vy, err := buf.ReadI16()
	if err != nil {
		return SpawnEntity{}, err
	}
	vz, err := buf.ReadI16()
	if err != nil {
		return SpawnEntity{}, err
	}
	return SpawnEntity{
		EntityID: entityID, EntityUUID: uuid, EntityType: entityType, Position: pos,
		Pitch: pitch, Yaw: yaw, HeadYaw: headYaw, Data: data,
		VelocityX: vx, VelocityY: vy, VelocityZ: vz,
	}, nil
}

// SetEntityMetadata exercises the EntityMetadata stream (types.WriteMetadataStream)
// directly over the wire.
type SetEntityMetadata struct {
	EntityID int32
	Metadata []types.MetadataEntry
}

func (SetEntityMetadata) Opcode() int32              { return OpcodePlaySetEntityMetadata }
func (SetEntityMetadata) Phase() proto.Phase         { return proto.Play }
func (SetEntityMetadata) Direction() proto.Direction { return proto.Clientbound }
func (SetEntityMetadata) Validate() error            { return nil }

func (m SetEntityMetadata) SerializeTo(buf *buffer.Buffer) error {
	if err := buf.WriteVarint(m.EntityID); err != nil {
		return err
	}
	return types.WriteMetadataStream(buf, m.Metadata)
}

func DeserializeSetEntityMetadata(buf *buffer.Buffer) (SetEntityMetadata, error) {
	entityID, err := buf.ReadVarint()
	if err != nil {
		return SetEntityMetadata{}, err
	}
	entries, err := types.ReadMetadataStream(buf)
	if err != nil {
		return SetEntityMetadata{}, err
	}
	return SetEntityMetadata{EntityID: entityID, Metadata: entries}, nil
}

// BossBarAction selects which of BossBar's optional fields are present —
// the representative case for spec.md §4.4's "state machines inside
// specific packets" note, and the subject of spec.md §8 E6.
type BossBarAction int32

const (
	BossBarAdd           BossBarAction = 0
	BossBarRemove        BossBarAction = 1
	BossBarUpdateHealth  BossBarAction = 2
	BossBarUpdateTitle   BossBarAction = 3
	BossBarUpdateStyle   BossBarAction = 4
	BossBarUpdateFlags   BossBarAction = 5
)

type BossBarColor int32

const (
	BossBarPink BossBarColor = iota
	BossBarBlue
	BossBarRed
	BossBarGreen
	BossBarYellow
	BossBarPurple
	BossBarWhite
)

type BossBarDivision int32

const (
	BossBarDivisionNone BossBarDivision = iota
	BossBarDivisionSixNotches
	BossBarDivisionTenNotches
	BossBarDivisionTwelveNotches
	BossBarDivisionTwentyNotches
)

const (
	bossBarFlagDarkenSky  = 0x1
	bossBarFlagDragonBar  = 0x2
	bossBarFlagCreateFog  = 0x4
)

type BossBar struct {
	UUID        types.UUID
	Action      BossBarAction
	Title       *types.TextComponent
	Health      *float32
	Color       *BossBarColor
	Division    *BossBarDivision
	DarkenSky   bool
	IsDragonBar bool
	CreateFog   bool
}

func (BossBar) Opcode() int32              { return OpcodePlayBossBar }
func (BossBar) Phase() proto.Phase         { return proto.Play }
func (BossBar) Direction() proto.Direction { return proto.Clientbound }

// Validate enforces the action-gated field presence rule: ADD requires
// title+health+color+division; UPDATE_HEALTH requires only health;
// UPDATE_TITLE requires only title; UPDATE_STYLE requires color+division;
// UPDATE_FLAGS and REMOVE require nothing further (spec.md §8 E6).
func (b BossBar) Validate() error {
	switch b.Action {
	case BossBarAdd:
		if b.Title == nil || b.Health == nil || b.Color == nil || b.Division == nil {
			return fmt.Errorf("boss_bar: ADD requires title, health, color, and division")
		}
	case BossBarUpdateHealth:
		if b.Health == nil {
			return fmt.Errorf("boss_bar: UPDATE_HEALTH requires health")
		}
	case BossBarUpdateTitle:
		if b.Title == nil {
			return fmt.Errorf("boss_bar: UPDATE_TITLE requires title")
		}
	case BossBarUpdateStyle:
		if b.Color == nil || b.Division == nil {
			return fmt.Errorf("boss_bar: UPDATE_STYLE requires color and division")
		}
	case BossBarRemove, BossBarUpdateFlags:
		// no required fields beyond uuid/action/flags.
	default:
		return fmt.Errorf("boss_bar: unknown action %d", b.Action)
	}
	return nil
}

func (b BossBar) flags() uint8 {
	var f uint8
	if b.DarkenSky {
		f |= bossBarFlagDarkenSky
	}
	if b.IsDragonBar {
		f |= bossBarFlagDragonBar
	}
	if b.CreateFog {
		f |= bossBarFlagCreateFog
	}
	return f
}

func (b BossBar) SerializeTo(buf *buffer.Buffer) error {
	if err := b.UUID.SerializeTo(buf); err != nil {
		return err
	}
	if err := buf.WriteVarint(int32(b.Action)); err != nil {
		return err
	}
	switch b.Action {
	case BossBarAdd:
		if err := b.Title.SerializeNBT(buf); err != nil {
			return err
		}
		buf.WriteFloat32(*b.Health)
		if err := buf.WriteVarint(int32(*b.Color)); err != nil {
			return err
		}
		if err := buf.WriteVarint(int32(*b.Division)); err != nil {
			return err
		}
		buf.WriteU8(b.flags())
	case BossBarUpdateHealth:
		buf.WriteFloat32(*b.Health)
	case BossBarUpdateTitle:
		return b.Title.SerializeNBT(buf)
	case BossBarUpdateStyle:
		if err := buf.WriteVarint(int32(*b.Color)); err != nil {
			return err
		}
		return buf.WriteVarint(int32(*b.Division))
	case BossBarUpdateFlags:
		buf.WriteU8(b.flags())
	}
	return nil
}

func DeserializeBossBar(buf *buffer.Buffer) (BossBar, error) {
	uuid, err := types.DeserializeUUID(buf)
	if err != nil {
		return BossBar{}, err
	}
	actionRaw, err := buf.ReadVarint()
	if err != nil {
		return BossBar{}, err
	}
	b := BossBar{UUID: uuid, Action: BossBarAction(actionRaw)}

	readFlags := func() error {
		f, err := buf.ReadU8()
		if err != nil {
			return err
		}
		b.DarkenSky = f&bossBarFlagDarkenSky != 0
		b.IsDragonBar = f&bossBarFlagDragonBar != 0
		b.CreateFog = f&bossBarFlagCreateFog != 0
		return nil
	}

	switch b.Action {
	case BossBarAdd:
		title, err := types.DeserializeNBTTextComponent(buf)
		if err != nil {
			return BossBar{}, err
		}
		b.Title = &title
		health, err := buf.ReadFloat32()
		if err != nil {
			return BossBar{}, err
		}
		b.Health = &health
		colorRaw, err := buf.ReadVarint()
		if err != nil {
			return BossBar{}, err
		}
		color := BossBarColor(colorRaw)
		b.Color = &color
		divRaw, err := buf.ReadVarint()
		if err != nil {
			return BossBar{}, err
		}
		div := BossBarDivision(divRaw)
		b.Division = &div
		if err := readFlags(); err != nil {
			return BossBar{}, err
		}
	case BossBarUpdateHealth:
		health, err := buf.ReadFloat32()
		if err != nil {
			return BossBar{}, err
		}
		b.Health = &health
	case BossBarUpdateTitle:
		title, err := types.DeserializeNBTTextComponent(buf)
		if err != nil {
			return BossBar{}, err
		}
		b.Title = &title
	case BossBarUpdateStyle:
		colorRaw, err := buf.ReadVarint()
		if err != nil {
			return BossBar{}, err
		}
		color := BossBarColor(colorRaw)
		b.Color = &color
		divRaw, err := buf.ReadVarint()
		if err != nil {
			return BossBar{}, err
		}
		div := BossBarDivision(divRaw)
		b.Division = &div
	case BossBarUpdateFlags:
		if err := readFlags(); err != nil {
			return BossBar{}, err
		}
	}
	return b, nil
}

// BlockAction drives non-persistent block animations (piston moves, note
// block notes, chest lid opens).
type BlockAction struct {
	Location        types.Position
	ActionID        uint8
	ActionParameter uint8
	BlockType       int32
}

func (BlockAction) Opcode() int32              { return OpcodePlayBlockAction }
func (BlockAction) Phase() proto.Phase         { return proto.Play }
func (BlockAction) Direction() proto.Direction { return proto.Clientbound }
func (BlockAction) Validate() error            { return nil }

func (a BlockAction) SerializeTo(buf *buffer.Buffer) error {
	if err := a.Location.SerializeTo(buf); err != nil {
		return err
	}
	buf.WriteU8(a.ActionID)
	buf.WriteU8(a.ActionParameter)
	return buf.WriteVarint(a.BlockType)
}

func DeserializeBlockAction(buf *buffer.Buffer) (BlockAction, error) {
	loc, err := types.DeserializePosition(buf)
	if err != nil {
		return BlockAction{}, err
	}
	actionID, err := buf.ReadU8()
	if err != nil {
		return BlockAction{}, err
	}
	param, err := buf.ReadU8()
	if err != nil {
		return BlockAction{}, err
	}
	blockType, err := buf.ReadVarint()
	if err != nil {
		return BlockAction{}, err
	}
	return BlockAction{Location: loc, ActionID: actionID, ActionParameter: param, BlockType: blockType}, nil
}

// ChunkBatchStart/ChunkBatchFinished bracket a run of chunk data packets so
// the client can pace its own rendering.
type ChunkBatchStart struct{}

func (ChunkBatchStart) Opcode() int32                  { return OpcodePlayChunkBatchStart }
func (ChunkBatchStart) Phase() proto.Phase             { return proto.Play }
func (ChunkBatchStart) Direction() proto.Direction     { return proto.Clientbound }
func (ChunkBatchStart) Validate() error                { return nil }
func (ChunkBatchStart) SerializeTo(*buffer.Buffer) error { return nil }

func DeserializeChunkBatchStart(*buffer.Buffer) (ChunkBatchStart, error) {
	return ChunkBatchStart{}, nil
}

type ChunkBatchFinished struct {
	BatchSize int32
}

func (ChunkBatchFinished) Opcode() int32              { return OpcodePlayChunkBatchFinished }
func (ChunkBatchFinished) Phase() proto.Phase         { return proto.Play }
func (ChunkBatchFinished) Direction() proto.Direction { return proto.Clientbound }
func (ChunkBatchFinished) Validate() error            { return nil }

func (c ChunkBatchFinished) SerializeTo(buf *buffer.Buffer) error {
	return buf.WriteVarint(c.BatchSize)
}

func DeserializeChunkBatchFinished(buf *buffer.Buffer) (ChunkBatchFinished, error) {
	n, err := buf.ReadVarint()
	if err != nil {
		return ChunkBatchFinished{}, err
	}
	return ChunkBatchFinished{BatchSize: n}, nil
}

// Respawn changes the player's dimension; the has-death-location flag
// gates a pair of trailing fields (spec.md §4.4).
type Respawn struct {
	DimensionType      int32
	DimensionName      types.Identifier
	HashedSeed         int64
	GameMode           uint8
	PreviousGameMode   int8
	IsDebug            bool
	IsFlat             bool
	DeathDimensionName *types.Identifier
	DeathLocation      *types.Position
	PortalCooldown     int32
	DataKept           uint8
}

func (Respawn) Opcode() int32              { return OpcodePlayRespawn }
func (Respawn) Phase() proto.Phase         { return proto.Play }
func (Respawn) Direction() proto.Direction { return proto.Clientbound }

func (r Respawn) Validate() error {
	if (r.DeathDimensionName == nil) != (r.DeathLocation == nil) {
		return fmt.Errorf("respawn: death_dimension_name and death_location must both be present or both absent")
	}
	return nil
}

func (r Respawn) SerializeTo(buf *buffer.Buffer) error {
	if err := buf.WriteVarint(r.DimensionType); err != nil {
		return err
	}
	if err := r.DimensionName.SerializeTo(buf); err != nil {
		return err
	}
	buf.WriteI64(r.HashedSeed)
	buf.WriteU8(r.GameMode)
	buf.WriteI8(r.PreviousGameMode)
	buf.WriteBool(r.IsDebug)
	buf.WriteBool(r.IsFlat)
	hasDeath := r.DeathDimensionName != nil
	buf.WriteBool(hasDeath)
	if hasDeath {
		if err := r.DeathDimensionName.SerializeTo(buf); err != nil {
			return err
		}
		if err := r.DeathLocation.SerializeTo(buf); err != nil {
			return err
		}
	}
	if err := buf.WriteVarint(r.PortalCooldown); err != nil {
		return err
	}
	buf.WriteU8(r.DataKept)
	return nil
}

func DeserializeRespawn(buf *buffer.Buffer) (Respawn, error) {
	dimType, err := buf.ReadVarint()
	if err != nil {
		return Respawn{}, err
	}
	dimName, err := types.DeserializeIdentifier(buf)
	if err != nil {
		return Respawn{}, err
	}
	seed, err := buf.ReadI64()
	if err != nil {
		return Respawn{}, err
	}
	gameMode, err := buf.ReadU8()
	if err != nil {
		return Respawn{}, err
	}
	prevGameMode, err := buf.ReadI8()
	if err != nil {
		return Respawn{}, err
	}
	isDebug, err := buf.ReadBool()
	if err != nil {
		return Respawn{}, err
	}
	isFlat, err := buf.ReadBool()
	if err != nil {
		return Respawn{}, err
	}
	hasDeath, err := buf.ReadBool()
	if err != nil {
		return Respawn{}, err
	}
	r := Respawn{
		DimensionType: dimType, DimensionName: dimName, HashedSeed: seed,
		GameMode: gameMode, PreviousGameMode: prevGameMode, IsDebug: isDebug, IsFlat: isFlat,
	}
	if hasDeath {
		deathDim, err := types.DeserializeIdentifier(buf)
		if err != nil {
			return Respawn{}, err
		}
		deathLoc, err := types.DeserializePosition(buf)
		if err != nil {
			return Respawn{}, err
		}
		r.DeathDimensionName = &deathDim
		r.DeathLocation = &deathLoc
	}
	cooldown, err := buf.ReadVarint()
	if err != nil {
		return Respawn{}, err
	}
	dataKept, err := buf.ReadU8()
	if err != nil {
		return Respawn{}, err
	}
	r.PortalCooldown = cooldown
	r.DataKept = dataKept
	return r, nil
}

// EquipmentSlot enumerates the armor/hand slots SetEquipment can target.
type EquipmentSlot int8

const (
	EquipmentMainHand EquipmentSlot = 0
	EquipmentOffHand  EquipmentSlot = 1
	EquipmentBoots    EquipmentSlot = 2
	EquipmentLeggings EquipmentSlot = 3
	EquipmentChestplate EquipmentSlot = 4
	EquipmentHelmet   EquipmentSlot = 5
	EquipmentBody     EquipmentSlot = 6
)

type EquipmentEntry struct {
	Slot EquipmentSlot
	Item types.Slot
}

// SetEquipment updates one or more of an entity's worn/held items, packed
// as a chain where the top bit of each slot byte signals "more entries
// follow" — the representative case for a continuation-bit list rather
// than a varint-prefixed count.
type SetEquipment struct {
	EntityID  int32
	Equipment []EquipmentEntry
}

func (SetEquipment) Opcode() int32              { return OpcodePlaySetEquipment }
func (SetEquipment) Phase() proto.Phase         { return proto.Play }
func (SetEquipment) Direction() proto.Direction { return proto.Clientbound }

func (s SetEquipment) Validate() error {
	if len(s.Equipment) == 0 {
		return fmt.Errorf("set_equipment: equipment list must not be empty")
	}
	return nil
}

func (s SetEquipment) SerializeTo(buf *buffer.Buffer) error {
	if err := buf.WriteVarint(s.EntityID); err != nil {
		return err
	}
	for i, e := range s.Equipment {
		b := uint8(e.Slot)
		if i < len(s.Equipment)-1 {
			b |= 0x80
		}
		buf.WriteU8(b)
		if err := e.Item.SerializeTo(buf); err != nil {
			return err
		}
	}
	return nil
}

func DeserializeSetEquipment(buf *buffer.Buffer) (SetEquipment, error) {
	entityID, err := buf.ReadVarint()
	if err != nil {
		return SetEquipment{}, err
	}
	var equipment []EquipmentEntry
	for {
		b, err := buf.ReadU8()
		if err != nil {
			return SetEquipment{}, err
		}
		item, err := types.DeserializeSlot(buf)
		if err != nil {
			return SetEquipment{}, err
		}
		equipment = append(equipment, EquipmentEntry{Slot: EquipmentSlot(b & 0x7F), Item: item})
		if b&0x80 == 0 {
			break
		}
	}
	return SetEquipment{EntityID: entityID, Equipment: equipment}, nil
}

// PlayDisconnect carries the disconnect reason as NBT TextComponent.
type PlayDisconnect struct {
	Reason types.TextComponent
}

func (PlayDisconnect) Opcode() int32              { return OpcodePlayDisconnect }
func (PlayDisconnect) Phase() proto.Phase         { return proto.Play }
func (PlayDisconnect) Direction() proto.Direction { return proto.Clientbound }
func (d PlayDisconnect) Validate() error          { return d.Reason.Validate() }

func (d PlayDisconnect) SerializeTo(buf *buffer.Buffer) error {
	return d.Reason.SerializeNBT(buf)
}

func DeserializePlayDisconnect(buf *buffer.Buffer) (PlayDisconnect, error) {
	r, err := types.DeserializeNBTTextComponent(buf)
	if err != nil {
		return PlayDisconnect{}, err
	}
	return PlayDisconnect{Reason: r}, nil
}

// SystemChatMessage delivers a server-originated message outside the
// player chat history (e.g. command feedback).
type SystemChatMessage struct {
	Content types.TextComponent
	Overlay bool
}

func (SystemChatMessage) Opcode() int32              { return OpcodePlaySystemChatMessage }
func (SystemChatMessage) Phase() proto.Phase         { return proto.Play }
func (SystemChatMessage) Direction() proto.Direction { return proto.Clientbound }
func (m SystemChatMessage) Validate() error          { return m.Content.Validate() }

func (m SystemChatMessage) SerializeTo(buf *buffer.Buffer) error {
	if err := m.Content.SerializeNBT(buf); err != nil {
		return err
	}
	buf.WriteBool(m.Overlay)
	return nil
}

func DeserializeSystemChatMessage(buf *buffer.Buffer) (SystemChatMessage, error) {
	content, err := types.DeserializeNBTTextComponent(buf)
	if err != nil {
		return SystemChatMessage{}, err
	}
	overlay, err := buf.ReadBool()
	if err != nil {
		return SystemChatMessage{}, err
	}
	return SystemChatMessage{Content: content, Overlay: overlay}, nil
}

// UpdateObjectives creates, removes, or retitles one scoreboard objective;
// mode gates the trailing fields (spec.md §4.4).
type UpdateObjectives struct {
	ObjectiveName   string
	Mode            int8
	ObjectiveValue  *types.TextComponent
	ObjectiveType   *int32
	NumberFormat    *int32
	NumberFormatContent *types.TextComponent
}

func (UpdateObjectives) Opcode() int32              { return OpcodePlayUpdateObjectives }
func (UpdateObjectives) Phase() proto.Phase         { return proto.Play }
func (UpdateObjectives) Direction() proto.Direction { return proto.Clientbound }

func (u UpdateObjectives) Validate() error {
	if u.Mode == 0 || u.Mode == 2 {
		if u.ObjectiveValue == nil || u.ObjectiveType == nil {
			return fmt.Errorf("update_objectives: mode %d requires objective_value and objective_type", u.Mode)
		}
		if u.NumberFormat != nil && *u.NumberFormat == 2 && u.NumberFormatContent == nil {
			return fmt.Errorf("update_objectives: number_format=2 requires number_format_content")
		}
	}
	return nil
}

func (u UpdateObjectives) SerializeTo(buf *buffer.Buffer) error {
	if err := buf.WriteUTF(u.ObjectiveName); err != nil {
		return err
	}
	buf.WriteI8(u.Mode)
	if u.Mode != 0 && u.Mode != 2 {
		return nil
	}
	if err := u.ObjectiveValue.SerializeNBT(buf); err != nil {
		return err
	}
	if err := buf.WriteVarint(*u.ObjectiveType); err != nil {
		return err
	}
	buf.WriteBool(u.NumberFormat != nil)
	if u.NumberFormat == nil {
		return nil
	}
	if err := buf.WriteVarint(*u.NumberFormat); err != nil {
		return err
	}
	if *u.NumberFormat == 2 {
		return u.NumberFormatContent.SerializeNBT(buf)
	}
	return nil
}

func DeserializeUpdateObjectives(buf *buffer.Buffer) (UpdateObjectives, error) {
	name, err := buf.ReadUTF()
	if err != nil {
		return UpdateObjectives{}, err
	}
	mode, err := buf.ReadI8()
	if err != nil {
		return UpdateObjectives{}, err
	}
	u := UpdateObjectives{ObjectiveName: name, Mode: mode}
	if mode != 0 && mode != 2 {
		return u, nil
	}
	value, err := types.DeserializeNBTTextComponent(buf)
	if err != nil {
		return UpdateObjectives{}, err
	}
	u.ObjectiveValue = &value
	objType, err := buf.ReadVarint()
	if err != nil {
		return UpdateObjectives{}, err
	}
	u.ObjectiveType = &objType
	hasFormat, err := buf.ReadBool()
	if err != nil {
		return UpdateObjectives{}, err
	}
	if !hasFormat {
		return u, nil
	}
	format, err := buf.ReadVarint()
	if err != nil {
		return UpdateObjectives{}, err
	}
	u.NumberFormat = &format
	if format == 2 {
		content, err := types.DeserializeNBTTextComponent(buf)
		if err != nil {
			return UpdateObjectives{}, err
		}
		u.NumberFormatContent = &content
	}
	return u, nil
}

// UpdateScore updates one scoreboard entry's value, with an optional number
// format like UpdateObjectives; unlike UpdateObjectives, which expects
// NumberFormatContent only for format 2, UpdateScore carries it for both
// format 1 and format 2.
type UpdateScore struct {
	EntityName          string
	ObjectiveName       string
	Value               int32
	DisplayName         *types.TextComponent
	NumberFormat        *int32
	NumberFormatContent *types.TextComponent
}

func (UpdateScore) Opcode() int32              { return OpcodePlayUpdateScore }
func (UpdateScore) Phase() proto.Phase         { return proto.Play }
func (UpdateScore) Direction() proto.Direction { return proto.Clientbound }

func (u UpdateScore) Validate() error {
	if u.NumberFormat != nil {
		if *u.NumberFormat < 0 || *u.NumberFormat > 2 {
			return fmt.Errorf("update_score: number_format must be 0, 1, or 2, got %d", *u.NumberFormat)
		}
		if (*u.NumberFormat == 1 || *u.NumberFormat == 2) && u.NumberFormatContent == nil {
			return fmt.Errorf("update_score: number_format_content must be set when number_format is 1 or 2")
		}
	}
	return nil
}

func (u UpdateScore) SerializeTo(buf *buffer.Buffer) error {
	if err := buf.WriteUTF(u.EntityName); err != nil {
		return err
	}
	if err := buf.WriteUTF(u.ObjectiveName); err != nil {
		return err
	}
	if err := buf.WriteVarint(u.Value); err != nil {
		return err
	}
	if err := buffer.WriteOptional(buf, u.DisplayName != nil, u.DisplayName, func(b *buffer.Buffer, v *types.TextComponent) error {
		return v.SerializeNBT(b)
	}); err != nil {
		return err
	}
	if u.NumberFormat == nil {
		buf.WriteBool(false)
		return nil
	}
	buf.WriteBool(true)
	if err := buf.WriteVarint(*u.NumberFormat); err != nil {
		return err
	}
	if *u.NumberFormat == 1 || *u.NumberFormat == 2 {
		return u.NumberFormatContent.SerializeNBT(buf)
	}
	return nil
}

func DeserializeUpdateScore(buf *buffer.Buffer) (UpdateScore, error) {
	entityName, err := buf.ReadUTF()
	if err != nil {
		return UpdateScore{}, err
	}
	objectiveName, err := buf.ReadUTF()
	if err != nil {
		return UpdateScore{}, err
	}
	value, err := buf.ReadVarint()
	if err != nil {
		return UpdateScore{}, err
	}
	display, hasDisplay, err := buffer.ReadOptional(buf, types.DeserializeNBTTextComponent)
	if err != nil {
		return UpdateScore{}, err
	}
	u := UpdateScore{EntityName: entityName, ObjectiveName: objectiveName, Value: value}
	if hasDisplay {
		u.DisplayName = &display
	}
	hasFormat, err := buf.ReadBool()
	if err != nil {
		return UpdateScore{}, err
	}
	if !hasFormat {
		return u, nil
	}
	format, err := buf.ReadVarint()
	if err != nil {
		return UpdateScore{}, err
	}
	u.NumberFormat = &format
	if format == 1 || format == 2 {
		content, err := types.DeserializeNBTTextComponent(buf)
		if err != nil {
			return UpdateScore{}, err
		}
		u.NumberFormatContent = &content
	}
	return u, nil
}

// PlayerInfoEntry is one UUID's set of sub-actions within a
// PlayerInfoUpdate; each field's presence corresponds to a bit of Actions.
type PlayerInfoEntry struct {
	UUID types.UUID

	Name                string
	Properties          map[string]string

	HasGamemode bool
	Gamemode    int32

	HasListed bool
	Listed    bool

	HasLatency bool
	Latency    int32
}

const (
	playerInfoActionAddPlayer      = 0x1
	playerInfoActionUpdateGamemode = 0x4
	playerInfoActionUpdateListed   = 0x8
	playerInfoActionUpdateLatency  = 0x10
)

// PlayerInfoUpdate encodes a bitmask of applicable sub-actions, applied
// uniformly to every listed player (spec.md §4.4) — this module covers
// AddPlayer/UpdateGamemode/UpdateListed/UpdateLatency; InitializeChat and
// UpdateDisplayName are left for a future extension of this packet.
type PlayerInfoUpdate struct {
	Actions uint8
	Players []PlayerInfoEntry
}

func (PlayerInfoUpdate) Opcode() int32              { return OpcodePlayerInfoUpdate }
func (PlayerInfoUpdate) Phase() proto.Phase         { return proto.Play }
func (PlayerInfoUpdate) Direction() proto.Direction { return proto.Clientbound }

func (u PlayerInfoUpdate) Validate() error {
	for i, p := range u.Players {
		if (u.Actions&playerInfoActionUpdateGamemode != 0) != p.HasGamemode ||
			(u.Actions&playerInfoActionUpdateListed != 0) != p.HasListed ||
			(u.Actions&playerInfoActionUpdateLatency != 0) != p.HasLatency {
			return fmt.Errorf("player_info_update: player %d's sub-action presence does not match the packet's action bitmask", i)
		}
	}
	return nil
}

func (u PlayerInfoUpdate) SerializeTo(buf *buffer.Buffer) error {
	buf.WriteU8(u.Actions)
	if err := buf.WriteVarint(int32(len(u.Players))); err != nil {
		return err
	}
	for _, p := range u.Players {
		if err := p.UUID.SerializeTo(buf); err != nil {
			return err
		}
		if u.Actions&playerInfoActionAddPlayer != 0 {
			if err := buf.WriteUTF(p.Name); err != nil {
				return err
			}
			if err := buf.WriteVarint(int32(len(p.Properties))); err != nil {
				return err
			}
			for k, v := range p.Properties {
				if err := buf.WriteUTF(k); err != nil {
					return err
				}
				if err := buf.WriteUTF(v); err != nil {
					return err
				}
				buf.WriteBool(false) // signature omitted in this subset
			}
		}
		if u.Actions&playerInfoActionUpdateGamemode != 0 {
			if err := buf.WriteVarint(p.Gamemode); err != nil {
				return err
			}
		}
		if u.Actions&playerInfoActionUpdateListed != 0 {
			buf.WriteBool(p.Listed)
		}
		if u.Actions&playerInfoActionUpdateLatency != 0 {
			if err := buf.WriteVarint(p.Latency); err != nil {
				return err
			}
		}
	}
	return nil
}

func DeserializePlayerInfoUpdate(buf *buffer.Buffer) (PlayerInfoUpdate, error) {
	actions, err := buf.ReadU8()
	if err != nil {
		return PlayerInfoUpdate{}, err
	}
	count, err := buf.ReadVarint()
	if err != nil {
		return PlayerInfoUpdate{}, err
	}
	if count < 0 {
		return PlayerInfoUpdate{}, fmt.Errorf("%w: negative player count", buffer.ErrMalformed)
	}
	players := make([]PlayerInfoEntry, count)
	for i := range players {
		uuid, err := types.DeserializeUUID(buf)
		if err != nil {
			return PlayerInfoUpdate{}, err
		}
		p := PlayerInfoEntry{UUID: uuid}
		if actions&playerInfoActionAddPlayer != 0 {
			name, err := buf.ReadUTF()
			if err != nil {
				return PlayerInfoUpdate{}, err
			}
			propCount, err := buf.ReadVarint()
			if err != nil {
				return PlayerInfoUpdate{}, err
			}
			props := make(map[string]string, propCount)
			for j := int32(0); j < propCount; j++ {
				k, err := buf.ReadUTF()
				if err != nil {
					return PlayerInfoUpdate{}, err
				}
				v, err := buf.ReadUTF()
				if err != nil {
					return PlayerInfoUpdate{}, err
				}
				if _, _, err := buffer.ReadOptional(buf, func(b *buffer.Buffer) (string, error) { return b.ReadUTF() }); err != nil {
					return PlayerInfoUpdate{}, err
				}
				props[k] = v
			}
			p.Name = name
			p.Properties = props
		}
		if actions&playerInfoActionUpdateGamemode != 0 {
			gm, err := buf.ReadVarint()
			if err != nil {
				return PlayerInfoUpdate{}, err
			}
			p.HasGamemode = true
			p.Gamemode = gm
		}
		if actions&playerInfoActionUpdateListed != 0 {
			listed, err := buf.ReadBool()
			if err != nil {
				return PlayerInfoUpdate{}, err
			}
			p.HasListed = true
			p.Listed = listed
		}
		if actions&playerInfoActionUpdateLatency != 0 {
			latency, err := buf.ReadVarint()
			if err != nil {
				return PlayerInfoUpdate{}, err
			}
			p.HasLatency = true
			p.Latency = latency
		}
		players[i] = p
	}
	return PlayerInfoUpdate{Actions: actions, Players: players}, nil
}

// PlayUpdateTags shares ConfigurationUpdateTags's wire shape (configuration.go)
// under a separate PLAY opcode — two distinct registry entries, never a
// shared type alias, per the Open Questions decision (SPEC_FULL §10).
type PlayUpdateTags struct {
	Groups []TagGroup
}

func (PlayUpdateTags) Opcode() int32              { return OpcodePlayUpdateTags }
func (PlayUpdateTags) Phase() proto.Phase         { return proto.Play }
func (PlayUpdateTags) Direction() proto.Direction { return proto.Clientbound }
func (PlayUpdateTags) Validate() error            { return nil }

func (t PlayUpdateTags) SerializeTo(buf *buffer.Buffer) error {
	return serializeTagGroups(buf, t.Groups)
}

func DeserializePlayUpdateTags(buf *buffer.Buffer) (PlayUpdateTags, error) {
	groups, err := deserializeTagGroups(buf)
	if err != nil {
		return PlayUpdateTags{}, err
	}
	return PlayUpdateTags{Groups: groups}, nil
}

// PlayPluginMessage/PlayServerboundPluginMessage mirror the CONFIGURATION
// plugin channel packets under the PLAY opcode table.
type PlayPluginMessage struct {
	Channel types.Identifier
	Data    []byte
}

func (PlayPluginMessage) Opcode() int32              { return OpcodePlayPluginMessage }
func (PlayPluginMessage) Phase() proto.Phase         { return proto.Play }
func (PlayPluginMessage) Direction() proto.Direction { return proto.Clientbound }
func (PlayPluginMessage) Validate() error            { return nil }

func (m PlayPluginMessage) SerializeTo(buf *buffer.Buffer) error {
	if err := m.Channel.SerializeTo(buf); err != nil {
		return err
	}
	buf.Write(m.Data)
	return nil
}

func DeserializePlayPluginMessage(buf *buffer.Buffer) (PlayPluginMessage, error) {
	channel, err := types.DeserializeIdentifier(buf)
	if err != nil {
		return PlayPluginMessage{}, err
	}
	return PlayPluginMessage{Channel: channel, Data: buf.ReadRemaining()}, nil
}

type PlayServerboundPluginMessage struct {
	Channel types.Identifier
	Data    []byte
}

func (PlayServerboundPluginMessage) Opcode() int32              { return OpcodePlayServerboundPluginMessage }
func (PlayServerboundPluginMessage) Phase() proto.Phase         { return proto.Play }
func (PlayServerboundPluginMessage) Direction() proto.Direction { return proto.Serverbound }
func (PlayServerboundPluginMessage) Validate() error            { return nil }

func (m PlayServerboundPluginMessage) SerializeTo(buf *buffer.Buffer) error {
	if err := m.Channel.SerializeTo(buf); err != nil {
		return err
	}
	buf.Write(m.Data)
	return nil
}

func DeserializePlayServerboundPluginMessage(buf *buffer.Buffer) (PlayServerboundPluginMessage, error) {
	channel, err := types.DeserializeIdentifier(buf)
	if err != nil {
		return PlayServerboundPluginMessage{}, err
	}
	return PlayServerboundPluginMessage{Channel: channel, Data: buf.ReadRemaining()}, nil
}

// PlayKeepAlive / PlayServerboundKeepAlive are the PLAY-phase connection
// liveness probe and its echo.
type PlayKeepAlive struct {
	KeepAliveID int64
}

func (PlayKeepAlive) Opcode() int32              { return OpcodePlayKeepAlive }
func (PlayKeepAlive) Phase() proto.Phase         { return proto.Play }
func (PlayKeepAlive) Direction() proto.Direction { return proto.Clientbound }
func (PlayKeepAlive) Validate() error            { return nil }

func (k PlayKeepAlive) SerializeTo(buf *buffer.Buffer) error {
	buf.WriteI64(k.KeepAliveID)
	return nil
}

func DeserializePlayKeepAlive(buf *buffer.Buffer) (PlayKeepAlive, error) {
	v, err := buf.ReadI64()
	if err != nil {
		return PlayKeepAlive{}, err
	}
	return PlayKeepAlive{KeepAliveID: v}, nil
}

type PlayServerboundKeepAlive struct {
	KeepAliveID int64
}

func (PlayServerboundKeepAlive) Opcode() int32              { return OpcodePlayServerboundKeepAlive }
func (PlayServerboundKeepAlive) Phase() proto.Phase         { return proto.Play }
func (PlayServerboundKeepAlive) Direction() proto.Direction { return proto.Serverbound }
func (PlayServerboundKeepAlive) Validate() error            { return nil }

func (k PlayServerboundKeepAlive) SerializeTo(buf *buffer.Buffer) error {
	buf.WriteI64(k.KeepAliveID)
	return nil
}

func DeserializePlayServerboundKeepAlive(buf *buffer.Buffer) (PlayServerboundKeepAlive, error) {
	v, err := buf.ReadI64()
	if err != nil {
		return PlayServerboundKeepAlive{}, err
	}
	return PlayServerboundKeepAlive{KeepAliveID: v}, nil
}

func init() {
	reg := func(key registry.Key, newFn registry.Factory, ser func(proto.Packet, *buffer.Buffer) error, de func(*buffer.Buffer) (proto.Packet, error)) {
		registry.Global.Register(key, registry.Codec{New: newFn, Serialize: ser, Deserialize: de})
	}

	reg(registry.Key{Phase: proto.Play, Direction: proto.Clientbound, Opcode: OpcodePlaySpawnEntity},
		func() proto.Packet { return SpawnEntity{} },
		func(p proto.Packet, buf *buffer.Buffer) error { return p.(SpawnEntity).SerializeTo(buf) },
		func(buf *buffer.Buffer) (proto.Packet, error) { return DeserializeSpawnEntity(buf) },
	)
	reg(registry.Key{Phase: proto.Play, Direction: proto.Clientbound, Opcode: OpcodePlaySetEntityMetadata},
		func() proto.Packet { return SetEntityMetadata{} },
		func(p proto.Packet, buf *buffer.Buffer) error { return p.(SetEntityMetadata).SerializeTo(buf) },
		func(buf *buffer.Buffer) (proto.Packet, error) { return DeserializeSetEntityMetadata(buf) },
	)
	reg(registry.Key{Phase: proto.Play, Direction: proto.Clientbound, Opcode: OpcodePlayBossBar},
		func() proto.Packet { return BossBar{} },
		func(p proto.Packet, buf *buffer.Buffer) error { return p.(BossBar).SerializeTo(buf) },
		func(buf *buffer.Buffer) (proto.Packet, error) { return DeserializeBossBar(buf) },
	)
	reg(registry.Key{Phase: proto.Play, Direction: proto.Clientbound, Opcode: OpcodePlayBlockAction},
		func() proto.Packet { return BlockAction{} },
		func(p proto.Packet, buf *buffer.Buffer) error { return p.(BlockAction).SerializeTo(buf) },
		func(buf *buffer.Buffer) (proto.Packet, error) { return DeserializeBlockAction(buf) },
	)
	reg(registry.Key{Phase: proto.Play, Direction: proto.Clientbound, Opcode: OpcodePlayChunkBatchStart},
		func() proto.Packet { return ChunkBatchStart{} },
		func(p proto.Packet, buf *buffer.Buffer) error { return p.(ChunkBatchStart).SerializeTo(buf) },
		func(buf *buffer.Buffer) (proto.Packet, error) { return DeserializeChunkBatchStart(buf) },
	)
	reg(registry.Key{Phase: proto.Play, Direction: proto.Clientbound, Opcode: OpcodePlayChunkBatchFinished},
		func() proto.Packet { return ChunkBatchFinished{} },
		func(p proto.Packet, buf *buffer.Buffer) error { return p.(ChunkBatchFinished).SerializeTo(buf) },
		func(buf *buffer.Buffer) (proto.Packet, error) { return DeserializeChunkBatchFinished(buf) },
	)
	reg(registry.Key{Phase: proto.Play, Direction: proto.Clientbound, Opcode: OpcodePlayRespawn},
		func() proto.Packet { return Respawn{} },
		func(p proto.Packet, buf *buffer.Buffer) error { return p.(Respawn).SerializeTo(buf) },
		func(buf *buffer.Buffer) (proto.Packet, error) { return DeserializeRespawn(buf) },
	)
	reg(registry.Key{Phase: proto.Play, Direction: proto.Clientbound, Opcode: OpcodePlaySetEquipment},
		func() proto.Packet { return SetEquipment{} },
		func(p proto.Packet, buf *buffer.Buffer) error { return p.(SetEquipment).SerializeTo(buf) },
		func(buf *buffer.Buffer) (proto.Packet, error) { return DeserializeSetEquipment(buf) },
	)
	reg(registry.Key{Phase: proto.Play, Direction: proto.Clientbound, Opcode: OpcodePlayDisconnect},
		func() proto.Packet { return PlayDisconnect{} },
		func(p proto.Packet, buf *buffer.Buffer) error { return p.(PlayDisconnect).SerializeTo(buf) },
		func(buf *buffer.Buffer) (proto.Packet, error) { return DeserializePlayDisconnect(buf) },
	)
	reg(registry.Key{Phase: proto.Play, Direction: proto.Clientbound, Opcode: OpcodePlaySystemChatMessage},
		func() proto.Packet { return SystemChatMessage{} },
		func(p proto.Packet, buf *buffer.Buffer) error { return p.(SystemChatMessage).SerializeTo(buf) },
		func(buf *buffer.Buffer) (proto.Packet, error) { return DeserializeSystemChatMessage(buf) },
	)
	reg(registry.Key{Phase: proto.Play, Direction: proto.Clientbound, Opcode: OpcodePlayUpdateObjectives},
		func() proto.Packet { return UpdateObjectives{} },
		func(p proto.Packet, buf *buffer.Buffer) error { return p.(UpdateObjectives).SerializeTo(buf) },
		func(buf *buffer.Buffer) (proto.Packet, error) { return DeserializeUpdateObjectives(buf) },
	)
	reg(registry.Key{Phase: proto.Play, Direction: proto.Clientbound, Opcode: OpcodePlayUpdateScore},
		func() proto.Packet { return UpdateScore{} },
		func(p proto.Packet, buf *buffer.Buffer) error { return p.(UpdateScore).SerializeTo(buf) },
		func(buf *buffer.Buffer) (proto.Packet, error) { return DeserializeUpdateScore(buf) },
	)
	reg(registry.Key{Phase: proto.Play, Direction: proto.Clientbound, Opcode: OpcodePlayerInfoUpdate},
		func() proto.Packet { return PlayerInfoUpdate{} },
		func(p proto.Packet, buf *buffer.Buffer) error { return p.(PlayerInfoUpdate).SerializeTo(buf) },
		func(buf *buffer.Buffer) (proto.Packet, error) { return DeserializePlayerInfoUpdate(buf) },
	)
	reg(registry.Key{Phase: proto.Play, Direction: proto.Clientbound, Opcode: OpcodePlayUpdateTags},
		func() proto.Packet { return PlayUpdateTags{} },
		func(p proto.Packet, buf *buffer.Buffer) error { return p.(PlayUpdateTags).SerializeTo(buf) },
		func(buf *buffer.Buffer) (proto.Packet, error) { return DeserializePlayUpdateTags(buf) },
	)
	reg(registry.Key{Phase: proto.Play, Direction: proto.Clientbound, Opcode: OpcodePlayPluginMessage},
		func() proto.Packet { return PlayPluginMessage{} },
		func(p proto.Packet, buf *buffer.Buffer) error { return p.(PlayPluginMessage).SerializeTo(buf) },
		func(buf *buffer.Buffer) (proto.Packet, error) { return DeserializePlayPluginMessage(buf) },
	)
	reg(registry.Key{Phase: proto.Play, Direction: proto.Serverbound, Opcode: OpcodePlayServerboundPluginMessage},
		func() proto.Packet { return PlayServerboundPluginMessage{} },
		func(p proto.Packet, buf *buffer.Buffer) error { return p.(PlayServerboundPluginMessage).SerializeTo(buf) },
		func(buf *buffer.Buffer) (proto.Packet, error) { return DeserializePlayServerboundPluginMessage(buf) },
	)
	reg(registry.Key{Phase: proto.Play, Direction: proto.Clientbound, Opcode: OpcodePlayKeepAlive},
		func() proto.Packet { return PlayKeepAlive{} },
		func(p proto.Packet, buf *buffer.Buffer) error { return p.(PlayKeepAlive).SerializeTo(buf) },
		func(buf *buffer.Buffer) (proto.Packet, error) { return DeserializePlayKeepAlive(buf) },
	)
	reg(registry.Key{Phase: proto.Play, Direction: proto.Serverbound, Opcode: OpcodePlayServerboundKeepAlive},
		func() proto.Packet { return PlayServerboundKeepAlive{} },
		func(p proto.Packet, buf *buffer.Buffer) error { return p.(PlayServerboundKeepAlive).SerializeTo(buf) },
		func(buf *buffer.Buffer) (proto.Packet, error) { return DeserializePlayServerboundKeepAlive(buf) },
	)
}
