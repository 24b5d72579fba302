package types

import (
	"fmt"

	"mcjavaproto/buffer"
)

// MetadataType enumerates the wire type tag that precedes each entity
// metadata entry's value, per spec.md §9's EntityMetadata stream.
type MetadataType int32

const (
	MetaByte          MetadataType = 0
	MetaVarInt        MetadataType = 1
	MetaFloat         MetadataType = 2
	MetaString        MetadataType = 3
	MetaTextComponent MetadataType = 4
	MetaOptTextComponent MetadataType = 5
	MetaSlot          MetadataType = 6
	MetaBoolean       MetadataType = 7
	MetaPosition      MetadataType = 8
	MetaParticle      MetadataType = 9
)

// MetadataEntry is one (index, type, value) record of an entity metadata
// stream.
type MetadataEntry struct {
	Index uint8
	Type  MetadataType
	Value any
}

const metadataEnd = 0xFF

func (e MetadataEntry) serializeValue(buf *buffer.Buffer) error {
	switch e.Type {
	case MetaByte:
		buf.WriteI8(e.Value.(int8))
		return nil
	case MetaVarInt:
		return buf.WriteVarint(e.Value.(int32))
	case MetaFloat:
		buf.WriteFloat32(e.Value.(float32))
		return nil
	case MetaString:
		return buf.WriteUTF(e.Value.(string))
	case MetaTextComponent:
		return e.Value.(TextComponent).SerializeNBT(buf)
	case MetaOptTextComponent:
		tc, ok := e.Value.(*TextComponent)
		buf.WriteBool(ok && tc != nil)
		if ok && tc != nil {
			return tc.SerializeNBT(buf)
		}
		return nil
	case MetaSlot:
		return e.Value.(Slot).SerializeTo(buf)
	case MetaBoolean:
		buf.WriteBool(e.Value.(bool))
		return nil
	case MetaPosition:
		return e.Value.(Position).SerializeTo(buf)
	case MetaParticle:
		return e.Value.(Particle).SerializeTo(buf)
	default:
		return fmt.Errorf("types: unknown entity metadata type %d", int32(e.Type))
	}
}

func deserializeMetadataValue(buf *buffer.Buffer, t MetadataType) (any, error) {
	switch t {
	case MetaByte:
		return buf.ReadI8()
	case MetaVarInt:
		return buf.ReadVarint()
	case MetaFloat:
		return buf.ReadFloat32()
	case MetaString:
		return buf.ReadUTF()
	case MetaTextComponent:
		return DeserializeNBTTextComponent(buf)
	case MetaOptTextComponent:
		present, err := buf.ReadBool()
		if err != nil {
			return nil, err
		}
		if !present {
			return (*TextComponent)(nil), nil
		}
		tc, err := DeserializeNBTTextComponent(buf)
		if err != nil {
			return nil, err
		}
		return &tc, nil
	case MetaSlot:
		return DeserializeSlot(buf)
	case MetaBoolean:
		return buf.ReadBool()
	case MetaPosition:
		return DeserializePosition(buf)
	case MetaParticle:
		return DeserializeParticle(buf)
	default:
		return nil, fmt.Errorf("types: unknown entity metadata type %d", int32(t))
	}
}

// FieldDef names one slot in an entity's metadata schema. Schemas are built
// by concatenating a concrete entity's conceptual ancestors' field lists
// (e.g. LivingEntityFields = append(BaseEntityFields, ...)) — composition
// standing in for the Java class hierarchy's inheritance (spec.md §9,
// SPEC_FULL §6).
type FieldDef struct {
	Index uint8
	Name  string
	Type  MetadataType
}

// BaseEntityFields is shared by every entity kind: indices 0-5, from the
// leading "shared flags" byte through no_gravity.
var BaseEntityFields = []FieldDef{
	{Index: 0, Name: "shared_flags", Type: MetaByte},
	{Index: 1, Name: "air_supply", Type: MetaVarInt},
	{Index: 2, Name: "custom_name", Type: MetaOptTextComponent},
	{Index: 3, Name: "custom_name_visible", Type: MetaBoolean},
	{Index: 4, Name: "silent", Type: MetaBoolean},
	{Index: 5, Name: "no_gravity", Type: MetaBoolean},
}

// LivingEntityFields extends BaseEntityFields with the fields every
// LivingEntity adds on top.
var LivingEntityFields = append(append([]FieldDef{}, BaseEntityFields...), []FieldDef{
	{Index: 6, Name: "hand_state", Type: MetaByte},
	{Index: 7, Name: "health", Type: MetaFloat},
	{Index: 8, Name: "potion_effect_color", Type: MetaVarInt},
	{Index: 9, Name: "potion_effect_ambient", Type: MetaBoolean},
	{Index: 10, Name: "arrow_count", Type: MetaVarInt},
}...)

// WriteMetadataStream serializes entries in the order given, terminated by
// the 0xFF end marker; it does not sort or check them against a schema.
func WriteMetadataStream(buf *buffer.Buffer, entries []MetadataEntry) error {
	for _, e := range entries {
		buf.WriteU8(e.Index)
		if err := buf.WriteVarint(int32(e.Type)); err != nil {
			return err
		}
		if err := e.serializeValue(buf); err != nil {
			return err
		}
	}
	buf.WriteU8(metadataEnd)
	return nil
}

// ReadMetadataStream decodes entries until the 0xFF end marker.
func ReadMetadataStream(buf *buffer.Buffer) ([]MetadataEntry, error) {
	var entries []MetadataEntry
	for {
		index, err := buf.ReadU8()
		if err != nil {
			return nil, err
		}
		if index == metadataEnd {
			return entries, nil
		}
		typ, err := buf.ReadVarint()
		if err != nil {
			return nil, err
		}
		value, err := deserializeMetadataValue(buf, MetadataType(typ))
		if err != nil {
			return nil, err
		}
		entries = append(entries, MetadataEntry{Index: index, Type: MetadataType(typ), Value: value})
	}
}
