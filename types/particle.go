package types

import "mcjavaproto/buffer"

// Particle is a particle effect reference: a registry ID plus an opaque
// trailing data blob whose shape depends on that ID (dust color, block
// state, item stack, ...). Used by the entity metadata stream
// (MetaParticle); this module does not interpret the per-ID payload shape, matching
// Commands' "surface the raw bytes" treatment in spec.md §9.
type Particle struct {
	ID   int32
	Data []byte
}

func (p Particle) SerializeTo(buf *buffer.Buffer) error {
	if err := buf.WriteVarint(p.ID); err != nil {
		return err
	}
	return buf.WriteByteArray(p.Data)
}

func DeserializeParticle(buf *buffer.Buffer) (Particle, error) {
	id, err := buf.ReadVarint()
	if err != nil {
		return Particle{}, err
	}
	data, err := buf.ReadByteArray()
	if err != nil {
		return Particle{}, err
	}
	return Particle{ID: id, Data: data}, nil
}

// BlockEntity is one block-entity update entry in a chunk/section update —
// packed X/Z within the section, absolute Y, a type ID, and its NBT data.
type BlockEntity struct {
	PackedXZ uint8
	Y        int16
	Type     int32
	Data     Object
}

// Object is a parsed NBT compound tag, kept as an opaque value so callers
// that don't care about block-entity internals don't need to import nbt.
type Object = interface{}

func (be BlockEntity) SerializeTo(buf *buffer.Buffer, encodeData func(*buffer.Buffer, Object) error) error {
	buf.WriteU8(be.PackedXZ)
	buf.WriteI16(be.Y)
	if err := buf.WriteVarint(be.Type); err != nil {
		return err
	}
	return encodeData(buf, be.Data)
}

func DeserializeBlockEntity(buf *buffer.Buffer, decodeData func(*buffer.Buffer) (Object, error)) (BlockEntity, error) {
	packed, err := buf.ReadU8()
	if err != nil {
		return BlockEntity{}, err
	}
	y, err := buf.ReadI16()
	if err != nil {
		return BlockEntity{}, err
	}
	typ, err := buf.ReadVarint()
	if err != nil {
		return BlockEntity{}, err
	}
	data, err := decodeData(buf)
	if err != nil {
		return BlockEntity{}, err
	}
	return BlockEntity{PackedXZ: packed, Y: y, Type: typ, Data: data}, nil
}

// MapIcon is one marker drawn on an in-game map (MapData packet).
type MapIcon struct {
	Type        int32
	X, Z        int8
	Direction   int8
	DisplayName *TextComponent
}

func (m MapIcon) SerializeTo(buf *buffer.Buffer) error {
	if err := buf.WriteVarint(m.Type); err != nil {
		return err
	}
	buf.WriteI8(m.X)
	buf.WriteI8(m.Z)
	buf.WriteI8(m.Direction)
	present := m.DisplayName != nil
	buf.WriteBool(present)
	if present {
		return m.DisplayName.SerializeNBT(buf)
	}
	return nil
}

func DeserializeMapIcon(buf *buffer.Buffer) (MapIcon, error) {
	typ, err := buf.ReadVarint()
	if err != nil {
		return MapIcon{}, err
	}
	x, err := buf.ReadI8()
	if err != nil {
		return MapIcon{}, err
	}
	z, err := buf.ReadI8()
	if err != nil {
		return MapIcon{}, err
	}
	dir, err := buf.ReadI8()
	if err != nil {
		return MapIcon{}, err
	}
	hasName, err := buf.ReadBool()
	if err != nil {
		return MapIcon{}, err
	}
	icon := MapIcon{Type: typ, X: x, Z: z, Direction: dir}
	if hasName {
		name, err := DeserializeNBTTextComponent(buf)
		if err != nil {
			return MapIcon{}, err
		}
		icon.DisplayName = &name
	}
	return icon, nil
}
