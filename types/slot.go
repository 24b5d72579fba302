package types

import (
	"fmt"

	"mcjavaproto/buffer"
)

// ItemComponent is one opaque (type, payload) entry in a Slot's component
// list. This module targets the modern (1.20.5+) slot format, where
// components replace the legacy NBT tag compound (spec.md §3, SPEC_FULL §6)
// — the payload bytes are left uninterpreted, the same way spec.md leaves
// Commands' body opaque.
type ItemComponent struct {
	Type    int32
	Payload []byte
}

func (c ItemComponent) SerializeTo(buf *buffer.Buffer) error {
	if err := buf.WriteVarint(c.Type); err != nil {
		return err
	}
	return buf.WriteByteArray(c.Payload)
}

func DeserializeItemComponent(buf *buffer.Buffer) (ItemComponent, error) {
	typ, err := buf.ReadVarint()
	if err != nil {
		return ItemComponent{}, err
	}
	payload, err := buf.ReadByteArray()
	if err != nil {
		return ItemComponent{}, err
	}
	return ItemComponent{Type: typ, Payload: payload}, nil
}

// Slot is either empty, or an item stack of a count and item ID plus a set
// of components to add and a set of (by index) components to remove.
type Slot struct {
	Present         bool
	ItemCount       int32
	ItemID          int32
	ComponentsAdd   []ItemComponent
	ComponentsRemove []int32
}

// EmptySlot is the canonical empty slot value.
func EmptySlot() Slot { return Slot{Present: false} }

func (s Slot) SerializeTo(buf *buffer.Buffer) error {
	if !s.Present {
		return buf.WriteVarint(0)
	}
	if err := buf.WriteVarint(s.ItemCount); err != nil {
		return err
	}
	if err := buf.WriteVarint(s.ItemID); err != nil {
		return err
	}
	if err := buf.WriteVarint(int32(len(s.ComponentsAdd))); err != nil {
		return err
	}
	if err := buf.WriteVarint(int32(len(s.ComponentsRemove))); err != nil {
		return err
	}
	for _, c := range s.ComponentsAdd {
		if err := c.SerializeTo(buf); err != nil {
			return err
		}
	}
	for _, t := range s.ComponentsRemove {
		if err := buf.WriteVarint(t); err != nil {
			return err
		}
	}
	return nil
}

func DeserializeSlot(buf *buffer.Buffer) (Slot, error) {
	itemCount, err := buf.ReadVarint()
	if err != nil {
		return Slot{}, err
	}
	if itemCount <= 0 {
		return EmptySlot(), nil
	}

	itemID, err := buf.ReadVarint()
	if err != nil {
		return Slot{}, err
	}
	addCount, err := buf.ReadVarint()
	if err != nil {
		return Slot{}, err
	}
	removeCount, err := buf.ReadVarint()
	if err != nil {
		return Slot{}, err
	}
	if addCount < 0 || removeCount < 0 {
		return Slot{}, fmt.Errorf("%w: negative slot component count", buffer.ErrMalformed)
	}

	add := make([]ItemComponent, addCount)
	for i := range add {
		c, err := DeserializeItemComponent(buf)
		if err != nil {
			return Slot{}, err
		}
		add[i] = c
	}
	remove := make([]int32, removeCount)
	for i := range remove {
		t, err := buf.ReadVarint()
		if err != nil {
			return Slot{}, err
		}
		remove[i] = t
	}

	return Slot{
		Present:          true,
		ItemCount:        itemCount,
		ItemID:           itemID,
		ComponentsAdd:    add,
		ComponentsRemove: remove,
	}, nil
}
