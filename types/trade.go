package types

import "mcjavaproto/buffer"

// Trade is one villager merchant offer (MerchantOffers packet).
type Trade struct {
	FirstInput          Slot
	Output              Slot
	SecondInput         Slot
	HasSecondInput      bool
	TradeDisabled       bool
	UsesUsed            int32
	MaxUses             int32
	XP                  int32
	SpecialPrice        int32
	PriceMultiplier     float32
	Demand              int32
}

func (t Trade) SerializeTo(buf *buffer.Buffer) error {
	if err := t.FirstInput.SerializeTo(buf); err != nil {
		return err
	}
	if err := t.Output.SerializeTo(buf); err != nil {
		return err
	}
	buf.WriteBool(t.HasSecondInput)
	if t.HasSecondInput {
		if err := t.SecondInput.SerializeTo(buf); err != nil {
			return err
		}
	}
	buf.WriteBool(t.TradeDisabled)
	buf.WriteI32(t.UsesUsed)
	buf.WriteI32(t.MaxUses)
	buf.WriteI32(t.XP)
	buf.WriteI32(t.SpecialPrice)
	buf.WriteFloat32(t.PriceMultiplier)
	buf.WriteI32(t.Demand)
	return nil
}

func DeserializeTrade(buf *buffer.Buffer) (Trade, error) {
	first, err := DeserializeSlot(buf)
	if err != nil {
		return Trade{}, err
	}
	output, err := DeserializeSlot(buf)
	if err != nil {
		return Trade{}, err
	}
	hasSecond, err := buf.ReadBool()
	if err != nil {
		return Trade{}, err
	}
	var second Slot
	if hasSecond {
		second, err = DeserializeSlot(buf)
		if err != nil {
			return Trade{}, err
		}
	}
	disabled, err := buf.ReadBool()
	if err != nil {
		return Trade{}, err
	}
	usesUsed, err := buf.ReadI32()
	if err != nil {
		return Trade{}, err
	}
	maxUses, err := buf.ReadI32()
	if err != nil {
		return Trade{}, err
	}
	xp, err := buf.ReadI32()
	if err != nil {
		return Trade{}, err
	}
	specialPrice, err := buf.ReadI32()
	if err != nil {
		return Trade{}, err
	}
	multiplier, err := buf.ReadFloat32()
	if err != nil {
		return Trade{}, err
	}
	demand, err := buf.ReadI32()
	if err != nil {
		return Trade{}, err
	}
	return Trade{
		FirstInput:      first,
		Output:          output,
		SecondInput:     second,
		HasSecondInput:  hasSecond,
		TradeDisabled:   disabled,
		UsesUsed:        usesUsed,
		MaxUses:         maxUses,
		XP:              xp,
		SpecialPrice:    specialPrice,
		PriceMultiplier: multiplier,
		Demand:          demand,
	}, nil
}

// Advancement is one entry of the (opaque) advancement tree broadcast by
// the server; the criteria/display payload is left as raw bytes, matching
// Commands' opaque-blob treatment (spec.md §9).
type Advancement struct {
	ID         Identifier
	ParentID   *Identifier
	RawDisplay []byte
	Criteria   []string
	Requirements [][]string
}

func (a Advancement) SerializeTo(buf *buffer.Buffer) error {
	if err := a.ID.SerializeTo(buf); err != nil {
		return err
	}
	buf.WriteBool(a.ParentID != nil)
	if a.ParentID != nil {
		if err := a.ParentID.SerializeTo(buf); err != nil {
			return err
		}
	}
	buf.WriteBool(len(a.RawDisplay) > 0)
	if len(a.RawDisplay) > 0 {
		if err := buf.WriteByteArray(a.RawDisplay); err != nil {
			return err
		}
	}
	if err := buf.WriteVarint(int32(len(a.Criteria))); err != nil {
		return err
	}
	for _, c := range a.Criteria {
		if err := buf.WriteUTF(c); err != nil {
			return err
		}
	}
	if err := buf.WriteVarint(int32(len(a.Requirements))); err != nil {
		return err
	}
	for _, req := range a.Requirements {
		if err := buf.WriteVarint(int32(len(req))); err != nil {
			return err
		}
		for _, r := range req {
			if err := buf.WriteUTF(r); err != nil {
				return err
			}
		}
	}
	return nil
}

func DeserializeAdvancement(buf *buffer.Buffer) (Advancement, error) {
	id, err := DeserializeIdentifier(buf)
	if err != nil {
		return Advancement{}, err
	}
	hasParent, err := buf.ReadBool()
	if err != nil {
		return Advancement{}, err
	}
	var parent *Identifier
	if hasParent {
		p, err := DeserializeIdentifier(buf)
		if err != nil {
			return Advancement{}, err
		}
		parent = &p
	}
	hasDisplay, err := buf.ReadBool()
	if err != nil {
		return Advancement{}, err
	}
	var display []byte
	if hasDisplay {
		display, err = buf.ReadByteArray()
		if err != nil {
			return Advancement{}, err
		}
	}
	critCount, err := buf.ReadVarint()
	if err != nil {
		return Advancement{}, err
	}
	criteria := make([]string, critCount)
	for i := range criteria {
		criteria[i], err = buf.ReadUTF()
		if err != nil {
			return Advancement{}, err
		}
	}
	reqCount, err := buf.ReadVarint()
	if err != nil {
		return Advancement{}, err
	}
	reqs := make([][]string, reqCount)
	for i := range reqs {
		n, err := buf.ReadVarint()
		if err != nil {
			return Advancement{}, err
		}
		req := make([]string, n)
		for j := range req {
			req[j], err = buf.ReadUTF()
			if err != nil {
				return Advancement{}, err
			}
		}
		reqs[i] = req
	}
	return Advancement{
		ID:           id,
		ParentID:     parent,
		RawDisplay:   display,
		Criteria:     criteria,
		Requirements: reqs,
	}, nil
}
