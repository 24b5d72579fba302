package types

import (
	"encoding/json"
	"fmt"

	"mcjavaproto/buffer"
	"mcjavaproto/nbt"
)

// TextComponent is a Minecraft chat message: a tree of styled text runs with
// an "extra" child list. Two distinct wire representations exist —
// SerializeJSON/DeserializeJSONTextComponent (the classic JSON form used by
// older CLIENTBOUND packets) and SerializeNBT/DeserializeNBTTextComponent
// (the NBT form used by
// 1.20.3+ packets) — grounded on original_source/mcproto/types/chat.py's
// JSONTextComponent and TextComponent classes.
type TextComponent struct {
	Text          string          `json:"text,omitempty"`
	Color         string          `json:"color,omitempty"`
	Bold          *bool           `json:"bold,omitempty"`
	Italic        *bool           `json:"italic,omitempty"`
	Underlined    *bool           `json:"underlined,omitempty"`
	Strikethrough *bool           `json:"strikethrough,omitempty"`
	Obfuscated    *bool           `json:"obfuscated,omitempty"`
	Extra         []TextComponent `json:"extra,omitempty"`
}

// PlainText builds a leaf TextComponent holding only s as its "text" key.
func PlainText(s string) TextComponent {
	return TextComponent{Text: s}
}

// Validate enforces the "text" or "extra" key must be present rule shared by
// both wire forms.
func (c TextComponent) Validate() error {
	if c.Text == "" && len(c.Extra) == 0 {
		return fmt.Errorf("types: text component has neither text nor extra")
	}
	for _, e := range c.Extra {
		if e.Text == "" && len(e.Extra) == 0 {
			return fmt.Errorf("types: text component extra entry has neither text nor extra")
		}
	}
	return nil
}

func (c TextComponent) SerializeJSON(buf *buffer.Buffer) error {
	if err := c.Validate(); err != nil {
		return err
	}
	raw, err := json.Marshal(c)
	if err != nil {
		return err
	}
	return buf.WriteUTF(string(raw))
}

func DeserializeJSONTextComponent(buf *buffer.Buffer) (TextComponent, error) {
	s, err := buf.ReadUTF()
	if err != nil {
		return TextComponent{}, err
	}
	var c TextComponent
	if err := json.Unmarshal([]byte(s), &c); err != nil {
		return TextComponent{}, fmt.Errorf("%w: invalid chat json: %v", buffer.ErrMalformed, err)
	}
	if err := c.Validate(); err != nil {
		return TextComponent{}, err
	}
	return c, nil
}

func textComponentSchema() nbt.Schema {
	schema := map[string]nbt.Schema{
		"text":          nbt.KindString,
		"color":         nbt.KindString,
		"bold":          nbt.KindByte,
		"italic":        nbt.KindByte,
		"underlined":    nbt.KindByte,
		"strikethrough": nbt.KindByte,
		"obfuscated":    nbt.KindByte,
	}
	schema["extra"] = []nbt.Schema{schema}
	return schema
}

func (c TextComponent) toObject() nbt.Object {
	m := map[string]nbt.Object{}
	if c.Text != "" {
		m["text"] = c.Text
	}
	if c.Color != "" {
		m["color"] = c.Color
	}
	if c.Bold != nil {
		m["bold"] = boolToInt64(*c.Bold)
	}
	if c.Italic != nil {
		m["italic"] = boolToInt64(*c.Italic)
	}
	if c.Underlined != nil {
		m["underlined"] = boolToInt64(*c.Underlined)
	}
	if c.Strikethrough != nil {
		m["strikethrough"] = boolToInt64(*c.Strikethrough)
	}
	if c.Obfuscated != nil {
		m["obfuscated"] = boolToInt64(*c.Obfuscated)
	}
	if len(c.Extra) > 0 {
		extra := make([]nbt.Object, len(c.Extra))
		for i, e := range c.Extra {
			extra[i] = e.toObject()
		}
		m["extra"] = extra
	}
	return m
}

func boolToInt64(v bool) int64 {
	if v {
		return 1
	}
	return 0
}

func textComponentFromObject(obj nbt.Object) (TextComponent, error) {
	m, ok := obj.(map[string]nbt.Object)
	if !ok {
		return TextComponent{}, fmt.Errorf("types: expected compound for text component, got %T", obj)
	}
	var c TextComponent
	if v, ok := m["text"]; ok {
		c.Text, _ = v.(string)
	}
	if v, ok := m["color"]; ok {
		c.Color, _ = v.(string)
	}
	if v, ok := m["bold"]; ok {
		c.Bold = int64ToBoolPtr(v)
	}
	if v, ok := m["italic"]; ok {
		c.Italic = int64ToBoolPtr(v)
	}
	if v, ok := m["underlined"]; ok {
		c.Underlined = int64ToBoolPtr(v)
	}
	if v, ok := m["strikethrough"]; ok {
		c.Strikethrough = int64ToBoolPtr(v)
	}
	if v, ok := m["obfuscated"]; ok {
		c.Obfuscated = int64ToBoolPtr(v)
	}
	if v, ok := m["extra"]; ok {
		list, ok := v.([]nbt.Object)
		if !ok {
			return TextComponent{}, fmt.Errorf("types: expected list for text component extra, got %T", v)
		}
		c.Extra = make([]TextComponent, len(list))
		for i, e := range list {
			child, err := textComponentFromObject(e)
			if err != nil {
				return TextComponent{}, err
			}
			c.Extra[i] = child
		}
	}
	return c, nil
}

func int64ToBoolPtr(v nbt.Object) *bool {
	n, ok := v.(int64)
	if !ok {
		return nil
	}
	b := n != 0
	return &b
}

func (c TextComponent) SerializeNBT(buf *buffer.Buffer) error {
	if err := c.Validate(); err != nil {
		return err
	}
	tag, err := nbt.FromObject(c.toObject(), textComponentSchema())
	if err != nil {
		return err
	}
	return tag.Write(buf, true, false)
}

func DeserializeNBTTextComponent(buf *buffer.Buffer) (TextComponent, error) {
	tag, err := nbt.Read(buf, true, nbt.KindEnd, false)
	if err != nil {
		return TextComponent{}, err
	}
	obj, _ := nbt.ToObject(tag, false)
	c, err := textComponentFromObject(obj)
	if err != nil {
		return TextComponent{}, err
	}
	if err := c.Validate(); err != nil {
		return TextComponent{}, err
	}
	return c, nil
}
