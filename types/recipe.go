package types

import "mcjavaproto/buffer"

// Recipe is one recipe-book entry: an identifier keying the recipe type,
// another identifier naming the specific recipe, and an opaque body whose
// shape depends on the recipe type (shaped/shapeless/smelting/...). As with
// Advancement and Particle, the body is left as raw bytes (spec.md §9).
type Recipe struct {
	RecipeType Identifier
	RecipeID   Identifier
	Data       []byte
}

func (r Recipe) SerializeTo(buf *buffer.Buffer) error {
	if err := r.RecipeType.SerializeTo(buf); err != nil {
		return err
	}
	if err := r.RecipeID.SerializeTo(buf); err != nil {
		return err
	}
	return buf.WriteByteArray(r.Data)
}

func DeserializeRecipe(buf *buffer.Buffer) (Recipe, error) {
	typ, err := DeserializeIdentifier(buf)
	if err != nil {
		return Recipe{}, err
	}
	id, err := DeserializeIdentifier(buf)
	if err != nil {
		return Recipe{}, err
	}
	data, err := buf.ReadByteArray()
	if err != nil {
		return Recipe{}, err
	}
	return Recipe{RecipeType: typ, RecipeID: id, Data: data}, nil
}
