package nbt

import (
	"fmt"
	"sort"
)

// Schema mirrors the shape of an NBT tree without carrying any values: it
// tells FromObject which concrete NBT kind a Go value should become,
// disambiguating integer widths and list element kinds the way a bare
// map[string]any never could. Leaf schemas are one of the Kind constants;
// a Compound schema is a map[string]Schema; a List schema is a one-element
// []Schema giving the element schema (spec.md §9 "Schema-directed object
// projection").
type Schema any

// Object is the plain-Go-value side of the projection: string, bool, int64,
// float64, []Object, or map[string]Object. ToObject(includeSchema=true)
// returns one alongside the Schema it was produced with, so that
// FromObject(ToObject(x), schema) recovers every kind and value even without
// an externally supplied schema. Compound objects are Go maps and do not keep
// child order: FromObject emits a Compound's children sorted by name, so the
// round trip reproduces x exactly only when its children are already in that
// order. An empty List comes back with element kind End.
type Object any

// ToObject converts a Tag into a plain Object tree. When includeSchema is
// true, it also returns the Schema describing the kinds used, so a later
// FromObject call can reconstruct the same kinds and values (with the
// Compound-order and empty-List limits described on Object).
func ToObject(t Tag, includeSchema bool) (Object, Schema) {
	switch t.Kind {
	case KindByte:
		if includeSchema {
			return int64(t.Byte), KindByte
		}
		return int64(t.Byte), nil
	case KindShort:
		if includeSchema {
			return int64(t.Short), KindShort
		}
		return int64(t.Short), nil
	case KindInt:
		if includeSchema {
			return int64(t.Int), KindInt
		}
		return int64(t.Int), nil
	case KindLong:
		if includeSchema {
			return int64(t.Long), KindLong
		}
		return int64(t.Long), nil
	case KindFloat:
		if includeSchema {
			return float64(t.Float), KindFloat
		}
		return float64(t.Float), nil
	case KindDouble:
		if includeSchema {
			return t.Double, KindDouble
		}
		return t.Double, nil
	case KindString:
		if includeSchema {
			return t.Str, KindString
		}
		return t.Str, nil
	case KindByteArray:
		if includeSchema {
			return append([]byte(nil), t.ByteArray...), KindByteArray
		}
		return append([]byte(nil), t.ByteArray...), nil
	case KindIntArray:
		if includeSchema {
			return append([]int32(nil), t.IntArray...), KindIntArray
		}
		return append([]int32(nil), t.IntArray...), nil
	case KindLongArray:
		if includeSchema {
			return append([]int64(nil), t.LongArray...), KindLongArray
		}
		return append([]int64(nil), t.LongArray...), nil
	case KindList:
		out := make([]Object, len(t.List))
		var elemSchema Schema
		for i, elem := range t.List {
			var s Schema
			out[i], s = ToObject(elem, includeSchema)
			elemSchema = s
		}
		if includeSchema {
			return out, []Schema{elemSchema}
		}
		return out, nil
	case KindCompound:
		out := make(map[string]Object, len(t.Compound))
		schema := make(map[string]Schema, len(t.Compound))
		for _, child := range t.Compound {
			v, s := ToObject(child, includeSchema)
			out[child.Name] = v
			schema[child.Name] = s
		}
		if includeSchema {
			return out, schema
		}
		return out, nil
	default:
		return nil, nil
	}
}

// FromObject converts a plain Object tree back into a Tag, using schema to
// pick the exact NBT kind for every leaf and list. FromObject fails on a
// value whose shape doesn't match the schema hint (type mismatch, a
// heterogeneous list, or — one level up, at the Compound caller — a
// duplicate Compound key).
func FromObject(data Object, schema Schema) (Tag, error) {
	switch s := schema.(type) {
	case Kind:
		return fromLeaf(data, s)
	case []Schema:
		if len(s) != 1 {
			return Tag{}, fmt.Errorf("nbt: list schema must have exactly one element schema, got %d", len(s))
		}
		items, ok := data.([]Object)
		if !ok {
			return Tag{}, fmt.Errorf("nbt: expected a list for schema %v, got %T", schema, data)
		}
		elemSchema := s[0]
		elemKind, err := schemaKind(elemSchema)
		if err != nil && len(items) > 0 {
			return Tag{}, err
		}
		elems := make([]Tag, 0, len(items))
		for _, item := range items {
			elemTag, err := FromObject(item, elemSchema)
			if err != nil {
				return Tag{}, err
			}
			if len(elems) > 0 && elemTag.Kind != elems[0].Kind {
				return Tag{}, fmt.Errorf("nbt: heterogeneous list: %s vs %s", elemTag.Kind, elems[0].Kind)
			}
			elems = append(elems, elemTag)
		}
		if len(items) == 0 {
			return List(elemKind, nil), nil
		}
		return List(elems[0].Kind, elems), nil
	case map[string]Schema:
		obj, ok := data.(map[string]Object)
		if !ok {
			return Tag{}, fmt.Errorf("nbt: expected a compound for schema %v, got %T", schema, data)
		}
		seen := make(map[string]struct{}, len(obj))
		children := make([]Tag, 0, len(obj))
		keys := make([]string, 0, len(s))
		for key := range s {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			childSchema := s[key]
			val, present := obj[key]
			if !present {
				continue
			}
			if _, dup := seen[key]; dup {
				return Tag{}, fmt.Errorf("nbt: duplicate compound key %q", key)
			}
			seen[key] = struct{}{}
			childTag, err := FromObject(val, childSchema)
			if err != nil {
				return Tag{}, fmt.Errorf("nbt: field %q: %w", key, err)
			}
			children = append(children, childTag.Named(key))
		}
		return Compound(children), nil
	default:
		return Tag{}, fmt.Errorf("nbt: unrecognized schema value %#v", schema)
	}
}

func schemaKind(schema Schema) (Kind, error) {
	switch s := schema.(type) {
	case Kind:
		return s, nil
	case []Schema:
		return KindList, nil
	case map[string]Schema:
		return KindCompound, nil
	default:
		return 0, fmt.Errorf("nbt: unrecognized schema value %#v", s)
	}
}

func fromLeaf(data Object, kind Kind) (Tag, error) {
	switch kind {
	case KindByte:
		v, err := asInt(data)
		if err != nil || v < -128 || v > 127 {
			return Tag{}, fmt.Errorf("nbt: value %v out of range for Byte", data)
		}
		return Byte(int8(v)), nil
	case KindShort:
		v, err := asInt(data)
		if err != nil || v < -32768 || v > 32767 {
			return Tag{}, fmt.Errorf("nbt: value %v out of range for Short", data)
		}
		return Short(int16(v)), nil
	case KindInt:
		v, err := asInt(data)
		if err != nil || v < -2147483648 || v > 2147483647 {
			return Tag{}, fmt.Errorf("nbt: value %v out of range for Int", data)
		}
		return Int(int32(v)), nil
	case KindLong:
		v, err := asInt(data)
		if err != nil {
			return Tag{}, fmt.Errorf("nbt: value %v not an integer for Long", data)
		}
		return Long(v), nil
	case KindFloat:
		v, err := asFloat(data)
		if err != nil {
			return Tag{}, err
		}
		return Float(float32(v)), nil
	case KindDouble:
		v, err := asFloat(data)
		if err != nil {
			return Tag{}, err
		}
		return Double(v), nil
	case KindString:
		v, ok := data.(string)
		if !ok {
			return Tag{}, fmt.Errorf("nbt: value %v is not a string", data)
		}
		return String(v), nil
	case KindByteArray:
		v, ok := data.([]byte)
		if !ok {
			return Tag{}, fmt.Errorf("nbt: value %v is not a byte array", data)
		}
		return ByteArray(v), nil
	case KindIntArray:
		v, ok := data.([]int32)
		if !ok {
			return Tag{}, fmt.Errorf("nbt: value %v is not an int array", data)
		}
		return IntArray(v), nil
	case KindLongArray:
		v, ok := data.([]int64)
		if !ok {
			return Tag{}, fmt.Errorf("nbt: value %v is not a long array", data)
		}
		return LongArray(v), nil
	default:
		return Tag{}, fmt.Errorf("nbt: %s is not a valid leaf schema", kind)
	}
}

func asInt(data Object) (int64, error) {
	switch v := data.(type) {
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case bool:
		if v {
			return 1, nil
		}
		return 0, nil
	default:
		return 0, fmt.Errorf("nbt: %v is not an integer", data)
	}
}

func asFloat(data Object) (float64, error) {
	switch v := data.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	default:
		return 0, fmt.Errorf("nbt: %v is not a float", data)
	}
}
