// Package nbt implements the recursive tagged binary tree format Minecraft
// calls NBT (component C5 of the wire codec).
//
// Thirteen tag kinds form a closed set; Tag is a tagged union dispatched by
// Kind rather than by virtual method resolution, matching spec.md §9's
// "model NBT... as closed tagged unions with one variant per kind; dispatch
// with exhaustive match rather than virtual calls".
//
// One asymmetry is load-bearing and easy to miss: every string everywhere
// else on the wire (packet fields, via buffer.WriteUTF) is varint-length
// prefixed, but NBT's String tag is prefixed with a plain unsigned 16-bit
// big-endian length. The two are not interchangeable.
package nbt

import (
	"fmt"
	"sort"

	"mcjavaproto/buffer"
)

// Kind identifies one of the 13 NBT tag kinds by its wire byte.
type Kind uint8

const (
	KindEnd       Kind = 0
	KindByte      Kind = 1
	KindShort     Kind = 2
	KindInt       Kind = 3
	KindLong      Kind = 4
	KindFloat     Kind = 5
	KindDouble    Kind = 6
	KindByteArray Kind = 7
	KindString    Kind = 8
	KindList      Kind = 9
	KindCompound  Kind = 10
	KindIntArray  Kind = 11
	KindLongArray Kind = 12
)

func (k Kind) String() string {
	switch k {
	case KindEnd:
		return "End"
	case KindByte:
		return "Byte"
	case KindShort:
		return "Short"
	case KindInt:
		return "Int"
	case KindLong:
		return "Long"
	case KindFloat:
		return "Float"
	case KindDouble:
		return "Double"
	case KindByteArray:
		return "ByteArray"
	case KindString:
		return "String"
	case KindList:
		return "List"
	case KindCompound:
		return "Compound"
	case KindIntArray:
		return "IntArray"
	case KindLongArray:
		return "LongArray"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// ErrUnknownKind is returned when a tag kind byte isn't one of the 13 known
// kinds.
var ErrUnknownKind = fmt.Errorf("nbt: unknown tag kind")

// Tag is the closed tagged union. Exactly one of the payload fields is
// meaningful, selected by Kind; Name is populated only on tags read/written
// with the "with_name" framing (compound children and, in older protocol
// revisions, the root tag).
type Tag struct {
	Kind Kind
	Name string

	Byte   int8
	Short  int16
	Int    int32
	Long   int64
	Float  float32
	Double float64

	ByteArray []byte
	Str       string

	ListKind Kind
	List     []Tag

	Compound []Tag // ordered; insertion order is significant on serialization

	IntArray  []int32
	LongArray []int64
}

// writeNBTString writes the NBT-specific String framing: an unsigned 16-bit
// big-endian length followed by raw UTF-8 bytes. Deliberately NOT
// buffer.WriteUTF — see the package doc comment.
func writeNBTString(b *buffer.Buffer, s string) error {
	if len(s) > 0xFFFF {
		return fmt.Errorf("%w: NBT string %d bytes exceeds uint16 length", buffer.ErrMalformed, len(s))
	}
	b.WriteU16(uint16(len(s)))
	b.Write([]byte(s))
	return nil
}

func readNBTString(b *buffer.Buffer) (string, error) {
	n, err := b.ReadU16()
	if err != nil {
		return "", err
	}
	raw, err := b.Read(int(n))
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// Write serializes t to buf. withType controls whether the 1-byte kind
// header is written; withName (meaningful only when withType is true)
// additionally writes the NBT-framed name string. List elements are written
// with withType=false, withName=false; Compound children are written with
// withType=true, withName=true; the conventional root tag (newer revisions)
// uses withType=true, withName=false.
func (t Tag) Write(buf *buffer.Buffer, withType, withName bool) error {
	if withType {
		buf.WriteU8(uint8(t.Kind))
		if t.Kind == KindEnd {
			return nil
		}
		if withName {
			if err := writeNBTString(buf, t.Name); err != nil {
				return err
			}
		}
	}
	return t.writePayload(buf)
}

func (t Tag) writePayload(buf *buffer.Buffer) error {
	switch t.Kind {
	case KindEnd:
		return nil
	case KindByte:
		buf.WriteI8(t.Byte)
		return nil
	case KindShort:
		buf.WriteI16(t.Short)
		return nil
	case KindInt:
		buf.WriteI32(t.Int)
		return nil
	case KindLong:
		buf.WriteI64(t.Long)
		return nil
	case KindFloat:
		buf.WriteFloat32(t.Float)
		return nil
	case KindDouble:
		buf.WriteFloat64(t.Double)
		return nil
	case KindByteArray:
		buf.WriteI32(int32(len(t.ByteArray)))
		buf.Write(t.ByteArray)
		return nil
	case KindString:
		return writeNBTString(buf, t.Str)
	case KindList:
		buf.WriteU8(uint8(t.ListKind))
		buf.WriteI32(int32(len(t.List)))
		for _, elem := range t.List {
			if len(t.List) > 0 && elem.Kind != t.ListKind {
				return fmt.Errorf("nbt: heterogeneous list: element kind %s != declared %s", elem.Kind, t.ListKind)
			}
			if err := elem.writePayload(buf); err != nil {
				return err
			}
		}
		return nil
	case KindCompound:
		seen := make(map[string]struct{}, len(t.Compound))
		for _, child := range t.Compound {
			if _, dup := seen[child.Name]; dup {
				return fmt.Errorf("nbt: duplicate compound key %q", child.Name)
			}
			seen[child.Name] = struct{}{}
			if err := child.Write(buf, true, true); err != nil {
				return err
			}
		}
		buf.WriteU8(uint8(KindEnd))
		return nil
	case KindIntArray:
		buf.WriteI32(int32(len(t.IntArray)))
		for _, v := range t.IntArray {
			buf.WriteI32(v)
		}
		return nil
	case KindLongArray:
		buf.WriteI32(int32(len(t.LongArray)))
		for _, v := range t.LongArray {
			buf.WriteI64(v)
		}
		return nil
	default:
		return fmt.Errorf("%w: %d", ErrUnknownKind, uint8(t.Kind))
	}
}

// Read deserializes a Tag from buf. When withType is false, kind must be
// supplied by the caller (used for List elements, whose kind was already
// read from the list header) and withName is ignored.
func Read(buf *buffer.Buffer, withType bool, kind Kind, withName bool) (Tag, error) {
	var t Tag
	if withType {
		kb, err := buf.ReadU8()
		if err != nil {
			return Tag{}, err
		}
		kind = Kind(kb)
		if kind == KindEnd {
			return Tag{Kind: KindEnd}, nil
		}
		if withName {
			name, err := readNBTString(buf)
			if err != nil {
				return Tag{}, err
			}
			t.Name = name
		}
	}
	t.Kind = kind
	return t.readPayload(buf)
}

func (t Tag) readPayload(buf *buffer.Buffer) (Tag, error) {
	switch t.Kind {
	case KindEnd:
		return t, nil
	case KindByte:
		v, err := buf.ReadI8()
		t.Byte = v
		return t, err
	case KindShort:
		v, err := buf.ReadI16()
		t.Short = v
		return t, err
	case KindInt:
		v, err := buf.ReadI32()
		t.Int = v
		return t, err
	case KindLong:
		v, err := buf.ReadI64()
		t.Long = v
		return t, err
	case KindFloat:
		v, err := buf.ReadFloat32()
		t.Float = v
		return t, err
	case KindDouble:
		v, err := buf.ReadFloat64()
		t.Double = v
		return t, err
	case KindByteArray:
		n, err := buf.ReadI32()
		if err != nil {
			return Tag{}, err
		}
		if n < 0 {
			return Tag{}, fmt.Errorf("%w: negative ByteArray length %d", buffer.ErrMalformed, n)
		}
		data, err := buf.Read(int(n))
		if err != nil {
			return Tag{}, err
		}
		t.ByteArray = append([]byte(nil), data...)
		return t, nil
	case KindString:
		s, err := readNBTString(buf)
		t.Str = s
		return t, err
	case KindList:
		elemKindByte, err := buf.ReadU8()
		if err != nil {
			return Tag{}, err
		}
		elemKind := Kind(elemKindByte)
		count, err := buf.ReadI32()
		if err != nil {
			return Tag{}, err
		}
		if count < 0 {
			return Tag{}, fmt.Errorf("%w: negative List count %d", buffer.ErrMalformed, count)
		}
		t.ListKind = elemKind
		t.List = make([]Tag, 0, count)
		for i := int32(0); i < count; i++ {
			elem, err := Read(buf, false, elemKind, false)
			if err != nil {
				return Tag{}, err
			}
			t.List = append(t.List, elem)
		}
		return t, nil
	case KindCompound:
		t.Compound = nil
		for {
			childKindByte, err := buf.ReadU8()
			if err != nil {
				return Tag{}, err
			}
			if Kind(childKindByte) == KindEnd {
				break
			}
			name, err := readNBTString(buf)
			if err != nil {
				return Tag{}, err
			}
			child := Tag{Kind: Kind(childKindByte), Name: name}
			child, err = child.readPayload(buf)
			if err != nil {
				return Tag{}, err
			}
			t.Compound = append(t.Compound, child)
		}
		return t, nil
	case KindIntArray:
		n, err := buf.ReadI32()
		if err != nil {
			return Tag{}, err
		}
		if n < 0 {
			return Tag{}, fmt.Errorf("%w: negative IntArray length %d", buffer.ErrMalformed, n)
		}
		arr := make([]int32, n)
		for i := range arr {
			v, err := buf.ReadI32()
			if err != nil {
				return Tag{}, err
			}
			arr[i] = v
		}
		t.IntArray = arr
		return t, nil
	case KindLongArray:
		n, err := buf.ReadI32()
		if err != nil {
			return Tag{}, err
		}
		if n < 0 {
			return Tag{}, fmt.Errorf("%w: negative LongArray length %d", buffer.ErrMalformed, n)
		}
		arr := make([]int64, n)
		for i := range arr {
			v, err := buf.ReadI64()
			if err != nil {
				return Tag{}, err
			}
			arr[i] = v
		}
		t.LongArray = arr
		return t, nil
	default:
		return Tag{}, fmt.Errorf("%w: %d", ErrUnknownKind, uint8(t.Kind))
	}
}

// Equal reports deep structural equality, including Compound child order
// and List element order (spec.md §8 property 3).
func Equal(a, b Tag) bool {
	if a.Kind != b.Kind || a.Name != b.Name {
		return false
	}
	switch a.Kind {
	case KindByte:
		return a.Byte == b.Byte
	case KindShort:
		return a.Short == b.Short
	case KindInt:
		return a.Int == b.Int
	case KindLong:
		return a.Long == b.Long
	case KindFloat:
		return a.Float == b.Float
	case KindDouble:
		return a.Double == b.Double
	case KindByteArray:
		return string(a.ByteArray) == string(b.ByteArray)
	case KindString:
		return a.Str == b.Str
	case KindList:
		if a.ListKind != b.ListKind || len(a.List) != len(b.List) {
			return false
		}
		for i := range a.List {
			if !Equal(a.List[i], b.List[i]) {
				return false
			}
		}
		return true
	case KindCompound:
		if len(a.Compound) != len(b.Compound) {
			return false
		}
		for i := range a.Compound {
			if !Equal(a.Compound[i], b.Compound[i]) {
				return false
			}
		}
		return true
	case KindIntArray:
		if len(a.IntArray) != len(b.IntArray) {
			return false
		}
		for i := range a.IntArray {
			if a.IntArray[i] != b.IntArray[i] {
				return false
			}
		}
		return true
	case KindLongArray:
		if len(a.LongArray) != len(b.LongArray) {
			return false
		}
		for i := range a.LongArray {
			if a.LongArray[i] != b.LongArray[i] {
				return false
			}
		}
		return true
	default:
		return true // End, or anything else carries no payload
	}
}

// CompoundGet returns the named child of a Compound tag, if present.
func (t Tag) CompoundGet(name string) (Tag, bool) {
	for _, child := range t.Compound {
		if child.Name == name {
			return child, true
		}
	}
	return Tag{}, false
}

// SortedNames returns a compound's child names sorted lexicographically — a small
// helper for diagnostics/logging, not used by the wire path (which always
// preserves insertion order directly).
func (t Tag) SortedNames() []string {
	names := make([]string, len(t.Compound))
	for i, c := range t.Compound {
		names[i] = c.Name
	}
	sort.Strings(names)
	return names
}

// Constructors for the 13 kinds, unnamed (name is set separately when a tag
// is placed into a Compound).

func Byte(v int8) Tag      { return Tag{Kind: KindByte, Byte: v} }
func Short(v int16) Tag    { return Tag{Kind: KindShort, Short: v} }
func Int(v int32) Tag      { return Tag{Kind: KindInt, Int: v} }
func Long(v int64) Tag     { return Tag{Kind: KindLong, Long: v} }
func Float(v float32) Tag  { return Tag{Kind: KindFloat, Float: v} }
func Double(v float64) Tag { return Tag{Kind: KindDouble, Double: v} }
func ByteArray(v []byte) Tag {
	return Tag{Kind: KindByteArray, ByteArray: v}
}
func String(v string) Tag { return Tag{Kind: KindString, Str: v} }
func List(kind Kind, elems []Tag) Tag {
	return Tag{Kind: KindList, ListKind: kind, List: elems}
}
func Compound(children []Tag) Tag { return Tag{Kind: KindCompound, Compound: children} }
func IntArray(v []int32) Tag      { return Tag{Kind: KindIntArray, IntArray: v} }
func LongArray(v []int64) Tag     { return Tag{Kind: KindLongArray, LongArray: v} }

// Named returns a copy of t with Name set — a convenience for building
// Compound children inline.
func (t Tag) Named(name string) Tag {
	t.Name = name
	return t
}
