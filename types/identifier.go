// Package types implements the composite value types of the wire codec
// (component C4): Identifier, UUID, Position, Angle, Vec3, Quaternion,
// bitsets, Slot, TextComponent, Particle, BlockEntity, MapIcon, Trade,
// Advancement, Recipe, and EntityMetadata.
package types

import (
	"fmt"
	"regexp"
	"strings"

	"mcjavaproto/buffer"
)

// DefaultNamespace is used whenever an Identifier is constructed without an
// explicit "namespace:" prefix.
const DefaultNamespace = "minecraft"

var (
	namespacePattern = regexp.MustCompile(`^[a-z0-9._-]+$`)
	pathPattern      = regexp.MustCompile(`^[a-z0-9._/-]+$`)
)

// Identifier is a namespaced "namespace:path" registry key. A leading '#'
// (the "tag" form, e.g. "#minecraft:logs") is accepted and stripped on
// construction — Identifier never distinguishes tag references from direct
// references, matching spec.md §3's "leading # is stripped and ignored".
type Identifier struct {
	Namespace string
	Path      string
}

// NewIdentifier parses s into an Identifier, defaulting the namespace to
// "minecraft" when none is given, and validates both segments against the
// registry-key charset.
func NewIdentifier(s string) (Identifier, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) > buffer.MaxStringLen {
		return Identifier{}, fmt.Errorf("nbt: identifier %q exceeds max wire length", s)
	}

	namespace := DefaultNamespace
	path := s
	if idx := strings.IndexByte(s, ':'); idx >= 0 {
		namespace = s[:idx]
		path = s[idx+1:]
	}

	if !namespacePattern.MatchString(namespace) {
		return Identifier{}, fmt.Errorf("types: invalid identifier namespace %q", namespace)
	}
	if !pathPattern.MatchString(path) {
		return Identifier{}, fmt.Errorf("types: invalid identifier path %q", path)
	}
	return Identifier{Namespace: namespace, Path: path}, nil
}

// MustIdentifier parses s, panicking on error. Reserved for constant-like
// call sites (packet table initialization) where the identifier is a
// compile-time literal.
func MustIdentifier(s string) Identifier {
	id, err := NewIdentifier(s)
	if err != nil {
		panic(err)
	}
	return id
}

// String renders the canonical "namespace:path" form.
func (id Identifier) String() string {
	return id.Namespace + ":" + id.Path
}

// Equal compares two identifiers by their canonical form — Identifier("foo")
// == Identifier("minecraft:foo") == Identifier("#minecraft:foo") (spec.md §8
// property 4), since all three normalize to the same Namespace/Path pair at
// construction time.
func (id Identifier) Equal(other Identifier) bool {
	return id.Namespace == other.Namespace && id.Path == other.Path
}

func (id Identifier) SerializeTo(buf *buffer.Buffer) error {
	return buf.WriteUTF(id.String())
}

func DeserializeIdentifier(buf *buffer.Buffer) (Identifier, error) {
	s, err := buf.ReadUTF()
	if err != nil {
		return Identifier{}, err
	}
	return NewIdentifier(s)
}
