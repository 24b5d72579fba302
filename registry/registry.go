// Package registry is the closed (phase, direction, opcode) → packet
// lookup table (component C6). It replaces the teacher's etcd-backed
// service-discovery registry with a pure, init-time-populated data table:
// there is nothing to discover here, only a fixed set of triples assigned
// by the protocol revision (spec.md §4.4, §6), but the shape — a
// Register call per entry, a lookup-by-key Lookup call, a read-only
// view for diagnostics — is carried over from
// BX-D-mini-RPC/registry/registry.go's interface.
package registry

import (
	"fmt"

	"mcjavaproto/buffer"
	"mcjavaproto/proto"
)

// Key identifies one entry in the registry: a phase, a direction, and an
// opcode unique within that (phase, direction) pair.
type Key struct {
	Phase     proto.Phase
	Direction proto.Direction
	Opcode    int32
}

func (k Key) String() string {
	return fmt.Sprintf("%s/%s/0x%02X", k.Phase, k.Direction, k.Opcode)
}

// Factory builds a zero-value packet ready to have its fields populated
// by Deserialize, given an already-staged frame body.
type Factory func() proto.Packet

// Codec pairs a packet's Go type with the buffer-level encode/decode
// functions generated packet definitions provide (packets package). The
// registry stores Codecs rather than raw Factory values so Decode can
// return a fully populated packet in one call.
type Codec struct {
	New         Factory
	Serialize   func(p proto.Packet, buf *buffer.Buffer) error
	Deserialize func(buf *buffer.Buffer) (proto.Packet, error)
}

// Registry is the closed table of known packet triples. The zero value is
// not ready to use; construct one with New.
type Registry struct {
	entries map[Key]Codec
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{entries: make(map[Key]Codec)}
}

// Global is the registry populated by every packets/*.go init() function.
// A single process-wide table mirrors spec.md §9's "Global packet-ID
// tables... pure data" design note.
var Global = New()

// Register adds one (phase, direction, opcode) entry. Register panics on a
// duplicate key — that can only happen from a bug in the packets package's
// own init() tables, never from untrusted input, so a panic at startup
// (rather than a runtime error deep in a connection) is the right failure
// mode.
func (r *Registry) Register(key Key, codec Codec) {
	if _, exists := r.entries[key]; exists {
		panic(fmt.Sprintf("registry: duplicate registration for %s", key))
	}
	r.entries[key] = codec
}

// Lookup returns the Codec registered for key, or ErrUnknownOpcode if no
// such triple exists.
func (r *Registry) Lookup(key Key) (Codec, error) {
	codec, ok := r.entries[key]
	if !ok {
		return Codec{}, fmt.Errorf("%w: %s", proto.ErrUnknownOpcode, key)
	}
	return codec, nil
}

// Encode serializes p using its registered Codec, failing with
// ErrUnregistered if p's (phase, direction, opcode) triple has no entry —
// this can happen for a hand-built packet value whose Opcode/Phase/
// Direction don't correspond to any registered kind.
func (r *Registry) Encode(p proto.Packet, buf *buffer.Buffer) error {
	key := Key{Phase: p.Phase(), Direction: p.Direction(), Opcode: p.Opcode()}
	codec, ok := r.entries[key]
	if !ok {
		return fmt.Errorf("%w: %s", proto.ErrUnregistered, key)
	}
	if err := p.Validate(); err != nil {
		return fmt.Errorf("%w: %v", proto.ErrValidationFailed, err)
	}
	return codec.Serialize(p, buf)
}

// Decode looks up the packet table entry for key and runs its Deserialize
// function over buf, then validates the result.
func (r *Registry) Decode(key Key, buf *buffer.Buffer) (proto.Packet, error) {
	codec, err := r.Lookup(key)
	if err != nil {
		return nil, err
	}
	p, err := codec.Deserialize(buf)
	if err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", proto.ErrValidationFailed, err)
	}
	return p, nil
}

// Keys returns every registered triple, for diagnostics and tests.
func (r *Registry) Keys() []Key {
	out := make([]Key, 0, len(r.entries))
	for k := range r.entries {
		out = append(out, k)
	}
	return out
}
