// Package proto defines the packet contract shared by every concrete
// packet type (component C6 of the wire codec): the Phase/Direction
// enums, the sentinel error taxonomy spec.md §4.7 names, and the Packet
// interface every entry in the registry (package registry) implements.
//
// Errors are plain sentinel values wrapped with fmt.Errorf's %w, the same
// pattern BX-D-mini-RPC/protocol/protocol.go uses for its frame decode
// failures — callers match with errors.Is, never string comparison.
package proto

import "errors"

// Phase is the current protocol conversation state. It selects which
// packet table is active for the next frame in each direction (spec.md
// §4.6).
type Phase uint8

const (
	Handshake Phase = iota
	Status
	Login
	Configuration
	Play
)

func (p Phase) String() string {
	switch p {
	case Handshake:
		return "HANDSHAKE"
	case Status:
		return "STATUS"
	case Login:
		return "LOGIN"
	case Configuration:
		return "CONFIGURATION"
	case Play:
		return "PLAY"
	default:
		return "UNKNOWN_PHASE"
	}
}

// Direction is which side of the connection originates the packet.
type Direction uint8

const (
	Serverbound Direction = iota
	Clientbound
)

func (d Direction) String() string {
	switch d {
	case Serverbound:
		return "SERVERBOUND"
	case Clientbound:
		return "CLIENTBOUND"
	default:
		return "UNKNOWN_DIRECTION"
	}
}

// Sentinel errors named by spec.md §4.7. The registry, compress, cipher and
// transport packages wrap these. Package buffer (and nbt, which uses it)
// wraps its own buffer.ErrTruncated and buffer.ErrMalformed instead, which
// are distinct values from ErrTruncated and ErrMalformed here.
var (
	// ErrTruncated is returned when the buffer is exhausted mid-read.
	ErrTruncated = errors.New("proto: truncated")
	// ErrMalformed marks a value that violates an encoding invariant.
	ErrMalformed = errors.New("proto: malformed")
	// ErrUnknownOpcode marks a (phase, direction, opcode) triple absent from
	// the registry.
	ErrUnknownOpcode = errors.New("proto: unknown opcode")
	// ErrValidationFailed marks a cross-field invariant violation raised by
	// a packet's Validate method.
	ErrValidationFailed = errors.New("proto: validation failed")
	// ErrLengthMismatch marks a declared-vs-actual length disagreement in
	// the compression layer.
	ErrLengthMismatch = errors.New("proto: length mismatch")
	// ErrCryptoFailure marks a cipher that cannot process its input.
	ErrCryptoFailure = errors.New("proto: crypto failure")
	// ErrUnregistered marks an attempt to encode a packet kind with no
	// assigned opcode.
	ErrUnregistered = errors.New("proto: unregistered packet kind")
)

// Packet is the contract every concrete packet payload type implements.
// OPCODE/PHASE/DIRECTION are exposed as methods rather than the "class-level
// constants" spec.md §4.4 describes, since Go has no notion of a
// constant bound to an interface — every concrete type's methods simply
// return the same literal on every call, which is the idiomatic
// substitute (mirrored by BX-D-mini-RPC/message/message.go's Message
// interface).
type Packet interface {
	Opcode() int32
	Phase() Phase
	Direction() Direction
	// Validate checks cross-field invariants that a successful field-by-field
	// decode can't express (e.g. BossBar ADD requires title+health+color+
	// division). Validate is called after decode and before encode;
	// a ValidationFailed error on send happens before any bytes are
	// emitted (spec.md §4.7).
	Validate() error
}
