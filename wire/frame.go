// Package wire defines the fixed-size framed protocol exchanged between the
// coordinator and the peripheral over the two-wire bus.
//
// Every transaction in the peripheral->coordinator direction carries exactly
// FrameSize bytes: a kind tag followed by a kind-dependent payload, zero-padded
// when unused. Coordinator->peripheral transactions carry a 1- or 2-byte
// command (see command.go). Any read that yields other than FrameSize bytes is
// a transport failure, never a valid frame.
package wire

import "nodelink-go/errcode"

// FrameSize is the fixed transaction size in bytes, both directions of the
// request/response exchange.
const FrameSize = 10

// PayloadSize is the room after the kind tag.
const PayloadSize = FrameSize - 1

// Kind is the frame tag carried in byte 0.
type Kind byte

const (
	KindIdle Kind = 0x00
	KindCard Kind = 0x01
	KindEnv  Kind = 0x02
	// Tags above KindEnv are reserved. They decode as unknown-but-valid so
	// the protocol stays forward-extensible; receivers log and ignore them.
)

func (k Kind) String() string {
	switch k {
	case KindIdle:
		return "idle"
	case KindCard:
		return "card"
	case KindEnv:
		return "env"
	default:
		return "unknown"
	}
}

// Known reports whether k is a tag this revision assigns meaning to.
func (k Kind) Known() bool { return k <= KindEnv }

// Frame is one decoded bus transaction.
type Frame struct {
	Kind    Kind
	Payload [PayloadSize]byte
}

// Idle is the frame the peripheral answers with when nothing is pending.
var Idle = Frame{Kind: KindIdle}

// Errors returned by the codec.
var (
	// ErrMalformedLength reports a buffer of other than FrameSize bytes.
	// Recovered locally by the link state machine, never fatal.
	ErrMalformedLength = errcode.MalformedLength
	// ErrPayloadTooLarge reports codec misuse: a payload that cannot fit the
	// frame. It indicates a build-time bug, not a runtime condition.
	ErrPayloadTooLarge = errcode.PayloadTooLarge
)

// Encode packs kind and payload into a frame, zero-padding the remainder.
func Encode(kind Kind, payload []byte) (Frame, error) {
	if len(payload) > PayloadSize {
		return Frame{}, ErrPayloadTooLarge
	}
	f := Frame{Kind: kind}
	copy(f.Payload[:], payload)
	return f, nil
}

// Decode parses exactly FrameSize bytes into a Frame. Unrecognized kind tags
// decode successfully; no payload validation is performed.
func Decode(p []byte) (Frame, error) {
	if len(p) != FrameSize {
		return Frame{}, ErrMalformedLength
	}
	var f Frame
	f.Kind = Kind(p[0])
	copy(f.Payload[:], p[1:])
	return f, nil
}

// Bytes serializes f into its wire representation.
func (f Frame) Bytes() [FrameSize]byte {
	var b [FrameSize]byte
	b[0] = byte(f.Kind)
	copy(b[1:], f.Payload[:])
	return b
}

// AppendTo writes the wire representation into dst, which must hold at least
// FrameSize bytes, and returns the written slice.
func (f Frame) AppendTo(dst []byte) []byte {
	dst = append(dst, byte(f.Kind))
	return append(dst, f.Payload[:]...)
}
