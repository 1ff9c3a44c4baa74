// Package h2 implements the HTTP/2 frame codec described in spec.md
// §4.6: per-type encoders that build a frame's bytes (with a
// split_off-style overflow for content past the 16,777,215-octet cap)
// and decoders that take a zero-copy view over an already-received
// byte slice. There is no connection, stream, or transport state here
// — callers own a *bufio.Writer/Reader or socket and drive this codec
// frame by frame, mirroring the teacher's frameHeader.go/data.go family
// with the I/O stripped out.
package h2

import (
	"errors"

	"github.com/go-httpwire/httpwire/octet"
)

// FrameType identifies one of the ten HTTP/2 frame types (RFC 7540 §6).
type FrameType uint8

const (
	FrameData         FrameType = 0x00
	FrameHeaders       FrameType = 0x01
	FramePriority      FrameType = 0x02
	FrameRSTStream     FrameType = 0x03
	FrameSettings      FrameType = 0x04
	FramePushPromise   FrameType = 0x05
	FramePing          FrameType = 0x06
	FrameGoAway        FrameType = 0x07
	FrameWindowUpdate  FrameType = 0x08
	FrameContinuation  FrameType = 0x09
)

// FrameFlags holds the 8-bit flags field. Meaning is type-dependent;
// see each frame type's file.
type FrameFlags uint8

const (
	FlagAck        FrameFlags = 0x1
	FlagEndStream  FrameFlags = 0x1
	FlagEndHeaders FrameFlags = 0x4
	FlagPadded     FrameFlags = 0x8
	FlagPriority   FrameFlags = 0x20
)

// FrameHeaderSize is the fixed 9-byte frame header (RFC 7540 §4.1).
const FrameHeaderSize = 9

// MaxFrameLength is the largest payload length a frame can declare
// without SETTINGS_MAX_FRAME_SIZE negotiation raising it — and the hard
// cap this codec's encoders split content against.
const MaxFrameLength = 1<<24 - 1

var (
	ErrLengthShortage   = errors.New("h2: frame payload shorter than declared length")
	ErrLengthExcess     = errors.New("h2: frame payload longer than declared length")
	ErrInvalidFrameType = errors.New("h2: invalid frame type")
	ErrPayloadExceeds   = errors.New("h2: frame payload exceeds max frame length")
)

// FrameHeader is the decoded/to-be-encoded 9-byte frame header.
type FrameHeader struct {
	Length   int
	Type     FrameType
	Flags    FrameFlags
	StreamID uint32 // reserved high bit always cleared
}

// EncodeFrameHeader appends the 9-byte wire header to dst.
func EncodeFrameHeader(dst []byte, h FrameHeader) []byte {
	w := octet.NewWriter()
	w.PutUint24(uint32(h.Length))
	w.PutByte(byte(h.Type))
	w.PutByte(byte(h.Flags))
	w.PutUint32(h.StreamID & 0x7fffffff)
	return append(dst, w.Bytes()...)
}

// DecodeFrameHeader parses the 9-byte header from the front of src.
func DecodeFrameHeader(src []byte) (FrameHeader, error) {
	if len(src) < FrameHeaderSize {
		return FrameHeader{}, ErrLengthShortage
	}
	r := octet.NewReader(src[:FrameHeaderSize])
	length, _ := r.TakeUint24()
	kind, _ := r.TakeByte()
	flags, _ := r.TakeByte()
	stream, _ := r.TakeUint32()
	return FrameHeader{
		Length:   int(length),
		Type:     FrameType(kind),
		Flags:    FrameFlags(flags),
		StreamID: stream & 0x7fffffff,
	}, nil
}

// checkPayloadLength verifies that payload is exactly as long as the
// frame header declared, returning the length-mismatch errors the
// decoder layer exposes per spec.md §4.6.
func checkPayloadLength(payload []byte, declared int) error {
	if len(payload) < declared {
		return ErrLengthShortage
	}
	if len(payload) > declared {
		return ErrLengthExcess
	}
	return nil
}

// splitOverflow caps content to MaxFrameLength-prefixLen bytes, returning
// the tail that didn't fit so the caller can re-encode it into the next
// frame of the same type (the "split_off(excess)" operation).
func splitOverflow(content []byte, prefixLen int) (fits, excess []byte) {
	maxContent := MaxFrameLength - prefixLen
	if len(content) <= maxContent {
		return content, nil
	}
	return content[:maxContent], content[maxContent:]
}
