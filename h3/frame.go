// Package h3 implements the HTTP/3 frame codec described in spec.md
// §4.7: seven frame types built on the varint type+length framing of
// RFC 9000 §16, reusing the varint package shared with QPACK. As with
// h2, there is no transport here — callers own the QUIC stream and feed
// this codec byte slices.
package h3

import (
	"errors"

	"github.com/go-httpwire/httpwire/varint"
)

// FrameType identifies one of the seven HTTP/3 frame types (RFC 9114
// §7.2). The wire type is itself a varint; every known type fits in one
// byte, but unknown multi-byte types are accepted by the generic header
// codec for forward compatibility.
type FrameType uint64

const (
	FrameData        FrameType = 0x00
	FrameHeaders      FrameType = 0x01
	FrameCancelPush   FrameType = 0x03
	FrameSettings     FrameType = 0x04
	FramePushPromise  FrameType = 0x05
	FrameGoAway       FrameType = 0x07
	FrameMaxPushID    FrameType = 0x0d
)

var (
	ErrLengthShortage = errors.New("h3: frame payload shorter than declared length")
	ErrLengthExcess   = errors.New("h3: frame payload longer than declared length")
	ErrInvalidFrameType = errors.New("h3: invalid frame type")
	ErrTruncated      = errors.New("h3: truncated varint framing")
)

// EncodeFrameHeader appends the varint type and varint length to dst.
func EncodeFrameHeader(dst []byte, typ FrameType, length uint64) ([]byte, error) {
	dst, err := varint.Encode(dst, uint64(typ))
	if err != nil {
		return dst, err
	}
	return varint.Encode(dst, length)
}

// DecodeFrameHeader reads the varint type and varint length from the
// front of src, returning the bytes consumed.
func DecodeFrameHeader(src []byte) (typ FrameType, length uint64, consumed int, err error) {
	t, n1, err := varint.Decode(src)
	if err != nil {
		return 0, 0, 0, ErrTruncated
	}
	l, n2, err := varint.Decode(src[n1:])
	if err != nil {
		return 0, 0, 0, ErrTruncated
	}
	return FrameType(t), l, n1 + n2, nil
}

func checkPayloadLength(payload []byte, declared uint64) error {
	if uint64(len(payload)) < declared {
		return ErrLengthShortage
	}
	if uint64(len(payload)) > declared {
		return ErrLengthExcess
	}
	return nil
}

func encodeFrame(typ FrameType, payload []byte) ([]byte, error) {
	dst, err := EncodeFrameHeader(nil, typ, uint64(len(payload)))
	if err != nil {
		return nil, err
	}
	return append(dst, payload...), nil
}
