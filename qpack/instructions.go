package qpack

import (
	"errors"

	"github.com/go-httpwire/httpwire/prefix"
)

// ErrTruncated is returned when an instruction stream ends mid-instruction.
var ErrTruncated = errors.New("qpack: truncated instruction")

// Encoder-stream instruction bit patterns, RFC 9204 §4.3.
const (
	encInstrSetCapacity       = 0x20 // 001xxxxx, 5-bit prefix
	encInstrInsertNameRef     = 0x80 // 1Txxxxxx, 6-bit prefix
	encInstrInsertLiteralName = 0x40 // 01Hxxxxx, 5-bit prefix
	encInstrDuplicate         = 0x00 // 000xxxxx, 5-bit prefix
)

// AppendSetDynamicTableCapacity appends an encoder-stream "Set Dynamic
// Table Capacity" instruction.
func AppendSetDynamicTableCapacity(dst []byte, capacity uint64) []byte {
	start := len(dst)
	dst = prefix.EncodeInt(dst, 5, capacity)
	dst[start] |= encInstrSetCapacity
	return dst
}

// AppendInsertWithNameReference appends an encoder-stream "Insert with
// Name Reference" instruction: static or dynamic is chosen by isStatic.
func AppendInsertWithNameReference(dst []byte, isStatic bool, nameIndex uint64, value []byte, preferHuffman bool) []byte {
	start := len(dst)
	dst = prefix.EncodeInt(dst, 6, nameIndex)
	dst[start] |= encInstrInsertNameRef
	if isStatic {
		dst[start] |= 0x40
	}
	return prefix.EncodeString(dst, 7, value, preferHuffman)
}

// AppendInsertWithLiteralName appends an encoder-stream "Insert with
// Literal Name" instruction.
func AppendInsertWithLiteralName(dst []byte, name, value []byte, preferHuffman bool) []byte {
	start := len(dst)
	dst = prefix.EncodeString(dst, 5, name, preferHuffman)
	dst[start] |= encInstrInsertLiteralName
	return prefix.EncodeString(dst, 7, value, preferHuffman)
}

// AppendDuplicate appends an encoder-stream "Duplicate" instruction, where
// relativeIndex is relative to the current Insert Count (0 = most recently
// inserted entry at encode time).
func AppendDuplicate(dst []byte, relativeIndex uint64) []byte {
	start := len(dst)
	dst = prefix.EncodeInt(dst, 5, relativeIndex)
	dst[start] |= encInstrDuplicate
	return dst
}

// EncoderInstructionVisitor receives decoded encoder-stream instructions.
type EncoderInstructionVisitor struct {
	SetCapacity func(capacity uint64)
	InsertName  func(isStatic bool, nameIndex uint64, value []byte)
	InsertName2 func(name, value []byte)
	Duplicate   func(relativeIndex uint64)
}

// DecodeEncoderInstruction decodes one encoder-stream instruction from the
// front of src and returns the number of bytes consumed.
func DecodeEncoderInstruction(src []byte, v EncoderInstructionVisitor) (int, error) {
	if len(src) == 0 {
		return 0, ErrTruncated
	}

	c := src[0]
	switch {
	case c&0x80 == 0x80: // 1Txxxxxx
		isStatic := c&0x40 != 0
		idx, n, err := prefix.DecodeInt(src, 6)
		if err != nil {
			return 0, err
		}
		value, vn, err := prefix.DecodeString(src[n:], 7)
		if err != nil {
			return 0, err
		}
		if v.InsertName != nil {
			v.InsertName(isStatic, idx, value)
		}
		return n + vn, nil

	case c&0xc0 == 0x40: // 01Hxxxxx
		name, n, err := prefix.DecodeString(src, 5)
		if err != nil {
			return 0, err
		}
		value, vn, err := prefix.DecodeString(src[n:], 7)
		if err != nil {
			return 0, err
		}
		if v.InsertName2 != nil {
			v.InsertName2(name, value)
		}
		return n + vn, nil

	case c&0xe0 == 0x20: // 001xxxxx
		capacity, n, err := prefix.DecodeInt(src, 5)
		if err != nil {
			return 0, err
		}
		if v.SetCapacity != nil {
			v.SetCapacity(capacity)
		}
		return n, nil

	default: // 000xxxxx
		idx, n, err := prefix.DecodeInt(src, 5)
		if err != nil {
			return 0, err
		}
		if v.Duplicate != nil {
			v.Duplicate(idx)
		}
		return n, nil
	}
}

// Decoder-stream instruction bit patterns, RFC 9204 §4.4.
const (
	decInstrSectionAck    = 0x80 // 1xxxxxxx, 7-bit prefix
	decInstrStreamCancel  = 0x40 // 01xxxxxx, 6-bit prefix
	decInstrInsertCountIn = 0x00 // 00xxxxxx, 6-bit prefix
)

// AppendSectionAcknowledgment appends a decoder-stream Section
// Acknowledgment instruction for streamID.
func AppendSectionAcknowledgment(dst []byte, streamID uint64) []byte {
	start := len(dst)
	dst = prefix.EncodeInt(dst, 7, streamID)
	dst[start] |= decInstrSectionAck
	return dst
}

// AppendStreamCancellation appends a decoder-stream Stream Cancellation
// instruction for streamID.
func AppendStreamCancellation(dst []byte, streamID uint64) []byte {
	start := len(dst)
	dst = prefix.EncodeInt(dst, 6, streamID)
	dst[start] |= decInstrStreamCancel
	return dst
}

// AppendInsertCountIncrement appends a decoder-stream Insert Count
// Increment instruction.
func AppendInsertCountIncrement(dst []byte, increment uint64) []byte {
	start := len(dst)
	dst = prefix.EncodeInt(dst, 6, increment)
	dst[start] |= decInstrInsertCountIn
	return dst
}

// DecoderInstructionVisitor receives decoded decoder-stream instructions.
type DecoderInstructionVisitor struct {
	SectionAck   func(streamID uint64)
	StreamCancel func(streamID uint64)
	CountIncr    func(increment uint64)
}

// DecodeDecoderInstruction decodes one decoder-stream instruction from the
// front of src and returns the number of bytes consumed.
func DecodeDecoderInstruction(src []byte, v DecoderInstructionVisitor) (int, error) {
	if len(src) == 0 {
		return 0, ErrTruncated
	}

	c := src[0]
	switch {
	case c&0x80 == 0x80:
		id, n, err := prefix.DecodeInt(src, 7)
		if err != nil {
			return 0, err
		}
		if v.SectionAck != nil {
			v.SectionAck(id)
		}
		return n, nil

	case c&0xc0 == 0x40:
		id, n, err := prefix.DecodeInt(src, 6)
		if err != nil {
			return 0, err
		}
		if v.StreamCancel != nil {
			v.StreamCancel(id)
		}
		return n, nil

	default:
		incr, n, err := prefix.DecodeInt(src, 6)
		if err != nil {
			return 0, err
		}
		if v.CountIncr != nil {
			v.CountIncr(incr)
		}
		return n, nil
	}
}
