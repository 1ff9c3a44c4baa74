package h2

import (
	"github.com/go-httpwire/httpwire/hpack"
	"github.com/go-httpwire/httpwire/octet"
)

// HeadersFrame is the decoded view of a HEADERS frame (type 0x01).
// FieldBlock is a zero-copy slice of the HPACK-encoded field block
// fragment carried by this frame alone — if END_HEADERS is unset, the
// rest follows in one or more CONTINUATION frames the caller must
// concatenate (or feed through hpack incrementally) before decoding.
type HeadersFrame struct {
	Padded      bool
	PadLength   uint8
	HasPriority bool
	Priority    PriorityInfo
	FieldBlock  []byte
}

// DecodeFields forwards FieldBlock to hp's HPACK decoder, invoking visit
// for each decoded name/value pair. hp is the caller's connection-long
// HPACK instance — decoding mutates its dynamic table, so the same *hpack.HPACK
// must be used for every field block on a connection, in frame order.
func (hf HeadersFrame) DecodeFields(hp *hpack.HPACK, visit hpack.Visitor) error {
	return hp.Decode(hf.FieldBlock, visit)
}

// EncodeHeaders builds one HEADERS frame. priority is nil when the
// PRIORITY flag should not be set. endHeaders is only honored on the
// frame if the whole field block fit (no excess) — callers that get a
// non-empty excess must follow up with CONTINUATION frame(s).
func EncodeHeaders(streamID uint32, endStream, endHeaders bool, padLength uint8, priority *PriorityInfo, fieldBlock []byte) (frame, excess []byte) {
	prefix := boolToInt(padLength > 0)
	if priority != nil {
		prefix += 5
	}

	fits, excess := splitOverflow(fieldBlock, prefix)

	padded := padLength > 0 && len(excess) == 0
	if padded {
		padLength = capPadding(padLength, prefix, len(fits))
	} else {
		padLength = 0
	}

	w := octet.NewWriter()
	if padded {
		w.PutByte(padLength)
	}
	if priority != nil {
		w.PutUint32(encodeStreamDependency(priority.Exclusive, priority.StreamDependency))
		w.PutByte(priority.Weight)
	}
	w.PutBytes(fits)
	w.PutRepeat(int(padLength), 0)

	flags := FrameFlags(0)
	if endStream {
		flags |= FlagEndStream
	}
	if endHeaders && len(excess) == 0 {
		flags |= FlagEndHeaders
	}
	if padded {
		flags |= FlagPadded
	}
	if priority != nil {
		flags |= FlagPriority
	}

	frame = EncodeFrameHeader(nil, FrameHeader{Length: w.Len(), Type: FrameHeaders, Flags: flags, StreamID: streamID})
	frame = append(frame, w.Bytes()...)
	return frame, excess
}

// DecodeHeaders parses a HEADERS frame's payload. As with DecodeData,
// trailing bytes past h.Length (ErrLengthExcess) are dropped and decoding
// proceeds on the truncated payload, returning a fully usable frame
// alongside the non-fatal error; a short payload still aborts, since
// there's no safe way to read the fixed-size padding/priority fields from
// too few bytes.
func DecodeHeaders(h FrameHeader, payload []byte) (HeadersFrame, error) {
	err := checkPayloadLength(payload, h.Length)
	if err == ErrLengthShortage {
		return HeadersFrame{}, err
	}
	if len(payload) > h.Length {
		payload = payload[:h.Length]
	}

	hf := HeadersFrame{}
	if h.Flags&FlagPadded != 0 {
		if len(payload) < 1 {
			return HeadersFrame{}, ErrLengthShortage
		}
		hf.Padded = true
		hf.PadLength = payload[0]
		payload = payload[1:]
	}
	if h.Flags&FlagPriority != 0 {
		if len(payload) < 5 {
			return HeadersFrame{}, ErrLengthShortage
		}
		r := octet.NewReader(payload[:5])
		raw, _ := r.TakeUint32()
		weight, _ := r.TakeByte()
		excl, dep := decodeStreamDependency(raw)
		hf.HasPriority = true
		hf.Priority = PriorityInfo{Exclusive: excl, StreamDependency: dep, Weight: weight}
		payload = payload[5:]
	}
	if int(hf.PadLength) > len(payload) {
		return HeadersFrame{}, ErrLengthShortage
	}
	if hf.Padded {
		payload = payload[:len(payload)-int(hf.PadLength)]
	}
	hf.FieldBlock = payload
	return hf, err
}
