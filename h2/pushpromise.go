package h2

import (
	"github.com/go-httpwire/httpwire/hpack"
	"github.com/go-httpwire/httpwire/octet"
)

// PushPromiseFrame is the decoded view of a PUSH_PROMISE frame (type
// 0x05): the promised stream id plus a zero-copy field-block fragment.
type PushPromiseFrame struct {
	Padded           bool
	PadLength        uint8
	PromisedStreamID uint32
	FieldBlock       []byte
}

// DecodeFields forwards FieldBlock to hp's HPACK decoder. See
// HeadersFrame.DecodeFields for the connection-long hp requirement.
func (pf PushPromiseFrame) DecodeFields(hp *hpack.HPACK, visit hpack.Visitor) error {
	return hp.Decode(pf.FieldBlock, visit)
}

// EncodePushPromise builds one PUSH_PROMISE frame, splitting the field
// block across a returned excess the same way EncodeHeaders does.
func EncodePushPromise(streamID, promisedStreamID uint32, endHeaders bool, padLength uint8, fieldBlock []byte) (frame, excess []byte) {
	const promisedIDLen = 4
	prefix := boolToInt(padLength > 0) + promisedIDLen

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
	w.PutUint32(promisedStreamID & 0x7fffffff)
	w.PutBytes(fits)
	w.PutRepeat(int(padLength), 0)

	flags := FrameFlags(0)
	if endHeaders && len(excess) == 0 {
		flags |= FlagEndHeaders
	}
	if padded {
		flags |= FlagPadded
	}

	frame = EncodeFrameHeader(nil, FrameHeader{Length: w.Len(), Type: FramePushPromise, Flags: flags, StreamID: streamID})
	frame = append(frame, w.Bytes()...)
	return frame, excess
}

// DecodePushPromise parses a PUSH_PROMISE frame's payload. Trailing bytes
// past h.Length are dropped and decoding proceeds, the same as
// DecodeData; a short payload still aborts.
func DecodePushPromise(h FrameHeader, payload []byte) (PushPromiseFrame, error) {
	err := checkPayloadLength(payload, h.Length)
	if err == ErrLengthShortage {
		return PushPromiseFrame{}, err
	}
	if len(payload) > h.Length {
		payload = payload[:h.Length]
	}

	pf := PushPromiseFrame{}
	if h.Flags&FlagPadded != 0 {
		if len(payload) < 1 {
			return PushPromiseFrame{}, ErrLengthShortage
		}
		pf.Padded = true
		pf.PadLength = payload[0]
		payload = payload[1:]
	}
	if len(payload) < 4 {
		return PushPromiseFrame{}, ErrLengthShortage
	}
	r := octet.NewReader(payload[:4])
	raw, _ := r.TakeUint32()
	pf.PromisedStreamID = raw & 0x7fffffff
	payload = payload[4:]

	if int(pf.PadLength) > len(payload) {
		return PushPromiseFrame{}, ErrLengthShortage
	}
	if pf.Padded {
		payload = payload[:len(payload)-int(pf.PadLength)]
	}
	pf.FieldBlock = payload
	return pf, err
}
