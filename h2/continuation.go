package h2

import "github.com/go-httpwire/httpwire/hpack"

// ContinuationFrame is the decoded view of a CONTINUATION frame (type
// 0x09): a raw field-block fragment continuing a prior HEADERS or
// PUSH_PROMISE frame.
type ContinuationFrame struct {
	FieldBlock []byte
}

// DecodeFields forwards FieldBlock to hp's HPACK decoder. See
// HeadersFrame.DecodeFields for the connection-long hp requirement.
func (cf ContinuationFrame) DecodeFields(hp *hpack.HPACK, visit hpack.Visitor) error {
	return hp.Decode(cf.FieldBlock, visit)
}

// EncodeContinuation builds one CONTINUATION frame, splitting fieldBlock
// the same way EncodeHeaders does.
func EncodeContinuation(streamID uint32, endHeaders bool, fieldBlock []byte) (frame, excess []byte) {
	fits, excess := splitOverflow(fieldBlock, 0)

	flags := FrameFlags(0)
	if endHeaders && len(excess) == 0 {
		flags |= FlagEndHeaders
	}

	frame = EncodeFrameHeader(nil, FrameHeader{Length: len(fits), Type: FrameContinuation, Flags: flags, StreamID: streamID})
	frame = append(frame, fits...)
	return frame, excess
}

// DecodeContinuation parses a CONTINUATION frame's payload. Trailing
// bytes past h.Length are dropped rather than aborting the decode; a
// short payload still aborts, since there's no field block to return.
func DecodeContinuation(h FrameHeader, payload []byte) (ContinuationFrame, error) {
	err := checkPayloadLength(payload, h.Length)
	if err == ErrLengthShortage {
		return ContinuationFrame{}, err
	}
	return ContinuationFrame{FieldBlock: payload[:h.Length]}, err
}
