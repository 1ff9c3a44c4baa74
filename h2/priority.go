package h2

import "github.com/go-httpwire/httpwire/octet"

// PriorityFrame is the decoded view of a PRIORITY frame (type 0x02): a
// fixed 5-byte payload, never subject to the split_off overflow policy.
type PriorityFrame struct {
	PriorityInfo
}

// EncodePriority builds one PRIORITY frame.
func EncodePriority(streamID uint32, info PriorityInfo) []byte {
	w := octet.NewWriter()
	w.PutUint32(encodeStreamDependency(info.Exclusive, info.StreamDependency))
	w.PutByte(info.Weight)

	frame := EncodeFrameHeader(nil, FrameHeader{Length: w.Len(), Type: FramePriority, StreamID: streamID})
	return append(frame, w.Bytes()...)
}

// DecodePriority parses a PRIORITY frame's payload. Excess bytes past the
// mandatory 5 don't stop the fields from being read; only a payload
// short of 5 bytes aborts.
func DecodePriority(h FrameHeader, payload []byte) (PriorityFrame, error) {
	err := checkPayloadLength(payload, h.Length)
	if err == ErrLengthShortage {
		return PriorityFrame{}, err
	}
	if len(payload) > h.Length {
		payload = payload[:h.Length]
	}
	if len(payload) < 5 {
		return PriorityFrame{}, ErrLengthShortage
	}

	r := octet.NewReader(payload[:5])
	raw, _ := r.TakeUint32()
	weight, _ := r.TakeByte()
	excl, dep := decodeStreamDependency(raw)
	pf := PriorityFrame{PriorityInfo{Exclusive: excl, StreamDependency: dep, Weight: weight}}
	if len(payload) != 5 {
		return pf, ErrLengthExcess
	}
	return pf, err
}
