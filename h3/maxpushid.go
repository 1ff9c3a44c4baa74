package h3

import "github.com/go-httpwire/httpwire/varint"

// MaxPushIDFrame is the decoded view of a MAX_PUSH_ID frame (type
// 0x0d): a single varint push id.
type MaxPushIDFrame struct {
	PushID uint64
}

// EncodeMaxPushID builds one MAX_PUSH_ID frame.
func EncodeMaxPushID(pushID uint64) ([]byte, error) {
	payload, err := varint.Encode(nil, pushID)
	if err != nil {
		return nil, err
	}
	return encodeFrame(FrameMaxPushID, payload)
}

// DecodeMaxPushID parses a MAX_PUSH_ID frame's payload. Excess bytes
// past declaredLength don't stop the push id from being read; a
// shortage still aborts.
func DecodeMaxPushID(payload []byte, declaredLength uint64) (MaxPushIDFrame, error) {
	lenErr := checkPayloadLength(payload, declaredLength)
	if lenErr == ErrLengthShortage {
		return MaxPushIDFrame{}, lenErr
	}
	id, _, err := varint.Decode(payload[:declaredLength])
	if err != nil {
		return MaxPushIDFrame{}, err
	}
	return MaxPushIDFrame{PushID: id}, lenErr
}
