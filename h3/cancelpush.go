package h3

import "github.com/go-httpwire/httpwire/varint"

// CancelPushFrame is the decoded view of a CANCEL_PUSH frame (type
// 0x03): a single varint push id.
type CancelPushFrame struct {
	PushID uint64
}

// EncodeCancelPush builds one CANCEL_PUSH frame.
func EncodeCancelPush(pushID uint64) ([]byte, error) {
	payload, err := varint.Encode(nil, pushID)
	if err != nil {
		return nil, err
	}
	return encodeFrame(FrameCancelPush, payload)
}

// DecodeCancelPush parses a CANCEL_PUSH frame's payload. Excess bytes
// past declaredLength don't stop the push id from being read; a
// shortage still aborts.
func DecodeCancelPush(payload []byte, declaredLength uint64) (CancelPushFrame, error) {
	lenErr := checkPayloadLength(payload, declaredLength)
	if lenErr == ErrLengthShortage {
		return CancelPushFrame{}, lenErr
	}
	id, _, err := varint.Decode(payload[:declaredLength])
	if err != nil {
		return CancelPushFrame{}, err
	}
	return CancelPushFrame{PushID: id}, lenErr
}
