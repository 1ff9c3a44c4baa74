package h3

import (
	"github.com/go-httpwire/httpwire/qpack"
	"github.com/go-httpwire/httpwire/varint"
)

// PushPromiseFrame is the decoded view of a PUSH_PROMISE frame (type
// 0x05): a varint push id followed by a QPACK-encoded field section.
type PushPromiseFrame struct {
	PushID     uint64
	FieldBlock []byte
}

// EncodePushPromise builds one PUSH_PROMISE frame.
func EncodePushPromise(pushID uint64, fieldBlock []byte) ([]byte, error) {
	payload, err := varint.Encode(nil, pushID)
	if err != nil {
		return nil, err
	}
	payload = append(payload, fieldBlock...)
	return encodeFrame(FramePushPromise, payload)
}

// DecodePushPromise parses a PUSH_PROMISE frame's payload. Bytes past
// declaredLength are dropped before decoding rather than aborting the
// whole frame; a shortage still aborts.
func DecodePushPromise(payload []byte, declaredLength uint64) (PushPromiseFrame, error) {
	lenErr := checkPayloadLength(payload, declaredLength)
	if lenErr == ErrLengthShortage {
		return PushPromiseFrame{}, lenErr
	}
	rest := payload[:declaredLength]

	id, n, err := varint.Decode(rest)
	if err != nil {
		return PushPromiseFrame{}, err
	}
	return PushPromiseFrame{PushID: id, FieldBlock: rest[n:]}, lenErr
}

// DecodeFields decodes FieldBlock the same way HeadersFrame.DecodeFields does.
func (pf PushPromiseFrame) DecodeFields(totalInserts uint64, dynamicTableCapacity int, table qpack.TableSource, visit qpack.SectionVisitor) error {
	return HeadersFrame{FieldBlock: pf.FieldBlock}.DecodeFields(totalInserts, dynamicTableCapacity, table, visit)
}
