package h3

import "github.com/go-httpwire/httpwire/varint"

// GoAwayFrame is the decoded view of a GOAWAY frame (type 0x07): a
// single varint identifier (a stream id from a client, a push id from
// a server), per RFC 9114 §5.2/§7.2.6.
type GoAwayFrame struct {
	ID uint64
}

// EncodeGoAway builds one GOAWAY frame.
func EncodeGoAway(id uint64) ([]byte, error) {
	payload, err := varint.Encode(nil, id)
	if err != nil {
		return nil, err
	}
	return encodeFrame(FrameGoAway, payload)
}

// DecodeGoAway parses a GOAWAY frame's payload. Excess bytes past
// declaredLength don't stop the id from being read; a shortage still
// aborts.
func DecodeGoAway(payload []byte, declaredLength uint64) (GoAwayFrame, error) {
	lenErr := checkPayloadLength(payload, declaredLength)
	if lenErr == ErrLengthShortage {
		return GoAwayFrame{}, lenErr
	}
	id, _, err := varint.Decode(payload[:declaredLength])
	if err != nil {
		return GoAwayFrame{}, err
	}
	return GoAwayFrame{ID: id}, lenErr
}
