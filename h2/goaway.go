package h2

import "github.com/go-httpwire/httpwire/octet"

// GoAwayFrame is the decoded view of a GOAWAY frame (type 0x07).
type GoAwayFrame struct {
	LastStreamID uint32
	ErrorCode    uint32
	DebugData    []byte
}

// EncodeGoAway builds one GOAWAY frame. GOAWAY always targets stream 0.
// DebugData beyond the frame cap is split the same as any other
// variable-length payload.
func EncodeGoAway(lastStreamID, errorCode uint32, debugData []byte) (frame, excess []byte) {
	const prefix = 8
	fits, excess := splitOverflow(debugData, prefix)

	w := octet.NewWriter()
	w.PutUint32(lastStreamID & 0x7fffffff)
	w.PutUint32(errorCode)
	w.PutBytes(fits)

	frame = EncodeFrameHeader(nil, FrameHeader{Length: w.Len(), Type: FrameGoAway})
	frame = append(frame, w.Bytes()...)
	return frame, excess
}

// DecodeGoAway parses a GOAWAY frame's payload. Trailing bytes past
// h.Length are dropped and decoding proceeds, the same as DecodeData; a
// payload short of the mandatory 8-byte prefix still aborts.
func DecodeGoAway(h FrameHeader, payload []byte) (GoAwayFrame, error) {
	err := checkPayloadLength(payload, h.Length)
	if err == ErrLengthShortage {
		return GoAwayFrame{}, err
	}
	if len(payload) > h.Length {
		payload = payload[:h.Length]
	}
	if len(payload) < 8 {
		return GoAwayFrame{}, ErrLengthShortage
	}

	r := octet.NewReader(payload[:8])
	rawLast, _ := r.TakeUint32()
	code, _ := r.TakeUint32()

	return GoAwayFrame{
		LastStreamID: rawLast & 0x7fffffff,
		ErrorCode:    code,
		DebugData:    payload[8:],
	}, err
}
