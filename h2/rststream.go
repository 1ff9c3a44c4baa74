package h2

import "github.com/go-httpwire/httpwire/octet"

// RSTStreamFrame is the decoded view of an RST_STREAM frame (type 0x03):
// a fixed 4-byte error code.
type RSTStreamFrame struct {
	ErrorCode uint32
}

// EncodeRSTStream builds one RST_STREAM frame.
func EncodeRSTStream(streamID uint32, errorCode uint32) []byte {
	w := octet.NewWriter()
	w.PutUint32(errorCode)

	frame := EncodeFrameHeader(nil, FrameHeader{Length: w.Len(), Type: FrameRSTStream, StreamID: streamID})
	return append(frame, w.Bytes()...)
}

// DecodeRSTStream parses an RST_STREAM frame's payload. A payload longer
// than the mandatory 4 bytes still yields a usable frame (the error code
// is read from the first 4 bytes regardless), with ErrLengthExcess
// reported alongside it rather than discarding the decode; a payload
// shorter than 4 bytes has nothing to read the error code from, so it
// still aborts.
func DecodeRSTStream(h FrameHeader, payload []byte) (RSTStreamFrame, error) {
	err := checkPayloadLength(payload, h.Length)
	if err == ErrLengthShortage {
		return RSTStreamFrame{}, err
	}
	if len(payload) > h.Length {
		payload = payload[:h.Length]
	}
	if len(payload) < 4 {
		return RSTStreamFrame{}, ErrLengthShortage
	}
	r := octet.NewReader(payload[:4])
	code, _ := r.TakeUint32()
	if len(payload) != 4 {
		return RSTStreamFrame{ErrorCode: code}, ErrLengthExcess
	}
	return RSTStreamFrame{ErrorCode: code}, err
}
