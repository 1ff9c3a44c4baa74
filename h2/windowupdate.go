package h2

import "github.com/go-httpwire/httpwire/octet"

// WindowUpdateFrame is the decoded view of a WINDOW_UPDATE frame (type
// 0x08): a fixed 4-byte increment with its reserved high bit cleared.
type WindowUpdateFrame struct {
	Increment uint32
}

// EncodeWindowUpdate builds one WINDOW_UPDATE frame for streamID (0 for
// the connection-level window).
func EncodeWindowUpdate(streamID, increment uint32) []byte {
	w := octet.NewWriter()
	w.PutUint32(increment & 0x7fffffff)

	frame := EncodeFrameHeader(nil, FrameHeader{Length: w.Len(), Type: FrameWindowUpdate, StreamID: streamID})
	return append(frame, w.Bytes()...)
}

// DecodeWindowUpdate parses a WINDOW_UPDATE frame's payload. Excess bytes
// past the mandatory 4 don't stop the increment from being read; only a
// payload short of 4 bytes aborts.
func DecodeWindowUpdate(h FrameHeader, payload []byte) (WindowUpdateFrame, error) {
	err := checkPayloadLength(payload, h.Length)
	if err == ErrLengthShortage {
		return WindowUpdateFrame{}, err
	}
	if len(payload) > h.Length {
		payload = payload[:h.Length]
	}
	if len(payload) < 4 {
		return WindowUpdateFrame{}, ErrLengthShortage
	}

	r := octet.NewReader(payload[:4])
	raw, _ := r.TakeUint32()
	if len(payload) != 4 {
		return WindowUpdateFrame{Increment: raw & 0x7fffffff}, ErrLengthExcess
	}
	return WindowUpdateFrame{Increment: raw & 0x7fffffff}, err
}
