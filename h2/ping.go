package h2

// PingFrame is the decoded view of a PING frame (type 0x06): 8 bytes of
// opaque data, echoed back by an ACK.
type PingFrame struct {
	Ack  bool
	Data [8]byte
}

// EncodePing builds one PING frame.
func EncodePing(ack bool, data [8]byte) []byte {
	flags := FrameFlags(0)
	if ack {
		flags |= FlagAck
	}
	frame := EncodeFrameHeader(nil, FrameHeader{Length: 8, Type: FramePing, Flags: flags})
	return append(frame, data[:]...)
}

// DecodePing parses a PING frame's payload. Excess bytes past the
// mandatory 8 don't stop the opaque data from being read; only a
// payload short of 8 bytes aborts.
func DecodePing(h FrameHeader, payload []byte) (PingFrame, error) {
	err := checkPayloadLength(payload, h.Length)
	if err == ErrLengthShortage {
		return PingFrame{}, err
	}
	if len(payload) > h.Length {
		payload = payload[:h.Length]
	}
	if len(payload) < 8 {
		return PingFrame{}, ErrLengthShortage
	}

	pf := PingFrame{Ack: h.Flags&FlagAck != 0}
	copy(pf.Data[:], payload[:8])
	if len(payload) != 8 {
		return pf, ErrLengthExcess
	}
	return pf, err
}
