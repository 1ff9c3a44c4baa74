package h2

// DataFrame is the decoded view of a DATA frame (type 0x00): a
// zero-copy slice into the data, with padding already stripped.
type DataFrame struct {
	Padded    bool
	PadLength uint8
	Data      []byte
}

func capPadding(padLength uint8, prefix, contentLen int) uint8 {
	max := MaxFrameLength - prefix - contentLen
	if max < 0 {
		max = 0
	}
	if int(padLength) > max {
		return uint8(max)
	}
	return padLength
}

// EncodeData builds one DATA frame for streamID. If data is too large
// to fit in a single frame, it returns the frame covering as much of
// data as fits and the remaining excess for the caller to re-encode
// into a subsequent DATA frame (the assist package's multi-DATA helper
// automates this loop). Padding is only honored on the final fragment,
// since a fragment with more data still to come can't meaningfully pad.
func EncodeData(streamID uint32, endStream bool, padLength uint8, data []byte) (frame, excess []byte) {
	fits, excess := splitOverflow(data, boolToInt(padLength > 0))

	padded := padLength > 0 && len(excess) == 0
	if padded {
		padLength = capPadding(padLength, 1, len(fits))
	} else {
		padLength = 0
	}

	payload := make([]byte, 0, boolToInt(padded)+len(fits)+int(padLength))
	if padded {
		payload = append(payload, padLength)
	}
	payload = append(payload, fits...)
	payload = append(payload, make([]byte, padLength)...)

	flags := FrameFlags(0)
	if endStream {
		flags |= FlagEndStream
	}
	if padded {
		flags |= FlagPadded
	}

	frame = EncodeFrameHeader(nil, FrameHeader{Length: len(payload), Type: FrameData, Flags: flags, StreamID: streamID})
	frame = append(frame, payload...)
	return frame, excess
}

// DecodeData parses a DATA frame's payload, given its already-decoded
// header. A payload longer than h.Length (ErrLengthExcess) doesn't stop
// decoding: the excess is trailing garbage past an otherwise well-formed
// frame, so the payload is truncated to h.Length and the frame is decoded
// and returned normally alongside the non-fatal error, leaving its
// accessors usable. A payload shorter than h.Length (ErrLengthShortage)
// has no safe reading to fall back to, so it still aborts with a
// zero-value frame.
func DecodeData(h FrameHeader, payload []byte) (DataFrame, error) {
	err := checkPayloadLength(payload, h.Length)
	if err == ErrLengthShortage {
		return DataFrame{}, err
	}
	if len(payload) > h.Length {
		payload = payload[:h.Length]
	}

	df := DataFrame{}
	if h.Flags&FlagPadded != 0 {
		if len(payload) < 1 {
			return DataFrame{}, ErrLengthShortage
		}
		df.Padded = true
		df.PadLength = payload[0]
		payload = payload[1:]
		if int(df.PadLength) > len(payload) {
			return DataFrame{}, ErrLengthShortage
		}
		df.Data = payload[:len(payload)-int(df.PadLength)]
		return df, err
	}

	df.Data = payload
	return df, err
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
