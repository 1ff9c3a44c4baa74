package h3

// DecodeFrame parses one frame (varint type, varint length, payload)
// from the front of src, returning the bytes consumed and a
// concretely-typed *Frame struct per the decoded type. Unknown types
// report ErrInvalidFrameType.
//
// payload is handed to the per-type decoder as everything past the
// frame header, not pre-sliced to length: this is what lets a per-type
// decoder's own ErrLengthExcess check fire when src holds more than one
// frame back to back, the same contract h2's DecodeFrame uses. total
// (the bytes this frame consumes) is always headerLen+length regardless
// of what the per-type decoder reports, since that's what the wire
// framing declares, independent of decode success.
func DecodeFrame(src []byte) (FrameType, interface{}, int, error) {
	typ, length, headerLen, err := DecodeFrameHeader(src)
	if err != nil {
		return 0, nil, 0, err
	}
	if uint64(len(src)-headerLen) < length {
		return typ, nil, 0, ErrLengthShortage
	}
	payload := src[headerLen:]
	total := headerLen + int(length)

	switch typ {
	case FrameData:
		f, err := DecodeData(payload, length)
		return typ, f, total, err
	case FrameHeaders:
		f, err := DecodeHeaders(payload, length)
		return typ, f, total, err
	case FrameCancelPush:
		f, err := DecodeCancelPush(payload, length)
		return typ, f, total, err
	case FrameSettings:
		f, err := DecodeSettings(payload, length)
		return typ, f, total, err
	case FramePushPromise:
		f, err := DecodePushPromise(payload, length)
		return typ, f, total, err
	case FrameGoAway:
		f, err := DecodeGoAway(payload, length)
		return typ, f, total, err
	case FrameMaxPushID:
		f, err := DecodeMaxPushID(payload, length)
		return typ, f, total, err
	default:
		return typ, nil, 0, ErrInvalidFrameType
	}
}
