package h3

// DataFrame is the decoded view of a DATA frame (type 0x00): a
// zero-copy slice of raw payload bytes.
type DataFrame struct {
	Data []byte
}

// EncodeData builds one DATA frame.
func EncodeData(data []byte) ([]byte, error) {
	return encodeFrame(FrameData, data)
}

// DecodeData parses a DATA frame's payload. Bytes past declaredLength
// (ErrLengthExcess) are dropped and the frame is still returned
// populated, rather than discarded; a payload short of declaredLength
// (ErrLengthShortage) has nothing valid to slice, so it still aborts.
func DecodeData(payload []byte, declaredLength uint64) (DataFrame, error) {
	err := checkPayloadLength(payload, declaredLength)
	if err == ErrLengthShortage {
		return DataFrame{}, err
	}
	return DataFrame{Data: payload[:declaredLength]}, err
}
