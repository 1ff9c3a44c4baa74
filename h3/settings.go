package h3

import "github.com/go-httpwire/httpwire/varint"

// Well-known SETTINGS identifiers, RFC 9114 §7.2.4.1 / RFC 9204 §7.2.
const (
	SettingQPACKMaxTableCapacity uint64 = 0x1
	SettingMaxFieldSectionSize   uint64 = 0x6
	SettingQPACKBlockedStreams   uint64 = 0x7
)

// Setting is one (identifier, value) pair.
type Setting struct {
	ID    uint64
	Value uint64
}

// SettingsFrame is the decoded view of a SETTINGS frame (type 0x04): a
// sequence of (varint id, varint value) pairs.
type SettingsFrame struct {
	Settings []Setting
}

// EncodeSettings builds one SETTINGS frame.
func EncodeSettings(settings []Setting) ([]byte, error) {
	var payload []byte
	for _, s := range settings {
		var err error
		payload, err = varint.Encode(payload, s.ID)
		if err != nil {
			return nil, err
		}
		payload, err = varint.Encode(payload, s.Value)
		if err != nil {
			return nil, err
		}
	}
	return encodeFrame(FrameSettings, payload)
}

// DecodeSettings parses a SETTINGS frame's payload. Bytes past
// declaredLength are dropped before decoding rather than aborting the
// whole frame; a shortage still aborts.
func DecodeSettings(payload []byte, declaredLength uint64) (SettingsFrame, error) {
	lenErr := checkPayloadLength(payload, declaredLength)
	if lenErr == ErrLengthShortage {
		return SettingsFrame{}, lenErr
	}
	rest := payload[:declaredLength]

	var sf SettingsFrame
	for len(rest) > 0 {
		id, n1, err := varint.Decode(rest)
		if err != nil {
			return SettingsFrame{}, err
		}
		value, n2, err := varint.Decode(rest[n1:])
		if err != nil {
			return SettingsFrame{}, err
		}
		sf.Settings = append(sf.Settings, Setting{ID: id, Value: value})
		rest = rest[n1+n2:]
	}
	return sf, lenErr
}
