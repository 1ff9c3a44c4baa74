package h2

import (
	"errors"

	"github.com/go-httpwire/httpwire/octet"
)

// Well-known SETTINGS identifiers, RFC 7540 §6.5.2.
const (
	SettingHeaderTableSize      uint16 = 0x1
	SettingEnablePush           uint16 = 0x2
	SettingMaxConcurrentStreams uint16 = 0x3
	SettingInitialWindowSize    uint16 = 0x4
	SettingMaxFrameSize         uint16 = 0x5
	SettingMaxHeaderListSize    uint16 = 0x6
)

// ErrMalformedSettings is returned when a SETTINGS payload's length is
// not a multiple of 6 (one (u16, u32) pair per setting).
var ErrMalformedSettings = errors.New("h2: settings payload not a multiple of 6")

// Setting is one (identifier, value) pair.
type Setting struct {
	ID    uint16
	Value uint32
}

// SettingsFrame is the decoded view of a SETTINGS frame (type 0x04).
type SettingsFrame struct {
	Ack      bool
	Settings []Setting
}

// EncodeSettings builds one SETTINGS frame. SETTINGS always targets
// stream 0. An ACK frame carries no settings.
func EncodeSettings(ack bool, settings []Setting) []byte {
	w := octet.NewWriter()
	if !ack {
		for _, s := range settings {
			w.PutUint16(s.ID)
			w.PutUint32(s.Value)
		}
	}

	flags := FrameFlags(0)
	if ack {
		flags |= FlagAck
	}
	frame := EncodeFrameHeader(nil, FrameHeader{Length: w.Len(), Type: FrameSettings, Flags: flags})
	return append(frame, w.Bytes()...)
}

// DecodeSettings parses a SETTINGS frame's payload. Trailing bytes past
// h.Length (ErrLengthExcess) are dropped before decoding rather than
// aborting, the same as DecodeData; a short payload still aborts.
func DecodeSettings(h FrameHeader, payload []byte) (SettingsFrame, error) {
	err := checkPayloadLength(payload, h.Length)
	if err == ErrLengthShortage {
		return SettingsFrame{}, err
	}
	if len(payload) > h.Length {
		payload = payload[:h.Length]
	}

	sf := SettingsFrame{Ack: h.Flags&FlagAck != 0}
	if sf.Ack {
		return sf, err
	}
	if len(payload)%6 != 0 {
		return SettingsFrame{}, ErrMalformedSettings
	}

	r := octet.NewReader(payload)
	for r.Remaining() > 0 {
		id, _ := r.TakeUint16()
		value, _ := r.TakeUint32()
		sf.Settings = append(sf.Settings, Setting{ID: id, Value: value})
	}
	return sf, err
}
