package h3

import "github.com/go-httpwire/httpwire/qpack"

// HeadersFrame is the decoded view of a HEADERS frame (type 0x01): a
// zero-copy QPACK-encoded field section (section prefix + field lines).
type HeadersFrame struct {
	FieldBlock []byte
}

// EncodeHeaders builds one HEADERS frame around an already QPACK-encoded
// field section.
func EncodeHeaders(fieldBlock []byte) ([]byte, error) {
	return encodeFrame(FrameHeaders, fieldBlock)
}

// DecodeHeaders parses a HEADERS frame's payload. Trailing bytes past
// declaredLength are dropped rather than aborting the decode; a
// shortage still aborts, since there's no complete field block to
// return.
func DecodeHeaders(payload []byte, declaredLength uint64) (HeadersFrame, error) {
	lenErr := checkPayloadLength(payload, declaredLength)
	if lenErr == ErrLengthShortage {
		return HeadersFrame{}, lenErr
	}
	return HeadersFrame{FieldBlock: payload[:declaredLength]}, lenErr
}

// DecodeFields decodes FieldBlock's section prefix (Required Insert
// Count + Base) and then every field line in turn, invoking visit for
// each. totalInserts and dynamicTableCapacity describe the QPACK decoder
// state the caller maintains alongside its encoder-stream instruction
// processing; table resolves dynamic-table references.
func (hf HeadersFrame) DecodeFields(totalInserts uint64, dynamicTableCapacity int, table qpack.TableSource, visit qpack.SectionVisitor) error {
	_, base, n, err := qpack.DecodeSectionPrefix(hf.FieldBlock, totalInserts, dynamicTableCapacity)
	if err != nil {
		return err
	}

	rest := hf.FieldBlock[n:]
	for len(rest) > 0 {
		consumed, err := qpack.DecodeFieldLine(rest, base, table, visit)
		if err != nil {
			return err
		}
		rest = rest[consumed:]
	}
	return nil
}
