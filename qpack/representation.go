package qpack

import (
	"errors"

	"github.com/go-httpwire/httpwire/prefix"
)

// ErrInvalidRepresentation is returned when a field line's first byte
// matches none of the five field-representation patterns.
var ErrInvalidRepresentation = errors.New("qpack: invalid representation")

// field-representation bit patterns, RFC 9204 §4.5.
const (
	reprIndexed                 = 0x80 // 1Txxxxxx, 6-bit prefix
	reprIndexedPostBase         = 0x10 // 0001xxxx, 4-bit prefix
	reprLiteralNameRef          = 0x40 // 01NTxxxx, 4-bit prefix
	reprLiteralPostBaseNameRef  = 0x00 // 0000Nxxx, 3-bit prefix
	reprLiteralLiteralName      = 0x20 // 001NHxxx, 3-bit prefix
)

type fieldKind int

const (
	fieldIndexed fieldKind = iota
	fieldIndexedPostBase
	fieldLiteralNameRef
	fieldLiteralPostBaseNameRef
	fieldLiteralLiteralName
	fieldInvalid
)

func classifyField(c byte) fieldKind {
	switch {
	case c&0x80 == 0x80:
		return fieldIndexed
	case c&0xc0 == 0x40:
		return fieldLiteralNameRef
	case c&0xe0 == 0x20:
		return fieldLiteralLiteralName
	case c&0xf0 == 0x10:
		return fieldIndexedPostBase
	case c&0xf0 == 0x00:
		return fieldLiteralPostBaseNameRef
	default:
		return fieldInvalid
	}
}

// AppendIndexed appends an Indexed field line referencing either the
// static table (isStatic=true, absIndex is the static index directly) or
// the dynamic table (absIndex must be < base).
func AppendIndexed(dst []byte, isStatic bool, absIndex, base uint64) []byte {
	start := len(dst)
	var wireIndex uint64
	if isStatic {
		wireIndex = absIndex
	} else {
		wireIndex = base - absIndex - 1
	}
	dst = prefix.EncodeInt(dst, 6, wireIndex)
	dst[start] |= reprIndexed
	if isStatic {
		dst[start] |= 0x40
	}
	return dst
}

// AppendIndexedPostBase appends an Indexed field line for a dynamic entry
// inserted after base (absIndex >= base).
func AppendIndexedPostBase(dst []byte, absIndex, base uint64) []byte {
	start := len(dst)
	dst = prefix.EncodeInt(dst, 4, absIndex-base)
	dst[start] |= reprIndexedPostBase
	return dst
}

// AppendLiteralWithNameReference appends a Literal field line whose name
// is indexed (static or dynamic, absIndex < base for dynamic) and whose
// value is a literal string.
func AppendLiteralWithNameReference(dst []byte, isStatic, neverIndex bool, absIndex, base uint64, value []byte, preferHuffman bool) []byte {
	start := len(dst)
	var wireIndex uint64
	if isStatic {
		wireIndex = absIndex
	} else {
		wireIndex = base - absIndex - 1
	}
	dst = prefix.EncodeInt(dst, 4, wireIndex)
	dst[start] |= reprLiteralNameRef
	if neverIndex {
		dst[start] |= 0x20
	}
	if isStatic {
		dst[start] |= 0x10
	}
	return prefix.EncodeString(dst, 7, value, preferHuffman)
}

// AppendLiteralWithPostBaseNameReference appends a Literal field line
// whose name is a dynamic entry inserted after base.
func AppendLiteralWithPostBaseNameReference(dst []byte, neverIndex bool, absIndex, base uint64, value []byte, preferHuffman bool) []byte {
	start := len(dst)
	dst = prefix.EncodeInt(dst, 3, absIndex-base)
	dst[start] |= reprLiteralPostBaseNameRef
	if neverIndex {
		dst[start] |= 0x08
	}
	return prefix.EncodeString(dst, 7, value, preferHuffman)
}

// AppendLiteralWithLiteralName appends a Literal field line with both a
// literal name and literal value.
func AppendLiteralWithLiteralName(dst []byte, neverIndex bool, name, value []byte, preferHuffman bool) []byte {
	start := len(dst)
	dst = prefix.EncodeString(dst, 3, name, preferHuffman)
	dst[start] |= reprLiteralLiteralName
	if neverIndex {
		dst[start] |= 0x10
	}
	return prefix.EncodeString(dst, 7, value, preferHuffman)
}

// SectionVisitor is invoked once per decoded field in a section, with the
// resolved name and value already looked up from whichever table the wire
// reference pointed at.
type SectionVisitor func(name, value []byte)

// TableSource resolves table references while decoding a field section.
// The caller supplies a snapshot of the dynamic table consistent with the
// section's Required Insert Count having already been satisfied.
type TableSource interface {
	Lookup(absIndex uint64) (name, value string, ok bool)
}

// DecodeFieldLine decodes one field-representation line from the front of
// src, given the section's base, and invokes visit with the resolved
// name/value. Returns the number of bytes consumed.
//
// A bad table reference (static index out of range, or a dynamic index the
// table can't resolve) never aborts the section: per spec.md's error rules
// the field is skipped (visit is not called for it) but the line's bytes
// are still fully consumed — including a name-reference line's trailing
// value literal, which has to be decoded regardless so the cursor lands on
// the next field line rather than mid-representation.
func DecodeFieldLine(src []byte, base uint64, table TableSource, visit SectionVisitor) (int, error) {
	if len(src) == 0 {
		return 0, ErrTruncated
	}

	switch classifyField(src[0]) {
	case fieldIndexed:
		isStatic := src[0]&0x40 != 0
		idx, n, err := prefix.DecodeInt(src, 6)
		if err != nil {
			return 0, err
		}
		name, value, ok := resolveIndexed(isStatic, idx, base, table)
		if !ok {
			return n, nil
		}
		visit([]byte(name), []byte(value))
		return n, nil

	case fieldIndexedPostBase:
		idx, n, err := prefix.DecodeInt(src, 4)
		if err != nil {
			return 0, err
		}
		name, value, ok := table.Lookup(base + idx)
		if !ok {
			return n, nil
		}
		visit([]byte(name), []byte(value))
		return n, nil

	case fieldLiteralNameRef:
		isStatic := src[0]&0x10 != 0
		idx, n, err := prefix.DecodeInt(src, 4)
		if err != nil {
			return 0, err
		}
		name, _, ok := resolveIndexed(isStatic, idx, base, table)
		value, vn, err := prefix.DecodeString(src[n:], 7)
		if err != nil {
			return 0, err
		}
		if !ok {
			return n + vn, nil
		}
		visit([]byte(name), value)
		return n + vn, nil

	case fieldLiteralPostBaseNameRef:
		idx, n, err := prefix.DecodeInt(src, 3)
		if err != nil {
			return 0, err
		}
		name, _, ok := table.Lookup(base + idx)
		value, vn, err := prefix.DecodeString(src[n:], 7)
		if err != nil {
			return 0, err
		}
		if !ok {
			return n + vn, nil
		}
		visit([]byte(name), value)
		return n + vn, nil

	case fieldLiteralLiteralName:
		name, n, err := prefix.DecodeString(src, 3)
		if err != nil {
			return 0, err
		}
		value, vn, err := prefix.DecodeString(src[n:], 7)
		if err != nil {
			return 0, err
		}
		visit(name, value)
		return n + vn, nil

	default:
		return 0, ErrInvalidRepresentation
	}
}

func resolveIndexed(isStatic bool, wireIndex, base uint64, table TableSource) (name, value string, ok bool) {
	if isStatic {
		if wireIndex >= uint64(len(staticTable)) {
			return "", "", false
		}
		e := staticTable[wireIndex]
		return e.name, e.value, true
	}
	if wireIndex >= base {
		return "", "", false
	}
	return table.Lookup(base - wireIndex - 1)
}
