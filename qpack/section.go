package qpack

import (
	"errors"

	"github.com/go-httpwire/httpwire/prefix"
)

// ErrInvalidRequiredInsertCount is returned when a decoded Required Insert
// Count value is out of the range RFC 9204 §4.5.1.1 allows.
var ErrInvalidRequiredInsertCount = errors.New("qpack: invalid required insert count")

// MaxEntries returns the "MaxEntries" value RFC 9204 §4.5.1.1 derives from
// the dynamic table's capacity: the maximum number of entries the table
// could hold if every entry were minimal-size (32 octets of overhead, 0
// octets of name+value).
func MaxEntries(dynamicTableCapacity int) uint64 {
	return uint64(dynamicTableCapacity) / 32
}

// EncodeRequiredInsertCount computes the wire encoding of reqInsertCount
// given maxEntries, per RFC 9204 §4.5.1.1.
func EncodeRequiredInsertCount(reqInsertCount uint64, maxEntries uint64) uint64 {
	if reqInsertCount == 0 {
		return 0
	}
	if maxEntries == 0 {
		return reqInsertCount + 1
	}
	return reqInsertCount%(2*maxEntries) + 1
}

// DecodeRequiredInsertCount reconstructs the actual Required Insert Count
// from its wire (modulo) encoding, given the decoder's current total
// Insert Count and maxEntries, per RFC 9204 §4.5.1.1.
func DecodeRequiredInsertCount(encoded uint64, totalInserts uint64, maxEntries uint64) (uint64, error) {
	if encoded == 0 {
		return 0, nil
	}

	fullRange := 2 * maxEntries
	if fullRange == 0 || encoded > fullRange {
		return 0, ErrInvalidRequiredInsertCount
	}

	maxValue := totalInserts + maxEntries
	maxWrapped := (maxValue / fullRange) * fullRange
	reqInsertCount := maxWrapped + encoded - 1

	if reqInsertCount > maxValue {
		if reqInsertCount < fullRange {
			return 0, ErrInvalidRequiredInsertCount
		}
		reqInsertCount -= fullRange
	}

	if reqInsertCount == 0 {
		return 0, ErrInvalidRequiredInsertCount
	}

	return reqInsertCount, nil
}

// AppendSectionPrefix appends the Required Insert Count + Base pair that
// begins every encoded field section (RFC 9204 §4.5.1).
func AppendSectionPrefix(dst []byte, reqInsertCount, base, maxEntries uint64) []byte {
	encodedRIC := EncodeRequiredInsertCount(reqInsertCount, maxEntries)
	dst = prefix.EncodeInt(dst, 8, encodedRIC)

	start := len(dst)
	if base >= reqInsertCount {
		delta := base - reqInsertCount
		dst = prefix.EncodeInt(dst, 7, delta)
	} else {
		delta := reqInsertCount - base - 1
		dst = prefix.EncodeInt(dst, 7, delta)
		dst[start] |= 0x80
	}

	return dst
}

// DecodeSectionPrefix parses the Required Insert Count + Base pair, given
// the decoder's current total Insert Count and the dynamic table's current
// capacity (to compute maxEntries). Returns the actual Required Insert
// Count, the actual Base, and the number of bytes consumed.
func DecodeSectionPrefix(src []byte, totalInserts uint64, dynamicTableCapacity int) (reqInsertCount, base uint64, consumed int, err error) {
	maxEntries := MaxEntries(dynamicTableCapacity)

	encodedRIC, n, err := prefix.DecodeInt(src, 8)
	if err != nil {
		return 0, 0, 0, err
	}

	reqInsertCount, err = DecodeRequiredInsertCount(encodedRIC, totalInserts, maxEntries)
	if err != nil {
		return 0, 0, 0, err
	}

	rest := src[n:]
	if len(rest) == 0 {
		return 0, 0, 0, ErrTruncated
	}

	signSet := rest[0]&0x80 != 0
	delta, dn, err := prefix.DecodeInt(rest, 7)
	if err != nil {
		return 0, 0, 0, err
	}

	if signSet {
		base = reqInsertCount - delta - 1
	} else {
		base = reqInsertCount + delta
	}

	return reqInsertCount, base, n + dn, nil
}
