// Package prefix implements the RFC 7541 §5.1/§5.2 prefixed-integer and
// string-literal primitives shared by HPACK's field representations and
// QPACK's literal encodings (QPACK varies only the prefix width).
package prefix

import (
	"errors"

	"github.com/go-httpwire/httpwire/huffman"
)

// ErrTruncated is returned when fewer bytes remain than the encoding requires.
var ErrTruncated = errors.New("prefix: truncated input")

// ErrOverflow is returned when a continued integer would overflow uint64.
var ErrOverflow = errors.New("prefix: integer overflow")

// EncodeInt appends i to dst using an n-bit prefix (n in 1..=8). The bits
// above the prefix in the first appended byte are written as zero; the
// caller is responsible for OR-ing flag bits into that first appended byte
// (dst[len(dst)] as it was before the call) if flags share it with the prefix.
func EncodeInt(dst []byte, n uint, i uint64) []byte {
	max := uint64(1)<<n - 1

	if i < max {
		return append(dst, byte(i))
	}

	dst = append(dst, byte(max))
	i -= max

	for i >= 128 {
		dst = append(dst, byte(i&0x7f|0x80))
		i >>= 7
	}

	return append(dst, byte(i))
}

// DecodeInt reads an n-bit-prefixed integer from the front of b. It
// returns the value and the number of bytes consumed.
func DecodeInt(b []byte, n uint) (value uint64, consumed int, err error) {
	if len(b) == 0 {
		return 0, 0, ErrTruncated
	}

	max := uint64(1)<<n - 1
	value = uint64(b[0]) & max

	if value < max {
		return value, 1, nil
	}

	var shift uint
	i := 1
	for {
		if i >= len(b) {
			return 0, 0, ErrTruncated
		}

		c := b[i]
		i++

		if shift >= 63 {
			return 0, 0, ErrOverflow
		}

		value += uint64(c&0x7f) << shift

		if c&0x80 == 0 {
			break
		}

		shift += 7
	}

	return value, i, nil
}

// EncodeString appends a length-prefixed string literal to dst using an
// n-bit length prefix. If preferHuffman, the value is Huffman-encoded
// first and the H bit is set in the first byte of the length prefix, at
// bit n, just above the n-bit prefix (the caller must not also set that
// bit independently).
func EncodeString(dst []byte, n uint, value []byte, preferHuffman bool) []byte {
	if !preferHuffman {
		dst = EncodeInt(dst, n, uint64(len(value)))
		return append(dst, value...)
	}

	encLen := huffman.EncodedLen(value)
	start := len(dst)
	dst = EncodeInt(dst, n, uint64(encLen))
	dst[start] |= 1 << (n)
	return huffman.Encode(dst, value)
}

// DecodeString reads a length-prefixed string literal with an n-bit length
// prefix, Huffman-decoding it if the H bit is set. Returns the decoded
// value and the number of bytes consumed from b.
func DecodeString(b []byte, n uint) (value []byte, consumed int, err error) {
	if len(b) == 0 {
		return nil, 0, ErrTruncated
	}

	isHuffman := b[0]&(1<<n) != 0

	length, intLen, err := DecodeInt(b, n)
	if err != nil {
		return nil, 0, err
	}

	if uint64(len(b)-intLen) < length {
		return nil, 0, ErrTruncated
	}

	raw := b[intLen : intLen+int(length)]
	consumed = intLen + int(length)

	if !isHuffman {
		value = append(value, raw...)
		return value, consumed, nil
	}

	value, err = huffman.Decode(nil, raw)
	if err != nil {
		return nil, 0, err
	}

	return value, consumed, nil
}
