// Package hpack implements RFC 7541 HPACK: the combined static+dynamic
// indexing table, the seven field representations plus the dynamic-table-
// size-update instruction, and an encoder/decoder pair. The decoder drives
// a caller-supplied visitor callback per field line rather than building
// a result list itself, so callers can append to a plain list, promote
// pseudo-headers, or just audit-log without the decoder committing to one
// shape (see package message for ready-made sinks).
//
// Pooling follows the teacher's AcquireHPack/ReleaseHPack idiom
// (headerField.go / hpack.go), generalized to own a full Table rather than
// a flat map.
package hpack

import (
	"errors"
	"sync"

	"github.com/go-httpwire/httpwire/prefix"
)

// ErrBadIndex names a field representation that references a
// combined-address-space index that resolves to nothing. Decode does not
// return it: such a field is skipped and decoding continues.
var ErrBadIndex = errors.New("hpack: index not found")

// ErrInvalidRepresentation is returned when the first byte of a
// representation matches none of the defined bit patterns.
var ErrInvalidRepresentation = errors.New("hpack: invalid representation")

// DefaultDynamicTableSize is the RFC 7541 §4.2 default dynamic table
// capacity, in octets, before any SETTINGS_HEADER_TABLE_SIZE negotiation.
const DefaultDynamicTableSize = 4096

// HPACK owns one dynamic Table and encodes/decodes field blocks against it.
// One instance per connection direction: encoder state and decoder state
// are logically separate tables in RFC 7541, but since this library has no
// connection object of its own, callers own two HPACK instances (one per
// direction) the same way they'd own two *Table.
type HPACK struct {
	table *Table
}

var hpackPool = sync.Pool{
	New: func() interface{} {
		return &HPACK{table: NewTable(DefaultDynamicTableSize)}
	},
}

// AcquireHPACK gets an HPACK from the pool.
func AcquireHPACK() *HPACK {
	return hpackPool.Get().(*HPACK)
}

// ReleaseHPACK resets hp and returns it to the pool.
func ReleaseHPACK(hp *HPACK) {
	hp.Reset()
	hpackPool.Put(hp)
}

// Reset empties the dynamic table, restoring its default capacity.
func (hp *HPACK) Reset() {
	hp.table.Reset()
	hp.table.capacity = DefaultDynamicTableSize
}

// Table exposes the underlying indexing table, e.g. for inspecting size
// or applying a SETTINGS-driven capacity change directly.
func (hp *HPACK) Table() *Table {
	return hp.table
}

// AppendTableSizeUpdate appends a dynamic-table-size-update instruction
// (RFC 7541 §6.3) and applies the same new capacity to the local table, as
// an encoder must do before the peer observes the instruction.
func (hp *HPACK) AppendTableSizeUpdate(dst []byte, newCapacity int) []byte {
	start := len(dst)
	dst = prefix.EncodeInt(dst, 5, uint64(newCapacity))
	dst[start] |= 0x20
	hp.table.SetCapacity(newCapacity)
	return dst
}

// AppendField appends one field representation for name/value to dst,
// choosing Indexed / indexed-name-literal / new-name-literal based on what
// Table.Find reports, honoring policy for whether and how the field joins
// the dynamic table. preferHuffman is forwarded to any literal string this
// call emits.
func (hp *HPACK) AppendField(dst []byte, name, value string, policy IndexPolicy, preferHuffman bool) []byte {
	result, idx := hp.table.Find(name, value)

	if result == IndexBoth {
		start := len(dst)
		dst = prefix.EncodeInt(dst, 7, idx)
		dst[start] |= patternIndexed
		return dst
	}

	var prefixBits uint
	var pattern byte
	switch policy {
	case WithIncrementalIndexing:
		prefixBits, pattern = 6, patternIncrementalIndexing
	case WithoutIndexing:
		prefixBits, pattern = 4, patternWithoutIndexing
	case NeverIndexed:
		prefixBits, pattern = 4, patternNeverIndexed
	}

	start := len(dst)
	if result == IndexName {
		dst = prefix.EncodeInt(dst, prefixBits, idx)
	} else {
		dst = prefix.EncodeInt(dst, prefixBits, 0)
	}
	dst[start] |= pattern

	if result == IndexNone {
		dst = prefix.EncodeString(dst, 7, []byte(name), preferHuffman)
	}
	dst = prefix.EncodeString(dst, 7, []byte(value), preferHuffman)

	if policy == WithIncrementalIndexing {
		hp.table.Insert(name, value)
	}

	return dst
}

// Visitor is called once per decoded field line, in wire order.
type Visitor func(name, value []byte)

// Decode parses a complete field block from src, invoking visit for every
// field representation and applying dynamic-table-size-update instructions
// and incremental-indexing insertions to the table as it goes.
//
// A representation referencing an index outside the combined static+dynamic
// address space is never fatal: per spec.md's error-handling rules, a bad
// table reference causes that field to be skipped silently (visit is not
// called for it, and it never joins the dynamic table), but the cursor
// still advances past its encoded bytes so the rest of the block decodes
// normally.
func (hp *HPACK) Decode(src []byte, visit Visitor) error {
	for len(src) > 0 {
		kind := classify(src[0])

		switch kind {
		case kindIndexed:
			idx, n, err := prefix.DecodeInt(src, 7)
			if err != nil {
				return err
			}
			src = src[n:]

			if idx == 0 {
				continue
			}
			name, value, ok := hp.table.Lookup(idx)
			if !ok {
				continue
			}
			visit([]byte(name), []byte(value))

		case kindIncrementalIndexing, kindWithoutIndexing, kindNeverIndexed:
			var prefixBits uint
			switch kind {
			case kindIncrementalIndexing:
				prefixBits = 6
			default:
				prefixBits = 4
			}

			idx, n, err := prefix.DecodeInt(src, prefixBits)
			if err != nil {
				return err
			}
			src = src[n:]

			var name string
			badName := false
			if idx == 0 {
				nameBytes, nn, err := prefix.DecodeString(src, 7)
				if err != nil {
					return err
				}
				name = string(nameBytes)
				src = src[nn:]
			} else {
				resolved, _, ok := hp.table.Lookup(idx)
				if !ok {
					badName = true
				}
				name = resolved
			}

			// The value literal is always consumed, even when the name
			// index above was bad, so the cursor stays in sync for the
			// representations that follow.
			valueBytes, vn, err := prefix.DecodeString(src, 7)
			if err != nil {
				return err
			}
			src = src[vn:]

			if badName {
				continue
			}

			visit([]byte(name), valueBytes)

			if kind == kindIncrementalIndexing {
				hp.table.Insert(name, string(valueBytes))
			}

		case kindTableSizeUpdate:
			newCap, n, err := prefix.DecodeInt(src, 5)
			if err != nil {
				return err
			}
			hp.table.SetCapacity(int(newCap))
			src = src[n:]

		default:
			return ErrInvalidRepresentation
		}
	}

	return nil
}
