// Package qpack implements RFC 9204 QPACK: the disjoint static/dynamic
// indexing tables, encoder-stream and decoder-stream instruction codecs,
// and the field-section wire format (Required Insert Count + Base, five
// field representations). Unlike HPACK, QPACK's dynamic table updates
// travel on a side channel (the encoder stream) separate from the field
// sections that reference it, which is why this package exposes table
// mutation (Insert*) and section codec (AppendField*/DecodeFieldLine)
// as distinct operations a caller wires together over whatever streams
// it owns.
package qpack

import (
	"sync"
)

// DefaultDynamicTableCapacity mirrors hpack's default until a caller's
// SETTINGS exchange (QPACK_MAX_TABLE_CAPACITY) says otherwise.
const DefaultDynamicTableCapacity = 4096

// QPACK owns one dynamic Table and the bookkeeping an encoder or decoder
// needs around it: InsertedCount for Required Insert Count math, and a
// running count of what a decoder has acknowledged back to its peer.
type QPACK struct {
	table              *Table
	knownReceivedCount uint64
}

var qpackPool = sync.Pool{
	New: func() interface{} {
		return &QPACK{table: NewTable(DefaultDynamicTableCapacity)}
	},
}

// AcquireQPACK gets a QPACK from the pool.
func AcquireQPACK() *QPACK {
	return qpackPool.Get().(*QPACK)
}

// ReleaseQPACK resets q and returns it to the pool.
func ReleaseQPACK(q *QPACK) {
	q.Reset()
	qpackPool.Put(q)
}

// Reset empties the dynamic table, restarts its Insert Count at zero and
// clears acknowledgment bookkeeping, so a reset QPACK starts like a new one.
func (q *QPACK) Reset() {
	q.table.Reset()
	q.table.insertedCount = 0
	q.table.capacity = DefaultDynamicTableCapacity
	q.knownReceivedCount = 0
}

// Table exposes the underlying dynamic table.
func (q *QPACK) Table() *Table {
	return q.table
}

// ApplyEncoderInstruction applies one decoded encoder-stream instruction
// to the table (Set Dynamic Table Capacity, Insert*, Duplicate), as a
// decoder does upon receiving it. Returns the bytes consumed.
//
// An instruction whose table reference can't resolve (a name index outside
// the combined address space, or a Duplicate target already evicted) is
// skipped — the table is left unmodified for that instruction — rather
// than aborting the rest of the encoder stream: the instruction's bytes
// were already fully decoded by DecodeEncoderInstruction by the time the
// reference is checked, so the returned byte count stays correct either way.
func (q *QPACK) ApplyEncoderInstruction(src []byte) (int, error) {
	n, err := DecodeEncoderInstruction(src, EncoderInstructionVisitor{
		SetCapacity: func(capacity uint64) {
			q.table.SetCapacity(int(capacity))
		},
		InsertName: func(isStatic bool, nameIndex uint64, value []byte) {
			var name string
			if isStatic {
				if nameIndex >= uint64(len(staticTable)) {
					return
				}
				name = staticTable[nameIndex].name
			} else {
				resolved, _, ok := q.table.Lookup(q.table.InsertedCount() - 1 - nameIndex)
				if !ok {
					return
				}
				name = resolved
			}
			q.table.Insert(name, string(value))
		},
		InsertName2: func(name, value []byte) {
			q.table.Insert(string(name), string(value))
		},
		Duplicate: func(relativeIndex uint64) {
			absIndex := q.table.InsertedCount() - 1 - relativeIndex
			name, value, ok := q.table.Lookup(absIndex)
			if !ok {
				return
			}
			q.table.Insert(name, value)
		},
	})
	if err != nil {
		return 0, err
	}

	return n, nil
}

// KnownReceivedCount returns the Insert Count this decoder has last
// reported to the peer's encoder via Insert Count Increment / Section
// Acknowledgment, for a caller's decoder-stream writer to consume. This
// package does not own the decoder stream transport itself.
func (q *QPACK) KnownReceivedCount() uint64 {
	return q.knownReceivedCount
}

// AcknowledgeUpTo records that the peer has been told, via whatever
// decoder-stream instruction the caller sent, that this many insertions
// are known received.
func (q *QPACK) AcknowledgeUpTo(count uint64) {
	if count > q.knownReceivedCount {
		q.knownReceivedCount = count
	}
}

// AppendInsertInstruction appends an encoder-stream instruction that
// inserts name/value into the dynamic table, choosing Insert with Name
// Reference when the name is already indexed (static or dynamic) or
// Insert with Literal Name otherwise, and applies the insertion to the
// local table so a subsequent AppendField call in the same section can
// reference it. Callers send the returned bytes on the encoder stream
// before (or interleaved with) the field section that references the
// entry — QPACK keeps this off the section's own wire format.
func (q *QPACK) AppendInsertInstruction(dst []byte, name, value string, preferHuffman bool) []byte {
	if idx, ok := staticNameIndex[name]; ok {
		dst = AppendInsertWithNameReference(dst, true, idx, []byte(value), preferHuffman)
	} else if result, idx := q.table.Find(name, value); result == IndexName || result == IndexBoth {
		dst = AppendInsertWithNameReference(dst, false, q.table.InsertedCount()-idx-1, []byte(value), preferHuffman)
	} else {
		dst = AppendInsertWithLiteralName(dst, []byte(name), []byte(value), preferHuffman)
	}

	q.table.Insert(name, value)
	return dst
}

// AppendField appends one field representation for name/value, referencing
// whatever the static or dynamic table already holds (as of the current
// Insert Count) and falling back to a literal-with-literal-name
// representation otherwise. It never mutates the table itself — joining
// the dynamic table is AppendInsertInstruction's job, kept separate since
// real QPACK insertions travel on the encoder stream, not the section.
// policy only affects the N (never-index) bit on literal representations.
func (q *QPACK) AppendField(dst []byte, name, value string, policy IndexPolicy, preferHuffman bool) []byte {
	base := q.table.InsertedCount()

	if idx, ok := staticNameValueIndex[name+"\x00"+value]; ok {
		return AppendIndexed(dst, true, idx, base)
	}
	if result, idx := q.table.Find(name, value); result == IndexBoth {
		return AppendIndexed(dst, false, idx, base)
	}

	neverIndex := policy == NeverIndexed
	if idx, ok := staticNameIndex[name]; ok {
		return AppendLiteralWithNameReference(dst, true, neverIndex, idx, base, []byte(value), preferHuffman)
	}
	if result, idx := q.table.Find(name, value); result == IndexName {
		return AppendLiteralWithNameReference(dst, false, neverIndex, idx, base, []byte(value), preferHuffman)
	}

	return AppendLiteralWithLiteralName(dst, neverIndex, []byte(name), []byte(value), preferHuffman)
}

// IndexPolicy mirrors hpack.IndexPolicy: whether an encoded field should
// join the dynamic table, kept as a separate type since QPACK's "without
// indexing" and "incremental indexing" choice is made once per connection
// direction's encoder rather than varying the representation family the
// way HPACK's WithoutIndexing/NeverIndexed literal forms do (QPACK always
// uses the Literal-with-name-reference/Literal-with-literal-name forms for
// an unindexed field; only the N bit changes for NeverIndexed).
type IndexPolicy int

const (
	WithIncrementalIndexing IndexPolicy = iota
	WithoutIndexing
	NeverIndexed
)
