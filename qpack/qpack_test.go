package qpack

import (
	"bytes"
	"testing"
)

func TestStaticTableLookup(t *testing.T) {
	name, value, ok := staticTable[17].name, staticTable[17].value, true
	if !ok || name != ":method" || value != "GET" {
		t.Fatalf("static[17] = %q=%q", name, value)
	}
	if idx, ok := staticNameValueIndex[":status\x00200"]; !ok || idx != 25 {
		t.Fatalf("static(:status,200) index = %d, %v, want 25", idx, ok)
	}
}

func TestDynamicTableInsertAndLookup(t *testing.T) {
	tbl := NewTable(4096)
	i0 := tbl.Insert("x-a", "1")
	i1 := tbl.Insert("x-b", "2")

	if i0 != 0 || i1 != 1 {
		t.Fatalf("absolute indices = %d, %d", i0, i1)
	}
	if tbl.InsertedCount() != 2 {
		t.Fatalf("insertedCount = %d", tbl.InsertedCount())
	}

	name, value, ok := tbl.Lookup(0)
	if !ok || name != "x-a" || value != "1" {
		t.Fatalf("lookup(0) = %q=%q, %v", name, value, ok)
	}
}

func TestDynamicTableEvictionKeepsInsertedCount(t *testing.T) {
	tbl := NewTable(100)
	tbl.Insert("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", "x") // > capacity, evicted
	tbl.Insert("b", "1")

	if tbl.InsertedCount() != 2 {
		t.Fatalf("insertedCount = %d, want 2 (lifetime counter, not occupancy)", tbl.InsertedCount())
	}
	if tbl.Len() != 1 {
		t.Fatalf("len = %d, want 1", tbl.Len())
	}
	if _, _, ok := tbl.Lookup(0); ok {
		t.Fatal("evicted entry should not resolve")
	}
}

func TestRequiredInsertCountRoundTrip(t *testing.T) {
	maxEntries := uint64(100)
	cases := []uint64{0, 1, 37, 199, 200, 201, 1000}

	for _, ric := range cases {
		encoded := EncodeRequiredInsertCount(ric, maxEntries)
		got, err := DecodeRequiredInsertCount(encoded, ric, maxEntries)
		if err != nil {
			t.Fatalf("ric=%d: %v", ric, err)
		}
		if got != ric {
			t.Fatalf("ric=%d round trip = %d", ric, got)
		}
	}
}

func TestSectionPrefixRoundTripBaseAboveRIC(t *testing.T) {
	enc := AppendSectionPrefix(nil, 5, 8, 100)
	ric, base, n, err := DecodeSectionPrefix(enc, 5, 3200)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if ric != 5 || base != 8 || n != len(enc) {
		t.Fatalf("ric=%d base=%d n=%d", ric, base, n)
	}
}

func TestSectionPrefixRoundTripBaseBelowRIC(t *testing.T) {
	enc := AppendSectionPrefix(nil, 10, 4, 100)
	ric, base, n, err := DecodeSectionPrefix(enc, 10, 3200)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if ric != 10 || base != 4 || n != len(enc) {
		t.Fatalf("ric=%d base=%d n=%d", ric, base, n)
	}
}

func TestFieldSectionRoundTripStaticIndexed(t *testing.T) {
	base := uint64(0)
	enc := AppendIndexed(nil, true, 17, base) // :method: GET

	var gotName, gotValue []byte
	n, err := DecodeFieldLine(enc, base, NewTable(0), func(name, value []byte) {
		gotName = name
		gotValue = value
	})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if n != len(enc) {
		t.Fatalf("consumed = %d, want %d", n, len(enc))
	}
	if string(gotName) != ":method" || string(gotValue) != "GET" {
		t.Fatalf("decoded = %q=%q", gotName, gotValue)
	}
}

func TestFieldSectionRoundTripDynamicIndexed(t *testing.T) {
	tbl := NewTable(4096)
	tbl.Insert("x-request-id", "abc123")
	base := tbl.InsertedCount()

	enc := AppendIndexed(nil, false, 0, base)

	var gotName, gotValue []byte
	_, err := DecodeFieldLine(enc, base, tbl, func(name, value []byte) {
		gotName = name
		gotValue = value
	})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if string(gotName) != "x-request-id" || string(gotValue) != "abc123" {
		t.Fatalf("decoded = %q=%q", gotName, gotValue)
	}
}

func TestFieldSectionRoundTripLiteralWithLiteralName(t *testing.T) {
	enc := AppendLiteralWithLiteralName(nil, false, []byte("x-custom"), []byte("value-here"), true)

	var gotName, gotValue []byte
	_, err := DecodeFieldLine(enc, 0, NewTable(0), func(name, value []byte) {
		gotName = name
		gotValue = value
	})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if string(gotName) != "x-custom" || string(gotValue) != "value-here" {
		t.Fatalf("decoded = %q=%q", gotName, gotValue)
	}
}

func TestQPACKInsertInstructionThenIndexedField(t *testing.T) {
	q := AcquireQPACK()
	defer ReleaseQPACK(q)

	// Literal encode before the entry is in the table.
	litEnc := q.AppendField(nil, "x-trace", "trace-1", WithoutIndexing, false)
	if q.Table().Len() != 0 {
		t.Fatalf("AppendField must not mutate the table, len = %d", q.Table().Len())
	}

	// Encoder-stream side channel inserts the entry.
	instr := q.AppendInsertInstruction(nil, "x-trace", "trace-1", false)
	if q.Table().Len() != 1 {
		t.Fatalf("table len = %d, want 1 after AppendInsertInstruction", q.Table().Len())
	}
	if len(instr) == 0 {
		t.Fatal("expected a non-empty encoder instruction")
	}

	// Now the section encode can reference it by index, shorter than the
	// literal encoding above.
	idxEnc := q.AppendField(nil, "x-trace", "trace-1", WithIncrementalIndexing, false)
	if len(idxEnc) >= len(litEnc) {
		t.Fatalf("indexed encode (%d bytes) should be shorter than literal (%d bytes)", len(idxEnc), len(litEnc))
	}

	var gotName, gotValue []byte
	_, err := DecodeFieldLine(idxEnc, q.Table().InsertedCount(), q.Table(), func(name, value []byte) {
		gotName, gotValue = name, value
	})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if string(gotName) != "x-trace" || string(gotValue) != "trace-1" {
		t.Fatalf("decoded = %q=%q", gotName, gotValue)
	}
}

// QPACK encoder-stream seed scenario: "3f bd 01 c0 0f 77...", a Set
// Dynamic Table Capacity instruction (220) followed by two Insert with
// Name Reference instructions against the static table (T=1):
// :authority = www.example.com, then :path = /sample/path. The spec's
// own listing truncates the vector with "..."; the bytes after "c0 0f
// 77" are the rest of "www.example.com" (plain, not Huffman-coded,
// matching the identical literal in the HPACK C.3.1 vector) followed by
// the second instruction, reconstructed here from the §4.3 instruction
// encoding rather than guessed at.
func TestKnownVectorEncoderStreamInsertWithNameReference(t *testing.T) {
	enc := AppendSetDynamicTableCapacity(nil, 220)
	if !bytes.Equal(enc, []byte{0x3f, 0xbd, 0x01}) {
		t.Fatalf("set capacity encoding = % x, want 3f bd 01", enc)
	}
	enc = AppendInsertWithNameReference(enc, true, 0, []byte("www.example.com"), false)
	enc = AppendInsertWithNameReference(enc, true, 1, []byte("/sample/path"), false)

	want := []byte{0x3f, 0xbd, 0x01, 0xc0, 0x0f,
		0x77, 0x77, 0x77, 0x2e, 0x65, 0x78, 0x61, 0x6d, 0x70, 0x6c, 0x65, 0x2e, 0x63, 0x6f, 0x6d,
		0xc1, 0x0c,
		0x2f, 0x73, 0x61, 0x6d, 0x70, 0x6c, 0x65, 0x2f, 0x70, 0x61, 0x74, 0x68}
	if !bytes.Equal(enc, want) {
		t.Fatalf("encoded = % x, want % x", enc, want)
	}

	q := AcquireQPACK()
	defer ReleaseQPACK(q)

	rest := enc
	for len(rest) > 0 {
		n, err := q.ApplyEncoderInstruction(rest)
		if err != nil {
			t.Fatalf("apply: %v", err)
		}
		rest = rest[n:]
	}

	if q.Table().Capacity() != 220 {
		t.Fatalf("capacity = %d, want 220", q.Table().Capacity())
	}
	name, value, ok := q.Table().Lookup(0)
	if !ok || name != ":authority" || value != "www.example.com" {
		t.Fatalf("entry 0 = %q=%q, %v", name, value, ok)
	}
	name, value, ok = q.Table().Lookup(1)
	if !ok || name != ":path" || value != "/sample/path" {
		t.Fatalf("entry 1 = %q=%q, %v", name, value, ok)
	}
	if q.Table().Size() != 106 {
		t.Fatalf("table size = %d, want 106", q.Table().Size())
	}
}

func TestEncoderInstructionRoundTripInsertWithNameReference(t *testing.T) {
	enc := AppendInsertWithNameReference(nil, true, 17, []byte("GET"), false)

	var gotStatic bool
	var gotIdx uint64
	var gotValue []byte
	n, err := DecodeEncoderInstruction(enc, EncoderInstructionVisitor{
		InsertName: func(isStatic bool, nameIndex uint64, value []byte) {
			gotStatic, gotIdx, gotValue = isStatic, nameIndex, value
		},
	})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if n != len(enc) || !gotStatic || gotIdx != 17 || string(gotValue) != "GET" {
		t.Fatalf("got static=%v idx=%d value=%q", gotStatic, gotIdx, gotValue)
	}
}

func TestEncoderInstructionRoundTripSetCapacity(t *testing.T) {
	enc := AppendSetDynamicTableCapacity(nil, 8192)

	var got uint64
	n, err := DecodeEncoderInstruction(enc, EncoderInstructionVisitor{
		SetCapacity: func(capacity uint64) { got = capacity },
	})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if n != len(enc) || got != 8192 {
		t.Fatalf("got = %d, n = %d", got, n)
	}
}

func TestDecoderInstructionRoundTripInsertCountIncrement(t *testing.T) {
	enc := AppendInsertCountIncrement(nil, 42)

	var got uint64
	_, err := DecodeDecoderInstruction(enc, DecoderInstructionVisitor{
		CountIncr: func(increment uint64) { got = increment },
	})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got != 42 {
		t.Fatalf("got = %d, want 42", got)
	}
}

func TestApplyEncoderInstructionInsertsAndDuplicates(t *testing.T) {
	q := AcquireQPACK()
	defer ReleaseQPACK(q)

	insertLit := AppendInsertWithLiteralName(nil, []byte("x-one"), []byte("v1"), false)
	if _, err := q.ApplyEncoderInstruction(insertLit); err != nil {
		t.Fatalf("apply insert: %v", err)
	}
	if q.Table().Len() != 1 {
		t.Fatalf("len = %d, want 1", q.Table().Len())
	}

	dup := AppendDuplicate(nil, 0)
	if _, err := q.ApplyEncoderInstruction(dup); err != nil {
		t.Fatalf("apply duplicate: %v", err)
	}
	if q.Table().Len() != 2 {
		t.Fatalf("len = %d, want 2 after duplicate", q.Table().Len())
	}
	name, value, ok := q.Table().Lookup(1)
	if !ok || name != "x-one" || value != "v1" {
		t.Fatalf("duplicated entry = %q=%q, %v", name, value, ok)
	}
}
