package hpack

// IndexPolicy selects how an encoded field interacts with the dynamic
// table, independent of whether the encoder found the name (or name+value)
// already indexed. This cuts RFC 7541's seven field representations down
// to two orthogonal axes: policy, and what Table.Find reported.
type IndexPolicy int

const (
	// WithIncrementalIndexing inserts the field into the dynamic table
	// after emitting it.
	WithIncrementalIndexing IndexPolicy = iota
	// WithoutIndexing emits the field without touching the dynamic table.
	WithoutIndexing
	// NeverIndexed emits the field marked so intermediaries must preserve
	// the same representation (e.g. for sensitive values); it never
	// touches the dynamic table.
	NeverIndexed
)

// prefix bit patterns for the four representation families, RFC 7541
// §6.1-§6.3.
const (
	patternIndexed             = 0x80 // 1xxxxxxx, 7-bit prefix
	patternIncrementalIndexing = 0x40 // 01xxxxxx, 6-bit prefix
	patternWithoutIndexing     = 0x00 // 0000xxxx, 4-bit prefix
	patternNeverIndexed        = 0x10 // 0001xxxx, 4-bit prefix
)

// representationKind classifies the first byte of a field line, dispatched
// on precedence order: Indexed (bit 7), then Incremental (bits 7-6), then
// table-size-update (bits 7-5), then the two 4-bit-prefixed literals.
type representationKind int

const (
	kindIndexed representationKind = iota
	kindIncrementalIndexing
	kindWithoutIndexing
	kindNeverIndexed
	kindTableSizeUpdate
	kindInvalid
)

func classify(c byte) representationKind {
	switch {
	case c&0x80 == 0x80:
		return kindIndexed
	case c&0xc0 == 0x40:
		return kindIncrementalIndexing
	case c&0xe0 == 0x20:
		return kindTableSizeUpdate
	case c&0xf0 == 0x00:
		return kindWithoutIndexing
	case c&0xf0 == 0x10:
		return kindNeverIndexed
	default:
		return kindInvalid
	}
}
