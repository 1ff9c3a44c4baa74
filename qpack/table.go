package qpack

// entry is one dynamic table row.
type entry struct {
	name  string
	value string
}

func (e entry) size() int {
	return len(e.name) + len(e.value) + 32
}

// Table is the QPACK dynamic table (RFC 9204 §3.2): entries are numbered
// by an absolute index that increases monotonically across the table's
// lifetime and never decrements, even as entries are evicted. It is
// disjoint from the static table; callers distinguish the two via the
// T-bit carried in every reference, not by index range.
type Table struct {
	capacity int
	size     int
	// insertedCount is the total number of insertions ever made. The
	// absolute index of the i-th insertion (0-based) is i.
	insertedCount uint64
	// entries holds the entries currently retained, oldest first; the
	// absolute index of entries[0] is insertedCount - len(entries).
	entries []entry
}

// NewTable returns a Table with the given capacity, in octets.
func NewTable(capacity int) *Table {
	return &Table{capacity: capacity}
}

// Capacity returns the table's size limit in octets.
func (t *Table) Capacity() int {
	return t.capacity
}

// Size returns the table's current occupied size in octets.
func (t *Table) Size() int {
	return t.size
}

// Len returns the number of entries currently retained.
func (t *Table) Len() int {
	return len(t.entries)
}

// InsertedCount returns the total number of insertions made over the
// table's lifetime (RFC 9204's "Insert Count").
func (t *Table) InsertedCount() uint64 {
	return t.insertedCount
}

// SetCapacity applies a Set Dynamic Table Capacity instruction.
func (t *Table) SetCapacity(capacity int) {
	t.capacity = capacity
	t.evict()
}

// Insert adds a new entry, assigning it the next absolute index, and
// evicts from the oldest end until the size invariant holds again.
func (t *Table) Insert(name, value string) uint64 {
	idx := t.insertedCount
	t.entries = append(t.entries, entry{name: name, value: value})
	t.size += t.entries[len(t.entries)-1].size()
	t.insertedCount++
	t.evict()
	return idx
}

func (t *Table) evict() {
	for t.size > t.capacity && len(t.entries) > 0 {
		oldest := t.entries[0]
		t.entries = t.entries[1:]
		t.size -= oldest.size()
	}
}

// base returns the absolute index of entries[0], i.e. the oldest
// currently-retained entry.
func (t *Table) base() uint64 {
	return t.insertedCount - uint64(len(t.entries))
}

// Lookup resolves an absolute dynamic-table index to a name/value pair.
func (t *Table) Lookup(absIndex uint64) (name, value string, ok bool) {
	base := t.base()
	if absIndex < base || absIndex >= t.insertedCount {
		return "", "", false
	}
	e := t.entries[absIndex-base]
	return e.name, e.value, true
}

// Reset empties the table. insertedCount is NOT reset: QPACK's Insert
// Count is a lifetime counter, not a table-occupancy counter.
func (t *Table) Reset() {
	t.entries = t.entries[:0]
	t.size = 0
}

// Find looks up name/value in the dynamic table only (the static table has
// its own disjoint lookup in static.go), returning the highest (most
// recently inserted) matching absolute index.
func (t *Table) Find(name, value string) (result IndexResult, absIndex uint64) {
	for i := len(t.entries) - 1; i >= 0; i-- {
		if t.entries[i].name == name && t.entries[i].value == value {
			return IndexBoth, t.base() + uint64(i)
		}
	}
	for i := len(t.entries) - 1; i >= 0; i-- {
		if t.entries[i].name == name {
			return IndexName, t.base() + uint64(i)
		}
	}
	return IndexNone, 0
}

// IndexResult reports how much of a (name, value) pair a table lookup
// found, mirroring the hpack package's IndexResult.
type IndexResult int

const (
	IndexNone IndexResult = iota
	IndexName
	IndexBoth
)
