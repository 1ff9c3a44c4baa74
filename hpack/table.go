package hpack

// entry is one dynamic table row.
type entry struct {
	name  string
	value string
}

// size returns the entry's contribution to the table's size accounting,
// per RFC 7541 §4.1: name octets + value octets + 32.
func (e entry) size() int {
	return len(e.name) + len(e.value) + 32
}

// Table is the combined static+dynamic HPACK indexing table described by
// RFC 7541 §2.3: dynamic entries are numbered starting at 62 in the
// combined address space, with the most recently inserted entry at index
// 62 and older entries pushed to higher indices as new ones arrive.
type Table struct {
	capacity int
	size     int
	// entries[0] is the most recently inserted; entries[len-1] is oldest.
	entries []entry
}

// NewTable returns a Table with the given initial capacity, in octets.
func NewTable(capacity int) *Table {
	return &Table{capacity: capacity}
}

// Capacity returns the table's current size limit in octets.
func (t *Table) Capacity() int {
	return t.capacity
}

// Size returns the table's current occupied size in octets.
func (t *Table) Size() int {
	return t.size
}

// Len returns the number of dynamic entries currently held.
func (t *Table) Len() int {
	return len(t.entries)
}

// SetCapacity applies a dynamic-table-size-update: it changes the limit
// and evicts from the back until size fits within the new capacity.
func (t *Table) SetCapacity(capacity int) {
	t.capacity = capacity
	t.evict()
}

// Insert pushes a new entry to the front of the dynamic table (it becomes
// index 62 in the combined address space) and evicts from the back until
// the table's size invariant (size <= capacity) holds again. RFC 7541
// §4.4: an entry larger than the whole table's capacity results in the
// table being emptied, not an error.
func (t *Table) Insert(name, value string) {
	e := entry{name: name, value: value}
	t.entries = append([]entry{e}, t.entries...)
	t.size += e.size()
	t.evict()
}

func (t *Table) evict() {
	for t.size > t.capacity && len(t.entries) > 0 {
		last := t.entries[len(t.entries)-1]
		t.entries = t.entries[:len(t.entries)-1]
		t.size -= last.size()
	}
}

// Reset empties the dynamic table (capacity is left unchanged).
func (t *Table) Reset() {
	t.entries = t.entries[:0]
	t.size = 0
}

// Lookup resolves a combined-address-space index (1-based) to a name and
// value. Indices 1..61 resolve against the static table; 62.. resolve
// against the dynamic table.
func (t *Table) Lookup(index uint64) (name, value string, ok bool) {
	if index == 0 {
		return "", "", false
	}
	if index <= uint64(len(staticTable)) {
		e := staticTable[index-1]
		return e.name, e.value, true
	}

	di := index - uint64(len(staticTable)) - 1
	if di >= uint64(len(t.entries)) {
		return "", "", false
	}
	e := t.entries[di]
	return e.name, e.value, true
}

// IndexResult reports how much of a (name, value) pair an encoder found
// already indexed (static or dynamic), letting it choose the shortest
// correct field representation.
type IndexResult int

const (
	// IndexNone means neither the name nor the name+value pair is indexed.
	IndexNone IndexResult = iota
	// IndexName means the name (only) is indexed at the returned index.
	IndexName
	// IndexBoth means the name+value pair is indexed at the returned index.
	IndexBoth
)

// Find looks up name/value against both the static and dynamic tables,
// preferring an exact name+value match over a name-only match, and
// preferring the lowest index when more than one entry qualifies.
func (t *Table) Find(name, value string) (IndexResult, uint64) {
	if idx, ok := staticNameValueIndex[name+"\x00"+value]; ok {
		return IndexBoth, idx
	}

	for i, e := range t.entries {
		if e.name == name && e.value == value {
			return IndexBoth, uint64(len(staticTable)) + uint64(i) + 1
		}
	}

	if idx, ok := staticNameIndex[name]; ok {
		return IndexName, idx
	}

	for i, e := range t.entries {
		if e.name == name {
			return IndexName, uint64(len(staticTable)) + uint64(i) + 1
		}
	}

	return IndexNone, 0
}
