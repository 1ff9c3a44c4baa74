// Package message holds the protocol-agnostic message aggregates shared by
// the H/1, H/2 and H/3 codecs: field values, field sets, and the request/
// response entities a field Distributor populates during decode.
//
// Entity follows the teacher's HeaderField pooling idiom
// (Acquire/Release, Reset) generalized from a single key/value pair
// to the repeated-name, multi-value shape spec.md's data model requires.
package message

import (
	"strings"
	"sync"
)

// FieldValue holds the value(s) associated with one header field name: a
// primary value plus any repeats, since a field name may occur more than
// once in a section.
type FieldValue struct {
	primary []byte
	repeats [][]byte
}

// Set replaces the value, dropping any repeats.
func (fv *FieldValue) Set(v []byte) {
	fv.primary = append(fv.primary[:0], v...)
	fv.repeats = fv.repeats[:0]
}

// Add appends a repeat of the field, or sets the primary value if this is
// the first occurrence.
func (fv *FieldValue) Add(v []byte) {
	if fv.primary == nil {
		fv.primary = append(fv.primary[:0], v...)
		return
	}
	cp := make([]byte, len(v))
	copy(cp, v)
	fv.repeats = append(fv.repeats, cp)
}

// Primary returns the first-seen value.
func (fv *FieldValue) Primary() []byte {
	return fv.primary
}

// Repeats returns any additional values beyond the primary, in order.
func (fv *FieldValue) Repeats() [][]byte {
	return fv.repeats
}

// Joined returns all values (primary then repeats) comma-joined, the usual
// projection for display or re-serialization as a single header line.
func (fv *FieldValue) Joined() string {
	if len(fv.repeats) == 0 {
		return string(fv.primary)
	}
	parts := make([]string, 0, 1+len(fv.repeats))
	parts = append(parts, string(fv.primary))
	for _, r := range fv.repeats {
		parts = append(parts, string(r))
	}
	return strings.Join(parts, ", ")
}

// FieldSet maps field name to FieldValue, preserving insertion order so
// re-serialization can match wire order when that matters to a caller.
type FieldSet struct {
	order []string
	byKey map[string]*FieldValue
}

// NewFieldSet returns an empty FieldSet ready for use.
func NewFieldSet() *FieldSet {
	return &FieldSet{byKey: make(map[string]*FieldValue)}
}

// Add records name=value, appending to an existing field's repeats if the
// name was already seen.
func (fs *FieldSet) Add(name, value []byte) {
	key := string(name)
	fv, ok := fs.byKey[key]
	if !ok {
		fv = &FieldValue{}
		fs.byKey[key] = fv
		fs.order = append(fs.order, key)
	}
	fv.Add(value)
}

// Get returns the FieldValue for name, or nil if absent.
func (fs *FieldSet) Get(name string) *FieldValue {
	return fs.byKey[name]
}

// Names returns field names in first-seen order.
func (fs *FieldSet) Names() []string {
	return fs.order
}

// Len returns the number of distinct field names.
func (fs *FieldSet) Len() int {
	return len(fs.order)
}

// Reset empties the set for reuse.
func (fs *FieldSet) Reset() {
	fs.order = fs.order[:0]
	for k := range fs.byKey {
		delete(fs.byKey, k)
	}
}

// Entity is the body shared by all three protocols' request/response
// aggregates: a field set, a body buffer, and a sticky error flag a
// producer sets once something in the message failed to parse.
type Entity struct {
	Headers *FieldSet
	Body    []byte
	Err     bool
}

var entityPool = sync.Pool{
	New: func() interface{} {
		return &Entity{Headers: NewFieldSet()}
	},
}

// AcquireEntity gets an Entity from the pool.
func AcquireEntity() *Entity {
	return entityPool.Get().(*Entity)
}

// ReleaseEntity resets e and returns it to the pool.
func ReleaseEntity(e *Entity) {
	e.Reset()
	entityPool.Put(e)
}

// Reset clears the entity for reuse.
func (e *Entity) Reset() {
	e.Headers.Reset()
	e.Body = e.Body[:0]
	e.Err = false
}
