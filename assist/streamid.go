package assist

// StreamIDGenerator is a monotonic stream identifier counter: clients
// allocate odd ids, servers even ids, both incrementing by 2. Per
// spec.md §4.9 it is single-writer — callers serialize their own access,
// the same no-shared-mutable-state contract every codec type in this
// library follows.
type StreamIDGenerator struct {
	next uint32
}

// NewClientIDs builds a generator that allocates 1, 3, 5, ...
func NewClientIDs() *StreamIDGenerator {
	return &StreamIDGenerator{next: 1}
}

// NewServerIDs builds a generator that allocates 2, 4, 6, ...
func NewServerIDs() *StreamIDGenerator {
	return &StreamIDGenerator{next: 2}
}

// Next returns the next stream id and advances the counter by 2.
func (g *StreamIDGenerator) Next() uint32 {
	id := g.next
	g.next += 2
	return id
}
