// Package assist implements the streaming helpers described in
// spec.md §4.9: a HEADERS/PUSH_PROMISE→CONTINUATION fragmenter, a
// multi-DATA splitter, a stream identifier generator, and wiring onto
// message.Distributor as the field distributor. The teacher buffers
// whole field blocks in one HPACK.Write call with no fragmentation
// helper of its own, so this package is modeled directly on spec.md and
// on original_source/src/h2/assist/mod.rs's H2StreamIdentifier shape.
package assist

import "github.com/go-httpwire/httpwire/h2"

// Sink receives each encoded frame in order.
type Sink func(frame []byte) error

type frameEncoder func(fieldBlock []byte, endHeaders bool) (frame, excess []byte)

// Fragmenter accepts a field block incrementally via Write and
// transparently splits it into a first frame (HEADERS or PUSH_PROMISE)
// of fieldsCapacity bytes followed by zero or more CONTINUATION frames
// of continuationCapacity bytes, setting END_HEADERS only on the frame
// produced by the final Flush.
type Fragmenter struct {
	firstCapacity int
	contCapacity  int
	first         frameEncoder
	cont          frameEncoder
	started       bool
	buf           []byte
	sink          Sink
}

// NewHeadersFragmenter builds a Fragmenter whose first frame is HEADERS.
func NewHeadersFragmenter(streamID uint32, fieldsCapacity, continuationCapacity int, endStream bool, padLength uint8, priority *h2.PriorityInfo, sink Sink) *Fragmenter {
	return &Fragmenter{
		firstCapacity: fieldsCapacity,
		contCapacity:  continuationCapacity,
		first: func(fieldBlock []byte, endHeaders bool) ([]byte, []byte) {
			return h2.EncodeHeaders(streamID, endStream, endHeaders, padLength, priority, fieldBlock)
		},
		cont: func(fieldBlock []byte, endHeaders bool) ([]byte, []byte) {
			return h2.EncodeContinuation(streamID, endHeaders, fieldBlock)
		},
		sink: sink,
	}
}

// NewPushPromiseFragmenter builds a Fragmenter whose first frame is
// PUSH_PROMISE.
func NewPushPromiseFragmenter(streamID, promisedStreamID uint32, fieldsCapacity, continuationCapacity int, padLength uint8, sink Sink) *Fragmenter {
	return &Fragmenter{
		firstCapacity: fieldsCapacity,
		contCapacity:  continuationCapacity,
		first: func(fieldBlock []byte, endHeaders bool) ([]byte, []byte) {
			return h2.EncodePushPromise(streamID, promisedStreamID, endHeaders, padLength, fieldBlock)
		},
		cont: func(fieldBlock []byte, endHeaders bool) ([]byte, []byte) {
			return h2.EncodeContinuation(streamID, endHeaders, fieldBlock)
		},
		sink: sink,
	}
}

// Write appends p to the field block, flushing complete capacity-sized
// fragments to the sink as they fill. It never sets END_HEADERS —
// that happens only in Flush.
func (f *Fragmenter) Write(p []byte) (int, error) {
	f.buf = append(f.buf, p...)

	for cap := f.capacity(); cap > 0 && len(f.buf) >= cap; cap = f.capacity() {
		chunk := f.buf[:cap]
		f.buf = f.buf[cap:]
		if err := f.emit(chunk, false); err != nil {
			return 0, err
		}
	}
	return len(p), nil
}

// Flush emits whatever remains of the field block as the final
// fragment, with END_HEADERS set, even if that remainder is empty (a
// field block that divides evenly still needs a frame carrying the
// flag).
func (f *Fragmenter) Flush() error {
	err := f.emit(f.buf, true)
	f.buf = nil
	return err
}

func (f *Fragmenter) capacity() int {
	if f.started {
		return f.contCapacity
	}
	return f.firstCapacity
}

func (f *Fragmenter) emit(data []byte, endHeaders bool) error {
	enc := f.first
	if f.started {
		enc = f.cont
	}

	frame, excess := enc(data, endHeaders)
	if err := f.sink(frame); err != nil {
		return err
	}
	f.started = true

	if len(excess) > 0 {
		return f.emit(excess, endHeaders)
	}
	return nil
}
