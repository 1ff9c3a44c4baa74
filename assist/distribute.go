package assist

import (
	"github.com/go-httpwire/httpwire/hpack"
	"github.com/go-httpwire/httpwire/message"
	"github.com/go-httpwire/httpwire/qpack"
)

// DistributeHPACK decodes fieldBlock with hp (the connection's HPACK
// instance, shared across every field block on that connection so its
// dynamic table stays in sync), routing every name/value pair through a
// message.Distributor in front of sink so `:`-prefixed pseudo-headers
// reach sink.NextPseudo and everything else reaches sink.NextField.
func DistributeHPACK(hp *hpack.HPACK, fieldBlock []byte, sink message.Sink) error {
	dist := message.NewDistributor(sink)
	return hp.Decode(fieldBlock, dist.Next)
}

// DistributeQPACK is DistributeHPACK's counterpart for an HTTP/3
// h3.HeadersFrame/PushPromiseFrame's DecodeFields method, which needs
// the decoder's QPACK state threaded through alongside the visitor.
func DistributeQPACK(decode func(totalInserts uint64, dynamicTableCapacity int, table qpack.TableSource, visit qpack.SectionVisitor) error, totalInserts uint64, dynamicTableCapacity int, table qpack.TableSource, sink message.Sink) error {
	dist := message.NewDistributor(sink)
	return decode(totalInserts, dynamicTableCapacity, table, dist.Next)
}
