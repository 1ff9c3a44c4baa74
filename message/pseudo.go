package message

// Request is the H/2 and H/3 request aggregate: pseudo-header fields
// (":method", ":scheme", ":authority", ":path") are extracted from the
// general field set into these typed slots; everything else lands in Entity.
type Request struct {
	Method    string
	Scheme    string
	Authority string
	Path      string
	Entity    *Entity
}

// Response is the H/2 and H/3 response aggregate: only ":status" is promoted.
type Response struct {
	Status string
	Entity *Entity
}

// NewRequest returns a Request with a fresh Entity.
func NewRequest() *Request {
	return &Request{Entity: AcquireEntity()}
}

// NewResponse returns a Response with a fresh Entity.
func NewResponse() *Response {
	return &Response{Entity: AcquireEntity()}
}

// Sink is the pair of callbacks a Distributor drives: NextPseudo for a
// field whose name begins with ':', NextField for everything else. Each
// concrete Sink decides what to do with a pseudo-header it doesn't
// recognize (the promoting sinks below drop it).
type Sink interface {
	NextPseudo(name, value []byte)
	NextField(name, value []byte)
}

// Distributor is the single entry point a field-block decoder calls per
// decoded (name, value) pair. It does the ':'-prefix routing itself so no
// Sink implementation has to repeat that check.
type Distributor struct {
	sink Sink
}

// NewDistributor wraps sink behind the pseudo/field routing rule.
func NewDistributor(sink Sink) *Distributor {
	return &Distributor{sink: sink}
}

// Next routes name/value to NextPseudo or NextField on the wrapped Sink.
func (d *Distributor) Next(name, value []byte) {
	if len(name) > 0 && name[0] == ':' {
		d.sink.NextPseudo(name, value)
		return
	}
	d.sink.NextField(name, value)
}

// listSink is the simplest Sink: a flat, ordered (name, value) pair list,
// with pseudo-headers treated like any other field.
type listSink struct {
	names  [][]byte
	values [][]byte
}

// NewListSink returns a Sink that records every field verbatim, in order,
// doing no pseudo-header promotion.
func NewListSink() *listSink {
	return &listSink{}
}

func (s *listSink) NextPseudo(name, value []byte) { s.add(name, value) }
func (s *listSink) NextField(name, value []byte)  { s.add(name, value) }

func (s *listSink) add(name, value []byte) {
	s.names = append(s.names, append([]byte(nil), name...))
	s.values = append(s.values, append([]byte(nil), value...))
}

// Pairs returns the recorded (name, value) pairs in arrival order.
func (s *listSink) Pairs() ([][]byte, [][]byte) {
	return s.names, s.values
}

// requestSink promotes recognized pseudo-headers into a Request, dropping
// any pseudo-header it doesn't recognize.
type requestSink struct {
	req *Request
}

// NewRequestSink returns a Sink that populates req.
func NewRequestSink(req *Request) Sink {
	return &requestSink{req: req}
}

func (s *requestSink) NextPseudo(name, value []byte) {
	switch string(name) {
	case ":method":
		s.req.Method = string(value)
	case ":scheme":
		s.req.Scheme = string(value)
	case ":authority":
		s.req.Authority = string(value)
	case ":path":
		s.req.Path = string(value)
	}
	// Any other pseudo-header is silently dropped: a decoder should not
	// fail a whole section over a field it doesn't model.
}

func (s *requestSink) NextField(name, value []byte) {
	s.req.Entity.Headers.Add(name, value)
}

// responseSink promotes ":status" into a Response; any other pseudo-header
// is dropped.
type responseSink struct {
	resp *Response
}

// NewResponseSink returns a Sink that populates resp.
func NewResponseSink(resp *Response) Sink {
	return &responseSink{resp: resp}
}

func (s *responseSink) NextPseudo(name, value []byte) {
	if string(name) == ":status" {
		s.resp.Status = string(value)
	}
}

func (s *responseSink) NextField(name, value []byte) {
	s.resp.Entity.Headers.Add(name, value)
}
