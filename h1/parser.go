// Package h1 implements the HTTP/1.1 textual codec described in spec.md
// §4.8: a resumable, byte-at-a-time state machine that walks a start
// line (request or response) and a header-line loop into a body, with
// no transport or connection semantics of its own. The state machine is
// modeled on original_source/src/request.rs's method_first/method_tail
// state-function-pointer pipeline, restyled around an explicit state
// enum (see state.go) so the whole parse context — current state, the
// in-flight token, and everything committed so far — lives in exported
// struct fields a caller can snapshot and resume across any byte
// boundary, including mid-token.
package h1

import (
	"bytes"
	"errors"
	"sync"
)

// ErrExpectedLF names the case of a CR not followed by an LF. The parser
// neither returns nor stores it: it records the byte offset in Errors()
// and recovers by treating the line as terminated anyway.
var ErrExpectedLF = errors.New("h1: expected LF after CR")

// HeaderField is one parsed header line. Value has already had leading
// and trailing space/htab trimmed off per the optional-whitespace rule;
// Name and Value are independent copies, safe to retain past the next
// Feed call.
type HeaderField struct {
	Name  []byte
	Value []byte
}

// Parser is a resumable HTTP/1.1 start-line-plus-headers parser. Feed it
// bytes incrementally; it carries everything needed to pick back up
// exactly where it left off, including mid-token, across calls.
type Parser struct {
	isResponse bool
	state      state
	cursor     int // total bytes consumed across this parser's lifetime

	scratch []byte // in-flight token being accumulated

	// request start line
	method  []byte
	target  []byte
	version []byte

	// response start line
	statusCode []byte
	reason     []byte

	curName      []byte // header name committed, awaiting its value
	blankPending bool   // CR at header_name_first means this is the terminating blank line

	headers []HeaderField

	body []byte

	errOffsets []int
	err        bool

	searching    bool
	searchName   string
	searchValue  []byte
	searchFound  bool
	stopAtTarget bool
}

var requestParserPool = sync.Pool{New: func() interface{} { return &Parser{} }}
var responseParserPool = sync.Pool{New: func() interface{} { return &Parser{} }}

// AcquireRequestParser gets a request-mode Parser from the pool.
func AcquireRequestParser() *Parser {
	p := requestParserPool.Get().(*Parser)
	p.Reset()
	p.isResponse = false
	return p
}

// ReleaseRequestParser resets p and returns it to the pool.
func ReleaseRequestParser(p *Parser) {
	p.Reset()
	requestParserPool.Put(p)
}

// AcquireResponseParser gets a response-mode Parser from the pool.
func AcquireResponseParser() *Parser {
	p := responseParserPool.Get().(*Parser)
	p.isResponse = true
	p.Reset()
	return p
}

// ReleaseResponseParser resets p and returns it to the pool.
func ReleaseResponseParser(p *Parser) {
	p.Reset()
	responseParserPool.Put(p)
}

// NewRequestParser allocates a standalone request-mode parser, for
// callers that don't want pooling.
func NewRequestParser() *Parser { return &Parser{isResponse: false} }

// NewResponseParser allocates a standalone response-mode parser.
func NewResponseParser() *Parser {
	p := &Parser{isResponse: true}
	p.Reset()
	return p
}

// Reset clears all parse state so the Parser can start a new message.
// isResponse is preserved by Acquire*, not by Reset itself.
func (p *Parser) Reset() {
	p.state = stateMethodFirst
	if p.isResponse {
		p.state = stateVersionFirstResp
	}
	p.cursor = 0
	p.scratch = p.scratch[:0]
	p.method = nil
	p.target = nil
	p.version = nil
	p.statusCode = nil
	p.reason = nil
	p.curName = nil
	p.blankPending = false
	p.headers = p.headers[:0]
	p.body = p.body[:0]
	p.errOffsets = p.errOffsets[:0]
	p.err = false
	p.searching = false
	p.searchName = ""
	p.searchValue = nil
	p.searchFound = false
	p.stopAtTarget = false
}

// SearchFor puts the parser into targeted lookup mode: Feed returns as
// soon as name's value has been parsed (or the blank line is reached
// without finding it), without requiring the rest of the message.
// Matching is case-insensitive, per HTTP header-name convention.
func (p *Parser) SearchFor(name string) {
	p.searching = true
	p.searchName = name
	p.stopAtTarget = true
}

// Found reports the value found by SearchFor, if any.
func (p *Parser) Found() (value []byte, ok bool) {
	return p.searchValue, p.searchFound
}

func (p *Parser) recordError() {
	p.errOffsets = append(p.errOffsets, p.cursor)
	p.err = true
}

func (p *Parser) commit() []byte {
	tok := p.scratch
	p.scratch = nil
	return tok
}

// Feed advances the state machine over data and returns how many bytes
// were consumed. Consumed is less than len(data) only when search mode
// stops early upon finding its target (or the header block ending
// without it) — the remaining bytes are the caller's to re-feed later
// if it decides to keep parsing.
func (p *Parser) Feed(data []byte) (consumed int, err error) {
	for i, b := range data {
		if p.state == stateBody {
			p.body = append(p.body, data[i:]...)
			p.cursor += len(data) - i
			return len(data), nil
		}

		p.cursor++
		p.step(b)

		if p.stopAtTarget && (p.searchFound || p.state == stateBody) {
			return i + 1, nil
		}
	}
	return len(data), nil
}

func (p *Parser) step(b byte) {
	switch p.state {

	// --- request start line ---
	case stateMethodFirst:
		if b == sp {
			p.recordError()
			return
		}
		p.scratch = append(p.scratch, b)
		p.state = stateMethodTail
	case stateMethodTail:
		if b == sp {
			p.method = p.commit()
			p.state = stateTargetFirst
			return
		}
		p.scratch = append(p.scratch, b)
	case stateTargetFirst:
		if b == sp {
			p.recordError()
			return
		}
		p.scratch = append(p.scratch, b)
		p.state = stateTargetTail
	case stateTargetTail:
		if b == sp {
			p.target = p.commit()
			p.state = stateVersionFirst
			return
		}
		p.scratch = append(p.scratch, b)
	case stateVersionFirst:
		if b == cr || b == lf {
			p.recordError()
			return
		}
		p.scratch = append(p.scratch, b)
		p.state = stateVersionTail
	case stateVersionTail:
		switch b {
		case cr:
			p.version = p.commit()
			p.state = stateStartLineLF
		case lf:
			p.version = p.commit()
			p.state = stateHeaderNameFirst
		default:
			p.scratch = append(p.scratch, b)
		}

	// --- response start line ---
	case stateVersionFirstResp:
		if b == sp {
			p.recordError()
			return
		}
		p.scratch = append(p.scratch, b)
		p.state = stateVersionTailResp
	case stateVersionTailResp:
		if b == sp {
			p.version = p.commit()
			p.state = stateStatusCodeFirst
			return
		}
		p.scratch = append(p.scratch, b)
	case stateStatusCodeFirst:
		if b == sp {
			p.recordError()
			return
		}
		p.scratch = append(p.scratch, b)
		p.state = stateStatusCodeTail
	case stateStatusCodeTail:
		if b == sp {
			p.statusCode = p.commit()
			p.state = stateReasonFirst
			return
		}
		p.scratch = append(p.scratch, b)
	case stateReasonFirst:
		if b == cr {
			p.reason = p.commit()
			p.state = stateStartLineLF
			return
		}
		if b == lf {
			p.reason = p.commit()
			p.state = stateHeaderNameFirst
			return
		}
		p.scratch = append(p.scratch, b)
		p.state = stateReasonTail
	case stateReasonTail:
		switch b {
		case cr:
			p.reason = p.commit()
			p.state = stateStartLineLF
		case lf:
			p.reason = p.commit()
			p.state = stateHeaderNameFirst
		default:
			p.scratch = append(p.scratch, b)
		}

	case stateStartLineLF:
		if b != lf {
			p.recordError()
		}
		p.state = stateHeaderNameFirst

	// --- header loop ---
	case stateHeaderNameFirst:
		if b == cr {
			p.blankPending = true
			p.state = stateHeaderLF
			return
		}
		if b == lf {
			p.finishHeaders()
			return
		}
		p.scratch = append(p.scratch, b)
		p.state = stateHeaderNameTail
	case stateHeaderNameTail:
		switch {
		case b == colon:
			p.curName = p.commit()
			p.state = stateHeaderValueFirst
		case b == cr || b == lf:
			// colon-less header line: lenient, whole line is the name.
			p.recordError()
			p.pushHeader(p.commit(), nil)
			if b == cr {
				p.state = stateHeaderLF
			} else {
				p.state = stateHeaderNameFirst
			}
		default:
			p.scratch = append(p.scratch, b)
		}
	case stateHeaderValueFirst:
		switch {
		case isSpace(b):
			// leading optional whitespace, not part of the value
		case b == cr:
			p.pushHeader(p.curName, p.commit())
			p.state = stateHeaderLF
		case b == lf:
			p.pushHeader(p.curName, p.commit())
			p.state = stateHeaderNameFirst
		default:
			p.scratch = append(p.scratch, b)
			p.state = stateHeaderValueTail
		}
	case stateHeaderValueTail:
		switch b {
		case cr:
			p.pushHeader(p.curName, bytes.TrimRight(p.commit(), " \t"))
			p.state = stateHeaderLF
		case lf:
			p.pushHeader(p.curName, bytes.TrimRight(p.commit(), " \t"))
			p.state = stateHeaderNameFirst
		default:
			p.scratch = append(p.scratch, b)
		}
	case stateHeaderLF:
		if b != lf {
			p.recordError()
		}
		if p.blankPending {
			p.finishHeaders()
			return
		}
		p.state = stateHeaderNameFirst

	case stateDone:
		// extra bytes after a completed, non-body-bearing message are ignored
	}
}

func (p *Parser) pushHeader(name, value []byte) {
	p.headers = append(p.headers, HeaderField{Name: name, Value: value})
	if p.searching && !p.searchFound && equalFold(name, p.searchName) {
		p.searchFound = true
		p.searchValue = value
	}
}

func (p *Parser) finishHeaders() {
	p.blankPending = false
	p.state = stateBody
}

func equalFold(name []byte, target string) bool {
	if len(name) != len(target) {
		return false
	}
	for i := 0; i < len(name); i++ {
		a, b := name[i], target[i]
		if 'A' <= a && a <= 'Z' {
			a += 'a' - 'A'
		}
		if 'A' <= b && b <= 'Z' {
			b += 'a' - 'A'
		}
		if a != b {
			return false
		}
	}
	return true
}

// Method, Target, Version, StatusCode, Reason expose the parsed start
// line. Unset fields (wrong message direction, or not yet parsed) are nil.
func (p *Parser) Method() []byte     { return p.method }
func (p *Parser) Target() []byte     { return p.target }
func (p *Parser) Version() []byte    { return p.version }
func (p *Parser) StatusCode() []byte { return p.statusCode }
func (p *Parser) Reason() []byte     { return p.reason }

// Headers returns every header line parsed so far, in wire order.
func (p *Parser) Headers() []HeaderField { return p.headers }

// Get returns the first header matching name (case-insensitive).
func (p *Parser) Get(name string) ([]byte, bool) {
	for _, h := range p.headers {
		if equalFold(h.Name, name) {
			return h.Value, true
		}
	}
	return nil, false
}

// Body returns the raw body bytes accumulated so far. The parser has no
// notion of content-length or chunked framing — it is the caller's job
// to stop feeding bytes once the body is complete, per the no-transport
// non-goal.
func (p *Parser) Body() []byte { return p.body }

// HeadersDone reports whether the header block has been fully parsed
// and any further fed bytes are being accumulated as body.
func (p *Parser) HeadersDone() bool { return p.state == stateBody }

// Errors returns the byte offsets (relative to this parser's own byte
// count, not any underlying connection) where a malformed line was
// encountered and locally recovered from.
func (p *Parser) Errors() []int { return p.errOffsets }

// HasError reports whether any recoverable error has been seen so far.
// It is sticky: once set it stays set for the lifetime of the parser.
func (p *Parser) HasError() bool { return p.err }
