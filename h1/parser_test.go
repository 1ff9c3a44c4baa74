package h1

import (
	"bytes"
	"testing"
)

func TestRequestLineAndHeaders(t *testing.T) {
	raw := "GET /index.html HTTP/1.1\r\nHost: example.com\r\nX-Multi: a\r\n\r\nbody-bytes"
	p := NewRequestParser()

	n, err := p.Feed([]byte(raw))
	if err != nil {
		t.Fatalf("feed: %v", err)
	}
	if n != len(raw) {
		t.Fatalf("consumed = %d, want %d", n, len(raw))
	}

	if string(p.Method()) != "GET" || string(p.Target()) != "/index.html" || string(p.Version()) != "HTTP/1.1" {
		t.Fatalf("start line = %q %q %q", p.Method(), p.Target(), p.Version())
	}
	if !p.HeadersDone() {
		t.Fatal("expected headers done")
	}
	if string(p.Body()) != "body-bytes" {
		t.Fatalf("body = %q", p.Body())
	}
	if v, ok := p.Get("host"); !ok || string(v) != "example.com" {
		t.Fatalf("Get(host) = %q, %v", v, ok)
	}
	if p.HasError() {
		t.Fatalf("unexpected errors: %v", p.Errors())
	}
}

func TestResumableByteAtATime(t *testing.T) {
	raw := "POST /upload HTTP/1.1\r\nContent-Type: text/plain\r\nX-Id:   42  \r\n\r\nhello"
	p := NewRequestParser()

	var total int
	for i := 0; i < len(raw); i++ {
		n, err := p.Feed([]byte{raw[i]})
		if err != nil {
			t.Fatalf("feed byte %d: %v", i, err)
		}
		total += n
	}
	if total != len(raw) {
		t.Fatalf("total consumed = %d, want %d", total, len(raw))
	}

	if string(p.Method()) != "POST" || string(p.Target()) != "/upload" {
		t.Fatalf("start line = %q %q", p.Method(), p.Target())
	}
	if v, ok := p.Get("x-id"); !ok || string(v) != "42" {
		t.Fatalf("trimmed value = %q, %v", v, ok)
	}
	if string(p.Body()) != "hello" {
		t.Fatalf("body = %q", p.Body())
	}
}

func TestResponseParsing(t *testing.T) {
	raw := "HTTP/1.1 404 Not Found\r\nContent-Length: 0\r\n\r\n"
	p := NewResponseParser()

	if _, err := p.Feed([]byte(raw)); err != nil {
		t.Fatalf("feed: %v", err)
	}
	if string(p.Version()) != "HTTP/1.1" || string(p.StatusCode()) != "404" || string(p.Reason()) != "Not Found" {
		t.Fatalf("start line = %q %q %q", p.Version(), p.StatusCode(), p.Reason())
	}
	if v, ok := p.Get("content-length"); !ok || string(v) != "0" {
		t.Fatalf("content-length = %q, %v", v, ok)
	}
}

func TestColonLessHeaderLeniency(t *testing.T) {
	raw := "GET / HTTP/1.1\r\nMalformedLine\r\nHost: example.com\r\n\r\n"
	p := NewRequestParser()

	if _, err := p.Feed([]byte(raw)); err != nil {
		t.Fatalf("feed: %v", err)
	}
	if !p.HasError() {
		t.Fatal("expected a recorded error for the colon-less line")
	}
	if len(p.Errors()) != 1 {
		t.Fatalf("errors = %v, want exactly one", p.Errors())
	}

	headers := p.Headers()
	if len(headers) != 2 {
		t.Fatalf("headers = %+v, want 2", headers)
	}
	if string(headers[0].Name) != "MalformedLine" || len(headers[0].Value) != 0 {
		t.Fatalf("recovered header = %+v", headers[0])
	}
	if string(headers[1].Name) != "Host" || string(headers[1].Value) != "example.com" {
		t.Fatalf("second header = %+v", headers[1])
	}
}

func TestBareLFAccepted(t *testing.T) {
	raw := "GET / HTTP/1.1\nHost: example.com\n\n"
	p := NewRequestParser()

	if _, err := p.Feed([]byte(raw)); err != nil {
		t.Fatalf("feed: %v", err)
	}
	if !p.HeadersDone() {
		t.Fatal("expected headers done with bare LF line endings")
	}
	if v, ok := p.Get("host"); !ok || string(v) != "example.com" {
		t.Fatalf("host = %q, %v", v, ok)
	}
}

func TestSearchForStopsEarly(t *testing.T) {
	raw := "GET /a HTTP/1.1\r\nA: 1\r\nTarget: found-me\r\nZ: 9\r\n\r\nbody"
	p := NewRequestParser()
	p.SearchFor("target")

	n, err := p.Feed([]byte(raw))
	if err != nil {
		t.Fatalf("feed: %v", err)
	}
	value, ok := p.Found()
	if !ok || string(value) != "found-me" {
		t.Fatalf("Found() = %q, %v", value, ok)
	}
	if n >= len(raw) {
		t.Fatalf("consumed = %d, expected early stop before %d", n, len(raw))
	}
}

func TestSearchForNotFoundStopsAtBlankLine(t *testing.T) {
	raw := "GET /a HTTP/1.1\r\nA: 1\r\n\r\nbody"
	p := NewRequestParser()
	p.SearchFor("missing")

	n, err := p.Feed([]byte(raw))
	if err != nil {
		t.Fatalf("feed: %v", err)
	}
	if _, ok := p.Found(); ok {
		t.Fatal("expected not found")
	}
	if !p.HeadersDone() {
		t.Fatal("expected headers done at blank line")
	}
	if n > len(raw)-len("body") {
		t.Fatalf("consumed = %d, should stop before body", n)
	}
}

func TestExportVerbatim(t *testing.T) {
	raw := "PUT /x HTTP/1.1\r\nA: 1\r\nB: 2\r\n\r\npayload"
	want := "PUT /x HTTP/1.1\r\nA:1\r\nB:2\r\n\r\npayload"
	p := NewRequestParser()
	if _, err := p.Feed([]byte(raw)); err != nil {
		t.Fatalf("feed: %v", err)
	}
	if got := p.Export(); !bytes.Equal(got, []byte(want)) {
		t.Fatalf("export = %q, want %q", got, want)
	}
}

func TestAcquireReleaseResets(t *testing.T) {
	p := AcquireRequestParser()
	if _, err := p.Feed([]byte("GET / HTTP/1.1\r\n\r\n")); err != nil {
		t.Fatalf("feed: %v", err)
	}
	ReleaseRequestParser(p)

	p2 := AcquireRequestParser()
	if len(p2.Headers()) != 0 || p2.Method() != nil {
		t.Fatal("expected a clean parser after release/reacquire")
	}
}
