// Package fasthttpwire adapts this module's protocol-agnostic message
// aggregates (message.Request/message.Response) to and from
// github.com/valyala/fasthttp's *fasthttp.Request/*fasthttp.Response,
// the way the teacher's fasthttp2 adaptor.go bridges dgrr/http2's
// HeaderField stream to the same fasthttp types.
package fasthttpwire

import (
	"bytes"
	"strconv"

	"github.com/valyala/fasthttp"

	"github.com/go-httpwire/httpwire/message"
)

var (
	strUserAgent     = []byte("user-agent")
	strContentType   = []byte("content-type")
	strHost          = []byte("Host")
	strContentLength = "content-length"
)

// ToFastHTTPRequest copies req's pseudo-headers, fields and body onto dst,
// mirroring the teacher's fasthttpRequestHeaders switch over the first byte
// of a pseudo-header's name (m/p/s/a/u/c) to route :method/:path/:scheme/
// :authority/user-agent/content-type into their dedicated fasthttp setters.
func ToFastHTTPRequest(req *message.Request, dst *fasthttp.Request) {
	dst.Header.SetMethod(req.Method)
	dst.URI().SetScheme(req.Scheme)
	dst.URI().SetHost(req.Authority)
	dst.Header.SetRequestURI(req.Path)
	if req.Authority != "" {
		dst.Header.SetHost(req.Authority)
	}

	for _, name := range req.Entity.Headers.Names() {
		fv := req.Entity.Headers.Get(name)
		key := []byte(name)
		if bytes.Equal(key, strUserAgent) {
			dst.Header.SetUserAgentBytes(fv.Primary())
			continue
		}
		if bytes.Equal(key, strContentType) {
			dst.Header.SetContentTypeBytes(fv.Primary())
			continue
		}
		dst.Header.AddBytesKV(key, fv.Primary())
		for _, rep := range fv.Repeats() {
			dst.Header.AddBytesKV(key, rep)
		}
	}
	dst.SetBody(req.Entity.Body)
}

// FromFastHTTPRequest is ToFastHTTPRequest's inverse: it reads a populated
// fasthttp.Request and produces the protocol-agnostic aggregate a codec's
// encoder can turn into wire bytes.
func FromFastHTTPRequest(src *fasthttp.Request) *message.Request {
	req := message.NewRequest()
	req.Method = string(src.Header.Method())
	req.Scheme = string(src.URI().Scheme())
	req.Authority = string(src.URI().Host())
	req.Path = string(src.URI().PathOriginal())

	src.Header.VisitAll(func(k, v []byte) {
		if bytes.EqualFold(k, strHost) {
			return
		}
		req.Entity.Headers.Add(bytes.ToLower(k), v)
	})
	req.Entity.Body = append(req.Entity.Body[:0], src.Body()...)
	return req
}

// ToFastHTTPResponse mirrors the teacher's fasthttpResponseHeaders: it
// synthesizes ":status" and "content-length" ahead of the copied field set,
// the same two fields the teacher prepends before VisitAll.
func ToFastHTTPResponse(resp *message.Response, dst *fasthttp.Response) {
	if code, err := strconv.Atoi(resp.Status); err == nil {
		dst.SetStatusCode(code)
	}
	dst.SetBody(resp.Entity.Body)
	dst.Header.SetContentLength(len(resp.Entity.Body))

	for _, name := range resp.Entity.Headers.Names() {
		if name == strContentLength {
			continue
		}
		fv := resp.Entity.Headers.Get(name)
		key := []byte(name)
		dst.Header.AddBytesKV(key, fv.Primary())
		for _, rep := range fv.Repeats() {
			dst.Header.AddBytesKV(key, rep)
		}
	}
}

// FromFastHTTPResponse is ToFastHTTPResponse's inverse.
func FromFastHTTPResponse(src *fasthttp.Response) *message.Response {
	resp := message.NewResponse()
	resp.Status = strconv.Itoa(src.StatusCode())
	src.Header.VisitAll(func(k, v []byte) {
		resp.Entity.Headers.Add(bytes.ToLower(k), v)
	})
	resp.Entity.Body = append(resp.Entity.Body[:0], src.Body()...)
	return resp
}
