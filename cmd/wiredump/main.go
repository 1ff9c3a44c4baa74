// Command wiredump decodes a captured HTTP/1.1 or HTTP/2 byte stream and
// pretty-prints the result, the small "main driving the library" shape the
// teacher uses in demo/main.go and examples/proxy/main.go.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/go-httpwire/httpwire/h1"
	"github.com/go-httpwire/httpwire/h2"
)

// clientPreface is the HTTP/2 connection preface (RFC 9113 §3.4), mirrored
// from the teacher's http2Preface constant in http2.go.
var clientPreface = []byte("PRI * HTTP/2.0\r\n\r\nSM\r\n\r\n")

func main() {
	path := flag.String("f", "", "path to a captured byte stream (defaults to stdin)")
	asResponse := flag.Bool("response", false, "parse HTTP/1.1 input as a response, not a request")
	flag.Parse()

	data, err := readInput(*path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "wiredump:", err)
		os.Exit(1)
	}

	useColor := isatty.IsTerminal(os.Stdout.Fd())

	if len(data) >= len(clientPreface) && string(data[:len(clientPreface)]) == string(clientPreface) {
		dumpH2(data[len(clientPreface):], useColor)
		return
	}
	if looksLikeFrames(data) {
		dumpH2(data, useColor)
		return
	}
	dumpH1(data, *asResponse, useColor)
}

func readInput(path string) ([]byte, error) {
	if path == "" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

// looksLikeFrames is a cheap heuristic: raw H/2 frame streams (no preface,
// e.g. the server-to-client half of a capture) start with a plausible
// 9-byte frame header whose type byte is one this module knows.
func looksLikeFrames(data []byte) bool {
	if len(data) < h2.FrameHeaderSize {
		return false
	}
	h, err := h2.DecodeFrameHeader(data)
	if err != nil {
		return false
	}
	return h.Type <= h2.FrameContinuation
}

func dumpH1(data []byte, asResponse, useColor bool) {
	var p *h1.Parser
	if asResponse {
		p = h1.NewResponseParser()
	} else {
		p = h1.NewRequestParser()
	}

	if _, err := p.Feed(data); err != nil {
		fmt.Fprintln(os.Stderr, "wiredump: parse error:", err)
	}

	label := colorer(useColor, color.FgCyan)
	field := colorer(useColor, color.FgYellow)

	if asResponse {
		fmt.Printf("%s %s %s\n", p.Version(), label(p.StatusCode()), p.Reason())
	} else {
		fmt.Printf("%s %s %s\n", label(p.Method()), p.Target(), p.Version())
	}
	for _, hf := range p.Headers() {
		fmt.Printf("  %s: %s\n", field(string(hf.Name)), hf.Value)
	}
	if body := p.Body(); len(body) > 0 {
		fmt.Printf("\n%s\n", body)
	}
	for _, off := range p.Errors() {
		fmt.Fprintf(os.Stderr, "wiredump: recovered leniently at offset %d\n", off)
	}
}

func dumpH2(data []byte, useColor bool) {
	label := colorer(useColor, color.FgMagenta)

	for len(data) > 0 {
		h, frame, err := h2.DecodeFrame(data)
		if err != nil && err != h2.ErrLengthExcess {
			fmt.Fprintln(os.Stderr, "wiredump: frame error:", err)
			return
		}
		fmt.Printf("%s stream=%d length=%d flags=%02x: %+v\n",
			label(frameTypeName(h.Type)), h.StreamID, h.Length, h.Flags, frame)

		consumed := h2.FrameHeaderSize + h.Length
		if consumed > len(data) {
			return
		}
		data = data[consumed:]
	}
}

func frameTypeName(t h2.FrameType) string {
	switch t {
	case h2.FrameData:
		return "DATA"
	case h2.FrameHeaders:
		return "HEADERS"
	case h2.FramePriority:
		return "PRIORITY"
	case h2.FrameRSTStream:
		return "RST_STREAM"
	case h2.FrameSettings:
		return "SETTINGS"
	case h2.FramePushPromise:
		return "PUSH_PROMISE"
	case h2.FramePing:
		return "PING"
	case h2.FrameGoAway:
		return "GOAWAY"
	case h2.FrameWindowUpdate:
		return "WINDOW_UPDATE"
	case h2.FrameContinuation:
		return "CONTINUATION"
	default:
		return "UNKNOWN"
	}
}

func colorer(enabled bool, attr color.Attribute) func(a ...interface{}) string {
	c := color.New(attr)
	c.EnableColor()
	if !enabled {
		return fmt.Sprint
	}
	return c.Sprint
}
