package h1

// Export reconstructs the wire form of what has been parsed so far:
// "method SP target SP version CRLF (name ':' value CRLF)* CRLF body"
// for a request, or "version SP status SP reason CRLF ..." for a
// response. No normalization, quoting, or header reordering is applied
// — this is a faithful re-serialization of exactly what Headers/Body
// report, not a copy of the original wire bytes (optional whitespace
// around header values is not preserved, since it carries no meaning).
func (p *Parser) Export() []byte {
	var out []byte

	if p.isResponse {
		out = append(out, p.version...)
		out = append(out, sp)
		out = append(out, p.statusCode...)
		out = append(out, sp)
		out = append(out, p.reason...)
	} else {
		out = append(out, p.method...)
		out = append(out, sp)
		out = append(out, p.target...)
		out = append(out, sp)
		out = append(out, p.version...)
	}
	out = append(out, cr, lf)

	for _, h := range p.headers {
		out = append(out, h.Name...)
		out = append(out, colon)
		out = append(out, h.Value...)
		out = append(out, cr, lf)
	}
	out = append(out, cr, lf)
	out = append(out, p.body...)

	return out
}
