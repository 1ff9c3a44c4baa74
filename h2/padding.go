package h2

import "github.com/valyala/fastrand"

// RandomPadLength picks a pseudo-random PADDED length for a DATA, HEADERS
// or PUSH_PROMISE frame, mirroring the teacher's http2utils.AddPadding
// (`fastrand.Uint32n(256-9) + 9`): a single byte in [9, 255], clear of the
// 9-byte frame-header-sized edge cases that AddPadding avoided.
func RandomPadLength() uint8 {
	return uint8(fastrand.Uint32n(256-9) + 9)
}
