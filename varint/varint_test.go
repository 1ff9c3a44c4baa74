package varint

import "testing"

func TestRoundTrip(t *testing.T) {
	cases := []uint64{0, 1, 37, 63, 64, 16383, 16384, 1073741823, 1073741824, MaxValue}

	for _, v := range cases {
		enc, err := Encode(nil, v)
		if err != nil {
			t.Fatalf("encode(%d): %v", v, err)
		}

		if len(enc) != Len(v) {
			t.Fatalf("encode(%d) length = %d, want %d (not minimal)", v, len(enc), Len(v))
		}

		got, n, err := Decode(enc)
		if err != nil {
			t.Fatalf("decode(%d): %v", v, err)
		}

		if n != len(enc) {
			t.Fatalf("decode(%d) consumed %d bytes, want %d", v, n, len(enc))
		}

		if got != v {
			t.Fatalf("decode(encode(%d)) = %d", v, got)
		}
	}
}

func TestOverflow(t *testing.T) {
	if _, err := Encode(nil, MaxValue+1); err != ErrOverflow {
		t.Fatalf("expected ErrOverflow, got %v", err)
	}
}

func TestTruncated(t *testing.T) {
	if _, _, err := Decode(nil); err != ErrTruncated {
		t.Fatalf("expected ErrTruncated on empty input, got %v", err)
	}

	full, _ := Encode(nil, 16384)
	if _, _, err := Decode(full[:1]); err != ErrTruncated {
		t.Fatalf("expected ErrTruncated on short input, got %v", err)
	}
}

func TestMinimalLengthPrefix(t *testing.T) {
	enc, _ := Encode(nil, 37)
	if enc[0]>>6 != 0 {
		t.Fatalf("expected 1-byte prefix bits 00, got %02x", enc[0])
	}

	enc, _ = Encode(nil, 15293)
	if enc[0]>>6 != 1 {
		t.Fatalf("expected 2-byte prefix bits 01, got %02x", enc[0])
	}
}
