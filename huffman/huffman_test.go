package huffman

import (
	"bytes"
	"encoding/hex"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	cases := []string{
		"",
		"a",
		"www.example.com",
		"no-cache",
		"custom-key",
		"custom-value",
		string([]byte{0, 1, 2, 3, 255, 254}),
	}

	for _, s := range cases {
		enc := Encode(nil, []byte(s))
		got, err := Decode(nil, enc)
		if err != nil {
			t.Fatalf("decode(encode(%q)): %v", s, err)
		}
		if string(got) != s {
			t.Fatalf("round trip %q -> %q", s, got)
		}
	}
}

// RFC 7541 C.4.1: the Huffman encoding of "www.example.com".
func TestKnownVector(t *testing.T) {
	want, _ := hex.DecodeString("f1e3c2e5f23a6ba0ab90f4ff")
	got := Encode(nil, []byte("www.example.com"))
	if !bytes.Equal(got, want) {
		t.Fatalf("encode(www.example.com) = %x, want %x", got, want)
	}

	decoded, err := Decode(nil, want)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if string(decoded) != "www.example.com" {
		t.Fatalf("decode(%x) = %q", want, decoded)
	}
}

func TestEncodedLenMatchesEncode(t *testing.T) {
	s := []byte("accept-encoding: gzip, deflate")
	if got, want := EncodedLen(s), len(Encode(nil, s)); got != want {
		t.Fatalf("EncodedLen = %d, len(Encode) = %d", got, want)
	}
}

func TestDecodeRejectsBadPadding(t *testing.T) {
	// 'a' is 5 bits (0x3), followed by three 0 bits: not all-1s padding.
	if _, err := Decode(nil, []byte{0x18}); err == nil {
		t.Fatal("expected error for non-1 padding")
	}
}
