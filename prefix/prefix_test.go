package prefix

import "testing"

func TestEncodeDecodeIntRoundTrip(t *testing.T) {
	cases := []struct {
		n uint
		v uint64
	}{
		{5, 10}, {5, 31}, {5, 1337}, {7, 126}, {7, 127}, {7, 128},
		{8, 255}, {8, 256}, {1, 0}, {1, 1}, {1, 1000000},
	}

	for _, c := range cases {
		enc := EncodeInt(nil, c.n, c.v)
		got, consumed, err := DecodeInt(enc, c.n)
		if err != nil {
			t.Fatalf("DecodeInt(n=%d, v=%d): %v", c.n, c.v, err)
		}
		if got != c.v {
			t.Fatalf("DecodeInt(n=%d, v=%d) = %d", c.n, c.v, got)
		}
		if consumed != len(enc) {
			t.Fatalf("consumed = %d, want %d", consumed, len(enc))
		}
	}
}

// RFC 7541 C.1.1: 10 encoded with a 5-bit prefix is the single byte 1010.
func TestKnownVectorSmall(t *testing.T) {
	enc := EncodeInt(nil, 5, 10)
	if len(enc) != 1 || enc[0] != 10 {
		t.Fatalf("EncodeInt(5, 10) = %x", enc)
	}
}

// RFC 7541 C.1.2: 1337 encoded with a 5-bit prefix is 11111 10011010 00001010.
func TestKnownVectorLarge(t *testing.T) {
	enc := EncodeInt(nil, 5, 1337)
	want := []byte{0x1f, 0x9a, 0x0a}
	if len(enc) != len(want) {
		t.Fatalf("EncodeInt(5, 1337) = %x, want %x", enc, want)
	}
	for i := range want {
		if enc[i] != want[i] {
			t.Fatalf("EncodeInt(5, 1337) = %x, want %x", enc, want)
		}
	}
}

func TestDecodeIntTruncated(t *testing.T) {
	if _, _, err := DecodeInt(nil, 5); err != ErrTruncated {
		t.Fatalf("err = %v, want ErrTruncated", err)
	}
	// Prefix maxed out, but no continuation byte follows.
	if _, _, err := DecodeInt([]byte{0x1f}, 5); err != ErrTruncated {
		t.Fatalf("err = %v, want ErrTruncated", err)
	}
}

func TestStringRoundTripPlain(t *testing.T) {
	value := []byte("custom-header-value")
	enc := EncodeString(nil, 7, value, false)
	got, consumed, err := DecodeString(enc, 7)
	if err != nil {
		t.Fatalf("DecodeString: %v", err)
	}
	if string(got) != string(value) {
		t.Fatalf("got %q, want %q", got, value)
	}
	if consumed != len(enc) {
		t.Fatalf("consumed = %d, want %d", consumed, len(enc))
	}
}

func TestStringRoundTripHuffman(t *testing.T) {
	value := []byte("www.example.com")
	enc := EncodeString(nil, 7, value, true)

	if enc[0]&(1<<7) == 0 {
		t.Fatal("H bit not set")
	}

	got, consumed, err := DecodeString(enc, 7)
	if err != nil {
		t.Fatalf("DecodeString: %v", err)
	}
	if string(got) != string(value) {
		t.Fatalf("got %q, want %q", got, value)
	}
	if consumed != len(enc) {
		t.Fatalf("consumed = %d, want %d", consumed, len(enc))
	}
}

func TestStringTruncated(t *testing.T) {
	enc := EncodeString(nil, 7, []byte("hello"), false)
	if _, _, err := DecodeString(enc[:len(enc)-1], 7); err != ErrTruncated {
		t.Fatalf("err = %v, want ErrTruncated", err)
	}
}
