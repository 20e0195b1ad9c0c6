package swiftcodec

import (
	"bytes"
	"errors"
	"testing"
)

func FuzzBase62RoundTrip(f *testing.F) {
	seeds := [][]byte{
		{},
		{0x00},
		{0xFF},
		{0xF0, 0x0F},
		{0xFF, 0xFF, 0xFF, 0xFF, 0xFF},
		[]byte("hello, world"),
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, input []byte) {
		if len(input) > 1<<12 {
			t.Skip()
		}

		enc := EncodeBase62(input)
		out, err := DecodeBase62(enc)
		if err != nil {
			t.Fatalf("DecodeBase62(%q) error = %v, input=%x", enc, err, input)
		}
		if !bytes.Equal(out, input) {
			t.Fatalf("round trip mismatch: input=%x output=%x encoded=%q", input, out, enc)
		}
	})
}

func FuzzBase62DecodeCanonical(f *testing.F) {
	seeds := []string{"", "A", "AA", "AE", "9H", "AAA8", "AAA8A", "9999999f", "zz09"}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, input string) {
		if len(input) > 1<<12 {
			t.Skip()
		}

		out, err := DecodeBase62(input)
		if err != nil {
			if !errors.Is(err, ErrMalformedInput) {
				t.Fatalf("DecodeBase62(%q) error %v does not wrap ErrMalformedInput", input, err)
			}
			if out != nil {
				t.Fatalf("DecodeBase62(%q) returned partial output %x", input, out)
			}
			return
		}
		// Every accepted string is the unique encoding of its bytes.
		if enc := EncodeBase62(out); enc != input {
			t.Fatalf("non-canonical input accepted: input=%q decoded=%x re-encoded=%q", input, out, enc)
		}
	})
}
