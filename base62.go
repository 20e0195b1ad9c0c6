package swiftcodec

import (
	"errors"
	"fmt"
	"io"
	"math/bits"
	"strings"
	"unicode"
)

// Base62Alphabet is the symbol table used by EncodeBase62. Indices 60 ('8') and 61 ('9')
// double as escape symbols that carry only 5 bits.
const Base62Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

const (
	escape11110 = 60
	escape11111 = 61
)

// ErrMalformedInput is returned when a string is not a canonical base62 encoding.
var ErrMalformedInput = errors.New("swiftcodec: malformed base62 input")

var base62Index = func() (t [256]int8) {
	for i := range t {
		t[i] = -1
	}
	for i := 0; i < len(Base62Alphabet); i++ {
		t[Base62Alphabet[i]] = int8(i)
	}
	return t
}()

// DecodeError reports the offending symbol of a rejected base62 string.
type DecodeError struct {
	Offset int
	Symbol byte
	Reason string
}

// Error formats the decode failure with its offset and reason.
func (e *DecodeError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("swiftcodec: malformed base62 input at offset %d (%q): %s", e.Offset, e.Symbol, e.Reason)
}

// Unwrap returns ErrMalformedInput so DecodeError matches it with errors.Is.
func (e *DecodeError) Unwrap() error {
	if e == nil {
		return nil
	}
	return ErrMalformedInput
}

// EncodeBase62 returns the base62 text form of src. An empty src encodes to "".
func EncodeBase62(src []byte) string {
	if len(src) == 0 {
		return ""
	}
	return string(AppendBase62(make([]byte, 0, len(src)*3/2), src))
}

// AppendBase62 appends the base62 encoding of src to dst and returns the extended slice.
//
// The input is consumed in 6-bit groups. A group whose top five bits are 11110 or 11111
// is written as symbol 60 or 61 and only those five bits are consumed; the sixth bit starts
// the next group. The final group of k < 6 bits is written as the symbol whose index is
// the k-bit value.
func AppendBase62(dst, src []byte) []byte {
	if len(src) == 0 {
		return dst
	}
	bb := NewBitBufferFrom(src)
	for {
		v, n := bb.ReadBits(6)
		switch {
		case n == 0:
			return dst
		case n < 6:
			return append(dst, Base62Alphabet[v>>(8-n)])
		}

		switch v >> 3 {
		case 0x1f:
			dst = append(dst, Base62Alphabet[escape11111])
			bb.Seek(-1, io.SeekCurrent)
		case 0x1e:
			dst = append(dst, Base62Alphabet[escape11110])
			bb.Seek(-1, io.SeekCurrent)
		default:
			dst = append(dst, Base62Alphabet[v>>2])
		}
	}
}

// DecodeBase62 returns the bytes encoded by s. An empty s decodes to an empty slice.
// Decoding is all-or-nothing: any error returns nil bytes and a *DecodeError wrapping ErrMalformedInput.
func DecodeBase62(s string) ([]byte, error) {
	if len(s) == 0 {
		return []byte{}, nil
	}

	bb := NewBitBuffer(len(s)*6/8 + 1)
	last := len(s) - 1
	for i := 0; i < last; i++ {
		idx := base62Index[s[i]]
		switch idx {
		case -1:
			return nil, &DecodeError{Offset: i, Symbol: s[i], Reason: "symbol outside alphabet"}
		case escape11110:
			bb.WriteBits(0xf0, 5)
		case escape11111:
			bb.WriteBits(0xf8, 5)
		default:
			bb.WriteBits(byte(idx)<<2, 6)
		}
	}

	// The final symbol pads the stream to a byte boundary and must carry no stray bits.
	idx := base62Index[s[last]]
	if idx == -1 {
		return nil, &DecodeError{Offset: last, Symbol: s[last], Reason: "symbol outside alphabet"}
	}
	mod := bb.Position() % 8
	switch {
	case mod == 0:
		return nil, &DecodeError{Offset: last, Symbol: s[last], Reason: "trailing symbol at byte boundary"}
	case mod == 1:
		return nil, &DecodeError{Offset: last, Symbol: s[last], Reason: "trailing symbol spans more than six bits"}
	case int(idx)>>(8-mod) != 0:
		return nil, &DecodeError{Offset: last, Symbol: s[last], Reason: "trailing symbol has stray high bits"}
	case mod == 2 && idx >= escape11110:
		return nil, &DecodeError{Offset: last, Symbol: s[last], Reason: "escape symbol cannot end the stream"}
	}
	bb.WriteBits(byte(idx)<<mod, 8-mod)

	return bb.Bytes()[:bb.Position()/8], nil
}

// FormatBase62Int returns v as a positional base62 number over Base62Alphabet, most
// significant symbol first. Negative values are formatted as their uint64 bit pattern.
// Unlike EncodeBase62 there are no escape symbols: 0 is "A" and 62 is "BA".
func FormatBase62Int(v int64) string {
	u := uint64(v)
	if u == 0 {
		return Base62Alphabet[:1]
	}
	var buf [11]byte
	i := len(buf)
	for u != 0 {
		i--
		buf[i] = Base62Alphabet[u%62]
		u /= 62
	}
	return string(buf[i:])
}

// ParseBase62Int parses a number written by FormatBase62Int. Surrounding whitespace is
// ignored and a blank s parses as 0. Values above 64 bits are rejected.
func ParseBase62Int(s string) (int64, error) {
	start := len(s) - len(strings.TrimLeftFunc(s, unicode.IsSpace))
	end := len(strings.TrimRightFunc(s, unicode.IsSpace))

	var u uint64
	for i := start; i < end; i++ {
		idx := base62Index[s[i]]
		if idx == -1 {
			return 0, &DecodeError{Offset: i, Symbol: s[i], Reason: "symbol outside alphabet"}
		}
		hi, lo := bits.Mul64(u, 62)
		sum, carry := bits.Add64(lo, uint64(idx), 0)
		if hi != 0 || carry != 0 {
			return 0, &DecodeError{Offset: i, Symbol: s[i], Reason: "value overflows 64 bits"}
		}
		u = sum
	}
	return int64(u), nil
}
