package swiftcodec

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

func hexVal(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

// parseHex decodes the n hex digits at the start of s.
func parseHex(s string, n int) (rune, bool) {
	if len(s) < n {
		return 0, false
	}
	var r rune
	for i := 0; i < n; i++ {
		d, ok := hexVal(s[i])
		if !ok {
			return 0, false
		}
		r = r<<4 | rune(d)
	}
	return r, true
}

func isOctal(c byte) bool {
	return c >= '0' && c <= '7'
}

// UnescapeCString reverses EscapeCString. It understands \a \b \f \v \n \r \t \\, \xHH,
// \uHHHH, \UHHHHHHHH and three-digit octal \ooo; any other escaped character is kept as is.
// Malformed numeric escapes and a trailing lone backslash are copied literally.
func UnescapeCString(s string) string {
	if strings.TrimSpace(s) == "" || strings.IndexByte(s, '\\') < 0 {
		return s
	}

	b := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i == len(s)-1 {
			b = append(b, c)
			continue
		}
		i++
		switch e := s[i]; e {
		case 'a':
			b = append(b, '\a')
		case 'b':
			b = append(b, '\b')
		case 'f':
			b = append(b, '\f')
		case 'v':
			b = append(b, '\v')
		case 'n':
			b = append(b, '\n')
		case 'r':
			b = append(b, '\r')
		case 't':
			b = append(b, '\t')
		case 'x', 'X':
			if r, ok := parseHex(s[i+1:], 2); ok {
				b = append(b, byte(r))
				i += 2
			} else {
				b = append(b, e)
			}
		case 'u', 'U':
			n := 4
			if e == 'U' {
				n = 8
			}
			if r, ok := parseHex(s[i+1:], n); ok && utf8.ValidRune(r) {
				b = utf8.AppendRune(b, r)
				i += n
			} else {
				b = append(b, e)
			}
		default:
			if isOctal(e) && i+2 < len(s) && isOctal(s[i+1]) && isOctal(s[i+2]) {
				v := int(e-'0')<<6 | int(s[i+1]-'0')<<3 | int(s[i+2]-'0')
				if v <= 0xFF {
					b = append(b, byte(v))
					i += 2
					continue
				}
			}
			b = append(b, e)
		}
	}
	return string(b)
}

// UnescapeCSVField decodes one field of the backslash CSV dialect. See UnescapeQuoted.
func UnescapeCSVField(s string, trimSpace bool) string {
	return UnescapeQuoted(s, trimSpace)
}

// UnescapeTabField decodes one field of the tab-delimited dialect. See UnescapeQuoted.
func UnescapeTabField(s string, trimSpace bool) string {
	return UnescapeQuoted(s, trimSpace)
}

// UnescapeQuoted decodes a delimited field. If the first non-space character is a double quote,
// the field runs to the next unescaped double quote and is returned untrimmed. Otherwise leading
// space is skipped and the result trimmed when trimSpace is set.
//
// Inside the field \n \r \t \a \b \v \f decode to control characters, \xHH to that byte and any
// other escaped character to itself. A trailing lone backslash is dropped and an incomplete
// \x sequence keeps the 'x'.
func UnescapeQuoted(s string, trimSpace bool) string {
	body := strings.TrimLeftFunc(s, unicode.IsSpace)
	if body == "" {
		if trimSpace {
			return ""
		}
		return s
	}

	quoted := body[0] == '"'
	src := s
	switch {
	case quoted:
		src = body[1:]
	case trimSpace:
		src = body
	}

	if !quoted && strings.IndexByte(src, '\\') < 0 {
		if trimSpace {
			return strings.TrimRightFunc(src, unicode.IsSpace)
		}
		return src
	}

	b := make([]byte, 0, len(src))
	for i := 0; i < len(src); i++ {
		c := src[i]
		switch {
		case c == '\\':
			i++
			if i == len(src) {
				break
			}
			switch c = src[i]; c {
			case 'n':
				c = '\n'
			case 'r':
				c = '\r'
			case 't':
				c = '\t'
			case 'a':
				c = '\a'
			case 'b':
				c = '\b'
			case 'v':
				c = '\v'
			case 'f':
				c = '\f'
			case 'x', 'X':
				if r, ok := parseHex(src[i+1:], 2); ok {
					c = byte(r)
					i += 2
				}
			}
			b = append(b, c)
		case quoted && c == '"':
			return string(b)
		default:
			b = append(b, c)
		}
	}

	if trimSpace {
		return strings.TrimFunc(string(b), unicode.IsSpace)
	}
	return string(b)
}
