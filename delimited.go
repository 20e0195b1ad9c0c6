package swiftcodec

import (
	"strings"
	"unicode"
)

// Dialect describes one delimited-line format of the backslash family.
type Dialect struct {
	// Comma is the field delimiter.
	Comma byte
	// EscapeMarker, when non-zero, is the letter that stands for Comma after a backslash
	// in an unquoted field ('t' for tab-delimited lines).
	EscapeMarker byte
	// TrimSpace trims whitespace around unquoted field content.
	TrimSpace bool
	// PreserveEscapes keeps a backslash and the character after it together in unquoted
	// fields so UnescapeQuoted decodes the pair. When false, a backslash that does not
	// precede a quote or the EscapeMarker is dropped, which loses escaped backslashes
	// and control escapes written by EscapeTabDelimited.
	PreserveEscapes bool
}

var (
	// CSV is the comma-delimited dialect. Fields are always trimmed.
	CSV = Dialect{Comma: ',', TrimSpace: true}
	// TSV is the tab-delimited dialect. Fields keep their whitespace.
	TSV = Dialect{Comma: '\t', EscapeMarker: 't'}
)

// SplitCSVLine tokenizes one comma-delimited line. It returns nil for an empty or blank line.
func SplitCSVLine(line string) []string {
	return CSV.Split(line)
}

// SplitTabLine tokenizes one tab-delimited line. It returns nil for an empty line.
func SplitTabLine(line string, trimSpace bool) []string {
	d := TSV
	d.TrimSpace = trimSpace
	return d.Split(line)
}

// Split tokenizes one line into its unescaped fields. A line without content returns nil;
// a line holding a delimiter or a quote always yields at least one field.
func (d Dialect) Split(line string) []string {
	fields, _ := d.split(nil, line)
	return fields
}

func (d Dialect) comma() byte {
	if d.Comma == 0 {
		return ','
	}
	return d.Comma
}

func (d Dialect) unescape(field string) string {
	if d.TrimSpace {
		field = strings.TrimSpace(field)
	}
	return UnescapeQuoted(field, d.TrimSpace)
}

// split appends the fields of line to dst. openQuote is the 1-based column of a quote
// left open at the end of the line, or 0.
func (d Dialect) split(dst []string, line string) (fields []string, openQuote int) {
	if line == "" {
		return nil, 0
	}
	if d.TrimSpace && strings.TrimFunc(line, unicode.IsSpace) == "" {
		return nil, 0
	}

	comma := d.comma()
	var buf []byte
	sawDelim, sawQuote, inQuote := false, false, false
	fields = dst[:0]

	for i := 0; i < len(line); i++ {
		c := line[i]
		var c1 byte
		if i+1 < len(line) {
			c1 = line[i+1]
		}

		if inQuote {
			switch {
			case c == '\\' && i+1 < len(line):
				// Keep the pair intact for UnescapeQuoted.
				buf = append(buf, c, c1)
				i++
			case c == '"':
				inQuote = false
				openQuote = 0
			default:
				buf = append(buf, c)
			}
			continue
		}

		switch {
		case c == comma:
			fields = append(fields, d.unescape(string(buf)))
			buf = buf[:0]
			sawDelim = true
		case c == '\\':
			switch {
			case c1 == '"':
				buf = append(buf, '\\', '"')
				i++
			case d.EscapeMarker != 0 && c1 == d.EscapeMarker:
				buf = append(buf, comma)
				i++
			case d.PreserveEscapes && i+1 < len(line) && c1 != comma:
				buf = append(buf, '\\', c1)
				i++
			}
			// Any other backslash is dropped.
		case c == '"':
			inQuote = true
			sawQuote = true
			openQuote = i + 1
		default:
			buf = append(buf, c)
		}
	}

	if sawDelim || sawQuote || len(buf) > 0 {
		fields = append(fields, d.unescape(string(buf)))
	}
	if len(fields) == 0 {
		return nil, openQuote
	}
	return fields, openQuote
}
