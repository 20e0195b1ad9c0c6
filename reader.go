package swiftcodec

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

var (
	// ErrUnterminatedQuote is returned in Strict mode when a quoted field is not closed before the end of its line.
	ErrUnterminatedQuote = errors.New("swiftcodec: unterminated quoted field")
	// ErrFieldCount is returned when a record contains an unexpected number of fields.
	ErrFieldCount = errors.New("swiftcodec: wrong number of fields")
)

// ParseError contains location information for delimited-record errors.
type ParseError struct {
	Line   int
	Column int
	Err    error
}

// Error formats the parse error message with the stored line, column, and Err values.
func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}
	if e.Column == 0 {
		return fmt.Sprintf("swiftcodec: parse error on line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("swiftcodec: parse error on line %d, column %d: %v", e.Line, e.Column, e.Err)
}

// Unwrap returns the underlying Err so ParseError participates in errors.Unwrap.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Reader iterates over the records of an in-memory delimited document, one record per line.
// Lines end with "\n", "\r\n" or "\r"; empty lines are skipped.
type Reader struct {
	src string
	pos int

	// Dialect selects the delimiter and escaping rules. Default is CSV.
	Dialect Dialect
	// ReuseRecord indicates whether Read should reuse the backing array of the returned slice.
	ReuseRecord bool
	// FieldsPerRecord expects each record to contain this many fields. Zero captures the width
	// of the first record; a negative value disables the check.
	FieldsPerRecord int
	// Strict reports quoted fields left open at the end of a line as ErrUnterminatedQuote.
	Strict bool

	record []string
	line   int
}

// NewReader creates a Reader over the comma-delimited text src.
func NewReader(src string) *Reader {
	return &Reader{
		src:     src,
		Dialect: CSV,
		record:  make([]string, 0, 16),
	}
}

// NewTabReader creates a Reader over the tab-delimited text src. PreserveEscapes is set,
// so backslash and control escapes written by NewTabWriter decode back to their characters.
func NewTabReader(src string, trimSpace bool) *Reader {
	r := NewReader(src)
	r.Dialect = TSV
	r.Dialect.TrimSpace = trimSpace
	r.Dialect.PreserveEscapes = true
	return r
}

// Line reports the 1-based line number of the record most recently returned by Read.
func (r *Reader) Line() int {
	if r == nil {
		return 0
	}
	return r.line
}

// Read returns the next record. It returns io.EOF when no records remain. On ErrFieldCount
// the record is returned alongside the error.
func (r *Reader) Read() (dst []string, err error) {
	if r == nil {
		return nil, io.EOF
	}

	for r.pos < len(r.src) {
		line := r.nextLine()

		var buf []string
		if r.ReuseRecord {
			buf = r.record[:0]
		}
		fields, openQuote := r.Dialect.split(buf, line)
		if fields == nil {
			continue
		}
		if r.ReuseRecord {
			r.record = fields
		}

		if r.Strict && openQuote > 0 {
			return nil, &ParseError{Line: r.line, Column: openQuote, Err: ErrUnterminatedQuote}
		}

		switch {
		case r.FieldsPerRecord == 0:
			r.FieldsPerRecord = len(fields)
		case r.FieldsPerRecord > 0 && len(fields) != r.FieldsPerRecord:
			return fields, &ParseError{Line: r.line, Err: ErrFieldCount}
		}
		return fields, nil
	}
	return nil, io.EOF
}

// ReadAll exhausts the reader, repeatedly calling Read to collect records until io.EOF
// and returning the accumulated records slice plus the first non-EOF error encountered.
func (r *Reader) ReadAll() (records [][]string, err error) {
	reuse := false
	if r != nil {
		reuse, r.ReuseRecord = r.ReuseRecord, false
		defer func() { r.ReuseRecord = reuse }()
	}
	for {
		record, err := r.Read()
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
}

// nextLine slices the next line off src, consuming its terminator and advancing the line counter.
func (r *Reader) nextLine() string {
	rest := r.src[r.pos:]
	r.line++

	end := strings.IndexAny(rest, "\r\n")
	if end < 0 {
		r.pos = len(r.src)
		return rest
	}
	next := end + 1
	if rest[end] == '\r' && next < len(rest) && rest[next] == '\n' {
		next++
	}
	r.pos += next
	return rest[:end]
}
