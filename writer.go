package swiftcodec

import (
	"bytes"
	"errors"
	"strings"
)

var errNilWriter = errors.New("swiftcodec: writer is nil")

// Tab-delimited writers also escape quotes so a leading quote is not read back as quoting.
var tabWriterRules = NewRuleset("\t\\\"", []string{`\t`, `\\`, `\"`}, false)

var tabWriterControlRules = NewRuleset("\t\\\"\r\n\a\b\v\f",
	[]string{`\t`, `\\`, `\"`, `\r`, `\n`, `\a`, `\b`, `\v`, `\f`}, true)

// Writer builds an in-memory delimited document in the backslash dialect.
// Comma-delimited output reads back with NewReader and tab-delimited output with
// NewTabReader. A Reader built by hand for tab-delimited text needs PreserveEscapes.
type Writer struct {
	buf bytes.Buffer

	// Comma is the field delimiter. Default is ','.
	Comma byte
	// UseCRLF writes records terminated with \r\n when set.
	UseCRLF bool
	// EscapeControl escapes control characters inside fields, keeping each record on one line.
	EscapeControl bool
	// AlwaysQuote wraps every non-tab-delimited field in double quotes.
	AlwaysQuote bool
}

// NewWriter creates a comma-delimited Writer.
func NewWriter() *Writer {
	return &Writer{Comma: ','}
}

// NewTabWriter creates a tab-delimited Writer.
func NewTabWriter() *Writer {
	return &Writer{Comma: '\t'}
}

// Reset discards everything written while preserving the configuration flags.
func (w *Writer) Reset() {
	if w == nil {
		panic(errNilWriter.Error())
	}
	w.buf.Reset()
}

// Write appends a single record terminated with the configured newline sequence.
func (w *Writer) Write(record []string) error {
	if w == nil {
		return errNilWriter
	}

	comma := w.Comma
	if comma == 0 {
		comma = ','
	}

	for i := range record {
		if i > 0 {
			w.buf.WriteByte(comma)
		}
		w.buf.WriteString(w.escapeField(record[i], comma))
	}

	if w.UseCRLF {
		w.buf.WriteString("\r\n")
	} else {
		w.buf.WriteByte('\n')
	}
	return nil
}

// WriteAll writes multiple records, stopping at the first error.
func (w *Writer) WriteAll(records [][]string) error {
	if w == nil {
		return errNilWriter
	}
	for _, record := range records {
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return nil
}

// Bytes returns the document written so far. The slice aliases the Writer's buffer.
func (w *Writer) Bytes() []byte {
	if w == nil {
		return nil
	}
	return w.buf.Bytes()
}

// String returns the document written so far.
func (w *Writer) String() string {
	if w == nil {
		return ""
	}
	return w.buf.String()
}

// Len reports the number of bytes written so far.
func (w *Writer) Len() int {
	if w == nil {
		return 0
	}
	return w.buf.Len()
}

func (w *Writer) escapeField(field string, comma byte) string {
	switch comma {
	case '\t':
		if w.EscapeControl {
			return tabWriterControlRules.Escape(field)
		}
		return tabWriterRules.Escape(field)
	case ',':
		if w.AlwaysQuote {
			return quoteField(field, w.EscapeControl)
		}
		return EscapeCSV(field, w.EscapeControl)
	}

	if w.AlwaysQuote || strings.IndexByte(field, comma) >= 0 {
		return quoteField(field, w.EscapeControl)
	}
	return EscapeCSV(field, w.EscapeControl)
}

// quoteField wraps field in double quotes, escaping its content.
func quoteField(field string, escapeControl bool) string {
	rs := CSVRules
	if escapeControl {
		rs = CSVControlRules
	}
	return `"` + rs.Escape(field) + `"`
}

// JoinLine renders fields as one line of d, without a line terminator.
func JoinLine(d Dialect, fields []string) string {
	w := Writer{Comma: d.comma(), EscapeControl: true}
	for i, f := range fields {
		if i > 0 {
			w.buf.WriteByte(w.Comma)
		}
		w.buf.WriteString(w.escapeField(f, w.Comma))
	}
	return w.buf.String()
}
