// Package output renders delimited records for the terminal or for other programs.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-isatty"
	"gopkg.in/yaml.v3"

	"github.com/oleg578/swiftcodec"
)

// Printer writes records in one output format.
type Printer struct {
	w       io.Writer
	format  string
	color   bool
	dialect swiftcodec.Dialect
	// UseCRLF terminates csv and tsv records with \r\n.
	UseCRLF bool
}

// NewPrinter creates a Printer. colorMode is auto, always or never; auto colors
// only when w is a terminal. dialect is used by the csv format.
func NewPrinter(w io.Writer, format, colorMode string, dialect swiftcodec.Dialect) (*Printer, error) {
	p := &Printer{w: w, format: strings.ToLower(format), dialect: dialect}
	switch p.format {
	case "table", "yaml", "json", "csv", "tsv":
	default:
		return nil, fmt.Errorf("unsupported output format %q", format)
	}

	switch strings.ToLower(colorMode) {
	case "always":
		p.color = true
	case "never":
	default:
		p.color = IsTerminal(w)
	}
	return p, nil
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Records writes records. With header set, the first record labels the columns
// of the table format and becomes the mapping keys of the yaml and json formats.
func (p *Printer) Records(records [][]string, header bool) error {
	switch p.format {
	case "table":
		return p.table(records, header)
	case "yaml", "json":
		var v any = records
		if header && len(records) > 0 {
			v = keyed(records[0], records[1:])
		}
		return p.Value(v)
	case "csv", "tsv":
		w := swiftcodec.NewWriter()
		if p.format == "tsv" {
			w = swiftcodec.NewTabWriter()
		} else if p.dialect.Comma != 0 && p.dialect.Comma != '\t' && p.dialect.EscapeMarker == 0 {
			// only a comma-style input delimiter carries over to csv output
			w.Comma = p.dialect.Comma
		}
		w.EscapeControl = true
		w.UseCRLF = p.UseCRLF
		if err := w.WriteAll(records); err != nil {
			return err
		}
		_, err := p.w.Write(w.Bytes())
		return err
	}
	return nil
}

// Value writes v as yaml or json. Other formats fall back to yaml.
func (p *Printer) Value(v any) error {
	if p.format == "json" {
		enc := json.NewEncoder(p.w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("json encode: %w", err)
		}
		return nil
	}

	enc := yaml.NewEncoder(p.w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("yaml encode: %w", err)
	}
	return enc.Close()
}

func (p *Printer) table(records [][]string, header bool) error {
	if len(records) == 0 {
		return nil
	}

	headerStyle := lipgloss.NewStyle().Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	borderStyle := lipgloss.NewStyle()
	if p.color {
		headerStyle = headerStyle.Bold(true).Foreground(lipgloss.Color("6"))
		borderStyle = borderStyle.Foreground(lipgloss.Color("8"))
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	rows := records
	if header {
		t = t.Headers(visible(records[0])...)
		rows = records[1:]
	}
	for _, rec := range rows {
		t = t.Row(visible(rec)...)
	}

	_, err := fmt.Fprintln(p.w, t.Render())
	return err
}

// visible escapes control characters so every cell renders on one line.
func visible(fields []string) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = swiftcodec.EscapeTabDelimited(f, true)
	}
	return out
}

// keyed turns rows into maps keyed by header. Extra fields are keyed by their 1-based column.
func keyed(header []string, rows [][]string) []map[string]string {
	out := make([]map[string]string, 0, len(rows))
	for _, row := range rows {
		m := make(map[string]string, len(row))
		for i, v := range row {
			key := fmt.Sprintf("column%d", i+1)
			if i < len(header) && header[i] != "" {
				key = header[i]
			}
			m[key] = v
		}
		out = append(out, m)
	}
	return out
}
