package cli

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/oleg578/swiftcodec"
)

var escapeModes = []string{"c", "json", "json-single", "csv", "tsv", "cdata"}

// newEscapeCmd creates the escape command
func newEscapeCmd(a *app) *cobra.Command {
	var (
		mode        string
		control     bool
		quote       string
		keepNewline bool
	)

	cmd := &cobra.Command{
		Use:   "escape [text...]",
		Short: "Escape text for a C, JSON, CSV, TSV or CDATA context",
		Long: `Escape text for a C, JSON, CSV, TSV or CDATA context.

Modes: ` + strings.Join(escapeModes, ", ") + `

Examples:
  swiftcodec escape --mode c 'tab	here'
  swiftcodec escape --mode json --quote "'" "it's"
  swiftcodec escape --mode csv --control < field.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := a.readText(cmd, args)
			if err != nil {
				return err
			}
			if len(args) == 0 && !keepNewline {
				text = trimNewline(text)
			}

			var out string
			switch strings.ToLower(mode) {
			case "c":
				out = swiftcodec.EscapeCString(text)
			case "json":
				q, err := quoteRune(quote)
				if err != nil {
					return err
				}
				out = swiftcodec.EscapeJSON(text, q)
			case "json-single":
				out = swiftcodec.EscapeJSON(text, '\'')
			case "csv":
				out = swiftcodec.EscapeCSV(text, control)
			case "tsv":
				out = swiftcodec.EscapeTabDelimited(text, control)
			case "cdata":
				out = swiftcodec.EscapeCDATA(text)
			default:
				return fmt.Errorf("unknown escape mode %q (one of %s)", mode, strings.Join(escapeModes, ", "))
			}

			a.log.WithFields(logrus.Fields{
				"mode":    mode,
				"changed": out != text,
			}).Debug("escaped input")

			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}

	cmd.Flags().StringVarP(&mode, "mode", "m", "c", "escape mode: "+strings.Join(escapeModes, ", "))
	cmd.Flags().BoolVar(&control, "control", true, "escape control characters in csv and tsv modes")
	cmd.Flags().StringVar(&quote, "quote", `"`, "quote character for json mode")
	cmd.Flags().BoolVar(&keepNewline, "keep-newline", false, "keep the trailing newline of stdin or --in input")

	return cmd
}

func quoteRune(s string) (rune, error) {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || size != len(s) || r == utf8.RuneError {
		return 0, fmt.Errorf("--quote must be a single character, got %q", s)
	}
	return r, nil
}

var unescapeModes = []string{"c", "csv", "tsv"}

// newUnescapeCmd creates the unescape command
func newUnescapeCmd(a *app) *cobra.Command {
	var (
		mode        string
		trim        bool
		keepNewline bool
	)

	cmd := &cobra.Command{
		Use:   "unescape [text...]",
		Short: "Reverse C string escapes or decode one CSV/TSV field",
		Long: `Reverse C string escapes or decode one backslash-escaped CSV/TSV field.

Modes: ` + strings.Join(unescapeModes, ", ") + `

Examples:
  swiftcodec unescape --mode c 'café\n'
  swiftcodec unescape --mode csv --trim ' "a,b\"c" '`,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := a.readText(cmd, args)
			if err != nil {
				return err
			}
			if len(args) == 0 && !keepNewline {
				text = trimNewline(text)
			}

			var out string
			switch strings.ToLower(mode) {
			case "c":
				out = swiftcodec.UnescapeCString(text)
			case "csv":
				out = swiftcodec.UnescapeCSVField(text, trim)
			case "tsv":
				out = swiftcodec.UnescapeTabField(text, trim)
			default:
				return fmt.Errorf("unknown unescape mode %q (one of %s)", mode, strings.Join(unescapeModes, ", "))
			}

			a.log.WithField("mode", mode).Debug("unescaped input")

			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}

	cmd.Flags().StringVarP(&mode, "mode", "m", "c", "unescape mode: "+strings.Join(unescapeModes, ", "))
	cmd.Flags().BoolVar(&trim, "trim", false, "trim whitespace around unquoted csv and tsv fields")
	cmd.Flags().BoolVar(&keepNewline, "keep-newline", false, "keep the trailing newline of stdin or --in input")

	return cmd
}
