package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/oleg578/swiftcodec"
	"github.com/oleg578/swiftcodec/internal/config"
	"github.com/oleg578/swiftcodec/internal/output"
)

type dialectFlags struct {
	format string
	comma  string
}

func (f *dialectFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.format, "dialect", "d", "", "delimited format: csv or tsv (default from config)")
	cmd.Flags().StringVar(&f.comma, "comma", "", "single-character delimiter for the csv format")
}

// apply overlays the flags on the configured dialect section.
func (f *dialectFlags) apply(cfg config.DialectConfig) (config.DialectConfig, error) {
	if f.format != "" {
		cfg.Format = f.format
	}
	if f.comma != "" {
		cfg.Comma = f.comma
	}
	check := config.Default()
	check.Dialect = cfg
	if err := check.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// newSplitCmd creates the split command
func newSplitCmd(a *app) *cobra.Command {
	var (
		dialect dialectFlags
		format  string
		header  bool
		strict  bool
		fields  int
	)

	cmd := &cobra.Command{
		Use:   "split [file]",
		Short: "Split backslash-escaped CSV or TSV records into fields",
		Long: `Split backslash-escaped CSV or TSV records and print their fields as a table,
YAML, JSON, or re-escaped CSV/TSV.

Examples:
  swiftcodec split --header data.csv
  swiftcodec split --dialect tsv --format yaml < data.tsv
  swiftcodec split --format json --input-encoding latin1 legacy.csv`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				a.inputPath = args[0]
			}
			text, err := a.readText(cmd, nil)
			if err != nil {
				return err
			}

			dc, err := dialect.apply(a.cfg.Dialect)
			if err != nil {
				return err
			}
			r := swiftcodec.NewReader(text)
			r.Dialect = dc.Delimited()
			r.Strict = strict
			r.FieldsPerRecord = fields

			records, err := r.ReadAll()
			if err != nil {
				return fmt.Errorf("split input: %w", err)
			}
			a.log.WithFields(logrus.Fields{
				"records": len(records),
				"dialect": dc.Format,
			}).Debug("split records")

			if format == "" {
				format = a.cfg.Output.Format
			}
			p, err := output.NewPrinter(cmd.OutOrStdout(), format, a.cfg.Output.Color, r.Dialect)
			if err != nil {
				return err
			}
			p.UseCRLF = dc.UseCRLF
			return p.Records(records, header)
		},
	}

	dialect.register(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: "+strings.Join(config.OutputFormats, ", ")+" (default from config)")
	cmd.Flags().BoolVar(&header, "header", false, "treat the first record as column names")
	cmd.Flags().BoolVar(&strict, "strict", false, "fail on quoted fields left open at the end of a line")
	cmd.Flags().IntVar(&fields, "fields", -1, "expected fields per record; 0 uses the width of the first record, negative disables the check")

	return cmd
}

// newJoinCmd creates the join command
func newJoinCmd(a *app) *cobra.Command {
	var dialect dialectFlags

	cmd := &cobra.Command{
		Use:   "join [file]",
		Short: "Join YAML or JSON records into backslash-escaped CSV or TSV lines",
		Long: `Read a YAML or JSON list of records (each a list of strings) and write them
as backslash-escaped CSV or TSV lines. The output of "split --format yaml" or
"split --format json" is accepted as is.

Examples:
  swiftcodec split --format yaml data.csv | swiftcodec join --dialect tsv`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				a.inputPath = args[0]
			}
			text, err := a.readText(cmd, nil)
			if err != nil {
				return err
			}

			records, err := decodeRecords(text)
			if err != nil {
				return err
			}

			dc, err := dialect.apply(a.cfg.Dialect)
			if err != nil {
				return err
			}
			d := dc.Delimited()

			w := swiftcodec.NewWriter()
			w.Comma = d.Comma
			w.EscapeControl = dc.EscapeControl
			w.UseCRLF = dc.UseCRLF
			if err := w.WriteAll(records); err != nil {
				return err
			}
			a.log.WithFields(logrus.Fields{
				"records": len(records),
				"bytes":   w.Len(),
			}).Debug("joined records")

			_, err = cmd.OutOrStdout().Write(w.Bytes())
			return err
		},
	}

	dialect.register(cmd)

	return cmd
}

// decodeRecords parses a YAML document (JSON included) holding a list of string lists.
func decodeRecords(text string) ([][]string, error) {
	var records [][]string
	dec := yaml.NewDecoder(strings.NewReader(text))
	if err := dec.Decode(&records); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("yaml unmarshal records: %w", err)
	}
	return records, nil
}
