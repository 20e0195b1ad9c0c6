// Package cli implements the swiftcodec command tree.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/oleg578/swiftcodec/internal/config"
	"github.com/oleg578/swiftcodec/internal/logging"
	"github.com/oleg578/swiftcodec/internal/textenc"
)

// skipConfigAnnotation marks commands that run on the default configuration
// without reading the config file.
const skipConfigAnnotation = "swiftcodec/skip-config"

// app holds the state shared by all subcommands of one invocation.
type app struct {
	configPath    string
	logLevel      string
	logFile       string
	inputEncoding string
	normalization string
	inputPath     string

	cfg       *config.Config
	log       *logrus.Logger
	logCloser io.Closer
}

// NewRootCmd creates the root cobra command
func NewRootCmd(version, commit, date string) *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "swiftcodec",
		Short: "Lossless text codecs: base62 tokens, string escaping and backslash CSV/TSV",
		Long: `swiftcodec packs binary data into base62 tokens, escapes and unescapes strings
for C, JSON, CSV, TSV and CDATA contexts, and splits or joins backslash-escaped
delimited records.

Input is taken from the arguments when given, otherwise from --in or stdin.`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			if a.logCloser != nil {
				return a.logCloser.Close()
			}
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (default is $XDG_CONFIG_HOME/swiftcodec/config.yaml)")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: panic, fatal, error, warn, info, debug, trace")
	flags.StringVar(&a.logFile, "log-file", "", "write logs to this rotating file instead of stderr")
	flags.StringVar(&a.inputEncoding, "input-encoding", "", "input text encoding (utf-8, latin1, windows-1252, utf-16le, utf-16be, ...)")
	flags.StringVar(&a.normalization, "normalize", "", "unicode normalization applied to input text: none, nfc, nfd, nfkc, nfkd")
	flags.StringVarP(&a.inputPath, "in", "i", "", "read input from this file instead of stdin")

	rootCmd.AddCommand(newBase62Cmd(a))
	rootCmd.AddCommand(newEscapeCmd(a))
	rootCmd.AddCommand(newUnescapeCmd(a))
	rootCmd.AddCommand(newSplitCmd(a))
	rootCmd.AddCommand(newJoinCmd(a))
	rootCmd.AddCommand(newConfigCmd(a))
	rootCmd.AddCommand(newVersionCmd(version, commit, date))

	return rootCmd
}

// setup loads the configuration, applies flag overrides and builds the logger.
func (a *app) setup(cmd *cobra.Command) error {
	if a.configPath == "" {
		path, err := config.DefaultPath()
		if err != nil {
			return err
		}
		a.configPath = path
	}

	cfg := config.Default()
	if cmd.Annotations[skipConfigAnnotation] == "" {
		loaded, err := config.Load(a.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	changed := cmd.Flags().Changed
	if changed("log-level") {
		cfg.Log.Level = a.logLevel
	}
	if changed("log-file") {
		cfg.Log.File = a.logFile
	}
	if changed("input-encoding") {
		cfg.Input.Encoding = a.inputEncoding
	}
	if changed("normalize") {
		cfg.Input.Normalization = a.normalization
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	log, closer, err := logging.New(logging.Options{
		Level:  cfg.Log.Level,
		File:   cfg.Log.File,
		Stderr: cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}
	a.log, a.logCloser = log, closer

	a.log.WithFields(logrus.Fields{
		"command": cmd.CommandPath(),
		"config":  a.configPath,
	}).Debug("configuration loaded")
	return nil
}

// readRaw returns the input bytes: the joined arguments, the --in file or stdin.
func (a *app) readRaw(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) > 0 {
		return []byte(strings.Join(args, " ")), nil
	}
	if a.inputPath != "" {
		data, err := os.ReadFile(a.inputPath)
		if err != nil {
			return nil, fmt.Errorf("read input: %w", err)
		}
		return data, nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	return data, nil
}

// readText returns the input decoded to UTF-8 with the configured encoding and normalization.
// Arguments are already text and are only normalized.
func (a *app) readText(cmd *cobra.Command, args []string) (string, error) {
	encoding := a.cfg.Input.Encoding
	if len(args) > 0 {
		encoding = "utf-8"
	}
	dec, err := textenc.NewDecoder(encoding, a.cfg.Input.Normalization)
	if err != nil {
		return "", err
	}

	raw, err := a.readRaw(cmd, args)
	if err != nil {
		return "", err
	}
	text, err := dec.String(string(raw))
	if err != nil {
		return "", err
	}
	a.log.WithFields(logrus.Fields{
		"bytes":    len(raw),
		"encoding": encoding,
	}).Debug("input decoded")
	return text, nil
}

// trimNewline drops one trailing line terminator, as shell command substitution does.
func trimNewline(s string) string {
	s = strings.TrimSuffix(s, "\n")
	return strings.TrimSuffix(s, "\r")
}
