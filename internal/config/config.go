// Package config loads and saves the swiftcodec command configuration,
// a YAML file with dialect, log, output and input sections.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/oleg578/swiftcodec"
	"github.com/oleg578/swiftcodec/internal/textenc"
)

// Config is the complete command configuration.
type Config struct {
	Dialect DialectConfig `yaml:"dialect"`
	Log     LogConfig     `yaml:"log"`
	Output  OutputConfig  `yaml:"output"`
	Input   InputConfig   `yaml:"input"`
}

// DialectConfig selects the delimited format used by split and join.
type DialectConfig struct {
	// Format is "csv" or "tsv".
	Format string `yaml:"format"`
	// Comma overrides the delimiter of the csv format with a single character.
	Comma           string `yaml:"comma,omitempty"`
	TrimSpace       bool   `yaml:"trimSpace"`
	PreserveEscapes bool   `yaml:"preserveEscapes"`
	EscapeControl   bool   `yaml:"escapeControl"`
	UseCRLF         bool   `yaml:"useCRLF"`
}

// LogConfig configures the command logger.
type LogConfig struct {
	Level string `yaml:"level"`
	// File enables rotating file logging when set.
	File string `yaml:"file,omitempty"`
}

// OutputConfig configures how split renders records.
type OutputConfig struct {
	// Format is one of table, yaml, json, csv or tsv.
	Format string `yaml:"format"`
	// Color is auto, always or never.
	Color string `yaml:"color"`
}

// InputConfig configures how input bytes are turned into text.
type InputConfig struct {
	Encoding      string `yaml:"encoding"`
	Normalization string `yaml:"normalization"`
}

// Output formats accepted by OutputConfig.Format.
var OutputFormats = []string{"table", "yaml", "json", "csv", "tsv"}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Dialect: DialectConfig{
			Format:          "csv",
			TrimSpace:       true,
			PreserveEscapes: true,
			EscapeControl:   true,
		},
		Log: LogConfig{
			Level: "warn",
		},
		Output: OutputConfig{
			Format: "table",
			Color:  "auto",
		},
		Input: InputConfig{
			Encoding:      "utf-8",
			Normalization: "none",
		},
	}
}

// DefaultPath returns the per-user configuration file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(dir, "swiftcodec", "config.yaml"), nil
}

// Load reads the configuration at path over the defaults. A missing file yields Default().
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("yaml unmarshal %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the configuration to path, creating parent directories.
func (c *Config) Save(path string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("yaml marshal: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Validate checks every section and returns the first problem found.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Dialect.Format) {
	case "csv", "tsv":
	default:
		return fmt.Errorf("dialect.format: unsupported format %q (must be csv or tsv)", c.Dialect.Format)
	}
	switch c.Dialect.Comma {
	case "\"", "\\", "\n", "\r":
		return fmt.Errorf("dialect.comma: %q cannot delimit fields", c.Dialect.Comma)
	}
	if len(c.Dialect.Comma) > 1 {
		return fmt.Errorf("dialect.comma: %q is not a single delimiter byte", c.Dialect.Comma)
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if !contains(OutputFormats, strings.ToLower(c.Output.Format)) {
		return fmt.Errorf("output.format: unsupported format %q", c.Output.Format)
	}
	switch strings.ToLower(c.Output.Color) {
	case "", "auto", "always", "never":
	default:
		return fmt.Errorf("output.color: %q (must be auto, always or never)", c.Output.Color)
	}
	if _, err := textenc.Lookup(c.Input.Encoding); err != nil {
		return fmt.Errorf("input.encoding: %w", err)
	}
	if err := textenc.ValidateNormalization(c.Input.Normalization); err != nil {
		return fmt.Errorf("input.normalization: %w", err)
	}
	return nil
}

// Delimited returns the library dialect described by the dialect section.
func (d DialectConfig) Delimited() swiftcodec.Dialect {
	dialect := swiftcodec.CSV
	if strings.EqualFold(d.Format, "tsv") {
		dialect = swiftcodec.TSV
	} else if d.Comma != "" {
		dialect.Comma = d.Comma[0]
	}
	dialect.TrimSpace = d.TrimSpace
	dialect.PreserveEscapes = d.PreserveEscapes
	return dialect
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
