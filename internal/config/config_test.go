package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oleg578/swiftcodec"
)

func TestDefaultIsValid(t *testing.T) {
	t.Parallel()

	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "csv", cfg.Dialect.Format)
	assert.True(t, cfg.Dialect.PreserveEscapes)
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestSaveAndLoad(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Dialect.Format = "tsv"
	cfg.Log.Level = "debug"
	cfg.Log.File = "/tmp/swiftcodec.log"
	cfg.Output.Format = "yaml"
	cfg.Input.Encoding = "latin1"
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output:\n  format: json\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.Equal(t, "auto", cfg.Output.Color)
	assert.Equal(t, "csv", cfg.Dialect.Format)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	badYAML := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(badYAML, []byte("dialect: [unclosed"), 0o644))
	_, err := Load(badYAML)
	assert.ErrorContains(t, err, "yaml unmarshal")

	invalid := filepath.Join(dir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("dialect:\n  format: xml\n"), 0o644))
	_, err = Load(invalid)
	assert.ErrorContains(t, err, "dialect.format")
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "comma", mutate: func(c *Config) { c.Dialect.Comma = ";;" }, wantErr: "dialect.comma"},
		{name: "quoteComma", mutate: func(c *Config) { c.Dialect.Comma = `"` }, wantErr: "dialect.comma"},
		{name: "newlineComma", mutate: func(c *Config) { c.Dialect.Comma = "\n" }, wantErr: "cannot delimit fields"},
		{name: "carriageReturnComma", mutate: func(c *Config) { c.Dialect.Comma = "\r" }, wantErr: "cannot delimit fields"},
		{name: "level", mutate: func(c *Config) { c.Log.Level = "chatty" }, wantErr: "log.level"},
		{name: "output", mutate: func(c *Config) { c.Output.Format = "xml" }, wantErr: "output.format"},
		{name: "color", mutate: func(c *Config) { c.Output.Color = "rainbow" }, wantErr: "output.color"},
		{name: "encoding", mutate: func(c *Config) { c.Input.Encoding = "klingon" }, wantErr: "input.encoding"},
		{name: "normalization", mutate: func(c *Config) { c.Input.Normalization = "nfx" }, wantErr: "input.normalization"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cfg := Default()
			tc.mutate(cfg)
			assert.ErrorContains(t, cfg.Validate(), tc.wantErr)
			assert.Error(t, cfg.Save(filepath.Join(t.TempDir(), "c.yaml")))
		})
	}
}

func TestDialectConfigDelimited(t *testing.T) {
	t.Parallel()

	d := DialectConfig{Format: "csv", Comma: ";", PreserveEscapes: true}.Delimited()
	assert.Equal(t, byte(';'), d.Comma)
	assert.False(t, d.TrimSpace)
	assert.True(t, d.PreserveEscapes)

	tsv := DialectConfig{Format: "TSV", Comma: ";"}.Delimited()
	assert.Equal(t, swiftcodec.TSV, tsv)
}
