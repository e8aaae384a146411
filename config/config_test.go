package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ftahirops/mtop/model"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, []string{"Closed", "Fechado"}, cfg.Statuses.Closed)
	assert.Equal(t, []string{"Open", "Aberto"}, cfg.Statuses.Open)
	assert.Equal(t, 95.0, cfg.Targets.AvailabilityPct)
	assert.Equal(t, 5, cfg.UI.PreviewRows)
	assert.Contains(t, cfg.Columns.Aliases[model.ColStart], "Data Início")
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{"valid default config", func(c *Config) {}, false},
		{"no closed labels", func(c *Config) { c.Statuses.Closed = nil }, true},
		{"no open labels", func(c *Config) { c.Statuses.Open = nil }, true},
		{"no start aliases", func(c *Config) { delete(c.Columns.Aliases, model.ColStart) }, true},
		{"target above 100", func(c *Config) { c.Targets.AvailabilityPct = 101 }, true},
		{"negative preview", func(c *Config) { c.UI.PreviewRows = -1 }, true},
		{"bad log level", func(c *Config) { c.Log.Level = "verbose" }, true},
		{"upper-case log level", func(c *Config) { c.Log.Level = "DEBUG" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadFromFileMergesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`
statuses:
  closed: [Closed, Fechado]
targets:
  availability_pct: 90
`)
	require.NoError(t, os.WriteFile(path, data, 0600))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"Closed", "Fechado"}, cfg.Statuses.Closed)
	assert.Equal(t, []string{"Open", "Aberto"}, cfg.Statuses.Open)
	assert.Equal(t, 90.0, cfg.Targets.AvailabilityPct)
	assert.True(t, cfg.UI.ShowCharts)
}

func TestLoadFromFileErrors(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("statuses: [unterminated"), 0600))
	_, err = LoadFromFile(path)
	assert.Error(t, err)
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default().Serve.Addr, cfg.Serve.Addr)
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	cfg := Default()
	cfg.Targets.AvailabilityPct = 97.5
	require.NoError(t, Save(cfg, ""))

	_, err := os.Stat(filepath.Join(dir, "mtop", "config.yaml"))
	require.NoError(t, err)

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 97.5, loaded.Targets.AvailabilityPct)
}
