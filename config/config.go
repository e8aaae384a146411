// Package config loads and saves mtop user configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ftahirops/mtop/model"
)

// Config holds user-configurable defaults.
type Config struct {
	Columns    ColumnsConfig    `yaml:"columns"`
	Statuses   StatusConfig     `yaml:"statuses"`
	Classifier ClassifierConfig `yaml:"classifier"`
	Targets    TargetsConfig    `yaml:"targets"`
	UI         UIConfig         `yaml:"ui"`
	Serve      ServeConfig      `yaml:"serve"`
	Log        LogConfig        `yaml:"log"`
}

// ColumnsConfig maps canonical column names to accepted source headers.
// Matching is case-insensitive and ignores surrounding spaces.
type ColumnsConfig struct {
	Aliases map[string][]string `yaml:"aliases"`
}

// StatusConfig lists the status labels treated as closed and open.
type StatusConfig struct {
	Closed []string `yaml:"closed"`
	Open   []string `yaml:"open"`
}

// ClassifierConfig configures the maintenance-type classifier.
type ClassifierConfig struct {
	PreventiveKeywords []string `yaml:"preventive_keywords"`
}

// TargetsConfig holds KPI goals used for warnings.
type TargetsConfig struct {
	AvailabilityPct float64 `yaml:"availability_pct"`
}

// UIConfig holds terminal UI defaults.
type UIConfig struct {
	PreviewRows    int  `yaml:"preview_rows"`
	ShowPreview    bool `yaml:"show_preview"`
	ShowColumns    bool `yaml:"show_columns"`
	ShowCharts     bool `yaml:"show_charts"`
	ShowFullTable  bool `yaml:"show_full_table"`
	TopCauseWords  int  `yaml:"top_cause_words"`
	MinCauseLength int  `yaml:"min_cause_word_length"`
}

// ServeConfig configures the HTTP mode.
type ServeConfig struct {
	Addr          string `yaml:"addr"`
	MaxUploadMB   int64  `yaml:"max_upload_mb"`
	EnableMetrics bool   `yaml:"enable_metrics"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Default returns a config with sensible defaults.
func Default() Config {
	return Config{
		Columns: ColumnsConfig{
			Aliases: map[string][]string{
				model.ColStart:     {"Start Time", "Start", "Data Início", "Data Inicio"},
				model.ColEnd:       {"End Time", "End", "Data Fim"},
				model.ColStatus:    {"Status"},
				model.ColDowntime:  {"Downtime Hours", "Downtime (h)", "Tempo de Parada (h)"},
				model.ColLocation:  {"Location", "Facility", "Local"},
				model.ColEquipment: {"Equipment", "Equipamento"},
				model.ColCause:     {"Cause", "Causa"},
			},
		},
		Statuses: StatusConfig{
			Closed: []string{"Closed", "Fechado"},
			Open:   []string{"Open", "Aberto"},
		},
		Classifier: ClassifierConfig{
			PreventiveKeywords: []string{"preventiv", "scheduled", "programad", "wash", "flush", "lavagem"},
		},
		Targets: TargetsConfig{
			AvailabilityPct: 95,
		},
		UI: UIConfig{
			PreviewRows:    5,
			ShowPreview:    true,
			ShowColumns:    false,
			ShowCharts:     true,
			ShowFullTable:  false,
			TopCauseWords:  10,
			MinCauseLength: 5,
		},
		Serve: ServeConfig{
			Addr:          "127.0.0.1:8080",
			MaxUploadMB:   32,
			EnableMetrics: true,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if len(c.Statuses.Closed) == 0 {
		return fmt.Errorf("statuses.closed must list at least one label")
	}
	if len(c.Statuses.Open) == 0 {
		return fmt.Errorf("statuses.open must list at least one label")
	}
	for _, col := range []string{model.ColStart, model.ColStatus} {
		if len(c.Columns.Aliases[col]) == 0 {
			return fmt.Errorf("columns.aliases must name headers for %q", col)
		}
	}
	if c.Targets.AvailabilityPct < 0 || c.Targets.AvailabilityPct > 100 {
		return fmt.Errorf("targets.availability_pct must be between 0 and 100")
	}
	if c.UI.PreviewRows < 0 {
		return fmt.Errorf("ui.preview_rows must not be negative")
	}
	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level %q is not one of debug, info, warn, error", c.Log.Level)
	}
	return nil
}

// Path returns ~/.config/mtop/config.yaml (or XDG_CONFIG_HOME).
// Returns empty string if home directory cannot be determined.
func Path() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "mtop", "config.yaml")
}

// Load loads config from the default path; returns defaults when the file
// does not exist.
func Load() (Config, error) {
	p := Path()
	if p == "" {
		return Default(), nil
	}
	cfg, err := LoadFromFile(p)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// LoadFromFile loads configuration from a YAML file on top of the defaults.
func LoadFromFile(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config file: %w", err)
	}
	return cfg, nil
}

// Save writes the config to path, or to Path() when path is empty.
func Save(cfg Config, path string) error {
	if path == "" {
		path = Path()
	}
	if path == "" {
		return fmt.Errorf("cannot determine config directory")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0600)
}
