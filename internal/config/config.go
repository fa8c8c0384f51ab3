package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/dkoosis/prefscan/pkg/style"
	"github.com/dkoosis/prefscan/pkg/table"
)

// DefaultOutputDir receives the three report artifacts unless
// configured otherwise.
const DefaultOutputDir = "reports"

// DefaultReportName is the base name used when neither flags, env, nor
// the interactive prompt supply one.
const DefaultReportName = "preferences"

// fileConfig mirrors the .prefscan.yaml document. The same struct
// doubles as the env-variable layer: caarlos0/env fills the tagged
// fields, and layers merge zero-value-skipping via mergo.
type fileConfig struct {
	Folder            string   `yaml:"folder,omitempty" env:"PREFSCAN_FOLDER"`
	Name              string   `yaml:"name,omitempty" env:"PREFSCAN_NAME"`
	SecurePreferences []string `yaml:"secure_preferences,omitempty" env:"PREFSCAN_SECURE_PREFERENCES" envSeparator:","`
	JSONPreferences   []string `yaml:"json_preferences,omitempty" env:"PREFSCAN_JSON_PREFERENCES" envSeparator:","`
	Report            struct {
		OutputDir  string         `yaml:"output_dir,omitempty" env:"PREFSCAN_OUTPUT_DIR"`
		HeaderRow  []string       `yaml:"header_row,omitempty"`
		ColHeaders []int          `yaml:"col_headers,omitempty"`
		ColValues  map[int]string `yaml:"col_values,omitempty"`
	} `yaml:"report,omitempty"`
	Style style.Config `yaml:"style,omitempty"`
}

// defaults returns the lowest-priority layer.
func defaults() *fileConfig {
	cfg := &fileConfig{}
	cfg.Report.OutputDir = DefaultOutputDir
	layout := table.DefaultLayout()
	cfg.Report.HeaderRow = layout.HeaderRow
	cfg.Report.ColHeaders = layout.ColHeaders
	cfg.Report.ColValues = make(map[int]string, len(layout.ColValues))
	for pos, field := range layout.ColValues {
		cfg.Report.ColValues[pos] = string(field)
	}
	cfg.Style = style.DefaultConfig()
	return cfg
}

// loadFile reads one YAML config file. A missing file at a discovered
// (non-explicit) path is not an error.
func loadFile(path string) (*fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	var cfg fileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return &cfg, nil
}

// configPath locates the YAML config file: local directory first, then
// the user config dir. Empty when neither exists.
func configPath() string {
	local := ".prefscan.yaml"
	if _, err := os.Stat(local); err == nil {
		return local
	}
	configHome, err := os.UserConfigDir()
	if err != nil || configHome == "" || configHome == "/" {
		return ""
	}
	xdg := filepath.Join(configHome, "prefscan", ".prefscan.yaml")
	if _, err := os.Stat(xdg); err == nil {
		return xdg
	}
	return ""
}

// layout converts the report section into a validated table layout.
func (c *fileConfig) layout() (table.Layout, error) {
	l := table.Layout{
		HeaderRow:  c.Report.HeaderRow,
		ColHeaders: c.Report.ColHeaders,
		ColValues:  make(map[int]table.Field, len(c.Report.ColValues)),
	}
	for pos, field := range c.Report.ColValues {
		l.ColValues[pos] = table.Field(field)
	}
	if err := l.Validate(); err != nil {
		return table.Layout{}, fmt.Errorf("invalid report layout: %w", err)
	}
	return l, nil
}
