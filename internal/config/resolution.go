package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"

	"dario.cat/mergo"
	"github.com/caarlos0/env/v11"

	"github.com/dkoosis/prefscan/pkg/style"
	"github.com/dkoosis/prefscan/pkg/table"
)

// CliFlags holds the values of command-line flags.
type CliFlags struct {
	Folder     string
	Name       string
	ConfigFile string
	NoColor    bool
	Debug      bool

	// Set tracking for flags whose zero value is meaningful.
	NoColorSet bool
	DebugSet   bool
}

// Config is the resolved, immutable configuration passed into every
// component. Folder and Name may still be empty after resolution; the
// command layer prompts for them or applies its defaults.
type Config struct {
	Folder            string
	Name              string
	OutputDir         string
	SecurePreferences []string
	JSONPreferences   []string
	Layout            table.Layout
	Style             style.Config
	NoColor           bool
	Debug             bool
}

var namePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ValidateName rejects report base names that are not purely
// alphanumeric, dash, or underscore.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("report name is required")
	}
	if !namePattern.MatchString(name) {
		return fmt.Errorf("invalid report name %q: only letters, digits, dash, and underscore are allowed", name)
	}
	return nil
}

// Resolve builds the final configuration with explicit priority order.
//
// Resolution order, highest first:
//  1. CLI flags
//  2. PREFSCAN_* environment variables
//  3. YAML config file (-config path, else discovered)
//  4. Built-in defaults
func Resolve(flags CliFlags) (*Config, error) {
	base := defaults()

	path := flags.ConfigFile
	if path == "" {
		path = configPath()
	}
	if path != "" {
		fileCfg, err := loadFile(path)
		if err != nil {
			return nil, err
		}
		if err := mergeLayer(base, fileCfg); err != nil {
			return nil, err
		}
	}

	envCfg := &fileConfig{}
	if err := env.Parse(envCfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	if err := mergeLayer(base, envCfg); err != nil {
		return nil, err
	}

	if flags.Folder != "" {
		base.Folder = flags.Folder
	}
	if flags.Name != "" {
		base.Name = flags.Name
	}

	layout, err := base.layout()
	if err != nil {
		return nil, err
	}
	if base.Name != "" {
		if err := ValidateName(base.Name); err != nil {
			return nil, err
		}
	}

	resolved := &Config{
		Folder:            base.Folder,
		Name:              base.Name,
		OutputDir:         base.Report.OutputDir,
		SecurePreferences: base.SecurePreferences,
		JSONPreferences:   base.JSONPreferences,
		Layout:            layout,
		Style:             base.Style,
	}

	resolved.NoColor = resolveBool(flags.NoColor, flags.NoColorSet, "PREFSCAN_NO_COLOR", "NO_COLOR")
	resolved.Debug = resolveBool(flags.Debug, flags.DebugSet, "PREFSCAN_DEBUG")

	return resolved, nil
}

// mergeLayer merges src over dst. Scalars and key lists override when
// set; the report layout is atomic — a layer that redefines header_row
// replaces the whole column shape rather than union-merging positions.
func mergeLayer(dst, src *fileConfig) error {
	srcReport := src.Report
	if err := mergo.Merge(dst, src, mergo.WithOverride); err != nil {
		return fmt.Errorf("merging configuration layers: %w", err)
	}
	if len(srcReport.HeaderRow) > 0 {
		dst.Report.HeaderRow = srcReport.HeaderRow
		dst.Report.ColHeaders = srcReport.ColHeaders
		dst.Report.ColValues = srcReport.ColValues
	}
	return nil
}

// resolveBool applies CLI > env > default(false) for a boolean option.
func resolveBool(flagVal, flagSet bool, envKeys ...string) bool {
	if flagSet {
		return flagVal
	}
	for _, key := range envKeys {
		if val := os.Getenv(key); val != "" {
			if b, err := strconv.ParseBool(val); err == nil {
				return b
			}
			return true
		}
	}
	return false
}
