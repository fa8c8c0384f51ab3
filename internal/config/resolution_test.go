package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dkoosis/prefscan/pkg/table"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PREFSCAN_FOLDER", "PREFSCAN_NAME", "PREFSCAN_OUTPUT_DIR",
		"PREFSCAN_SECURE_PREFERENCES", "PREFSCAN_JSON_PREFERENCES",
		"PREFSCAN_NO_COLOR", "NO_COLOR", "PREFSCAN_DEBUG",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	// Keep discovery away from any real user config.
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
}

func TestResolve_UsesDefaults_When_NothingConfigured(t *testing.T) {
	chdirTemp(t)
	clearEnv(t)

	cfg, err := Resolve(CliFlags{})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if cfg.OutputDir != DefaultOutputDir {
		t.Errorf("expected default output dir, got %q", cfg.OutputDir)
	}
	want := table.DefaultLayout()
	if len(cfg.Layout.HeaderRow) != len(want.HeaderRow) {
		t.Errorf("expected default layout, got %v", cfg.Layout.HeaderRow)
	}
	if cfg.NoColor || cfg.Debug {
		t.Error("expected NoColor and Debug to default to false")
	}
	if cfg.Style.AllRowFont == nil || cfg.Style.HeaderRowFill == nil {
		t.Error("expected default style to be populated")
	}
}

func TestResolve_FileLayerOverridesDefaults(t *testing.T) {
	tempDir := chdirTemp(t)
	clearEnv(t)

	content := `secure_preferences: [ApiSecret]
report:
  output_dir: exports
`
	if err := os.WriteFile(filepath.Join(tempDir, ".prefscan.yaml"), []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Resolve(CliFlags{})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if cfg.OutputDir != "exports" {
		t.Errorf("expected file output dir, got %q", cfg.OutputDir)
	}
	if len(cfg.SecurePreferences) != 1 || cfg.SecurePreferences[0] != "ApiSecret" {
		t.Errorf("expected secure preferences from file, got %v", cfg.SecurePreferences)
	}
	// Layout untouched by this file: defaults stay.
	if len(cfg.Layout.HeaderRow) != len(table.DefaultLayout().HeaderRow) {
		t.Errorf("expected default layout to survive, got %v", cfg.Layout.HeaderRow)
	}
}

func TestResolve_EnvOverridesFile(t *testing.T) {
	tempDir := chdirTemp(t)
	clearEnv(t)

	content := "report:\n  output_dir: from-file\n"
	if err := os.WriteFile(filepath.Join(tempDir, ".prefscan.yaml"), []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	t.Setenv("PREFSCAN_OUTPUT_DIR", "from-env")

	cfg, err := Resolve(CliFlags{})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if cfg.OutputDir != "from-env" {
		t.Errorf("expected env to win over file, got %q", cfg.OutputDir)
	}
}

func TestResolve_FlagsOverrideEnv(t *testing.T) {
	chdirTemp(t)
	clearEnv(t)
	t.Setenv("PREFSCAN_FOLDER", "/from/env")
	t.Setenv("PREFSCAN_NAME", "env-name")

	cfg, err := Resolve(CliFlags{Folder: "/from/flag", Name: "flag-name"})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if cfg.Folder != "/from/flag" {
		t.Errorf("expected flag folder to win, got %q", cfg.Folder)
	}
	if cfg.Name != "flag-name" {
		t.Errorf("expected flag name to win, got %q", cfg.Name)
	}
}

func TestResolve_CustomLayoutReplacesDefaultWholesale(t *testing.T) {
	tempDir := chdirTemp(t)
	clearEnv(t)

	content := `report:
  header_row: [ID, Baseline]
  col_values:
    0: key
    1: all
`
	if err := os.WriteFile(filepath.Join(tempDir, ".prefscan.yaml"), []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Resolve(CliFlags{})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if len(cfg.Layout.HeaderRow) != 2 {
		t.Fatalf("expected two columns, got %v", cfg.Layout.HeaderRow)
	}
	// No default column positions may leak into the custom layout.
	if len(cfg.Layout.ColValues) != 2 {
		t.Fatalf("expected exactly two mapped columns, got %v", cfg.Layout.ColValues)
	}
	if cfg.Layout.ColValues[1] != table.FieldAll {
		t.Errorf("expected column 1 to map to the baseline tier, got %q", cfg.Layout.ColValues[1])
	}
}

func TestResolve_RejectsInvalidLayout(t *testing.T) {
	tempDir := chdirTemp(t)
	clearEnv(t)

	content := `report:
  header_row: [ID]
  col_values:
    5: key
`
	if err := os.WriteFile(filepath.Join(tempDir, ".prefscan.yaml"), []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	if _, err := Resolve(CliFlags{}); err == nil {
		t.Fatal("expected out-of-range layout to be rejected")
	}
}

func TestResolve_RejectsInvalidName(t *testing.T) {
	chdirTemp(t)
	clearEnv(t)

	if _, err := Resolve(CliFlags{Name: "bad name!"}); err == nil {
		t.Fatal("expected invalid report name to be rejected")
	}
}

func TestResolve_NoColorFromEnvironment(t *testing.T) {
	chdirTemp(t)
	clearEnv(t)
	t.Setenv("NO_COLOR", "1")

	cfg, err := Resolve(CliFlags{})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if !cfg.NoColor {
		t.Error("expected NO_COLOR=1 to disable color")
	}
}

func TestResolve_FlagWinsOverNoColorEnv(t *testing.T) {
	chdirTemp(t)
	clearEnv(t)
	t.Setenv("NO_COLOR", "1")

	cfg, err := Resolve(CliFlags{NoColor: false, NoColorSet: true})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if cfg.NoColor {
		t.Error("expected explicit flag to win over environment")
	}
}
