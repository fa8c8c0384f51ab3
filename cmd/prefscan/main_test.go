package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// setupRun isolates a test run: fresh working directory, no ambient
// prefscan environment, no user config.
func setupRun(t *testing.T) string {
	t.Helper()
	tempDir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	if err := os.Chdir(tempDir); err != nil {
		t.Fatalf("failed to change directory: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	for _, key := range []string{
		"PREFSCAN_FOLDER", "PREFSCAN_NAME", "PREFSCAN_OUTPUT_DIR",
		"PREFSCAN_SECURE_PREFERENCES", "PREFSCAN_JSON_PREFERENCES",
		"PREFSCAN_NO_COLOR", "NO_COLOR", "PREFSCAN_DEBUG",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tempDir, "xdg"))
	t.Setenv("HOME", filepath.Join(tempDir, "home"))
	return tempDir
}

func writeFixtureExport(t *testing.T, root string) string {
	t.Helper()
	exportDir := filepath.Join(root, "site-export")
	files := map[string]string{
		"meta/site.xml": `<metadata>
  <type-extension type-id="global">
    <custom-attribute-definitions>
      <attribute-definition attribute-id="ActiveLocales">
        <display-name>Active Locales</display-name>
      </attribute-definition>
      <attribute-definition attribute-id="ApiSecret"/>
    </custom-attribute-definitions>
    <group-definitions>
      <attribute-group group-id="standard">
        <attribute attribute-id="ActiveLocales"/>
      </attribute-group>
    </group-definitions>
  </type-extension>
</metadata>`,
		"all-instances/prefs.xml": `<preference-values scope="global">
  <preference preference-id="ActiveLocales"><value>en</value><value>en_GB</value></preference>
  <preference preference-id="ApiSecret">hunter2</preference>
</preference-values>`,
		"development/prefs.xml": `<preference-values scope="global">
  <preference preference-id="ActiveLocales">en</preference>
</preference-values>`,
	}
	for rel, content := range files {
		path := filepath.Join(exportDir, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("failed to create fixture dir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write fixture: %v", err)
		}
	}
	return exportDir
}

func TestRun_WritesAllThreeArtifacts(t *testing.T) {
	tempDir := setupRun(t)
	exportDir := writeFixtureExport(t, tempDir)

	var stdout, stderr bytes.Buffer
	code := run([]string{"-folder", exportDir, "-name", "site", "-non-interactive"}, &stdout, &stderr)

	if code != 0 {
		t.Fatalf("expected exit 0, got %d (stderr: %s)", code, stderr.String())
	}
	for _, name := range []string{"site.json", "site.csv", "site.xlsx"} {
		if _, err := os.Stat(filepath.Join("reports", name)); err != nil {
			t.Errorf("expected artifact %s: %v", name, err)
		}
	}
	if !strings.Contains(stdout.String(), "site.json") {
		t.Errorf("summary should mention artifacts, got:\n%s", stdout.String())
	}
}

func TestRun_CanonicalJSONMatchesMergedTiers(t *testing.T) {
	tempDir := setupRun(t)
	exportDir := writeFixtureExport(t, tempDir)

	var stdout, stderr bytes.Buffer
	if code := run([]string{"-folder", exportDir, "-name", "site", "-non-interactive"}, &stdout, &stderr); code != 0 {
		t.Fatalf("run failed: %d (stderr: %s)", code, stderr.String())
	}

	data, err := os.ReadFile(filepath.Join("reports", "site.json"))
	if err != nil {
		t.Fatalf("reading canonical report: %v", err)
	}
	var doc map[string]map[string]map[string]map[string]string
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("canonical report is not valid JSON: %v", err)
	}

	rec := doc["global"]["standard"]["ActiveLocales"]
	if rec["all-instances"] != "en:en_GB" {
		t.Errorf("expected joined baseline value, got %q", rec["all-instances"])
	}
	if rec["development"] != "en" {
		t.Errorf("expected development override, got %q", rec["development"])
	}
	if rec["staging"] != "" || rec["production"] != "" {
		t.Errorf("expected empty values for absent tiers, got %q / %q", rec["staging"], rec["production"])
	}
}

func TestRun_AppliesRedactionFromConfigFile(t *testing.T) {
	tempDir := setupRun(t)
	exportDir := writeFixtureExport(t, tempDir)

	configContent := "secure_preferences: [ApiSecret]\n"
	if err := os.WriteFile(".prefscan.yaml", []byte(configContent), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	var stdout, stderr bytes.Buffer
	if code := run([]string{"-folder", exportDir, "-name", "site", "-non-interactive"}, &stdout, &stderr); code != 0 {
		t.Fatalf("run failed: %d (stderr: %s)", code, stderr.String())
	}

	data, err := os.ReadFile(filepath.Join("reports", "site.json"))
	if err != nil {
		t.Fatalf("reading canonical report: %v", err)
	}
	if strings.Contains(string(data), "hunter2") {
		t.Error("secret value leaked into the canonical report")
	}
	var doc map[string]map[string]map[string]map[string]string
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("canonical report is not valid JSON: %v", err)
	}
	secret := doc["global"][""]["ApiSecret"]
	for _, tier := range []string{"all-instances", "development", "staging", "production"} {
		if secret[tier] != "*****" {
			t.Errorf("expected %s to be redacted, got %q", tier, secret[tier])
		}
	}
}

func TestRun_RejectsInvalidReportName(t *testing.T) {
	tempDir := setupRun(t)
	exportDir := writeFixtureExport(t, tempDir)

	var stdout, stderr bytes.Buffer
	code := run([]string{"-folder", exportDir, "-name", "bad name!", "-non-interactive"}, &stdout, &stderr)

	if code != 2 {
		t.Fatalf("expected exit 2, got %d", code)
	}
	if !strings.Contains(stderr.String(), "invalid report name") {
		t.Errorf("expected name error on stderr, got: %s", stderr.String())
	}
}

func TestRun_RejectsMissingFolder(t *testing.T) {
	setupRun(t)

	var stdout, stderr bytes.Buffer
	code := run([]string{"-folder", "does-not-exist", "-name", "site", "-non-interactive"}, &stdout, &stderr)

	if code != 2 {
		t.Fatalf("expected exit 2, got %d", code)
	}
}

func TestRun_EmptyExportProducesWellFormedArtifacts(t *testing.T) {
	tempDir := setupRun(t)
	exportDir := filepath.Join(tempDir, "empty-export")
	if err := os.MkdirAll(exportDir, 0o755); err != nil {
		t.Fatalf("failed to create export dir: %v", err)
	}

	var stdout, stderr bytes.Buffer
	if code := run([]string{"-folder", exportDir, "-name", "empty", "-non-interactive"}, &stdout, &stderr); code != 0 {
		t.Fatalf("expected success for empty export, got %d (stderr: %s)", code, stderr.String())
	}

	data, err := os.ReadFile(filepath.Join("reports", "empty.json"))
	if err != nil {
		t.Fatalf("reading canonical report: %v", err)
	}
	if strings.TrimSpace(string(data)) != "{}" {
		t.Errorf("expected empty canonical structure, got %s", data)
	}
}

func TestRun_VersionFlag(t *testing.T) {
	setupRun(t)

	var stdout, stderr bytes.Buffer
	code := run([]string{"-version"}, &stdout, &stderr)

	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if !strings.Contains(stdout.String(), "prefscan") {
		t.Errorf("expected version output, got: %s", stdout.String())
	}
}
