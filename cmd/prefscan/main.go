// prefscan analyzes a commerce site export and reports every
// configuration preference across deployment tiers.
//
// Usage:
//
//	prefscan -folder ./site-export -name spring-release
//	prefscan -non-interactive
//
// The run writes three equivalent artifacts into the output directory:
// canonical JSON, a flat CSV table, and a styled XLSX workbook. Missing
// inputs are collected interactively when stdin is a terminal.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"golang.org/x/term"

	"github.com/dkoosis/prefscan/internal/config"
	"github.com/dkoosis/prefscan/internal/version"
	"github.com/dkoosis/prefscan/pkg/export"
	"github.com/dkoosis/prefscan/pkg/prefs"
	"github.com/dkoosis/prefscan/pkg/render"
	"github.com/dkoosis/prefscan/pkg/sanitize"
	"github.com/dkoosis/prefscan/pkg/style"
	"github.com/dkoosis/prefscan/pkg/table"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("prefscan", flag.ContinueOnError)
	fs.SetOutput(stderr)
	folderFlag := fs.String("folder", "", "site export folder to analyze")
	nameFlag := fs.String("name", "", "report base name (letters, digits, dash, underscore)")
	configFlag := fs.String("config", "", "path to a .prefscan.yaml configuration file")
	noColorFlag := fs.Bool("no-color", false, "disable colored output")
	nonInteractive := fs.Bool("non-interactive", false, "never prompt; use flags, environment, and defaults")
	debugFlag := fs.Bool("debug", false, "enable debug logging")
	versionFlag := fs.Bool("version", false, "print version and exit")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *versionFlag {
		fmt.Fprintf(stdout, "prefscan %s (%s, %s)\n", version.Version, version.CommitHash, version.BuildDate)
		return 0
	}

	flags := config.CliFlags{
		Folder:     *folderFlag,
		Name:       *nameFlag,
		ConfigFile: *configFlag,
		NoColor:    *noColorFlag,
		Debug:      *debugFlag,
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "no-color":
			flags.NoColorSet = true
		case "debug":
			flags.DebugSet = true
		}
	})

	cfg, err := config.Resolve(flags)
	if err != nil {
		fmt.Fprintf(stderr, "prefscan: %v\n", err)
		return 2
	}

	log := newLogger(stderr, cfg.Debug)

	folder, name, err := collectInputs(cfg, *nonInteractive)
	if err != nil {
		fmt.Fprintf(stderr, "prefscan: %v\n", err)
		return 2
	}
	if err := validateInputs(folder, name); err != nil {
		fmt.Fprintf(stderr, "prefscan: %v\n", err)
		return 2
	}

	matrix, err := analyze(folder, cfg, log)
	if err != nil {
		fmt.Fprintf(stderr, "prefscan: %v\n", err)
		return 1
	}

	artifacts := writeArtifacts(matrix, cfg, name, log)

	theme := render.DefaultTheme()
	if cfg.NoColor || !term.IsTerminal(int(os.Stdout.Fd())) {
		theme = render.MonoTheme()
	}
	fmt.Fprint(stdout, render.NewTerminal(theme).Summary(matrix, artifacts))

	for _, a := range artifacts {
		if a.Err != nil {
			return 1
		}
	}
	return 0
}

func newLogger(w io.Writer, debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	out := zerolog.ConsoleWriter{Out: w}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

// collectInputs fills the missing folder and report name: interactively
// when stdin is a terminal, from built-in defaults otherwise.
func collectInputs(cfg *config.Config, nonInteractive bool) (string, string, error) {
	folder, name := cfg.Folder, cfg.Name
	if folder != "" && name != "" {
		return folder, name, nil
	}
	if !nonInteractive && term.IsTerminal(int(os.Stdin.Fd())) {
		return promptForInputs(folder, name)
	}
	if folder == "" {
		folder = "."
	}
	if name == "" {
		name = config.DefaultReportName
	}
	return folder, name, nil
}

func validateInputs(folder, name string) error {
	info, err := os.Stat(folder)
	if err != nil {
		return fmt.Errorf("export folder %s: %w", folder, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("export folder %s is not a directory", folder)
	}
	return config.ValidateName(name)
}

// analyze runs the core pipeline: catalog, merge, sanitize.
func analyze(folder string, cfg *config.Config, log zerolog.Logger) (*prefs.Matrix, error) {
	matrix, err := export.BuildCatalog(folder, log)
	if err != nil {
		return nil, err
	}
	if err := export.MergeEnvironments(folder, matrix, log); err != nil {
		return nil, err
	}
	sanitize.New(cfg.SecurePreferences, cfg.JSONPreferences).Apply(matrix)
	log.Debug().Int("preferences", matrix.Len()).Msg("analysis complete")
	return matrix, nil
}

// writeArtifacts produces the three report files. A failed artifact is
// recorded and reported; the remaining artifacts are still attempted.
func writeArtifacts(matrix *prefs.Matrix, cfg *config.Config, name string, log zerolog.Logger) []render.Artifact {
	rows := table.Flatten(matrix, cfg.Layout)
	styled := style.NewMapper(cfg.Style, cfg.Layout).Map(rows)

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		err = fmt.Errorf("creating output directory: %w", err)
		return []render.Artifact{
			{Kind: "json", Path: filepath.Join(cfg.OutputDir, name+".json"), Err: err},
			{Kind: "csv", Path: filepath.Join(cfg.OutputDir, name+".csv"), Err: err},
			{Kind: "xlsx", Path: filepath.Join(cfg.OutputDir, name+".xlsx"), Err: err},
		}
	}

	artifacts := []render.Artifact{
		{Kind: "json", Path: filepath.Join(cfg.OutputDir, name+".json")},
		{Kind: "csv", Path: filepath.Join(cfg.OutputDir, name+".csv")},
		{Kind: "xlsx", Path: filepath.Join(cfg.OutputDir, name+".xlsx")},
	}
	for i := range artifacts {
		a := &artifacts[i]
		a.Err = writeArtifact(a, matrix, rows, styled)
		if a.Err != nil {
			log.Error().Str("path", a.Path).Err(a.Err).Msg("failed to write artifact")
		} else {
			log.Info().Str("path", a.Path).Msg("artifact written")
		}
	}
	return artifacts
}

func writeArtifact(a *render.Artifact, matrix *prefs.Matrix, rows [][]string, styled []style.Row) error {
	f, err := os.Create(a.Path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", a.Path, err)
	}
	defer f.Close()

	switch a.Kind {
	case "json":
		err = render.JSON{}.Write(f, matrix)
	case "csv":
		err = render.CSV{}.Write(f, rows)
	case "xlsx":
		err = render.Excel{}.Write(f, styled)
	default:
		err = fmt.Errorf("unknown artifact kind %q", a.Kind)
	}
	if err != nil {
		return err
	}
	return f.Close()
}
