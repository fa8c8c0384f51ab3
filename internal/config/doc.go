// Package config handles configuration loading and merging for prefscan.
//
// # Configuration Precedence
//
// Configuration values are resolved in the following order (highest to lowest priority):
//
//  1. CLI flags (-folder, -name, -config, -no-color)
//  2. Environment variables (PREFSCAN_FOLDER, PREFSCAN_NAME, PREFSCAN_OUTPUT_DIR, ...)
//  3. YAML config file (.prefscan.yaml in the local directory or ~/.config/prefscan/.prefscan.yaml)
//  4. Hardcoded defaults
//
// When a higher-priority source sets a value, it overrides any lower-priority values.
// The resolved Config is an immutable value object: it is built once at startup and
// passed explicitly into every component — nothing reads ambient global state.
//
// # Key Configuration Options
//
//   - secure_preferences: preference keys whose values are fully redacted in all tiers
//   - json_preferences: preference keys whose JSON-shaped values are re-indented
//   - report: column layout of the tabular report (header_row, col_headers, col_values)
//     and the output directory for the three artifacts
//   - style: spreadsheet styling (all_row_*, header_row_*, header_col_fill,
//     pref_cell_alignment)
//
// # Environment Variables
//
// The following environment variables are recognized:
//
//   - PREFSCAN_FOLDER: export folder to analyze
//   - PREFSCAN_NAME: report base name
//   - PREFSCAN_OUTPUT_DIR: directory receiving the artifacts
//   - PREFSCAN_SECURE_PREFERENCES / PREFSCAN_JSON_PREFERENCES: comma-separated key lists
//   - PREFSCAN_NO_COLOR or NO_COLOR: set to "true" or "1" to disable colors
//   - PREFSCAN_DEBUG: set to any non-empty value to enable debug logging
package config
