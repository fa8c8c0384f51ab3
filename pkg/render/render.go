// Package render provides the report writers: canonical JSON, CSV, a
// styled XLSX workbook, and a terminal run summary. Writers receive
// already-built models (matrix, rows, styled rows) and own no analysis.
package render

// Artifact names one output file of a run, for the terminal summary.
type Artifact struct {
	Kind string // "json", "csv", "xlsx"
	Path string
	Err  error
}
