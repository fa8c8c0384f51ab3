package render

import (
	"encoding/csv"
	"fmt"
	"io"
)

// CSV writes the flattened tabular report.
type CSV struct{}

// Write emits rows as comma-separated records, header row first.
// Spacer columns are retained exactly as configured.
func (CSV) Write(w io.Writer, rows [][]string) error {
	cw := csv.NewWriter(w)
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing csv row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing csv: %w", err)
	}
	return nil
}
