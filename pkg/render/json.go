package render

import (
	"fmt"
	"io"

	"github.com/dkoosis/prefscan/pkg/prefs"
)

// JSON writes the canonical nested report.
type JSON struct{}

// Write serializes the matrix in canonical form to w.
func (JSON) Write(w io.Writer, m *prefs.Matrix) error {
	data, err := m.MarshalCanonical()
	if err != nil {
		return fmt.Errorf("marshaling canonical report: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing canonical report: %w", err)
	}
	return nil
}
