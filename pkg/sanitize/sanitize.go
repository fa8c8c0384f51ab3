// Package sanitize applies configuration-driven masking and JSON
// re-indentation to a preference matrix before it is flattened into
// report rows.
package sanitize

import (
	"bytes"
	"encoding/json"

	"github.com/dkoosis/prefscan/pkg/prefs"
)

// RedactionMarker replaces every tier value of a secure preference.
// Redaction is total: partially masked values would still leak length
// and shape, and an empty tier must be indistinguishable from a set one.
const RedactionMarker = "*****"

// Sanitizer holds the secure and JSON-shaped key sets. Keys match by
// name alone, regardless of scope or group.
type Sanitizer struct {
	secure map[string]struct{}
	json   map[string]struct{}
}

// New builds a Sanitizer from the configured key lists.
func New(securePreferences, jsonPreferences []string) *Sanitizer {
	s := &Sanitizer{
		secure: make(map[string]struct{}, len(securePreferences)),
		json:   make(map[string]struct{}, len(jsonPreferences)),
	}
	for _, key := range securePreferences {
		s.secure[key] = struct{}{}
	}
	for _, key := range jsonPreferences {
		s.json[key] = struct{}{}
	}
	return s
}

// Apply sanitizes the matrix in place. Secure keys have all four tier
// values replaced with the redaction marker, including empty ones.
// JSON keys have each non-empty value re-indented when it parses as
// JSON; values that fail to parse are left untouched. Redaction wins
// when a key is in both sets.
func (s *Sanitizer) Apply(m *prefs.Matrix) {
	m.Walk(func(rec *prefs.Record) {
		if _, ok := s.secure[rec.Key]; ok {
			for _, it := range prefs.InstanceTypes() {
				rec.Values[it] = RedactionMarker
			}
			return
		}
		if _, ok := s.json[rec.Key]; ok {
			for _, it := range prefs.InstanceTypes() {
				if rec.Values[it] != "" {
					rec.Values[it] = beautify(rec.Values[it])
				}
			}
		}
	})
}

// beautify re-indents a JSON value without reordering its tokens, so
// structural equality with the raw value is preserved. Anything that is
// not valid JSON comes back unchanged.
func beautify(raw string) string {
	data := []byte(raw)
	if !json.Valid(data) {
		return raw
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return raw
	}
	return buf.String()
}
