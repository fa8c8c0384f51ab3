// Package table flattens a preference matrix into an ordered sequence
// of rows according to a configurable column layout. Rows are plain
// strings — styling and file formats are other packages' business.
package table

import (
	"fmt"

	"github.com/dkoosis/prefscan/pkg/prefs"
)

// Field selects what a column shows for each record.
type Field string

const (
	FieldScope       Field = "scope"
	FieldGroup       Field = "group"
	FieldKey         Field = "key"
	FieldDisplayName Field = "displayName"
	FieldAll         Field = "all"
	FieldDevelopment Field = "development"
	FieldStaging     Field = "staging"
	FieldProduction  Field = "production"
)

// Layout describes the column shape of the tabular report. Columns not
// present in ColValues are fixed empty-string spacers, retained in the
// output exactly as configured.
type Layout struct {
	// HeaderRow holds the literal labels of row zero and fixes the
	// column count.
	HeaderRow []string
	// ColHeaders lists column positions that get header-style
	// treatment on data rows.
	ColHeaders []int
	// ColValues maps column positions to record fields.
	ColValues map[int]Field
}

// DefaultLayout is the nine-column shape of the standard report:
// scope, group, spacer, key, spacer, then the four tier values.
func DefaultLayout() Layout {
	return Layout{
		HeaderRow: []string{
			"Scope", "Group", "", "ID", "",
			"all-instances", "development", "staging", "production",
		},
		ColHeaders: []int{0, 1, 3},
		ColValues: map[int]Field{
			0: FieldScope,
			1: FieldGroup,
			3: FieldKey,
			5: FieldAll,
			6: FieldDevelopment,
			7: FieldStaging,
			8: FieldProduction,
		},
	}
}

// Columns reports the column count, fixed by the header row.
func (l Layout) Columns() int { return len(l.HeaderRow) }

// Validate rejects layouts whose positions fall outside the header row
// or whose fields are unknown.
func (l Layout) Validate() error {
	if len(l.HeaderRow) == 0 {
		return fmt.Errorf("layout has no header row")
	}
	for _, pos := range l.ColHeaders {
		if pos < 0 || pos >= l.Columns() {
			return fmt.Errorf("header column %d out of range (have %d columns)", pos, l.Columns())
		}
	}
	for pos, field := range l.ColValues {
		if pos < 0 || pos >= l.Columns() {
			return fmt.Errorf("value column %d out of range (have %d columns)", pos, l.Columns())
		}
		if !knownFields[field] {
			return fmt.Errorf("value column %d maps to unknown field %q", pos, field)
		}
	}
	return nil
}

var knownFields = map[Field]bool{
	FieldScope:       true,
	FieldGroup:       true,
	FieldKey:         true,
	FieldDisplayName: true,
	FieldAll:         true,
	FieldDevelopment: true,
	FieldStaging:     true,
	FieldProduction:  true,
}

// Flatten walks the matrix in discovery order and emits the header row
// followed by exactly one row per record. No filtering, no reordering.
func Flatten(m *prefs.Matrix, layout Layout) [][]string {
	rows := make([][]string, 0, m.Len()+1)
	rows = append(rows, append([]string(nil), layout.HeaderRow...))

	m.Walk(func(rec *prefs.Record) {
		row := make([]string, layout.Columns())
		for pos, field := range layout.ColValues {
			row[pos] = fieldValue(rec, field)
		}
		rows = append(rows, row)
	})
	return rows
}

func fieldValue(rec *prefs.Record, field Field) string {
	switch field {
	case FieldScope:
		return rec.Scope
	case FieldGroup:
		return rec.Group
	case FieldKey:
		return rec.Key
	case FieldDisplayName:
		return rec.DisplayName
	case FieldAll:
		return rec.Values[prefs.InstanceAll]
	case FieldDevelopment:
		return rec.Values[prefs.InstanceDevelopment]
	case FieldStaging:
		return rec.Values[prefs.InstanceStaging]
	case FieldProduction:
		return rec.Values[prefs.InstanceProduction]
	default:
		return ""
	}
}
