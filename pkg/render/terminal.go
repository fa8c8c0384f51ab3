package render

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/dkoosis/prefscan/pkg/prefs"
)

// Terminal renders the run summary for the console.
type Terminal struct {
	theme Theme
}

// NewTerminal creates a terminal summary renderer with the given theme.
func NewTerminal(theme Theme) *Terminal {
	return &Terminal{theme: theme}
}

// Summary formats the analysis result and per-artifact outcomes.
func (t *Terminal) Summary(m *prefs.Matrix, artifacts []Artifact) string {
	var sb strings.Builder

	scopes := m.Scopes()
	sb.WriteString(t.theme.Bold.Render(fmt.Sprintf("Preference report: %d preferences in %d scopes", m.Len(), len(scopes))))
	sb.WriteString("\n")
	for _, scope := range scopes {
		count := 0
		for _, group := range m.Groups(scope) {
			count += len(m.Keys(scope, group))
		}
		sb.WriteString("  ")
		sb.WriteString(t.theme.Muted.Render(t.theme.Icons.Bullet + " "))
		sb.WriteString(t.theme.Primary.Render(scope))
		sb.WriteString(t.theme.Muted.Render(fmt.Sprintf(": %d", count)))
		sb.WriteString("\n")
	}

	maxPath := 0
	for _, a := range artifacts {
		if w := runewidth.StringWidth(a.Path); w > maxPath {
			maxPath = w
		}
	}
	for _, a := range artifacts {
		sb.WriteString("  ")
		if a.Err != nil {
			sb.WriteString(t.theme.Error.Render(t.theme.Icons.Fail + " " + padRight(a.Path, maxPath)))
			sb.WriteString(t.theme.Muted.Render("  " + a.Err.Error()))
		} else {
			sb.WriteString(t.theme.Success.Render(t.theme.Icons.Pass + " " + padRight(a.Path, maxPath)))
			sb.WriteString(t.theme.Muted.Render("  written"))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func padRight(s string, width int) string {
	w := runewidth.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}
