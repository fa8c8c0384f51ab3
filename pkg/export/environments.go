package export

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/dkoosis/prefscan/pkg/prefs"
)

// MultiValueSeparator joins the components of a multi-valued preference
// into the single opaque string stored in the matrix. The merger never
// splits or validates the joined form.
const MultiValueSeparator = ":"

// tierDirs maps instance types to their directory names under the
// export root, in canonical tier order. The baseline directory carries
// the historical "all-instances" name.
var tierDirs = []struct {
	dir  string
	tier prefs.InstanceType
}{
	{"all-instances", prefs.InstanceAll},
	{"development", prefs.InstanceDevelopment},
	{"staging", prefs.InstanceStaging},
	{"production", prefs.InstanceProduction},
}

type valuesDoc struct {
	XMLName     xml.Name          `xml:"preference-values"`
	Scope       string            `xml:"scope,attr"`
	Preferences []preferenceValue `xml:"preference"`
}

type preferenceValue struct {
	PreferenceID string   `xml:"preference-id,attr"`
	Raw          string   `xml:",chardata"`
	Parts        []string `xml:"value"`
}

// value renders the preference as a single string. Multi-valued
// preferences carry <value> children and are joined; otherwise the
// element text is the value.
func (p preferenceValue) value() string {
	if len(p.Parts) > 0 {
		parts := make([]string, len(p.Parts))
		for i, part := range p.Parts {
			parts[i] = strings.TrimSpace(part)
		}
		return strings.Join(parts, MultiValueSeparator)
	}
	return strings.TrimSpace(p.Raw)
}

// MergeEnvironments fills tier values into the catalog from the
// per-tier directories under root. An absent tier directory is not an
// error: every record simply keeps "" for that tier. Keys observed only
// in a value file are synthesized with empty group and display name.
// Merging is idempotent by key identity — re-running on the same folder
// neither duplicates nor reorders records.
func MergeEnvironments(root string, m *prefs.Matrix, log zerolog.Logger) error {
	for _, td := range tierDirs {
		dir := filepath.Join(root, td.dir)
		entries, err := os.ReadDir(dir)
		if errors.Is(err, fs.ErrNotExist) {
			log.Debug().Str("tier", string(td.tier)).Msg("tier directory absent")
			continue
		}
		if err != nil {
			return fmt.Errorf("reading %s tier: %w", td.tier, err)
		}
		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".xml") {
				continue
			}
			path := filepath.Join(dir, entry.Name())
			var doc valuesDoc
			if err := decodeFile(path, &doc); err != nil {
				log.Warn().Str("path", path).Err(err).Msg("skipping malformed value file")
				continue
			}
			mergeValues(m, td.tier, doc)
		}
	}
	return nil
}

func mergeValues(m *prefs.Matrix, tier prefs.InstanceType, doc valuesDoc) {
	scope := doc.Scope
	if scope == "" {
		scope = prefs.ScopeGlobal
	}
	for _, p := range doc.Preferences {
		if p.PreferenceID == "" {
			continue
		}
		rec, ok := m.Lookup(scope, p.PreferenceID)
		if !ok {
			rec = m.Ensure(scope, "", p.PreferenceID)
		}
		rec.Values[tier] = p.value()
	}
}
