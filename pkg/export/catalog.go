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

// metaDir holds the metadata descriptors inside an export folder.
const metaDir = "meta"

type metadataDoc struct {
	XMLName        xml.Name        `xml:"metadata"`
	TypeExtensions []typeExtension `xml:"type-extension"`
}

type typeExtension struct {
	TypeID      string                `xml:"type-id,attr"`
	Definitions []attributeDefinition `xml:"custom-attribute-definitions>attribute-definition"`
	Groups      []attributeGroup      `xml:"group-definitions>attribute-group"`
}

type attributeDefinition struct {
	AttributeID string `xml:"attribute-id,attr"`
	DisplayName string `xml:"display-name"`
}

type attributeGroup struct {
	GroupID    string         `xml:"group-id,attr"`
	Attributes []attributeRef `xml:"attribute"`
}

type attributeRef struct {
	AttributeID string `xml:"attribute-id,attr"`
}

// BuildCatalog scans meta/*.xml under root and returns the initial
// preference matrix: every declared attribute with its scope, group,
// and display name, all four tier slots empty. A missing meta directory
// yields an empty catalog. Malformed files are skipped with a warning.
func BuildCatalog(root string, log zerolog.Logger) (*prefs.Matrix, error) {
	m := prefs.NewMatrix()

	dir := filepath.Join(root, metaDir)
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return m, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading metadata directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".xml") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		var doc metadataDoc
		if err := decodeFile(path, &doc); err != nil {
			log.Warn().Str("path", path).Err(err).Msg("skipping malformed metadata file")
			continue
		}
		for _, ext := range doc.TypeExtensions {
			catalogExtension(m, ext, log)
		}
	}
	return m, nil
}

func catalogExtension(m *prefs.Matrix, ext typeExtension, log zerolog.Logger) {
	if ext.TypeID == "" {
		log.Warn().Msg("skipping type extension without type-id")
		return
	}

	// First group to claim an attribute wins; unclaimed attributes land
	// in the empty group.
	groupOf := make(map[string]string)
	for _, group := range ext.Groups {
		for _, ref := range group.Attributes {
			if _, claimed := groupOf[ref.AttributeID]; !claimed && ref.AttributeID != "" {
				groupOf[ref.AttributeID] = group.GroupID
			}
		}
	}

	for _, def := range ext.Definitions {
		if def.AttributeID == "" {
			continue
		}
		rec := m.Ensure(ext.TypeID, groupOf[def.AttributeID], def.AttributeID)
		if rec.DisplayName == "" {
			rec.DisplayName = strings.TrimSpace(def.DisplayName)
		}
	}

	// Group members without an attribute definition are still known
	// preferences; catalog them with an empty display name.
	for _, group := range ext.Groups {
		for _, ref := range group.Attributes {
			if ref.AttributeID == "" {
				continue
			}
			if _, ok := m.Lookup(ext.TypeID, ref.AttributeID); !ok {
				m.Ensure(ext.TypeID, group.GroupID, ref.AttributeID)
			}
		}
	}
}
