package prefs

import (
	"bytes"
	"encoding/json"
)

// recordJSON fixes the canonical field set and order. The baseline tier
// is serialized as "all-instances" — downstream consumers match on that
// literal name, so it must never change to "all".
type recordJSON struct {
	Group       string `json:"group"`
	Name        string `json:"name"`
	All         string `json:"all-instances"`
	Development string `json:"development"`
	Staging     string `json:"staging"`
	Production  string `json:"production"`
}

// MarshalCanonical serializes the matrix as the canonical nested JSON
// report: scope → group → key → record. Object members follow matrix
// discovery order, so identical inputs produce byte-identical output.
func (m *Matrix) MarshalCanonical() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for si, scope := range m.scopes {
		if si > 0 {
			buf.WriteByte(',')
		}
		if err := writeKey(&buf, scope); err != nil {
			return nil, err
		}
		buf.WriteByte('{')
		for gi, group := range m.groups[scope] {
			if gi > 0 {
				buf.WriteByte(',')
			}
			if err := writeKey(&buf, group); err != nil {
				return nil, err
			}
			buf.WriteByte('{')
			for ki, key := range m.keys[scope][group] {
				if ki > 0 {
					buf.WriteByte(',')
				}
				if err := writeKey(&buf, key); err != nil {
					return nil, err
				}
				rec := m.byPath[scope][group][key]
				data, err := json.Marshal(recordJSON{
					Group:       rec.Group,
					Name:        rec.DisplayName,
					All:         rec.Values[InstanceAll],
					Development: rec.Values[InstanceDevelopment],
					Staging:     rec.Values[InstanceStaging],
					Production:  rec.Values[InstanceProduction],
				})
				if err != nil {
					return nil, err
				}
				buf.Write(data)
			}
			buf.WriteByte('}')
		}
		buf.WriteByte('}')
	}
	buf.WriteByte('}')

	var out bytes.Buffer
	if err := json.Indent(&out, buf.Bytes(), "", "  "); err != nil {
		return nil, err
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

func writeKey(buf *bytes.Buffer, name string) error {
	data, err := json.Marshal(name)
	if err != nil {
		return err
	}
	buf.Write(data)
	buf.WriteByte(':')
	return nil
}
