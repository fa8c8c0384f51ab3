// Package prefs defines the preference matrix: every configuration
// preference discovered in a site export, keyed by scope, group, and
// preference ID, with one value slot per deployment tier.
// The matrix is pure data — scanners fill it, writers serialize it.
package prefs

// ScopeGlobal is the scope of preferences that are not attached to a
// named system-object type.
const ScopeGlobal = "global"

// InstanceType identifies a deployment tier. "all" is the shared
// baseline; the other three are optional per-environment overrides.
type InstanceType string

const (
	InstanceAll         InstanceType = "all"
	InstanceDevelopment InstanceType = "development"
	InstanceStaging     InstanceType = "staging"
	InstanceProduction  InstanceType = "production"
)

// InstanceTypes returns the tiers in canonical order, baseline first.
func InstanceTypes() []InstanceType {
	return []InstanceType{InstanceAll, InstanceDevelopment, InstanceStaging, InstanceProduction}
}

// Record is one preference: its declared metadata plus the concrete
// value at each tier. Every record carries all four tier slots; an
// absent override is the empty string, never a missing entry.
type Record struct {
	Scope       string
	Group       string
	Key         string
	DisplayName string
	Values      map[InstanceType]string
}

func newRecord(scope, group, key string) *Record {
	values := make(map[InstanceType]string, 4)
	for _, it := range InstanceTypes() {
		values[it] = ""
	}
	return &Record{Scope: scope, Group: group, Key: key, Values: values}
}

// Matrix is the ordered scope → group → key → record mapping. Ordering
// at every level is first-discovery order, not alphabetical: operators
// diff reports across runs and rely on stable row positions.
type Matrix struct {
	scopes []string
	groups map[string][]string
	keys   map[string]map[string][]string
	byPath map[string]map[string]map[string]*Record
	byKey  map[string]map[string]*Record
}

// NewMatrix returns an empty matrix.
func NewMatrix() *Matrix {
	return &Matrix{
		groups: make(map[string][]string),
		keys:   make(map[string]map[string][]string),
		byPath: make(map[string]map[string]map[string]*Record),
		byKey:  make(map[string]map[string]*Record),
	}
}

// Ensure returns the record at (scope, group, key), creating it with
// four empty tier slots on first sight. Re-ensuring an existing path is
// a no-op on ordering and values.
func (m *Matrix) Ensure(scope, group, key string) *Record {
	if rec, ok := m.byPath[scope][group][key]; ok {
		return rec
	}
	if _, ok := m.byPath[scope]; !ok {
		m.scopes = append(m.scopes, scope)
		m.byPath[scope] = make(map[string]map[string]*Record)
		m.keys[scope] = make(map[string][]string)
		m.byKey[scope] = make(map[string]*Record)
	}
	if _, ok := m.byPath[scope][group]; !ok {
		m.groups[scope] = append(m.groups[scope], group)
		m.byPath[scope][group] = make(map[string]*Record)
	}
	rec := newRecord(scope, group, key)
	m.byPath[scope][group][key] = rec
	m.keys[scope][group] = append(m.keys[scope][group], key)
	if _, ok := m.byKey[scope][key]; !ok {
		m.byKey[scope][key] = rec
	}
	return rec
}

// Lookup finds a record by scope and key alone. Environment value files
// carry no group, so the merger resolves keys through this index; when
// the same key exists in several groups of one scope the first-discovered
// record wins.
func (m *Matrix) Lookup(scope, key string) (*Record, bool) {
	rec, ok := m.byKey[scope][key]
	return rec, ok
}

// Len reports the number of records.
func (m *Matrix) Len() int {
	n := 0
	for _, groups := range m.keys {
		for _, keys := range groups {
			n += len(keys)
		}
	}
	return n
}

// Scopes returns the scopes in discovery order.
func (m *Matrix) Scopes() []string {
	return append([]string(nil), m.scopes...)
}

// Groups returns the groups of a scope in discovery order.
func (m *Matrix) Groups(scope string) []string {
	return append([]string(nil), m.groups[scope]...)
}

// Keys returns the keys of (scope, group) in discovery order.
func (m *Matrix) Keys(scope, group string) []string {
	return append([]string(nil), m.keys[scope][group]...)
}

// Walk visits every record in discovery order.
func (m *Matrix) Walk(fn func(*Record)) {
	for _, scope := range m.scopes {
		for _, group := range m.groups[scope] {
			for _, key := range m.keys[scope][group] {
				fn(m.byPath[scope][group][key])
			}
		}
	}
}
