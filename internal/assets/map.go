package assets

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Map is the id -> asset lookup table. It is filled once at startup and
// read-only afterwards.
type Map struct {
	byID map[string]Asset
	ids  []string
}

// NewMap builds a map from decoded records. Duplicate ids are an error.
func NewMap(records []Record) (*Map, error) {
	m := &Map{byID: make(map[string]Asset, len(records))}
	for _, r := range records {
		a, err := Decode(r)
		if err != nil {
			return nil, err
		}
		if _, dup := m.byID[a.AssetID()]; dup {
			return nil, fmt.Errorf("duplicate asset id %s", a.AssetID())
		}
		m.byID[a.AssetID()] = a
		m.ids = append(m.ids, a.AssetID())
	}
	sort.Strings(m.ids)
	return m, nil
}

// LoadFile reads a YAML list of records.
func LoadFile(path string) (*Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var records []Record
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return NewMap(records)
}

// Get looks up an asset by id.
func (m *Map) Get(id string) (Asset, bool) {
	a, ok := m.byID[id]
	return a, ok
}

// Len returns the number of assets.
func (m *Map) Len() int {
	return len(m.ids)
}

// IDs returns all asset ids, sorted.
func (m *Map) IDs() []string {
	out := make([]string, len(m.ids))
	copy(out, m.ids)
	return out
}
