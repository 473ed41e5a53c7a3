package skill

import (
	"bytes"
	_ "embed"
	"fmt"
	"slices"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed skills.yaml
var catalogYAML []byte

// LoadDefinitions parses and validates a YAML skill list.
//
// Postcondition: Returns definitions in file order with unique ids, or an error.
func LoadDefinitions(data []byte) ([]*Definition, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var defs []*Definition
	if err := dec.Decode(&defs); err != nil {
		return nil, fmt.Errorf("parsing skill catalog: %w", err)
	}
	seen := make(map[string]bool, len(defs))
	for _, d := range defs {
		if err := d.Validate(); err != nil {
			return nil, err
		}
		if seen[d.ID] {
			return nil, fmt.Errorf("skill %q: duplicate id", d.ID)
		}
		seen[d.ID] = true
	}
	return defs, nil
}

var defaultDefinitions = sync.OnceValue(func() []*Definition {
	defs, err := LoadDefinitions(catalogYAML)
	if err != nil {
		panic("skill: embedded catalog is invalid: " + err.Error())
	}
	return defs
})

// Definitions returns the embedded catalog in display order.
func Definitions() []*Definition {
	return slices.Clone(defaultDefinitions())
}

// Lookup returns the definition for id.
func Lookup(id string) (*Definition, error) {
	for _, d := range defaultDefinitions() {
		if d.ID == id {
			return d, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownSkill, id)
}

// NewCatalog returns the full catalog at level 0.
func NewCatalog() []Skill {
	defs := defaultDefinitions()
	out := make([]Skill, len(defs))
	for i, d := range defs {
		out[i] = At(d, 0)
	}
	return out
}

// RestoreCatalog returns the full catalog with stored levels applied by id.
// Ids absent from levels stay at level 0; ids not in the catalog are ignored;
// levels are clamped to [0, MaxLevel].
func RestoreCatalog(levels map[string]int) []Skill {
	out := NewCatalog()
	for i := range out {
		if l, ok := levels[out[i].ID]; ok {
			out[i] = At(out[i].Definition, max(0, min(l, out[i].MaxLevel)))
		}
	}
	return out
}
