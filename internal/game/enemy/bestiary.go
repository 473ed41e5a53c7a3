package enemy

import (
	"bytes"
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed bestiary.yaml
var bestiaryYAML []byte

// ZoneCount is the number of themed zones before the cycle repeats.
const ZoneCount = 10

// Boss is the named guardian of a zone.
type Boss struct {
	Name        string `yaml:"name"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

// Zone is a cosmetic grouping of five stages sharing a monster pool and boss.
type Zone struct {
	ID          int      `yaml:"id"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Monsters    []string `yaml:"monsters"`
	Boss        Boss     `yaml:"boss"`
}

// Bestiary indexes zones by id.
type Bestiary struct {
	zones map[int]*Zone
}

// LoadBestiary parses and validates a bestiary document.
//
// Postcondition: Returns a Bestiary with zone ids 1..ZoneCount, or an error.
func LoadBestiary(data []byte) (*Bestiary, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var doc struct {
		Zones []*Zone `yaml:"zones"`
	}
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parsing bestiary: %w", err)
	}
	b := &Bestiary{zones: make(map[int]*Zone, len(doc.Zones))}
	for _, z := range doc.Zones {
		if z.ID < 1 || z.ID > ZoneCount {
			return nil, fmt.Errorf("zone %d: id must be 1-%d", z.ID, ZoneCount)
		}
		if len(z.Monsters) == 0 {
			return nil, fmt.Errorf("zone %d: monsters must not be empty", z.ID)
		}
		if z.Boss.Name == "" {
			return nil, fmt.Errorf("zone %d: boss name must not be empty", z.ID)
		}
		if _, dup := b.zones[z.ID]; dup {
			return nil, fmt.Errorf("zone %d: duplicate id", z.ID)
		}
		b.zones[z.ID] = z
	}
	for id := 1; id <= ZoneCount; id++ {
		if _, ok := b.zones[id]; !ok {
			return nil, fmt.Errorf("zone %d: missing", id)
		}
	}
	return b, nil
}

var defaultBestiary = sync.OnceValue(func() *Bestiary {
	b, err := LoadBestiary(bestiaryYAML)
	if err != nil {
		panic("enemy: embedded bestiary is invalid: " + err.Error())
	}
	return b
})

// DefaultBestiary returns the embedded bestiary.
func DefaultBestiary() *Bestiary { return defaultBestiary() }

// Zone returns the zone governing stage.
//
// Precondition: stage >= 1.
func (b *Bestiary) Zone(stage int) *Zone {
	return b.zones[ZoneNumber(stage)]
}
