// Package save defines the persisted snapshot contract and the stores that
// hold snapshots keyed by save slot.
package save

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cory-johannsen/expedition/internal/game/item"
	"github.com/cory-johannsen/expedition/internal/game/stats"
)

// Version is the snapshot schema version written by Encode.
const Version = 1

var (
	// ErrNotFound is returned by a Store when the slot holds no snapshot.
	ErrNotFound = errors.New("save: snapshot not found")
	// ErrUnsupportedVersion is returned by Decode for snapshots newer than Version.
	ErrUnsupportedVersion = errors.New("save: unsupported snapshot version")
)

// SkillLevel records the learned level of one catalog skill.
type SkillLevel struct {
	ID    string `json:"id"`
	Level int    `json:"level"`
}

// PlayerSnapshot is the persisted player record. Derived stats are never
// stored; only current HP survives a reload.
type PlayerSnapshot struct {
	Level           int                           `json:"level"`
	Exp             int                           `json:"exp"`
	Gold            int                           `json:"gold"`
	Essence         int                           `json:"essence"`
	AttributePoints int                           `json:"attributePoints"`
	SkillPoints     int                           `json:"skillPoints"`
	HP              float64                       `json:"hp"`
	Attributes      stats.Attributes              `json:"attributes"`
	Allocation      stats.Allocation              `json:"autoAllocation"`
	Equipment       map[item.Type]*item.Equipment `json:"equipment"`
	Inventory       []*item.Equipment             `json:"inventory"`
	Skills          []SkillLevel                  `json:"skills"`
	EquippedSkills  []string                      `json:"equippedSkills"`
}

// Snapshot is the reduced game state that crosses a reload boundary.
// The live wave, cooldowns, and presentation buffers are excluded.
type Snapshot struct {
	Version     int            `json:"version"`
	Player      PlayerSnapshot `json:"player"`
	Stage       int            `json:"stage"`
	MaxStage    int            `json:"maxStage"`
	AutoAdvance bool           `json:"autoAdvance"`
	AutoBattle  bool           `json:"autoBattle"`
	KillCount   int            `json:"killCount"`
	SavedAt     time.Time      `json:"savedAt"`
}

// Encode serializes s, stamping the current Version.
func Encode(s Snapshot) ([]byte, error) {
	s.Version = Version
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encoding snapshot: %w", err)
	}
	return data, nil
}

// Decode parses a snapshot produced by Encode.
//
// Postcondition: Returns ErrUnsupportedVersion when the stored version is
// newer than Version or not positive.
func Decode(data []byte) (Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return Snapshot{}, fmt.Errorf("decoding snapshot: %w", err)
	}
	if s.Version < 1 || s.Version > Version {
		return Snapshot{}, fmt.Errorf("%w: %d", ErrUnsupportedVersion, s.Version)
	}
	return s, nil
}
