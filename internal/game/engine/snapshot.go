package engine

import (
	"slices"
	"time"

	"github.com/cory-johannsen/expedition/internal/game/character"
	"github.com/cory-johannsen/expedition/internal/game/item"
	"github.com/cory-johannsen/expedition/internal/game/skill"
	"github.com/cory-johannsen/expedition/internal/save"
)

// Snapshot extracts the persisted subset of s, stamped with now.
//
// Postcondition: the snapshot shares no mutable memory with s.
func Snapshot(s *GameState, now time.Time) save.Snapshot {
	p := s.Player.Clone()
	skills := make([]save.SkillLevel, 0, len(p.Skills))
	for _, sk := range p.Skills {
		skills = append(skills, save.SkillLevel{ID: sk.ID, Level: sk.Level})
	}
	return save.Snapshot{
		Version: save.Version,
		Player: save.PlayerSnapshot{
			Level:           p.Level,
			Exp:             p.Exp,
			Gold:            p.Gold,
			Essence:         p.Essence,
			AttributePoints: p.AttributePoints,
			SkillPoints:     p.SkillPoints,
			HP:              p.Stats.HP,
			Attributes:      p.Attributes,
			Allocation:      p.Allocation,
			Equipment:       p.Equipment,
			Inventory:       p.Inventory,
			Skills:          skills,
			EquippedSkills:  p.EquippedSkills,
		},
		Stage:       s.Stage,
		MaxStage:    s.MaxStage,
		AutoAdvance: s.AutoAdvance,
		AutoBattle:  s.AutoBattle,
		KillCount:   s.KillCount,
		SavedAt:     now,
	}
}

// Restore rebuilds a live state from snap. Derived stats and per-skill numbers
// are recomputed from the current formulas; the wave, cooldowns, and kill
// progress start empty.
//
// Postcondition: 1 <= Stage <= MaxStage; 0 < Player.Stats.HP <= Player.Stats.MaxHP;
// Phase() is Idle or Paused.
func Restore(snap save.Snapshot, now time.Time) *GameState {
	ps := snap.Player
	levels := make(map[string]int, len(ps.Skills))
	for _, sl := range ps.Skills {
		levels[sl.ID] = sl.Level
	}

	p := &character.Player{
		Level:           max(1, ps.Level),
		Exp:             max(0, ps.Exp),
		Gold:            ps.Gold,
		Essence:         ps.Essence,
		AttributePoints: ps.AttributePoints,
		SkillPoints:     ps.SkillPoints,
		Attributes:      ps.Attributes,
		Allocation:      ps.Allocation,
		Equipment:       make(map[item.Type]*item.Equipment, len(ps.Equipment)),
		Skills:          skill.RestoreCatalog(levels),
	}
	p.MaxExp = character.ExpReq(p.Level)
	for _, eq := range ps.Equipment {
		if eq != nil {
			p.Equipment[eq.Type] = eq.Clone()
		}
	}
	for _, eq := range ps.Inventory {
		if eq != nil && len(p.Inventory) < character.InventoryCapacity {
			p.Inventory = append(p.Inventory, eq.Clone())
		}
	}
	for _, id := range ps.EquippedSkills {
		idx := skill.Index(p.Skills, id)
		if idx < 0 || !p.Skills[idx].Castable() || slices.Contains(p.EquippedSkills, id) {
			continue
		}
		if len(p.EquippedSkills) < character.SkillBarCapacity {
			p.EquippedSkills = append(p.EquippedSkills, id)
		}
	}

	p.Stats = p.ComputeStats()
	p.Stats.HP = ps.HP
	if p.Stats.HP <= 0 {
		p.Stats.HP = p.Stats.MaxHP
	}
	p.Stats.ClampHP()

	maxStage := max(1, snap.MaxStage)
	s := &GameState{
		Player:      p,
		Stage:       clampStage(snap.Stage, maxStage),
		MaxStage:    maxStage,
		AutoBattle:  snap.AutoBattle,
		AutoAdvance: snap.AutoAdvance,
		Cooldowns:   make(map[string]time.Time),
		LastTick:    now,
		View:        ViewCombat,
	}
	s.logf(LogInfo, "Welcome back! Progress restored from stage %d.", s.Stage)
	return s
}
