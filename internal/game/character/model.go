// Package character defines the player aggregate and the pure stat model that
// derives combat stats from attributes, gear, level, and passive skills.
package character

import (
	"math"
	"slices"

	"github.com/cory-johannsen/expedition/internal/game/item"
	"github.com/cory-johannsen/expedition/internal/game/skill"
	"github.com/cory-johannsen/expedition/internal/game/stats"
)

const (
	// InventoryCapacity bounds the number of unequipped items a player may hold.
	InventoryCapacity = 30
	// SkillBarCapacity bounds the number of skills on the action bar.
	SkillBarCapacity = 9
	// PointsPerLevel is the attribute-point grant of every level-up.
	PointsPerLevel = 5
)

// Player is the persistent character aggregate.
//
// Invariant: len(Inventory) <= InventoryCapacity; len(EquippedSkills) <= SkillBarCapacity;
// 0 <= Stats.HP <= Stats.MaxHP after every recompute. Exp may reach MaxExp
// between a banked reward and the next GainExp.
type Player struct {
	Level           int
	Exp             int
	MaxExp          int
	Gold            int
	Essence         int
	AttributePoints int
	SkillPoints     int
	Attributes      stats.Attributes
	Allocation      stats.Allocation
	Equipment       map[item.Type]*item.Equipment
	Inventory       []*item.Equipment
	Skills          []skill.Skill
	EquippedSkills  []string
	Stats           stats.Stats
}

// New returns a level-1 character at full health.
//
// Postcondition: Stats.HP == Stats.MaxHP; every skill is at level 0.
func New() *Player {
	p := &Player{
		Level:           1,
		MaxExp:          ExpReq(1),
		AttributePoints: 5,
		SkillPoints:     1,
		Attributes:      stats.Attributes{Vit: 5, Str: 5, Agi: 5, Crt: 5},
		Allocation:      stats.DefaultAllocation(),
		Equipment:       make(map[item.Type]*item.Equipment),
		Skills:          skill.NewCatalog(),
	}
	p.RecomputeFullHeal()
	return p
}

// Clone returns a deep copy of p. Skill definitions are shared since they are immutable.
func (p *Player) Clone() *Player {
	c := *p
	c.Equipment = make(map[item.Type]*item.Equipment, len(p.Equipment))
	for slot, e := range p.Equipment {
		c.Equipment[slot] = e.Clone()
	}
	c.Inventory = make([]*item.Equipment, len(p.Inventory))
	for i, e := range p.Inventory {
		c.Inventory[i] = e.Clone()
	}
	c.Skills = slices.Clone(p.Skills)
	c.EquippedSkills = slices.Clone(p.EquippedSkills)
	return &c
}

// InventoryFull reports whether the inventory has no free space.
func (p *Player) InventoryFull() bool { return len(p.Inventory) >= InventoryCapacity }

// InventoryIndex returns the inventory position of the item with id, or -1.
func (p *Player) InventoryIndex(id string) int {
	return slices.IndexFunc(p.Inventory, func(e *item.Equipment) bool { return e.ID == id })
}

// ComputeStats derives Stats for the player's current build. HP is left at zero.
func (p *Player) ComputeStats() stats.Stats {
	return ComputeStats(p.Attributes, p.Equipment, p.Level, p.Skills)
}

// RecomputeKeepHP recomputes stats preserving the absolute HP value, clamped to the new max.
func (p *Player) RecomputeKeepHP() {
	hp := p.Stats.HP
	p.Stats = p.ComputeStats()
	p.Stats.HP = hp
	p.Stats.ClampHP()
}

// RecomputeKeepRatio recomputes stats preserving the HP fraction, floored.
func (p *Player) RecomputeKeepRatio() {
	ratio := 0.0
	if p.Stats.MaxHP > 0 {
		ratio = p.Stats.HP / p.Stats.MaxHP
	}
	p.Stats = p.ComputeStats()
	p.Stats.HP = math.Floor(p.Stats.MaxHP * ratio)
	p.Stats.ClampHP()
}

// RecomputeFullHeal recomputes stats and restores HP to the new maximum.
func (p *Player) RecomputeFullHeal() {
	p.Stats = p.ComputeStats()
	p.Stats.HP = p.Stats.MaxHP
}
