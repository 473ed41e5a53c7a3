// Package skill provides the fixed skill catalog and the per-level derived
// numbers each skill exposes to the engine and the stat model.
package skill

import (
	"errors"
	"fmt"
	"math"
)

// ErrUnknownSkill is returned when a skill id is not in the catalog.
var ErrUnknownSkill = errors.New("unknown skill")

// Tree is one of the three skill trees.
type Tree string

const (
	Combat  Tree = "Combat"
	Sustain Tree = "Sustain"
	Control Tree = "Control"
)

// Target is how an active skill selects enemies.
type Target string

const (
	TargetSelf   Target = "self"
	TargetSingle Target = "single"
	TargetAOE    Target = "aoe"
)

// Passive skill ids with a fixed effect mapping.
const (
	WarGodsWill      = "c_t1_2" // atk × (1+e)
	Fury             = "c_t2_3" // critRate + e
	WeakpointInsight = "c_t3_2" // critDmg + e
	UndyingBody      = "s_t1_2" // def × (1+e)
	AngelicWard      = "s_t2_2" // hpRegen + e
	ThornAura        = "s_t2_3" // reflect e of damage taken
	Devotion         = "s_t3_2" // maxHp × (1+e)
	ArcaneWisdom     = "m_t1_2" // speed × (1+e)
	CurseOfAgony     = "m_t2_2" // damage taken × (1−e)
	AstralForesight  = "m_t3_2" // dodge + e
)

// MinCooldown is the floor, in seconds, of any active skill cooldown.
const MinCooldown = 0.5

// Growth is the per-level increment of each derived field.
type Growth struct {
	Damage   float64 `yaml:"damage"`
	Heal     float64 `yaml:"heal"`
	Cooldown float64 `yaml:"cooldown"`
	Effect   float64 `yaml:"effect"`
}

// Definition is the static catalog entry of a skill.
type Definition struct {
	ID           string  `yaml:"id"`
	Name         string  `yaml:"name"`
	Description  string  `yaml:"description"`
	Tree         Tree    `yaml:"tree"`
	Tier         int     `yaml:"tier"`
	MaxLevel     int     `yaml:"max_level"`
	Passive      bool    `yaml:"passive"`
	Target       Target  `yaml:"target"`
	BaseCooldown float64 `yaml:"cooldown"`
	BaseDamage   float64 `yaml:"damage"`
	BaseHeal     float64 `yaml:"heal"`
	BaseEffect   float64 `yaml:"effect"`
	Growth       Growth  `yaml:"growth"`
}

// Validate checks that the definition satisfies catalog invariants.
func (d *Definition) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("skill: id must not be empty")
	}
	if d.Name == "" {
		return fmt.Errorf("skill %q: name must not be empty", d.ID)
	}
	switch d.Tree {
	case Combat, Sustain, Control:
	default:
		return fmt.Errorf("skill %q: unknown tree %q", d.ID, d.Tree)
	}
	if d.Tier < 1 || d.Tier > 4 {
		return fmt.Errorf("skill %q: tier must be 1-4, got %d", d.ID, d.Tier)
	}
	if d.MaxLevel < 1 {
		return fmt.Errorf("skill %q: max_level must be >= 1", d.ID)
	}
	if !d.Passive {
		switch d.Target {
		case TargetSelf, TargetSingle, TargetAOE:
		default:
			return fmt.Errorf("skill %q: active skill needs target self|single|aoe, got %q", d.ID, d.Target)
		}
	}
	return nil
}

// Skill is a catalog entry at a specific level with its derived fields.
//
// Invariant: the derived fields always equal At(Definition, Level).
type Skill struct {
	*Definition
	Level       int
	Cooldown    float64 // seconds
	DamageMult  float64
	HealMult    float64
	EffectValue float64
}

// At returns def evaluated at level.
//
// Postcondition: Cooldown >= MinCooldown; DamageMult == 0 for passives;
// EffectValue == 0 for actives.
func At(def *Definition, level int) Skill {
	l := float64(level)
	s := Skill{
		Definition: def,
		Level:      level,
		HealMult:   round(def.BaseHeal+l*def.Growth.Heal, 2),
		Cooldown:   round(math.Max(MinCooldown, def.BaseCooldown+l*def.Growth.Cooldown), 1),
	}
	if def.Passive {
		s.EffectValue = round(def.BaseEffect+l*def.Growth.Effect, 3)
	} else {
		s.DamageMult = round(def.BaseDamage+l*def.Growth.Damage, 2)
	}
	return s
}

// WithLevel returns s re-evaluated at level.
func (s Skill) WithLevel(level int) Skill {
	return At(s.Definition, level)
}

// Learned reports whether at least one point has been invested.
func (s Skill) Learned() bool { return s.Level > 0 }

// Maxed reports whether the skill is at its maximum level.
func (s Skill) Maxed() bool { return s.Level >= s.MaxLevel }

// Castable reports whether s can be placed on the action bar and cast.
func (s Skill) Castable() bool { return s.Learned() && !s.Passive }

// Heals reports whether casting s goes through the healing branch.
func (s Skill) Heals() bool { return s.Tree == Sustain && s.HealMult > 0 }

func round(x float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(x*p) / p
}

// unlock thresholds per tier: minimum character level and points spent in the tree.
var unlockRules = map[int]struct{ level, spent int }{
	1: {0, 0},
	2: {10, 5},
	3: {25, 10},
	4: {50, 20},
}

// Unlocked reports whether def's tier is open for a character of playerLevel
// who has spent spentInTree points in def's tree.
func Unlocked(def *Definition, playerLevel, spentInTree int) bool {
	rule, ok := unlockRules[def.Tier]
	if !ok {
		return false
	}
	return playerLevel >= rule.level && spentInTree >= rule.spent
}

// SpentInTree sums the levels of every skill in tree.
func SpentInTree(skills []Skill, tree Tree) int {
	total := 0
	for _, s := range skills {
		if s.Tree == tree {
			total += s.Level
		}
	}
	return total
}

// Index returns the position of id in skills, or -1.
func Index(skills []Skill, id string) int {
	for i := range skills {
		if skills[i].ID == id {
			return i
		}
	}
	return -1
}

// PassiveEffect returns the EffectValue of passive id when learned, and false otherwise.
func PassiveEffect(skills []Skill, id string) (float64, bool) {
	i := Index(skills, id)
	if i < 0 || skills[i].Level <= 0 {
		return 0, false
	}
	return skills[i].EffectValue, true
}
