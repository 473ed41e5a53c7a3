package character_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/expedition/internal/game/character"
	"github.com/cory-johannsen/expedition/internal/game/item"
	"github.com/cory-johannsen/expedition/internal/game/skill"
	"github.com/cory-johannsen/expedition/internal/game/stats"
)

func learn(t *testing.T, p *character.Player, id string, level int) {
	t.Helper()
	i := skill.Index(p.Skills, id)
	require.GreaterOrEqual(t, i, 0, id)
	p.Skills[i] = p.Skills[i].WithLevel(level)
}

// TestNew_BaseStats verifies the starting character's derived stats.
func TestNew_BaseStats(t *testing.T) {
	p := character.New()
	s := p.Stats
	assert.Equal(t, 155.0, s.MaxHP)
	assert.Equal(t, s.MaxHP, s.HP)
	assert.InDelta(t, 2.0, s.HPRegen, 1e-9)
	assert.Equal(t, 16.0, s.Atk)
	assert.InDelta(t, 3.5, s.Def, 1e-9)
	assert.InDelta(t, 11.0, s.Speed, 1e-9)
	assert.InDelta(t, 0.0525, s.CritRate, 1e-9)
	assert.InDelta(t, 1.525, s.CritDmg, 1e-9)
	assert.InDelta(t, 0.0025, s.Dodge, 1e-9)
	assert.Zero(t, s.Lifesteal)
	assert.Equal(t, 100, p.MaxExp)
	assert.Equal(t, 5, p.AttributePoints)
	assert.Equal(t, 1, p.SkillPoints)
	assert.Len(t, p.Skills, 24)
}

// TestComputeStats_UpgradeScalesFlatOnly verifies upgrades amplify flat stats but not percentages.
func TestComputeStats_UpgradeScalesFlatOnly(t *testing.T) {
	p := character.New()
	p.Equipment[item.Weapon] = &item.Equipment{
		Type: item.Weapon, UpgradeLevel: 2,
		Base: stats.Stats{Atk: 30, CritDmg: 0.1, HPRegen: 1},
	}
	s := p.ComputeStats()
	assert.Equal(t, 16.0+36.0, s.Atk)
	assert.InDelta(t, 1.625, s.CritDmg, 1e-9)
	assert.InDelta(t, 2.0+1.0, s.HPRegen, 1e-9)
	assert.Zero(t, s.HP)
}

// TestComputeStats_VampiricAura verifies the awakened aura grants flat lifesteal.
func TestComputeStats_VampiricAura(t *testing.T) {
	p := character.New()
	p.Equipment[item.Accessory] = &item.Equipment{
		Type: item.Accessory, Base: stats.Stats{Lifesteal: 0.03},
		SpecialEffects: []item.Effect{item.VampiricAura},
	}
	assert.InDelta(t, 0.23, p.ComputeStats().Lifesteal, 1e-9)
}

// TestComputeStats_Passives verifies the passive mapping and the multiplicative base.
func TestComputeStats_Passives(t *testing.T) {
	p := character.New()
	p.Equipment[item.Weapon] = &item.Equipment{Type: item.Weapon, Base: stats.Stats{Atk: 4}}
	learn(t, p, skill.WarGodsWill, 1) // 0.06
	learn(t, p, skill.Fury, 1)        // 0.025
	learn(t, p, skill.Devotion, 1)    // 0.07
	learn(t, p, skill.AstralForesight, 1)

	s := p.ComputeStats()
	assert.InDelta(t, 20*1.06, s.Atk, 1e-9, "multiplier applies to equipment-inclusive attack")
	assert.InDelta(t, 0.0525+0.025, s.CritRate, 1e-9)
	assert.InDelta(t, 155*1.07, s.MaxHP, 1e-9)
	assert.InDelta(t, 0.0025+0.012, s.Dodge, 1e-9)
}

// TestComputeStats_UnlearnedPassiveIgnored verifies level-0 passives contribute nothing.
func TestComputeStats_UnlearnedPassiveIgnored(t *testing.T) {
	p := character.New()
	assert.Equal(t, 16.0, p.ComputeStats().Atk)
}

// TestComputeStats_Monotonic verifies raising one attribute never lowers its governed stat.
func TestComputeStats_Monotonic(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		attrs := stats.Attributes{
			Vit: rapid.IntRange(0, 500).Draw(rt, "vit"),
			Str: rapid.IntRange(0, 500).Draw(rt, "str"),
			Agi: rapid.IntRange(0, 500).Draw(rt, "agi"),
			Crt: rapid.IntRange(0, 500).Draw(rt, "crt"),
		}
		level := rapid.IntRange(1, 200).Draw(rt, "level")
		attr := rapid.SampledFrom(stats.AllAttributes).Draw(rt, "attr")
		skills := skill.NewCatalog()

		before := character.ComputeStats(attrs, nil, level, skills)
		after := character.ComputeStats(attrs.With(attr, 1), nil, level, skills)
		switch attr {
		case stats.Vit:
			assert.GreaterOrEqual(rt, after.MaxHP, before.MaxHP)
		case stats.Str:
			assert.GreaterOrEqual(rt, after.Atk, before.Atk)
		case stats.Agi:
			assert.GreaterOrEqual(rt, after.Speed, before.Speed)
		case stats.Crt:
			assert.GreaterOrEqual(rt, after.CritRate, before.CritRate)
		}
	})
}

// TestRecompute_HPPolicies verifies the three HP-handling recompute modes.
func TestRecompute_HPPolicies(t *testing.T) {
	p := character.New()
	p.Stats.HP = 77.5
	p.Attributes.Vit += 10

	keep := p.Clone()
	keep.RecomputeKeepHP()
	assert.Equal(t, 77.5, keep.Stats.HP)

	ratio := p.Clone()
	ratio.RecomputeKeepRatio()
	assert.Equal(t, 127.0, ratio.Stats.HP) // floor(255 * 0.5)

	full := p.Clone()
	full.RecomputeFullHeal()
	assert.Equal(t, full.Stats.MaxHP, full.Stats.HP)
}

// TestRecomputeKeepHP_ClampsToNewMax verifies HP shrinks with a lower max.
func TestRecomputeKeepHP_ClampsToNewMax(t *testing.T) {
	p := character.New()
	p.Equipment[item.Armor] = &item.Equipment{Type: item.Armor, Base: stats.Stats{MaxHP: 100}}
	p.RecomputeFullHeal()
	delete(p.Equipment, item.Armor)
	p.RecomputeKeepHP()
	assert.Equal(t, 155.0, p.Stats.HP)
}

// TestExpReq verifies the exponential experience curve.
func TestExpReq(t *testing.T) {
	assert.Equal(t, 100, character.ExpReq(1))
	assert.Equal(t, 132, character.ExpReq(3))
	for l := 1; l < 50; l++ {
		assert.LessOrEqual(t, character.ExpReq(l), character.ExpReq(l+1))
	}
}

// TestGainExp_SingleLevel verifies one level-up grants points and heals fully.
func TestGainExp_SingleLevel(t *testing.T) {
	p := character.New()
	p.Stats.HP = 1
	levels := p.GainExp(100)
	assert.Equal(t, 1, levels)
	assert.Equal(t, 2, p.Level)
	assert.Zero(t, p.Exp)
	assert.Equal(t, character.ExpReq(2), p.MaxExp)
	assert.Equal(t, 10, p.AttributePoints)
	assert.Equal(t, 2, p.SkillPoints)
	assert.Equal(t, p.Stats.MaxHP, p.Stats.HP)
	assert.Equal(t, 160.0, p.Stats.MaxHP)
}

// TestGainExp_Cascade verifies multiple thresholds resolve in one call.
func TestGainExp_Cascade(t *testing.T) {
	p := character.New()
	levels := p.GainExp(100 + character.ExpReq(2) + 5)
	assert.Equal(t, 2, levels)
	assert.Equal(t, 3, p.Level)
	assert.Equal(t, 5, p.Exp)
	assert.Equal(t, character.ExpReq(3), p.MaxExp)
}

// TestGainExp_AutoAllocation verifies weighted points are spent on level-up.
func TestGainExp_AutoAllocation(t *testing.T) {
	p := character.New()
	p.Allocation.Enabled = true
	p.GainExp(100)
	assert.Equal(t, stats.Attributes{Vit: 6, Str: 7, Agi: 6, Crt: 6}, p.Attributes)
	assert.Equal(t, 5, p.AttributePoints)
}

// TestClone_IsDeep verifies clones share no mutable state.
func TestClone_IsDeep(t *testing.T) {
	p := character.New()
	p.Inventory = append(p.Inventory, &item.Equipment{ID: "a", Affixes: []string{"x"}})
	p.Equipment[item.Boots] = &item.Equipment{ID: "b"}
	p.EquippedSkills = []string{"c_t1_1"}

	c := p.Clone()
	c.Inventory[0].Affixes[0] = "y"
	c.Equipment[item.Boots].UpgradeLevel = 3
	c.EquippedSkills[0] = "m_t1_1"
	c.Skills[0] = c.Skills[0].WithLevel(2)

	assert.Equal(t, "x", p.Inventory[0].Affixes[0])
	assert.Zero(t, p.Equipment[item.Boots].UpgradeLevel)
	assert.Equal(t, "c_t1_1", p.EquippedSkills[0])
	assert.Zero(t, p.Skills[0].Level)
	assert.Equal(t, 0, p.InventoryIndex("a"))
	assert.Equal(t, -1, p.InventoryIndex("zzz"))
}
