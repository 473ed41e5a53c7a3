package engine_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/cory-johannsen/expedition/internal/game/dice"
	"github.com/cory-johannsen/expedition/internal/game/engine"
	"github.com/cory-johannsen/expedition/internal/game/stats"
)

// TestLevelUpAttribute verifies a point raises the attribute and preserves the HP ratio.
func TestLevelUpAttribute(t *testing.T) {
	eng := newEngine(t, dice.NewScriptedSource(0.5))
	s := engine.NewGame(t0)
	s.Player.Stats.HP = s.Player.Stats.MaxHP / 2

	s = eng.Apply(s, engine.LevelUpAttribute{Attr: stats.Vit})
	assert.Equal(t, 6, s.Player.Attributes.Vit)
	assert.Equal(t, 4, s.Player.AttributePoints)
	assert.Equal(t, 165.0, s.Player.Stats.MaxHP)
	assert.Equal(t, 82.0, s.Player.Stats.HP)
}

// TestLevelUpAttribute_Rejections verifies missing points and unknown attributes are refused.
func TestLevelUpAttribute_Rejections(t *testing.T) {
	eng := newEngine(t, dice.NewScriptedSource(0.5))
	s := engine.NewGame(t0)
	next := eng.Apply(s, engine.LevelUpAttribute{Attr: "luck"})
	assert.Contains(t, lastLog(next).Text, "Unknown attribute")

	s.Player.AttributePoints = 0
	next = eng.Apply(s, engine.LevelUpAttribute{Attr: stats.Str})
	assert.Equal(t, "No attribute points available!", lastLog(next).Text)
	assert.Equal(t, 5, next.Player.Attributes.Str)
}

// TestUpdateAutoAllocation verifies weights above the total cap are refused.
func TestUpdateAutoAllocation(t *testing.T) {
	eng := newEngine(t, dice.NewScriptedSource(0.5))
	s := engine.NewGame(t0)
	bad := stats.Allocation{Enabled: true, Weights: stats.Attributes{Vit: 3, Str: 3}}
	next := eng.Apply(s, engine.UpdateAutoAllocation{Policy: bad})
	assert.Contains(t, lastLog(next).Text, "Invalid auto-allocation")
	assert.False(t, next.Player.Allocation.Enabled)

	good := stats.Allocation{Enabled: true, Weights: stats.Attributes{Str: 5}}
	next = eng.Apply(s, engine.UpdateAutoAllocation{Policy: good})
	assert.Equal(t, good, next.Player.Allocation)
}

// TestChangeStage verifies stage changes are clamped and reset the wave and kill progress.
func TestChangeStage(t *testing.T) {
	eng := newEngine(t, dice.NewScriptedSource(0.5))
	s := combatState(foe("a", 3, 10))
	s.Stage, s.MaxStage, s.KillCount = 3, 5, 2

	up := eng.Apply(s, engine.ChangeStage{Delta: 10})
	assert.Equal(t, 5, up.Stage)
	assert.Empty(t, up.Enemies)
	assert.Zero(t, up.KillCount)
	assert.Equal(t, engine.LogStage, lastLog(up).Kind)

	down := eng.Apply(s, engine.ChangeStage{Delta: -10})
	assert.Equal(t, 1, down.Stage)

	same := eng.Apply(s, engine.ChangeStage{Delta: 0})
	assert.Equal(t, 2, same.KillCount)
	assert.Len(t, same.Enemies, 1)
}

// TestToggles verifies both toggles flip their flag and auto-advance logs the new mode.
func TestToggles(t *testing.T) {
	eng := newEngine(t, dice.NewScriptedSource(0.5))
	s := engine.NewGame(t0)
	s = eng.Apply(s, engine.ToggleAutoBattle{})
	assert.False(t, s.AutoBattle)
	assert.Equal(t, engine.Paused, s.Phase())

	s = eng.Apply(s, engine.ToggleAutoAdvance{})
	assert.False(t, s.AutoAdvance)
	assert.Contains(t, lastLog(s).Text, "Loop mode")
	s = eng.Apply(s, engine.ToggleAutoAdvance{})
	assert.Equal(t, "Auto-advance enabled", lastLog(s).Text)
}

// TestRegenHP verifies regeneration heals the wounded living player only.
func TestRegenHP(t *testing.T) {
	eng := newEngine(t, dice.NewScriptedSource(0.5))
	s := engine.NewGame(t0)
	s.Player.Stats.HP = 50
	assert.Equal(t, 52.0, eng.Apply(s, engine.RegenHP{}).Player.Stats.HP)

	s.Player.Stats.HP = s.Player.Stats.MaxHP - 1
	assert.Equal(t, s.Player.Stats.MaxHP, eng.Apply(s, engine.RegenHP{}).Player.Stats.HP)

	s.Player.Stats.HP = 0
	assert.Zero(t, eng.Apply(s, engine.RegenHP{}).Player.Stats.HP)
}

// TestCleanupEffects verifies age-based eviction of floating texts and effects.
func TestCleanupEffects(t *testing.T) {
	eng := newEngine(t, dice.NewScriptedSource(0.5))
	s := engine.NewGame(t0)
	s.FloatingTexts = []engine.FloatingText{
		{ID: "old", CreatedAt: t0},
		{ID: "new", CreatedAt: t0.Add(1500 * time.Millisecond)},
	}
	s.Effects = []engine.Effect{
		{ID: "kept", CreatedAt: t0},
		{ID: "gone", CreatedAt: t0.Add(-time.Second)},
	}

	s = eng.Apply(s, engine.CleanupEffects{Now: t0.Add(1600 * time.Millisecond)})
	if assert.Len(t, s.FloatingTexts, 1) {
		assert.Equal(t, "new", s.FloatingTexts[0].ID)
	}
	if assert.Len(t, s.Effects, 1) {
		assert.Equal(t, "kept", s.Effects[0].ID)
	}
}

// TestLogCapacity verifies the battle log keeps only the newest entries.
func TestLogCapacity(t *testing.T) {
	eng := newEngine(t, dice.NewScriptedSource(0.5))
	s := engine.NewGame(t0)
	for i := 0; i < engine.LogCapacity+10; i++ {
		s = eng.Apply(s, engine.ToggleAutoAdvance{})
	}
	assert.Len(t, s.Log, engine.LogCapacity)
	assert.NotEqual(t, "Welcome to Pixel Expedition!", s.Log[0].Text)
}

// TestPresentationActions verifies view selection does not touch simulation state.
func TestPresentationActions(t *testing.T) {
	eng := newEngine(t, dice.NewScriptedSource(0.5))
	s := engine.NewGame(t0)
	s = eng.Apply(s, engine.SwitchView{View: engine.ViewInventory})
	s = eng.Apply(s, engine.ViewItem{ItemID: "abc"})
	assert.Equal(t, engine.ViewInventory, s.View)
	assert.Equal(t, "abc", s.ViewingItem)
	assert.Equal(t, 1, s.Stage)
}
