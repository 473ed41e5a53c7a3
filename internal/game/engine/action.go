package engine

import (
	"time"

	"github.com/cory-johannsen/expedition/internal/game/item"
	"github.com/cory-johannsen/expedition/internal/game/stats"
)

// Action is one discrete state transition request. The set of actions is
// closed; each kind carries its own named operation.
type Action interface {
	apply(e *Engine, s *GameState) error
}

// Tick advances combat to Now.
type Tick struct{ Now time.Time }

// CastSkill casts an equipped active skill at Now. Cooldown gating is the caller's concern.
type CastSkill struct {
	SkillID string
	Now     time.Time
}

// Revive brings a fallen player back at Stage; AutoAdvance selects push or loop mode.
type Revive struct {
	Stage       int
	AutoAdvance bool
}

// EquipItem moves an inventory item to its slot.
type EquipItem struct{ ItemID string }

// UnequipItem moves the item in Slot back to the inventory.
type UnequipItem struct{ Slot item.Type }

// SellItem salvages one inventory item for gold and essence.
type SellItem struct{ ItemID string }

// BatchSell salvages every inventory item whose rarity is listed. Mythic items are never batch sold.
type BatchSell struct{ Rarities []item.Rarity }

// UpgradeItem attempts to raise the upgrade level of the item in Slot.
type UpgradeItem struct{ Slot item.Type }

// LearnSkill spends a skill point on SkillID.
type LearnSkill struct{ SkillID string }

// EquipSkill places SkillID on the action bar.
type EquipSkill struct{ SkillID string }

// UnequipSkill removes SkillID from the action bar.
type UnequipSkill struct{ SkillID string }

// LevelUpAttribute spends one attribute point on Attr.
type LevelUpAttribute struct{ Attr stats.Attribute }

// UpdateAutoAllocation replaces the level-up allocation policy.
type UpdateAutoAllocation struct{ Policy stats.Allocation }

// ToggleAutoBattle flips auto-battle.
type ToggleAutoBattle struct{}

// ToggleAutoAdvance flips between push and loop mode.
type ToggleAutoAdvance struct{}

// ChangeStage moves Delta stages, bounded to [1, MaxStage].
type ChangeStage struct{ Delta int }

// RegenHP applies one out-of-band regeneration pulse.
type RegenHP struct{}

// CleanupEffects evicts aged floating texts and visual effects as of Now.
type CleanupEffects struct{ Now time.Time }

// SwitchView selects a presentation screen.
type SwitchView struct{ View View }

// ViewItem selects an item for inspection; an empty ItemID clears the selection.
type ViewItem struct{ ItemID string }

func (a Tick) apply(e *Engine, s *GameState) error { return e.tick(s, a.Now) }
func (a CastSkill) apply(e *Engine, s *GameState) error { return e.castSkill(s, a.SkillID, a.Now) }
func (a Revive) apply(e *Engine, s *GameState) error { return e.revive(s, a.Stage, a.AutoAdvance) }
func (a EquipItem) apply(e *Engine, s *GameState) error { return e.equipItem(s, a.ItemID) }
func (a UnequipItem) apply(e *Engine, s *GameState) error { return e.unequipItem(s, a.Slot) }
func (a SellItem) apply(e *Engine, s *GameState) error { return e.sellItem(s, a.ItemID) }
func (a BatchSell) apply(e *Engine, s *GameState) error { return e.batchSell(s, a.Rarities) }
func (a UpgradeItem) apply(e *Engine, s *GameState) error { return e.upgradeItem(s, a.Slot) }
func (a LearnSkill) apply(e *Engine, s *GameState) error { return e.learnSkill(s, a.SkillID) }
func (a EquipSkill) apply(e *Engine, s *GameState) error { return e.equipSkill(s, a.SkillID) }
func (a UnequipSkill) apply(e *Engine, s *GameState) error { return e.unequipSkill(s, a.SkillID) }
func (a LevelUpAttribute) apply(e *Engine, s *GameState) error { return e.levelUpAttribute(s, a.Attr) }
func (a UpdateAutoAllocation) apply(e *Engine, s *GameState) error { return e.updateAutoAllocation(s, a.Policy) }
func (ToggleAutoBattle) apply(e *Engine, s *GameState) error { return e.toggleAutoBattle(s) }
func (ToggleAutoAdvance) apply(e *Engine, s *GameState) error { return e.toggleAutoAdvance(s) }
func (a ChangeStage) apply(e *Engine, s *GameState) error { return e.changeStage(s, a.Delta) }
func (RegenHP) apply(e *Engine, s *GameState) error { return e.regenHP(s) }
func (a CleanupEffects) apply(e *Engine, s *GameState) error { return e.cleanupEffects(s, a.Now) }

func (a SwitchView) apply(_ *Engine, s *GameState) error {
	s.View = a.View
	return nil
}

func (a ViewItem) apply(_ *Engine, s *GameState) error {
	s.ViewingItem = a.ItemID
	return nil
}
