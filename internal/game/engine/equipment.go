package engine

import (
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/cory-johannsen/expedition/internal/game/item"
)

// equipItem moves an inventory item into its type slot, swapping any
// previously equipped item back into the inventory. HP keeps its absolute value.
func (e *Engine) equipItem(s *GameState, id string) error {
	p := s.Player
	idx := p.InventoryIndex(id)
	if idx < 0 {
		return ErrItemNotFound
	}
	eq := p.Inventory[idx]
	p.Inventory = slices.Delete(p.Inventory, idx, idx+1)
	if old := p.Equipment[eq.Type]; old != nil {
		p.Inventory = append(p.Inventory, old)
	}
	p.Equipment[eq.Type] = eq
	p.RecomputeKeepHP()
	return nil
}

// unequipItem returns the item in slot to the inventory when there is room.
func (e *Engine) unequipItem(s *GameState, slot item.Type) error {
	p := s.Player
	eq := p.Equipment[slot]
	if eq == nil {
		return ErrSlotEmpty
	}
	if p.InventoryFull() {
		return ErrInventoryFull
	}
	delete(p.Equipment, slot)
	p.Inventory = append(p.Inventory, eq)
	p.RecomputeKeepHP()
	return nil
}

func (e *Engine) sellItem(s *GameState, id string) error {
	p := s.Player
	idx := p.InventoryIndex(id)
	if idx < 0 {
		return ErrItemNotFound
	}
	eq := p.Inventory[idx]
	gold, essence := item.SellValue(eq)
	p.Gold += gold
	p.Essence += essence
	p.Inventory = slices.Delete(p.Inventory, idx, idx+1)
	s.logf(LogInfo, "Salvaged [%s] for %dG, %d essence", eq.DisplayName(), gold, essence)
	return nil
}

// batchSell salvages every inventory item of the listed rarities. Mythic
// items are excluded even when listed.
func (e *Engine) batchSell(s *GameState, rarities []item.Rarity) error {
	p := s.Player
	var gold, essence, sold int
	kept := p.Inventory[:0:0]
	for _, eq := range p.Inventory {
		if eq.Rarity == item.Mythic || !slices.Contains(rarities, eq.Rarity) {
			kept = append(kept, eq)
			continue
		}
		g, es := item.SellValue(eq)
		gold += g
		essence += es
		sold++
	}
	if sold == 0 {
		return nil
	}
	p.Inventory = kept
	p.Gold += gold
	p.Essence += essence
	s.logf(LogInfo, "Salvaged %d items for %dG, %d essence", sold, gold, essence)
	return nil
}

// upgradeItem spends the attempt cost and rolls against the success table.
// Reaching the max level awakens one epic effect. HP keeps its absolute value.
func (e *Engine) upgradeItem(s *GameState, slot item.Type) error {
	p := s.Player
	eq := p.Equipment[slot]
	if eq == nil {
		return ErrSlotEmpty
	}
	if eq.UpgradeLevel >= item.MaxUpgradeLevel {
		return ErrMaxUpgrade
	}
	gold, essence := item.UpgradeCost(eq.UpgradeLevel)
	if p.Gold < gold {
		return ErrInsufficientGold
	}
	if p.Essence < essence {
		return ErrInsufficientEssence
	}
	p.Gold -= gold
	p.Essence -= essence

	if !item.RollUpgrade(eq.UpgradeLevel, e.src) {
		s.logf(LogDanger, "Upgrade failed! [%s] stays at +%d", eq.Name, eq.UpgradeLevel)
		e.logger.Debug("upgrade failed", zap.String("item", eq.ID), zap.Int("level", eq.UpgradeLevel))
		return nil
	}
	eq.UpgradeLevel++
	msg := fmt.Sprintf("Upgrade succeeded! [%s] is now +%d", eq.Name, eq.UpgradeLevel)
	if eq.UpgradeLevel == item.MaxUpgradeLevel {
		epic := item.Awaken(eq, e.src)
		msg += " and awakened [" + epic.Name + "]!"
	}
	p.RecomputeKeepHP()
	s.logf(LogSuccess, "%s", msg)
	e.logger.Debug("upgrade succeeded", zap.String("item", eq.ID), zap.Int("level", eq.UpgradeLevel))
	return nil
}
