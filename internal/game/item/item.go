// Package item defines equipment, its loot generation, and the upgrade and
// salvage economies around it.
package item

import (
	"fmt"
	"slices"

	"github.com/cory-johannsen/expedition/internal/game/stats"
)

// Type is an equipment slot kind. Every Type is also the slot it occupies.
type Type string

const (
	Weapon    Type = "Weapon"
	Armor     Type = "Armor"
	Boots     Type = "Boots"
	Accessory Type = "Accessory"
)

// Slots lists equipment slots in their fixed evaluation order.
var Slots = []Type{Weapon, Armor, Boots, Accessory}

// Rarity is the quality tier of an item.
type Rarity string

const (
	Common    Rarity = "Common"
	Rare      Rarity = "Rare"
	Legendary Rarity = "Legendary"
	Mythic    Rarity = "Mythic"
)

// Rarities lists rarity tiers from lowest to highest.
var Rarities = []Rarity{Common, Rare, Legendary, Mythic}

// Multiplier scales an item's base stats by quality.
func (r Rarity) Multiplier() float64 {
	switch r {
	case Mythic:
		return 2.5
	case Legendary:
		return 1.8
	case Rare:
		return 1.3
	default:
		return 1
	}
}

// AffixCount is the number of random affixes rolled for the rarity.
func (r Rarity) AffixCount() int {
	switch r {
	case Mythic:
		return 5
	case Legendary:
		return 3
	case Rare:
		return 2
	default:
		return 0
	}
}

// BaseEssence is the essence recovered by salvaging an item of this rarity.
func (r Rarity) BaseEssence() int {
	switch r {
	case Mythic:
		return 50
	case Legendary:
		return 15
	case Rare:
		return 5
	default:
		return 1
	}
}

func (r Rarity) prefix() string {
	if r == Common {
		return ""
	}
	return string(r) + " "
}

// Equipment is one minted item instance.
//
// Invariant: ID, Type, Rarity and Base never change after minting;
// 0 <= UpgradeLevel <= MaxUpgradeLevel.
type Equipment struct {
	ID             string      `json:"id"`
	Name           string      `json:"name"`
	Type           Type        `json:"type"`
	Rarity         Rarity      `json:"rarity"`
	LevelReq       int         `json:"levelReq"`
	Base           stats.Stats `json:"baseStats"`
	Affixes        []string    `json:"affixes"`
	SpecialEffects []Effect    `json:"specialEffects,omitempty"`
	Score          int         `json:"score"`
	UpgradeLevel   int         `json:"upgradeLevel"`
}

// Clone returns a deep copy of e.
func (e *Equipment) Clone() *Equipment {
	if e == nil {
		return nil
	}
	c := *e
	c.Affixes = slices.Clone(e.Affixes)
	c.SpecialEffects = slices.Clone(e.SpecialEffects)
	return &c
}

// HasEffect reports whether e carries the epic tag eff.
func (e *Equipment) HasEffect(eff Effect) bool {
	return slices.Contains(e.SpecialEffects, eff)
}

// DisplayName renders the name with its upgrade level, e.g. "Rare Ring +3".
func (e *Equipment) DisplayName() string {
	if e.UpgradeLevel == 0 {
		return e.Name
	}
	return fmt.Sprintf("%s +%d", e.Name, e.UpgradeLevel)
}

// SellValue returns the gold and essence granted for salvaging e.
//
// Postcondition: gold == Score*5; essence == BaseEssence + UpgradeLevel*2 + len(Affixes)*3.
func SellValue(e *Equipment) (gold, essence int) {
	gold = e.Score * 5
	essence = e.Rarity.BaseEssence() + e.UpgradeLevel*2 + len(e.Affixes)*3
	return gold, essence
}
