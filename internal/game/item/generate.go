package item

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/cory-johannsen/expedition/internal/game/dice"
	"github.com/cory-johannsen/expedition/internal/game/stats"
)

var typeNames = map[Type]string{
	Weapon:    "Greatsword",
	Armor:     "Plate",
	Boots:     "Warboots",
	Accessory: "Ring",
}

// Generate mints a new item of the given level and rarity with a random slot
// type and rolled affixes.
//
// Precondition: level >= 1; src must be non-nil.
// Postcondition: returned item has UpgradeLevel 0, LevelReq == level, and
// len(Affixes) == rarity.AffixCount() (+1 flavor line for Mythic).
func Generate(level int, rarity Rarity, src dice.Source) *Equipment {
	typ := Slots[dice.Pick(src, len(Slots))]
	m := float64(level) * rarity.Multiplier()
	base := baseStats(typ, level, m)

	count := rarity.AffixCount()
	affixes := make([]string, 0, count+1)
	pool := AffixPools[typ]
	for i := 0; i < count; i++ {
		def := pool[dice.Pick(src, len(pool))]
		affixes = append(affixes, rollAffix(def, level, src, &base))
	}
	if rarity == Mythic {
		affixes = append(affixes, MythicLines[dice.Pick(src, len(MythicLines))])
	}

	return &Equipment{
		ID:       uuid.NewString(),
		Name:     rarity.prefix() + typeNames[typ],
		Type:     typ,
		Rarity:   rarity,
		LevelReq: level,
		Base:     base,
		Affixes:  affixes,
		Score:    int(math.Floor(m*10 + float64(count)*20)),
	}
}

func baseStats(typ Type, level int, m float64) stats.Stats {
	var s stats.Stats
	switch typ {
	case Weapon:
		s.Atk = math.Floor(5 + m*2.5)
		s.CritDmg = 0.1 * (float64(level) / 10)
	case Armor:
		s.MaxHP = math.Floor(20 + m*12)
		s.Def = math.Floor(2 + m*1.5)
		s.HPRegen = math.Floor(m * 0.2)
	case Boots:
		s.Speed = math.Floor(1 + m*0.8)
		s.Dodge = 0.01 * (m / 10)
	case Accessory:
		s.CritRate = 0.01 + 0.01*(m/5)
		s.Atk = math.Floor(2 + m)
		s.MaxHP = math.Floor(10 + m*5)
	}
	return s
}

// rollAffix rolls def's magnitude, folds it into base and returns the affix line.
// Percent affixes cap at 0.5; flat affixes floor at 1.
func rollAffix(def AffixDef, level int, src dice.Source, base *stats.Stats) string {
	raw := dice.Uniform(src, def.Min, def.Max) * (float64(level) * 0.5)
	var text string
	if def.Percent {
		v := math.Min(0.5, raw*0.1)
		def.Stat.add(base, v)
		text = fmt.Sprintf("+%.1f%%", v*100)
	} else {
		v := math.Max(1, math.Floor(raw))
		def.Stat.add(base, v)
		text = fmt.Sprintf("+%d", int(v))
	}
	return fmt.Sprintf("◇ %s: %s %s", def.Name, def.Stat.Label(), text)
}

// DropRarity rolls the rarity of a kill drop. Bosses never drop Common.
//
// Postcondition: boss → Rare|Legendary|Mythic; non-boss → Common|Rare|Legendary.
func DropRarity(boss bool, src dice.Source) Rarity {
	roll := src.Float64()
	if boss {
		switch {
		case roll < 0.05:
			return Mythic
		case roll < 0.25:
			return Legendary
		default:
			return Rare
		}
	}
	switch {
	case roll < 0.01:
		return Legendary
	case roll < 0.1:
		return Rare
	default:
		return Common
	}
}
