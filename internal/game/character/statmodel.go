package character

import (
	"math"

	"github.com/cory-johannsen/expedition/internal/game/item"
	"github.com/cory-johannsen/expedition/internal/game/skill"
	"github.com/cory-johannsen/expedition/internal/game/stats"
)

// ComputeStats derives combat stats from attributes, equipped items, level
// and learned passives. It never sets HP.
//
// Equipment additive stats are scaled by 1 + 0.1*upgradeLevel and floored;
// percentage stats are added unscaled. Passives run after equipment, additive
// bonuses before multiplicative ones.
//
// Postcondition: result.HP == 0; result is a pure function of the inputs.
func ComputeStats(attrs stats.Attributes, equipment map[item.Type]*item.Equipment, level int, skills []skill.Skill) stats.Stats {
	vit, str, agi, crt := float64(attrs.Vit), float64(attrs.Str), float64(attrs.Agi), float64(attrs.Crt)
	s := stats.Stats{
		MaxHP:    100 + vit*10 + float64(level)*5,
		HPRegen:  1 + vit*0.2,
		Atk:      5 + str*2 + float64(level),
		Def:      vit*0.5 + str*0.2,
		Speed:    10 + agi*0.2,
		CritRate: 0.05 + crt*0.0005,
		CritDmg:  1.5 + crt*0.005,
		Dodge:    agi * 0.0005,
	}

	for _, slot := range item.Slots {
		e := equipment[slot]
		if e == nil {
			continue
		}
		mult := 1 + float64(e.UpgradeLevel)*0.1
		s.MaxHP += math.Floor(e.Base.MaxHP * mult)
		s.Atk += math.Floor(e.Base.Atk * mult)
		s.Def += math.Floor(e.Base.Def * mult)
		s.Speed += math.Floor(e.Base.Speed * mult)
		s.HPRegen += math.Floor(e.Base.HPRegen * mult)

		s.CritRate += e.Base.CritRate
		s.CritDmg += e.Base.CritDmg
		s.Dodge += e.Base.Dodge
		s.Lifesteal += e.Base.Lifesteal
		if e.HasEffect(item.VampiricAura) {
			s.Lifesteal += item.VampiricAuraLifesteal
		}
	}

	passive := func(id string) (float64, bool) { return skill.PassiveEffect(skills, id) }

	if v, ok := passive(skill.Fury); ok {
		s.CritRate += v
	}
	if v, ok := passive(skill.WeakpointInsight); ok {
		s.CritDmg += v
	}
	if v, ok := passive(skill.AngelicWard); ok {
		s.HPRegen += v
	}
	if v, ok := passive(skill.AstralForesight); ok {
		s.Dodge += v
	}

	if v, ok := passive(skill.WarGodsWill); ok {
		s.Atk *= 1 + v
	}
	if v, ok := passive(skill.UndyingBody); ok {
		s.Def *= 1 + v
	}
	if v, ok := passive(skill.Devotion); ok {
		s.MaxHP *= 1 + v
	}
	if v, ok := passive(skill.ArcaneWisdom); ok {
		s.Speed *= 1 + v
	}
	return s
}
