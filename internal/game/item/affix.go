package item

import "github.com/cory-johannsen/expedition/internal/game/stats"

// Stat names a Stats field an affix can modify.
type Stat string

const (
	StatAtk       Stat = "atk"
	StatDef       Stat = "def"
	StatMaxHP     Stat = "maxHp"
	StatHPRegen   Stat = "hpRegen"
	StatSpeed     Stat = "speed"
	StatCritRate  Stat = "critRate"
	StatCritDmg   Stat = "critDmg"
	StatDodge     Stat = "dodge"
	StatLifesteal Stat = "lifesteal"
)

var statLabels = map[Stat]string{
	StatAtk:       "Attack",
	StatDef:       "Defense",
	StatMaxHP:     "Max HP",
	StatHPRegen:   "HP Regen",
	StatSpeed:     "Speed",
	StatCritRate:  "Crit Rate",
	StatCritDmg:   "Crit Damage",
	StatDodge:     "Dodge",
	StatLifesteal: "Lifesteal",
}

// Label returns the display name of s.
func (s Stat) Label() string {
	if l, ok := statLabels[s]; ok {
		return l
	}
	return "Unknown"
}

func (s Stat) add(dst *stats.Stats, v float64) {
	switch s {
	case StatAtk:
		dst.Atk += v
	case StatDef:
		dst.Def += v
	case StatMaxHP:
		dst.MaxHP += v
	case StatHPRegen:
		dst.HPRegen += v
	case StatSpeed:
		dst.Speed += v
	case StatCritRate:
		dst.CritRate += v
	case StatCritDmg:
		dst.CritDmg += v
	case StatDodge:
		dst.Dodge += v
	case StatLifesteal:
		dst.Lifesteal += v
	}
}

// AffixDef is one entry of a slot's affix pool.
type AffixDef struct {
	Name    string
	Stat    Stat
	Min     float64
	Max     float64
	Percent bool
}

// AffixPools maps each slot to the affixes it can roll.
var AffixPools = map[Type][]AffixDef{
	Weapon: {
		{Name: "Sharp", Stat: StatAtk, Min: 2, Max: 5},
		{Name: "Ruinous", Stat: StatAtk, Min: 3, Max: 6},
		{Name: "Brutal", Stat: StatCritDmg, Min: 0.05, Max: 0.15, Percent: true},
		{Name: "Deadly", Stat: StatCritRate, Min: 0.01, Max: 0.03, Percent: true},
		{Name: "Precise", Stat: StatCritRate, Min: 0.02, Max: 0.04, Percent: true},
		{Name: "Swift", Stat: StatSpeed, Min: 2, Max: 4},
	},
	Armor: {
		{Name: "Sturdy", Stat: StatMaxHP, Min: 10, Max: 30},
		{Name: "Bearhide", Stat: StatMaxHP, Min: 15, Max: 40},
		{Name: "Solid", Stat: StatDef, Min: 2, Max: 5},
		{Name: "Tough", Stat: StatDef, Min: 3, Max: 6},
		{Name: "Reviving", Stat: StatHPRegen, Min: 0.5, Max: 1.5},
	},
	Boots: {
		{Name: "Fleet", Stat: StatSpeed, Min: 1, Max: 3},
		{Name: "Dashing", Stat: StatSpeed, Min: 2, Max: 5},
		{Name: "Nimble", Stat: StatDodge, Min: 0.01, Max: 0.02, Percent: true},
		{Name: "Phantom", Stat: StatDodge, Min: 0.02, Max: 0.03, Percent: true},
		{Name: "Greaved", Stat: StatDef, Min: 1, Max: 3},
	},
	Accessory: {
		{Name: "Mighty", Stat: StatAtk, Min: 1, Max: 3},
		{Name: "Lucky", Stat: StatCritRate, Min: 0.01, Max: 0.02, Percent: true},
		{Name: "Vital", Stat: StatHPRegen, Min: 0.2, Max: 0.8},
		{Name: "Hardy", Stat: StatMaxHP, Min: 5, Max: 15},
		{Name: "Bloodthirsty", Stat: StatLifesteal, Min: 0.01, Max: 0.03, Percent: true},
		{Name: "Greedy", Stat: StatLifesteal, Min: 0.02, Max: 0.05, Percent: true},
	},
}

// MythicLines is the flavor pool every Mythic item draws one line from.
var MythicLines = []string{
	"★ Mythic: 10% chance on attack to unleash chain lightning for bonus damage.",
	"★ Mythic: after casting a skill, the next basic attack deals 200% damage.",
	"★ Mythic: survive a lethal blow and restore 30% HP (120s cooldown).",
	"★ Mythic: lifesteal effects are increased by 50%.",
	"★ Mythic: attack speed ignores all slowing effects.",
	"★ Mythic: 20% chance on crit to reset every skill cooldown (15s cooldown).",
}
