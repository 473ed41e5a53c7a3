package item

import "github.com/cory-johannsen/expedition/internal/game/dice"

// MaxUpgradeLevel is the awakening level; no upgrade is possible beyond it.
const MaxUpgradeLevel = 10

// UpgradeRates is the success chance indexed by the current upgrade level.
var UpgradeRates = [MaxUpgradeLevel]float64{1.0, 0.9, 0.8, 0.7, 0.6, 0.5, 0.4, 0.3, 0.15, 0.02}

// UpgradeCost returns the gold and essence consumed by an attempt from level.
//
// Postcondition: gold == (level+1)*100; essence == level+1.
func UpgradeCost(level int) (gold, essence int) {
	return (level + 1) * 100, level + 1
}

// RollUpgrade reports whether an attempt from level succeeds.
//
// Precondition: 0 <= level < MaxUpgradeLevel.
func RollUpgrade(level int, src dice.Source) bool {
	return src.Float64() <= UpgradeRates[level]
}

// Effect is an epic special-effect tag granted on awakening.
type Effect string

const (
	MeteorStorm  Effect = "METEOR_STORM"
	GalaxyImpact Effect = "GALAXY_IMPACT"
	VampiricAura Effect = "VAMPIRIC_AURA"
)

// VampiricAuraLifesteal is the flat lifesteal an awakened VAMPIRIC_AURA item grants.
const VampiricAuraLifesteal = 0.20

// EpicEffect is one entry of the awakening pool.
type EpicEffect struct {
	Effect      Effect
	Name        string
	Description string
}

// Affix renders the affix line appended on awakening.
func (e EpicEffect) Affix() string {
	return e.Name + ": " + e.Description
}

// EpicPool is the fixed set of awakening effects.
var EpicPool = []EpicEffect{
	{Effect: MeteorStorm, Name: "★ Meteor Storm", Description: "5% chance on attack to call down meteors for 500% attack to every enemy."},
	{Effect: GalaxyImpact, Name: "★ Galaxy Burst", Description: "10% chance on crit to shatter space for 300% true damage to every enemy."},
	{Effect: VampiricAura, Name: "★ Blood Lord", Description: "Gain 20% lifesteal."},
}

// Awaken appends one random epic effect to e as both a tag and an affix line.
//
// Precondition: e.UpgradeLevel == MaxUpgradeLevel.
func Awaken(e *Equipment, src dice.Source) EpicEffect {
	epic := EpicPool[dice.Pick(src, len(EpicPool))]
	e.SpecialEffects = append(e.SpecialEffects, epic.Effect)
	e.Affixes = append(e.Affixes, epic.Affix())
	return epic
}
