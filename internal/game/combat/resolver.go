// Package combat resolves single attacks and the attack cadence curves.
// It is the sole authority for damage numbers in the simulation.
package combat

import (
	"math"

	"github.com/cory-johannsen/expedition/internal/game/dice"
	"github.com/cory-johannsen/expedition/internal/game/stats"
)

const (
	// DamageFloorRatio is the share of attack power that always lands on a connecting hit.
	DamageFloorRatio = 0.05
	// VarianceLow and VarianceHigh bound the multiplicative damage variance.
	VarianceLow  = 0.95
	VarianceHigh = 1.05
)

// AttackResult holds the outcome of a single attack.
//
// Invariant: IsDodge implies Damage == 0 and !IsCrit.
type AttackResult struct {
	Damage  int
	IsCrit  bool
	IsDodge bool
}

// ResolveAttack resolves one attack of attacker against defender with the given
// attack-power multiplier.
//
// Precondition: src must be non-nil; mult >= 0.
// Postcondition: Damage >= 0. A dodge consumes one draw; a connecting hit consumes three
// (dodge, crit, variance) and deals at least floor(atk*mult*0.05*0.95).
func ResolveAttack(attacker, defender stats.Stats, mult float64, src dice.Source) AttackResult {
	if dice.Chance(src, defender.Dodge) {
		return AttackResult{IsDodge: true}
	}
	crit := dice.Chance(src, attacker.CritRate)

	power := attacker.Atk * mult
	raw := math.Max(power*DamageFloorRatio, power-defender.Def)
	if crit {
		raw *= attacker.CritDmg
	}
	variance := dice.Uniform(src, VarianceLow, VarianceHigh)
	dmg := math.Floor(raw * variance)
	if dmg < 0 {
		dmg = 0
	}
	return AttackResult{Damage: int(dmg), IsCrit: crit}
}
