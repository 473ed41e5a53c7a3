package character

import "math"

// ExpReq returns the experience needed to advance past level.
//
// Precondition: level >= 1.
// Postcondition: Returns floor(100 * 1.15^(level-1)).
func ExpReq(level int) int {
	return int(math.Floor(100 * math.Pow(1.15, float64(level-1))))
}

// GainExp adds amount experience and runs the level-up cascade: every
// threshold crossed grants attribute and skill points, applies the
// auto-allocation policy, raises MaxExp, and fully heals on the rebuilt stats.
//
// Precondition: amount >= 0.
// Postcondition: Exp < MaxExp. Returns the number of levels gained.
func (p *Player) GainExp(amount int) int {
	p.Exp += amount
	gained := 0
	for p.Exp >= p.MaxExp {
		p.Exp -= p.MaxExp
		p.Level++
		p.AttributePoints += PointsPerLevel
		p.SkillPoints++

		var spent int
		p.Attributes, spent = p.Allocation.Apply(p.Attributes, p.AttributePoints)
		p.AttributePoints -= spent

		p.MaxExp = ExpReq(p.Level)
		p.RecomputeFullHeal()
		gained++
	}
	return gained
}
