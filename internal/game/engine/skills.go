package engine

import (
	"slices"

	"github.com/cory-johannsen/expedition/internal/game/character"
	"github.com/cory-johannsen/expedition/internal/game/skill"
)

// learnSkill spends one skill point raising id by a level. Tier gates must be
// open. Passives rebuild stats with the HP ratio preserved.
func (e *Engine) learnSkill(s *GameState, id string) error {
	p := s.Player
	idx := skill.Index(p.Skills, id)
	if idx < 0 {
		return ErrSkillNotFound
	}
	if p.SkillPoints <= 0 {
		return ErrNoSkillPoints
	}
	sk := p.Skills[idx]
	if sk.Maxed() {
		return ErrSkillMaxed
	}
	if !skill.Unlocked(sk.Definition, p.Level, skill.SpentInTree(p.Skills, sk.Tree)) {
		return ErrSkillLocked
	}
	p.Skills[idx] = sk.WithLevel(sk.Level + 1)
	p.SkillPoints--
	if sk.Passive {
		p.RecomputeKeepRatio()
	}
	s.logf(LogSuccess, "Learned [%s] Lv.%d", sk.Name, sk.Level+1)
	return nil
}

// equipSkill appends id to the action bar, evicting the oldest entry when full.
func (e *Engine) equipSkill(s *GameState, id string) error {
	p := s.Player
	idx := skill.Index(p.Skills, id)
	if idx < 0 {
		return ErrSkillNotFound
	}
	if !p.Skills[idx].Castable() {
		return ErrSkillNotLearned
	}
	if slices.Contains(p.EquippedSkills, id) {
		return nil
	}
	if len(p.EquippedSkills) >= character.SkillBarCapacity {
		p.EquippedSkills = slices.Delete(p.EquippedSkills, 0, 1)
	}
	p.EquippedSkills = append(p.EquippedSkills, id)
	return nil
}

func (e *Engine) unequipSkill(s *GameState, id string) error {
	p := s.Player
	p.EquippedSkills = slices.DeleteFunc(p.EquippedSkills, func(x string) bool { return x == id })
	return nil
}
