package engine

import (
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/cory-johannsen/expedition/internal/game/combat"
	"github.com/cory-johannsen/expedition/internal/game/enemy"
	"github.com/cory-johannsen/expedition/internal/game/skill"
)

// skillLifestealRate scales lifesteal on skill damage relative to basic attacks.
const skillLifestealRate = 0.5

// castSkill fires an active skill. Healing skills of the Sustain tree heal for
// atk*healMult and may also strike the whole wave; other skills strike the
// front enemy or the whole wave. Skill kills pay simplified rewards.
// Cooldowns are the caller's concern (see ReadySkill); unknown ids are ignored.
func (e *Engine) castSkill(s *GameState, id string, now time.Time) error {
	if s.Dead {
		return ErrPlayerDead
	}
	if len(s.Enemies) == 0 {
		return nil
	}
	p := s.Player
	idx := skill.Index(p.Skills, id)
	if idx < 0 {
		return nil
	}
	sk := p.Skills[idx]
	if !sk.Castable() {
		return nil
	}

	s.LastTick = now
	s.Cooldowns[id] = now.Add(cooldown(sk.Cooldown))
	s.text("%s", sk.Name)
	s.effect(EffectSkill, sk.ID)
	msg := "Cast [" + sk.Name + "]!"

	if sk.Heals() {
		heal := math.Floor(p.Stats.Atk * sk.HealMult)
		p.Stats.Heal(heal)
		s.text("+%d", int(heal))
		msg += fmt.Sprintf(" Restored %d HP!", int(heal))
		if sk.Target == skill.TargetAOE && sk.DamageMult > 0 {
			for _, en := range s.Enemies {
				res := combat.ResolveAttack(p.Stats, en.Stats, sk.DamageMult, e.src)
				en.Stats.Damage(float64(res.Damage))
				s.critText(res.Damage, res.IsCrit)
			}
		}
	} else {
		targets := s.Enemies[:1]
		if sk.Target == skill.TargetAOE {
			targets = s.Enemies
			msg += " Hit every enemy!"
		} else {
			msg += " Hit " + targets[0].Name + "!"
		}
		for _, en := range targets {
			res := combat.ResolveAttack(p.Stats, en.Stats, sk.DamageMult, e.src)
			if p.Stats.Lifesteal > 0 {
				if heal := float64(res.Damage) * p.Stats.Lifesteal * skillLifestealRate; heal >= 1 {
					p.Stats.Heal(math.Floor(heal))
				}
			}
			en.Stats.Damage(float64(res.Damage))
			s.critText(res.Damage, res.IsCrit)
		}
	}
	s.logf(LogInfo, "%s", msg)

	var (
		survivors []*enemy.Enemy
		kills     int
		exp       int
	)
	for _, en := range s.Enemies {
		if en.Stats.Alive() {
			survivors = append(survivors, en)
			continue
		}
		kills++
		exp += en.Level * 2
		p.Gold += en.Level * 5
	}
	s.Enemies = survivors
	e.gainExp(s, exp)
	e.checkStage(s, kills)
	s.LastPlayerAttack = now
	return nil
}

// cooldown converts seconds, already rounded to a tenth, to a Duration.
func cooldown(seconds float64) time.Duration {
	return time.Duration(math.Round(seconds*1000)) * time.Millisecond
}

// ReadySkill returns the first equipped active skill whose cooldown has
// elapsed at now, or false when none is ready or casting is pointless.
func ReadySkill(s *GameState, now time.Time) (string, bool) {
	if s.Phase() != InCombat {
		return "", false
	}
	i := slices.IndexFunc(s.Player.EquippedSkills, func(id string) bool {
		idx := skill.Index(s.Player.Skills, id)
		if idx < 0 || !s.Player.Skills[idx].Castable() {
			return false
		}
		return !now.Before(s.Cooldowns[id])
	})
	if i < 0 {
		return "", false
	}
	return s.Player.EquippedSkills[i], true
}
