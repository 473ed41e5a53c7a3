package engine

import (
	"fmt"
	"time"

	"github.com/cory-johannsen/expedition/internal/game/stats"
)

// revive restores a fallen player at full health on the requested stage.
// It is a no-op while alive.
func (e *Engine) revive(s *GameState, stage int, autoAdvance bool) error {
	if !s.Dead {
		return nil
	}
	s.Dead = false
	s.AutoBattle = true
	s.AutoAdvance = autoAdvance
	s.Stage = clampStage(stage, s.MaxStage)
	s.KillCount = 0
	s.Enemies = nil
	s.Player.Stats.HP = s.Player.Stats.MaxHP
	s.logf(LogSuccess, "Revived! The battle continues!")
	return nil
}

func (e *Engine) changeStage(s *GameState, delta int) error {
	target := clampStage(s.Stage+delta, s.MaxStage)
	if target == s.Stage {
		return nil
	}
	s.Stage = target
	s.KillCount = 0
	s.Enemies = nil
	s.logf(LogStage, "Heading to stage %d...", target)
	return nil
}

func clampStage(stage, maxStage int) int {
	return max(1, min(stage, maxStage))
}

func (e *Engine) toggleAutoBattle(s *GameState) error {
	s.AutoBattle = !s.AutoBattle
	return nil
}

func (e *Engine) toggleAutoAdvance(s *GameState) error {
	s.AutoAdvance = !s.AutoAdvance
	if s.AutoAdvance {
		s.logf(LogInfo, "Auto-advance enabled")
	} else {
		s.logf(LogInfo, "Loop mode: farming the current stage")
	}
	return nil
}

func (e *Engine) levelUpAttribute(s *GameState, attr stats.Attribute) error {
	if _, err := stats.ParseAttribute(string(attr)); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidAttribute, attr)
	}
	p := s.Player
	if p.AttributePoints <= 0 {
		return ErrNoAttributePoints
	}
	p.Attributes = p.Attributes.With(attr, 1)
	p.AttributePoints--
	p.RecomputeKeepRatio()
	return nil
}

func (e *Engine) updateAutoAllocation(s *GameState, policy stats.Allocation) error {
	if err := policy.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidAllocation, err)
	}
	s.Player.Allocation = policy
	return nil
}

// regenHP heals HPRegen while alive and wounded. Zero HP does not regenerate.
func (e *Engine) regenHP(s *GameState) error {
	st := &s.Player.Stats
	if s.Dead || st.HP <= 0 || st.HP >= st.MaxHP {
		return nil
	}
	st.Heal(st.HPRegen)
	return nil
}

// cleanupEffects drops floating texts and effects that have outlived their window.
func (e *Engine) cleanupEffects(s *GameState, now time.Time) error {
	texts := s.FloatingTexts[:0:0]
	for _, t := range s.FloatingTexts {
		if now.Sub(t.CreatedAt) < TextLifetime {
			texts = append(texts, t)
		}
	}
	effects := s.Effects[:0:0]
	for _, fx := range s.Effects {
		if now.Sub(fx.CreatedAt) < EffectLifetime {
			effects = append(effects, fx)
		}
	}
	s.FloatingTexts = texts
	s.Effects = effects
	return nil
}
