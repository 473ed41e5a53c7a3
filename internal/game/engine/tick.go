package engine

import (
	"math"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/expedition/internal/game/character"
	"github.com/cory-johannsen/expedition/internal/game/combat"
	"github.com/cory-johannsen/expedition/internal/game/dice"
	"github.com/cory-johannsen/expedition/internal/game/enemy"
	"github.com/cory-johannsen/expedition/internal/game/item"
	"github.com/cory-johannsen/expedition/internal/game/skill"
)

const (
	meteorChance = 0.05
	meteorMult   = 5
	galaxyChance = 0.1
	galaxyMult   = 3

	bossDropChance   = 1.0
	normalDropChance = 0.15
)

// tick runs one combat step: spawn, player swing, enemy swings, reflect
// sweep, then the death check. Spawning a wave ends the tick.
func (e *Engine) tick(s *GameState, now time.Time) error {
	s.LastTick = now
	switch s.Phase() {
	case Dead, Paused:
		return nil
	case Idle:
		e.spawnWave(s, now)
		return nil
	}

	p := s.Player
	if !now.Before(s.LastPlayerAttack.Add(combat.PlayerAttackInterval(p.Stats.Speed))) {
		e.playerAttack(s, now)
	}
	e.enemyAttacks(s, now)
	e.sweepReflectKills(s)

	if !p.Stats.Alive() {
		s.AutoBattle = false
		s.Dead = true
		s.Enemies = nil
		s.logf(LogDanger, "You have fallen! Choose how to revive...")
		e.logger.Debug("player died", zap.Int("stage", s.Stage), zap.Int("level", p.Level))
	}
	return nil
}

func (e *Engine) spawnWave(s *GameState, now time.Time) {
	s.Enemies = enemy.GenerateWave(s.Stage, now, e.src, e.bestiary)
	s.logf(LogWarning, "Encountered %d enemies!", len(s.Enemies))
	e.logger.Debug("wave spawned", zap.Int("stage", s.Stage), zap.Int("enemies", len(s.Enemies)))
}

// playerAttack resolves the basic attack against the front enemy, the epic
// procs of equipped gear, and the resulting kills.
func (e *Engine) playerAttack(s *GameState, now time.Time) {
	p := s.Player
	target := s.Enemies[0]
	res := combat.ResolveAttack(p.Stats, target.Stats, 1, e.src)

	var procs []string
	for _, slot := range item.Slots {
		eq := p.Equipment[slot]
		if eq == nil {
			continue
		}
		for _, eff := range eq.SpecialEffects {
			switch eff {
			case item.MeteorStorm:
				if dice.Chance(e.src, meteorChance) {
					s.waveDamage(math.Floor(p.Stats.Atk * meteorMult))
					s.effect(EffectEpicMeteor, "")
					procs = append(procs, "[Meteor Storm!]")
				}
			case item.GalaxyImpact:
				if res.IsCrit && dice.Chance(e.src, galaxyChance) {
					s.waveDamage(math.Floor(p.Stats.Atk * galaxyMult))
					s.effect(EffectEpicGalaxy, "")
					procs = append(procs, "[Galaxy Burst!]")
				}
			}
		}
	}

	if res.IsDodge {
		s.text("Dodge")
	} else {
		s.critText(res.Damage, res.IsCrit)
		s.effect(EffectSlash, "")
		if res.Damage > 0 && p.Stats.Lifesteal > 0 {
			if heal := math.Floor(float64(res.Damage) * p.Stats.Lifesteal); heal > 0 {
				p.Stats.Heal(heal)
				s.text("+%d", int(heal))
			}
		}
	}
	target.Stats.Damage(float64(res.Damage))

	kills := e.sweepAttackKills(s)
	s.LastPlayerAttack = now
	e.checkStage(s, kills)

	suffix := ""
	if len(procs) > 0 {
		suffix = " " + strings.Join(procs, " ")
	}
	switch {
	case res.IsCrit:
		s.logf(LogWarning, "Critical hit! %d damage!%s", res.Damage, suffix)
	case len(procs) > 0:
		s.logf(LogSuccess, "Effect triggered%s", suffix)
	}
}

func (s *GameState) waveDamage(amount float64) {
	for _, en := range s.Enemies {
		en.Stats.Damage(amount)
		s.critText(int(amount), true)
	}
}

// sweepAttackKills removes dead enemies after a basic attack and pays full
// rewards with a loot roll per kill. Inventory room is checked against drops
// already made in the same sweep.
func (e *Engine) sweepAttackKills(s *GameState) int {
	p := s.Player
	var (
		survivors []*enemy.Enemy
		drops     []*item.Equipment
		kills     int
		exp       int
		gold      int
	)
	for _, en := range s.Enemies {
		if en.Stats.Alive() {
			survivors = append(survivors, en)
			continue
		}
		kills++
		expGain := int(math.Floor(float64(character.ExpReq(en.Level))*0.05 + 5))
		goldGain := en.Level*10 + e.src.Intn(10)
		exp += expGain
		gold += goldGain

		chance := normalDropChance
		if en.Boss {
			chance = bossDropChance
		}
		if dice.Chance(e.src, chance) {
			if len(p.Inventory)+len(drops) < character.InventoryCapacity {
				rarity := item.DropRarity(en.Boss, e.src)
				drops = append(drops, item.Generate(en.Level, rarity, e.src))
			} else {
				s.text("Inventory full!")
				s.logf(LogWarning, "Inventory full, loot from %s was lost.", en.Name)
			}
		}
		s.text("+%d XP", expGain)
		s.text("+%d G", goldGain)
	}
	s.Enemies = survivors

	p.Gold += gold
	p.Inventory = append(p.Inventory, drops...)
	e.gainExp(s, exp)
	for _, d := range drops {
		s.logDrop(d)
		e.logger.Debug("item dropped", zap.String("item", d.Name), zap.String("rarity", string(d.Rarity)))
	}
	return kills
}

// enemyAttacks fires every enemy whose attack timer has elapsed. The curse
// passive reduces incoming damage; the thorns passive reflects the reduced
// amount back at the attacker.
func (e *Engine) enemyAttacks(s *GameState, now time.Time) {
	p := s.Player
	curse, cursed := skill.PassiveEffect(p.Skills, skill.CurseOfAgony)
	thorns, thorny := skill.PassiveEffect(p.Skills, skill.ThornAura)

	for _, en := range s.Enemies {
		if now.Before(en.NextAttackTime) {
			continue
		}
		res := combat.ResolveAttack(en.Stats, p.Stats, 1, e.src)
		dmg := float64(res.Damage)
		if cursed {
			dmg = math.Floor(dmg * (1 - curse))
		}
		p.Stats.Damage(dmg)

		if thorny && dmg > 0 && !res.IsDodge {
			if reflect := math.Floor(dmg * thorns); reflect > 0 {
				en.Stats.Damage(reflect)
				s.text("Reflect %d", int(reflect))
			}
		}
		if res.IsDodge {
			s.text("Dodge")
		} else {
			s.text("-%d", int(dmg))
			s.effect(EffectHit, "")
		}

		en.NextAttackTime = now.Add(combat.EnemyAttackInterval(en.Stats.Speed))
		en.LastAttackTime = now
	}
}

// sweepReflectKills removes enemies killed by reflected damage. These kills
// pay reduced rewards and never drop loot. Their exp is banked without the
// level-up cascade, so a lethal hit in the same tick is never healed away;
// the next attack-path reward levels the player.
func (e *Engine) sweepReflectKills(s *GameState) {
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
		exp += int(math.Floor(float64(character.ExpReq(en.Level)) * 0.05))
		s.Player.Gold += en.Level * 5
		s.logf(LogSuccess, "%s was slain by reflected damage!", en.Name)
	}
	if kills == 0 {
		return
	}
	s.Enemies = survivors
	s.Player.Exp += exp
	e.checkStage(s, kills)
}

// gainExp runs the level-up cascade and logs each level gained.
func (e *Engine) gainExp(s *GameState, amount int) {
	p := s.Player
	before := p.Level
	if p.GainExp(amount) == 0 {
		return
	}
	for lvl := before + 1; lvl <= p.Level; lvl++ {
		s.effect(EffectLevelUp, "")
		s.text("Level up!")
		s.logf(LogLevel, "Reached Lv.%d!", lvl)
	}
	e.logger.Debug("level up", zap.Int("from", before), zap.Int("to", p.Level))
}

// checkStage credits kills toward the stage requirement. Meeting it at the
// frontier with auto-advance on moves to the next stage and clears the wave;
// otherwise the counter resets and the stage is farmed again.
func (e *Engine) checkStage(s *GameState, kills int) {
	if kills == 0 {
		return
	}
	s.KillCount += kills
	if s.KillCount < enemy.KillReq(s.Stage) {
		return
	}
	s.KillCount = 0
	if s.Stage != s.MaxStage || !s.AutoAdvance {
		return
	}
	s.Stage++
	s.MaxStage = s.Stage
	s.Enemies = nil
	s.logf(LogStage, "Zone cleared! Advancing to stage %d", s.Stage)
	e.logger.Debug("stage advanced", zap.Int("stage", s.Stage))
}
