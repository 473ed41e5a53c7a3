// Package enemy generates stage-scaled enemy waves and defines the stage
// progression constants that govern them.
package enemy

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/cory-johannsen/expedition/internal/game/dice"
	"github.com/cory-johannsen/expedition/internal/game/stats"
)

// BossInterval is the spacing of boss stages.
const BossInterval = 5

// waveSize rolls the number of enemies in a non-boss wave.
var waveSize = dice.MustParse("1d3+1")

// Enemy is one live combatant of a wave.
//
// Invariant: 0 <= Stats.HP <= Stats.MaxHP.
type Enemy struct {
	ID             string
	Name           string
	Level          int
	Boss           bool
	Stats          stats.Stats
	NextAttackTime time.Time
	LastAttackTime time.Time
}

// Clone returns a copy of e.
func (e *Enemy) Clone() *Enemy {
	c := *e
	return &c
}

// IsBossStage reports whether stage is a boss stage.
func IsBossStage(stage int) bool { return stage%BossInterval == 0 }

// KillReq returns the kills needed to clear stage.
//
// Postcondition: 1 on boss stages, otherwise 5 + floor(stage/2).
func KillReq(stage int) int {
	if IsBossStage(stage) {
		return 1
	}
	return 5 + stage/2
}

// ZoneNumber maps stage to its zone id in [1, ZoneCount].
//
// Precondition: stage >= 1.
func ZoneNumber(stage int) int {
	z := ((stage + BossInterval - 1) / BossInterval) % ZoneCount
	if z == 0 {
		return ZoneCount
	}
	return z
}

// GenerateWave creates the enemies of one encounter at stage.
//
// Precondition: stage >= 1; src and b must be non-nil.
// Postcondition: boss stages yield exactly one boss; other stages 2-4 enemies.
// Every enemy is at full HP with its first attack 1-3s after now.
func GenerateWave(stage int, now time.Time, src dice.Source, b *Bestiary) []*Enemy {
	boss := IsBossStage(stage)
	zone := b.Zone(stage)
	scaling := math.Pow(1.1, float64(stage))

	count := 1
	mod := 1.0
	hpBase, atkBase := 100.0, 8.0
	if !boss {
		count = dice.Roll(waveSize, src).Total()
		mod = 1 / (float64(count) * 0.6)
		hpBase, atkBase = 30, 4
	}

	wave := make([]*Enemy, 0, count)
	for i := 0; i < count; i++ {
		var name string
		if boss {
			name = fmt.Sprintf("☠ %s (Lv.%d)", zone.Boss.Name, stage)
		} else {
			name = zone.Monsters[dice.Pick(src, len(zone.Monsters))]
			if count > 1 {
				name += " " + string(rune('A'+i))
			}
		}
		hp := math.Floor(hpBase * scaling * mod)
		delay := time.Duration(dice.Uniform(src, 1000, 3000)) * time.Millisecond

		wave = append(wave, &Enemy{
			ID:    uuid.NewString(),
			Name:  name,
			Level: stage,
			Boss:  boss,
			Stats: stats.Stats{
				HP:       hp,
				MaxHP:    hp,
				Atk:      math.Floor(atkBase * scaling * mod),
				Def:      math.Floor(scaling),
				Speed:    8 + float64(stage)*0.1,
				CritRate: 0.05,
				CritDmg:  1.5,
			},
			NextAttackTime: now.Add(delay),
		})
	}
	return wave
}
