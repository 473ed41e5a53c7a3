package engine_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/cory-johannsen/expedition/internal/game/dice"
	"github.com/cory-johannsen/expedition/internal/game/engine"
	"github.com/cory-johannsen/expedition/internal/game/enemy"
	"github.com/cory-johannsen/expedition/internal/game/item"
	"github.com/cory-johannsen/expedition/internal/game/skill"
	"github.com/cory-johannsen/expedition/internal/game/stats"
)

var t0 = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func newEngine(t *testing.T, src dice.Source) *engine.Engine {
	t.Helper()
	return engine.New(src, zaptest.NewLogger(t))
}

// foe returns a passive enemy whose first attack is far in the future.
func foe(name string, level int, hp float64) *enemy.Enemy {
	return &enemy.Enemy{
		ID:             name,
		Name:           name,
		Level:          level,
		Stats:          stats.Stats{HP: hp, MaxHP: hp, Atk: 1, Speed: 8, CritDmg: 1.5},
		NextAttackTime: t0.Add(time.Hour),
	}
}

func combatState(enemies ...*enemy.Enemy) *engine.GameState {
	s := engine.NewGame(t0)
	s.Enemies = enemies
	return s
}

func setSkillLevel(t *testing.T, s *engine.GameState, id string, level int) {
	t.Helper()
	idx := skill.Index(s.Player.Skills, id)
	require.GreaterOrEqual(t, idx, 0, id)
	s.Player.Skills[idx] = s.Player.Skills[idx].WithLevel(level)
}

func gear(id string, typ item.Type, rarity item.Rarity, base stats.Stats) *item.Equipment {
	return &item.Equipment{ID: id, Name: string(rarity) + " " + string(typ), Type: typ, Rarity: rarity, Base: base, Score: 10}
}

func fillInventory(s *engine.GameState, n int) {
	for i := 0; i < n; i++ {
		s.Player.Inventory = append(s.Player.Inventory, gear("filler-"+string(rune('a'+i)), item.Boots, item.Common, stats.Stats{}))
	}
}

func lastLog(s *engine.GameState) engine.LogEntry {
	return s.Log[len(s.Log)-1]
}

func logContains(s *engine.GameState, substr string) bool {
	for _, l := range s.Log {
		if strings.Contains(l.Text, substr) {
			return true
		}
	}
	return false
}

func zapNop() *zap.Logger { return zap.NewNop() }
