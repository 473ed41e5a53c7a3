// Package engine is the progression state machine. Every time tick and
// player intent is an Action applied atomically to a GameState; Apply never
// mutates its input.
package engine

import (
	"errors"
	"fmt"
	"unicode"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/cory-johannsen/expedition/internal/game/dice"
	"github.com/cory-johannsen/expedition/internal/game/enemy"
)

// Sentinel errors returned by actions. Apply surfaces them as warning log entries.
var (
	ErrPlayerDead          = errors.New("you cannot do that while dead")
	ErrInventoryFull       = errors.New("inventory is full")
	ErrItemNotFound        = errors.New("item not found")
	ErrSlotEmpty           = errors.New("no item equipped in that slot")
	ErrMaxUpgrade          = errors.New("item is already at max upgrade level")
	ErrInsufficientGold    = errors.New("not enough gold")
	ErrInsufficientEssence = errors.New("not enough essence")
	ErrSkillNotFound       = errors.New("skill not found")
	ErrNoSkillPoints       = errors.New("no skill points available")
	ErrSkillMaxed          = errors.New("skill is already at max level")
	ErrSkillLocked         = errors.New("skill tier is still locked")
	ErrSkillNotLearned     = errors.New("only learned active skills can be equipped")
	ErrNoAttributePoints   = errors.New("no attribute points available")
	ErrInvalidAttribute    = errors.New("unknown attribute")
	ErrInvalidAllocation   = errors.New("invalid auto-allocation")
)

// Engine applies actions to game states using an injected random source.
type Engine struct {
	src      dice.Source
	bestiary *enemy.Bestiary
	logger   *zap.Logger
}

// New returns an Engine drawing randomness from src.
//
// Precondition: src and logger must be non-nil.
func New(src dice.Source, logger *zap.Logger) *Engine {
	return NewWithBestiary(src, enemy.DefaultBestiary(), logger)
}

// NewWithBestiary returns an Engine that names enemies from b.
//
// Precondition: src, b, and logger must be non-nil.
func NewWithBestiary(src dice.Source, b *enemy.Bestiary, logger *zap.Logger) *Engine {
	return &Engine{src: src, bestiary: b, logger: logger.Named("engine")}
}

// Apply returns the state that results from applying a to s.
//
// Precondition: s must be non-nil.
// Postcondition: s is not modified. A nil action returns s. A rejected action
// returns a copy of s whose only change is a warning log entry.
func (e *Engine) Apply(s *GameState, a Action) *GameState {
	if a == nil {
		return s
	}
	next := s.Clone()
	err := a.apply(e, next)
	if err == nil {
		return next
	}
	e.logger.Debug("action rejected", zap.String("action", fmt.Sprintf("%T", a)), zap.Error(err))
	rejected := s.Clone()
	rejected.logf(LogWarning, "%s", sentence(err))
	return rejected
}

func sentence(err error) string {
	msg := err.Error()
	r, n := utf8.DecodeRuneInString(msg)
	return string(unicode.ToUpper(r)) + msg[n:] + "!"
}
