package engine

import (
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/cory-johannsen/expedition/internal/game/character"
	"github.com/cory-johannsen/expedition/internal/game/enemy"
	"github.com/cory-johannsen/expedition/internal/game/item"
)

const (
	// LogCapacity bounds the battle log; the oldest entries are dropped first.
	LogCapacity = 50
	// TextLifetime is how long a floating text survives a cleanup sweep.
	TextLifetime = time.Second
	// EffectLifetime is how long a visual effect survives a cleanup sweep.
	EffectLifetime = 2 * time.Second
)

// Phase is the explicit combat state derived from the state flags.
type Phase int

const (
	// Idle means auto-battle is on but no wave is present.
	Idle Phase = iota
	// InCombat means a wave is present and auto-battle is on.
	InCombat
	// Paused means auto-battle is off.
	Paused
	// Dead means the player has fallen and awaits revival.
	Dead
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case InCombat:
		return "in_combat"
	case Paused:
		return "paused"
	case Dead:
		return "dead"
	}
	return "unknown"
}

// View is the presentation screen selected by the player.
type View string

const (
	ViewCombat    View = "COMBAT"
	ViewTown      View = "TOWN"
	ViewInventory View = "INVENTORY"
	ViewSkills    View = "SKILLS"
)

// LogKind classifies a battle log entry.
type LogKind string

const (
	LogInfo    LogKind = "info"
	LogSuccess LogKind = "success"
	LogWarning LogKind = "warning"
	LogDanger  LogKind = "danger"
	LogDrop    LogKind = "drop"
	LogLevel   LogKind = "level"
	LogStage   LogKind = "stage"
)

// LogEntry is one line of the player-visible battle log.
type LogEntry struct {
	ID   string
	Kind LogKind
	Text string
	// Item is set on drop entries.
	Item *item.Equipment
	Time time.Time
}

// FloatingText is a transient combat number or label.
type FloatingText struct {
	ID        string
	Text      string
	Crit      bool
	CreatedAt time.Time
}

// EffectKind names a transient visual effect.
type EffectKind string

const (
	EffectHit        EffectKind = "HIT_IMPACT"
	EffectSlash      EffectKind = "SLASH"
	EffectLevelUp    EffectKind = "LEVEL_UP"
	EffectSkill      EffectKind = "SKILL"
	EffectEpicMeteor EffectKind = "EPIC_METEOR"
	EffectEpicGalaxy EffectKind = "EPIC_GALAXY"
)

// Effect is a transient visual effect. SkillID is set for EffectSkill.
type Effect struct {
	ID        string
	Kind      EffectKind
	SkillID   string
	CreatedAt time.Time
}

// GameState is the aggregate root of a single-player simulation.
//
// Invariant: 1 <= Stage <= MaxStage; 0 <= Player.Stats.HP <= Player.Stats.MaxHP;
// every enemy in Enemies has HP > 0 once a transition completes;
// len(Log) <= LogCapacity.
type GameState struct {
	Player  *character.Player
	Enemies []*enemy.Enemy

	Stage     int
	MaxStage  int
	KillCount int

	AutoBattle  bool
	AutoAdvance bool
	Dead        bool

	// Cooldowns maps skill id to the earliest time it may be cast again.
	Cooldowns        map[string]time.Time
	LastPlayerAttack time.Time
	// LastTick is the most recent time observed by a timed action.
	LastTick time.Time

	Log           []LogEntry
	FloatingTexts []FloatingText
	Effects       []Effect

	View        View
	ViewingItem string
}

// NewGame returns the starting state of a fresh character at stage 1.
//
// Postcondition: Phase() == Idle; the player is at full health.
func NewGame(now time.Time) *GameState {
	s := &GameState{
		Player:      character.New(),
		Stage:       1,
		MaxStage:    1,
		AutoBattle:  true,
		AutoAdvance: true,
		Cooldowns:   make(map[string]time.Time),
		LastTick:    now,
		View:        ViewCombat,
	}
	s.logf(LogInfo, "Welcome to Pixel Expedition!")
	return s
}

// Phase returns the explicit combat phase for the current flags.
func (s *GameState) Phase() Phase {
	switch {
	case s.Dead:
		return Dead
	case !s.AutoBattle:
		return Paused
	case len(s.Enemies) == 0:
		return Idle
	default:
		return InCombat
	}
}

// Clone returns a deep copy of s.
func (s *GameState) Clone() *GameState {
	c := *s
	c.Player = s.Player.Clone()
	c.Enemies = make([]*enemy.Enemy, len(s.Enemies))
	for i, e := range s.Enemies {
		c.Enemies[i] = e.Clone()
	}
	c.Cooldowns = maps.Clone(s.Cooldowns)
	if c.Cooldowns == nil {
		c.Cooldowns = make(map[string]time.Time)
	}
	c.Log = slices.Clone(s.Log)
	c.FloatingTexts = slices.Clone(s.FloatingTexts)
	c.Effects = slices.Clone(s.Effects)
	return &c
}

func (s *GameState) appendLog(entry LogEntry) {
	s.Log = append(s.Log, entry)
	if over := len(s.Log) - LogCapacity; over > 0 {
		s.Log = slices.Delete(s.Log, 0, over)
	}
}

func (s *GameState) logf(kind LogKind, format string, args ...any) {
	s.appendLog(LogEntry{ID: uuid.NewString(), Kind: kind, Text: fmt.Sprintf(format, args...), Time: s.LastTick})
}

func (s *GameState) logDrop(e *item.Equipment) {
	s.appendLog(LogEntry{ID: uuid.NewString(), Kind: LogDrop, Text: "Obtained: " + e.DisplayName(), Item: e, Time: s.LastTick})
}

func (s *GameState) text(format string, args ...any) {
	s.FloatingTexts = append(s.FloatingTexts, FloatingText{ID: uuid.NewString(), Text: fmt.Sprintf(format, args...), CreatedAt: s.LastTick})
}

func (s *GameState) critText(dmg int, crit bool) {
	s.FloatingTexts = append(s.FloatingTexts, FloatingText{ID: uuid.NewString(), Text: fmt.Sprintf("%d", dmg), Crit: crit, CreatedAt: s.LastTick})
}

func (s *GameState) effect(kind EffectKind, skillID string) {
	s.Effects = append(s.Effects, Effect{ID: uuid.NewString(), Kind: kind, SkillID: skillID, CreatedAt: s.LastTick})
}
