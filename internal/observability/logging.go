// Package observability provides structured logging for the simulator.
package observability

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cory-johannsen/expedition/internal/config"
	"github.com/cory-johannsen/expedition/internal/game/engine"
)

// NewLogger creates a structured logger from the given logging configuration.
// JSON output uses the production encoder; console output uses the development
// encoder without stack traces on warnings.
//
// Precondition: cfg.Level must be one of "debug", "info", "warn", "error".
// Precondition: cfg.Format must be "json" or "console".
// Postcondition: Returns a configured zap.Logger or a non-nil error.
func NewLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parsing log level %q: %w", cfg.Level, err)
	}

	var zapCfg zap.Config
	switch cfg.Format {
	case "json":
		zapCfg = zap.NewProductionConfig()
		zapCfg.InitialFields = map[string]any{"app": "expedition"}
	case "console":
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.DisableStacktrace = true
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}

	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return logger, nil
}

// StateFields summarizes s as log fields for periodic status lines.
//
// Precondition: s must be non-nil with a non-nil Player.
func StateFields(s *engine.GameState) []zap.Field {
	p := s.Player
	return []zap.Field{
		zap.Stringer("phase", s.Phase()),
		zap.Int("stage", s.Stage),
		zap.Int("max_stage", s.MaxStage),
		zap.Int("kills", s.KillCount),
		zap.Int("enemies", len(s.Enemies)),
		zap.Int("level", p.Level),
		zap.Int("exp", p.Exp),
		zap.Int("gold", p.Gold),
		zap.Int("essence", p.Essence),
		zap.Float64("hp", p.Stats.HP),
		zap.Float64("max_hp", p.Stats.MaxHP),
		zap.Int("inventory", len(p.Inventory)),
	}
}
