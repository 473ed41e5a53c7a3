// Package main provides the headless simulator binary that runs one save slot
// in real time until interrupted.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/expedition/internal/config"
	"github.com/cory-johannsen/expedition/internal/game/dice"
	"github.com/cory-johannsen/expedition/internal/game/engine"
	"github.com/cory-johannsen/expedition/internal/observability"
	"github.com/cory-johannsen/expedition/internal/save"
	"github.com/cory-johannsen/expedition/internal/server"
	"github.com/cory-johannsen/expedition/internal/simulator"
	"github.com/cory-johannsen/expedition/internal/storage/postgres"
	"github.com/cory-johannsen/expedition/internal/storage/sqlite"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	store, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("opening store", zap.String("backend", cfg.Storage.Backend), zap.Error(err))
	}
	defer closeStore()

	var src dice.Source
	if cfg.Simulation.Seed != 0 {
		src = dice.NewSeededSource(cfg.Simulation.Seed)
	} else {
		src = dice.NewCryptoSource()
	}
	eng := engine.New(dice.NewLoggedSource(src, logger), logger)
	runner := simulator.NewRunner(eng, store, cfg.Simulation, cfg.Storage.Slot, logger)

	lifecycle := server.NewLifecycle(logger)
	lifecycle.Add("simulator", runner)
	lifecycle.Add("status", server.ServiceFunc(func(ctx context.Context) error {
		ticker := time.NewTicker(cfg.Simulation.StatusInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				if s := runner.State(); s != nil {
					logger.Info("status", observability.StateFields(s)...)
				}
			}
		}
	}))

	logger.Info("simulator initialized",
		zap.String("backend", cfg.Storage.Backend),
		zap.String("slot", cfg.Storage.Slot),
		zap.Uint64("seed", cfg.Simulation.Seed),
		zap.Duration("startup", time.Since(start)),
	)

	if err := lifecycle.Run(ctx); err != nil {
		logger.Error("simulator exited with error", zap.Error(err))
	}
}

// openStore builds the configured snapshot store and its release function.
func openStore(ctx context.Context, cfg config.Config, logger *zap.Logger) (save.Store, func(), error) {
	switch cfg.Storage.Backend {
	case config.BackendMemory:
		logger.Warn("memory backend selected; progress is lost on exit")
		return save.NewMemoryStore(), func() {}, nil
	case config.BackendSQLite:
		st, err := sqlite.Open(ctx, cfg.Storage.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return st, func() { _ = st.Close() }, nil
	case config.BackendPostgres:
		dbStart := time.Now()
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("database connected",
			zap.String("host", cfg.Database.Host),
			zap.Duration("elapsed", time.Since(dbStart)),
		)
		return pool.Snapshots(), pool.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
}
