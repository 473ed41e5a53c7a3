// Package simulator drives an engine in real time. One actor goroutine owns
// the live GameState; observers read immutable published snapshots.
package simulator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/cory-johannsen/expedition/internal/config"
	"github.com/cory-johannsen/expedition/internal/game/engine"
	"github.com/cory-johannsen/expedition/internal/save"
)

// SaveTimeout bounds a single snapshot write.
const SaveTimeout = 5 * time.Second

// ErrNotRunning is returned by Submit when the runner has stopped.
var ErrNotRunning = errors.New("simulator: runner is not running")

// Option configures a Runner.
type Option func(*Runner)

// WithClock replaces time.Now as the source of action timestamps.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) { r.now = now }
}

// Runner applies timed and submitted actions to a single game state.
//
// Invariant: only the actor goroutine calls engine.Apply; every published
// state is never mutated afterwards.
type Runner struct {
	engine *engine.Engine
	store  save.Store
	cfg    config.SimulationConfig
	slot   string
	logger *zap.Logger
	now    func() time.Time

	actions chan engine.Action
	stopped chan struct{}
	state   atomic.Pointer[engine.GameState]

	mu          sync.Mutex
	subscribers map[chan<- *engine.GameState]struct{}
}

// NewRunner returns a stopped Runner for slot.
//
// Precondition: eng, store, and logger must be non-nil; every cfg interval > 0.
func NewRunner(eng *engine.Engine, store save.Store, cfg config.SimulationConfig, slot string, logger *zap.Logger, opts ...Option) *Runner {
	r := &Runner{
		engine:      eng,
		store:       store,
		cfg:         cfg,
		slot:        slot,
		logger:      logger.Named("simulator"),
		now:         time.Now,
		actions:     make(chan engine.Action, 64),
		stopped:     make(chan struct{}),
		subscribers: make(map[chan<- *engine.GameState]struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// State returns the most recently published state, or nil before Run has
// loaded one. Callers must not mutate it.
func (r *Runner) State() *engine.GameState {
	return r.state.Load()
}

// Subscribe registers ch to receive every published state.
// If ch is full, the state is dropped for that subscriber.
//
// Precondition: ch must not be nil.
func (r *Runner) Subscribe(ch chan<- *engine.GameState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subscribers[ch] = struct{}{}
}

// Unsubscribe removes ch from the subscriber list.
func (r *Runner) Unsubscribe(ch chan<- *engine.GameState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.subscribers, ch)
}

// Submit queues a player action for the actor goroutine.
//
// Postcondition: Returns nil once queued, ctx.Err() if ctx ends first, or
// ErrNotRunning after Run has returned.
func (r *Runner) Submit(ctx context.Context, a engine.Action) error {
	select {
	case <-r.stopped:
		return ErrNotRunning
	default:
	}
	select {
	case r.actions <- a:
		return nil
	case <-r.stopped:
		return ErrNotRunning
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run loads the slot, or starts a new game when it is empty, then drives the
// state until ctx is cancelled. A final snapshot is written before returning.
// Run must be called at most once.
//
// Postcondition: Returns nil on cancellation; load failures other than
// save.ErrNotFound are returned without starting.
func (r *Runner) Run(ctx context.Context) error {
	defer close(r.stopped)

	s, err := r.load(ctx)
	if err != nil {
		return err
	}
	r.publish(s)

	saves := make(chan save.Snapshot, 1)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		r.saver(context.WithoutCancel(gctx), saves)
		return nil
	})
	g.Go(func() error {
		defer close(saves)
		r.loop(gctx, s, saves)
		return nil
	})
	return g.Wait()
}

func (r *Runner) load(ctx context.Context) (*engine.GameState, error) {
	now := r.now()
	snap, err := r.store.Load(ctx, r.slot)
	switch {
	case errors.Is(err, save.ErrNotFound):
		r.logger.Info("starting new game", zap.String("slot", r.slot))
		return engine.NewGame(now), nil
	case err != nil:
		return nil, fmt.Errorf("loading slot %q: %w", r.slot, err)
	}
	r.logger.Info("restored game",
		zap.String("slot", r.slot),
		zap.Int("stage", snap.Stage),
		zap.Time("saved_at", snap.SavedAt),
	)
	return engine.Restore(snap, now), nil
}

func (r *Runner) loop(ctx context.Context, s *engine.GameState, saves chan save.Snapshot) {
	tick := time.NewTicker(r.cfg.TickInterval)
	defer tick.Stop()
	regen := time.NewTicker(r.cfg.RegenInterval)
	defer regen.Stop()
	cleanup := time.NewTicker(r.cfg.CleanupInterval)
	defer cleanup.Stop()
	autocast := time.NewTicker(r.cfg.AutocastInterval)
	defer autocast.Stop()
	autosave := time.NewTicker(r.cfg.AutosaveInterval)
	defer autosave.Stop()

	apply := func(a engine.Action) {
		next := r.engine.Apply(s, a)
		if next != s {
			s = next
			r.publish(s)
		}
	}

	for {
		select {
		case <-ctx.Done():
			offer(saves, engine.Snapshot(s, r.now()))
			r.logger.Info("runner stopping", zap.Int("stage", s.Stage))
			return
		case <-tick.C:
			apply(engine.Tick{Now: r.now()})
		case <-regen.C:
			apply(engine.RegenHP{})
		case <-cleanup.C:
			apply(engine.CleanupEffects{Now: r.now()})
		case <-autocast.C:
			now := r.now()
			if id, ok := engine.ReadySkill(s, now); ok {
				apply(engine.CastSkill{SkillID: id, Now: now})
			}
		case a := <-r.actions:
			apply(a)
		case <-autosave.C:
			offer(saves, engine.Snapshot(s, r.now()))
		}
	}
}

// offer queues snap for the saver, replacing any snapshot not yet written.
// It never blocks: only the actor sends on saves.
func offer(saves chan save.Snapshot, snap save.Snapshot) {
	select {
	case saves <- snap:
		return
	default:
	}
	select {
	case <-saves:
	default:
	}
	saves <- snap
}

func (r *Runner) saver(ctx context.Context, saves <-chan save.Snapshot) {
	for snap := range saves {
		start := time.Now()
		wctx, cancel := context.WithTimeout(ctx, SaveTimeout)
		err := r.store.Save(wctx, r.slot, snap)
		cancel()
		if err != nil {
			r.logger.Warn("autosave failed", zap.String("slot", r.slot), zap.Error(err))
			continue
		}
		r.logger.Debug("saved",
			zap.String("slot", r.slot),
			zap.Int("stage", snap.Stage),
			zap.Duration("elapsed", time.Since(start)),
		)
	}
}

func (r *Runner) publish(s *engine.GameState) {
	r.state.Store(s)
	r.mu.Lock()
	subs := make([]chan<- *engine.GameState, 0, len(r.subscribers))
	for ch := range r.subscribers {
		subs = append(subs, ch)
	}
	r.mu.Unlock()
	for _, ch := range subs {
		select {
		case ch <- s:
		default:
		}
	}
}
