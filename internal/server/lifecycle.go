// Package server provides application lifecycle management including
// graceful startup and shutdown with signal handling.
package server

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Service represents a long-running component. Run blocks until ctx is
// cancelled or the service fails.
type Service interface {
	Run(ctx context.Context) error
}

// ServiceFunc adapts a function into the Service interface.
type ServiceFunc func(ctx context.Context) error

// Run calls f.
func (f ServiceFunc) Run(ctx context.Context) error { return f(ctx) }

// Lifecycle manages the startup and shutdown of multiple services.
// Services are started in order and stopped in reverse order; each service
// has returned before the one registered before it is cancelled.
type Lifecycle struct {
	logger   *zap.Logger
	services []namedService
	mu       sync.Mutex
}

type namedService struct {
	name    string
	service Service
}

type runningService struct {
	name   string
	cancel context.CancelFunc
	done   chan struct{}
}

// NewLifecycle creates a new Lifecycle manager.
//
// Precondition: logger must be non-nil.
func NewLifecycle(logger *zap.Logger) *Lifecycle {
	return &Lifecycle{
		logger: logger,
	}
}

// Add registers a named service for lifecycle management.
// Services are started in the order they are added.
//
// Precondition: name must be non-empty; svc must be non-nil.
func (l *Lifecycle) Add(name string, svc Service) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.services = append(l.services, namedService{name: name, service: svc})
}

// Run starts all services and blocks until a termination signal is received
// (SIGINT or SIGTERM), ctx is cancelled, a service fails, or every service
// has returned on its own.
//
// Postcondition: All services have returned. The result is the first service
// error, or nil on a clean shutdown.
func (l *Lifecycle) Run(ctx context.Context) error {
	start := time.Now()
	l.mu.Lock()
	services := append([]namedService(nil), l.services...)
	l.mu.Unlock()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	g, gctx := errgroup.WithContext(ctx)

	// Service contexts ignore the trigger; shutdown cancels them one at a time.
	base := context.WithoutCancel(ctx)
	running := make([]runningService, 0, len(services))
	for _, ns := range services {
		sctx, cancel := context.WithCancel(base)
		rs := runningService{name: ns.name, cancel: cancel, done: make(chan struct{})}
		running = append(running, rs)
		l.logger.Info("starting service", zap.String("service", ns.name))
		g.Go(func() error {
			defer close(rs.done)
			svcStart := time.Now()
			err := ns.service.Run(sctx)
			if err != nil && !errors.Is(err, context.Canceled) {
				l.logger.Error("service failed",
					zap.String("service", ns.name),
					zap.Error(err),
					zap.Duration("uptime", time.Since(svcStart)),
				)
				return fmt.Errorf("service %s: %w", ns.name, err)
			}
			return nil
		})
	}

	l.logger.Info("all services started",
		zap.Int("count", len(running)),
		zap.Duration("startup", time.Since(start)),
	)

	finished := make(chan struct{})
	go func() {
		for _, rs := range running {
			<-rs.done
		}
		close(finished)
	}()

	select {
	case <-gctx.Done():
		if ctx.Err() != nil {
			l.logger.Info("signal or cancellation received, shutting down")
		} else {
			l.logger.Warn("service error, shutting down")
		}
	case <-finished:
		l.logger.Info("all services returned")
	}

	l.shutdown(running)
	err := g.Wait()
	l.logger.Info("shutdown complete",
		zap.Duration("total_uptime", time.Since(start)),
	)
	return err
}

func (l *Lifecycle) shutdown(running []runningService) {
	shutdownStart := time.Now()
	for i := len(running) - 1; i >= 0; i-- {
		rs := running[i]
		svcStart := time.Now()
		l.logger.Info("stopping service", zap.String("service", rs.name))
		rs.cancel()
		<-rs.done
		l.logger.Info("service stopped",
			zap.String("service", rs.name),
			zap.Duration("elapsed", time.Since(svcStart)),
		)
	}
	l.logger.Info("all services stopped",
		zap.Duration("shutdown_elapsed", time.Since(shutdownStart)),
	)
}
