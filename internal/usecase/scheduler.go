package usecase

import (
	"context"
	"log/slog"
	"time"

	"MenuScanner/internal/logging"
	"MenuScanner/internal/ports"
)

// Pruner drops stale cache entries. The SQLite cache implements it.
type Pruner interface {
	Prune(ctx context.Context) (int64, error)
}

// Scheduler wires the interval driver with catalog refreshes.
type Scheduler struct {
	driver  ports.Scheduler
	catalog *Catalog
	pruner  Pruner
	logger  *slog.Logger
}

// NewScheduler returns a helper to start/stop recurring refreshes. pruner may be nil.
func NewScheduler(driver ports.Scheduler, catalog *Catalog, pruner Pruner, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Scheduler{driver: driver, catalog: catalog, pruner: pruner, logger: logger}
}

// Start registers the refresh job with the provided driver.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.driver == nil || s.catalog == nil {
		return nil
	}
	return s.driver.Start(ctx, func(trigger time.Time) {
		s.run(ctx, trigger)
	})
}

func (s *Scheduler) run(ctx context.Context, trigger time.Time) {
	started := time.Now()
	if err := s.catalog.Refresh(ctx); err != nil {
		s.logger.Error("menu refresh failed", "trigger", trigger, "error", err)
	} else {
		s.logger.Info("menu refreshed", "duration", time.Since(started))
	}

	if s.pruner == nil {
		return
	}
	removed, err := s.pruner.Prune(ctx)
	if err != nil {
		s.logger.Warn("cache prune failed", "error", err)
		return
	}
	if removed > 0 {
		s.logger.Debug("cache pruned", "removed", removed)
	}
}

// Stop gracefully tears down the underlying scheduler.
func (s *Scheduler) Stop(ctx context.Context) error {
	if s.driver == nil {
		return nil
	}
	return s.driver.Stop(ctx)
}
