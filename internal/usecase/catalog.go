package usecase

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"MenuScanner/internal/domain"
	"MenuScanner/internal/menu"
)

// ErrUnavailable marks a query that could not be answered because no menu
// index could be built.
var ErrUnavailable = errors.New("menu data unavailable")

// Builder produces a fresh snapshot. *Pipeline satisfies it.
type Builder interface {
	BuildIndex(ctx context.Context) (Snapshot, error)
}

// Catalog holds the latest snapshot and answers meal queries against it.
// The first query builds the snapshot on demand if no refresh has run yet.
type Catalog struct {
	builder Builder
	loc     *time.Location
	now     func() time.Time

	mu      sync.RWMutex
	snap    Snapshot
	ready   bool
	lastErr error

	refreshMu sync.Mutex
}

// NewCatalog binds a builder; loc decides which calendar day "today" is.
func NewCatalog(builder Builder, loc *time.Location) *Catalog {
	if loc == nil {
		loc = time.UTC
	}
	return &Catalog{builder: builder, loc: loc, now: time.Now}
}

// Today is the current calendar date in the catalog's timezone.
func (c *Catalog) Today() time.Time {
	return domain.Civil(c.now().In(c.loc))
}

// Refresh rebuilds the snapshot. On failure the previous snapshot stays in place.
func (c *Catalog) Refresh(ctx context.Context) error {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()
	return c.refreshLocked(ctx)
}

func (c *Catalog) refreshLocked(ctx context.Context) error {
	if c.builder == nil {
		return errors.New("catalog builder is not configured")
	}
	snap, err := c.builder.BuildIndex(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.lastErr = err
		return err
	}
	c.snap, c.ready, c.lastErr = snap, true, nil
	return nil
}

// Set installs a snapshot directly.
func (c *Catalog) Set(snap Snapshot) {
	c.mu.Lock()
	c.snap, c.ready, c.lastErr = snap, true, nil
	c.mu.Unlock()
}

// Snapshot returns the current snapshot, building one if none exists.
func (c *Catalog) Snapshot(ctx context.Context) (Snapshot, error) {
	if snap, ok := c.current(); ok {
		return snap, nil
	}

	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()
	if snap, ok := c.current(); ok {
		return snap, nil
	}
	if err := c.refreshLocked(ctx); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	snap, _ := c.current()
	return snap, nil
}

// Status reports whether a snapshot is loaded and the error of the last failed refresh.
func (c *Catalog) Status() (ready bool, builtAt time.Time, lastErr error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.ready, c.snap.BuiltAt, c.lastErr
}

func (c *Catalog) current() (Snapshot, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snap, c.ready
}

// Meal resolves date and period against the current snapshot using today's
// date for week inference. A miss is reported as menu.ErrNotFound.
func (c *Catalog) Meal(ctx context.Context, date time.Time, period domain.Period) (domain.Entry, error) {
	snap, err := c.Snapshot(ctx)
	if err != nil {
		return domain.Entry{}, err
	}

	date = domain.Civil(date)
	meal, ok := menu.Lookup(snap.Index, snap.WeekStarts(), date, period, c.Today())
	if !ok {
		return domain.Entry{}, fmt.Errorf("%s %s: %w", domain.FormatDate(date), period, menu.ErrNotFound)
	}
	return domain.Entry{Date: date, Period: period, Meal: meal}, nil
}

// Weeks lists the indexed weeks of the current snapshot.
func (c *Catalog) Weeks(ctx context.Context) ([]Week, error) {
	snap, err := c.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return slices.Clone(snap.Weeks), nil
}
