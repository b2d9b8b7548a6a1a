package usecase

import (
	"context"
	"errors"
	"testing"
	"time"
)

type manualDriver struct {
	job     func(time.Time)
	stopped bool
}

func (m *manualDriver) Start(_ context.Context, job func(time.Time)) error {
	m.job = job
	return nil
}

func (m *manualDriver) Stop(context.Context) error {
	m.stopped = true
	return nil
}

type countingPruner struct {
	calls int
	err   error
}

func (p *countingPruner) Prune(context.Context) (int64, error) {
	p.calls++
	return 1, p.err
}

func TestSchedulerRefreshesCatalog(t *testing.T) {
	t.Parallel()

	builder := &stubBuilder{snap: twoWeekSnapshot(t)}
	catalog := newTestCatalog(t, builder, "2026-02-10")
	driver := &manualDriver{}
	pruner := &countingPruner{}

	s := NewScheduler(driver, catalog, pruner, nil)
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if driver.job == nil {
		t.Fatal("job was not registered")
	}

	driver.job(time.Now())
	if ready, _, _ := catalog.Status(); !ready {
		t.Fatal("catalog should be ready after a run")
	}

	builder.err = errors.New("down")
	pruner.err = errors.New("locked")
	driver.job(time.Now())

	if builder.calls.Load() != 2 || pruner.calls != 2 {
		t.Fatalf("expected 2 builds and 2 prunes, got %d/%d", builder.calls.Load(), pruner.calls)
	}

	if err := s.Stop(context.Background()); err != nil || !driver.stopped {
		t.Fatalf("Stop: %v stopped=%v", err, driver.stopped)
	}
}

func TestSchedulerWithoutDriver(t *testing.T) {
	t.Parallel()

	s := NewScheduler(nil, nil, nil, nil)
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := s.Stop(context.Background()); err != nil {
		t.Fatalf("Stop: %v", err)
	}
}
