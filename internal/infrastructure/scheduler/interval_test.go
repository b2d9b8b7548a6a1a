package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestIntervalSchedulerRunsImmediately(t *testing.T) {
	t.Parallel()

	s := NewIntervalScheduler(time.Hour)
	ran := make(chan time.Time, 1)

	if err := s.Start(context.Background(), func(t time.Time) { ran <- t }); err != nil {
		t.Fatalf("Start: %v", err)
	}
	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("job did not run on start")
	}

	if err := s.Stop(context.Background()); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if err := s.Stop(context.Background()); err != nil {
		t.Fatalf("second Stop should be a no-op: %v", err)
	}
}

func TestIntervalSchedulerTicks(t *testing.T) {
	t.Parallel()

	s := &IntervalScheduler{interval: 10 * time.Millisecond}
	var runs atomic.Int32

	if err := s.Start(context.Background(), func(time.Time) { runs.Add(1) }); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := s.Start(context.Background(), func(time.Time) { t.Error("second Start must not launch a job") }); err != nil {
		t.Fatalf("second Start: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for runs.Load() < 3 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if err := s.Stop(context.Background()); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if got := runs.Load(); got < 3 {
		t.Fatalf("expected at least 3 runs, got %d", got)
	}

	after := runs.Load()
	time.Sleep(30 * time.Millisecond)
	if runs.Load() != after {
		t.Fatal("job ran after Stop returned")
	}
}

func TestIntervalSchedulerContextCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	s := NewIntervalScheduler(time.Hour)
	if err := s.Start(ctx, func(time.Time) {}); err != nil {
		t.Fatalf("Start: %v", err)
	}
	cancel()

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer stopCancel()
	if err := s.Stop(stopCtx); err != nil {
		t.Fatalf("Stop after cancel: %v", err)
	}
}

func TestNewIntervalSchedulerDefault(t *testing.T) {
	t.Parallel()

	if got := NewIntervalScheduler(0).Interval(); got != time.Hour {
		t.Fatalf("expected 1h default, got %v", got)
	}
}
