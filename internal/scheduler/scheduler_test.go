package scheduler

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(t time.Time) *fakeClock { return &fakeClock{now: t} }

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

var base = time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)

func TestScheduler_ArmReplacesPending(t *testing.T) {
	s := New(WithClock(newFakeClock(base)))

	first := s.Arm(base.Add(time.Hour), func(context.Context) {})
	second := s.Arm(base.Add(2*time.Hour), func(context.Context) {})

	got, ok := s.Pending()
	if !ok {
		t.Fatal("expected a pending timer")
	}
	if got.ID != second.ID || got.ID == first.ID {
		t.Errorf("pending timer = %+v, want the second arm %+v", got, second)
	}
	if !got.TriggerAt.Equal(base.Add(2 * time.Hour)) {
		t.Errorf("TriggerAt = %v", got.TriggerAt)
	}
}

func TestScheduler_ReplacedTaskNeverRuns(t *testing.T) {
	clock := newFakeClock(base)
	s := New(WithClock(clock))

	var firstRan, secondRan bool
	s.Arm(base.Add(time.Minute), func(context.Context) { firstRan = true })
	s.Arm(base.Add(2*time.Minute), func(context.Context) { secondRan = true })

	clock.Advance(3 * time.Minute)
	if !s.RunPending(context.Background()) {
		t.Fatal("expected the due timer to fire")
	}
	if firstRan {
		t.Error("replaced task must not run")
	}
	if !secondRan {
		t.Error("current task should have run")
	}
	if s.RunPending(context.Background()) {
		t.Error("one-shot timer fired twice")
	}
}

func TestScheduler_RunPending_NotDue(t *testing.T) {
	clock := newFakeClock(base)
	s := New(WithClock(clock))
	ran := false
	s.Arm(base.Add(time.Minute), func(context.Context) { ran = true })

	if s.RunPending(context.Background()) {
		t.Fatal("timer fired early")
	}
	if _, ok := s.Pending(); !ok {
		t.Fatal("timer should still be pending")
	}

	clock.Advance(time.Minute)
	if !s.RunPending(context.Background()) || !ran {
		t.Fatal("timer should fire exactly at its trigger time")
	}
}

func TestScheduler_TaskCanRearm(t *testing.T) {
	clock := newFakeClock(base)
	s := New(WithClock(clock))

	var rearm Task
	rearm = func(context.Context) {
		s.Arm(clock.Now().Add(time.Hour), rearm)
	}
	s.Arm(base, rearm)

	if !s.RunPending(context.Background()) {
		t.Fatal("expected fire")
	}
	got, ok := s.Pending()
	if !ok {
		t.Fatal("timer armed from inside the task was lost")
	}
	if !got.TriggerAt.Equal(base.Add(time.Hour)) {
		t.Errorf("TriggerAt = %v", got.TriggerAt)
	}
}

func TestScheduler_Until(t *testing.T) {
	clock := newFakeClock(base)
	s := New(WithClock(clock))
	if _, ok := s.Until(); ok {
		t.Error("Until should be false with nothing pending")
	}
	s.Arm(base.Add(90*time.Minute), nil)
	clock.Advance(30 * time.Minute)
	d, ok := s.Until()
	if !ok || d != time.Hour {
		t.Errorf("Until = %v, %v", d, ok)
	}
}

func TestScheduler_ArmStoresUTC(t *testing.T) {
	s := New(WithClock(newFakeClock(base)))
	local := time.Date(2025, 1, 1, 20, 0, 0, 0, time.FixedZone("UTC+2", 2*3600))
	got := s.Arm(local, nil)
	if got.TriggerAt.Location() != time.UTC || !got.TriggerAt.Equal(local) {
		t.Errorf("TriggerAt = %v", got.TriggerAt)
	}
}

func TestScheduler_SleepForIsCapped(t *testing.T) {
	clock := newFakeClock(base)
	s := New(WithClock(clock), WithPollInterval(time.Minute))
	if got := s.sleepFor(); got != time.Minute {
		t.Errorf("empty sleepFor = %v", got)
	}
	s.Arm(base.Add(10*time.Hour), nil)
	if got := s.sleepFor(); got != time.Minute {
		t.Errorf("far timer sleepFor = %v", got)
	}
	s.Arm(base.Add(5*time.Second), nil)
	if got := s.sleepFor(); got != 5*time.Second {
		t.Errorf("near timer sleepFor = %v", got)
	}
	s.Arm(base.Add(-time.Second), nil)
	if got := s.sleepFor(); got != 0 {
		t.Errorf("overdue timer sleepFor = %v", got)
	}
}

func TestScheduler_RunFiresAndStops(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := New(WithPollInterval(20 * time.Millisecond))
	var fired atomic.Int32
	s.Arm(time.Now().Add(50*time.Millisecond), func(context.Context) { fired.Add(1) })

	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	deadline := time.After(2 * time.Second)
	for fired.Load() == 0 {
		select {
		case <-deadline:
			t.Fatal("timer did not fire within 2s")
		case <-time.After(10 * time.Millisecond):
		}
	}

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Run returned %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	if fired.Load() != 1 {
		t.Errorf("fired %d times, want 1", fired.Load())
	}
}

func TestScheduler_RunWakesOnArm(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// A long poll interval: only the wake-up from Arm can make this fire promptly.
	s := New(WithPollInterval(time.Hour))
	go func() { _ = s.Run(ctx) }()
	time.Sleep(20 * time.Millisecond)

	fired := make(chan struct{})
	s.Arm(time.Now().Add(30*time.Millisecond), func(context.Context) { close(fired) })

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("armed timer did not fire; Run was not woken")
	}
}

func TestScheduler_RunCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := New()
	ran := false
	s.Arm(time.Now().Add(-time.Second), func(context.Context) { ran = true })
	if err := s.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Run = %v", err)
	}
	if ran {
		t.Error("task ran on an already cancelled context")
	}
}
