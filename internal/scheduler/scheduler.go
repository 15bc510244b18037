package scheduler

import (
	"context"
	"sync"
	"time"
)

// DefaultPollInterval is the maximum sleep between two checks for a due timer.
const DefaultPollInterval = 60 * time.Second

// Scheduler owns at most one pending Timer.
type Scheduler struct {
	mu      sync.Mutex
	pending *pendingTimer
	lastID  uint64

	clock    Clock
	interval time.Duration
	wake     chan struct{}
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithClock sets the clock used to decide whether the timer is due.
func WithClock(c Clock) Option {
	return func(s *Scheduler) { s.clock = c }
}

// WithPollInterval caps the sleep of Run. Non-positive values are ignored.
func WithPollInterval(d time.Duration) Option {
	return func(s *Scheduler) {
		if d > 0 {
			s.interval = d
		}
	}
}

// New creates an empty Scheduler.
func New(opts ...Option) *Scheduler {
	s := &Scheduler{
		clock:    SystemClock{},
		interval: DefaultPollInterval,
		wake:     make(chan struct{}, 1),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Now returns the scheduler's notion of the current time, in UTC.
func (s *Scheduler) Now() time.Time {
	return s.clock.Now().UTC()
}

// Arm cancels any pending timer and schedules task to run once at at.
func (s *Scheduler) Arm(at time.Time, task Task) Timer {
	s.mu.Lock()
	s.lastID++
	p := &pendingTimer{
		Timer: Timer{ID: s.lastID, TriggerAt: at.UTC()},
		task:  task,
	}
	s.pending = p
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
	return p.Timer
}

// Pending returns the pending timer, if any.
func (s *Scheduler) Pending() (Timer, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == nil {
		return Timer{}, false
	}
	return s.pending.Timer, true
}

// Until returns how long until the pending timer is due.
func (s *Scheduler) Until() (time.Duration, bool) {
	t, ok := s.Pending()
	if !ok {
		return 0, false
	}
	return t.TriggerAt.Sub(s.Now()), true
}

// RunPending runs the pending task if it is due. The timer is detached
// before the task runs, so a task that arms a new timer keeps it.
func (s *Scheduler) RunPending(ctx context.Context) bool {
	now := s.Now()
	s.mu.Lock()
	p := s.pending
	if p == nil || p.TriggerAt.After(now) {
		s.mu.Unlock()
		return false
	}
	s.pending = nil
	s.mu.Unlock()

	if p.task != nil {
		p.task(ctx)
	}
	return true
}

// Run blocks, firing the pending timer when due, until ctx is cancelled.
// It returns ctx.Err().
func (s *Scheduler) Run(ctx context.Context) error {
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.RunPending(ctx)

		dur := s.sleepFor()
		if timer == nil {
			timer = time.NewTimer(dur)
		} else {
			timer.Reset(dur)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.wake:
			timer.Stop()
		case <-timer.C:
		}
	}
}

// sleepFor is the time until the pending timer, capped at the poll interval.
func (s *Scheduler) sleepFor() time.Duration {
	dur := s.interval
	if until, ok := s.Until(); ok && until < dur {
		dur = until
	}
	if dur < 0 {
		dur = 0
	}
	return dur
}
