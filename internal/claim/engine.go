package claim

import (
	"context"
	"errors"
	"time"

	"github.com/warpdl/autoclaim/internal/countdown"
	"github.com/warpdl/autoclaim/internal/deadline"
	"github.com/warpdl/autoclaim/internal/scheduler"
	"github.com/warpdl/autoclaim/pkg/logger"
)

// TimeLayout is the layout used for times in log lines.
const TimeLayout = "2006-01-02 15:04:05"

// Backend is the remote side of a claim cycle. *Client implements it.
type Backend interface {
	FetchPage(ctx context.Context) (string, error)
	Submit(ctx context.Context) error
}

// Engine performs claim cycles and keeps exactly one timer armed.
type Engine struct {
	backend Backend
	sched   *scheduler.Scheduler
	policy  *deadline.Policy
	log     logger.Logger
}

func NewEngine(backend Backend, sched *scheduler.Scheduler, policy *deadline.Policy, log logger.Logger) *Engine {
	if log == nil {
		log = logger.NewNopLogger()
	}
	if policy == nil {
		policy = deadline.NewPolicy(deadline.DefaultCutoff)
	}
	return &Engine{backend: backend, sched: sched, policy: policy, log: log}
}

// Cycle performs one claim attempt. It reports whether the next attempt was
// armed from a page countdown; on false the default time has been armed,
// except after a recovered panic, which arms nothing.
func (e *Engine) Cycle(ctx context.Context) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Error("Error during claim operation: %v", r)
			ok = false
		}
	}()

	e.log.Info("Starting claim operation...")
	e.log.Info("Getting page content...")
	page, err := e.backend.FetchPage(ctx)
	if err != nil {
		e.logRequestErr("Failed to get page!", err)
		return e.fallback()
	}

	if countdown.StateOf(page) == countdown.Claimed {
		e.log.Info("Item has already been claimed")
		if e.armFromPage(page) {
			return true
		}
		return e.fallback()
	}

	e.log.Info("Attempting to perform claim operation...")
	if err := e.backend.Submit(ctx); err != nil {
		e.logRequestErr("Claim request failed!", err)
		return e.fallback()
	}
	e.log.Info("Claim successful!")

	page, err = e.backend.FetchPage(ctx)
	if err != nil {
		e.logRequestErr("Failed to get page!", err)
		e.log.Warning("Claim submitted but next time unknown")
		return e.fallback()
	}
	if e.armFromPage(page) {
		return true
	}
	e.log.Warning("Claim submitted but next time unknown")
	return e.fallback()
}

// Task returns the scheduler task that runs a cycle and makes sure a timer
// is pending afterwards.
func (e *Engine) Task() scheduler.Task {
	return func(ctx context.Context) {
		e.Cycle(ctx)
		e.EnsureArmed()
	}
}

// EnsureArmed arms the default time when no timer is pending.
func (e *Engine) EnsureArmed() scheduler.Timer {
	if t, ok := e.sched.Pending(); ok {
		return t
	}
	e.log.Info("No tasks set, using default time")
	return e.ScheduleDefault()
}

// ScheduleDefault arms the default policy time, replacing any pending timer.
func (e *Engine) ScheduleDefault() scheduler.Timer {
	next := e.policy.Default(e.sched.Now())
	e.log.Info("Setting default claim time: UTC %s", next.Format(TimeLayout))
	return e.sched.Arm(next, e.Task())
}

// ScheduleAt clamps proposed and arms it, using the default time when the
// clamped value is not in the future.
func (e *Engine) ScheduleAt(proposed time.Time) scheduler.Timer {
	now := e.sched.Now()
	next, err := e.policy.Clamp(now, proposed)
	if errors.Is(err, deadline.ErrNotFuture) {
		e.log.Warning("Calculated next claim time has already passed, using default time")
		return e.ScheduleDefault()
	}
	if !next.Equal(proposed.UTC()) {
		if proposed.UTC().YearDay() == now.YearDay() && proposed.UTC().Year() == now.Year() {
			e.log.Info("Next claim time exceeds today's deadline, adjusted to today's %s", e.policy.Cutoff)
		} else {
			e.log.Info("Next claim time is tomorrow or later, adjusted to today's %s", e.policy.Cutoff)
		}
	}
	e.log.Info("Setting next claim time: UTC %s", next.Format(TimeLayout))
	return e.sched.Arm(next, e.Task())
}

func (e *Engine) armFromPage(page string) bool {
	res, ok := countdown.Parse(page)
	if !ok {
		return false
	}
	now := e.sched.Now()
	next := res.After(now)
	if res.Source == countdown.SourceFallback {
		e.log.Info("Item claimed but couldn't parse countdown, setting next claim time to %d hours later (UTC: %s)",
			res.Hours, next.Format(TimeLayout))
	} else {
		e.log.Info("Parsed next claim time from page: %s later (UTC: %s)", res, next.Format(TimeLayout))
	}
	e.ScheduleAt(next)
	return true
}

func (e *Engine) fallback() bool {
	e.log.Info("Unable to get accurate next claim time, using default time")
	e.ScheduleDefault()
	return false
}

func (e *Engine) logRequestErr(msg string, err error) {
	if se, ok := AsStatusError(err); ok {
		e.log.Error("%s Status code: %d", msg, se.StatusCode)
		if se.Body != "" {
			e.log.Error("Response content: %s", se.Body)
		}
		return
	}
	e.log.Error("Request exception: %v", err)
}
