package scheduler

import (
	"context"
	"time"
)

// Task is the callback run when a timer fires.
type Task func(ctx context.Context)

// Timer describes the pending one-shot invocation.
type Timer struct {
	// ID increases with every Arm call; a replaced timer never comes back.
	ID uint64
	// TriggerAt is the UTC wall-clock time the task becomes due.
	TriggerAt time.Time
}

type pendingTimer struct {
	Timer
	task Task
}

// Clock provides the current time. It exists so tests can drive the scheduler.
type Clock interface {
	Now() time.Time
}

// SystemClock is the Clock backed by time.Now.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }
