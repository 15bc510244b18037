package deadline

import (
	"errors"
	"time"
)

// DefaultOffset is the nominal interval used when no countdown is known.
const DefaultOffset = 12 * time.Hour

// ErrNotFuture is returned by Clamp when the adjusted time is not strictly
// after now. Callers fall back to Default.
var ErrNotFuture = errors.New("next claim time is not in the future")

// Policy applies the daily cutoff to proposed claim times.
type Policy struct {
	Cutoff Cutoff
	// Offset is the nominal default interval; zero means DefaultOffset.
	Offset time.Duration
}

// NewPolicy returns a policy for the given cutoff with the 12 hour default offset.
func NewPolicy(c Cutoff) *Policy {
	return &Policy{Cutoff: c, Offset: DefaultOffset}
}

func (p *Policy) offset() time.Duration {
	if p.Offset <= 0 {
		return DefaultOffset
	}
	return p.Offset
}

// Deadline returns today's cutoff relative to now.
func (p *Policy) Deadline(now time.Time) time.Time {
	return p.Cutoff.On(now)
}

// Clamp caps proposed at today's cutoff when it falls after the cutoff today or
// on any later UTC date. The result is returned together with ErrNotFuture when
// it is not strictly after now.
func (p *Policy) Clamp(now, proposed time.Time) (time.Time, error) {
	now = now.UTC()
	next := proposed.UTC()
	deadline := p.Deadline(now)

	switch {
	case sameDay(next, now) && next.After(deadline):
		next = deadline
	case laterDay(next, now):
		next = deadline
	}
	if !next.After(now) {
		return next, ErrNotFuture
	}
	return next, nil
}

// Default returns the next claim time when no countdown is available:
// tomorrow's cutoff once today's has been reached, today's cutoff when less
// than the default offset remains, otherwise now plus the offset.
func (p *Policy) Default(now time.Time) time.Time {
	now = now.UTC()
	deadline := p.Deadline(now)
	if !now.Before(deadline) {
		return p.Cutoff.On(now.AddDate(0, 0, 1))
	}
	if deadline.Sub(now) < p.offset() {
		return deadline
	}
	next := now.Add(p.offset())
	if next.After(deadline) {
		return deadline
	}
	return next
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

func laterDay(a, b time.Time) bool {
	if a.Year() != b.Year() {
		return a.Year() > b.Year()
	}
	return a.YearDay() > b.YearDay()
}
