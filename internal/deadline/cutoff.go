// Package deadline implements the daily cutoff policy applied to every
// computed claim time: attempts happen no later than the cutoff (23:30 UTC
// by default) of the current UTC day, and never in the past.
package deadline

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/adhocore/gronx"
)

// DefaultCutoffExpr is the cron form of the default cutoff, 23:30 UTC daily.
const DefaultCutoffExpr = "30 23 * * *"

// ErrInvalidCutoff is returned for cutoff expressions that are not a single
// daily minute and hour.
var ErrInvalidCutoff = errors.New("invalid cutoff expression")

// DefaultCutoff is 23:30 UTC.
var DefaultCutoff = Cutoff{Hour: 23, Minute: 30}

// Cutoff is a fixed UTC time of day.
type Cutoff struct {
	Hour   int
	Minute int
}

// ParseCutoff parses a 5-field cron expression of the form "M H * * *".
// Only a single fixed minute and hour are accepted; the day fields must be '*'.
func ParseCutoff(expr string) (Cutoff, error) {
	fields := strings.Fields(expr)
	if len(fields) != 5 {
		return Cutoff{}, fmt.Errorf("%w %q: expected 5 fields (minute hour * * *)", ErrInvalidCutoff, expr)
	}
	for _, f := range fields[:2] {
		if !isNumber(f) {
			return Cutoff{}, fmt.Errorf("%w %q: minute and hour must be plain numbers", ErrInvalidCutoff, expr)
		}
	}
	for _, f := range fields[2:] {
		if f != "*" {
			return Cutoff{}, fmt.Errorf("%w %q: day fields must be '*'", ErrInvalidCutoff, expr)
		}
	}
	if !gronx.IsValid(expr) {
		return Cutoff{}, fmt.Errorf("%w %q", ErrInvalidCutoff, expr)
	}
	ref := time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)
	tick, err := gronx.NextTickAfter(expr, ref, true)
	if err != nil {
		return Cutoff{}, fmt.Errorf("%w %q: %v", ErrInvalidCutoff, expr, err)
	}
	tick = tick.UTC()
	return Cutoff{Hour: tick.Hour(), Minute: tick.Minute()}, nil
}

// On returns the cutoff on the UTC calendar day of t.
func (c Cutoff) On(t time.Time) time.Time {
	d := t.UTC()
	return time.Date(d.Year(), d.Month(), d.Day(), c.Hour, c.Minute, 0, 0, time.UTC)
}

func (c Cutoff) String() string {
	return fmt.Sprintf("%02d:%02d UTC", c.Hour, c.Minute)
}

func isNumber(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
