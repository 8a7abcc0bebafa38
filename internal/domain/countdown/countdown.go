// Package countdown computes the time remaining until a match starts.
package countdown

import (
	"fmt"
	"time"
)

// Seconds per unit used by the breakdown.
const (
	secondsPerMinute = 60
	secondsPerHour   = 60 * secondsPerMinute
	secondsPerDay    = 24 * secondsPerHour
	millisPerSecond  = 1000
)

// Clock supplies the current wall-clock time.
// clockwork.Clock satisfies it; tests use clockwork.NewFakeClockAt.
type Clock interface {
	Now() time.Time
}

// Breakdown is the whole days, hours and minutes left until a target instant.
// Every field is non-negative.
type Breakdown struct {
	Days    int `json:"days"`
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
}

// Compute returns the breakdown of target - now.
//
// The difference is rounded to whole seconds (half up), then split into days,
// hours and minutes by sequential floor division and remainder. Each field is
// clamped to zero on its own; the total is never clamped first.
func Compute(target, now time.Time) Breakdown {
	diffMillis := target.UnixMilli() - now.UnixMilli()
	seconds := floorDiv(diffMillis+millisPerSecond/2, millisPerSecond)

	days := floorDiv(seconds, secondsPerDay)
	seconds %= secondsPerDay
	hours := floorDiv(seconds, secondsPerHour)
	seconds %= secondsPerHour
	minutes := floorDiv(seconds, secondsPerMinute)

	return Breakdown{
		Days:    clamp(days),
		Hours:   clamp(hours),
		Minutes: clamp(minutes),
	}
}

// Until samples now once from clock and computes the breakdown to target.
func Until(clock Clock, target time.Time) Breakdown {
	return Compute(target, clock.Now())
}

// Seconds returns the total number of seconds the breakdown represents.
func (b Breakdown) Seconds() int64 {
	return int64(b.Days)*secondsPerDay + int64(b.Hours)*secondsPerHour + int64(b.Minutes)*secondsPerMinute
}

// Started reports whether no whole minute is left.
func (b Breakdown) Started() bool {
	return b.Days <= 0 && b.Hours <= 0 && b.Minutes <= 0
}

// Phrase renders the breakdown the way the match list shows it.
func Phrase(b Breakdown) string {
	switch {
	case b.Days > 0 || b.Hours > 0:
		return fmt.Sprintf("Starting in: %dd %dh", b.Days, b.Hours)
	case b.Minutes > 0:
		return fmt.Sprintf("Starting in: %d minutes", b.Minutes)
	default:
		return "Game Started"
	}
}

func (b Breakdown) String() string {
	return Phrase(b)
}

// floorDiv divides rounding toward negative infinity.
func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func clamp(v int64) int {
	if v < 0 {
		return 0
	}
	return int(v)
}
