// Package domain contains the core entities for Minder: activities,
// schedules, sessions, and the pure time math that sequences them.
// These types are independent of any external frameworks or infrastructure.
package domain

import (
	"errors"
	"fmt"
	"time"
)

// Common domain errors.
var (
	ErrEmptyActivityName = errors.New("activity name cannot be empty")
	ErrInvalidDuration   = errors.New("activity duration must be positive")
	ErrMissingStartTime  = errors.New("activity needs a start time in a start-time schedule")
	ErrActivityNotFound  = errors.New("activity not found")
	ErrEmptySchedule     = errors.New("schedule has no activities")
	ErrScheduleNotFound  = errors.New("schedule not found")
	ErrSessionActive     = errors.New("session already active")
	ErrNoActiveSession   = errors.New("no active session")
	ErrOrderFixed        = errors.New("start-time schedules are ordered by clock time")
	ErrNoPendingRollover = errors.New("no pending rollover")
	ErrInvalidAnchorMode = errors.New("invalid anchor mode")
)

// AnchorMode selects how a schedule's activity windows are anchored in time.
type AnchorMode string

const (
	// AnchorDeadline counts backwards from a single deadline: the activity
	// at position 0 ends last, the activity at the highest position runs first.
	AnchorDeadline AnchorMode = "deadline"

	// AnchorStartTimes gives every activity its own wall-clock start time.
	AnchorStartTimes AnchorMode = "start_times"
)

// ValidateAnchorMode parses a user-supplied mode string.
func ValidateAnchorMode(s string) (AnchorMode, error) {
	switch AnchorMode(s) {
	case AnchorDeadline, AnchorStartTimes:
		return AnchorMode(s), nil
	default:
		return "", fmt.Errorf("%w: %q (want %q or %q)", ErrInvalidAnchorMode, s, AnchorDeadline, AnchorStartTimes)
	}
}

// TimeOfDay is a wall-clock time in 24-hour HH:MM form.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay parses "HH:MM" in 24-hour form. Trailing text is rejected.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parsed, err := time.Parse("15:04", s)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("invalid time %q: want HH:MM", s)
	}
	return TimeOfDay{Hour: parsed.Hour(), Minute: parsed.Minute()}, nil
}

// At resolves the time of day against the calendar day of the given instant,
// in that instant's location.
func (t TimeOfDay) At(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour, t.Minute, 0, 0, day.Location())
}

// String returns the HH:MM representation.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// MarshalText implements encoding.TextMarshaler.
func (t TimeOfDay) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *TimeOfDay) UnmarshalText(text []byte) error {
	parsed, err := ParseTimeOfDay(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Activity is a single named step in a schedule.
type Activity struct {
	ID       string
	Name     string
	Duration time.Duration
	// Position is dense 0..N-1 and always matches slice order in the
	// owning schedule. Only Schedule mutations may assign it.
	Position int
	// StartAt is the activity's own anchor; set iff the schedule uses
	// AnchorStartTimes.
	StartAt *TimeOfDay
}

// NewActivity creates an activity with a fresh id.
func NewActivity(name string, duration time.Duration) (*Activity, error) {
	a := &Activity{
		ID:       generateID(),
		Name:     name,
		Duration: duration,
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}

// Validate checks the mode-independent activity invariants.
func (a *Activity) Validate() error {
	if a.Name == "" {
		return ErrEmptyActivityName
	}
	if a.Duration <= 0 {
		return ErrInvalidDuration
	}
	return nil
}
