package domain

import "time"

// ActivityState classifies an activity relative to "now".
type ActivityState string

const (
	StateCompleted ActivityState = "completed"
	StateCurrent   ActivityState = "current"
	StateUpcoming  ActivityState = "upcoming"
)

// ActivityStatus is the evaluated view of one activity at an instant.
type ActivityStatus struct {
	ActivityID string
	Name       string
	State      ActivityState
	// Skipped marks an activity force-completed by late-start
	// reconciliation; it was never current.
	Skipped bool
	// Remaining is the time left in the current window, floored to whole
	// seconds, never negative. Zero unless State is current.
	Remaining time.Duration
	// UntilStart is the time until an upcoming window opens, floored to
	// whole seconds, never negative. Zero unless State is upcoming.
	UntilStart time.Duration
	Window     Window
}

// Evaluate classifies every activity against now. Force-completed ids are
// reported completed regardless of their window.
func Evaluate(s *Schedule, windows []Window, now time.Time, completed map[string]bool) []ActivityStatus {
	statuses := make([]ActivityStatus, len(windows))
	for i, w := range windows {
		st := ActivityStatus{
			ActivityID: w.ActivityID,
			Window:     w,
		}
		if a := s.Activity(w.ActivityID); a != nil {
			st.Name = a.Name
		}
		switch {
		case completed[w.ActivityID]:
			st.State = StateCompleted
			st.Skipped = true
		case !now.Before(w.End):
			st.State = StateCompleted
		case w.Contains(now):
			st.State = StateCurrent
			st.Remaining = floorSeconds(w.End.Sub(now))
		default:
			st.State = StateUpcoming
			st.UntilStart = floorSeconds(w.Start.Sub(now))
		}
		statuses[i] = st
	}
	return statuses
}

// Progress returns the whole-plan completion fraction in [0, 1], measured
// from the plan's original start so a late start reflects true elapsed time
// instead of restarting at zero.
func Progress(now, sessionStart time.Time, total time.Duration) float64 {
	if total <= 0 {
		return 0
	}
	p := float64(now.Sub(sessionStart)) / float64(total)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// Current returns the current activity's status, if any.
func Current(statuses []ActivityStatus) (ActivityStatus, bool) {
	for _, st := range statuses {
		if st.State == StateCurrent {
			return st, true
		}
	}
	return ActivityStatus{}, false
}

func floorSeconds(d time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	return d.Truncate(time.Second)
}
