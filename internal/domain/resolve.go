package domain

import "time"

// Window is an activity's absolute [Start, End) interval, derived from the
// schedule and a session start. Windows are recomputed, never mutated.
type Window struct {
	ActivityID string
	Start      time.Time
	End        time.Time
}

// Contains reports whether the instant falls inside the window.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// ResolveWindows computes the absolute window for every activity, in slice
// order. This is the only place that interprets activity positions as time.
//
// In deadline mode the slice is countdown-ordered: position 0 ends last, the
// highest position starts first at sessionStart, and the windows tile
// [sessionStart, sessionStart+total) with no gaps.
//
// In start-time mode each activity anchors itself to its own clock time on
// sessionStart's calendar day; gaps between windows are allowed and meaningful.
func ResolveWindows(s *Schedule, sessionStart time.Time) []Window {
	windows := make([]Window, len(s.Activities))

	if s.Mode == AnchorStartTimes {
		for i := range s.Activities {
			a := &s.Activities[i]
			start := sessionStart
			if a.StartAt != nil {
				start = a.StartAt.At(sessionStart)
			}
			windows[i] = Window{
				ActivityID: a.ID,
				Start:      start,
				End:        start.Add(a.Duration),
			}
		}
		return windows
	}

	// Deadline mode: start(i) = sessionStart + sum of durations after i.
	var suffix time.Duration
	for i := len(s.Activities) - 1; i >= 0; i-- {
		a := &s.Activities[i]
		start := sessionStart.Add(suffix)
		windows[i] = Window{
			ActivityID: a.ID,
			Start:      start,
			End:        start.Add(a.Duration),
		}
		suffix += a.Duration
	}
	return windows
}

// NominalStart returns the instant the plan's first window should open when
// a session begins at now. Under a deadline the plan is pinned so its last
// window closes at the deadline; otherwise the plan starts immediately. In
// start-time mode the first activity's own clock time governs.
func NominalStart(s *Schedule, now time.Time) (start, anchor time.Time) {
	switch s.Mode {
	case AnchorStartTimes:
		if len(s.Activities) > 0 && s.Activities[0].StartAt != nil {
			return s.Activities[0].StartAt.At(now), time.Time{}
		}
		return now, time.Time{}
	default:
		if s.Deadline == nil {
			return now, time.Time{}
		}
		anchor = s.Deadline.At(now)
		return anchor.Add(-s.TotalDuration()), anchor
	}
}

// WindowFor returns the window for an activity id, if present.
func WindowFor(windows []Window, id string) (Window, bool) {
	for _, w := range windows {
		if w.ActivityID == id {
			return w, true
		}
	}
	return Window{}, false
}
