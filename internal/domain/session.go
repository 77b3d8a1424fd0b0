package domain

import "time"

// Session tracks one run of a schedule. It is idle until Start and returns
// to idle on Stop; force-completed activity ids only grow while active.
type Session struct {
	ScheduleID string
	// Anchor is the resolved deadline instant in AnchorDeadline mode;
	// zero otherwise.
	Anchor time.Time
	// StartedAt is the instant the plan's first window opens. Under a
	// deadline this is the nominal start (deadline minus total duration),
	// which may be earlier than when the user pressed start.
	StartedAt time.Time
	Active    bool
	// Completed holds ids force-marked done by late-start reconciliation
	// (or by hand). It supplements time-derived completion and is never
	// shrunk while the session is active.
	Completed []string
	// RolloverDone records that a next-day reminder proposal was accepted.
	// It is persisted so later processes do not re-offer the proposal.
	RolloverDone bool
}

// NewSession creates an idle session for a schedule.
func NewSession(scheduleID string) *Session {
	return &Session{ScheduleID: scheduleID}
}

// Start transitions the session to active with the given plan start and
// the reconciled set of skipped activity ids.
func (s *Session) Start(startedAt, anchor time.Time, skipped []string) {
	s.StartedAt = startedAt
	s.Anchor = anchor
	s.Active = true
	s.Completed = nil
	s.RolloverDone = false
	s.MarkCompleted(skipped...)
}

// Stop returns the session to idle. Safe to call when already idle.
func (s *Session) Stop() {
	s.Active = false
	s.StartedAt = time.Time{}
	s.Anchor = time.Time{}
	s.Completed = nil
	s.RolloverDone = false
}

// MarkCompleted force-marks activity ids as done. Duplicates are ignored.
func (s *Session) MarkCompleted(ids ...string) {
	for _, id := range ids {
		if !s.IsCompleted(id) {
			s.Completed = append(s.Completed, id)
		}
	}
}

// IsCompleted reports whether the id has been force-marked done.
func (s *Session) IsCompleted(id string) bool {
	for _, c := range s.Completed {
		if c == id {
			return true
		}
	}
	return false
}

// CompletedSet returns the force-completed ids as a lookup set.
func (s *Session) CompletedSet() map[string]bool {
	set := make(map[string]bool, len(s.Completed))
	for _, id := range s.Completed {
		set[id] = true
	}
	return set
}
