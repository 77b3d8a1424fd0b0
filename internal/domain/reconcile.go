package domain

import (
	"fmt"
	"time"
)

// TooLateError rejects a session start because every activity window has
// already elapsed. LastEnd is when the final window closed.
type TooLateError struct {
	LastEnd time.Time
}

func (e *TooLateError) Error() string {
	return fmt.Sprintf("too late to start: the last activity ended at %s", e.LastEnd.Format("15:04"))
}

// Reconciliation is the outcome of a late-start check: the activities whose
// windows had fully elapsed before the session started.
type Reconciliation struct {
	SkippedIDs   []string
	SkippedNames []string
}

// Reconcile determines which activities must be force-marked completed
// because their window ended at or before now. It is run once, when a
// session transitions idle to active; edits while running deliberately do
// not re-run it.
//
// If every window has elapsed the start is rejected with a TooLateError.
func Reconcile(s *Schedule, windows []Window, now time.Time) (*Reconciliation, error) {
	rec := &Reconciliation{}
	var lastEnd time.Time
	for _, w := range windows {
		if w.End.After(lastEnd) {
			lastEnd = w.End
		}
		if !w.End.After(now) {
			rec.SkippedIDs = append(rec.SkippedIDs, w.ActivityID)
			if a := s.Activity(w.ActivityID); a != nil {
				rec.SkippedNames = append(rec.SkippedNames, a.Name)
			}
		}
	}
	if len(windows) > 0 && len(rec.SkippedIDs) == len(windows) {
		return nil, &TooLateError{LastEnd: lastEnd}
	}
	return rec, nil
}
