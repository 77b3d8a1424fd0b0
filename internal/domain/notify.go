package domain

import "time"

// Boundary is an activity start instant, the unit reminders are scheduled
// against.
type Boundary struct {
	ActivityID string
	Name       string
	At         time.Time
}

// Partition splits a schedule's boundaries into those still ahead of now
// and those already passed today.
type Partition struct {
	Future []Boundary
	Past   []Boundary
}

// PartitionBoundaries classifies every activity's start boundary against
// now. A boundary exactly at now counts as past.
func PartitionBoundaries(s *Schedule, windows []Window, now time.Time) Partition {
	var p Partition
	for _, w := range windows {
		b := Boundary{ActivityID: w.ActivityID, At: w.Start}
		if a := s.Activity(w.ActivityID); a != nil {
			b.Name = a.Name
		}
		if b.At.After(now) {
			p.Future = append(p.Future, b)
		} else {
			p.Past = append(p.Past, b)
		}
	}
	return p
}

// RolloverProposal offers past boundaries again at the same time of day on
// the following day. Nothing is scheduled until it is explicitly accepted.
type RolloverProposal struct {
	Boundaries []Boundary
}

// Rollover returns a next-day proposal when every boundary has already
// passed today, or nil when at least one reminder can still fire today.
func (p Partition) Rollover() *RolloverProposal {
	if len(p.Future) > 0 || len(p.Past) == 0 {
		return nil
	}
	shifted := make([]Boundary, len(p.Past))
	for i, b := range p.Past {
		shifted[i] = Boundary{
			ActivityID: b.ActivityID,
			Name:       b.Name,
			At:         b.At.Add(24 * time.Hour),
		}
	}
	return &RolloverProposal{Boundaries: shifted}
}
