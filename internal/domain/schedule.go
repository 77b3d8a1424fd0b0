package domain

import (
	"fmt"
	"sort"
	"time"
)

// Schedule is an ordered plan of activities with a single anchoring rule.
// All mutations go through Schedule methods so Position stays dense and,
// in start-time mode, the list stays sorted by clock time.
type Schedule struct {
	ID         string
	Name       string
	Mode       AnchorMode
	Activities []Activity
	// Deadline is the target time of day in AnchorDeadline mode; nil means
	// the plan counts down from whenever the session starts.
	Deadline  *TimeOfDay
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewSchedule creates an empty schedule.
func NewSchedule(name string, mode AnchorMode) *Schedule {
	now := time.Now()
	return &Schedule{
		ID:        generateID(),
		Name:      name,
		Mode:      mode,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Validate checks the schedule invariants needed to start a session.
func (s *Schedule) Validate() error {
	if len(s.Activities) == 0 {
		return ErrEmptySchedule
	}
	for i := range s.Activities {
		if err := s.validateActivity(&s.Activities[i]); err != nil {
			return err
		}
	}
	return nil
}

func (s *Schedule) validateActivity(a *Activity) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if s.Mode == AnchorStartTimes && a.StartAt == nil {
		return ErrMissingStartTime
	}
	return nil
}

// Add appends an activity and renumbers.
func (s *Schedule) Add(a Activity) error {
	if err := s.validateActivity(&a); err != nil {
		return err
	}
	s.Activities = append(s.Activities, a)
	s.renumber()
	s.UpdatedAt = time.Now()
	return nil
}

// Remove deletes the activity with the given id and renumbers.
func (s *Schedule) Remove(id string) error {
	idx := s.indexOf(id)
	if idx < 0 {
		return ErrActivityNotFound
	}
	s.Activities = append(s.Activities[:idx], s.Activities[idx+1:]...)
	s.renumber()
	s.UpdatedAt = time.Now()
	return nil
}

// Move repositions an activity. Only meaningful in deadline mode, where
// list order is countdown order; start-time schedules are ordered by
// clock time and cannot be reordered by hand.
func (s *Schedule) Move(id string, pos int) error {
	if s.Mode == AnchorStartTimes {
		return ErrOrderFixed
	}
	idx := s.indexOf(id)
	if idx < 0 {
		return ErrActivityNotFound
	}
	if pos < 0 {
		pos = 0
	}
	if pos >= len(s.Activities) {
		pos = len(s.Activities) - 1
	}
	a := s.Activities[idx]
	s.Activities = append(s.Activities[:idx], s.Activities[idx+1:]...)
	s.Activities = append(s.Activities[:pos], append([]Activity{a}, s.Activities[pos:]...)...)
	s.renumber()
	s.UpdatedAt = time.Now()
	return nil
}

// Update mutates an activity in place, then revalidates and renumbers.
// The mutation is rejected wholesale if it breaks an invariant.
func (s *Schedule) Update(id string, mutate func(*Activity)) error {
	idx := s.indexOf(id)
	if idx < 0 {
		return ErrActivityNotFound
	}
	updated := s.Activities[idx]
	mutate(&updated)
	updated.ID = s.Activities[idx].ID
	if err := s.validateActivity(&updated); err != nil {
		return err
	}
	s.Activities[idx] = updated
	s.renumber()
	s.UpdatedAt = time.Now()
	return nil
}

// SetDeadline sets the target time of day. Only deadline-anchored
// schedules have one.
func (s *Schedule) SetDeadline(deadline TimeOfDay) error {
	if s.Mode != AnchorDeadline {
		return fmt.Errorf("schedule %q is not deadline-anchored", s.Name)
	}
	s.Deadline = &deadline
	s.UpdatedAt = time.Now()
	return nil
}

// Activity returns the activity with the given id, or nil.
func (s *Schedule) Activity(id string) *Activity {
	idx := s.indexOf(id)
	if idx < 0 {
		return nil
	}
	return &s.Activities[idx]
}

// TotalDuration is the sum of all activity durations.
func (s *Schedule) TotalDuration() time.Duration {
	var total time.Duration
	for i := range s.Activities {
		total += s.Activities[i].Duration
	}
	return total
}

func (s *Schedule) indexOf(id string) int {
	for i := range s.Activities {
		if s.Activities[i].ID == id {
			return i
		}
	}
	return -1
}

// renumber restores the position invariant. In start-time mode the list is
// first sorted ascending by clock time; ties keep their relative order.
func (s *Schedule) renumber() {
	if s.Mode == AnchorStartTimes {
		sort.SliceStable(s.Activities, func(i, j int) bool {
			a, b := s.Activities[i].StartAt, s.Activities[j].StartAt
			if a == nil || b == nil {
				return b == nil && a != nil
			}
			if a.Hour != b.Hour {
				return a.Hour < b.Hour
			}
			return a.Minute < b.Minute
		})
	}
	for i := range s.Activities {
		s.Activities[i].Position = i
	}
}
