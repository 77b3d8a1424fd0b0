// Package services contains the use-case layer: the session controller and
// schedule editing, orchestrating the domain over the driven ports.
package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sahilm/fuzzy"

	"minder/internal/domain"
	"minder/internal/ports"
)

// ScheduleService handles schedule and activity editing. Invalid edits are
// rejected at this boundary and never reach the resolver.
type ScheduleService struct {
	storage  ports.Storage
	sessions *SessionService
}

// NewScheduleService creates a new schedule service.
func NewScheduleService(storage ports.Storage) *ScheduleService {
	return &ScheduleService{storage: storage}
}

// SetSessionService wires the session controller so edits made while a
// session is running refresh its reminders.
func (s *ScheduleService) SetSessionService(sessions *SessionService) {
	s.sessions = sessions
}

// Create creates a new named schedule.
func (s *ScheduleService) Create(ctx context.Context, name, mode string) (*domain.Schedule, error) {
	anchorMode, err := domain.ValidateAnchorMode(mode)
	if err != nil {
		return nil, err
	}
	if name == "" {
		return nil, fmt.Errorf("schedule name cannot be empty")
	}
	if existing, _ := s.storage.Schedules().FindByName(ctx, name); existing != nil {
		return nil, fmt.Errorf("schedule %q already exists", name)
	}

	schedule := domain.NewSchedule(name, anchorMode)
	if err := s.storage.Schedules().Save(ctx, schedule); err != nil {
		return nil, fmt.Errorf("failed to save schedule: %w", err)
	}
	return schedule, nil
}

// Get retrieves a schedule by id.
func (s *ScheduleService) Get(ctx context.Context, id string) (*domain.Schedule, error) {
	return s.storage.Schedules().FindByID(ctx, id)
}

// GetByName retrieves a schedule by name.
func (s *ScheduleService) GetByName(ctx context.Context, name string) (*domain.Schedule, error) {
	return s.storage.Schedules().FindByName(ctx, name)
}

// List retrieves all schedules.
func (s *ScheduleService) List(ctx context.Context) ([]*domain.Schedule, error) {
	return s.storage.Schedules().FindAll(ctx)
}

// Delete stops any running session for the schedule and removes it.
func (s *ScheduleService) Delete(ctx context.Context, id string) error {
	if s.sessions != nil {
		if err := s.sessions.Stop(ctx, id); err != nil {
			return err
		}
	}
	return s.storage.Schedules().Delete(ctx, id)
}

// AddActivity appends an activity to the schedule. startAt is required for
// start-time schedules and must be nil otherwise.
func (s *ScheduleService) AddActivity(ctx context.Context, schedule *domain.Schedule, name string, duration time.Duration, startAt *domain.TimeOfDay) (*domain.Activity, *domain.RolloverProposal, error) {
	activity, err := domain.NewActivity(name, duration)
	if err != nil {
		return nil, nil, err
	}
	activity.StartAt = startAt
	if err := schedule.Add(*activity); err != nil {
		return nil, nil, err
	}
	proposal, err := s.persistEdit(ctx, schedule)
	if err != nil {
		return nil, nil, err
	}
	return schedule.Activity(activity.ID), proposal, nil
}

// RemoveActivity removes the activity matching the query.
func (s *ScheduleService) RemoveActivity(ctx context.Context, schedule *domain.Schedule, query string) (*domain.Activity, *domain.RolloverProposal, error) {
	activity, err := s.ResolveActivity(schedule, query)
	if err != nil {
		return nil, nil, err
	}
	removed := *activity
	if err := schedule.Remove(activity.ID); err != nil {
		return nil, nil, err
	}
	proposal, err := s.persistEdit(ctx, schedule)
	if err != nil {
		return nil, nil, err
	}
	return &removed, proposal, nil
}

// MoveActivity repositions the activity matching the query. Rejected for
// start-time schedules, whose order is fixed by clock time.
func (s *ScheduleService) MoveActivity(ctx context.Context, schedule *domain.Schedule, query string, position int) (*domain.RolloverProposal, error) {
	activity, err := s.ResolveActivity(schedule, query)
	if err != nil {
		return nil, err
	}
	if err := schedule.Move(activity.ID, position); err != nil {
		return nil, err
	}
	return s.persistEdit(ctx, schedule)
}

// UpdateActivity applies a mutation to the activity matching the query.
func (s *ScheduleService) UpdateActivity(ctx context.Context, schedule *domain.Schedule, query string, mutate func(*domain.Activity)) (*domain.RolloverProposal, error) {
	activity, err := s.ResolveActivity(schedule, query)
	if err != nil {
		return nil, err
	}
	if err := schedule.Update(activity.ID, mutate); err != nil {
		return nil, err
	}
	return s.persistEdit(ctx, schedule)
}

// SetDeadline sets the deadline time of day for a deadline-anchored schedule.
func (s *ScheduleService) SetDeadline(ctx context.Context, schedule *domain.Schedule, deadline domain.TimeOfDay) (*domain.RolloverProposal, error) {
	if err := schedule.SetDeadline(deadline); err != nil {
		return nil, err
	}
	return s.persistEdit(ctx, schedule)
}

// ResolveActivity finds an activity by id, id prefix, or fuzzy name match.
func (s *ScheduleService) ResolveActivity(schedule *domain.Schedule, query string) (*domain.Activity, error) {
	if query == "" {
		return nil, domain.ErrActivityNotFound
	}
	for i := range schedule.Activities {
		a := &schedule.Activities[i]
		if a.ID == query || (len(query) >= 8 && strings.HasPrefix(a.ID, query)) {
			return a, nil
		}
	}

	names := make([]string, len(schedule.Activities))
	for i := range schedule.Activities {
		names[i] = schedule.Activities[i].Name
	}
	matches := fuzzy.Find(query, names)
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: no activity matches %q", domain.ErrActivityNotFound, query)
	}
	return &schedule.Activities[matches[0].Index], nil
}

// persistEdit saves the edited schedule and, when a session is running,
// refreshes its reminders against the original session start.
func (s *ScheduleService) persistEdit(ctx context.Context, schedule *domain.Schedule) (*domain.RolloverProposal, error) {
	if err := s.storage.Schedules().Update(ctx, schedule); err != nil {
		return nil, fmt.Errorf("failed to save schedule: %w", err)
	}
	if s.sessions == nil {
		return nil, nil
	}
	return s.sessions.HandleEdit(ctx, schedule)
}
