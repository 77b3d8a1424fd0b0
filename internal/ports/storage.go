// Package ports defines the interfaces (driven and driving ports) between
// the Minder core and external infrastructure.
package ports

import (
	"context"

	"minder/internal/domain"
)

// ScheduleRepository defines the interface for schedule persistence.
// This is a driven port (implemented by adapters).
type ScheduleRepository interface {
	// Save persists a new schedule with its activities.
	Save(ctx context.Context, schedule *domain.Schedule) error

	// FindByID retrieves a schedule by its unique identifier.
	FindByID(ctx context.Context, id string) (*domain.Schedule, error)

	// FindByName retrieves a schedule by its display name.
	FindByName(ctx context.Context, name string) (*domain.Schedule, error)

	// FindAll retrieves all schedules ordered by creation time.
	FindAll(ctx context.Context) ([]*domain.Schedule, error)

	// Update rewrites an existing schedule and its activity list.
	Update(ctx context.Context, schedule *domain.Schedule) error

	// Delete removes a schedule and its activities and session state.
	Delete(ctx context.Context, id string) error
}

// SessionRepository defines the interface for session state persistence.
// This is a driven port (implemented by adapters).
type SessionRepository interface {
	// Save upserts the session state for a schedule.
	Save(ctx context.Context, session *domain.Session) error

	// Find retrieves the session state for a schedule; returns an idle
	// session when none has been persisted.
	Find(ctx context.Context, scheduleID string) (*domain.Session, error)

	// FindActive returns the active session, if any schedule has one.
	FindActive(ctx context.Context) (*domain.Session, error)
}

// Storage is the combined repository interface.
type Storage interface {
	// Schedules provides access to schedule operations.
	Schedules() ScheduleRepository

	// Sessions provides access to session state operations.
	Sessions() SessionRepository

	// Close closes the storage connection.
	Close() error

	// Migrate runs database migrations.
	Migrate() error
}
