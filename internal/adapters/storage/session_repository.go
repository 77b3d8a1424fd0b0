package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"minder/internal/domain"
	"minder/internal/ports"
)

// sessionRepository implements ports.SessionRepository using SQLite.
// Session instants are stored as ISO-8601 datetimes and the force-completed
// ids as a JSON array.
type sessionRepository struct {
	db *sql.DB
}

// newSessionRepository creates a new session repository.
func newSessionRepository(db *sql.DB) ports.SessionRepository {
	return &sessionRepository{db: db}
}

// Save upserts the session state for a schedule.
func (r *sessionRepository) Save(ctx context.Context, session *domain.Session) error {
	completed, err := json.Marshal(session.Completed)
	if err != nil {
		return fmt.Errorf("failed to encode completed ids: %w", err)
	}
	if session.Completed == nil {
		completed = []byte("[]")
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO sessions (schedule_id, anchor, started_at, active, completed_ids, rollover_done)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(schedule_id) DO UPDATE SET
			anchor = excluded.anchor,
			started_at = excluded.started_at,
			active = excluded.active,
			completed_ids = excluded.completed_ids,
			rollover_done = excluded.rollover_done`,
		session.ScheduleID,
		nullableTime(session.Anchor),
		nullableTime(session.StartedAt),
		session.Active,
		string(completed),
		session.RolloverDone,
	)
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Find retrieves the session state for a schedule; an idle session is
// returned when none has been persisted yet.
func (r *sessionRepository) Find(ctx context.Context, scheduleID string) (*domain.Session, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT schedule_id, anchor, started_at, active, completed_ids, rollover_done FROM sessions WHERE schedule_id = ?`,
		scheduleID)

	session, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NewSession(scheduleID), nil
	}
	return session, err
}

// FindActive returns the active session, if any schedule has one.
func (r *sessionRepository) FindActive(ctx context.Context) (*domain.Session, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT schedule_id, anchor, started_at, active, completed_ids, rollover_done FROM sessions WHERE active = 1 LIMIT 1`)

	session, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return session, err
}

func scanSession(row rowScanner) (*domain.Session, error) {
	var (
		session   domain.Session
		anchor    sql.NullTime
		startedAt sql.NullTime
		completed string
	)
	if err := row.Scan(&session.ScheduleID, &anchor, &startedAt, &session.Active, &completed, &session.RolloverDone); err != nil {
		return nil, err
	}
	if anchor.Valid {
		session.Anchor = anchor.Time
	}
	if startedAt.Valid {
		session.StartedAt = startedAt.Time
	}
	if completed != "" {
		if err := json.Unmarshal([]byte(completed), &session.Completed); err != nil {
			return nil, fmt.Errorf("corrupt completed ids for schedule %s: %w", session.ScheduleID, err)
		}
	}
	return &session, nil
}

// nullableTime maps the zero time to NULL.
func nullableTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}
