package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"minder/internal/domain"
	"minder/internal/ports"
)

// scheduleRepository implements ports.ScheduleRepository using SQLite.
type scheduleRepository struct {
	db *sql.DB
}

// newScheduleRepository creates a new schedule repository.
func newScheduleRepository(db *sql.DB) ports.ScheduleRepository {
	return &scheduleRepository{db: db}
}

// Save persists a new schedule with its activities.
func (r *scheduleRepository) Save(ctx context.Context, schedule *domain.Schedule) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO schedules (id, name, mode, deadline, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
		schedule.ID,
		schedule.Name,
		string(schedule.Mode),
		timeOfDayString(schedule.Deadline),
		schedule.CreatedAt,
		schedule.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save schedule: %w", err)
	}

	if err := insertActivities(ctx, tx, schedule); err != nil {
		return err
	}
	return tx.Commit()
}

// FindByID retrieves a schedule by its unique identifier.
func (r *scheduleRepository) FindByID(ctx context.Context, id string) (*domain.Schedule, error) {
	return r.findOne(ctx, `SELECT id, name, mode, deadline, created_at, updated_at FROM schedules WHERE id = ?`, id)
}

// FindByName retrieves a schedule by its display name.
func (r *scheduleRepository) FindByName(ctx context.Context, name string) (*domain.Schedule, error) {
	return r.findOne(ctx, `SELECT id, name, mode, deadline, created_at, updated_at FROM schedules WHERE name = ?`, name)
}

// FindAll retrieves all schedules ordered by creation time.
func (r *scheduleRepository) FindAll(ctx context.Context) ([]*domain.Schedule, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, mode, deadline, created_at, updated_at FROM schedules ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to query schedules: %w", err)
	}
	defer rows.Close()

	var schedules []*domain.Schedule
	for rows.Next() {
		schedule, err := scanSchedule(rows)
		if err != nil {
			return nil, err
		}
		schedules = append(schedules, schedule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate schedules: %w", err)
	}

	for _, schedule := range schedules {
		if err := r.loadActivities(ctx, schedule); err != nil {
			return nil, err
		}
	}
	return schedules, nil
}

// Update rewrites an existing schedule and its activity list.
func (r *scheduleRepository) Update(ctx context.Context, schedule *domain.Schedule) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE schedules SET name = ?, mode = ?, deadline = ?, updated_at = ? WHERE id = ?`,
		schedule.Name,
		string(schedule.Mode),
		timeOfDayString(schedule.Deadline),
		schedule.UpdatedAt,
		schedule.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update schedule: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrScheduleNotFound
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM activities WHERE schedule_id = ?`, schedule.ID); err != nil {
		return fmt.Errorf("failed to clear activities: %w", err)
	}
	if err := insertActivities(ctx, tx, schedule); err != nil {
		return err
	}
	return tx.Commit()
}

// Delete removes a schedule together with its activities and session state.
func (r *scheduleRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM activities WHERE schedule_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete activities: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM sessions WHERE schedule_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM schedules WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete schedule: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrScheduleNotFound
	}
	return tx.Commit()
}

func (r *scheduleRepository) findOne(ctx context.Context, query string, arg any) (*domain.Schedule, error) {
	row := r.db.QueryRowContext(ctx, query, arg)
	schedule, err := scanSchedule(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrScheduleNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := r.loadActivities(ctx, schedule); err != nil {
		return nil, err
	}
	return schedule, nil
}

func (r *scheduleRepository) loadActivities(ctx context.Context, schedule *domain.Schedule) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, duration_ms, position, start_at FROM activities WHERE schedule_id = ? ORDER BY position`,
		schedule.ID)
	if err != nil {
		return fmt.Errorf("failed to query activities: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			a          domain.Activity
			durationMS int64
			startAt    sql.NullString
		)
		if err := rows.Scan(&a.ID, &a.Name, &durationMS, &a.Position, &startAt); err != nil {
			return fmt.Errorf("failed to scan activity: %w", err)
		}
		a.Duration = time.Duration(durationMS) * time.Millisecond
		if startAt.Valid && startAt.String != "" {
			t, err := domain.ParseTimeOfDay(startAt.String)
			if err != nil {
				return fmt.Errorf("corrupt start time for activity %s: %w", a.ID, err)
			}
			a.StartAt = &t
		}
		schedule.Activities = append(schedule.Activities, a)
	}
	return rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSchedule(row rowScanner) (*domain.Schedule, error) {
	var (
		schedule domain.Schedule
		mode     string
		deadline sql.NullString
	)
	err := row.Scan(&schedule.ID, &schedule.Name, &mode, &deadline, &schedule.CreatedAt, &schedule.UpdatedAt)
	if err != nil {
		return nil, err
	}
	schedule.Mode = domain.AnchorMode(mode)
	if deadline.Valid && deadline.String != "" {
		t, err := domain.ParseTimeOfDay(deadline.String)
		if err != nil {
			return nil, fmt.Errorf("corrupt deadline for schedule %s: %w", schedule.ID, err)
		}
		schedule.Deadline = &t
	}
	return &schedule, nil
}

func insertActivities(ctx context.Context, tx *sql.Tx, schedule *domain.Schedule) error {
	for i := range schedule.Activities {
		a := &schedule.Activities[i]
		_, err := tx.ExecContext(ctx,
			`INSERT INTO activities (id, schedule_id, name, duration_ms, position, start_at) VALUES (?, ?, ?, ?, ?, ?)`,
			a.ID,
			schedule.ID,
			a.Name,
			a.Duration.Milliseconds(),
			a.Position,
			timeOfDayString(a.StartAt),
		)
		if err != nil {
			return fmt.Errorf("failed to save activity: %w", err)
		}
	}
	return nil
}

// timeOfDayString returns the nullable HH:MM column value.
func timeOfDayString(t *domain.TimeOfDay) *string {
	if t == nil {
		return nil
	}
	s := t.String()
	return &s
}
