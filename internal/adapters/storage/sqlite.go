// Package storage provides SQLite implementations of the storage ports.
package storage

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"minder/internal/ports"
)

// sqliteStorage implements the ports.Storage interface using SQLite.
type sqliteStorage struct {
	db           *sql.DB
	scheduleRepo ports.ScheduleRepository
	sessionRepo  ports.SessionRepository
}

// Ensure sqliteStorage implements ports.Storage.
var _ ports.Storage = (*sqliteStorage)(nil)

// New creates a new SQLite storage instance.
func New(dbPath string) (ports.Storage, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite is single-writer; one pooled connection also keeps in-memory
	// databases and per-connection pragmas coherent.
	db.SetMaxOpenConns(1)

	// Foreign keys and WAL mode
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}

	s := &sqliteStorage{
		db:           db,
		scheduleRepo: newScheduleRepository(db),
		sessionRepo:  newSessionRepository(db),
	}

	if err := s.Migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return s, nil
}

// NewMemory creates an in-memory SQLite storage instance for testing.
func NewMemory() (ports.Storage, error) {
	return New(":memory:")
}

// Schedules returns the schedule repository.
func (s *sqliteStorage) Schedules() ports.ScheduleRepository {
	return s.scheduleRepo
}

// Sessions returns the session repository.
func (s *sqliteStorage) Sessions() ports.SessionRepository {
	return s.sessionRepo
}

// Close closes the database connection.
func (s *sqliteStorage) Close() error {
	return s.db.Close()
}

// Migrate creates the database schema.
func (s *sqliteStorage) Migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS schedules (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		mode TEXT NOT NULL,
		deadline TEXT,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS activities (
		id TEXT PRIMARY KEY,
		schedule_id TEXT NOT NULL,
		name TEXT NOT NULL,
		duration_ms INTEGER NOT NULL,
		position INTEGER NOT NULL,
		start_at TEXT,
		FOREIGN KEY (schedule_id) REFERENCES schedules(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_activities_schedule ON activities(schedule_id, position);

	CREATE TABLE IF NOT EXISTS sessions (
		schedule_id TEXT PRIMARY KEY,
		anchor DATETIME,
		started_at DATETIME,
		active INTEGER NOT NULL DEFAULT 0,
		completed_ids TEXT NOT NULL DEFAULT '[]',
		rollover_done INTEGER NOT NULL DEFAULT 0,
		FOREIGN KEY (schedule_id) REFERENCES schedules(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_sessions_active ON sessions(active);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	return nil
}
