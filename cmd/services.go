package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"minder/internal/adapters/clock"
	"minder/internal/adapters/notification"
	"minder/internal/adapters/storage"
	"minder/internal/config"
	"minder/internal/domain"
	"minder/internal/ports"
	"minder/internal/services"
)

// appDeps groups all service-layer dependencies initialized at startup.
type appDeps struct {
	storage   ports.Storage
	schedules *services.ScheduleService
	sessions  *services.SessionService
	notifier  *notification.Scheduler
	config    *config.Config
}

// app holds all initialized service dependencies.
// Populated by initializeServices() and accessible to all commands.
var app appDeps

// initializeServices sets up all the required services and adapters.
func initializeServices() error {
	var err error
	app.config, err = config.Load()
	if err != nil {
		// If config loading fails, use defaults
		app.config = config.DefaultConfig()
	}

	app.notifier = notification.New(&app.config.Notifications)

	if dbPath == "" {
		dbPath = config.GetDBPath(app.config)
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o750); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}

	app.storage, err = storage.New(dbPath)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	app.sessions = services.NewSessionService(app.storage, app.notifier, clock.New())
	app.schedules = services.NewScheduleService(app.storage)
	app.schedules.SetSessionService(app.sessions)
	return nil
}

// cleanupServices closes all resources.
func cleanupServices() error {
	if app.storage != nil {
		return app.storage.Close()
	}
	return nil
}

// currentSchedule resolves the schedule commands operate on: the one chosen
// with "minder use", or the only schedule when exactly one exists.
func currentSchedule(ctx context.Context) (*domain.Schedule, error) {
	if app.config.CurrentSchedule != "" {
		schedule, err := app.schedules.GetByName(ctx, app.config.CurrentSchedule)
		if err == nil {
			return schedule, nil
		}
		if !errors.Is(err, domain.ErrScheduleNotFound) {
			return nil, err
		}
	}

	all, err := app.schedules.List(ctx)
	if err != nil {
		return nil, err
	}
	switch len(all) {
	case 0:
		return nil, fmt.Errorf("no schedules yet; create one with \"minder new <name>\"")
	case 1:
		return all[0], nil
	default:
		return nil, fmt.Errorf("several schedules exist; pick one with \"minder use <name>\"")
	}
}

// setCurrentSchedule records the chosen schedule name in the config file.
func setCurrentSchedule(name string) error {
	app.config.CurrentSchedule = name
	return config.Save(app.config)
}
