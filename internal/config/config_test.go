package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if !cfg.Notifications.Enabled {
		t.Error("Notifications.Enabled = false, want true")
	}
	if cfg.Storage.DataDir != "~/.minder" {
		t.Errorf("Storage.DataDir = %q, want ~/.minder", cfg.Storage.DataDir)
	}
	if cfg.CurrentSchedule != "" {
		t.Errorf("CurrentSchedule = %q, want empty", cfg.CurrentSchedule)
	}
	if cfg.Theme.IconDone == "" || cfg.Theme.ColorCurrent == "" {
		t.Error("theme defaults missing")
	}
}

func TestGetDBPath(t *testing.T) {
	cfg := &Config{Storage: StorageConfig{DataDir: "/data/minder"}}
	if got := GetDBPath(cfg); got != filepath.Join("/data/minder", "minder.db") {
		t.Errorf("GetDBPath() = %q", got)
	}
}

func TestLoadCreatesDefaultFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !cfg.Notifications.Enabled {
		t.Error("Notifications.Enabled = false, want default true")
	}

	path, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() error = %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("config file not created: %v", err)
	}

	// ~ is expanded on load.
	home := os.Getenv("HOME")
	if cfg.Storage.DataDir != filepath.Join(home, ".minder") {
		t.Errorf("DataDir = %q, want %q", cfg.Storage.DataDir, filepath.Join(home, ".minder"))
	}
}

func TestSaveAndReload(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.CurrentSchedule = "afternoon"
	cfg.Notifications.Sound = false
	cfg.Notifications.LeadTime = 5
	if err := Save(cfg); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.CurrentSchedule != "afternoon" {
		t.Errorf("CurrentSchedule = %q, want afternoon", loaded.CurrentSchedule)
	}
	if loaded.Notifications.Sound {
		t.Error("Notifications.Sound = true, want false")
	}
	if loaded.Notifications.LeadTime != 5 {
		t.Errorf("Notifications.LeadTime = %d, want 5", loaded.Notifications.LeadTime)
	}
}
