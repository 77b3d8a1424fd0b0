// Package config provides configuration management for Minder.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds all configuration for the Minder application.
type Config struct {
	// CurrentSchedule is the name of the schedule commands operate on.
	CurrentSchedule string             `mapstructure:"current_schedule"`
	Notifications   NotificationConfig `mapstructure:"notifications"`
	Storage         StorageConfig      `mapstructure:"storage"`
	Theme           ThemeConfig        `mapstructure:"theme"`
}

// NotificationConfig holds reminder settings.
type NotificationConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Sound   bool `mapstructure:"sound"`
	// LeadTime fires each reminder this many minutes before the activity
	// starts. Zero means on the boundary itself.
	LeadTime int `mapstructure:"lead_time"`
}

// StorageConfig holds storage settings.
type StorageConfig struct {
	DataDir string `mapstructure:"data_dir"`
}

// ThemeConfig holds colors and icons for the run view.
type ThemeConfig struct {
	ColorCurrent  string `mapstructure:"color_current"`
	ColorDone     string `mapstructure:"color_done"`
	ColorSkipped  string `mapstructure:"color_skipped"`
	ColorUpcoming string `mapstructure:"color_upcoming"`
	ColorTitle    string `mapstructure:"color_title"`
	ColorHelp     string `mapstructure:"color_help"`
	IconApp       string `mapstructure:"icon_app"`
	IconDone      string `mapstructure:"icon_done"`
	IconSkipped   string `mapstructure:"icon_skipped"`
	IconCurrent   string `mapstructure:"icon_current"`
}

// DefaultThemeConfig returns the default theme configuration.
func DefaultThemeConfig() ThemeConfig {
	return ThemeConfig{
		ColorCurrent:  "#4ECDC4",
		ColorDone:     "#6B7280",
		ColorSkipped:  "#E0A06F",
		ColorUpcoming: "#A0AEC0",
		ColorTitle:    "#7C6FE0",
		ColorHelp:     "#95A5A6",
		IconApp:       "⏳",
		IconDone:      "✓",
		IconSkipped:   "↷",
		IconCurrent:   "▶",
	}
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Notifications: NotificationConfig{
			Enabled: true,
			Sound:   true,
		},
		Storage: StorageConfig{
			DataDir: "~/.minder",
		},
		Theme: DefaultThemeConfig(),
	}
}

// Load loads the configuration from the config file, creating it with
// defaults on first run.
func Load() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}

	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	viper.SetConfigFile(configPath)
	viper.SetConfigType("toml")
	setDefaults()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := Save(DefaultConfig()); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Expand ~ in data directory
	if cfg.Storage.DataDir == "~/.minder" || cfg.Storage.DataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		cfg.Storage.DataDir = filepath.Join(homeDir, ".minder")
	}

	return &cfg, nil
}

// Save saves the configuration to the config file.
func Save(cfg *Config) error {
	configPath, err := GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	viper.SetConfigFile(configPath)
	viper.SetConfigType("toml")

	viper.Set("current_schedule", cfg.CurrentSchedule)
	viper.Set("notifications.enabled", cfg.Notifications.Enabled)
	viper.Set("notifications.sound", cfg.Notifications.Sound)
	viper.Set("notifications.lead_time", cfg.Notifications.LeadTime)
	viper.Set("storage.data_dir", cfg.Storage.DataDir)
	viper.Set("theme.color_current", cfg.Theme.ColorCurrent)
	viper.Set("theme.color_done", cfg.Theme.ColorDone)
	viper.Set("theme.color_skipped", cfg.Theme.ColorSkipped)
	viper.Set("theme.color_upcoming", cfg.Theme.ColorUpcoming)
	viper.Set("theme.color_title", cfg.Theme.ColorTitle)
	viper.Set("theme.color_help", cfg.Theme.ColorHelp)
	viper.Set("theme.icon_app", cfg.Theme.IconApp)
	viper.Set("theme.icon_done", cfg.Theme.IconDone)
	viper.Set("theme.icon_skipped", cfg.Theme.IconSkipped)
	viper.Set("theme.icon_current", cfg.Theme.IconCurrent)

	return viper.WriteConfig()
}

// GetConfigPath returns the path to the config file.
func GetConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".minder", "config.toml"), nil
}

// GetDBPath returns the path to the database file.
func GetDBPath(cfg *Config) string {
	return filepath.Join(cfg.Storage.DataDir, "minder.db")
}

// setDefaults sets default values for viper.
func setDefaults() {
	viper.SetDefault("current_schedule", "")
	viper.SetDefault("notifications.enabled", true)
	viper.SetDefault("notifications.sound", true)
	viper.SetDefault("notifications.lead_time", 0)
	viper.SetDefault("storage.data_dir", "~/.minder")

	defaults := DefaultThemeConfig()
	viper.SetDefault("theme.color_current", defaults.ColorCurrent)
	viper.SetDefault("theme.color_done", defaults.ColorDone)
	viper.SetDefault("theme.color_skipped", defaults.ColorSkipped)
	viper.SetDefault("theme.color_upcoming", defaults.ColorUpcoming)
	viper.SetDefault("theme.color_title", defaults.ColorTitle)
	viper.SetDefault("theme.color_help", defaults.ColorHelp)
	viper.SetDefault("theme.icon_app", defaults.IconApp)
	viper.SetDefault("theme.icon_done", defaults.IconDone)
	viper.SetDefault("theme.icon_skipped", defaults.IconSkipped)
	viper.SetDefault("theme.icon_current", defaults.IconCurrent)
}
