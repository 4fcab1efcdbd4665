package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all application configuration
type Config struct {
	Version     int               `toml:"version"`
	Database    DatabaseConfig    `toml:"database"`
	Leaderboard LeaderboardConfig `toml:"leaderboard"`
	Schedule    ScheduleConfig    `toml:"schedule"`
	Email       EmailConfig       `toml:"email"`
}

type DatabaseConfig struct {
	Path string `toml:"path"`
}

type LeaderboardConfig struct {
	ExportDir string `toml:"export_dir"`
	// SummarySize is how many top entries the run summary shows.
	SummarySize int `toml:"summary_size"`
}

type ScheduleConfig struct {
	// Cron is a standard 5-field cron expression for daemon mode.
	Cron     string `toml:"cron"`
	Timezone string `toml:"timezone"`
}

type EmailConfig struct {
	Provider string `toml:"provider"`
	SMTPHost string `toml:"smtp_host"`
	SMTPPort int    `toml:"smtp_port"`
	SMTPUser string `toml:"smtp_user"`
	SMTPPass string `toml:"smtp_pass"`
	FromAddr string `toml:"from_address"`
	ToAddr   string `toml:"to_address"`
}

// Enabled reports whether summary emails should be sent.
func (e EmailConfig) Enabled() bool {
	return e.ToAddr != ""
}

// Default returns a Config with sensible defaults
func Default() *Config {
	dataDir, _ := DataDir()
	return &Config{
		Version: 1,
		Database: DatabaseConfig{
			Path: filepath.Join(dataDir, "mindshare.db"),
		},
		Leaderboard: LeaderboardConfig{
			ExportDir:   filepath.Join(dataDir, "exports"),
			SummarySize: 10,
		},
		Schedule: ScheduleConfig{
			// Tuesday 00:30, well clear of the Monday window boundary.
			Cron:     "30 0 * * 2",
			Timezone: "Local",
		},
		Email: EmailConfig{
			Provider: "smtp",
			SMTPPort: 587,
		},
	}
}

// ConfigDir returns the platform-appropriate config directory
func ConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "burnie-mindshare"), nil
}

// ConfigPath returns the full path to the config file
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// DataDir returns the directory for the database and exports.
func DataDir() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "data"), nil
}

// Load reads config from disk
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

// LoadFile reads config from an explicit path and validates it.
func LoadFile(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

// Validate checks the fields the pipeline cannot run without.
func (c *Config) Validate() error {
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}
	if c.Leaderboard.ExportDir == "" {
		return fmt.Errorf("leaderboard.export_dir is required")
	}
	if c.Leaderboard.SummarySize <= 0 {
		c.Leaderboard.SummarySize = 10
	}
	return nil
}

// Save writes config to disk
func (c *Config) Save() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	path, err := ConfigPath()
	if err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	return encoder.Encode(c)
}
