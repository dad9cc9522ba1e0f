// Package config loads the app configuration from
// ~/.config/wakeline/config.yaml, falling back to defaults when the file is
// missing.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/akarsten/wakeline/internal/constants"
)

type MirrorConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	DSN     string `mapstructure:"dsn"`     // Postgres connection string
	UserID  string `mapstructure:"user_id"` // row key in the mirror table
}

type Config struct {
	Theme         string       `mapstructure:"theme"`
	DataFile      string       `mapstructure:"data_file"` // .json or .db, picks the backend
	Notifications bool         `mapstructure:"notifications"`
	ExpiryHours   int          `mapstructure:"expiry_hours"`
	Debug         bool         `mapstructure:"debug"`
	Mirror        MirrorConfig `mapstructure:"mirror"`
}

func Default() Config {
	return Config{
		Theme:         "light",
		Notifications: true,
		ExpiryHours:   constants.DefaultExpiryHours,
	}
}

func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".config", "wakeline")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

// DataDir returns the per-user data directory, creating it when missing.
func DataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".local", "share", "wakeline")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

func Load() (Config, error) {
	cfg := Default()

	dir, err := configDir()
	if err != nil {
		return cfg, err
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(filepath.Join(dir, "config.yaml"))

	v.SetDefault("theme", cfg.Theme)
	v.SetDefault("data_file", cfg.DataFile)
	v.SetDefault("notifications", cfg.Notifications)
	v.SetDefault("expiry_hours", cfg.ExpiryHours)
	v.SetDefault("debug", cfg.Debug)
	v.SetDefault("mirror.enabled", false)
	v.SetDefault("mirror.dsn", "")
	v.SetDefault("mirror.user_id", "default")

	_ = v.ReadInConfig() // ok if missing
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("config unmarshal: %w", err)
	}

	if cfg.ExpiryHours <= 0 {
		cfg.ExpiryHours = constants.DefaultExpiryHours
	}
	if cfg.DataFile == "" {
		dataDir, err := DataDir()
		if err != nil {
			return cfg, err
		}
		cfg.DataFile = filepath.Join(dataDir, "wakeline.db")
	}
	return cfg, nil
}
