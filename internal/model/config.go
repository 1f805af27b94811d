package model

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// BackendConfig holds connection settings for the garage backend.
type BackendConfig struct {
	// BaseURL is the root URL of the REST API
	// (e.g., http://192.168.1.6:5000/api).
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`

	// TimeoutSec is the per-request HTTP timeout.
	TimeoutSec int `mapstructure:"timeout_sec" yaml:"timeout_sec"`
}

// DisplayConfig holds presentation preferences.
type DisplayConfig struct {
	// Locale selects the display language for status and role labels
	// ("en" or "vi").
	Locale string `mapstructure:"locale" yaml:"locale"`
}

// SyncConfig holds background refresh settings.
type SyncConfig struct {
	// PollIntervalSec is how often (in seconds) the watcher refetches
	// tasks and notifications.
	PollIntervalSec int `mapstructure:"poll_interval_sec" yaml:"poll_interval_sec"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Backend BackendConfig `mapstructure:"backend" yaml:"backend"`
	Display DisplayConfig `mapstructure:"display" yaml:"display"`
	Sync    SyncConfig    `mapstructure:"sync" yaml:"sync"`

	// CachePath is the location of the local SQLite cache. Empty means
	// the default under the user config directory.
	CachePath string `mapstructure:"cache_path" yaml:"cache_path"`
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/garage-tasks/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "garage-tasks", "config.yaml")
}

// DefaultCachePath returns the default location of the local cache.
func DefaultCachePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "cache.db")
	}
	return filepath.Join(home, ".config", "garage-tasks", "cache.db")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	return &AppConfig{
		Backend: BackendConfig{
			BaseURL:    "http://localhost:5000/api",
			TimeoutSec: 30,
		},
		Display:   DisplayConfig{Locale: "vi"},
		Sync:      SyncConfig{PollIntervalSec: 120},
		CachePath: DefaultCachePath(),
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns a default configuration.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Set defaults so missing keys resolve to sensible values.
	v.SetDefault("backend.base_url", "http://localhost:5000/api")
	v.SetDefault("backend.timeout_sec", 30)
	v.SetDefault("display.locale", "vi")
	v.SetDefault("sync.poll_interval_sec", 120)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return defaultAppConfig(), nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaultAppConfig(), nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if cfg.CachePath == "" {
		cfg.CachePath = DefaultCachePath()
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("backend", cfg.Backend)
	v.Set("display", cfg.Display)
	v.Set("sync", cfg.Sync)
	if cfg.CachePath != "" {
		v.Set("cache_path", cfg.CachePath)
	}

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
