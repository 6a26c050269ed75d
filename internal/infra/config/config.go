// Package config provides configuration loading from YAML files.
package config

import (
	"os"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Library   LibraryConfig   `yaml:"library"`
	Player    PlayerConfig    `yaml:"player"`
	Playlists PlaylistsConfig `yaml:"playlists"`
	Audio     AudioConfig     `yaml:"audio"`
}

// LibraryConfig represents the media library configuration.
type LibraryConfig struct {
	Dir   string `yaml:"dir" validate:"required"`
	Watch bool   `yaml:"watch"`
}

// PlayerConfig represents playback polling configuration.
type PlayerConfig struct {
	TickIntervalMs int `yaml:"tick_interval_ms" default:"500" validate:"gte=100,lte=5000"`
}

// TickInterval returns the tick interval as a duration.
func (p PlayerConfig) TickInterval() time.Duration {
	return time.Duration(p.TickIntervalMs) * time.Millisecond
}

// PlaylistsConfig represents playlist persistence configuration.
type PlaylistsConfig struct {
	File string `yaml:"file" default:"playlists.json"`
}

// AudioConfig represents the audio backend configuration.
type AudioConfig struct {
	Backend BackendConfig `yaml:"backend"`
}

// BackendConfig represents a single audio backend configuration.
type BackendConfig struct {
	Type     string         `yaml:"type" default:"speaker" validate:"oneof=speaker silent"`
	Settings map[string]any `yaml:"settings"`
}

// Load loads configuration from a YAML file.
// Environment variables take precedence over file values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config file")
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse config file")
	}

	// Override with environment variables
	cfg.overrideFromEnv()

	// Set defaults using creasty/defaults
	if err := defaults.Set(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to set defaults")
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "config validation failed")
	}

	return &cfg, nil
}

// overrideFromEnv overrides config values with environment variables.
func (c *Config) overrideFromEnv() {
	if v := os.Getenv("HARMONIA_LIBRARY_DIR"); v != "" {
		c.Library.Dir = v
	}
	if v := os.Getenv("HARMONIA_PLAYLISTS_FILE"); v != "" {
		c.Playlists.File = v
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(err, "struct validation failed")
	}
	return nil
}
