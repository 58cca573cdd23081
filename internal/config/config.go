// Package config persists the CLI's defaults: printer endpoint, request
// timeout, and the time of the last successful reading.
//
// The file lives under the user config dir (inkstat/config.yaml). An absent
// file means all-default values; the directory is created lazily on the
// first write and never deleted except by an explicit reset.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultTimeoutSeconds is the request timeout used when no value is
// persisted or given on the command line.
const DefaultTimeoutSeconds = 30

const (
	dirName  = "inkstat"
	fileName = "config.yaml"
)

// Config is the persisted configuration.
type Config struct {
	PrinterURL     string     `yaml:"printer_url"`
	TimeoutSeconds int        `yaml:"timeout_seconds"`
	LastUpdated    *time.Time `yaml:"last_updated,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{TimeoutSeconds: DefaultTimeoutSeconds}
}

// DefaultPath returns the canonical config file location for this user.
func DefaultPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("could not determine config directory: %w", err)
	}
	return filepath.Join(base, dirName, fileName), nil
}

// Load reads the config file at path. A missing file is not an error and
// yields the defaults; unreadable or malformed files are.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("could not read config %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("could not parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config to path, creating parent directories as needed.
func (c Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("could not create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("could not serialize config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("could not write config %s: %w", path, err)
	}
	return nil
}
