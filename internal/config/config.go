// Package config loads the optional ANDY configuration file.
//
// The file is YAML and holds the database location plus the defaults
// applied to first-run settings. A missing file is not an error; all
// values can also come from flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration.
type Config struct {
	// Database is the SQLite file path. Empty means the default
	// location under the user config directory.
	Database string `yaml:"database"`

	// Defaults seed the settings singleton on first run.
	Defaults Defaults `yaml:"defaults"`
}

// Defaults mirror the editable settings fields.
type Defaults struct {
	PreceptorName  string `yaml:"preceptor_name"`
	PreceptorPhone string `yaml:"preceptor_phone"`
	Discipline     string `yaml:"discipline"`
	Shift          string `yaml:"shift"`
	Location       string `yaml:"location"`
	Class          string `yaml:"class"`
	Group          string `yaml:"group"`
}

// DefaultPath returns the conventional config file location,
// $XDG_CONFIG_HOME/andy/config.yaml or the platform equivalent.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, "andy", "config.yaml"), nil
}

// DefaultDatabasePath returns the conventional database location next
// to the config file.
func DefaultDatabasePath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, "andy", "andy.db"), nil
}

// Load reads the config file at path. A nonexistent file yields the
// zero Config with no error; malformed YAML is an error.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Config{}, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
