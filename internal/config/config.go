// Package config loads the user's settings from a YAML file, following the same
// read-file-then-yaml.Unmarshal shape used elsewhere in the pack for small
// local state files.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const envDataDir = "REPEATER_DATA_DIR"

// Config is the user-editable settings file, typically at
// $XDG_CONFIG_HOME/repeater/config.yml.
type Config struct {
	Decks        []string `yaml:"decks"`
	CardLimit    int      `yaml:"card_limit"`
	NewCardLimit int      `yaml:"new_card_limit"`
	ShuffleSeed  *int64   `yaml:"shuffle_seed"`
	DataDir      string   `yaml:"data_dir"`
}

// Default returns the zero-value configuration: no deck paths, no caps, no seed.
func Default() Config {
	return Config{}
}

// Load reads and parses the config file at path. A missing file is not an error;
// it yields Default().
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path as YAML, creating its parent directory if needed.
func Save(path string, cfg Config) error {
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}
	return nil
}

// DefaultConfigPath returns the config file location inside the user's config
// directory, $XDG_CONFIG_HOME/repeater/config.yml (or the OS equivalent).
func DefaultConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve user config directory: %w", err)
	}
	return filepath.Join(dir, "repeater", "config.yml"), nil
}

// DataDir returns where the SQLite database and backups live: the
// REPEATER_DATA_DIR environment variable if set, else cfg.DataDir if set, else
// the repeater folder inside os.UserConfigDir(). On Linux that is
// $XDG_CONFIG_HOME/repeater (the same folder as the config file), not
// $XDG_DATA_HOME/repeater.
func DataDir(cfg Config) (string, error) {
	if v := os.Getenv(envDataDir); v != "" {
		return v, nil
	}
	if cfg.DataDir != "" {
		return cfg.DataDir, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve user data directory: %w", err)
	}
	return filepath.Join(dir, "repeater"), nil
}
