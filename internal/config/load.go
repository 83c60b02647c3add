package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"nextup/internal/logging"
	"nextup/internal/task"
)

// ConfigFileName is the name of the nextup configuration file.
const ConfigFileName = "nextup.toml"

// FindConfigFile walks up from startDir looking for nextup.toml.
// Returns the absolute path, or an empty string if no config file
// exists anywhere up to the filesystem root.
func FindConfigFile(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root.
			return "", nil
		}
		dir = parent
	}
}

// Load resolves the effective configuration. When explicitPath is
// non-empty that file must exist and parse; otherwise the config file
// is discovered by walking up from the working directory, and running
// without one is fine. File values overlay the defaults key by key.
func Load(explicitPath string) (*Config, error) {
	cfg := NewDefaults()

	path := explicitPath
	if path == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		path, err = FindConfigFile(cwd)
		if err != nil {
			return nil, err
		}
		if path == "" {
			return cfg, nil
		}
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("loading config %s: %w", path, err)
	}
	// Created per call so it respects whatever logging.Setup configured.
	logger := logging.New("config")
	for _, key := range md.Undecoded() {
		logger.Warn("unknown config key ignored", "key", key.String(), "file", path)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that configured values are usable.
func (c *Config) Validate() error {
	if c.Store.Path == "" {
		return fmt.Errorf("store.path must not be empty")
	}
	if !task.ValidDate(c.Tasks.DefaultDueDate) {
		return fmt.Errorf("tasks.default_due_date %q is not a YYYY-MM-DD date", c.Tasks.DefaultDueDate)
	}
	return nil
}
