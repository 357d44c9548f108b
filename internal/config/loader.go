package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"gopkg.in/yaml.v3"
)

// LoadFile loads and parses a YAML configuration file from fs. Relative
// table paths are resolved against the directory holding the file.
func LoadFile(fs billy.Filesystem, path string) (*Config, error) {
	data, err := util.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
	}

	cfg.ResolvePaths(filepath.Dir(path))

	return cfg, nil
}

// LoadOptional loads path like LoadFile but returns DefaultConfig when the
// file does not exist.
func LoadOptional(fs billy.Filesystem, path string) (*Config, error) {
	cfg, err := LoadFile(fs, path)
	if err != nil && errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}

	return cfg, err
}

// Parse parses YAML data into a Config.
func Parse(data []byte) (*Config, error) {
	var cfg Config

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	if len(cfg.Tables) == 0 {
		cfg.Tables = DefaultConfig().Tables
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that every table has a path and a unique name.
func (c *Config) Validate() error {
	seen := make(map[string]bool, len(c.Tables))

	for i, t := range c.Tables {
		if t.Path == "" {
			return fmt.Errorf("table %d: path is required", i)
		}

		if seen[t.Name] {
			return fmt.Errorf("table %d: duplicate table name '%s'", i, t.Name)
		}

		seen[t.Name] = true
	}

	return nil
}

// Marshal serializes a Config to YAML.
func Marshal(cfg *Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}
