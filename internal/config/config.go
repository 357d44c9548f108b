package config

import (
	"path/filepath"
	"strings"

	"bone-renamer/internal/preset"
	"bone-renamer/internal/skeleton"
)

const (
	// DefaultFileName is the configuration file looked up when none is given.
	DefaultFileName = "bone-renamer.yaml"
	// DefaultCachePath is the SQLite cache location when caching is enabled.
	DefaultCachePath = ".bone-renamer-cache.db"
)

// Config is the root of the configuration file.
type Config struct {
	Tables   []TableConfig  `yaml:"tables"`
	Strict   bool           `yaml:"strict,omitempty"`
	LogLevel string         `yaml:"log_level,omitempty"`
	Cache    CacheConfig    `yaml:"cache,omitempty"`
	Skeleton SkeletonConfig `yaml:"skeleton,omitempty"`
}

// TableConfig points at one preset table.
type TableConfig struct {
	Name   string        `yaml:"name,omitempty"`
	Path   string        `yaml:"path"`
	Layout preset.Layout `yaml:"layout,omitempty"`
}

// CacheConfig controls the parsed-table cache.
type CacheConfig struct {
	Enabled bool   `yaml:"enabled,omitempty"`
	Path    string `yaml:"path,omitempty"`
}

// SkeletonConfig locates node names inside skeleton documents.
type SkeletonConfig struct {
	Nodes   string `yaml:"nodes,omitempty"`
	NameKey string `yaml:"name_key,omitempty"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	cfg := &Config{
		Tables: []TableConfig{
			{Name: "bones", Path: "bones_dictionary.csv"},
			{Name: "fingers", Path: "bones_fingers_dictionary.csv"},
		},
	}
	applyDefaults(cfg)

	return cfg
}

// Sources returns the tables as loader sources, in configuration order.
func (c *Config) Sources() []preset.Source {
	sources := make([]preset.Source, 0, len(c.Tables))
	for _, t := range c.Tables {
		sources = append(sources, preset.Source{Name: t.Name, Path: t.Path, Layout: t.Layout})
	}

	return sources
}

// DocumentOptions returns the skeleton document options.
func (c *Config) DocumentOptions() skeleton.DocumentOptions {
	return skeleton.DocumentOptions{Nodes: c.Skeleton.Nodes, NameKey: c.Skeleton.NameKey}
}

// ResolvePaths makes relative table and cache paths relative to dir.
func (c *Config) ResolvePaths(dir string) {
	if dir == "" {
		return
	}

	for i := range c.Tables {
		c.Tables[i].Path = resolve(dir, c.Tables[i].Path)
	}

	c.Cache.Path = resolve(dir, c.Cache.Path)
}

func resolve(dir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}

	return filepath.Join(dir, path)
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(cfg *Config) {
	for i := range cfg.Tables {
		t := &cfg.Tables[i]
		t.Name = strings.TrimSpace(t.Name)

		if t.Name == "" && t.Path != "" {
			base := filepath.Base(t.Path)
			t.Name = strings.TrimSuffix(base, filepath.Ext(base))
		}
	}

	if cfg.Cache.Path == "" {
		cfg.Cache.Path = DefaultCachePath
	}

	if cfg.Skeleton.Nodes == "" {
		cfg.Skeleton.Nodes = skeleton.DefaultNodesSelector
	}

	if cfg.Skeleton.NameKey == "" {
		cfg.Skeleton.NameKey = skeleton.DefaultNameKey
	}
}
