package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Path returns the file the config was loaded from, or "" if none.
func (c *Config) Path() string {
	return c.path
}

// Save writes the config back to the file it was loaded from, or to the
// user's config directory when it came from defaults only.
func (c *Config) Save() error {
	path := c.path
	if path == "" {
		path = filepath.Join(ConfigDir(), "config.yaml")
	}
	if err := c.SaveTo(path); err != nil {
		return err
	}
	c.path = path
	return nil
}

// SaveTo writes the config to a specific path. Values set only by
// command-line flags are written as they were before the flags applied.
func (c *Config) SaveTo(path string) error {
	// Create parent directory if needed
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c.persisted())
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

func (c *Config) snapshot() *Config {
	cp := *c
	cp.file, cp.base = nil, nil
	return &cp
}

// persisted returns c with every flag-overridable field that has not
// changed since Load reset to its file value.
func (c *Config) persisted() *Config {
	out := c.snapshot()
	if c.file == nil || c.base == nil {
		return out
	}
	keep(&out.UI.CacheProfile, c.base.UI.CacheProfile, c.file.UI.CacheProfile)
	keep(&out.UI.Debug, c.base.UI.Debug, c.file.UI.Debug)
	keep(&out.Backend.URL, c.base.Backend.URL, c.file.Backend.URL)
	keep(&out.Assets.ContentFile, c.base.Assets.ContentFile, c.file.Assets.ContentFile)
	keep(&out.Logging.Level, c.base.Logging.Level, c.file.Logging.Level)
	return out
}

func keep[T comparable](field *T, loaded, file T) {
	if *field == loaded {
		*field = file
	}
}
