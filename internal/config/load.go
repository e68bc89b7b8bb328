package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/assetview/internal/keepalive"
)

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	// Start with defaults
	cfg := Default()

	// Try to load from file (explicit path takes priority)
	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
		cfg.path = configPath
	}
	cfg.file = cfg.snapshot()

	// Apply CLI flags (highest priority)
	applyFlags(cfg)
	cfg.base = cfg.snapshot()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./config.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "AssetView")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "AssetView")
	default: // Linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "assetview")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "assetview")
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// Validate checks values that cannot be fixed up silently.
func (c *Config) Validate() error {
	if _, err := keepalive.ParseProfile(c.UI.CacheProfile); err != nil {
		return fmt.Errorf("ui.cache_profile: %w", err)
	}
	if c.Assets.DecodedCacheSize <= 0 {
		return errors.New("assets.decoded_cache_size must be positive")
	}
	if c.Backend.CallTimeout <= 0 {
		return errors.New("backend.call_timeout must be positive")
	}
	return nil
}

// Profile returns the validated page cache profile.
func (c *Config) Profile() keepalive.Profile {
	p, err := keepalive.ParseProfile(c.UI.CacheProfile)
	if err != nil {
		return keepalive.ProfileDefault
	}
	return p
}
