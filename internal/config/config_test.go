package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/Faultbox/assetview/internal/keepalive"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Test UI defaults
	if cfg.UI.CacheProfile != "default" {
		t.Errorf("expected cache profile 'default', got %s", cfg.UI.CacheProfile)
	}
	if cfg.UI.Debug {
		t.Error("expected debug to be false by default")
	}

	// Test backend defaults
	if cfg.Backend.URL != "" {
		t.Errorf("expected no backend URL, got %s", cfg.Backend.URL)
	}
	if cfg.Backend.CallTimeout != 10*time.Second {
		t.Errorf("expected timeout 10s, got %v", cfg.Backend.CallTimeout)
	}

	// Test search and asset defaults
	if cfg.Search.Limit != 100 {
		t.Errorf("expected search limit 100, got %d", cfg.Search.Limit)
	}
	if cfg.Assets.DecodedCacheSize != 256 {
		t.Errorf("expected decoded cache size 256, got %d", cfg.Assets.DecodedCacheSize)
	}
	if cfg.Metrics.Path != "/metrics" {
		t.Errorf("expected metrics path /metrics, got %s", cfg.Metrics.Path)
	}

	// Test logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
ui:
  cache_profile: bigger
  debug: true

backend:
  url: "ws://127.0.0.1:9230/bridge"
  call_timeout: 3s

search:
  index: "content"
  limit: 25

assets:
  content_file: "content.yaml"
  decoded_cache_size: 64

metrics:
  listen: ":9100"

logging:
  level: "debug"
  log_file: "assetview.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Profile() != keepalive.ProfileBigger {
		t.Errorf("expected profile bigger, got %s", cfg.Profile())
	}
	if !cfg.UI.Debug {
		t.Error("expected debug to be true")
	}
	if cfg.Backend.URL != "ws://127.0.0.1:9230/bridge" {
		t.Errorf("unexpected backend url %s", cfg.Backend.URL)
	}
	if cfg.Backend.CallTimeout != 3*time.Second {
		t.Errorf("expected timeout 3s, got %v", cfg.Backend.CallTimeout)
	}
	if cfg.Search.Index != "content" || cfg.Search.Limit != 25 {
		t.Errorf("unexpected search config %+v", cfg.Search)
	}
	if cfg.Assets.ContentFile != "content.yaml" || cfg.Assets.DecodedCacheSize != 64 {
		t.Errorf("unexpected assets config %+v", cfg.Assets)
	}
	if cfg.Metrics.Listen != ":9100" {
		t.Errorf("expected metrics listen :9100, got %s", cfg.Metrics.Listen)
	}
	// Unset keys keep their defaults.
	if cfg.Metrics.Path != "/metrics" {
		t.Errorf("expected default metrics path, got %s", cfg.Metrics.Path)
	}
	if cfg.Logging.LogFile != "assetview.log" {
		t.Errorf("expected log file 'assetview.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
search:
  limit: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	err := loadFromFile(cfg, configPath)
	if err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	err := loadFromFile(cfg, "/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"unknown profile", func(c *Config) { c.UI.CacheProfile = "huge" }},
		{"zero decoded cache", func(c *Config) { c.Assets.DecodedCacheSize = 0 }},
		{"zero timeout", func(c *Config) { c.Backend.CallTimeout = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestProfileIsCaseInsensitive(t *testing.T) {
	cfg := Default()
	cfg.UI.CacheProfile = " Smaller "
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Profile() != keepalive.ProfileSmaller {
		t.Errorf("expected profile smaller, got %s", cfg.Profile())
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	// Actual path depends on OS
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)
	os.Chdir(tmpDir)

	// No config file exists - should return empty
	path := findConfigFile()
	if path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("search:\n  limit: 5\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	path = findConfigFile()
	if path == "" {
		t.Error("expected to find config.yaml in current directory")
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.UI.CacheProfile = "max"
	cfg.Backend.CallTimeout = 2 * time.Second
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("failed to reload config: %v", err)
	}
	if loaded.Profile() != keepalive.ProfileMax {
		t.Errorf("expected profile max, got %s", loaded.Profile())
	}
	if loaded.Backend.CallTimeout != 2*time.Second {
		t.Errorf("expected timeout 2s, got %v", loaded.Backend.CallTimeout)
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name: "debug flag",
			setup: func() {
				*flagDebug = true
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
				if !cfg.UI.Debug {
					t.Error("expected page cache bypass with debug flag")
				}
			},
			teardown: func() {
				*flagDebug = false
			},
		},
		{
			name: "profile flag",
			setup: func() {
				*flagProfile = "disable"
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.UI.CacheProfile != "disable" {
					t.Errorf("expected profile disable, got %s", cfg.UI.CacheProfile)
				}
			},
			teardown: func() {
				*flagProfile = ""
			},
		},
		{
			name: "backend flag",
			setup: func() {
				*flagBackend = "ws://localhost:7000/ws"
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Backend.URL != "ws://localhost:7000/ws" {
					t.Errorf("expected backend ws://localhost:7000/ws, got %s", cfg.Backend.URL)
				}
			},
			teardown: func() {
				*flagBackend = ""
			},
		},
		{
			name: "content flag",
			setup: func() {
				*flagContent = "assets.yaml"
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Assets.ContentFile != "assets.yaml" {
					t.Errorf("expected content file assets.yaml, got %s", cfg.Assets.ContentFile)
				}
			},
			teardown: func() {
				*flagContent = ""
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)

			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
ui:
  cache_profile: bigger
search:
  limit: 10
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagProfile = "smaller"
	defer func() {
		*flagConfig = ""
		*flagProfile = ""
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Profile should be from flag, not file
	if cfg.Profile() != keepalive.ProfileSmaller {
		t.Errorf("expected profile smaller from flag, got %s", cfg.Profile())
	}

	// Limit should be from file since no flag override
	if cfg.Search.Limit != 10 {
		t.Errorf("expected limit 10 from file, got %d", cfg.Search.Limit)
	}
}

func TestLoadRejectsInvalidProfile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("ui:\n  cache_profile: enormous\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	if _, err := Load(); err == nil {
		t.Error("expected error for unknown cache profile")
	}
}

func TestSaveWritesLoadedFileWithoutFlagOverrides(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))
	configPath := filepath.Join(tmpDir, "a.yaml")
	yamlContent := `
ui:
  cache_profile: bigger
search:
  limit: 10
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagDebug = true
	*flagBackend = "ws://localhost:7000/ws"
	defer func() {
		*flagConfig = ""
		*flagDebug = false
		*flagBackend = ""
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Path() != configPath {
		t.Errorf("expected path %s, got %s", configPath, cfg.Path())
	}

	cfg.UI.CacheProfile = "max"
	if err := cfg.Save(); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	saved := Default()
	if err := loadFromFile(saved, configPath); err != nil {
		t.Fatalf("failed to reload config: %v", err)
	}
	if saved.Profile() != keepalive.ProfileMax {
		t.Errorf("expected saved profile max, got %s", saved.Profile())
	}
	if saved.Search.Limit != 10 {
		t.Errorf("expected limit 10 preserved, got %d", saved.Search.Limit)
	}
	if saved.UI.Debug || saved.Logging.Level != "info" {
		t.Errorf("debug flag leaked into file: debug=%v level=%s", saved.UI.Debug, saved.Logging.Level)
	}
	if saved.Backend.URL != "" {
		t.Errorf("backend flag leaked into file: %s", saved.Backend.URL)
	}

	// The in-memory config still carries the flags.
	if !cfg.UI.Debug || cfg.Backend.URL != "ws://localhost:7000/ws" {
		t.Error("save should not change the running config")
	}

	if runtime.GOOS == "linux" {
		if _, err := os.Stat(filepath.Join(ConfigDir(), "config.yaml")); !os.IsNotExist(err) {
			t.Errorf("expected no file in the config dir, stat err: %v", err)
		}
	}
}

func TestSaveWithoutFileUsesConfigDir(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG_CONFIG_HOME only applies on linux")
	}
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := Default()
	cfg.UI.CacheProfile = "smaller"
	if err := cfg.Save(); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	want := filepath.Join(ConfigDir(), "config.yaml")
	if cfg.Path() != want {
		t.Errorf("expected path %s, got %s", want, cfg.Path())
	}
	saved := Default()
	if err := loadFromFile(saved, want); err != nil {
		t.Fatalf("failed to reload config: %v", err)
	}
	if saved.Profile() != keepalive.ProfileSmaller {
		t.Errorf("expected profile smaller, got %s", saved.Profile())
	}
}
