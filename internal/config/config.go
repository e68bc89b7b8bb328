// Package config handles assetview configuration loading and management.
package config

import "time"

// Config holds all application settings.
type Config struct {
	UI      UIConfig      `yaml:"ui"`
	Backend BackendConfig `yaml:"backend"`
	Search  SearchConfig  `yaml:"search"`
	Assets  AssetsConfig  `yaml:"assets"`
	Metrics MetricsConfig `yaml:"metrics"`
	Logging LoggingConfig `yaml:"logging"`

	path string  // file Load read, if any
	file *Config // values before flag overrides
	base *Config // values after flag overrides
}

// UIConfig holds presentation settings.
type UIConfig struct {
	CacheProfile string `yaml:"cache_profile"` // default, smaller, bigger, max, disable
	Debug        bool   `yaml:"debug"`         // render pages without the page cache
}

// BackendConfig holds the native backend connection settings.
type BackendConfig struct {
	URL         string        `yaml:"url"` // empty runs without a backend
	CallTimeout time.Duration `yaml:"call_timeout"`
}

// SearchConfig holds search settings.
type SearchConfig struct {
	Index string `yaml:"index"`
	Limit int    `yaml:"limit"`
}

// AssetsConfig holds content map and decoded asset settings.
type AssetsConfig struct {
	ContentFile      string `yaml:"content_file"` // YAML list of asset records
	DecodedCacheSize int    `yaml:"decoded_cache_size"`
}

// MetricsConfig holds the Prometheus endpoint settings.
type MetricsConfig struct {
	Listen string `yaml:"listen"` // empty disables the endpoint
	Path   string `yaml:"path"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		UI: UIConfig{
			CacheProfile: "default",
			Debug:        false,
		},
		Backend: BackendConfig{
			URL:         "",
			CallTimeout: 10 * time.Second,
		},
		Search: SearchConfig{
			Index: "assets",
			Limit: 100,
		},
		Assets: AssetsConfig{
			ContentFile:      "",
			DecodedCacheSize: 256,
		},
		Metrics: MetricsConfig{
			Listen: "",
			Path:   "/metrics",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
