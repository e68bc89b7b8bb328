package config

import "flag"

var (
	flagConfig  = flag.String("config", "", "Path to config file")
	flagDebug   = flag.Bool("debug", false, "Enable debug logging and disable the page cache")
	flagProfile = flag.String("profile", "", "Page cache profile (default, smaller, bigger, max, disable)")
	flagBackend = flag.String("backend", "", "Backend websocket URL")
	flagContent = flag.String("content", "", "Path to a YAML content map")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the non-flag command-line arguments.
func Args() []string {
	return flag.Args()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
		cfg.UI.Debug = true
	}
	if *flagProfile != "" {
		cfg.UI.CacheProfile = *flagProfile
	}
	if *flagBackend != "" {
		cfg.Backend.URL = *flagBackend
	}
	if *flagContent != "" {
		cfg.Assets.ContentFile = *flagContent
	}
}
