package config

import "time"

// Config holds runtime settings for the storefront CLI.
//
// Fields:
//   - BaseURL: base URL of the storefront backend HTTP API.
//   - RequestTimeout: per-request timeout for API calls.
//   - DatabasePath: path of the local SQLite database holding session and
//     cart state.
type Config struct {
	BaseURL        string
	RequestTimeout time.Duration
	DatabasePath   string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = "http://127.0.0.1:8080"
	c.RequestTimeout = 10 * time.Second
	c.DatabasePath = "storefront.db"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
