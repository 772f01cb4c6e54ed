package config

import "time"

// Config holds runtime settings for the phono CLI.
//
// Fields:
//   - BaseURL: root of the marketplace REST API.
//   - RequestTimeout: per-request HTTP timeout.
//   - DataDir: directory for the local sqlite database.
type Config struct {
	BaseURL        string
	DataDir        string
	RequestTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = "http://127.0.0.1:8080"
	c.DataDir = "."
	c.RequestTimeout = 15 * time.Second
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
