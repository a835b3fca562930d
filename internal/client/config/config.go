// Package config handles configuration for the CLI client, including
// defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the wikipost CLI.
//
// Fields:
//   - ServerBaseURL: base URL of the wiki backend, e.g. http://127.0.0.1:8080.
//   - HTTPTimeout: per-request timeout for protocol calls. Object-storage
//     writes use no timeout; a stalled write stalls the submission.
//   - ImportConcurrency: how many archive documents are imported at once.
type Config struct {
	ServerBaseURL     string
	HTTPTimeout       time.Duration
	ImportConcurrency int
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:8080"
	c.HTTPTimeout = 30 * time.Second
	c.ImportConcurrency = 8
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
