// Package config handles configuration for the development server,
// including defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the wikipost development server.
//
// Fields:
//   - EndpointAddr: bind address for the HTTP endpoint.
//   - DatabasePath: sqlite file holding post metadata.
//   - S3RootUser / S3RootPassword: credentials for the S3-compatible backend.
//   - S3Bucket / S3Region / S3BaseEndpoint: object storage settings.
//   - GrantTTL: how long an issued upload grant stays valid.
//   - MaxFilesPerPost: upper bound on grants per step-1 request.
type Config struct {
	EndpointAddr    string
	DatabasePath    string
	S3RootUser      string
	S3RootPassword  string
	S3Bucket        string
	S3Region        string
	S3BaseEndpoint  string
	GrantTTL        time.Duration
	MaxFilesPerPost int
}

// LoadDefaults populates Config with development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.EndpointAddr = ":8080"
	c.DatabasePath = "wiki.db"
	c.S3RootUser = "admin"
	c.S3RootPassword = "secretpassword"
	c.S3Bucket = "wiki-media"
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = "http://127.0.0.1:9000/"
	c.GrantTTL = 15 * time.Minute
	c.MaxFilesPerPost = 25
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
