package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/powerdown/wikipost/internal/flagx"
	"github.com/powerdown/wikipost/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
type JsonConfig struct {
	EndpointAddr    string         `json:"endpoint_addr"`
	DatabasePath    string         `json:"database_path"`
	S3RootUser      string         `json:"s3_root_user"`
	S3RootPassword  string         `json:"s3_root_password"`
	S3Bucket        string         `json:"s3_bucket"`
	S3Region        string         `json:"s3_region"`
	S3BaseEndpoint  string         `json:"s3_base_endpoint"`
	GrantTTL        timex.Duration `json:"grant_ttl"`
	MaxFilesPerPost int            `json:"max_files_per_post"`
}

// parseJson overlays Config with values from the JSON file named via the
// -c or -config flags, when one is given.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.EndpointAddr != "" {
		cfg.EndpointAddr = jc.EndpointAddr
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.S3RootUser != "" {
		cfg.S3RootUser = jc.S3RootUser
	}
	if jc.S3RootPassword != "" {
		cfg.S3RootPassword = jc.S3RootPassword
	}
	if jc.S3Bucket != "" {
		cfg.S3Bucket = jc.S3Bucket
	}
	if jc.S3Region != "" {
		cfg.S3Region = jc.S3Region
	}
	if jc.S3BaseEndpoint != "" {
		cfg.S3BaseEndpoint = jc.S3BaseEndpoint
	}
	if jc.GrantTTL.Duration != 0 {
		cfg.GrantTTL = time.Duration(jc.GrantTTL.Duration)
	}
	if jc.MaxFilesPerPost != 0 {
		cfg.MaxFilesPerPost = jc.MaxFilesPerPost
	}
}
