package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/powerdown/wikipost/internal/flagx"
	"github.com/powerdown/wikipost/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify the timeout either as a string like
// "30s" or as integer nanoseconds.
type JsonConfig struct {
	ServerBaseURL     string         `json:"server_base_url"`
	HTTPTimeout       timex.Duration `json:"http_timeout"`
	ImportConcurrency int            `json:"import_concurrency"`
}

// parseJson overlays Config with values loaded from a JSON file named via
// the -c or -config flags. With no such flag, nothing is loaded. Intended
// usage is: defaults -> parseJson -> parseFlags, where later stages
// override earlier ones.
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

	if jc.ServerBaseURL != "" {
		cfg.ServerBaseURL = jc.ServerBaseURL
	}
	if jc.HTTPTimeout.Duration != 0 {
		cfg.HTTPTimeout = time.Duration(jc.HTTPTimeout.Duration)
	}
	if jc.ImportConcurrency != 0 {
		cfg.ImportConcurrency = jc.ImportConcurrency
	}
}
