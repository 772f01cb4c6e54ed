package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/phonomarket/phono/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. The timeout is
// expressed in whole seconds; it is converted to a time.Duration when copied
// into the runtime Config.
type JsonConfig struct {
	BaseURL        string `json:"base_url"`
	DataDir        string `json:"data_dir"`
	RequestTimeout int    `json:"request_timeout"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// Lookup order for the JSON file path:
//  1. Command-line flags (-c or -config) via flagx.JsonConfigFlags().
//  2. If empty, no JSON is loaded and the function returns.
//
// Behavior:
//   - Reads and unmarshals the JSON into JsonConfig.
//   - Copies known fields into the provided Config.
//   - Panics on read or unmarshal errors (caller should recover if desired).
//
// Intended usage is: defaults -> parseJson -> parseFlags, where later stages
// override earlier ones.
func parseJson(cfg *Config) {
	// Resolve file path from flags.
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

	cfg.BaseURL = jc.BaseURL
	cfg.DataDir = jc.DataDir
	cfg.RequestTimeout = time.Duration(jc.RequestTimeout) * time.Second
}
