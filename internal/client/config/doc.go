// Package config loads runtime configuration for the phono CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the marketplace API
//	-t int      request timeout (seconds)
//	-d string   directory for the local sqlite database
//
// # JSON schema
//
//	{
//	  "base_url": "https://api.phono.example",
//	  "request_timeout": 15,
//	  "data_dir": "/home/user/.phono"
//	}
//
// Primary API
//
//   - type Config                     — holds BaseURL, RequestTimeout and DataDir
//   - func LoadConfig() *Config       — builds Config by applying defaults, JSON, then flags
//   - func (*Config) LoadDefaults()   — sets sensible defaults
//
// Note: This package does not read environment variables directly; use the
// JSON file or flags to configure values.
package config
