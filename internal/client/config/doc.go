// Package config loads runtime configuration for the chatlite CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the chat API
//	-n string   channel joined on startup
//	-i int      presence heartbeat interval (seconds)
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be either
// strings like "10s" or integer nanoseconds:
//
//	{
//	  "server_base_url": "http://127.0.0.1:8080",
//	  "default_channel": "general",
//	  "heartbeat_interval": "10s"
//	}
//
// Primary API
//
//   - type Config                     — holds ServerBaseURL, DefaultChannel and HeartbeatInterval
//   - func LoadConfig() *Config       — builds Config by applying defaults, JSON, then flags
//   - func (*Config) LoadDefaults()   — sets sensible defaults
//
// Note: This package does not read environment variables directly; use the
// JSON file or flags to configure values.
package config
