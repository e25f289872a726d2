package config

import "time"

// Config holds runtime settings for the chatlite CLI.
//
// Fields:
//   - ServerBaseURL: base URL of the chat API (http://host:port).
//   - DefaultChannel: channel joined on startup.
//   - HeartbeatInterval: how often the client posts a presence heartbeat.
//
// Units: HeartbeatInterval is a time.Duration (e.g., 10*time.Second).
type Config struct {
	ServerBaseURL     string
	DefaultChannel    string
	HeartbeatInterval time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:8080"
	c.DefaultChannel = "general"
	c.HeartbeatInterval = 10 * time.Second
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
