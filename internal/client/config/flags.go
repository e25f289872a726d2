package config

import (
	"flag"
	"os"
	"time"

	"github.com/okunev/chatlite/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the chat API (default from Config)
//	-n string   channel joined on startup
//	-i int      presence heartbeat interval in seconds (default from Config)
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	// Filter args to include only those handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-n", "-i"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerBaseURL, "a", cfg.ServerBaseURL, "base URL of the chat API")
	fs.StringVar(&cfg.DefaultChannel, "n", cfg.DefaultChannel, "channel joined on startup")
	heartbeatInterval := fs.Int("i", int(cfg.HeartbeatInterval.Seconds()), "presence heartbeat interval (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.HeartbeatInterval = time.Duration(*heartbeatInterval) * time.Second
}
