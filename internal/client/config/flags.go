package config

import (
	"flag"

	"github.com/dmitrijs2005/simkeeper/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-b string   storage backend: sqlite, bolt, redis or memory
//	-d string   data directory for the sqlite and bolt backends
//	-r string   redis address (host:port)
//	-l string   log level: debug, info, warn or error
//
// args are filtered with flagx.FilterArgs so flags owned by other parsers
// (-c, -config) do not trip this flag set.
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-b", "-d", "-r", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.Backend, "b", cfg.Backend, "storage backend (sqlite, bolt, redis, memory)")
	fs.StringVar(&cfg.DataDir, "d", cfg.DataDir, "data directory")
	fs.StringVar(&cfg.RedisAddr, "r", cfg.RedisAddr, "redis address")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
