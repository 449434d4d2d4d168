package config

import (
	"fmt"
	"os"
	"time"

	"golang.org/x/term"
)

// Supported storage backends.
const (
	BackendSQLite = "sqlite"
	BackendBolt   = "bolt"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Config holds runtime settings for the simkeeper CLI.
//
// Fields:
//   - Backend: which medium persists records (sqlite, bolt, redis, memory).
//   - DataDir: directory holding the sqlite/bolt files.
//   - RedisAddr, RedisDB, RedisTimeout: connection settings for the redis backend.
//   - RedisNamespace: prefix put in front of every redis key.
//   - LogLevel, LogFormat: see logging.New.
type Config struct {
	Backend        string
	DataDir        string
	RedisAddr      string
	RedisDB        int
	RedisTimeout   time.Duration
	RedisNamespace string
	LogLevel       string
	LogFormat      string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.Backend = BackendSQLite
	c.DataDir = "./data"
	c.RedisAddr = "127.0.0.1:6379"
	c.RedisDB = 0
	c.RedisTimeout = 3 * time.Second
	c.RedisNamespace = "simkeeper:"
	c.LogLevel = "warn"
	c.LogFormat = defaultLogFormat()
}

// Validate rejects settings the bootstrap cannot act on.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendSQLite, BackendBolt:
		if c.DataDir == "" {
			return fmt.Errorf("data dir is required for the %s backend", c.Backend)
		}
	case BackendRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("redis address is required for the redis backend")
		}
	case BackendMemory:
	default:
		return fmt.Errorf("unknown backend %q", c.Backend)
	}
	return nil
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	args := os.Args[1:]

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, args)
	parseFlags(cfg, args)
	return cfg
}

// defaultLogFormat picks coloured console output for interactive sessions
// and plain text otherwise.
func defaultLogFormat() string {
	if term.IsTerminal(int(os.Stderr.Fd())) {
		return "console"
	}
	return "text"
}
