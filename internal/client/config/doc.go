// Package config loads runtime configuration for the simkeeper CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via flags: -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-b string   storage backend: sqlite, bolt, redis, memory
//	-d string   data directory for file backends
//	-r string   redis address
//	-l string   log level
//
// # JSON schema
//
// Durations use timex.Duration, so values can be either strings like "3s"
// or integer nanoseconds. Every key is optional:
//
//	{
//	  "backend": "bolt",
//	  "data_dir": "/var/lib/simkeeper",
//	  "redis_addr": "127.0.0.1:6379",
//	  "redis_db": 0,
//	  "redis_timeout": "3s",
//	  "redis_namespace": "simkeeper:",
//	  "log_level": "info",
//	  "log_format": "json"
//	}
//
// Note: This package does not read environment variables directly; use the
// JSON file or flags to configure values.
package config
