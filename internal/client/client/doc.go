// Package client bootstraps the local backing store for simkeeper.
//
// Open inspects config.Config.Backend and returns a ready kv.Repository:
//
//   - sqlite: <DataDir>/simkeeper.db, schema created by embedded goose
//     migrations (RunMigrations)
//   - bolt:   <DataDir>/simkeeper.bolt
//   - redis:  RedisAddr/RedisDB, keys prefixed with RedisNamespace
//   - memory: process memory, nothing persists
//
// Every medium is wrapped in kv.LoggingRepository.
//
// # Errors
//
// ErrUnknownBackend for invalid configuration and ErrUnavailable when the
// redis server cannot be reached. Match them with errors.Is.
package client
