// Package kv provides the backing media the record store persists into.
//
// # Overview
//
// Repository is a minimal get/set/delete contract over string keys and byte
// values. Implementations:
//
//   - SQLiteRepository : a single kv_store table in a local SQLite file
//     (modernc.org/sqlite, schema applied by goose migrations). Default.
//   - BoltRepository   : one bucket in a bbolt file.
//   - RedisRepository  : keys under a namespace prefix on a Redis server.
//   - MemoryRepository : process memory; used by tests and the "memory"
//     backend.
//   - LoggingRepository: decorator that logs every call at debug level.
//
// # Missing keys
//
// Get returns (nil, nil) for a key that does not exist, so callers can tell
// "absent" apart from a failing medium without matching sentinel errors.
//
// Typical Usage
//
//	repo := kv.NewSQLiteRepository(db)
//	_ = repo.Set(ctx, "sim-ids", []byte(`[]`))
//	v, _ := repo.Get(ctx, "sim-ids")
//	keys, _ := repo.Keys(ctx, "metadata-")
package kv
