package kv

import (
	"context"

	"github.com/dmitrijs2005/simkeeper/internal/logging"
)

// previewLen caps how many bytes of a value are echoed into debug logs.
const previewLen = 64

// LoggingRepository logs every call of the wrapped repository at debug
// level, and failures at warn level.
type LoggingRepository struct {
	log  logging.Logger
	repo Repository
}

func NewLoggingRepository(log logging.Logger, repo Repository) *LoggingRepository {
	return &LoggingRepository{log: log.With("component", "kv"), repo: repo}
}

func (r *LoggingRepository) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := r.repo.Get(ctx, key)
	r.log.Debug(ctx, "get", "key", key, "found", v != nil, "len", len(v))
	r.logErr(ctx, "get", key, err)
	return v, err
}

func (r *LoggingRepository) Set(ctx context.Context, key string, value []byte) error {
	r.log.Debug(ctx, "set", "key", key, "len", len(value), "preview", string(truncate(value)))
	err := r.repo.Set(ctx, key, value)
	r.logErr(ctx, "set", key, err)
	return err
}

func (r *LoggingRepository) Delete(ctx context.Context, key string) error {
	r.log.Debug(ctx, "delete", "key", key)
	err := r.repo.Delete(ctx, key)
	r.logErr(ctx, "delete", key, err)
	return err
}

func (r *LoggingRepository) Keys(ctx context.Context, prefix string) ([]string, error) {
	keys, err := r.repo.Keys(ctx, prefix)
	r.log.Debug(ctx, "keys", "prefix", prefix, "count", len(keys))
	r.logErr(ctx, "keys", prefix, err)
	return keys, err
}

func (r *LoggingRepository) Clear(ctx context.Context) error {
	r.log.Debug(ctx, "clear")
	err := r.repo.Clear(ctx)
	r.logErr(ctx, "clear", "", err)
	return err
}

func (r *LoggingRepository) Close() error {
	return r.repo.Close()
}

func (r *LoggingRepository) logErr(ctx context.Context, op, key string, err error) {
	if err != nil {
		r.log.Warn(ctx, "kv operation failed", "op", op, "key", key, "error", err)
	}
}

func truncate(v []byte) []byte {
	if len(v) <= previewLen {
		return v
	}
	return v[:previewLen]
}
