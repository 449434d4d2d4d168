package kv

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/redis/go-redis/v9"
)

// scanBatch is the COUNT hint passed to SCAN.
const scanBatch = 100

// RedisRepository stores values as plain Redis strings under a namespace
// prefix, so several stores can share one database.
type RedisRepository struct {
	client    *redis.Client
	namespace string
}

// NewRedisRepository wraps an existing client. namespace may be empty.
func NewRedisRepository(client *redis.Client, namespace string) *RedisRepository {
	return &RedisRepository{client: client, namespace: namespace}
}

// DialRedis connects to addr/db and checks the connection with PING.
func DialRedis(ctx context.Context, opts *redis.Options, namespace string) (*RedisRepository, error) {
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis %s: %w", opts.Addr, err)
	}
	return NewRedisRepository(client, namespace), nil
}

func (r *RedisRepository) key(k string) string {
	return r.namespace + k
}

func (r *RedisRepository) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := r.client.Get(ctx, r.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get kv[%s]: %w", key, err)
	}
	return value, nil
}

func (r *RedisRepository) Set(ctx context.Context, key string, value []byte) error {
	if err := r.client.Set(ctx, r.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set kv[%s]: %w", key, err)
	}
	return nil
}

func (r *RedisRepository) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.key(key)).Err(); err != nil {
		return fmt.Errorf("failed to delete kv[%s]: %w", key, err)
	}
	return nil
}

func (r *RedisRepository) Keys(ctx context.Context, prefix string) ([]string, error) {
	raw, err := r.scan(ctx, r.key(prefix))
	if err != nil {
		return nil, fmt.Errorf("failed to list kv keys: %w", err)
	}

	return unnamespace(raw, r.namespace), nil
}

// unnamespace strips the namespace and returns the keys sorted and unique.
// SCAN may report a key more than once.
func unnamespace(raw []string, namespace string) []string {
	keys := make([]string, 0, len(raw))
	for _, k := range raw {
		keys = append(keys, strings.TrimPrefix(k, namespace))
	}
	sort.Strings(keys)
	return slices.Compact(keys)
}

func (r *RedisRepository) Clear(ctx context.Context) error {
	raw, err := r.scan(ctx, r.namespace)
	if err != nil {
		return fmt.Errorf("failed to clear kv: %w", err)
	}
	if len(raw) == 0 {
		return nil
	}
	if err := r.client.Del(ctx, raw...).Err(); err != nil {
		return fmt.Errorf("failed to clear kv: %w", err)
	}
	return nil
}

func (r *RedisRepository) Close() error {
	return r.client.Close()
}

// scan collects every key that starts with prefix.
func (r *RedisRepository) scan(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	iter := r.client.Scan(ctx, 0, escapeGlob(prefix)+"*", scanBatch).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	return keys, iter.Err()
}

// escapeGlob quotes the characters MATCH treats as pattern syntax.
func escapeGlob(s string) string {
	var b strings.Builder
	for _, c := range s {
		switch c {
		case '*', '?', '[', ']', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(c)
	}
	return b.String()
}
