package kv

import (
	"context"
)

// Repository is a string-keyed byte store. It is the only thing the storage
// layer needs from a backing medium.
//
// Get returns (nil, nil) when the key does not exist. Keys are independent:
// implementations give no ordering or atomicity guarantees across keys.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	// Keys lists every stored key starting with prefix, in ascending order.
	Keys(ctx context.Context, prefix string) ([]string, error)
	// Clear removes every key owned by the repository.
	Clear(ctx context.Context) error
	Close() error
}
