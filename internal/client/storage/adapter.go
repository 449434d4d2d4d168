package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/simkeeper/internal/client/repositories/kv"
	"github.com/dmitrijs2005/simkeeper/internal/common"
	"github.com/dmitrijs2005/simkeeper/internal/logging"
)

// Adapter stores JSON-encoded values in a kv.Repository.
type Adapter struct {
	repo kv.Repository
	log  logging.Logger
}

func NewAdapter(repo kv.Repository, log logging.Logger) *Adapter {
	return &Adapter{repo: repo, log: log.With("component", "storage")}
}

// Get decodes the value under key into dst and reports whether it did.
// Missing keys, read failures and undecodable values all return false;
// the latter two are logged.
func (a *Adapter) Get(ctx context.Context, key string, dst any) bool {
	raw, err := a.repo.Get(ctx, key)
	if err != nil {
		a.log.Warn(ctx, "failed to read key, using default", "key", key, "error", err)
		return false
	}
	if raw == nil {
		return false
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		a.log.Warn(ctx, "ignoring stored value",
			"key", key, "error", fmt.Errorf("%w: %v", common.ErrorCorrupt, err))
		return false
	}
	return true
}

// Validator is implemented by records that can decode cleanly and still be
// unusable, e.g. a Sim without an id.
type Validator interface {
	Validate() error
}

// Load returns the decoded value under key, or def when there is none.
// A value implementing Validator that fails validation counts as corrupt.
func Load[T any](ctx context.Context, a *Adapter, key string, def T) T {
	var v T
	if !a.Get(ctx, key, &v) {
		return def
	}
	if vv, ok := any(v).(Validator); ok {
		if err := vv.Validate(); err != nil {
			a.log.Warn(ctx, "ignoring stored value",
				"key", key, "error", fmt.Errorf("%w: %v", common.ErrorCorrupt, err))
			return def
		}
	}
	return v
}

// Set encodes v and writes it under key.
func (a *Adapter) Set(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return a.repo.Set(ctx, key, raw)
}

// Remove deletes key. Failures are logged, not returned.
func (a *Adapter) Remove(ctx context.Context, key string) {
	if err := a.repo.Delete(ctx, key); err != nil {
		a.log.Warn(ctx, "failed to remove key", "key", key, "error", err)
	}
}

// Keys lists stored keys starting with prefix.
func (a *Adapter) Keys(ctx context.Context, prefix string) ([]string, error) {
	return a.repo.Keys(ctx, prefix)
}
