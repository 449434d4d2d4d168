package kv

import (
	"bytes"
	"context"
	"sort"
	"strings"
	"sync"
)

// MemoryRepository keeps values in process memory. Nothing survives a
// restart; it backs the "memory" backend and tests.
type MemoryRepository struct {
	mu    sync.RWMutex
	items map[string][]byte

	// CallCount records how often each method was invoked.
	CallCount struct {
		Get    int
		Set    int
		Delete int
		Keys   int
		Clear  int
	}
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{items: make(map[string][]byte)}
}

func (r *MemoryRepository) Get(ctx context.Context, key string) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.CallCount.Get++

	v, ok := r.items[key]
	if !ok {
		return nil, nil
	}
	return bytes.Clone(v), nil
}

func (r *MemoryRepository) Set(ctx context.Context, key string, value []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.CallCount.Set++

	v := bytes.Clone(value)
	if v == nil {
		v = []byte{}
	}
	r.items[key] = v
	return nil
}

func (r *MemoryRepository) Delete(ctx context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.CallCount.Delete++

	delete(r.items, key)
	return nil
}

func (r *MemoryRepository) Keys(ctx context.Context, prefix string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.CallCount.Keys++

	keys := make([]string, 0)
	for k := range r.items {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (r *MemoryRepository) Clear(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.CallCount.Clear++

	r.items = make(map[string][]byte)
	return nil
}

func (r *MemoryRepository) Close() error {
	return nil
}

// Len reports the number of stored keys.
func (r *MemoryRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}
