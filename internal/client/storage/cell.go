package storage

import (
	"context"
	"strings"
	"sync"
)

// Cell mirrors the value stored under one key.
type Cell[T any] struct {
	key     string
	adapter *Adapter
	def     func() T

	mu    sync.RWMutex
	value T
}

// NewCell creates a cell for key and hydrates it from the adapter. def
// supplies the value used when nothing (usable) is stored.
func NewCell[T any](ctx context.Context, a *Adapter, key string, def func() T) *Cell[T] {
	return &Cell[T]{
		key:     key,
		adapter: a,
		def:     def,
		value:   Load(ctx, a, key, def()),
	}
}

func (c *Cell[T]) Key() string {
	return c.key
}

// Get returns the mirrored value. Reference types are shared with the
// cell and must not be modified in place.
func (c *Cell[T]) Get() T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.value
}

// Set writes v to the backing store and, once that succeeded, to the
// mirror. On error the mirror keeps its previous value.
func (c *Cell[T]) Set(ctx context.Context, v T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.adapter.Set(ctx, c.key, v); err != nil {
		return err
	}
	c.value = v
	return nil
}

// Clear removes the backing key and resets the mirror to the default.
func (c *Cell[T]) Clear(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.adapter.Remove(ctx, c.key)
	c.value = c.def()
}

// Family hands out one Cell per id under a common key prefix.
type Family[T any] struct {
	prefix  string
	adapter *Adapter
	def     func() T

	mu    sync.Mutex
	cells map[string]*Cell[T]
}

func NewFamily[T any](a *Adapter, prefix string, def func() T) *Family[T] {
	return &Family[T]{
		prefix:  prefix,
		adapter: a,
		def:     def,
		cells:   make(map[string]*Cell[T]),
	}
}

// Key returns the backing key for id.
func (f *Family[T]) Key(id string) string {
	return f.prefix + id
}

// Cell returns the cell for id, creating and hydrating it on first use.
// Repeated calls return the same handle until Release.
func (f *Family[T]) Cell(ctx context.Context, id string) *Cell[T] {
	f.mu.Lock()
	c, ok := f.cells[id]
	f.mu.Unlock()
	if ok {
		return c
	}

	fresh := NewCell(ctx, f.adapter, f.Key(id), f.def)

	f.mu.Lock()
	defer f.mu.Unlock()
	if c, ok := f.cells[id]; ok {
		return c
	}
	f.cells[id] = fresh
	return fresh
}

// Release drops the cached handle for id. The stored value is untouched;
// the next Cell call re-hydrates it.
func (f *Family[T]) Release(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.cells, id)
}

// Len reports how many handles are cached.
func (f *Family[T]) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.cells)
}

// PersistedIDs lists the ids that have a key in the backing store,
// whether or not a handle is cached.
func (f *Family[T]) PersistedIDs(ctx context.Context) ([]string, error) {
	keys, err := f.adapter.Keys(ctx, f.prefix)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(keys))
	for _, k := range keys {
		ids = append(ids, strings.TrimPrefix(k, f.prefix))
	}
	return ids, nil
}
