// Package cache implements a process-wide, write-through read cache for
// entities addressed by a natural key. The durable store remains the source
// of truth: every mutating operation performs its durable write first and
// touches the in-memory maps only after that write succeeds, so the cache is
// never ahead of storage and a failed write leaves it untouched.
//
// The cache is intended for small, fully-enumerable collections (users,
// spaces). Unbounded collections (notes, comments) are read straight from
// storage instead.
package cache

import (
	"context"
	"errors"
	"sync"
)

// ErrNotFound is returned by Remove and Update when the key is absent.
var ErrNotFound = errors.New("cache: entry not found")

// Store is the durable backing behind a Cache. Implementations wrap the
// repository layer for a single entity type.
type Store[V any] interface {
	// LoadAll returns every persisted entity; used by ReloadAll.
	LoadAll(ctx context.Context) ([]V, error)
	// Insert durably creates the entity.
	Insert(ctx context.Context, v V) error
	// Update durably replaces the entity identified by its natural key.
	Update(ctx context.Context, v V) error
	// Delete durably removes the entity.
	Delete(ctx context.Context, v V) error
}

// Cache is a generic in-memory mapping from a natural key K to an entity V,
// with an optional secondary index keyed by S. It is safe for concurrent
// use: lookups take a read lock, map mutations take the write lock, and both
// indexes are always updated inside one critical section so readers never
// observe one index updated and the other not.
//
// Update performs a read-modify-write without an optimistic-concurrency
// check; concurrent Update calls for the same key can lose one of the two
// mutations. That is acceptable for the rare, administrator-driven writes
// this cache serves and is covered as such in tests.
type Cache[K comparable, S comparable, V any] struct {
	store Store[V]
	keyOf func(V) K
	secOf func(V) (S, bool) // nil when no secondary index is maintained

	mu        sync.RWMutex
	primary   map[K]V
	secondary map[S]V
}

// New constructs a Cache over store. keyOf extracts the natural key from an
// entity. secOf extracts the secondary key; it may be nil, or return
// ok=false for entities that should not be secondary-indexed.
func New[K comparable, S comparable, V any](store Store[V], keyOf func(V) K, secOf func(V) (S, bool)) *Cache[K, S, V] {
	return &Cache[K, S, V]{
		store:     store,
		keyOf:     keyOf,
		secOf:     secOf,
		primary:   make(map[K]V),
		secondary: make(map[S]V),
	}
}

// ReloadAll replaces the entire cache from durable storage. Fresh maps are
// built outside the lock and swapped in atomically, so concurrent readers
// observe either the old snapshot or the new one, never a partial rebuild.
// Must complete once at startup before the cache is considered ready.
func (c *Cache[K, S, V]) ReloadAll(ctx context.Context) error {
	all, err := c.store.LoadAll(ctx)
	if err != nil {
		return err
	}

	primary := make(map[K]V, len(all))
	secondary := make(map[S]V, len(all))
	for _, v := range all {
		primary[c.keyOf(v)] = v
		if c.secOf != nil {
			if s, ok := c.secOf(v); ok {
				secondary[s] = v
			}
		}
	}

	c.mu.Lock()
	c.primary = primary
	c.secondary = secondary
	c.mu.Unlock()
	return nil
}

// Get returns the entity under the natural key.
func (c *Cache[K, S, V]) Get(key K) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.primary[key]
	return v, ok
}

// GetBySecondary returns the entity under the secondary key.
func (c *Cache[K, S, V]) GetBySecondary(key S) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.secondary[key]
	return v, ok
}

// Contains reports whether the natural key is present.
func (c *Cache[K, S, V]) Contains(key K) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.primary[key]
	return ok
}

// Len returns the number of cached entities.
func (c *Cache[K, S, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.primary)
}

// All returns a snapshot slice of every cached entity, in no particular
// order. Callers that need a stable order sort the result.
func (c *Cache[K, S, V]) All() []V {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]V, 0, len(c.primary))
	for _, v := range c.primary {
		out = append(out, v)
	}
	return out
}

// Insert writes the entity durably and, only on success, publishes it under
// both indexes. On a storage failure the cache is left exactly as it was.
func (c *Cache[K, S, V]) Insert(ctx context.Context, v V) error {
	if err := c.store.Insert(ctx, v); err != nil {
		return err
	}
	c.mu.Lock()
	c.index(v)
	c.mu.Unlock()
	return nil
}

// Remove deletes the entity durably and, only on success, drops it from
// both indexes. Returns ErrNotFound when the key is not cached.
func (c *Cache[K, S, V]) Remove(ctx context.Context, key K) error {
	c.mu.RLock()
	v, ok := c.primary[key]
	c.mu.RUnlock()
	if !ok {
		return ErrNotFound
	}

	if err := c.store.Delete(ctx, v); err != nil {
		return err
	}

	c.mu.Lock()
	delete(c.primary, key)
	if c.secOf != nil {
		if s, ok := c.secOf(v); ok {
			delete(c.secondary, s)
		}
	}
	c.mu.Unlock()
	return nil
}

// Update reads the current entity, applies mutate, persists the full new
// value, and then republishes it in the cache. The durable write happens
// strictly before the in-memory update. Returns ErrNotFound when the key is
// not cached.
//
// Not safe against concurrent Update calls for the same key (lost update);
// see the type documentation.
func (c *Cache[K, S, V]) Update(ctx context.Context, key K, mutate func(V) V) (V, error) {
	c.mu.RLock()
	old, ok := c.primary[key]
	c.mu.RUnlock()
	if !ok {
		var zero V
		return zero, ErrNotFound
	}

	next := mutate(old)
	if err := c.store.Update(ctx, next); err != nil {
		var zero V
		return zero, err
	}

	c.mu.Lock()
	if c.secOf != nil {
		if s, ok := c.secOf(old); ok {
			delete(c.secondary, s)
		}
	}
	c.index(next)
	c.mu.Unlock()
	return next, nil
}

// index publishes v under both indexes. Caller holds the write lock.
func (c *Cache[K, S, V]) index(v V) {
	c.primary[c.keyOf(v)] = v
	if c.secOf != nil {
		if s, ok := c.secOf(v); ok {
			c.secondary[s] = v
		}
	}
}
