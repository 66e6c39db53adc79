// Package cache memoizes one value per reflect.Type. Entries are built at
// most once per type at a time, kept in a bounded LRU store, and shared by
// all callers.
package cache

import (
	"fmt"
	"reflect"
	"sync/atomic"

	"github.com/go-logr/logr"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"
)

// DefaultSize is the store capacity used when Config.Size is not positive.
const DefaultSize = 256

// BuildFunc computes the entry for a type on a cache miss.
type BuildFunc[V any] func(reflect.Type) (V, error)

// Config configures a TypeCache.
type Config[V any] struct {
	Size    int
	OnEvict func(reflect.Type, V)
	Logger  logr.Logger
}

// Stats is a snapshot of cache counters.
type Stats struct {
	Hits   uint64
	Misses uint64
	Builds uint64
	Evicts uint64
	Len    int
}

// TypeCache is a thread-safe, compute-once-per-type cache. Concurrent misses
// for the same type share a single build; failed builds are not cached.
type TypeCache[V any] struct {
	store *lru.Cache[reflect.Type, V]
	group singleflight.Group
	build BuildFunc[V]
	log   logr.Logger

	hits   atomic.Uint64
	misses atomic.Uint64
	builds atomic.Uint64
	evicts atomic.Uint64
}

// New creates a TypeCache that fills misses with build.
func New[V any](build BuildFunc[V], cfg Config[V]) (*TypeCache[V], error) {
	if build == nil {
		return nil, fmt.Errorf("cache: build function is required")
	}
	size := cfg.Size
	if size <= 0 {
		size = DefaultSize
	}
	log := cfg.Logger
	if log.GetSink() == nil {
		log = logr.Discard()
	}

	c := &TypeCache[V]{build: build, log: log}
	store, err := lru.NewWithEvict(size, func(t reflect.Type, v V) {
		c.evicts.Add(1)
		c.log.V(1).Info("evicted type entry", "type", t.String())
		if cfg.OnEvict != nil {
			cfg.OnEvict(t, v)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("cache: %w", err)
	}
	c.store = store
	return c, nil
}

// Get returns the entry for t, building it on a miss.
func (c *TypeCache[V]) Get(t reflect.Type) (V, error) {
	if v, ok := c.store.Get(t); ok {
		c.hits.Add(1)
		return v, nil
	}
	c.misses.Add(1)

	res, err, _ := c.group.Do(key(t), func() (any, error) {
		// Another caller may have finished the build between our miss and Do.
		if v, ok := c.store.Get(t); ok {
			return v, nil
		}
		v, err := c.build(t)
		if err != nil {
			c.log.V(1).Info("type entry build failed", "type", t.String(), "error", err.Error())
			return nil, err
		}
		c.builds.Add(1)
		c.store.Add(t, v)
		c.log.V(1).Info("built type entry", "type", t.String())
		return v, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	return res.(V), nil
}

// Peek returns the cached entry for t without building it or touching
// recency.
func (c *TypeCache[V]) Peek(t reflect.Type) (V, bool) {
	return c.store.Peek(t)
}

// Remove drops the entry for t.
func (c *TypeCache[V]) Remove(t reflect.Type) bool {
	return c.store.Remove(t)
}

// Purge drops every entry; the eviction callback runs for each.
func (c *TypeCache[V]) Purge() {
	c.store.Purge()
}

// Len returns the number of cached entries.
func (c *TypeCache[V]) Len() int {
	return c.store.Len()
}

// Stats returns the current counters.
func (c *TypeCache[V]) Stats() Stats {
	return Stats{
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
		Builds: c.builds.Load(),
		Evicts: c.evicts.Load(),
		Len:    c.store.Len(),
	}
}

// key identifies t for singleflight by the address of its runtime type
// descriptor, which is unique per type.
func key(t reflect.Type) string {
	return fmt.Sprintf("%p", t)
}
