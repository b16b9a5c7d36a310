package store

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/go-pkgz/lcw/v2"
	log "github.com/go-pkgz/lgr"
)

// Interface is the preference store contract satisfied by Store and Cached.
type Interface interface {
	Get(ctx context.Context, scope, key string) (string, error)
	Set(ctx context.Context, scope, key, value string) error
	Count(ctx context.Context) (int, error)
	Close() error
}

// Cached wraps a store Interface with a loading cache and satisfies the Interface itself.
// Cache is populated on reads, invalidated on writes. Misses are not cached.
type Cached struct {
	store Interface
	cache lcw.LoadingCache[string]
	gen   atomic.Uint64 // bumped by every Set, after the store write
}

// NewCached creates a new cached store wrapper holding up to maxKeys preferences.
func NewCached(store Interface, maxKeys int) (*Cached, error) {
	cache, err := lcw.NewLruCache(lcw.NewOpts[string]().MaxKeys(maxKeys))
	if err != nil {
		return nil, fmt.Errorf("failed to create cache: %w", err)
	}
	return &Cached{store: store, cache: cache}, nil
}

// Get retrieves the value using cache with load-through.
// A load that overlaps a Set may have read the old value; in that case the entry is dropped
// and the value is read from the store directly.
func (c *Cached) Get(ctx context.Context, scope, key string) (string, error) {
	ck := cacheKey(scope, key)
	gen := c.gen.Load()
	val, err := c.cache.Get(ck, func() (string, error) {
		v, loadErr := c.store.Get(ctx, scope, key)
		if loadErr != nil {
			return "", fmt.Errorf("load from store: %w", loadErr)
		}
		return v, nil
	})
	if err != nil {
		return "", fmt.Errorf("cache get: %w", err)
	}
	if c.gen.Load() == gen {
		return val, nil
	}

	c.invalidate(ck)
	v, err := c.store.Get(ctx, scope, key)
	if err != nil {
		return "", fmt.Errorf("store get: %w", err)
	}
	return v, nil
}

// Set stores a value and invalidates the cache entry.
func (c *Cached) Set(ctx context.Context, scope, key, value string) error {
	if err := c.store.Set(ctx, scope, key, value); err != nil {
		return fmt.Errorf("store set: %w", err)
	}
	c.gen.Add(1)
	c.invalidate(cacheKey(scope, key))
	return nil
}

// Count returns the number of preferences in the underlying store (not cached).
func (c *Cached) Count(ctx context.Context) (int, error) {
	n, err := c.store.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("store count: %w", err)
	}
	return n, nil
}

// Close closes the cache and underlying store.
func (c *Cached) Close() error {
	log.Printf("[DEBUG] preference cache stats: %+v", c.stats())
	_ = c.cache.Close()
	if err := c.store.Close(); err != nil {
		return fmt.Errorf("store close: %w", err)
	}
	return nil
}

func (c *Cached) stats() lcw.CacheStat {
	return c.cache.Stat()
}

func (c *Cached) invalidate(ck string) {
	c.cache.Invalidate(func(k string) bool { return k == ck })
}

func cacheKey(scope, key string) string { return scope + "\x00" + key }
