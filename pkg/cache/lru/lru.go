// Package lru is an in memory cache backend with a least recently used
// eviction policy and optional expiry.
package lru

import (
	"context"

	"github.com/grantflow/grantflow/pkg/cache"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

func init() {
	cache.Register("lru", NewCache)
}

// Cache is a memory cache that uses a LRU cache policy.
type Cache struct {
	cache *expirable.LRU[string, string]
}

var _ cache.Cache = (*Cache)(nil)

// NewCache returns a new Cache.
func NewCache(_ context.Context, opts ...cache.Option) (cache.Cache, error) {
	o := cache.NewOptions(opts...)
	if o.Size <= 0 {
		o.Size = 1
	}

	return &Cache{
		cache: expirable.NewLRU[string, string](o.Size, nil, o.TTL),
	}, nil
}

// Delete implements cache.Cache.
func (c *Cache) Delete(_ context.Context, key string) {
	c.cache.Remove(key)
}

// Get implements cache.Cache.
func (c *Cache) Get(_ context.Context, key string) (value string, ok bool) {
	return c.cache.Get(key)
}

// Set implements cache.Cache.
func (c *Cache) Set(_ context.Context, key string, val string) {
	c.cache.Add(key, val)
}

// Len implements cache.Cache.
func (c *Cache) Len(_ context.Context) int64 {
	return int64(c.cache.Len())
}

// Contains implements cache.Cache.
func (c *Cache) Contains(_ context.Context, key string) bool {
	return c.cache.Contains(key)
}
