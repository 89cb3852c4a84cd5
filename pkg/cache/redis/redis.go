// Package redis is a cache backend shared between grantflow instances.
package redis

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"
	"github.com/grantflow/grantflow/pkg/cache"
	"github.com/grantflow/grantflow/pkg/config"
	"github.com/redis/go-redis/v9"
)

func init() {
	cache.Register("redis", NewCache)
}

// Cache is a Redis cache.
type Cache struct {
	client *redis.Client
	opts   cache.Options
	logger *log.Logger
}

var _ cache.Cache = (*Cache)(nil)

// NewCache returns a new Redis cache configured from the config in ctx.
func NewCache(ctx context.Context, opts ...cache.Option) (cache.Cache, error) {
	cfg := config.FromContext(ctx)
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	rc := cfg.Cache.Redis
	client := redis.NewClient(&redis.Options{
		Addr:     rc.Addr,
		Username: rc.Username,
		Password: rc.Password,
		DB:       rc.DB,
	})

	return &Cache{
		client: client,
		opts:   cache.NewOptions(opts...),
		logger: log.FromContext(ctx).WithPrefix("cache"),
	}, client.Ping(ctx).Err()
}

func (r *Cache) key(k string) string {
	return r.opts.Prefix + k
}

// Contains implements cache.Cache.
func (r *Cache) Contains(ctx context.Context, key string) bool {
	return r.client.Exists(ctx, r.key(key)).Val() == 1
}

// Delete implements cache.Cache.
func (r *Cache) Delete(ctx context.Context, key string) {
	if err := r.client.Del(ctx, r.key(key)).Err(); err != nil {
		r.logger.Error("delete", "key", key, "err", err)
	}
}

// Get implements cache.Cache.
func (r *Cache) Get(ctx context.Context, key string) (value string, ok bool) {
	val, err := r.client.Get(ctx, r.key(key)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.logger.Error("get", "key", key, "err", err)
		}
		return "", false
	}

	return val, true
}

// Len implements cache.Cache. It counts the keys under the cache prefix.
func (r *Cache) Len(ctx context.Context) int64 {
	var n int64
	iter := r.client.Scan(ctx, 0, r.opts.Prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		n++
	}
	return n
}

// Set implements cache.Cache.
func (r *Cache) Set(ctx context.Context, key string, val string) {
	if err := r.client.Set(ctx, r.key(key), val, r.opts.TTL).Err(); err != nil {
		r.logger.Error("set", "key", key, "err", err)
	}
}

// Close closes the redis client.
func (r *Cache) Close() error {
	return r.client.Close()
}
