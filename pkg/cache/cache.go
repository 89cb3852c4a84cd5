// Package cache provides a small key value cache abstraction with pluggable
// backends. Values are strings so every backend can hold them.
package cache

import (
	"context"
	"time"
)

// Cache is a caching interface.
type Cache interface {
	Get(ctx context.Context, key string) (value string, ok bool)
	Set(ctx context.Context, key string, val string)
	Contains(ctx context.Context, key string) bool
	Delete(ctx context.Context, key string)
	Len(ctx context.Context) int64
}

// Options are the options of a cache backend.
type Options struct {
	// Size is the maximum number of entries. Backends without a bound ignore
	// it.
	Size int
	// TTL is how long an entry lives. Zero means forever.
	TTL time.Duration
	// Prefix is prepended to every key by shared backends.
	Prefix string
}

// Option is an option for creating new cache.
type Option func(*Options)

// WithSize sets the cache size.
func WithSize(s int) Option {
	return func(o *Options) {
		o.Size = s
	}
}

// WithTTL sets the time to live of cache entries.
func WithTTL(ttl time.Duration) Option {
	return func(o *Options) {
		o.TTL = ttl
	}
}

// WithPrefix sets the key prefix of shared backends.
func WithPrefix(p string) Option {
	return func(o *Options) {
		o.Prefix = p
	}
}

// NewOptions applies opts over the zero Options.
func NewOptions(opts ...Option) Options {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
