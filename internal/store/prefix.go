package store

import (
	"context"
	"time"
)

// Prefixed scopes every key of an underlying store under a fixed namespace,
// so several tools can share one backend without key collisions.
type Prefixed struct {
	inner  Store
	prefix string
}

// WithPrefix wraps s so that every key is stored as prefix+key.
func WithPrefix(s Store, prefix string) *Prefixed {
	return &Prefixed{inner: s, prefix: prefix}
}

func (p *Prefixed) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return p.inner.Get(ctx, p.prefix+key)
}

func (p *Prefixed) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return p.inner.Set(ctx, p.prefix+key, value, ttl)
}

func (p *Prefixed) Delete(ctx context.Context, key string) error {
	return p.inner.Delete(ctx, p.prefix+key)
}
