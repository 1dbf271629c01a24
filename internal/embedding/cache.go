package embedding

import (
	"context"
	"slices"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Cached memoizes vectors by exact text.
type Cached struct {
	inner Embedder
	cache *gocache.Cache
}

// NewCached wraps inner. A non-positive ttl keeps entries until the
// process exits.
func NewCached(inner Embedder, ttl time.Duration) *Cached {
	exp, cleanup := ttl, 2*ttl
	if ttl <= 0 {
		exp, cleanup = gocache.NoExpiration, 0
	}
	return &Cached{inner: inner, cache: gocache.New(exp, cleanup)}
}

// Embed returns a cached vector or computes and stores a new one. Errors
// are never cached.
func (c *Cached) Embed(ctx context.Context, text string) ([]float32, error) {
	if v, ok := c.cache.Get(text); ok {
		return slices.Clone(v.([]float32)), nil
	}
	vec, err := c.inner.Embed(ctx, text)
	if err != nil {
		return nil, err
	}
	c.cache.Set(text, slices.Clone(vec), gocache.DefaultExpiration)
	return vec, nil
}

// ModelID returns the wrapped embedder's model.
func (c *Cached) ModelID() string { return c.inner.ModelID() }

// Len reports the number of cached vectors.
func (c *Cached) Len() int { return c.cache.ItemCount() }
