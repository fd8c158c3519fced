// Package fetch - cached.go wraps page fetching with a store-backed page cache.
package fetch

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jonathan/course-progress/internal/store"
)

// DefaultPageCacheTTL is how long a fetched course page is reused.
const DefaultPageCacheTTL = 6 * time.Hour

// pageCacheKeyPrefix namespaces cached pages within the store.
const pageCacheKeyPrefix = "page:"

// HTMLFetcher is the subset of fetching CachedFetcher wraps.
type HTMLFetcher interface {
	FetchHTML(ctx context.Context, url string) (string, error)
	CheckExists(ctx context.Context, url string) bool
}

// CachedFetcher serves course pages from a store when a fresh copy exists.
// Existence checks are never cached.
type CachedFetcher struct {
	inner     HTMLFetcher
	store     store.Store
	cacheTTL  time.Duration
	skipCache bool // For testing or forcing fresh fetches
}

// CachedFetcherConfig holds configuration for the cached fetcher.
type CachedFetcherConfig struct {
	CacheTTL  time.Duration
	SkipCache bool
}

// NewCachedFetcher creates a new cached fetcher.
func NewCachedFetcher(inner HTMLFetcher, s store.Store, config *CachedFetcherConfig) *CachedFetcher {
	if config == nil {
		config = &CachedFetcherConfig{}
	}
	if config.CacheTTL == 0 {
		config.CacheTTL = DefaultPageCacheTTL
	}
	return &CachedFetcher{
		inner:     inner,
		store:     s,
		cacheTTL:  config.CacheTTL,
		skipCache: config.SkipCache,
	}
}

// FetchHTML returns a cached page if present, otherwise fetches and caches it.
// Cache read or write failures fall through to the network result.
func (f *CachedFetcher) FetchHTML(ctx context.Context, url string) (string, error) {
	key := pageCacheKeyPrefix + url

	if !f.skipCache && f.store != nil {
		if html, found, err := store.Load[string](ctx, f.store, key); err == nil && found {
			return html, nil
		}
	}

	html, err := f.inner.FetchHTML(ctx, url)
	if err != nil {
		return "", err
	}

	if f.store != nil {
		if data, err := json.Marshal(html); err == nil {
			_ = f.store.Set(ctx, key, data, f.cacheTTL)
		}
	}
	return html, nil
}

// CheckExists delegates to the wrapped fetcher.
func (f *CachedFetcher) CheckExists(ctx context.Context, url string) bool {
	return f.inner.CheckExists(ctx, url)
}

// InvalidateCache drops the cached copy of url, forcing a re-fetch on next request.
func (f *CachedFetcher) InvalidateCache(ctx context.Context, url string) error {
	if f.store == nil {
		return nil
	}
	return f.store.Delete(ctx, pageCacheKeyPrefix+url)
}
