package service

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/corebit/img2dataurl/resizer"
)

// cacheEntry is a wrapper around a cached value with an expiration time.
type cacheEntry[T any] struct {
	Value     T
	ExpiresAt time.Time
}

// isExpired checks if the cache entry has expired based on the current time.
func (e *cacheEntry[T]) isExpired(now time.Time) bool {
	return now.After(e.ExpiresAt)
}

// ResultCache caches produced data URLs keyed by blob content and options,
// so identical requests within the TTL skip the decode and draw stages.
type ResultCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry[string]
	ttl     time.Duration
	now     func() time.Time
}

// NewResultCache creates a ResultCache with the specified TTL. A TTL of
// zero disables caching: Get always misses and Set is a no-op.
func NewResultCache(ttl time.Duration) *ResultCache {
	return &ResultCache{
		entries: make(map[string]cacheEntry[string]),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get retrieves a cached data URL for the given key, or returns empty
// string if not found or expired.
func (c *ResultCache) Get(key string) string {
	if c.ttl <= 0 {
		return ""
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]
	if !ok {
		return ""
	}

	if entry.isExpired(c.now()) {
		// Entry expired, but we don't remove it here to avoid write lock
		return ""
	}

	return entry.Value
}

// Set stores a data URL for the given key with TTL expiration.
func (c *ResultCache) Set(key string, dataURL string) {
	if c.ttl <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = cacheEntry[string]{
		Value:     dataURL,
		ExpiresAt: c.now().Add(c.ttl),
	}
}

// Clear removes all entries from the cache.
func (c *ResultCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cacheEntry[string])
}

// cacheKey derives a stable key from the blob content and the effective
// resize options.
func cacheKey(blob resizer.Blob, opts resizer.Options) string {
	h := sha256.New()
	h.Write(blob.Data)
	fmt.Fprintf(h, "|%s|%s", blob.Type, opts.Format)
	if opts.Width != nil {
		fmt.Fprintf(h, "|w=%d", *opts.Width)
	}
	if opts.Height != nil {
		fmt.Fprintf(h, "|h=%d", *opts.Height)
	}
	if opts.Quality != nil {
		fmt.Fprintf(h, "|q=%v", *opts.Quality)
	}
	return hex.EncodeToString(h.Sum(nil))
}
