package service

import (
	"testing"
	"time"

	"github.com/corebit/img2dataurl/resizer"
	"github.com/stretchr/testify/assert"
)

func TestResultCacheGetSet(t *testing.T) {
	c := NewResultCache(time.Minute)

	assert.Empty(t, c.Get("missing"))

	c.Set("key", "data:image/png;base64,AAAA")
	assert.Equal(t, "data:image/png;base64,AAAA", c.Get("key"))
}

func TestResultCacheExpiry(t *testing.T) {
	c := NewResultCache(time.Minute)

	current := time.Now()
	c.now = func() time.Time { return current }

	c.Set("key", "value")
	assert.Equal(t, "value", c.Get("key"))

	// Advance past the TTL.
	current = current.Add(2 * time.Minute)
	assert.Empty(t, c.Get("key"))
}

func TestResultCacheDisabled(t *testing.T) {
	c := NewResultCache(0)

	c.Set("key", "value")
	assert.Empty(t, c.Get("key"))
}

func TestResultCacheClear(t *testing.T) {
	c := NewResultCache(time.Minute)

	c.Set("a", "1")
	c.Set("b", "2")
	c.Clear()

	assert.Empty(t, c.Get("a"))
	assert.Empty(t, c.Get("b"))
}

func TestCacheKeyDistinguishesOptions(t *testing.T) {
	blob := resizer.Blob{Type: "image/png", Data: []byte{1, 2, 3}}
	w1, w2 := 100, 200
	q := 0.5

	base := cacheKey(blob, resizer.Options{Width: &w1})

	assert.Equal(t, base, cacheKey(blob, resizer.Options{Width: &w1}))
	assert.NotEqual(t, base, cacheKey(blob, resizer.Options{Width: &w2}))
	assert.NotEqual(t, base, cacheKey(blob, resizer.Options{Height: &w1}))
	assert.NotEqual(t, base, cacheKey(blob, resizer.Options{Width: &w1, Quality: &q}))
	assert.NotEqual(t, base, cacheKey(blob, resizer.Options{Width: &w1, Format: resizer.FormatWEBP}))

	other := resizer.Blob{Type: "image/png", Data: []byte{9, 9, 9}}
	assert.NotEqual(t, base, cacheKey(other, resizer.Options{Width: &w1}))
}
