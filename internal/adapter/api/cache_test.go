package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLRUCache_BasicGetPut(t *testing.T) {
	c := newLRUCache(3)

	c.put("a", []byte("1"))
	v, ok := c.get("a")
	assert.True(t, ok)
	assert.Equal(t, []byte("1"), v)

	_, ok = c.get("missing")
	assert.False(t, ok)
}

func TestLRUCache_Eviction(t *testing.T) {
	c := newLRUCache(2)

	c.put("a", []byte("1"))
	c.put("b", []byte("2"))
	c.put("c", []byte("3"))

	_, ok := c.get("a")
	assert.False(t, ok, "oldest entry should be evicted")
	assert.Equal(t, 2, c.len())
}

func TestLRUCache_AccessPromotesEntry(t *testing.T) {
	c := newLRUCache(2)

	c.put("a", []byte("1"))
	c.put("b", []byte("2"))
	c.get("a")
	c.put("c", []byte("3"))

	_, ok := c.get("a")
	assert.True(t, ok)
	_, ok = c.get("b")
	assert.False(t, ok, "least recently used entry should be evicted")
}

func TestLRUCache_UpdateExisting(t *testing.T) {
	c := newLRUCache(2)

	c.put("a", []byte("1"))
	c.put("a", []byte("2"))

	v, _ := c.get("a")
	assert.Equal(t, []byte("2"), v)
	assert.Equal(t, 1, c.len())
}

func TestCacheKey(t *testing.T) {
	k1, err := cacheKey("/api/impact/calculate", map[string]float64{"diameter": 100})
	assert.NoError(t, err)
	k2, _ := cacheKey("/api/impact/calculate", map[string]float64{"diameter": 100})
	k3, _ := cacheKey("/api/deflection/compare", map[string]float64{"diameter": 100})

	assert.Equal(t, k1, k2)
	assert.NotEqual(t, k1, k3)
	assert.Len(t, k1, 64)
}
