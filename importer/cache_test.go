package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCacheLookupMiss(t *testing.T) {
	cache := NewCache()

	_, ok := cache.Lookup("liter")
	assert.False(t, ok)
	assert.Equal(t, 0, cache.Len())
}

func TestCacheLoadAndInsert(t *testing.T) {
	cache := NewCache()
	cache.Load(map[string]int{"liter": 4, "kg": 7})

	id, ok := cache.Lookup("liter")
	assert.True(t, ok)
	assert.Equal(t, 4, id)

	cache.Insert("piece", 12)
	id, ok = cache.Lookup("piece")
	assert.True(t, ok)
	assert.Equal(t, 12, id)
	assert.Equal(t, 3, cache.Len())
}

func TestCacheLoadNil(t *testing.T) {
	cache := NewCache()
	cache.Load(nil)

	cache.Insert("liter", 4)
	assert.Equal(t, 1, cache.Len())
}
