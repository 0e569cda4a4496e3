package importer

import (
	"sync"
)

// Cache represents an in-memory name to identifier mapping
// for one kind of reference entity.
// It is seeded once from the server at the start of a run
// and only ever grows afterwards
type Cache struct {
	sync.Mutex
	ids map[string]int
}

// NewCache constructs an empty cache
func NewCache() *Cache {
	return &Cache{
		ids: make(map[string]int),
	}
}

// Load replaces the cache contents from the source map
//
// Note: uses the passed in map directly;
// the passed in map cannot be reused by the caller afterwards
func (c *Cache) Load(ids map[string]int) {
	c.Lock()
	defer c.Unlock()

	if ids == nil {
		ids = make(map[string]int)
	}
	c.ids = ids
}

// Lookup gets the identifier for the given name, if present
func (c *Cache) Lookup(name string) (int, bool) {
	c.Lock()
	defer c.Unlock()

	id, ok := c.ids[name]
	return id, ok
}

// Insert stores the identifier for the given name
func (c *Cache) Insert(name string, id int) {
	c.Lock()
	defer c.Unlock()

	c.ids[name] = id
}

// Len gets the number of names currently cached
func (c *Cache) Len() int {
	c.Lock()
	defer c.Unlock()

	return len(c.ids)
}
