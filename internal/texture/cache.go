package texture

import (
	"errors"
	"fmt"
	"image"
	"os"
	"sync"
)

// ErrNotFound is returned for keys missing from every search path.
var ErrNotFound = errors.New("texture not found")

// Resolver resolves a texture key to a decoded image.
type Resolver interface {
	Resolve(key string) (image.Image, error)
}

// Cache is a concurrency-safe texture cache backed by an Index.
type Cache struct {
	mu    sync.RWMutex
	items map[string]cacheEntry
	index *Index
}

type cacheEntry struct {
	img image.Image
	err error
}

// NewCache creates a texture cache backed by the given index.
func NewCache(index *Index) *Cache {
	return &Cache{
		items: make(map[string]cacheEntry),
		index: index,
	}
}

// Resolve loads and caches a texture. Decode failures are cached too.
func (c *Cache) Resolve(key string) (image.Image, error) {
	path, ok := c.index.ResolvePath(key)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}

	c.mu.RLock()
	if entry, exists := c.items[path]; exists {
		c.mu.RUnlock()
		return entry.img, entry.err
	}
	c.mu.RUnlock()

	img, err := LoadTGA(path)

	c.mu.Lock()
	defer c.mu.Unlock()
	if entry, exists := c.items[path]; exists {
		return entry.img, entry.err
	}
	c.items[path] = cacheEntry{img: img, err: err}
	return img, err
}

// LoadTGA reads and decodes a TGA file.
func LoadTGA(path string) (image.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading texture: %w", err)
	}
	img, err := DecodeTGA(data)
	if err != nil {
		return nil, fmt.Errorf("texture %s: %w", path, err)
	}
	return img, nil
}
