package texture

import (
	"path/filepath"
	"sync"

	"pbr-kernels/internal/logging"
)

// Resolver resolves a texture name to a decoded grid.
type Resolver interface {
	Resolve(name string) (*PixelGrid, error)
}

// Cache is a concurrency-safe texture cache. Relative names are resolved
// against BaseDir. Failed loads are cached too, so a missing file is only
// read once.
type Cache struct {
	mu      sync.RWMutex
	items   map[string]*cacheEntry
	baseDir string
	load    func(path string) (*PixelGrid, error)
}

type cacheEntry struct {
	grid *PixelGrid
	err  error
}

// NewCache creates a cache that loads files with LoadTexture.
func NewCache(baseDir string) *Cache {
	return &Cache{
		items:   make(map[string]*cacheEntry),
		baseDir: baseDir,
		load:    LoadTexture,
	}
}

// Resolve loads and caches a texture by name.
func (c *Cache) Resolve(name string) (*PixelGrid, error) {
	path := name
	if !filepath.IsAbs(path) && c.baseDir != "" {
		path = filepath.Join(c.baseDir, path)
	}

	// Fast path: read lock
	c.mu.RLock()
	if entry, exists := c.items[path]; exists {
		c.mu.RUnlock()
		return entry.grid, entry.err
	}
	c.mu.RUnlock()

	// Slow path: load from disk
	grid, err := c.load(path)
	logging.Logger().Debug("texture: loaded", "path", path, "err", err)

	// Write lock with double-check
	c.mu.Lock()
	defer c.mu.Unlock()
	if entry, exists := c.items[path]; exists {
		return entry.grid, entry.err
	}
	c.items[path] = &cacheEntry{grid: grid, err: err}
	return grid, err
}

// Len returns the number of cached entries, failures included.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
