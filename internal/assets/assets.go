// Package assets handles mesh loading and caching.
package assets

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/breakout/internal/logger"
	"github.com/Faultbox/breakout/pkg/formats"
)

// Manager loads OBJ meshes from disk and keeps them for reuse.
// Loaded meshes are shared between callers and must be treated as read-only.
type Manager struct {
	cache *Cache
	log   *zap.Logger
}

// NewManager creates a new asset manager.
func NewManager() *Manager {
	return &Manager{
		cache: NewCache(),
		log:   logger.Named("assets"),
	}
}

// LoadMesh parses the OBJ file at path, or returns the cached mesh.
func (m *Manager) LoadMesh(path string) (*formats.OBJMesh, error) {
	key := filepath.Clean(path)
	if mesh, ok := m.cache.Get(key); ok {
		return mesh, nil
	}

	start := time.Now()
	mesh, err := formats.ParseOBJFile(key)
	if err != nil {
		m.log.Error("mesh load failed", zap.String("path", key), zap.Error(err))
		return nil, fmt.Errorf("loading mesh %s: %w", key, err)
	}

	m.log.Debug("mesh loaded",
		zap.String("path", key),
		zap.Int("vertices", len(mesh.Vertices)),
		zap.Int("triangles", mesh.TriangleCount()),
		zap.Float32("width", mesh.Width),
		zap.Float32("height", mesh.Height),
		zap.Duration("took", time.Since(start)),
	)
	if len(mesh.Ignored) > 0 {
		m.log.Debug("mesh statements skipped",
			zap.String("path", key),
			zap.Any("ignored", mesh.Ignored),
		)
	}

	m.cache.Set(key, mesh)
	return mesh, nil
}

// LoadMeshes loads several meshes concurrently. Results are returned in the
// order of paths; the first failure cancels the remaining loads.
func (m *Manager) LoadMeshes(ctx context.Context, paths ...string) ([]*formats.OBJMesh, error) {
	meshes := make([]*formats.OBJMesh, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			mesh, err := m.LoadMesh(path)
			if err != nil {
				return err
			}
			meshes[i] = mesh
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return meshes, nil
}

// Stats returns cache hit and miss counts.
func (m *Manager) Stats() (hits, misses int) {
	return m.cache.Stats()
}

// Close drops all cached meshes.
func (m *Manager) Close() {
	m.cache.Clear()
}

// Cache is a concurrency-safe in-memory mesh cache.
type Cache struct {
	data map[string]*formats.OBJMesh
	mu   sync.RWMutex

	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string]*formats.OBJMesh),
	}
}

// Get retrieves a mesh from the cache.
func (c *Cache) Get(key string) (*formats.OBJMesh, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	mesh, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return mesh, ok
}

// Set stores a mesh in the cache.
func (c *Cache) Set(key string, mesh *formats.OBJMesh) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = mesh
}

// Len returns the number of cached meshes.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}

// Stats returns hit and miss counts since the last Clear.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}

// Clear clears the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string]*formats.OBJMesh)
	c.hits = 0
	c.misses = 0
}
