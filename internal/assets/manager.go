package assets

import (
	"context"
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// MethodLoad is the backend method returning decoded asset bytes.
const MethodLoad = "load"

// Caller is the request side of the backend bridge.
type Caller interface {
	Call(ctx context.Context, method string, params, result any) error
}

// LoadParams are sent with MethodLoad.
type LoadParams struct {
	ID     string `json:"id"`
	Format string `json:"format"`
}

// LoadResult is returned by MethodLoad.
type LoadResult struct {
	Data []byte `json:"data"`
}

// Manager loads decoded asset bytes from the backend and keeps them while a
// cached page still shows them.
type Manager struct {
	caller Caller
	cache  *Cache

	mu      sync.Mutex
	holders map[string]map[string]struct{} // asset id -> page ids
	held    map[string][]string            // page id -> asset ids
}

// NewManager creates a manager holding at most size decoded assets.
func NewManager(caller Caller, size int) (*Manager, error) {
	cache, err := NewCache(size)
	if err != nil {
		return nil, err
	}
	return &Manager{
		caller:  caller,
		cache:   cache,
		holders: make(map[string]map[string]struct{}),
		held:    make(map[string][]string),
	}, nil
}

// Load returns the decoded bytes of assetID on behalf of pageID.
func (m *Manager) Load(ctx context.Context, pageID, assetID string) ([]byte, error) {
	data, ok := m.cache.Get(assetID)
	if !ok {
		var result LoadResult
		params := LoadParams{ID: assetID, Format: "png"}
		if err := m.caller.Call(ctx, MethodLoad, params, &result); err != nil {
			return nil, fmt.Errorf("loading asset %s: %w", assetID, err)
		}
		data = result.Data
		m.cache.Set(assetID, data)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	pages, ok := m.holders[assetID]
	if !ok {
		pages = make(map[string]struct{})
		m.holders[assetID] = pages
	}
	if _, dup := pages[pageID]; !dup {
		pages[pageID] = struct{}{}
		m.held[pageID] = append(m.held[pageID], assetID)
	}
	return data, nil
}

// ReleasePage forgets every asset loaded for pageID. Assets no other page
// holds are removed from the cache. It returns how many were removed.
func (m *Manager) ReleasePage(pageID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for _, assetID := range m.held[pageID] {
		pages := m.holders[assetID]
		delete(pages, pageID)
		if len(pages) == 0 {
			delete(m.holders, assetID)
			if m.cache.Remove(assetID) {
				removed++
			}
		}
	}
	delete(m.held, pageID)
	return removed
}

// Held returns the asset ids loaded for pageID.
func (m *Manager) Held(pageID string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.held[pageID]))
	copy(out, m.held[pageID])
	return out
}

// Stats returns decoded-cache statistics.
func (m *Manager) Stats() (hits, misses, resident int) {
	hits, misses = m.cache.Stats()
	return hits, misses, m.cache.Len()
}

// Close drops everything.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cache.Clear()
	m.holders = make(map[string]map[string]struct{})
	m.held = make(map[string][]string)
}

// Cache is a bounded in-memory cache of decoded asset bytes.
type Cache struct {
	data *lru.Cache[string, []byte]
	mu   sync.Mutex

	// Stats
	hits   int
	misses int
}

// NewCache creates a cache holding at most size entries.
func NewCache(size int) (*Cache, error) {
	data, err := lru.New[string, []byte](size)
	if err != nil {
		return nil, fmt.Errorf("decoded asset cache: %w", err)
	}
	return &Cache{data: data}, nil
}

// Get retrieves an item from cache.
func (c *Cache) Get(key string) ([]byte, bool) {
	data, ok := c.data.Get(key)

	c.mu.Lock()
	defer c.mu.Unlock()
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return data, ok
}

// Set stores an item in cache.
func (c *Cache) Set(key string, data []byte) {
	c.data.Add(key, data)
}

// Remove deletes an item, reporting whether it was present.
func (c *Cache) Remove(key string) bool {
	return c.data.Remove(key)
}

// Len returns the number of cached items.
func (c *Cache) Len() int {
	return c.data.Len()
}

// Clear clears the cache.
func (c *Cache) Clear() {
	c.data.Purge()
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}
