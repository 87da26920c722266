package cache

import (
	"strings"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
)

// Manager caches derived views of the article dataset: filter results,
// dropdown options, city aggregates. Blob geometry is never cached because
// each render is intentionally re-randomized.
type Manager struct {
	cache *cache.Cache
	mu    sync.RWMutex
}

func NewManager(defaultTTL time.Duration) *Manager {
	return &Manager{
		cache: cache.New(defaultTTL, 10*time.Minute),
	}
}

// Key joins a view name and its filter values into a cache key.
// Empty filter values are kept so that "articles||2023|" and
// "articles|Portugal|2023|" stay distinct.
func Key(view string, parts ...string) string {
	return view + "|" + strings.Join(parts, "|")
}

func (m *Manager) Get(key string) (interface{}, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cache.Get(key)
}

func (m *Manager) Set(key string, value interface{}, ttl time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cache.Set(key, value, ttl)
}

func (m *Manager) Delete(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cache.Delete(key)
}

// Flush drops every cached view. Called after a dataset refresh so stale
// filter results never outlive the data they were derived from.
func (m *Manager) Flush() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cache.Flush()
}

// ItemCount reports the number of live cache entries.
func (m *Manager) ItemCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cache.ItemCount()
}
