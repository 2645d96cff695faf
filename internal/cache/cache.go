package cache

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Store memoizes stage results for a bounded window. Implementations
// must be safe for concurrent use.
type Store interface {
	Get(key string) (any, bool)
	Put(key string, value any, ttl time.Duration)
}

// Key builds a cache key from the full parameter tuple of a stage.
func Key(parts ...any) string {
	strs := make([]string, len(parts))
	for i, p := range parts {
		strs[i] = fmt.Sprint(p)
	}
	return strings.Join(strs, "|")
}

// Memory is an in-process Store with per-entry expiry.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time
}

type entry struct {
	value     any
	expiresAt time.Time
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

var _ Store = (*Memory)(nil)

// Get returns the cached value if present and not expired.
func (m *Memory) Get(key string) (any, bool) {
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if m.now().After(e.expiresAt) {
		m.mu.Lock()
		// Re-check under the write lock; another Put may have refreshed it.
		if e2, ok := m.entries[key]; ok && m.now().After(e2.expiresAt) {
			delete(m.entries, key)
		}
		m.mu.Unlock()
		return nil, false
	}
	return e.value, true
}

// Put stores value under key for the given ttl.
func (m *Memory) Put(key string, value any, ttl time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = entry{
		value:     value,
		expiresAt: m.now().Add(ttl),
	}
}
