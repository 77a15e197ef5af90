package data

import (
	"sync"
	"time"
)

// CacheEntry represents a cached response body
type CacheEntry struct {
	Body      []byte
	ExpiresAt time.Time
}

// ResponseCache keeps catalogue responses (product list, insights,
// copilot suggestions) for a short TTL so page loads do not hammer the
// backend. Simulation and upload calls never go through it.
//
// A nil *ResponseCache is valid and caches nothing.
type ResponseCache struct {
	mu    sync.RWMutex
	store map[string]*CacheEntry
	ttl   time.Duration
	now   func() time.Time
}

// NewResponseCache returns nil when ttl <= 0.
func NewResponseCache(ttl time.Duration) *ResponseCache {
	if ttl <= 0 {
		return nil
	}
	return &ResponseCache{
		store: make(map[string]*CacheEntry),
		ttl:   ttl,
		now:   time.Now,
	}
}

// Get retrieves a cached body if available and not expired
func (c *ResponseCache) Get(key string) ([]byte, bool) {
	if c == nil {
		return nil, false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.store[key]
	if !exists || c.now().After(entry.ExpiresAt) {
		return nil, false
	}
	return entry.Body, true
}

// Set stores a body in the cache and drops expired entries.
func (c *ResponseCache) Set(key string, body []byte) {
	if c == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for k, e := range c.store {
		if now.After(e.ExpiresAt) {
			delete(c.store, k)
		}
	}
	c.store[key] = &CacheEntry{
		Body:      body,
		ExpiresAt: now.Add(c.ttl),
	}
}

// Clear removes all entries from the cache. Called after a successful
// upload since the catalogue has changed.
func (c *ResponseCache) Clear() {
	if c == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.store = make(map[string]*CacheEntry)
}

// Len reports the number of stored entries, expired ones included.
func (c *ResponseCache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.store)
}
