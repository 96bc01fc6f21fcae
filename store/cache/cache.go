// Package cache provides a small in-memory TTL cache used by the store to
// avoid repeated lookups of immutable rows.
package cache

import (
	"context"
	"sync"
	"time"
)

// Config holds the cache configuration.
type Config struct {
	// DefaultTTL is the lifetime of an entry. Zero disables expiry.
	DefaultTTL time.Duration
	// CleanupInterval is how often expired entries are swept. Zero disables
	// the background sweeper; expired entries are then dropped lazily on Get.
	CleanupInterval time.Duration
	// MaxItems bounds the cache size. When full, Set evicts the entry
	// closest to expiry. Zero means unbounded.
	MaxItems int
}

type item struct {
	value     any
	expiresAt time.Time
}

func (i *item) expired(now time.Time) bool {
	return !i.expiresAt.IsZero() && now.After(i.expiresAt)
}

// Cache is a thread-safe in-memory key/value cache with TTL expiry.
type Cache struct {
	config Config

	mu    sync.RWMutex
	items map[string]*item

	done chan struct{}
	once sync.Once
}

// New creates a new cache and starts its cleanup goroutine if configured.
func New(config Config) *Cache {
	c := &Cache{
		config: config,
		items:  make(map[string]*item),
		done:   make(chan struct{}),
	}
	if config.CleanupInterval > 0 {
		go c.cleanupLoop()
	}
	return c
}

// Get retrieves a value. Expired entries are treated as absent.
func (c *Cache) Get(_ context.Context, key string) (any, bool) {
	c.mu.RLock()
	it, ok := c.items[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if it.expired(time.Now()) {
		c.Delete(context.Background(), key)
		return nil, false
	}
	return it.value, true
}

// Set stores a value with the default TTL.
func (c *Cache) Set(_ context.Context, key string, value any) {
	var expiresAt time.Time
	if c.config.DefaultTTL > 0 {
		expiresAt = time.Now().Add(c.config.DefaultTTL)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.config.MaxItems > 0 && len(c.items) >= c.config.MaxItems {
		if _, exists := c.items[key]; !exists {
			c.evictOldestLocked()
		}
	}
	c.items[key] = &item{value: value, expiresAt: expiresAt}
}

// Delete removes a key.
func (c *Cache) Delete(_ context.Context, key string) {
	c.mu.Lock()
	delete(c.items, key)
	c.mu.Unlock()
}

// Len returns the number of live entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Close stops the cleanup goroutine.
func (c *Cache) Close() {
	c.once.Do(func() {
		close(c.done)
	})
}

// evictOldestLocked drops the entry closest to expiry. Callers hold c.mu.
func (c *Cache) evictOldestLocked() {
	var oldestKey string
	var oldestExpiry time.Time
	for key, it := range c.items {
		if oldestKey == "" || (!it.expiresAt.IsZero() && it.expiresAt.Before(oldestExpiry)) {
			oldestKey = key
			oldestExpiry = it.expiresAt
		}
	}
	if oldestKey != "" {
		delete(c.items, oldestKey)
	}
}

func (c *Cache) cleanupLoop() {
	ticker := time.NewTicker(c.config.CleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-c.done:
			return
		case now := <-ticker.C:
			c.mu.Lock()
			for key, it := range c.items {
				if it.expired(now) {
					delete(c.items, key)
				}
			}
			c.mu.Unlock()
		}
	}
}
