package demoapi

import (
	"context"
	"sync"
	"sync/atomic"
)

// UserCache is a read-through cache for the user list. Creating a user
// invalidates the cached list so the next read sees fresh data.
type UserCache struct {
	store UserStore

	mu     sync.RWMutex
	users  []User
	valid  bool
	hits   atomic.Int64
	misses atomic.Int64
}

// NewUserCache wraps a store with list caching.
func NewUserCache(store UserStore) *UserCache {
	return &UserCache{store: store}
}

// List returns the cached user list, loading from the store on a miss.
// Hits and misses are counted both locally and on the Prometheus registry.
func (c *UserCache) List(ctx context.Context) ([]User, error) {
	c.mu.RLock()
	if c.valid {
		users := c.users
		c.mu.RUnlock()
		c.hits.Add(1)
		cacheHitsTotal.Inc()
		return users, nil
	}
	c.mu.RUnlock()

	c.misses.Add(1)
	cacheMissesTotal.Inc()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.valid {
		return c.users, nil
	}

	users, err := c.store.List(ctx)
	if err != nil {
		return nil, err
	}
	c.users = users
	c.valid = true
	return users, nil
}

// Create writes through to the store and invalidates the cached list.
func (c *UserCache) Create(ctx context.Context, u User) (User, error) {
	created, err := c.store.Create(ctx, u)
	if err != nil {
		return User{}, err
	}
	c.Invalidate()
	return created, nil
}

// Count delegates to the store.
func (c *UserCache) Count(ctx context.Context) (int, error) {
	return c.store.Count(ctx)
}

// Invalidate drops the cached list.
func (c *UserCache) Invalidate() {
	c.mu.Lock()
	c.valid = false
	c.users = nil
	c.mu.Unlock()
}

// Stats returns the hit and miss counters.
func (c *UserCache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}
