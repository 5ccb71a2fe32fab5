package platform

import (
	"sync"
	"time"

	"github.com/mj1618/focus-border/internal/geometry"
)

// DisplayCache provides a TTL-based cache in front of a DisplayProvider.
// Display layout changes rarely, while the watcher asks on every settled
// focus change.
type DisplayCache struct {
	src DisplayProvider
	ttl time.Duration
	now func() time.Time

	mu        sync.Mutex
	displays  []geometry.Display
	timestamp time.Time
}

// NewDisplayCache creates a new cache. A ttl of 0 disables caching.
func NewDisplayCache(src DisplayProvider, ttl time.Duration) *DisplayCache {
	return &DisplayCache{src: src, ttl: ttl, now: time.Now}
}

// Displays returns cached displays if within TTL, otherwise reads fresh.
func (c *DisplayCache) Displays() ([]geometry.Display, error) {
	if c.ttl == 0 {
		return c.src.Displays()
	}

	c.mu.Lock()
	if c.displays != nil && c.now().Sub(c.timestamp) < c.ttl {
		displays := c.displays
		c.mu.Unlock()
		return displays, nil
	}
	c.mu.Unlock()

	displays, err := c.src.Displays()
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.displays = displays
	c.timestamp = c.now()
	c.mu.Unlock()

	return displays, nil
}

// Invalidate drops the cached layout.
func (c *DisplayCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.displays = nil
}
