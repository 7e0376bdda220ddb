package engine

import (
	"sync"
	"time"
)

// DistributionCache memoizes normalized distributions per config
// revision. The cached revision carries the config's updatedAt, so a
// config update misses on the next read and the stale table is replaced.
// Read-mostly; shared across request goroutines.
type DistributionCache struct {
	mu      sync.RWMutex
	entries map[int64]cachedDistribution
}

type cachedDistribution struct {
	updatedAt time.Time
	dist      Distribution
}

func NewDistributionCache() *DistributionCache {
	return &DistributionCache{entries: make(map[int64]cachedDistribution)}
}

// Get returns the cached distribution when the cached revision matches
// updatedAt exactly.
func (c *DistributionCache) Get(configID int64, updatedAt time.Time) (Distribution, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[configID]
	if !ok || !e.updatedAt.Equal(updatedAt) {
		return Distribution{}, false
	}
	return e.dist, true
}

// Put stores the distribution for a config revision. An older revision
// never overwrites a newer one.
func (c *DistributionCache) Put(configID int64, updatedAt time.Time, d Distribution) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[configID]; ok && e.updatedAt.After(updatedAt) {
		return
	}
	c.entries[configID] = cachedDistribution{updatedAt: updatedAt, dist: d}
}
