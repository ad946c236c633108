package history

import (
	"sync"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/docker/threadview/pkg/api"
)

// DefaultCacheSize bounds the run cache when no explicit size is given.
const DefaultCacheSize = 64

// RunCache memoizes per-run fetch results, keyed globally by run id. It is
// bounded: once size exceeds capacity the oldest-inserted entry is evicted.
// Insertion order is the eviction order; Get does not promote entries.
type RunCache struct {
	mu       sync.Mutex
	capacity int
	entries  *orderedmap.OrderedMap[string, *api.RunResponse]
}

// NewRunCache creates a cache bounded at capacity entries. A non-positive
// capacity falls back to DefaultCacheSize.
func NewRunCache(capacity int) *RunCache {
	if capacity <= 0 {
		capacity = DefaultCacheSize
	}
	return &RunCache{
		capacity: capacity,
		entries:  orderedmap.New[string, *api.RunResponse](),
	}
}

// Get returns the cached run detail for runID, if present.
func (c *RunCache) Get(runID string) (*api.RunResponse, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.entries.Get(runID)
}

// Put stores a run detail, evicting the oldest-inserted entries once the
// cache exceeds its capacity.
func (c *RunCache) Put(runID string, run *api.RunResponse) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries.Set(runID, run)
	for c.entries.Len() > c.capacity {
		oldest := c.entries.Oldest()
		c.entries.Delete(oldest.Key)
	}
}

// Len returns the number of cached runs.
func (c *RunCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.entries.Len()
}

// Clear empties the cache. Called when the owning client is closed.
func (c *RunCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = orderedmap.New[string, *api.RunResponse]()
}
