package repositories

import (
	"sync"
	"time"

	"github.com/desertthunder/ytlink/internal/models"
)

type memoryEntry struct {
	outcome   models.MatchOutcome
	expiresAt time.Time
	hits      int
}

// MemoryCache is an in-process [OutcomeCache]. It is safe for concurrent use.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]*memoryEntry
	now     func() time.Time
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]*memoryEntry), now: time.Now}
}

func (c *MemoryCache) Get(key string) (*models.MatchOutcome, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok || !c.now().Before(entry.expiresAt) {
		return nil, false
	}
	entry.hits++

	outcome := entry.outcome
	return &outcome, true
}

func (c *MemoryCache) Set(key string, outcome models.MatchOutcome, ttl time.Duration) error {
	if err := validateEntry(key, outcome, ttl); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = &memoryEntry{outcome: outcome, expiresAt: c.now().Add(ttl)}
	return nil
}

// Purge drops expired entries.
func (c *MemoryCache) Purge() (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	var removed int64
	for key, entry := range c.entries {
		if !now.Before(entry.expiresAt) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed, nil
}

func (c *MemoryCache) Clear() (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := int64(len(c.entries))
	clear(c.entries)
	return removed, nil
}

func (c *MemoryCache) Stats() (*CacheStats, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	stats := &CacheStats{ByReason: make(map[models.ReasonCode]int)}
	for _, entry := range c.entries {
		stats.Total++
		stats.Hits += entry.hits
		if now.Before(entry.expiresAt) {
			stats.Live++
			stats.ByReason[entry.outcome.Reason]++
		} else {
			stats.Expired++
		}
	}
	return stats, nil
}
