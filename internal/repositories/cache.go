package repositories

import (
	"fmt"
	"time"

	"github.com/desertthunder/ytlink/internal/models"
)

// DefaultTTL is how long a match outcome stays fresh.
const DefaultTTL = 24 * time.Hour

// OutcomeCache stores match outcomes by track key.
type OutcomeCache interface {
	// Get returns a fresh outcome. Misses, expired entries and read failures all report false.
	Get(key string) (*models.MatchOutcome, bool)

	// Set stores outcome under key for ttl, replacing any previous entry.
	Set(key string, outcome models.MatchOutcome, ttl time.Duration) error
}

// Store is an [OutcomeCache] that can also be inspected and maintained.
type Store interface {
	OutcomeCache
	Purge() (int64, error)
	Clear() (int64, error)
	Stats() (*CacheStats, error)
}

// CacheStats summarizes cache contents.
type CacheStats struct {
	Total    int
	Live     int
	Expired  int
	Hits     int
	ByReason map[models.ReasonCode]int
}

func validateEntry(key string, outcome models.MatchOutcome, ttl time.Duration) error {
	if key == "" {
		return fmt.Errorf("cache key is empty")
	}
	if ttl <= 0 {
		return fmt.Errorf("cache ttl must be positive, got %v", ttl)
	}
	if err := outcome.Validate(); err != nil {
		return fmt.Errorf("refusing to cache inconsistent outcome: %w", err)
	}
	return nil
}
