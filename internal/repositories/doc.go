// Package repositories implements the match outcome cache.
//
// Key Implementations:
//   - [MatchCacheRepository] : SQLite-backed cache surviving restarts, rows expire by unix timestamp
//   - [MemoryCache] : process-local cache for servers running without a database
//
// Both satisfy [OutcomeCache]. Keys are [models.TrackKey] values; an expired entry reads as a miss
// and stays on disk until [MatchCacheRepository.Purge].
package repositories
