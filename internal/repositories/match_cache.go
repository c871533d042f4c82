package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/ytlink/internal/models"
	"github.com/desertthunder/ytlink/internal/shared"
)

// MatchCacheRepository persists match outcomes in the match_cache table.
type MatchCacheRepository struct {
	db  *sql.DB
	now func() time.Time
}

// NewMatchCacheRepository creates a new MatchCacheRepository with the given database connection
func NewMatchCacheRepository(db *sql.DB) *MatchCacheRepository {
	return &MatchCacheRepository{db: db, now: time.Now}
}

// Get returns the cached outcome for key when it has not expired, counting the hit.
func (r *MatchCacheRepository) Get(key string) (*models.MatchOutcome, bool) {
	outcome, err := r.Lookup(key)
	if err != nil || outcome == nil {
		return nil, false
	}

	_, _ = r.db.Exec("UPDATE match_cache SET hits = hits + 1 WHERE track_key = ?", key)
	return outcome, true
}

// Lookup is Get with read errors surfaced. A miss returns (nil, nil).
func (r *MatchCacheRepository) Lookup(key string) (*models.MatchOutcome, error) {
	query := `
		SELECT reason_code, confidence, youtube_url, matched_title, matched_channel
		FROM match_cache
		WHERE track_key = ? AND expires_at > ?
	`

	var (
		reason          string
		confidence, url sql.NullString
		title, channel  sql.NullString
	)
	err := r.db.QueryRow(query, key, r.now().Unix()).Scan(&reason, &confidence, &url, &title, &channel)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cache entry: %w", err)
	}

	outcome, err := decodeOutcome(reason, confidence, url, title, channel)
	if err != nil {
		return nil, fmt.Errorf("corrupt cache entry %q: %w", key, err)
	}
	return outcome, nil
}

// Set upserts the outcome for key, resetting its expiry and hit count.
func (r *MatchCacheRepository) Set(key string, outcome models.MatchOutcome, ttl time.Duration) error {
	if err := validateEntry(key, outcome, ttl); err != nil {
		return err
	}

	now := r.now()
	query := `
		INSERT INTO match_cache (id, track_key, reason_code, confidence, youtube_url, matched_title, matched_channel, created_at, expires_at, hits)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, 0)
		ON CONFLICT(track_key) DO UPDATE SET
			reason_code = excluded.reason_code,
			confidence = excluded.confidence,
			youtube_url = excluded.youtube_url,
			matched_title = excluded.matched_title,
			matched_channel = excluded.matched_channel,
			created_at = excluded.created_at,
			expires_at = excluded.expires_at,
			hits = 0
	`

	_, err := r.db.Exec(query,
		shared.GenerateID(),
		key,
		string(outcome.Reason),
		nullable(outcome.ConfidenceString()),
		nullable(outcome.URL()),
		nullable(outcome.Title()),
		nullable(outcome.Channel()),
		now.Unix(),
		now.Add(ttl).Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to write cache entry: %w", err)
	}
	return nil
}

// Purge deletes expired entries and returns how many were removed.
func (r *MatchCacheRepository) Purge() (int64, error) {
	result, err := r.db.Exec("DELETE FROM match_cache WHERE expires_at <= ?", r.now().Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to purge cache: %w", err)
	}
	return result.RowsAffected()
}

// Clear deletes every entry.
func (r *MatchCacheRepository) Clear() (int64, error) {
	result, err := r.db.Exec("DELETE FROM match_cache")
	if err != nil {
		return 0, fmt.Errorf("failed to clear cache: %w", err)
	}
	return result.RowsAffected()
}

// Stats counts entries by freshness and reason code.
func (r *MatchCacheRepository) Stats() (*CacheStats, error) {
	rows, err := r.db.Query(`
		SELECT reason_code, expires_at > ? AS live, COUNT(*), COALESCE(SUM(hits), 0)
		FROM match_cache
		GROUP BY reason_code, live
	`, r.now().Unix())
	if err != nil {
		return nil, fmt.Errorf("failed to read cache stats: %w", err)
	}
	defer rows.Close()

	stats := &CacheStats{ByReason: make(map[models.ReasonCode]int)}
	for rows.Next() {
		var (
			reason      string
			live        bool
			count, hits int
		)
		if err := rows.Scan(&reason, &live, &count, &hits); err != nil {
			return nil, fmt.Errorf("failed to scan cache stats: %w", err)
		}

		stats.Total += count
		stats.Hits += hits
		if live {
			stats.Live += count
			stats.ByReason[models.ReasonCode(reason)] += count
		} else {
			stats.Expired += count
		}
	}
	return stats, rows.Err()
}

func decodeOutcome(reason string, confidence, url, title, channel sql.NullString) (*models.MatchOutcome, error) {
	code, err := models.ParseReasonCode(reason)
	if err != nil {
		return nil, err
	}

	if !url.Valid {
		outcome := models.NewEmptyOutcome(code)
		return &outcome, outcome.Validate()
	}

	conf, err := models.ParseConfidence(confidence.String)
	if err != nil {
		return nil, err
	}
	outcome := models.NewMatchedOutcome(models.CandidateVideo{
		Title:       title.String,
		URL:         url.String,
		ChannelName: channel.String,
	}, conf)
	if outcome.Reason != code {
		return nil, fmt.Errorf("reason %s does not agree with confidence %s", code, conf)
	}
	return &outcome, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
