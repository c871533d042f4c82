package tasks

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/ytlink/internal/models"
	"github.com/desertthunder/ytlink/internal/repositories"
)

// BatchEvaluator is satisfied by [Orchestrator].
type BatchEvaluator interface {
	EvaluateBatchProgress(ctx context.Context, tracks []models.TrackDescriptor, progress chan<- ProgressUpdate) []models.MatchOutcome
}

type MatcherOpts struct {
	Evaluator BatchEvaluator
	Cache     repositories.OutcomeCache // nil disables caching
	TTL       time.Duration             // defaults to [repositories.DefaultTTL]
	Logger    *log.Logger
}

// Matcher puts the outcome cache in front of an [Orchestrator].
type Matcher struct {
	evaluator BatchEvaluator
	cache     repositories.OutcomeCache
	ttl       time.Duration
	logger    *log.Logger
}

func NewMatcher(opts MatcherOpts) *Matcher {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = repositories.DefaultTTL
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Matcher{evaluator: opts.Evaluator, cache: opts.Cache, ttl: ttl, logger: logger}
}

// MatchBatch returns one outcome per track in input order, serving what it can from the cache.
func (m *Matcher) MatchBatch(ctx context.Context, tracks []models.TrackDescriptor) []models.MatchOutcome {
	return m.MatchBatchProgress(ctx, tracks, nil)
}

// MatchBatchProgress is [Matcher.MatchBatch] with progress for the tracks that miss the cache.
//
// Tracks sharing a key are evaluated once and the outcome is copied to every position.
func (m *Matcher) MatchBatchProgress(ctx context.Context, tracks []models.TrackDescriptor, progress chan<- ProgressUpdate) []models.MatchOutcome {
	results := make([]models.MatchOutcome, len(tracks))
	positions := make(map[string][]int)

	var (
		misses   []models.TrackDescriptor
		missKeys []string
		hits     int
	)

	for i, track := range tracks {
		key := track.Key()

		if m.cache != nil {
			if cached, ok := m.cache.Get(key); ok {
				results[i] = *cached
				hits++
				continue
			}
		}

		if _, pending := positions[key]; !pending {
			misses = append(misses, track)
			missKeys = append(missKeys, key)
		}
		positions[key] = append(positions[key], i)
	}

	m.logger.Debug("batch cache lookup", "tracks", len(tracks), "hits", hits, "evaluating", len(misses))
	if len(misses) == 0 {
		return results
	}

	fresh := m.evaluator.EvaluateBatchProgress(ctx, misses, progress)
	for j, outcome := range fresh {
		key := missKeys[j]
		for _, i := range positions[key] {
			results[i] = outcome
		}

		if m.cache == nil || outcome.Reason == models.ReasonSearchError {
			continue
		}
		if err := m.cache.Set(key, outcome, m.ttl); err != nil {
			m.logger.Warn("failed to cache outcome", "key", key, "err", err)
		}
	}

	return results
}
