package services

import (
	"context"

	"github.com/desertthunder/ytlink/internal/models"
	"golang.org/x/time/rate"
)

// RateLimitedSearcher paces calls to another [Searcher] with a token bucket shared by all callers.
type RateLimitedSearcher struct {
	next    Searcher
	limiter *rate.Limiter
}

// NewRateLimitedSearcher allows perSecond searches with the given burst. A non-positive rate disables pacing.
func NewRateLimitedSearcher(next Searcher, perSecond float64, burst int) *RateLimitedSearcher {
	limit := rate.Limit(perSecond)
	if perSecond <= 0 {
		limit = rate.Inf
	}
	if burst < 1 {
		burst = 1
	}
	return &RateLimitedSearcher{next: next, limiter: rate.NewLimiter(limit, burst)}
}

func (r *RateLimitedSearcher) Name() string {
	return r.next.Name()
}

// Search waits for a token, then delegates. A cancelled wait returns the context error.
func (r *RateLimitedSearcher) Search(ctx context.Context, query string) ([]models.CandidateVideo, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return r.next.Search(ctx, query)
}
