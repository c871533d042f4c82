package matching

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/ytlink/internal/models"
)

// Searcher returns raw search results in relevance order.
type Searcher interface {
	Search(ctx context.Context, query string) ([]models.CandidateVideo, error)
}

// SearcherFunc adapts a function to [Searcher].
type SearcherFunc func(ctx context.Context, query string) ([]models.CandidateVideo, error)

func (f SearcherFunc) Search(ctx context.Context, query string) ([]models.CandidateVideo, error) {
	return f(ctx, query)
}

type EngineOpts struct {
	Searcher Searcher
	Policy   Policy     // zero value selects [DefaultPolicy]
	Logger   *log.Logger
}

// Engine runs the per-track matching pipeline.
type Engine struct {
	searcher Searcher
	policy   Policy
	logger   *log.Logger
}

func NewEngine(opts EngineOpts) *Engine {
	policy := opts.Policy
	if policy == (Policy{}) {
		policy = DefaultPolicy()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Engine{searcher: opts.Searcher, policy: policy, logger: logger}
}

func (e *Engine) Policy() Policy { return e.policy }

// MatchTrack resolves one track to an outcome.
//
// Queries run strictly in sequence and stop at the first that returns results. A failing
// query is skipped. The returned error is non-nil only when ctx is done.
func (e *Engine) MatchTrack(ctx context.Context, track models.TrackDescriptor) (models.MatchOutcome, error) {
	queries := Queries(track)
	failed := 0

	for i, query := range queries {
		if err := ctx.Err(); err != nil {
			return models.MatchOutcome{}, err
		}

		results, err := e.searcher.Search(ctx, query)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return models.MatchOutcome{}, ctxErr
			}
			failed++
			e.logger.Debug("search query failed", "track", track, "attempt", i+1, "query", query, "err", err)
			continue
		}

		if len(results) == 0 {
			e.logger.Debug("search query returned nothing", "track", track, "attempt", i+1, "query", query)
			continue
		}

		outcome := e.Evaluate(track, results)
		e.logger.Debug("track evaluated", "track", track, "query", query, "reason", outcome.Reason, "confidence", outcome.ConfidenceString())
		return outcome, nil
	}

	if failed == len(queries) {
		return models.NewEmptyOutcome(models.ReasonSearchError), nil
	}
	return models.NewEmptyOutcome(models.ReasonNoResults), nil
}

// Evaluate filters, scores, ranks and classifies one query's raw results.
func (e *Engine) Evaluate(track models.TrackDescriptor, raw []models.CandidateVideo) models.MatchOutcome {
	candidates := Filter(track, raw)
	if len(candidates) == 0 {
		return models.NewEmptyOutcome(models.ReasonNegativeKeyword)
	}

	best, _ := Best(ScoreAll(track, candidates))
	return e.policy.Classify(best)
}
