package tasks

import (
	"context"
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/ytlink/internal/models"
	"golang.org/x/sync/semaphore"
)

// DefaultConcurrency is the number of track pipelines in flight per batch.
const DefaultConcurrency = 2

// TrackMatcher resolves a single track. [matching.Engine] implements it.
type TrackMatcher interface {
	MatchTrack(ctx context.Context, track models.TrackDescriptor) (models.MatchOutcome, error)
}

type OrchestratorOpts struct {
	Matcher     TrackMatcher
	Concurrency int // defaults to [DefaultConcurrency]
	Logger      *log.Logger
}

// Orchestrator evaluates batches of tracks with bounded concurrency and per-track failure isolation.
type Orchestrator struct {
	matcher     TrackMatcher
	concurrency int64
	logger      *log.Logger
}

func NewOrchestrator(opts OrchestratorOpts) *Orchestrator {
	concurrency := opts.Concurrency
	if concurrency < 1 {
		concurrency = DefaultConcurrency
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Orchestrator{matcher: opts.Matcher, concurrency: int64(concurrency), logger: logger}
}

// EvaluateBatch returns exactly one outcome per track, in input order. It never fails.
func (o *Orchestrator) EvaluateBatch(ctx context.Context, tracks []models.TrackDescriptor) []models.MatchOutcome {
	return o.EvaluateBatchProgress(ctx, tracks, nil)
}

// EvaluateBatchProgress is [Orchestrator.EvaluateBatch] with a [MatchTrack] update per finished track.
func (o *Orchestrator) EvaluateBatchProgress(ctx context.Context, tracks []models.TrackDescriptor, progress chan<- ProgressUpdate) []models.MatchOutcome {
	results := make([]models.MatchOutcome, len(tracks))
	sem := semaphore.NewWeighted(o.concurrency)

	var (
		wg       sync.WaitGroup
		finished atomic.Int64
	)

	for i, track := range tracks {
		if err := sem.Acquire(ctx, 1); err != nil {
			o.logger.Warn("batch cancelled", "started", i, "total", len(tracks), "err", err)
			for j := i; j < len(tracks); j++ {
				results[j] = models.NewEmptyOutcome(models.ReasonSearchError)
			}
			break
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			defer sem.Release(1)

			results[i] = o.evaluate(ctx, i, track)

			step := int(finished.Add(1))
			sendProgress(progress, matchTrackUpdate(step, len(tracks), TrackProgress{Index: i, Track: track, Outcome: results[i]}))
		}()
	}

	wg.Wait()
	return results
}

// evaluate is the per-track failure boundary: errors, panics and malformed outcomes all become search_error.
func (o *Orchestrator) evaluate(ctx context.Context, index int, track models.TrackDescriptor) (outcome models.MatchOutcome) {
	defer func() {
		if r := recover(); r != nil {
			o.logger.Error("track pipeline panicked", "index", index, "track", track, "panic", fmt.Sprint(r))
			outcome = models.NewEmptyOutcome(models.ReasonSearchError)
		}
	}()

	outcome, err := o.matcher.MatchTrack(ctx, track)
	if err != nil {
		o.logger.Warn("track pipeline failed", "index", index, "track", track, "err", err)
		return models.NewEmptyOutcome(models.ReasonSearchError)
	}
	if err := outcome.Validate(); err != nil {
		o.logger.Error("track pipeline produced an inconsistent outcome", "index", index, "track", track, "err", err)
		return models.NewEmptyOutcome(models.ReasonSearchError)
	}
	return outcome
}
