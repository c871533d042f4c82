package tasks

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/ytlink/internal/models"
	"github.com/desertthunder/ytlink/internal/services"
	"github.com/desertthunder/ytlink/internal/shared"
)

// DefaultBatchSize caps the tracks handed to the matcher at once.
const DefaultBatchSize = 10

// BatchMatcher is satisfied by [Matcher].
type BatchMatcher interface {
	MatchBatchProgress(ctx context.Context, tracks []models.TrackDescriptor, progress chan<- ProgressUpdate) []models.MatchOutcome
}

// TrackResult pairs a source track with its outcome.
type TrackResult struct {
	Track   models.TrackDescriptor
	Outcome models.MatchOutcome
}

// PlaylistRunResult contains all data from matching a playlist.
type PlaylistRunResult struct {
	Playlist        *services.Playlist
	Tracks          []TrackResult
	Counts          map[models.ReasonCode]int
	TotalTracks     int
	MatchedCount    int     // tracks with a link, any confidence
	MatchPercentage float64 // MatchedCount as a share of TotalTracks
}

// Outcomes returns the outcomes in playlist order.
func (r *PlaylistRunResult) Outcomes() []models.MatchOutcome {
	outcomes := make([]models.MatchOutcome, len(r.Tracks))
	for i, tr := range r.Tracks {
		outcomes[i] = tr.Outcome
	}
	return outcomes
}

type PlaylistEngineOpts struct {
	Source    services.PlaylistSource
	Matcher   BatchMatcher
	BatchSize int // defaults to [DefaultBatchSize]
	Logger    *log.Logger
}

// PlaylistEngine matches every track of a source playlist.
type PlaylistEngine struct {
	source    services.PlaylistSource
	matcher   BatchMatcher
	batchSize int
	logger    *log.Logger
}

func NewPlaylistEngine(opts PlaylistEngineOpts) *PlaylistEngine {
	size := opts.BatchSize
	if size < 1 {
		size = DefaultBatchSize
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &PlaylistEngine{source: opts.Source, matcher: opts.Matcher, batchSize: size, logger: logger}
}

// Run fetches the playlist and matches it batch by batch.
//
// A cancelled context stops before the next batch; the partial result is returned with the context error.
func (e *PlaylistEngine) Run(ctx context.Context, playlistID string, progress chan<- ProgressUpdate) (*PlaylistRunResult, error) {
	if e.source == nil {
		return nil, fmt.Errorf("%w: playlist source not initialized", shared.ErrServiceUnavailable)
	}

	sendProgress(progress, fetchPlaylistUpdate(playlistID))
	playlist, err := e.source.Playlist(ctx, playlistID)
	if err != nil {
		return nil, err
	}

	tracks, err := e.source.PlaylistTracks(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	sendProgress(progress, fetchTracksUpdate(playlist))

	result := &PlaylistRunResult{
		Playlist:    playlist,
		Tracks:      make([]TrackResult, 0, len(tracks)),
		Counts:      make(map[models.ReasonCode]int),
		TotalTracks: len(tracks),
	}

	batches := Chunk(tracks, e.batchSize)
	for n, batch := range batches {
		if err := ctx.Err(); err != nil {
			result.summarize()
			return result, err
		}

		sendProgress(progress, matchBatchUpdate(n+1, len(batches), len(batch)))
		outcomes := e.matcher.MatchBatchProgress(ctx, batch, progress)
		for i, outcome := range outcomes {
			result.Tracks = append(result.Tracks, TrackResult{Track: batch[i], Outcome: outcome})
		}
		e.logger.Debug("batch matched", "playlist", playlistID, "batch", n+1, "of", len(batches))
	}

	result.summarize()
	sendProgress(progress, summarizeUpdate(result))
	e.logger.Info("playlist matched", "playlist", playlist.Name, "tracks", result.TotalTracks, "matched", result.MatchedCount)
	return result, nil
}

func (r *PlaylistRunResult) summarize() {
	clear(r.Counts)
	r.MatchedCount = 0
	for _, tr := range r.Tracks {
		r.Counts[tr.Outcome.Reason]++
		if tr.Outcome.Matched() {
			r.MatchedCount++
		}
	}
	if r.TotalTracks > 0 {
		r.MatchPercentage = float64(r.MatchedCount) / float64(r.TotalTracks) * 100
	}
}

// Chunk splits items into consecutive slices of at most size elements.
func Chunk[T any](items []T, size int) [][]T {
	if size < 1 {
		size = 1
	}
	chunks := make([][]T, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		chunks = append(chunks, items[start:min(start+size, len(items))])
	}
	return chunks
}
