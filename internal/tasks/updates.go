package tasks

import (
	"fmt"

	"github.com/desertthunder/ytlink/internal/models"
	"github.com/desertthunder/ytlink/internal/services"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or server layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data
}

// Operation phase enumeration
type Phase int

const (
	FetchPlaylist Phase = iota
	FetchTracks
	MatchBatch
	MatchTrack
	Summarize
)

func (p Phase) String() string {
	switch p {
	case FetchPlaylist:
		return "fetch_playlist"
	case FetchTracks:
		return "fetch_tracks"
	case MatchBatch:
		return "match_batch"
	case MatchTrack:
		return "match_track"
	case Summarize:
		return "summarize"
	default:
		return ""
	}
}

// sendProgress delivers update unless the channel is nil or full.
func sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

func fetchPlaylistUpdate(id string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchPlaylist,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Fetching playlist %s from Spotify...", id),
	}
}

func fetchTracksUpdate(pl *services.Playlist) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchTracks,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Found playlist: %s (%d tracks)", pl.Name, pl.TrackCount),
		Data:    pl,
	}
}

func matchBatchUpdate(step, total, size int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   MatchBatch,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Matching batch of %d tracks...", step, total, size),
	}
}

// TrackProgress is the Data payload of [MatchTrack] updates.
type TrackProgress struct {
	Index   int
	Track   models.TrackDescriptor
	Outcome models.MatchOutcome
}

func matchTrackUpdate(step, total int, tp TrackProgress) ProgressUpdate {
	mark := "✗"
	if tp.Outcome.Matched() {
		mark = "✓"
	}
	return ProgressUpdate{
		Phase:   MatchTrack,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] %s %s (%s)", step, total, mark, tp.Track, tp.Outcome.Reason),
		Data:    tp,
	}
}

func summarizeUpdate(result *PlaylistRunResult) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Summarize,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Matched %d of %d tracks (%.1f%%)", result.MatchedCount, result.TotalTracks, result.MatchPercentage),
		Data:    result,
	}
}
