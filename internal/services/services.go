// package services implements the external collaborators of the matcher: YouTube search backends and the Spotify playlist source.
package services

import (
	"context"

	"github.com/desertthunder/ytlink/internal/models"
)

// Searcher is a YouTube search backend. Results come back in relevance order.
type Searcher interface {
	Search(ctx context.Context, query string) ([]models.CandidateVideo, error)

	// Name returns the name of the backend (e.g., "YouTube Music proxy", "YouTube Data API")
	Name() string
}

// PlaylistSource reads track lists from the source platform.
type PlaylistSource interface {
	// Playlist retrieves playlist metadata without tracks.
	Playlist(ctx context.Context, playlistID string) (*Playlist, error)

	// PlaylistTracks retrieves every matchable track of a playlist, de-duplicated by [models.TrackDescriptor.Key].
	PlaylistTracks(ctx context.Context, playlistID string) ([]models.TrackDescriptor, error)
}

// Playlist represents source playlist metadata.
type Playlist struct {
	ID          string
	Name        string
	Description string
	Owner       string
	TrackCount  int
	Public      bool
}

func watchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}
