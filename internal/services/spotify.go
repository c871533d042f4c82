// Spotify Web API playlist source
//
// Spotify API response types based on https://developer.spotify.com/documentation/web-api/reference/
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/desertthunder/ytlink/internal/models"
	"github.com/desertthunder/ytlink/internal/shared"
	"golang.org/x/oauth2/clientcredentials"
)

const (
	spotifyTokenURL = "https://accounts.spotify.com/api/token"
	spotifyBaseURL  = "https://api.spotify.com/v1"

	spotifyPageSize = 100
)

// SpotifyArtist represents a simplified Spotify artist.
type SpotifyArtist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SpotifyTrack represents a Spotify track or, when Type is "episode", a podcast episode.
type SpotifyTrack struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Artists    []SpotifyArtist `json:"artists"`
	DurationMS uint32          `json:"duration_ms"`
	IsLocal    bool            `json:"is_local"`
	Type       string          `json:"type"`
}

// Descriptor converts the track, reporting false for entries that cannot be matched.
func (t *SpotifyTrack) Descriptor() (models.TrackDescriptor, bool) {
	if t == nil || t.IsLocal || (t.Type != "" && t.Type != "track") || strings.TrimSpace(t.Name) == "" {
		return models.TrackDescriptor{}, false
	}

	names := make([]string, 0, len(t.Artists))
	for _, a := range t.Artists {
		if a.Name != "" {
			names = append(names, a.Name)
		}
	}
	if len(names) == 0 {
		return models.TrackDescriptor{}, false
	}
	return models.NewTrack(t.Name, strings.Join(names, ", "), t.DurationMS), true
}

// SpotifyPlaylistTrack represents a track within a playlist context. Track is null for removed tracks.
type SpotifyPlaylistTrack struct {
	AddedAt string        `json:"added_at"`
	Track   *SpotifyTrack `json:"track"`
}

// SpotifyPlaylistTracks is one page of playlist items.
type SpotifyPlaylistTracks struct {
	Items  []SpotifyPlaylistTrack `json:"items"`
	Total  int                    `json:"total"`
	Limit  int                    `json:"limit"`
	Offset int                    `json:"offset"`
	Next   *string                `json:"next"`
}

type Owner struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

// SpotifyPlaylist represents Spotify playlist metadata.
type SpotifyPlaylist struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Owner       Owner  `json:"owner"`
	Public      bool   `json:"public"`
	Tracks      struct {
		Total int `json:"total"`
	} `json:"tracks"`
}

// SpotifyService reads public playlists using the client-credentials flow.
type SpotifyService struct {
	config     *clientcredentials.Config
	httpClient *http.Client
	baseURL    string
}

// NewSpotifyService creates a new Spotify service from "client_id" and "client_secret" credentials.
func NewSpotifyService(credentials map[string]string) (*SpotifyService, error) {
	clientID := credentials["client_id"]
	if clientID == "" {
		return nil, fmt.Errorf("%w: spotify client_id", shared.ErrMissingCredentials)
	}

	clientSecret := credentials["client_secret"]
	if clientSecret == "" {
		return nil, fmt.Errorf("%w: spotify client_secret", shared.ErrMissingCredentials)
	}

	return &SpotifyService{
		config: &clientcredentials.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			TokenURL:     spotifyTokenURL,
		},
		baseURL: spotifyBaseURL,
	}, nil
}

func (s *SpotifyService) Name() string {
	return "Spotify"
}

// Authenticate fetches an app token. The returned client refreshes it automatically.
func (s *SpotifyService) Authenticate(ctx context.Context) error {
	if _, err := s.config.Token(ctx); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
	}
	s.httpClient = s.config.Client(ctx)
	return nil
}

// doRequest performs an authenticated GET. endpoint is either a path below the API root or an absolute "next" URL.
func (s *SpotifyService) doRequest(ctx context.Context, endpoint string, result any) error {
	if s.httpClient == nil {
		return fmt.Errorf("%w: call Authenticate first", shared.ErrNotAuthenticated)
	}

	apiURL := endpoint
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		apiURL = s.baseURL + endpoint
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return shared.ErrPlaylistNotFound
	case resp.StatusCode == http.StatusUnauthorized:
		return fmt.Errorf("%w: spotify status %d", shared.ErrAuthFailed, resp.StatusCode)
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return fmt.Errorf("%w: spotify status %d", shared.ErrServiceUnavailable, resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return fmt.Errorf("%w: spotify status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// Playlist retrieves playlist metadata.
func (s *SpotifyService) Playlist(ctx context.Context, playlistID string) (*Playlist, error) {
	params := url.Values{}
	params.Set("fields", "id,name,description,public,owner(id,display_name),tracks(total)")

	var sp SpotifyPlaylist
	endpoint := fmt.Sprintf("/playlists/%s?%s", url.PathEscape(playlistID), params.Encode())
	if err := s.doRequest(ctx, endpoint, &sp); err != nil {
		return nil, fmt.Errorf("playlist %s: %w", playlistID, err)
	}

	return &Playlist{
		ID:          sp.ID,
		Name:        sp.Name,
		Description: sp.Description,
		Owner:       sp.Owner.DisplayName,
		TrackCount:  sp.Tracks.Total,
		Public:      sp.Public,
	}, nil
}

// PlaylistTracks pages through a playlist and returns its matchable tracks in playlist order.
// Repeated tracks keep their first position.
func (s *SpotifyService) PlaylistTracks(ctx context.Context, playlistID string) ([]models.TrackDescriptor, error) {
	endpoint := fmt.Sprintf("/playlists/%s/tracks?limit=%d&offset=0", url.PathEscape(playlistID), spotifyPageSize)

	seen := make(map[string]struct{})
	var tracks []models.TrackDescriptor

	for endpoint != "" {
		var page SpotifyPlaylistTracks
		if err := s.doRequest(ctx, endpoint, &page); err != nil {
			return nil, fmt.Errorf("playlist %s tracks: %w", playlistID, err)
		}

		for _, item := range page.Items {
			track, ok := item.Track.Descriptor()
			if !ok {
				continue
			}
			if _, dup := seen[track.Key()]; dup {
				continue
			}
			seen[track.Key()] = struct{}{}
			tracks = append(tracks, track)
		}

		endpoint = ""
		if page.Next != nil {
			endpoint = *page.Next
		}
	}

	return tracks, nil
}

// ParsePlaylistID accepts a bare ID, a spotify:playlist: URI or an open.spotify.com URL.
func ParsePlaylistID(input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("%w: playlist id", shared.ErrMissingArgument)
	}

	if id, ok := strings.CutPrefix(input, "spotify:playlist:"); ok {
		return id, nil
	}

	if strings.Contains(input, "://") {
		u, err := url.Parse(input)
		if err != nil {
			return "", fmt.Errorf("%w: %v", shared.ErrInvalidArgument, err)
		}
		parts := strings.Split(strings.Trim(u.Path, "/"), "/")
		for i := 0; i+1 < len(parts); i++ {
			if parts[i] == "playlist" && parts[i+1] != "" {
				return parts[i+1], nil
			}
		}
		return "", fmt.Errorf("%w: no playlist id in %q", shared.ErrInvalidArgument, input)
	}

	if strings.ContainsAny(input, "/:?") {
		return "", fmt.Errorf("%w: %q", shared.ErrInvalidArgument, input)
	}
	return input, nil
}
