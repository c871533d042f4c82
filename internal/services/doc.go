// Package services talks to the platforms on either side of a match.
//
// # Search backends
//
// Two [Searcher] implementations produce [models.CandidateVideo] results:
//   - [YouTubeService] calls the ytmusicapi proxy (GET /api/search?q=...&filter=videos)
//   - [DataAPIService] calls the YouTube Data API v3 (search.list followed by videos.list for durations and view counts)
//
// Either can be wrapped in a [RateLimitedSearcher] so a batch does not exhaust the backend quota.
//
// # Spotify
//
// [SpotifyService] authenticates with the client-credentials flow, which is enough to read public playlists.
// Tracks are paged 100 at a time; local files, removed tracks and podcast episodes are skipped.
//
// # Error Handling
//
// Services use typed errors from shared package:
//   - [shared.ErrMissingCredentials] : client id, secret or API key not configured
//   - [shared.ErrAuthFailed] : token endpoint rejected the credentials
//   - [shared.ErrNotAuthenticated] : Authenticate() not called
//   - [shared.ErrAPIRequest] : HTTP request failed or returned a non-2xx status
//   - [shared.ErrServiceUnavailable] : backend throttled (429) or down (5xx)
//   - [shared.ErrPlaylistNotFound] : Playlist ID not found
package services
