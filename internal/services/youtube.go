// YouTube search through the FastAPI proxy server (music/) wrapping ytmusicapi.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/desertthunder/ytlink/internal/models"
	"github.com/desertthunder/ytlink/internal/shared"
)

const defaultYTBaseURL string = "http://localhost:8080"

// YouTubeArtist represents an artist or uploading channel in proxy responses.
type YouTubeArtist struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// YouTubeVideo is one search result as returned by the proxy.
type YouTubeVideo struct {
	VideoID     string          `json:"videoId"`
	Title       string          `json:"title"`
	Artists     []YouTubeArtist `json:"artists"`
	Duration    string          `json:"duration"`
	DurationSec int             `json:"duration_seconds"`
	Views       string          `json:"views"`
	ResultType  string          `json:"resultType"`
}

// Candidate converts a proxy result. The first artist entry is the uploading channel.
func (v YouTubeVideo) Candidate() models.CandidateVideo {
	c := models.CandidateVideo{
		Title:             v.Title,
		URL:               watchURL(v.VideoID),
		DurationTimestamp: v.Duration,
		ViewCount:         ParseViewCount(v.Views),
	}
	if len(v.Artists) > 0 {
		c.ChannelName = v.Artists[0].Name
	}
	return c
}

// YouTubeService searches YouTube videos via the proxy.
type YouTubeService struct {
	baseURL    string
	httpClient *http.Client
}

// NewYouTubeService creates a new proxy-backed search service.
func NewYouTubeService(baseURL string) *YouTubeService {
	if baseURL == "" {
		baseURL = defaultYTBaseURL
	}

	return &YouTubeService{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
	}
}

func (y *YouTubeService) Name() string {
	return "YouTube Music proxy"
}

func (y *YouTubeService) doRequest(ctx context.Context, endpoint string, result any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, y.baseURL+endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := y.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return fmt.Errorf("%w: youtube proxy status %d", shared.ErrServiceUnavailable, resp.StatusCode)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp struct {
			Detail string `json:"detail"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Detail != "" {
			return fmt.Errorf("%w: youtube proxy status %d: %s", shared.ErrAPIRequest, resp.StatusCode, errResp.Detail)
		}
		return fmt.Errorf("%w: youtube proxy status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// Search runs one video search.
//
// Calls GET /api/search?q={query}&filter=videos on the proxy.
func (y *YouTubeService) Search(ctx context.Context, query string) ([]models.CandidateVideo, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("filter", "videos")

	var results []YouTubeVideo
	if err := y.doRequest(ctx, "/api/search?"+params.Encode(), &results); err != nil {
		return nil, err
	}

	candidates := make([]models.CandidateVideo, 0, len(results))
	for _, v := range results {
		if v.VideoID == "" {
			continue
		}
		candidates = append(candidates, v.Candidate())
	}
	return candidates, nil
}

// ParseViewCount converts display counts such as "1.2B views", "532K" or "1,234" to a number.
// Unparseable input yields 0.
func ParseViewCount(s string) uint64 {
	s = strings.TrimSpace(strings.ToLower(s))
	s = strings.TrimSuffix(s, "views")
	s = strings.TrimSuffix(s, "view")
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0
	}

	multiplier := 1.0
	switch s[len(s)-1] {
	case 'k':
		multiplier = 1e3
	case 'm':
		multiplier = 1e6
	case 'b':
		multiplier = 1e9
	}
	if multiplier > 1 {
		s = s[:len(s)-1]
	}

	n, err := strconv.ParseFloat(s, 64)
	if err != nil || n < 0 {
		return 0
	}
	return uint64(n*multiplier + 0.5)
}
