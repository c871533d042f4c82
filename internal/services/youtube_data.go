package services

import (
	"context"
	"errors"
	"fmt"
	"html"
	"regexp"
	"strconv"
	"time"

	"github.com/desertthunder/ytlink/internal/matching"
	"github.com/desertthunder/ytlink/internal/models"
	"github.com/desertthunder/ytlink/internal/shared"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

var isoDuration = regexp.MustCompile(`^P(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?)?$`)

// DataAPIService searches YouTube with the official Data API v3.
//
// A search costs one search.list call plus one videos.list call for durations and view counts.
type DataAPIService struct {
	svc        *youtube.Service
	maxResults int64
}

// NewDataAPIService creates a Data API client authenticated with an API key.
// Extra options are applied after the key (tests pass [option.WithEndpoint]).
func NewDataAPIService(ctx context.Context, apiKey string, opts ...option.ClientOption) (*DataAPIService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: youtube api_key", shared.ErrMissingCredentials)
	}

	svc, err := youtube.NewService(ctx, append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create youtube client: %w", err)
	}
	return &DataAPIService{svc: svc, maxResults: matching.MaxCandidates}, nil
}

func (d *DataAPIService) Name() string {
	return "YouTube Data API"
}

// Search runs search.list restricted to videos, then hydrates each hit with videos.list.
// Hits missing from the videos.list response keep an empty duration and zero views.
func (d *DataAPIService) Search(ctx context.Context, query string) ([]models.CandidateVideo, error) {
	resp, err := d.svc.Search.List([]string{"snippet"}).
		Q(query).
		Type("video").
		MaxResults(d.maxResults).
		Context(ctx).
		Do()
	if err != nil {
		return nil, dataAPIError("search.list", err)
	}

	ids := make([]string, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.Id != nil && item.Id.VideoId != "" && item.Snippet != nil {
			ids = append(ids, item.Id.VideoId)
		}
	}
	if len(ids) == 0 {
		return nil, nil
	}

	details, err := d.svc.Videos.List([]string{"contentDetails", "statistics"}).
		Id(ids...).
		Context(ctx).
		Do()
	if err != nil {
		return nil, dataAPIError("videos.list", err)
	}

	byID := make(map[string]*youtube.Video, len(details.Items))
	for _, v := range details.Items {
		byID[v.Id] = v
	}

	candidates := make([]models.CandidateVideo, 0, len(ids))
	for _, item := range resp.Items {
		if item.Id == nil || item.Id.VideoId == "" || item.Snippet == nil {
			continue
		}

		c := models.CandidateVideo{
			Title:       html.UnescapeString(item.Snippet.Title),
			URL:         watchURL(item.Id.VideoId),
			ChannelName: html.UnescapeString(item.Snippet.ChannelTitle),
		}
		if v, ok := byID[item.Id.VideoId]; ok {
			if v.ContentDetails != nil {
				if dur, err := ParseISODuration(v.ContentDetails.Duration); err == nil {
					c.DurationTimestamp = matching.FormatTimestamp(dur)
				}
			}
			if v.Statistics != nil {
				c.ViewCount = v.Statistics.ViewCount
			}
		}
		candidates = append(candidates, c)
	}
	return candidates, nil
}

func dataAPIError(call string, err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		if apiErr.Code == 403 || apiErr.Code == 429 || apiErr.Code >= 500 {
			return fmt.Errorf("%w: %s: %v", shared.ErrServiceUnavailable, call, apiErr)
		}
	}
	return fmt.Errorf("%w: %s: %v", shared.ErrAPIRequest, call, err)
}

// ParseISODuration parses the ISO-8601 durations used by the Data API ("PT3M54S", "P1DT2H").
func ParseISODuration(s string) (time.Duration, error) {
	m := isoDuration.FindStringSubmatch(s)
	if m == nil || s == "P" || s == "PT" {
		return 0, fmt.Errorf("%w: duration %q", shared.ErrInvalidInput, s)
	}

	units := []time.Duration{24 * time.Hour, time.Hour, time.Minute, time.Second}
	var total time.Duration
	for i, unit := range units {
		if m[i+1] == "" {
			continue
		}
		n, err := strconv.Atoi(m[i+1])
		if err != nil {
			return 0, fmt.Errorf("%w: duration %q: %v", shared.ErrInvalidInput, s, err)
		}
		total += time.Duration(n) * unit
	}
	return total, nil
}
