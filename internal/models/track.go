package models

import (
	"fmt"
	"strings"
	"time"
)

// TrackDescriptor describes one song to match.
//
// Artists holds a comma-joined artist list where the first entry is the primary artist.
// DurationMs is nil when the source did not report a duration.
type TrackDescriptor struct {
	Title      string  `json:"title"`
	Artists    string  `json:"artists"`
	DurationMs *uint32 `json:"durationMs,omitempty"`
}

// NewTrack creates a [TrackDescriptor]. A durationMs of zero means unknown.
func NewTrack(title, artists string, durationMs uint32) TrackDescriptor {
	t := TrackDescriptor{Title: title, Artists: artists}
	if durationMs > 0 {
		d := durationMs
		t.DurationMs = &d
	}
	return t
}

// Key returns the identity used for caching and de-duplication: case-folded title and artists.
// Duration does not participate.
func (t TrackDescriptor) Key() string {
	return TrackKey(t.Title, t.Artists)
}

// TrackKey normalizes a title/artist pair into a cache key of the form "title|artists".
func TrackKey(title, artists string) string {
	fold := func(s string) string {
		return strings.Join(strings.Fields(strings.ToLower(s)), " ")
	}
	return fold(title) + "|" + fold(artists)
}

// PrimaryArtist returns the first artist of the comma-joined artist list.
func (t TrackDescriptor) PrimaryArtist() string {
	primary, _, _ := strings.Cut(t.Artists, ",")
	return strings.TrimSpace(primary)
}

// Duration returns the track duration and whether it is known.
func (t TrackDescriptor) Duration() (time.Duration, bool) {
	if t.DurationMs == nil || *t.DurationMs == 0 {
		return 0, false
	}
	return time.Duration(*t.DurationMs) * time.Millisecond, true
}

// Validate checks the caller-side contract: title and artists must be non-empty.
func (t TrackDescriptor) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return fmt.Errorf("track title is required")
	}
	if strings.TrimSpace(t.Artists) == "" {
		return fmt.Errorf("track artists are required for %q", t.Title)
	}
	return nil
}

func (t TrackDescriptor) String() string {
	return fmt.Sprintf("%s - %s", t.Artists, t.Title)
}

// CandidateVideo is one search result considered as a possible match.
//
// DurationTimestamp is colon-delimited ("3:45", "1:23:45") and may be empty or malformed.
type CandidateVideo struct {
	Title             string `json:"title"`
	URL               string `json:"url"`
	ChannelName       string `json:"channelName"`
	DurationTimestamp string `json:"durationTimestamp"`
	ViewCount         uint64 `json:"viewCount"`
}

// ScoredCandidate wraps a [CandidateVideo] with its match score and the facts used for tie-breaking.
type ScoredCandidate struct {
	Candidate         CandidateVideo `json:"candidate"`
	Score             float64        `json:"score"`             // 0-100
	HasDurationMatch  bool           `json:"hasDurationMatch"`  // within tolerance of the track duration
	IsOfficialChannel bool           `json:"isOfficialChannel"` // channel recognized as the rights holder
	TitleSimilarity   float64        `json:"titleSimilarity"`   // raw token-set ratio, 0-100
}
