package matching

import (
	"fmt"
	"strings"
	"time"

	"github.com/desertthunder/ytlink/internal/models"
)

// Signal weights. They sum to 100.
const (
	TitleWeight      = 40.0
	DurationWeight   = 25.0
	ArtistWeight     = 15.0
	OfficialWeight   = 10.0
	KeywordWeight    = 5.0
	PopularityWeight = 5.0
)

const (
	// DurationTolerance is the largest difference still counted as a duration match.
	DurationTolerance = 5 * time.Second

	ArtistThreshold          = 80.0
	OfficialChannelThreshold = 85.0

	HighViewCount     = 10_000_000
	ModerateViewCount = 1_000_000
)

var (
	officialChannelMarkers = []string{"vevo", "- topic", "official"}
	positiveKeywords       = []string{"official", "audio", "music video", "vevo"}
)

// Score computes the weighted 0-100 score of one candidate for one track.
func Score(track models.TrackDescriptor, c models.CandidateVideo) models.ScoredCandidate {
	artist := track.PrimaryArtist()

	query := StripFeaturing(fmt.Sprintf("%s %s", StripFeaturing(track.Title), artist))
	similarity := TokenSetRatio(query, StripFeaturing(c.Title))

	durationMatch := matchesDuration(track, c)
	official := isOfficialChannel(c.ChannelName, artist)

	score := similarity / 100 * TitleWeight
	if durationMatch {
		score += DurationWeight
	}
	if verifiesArtist(artist, c) {
		score += ArtistWeight
	}
	if official {
		score += OfficialWeight
	}
	if hasPositiveKeyword(c.Title) {
		score += KeywordWeight
	}
	score += popularity(c.ViewCount)

	return models.ScoredCandidate{
		Candidate:         c,
		Score:             min(score, 100),
		HasDurationMatch:  durationMatch,
		IsOfficialChannel: official,
		TitleSimilarity:   similarity,
	}
}

// ScoreAll scores candidates in input order.
func ScoreAll(track models.TrackDescriptor, candidates []models.CandidateVideo) []models.ScoredCandidate {
	scored := make([]models.ScoredCandidate, len(candidates))
	for i, c := range candidates {
		scored[i] = Score(track, c)
	}
	return scored
}

func matchesDuration(track models.TrackDescriptor, c models.CandidateVideo) bool {
	want, ok := track.Duration()
	if !ok {
		return false
	}
	got, ok := candidateDuration(c)
	if !ok {
		return false
	}

	diff := got - want
	if diff < 0 {
		diff = -diff
	}
	return diff <= DurationTolerance
}

func verifiesArtist(artist string, c models.CandidateVideo) bool {
	if artist == "" {
		return false
	}
	return PartialRatio(artist, c.Title) > ArtistThreshold || PartialRatio(artist, c.ChannelName) > ArtistThreshold
}

func isOfficialChannel(channel, artist string) bool {
	lower := strings.ToLower(channel)
	for _, marker := range officialChannelMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return artist != "" && TokenSetRatio(artist, channel) > OfficialChannelThreshold
}

func hasPositiveKeyword(title string) bool {
	lower := strings.ToLower(title)
	for _, kw := range positiveKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func popularity(views uint64) float64 {
	switch {
	case views > HighViewCount:
		return PopularityWeight
	case views > ModerateViewCount:
		return PopularityWeight / 2
	default:
		return 0
	}
}
