package matching

import (
	"regexp"
	"strings"
	"time"

	"github.com/desertthunder/ytlink/internal/models"
)

// MaxCandidates is the number of raw search results considered per query.
const MaxCandidates = 10

const (
	// MaxOverrun is how much longer than the track a candidate may be (compilations, extended mixes).
	MaxOverrun = 30 * time.Second
	// MaxUnderrun is how much shorter than the track a candidate may be (snippets, shorts).
	MaxUnderrun = 10 * time.Second
)

// NegativeKeywords mark categorically wrong variants of a song.
var NegativeKeywords = []string{
	"karaoke", "cover", "instrumental", "remix", "tutorial", "reaction",
	"live", "acoustic version", "piano version", "slowed", "reverb", "8d audio",
}

var negativePattern = keywordPattern(NegativeKeywords)

// keywordPattern matches any keyword starting at a word boundary, so "cover" matches
// "Covers" but "live" does not match "Olivia".
func keywordPattern(keywords []string) *regexp.Regexp {
	quoted := make([]string, len(keywords))
	for i, kw := range keywords {
		quoted[i] = regexp.QuoteMeta(kw)
	}
	return regexp.MustCompile(`(?i)\b(?:` + strings.Join(quoted, "|") + `)`)
}

// HasNegativeKeyword reports whether a video title contains a denylisted keyword.
func HasNegativeKeyword(title string) bool {
	return negativePattern.MatchString(title)
}

// IsDurationPlausible reports whether a candidate's length is compatible with the track.
// Unknown durations on either side are always plausible.
func IsDurationPlausible(track models.TrackDescriptor, c models.CandidateVideo) bool {
	want, ok := track.Duration()
	if !ok {
		return true
	}
	got, ok := candidateDuration(c)
	if !ok {
		return true
	}
	return got-want <= MaxOverrun && want-got <= MaxUnderrun
}

// Filter returns the candidates among the top [MaxCandidates] raw results that may be scored.
// Input order is preserved.
func Filter(track models.TrackDescriptor, raw []models.CandidateVideo) []models.CandidateVideo {
	if len(raw) > MaxCandidates {
		raw = raw[:MaxCandidates]
	}

	kept := make([]models.CandidateVideo, 0, len(raw))
	for _, c := range raw {
		if HasNegativeKeyword(c.Title) {
			continue
		}
		if !IsDurationPlausible(track, c) {
			continue
		}
		kept = append(kept, c)
	}
	return kept
}
