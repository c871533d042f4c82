package matching

import (
	"slices"

	"github.com/desertthunder/ytlink/internal/models"
)

// Compare orders scored candidates best first: score, duration match, official channel,
// title similarity, then view count, all descending. Equal candidates compare as 0 so a
// stable sort keeps first-seen order.
func Compare(a, b models.ScoredCandidate) int {
	switch {
	case a.Score != b.Score:
		return descending(a.Score > b.Score)
	case a.HasDurationMatch != b.HasDurationMatch:
		return descending(a.HasDurationMatch)
	case a.IsOfficialChannel != b.IsOfficialChannel:
		return descending(a.IsOfficialChannel)
	case a.TitleSimilarity != b.TitleSimilarity:
		return descending(a.TitleSimilarity > b.TitleSimilarity)
	case a.Candidate.ViewCount != b.Candidate.ViewCount:
		return descending(a.Candidate.ViewCount > b.Candidate.ViewCount)
	default:
		return 0
	}
}

func descending(aFirst bool) int {
	if aFirst {
		return -1
	}
	return 1
}

// Rank returns a sorted copy of scored, best first.
func Rank(scored []models.ScoredCandidate) []models.ScoredCandidate {
	ranked := slices.Clone(scored)
	slices.SortStableFunc(ranked, Compare)
	return ranked
}

// Best returns the top-ranked candidate, or false when scored is empty.
func Best(scored []models.ScoredCandidate) (models.ScoredCandidate, bool) {
	if len(scored) == 0 {
		return models.ScoredCandidate{}, false
	}

	best := scored[0]
	for _, sc := range scored[1:] {
		if Compare(sc, best) < 0 {
			best = sc
		}
	}
	return best, true
}
