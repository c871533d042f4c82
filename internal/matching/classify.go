package matching

import (
	"fmt"

	"github.com/desertthunder/ytlink/internal/models"
)

// Policy holds the score thresholds that separate the confidence bands.
//
//	score < MinScore           no_match
//	MinScore <= s < Medium     LOW (low_confidence)
//	Medium <= s < High         MEDIUM (matched)
//	s >= HighScore             HIGH (matched)
type Policy struct {
	MinScore    float64
	MediumScore float64
	HighScore   float64
}

func DefaultPolicy() Policy {
	return Policy{MinScore: 40, MediumScore: 50, HighScore: 70}
}

// Validate requires 0 <= MinScore < MediumScore < HighScore <= 100.
func (p Policy) Validate() error {
	if p.MinScore < 0 || p.HighScore > 100 {
		return fmt.Errorf("thresholds must lie within [0, 100]: %+v", p)
	}
	if !(p.MinScore < p.MediumScore && p.MediumScore < p.HighScore) {
		return fmt.Errorf("thresholds must be strictly increasing: %+v", p)
	}
	return nil
}

// Band returns the confidence band for a score, or false below MinScore.
func (p Policy) Band(score float64) (models.Confidence, bool) {
	switch {
	case score >= p.HighScore:
		return models.ConfidenceHigh, true
	case score >= p.MediumScore:
		return models.ConfidenceMedium, true
	case score >= p.MinScore:
		return models.ConfidenceLow, true
	default:
		return "", false
	}
}

// Classify turns the winning candidate into an outcome.
func (p Policy) Classify(best models.ScoredCandidate) models.MatchOutcome {
	confidence, ok := p.Band(best.Score)
	if !ok {
		return models.NewEmptyOutcome(models.ReasonNoMatch)
	}
	return models.NewMatchedOutcome(best.Candidate, confidence)
}
