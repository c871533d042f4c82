package matching

import (
	"testing"

	"github.com/desertthunder/ytlink/internal/models"
	tu "github.com/desertthunder/ytlink/internal/testing"
)

func shapeOfYou() models.TrackDescriptor {
	return models.NewTrack("Shape of You", "Ed Sheeran", 233713)
}

func TestScore(t *testing.T) {
	t.Run("official video with every signal scores the maximum", func(t *testing.T) {
		c := tu.Video("Ed Sheeran - Shape of You (Official Music Video)", "Ed Sheeran", "3:54", 500_000_000)
		sc := Score(shapeOfYou(), c)

		if sc.Score != 100 {
			t.Errorf("expected score 100, got %.2f", sc.Score)
		}
		if !sc.HasDurationMatch {
			t.Error("expected duration match")
		}
		if !sc.IsOfficialChannel {
			t.Error("expected official channel")
		}
		if sc.TitleSimilarity != 100 {
			t.Errorf("expected title similarity 100, got %.2f", sc.TitleSimilarity)
		}
	})

	t.Run("zero-length timestamp earns no duration bonus", func(t *testing.T) {
		c := tu.Video("Ed Sheeran - Shape of You", "Ed Sheeran", "0:00", 0)
		sc := Score(shapeOfYou(), c)

		if sc.HasDurationMatch {
			t.Error("expected no duration match for 0:00")
		}
		want := TitleWeight + ArtistWeight + OfficialWeight
		if !approx(sc.Score, want) {
			t.Errorf("expected %.2f, got %.2f", want, sc.Score)
		}

		withDuration := c
		withDuration.DurationTimestamp = "3:54"
		if got := Score(shapeOfYou(), withDuration).Score; !approx(got, want+DurationWeight) {
			t.Errorf("expected %.2f with a real duration, got %.2f", want+DurationWeight, got)
		}
	})

	t.Run("duration tolerance", func(t *testing.T) {
		track := models.NewTrack("Song", "Artist", 200_000)
		tests := []struct {
			duration string
			want     bool
		}{
			{"3:20", true},
			{"3:25", true},
			{"3:26", false},
			{"3:15", true},
			{"3:14", false},
		}
		for _, tt := range tests {
			sc := Score(track, tu.Video("Artist - Song", "Artist", tt.duration, 0))
			if sc.HasDurationMatch != tt.want {
				t.Errorf("%s: expected duration match %v", tt.duration, tt.want)
			}
		}
	})

	t.Run("official channel markers", func(t *testing.T) {
		tests := []struct {
			channel string
			want    bool
		}{
			{"EdSheeranVEVO", true},
			{"Ed Sheeran - Topic", true},
			{"Ed Sheeran Official", true},
			{"ed sheeran", true},
			{"Lyrics Hub", false},
		}
		for _, tt := range tests {
			if got := isOfficialChannel(tt.channel, "Ed Sheeran"); got != tt.want {
				t.Errorf("channel %q: expected %v, got %v", tt.channel, tt.want, got)
			}
		}
	})

	t.Run("popularity tiers", func(t *testing.T) {
		tests := []struct {
			views uint64
			want  float64
		}{
			{500_000_000, PopularityWeight},
			{10_000_001, PopularityWeight},
			{10_000_000, PopularityWeight / 2},
			{1_000_001, PopularityWeight / 2},
			{1_000_000, 0},
			{0, 0},
		}
		for _, tt := range tests {
			if got := popularity(tt.views); got != tt.want {
				t.Errorf("%d views: expected %.1f, got %.1f", tt.views, tt.want, got)
			}
		}
	})

	t.Run("featuring credits do not dilute similarity", func(t *testing.T) {
		track := models.NewTrack("Shape of You (feat. Stormzy)", "Ed Sheeran, Stormzy", 0)
		sc := Score(track, tu.Video("Ed Sheeran - Shape of You", "Ed Sheeran", "", 0))
		if sc.TitleSimilarity != 100 {
			t.Errorf("expected similarity 100, got %.2f", sc.TitleSimilarity)
		}
	})

	t.Run("deterministic and bounded", func(t *testing.T) {
		candidates := []models.CandidateVideo{
			tu.Video("Ed Sheeran - Shape of You (Official Music Video)", "Ed Sheeran", "3:54", 500_000_000),
			tu.Video("Shape of You lyrics", "Lyrics Hub", "3:55", 2_000_000),
			tu.Video("Completely Unrelated Thing", "Someone", "", 0),
		}
		for _, c := range candidates {
			first, second := Score(shapeOfYou(), c), Score(shapeOfYou(), c)
			if first != second {
				t.Errorf("expected identical scores for %q", c.Title)
			}
			if first.Score < 0 || first.Score > 100 {
				t.Errorf("score out of range for %q: %.2f", c.Title, first.Score)
			}
		}
	})
}

func TestRanking(t *testing.T) {
	scored := func(title string, score float64, duration, official bool, similarity float64, views uint64) models.ScoredCandidate {
		return models.ScoredCandidate{
			Candidate:         tu.Video(title, "channel", "3:00", views),
			Score:             score,
			HasDurationMatch:  duration,
			IsOfficialChannel: official,
			TitleSimilarity:   similarity,
		}
	}

	t.Run("official channel breaks a score tie", func(t *testing.T) {
		best, ok := Best([]models.ScoredCandidate{
			scored("fan upload", 62.5, true, false, 90, 100),
			scored("official upload", 62.5, true, true, 90, 100),
		})
		if !ok || best.Candidate.Title != "official upload" {
			t.Errorf("expected official upload, got %q", best.Candidate.Title)
		}
	})

	t.Run("tie-break order", func(t *testing.T) {
		tests := []struct {
			name string
			a, b models.ScoredCandidate
		}{
			{"score", scored("a", 80, false, false, 0, 0), scored("b", 79, true, true, 100, 1e9)},
			{"duration match", scored("a", 60, true, false, 0, 0), scored("b", 60, false, true, 100, 1e9)},
			{"official channel", scored("a", 60, true, true, 0, 0), scored("b", 60, true, false, 100, 1e9)},
			{"title similarity", scored("a", 60, true, true, 90, 0), scored("b", 60, true, true, 80, 1e9)},
			{"view count", scored("a", 60, true, true, 90, 2), scored("b", 60, true, true, 90, 1)},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				best, _ := Best([]models.ScoredCandidate{tt.b, tt.a})
				if best.Candidate.Title != "a" {
					t.Errorf("expected a to win on %s", tt.name)
				}
				if Compare(tt.a, tt.b) >= 0 || Compare(tt.b, tt.a) <= 0 {
					t.Error("expected Compare to be antisymmetric")
				}
			})
		}
	})

	t.Run("full tie keeps first seen", func(t *testing.T) {
		first := scored("first", 55, true, false, 70, 10)
		second := scored("second", 55, true, false, 70, 10)

		best, _ := Best([]models.ScoredCandidate{first, second})
		if best.Candidate.Title != "first" {
			t.Errorf("expected first, got %q", best.Candidate.Title)
		}

		ranked := Rank([]models.ScoredCandidate{second, first})
		if ranked[0].Candidate.Title != "second" {
			t.Errorf("expected stable rank to keep input order, got %q", ranked[0].Candidate.Title)
		}
	})

	t.Run("Rank sorts a copy", func(t *testing.T) {
		in := []models.ScoredCandidate{scored("low", 10, false, false, 0, 0), scored("high", 90, false, false, 0, 0)}
		ranked := Rank(in)
		if ranked[0].Candidate.Title != "high" {
			t.Errorf("expected high first, got %q", ranked[0].Candidate.Title)
		}
		if in[0].Candidate.Title != "low" {
			t.Error("expected input slice untouched")
		}
	})

	t.Run("empty input", func(t *testing.T) {
		if _, ok := Best(nil); ok {
			t.Error("expected no best candidate")
		}
	})
}

func TestPolicy(t *testing.T) {
	p := DefaultPolicy()

	t.Run("bands partition the score range", func(t *testing.T) {
		tests := []struct {
			score  float64
			want   models.Confidence
			reason models.ReasonCode
		}{
			{0, "", models.ReasonNoMatch},
			{39.99, "", models.ReasonNoMatch},
			{40, models.ConfidenceLow, models.ReasonLowConfidence},
			{49.99, models.ConfidenceLow, models.ReasonLowConfidence},
			{50, models.ConfidenceMedium, models.ReasonMatched},
			{69.99, models.ConfidenceMedium, models.ReasonMatched},
			{70, models.ConfidenceHigh, models.ReasonMatched},
			{100, models.ConfidenceHigh, models.ReasonMatched},
		}

		for _, tt := range tests {
			outcome := p.Classify(models.ScoredCandidate{Candidate: tu.Video("x", "y", "", 0), Score: tt.score})
			if outcome.Reason != tt.reason {
				t.Errorf("score %.2f: expected reason %s, got %s", tt.score, tt.reason, outcome.Reason)
			}
			if outcome.ConfidenceString() != string(tt.want) {
				t.Errorf("score %.2f: expected confidence %q, got %q", tt.score, tt.want, outcome.ConfidenceString())
			}
			if err := outcome.Validate(); err != nil {
				t.Errorf("score %.2f: invalid outcome: %v", tt.score, err)
			}
		}
	})

	t.Run("Validate", func(t *testing.T) {
		tests := []struct {
			name    string
			policy  Policy
			wantErr bool
		}{
			{"default", DefaultPolicy(), false},
			{"custom", Policy{MinScore: 30, MediumScore: 60, HighScore: 90}, false},
			{"unordered", Policy{MinScore: 50, MediumScore: 40, HighScore: 70}, true},
			{"equal", Policy{MinScore: 40, MediumScore: 40, HighScore: 70}, true},
			{"negative", Policy{MinScore: -1, MediumScore: 40, HighScore: 70}, true},
			{"above 100", Policy{MinScore: 40, MediumScore: 50, HighScore: 101}, true},
		}
		for _, tt := range tests {
			if err := tt.policy.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("%s: expected error=%v, got %v", tt.name, tt.wantErr, err)
			}
		}
	})
}
