package matching

import (
	"errors"
	"testing"
	"time"

	"github.com/desertthunder/ytlink/internal/models"
	tu "github.com/desertthunder/ytlink/internal/testing"
)

func TestQueries(t *testing.T) {
	track := models.NewTrack("Shape of You", "Ed Sheeran", 233713)
	want := []string{
		"Shape of You Ed Sheeran official audio",
		"Shape of You Ed Sheeran official",
		"Shape of You Ed Sheeran",
	}

	got := Queries(track)
	if len(got) != len(want) {
		t.Fatalf("expected %d queries, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("query %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    time.Duration
		wantErr bool
	}{
		{name: "seconds only", in: "45", want: 45 * time.Second},
		{name: "minutes", in: "3:45", want: 3*time.Minute + 45*time.Second},
		{name: "hours", in: "1:23:45", want: time.Hour + 23*time.Minute + 45*time.Second},
		{name: "zero parses", in: "0:00", want: 0},
		{name: "padded", in: " 3:05 ", want: 3*time.Minute + 5*time.Second},
		{name: "empty", in: "", wantErr: true},
		{name: "letters", in: "3:4a", wantErr: true},
		{name: "negative", in: "-1:00", wantErr: true},
		{name: "seconds out of range", in: "1:60", wantErr: true},
		{name: "missing field", in: ":30", wantErr: true},
		{name: "too many fields", in: "1:2:3:4", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimestamp(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrMalformedTimestamp) {
					t.Errorf("expected ErrMalformedTimestamp, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}

	t.Run("FormatTimestamp", func(t *testing.T) {
		if got := FormatTimestamp(225 * time.Second); got != "3:45" {
			t.Errorf("expected 3:45, got %s", got)
		}
		if got := FormatTimestamp(5025 * time.Second); got != "1:23:45" {
			t.Errorf("expected 1:23:45, got %s", got)
		}
	})
}

func TestHasNegativeKeyword(t *testing.T) {
	tests := []struct {
		title string
		want  bool
	}{
		{"Shape of You KARAOKE VERSION", true},
		{"Shape of You (Live at Wembley)", true},
		{"Acoustic Covers of 2017", true},
		{"Shape of You - Acoustic Version", true},
		{"Shape of You 8D Audio", true},
		{"Shape of You (slowed + reverb)", true},
		{"Olivia Rodrigo - drivers license", false},
		{"Delivered (Official Audio)", false},
		{"Shape of You (Acoustic)", false},
		{"Ed Sheeran - Shape of You (Official Music Video)", false},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			if got := HasNegativeKeyword(tt.title); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestFilter(t *testing.T) {
	track := models.NewTrack("Song", "Artist", 200_000)

	t.Run("duration plausibility bounds", func(t *testing.T) {
		tests := []struct {
			duration string
			kept     bool
		}{
			{"3:20", true},
			{"3:50", true},
			{"3:51", false},
			{"3:10", true},
			{"3:09", false},
			{"0:00", true},
			{"", true},
			{"n/a", true},
		}

		for _, tt := range tests {
			c := tu.Video("Artist - Song", "Artist", tt.duration, 0)
			if got := len(Filter(track, []models.CandidateVideo{c})) == 1; got != tt.kept {
				t.Errorf("duration %q: expected kept=%v, got %v", tt.duration, tt.kept, got)
			}
		}
	})

	t.Run("unknown track duration never drops", func(t *testing.T) {
		unknown := models.TrackDescriptor{Title: "Song", Artists: "Artist"}
		c := tu.Video("Artist - Song (Extended)", "Artist", "12:00", 0)
		if got := Filter(unknown, []models.CandidateVideo{c}); len(got) != 1 {
			t.Errorf("expected candidate kept, got %d", len(got))
		}
	})

	t.Run("preserves order", func(t *testing.T) {
		raw := []models.CandidateVideo{
			tu.Video("Song A", "x", "3:20", 0),
			tu.Video("Song (Karaoke)", "x", "3:20", 0),
			tu.Video("Song B", "x", "3:20", 0),
		}
		got := Filter(track, raw)
		if len(got) != 2 || got[0].Title != "Song A" || got[1].Title != "Song B" {
			t.Errorf("unexpected filter result: %+v", got)
		}
	})

	t.Run("only the top results are considered", func(t *testing.T) {
		raw := make([]models.CandidateVideo, 0, MaxCandidates+2)
		for range MaxCandidates {
			raw = append(raw, tu.Video("Song karaoke", "x", "3:20", 0))
		}
		raw = append(raw, tu.Video("Artist - Song", "Artist", "3:20", 0), tu.Video("Song", "Artist", "3:20", 0))

		if got := Filter(track, raw); len(got) != 0 {
			t.Errorf("expected results past the top %d to be ignored, got %d kept", MaxCandidates, len(got))
		}
	})
}
