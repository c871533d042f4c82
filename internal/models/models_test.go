package models

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestTrackKey(t *testing.T) {
	tc := []struct {
		name    string
		title   string
		artists string
		want    string
	}{
		{name: "basic normalization", title: "Song Title", artists: "Artist Name", want: "song title|artist name"},
		{name: "extra whitespace", title: "  Song   Title  ", artists: "  Artist   Name  ", want: "song title|artist name"},
		{name: "mixed case", title: "SoNg TiTlE", artists: "ArTiSt NaMe", want: "song title|artist name"},
		{name: "artist list kept whole", title: "Stay", artists: "The Kid LAROI, Justin Bieber", want: "stay|the kid laroi, justin bieber"},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			if got := TrackKey(tt.title, tt.artists); got != tt.want {
				t.Errorf("TrackKey() = %v, want %v", got, tt.want)
			}
		})
	}

	t.Run("duration does not participate", func(t *testing.T) {
		a := NewTrack("Shape of You", "Ed Sheeran", 233713)
		b := NewTrack("shape of you", "ED SHEERAN", 0)
		if a.Key() != b.Key() {
			t.Errorf("expected equal keys, got %q and %q", a.Key(), b.Key())
		}
	})
}

func TestTrackDescriptor(t *testing.T) {
	t.Run("PrimaryArtist", func(t *testing.T) {
		tests := []struct {
			artists string
			want    string
		}{
			{"Ed Sheeran", "Ed Sheeran"},
			{"The Kid LAROI, Justin Bieber", "The Kid LAROI"},
			{" Daft Punk ,Pharrell Williams", "Daft Punk"},
			{"", ""},
		}
		for _, tt := range tests {
			track := TrackDescriptor{Title: "x", Artists: tt.artists}
			if got := track.PrimaryArtist(); got != tt.want {
				t.Errorf("PrimaryArtist(%q) = %q, want %q", tt.artists, got, tt.want)
			}
		}
	})

	t.Run("Duration", func(t *testing.T) {
		if _, ok := NewTrack("a", "b", 0).Duration(); ok {
			t.Error("expected zero duration to be unknown")
		}
		d, ok := NewTrack("a", "b", 233713).Duration()
		if !ok {
			t.Fatal("expected duration to be known")
		}
		if d != 233713*time.Millisecond {
			t.Errorf("expected 233.713s, got %v", d)
		}
	})

	t.Run("Validate", func(t *testing.T) {
		if err := NewTrack("Song", "Artist", 0).Validate(); err != nil {
			t.Errorf("expected valid track, got %v", err)
		}
		if err := NewTrack("  ", "Artist", 0).Validate(); err == nil {
			t.Error("expected error for empty title")
		}
		if err := NewTrack("Song", "", 0).Validate(); err == nil {
			t.Error("expected error for empty artists")
		}
	})
}

func TestMatchOutcome(t *testing.T) {
	video := CandidateVideo{Title: "Song", URL: "https://www.youtube.com/watch?v=abc", ChannelName: "Artist"}

	t.Run("matched outcomes derive reason from confidence", func(t *testing.T) {
		tests := []struct {
			confidence Confidence
			want       ReasonCode
		}{
			{ConfidenceHigh, ReasonMatched},
			{ConfidenceMedium, ReasonMatched},
			{ConfidenceLow, ReasonLowConfidence},
		}
		for _, tt := range tests {
			o := NewMatchedOutcome(video, tt.confidence)
			if o.Reason != tt.want {
				t.Errorf("confidence %s: expected reason %s, got %s", tt.confidence, tt.want, o.Reason)
			}
			if !o.Matched() || o.URL() != video.URL {
				t.Errorf("confidence %s: expected url %s, got %q", tt.confidence, video.URL, o.URL())
			}
			if err := o.Validate(); err != nil {
				t.Errorf("confidence %s: unexpected validation error: %v", tt.confidence, err)
			}
		}
	})

	t.Run("empty outcomes carry no link", func(t *testing.T) {
		for _, rc := range []ReasonCode{ReasonNoResults, ReasonNegativeKeyword, ReasonNoMatch, ReasonSearchError} {
			o := NewEmptyOutcome(rc)
			if o.Matched() || o.Confidence != nil {
				t.Errorf("%s: expected nil url and confidence", rc)
			}
			if err := o.Validate(); err != nil {
				t.Errorf("%s: unexpected validation error: %v", rc, err)
			}
		}
	})

	t.Run("Validate rejects broken coupling", func(t *testing.T) {
		url := "https://example.com"
		high := ConfidenceHigh
		low := ConfidenceLow
		bad := []MatchOutcome{
			{YouTubeURL: &url, Reason: ReasonMatched},
			{Confidence: &high, Reason: ReasonMatched},
			{YouTubeURL: &url, Confidence: &high, Reason: ReasonLowConfidence},
			{YouTubeURL: &url, Confidence: &low, Reason: ReasonMatched},
			{Reason: ReasonMatched},
		}
		for i, o := range bad {
			if err := o.Validate(); err == nil {
				t.Errorf("case %d: expected validation error", i)
			}
		}
	})

	t.Run("JSON wire shape", func(t *testing.T) {
		data, err := json.Marshal(NewEmptyOutcome(ReasonNoResults))
		if err != nil {
			t.Fatalf("marshal failed: %v", err)
		}
		got := string(data)
		for _, want := range []string{`"youtubeUrl":null`, `"confidence":null`, `"reasonCode":"no_results"`} {
			if !strings.Contains(got, want) {
				t.Errorf("expected %s in %s", want, got)
			}
		}
	})

	t.Run("UnmarshalJSON rejects inconsistent records", func(t *testing.T) {
		var o MatchOutcome
		if err := json.Unmarshal([]byte(`{"youtubeUrl":"x","confidence":null,"reasonCode":"matched"}`), &o); err == nil {
			t.Error("expected error for url without confidence")
		}
		if err := json.Unmarshal([]byte(`{"reasonCode":"bogus"}`), &o); err == nil {
			t.Error("expected error for unknown reason code")
		}
		if err := json.Unmarshal([]byte(`{"youtubeUrl":"x","confidence":"LOW","reasonCode":"low_confidence"}`), &o); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if o.ConfidenceString() != "LOW" {
			t.Errorf("expected LOW, got %q", o.ConfidenceString())
		}
	})
}

func TestParseEnums(t *testing.T) {
	for _, rc := range ReasonCodes {
		got, err := ParseReasonCode(string(rc))
		if err != nil || got != rc {
			t.Errorf("ParseReasonCode(%q) = %q, %v", rc, got, err)
		}
	}
	if _, err := ParseConfidence("VERY_HIGH"); err == nil {
		t.Error("expected error for unknown confidence")
	}
	if c, err := ParseConfidence("MEDIUM"); err != nil || c != ConfidenceMedium {
		t.Errorf("ParseConfidence(MEDIUM) = %q, %v", c, err)
	}
}
