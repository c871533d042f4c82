package services

import (
	"context"
	"testing"
	"time"

	"github.com/desertthunder/ytlink/internal/models"
	tu "github.com/desertthunder/ytlink/internal/testing"
)

type namedSearcher struct{ *tu.MockSearcher }

func (namedSearcher) Name() string { return "mock" }

func TestRateLimitedSearcher(t *testing.T) {
	t.Run("delegates", func(t *testing.T) {
		inner := namedSearcher{&tu.MockSearcher{Results: map[string][]models.CandidateVideo{
			"q": {tu.Video("Song", "Artist", "3:00", 1)},
		}}}
		rl := NewRateLimitedSearcher(inner, 0, 0)

		results, err := rl.Search(context.Background(), "q")
		if err != nil || len(results) != 1 {
			t.Fatalf("expected 1 result, got %v, %v", results, err)
		}
		if rl.Name() != "mock" {
			t.Errorf("expected inner name, got %s", rl.Name())
		}
	})

	t.Run("paces calls beyond the burst", func(t *testing.T) {
		inner := namedSearcher{&tu.MockSearcher{}}
		rl := NewRateLimitedSearcher(inner, 20, 1)

		start := time.Now()
		for range 3 {
			if _, err := rl.Search(context.Background(), "q"); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		}
		if elapsed := time.Since(start); elapsed < 80*time.Millisecond {
			t.Errorf("expected pacing of ~100ms, took %v", elapsed)
		}
	})

	t.Run("cancelled wait", func(t *testing.T) {
		inner := namedSearcher{&tu.MockSearcher{}}
		rl := NewRateLimitedSearcher(inner, 0.001, 1)
		rl.Search(context.Background(), "first")

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if _, err := rl.Search(ctx, "second"); err == nil {
			t.Error("expected error from cancelled wait")
		}
		if calls := inner.Calls(); len(calls) != 1 {
			t.Errorf("expected only the first call to reach the backend, got %v", calls)
		}
	})
}
