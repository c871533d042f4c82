package matching

import (
	"math"
	"testing"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 0.01
}

func TestFuzzy(t *testing.T) {
	t.Run("Normalize", func(t *testing.T) {
		got := Normalize("  Ed Sheeran - Shape of You (Official)  ")
		if want := "ed sheeran shape of you official"; got != want {
			t.Errorf("expected %q, got %q", want, got)
		}
	})

	t.Run("Ratio", func(t *testing.T) {
		tests := []struct {
			name string
			a, b string
			want float64
		}{
			{name: "identical", a: "abc", b: "abc", want: 100},
			{name: "case and punctuation ignored", a: "Shape of You!", b: "shape of you", want: 100},
			{name: "empty side", a: "", b: "abc", want: 0},
			{name: "edit distance", a: "kitten", b: "sitting", want: 100 * (1 - 3.0/7.0)},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				if got := Ratio(tt.a, tt.b); !approx(got, tt.want) {
					t.Errorf("Ratio(%q, %q) = %.2f, want %.2f", tt.a, tt.b, got, tt.want)
				}
			})
		}
	})

	t.Run("PartialRatio", func(t *testing.T) {
		if got := PartialRatio("Ed Sheeran", "Ed Sheeran - Shape of You (Official Music Video)"); got != 100 {
			t.Errorf("expected substring to score 100, got %.2f", got)
		}
		if got := PartialRatio("Shape of You (Official Music Video)", "ed sheeran"); got >= 100 {
			t.Errorf("expected imperfect window, got %.2f", got)
		}
		if got := PartialRatio("", "anything"); got != 0 {
			t.Errorf("expected 0 for empty input, got %.2f", got)
		}
	})

	t.Run("TokenSetRatio", func(t *testing.T) {
		tests := []struct {
			name string
			a, b string
			want float64
		}{
			{name: "reordered", a: "Shape of You", b: "you shape of", want: 100},
			{name: "subset", a: "Shape of You Ed Sheeran", b: "Ed Sheeran - Shape of You (Official Music Video)", want: 100},
			{name: "repeated words", a: "la la land", b: "land la", want: 100},
			{name: "empty", a: "", b: "shape", want: 0},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				if got := TokenSetRatio(tt.a, tt.b); !approx(got, tt.want) {
					t.Errorf("TokenSetRatio(%q, %q) = %.2f, want %.2f", tt.a, tt.b, got, tt.want)
				}
			})
		}

		t.Run("disjoint strings score low", func(t *testing.T) {
			if got := TokenSetRatio("Shape of You", "Completely Unrelated Thing"); got >= 50 {
				t.Errorf("expected low similarity, got %.2f", got)
			}
		})

		t.Run("symmetric", func(t *testing.T) {
			a, b := "Blinding Lights The Weeknd", "The Weeknd - Blinding Lights (Lyrics)"
			if TokenSetRatio(a, b) != TokenSetRatio(b, a) {
				t.Error("expected symmetric ratio")
			}
		})
	})

	t.Run("StripFeaturing", func(t *testing.T) {
		tests := []struct{ in, want string }{
			{"Shape of You (feat. Stormzy)", "Shape of You"},
			{"Shape of You [ft. Stormzy]", "Shape of You"},
			{"Shape of You Featuring Stormzy", "Shape of You"},
			{"Shape of You feat. Stormzy (Official Video)", "Shape of You"},
			{"Aftermath", "Aftermath"},
			{"Featherweight", "Featherweight"},
		}

		for _, tt := range tests {
			if got := StripFeaturing(tt.in); got != tt.want {
				t.Errorf("StripFeaturing(%q) = %q, want %q", tt.in, got, tt.want)
			}
		}
	})
}
