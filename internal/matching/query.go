package matching

import (
	"fmt"
	"strings"

	"github.com/desertthunder/ytlink/internal/models"
)

var querySuffixes = []string{" official audio", " official", ""}

// Queries returns the search queries for a track, most specific first.
func Queries(track models.TrackDescriptor) []string {
	base := strings.TrimSpace(fmt.Sprintf("%s %s", strings.TrimSpace(track.Title), strings.TrimSpace(track.Artists)))

	queries := make([]string, len(querySuffixes))
	for i, suffix := range querySuffixes {
		queries[i] = base + suffix
	}
	return queries
}
