package matching

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/desertthunder/ytlink/internal/models"
)

// ErrMalformedTimestamp is returned by [ParseTimestamp] for empty or non-numeric input.
var ErrMalformedTimestamp = errors.New("malformed duration timestamp")

// ParseTimestamp parses a colon-delimited duration such as "45", "3:45" or "1:23:45".
//
// "0:00" parses to zero without error; callers decide what a zero duration means.
func ParseTimestamp(ts string) (time.Duration, error) {
	ts = strings.TrimSpace(ts)
	if ts == "" {
		return 0, fmt.Errorf("%w: empty", ErrMalformedTimestamp)
	}

	parts := strings.Split(ts, ":")
	if len(parts) > 3 {
		return 0, fmt.Errorf("%w: %q has too many fields", ErrMalformedTimestamp, ts)
	}

	total := 0
	for i, part := range parts {
		if part == "" || strings.IndexFunc(part, func(r rune) bool { return r < '0' || r > '9' }) >= 0 {
			return 0, fmt.Errorf("%w: %q", ErrMalformedTimestamp, ts)
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return 0, fmt.Errorf("%w: %q: %v", ErrMalformedTimestamp, ts, err)
		}
		if i > 0 && n >= 60 {
			return 0, fmt.Errorf("%w: %q field %d out of range", ErrMalformedTimestamp, ts, i+1)
		}
		total = total*60 + n
	}

	return time.Duration(total) * time.Second, nil
}

// FormatTimestamp renders a duration the way the search backend does ("3:45", "1:02:03").
func FormatTimestamp(d time.Duration) string {
	secs := int(d.Round(time.Second) / time.Second)
	h, m, s := secs/3600, (secs%3600)/60, secs%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// candidateDuration returns the candidate's duration when it is usable.
//
// Malformed timestamps and zero-length ones ("0:00" is what the backend reports for
// unavailable or live videos) are both unknown: never filtered on, never rewarded.
func candidateDuration(c models.CandidateVideo) (time.Duration, bool) {
	d, err := ParseTimestamp(c.DurationTimestamp)
	if err != nil || d <= 0 {
		return 0, false
	}
	return d, true
}
