package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/ytlink/internal/models"
)

var styles = NewPalette("#7D56F4", "#04B575", "#FFA500", "#FF0000", "#626262")

// Palette holds the styles used for terminal output.
type Palette struct {
	title lipgloss.Style
	high  lipgloss.Style
	low   lipgloss.Style
	miss  lipgloss.Style
	dim   lipgloss.Style
}

// NewPalette builds a [Palette] from title, match, low-confidence, miss and muted colors.
func NewPalette(title, match, low, miss, dim string) *Palette {
	return &Palette{
		title: NewBold(title).MarginBottom(1),
		high:  NewBold(match),
		low:   NewStyle(low),
		miss:  NewBold(miss),
		dim:   NewEm(dim),
	}
}

func NewStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func NewBold(fg string) lipgloss.Style {
	return NewStyle(fg).Bold(true)
}

func NewEm(fg string) lipgloss.Style {
	return NewStyle(fg).Italic(true)
}

// Badge renders the confidence band of o, or its reason when it has no link.
func (p *Palette) Badge(o models.MatchOutcome) string {
	if o.Confidence == nil {
		return p.miss.Render(string(o.Reason))
	}
	switch *o.Confidence {
	case models.ConfidenceHigh, models.ConfidenceMedium:
		return p.high.Render(string(*o.Confidence))
	default:
		return p.low.Render(string(*o.Confidence))
	}
}

// RenderStyled renders the report for a terminal.
func RenderStyled(r *Report) string {
	var b strings.Builder

	b.WriteString(styles.title.Render(r.Title))
	b.WriteString("\n")

	for i, e := range r.Entries {
		fmt.Fprintf(&b, "%3d. %s  %s\n", i+1, e.Track, styles.Badge(e.Outcome))
		if e.Outcome.Matched() {
			fmt.Fprintf(&b, "     %s %s\n", e.Outcome.URL(), styles.dim.Render(e.Outcome.Title()+" · "+e.Outcome.Channel()))
		}
	}

	fmt.Fprintf(&b, "\n%s\n", styles.dim.Render(summary(r)))
	return b.String()
}

func summary(r *Report) string {
	counts := r.Counts()
	parts := []string{fmt.Sprintf("%d/%d matched", r.Matched(), len(r.Entries))}
	for _, rc := range models.ReasonCodes {
		if rc == models.ReasonMatched || counts[rc] == 0 {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s %d", rc, counts[rc]))
	}
	return strings.Join(parts, ", ")
}

// RenderCandidates renders scored search results in rank order for inspection.
func RenderCandidates(track models.TrackDescriptor, query string, ranked []models.ScoredCandidate, outcome models.MatchOutcome) string {
	var b strings.Builder

	b.WriteString(styles.title.Render(track.String()))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %q\n\n", styles.dim.Render("query"), query)

	if len(ranked) == 0 {
		b.WriteString(styles.miss.Render("no usable candidates"))
		b.WriteString("\n")
	}
	for i, sc := range ranked {
		flags := make([]string, 0, 2)
		if sc.HasDurationMatch {
			flags = append(flags, "duration")
		}
		if sc.IsOfficialChannel {
			flags = append(flags, "official")
		}
		fmt.Fprintf(&b, "%2d. %5.1f  %s  [%s] %s\n", i+1, sc.Score, sc.Candidate.Title, sc.Candidate.ChannelName, sc.Candidate.DurationTimestamp)
		fmt.Fprintf(&b, "    %s\n", styles.dim.Render(fmt.Sprintf("title %.0f  views %d  %s  %s",
			sc.TitleSimilarity, sc.Candidate.ViewCount, strings.Join(flags, " "), sc.Candidate.URL)))
	}

	fmt.Fprintf(&b, "\n%s %s\n", styles.dim.Render("outcome"), styles.Badge(outcome))
	return b.String()
}
