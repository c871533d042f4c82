// package formatter renders match outcomes as CSV, Markdown, plain text, JSON or styled terminal output
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/desertthunder/ytlink/internal/matching"
	"github.com/desertthunder/ytlink/internal/models"
	"github.com/desertthunder/ytlink/internal/shared"
)

// Format selects an output encoding.
type Format string

const (
	FormatText     Format = "text"
	FormatStyled   Format = "styled"
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
)

// ParseFormat accepts a format name or a common alias ("md", "txt").
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "styled", "pretty":
		return FormatStyled, nil
	case "text", "txt", "plain":
		return FormatText, nil
	case "csv":
		return FormatCSV, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: unknown format %q (use text, styled, csv, markdown or json)", shared.ErrInvalidArgument, s)
	}
}

// Extension returns the file extension conventionally used for f.
func (f Format) Extension() string {
	switch f {
	case FormatCSV:
		return ".csv"
	case FormatMarkdown:
		return ".md"
	case FormatJSON:
		return ".json"
	default:
		return ".txt"
	}
}

// Entry pairs a track with its outcome.
type Entry struct {
	Track   models.TrackDescriptor `json:"track"`
	Outcome models.MatchOutcome    `json:"outcome"`
}

// Report is a titled list of entries, typically one playlist run.
type Report struct {
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Entries     []Entry `json:"entries"`
}

// NewReport zips tracks and outcomes. Extra items on either side are dropped.
func NewReport(title string, tracks []models.TrackDescriptor, outcomes []models.MatchOutcome) *Report {
	n := min(len(tracks), len(outcomes))
	r := &Report{Title: title, Entries: make([]Entry, n)}
	for i := range n {
		r.Entries[i] = Entry{Track: tracks[i], Outcome: outcomes[i]}
	}
	return r
}

// Counts tallies entries per reason code.
func (r *Report) Counts() map[models.ReasonCode]int {
	counts := make(map[models.ReasonCode]int, len(models.ReasonCodes))
	for _, e := range r.Entries {
		counts[e.Outcome.Reason]++
	}
	return counts
}

// Matched returns the number of entries carrying a link.
func (r *Report) Matched() int {
	n := 0
	for _, e := range r.Entries {
		if e.Outcome.Matched() {
			n++
		}
	}
	return n
}

// Render encodes the report in the given format.
func Render(r *Report, f Format) ([]byte, error) {
	switch f {
	case FormatCSV:
		return ToCSV(r)
	case FormatMarkdown:
		return ToMarkdown(r), nil
	case FormatJSON:
		return ToJSON(r)
	case FormatStyled:
		return []byte(RenderStyled(r)), nil
	case FormatText:
		return ToText(r), nil
	default:
		return nil, fmt.Errorf("%w: unknown format %q", shared.ErrInvalidArgument, f)
	}
}

// Write renders the report to w.
func Write(w io.Writer, r *Report, f Format) error {
	data, err := Render(r, f)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// WriteFile renders the report to path, creating parent directories.
// Styled output is written as plain text.
func WriteFile(path string, r *Report, f Format) error {
	if f == FormatStyled {
		f = FormatText
	}
	data, err := Render(r, f)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// ToCSV writes one row per entry.
func ToCSV(r *Report) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"#", "Title", "Artists", "Duration", "Reason", "Confidence", "YouTube URL", "Matched Title", "Matched Channel"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for i, e := range r.Entries {
		record := []string{
			strconv.Itoa(i + 1),
			e.Track.Title,
			e.Track.Artists,
			trackDuration(e.Track),
			string(e.Outcome.Reason),
			e.Outcome.ConfidenceString(),
			e.Outcome.URL(),
			e.Outcome.Title(),
			e.Outcome.Channel(),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}
	return buf.Bytes(), nil
}

// ToMarkdown renders a heading, a reason summary and a numbered track list with links.
func ToMarkdown(r *Report) []byte {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "# %s\n\n", r.Title)
	if r.Description != "" {
		fmt.Fprintf(&buf, "%s\n\n", r.Description)
	}
	fmt.Fprintf(&buf, "**Matched**: %d of %d\n\n", r.Matched(), len(r.Entries))

	counts := r.Counts()
	buf.WriteString("| Reason | Tracks |\n|---|---|\n")
	for _, rc := range models.ReasonCodes {
		if counts[rc] > 0 {
			fmt.Fprintf(&buf, "| %s | %d |\n", rc, counts[rc])
		}
	}

	buf.WriteString("\n## Tracks\n\n")
	for i, e := range r.Entries {
		if e.Outcome.Matched() {
			fmt.Fprintf(&buf, "%d. %s - %s: [%s](%s) (%s)\n",
				i+1, e.Track.Artists, e.Track.Title, escapeMarkdown(e.Outcome.Title()), e.Outcome.URL(), e.Outcome.ConfidenceString())
			continue
		}
		fmt.Fprintf(&buf, "%d. %s - %s: _%s_\n", i+1, e.Track.Artists, e.Track.Title, e.Outcome.Reason)
	}
	return buf.Bytes()
}

// ToText renders one line per entry.
func ToText(r *Report) []byte {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "%s\n", r.Title)
	fmt.Fprintf(&buf, "Matched: %d of %d\n\n", r.Matched(), len(r.Entries))
	for i, e := range r.Entries {
		fmt.Fprintf(&buf, "%d. %s\n", i+1, e.Track)
		if e.Outcome.Matched() {
			fmt.Fprintf(&buf, "   %s %s (%s)\n", e.Outcome.ConfidenceString(), e.Outcome.URL(), e.Outcome.Title())
		} else {
			fmt.Fprintf(&buf, "   %s\n", e.Outcome.Reason)
		}
	}
	return buf.Bytes()
}

// ToJSON renders the report as indented JSON.
func ToJSON(r *Report) ([]byte, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal report: %w", err)
	}
	return append(data, '\n'), nil
}

func trackDuration(t models.TrackDescriptor) string {
	d, ok := t.Duration()
	if !ok {
		return ""
	}
	return matching.FormatTimestamp(d)
}

var markdownEscaper = strings.NewReplacer("[", `\[`, "]", `\]`)

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}
