package main

import (
	"context"

	"github.com/desertthunder/ytlink/internal/formatter"
	"github.com/desertthunder/ytlink/internal/matching"
	"github.com/desertthunder/ytlink/internal/models"
	"github.com/urfave/cli/v3"
)

// SearchResult is the JSON output of the search command.
type SearchResult struct {
	Track      models.TrackDescriptor   `json:"track"`
	Query      string                   `json:"query"`
	Raw        []models.CandidateVideo  `json:"raw"`
	Candidates []models.ScoredCandidate `json:"candidates"`
	Outcome    models.MatchOutcome      `json:"outcome"`
}

// Search runs a single query and shows how each surviving candidate scores. The cache is not consulted.
func (r *Runner) Search(ctx context.Context, cmd *cli.Command) error {
	track, err := trackFromFlags(cmd)
	if err != nil {
		return err
	}

	searcher, err := r.searchBackend(ctx)
	if err != nil {
		return err
	}

	query := cmd.String("query")
	if query == "" {
		query = matching.Queries(track)[0]
	}

	raw, err := searcher.Search(ctx, query)
	if err != nil {
		return err
	}

	result := SearchResult{Track: track, Query: query, Raw: raw}
	if len(raw) == 0 {
		result.Outcome = models.NewEmptyOutcome(models.ReasonNoResults)
	} else {
		result.Candidates = matching.Rank(matching.ScoreAll(track, matching.Filter(track, raw)))
		result.Outcome = r.engine(searcher).Evaluate(track, raw)
	}
	r.logger.Debug("search complete", "query", query, "raw", len(raw), "kept", len(result.Candidates))

	if cmd.Bool("json") {
		return r.writeJSON(result, true)
	}
	return r.writePlain("%s", formatter.RenderCandidates(track, query, result.Candidates, result.Outcome))
}
