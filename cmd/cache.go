package main

import (
	"context"

	"github.com/desertthunder/ytlink/internal/models"
	"github.com/urfave/cli/v3"
)

// CacheStats prints entry counts per reason code.
func (r *Runner) CacheStats(ctx context.Context, cmd *cli.Command) error {
	store, err := r.outcomeStore()
	if err != nil {
		return err
	}

	stats, err := store.Stats()
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(stats, true)
	}

	r.writePlain("Entries: %d (%d live, %d expired)\n", stats.Total, stats.Live, stats.Expired)
	r.writePlain("Hits:    %d\n", stats.Hits)
	for _, rc := range models.ReasonCodes {
		if n := stats.ByReason[rc]; n > 0 {
			r.writePlain("  %-17s %d\n", rc, n)
		}
	}
	return nil
}

// CachePurge deletes expired entries.
func (r *Runner) CachePurge(ctx context.Context, cmd *cli.Command) error {
	store, err := r.outcomeStore()
	if err != nil {
		return err
	}

	n, err := store.Purge()
	if err != nil {
		return err
	}

	r.logger.Info("cache purged", "removed", n)
	return r.writePlain("✓ Removed %d expired entries\n", n)
}

// CacheClear deletes every entry.
func (r *Runner) CacheClear(ctx context.Context, cmd *cli.Command) error {
	store, err := r.outcomeStore()
	if err != nil {
		return err
	}

	n, err := store.Clear()
	if err != nil {
		return err
	}

	r.logger.Info("cache cleared", "removed", n)
	return r.writePlain("✓ Removed %d entries\n", n)
}
