package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/ytlink/internal/formatter"
	"github.com/desertthunder/ytlink/internal/models"
	"github.com/desertthunder/ytlink/internal/services"
	"github.com/desertthunder/ytlink/internal/shared"
	"github.com/desertthunder/ytlink/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Playlist matches a Spotify playlist and renders the report.
//
// On interrupt the tracks matched so far are still reported before the error is returned.
func (r *Runner) Playlist(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	playlistID, err := services.ParsePlaylistID(cmd.String("id"))
	if err != nil {
		return err
	}

	source, err := r.playlistSource(ctx)
	if err != nil {
		return err
	}

	matcher, err := r.matcher(ctx, !cmd.Bool("no-cache"))
	if err != nil {
		return err
	}

	size := int(cmd.Int("batch-size"))
	if size == 0 {
		size = r.config.Matching.MaxBatchSize
	}
	if size < 1 || size > r.config.Matching.MaxBatchSize {
		return fmt.Errorf("%w: --batch-size must be between 1 and %d", shared.ErrInvalidArgument, r.config.Matching.MaxBatchSize)
	}

	engine := tasks.NewPlaylistEngine(tasks.PlaylistEngineOpts{
		Source:    source,
		Matcher:   matcher,
		BatchSize: size,
		Logger:    shared.WithLogger(r.logger, "component", "playlist"),
	})

	progress := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progress {
			r.logProgress(update)
		}
	}()

	result, err := engine.Run(ctx, playlistID, progress)
	close(progress)
	<-done

	if result == nil {
		return err
	}

	if werr := r.writeReport(runReport(result), format, cmd.String("output")); werr != nil {
		return werr
	}
	return err
}

// logProgress sends progress to the logger so stdout stays clean for the report.
func (r *Runner) logProgress(update tasks.ProgressUpdate) {
	switch update.Phase {
	case tasks.MatchTrack:
		r.logger.Debug(update.Message)
	default:
		r.logger.Info(update.Message)
	}
}

func runReport(result *tasks.PlaylistRunResult) *formatter.Report {
	tracks := make([]models.TrackDescriptor, len(result.Tracks))
	for i, tr := range result.Tracks {
		tracks[i] = tr.Track
	}

	title := "Playlist"
	if result.Playlist != nil {
		title = result.Playlist.Name
	}
	report := formatter.NewReport(title, tracks, result.Outcomes())
	report.Description = fmt.Sprintf("%d of %d tracks matched (%.1f%%)", result.MatchedCount, result.TotalTracks, result.MatchPercentage)
	return report
}
