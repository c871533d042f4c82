package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/desertthunder/ytlink/internal/formatter"
	"github.com/desertthunder/ytlink/internal/models"
	"github.com/desertthunder/ytlink/internal/shared"
	"github.com/desertthunder/ytlink/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Match resolves tracks from flags or --file in batches of matching.max_batch_size.
func (r *Runner) Match(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	tracks, err := tracksFromCommand(cmd)
	if err != nil {
		return err
	}

	matcher, err := r.matcher(ctx, !cmd.Bool("no-cache"))
	if err != nil {
		return err
	}

	batches := tasks.Chunk(tracks, r.config.Matching.MaxBatchSize)
	outcomes := make([]models.MatchOutcome, 0, len(tracks))
	for i, batch := range batches {
		r.logger.Debug("matching batch", "batch", i+1, "of", len(batches), "tracks", len(batch))
		outcomes = append(outcomes, matcher.MatchBatch(ctx, batch)...)
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	return r.writeReport(formatter.NewReport("Matches", tracks, outcomes), format, cmd.String("output"))
}

// tracksFromCommand reads either --file or the --title/--artists/--duration-ms flags.
func tracksFromCommand(cmd *cli.Command) ([]models.TrackDescriptor, error) {
	path := cmd.String("file")
	if path == "" {
		track, err := trackFromFlags(cmd)
		if err != nil {
			return nil, err
		}
		return []models.TrackDescriptor{track}, nil
	}

	if cmd.String("title") != "" {
		return nil, fmt.Errorf("%w: use either --file or --title, not both", shared.ErrInvalidArgument)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tracks file: %w", err)
	}
	return parseTracks(data)
}

func trackFromFlags(cmd *cli.Command) (models.TrackDescriptor, error) {
	if cmd.String("title") == "" {
		return models.TrackDescriptor{}, fmt.Errorf("%w: --title (or --file)", shared.ErrMissingArgument)
	}

	duration := cmd.Int("duration-ms")
	if duration < 0 {
		return models.TrackDescriptor{}, fmt.Errorf("%w: --duration-ms must not be negative", shared.ErrInvalidArgument)
	}

	track := models.NewTrack(cmd.String("title"), cmd.String("artists"), uint32(duration))
	if err := track.Validate(); err != nil {
		return models.TrackDescriptor{}, fmt.Errorf("%w: %v", shared.ErrInvalidTrack, err)
	}
	return track, nil
}

// parseTracks accepts a JSON array of tracks or an object with a "tracks" array.
func parseTracks(data []byte) ([]models.TrackDescriptor, error) {
	var tracks []models.TrackDescriptor

	trimmed := bytes.TrimSpace(data)
	if bytes.HasPrefix(trimmed, []byte("{")) {
		var envelope struct {
			Tracks []models.TrackDescriptor `json:"tracks"`
		}
		if err := json.Unmarshal(trimmed, &envelope); err != nil {
			return nil, fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
		}
		tracks = envelope.Tracks
	} else if err := json.Unmarshal(trimmed, &tracks); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	if len(tracks) == 0 {
		return nil, fmt.Errorf("%w: no tracks in file", shared.ErrInvalidInput)
	}
	for i, track := range tracks {
		if err := track.Validate(); err != nil {
			return nil, fmt.Errorf("%w: track %d: %v", shared.ErrInvalidTrack, i+1, err)
		}
	}
	return tracks, nil
}
