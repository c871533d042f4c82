package main

import (
	"context"

	"github.com/desertthunder/ytlink/internal/server"
	"github.com/desertthunder/ytlink/internal/shared"
	"github.com/urfave/cli/v3"
)

// Serve runs the HTTP API until interrupted.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	matcher, err := r.matcher(ctx, true)
	if err != nil {
		return err
	}
	searcher, err := r.searchBackend(ctx)
	if err != nil {
		return err
	}

	cfg := r.config.Server
	if host := cmd.String("host"); host != "" {
		cfg.Host = host
	}
	if port := cmd.Int("port"); port != 0 {
		cfg.Port = int(port)
	}

	srv := server.NewServer(server.ServerOpts{
		Matcher:           matcher,
		Backend:           searcher.Name(),
		MaxBatchSize:      r.config.Matching.MaxBatchSize,
		RequestsPerMinute: cfg.RequestsPerMinute,
		Burst:             cfg.Burst,
		Logger:            shared.WithLogger(r.logger, "component", "server"),
	})

	return srv.ListenAndServe(ctx, cfg.Addr())
}
