package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/ytlink/internal/formatter"
	"github.com/desertthunder/ytlink/internal/matching"
	"github.com/desertthunder/ytlink/internal/repositories"
	"github.com/desertthunder/ytlink/internal/services"
	"github.com/desertthunder/ytlink/internal/shared"
	"github.com/desertthunder/ytlink/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
//
// Collaborators are built on first use so commands that do not search never need credentials.
type Runner struct {
	config   *shared.Config
	logger   *log.Logger
	output   io.Writer
	searcher services.Searcher
	source   services.PlaylistSource
	cache    repositories.Store
	db       *sql.DB
}

// RunnerOpts contains configuration options for creating a Runner.
//
// A nil Config is loaded from the --config flag. The collaborators are test seams.
type RunnerOpts struct {
	Config   *shared.Config
	Logger   *log.Logger
	Output   io.Writer
	Searcher services.Searcher
	Source   services.PlaylistSource
	Cache    repositories.Store
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	return &Runner{
		config:   opts.Config,
		logger:   opts.Logger,
		output:   opts.Output,
		searcher: opts.Searcher,
		source:   opts.Source,
		cache:    opts.Cache,
	}
}

// App returns the root command.
func (r *Runner) App() *cli.Command {
	return &cli.Command{
		Name:    "ytlink",
		Usage:   "Find YouTube links for Spotify tracks",
		Version: "0.1.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
			&cli.StringFlag{
				Name:  "env-file",
				Usage: "Path to a .env file with credential overrides",
				Value: ".env",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Override logging.level (debug, info, warn, error)",
			},
		},
		Before:   r.Before,
		Commands: r.register(),
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		matchCommand, playlistCommand, searchCommand, serveCommand, cacheCommand, setupCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// Before loads configuration and applies the log level.
//
// A missing config file is not an error: the embedded defaults apply.
func (r *Runner) Before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if r.config == nil {
		shared.LoadEnv(cmd.String("env-file"))

		path := cmd.String("config")
		config, err := shared.LoadConfig(path)
		switch {
		case errors.Is(err, shared.ErrMissingConfig):
			r.logger.Debug("config file not found, using defaults", "path", path)
			config = shared.DefaultConfig()
		case err != nil:
			return ctx, err
		}
		config.ApplyEnv()
		r.config = config
	}

	level := cmd.String("log-level")
	if level == "" {
		level = r.config.Logging.Level
	}
	ll, err := shared.ParseLogLevel(level)
	if err != nil {
		return ctx, err
	}
	shared.SetLogLevel(r.logger, ll)

	return ctx, r.config.Validate()
}

// Close releases the cache database, if one was opened.
func (r *Runner) Close() {
	if r.db != nil {
		if err := r.db.Close(); err != nil {
			r.logger.Warn("failed to close database", "err", err)
		}
		r.db = nil
	}
}

// searchBackend selects the Data API when an api_key is configured and the proxy otherwise, paced by search_rate.
func (r *Runner) searchBackend(ctx context.Context) (services.Searcher, error) {
	if r.searcher != nil {
		return r.searcher, nil
	}

	var backend services.Searcher
	yt := r.config.Credentials.YouTube
	switch {
	case yt.APIKey != "":
		svc, err := services.NewDataAPIService(ctx, yt.APIKey)
		if err != nil {
			return nil, err
		}
		backend = svc
	case yt.ProxyURL != "":
		backend = services.NewYouTubeService(yt.ProxyURL)
	default:
		return nil, fmt.Errorf("%w: set credentials.youtube.api_key or credentials.youtube.proxy_url", shared.ErrMissingCredentials)
	}

	m := r.config.Matching
	r.searcher = services.NewRateLimitedSearcher(backend, m.SearchRate, m.SearchBurst)
	r.logger.Debug("search backend ready", "backend", backend.Name(), "rate", m.SearchRate)
	return r.searcher, nil
}

// playlistSource authenticates against Spotify with the configured app credentials.
func (r *Runner) playlistSource(ctx context.Context) (services.PlaylistSource, error) {
	if r.source != nil {
		return r.source, nil
	}

	svc, err := services.NewSpotifyService(r.config.Credentials.Spotify.Map())
	if err != nil {
		return nil, err
	}
	if err := svc.Authenticate(ctx); err != nil {
		return nil, err
	}
	r.source = svc
	return svc, nil
}

// outcomeStore opens the SQLite cache at database.path, or an in-memory cache when the path is empty.
func (r *Runner) outcomeStore() (repositories.Store, error) {
	if r.cache != nil {
		return r.cache, nil
	}

	db := r.config.Database
	if db.Path == "" {
		r.logger.Debug("no database path configured, caching in memory")
		r.cache = repositories.NewMemoryCache()
		return r.cache, nil
	}

	conn, err := shared.OpenMigrated(db.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}
	if db.Path != ":memory:" {
		shared.ConfigureDatabase(conn, db.MaxOpenConns, db.MaxIdleConns)
	}

	r.db = conn
	r.cache = repositories.NewMatchCacheRepository(conn)
	return r.cache, nil
}

func (r *Runner) engine(searcher services.Searcher) *matching.Engine {
	m := r.config.Matching
	return matching.NewEngine(matching.EngineOpts{
		Searcher: searcher,
		Policy:   matching.Policy{MinScore: m.MinScore, MediumScore: m.MediumScore, HighScore: m.HighScore},
		Logger:   shared.WithLogger(r.logger, "component", "engine"),
	})
}

// matcher wires search backend, engine, orchestrator and cache. useCache=false bypasses the cache entirely.
func (r *Runner) matcher(ctx context.Context, useCache bool) (*tasks.Matcher, error) {
	searcher, err := r.searchBackend(ctx)
	if err != nil {
		return nil, err
	}

	ttl, err := r.config.Matching.TTL()
	if err != nil {
		return nil, err
	}

	var cache repositories.OutcomeCache
	if useCache {
		store, err := r.outcomeStore()
		if err != nil {
			return nil, err
		}
		cache = store
	}

	orchestrator := tasks.NewOrchestrator(tasks.OrchestratorOpts{
		Matcher:     r.engine(searcher),
		Concurrency: r.config.Matching.Concurrency,
		Logger:      shared.WithLogger(r.logger, "component", "orchestrator"),
	})

	return tasks.NewMatcher(tasks.MatcherOpts{
		Evaluator: orchestrator,
		Cache:     cache,
		TTL:       ttl,
		Logger:    shared.WithLogger(r.logger, "component", "matcher"),
	}), nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// writeReport prints the report, or writes it to path when one is given.
func (r *Runner) writeReport(report *formatter.Report, format formatter.Format, path string) error {
	if path == "" {
		return formatter.Write(r.output, report, format)
	}
	if err := formatter.WriteFile(path, report, format); err != nil {
		return err
	}
	r.logger.Info("report written", "path", path, "format", format)
	return r.writePlain("✓ Report saved to %s\n", path)
}
