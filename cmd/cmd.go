// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func trackFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "title",
			Aliases: []string{"t"},
			Usage:   "Track title",
		},
		&cli.StringFlag{
			Name:    "artists",
			Aliases: []string{"a"},
			Usage:   "Comma-separated artists, primary artist first",
		},
		&cli.IntFlag{
			Name:  "duration-ms",
			Usage: "Track duration in milliseconds (0 = unknown)",
		},
	}
}

func reportFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "Output format: styled, text, csv, markdown or json",
			Value:   "styled",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Write the report to a file instead of stdout",
		},
		&cli.BoolFlag{
			Name:  "no-cache",
			Usage: "Ignore and do not update the match cache",
		},
	}
}

// matchCommand matches ad-hoc tracks given by flags or a JSON file
func matchCommand(r *Runner) *cli.Command {
	flags := append(trackFlags(), reportFlags()...)
	flags = append(flags, &cli.StringFlag{
		Name:  "file",
		Usage: `JSON file with [{"title","artists","durationMs"}] or {"tracks":[...]}`,
	})

	return &cli.Command{
		Name:   "match",
		Usage:  "Find YouTube links for one or more tracks",
		Flags:  flags,
		Action: r.Match,
	}
}

// playlistCommand matches every track of a Spotify playlist
func playlistCommand(r *Runner) *cli.Command {
	flags := append([]cli.Flag{
		&cli.StringFlag{
			Name:     "id",
			Usage:    "Spotify playlist ID, URI or URL",
			Required: true,
		},
		&cli.IntFlag{
			Name:  "batch-size",
			Usage: "Tracks per batch (default: matching.max_batch_size)",
		},
	}, reportFlags()...)

	return &cli.Command{
		Name:    "playlist",
		Aliases: []string{"pl"},
		Usage:   "Find YouTube links for a Spotify playlist",
		Flags:   flags,
		Action:  r.Playlist,
	}
}

// searchCommand shows how a single search scores
func searchCommand(r *Runner) *cli.Command {
	flags := append(trackFlags(),
		&cli.StringFlag{
			Name:    "query",
			Aliases: []string{"q"},
			Usage:   "Search query (default: the most specific generated query)",
		},
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Output raw JSON",
		},
	)

	return &cli.Command{
		Name:   "search",
		Usage:  "Run one search and show every candidate with its score",
		Flags:  flags,
		Action: r.Search,
	}
}

// serveCommand runs the HTTP API
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the batch match API over HTTP",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "host",
				Usage: "Listen host (default: server.host)",
			},
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Listen port (default: server.port)",
			},
		},
		Action: r.Serve,
	}
}

// cacheCommand inspects and maintains the match cache
func cacheCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "Inspect and maintain the match cache",
		Commands: []*cli.Command{
			{
				Name:  "stats",
				Usage: "Show cache entry counts",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.CacheStats,
			},
			{
				Name:   "purge",
				Usage:  "Delete expired entries",
				Action: r.CachePurge,
			},
			{
				Name:   "clear",
				Usage:  "Delete every entry",
				Action: r.CacheClear,
			},
		},
	}
}

// setupCommand handles first-run setup
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:   "config",
				Usage:  "Write an example config file to the --config path",
				Action: r.SetupConfig,
			},
			{
				Name:  "database",
				Usage: "Initialize the cache database and run migrations",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "rollback",
						Usage: "Roll back the most recent migration instead",
					},
				},
				Action: r.SetupDatabase,
			},
		},
	}
}
