// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func outputFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Output raw JSON",
		},
		&cli.BoolFlag{
			Name:  "pretty",
			Usage: "Pretty-print JSON output",
		},
	}
}

// setupCommand handles database setup operations.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:   "database",
				Usage:  "Create config.toml if missing, initialize the database and run migrations",
				Action: r.SetupDatabase,
			},
			{
				Name:   "rollback",
				Usage:  "Roll back the most recent migration",
				Action: r.SetupRollback,
			},
		},
	}
}

// songsCommand handles song search, listing and import.
func songsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "songs",
		Usage: "Search and import songs",
		Commands: []*cli.Command{
			{
				Name:  "search",
				Usage: "Find songs whose title, artist, or album contains a term",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "term"},
				},
				Flags:  outputFlags(),
				Action: r.SongsSearch,
			},
			{
				Name:  "list",
				Usage: "List every song ordered by title",
				Flags: append(outputFlags(),
					&cli.BoolFlag{
						Name:  "csv",
						Usage: "Output CSV",
					},
				),
				Action: r.SongsList,
			},
			{
				Name:  "import",
				Usage: "Import songs from an iTunes/Music Library.xml export",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "file"},
				},
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Songs stored per transaction",
						Value: 500,
					},
				},
				Action: r.SongsImport,
			},
		},
	}
}

// mixesCommand handles mix search and mutations.
func mixesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "mixes",
		Usage: "Search, create, annotate and delete mixes",
		Commands: []*cli.Command{
			{
				Name:  "search",
				Usage: "Find mixes where either song matches a term",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "term"},
				},
				Flags:  outputFlags(),
				Action: r.MixesSearch,
			},
			{
				Name:  "create",
				Usage: "Pair two songs into a new mix",
				Flags: []cli.Flag{
					&cli.Int64Flag{
						Name:     "first",
						Usage:    "ID of the song played first",
						Required: true,
					},
					&cli.Int64Flag{
						Name:     "second",
						Usage:    "ID of the song played second",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "notes",
						Usage: "Transition notes",
					},
				},
				Action: r.MixesCreate,
			},
			{
				Name:  "notes",
				Usage: "Replace the notes of a mix",
				Flags: []cli.Flag{
					&cli.Int64Flag{
						Name:     "id",
						Usage:    "Mix ID",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "notes",
						Usage: "New notes (empty clears them)",
					},
				},
				Action: r.MixesNotes,
			},
			{
				Name:  "delete",
				Usage: "Delete a mix",
				Flags: []cli.Flag{
					&cli.Int64Flag{
						Name:     "id",
						Usage:    "Mix ID",
						Required: true,
					},
					&cli.BoolFlag{
						Name:    "force",
						Aliases: []string{"f"},
						Usage:   "Skip the confirmation prompt",
					},
				},
				Action: r.MixesDelete,
			},
			{
				Name:  "export",
				Usage: "Export mixes matching a term to a file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "format",
						Usage: "Export format: csv, markdown, txt, yaml, json",
						Value: "markdown",
					},
					&cli.StringFlag{
						Name:  "term",
						Usage: "Only export mixes where either song matches",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path (default: mixes.<ext>)",
					},
				},
				Action: r.MixesExport,
			},
		},
	}
}

// serveCommand runs the HTTP API.
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the catalog over HTTP",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "host",
				Usage: "Listen host (overrides server.host)",
			},
			&cli.IntFlag{
				Name:  "port",
				Usage: "Listen port (overrides server.port)",
			},
		},
		Action: r.Serve,
	}
}

// tuiCommand returns the top-level TUI command for interactive mix building.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch interactive TUI for building mixes",
		Action:  r.TUI,
	}
}
