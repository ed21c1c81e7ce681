// submodule cmd contains command definitions
package main

import (
	"context"

	"github.com/seven7een/museick-go/internal/models"
	"github.com/urfave/cli/v3"
)

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

func monthFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "month",
		Aliases: []string{"m"},
		Usage:   "Month key (YYYY-MM), defaults to the current month",
	}
}

func typeFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "type",
		Aliases: []string{"t"},
		Usage:   "Item type: track, album, or artist",
		Value:   "track",
	}
}

// setupCommand handles setup operations for the local database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:   "database",
				Usage:  "Initialize database and run migrations",
				Flags:  []cli.Flag{configFlag()},
				Action: r.SetupDatabase,
			},
		},
	}
}

// authCommand handles authentication operations
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage authentication",
		Commands: []*cli.Command{
			{
				Name:  "login",
				Usage: "Authorize with Spotify (PKCE) and store the catalog token",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "no-browser",
						Usage: "Print the authorize URL instead of opening a browser",
					},
				},
				Action: r.AuthLogin,
			},
			{
				Name:   "status",
				Usage:  "Show current authentication state",
				Action: r.AuthStatus,
			},
			{
				Name:   "refresh",
				Usage:  "Force a catalog token refresh through the backend",
				Action: r.AuthRefresh,
			},
			{
				Name:   "logout",
				Usage:  "Clear stored tokens",
				Action: r.AuthLogout,
			},
			{
				Name:  "session",
				Usage: "Store a backend session token",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "token"},
				},
				Action: r.AuthSession,
			},
		},
	}
}

// searchCommand queries the catalog directly, one-shot.
func searchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "search",
		Usage: "Search the catalog",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "query"},
		},
		Flags: []cli.Flag{
			typeFlag(),
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum number of results per type",
				Value: 20,
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
				Value: true,
			},
		},
		Action: r.Search,
	}
}

// topCommand lists the user's most played tracks.
func topCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "top",
		Usage: "Show your most played tracks",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "range",
				Usage: "Time range: short_term, medium_term, or long_term",
				Value: "medium_term",
			},
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum number of tracks",
				Value: 20,
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.Top,
	}
}

// selectionCommands builds the shared subcommand set for one axis.
func selectionCommands(r *Runner, axis models.Axis) []*cli.Command {
	return []*cli.Command{
		{
			Name:  "add",
			Usage: "Add a catalog item to the month's shortlist",
			Arguments: []cli.Argument{
				&cli.StringArg{Name: "id"},
			},
			Flags: []cli.Flag{typeFlag(), monthFlag()},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return r.SelectionAdd(ctx, cmd, axis)
			},
		},
		{
			Name:  "pick",
			Usage: "Promote a catalog item to the month's pick",
			Arguments: []cli.Argument{
				&cli.StringArg{Name: "id"},
			},
			Flags: []cli.Flag{typeFlag(), monthFlag()},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return r.SelectionPick(ctx, cmd, axis)
			},
		},
		{
			Name:  "unpick",
			Usage: "Demote the month's pick back to the shortlist",
			Flags: []cli.Flag{monthFlag()},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return r.SelectionUnpick(ctx, cmd, axis)
			},
		},
		{
			Name:  "remove",
			Usage: "Remove a selection record entirely",
			Arguments: []cli.Argument{
				&cli.StringArg{Name: "id"},
			},
			Action: r.SelectionRemove,
		},
		{
			Name:  "list",
			Usage: "Show the month's pick and shortlist",
			Flags: []cli.Flag{
				monthFlag(),
				&cli.BoolFlag{
					Name:  "json",
					Usage: "Output raw JSON",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return r.SelectionList(ctx, cmd, axis)
			},
		},
	}
}

// museCommand handles operations on the muse axis
func museCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:     "muse",
		Usage:    "Manage the month's muse (favorite)",
		Commands: selectionCommands(r, models.AxisMuse),
	}
}

// ickCommand handles operations on the ick axis
func ickCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:     "ick",
		Usage:    "Manage the month's ick (least favorite)",
		Commands: selectionCommands(r, models.AxisIck),
	}
}

// monthCommand shows both axes for one month.
func monthCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "month",
		Usage: "Show a month's muses and icks",
		Flags: []cli.Flag{
			monthFlag(),
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.MonthShow,
	}
}

// playlistCommand handles playlist generation on the backend.
func playlistCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "playlist",
		Usage: "Generate playlists from selections",
		Commands: []*cli.Command{
			{
				Name:  "create",
				Usage: "Create a yearly playlist on your Spotify account",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:     "year",
						Usage:    "Year to build the playlist from",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "mode",
						Usage: "Playlist mode: muse or ick",
						Value: "muse",
					},
					&cli.BoolFlag{
						Name:  "include-candidates",
						Usage: "Include shortlisted items alongside picks",
					},
				},
				Action: r.PlaylistCreate,
			},
		},
	}
}

// cacheCommand inspects the local catalog item cache
func cacheCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "Inspect locally cached catalog items",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List cached catalog items",
				Flags: []cli.Flag{
					typeFlag(),
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.CacheList,
			},
			{
				Name:  "forget",
				Usage: "Drop a cached catalog item",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags:  []cli.Flag{typeFlag()},
				Action: r.CacheForget,
			},
		},
	}
}
