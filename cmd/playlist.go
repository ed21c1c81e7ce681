package main

import (
	"context"
	"fmt"

	"github.com/seven7een/museick-go/internal/services"
	"github.com/seven7een/museick-go/internal/shared"
	"github.com/urfave/cli/v3"
)

// PlaylistCreate asks the backend to build a yearly playlist from selections.
func (r *Runner) PlaylistCreate(ctx context.Context, cmd *cli.Command) error {
	mode := services.PlaylistMode(cmd.String("mode"))
	if !mode.Valid() {
		return fmt.Errorf("%w: mode must be muse or ick", shared.ErrInvalidArgument)
	}

	if err := r.wire(); err != nil {
		return err
	}

	year := cmd.Int("year")
	r.logger.Info("requesting playlist", "year", year, "mode", mode)

	playlist, err := r.backend.CreatePlaylist(ctx, year, mode, cmd.Bool("include-candidates"))
	if err != nil {
		return r.noteAuthError(err)
	}

	r.writePlain("✓ Playlist created\n")
	if playlist.Message != "" {
		r.writePlain("%s\n", playlist.Message)
	}
	if playlist.URL != "" {
		r.writePlain("URL: %s\n", playlist.URL)
	}
	return nil
}
