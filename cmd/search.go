package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/seven7een/museick-go/internal/models"
	"github.com/seven7een/museick-go/internal/shared"
	"github.com/urfave/cli/v3"
)

// parseItemTypes splits a comma-separated --type value into item types.
func parseItemTypes(raw string) ([]models.ItemType, error) {
	if raw == "" {
		return []models.ItemType{models.ItemTypeTrack}, nil
	}

	var types []models.ItemType
	for _, part := range strings.Split(raw, ",") {
		t := models.ItemType(strings.TrimSpace(part))
		if !t.Valid() {
			return nil, fmt.Errorf("%w: unknown item type %q", shared.ErrInvalidArgument, t)
		}
		types = append(types, t)
	}
	return types, nil
}

// Top lists the user's most played tracks from the catalog.
func (r *Runner) Top(ctx context.Context, cmd *cli.Command) error {
	if err := r.wire(); err != nil {
		return err
	}

	items, err := r.catalog.TopTracks(ctx, cmd.String("range"), cmd.Int("limit"))
	if err != nil {
		return r.noteAuthError(err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(items, true)
	}

	if len(items) == 0 {
		return r.writePlain("No listening history available\n")
	}

	r.writePlainHeader("Your top tracks")
	for i, item := range items {
		if subtitle := item.Subtitle(); subtitle != "" {
			r.writePlain("%2d. %s — %s (%s)\n", i+1, item.Name, subtitle, item.ID)
		} else {
			r.writePlain("%2d. %s (%s)\n", i+1, item.Name, item.ID)
		}
	}

	return nil
}

// Search runs a one-shot catalog search and prints the results.
func (r *Runner) Search(ctx context.Context, cmd *cli.Command) error {
	query := cmd.StringArg("query")
	if query == "" {
		return fmt.Errorf("%w: search query argument is required", shared.ErrMissingArgument)
	}

	types, err := parseItemTypes(cmd.String("type"))
	if err != nil {
		return err
	}

	if err := r.wire(); err != nil {
		return err
	}

	items, err := r.catalog.Search(ctx, query, types, cmd.Int("limit"))
	if err != nil {
		return r.noteAuthError(err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(items, cmd.Bool("pretty"))
	}

	if len(items) == 0 {
		return r.writePlain("No results for %q\n", query)
	}

	r.writePlainHeader(fmt.Sprintf("Results for %q", query))
	for _, item := range items {
		subtitle := item.Subtitle()
		if subtitle != "" {
			r.writePlain("[%s] %s — %s (%s)\n", item.Kind, item.Name, subtitle, item.ID)
		} else {
			r.writePlain("[%s] %s (%s)\n", item.Kind, item.Name, item.ID)
		}
	}

	return nil
}
