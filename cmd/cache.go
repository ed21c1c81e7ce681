package main

import (
	"context"
	"fmt"

	"github.com/seven7een/museick-go/internal/models"
	"github.com/seven7een/museick-go/internal/shared"
	"github.com/urfave/cli/v3"
)

// CacheList prints locally cached catalog items of one type.
func (r *Runner) CacheList(ctx context.Context, cmd *cli.Command) error {
	kind := models.ItemType(cmd.String("type"))
	if !kind.Valid() {
		return fmt.Errorf("%w: unknown item type %q", shared.ErrInvalidArgument, kind)
	}

	if err := r.wire(); err != nil {
		return err
	}

	items, err := r.cache.List(kind)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(items, true)
	}

	if len(items) == 0 {
		return r.writePlain("No cached %ss\n", kind)
	}

	r.writePlainHeader(fmt.Sprintf("Cached %ss", kind))
	for _, item := range items {
		subtitle := item.Subtitle()
		if subtitle != "" {
			r.writePlain("%s — %s (%s)\n", item.Name, subtitle, item.ID)
		} else {
			r.writePlain("%s (%s)\n", item.Name, item.ID)
		}
	}

	return nil
}

// CacheForget drops one cached catalog item.
func (r *Runner) CacheForget(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: catalog item id argument is required", shared.ErrMissingArgument)
	}

	kind := models.ItemType(cmd.String("type"))
	if !kind.Valid() {
		return fmt.Errorf("%w: unknown item type %q", shared.ErrInvalidArgument, kind)
	}

	if err := r.wire(); err != nil {
		return err
	}

	if err := r.cache.Delete(kind, id); err != nil {
		return err
	}

	return r.writePlain("✓ Cache entry removed\n")
}
