package main

import (
	"context"
	"fmt"

	"github.com/seven7een/museick-go/internal/models"
	"github.com/seven7een/museick-go/internal/shared"
	"github.com/seven7een/museick-go/internal/shortlist"
	"github.com/urfave/cli/v3"
)

// resolveItem turns the id argument into a full catalog item, preferring the
// local cache over a catalog round trip.
func (r *Runner) resolveItem(ctx context.Context, cmd *cli.Command) (*models.CatalogItem, error) {
	id := cmd.StringArg("id")
	if id == "" {
		return nil, fmt.Errorf("%w: catalog item id argument is required", shared.ErrMissingArgument)
	}

	kind := models.ItemType(cmd.String("type"))
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: unknown item type %q", shared.ErrInvalidArgument, kind)
	}

	if cached, err := r.cache.GetByKey(kind, id); err == nil && cached != nil {
		return cached, nil
	}

	item, err := r.catalog.Item(ctx, kind, id)
	if err != nil {
		return nil, r.noteAuthError(err)
	}
	return item, nil
}

// SelectionAdd shortlists a catalog item for the month.
func (r *Runner) SelectionAdd(ctx context.Context, cmd *cli.Command, axis models.Axis) error {
	if err := r.wire(); err != nil {
		return err
	}

	month, err := r.monthArg(cmd)
	if err != nil {
		return err
	}

	item, err := r.resolveItem(ctx, cmd)
	if err != nil {
		return err
	}

	selection, err := r.engine.AddToShortlist(ctx, *item, month, axis)
	if err != nil {
		return r.noteAuthError(err)
	}

	return r.writePlain("✓ Shortlisted %s for %s (%s, id %s)\n", item.Name, month, axis, selection.ID)
}

// SelectionPick promotes a catalog item to the month's pick.
func (r *Runner) SelectionPick(ctx context.Context, cmd *cli.Command, axis models.Axis) error {
	if err := r.wire(); err != nil {
		return err
	}

	month, err := r.monthArg(cmd)
	if err != nil {
		return err
	}

	item, err := r.resolveItem(ctx, cmd)
	if err != nil {
		return err
	}

	selection, err := r.engine.Promote(ctx, *item, month, axis)
	if err != nil {
		return r.noteAuthError(err)
	}

	return r.writePlain("✓ %s is your %s for %s (id %s)\n", item.Name, axis, month, selection.ID)
}

// SelectionUnpick demotes the month's current pick back to the shortlist.
func (r *Runner) SelectionUnpick(ctx context.Context, cmd *cli.Command, axis models.Axis) error {
	if err := r.wire(); err != nil {
		return err
	}

	month, err := r.monthArg(cmd)
	if err != nil {
		return err
	}

	slot, err := r.engine.Slot(ctx, month, axis)
	if err != nil {
		return r.noteAuthError(err)
	}
	if slot.Selected == nil {
		return r.writePlain("No %s pick for %s\n", axis, month)
	}

	if _, err := r.engine.Demote(ctx, slot.Selected); err != nil {
		return r.noteAuthError(err)
	}

	return r.writePlain("✓ Pick demoted to shortlist for %s\n", month)
}

// SelectionRemove deletes a selection record by id.
func (r *Runner) SelectionRemove(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: selection id argument is required", shared.ErrMissingArgument)
	}

	if err := r.wire(); err != nil {
		return err
	}

	if err := r.engine.Remove(ctx, id); err != nil {
		return r.noteAuthError(err)
	}

	return r.writePlain("✓ Selection removed\n")
}

// SelectionList prints one axis of the month view.
func (r *Runner) SelectionList(ctx context.Context, cmd *cli.Command, axis models.Axis) error {
	if err := r.wire(); err != nil {
		return err
	}

	month, err := r.monthArg(cmd)
	if err != nil {
		return err
	}

	slot, err := r.engine.Slot(ctx, month, axis)
	if err != nil {
		return r.noteAuthError(err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(slot, true)
	}

	r.printSlot(slot)
	return nil
}

// MonthShow prints both axes for the month.
func (r *Runner) MonthShow(ctx context.Context, cmd *cli.Command) error {
	if err := r.wire(); err != nil {
		return err
	}

	month, err := r.monthArg(cmd)
	if err != nil {
		return err
	}

	view, err := r.engine.Month(ctx, month)
	if err != nil {
		return r.noteAuthError(err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(view, true)
	}

	r.printSlot(&view.Muse)
	r.printSlot(&view.Ick)
	return nil
}

func (r *Runner) printSlot(slot *shortlist.Slot) {
	r.writePlainHeader(fmt.Sprintf("%s %s (%s)", slot.Month, slot.Axis, slot.State()))

	if slot.Selected != nil {
		r.writePlain("★ %s\n", r.describeSelection(slot.Selected))
	}
	for i := range slot.Candidates {
		r.writePlain("  %s\n", r.describeSelection(&slot.Candidates[i]))
	}
	if slot.Selected == nil && len(slot.Candidates) == 0 {
		r.writePlain("(empty)\n")
	}
}

// describeSelection renders one record, substituting cached item metadata
// for the raw catalog id when available.
func (r *Runner) describeSelection(sel *models.Selection) string {
	name := sel.SpotifyItemID
	if cached, err := r.cache.GetByKey(sel.ItemType, sel.SpotifyItemID); err == nil && cached != nil {
		name = cached.Name
		if subtitle := cached.Subtitle(); subtitle != "" {
			name = fmt.Sprintf("%s (%s)", name, subtitle)
		}
	}

	line := fmt.Sprintf("[%s] %s — id %s", sel.ItemType, name, sel.ID)
	if sel.Notes != "" {
		line = fmt.Sprintf("%s\n    notes: %s", line, sel.Notes)
	}
	return line
}
