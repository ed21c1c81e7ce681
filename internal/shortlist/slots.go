package shortlist

import (
	"context"

	"github.com/seven7een/museick-go/internal/models"
)

// SlotState describes where a month's slot sits in its lifecycle.
type SlotState int

const (
	SlotEmpty         SlotState = iota // no records for the axis
	SlotHasCandidates                  // shortlist only, no pick yet
	SlotHasSelection                   // a pick exists (candidates may remain)
)

func (s SlotState) String() string {
	switch s {
	case SlotHasCandidates:
		return "has_candidates"
	case SlotHasSelection:
		return "has_selection"
	default:
		return "empty"
	}
}

// Slot is one month+axis view: the current pick, if any, plus the shortlist
// behind it.
type Slot struct {
	Month      models.MonthKey
	Axis       models.Axis
	Selected   *models.Selection
	Candidates []models.Selection
}

// State derives the slot's lifecycle position from its contents.
func (s Slot) State() SlotState {
	if s.Selected != nil {
		return SlotHasSelection
	}
	if len(s.Candidates) > 0 {
		return SlotHasCandidates
	}
	return SlotEmpty
}

// MonthView holds both axes for one month.
type MonthView struct {
	Month models.MonthKey
	Muse  Slot
	Ick   Slot
}

// Month fetches the month's records and splits them into per-axis slots.
// One request covers both axes; filtering happens client-side.
func (e *Engine) Month(ctx context.Context, month models.MonthKey) (*MonthView, error) {
	selections, err := e.selections.ListForMonth(ctx, month)
	if err != nil {
		return nil, err
	}

	view := &MonthView{
		Month: month,
		Muse:  Slot{Month: month, Axis: models.AxisMuse},
		Ick:   Slot{Month: month, Axis: models.AxisIck},
	}

	for i := range selections {
		sel := selections[i]
		slot := &view.Muse
		if sel.Role.Axis() == models.AxisIck {
			slot = &view.Ick
		}
		if sel.Role.IsSelected() {
			slot.Selected = &selections[i]
		} else {
			slot.Candidates = append(slot.Candidates, sel)
		}
	}

	return view, nil
}

// Slot returns a single axis view for the month.
func (e *Engine) Slot(ctx context.Context, month models.MonthKey, axis models.Axis) (*Slot, error) {
	view, err := e.Month(ctx, month)
	if err != nil {
		return nil, err
	}
	if axis == models.AxisIck {
		return &view.Ick, nil
	}
	return &view.Muse, nil
}
