package shortlist

import (
	"context"
	"errors"
	"testing"

	"github.com/seven7een/museick-go/internal/models"
)

func TestSlotState(t *testing.T) {
	tests := []struct {
		name string
		slot Slot
		want SlotState
	}{
		{"Empty", Slot{}, SlotEmpty},
		{"CandidatesOnly", Slot{Candidates: []models.Selection{{ID: "a"}}}, SlotHasCandidates},
		{"SelectionOnly", Slot{Selected: &models.Selection{ID: "a"}}, SlotHasSelection},
		{"SelectionWithCandidates", Slot{
			Selected:   &models.Selection{ID: "a"},
			Candidates: []models.Selection{{ID: "b"}},
		}, SlotHasSelection},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.slot.State(); got != tc.want {
				t.Errorf("got %s, want %s", got, tc.want)
			}
		})
	}
}

func TestMonthView(t *testing.T) {
	month := models.MonthKey("2025-06")

	t.Run("SplitsByAxisAndRole", func(t *testing.T) {
		selections := &fakeSelections{
			listed: []models.Selection{
				{ID: "muse-pick", Role: models.RoleMuseSelected, MonthYear: month},
				{ID: "muse-cand-1", Role: models.RoleMuseCandidate, MonthYear: month},
				{ID: "muse-cand-2", Role: models.RoleMuseCandidate, MonthYear: month},
				{ID: "ick-cand", Role: models.RoleIckCandidate, MonthYear: month},
			},
		}
		engine := newTestEngine(t, EngineOpts{Selections: selections, Catalog: &fakeCatalog{}})

		view, err := engine.Month(context.Background(), month)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if view.Muse.Selected == nil || view.Muse.Selected.ID != "muse-pick" {
			t.Errorf("unexpected muse pick %+v", view.Muse.Selected)
		}
		if len(view.Muse.Candidates) != 2 {
			t.Errorf("expected 2 muse candidates, got %d", len(view.Muse.Candidates))
		}
		if view.Muse.State() != SlotHasSelection {
			t.Errorf("muse slot state: got %s", view.Muse.State())
		}

		if view.Ick.Selected != nil {
			t.Errorf("no ick pick expected, got %+v", view.Ick.Selected)
		}
		if len(view.Ick.Candidates) != 1 || view.Ick.Candidates[0].ID != "ick-cand" {
			t.Errorf("unexpected ick candidates %+v", view.Ick.Candidates)
		}
		if view.Ick.State() != SlotHasCandidates {
			t.Errorf("ick slot state: got %s", view.Ick.State())
		}
	})

	t.Run("EmptyMonth", func(t *testing.T) {
		engine := newTestEngine(t, EngineOpts{Selections: &fakeSelections{}, Catalog: &fakeCatalog{}})

		view, err := engine.Month(context.Background(), month)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if view.Muse.State() != SlotEmpty || view.Ick.State() != SlotEmpty {
			t.Errorf("both slots should be empty: muse=%s ick=%s", view.Muse.State(), view.Ick.State())
		}
	})

	t.Run("ListErrorSurfaces", func(t *testing.T) {
		listErr := errors.New("backend down")
		engine := newTestEngine(t, EngineOpts{Selections: &fakeSelections{listErr: listErr}, Catalog: &fakeCatalog{}})

		if _, err := engine.Month(context.Background(), month); !errors.Is(err, listErr) {
			t.Errorf("expected the list error, got %v", err)
		}
	})

	t.Run("SingleAxisSlot", func(t *testing.T) {
		selections := &fakeSelections{
			listed: []models.Selection{
				{ID: "ick-pick", Role: models.RoleIckSelected, MonthYear: month},
			},
		}
		engine := newTestEngine(t, EngineOpts{Selections: selections, Catalog: &fakeCatalog{}})

		slot, err := engine.Slot(context.Background(), month, models.AxisIck)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if slot.Axis != models.AxisIck || slot.Selected == nil || slot.Selected.ID != "ick-pick" {
			t.Errorf("unexpected slot %+v", slot)
		}
	})
}
