package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/seven7een/museick-go/internal/auth"
	"github.com/seven7een/museick-go/internal/models"
	"github.com/seven7een/museick-go/internal/shared"
)

// SelectionAPI provides typed, invariant-preserving CRUD over selection
// records via the authenticated client.
//
// Errors from the underlying client propagate untouched: this layer adds no
// retry of its own beyond the client's single refresh-and-retry cycle.
type SelectionAPI struct {
	client Doer
	logger *log.Logger
}

// NewSelectionAPI creates a SelectionAPI backed by the given client.
func NewSelectionAPI(client Doer, logger *log.Logger) *SelectionAPI {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &SelectionAPI{client: client, logger: logger}
}

// addSelectionRequest is the POST /selections body.
type addSelectionRequest struct {
	SpotifyItemID string          `json:"spotify_item_id"`
	ItemType      models.ItemType `json:"item_type"`
	MonthYear     models.MonthKey `json:"month_year"`
	SelectionRole models.Role     `json:"selection_role"`
}

// updateSelectionRequest is the PUT /selections/{id} body. Omitted fields are
// left untouched by the backend.
type updateSelectionRequest struct {
	SelectionRole *models.Role `json:"selection_role,omitempty"`
	Notes         *string      `json:"notes,omitempty"`
}

// AddCandidate creates a candidate selection for the given catalog item,
// month and axis. The backend is the source of truth for de-duplication:
// re-adding the same logical candidate returns the existing record rather
// than erroring.
func (s *SelectionAPI) AddCandidate(ctx context.Context, spotifyItemID string, itemType models.ItemType, month models.MonthKey, axis models.Axis) (*models.Selection, error) {
	if spotifyItemID == "" {
		return nil, fmt.Errorf("%w: catalog item id is required", shared.ErrInvalidArgument)
	}
	if !itemType.Valid() {
		return nil, fmt.Errorf("%w: invalid item type %q", shared.ErrInvalidArgument, itemType)
	}
	if !axis.Valid() {
		return nil, fmt.Errorf("%w: invalid axis %q", shared.ErrInvalidArgument, axis)
	}
	if err := month.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrInvalidArgument, err)
	}

	body := addSelectionRequest{
		SpotifyItemID: spotifyItemID,
		ItemType:      itemType,
		MonthYear:     month,
		SelectionRole: axis.Candidate(),
	}

	var selection models.Selection
	if err := s.client.Do(ctx, http.MethodPost, "/selections", body, &selection, auth.DomainSessionCatalog); err != nil {
		return nil, err
	}

	s.logger.Debug("candidate added", "id", selection.ID, "item", spotifyItemID, "month", month, "axis", axis)
	return &selection, nil
}

// ListForMonth returns every selection record for the month: all axes, all
// item types, candidates and selected. Callers filter client-side.
func (s *SelectionAPI) ListForMonth(ctx context.Context, month models.MonthKey) ([]models.Selection, error) {
	if err := month.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrInvalidArgument, err)
	}

	var selections []models.Selection
	endpoint := fmt.Sprintf("/selections/%s", month)
	if err := s.client.Do(ctx, http.MethodGet, endpoint, nil, &selections, auth.DomainSessionCatalog); err != nil {
		return nil, err
	}

	return selections, nil
}

// SelectionUpdate carries the mutable fields of a selection. At least one
// must be set.
type SelectionUpdate struct {
	Role  models.Role // "" leaves the role unchanged
	Notes *string     // nil leaves notes unchanged
}

// Update modifies a selection's role and/or notes. An empty update is
// rejected with [shared.ErrInvalidArgument] before any network call.
func (s *SelectionAPI) Update(ctx context.Context, id string, update SelectionUpdate) (*models.Selection, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: selection id is required", shared.ErrInvalidArgument)
	}
	if update.Role == "" && update.Notes == nil {
		return nil, fmt.Errorf("%w: update requires a role or notes", shared.ErrInvalidArgument)
	}
	if update.Role != "" && !update.Role.Valid() {
		return nil, fmt.Errorf("%w: invalid selection role %q", shared.ErrInvalidArgument, update.Role)
	}

	body := updateSelectionRequest{Notes: update.Notes}
	if update.Role != "" {
		role := update.Role
		body.SelectionRole = &role
	}

	var selection models.Selection
	endpoint := fmt.Sprintf("/selections/%s", id)
	if err := s.client.Do(ctx, http.MethodPut, endpoint, body, &selection, auth.DomainSessionCatalog); err != nil {
		return nil, err
	}

	return &selection, nil
}

// UpdateRole changes only the selection role. Cross-axis changes are
// rejected locally when the current role is known to the caller; the backend
// re-validates regardless.
func (s *SelectionAPI) UpdateRole(ctx context.Context, id string, role models.Role) (*models.Selection, error) {
	return s.Update(ctx, id, SelectionUpdate{Role: role})
}

// UpdateNotes changes only the free-text notes. Repeating the same text is
// harmless: the backend treats it as an idempotent write.
func (s *SelectionAPI) UpdateNotes(ctx context.Context, id string, notes string) (*models.Selection, error) {
	return s.Update(ctx, id, SelectionUpdate{Notes: &notes})
}

// Delete removes a selection record. Returns true when the backend confirms
// deletion (204); errors propagate otherwise.
func (s *SelectionAPI) Delete(ctx context.Context, id string) (bool, error) {
	if id == "" {
		return false, fmt.Errorf("%w: selection id is required", shared.ErrInvalidArgument)
	}

	endpoint := fmt.Sprintf("/selections/%s", id)
	if err := s.client.Do(ctx, http.MethodDelete, endpoint, nil, nil, auth.DomainSessionCatalog); err != nil {
		return false, err
	}

	s.logger.Debug("selection deleted", "id", id)
	return true, nil
}
