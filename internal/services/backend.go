package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/seven7een/museick-go/internal/auth"
	"github.com/seven7een/museick-go/internal/shared"
)

// BackendAPI covers the backend endpoints that are neither selections nor
// catalog passthroughs: user sync and playlist generation.
type BackendAPI struct {
	client Doer
	logger *log.Logger
}

// NewBackendAPI creates a BackendAPI backed by the given client.
func NewBackendAPI(client Doer, logger *log.Logger) *BackendAPI {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &BackendAPI{client: client, logger: logger}
}

// SyncUser ensures the backend has a user record for the current session.
// Safe to call on every startup: the backend upserts.
func (b *BackendAPI) SyncUser(ctx context.Context) error {
	if err := b.client.Do(ctx, http.MethodPost, "/users/sync", nil, nil, auth.DomainSession); err != nil {
		return err
	}
	b.logger.Debug("user synced")
	return nil
}

// PlaylistMode selects which axis a generated playlist draws from.
type PlaylistMode string

const (
	PlaylistMuse PlaylistMode = "muse"
	PlaylistIck  PlaylistMode = "ick"
)

// Valid reports whether the mode is one of the known values.
func (m PlaylistMode) Valid() bool {
	return m == PlaylistMuse || m == PlaylistIck
}

type createPlaylistRequest struct {
	Year              int          `json:"year"`
	Mode              PlaylistMode `json:"mode"`
	IncludeCandidates bool         `json:"include_candidates"`
}

// Playlist is the backend's response to a generation request.
type Playlist struct {
	URL     string `json:"url"`
	Message string `json:"message"`
}

// CreatePlaylist asks the backend to build a yearly playlist on the user's
// catalog account from their selections.
func (b *BackendAPI) CreatePlaylist(ctx context.Context, year int, mode PlaylistMode, includeCandidates bool) (*Playlist, error) {
	if year < 2000 || year > 2100 {
		return nil, fmt.Errorf("%w: year %d out of range", shared.ErrInvalidArgument, year)
	}
	if !mode.Valid() {
		return nil, fmt.Errorf("%w: invalid playlist mode %q", shared.ErrInvalidArgument, mode)
	}

	body := createPlaylistRequest{Year: year, Mode: mode, IncludeCandidates: includeCandidates}

	var playlist Playlist
	if err := b.client.Do(ctx, http.MethodPost, "/playlists", body, &playlist, auth.DomainSessionCatalog); err != nil {
		return nil, err
	}

	b.logger.Info("playlist created", "year", year, "mode", mode, "url", playlist.URL)
	return &playlist, nil
}
