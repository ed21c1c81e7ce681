package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/seven7een/museick-go/internal/auth"
	"github.com/seven7een/museick-go/internal/models"
	"github.com/seven7een/museick-go/internal/shared"
)

// CatalogAPI wraps the Spotify Web API endpoints the app consumes. Raw
// catalog payloads are translated into [models.CatalogItem] at this boundary
// so nothing above it handles provider-shaped JSON.
type CatalogAPI struct {
	client Doer
	logger *log.Logger
}

// NewCatalogAPI creates a CatalogAPI backed by the given client.
func NewCatalogAPI(client Doer, logger *log.Logger) *CatalogAPI {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &CatalogAPI{client: client, logger: logger}
}

// Raw catalog shapes. Only the fields the app reads are declared.

type catalogImage struct {
	URL string `json:"url"`
}

type catalogArtistRef struct {
	Name string `json:"name"`
}

type catalogTrack struct {
	ID      string             `json:"id"`
	Name    string             `json:"name"`
	Artists []catalogArtistRef `json:"artists"`
	Album   struct {
		Images      []catalogImage `json:"images"`
		ReleaseDate string         `json:"release_date"`
	} `json:"album"`
}

type catalogAlbum struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Artists     []catalogArtistRef `json:"artists"`
	Images      []catalogImage     `json:"images"`
	ReleaseDate string             `json:"release_date"`
}

type catalogArtist struct {
	ID     string         `json:"id"`
	Name   string         `json:"name"`
	Images []catalogImage `json:"images"`
	Genres []string       `json:"genres"`
}

type searchResponse struct {
	Tracks *struct {
		Items []catalogTrack `json:"items"`
	} `json:"tracks"`
	Albums *struct {
		Items []catalogAlbum `json:"items"`
	} `json:"albums"`
	Artists *struct {
		Items []catalogArtist `json:"items"`
	} `json:"artists"`
}

func firstImage(images []catalogImage) string {
	if len(images) == 0 {
		return ""
	}
	return images[0].URL
}

func artistNames(refs []catalogArtistRef) []string {
	names := make([]string, 0, len(refs))
	for _, ref := range refs {
		names = append(names, ref.Name)
	}
	return names
}

func trackItem(t catalogTrack) models.CatalogItem {
	return models.CatalogItem{
		Kind:        models.ItemTypeTrack,
		ID:          t.ID,
		Name:        t.Name,
		Artists:     artistNames(t.Artists),
		ImageURL:    firstImage(t.Album.Images),
		ReleaseDate: t.Album.ReleaseDate,
	}
}

func albumItem(a catalogAlbum) models.CatalogItem {
	return models.CatalogItem{
		Kind:        models.ItemTypeAlbum,
		ID:          a.ID,
		Name:        a.Name,
		Artists:     artistNames(a.Artists),
		ImageURL:    firstImage(a.Images),
		ReleaseDate: a.ReleaseDate,
	}
}

func artistItem(a catalogArtist) models.CatalogItem {
	return models.CatalogItem{
		Kind:     models.ItemTypeArtist,
		ID:       a.ID,
		Name:     a.Name,
		ImageURL: firstImage(a.Images),
		Genres:   a.Genres,
	}
}

// Search queries the catalog across the given item types and flattens the
// nested per-type payload into a single tagged slice, tracks first, then
// albums, then artists.
func (c *CatalogAPI) Search(ctx context.Context, query string, types []models.ItemType, limit int) ([]models.CatalogItem, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: search query is required", shared.ErrInvalidArgument)
	}
	if len(types) == 0 {
		types = []models.ItemType{models.ItemTypeTrack}
	}
	for _, t := range types {
		if !t.Valid() {
			return nil, fmt.Errorf("%w: invalid item type %q", shared.ErrInvalidArgument, t)
		}
	}
	if limit <= 0 {
		limit = 20
	}

	typeNames := make([]string, 0, len(types))
	for _, t := range types {
		typeNames = append(typeNames, string(t))
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("type", strings.Join(typeNames, ","))
	params.Set("limit", fmt.Sprintf("%d", limit))

	var payload searchResponse
	endpoint := "/v1/search?" + params.Encode()
	if err := c.client.Do(ctx, http.MethodGet, endpoint, nil, &payload, auth.DomainCatalog); err != nil {
		return nil, err
	}

	var items []models.CatalogItem
	if payload.Tracks != nil {
		for _, t := range payload.Tracks.Items {
			items = append(items, trackItem(t))
		}
	}
	if payload.Albums != nil {
		for _, a := range payload.Albums.Items {
			items = append(items, albumItem(a))
		}
	}
	if payload.Artists != nil {
		for _, a := range payload.Artists.Items {
			items = append(items, artistItem(a))
		}
	}

	c.logger.Debug("catalog search", "query", query, "types", strings.Join(typeNames, ","), "results", len(items))
	return items, nil
}

// Item fetches a single catalog item by id.
func (c *CatalogAPI) Item(ctx context.Context, kind models.ItemType, id string) (*models.CatalogItem, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: invalid item type %q", shared.ErrInvalidArgument, kind)
	}
	if id == "" {
		return nil, fmt.Errorf("%w: catalog item id is required", shared.ErrInvalidArgument)
	}

	endpoint := fmt.Sprintf("/v1/%ss/%s", kind, id)
	switch kind {
	case models.ItemTypeTrack:
		var t catalogTrack
		if err := c.client.Do(ctx, http.MethodGet, endpoint, nil, &t, auth.DomainCatalog); err != nil {
			return nil, err
		}
		item := trackItem(t)
		return &item, nil
	case models.ItemTypeAlbum:
		var a catalogAlbum
		if err := c.client.Do(ctx, http.MethodGet, endpoint, nil, &a, auth.DomainCatalog); err != nil {
			return nil, err
		}
		item := albumItem(a)
		return &item, nil
	default:
		var a catalogArtist
		if err := c.client.Do(ctx, http.MethodGet, endpoint, nil, &a, auth.DomainCatalog); err != nil {
			return nil, err
		}
		item := artistItem(a)
		return &item, nil
	}
}

type topTracksResponse struct {
	Items []catalogTrack `json:"items"`
}

// TopTracks returns the authenticated user's most played tracks over the
// given range ("short_term", "medium_term" or "long_term").
func (c *CatalogAPI) TopTracks(ctx context.Context, timeRange string, limit int) ([]models.CatalogItem, error) {
	if timeRange == "" {
		timeRange = "medium_term"
	}
	if limit <= 0 {
		limit = 20
	}

	params := url.Values{}
	params.Set("time_range", timeRange)
	params.Set("limit", fmt.Sprintf("%d", limit))

	var payload topTracksResponse
	endpoint := "/v1/me/top/tracks?" + params.Encode()
	if err := c.client.Do(ctx, http.MethodGet, endpoint, nil, &payload, auth.DomainCatalog); err != nil {
		return nil, err
	}

	items := make([]models.CatalogItem, 0, len(payload.Items))
	for _, t := range payload.Items {
		items = append(items, trackItem(t))
	}
	return items, nil
}
