package repositories

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/seven7een/museick-go/internal/models"
	"github.com/seven7een/museick-go/internal/shared"
)

// CatalogItemRepository caches catalog item metadata locally so shortlists
// can be displayed without re-fetching every item from the catalog service.
//
// Items are keyed by (item_type, spotify_id) with soft delete support.
type CatalogItemRepository struct {
	db *sql.DB
}

// NewCatalogItemRepository creates a new CatalogItemRepository with the given database connection
func NewCatalogItemRepository(db *sql.DB) *CatalogItemRepository {
	return &CatalogItemRepository{db: db}
}

// Create inserts a new catalog item into the cache with generated ID and sequence
func (r *CatalogItemRepository) Create(item models.CatalogItem) error {
	if !item.Kind.Valid() || item.ID == "" {
		return fmt.Errorf("invalid catalog item: kind=%q id=%q", item.Kind, item.ID)
	}

	sequence, err := NextSequence(r.db, "catalog_items")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	artists, err := json.Marshal(item.Artists)
	if err != nil {
		return fmt.Errorf("failed to encode artists: %w", err)
	}
	genres, err := json.Marshal(item.Genres)
	if err != nil {
		return fmt.Errorf("failed to encode genres: %w", err)
	}

	now := time.Now()
	query := `
		INSERT INTO catalog_items (id, sequence, item_type, spotify_id, name, artists, image_url, genres, release_date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		shared.GenerateID(),
		sequence,
		string(item.Kind),
		item.ID,
		item.Name,
		string(artists),
		item.ImageURL,
		string(genres),
		item.ReleaseDate,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to insert catalog item: %w", err)
	}

	return nil
}

// GetByKey retrieves a cached item by item type and catalog id, excluding soft-deleted rows
func (r *CatalogItemRepository) GetByKey(kind models.ItemType, spotifyID string) (*models.CatalogItem, error) {
	query := `
		SELECT item_type, spotify_id, name, artists, image_url, genres, release_date
		FROM catalog_items
		WHERE item_type = ? AND spotify_id = ? AND deleted_at IS NULL
	`

	return r.scanOne(r.db.QueryRow(query, string(kind), spotifyID))
}

// List retrieves all cached items of the given type, ordered by sequence.
// An empty kind lists every type.
func (r *CatalogItemRepository) List(kind models.ItemType) ([]models.CatalogItem, error) {
	query := `
		SELECT item_type, spotify_id, name, artists, image_url, genres, release_date
		FROM catalog_items
		WHERE deleted_at IS NULL
	`

	args := []any{}
	if kind != "" {
		query += " AND item_type = ?"
		args = append(args, string(kind))
	}
	query += " ORDER BY sequence ASC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query catalog items: %w", err)
	}
	defer rows.Close()

	var items []models.CatalogItem
	for rows.Next() {
		item, err := scanItem(rows.Scan)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return items, nil
}

// Delete soft-deletes a cached item by key
func (r *CatalogItemRepository) Delete(kind models.ItemType, spotifyID string) error {
	query := `
		UPDATE catalog_items
		SET deleted_at = ?
		WHERE item_type = ? AND spotify_id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, time.Now(), string(kind), spotifyID)
	if err != nil {
		return fmt.Errorf("failed to delete catalog item: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("catalog item not found or already deleted: %s/%s", kind, spotifyID)
	}

	return nil
}

// Remember caches an item, silently ignoring duplicates.
// Returns nil if the item already exists (deduplication).
func (r *CatalogItemRepository) Remember(item models.CatalogItem) error {
	existing, err := r.GetByKey(item.Kind, item.ID)
	if err == nil && existing != nil {
		return nil
	}

	if err := r.Create(item); err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return nil
		}
		return fmt.Errorf("failed to cache catalog item: %w", err)
	}

	return nil
}

// scanOne scans a single [sql.Row] into a [models.CatalogItem]
func (r *CatalogItemRepository) scanOne(row *sql.Row) (*models.CatalogItem, error) {
	item, err := scanItem(row.Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("catalog item not found")
	}
	return item, err
}

// scanItem scans one row's columns into a [models.CatalogItem]
func scanItem(scan func(...any) error) (*models.CatalogItem, error) {
	var (
		itemType    string
		spotifyID   string
		name        string
		artists     string
		imageURL    string
		genres      string
		releaseDate string
	)

	err := scan(&itemType, &spotifyID, &name, &artists, &imageURL, &genres, &releaseDate)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan catalog item: %w", err)
	}

	item := &models.CatalogItem{
		Kind:        models.ItemType(itemType),
		ID:          spotifyID,
		Name:        name,
		ImageURL:    imageURL,
		ReleaseDate: releaseDate,
	}

	if artists != "" {
		if err := json.Unmarshal([]byte(artists), &item.Artists); err != nil {
			return nil, fmt.Errorf("failed to decode artists: %w", err)
		}
	}
	if genres != "" {
		if err := json.Unmarshal([]byte(genres), &item.Genres); err != nil {
			return nil, fmt.Errorf("failed to decode genres: %w", err)
		}
	}

	return item, nil
}
