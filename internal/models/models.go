package models

import (
	"fmt"
	"time"
)

// Role is the lifecycle role of a selection within a month.
//
// Roles form two independent two-state axes: muse (favorite) and ick
// (least-favorite), each with a candidate and a selected state.
type Role string

const (
	// RoleMuseCandidate represents an item shortlisted as a potential Muse.
	RoleMuseCandidate Role = "muse_candidate"
	// RoleIckCandidate represents an item shortlisted as a potential Ick.
	RoleIckCandidate Role = "ick_candidate"
	// RoleMuseSelected represents the final chosen Muse for the month.
	RoleMuseSelected Role = "muse_selected"
	// RoleIckSelected represents the final chosen Ick for the month.
	RoleIckSelected Role = "ick_selected"
)

// Valid reports whether r is one of the four defined roles.
func (r Role) Valid() bool {
	switch r {
	case RoleMuseCandidate, RoleIckCandidate, RoleMuseSelected, RoleIckSelected:
		return true
	}
	return false
}

// Axis returns the preference axis (muse or ick) this role belongs to.
func (r Role) Axis() Axis {
	switch r {
	case RoleMuseCandidate, RoleMuseSelected:
		return AxisMuse
	case RoleIckCandidate, RoleIckSelected:
		return AxisIck
	}
	return ""
}

// IsSelected reports whether r is a final (selected) role.
func (r Role) IsSelected() bool {
	return r == RoleMuseSelected || r == RoleIckSelected
}

// IsCandidate reports whether r is a shortlist (candidate) role.
func (r Role) IsCandidate() bool {
	return r == RoleMuseCandidate || r == RoleIckCandidate
}

// Axis is one of the two independent preference dimensions a selection can
// belong to.
type Axis string

const (
	AxisMuse Axis = "muse"
	AxisIck  Axis = "ick"
)

// Valid reports whether a is a defined axis.
func (a Axis) Valid() bool {
	return a == AxisMuse || a == AxisIck
}

// Candidate returns the candidate role for this axis.
func (a Axis) Candidate() Role {
	if a == AxisIck {
		return RoleIckCandidate
	}
	return RoleMuseCandidate
}

// Selected returns the selected role for this axis.
func (a Axis) Selected() Role {
	if a == AxisIck {
		return RoleIckSelected
	}
	return RoleMuseSelected
}

// ValidTransition reports whether a role change from one state to another is
// legal: a record moves candidate → selected (promotion) or selected →
// candidate (explicit demotion) within a single axis, and never crosses axes.
func ValidTransition(from, to Role) bool {
	if !from.Valid() || !to.Valid() {
		return false
	}
	if from.Axis() != to.Axis() {
		return false
	}
	return true
}

// ItemType is the kind of catalog item a selection refers to.
type ItemType string

const (
	ItemTypeTrack  ItemType = "track"
	ItemTypeAlbum  ItemType = "album"
	ItemTypeArtist ItemType = "artist"
)

// Valid reports whether t is a defined item type.
func (t ItemType) Valid() bool {
	return t == ItemTypeTrack || t == ItemTypeAlbum || t == ItemTypeArtist
}

// MonthKey is a year-month key in "YYYY-MM" form scoping selections to a
// calendar month.
type MonthKey string

// Validate checks the YYYY-MM shape and that the month is within 01-12.
func (m MonthKey) Validate() error {
	if _, err := time.Parse("2006-01", string(m)); err != nil {
		return fmt.Errorf("invalid month key %q: expected YYYY-MM", string(m))
	}
	return nil
}

// MonthKeyFor returns the MonthKey for the given time.
func MonthKeyFor(t time.Time) MonthKey {
	return MonthKey(t.Format("2006-01"))
}

// Selection represents a user's interaction with a catalog item for a
// specific month. IDs and timestamps are assigned by the backend.
type Selection struct {
	ID            string   `json:"id"`
	UserID        string   `json:"user_id"`
	SpotifyItemID string   `json:"spotify_item_id"`
	ItemType      ItemType `json:"item_type"`
	Role          Role     `json:"selection_role"`
	MonthYear     MonthKey `json:"month_year"`
	Notes         string   `json:"notes,omitempty"`

	AddedAt   time.Time `json:"added_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Validate checks the fields the client is responsible for constructing.
func (s *Selection) Validate() error {
	if s.SpotifyItemID == "" {
		return fmt.Errorf("selection missing spotify item id")
	}
	if !s.ItemType.Valid() {
		return fmt.Errorf("invalid item type: %q", s.ItemType)
	}
	if !s.Role.Valid() {
		return fmt.Errorf("invalid selection role: %q", s.Role)
	}
	return s.MonthYear.Validate()
}

// CatalogItem is the tagged variant for catalog search results.
//
// Constructed once at the API boundary from the provider's nested payload
// shapes, so downstream code switches on Kind instead of sniffing fields.
type CatalogItem struct {
	Kind        ItemType `json:"kind"`
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Artists     []string `json:"artists,omitempty"`
	ImageURL    string   `json:"image_url,omitempty"`
	Genres      []string `json:"genres,omitempty"`
	ReleaseDate string   `json:"release_date,omitempty"`
}

// Subtitle returns the display line under the item name: artists for tracks
// and albums, genres for artists.
func (c CatalogItem) Subtitle() string {
	switch c.Kind {
	case ItemTypeArtist:
		return joinComma(c.Genres)
	default:
		return joinComma(c.Artists)
	}
}

func joinComma(parts []string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += ", "
		}
		out += p
	}
	return out
}
