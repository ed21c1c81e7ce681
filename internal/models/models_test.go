package models

import (
	"testing"
	"time"
)

func TestRole(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		for _, role := range []Role{RoleMuseCandidate, RoleIckCandidate, RoleMuseSelected, RoleIckSelected} {
			if !role.Valid() {
				t.Errorf("expected %q to be valid", role)
			}
		}
		if Role("muse").Valid() {
			t.Error("bare axis name is not a role")
		}
		if Role("").Valid() {
			t.Error("empty role should be invalid")
		}
	})

	t.Run("Axis", func(t *testing.T) {
		if RoleMuseCandidate.Axis() != AxisMuse || RoleMuseSelected.Axis() != AxisMuse {
			t.Error("muse roles should map to the muse axis")
		}
		if RoleIckCandidate.Axis() != AxisIck || RoleIckSelected.Axis() != AxisIck {
			t.Error("ick roles should map to the ick axis")
		}
	})

	t.Run("Lifecycle", func(t *testing.T) {
		if !RoleMuseCandidate.IsCandidate() || RoleMuseCandidate.IsSelected() {
			t.Error("muse_candidate should be candidate, not selected")
		}
		if !RoleIckSelected.IsSelected() || RoleIckSelected.IsCandidate() {
			t.Error("ick_selected should be selected, not candidate")
		}
	})
}

func TestValidTransition(t *testing.T) {
	tc := []struct {
		name string
		from Role
		to   Role
		want bool
	}{
		{"promote muse", RoleMuseCandidate, RoleMuseSelected, true},
		{"demote muse", RoleMuseSelected, RoleMuseCandidate, true},
		{"promote ick", RoleIckCandidate, RoleIckSelected, true},
		{"cross axis promote", RoleMuseCandidate, RoleIckSelected, false},
		{"cross axis swap", RoleMuseSelected, RoleIckSelected, false},
		{"invalid source", Role("bogus"), RoleMuseSelected, false},
		{"invalid target", RoleMuseCandidate, Role("bogus"), false},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidTransition(tt.from, tt.to); got != tt.want {
				t.Errorf("ValidTransition(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestAxisRoles(t *testing.T) {
	if AxisMuse.Candidate() != RoleMuseCandidate || AxisMuse.Selected() != RoleMuseSelected {
		t.Error("muse axis role mapping is wrong")
	}
	if AxisIck.Candidate() != RoleIckCandidate || AxisIck.Selected() != RoleIckSelected {
		t.Error("ick axis role mapping is wrong")
	}
}

func TestMonthKey(t *testing.T) {
	t.Run("Validate", func(t *testing.T) {
		for _, good := range []MonthKey{"2025-01", "2025-12", "1999-06"} {
			if err := good.Validate(); err != nil {
				t.Errorf("expected %q to validate: %v", good, err)
			}
		}
		for _, bad := range []MonthKey{"", "2025", "2025-13", "2025-00", "25-01", "2025-1", "January 2025"} {
			if err := bad.Validate(); err == nil {
				t.Errorf("expected %q to fail validation", bad)
			}
		}
	})

	t.Run("MonthKeyFor", func(t *testing.T) {
		ts := time.Date(2025, time.March, 14, 9, 26, 53, 0, time.UTC)
		if got := MonthKeyFor(ts); got != "2025-03" {
			t.Errorf("expected 2025-03, got %s", got)
		}
	})
}

func TestSelectionValidate(t *testing.T) {
	valid := Selection{
		SpotifyItemID: "4uLU6hMCjMI75M1A2tKUQC",
		ItemType:      ItemTypeTrack,
		Role:          RoleMuseCandidate,
		MonthYear:     "2025-06",
	}

	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid selection: %v", err)
	}

	t.Run("missing item id", func(t *testing.T) {
		s := valid
		s.SpotifyItemID = ""
		if err := s.Validate(); err == nil {
			t.Error("expected validation failure")
		}
	})

	t.Run("bad item type", func(t *testing.T) {
		s := valid
		s.ItemType = "podcast"
		if err := s.Validate(); err == nil {
			t.Error("expected validation failure")
		}
	})

	t.Run("bad role", func(t *testing.T) {
		s := valid
		s.Role = "favorite"
		if err := s.Validate(); err == nil {
			t.Error("expected validation failure")
		}
	})

	t.Run("bad month", func(t *testing.T) {
		s := valid
		s.MonthYear = "June 2025"
		if err := s.Validate(); err == nil {
			t.Error("expected validation failure")
		}
	})
}

func TestCatalogItemSubtitle(t *testing.T) {
	track := CatalogItem{Kind: ItemTypeTrack, Name: "Song", Artists: []string{"A", "B"}}
	if track.Subtitle() != "A, B" {
		t.Errorf("expected artist subtitle, got %q", track.Subtitle())
	}

	artist := CatalogItem{Kind: ItemTypeArtist, Name: "A", Genres: []string{"shoegaze"}}
	if artist.Subtitle() != "shoegaze" {
		t.Errorf("expected genre subtitle, got %q", artist.Subtitle())
	}

	bare := CatalogItem{Kind: ItemTypeAlbum, Name: "LP"}
	if bare.Subtitle() != "" {
		t.Errorf("expected empty subtitle, got %q", bare.Subtitle())
	}
}
