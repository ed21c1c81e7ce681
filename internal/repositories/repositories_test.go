package repositories

import (
	"database/sql"
	"testing"

	"github.com/seven7een/museick-go/internal/models"
	"github.com/seven7een/museick-go/internal/shared"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

func TestCredentialRepository(t *testing.T) {
	t.Run("EmptyStore", func(t *testing.T) {
		repo := NewCredentialRepository(setupTestDB(t))

		token, err := repo.Get()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if token != "" {
			t.Errorf("expected empty token, got %q", token)
		}
	})

	t.Run("SetGetClear", func(t *testing.T) {
		repo := NewCredentialRepository(setupTestDB(t))

		if err := repo.Set("first-token"); err != nil {
			t.Fatalf("failed to set: %v", err)
		}
		if token, _ := repo.Get(); token != "first-token" {
			t.Errorf("expected first-token, got %q", token)
		}

		if err := repo.Set("second-token"); err != nil {
			t.Fatalf("failed to overwrite: %v", err)
		}
		if token, _ := repo.Get(); token != "second-token" {
			t.Errorf("expected second-token after overwrite, got %q", token)
		}

		if err := repo.Clear(); err != nil {
			t.Fatalf("failed to clear: %v", err)
		}
		if token, _ := repo.Get(); token != "" {
			t.Errorf("expected empty token after clear, got %q", token)
		}

		if err := repo.Clear(); err != nil {
			t.Errorf("clearing an empty store should not error: %v", err)
		}
	})

	t.Run("SessionTokenIsIndependent", func(t *testing.T) {
		repo := NewCredentialRepository(setupTestDB(t))

		if err := repo.Set("catalog-token"); err != nil {
			t.Fatalf("failed to set catalog token: %v", err)
		}
		if err := repo.SetSessionToken("session-token"); err != nil {
			t.Fatalf("failed to set session token: %v", err)
		}

		if token, _ := repo.Get(); token != "catalog-token" {
			t.Errorf("catalog token clobbered: %q", token)
		}
		if token, _ := repo.SessionToken(); token != "session-token" {
			t.Errorf("session token wrong: %q", token)
		}

		if err := repo.Clear(); err != nil {
			t.Fatalf("failed to clear catalog token: %v", err)
		}
		if token, _ := repo.SessionToken(); token != "session-token" {
			t.Error("clearing the catalog token must not touch the session token")
		}

		if err := repo.ClearSessionToken(); err != nil {
			t.Fatalf("failed to clear session token: %v", err)
		}
		if token, _ := repo.SessionToken(); token != "" {
			t.Errorf("expected empty session token, got %q", token)
		}
	})

	t.Run("StatusConsumeOnce", func(t *testing.T) {
		repo := NewCredentialRepository(setupTestDB(t))

		if err := repo.SetStatus("auth", "expired"); err != nil {
			t.Fatalf("failed to set status: %v", err)
		}

		message, ok, err := repo.TakeStatus("auth")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !ok || message != "expired" {
			t.Errorf("expected (expired, true), got (%q, %v)", message, ok)
		}

		_, ok, err = repo.TakeStatus("auth")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ok {
			t.Error("status flags must be consumed once")
		}
	})
}

func TestCatalogItemRepository(t *testing.T) {
	track := models.CatalogItem{
		Kind:        models.ItemTypeTrack,
		ID:          "4uLU6hMCjMI75M1A2tKUQC",
		Name:        "Never Gonna Give You Up",
		Artists:     []string{"Rick Astley"},
		ImageURL:    "https://i.scdn.co/image/abc",
		ReleaseDate: "1987-11-12",
	}

	t.Run("CreateAndGet", func(t *testing.T) {
		repo := NewCatalogItemRepository(setupTestDB(t))

		if err := repo.Create(track); err != nil {
			t.Fatalf("failed to create: %v", err)
		}

		got, err := repo.GetByKey(track.Kind, track.ID)
		if err != nil {
			t.Fatalf("failed to get: %v", err)
		}
		if got.Name != track.Name {
			t.Errorf("expected %q, got %q", track.Name, got.Name)
		}
		if len(got.Artists) != 1 || got.Artists[0] != "Rick Astley" {
			t.Errorf("artists round trip failed: %v", got.Artists)
		}
		if got.ReleaseDate != track.ReleaseDate {
			t.Errorf("expected release date %q, got %q", track.ReleaseDate, got.ReleaseDate)
		}
	})

	t.Run("RejectsInvalid", func(t *testing.T) {
		repo := NewCatalogItemRepository(setupTestDB(t))

		if err := repo.Create(models.CatalogItem{Kind: "podcast", ID: "x"}); err == nil {
			t.Error("expected an error for an invalid kind")
		}
		if err := repo.Create(models.CatalogItem{Kind: models.ItemTypeTrack}); err == nil {
			t.Error("expected an error for a missing id")
		}
	})

	t.Run("ListOrdersBySequence", func(t *testing.T) {
		repo := NewCatalogItemRepository(setupTestDB(t))

		for _, id := range []string{"id-a", "id-b", "id-c"} {
			item := track
			item.ID = id
			if err := repo.Create(item); err != nil {
				t.Fatalf("failed to create %s: %v", id, err)
			}
		}

		items, err := repo.List(models.ItemTypeTrack)
		if err != nil {
			t.Fatalf("failed to list: %v", err)
		}
		if len(items) != 3 {
			t.Fatalf("expected 3 items, got %d", len(items))
		}
		for i, want := range []string{"id-a", "id-b", "id-c"} {
			if items[i].ID != want {
				t.Errorf("position %d: expected %s, got %s", i, want, items[i].ID)
			}
		}
	})

	t.Run("SoftDelete", func(t *testing.T) {
		repo := NewCatalogItemRepository(setupTestDB(t))

		if err := repo.Create(track); err != nil {
			t.Fatalf("failed to create: %v", err)
		}
		if err := repo.Delete(track.Kind, track.ID); err != nil {
			t.Fatalf("failed to delete: %v", err)
		}

		if _, err := repo.GetByKey(track.Kind, track.ID); err == nil {
			t.Error("deleted item should no longer be retrievable")
		}
		if err := repo.Delete(track.Kind, track.ID); err == nil {
			t.Error("double delete should report not found")
		}
	})

	t.Run("RememberDeduplicates", func(t *testing.T) {
		repo := NewCatalogItemRepository(setupTestDB(t))

		for i := 0; i < 3; i++ {
			if err := repo.Remember(track); err != nil {
				t.Fatalf("remember %d failed: %v", i, err)
			}
		}

		items, err := repo.List(models.ItemTypeTrack)
		if err != nil {
			t.Fatalf("failed to list: %v", err)
		}
		if len(items) != 1 {
			t.Errorf("expected a single cached row, got %d", len(items))
		}
	})

	t.Run("SameIDAcrossTypes", func(t *testing.T) {
		repo := NewCatalogItemRepository(setupTestDB(t))

		album := track
		album.Kind = models.ItemTypeAlbum
		if err := repo.Create(track); err != nil {
			t.Fatalf("failed to create track: %v", err)
		}
		if err := repo.Create(album); err != nil {
			t.Fatalf("same catalog id under a different type should insert: %v", err)
		}
	})
}
