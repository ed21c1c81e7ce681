package repositories

import (
	"database/sql"
	"fmt"
	"time"
)

// Credential row keys. The catalog token cycles through refresh; the session
// token lives until the user signs out.
const (
	catalogTokenKey = "catalog_access_token"
	sessionTokenKey = "session_token"
)

// CredentialRepository implements auth.CredentialStore over SQLite.
//
// The token is stored as an opaque string: shape validation and expiry
// discovery happen in the auth layer, not here.
type CredentialRepository struct {
	db *sql.DB
}

// NewCredentialRepository creates a new CredentialRepository with the given database connection
func NewCredentialRepository(db *sql.DB) *CredentialRepository {
	return &CredentialRepository{db: db}
}

// Get returns the stored catalog access token, or "" when absent.
func (r *CredentialRepository) Get() (string, error) {
	return r.value(catalogTokenKey)
}

// Set persists a new catalog access token, replacing any existing one.
func (r *CredentialRepository) Set(token string) error {
	return r.setValue(catalogTokenKey, token)
}

// Clear removes the stored catalog access token.
func (r *CredentialRepository) Clear() error {
	return r.clearValue(catalogTokenKey)
}

// SessionToken returns the stored session token, or "" when absent.
func (r *CredentialRepository) SessionToken() (string, error) {
	return r.value(sessionTokenKey)
}

// SetSessionToken persists the session token, replacing any existing one.
func (r *CredentialRepository) SetSessionToken(token string) error {
	return r.setValue(sessionTokenKey, token)
}

// ClearSessionToken removes the stored session token.
func (r *CredentialRepository) ClearSessionToken() error {
	return r.clearValue(sessionTokenKey)
}

func (r *CredentialRepository) value(key string) (string, error) {
	var value string
	err := r.db.QueryRow("SELECT value FROM credentials WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read credential: %w", err)
	}
	return value, nil
}

func (r *CredentialRepository) setValue(key, value string) error {
	query := `
		INSERT INTO credentials (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`

	if _, err := r.db.Exec(query, key, value, time.Now()); err != nil {
		return fmt.Errorf("failed to store credential: %w", err)
	}
	return nil
}

func (r *CredentialRepository) clearValue(key string) error {
	if _, err := r.db.Exec("DELETE FROM credentials WHERE key = ?", key); err != nil {
		return fmt.Errorf("failed to clear credential: %w", err)
	}
	return nil
}

// SetStatus records a transient auth-status flag for the UI layer.
func (r *CredentialRepository) SetStatus(key, message string) error {
	query := `
		INSERT INTO auth_status (key, message, created_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET message = excluded.message, created_at = excluded.created_at
	`

	if _, err := r.db.Exec(query, key, message, time.Now()); err != nil {
		return fmt.Errorf("failed to store auth status: %w", err)
	}
	return nil
}

// TakeStatus reads and clears a transient auth-status flag. Flags are
// consumed once: a second call for the same key reports no flag.
func (r *CredentialRepository) TakeStatus(key string) (string, bool, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return "", false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var message string
	err = tx.QueryRow("SELECT message FROM auth_status WHERE key = ?", key).Scan(&message)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read auth status: %w", err)
	}

	if _, err := tx.Exec("DELETE FROM auth_status WHERE key = ?", key); err != nil {
		return "", false, fmt.Errorf("failed to consume auth status: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return "", false, fmt.Errorf("failed to commit status consumption: %w", err)
	}

	return message, true, nil
}
