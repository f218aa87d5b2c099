package token

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	_ "modernc.org/sqlite"
)

// Storage keys for the two scalar entries. Kept as separate rows,
// written and cleared individually, matching the single-token record
// the rest of the application expects.
const (
	keyAccessToken = "spotify_token"
	keyExpiry      = "token_expiry"
)

// Store persists the token record in a SQLite-backed key/value table.
type Store struct {
	db *sql.DB
}

// NewStore opens (creating if needed) the settings database at dbPath.
// Use ":memory:" for an ephemeral store in tests.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Single connection keeps in-memory databases consistent and is
	// plenty for a two-row settings table.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA busy_timeout = 10000",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA journal_mode = WAL",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	schema := `
		CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Load reads the stored token record. The second return value is false
// when no usable record exists: either entry missing, or an expiry that
// does not parse as an integer (fail closed — a malformed record is
// treated the same as no record).
func (s *Store) Load(ctx context.Context) (Record, bool, error) {
	accessToken, err := s.getValue(ctx, keyAccessToken)
	if err != nil {
		return Record{}, false, err
	}
	expiry, err := s.getValue(ctx, keyExpiry)
	if err != nil {
		return Record{}, false, err
	}

	if accessToken == "" || expiry == "" {
		return Record{}, false, nil
	}

	ms, err := strconv.ParseInt(expiry, 10, 64)
	if err != nil {
		return Record{}, false, nil
	}

	return Record{AccessToken: accessToken, ExpiresAt: ms}, true, nil
}

// Save persists the record, overwriting any previous one. The expiry is
// stored as a stringified millisecond timestamp.
func (s *Store) Save(ctx context.Context, rec Record) error {
	if err := s.setValue(ctx, keyAccessToken, rec.AccessToken); err != nil {
		return fmt.Errorf("failed to save access token: %w", err)
	}
	if err := s.setValue(ctx, keyExpiry, strconv.FormatInt(rec.ExpiresAt, 10)); err != nil {
		return fmt.Errorf("failed to save token expiry: %w", err)
	}
	return nil
}

// Clear removes the stored record. Each entry is cleared individually;
// clearing an absent record is not an error.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM settings WHERE key = ?`, keyAccessToken); err != nil {
		return fmt.Errorf("failed to clear access token: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM settings WHERE key = ?`, keyExpiry); err != nil {
		return fmt.Errorf("failed to clear token expiry: %w", err)
	}
	return nil
}

func (s *Store) getValue(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", key, err)
	}
	return value, nil
}

func (s *Store) setValue(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	return err
}
