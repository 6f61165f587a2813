package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"pickterm/internal/model"

	_ "modernc.org/sqlite"
)

// RosterStore persists the imported candidate roster in a local SQLite
// database. Only the ingestion input lives here: the email and its seed
// selection flag. Runtime selection moves stay in memory and are never
// written back.
type RosterStore struct {
	db *sql.DB
}

// NewRosterStore opens (or creates) the database at the given path and runs
// migrations.
func NewRosterStore(dbPath string) (*RosterStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}

	return &RosterStore{db: db}, nil
}

func migrate(db *sql.DB) error {
	const schema = `
CREATE TABLE IF NOT EXISTS recipients (
	email    TEXT PRIMARY KEY,
	selected INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS metadata (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL DEFAULT ''
);
`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	return nil
}

func (s *RosterStore) Close() error {
	return s.db.Close()
}

// ReplaceRoster swaps the stored roster for the given records in one
// transaction and stamps the import source and time. Duplicate emails in the
// input collapse to one row, last occurrence winning.
func (s *RosterStore) ReplaceRoster(ctx context.Context, recs []model.RawRecipient, source string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM recipients"); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO recipients (email, selected) VALUES (?, ?)
		ON CONFLICT(email) DO UPDATE SET selected = excluded.selected
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range recs {
		sel := 0
		if r.Selected {
			sel = 1
		}
		if _, err := stmt.ExecContext(ctx, r.Email, sel); err != nil {
			return err
		}
	}

	meta := map[string]string{
		"import_source": source,
		"imported_at":   time.Now().UTC().Format(time.RFC3339),
	}
	for k, v := range meta {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO metadata (key, value) VALUES (?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value
		`, k, v)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// LoadRoster returns the stored roster ordered by email.
func (s *RosterStore) LoadRoster(ctx context.Context) ([]model.RawRecipient, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT email, selected FROM recipients ORDER BY email")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []model.RawRecipient
	for rows.Next() {
		var r model.RawRecipient
		var sel int
		if err := rows.Scan(&r.Email, &sel); err != nil {
			return nil, err
		}
		r.Selected = sel != 0
		recs = append(recs, r)
	}
	return recs, rows.Err()
}

func (s *RosterStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM recipients").Scan(&count)
	return count, err
}

// ImportSource reports where the stored roster came from, or "" when
// nothing has been imported yet.
func (s *RosterStore) ImportSource(ctx context.Context) (string, error) {
	var val string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM metadata WHERE key = 'import_source'").Scan(&val)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return val, err
}
