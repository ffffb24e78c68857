package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/jaakkos/prodboard/internal/app"
	"github.com/jaakkos/prodboard/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS accounts (
	position INTEGER PRIMARY KEY,
	account TEXT NOT NULL,
	required INTEGER NOT NULL DEFAULT 0,
	revision INTEGER NOT NULL DEFAULT 0,
	missing INTEGER NOT NULL DEFAULT 0,
	missing_supplied INTEGER NOT NULL DEFAULT 0,
	editor TEXT NOT NULL DEFAULT '',
	category TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS meta (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
`

// indexes for the editor/category filter queries
const indexes = `
CREATE INDEX IF NOT EXISTS idx_accounts_editor ON accounts(editor);
CREATE INDEX IF NOT EXISTS idx_accounts_category ON accounts(category);
`

// Store implements app.DatasetRepository using SQLite.
type Store struct {
	db *sql.DB
}

// New opens the SQLite database at path (creating parent dirs and schema) and returns a DatasetRepository.
func New(path string) (app.DatasetRepository, error) {
	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("sqlite mkdir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("sqlite open: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite schema: %w", err)
	}
	if _, err := db.Exec(indexes); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite indexes: %w", err)
	}
	runMigrations(db)
	return &Store{db: db}, nil
}

// runMigrations brings databases written by older builds up to date.
// Errors mean the column already exists and are ignored.
func runMigrations(db *sql.DB) {
	_, _ = db.Exec("ALTER TABLE accounts ADD COLUMN missing_supplied INTEGER NOT NULL DEFAULT 0")
}

// Close releases the database connection. Call on shutdown for clean exit.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// parseTime parses RFC3339Nano or returns zero time and error. Empty is the zero time.
func parseTime(s, context string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: parse timestamp %q: %w", context, s, err)
	}
	return t, nil
}

// isNoSuchTableErr returns true if the error indicates the table doesn't exist.
func isNoSuchTableErr(err error) bool {
	return err != nil && strings.Contains(err.Error(), "no such table")
}

// Load implements app.DatasetRepository. Accounts come back in the order they were saved.
func (s *Store) Load() (*domain.Dataset, error) {
	if s.db == nil {
		return nil, fmt.Errorf("sqlite store is closed")
	}
	ds := domain.NewDataset()

	rows, err := s.db.Query("SELECT key, value FROM meta")
	if err != nil {
		return nil, fmt.Errorf("meta: %w", err)
	}
	meta := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			_ = rows.Close()
			return nil, err
		}
		meta[k] = v
	}
	_ = rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("meta iteration: %w", err)
	}
	ds.Source = meta["source"]
	ds.Checksum = meta["checksum"]
	ds.LoadError = meta["load_error"]
	ds.MissingMode = domain.MissingMode(meta["missing_mode"])
	ds.DataFile = meta["data_file"]
	ds.DataChecksum = meta["data_checksum"]
	if ds.LoadedAt, err = parseTime(meta["loaded_at"], "meta loaded_at"); err != nil {
		return nil, err
	}

	rows, err = s.db.Query("SELECT account, required, revision, missing, missing_supplied, editor, category FROM accounts ORDER BY position")
	if err != nil {
		if isNoSuchTableErr(err) {
			return ds, nil
		}
		return nil, fmt.Errorf("accounts: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var r domain.AccountRecord
		var supplied int
		if err := rows.Scan(&r.Account, &r.Required, &r.Revision, &r.Missing, &supplied, &r.Editor, &r.Category); err != nil {
			return nil, fmt.Errorf("accounts scan: %w", err)
		}
		r.MissingSupplied = supplied != 0
		ds.Accounts = append(ds.Accounts, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("accounts iteration: %w", err)
	}
	return ds, nil
}

// Save implements app.DatasetRepository. The stored dataset is replaced in one transaction.
func (s *Store) Save(ds *domain.Dataset) error {
	if ds == nil {
		return fmt.Errorf("dataset is nil")
	}
	if s.db == nil {
		return fmt.Errorf("sqlite store is closed")
	}
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, t := range []string{"accounts", "meta"} {
		if _, err := tx.Exec("DELETE FROM " + t); err != nil {
			return err
		}
	}

	loadedAt := ""
	if !ds.LoadedAt.IsZero() {
		loadedAt = ds.LoadedAt.UTC().Format(time.RFC3339Nano)
	}
	meta := map[string]string{
		"source":        ds.Source,
		"checksum":      ds.Checksum,
		"load_error":    ds.LoadError,
		"loaded_at":     loadedAt,
		"missing_mode":  string(ds.MissingMode),
		"data_file":     ds.DataFile,
		"data_checksum": ds.DataChecksum,
	}
	for k, v := range meta {
		if _, err := tx.Exec("INSERT INTO meta (key, value) VALUES (?, ?)", k, v); err != nil {
			return err
		}
	}

	stmt, err := tx.Prepare("INSERT INTO accounts (position, account, required, revision, missing, missing_supplied, editor, category) VALUES (?, ?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()
	for i, r := range ds.Accounts {
		supplied := 0
		if r.MissingSupplied {
			supplied = 1
		}
		if _, err := stmt.Exec(i, r.Account, r.Required, r.Revision, r.Missing, supplied, r.Editor, r.Category); err != nil {
			return fmt.Errorf("insert account %q: %w", r.Account, err)
		}
	}

	return tx.Commit()
}
