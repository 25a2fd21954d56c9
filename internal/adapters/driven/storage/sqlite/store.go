// Package sqlite provides the persistent submission history store.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/meridian-labs/themata/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/meridian-labs/themata/internal/core/domain"
	"github.com/meridian-labs/themata/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.SubmissionStore = (*Store)(nil)

// Store is a SQLite-backed submission history store.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a submission store at the specified data directory.
// If dataDir is empty, defaults to ~/.themata/data/history.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".themata", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "history.db")

	// WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, path: dbPath}
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Save stores or updates a submission record.
func (s *Store) Save(ctx context.Context, rec domain.SubmissionRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO submissions (id, stage, source, entry_count, theme_count, result_json, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			stage = excluded.stage,
			source = excluded.source,
			entry_count = excluded.entry_count,
			theme_count = excluded.theme_count,
			result_json = excluded.result_json,
			updated_at = excluded.updated_at
	`, rec.ID, rec.Stage.String(), rec.Source, rec.EntryCount, rec.ThemeCount,
		rec.ResultJSON, rec.CreatedAt.UTC(), rec.UpdatedAt.UTC())
	if err != nil {
		return fmt.Errorf("saving submission %s: %w", rec.ID, err)
	}
	return nil
}

// Get retrieves a record by submission id.
func (s *Store) Get(ctx context.Context, id string) (*domain.SubmissionRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, stage, source, entry_count, theme_count, result_json, created_at, updated_at
		FROM submissions WHERE id = ?
	`, id)

	rec, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("getting submission %s: %w", id, err)
	}
	return rec, nil
}

// List returns all records, most recently updated first.
func (s *Store) List(ctx context.Context) ([]domain.SubmissionRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, stage, source, entry_count, theme_count, result_json, created_at, updated_at
		FROM submissions ORDER BY updated_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("listing submissions: %w", err)
	}
	defer rows.Close()

	var out []domain.SubmissionRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning submission: %w", err)
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

// Delete removes a record.
func (s *Store) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM submissions WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting submission %s: %w", id, err)
	}
	return nil
}

// scanner covers *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(sc scanner) (*domain.SubmissionRecord, error) {
	var rec domain.SubmissionRecord
	var stage string
	var createdAt, updatedAt time.Time
	if err := sc.Scan(&rec.ID, &stage, &rec.Source, &rec.EntryCount,
		&rec.ThemeCount, &rec.ResultJSON, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	rec.Stage = domain.ParseStage(stage)
	rec.CreatedAt = createdAt
	rec.UpdatedAt = updatedAt
	return &rec, nil
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var names []string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".up.sql") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		version, err := strconv.Atoi(strings.SplitN(name, "_", 2)[0])
		if err != nil {
			return fmt.Errorf("parsing migration version from %s: %w", name, err)
		}
		if version <= currentVersion {
			continue
		}

		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(data)); err != nil {
			return fmt.Errorf("applying migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %d: %w", version, err)
		}
	}
	return nil
}
