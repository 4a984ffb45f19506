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
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/dart-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/dart-cli/internal/core/domain"
	"github.com/custodia-labs/dart-cli/internal/core/ports/driven"
)

// DBFile is the session database file name inside the data directory.
const DBFile = "session.db"

// Store is a unified SQLite-based storage that provides access to
// the session store interfaces through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store in the specified data directory.
// If dataDir is empty, defaults to ~/.dart/data/session.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".dart", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, DBFile)

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

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

// ReportStore returns a ReportStore interface backed by this store.
func (s *Store) ReportStore() driven.ReportStore {
	return &reportStore{store: s}
}

// HistoryStore returns a HistoryStore interface backed by this store.
func (s *Store) HistoryStore() driven.HistoryStore {
	return &historyStore{store: s}
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

	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_initial.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Report Store ====================

// reportStore implements driven.ReportStore.
type reportStore struct {
	store *Store
}

var _ driven.ReportStore = (*reportStore)(nil)

// Add inserts an item. A second item for the same citation is rejected.
func (s *reportStore) Add(ctx context.Context, item *domain.ReportItem) error {
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO report_items (id, category, section, clause, page, note, link, added_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, item.ID, item.Category, item.Section, item.Clause, item.Page, item.Note, item.Link,
		item.AddedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyExists
		}
		return fmt.Errorf("inserting report item: %w", err)
	}
	return nil
}

// List returns the items in the order they were added.
func (s *reportStore) List(ctx context.Context) ([]domain.ReportItem, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, category, section, clause, page, note, link, added_at
		FROM report_items ORDER BY rowid
	`)
	if err != nil {
		return nil, fmt.Errorf("querying report items: %w", err)
	}
	defer rows.Close()

	var items []domain.ReportItem
	for rows.Next() {
		var item domain.ReportItem
		var addedAt string
		if err := rows.Scan(&item.ID, &item.Category, &item.Section, &item.Clause,
			&item.Page, &item.Note, &item.Link, &addedAt); err != nil {
			return nil, fmt.Errorf("scanning report item: %w", err)
		}
		item.AddedAt = parseTime(addedAt)
		items = append(items, item)
	}
	return items, rows.Err()
}

// Delete removes an item by ID.
func (s *reportStore) Delete(ctx context.Context, id string) error {
	res, err := s.store.db.ExecContext(ctx, "DELETE FROM report_items WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting report item: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting report item: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Clear removes every item.
func (s *reportStore) Clear(ctx context.Context) error {
	if _, err := s.store.db.ExecContext(ctx, "DELETE FROM report_items"); err != nil {
		return fmt.Errorf("clearing report: %w", err)
	}
	return nil
}

// ==================== History Store ====================

// historyStore implements driven.HistoryStore.
type historyStore struct {
	store *Store
}

var _ driven.HistoryStore = (*historyStore)(nil)

// Record appends a history entry.
func (s *historyStore) Record(ctx context.Context, entry domain.HistoryEntry) error {
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO search_history (query, status, result_count, searched_at)
		VALUES (?, ?, ?, ?)
	`, entry.Query, string(entry.Status), entry.ResultCount,
		entry.SearchedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("recording search: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (s *historyStore) Recent(ctx context.Context, limit int) ([]domain.HistoryEntry, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT query, status, result_count, searched_at
		FROM search_history ORDER BY id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying search history: %w", err)
	}
	defer rows.Close()

	var entries []domain.HistoryEntry
	for rows.Next() {
		var entry domain.HistoryEntry
		var status, searchedAt string
		if err := rows.Scan(&entry.Query, &status, &entry.ResultCount, &searchedAt); err != nil {
			return nil, fmt.Errorf("scanning search history: %w", err)
		}
		entry.Status = domain.SearchStatus(status)
		entry.SearchedAt = parseTime(searchedAt)
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func isUniqueViolation(err error) bool {
	var target interface{ Code() int }
	if errors.As(err, &target) {
		// SQLITE_CONSTRAINT_UNIQUE and SQLITE_CONSTRAINT_PRIMARYKEY
		return target.Code() == 2067 || target.Code() == 1555
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
