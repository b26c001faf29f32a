package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/clipseek/clipseek-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/clipseek/clipseek-cli/internal/core/domain"
	"github.com/clipseek/clipseek-cli/internal/core/ports/driven"
)

// Store is a unified SQLite-based storage that provides access to
// all metadata store interfaces through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.clipseek/data/catalog.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".clipseek", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "catalog.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
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

// CatalogStore returns a CatalogStore interface backed by this store.
func (s *Store) CatalogStore() driven.CatalogStore {
	return &catalogStore{store: s}
}

// IngestionStore returns an IngestionStore interface backed by this store.
func (s *Store) IngestionStore() driven.IngestionStore {
	return &ingestionStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	// Sort and run migrations
	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		// Read and execute migration
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Catalog Store ====================

// catalogStore implements driven.CatalogStore.
type catalogStore struct {
	store *Store
}

var _ driven.CatalogStore = (*catalogStore)(nil)

// Save stores or updates a catalog entry.
func (s *catalogStore) Save(ctx context.Context, entry domain.CatalogEntry) error {
	now := time.Now().UTC()
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = now
	}
	entry.UpdatedAt = now

	if entry.Kind == "" {
		entry.Kind = domain.CatalogKindVideo
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO catalog_entries (id, url, title, kind, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			url = excluded.url,
			title = excluded.title,
			kind = excluded.kind,
			updated_at = excluded.updated_at
	`, entry.ID, entry.URL, entry.Title, entry.Kind, entry.CreatedAt, entry.UpdatedAt)

	if err != nil {
		return fmt.Errorf("saving catalog entry: %w", err)
	}
	return nil
}

// Get retrieves a catalog entry by ID.
func (s *catalogStore) Get(ctx context.Context, id string) (*domain.CatalogEntry, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, url, title, kind, created_at, updated_at
		FROM catalog_entries WHERE id = ?
	`, id)

	var entry domain.CatalogEntry
	var createdAt, updatedAt sql.NullTime
	if err := row.Scan(&entry.ID, &entry.URL, &entry.Title, &entry.Kind, &createdAt, &updatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning catalog entry: %w", err)
	}

	if createdAt.Valid {
		entry.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		entry.UpdatedAt = updatedAt.Time
	}

	return &entry, nil
}

// Delete removes a catalog entry.
func (s *catalogStore) Delete(ctx context.Context, id string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM catalog_entries WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting catalog entry: %w", err)
	}
	return nil
}

// List returns all catalog entries.
func (s *catalogStore) List(ctx context.Context) ([]domain.CatalogEntry, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, url, title, kind, created_at, updated_at
		FROM catalog_entries
		ORDER BY created_at
	`)
	if err != nil {
		return nil, fmt.Errorf("querying catalog entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.CatalogEntry //nolint:prealloc // size unknown from query
	for rows.Next() {
		var entry domain.CatalogEntry
		var createdAt, updatedAt sql.NullTime
		if err := rows.Scan(&entry.ID, &entry.URL, &entry.Title, &entry.Kind, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scanning catalog entry: %w", err)
		}
		if createdAt.Valid {
			entry.CreatedAt = createdAt.Time
		}
		if updatedAt.Valid {
			entry.UpdatedAt = updatedAt.Time
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating catalog entries: %w", err)
	}

	return entries, nil
}

// ==================== Ingestion Store ====================

// ingestionStore implements driven.IngestionStore.
type ingestionStore struct {
	store *Store
}

var _ driven.IngestionStore = (*ingestionStore)(nil)

// Save stores or updates an ingestion record.
func (s *ingestionStore) Save(ctx context.Context, record domain.IngestionRecord) error {
	entryIDsJSON, err := json.Marshal(record.EntryIDs)
	if err != nil {
		return fmt.Errorf("marshalling entry ids: %w", err)
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO ingestions (batch_name, entry_ids, state, error, submitted_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(batch_name) DO UPDATE SET
			entry_ids = excluded.entry_ids,
			state = excluded.state,
			error = excluded.error,
			updated_at = excluded.updated_at
	`, record.BatchName, string(entryIDsJSON), string(record.State),
		record.Error, record.SubmittedAt, record.UpdatedAt)

	if err != nil {
		return fmt.Errorf("saving ingestion record: %w", err)
	}
	return nil
}

// Get retrieves an ingestion record by batch name.
func (s *ingestionStore) Get(ctx context.Context, batchName string) (*domain.IngestionRecord, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT batch_name, entry_ids, state, error, submitted_at, updated_at
		FROM ingestions WHERE batch_name = ?
	`, batchName)

	record, err := scanIngestionRow(row)
	if err != nil {
		return nil, err
	}
	return record, nil
}

// List returns all ingestion records, newest first.
func (s *ingestionStore) List(ctx context.Context) ([]domain.IngestionRecord, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT batch_name, entry_ids, state, error, submitted_at, updated_at
		FROM ingestions
		ORDER BY submitted_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying ingestion records: %w", err)
	}
	defer rows.Close()

	var records []domain.IngestionRecord //nolint:prealloc // size unknown from query
	for rows.Next() {
		record, err := scanIngestionRows(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating ingestion records: %w", err)
	}

	return records, nil
}

// scanIngestionRow scans a single ingestion record row.
func scanIngestionRow(row *sql.Row) (*domain.IngestionRecord, error) {
	var record domain.IngestionRecord
	var entryIDsJSON, state string
	var submittedAt, updatedAt sql.NullTime

	if err := row.Scan(&record.BatchName, &entryIDsJSON, &state,
		&record.Error, &submittedAt, &updatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning ingestion record: %w", err)
	}

	return finishIngestionScan(&record, entryIDsJSON, state, submittedAt, updatedAt)
}

// scanIngestionRows scans an ingestion record from *sql.Rows.
func scanIngestionRows(rows *sql.Rows) (*domain.IngestionRecord, error) {
	var record domain.IngestionRecord
	var entryIDsJSON, state string
	var submittedAt, updatedAt sql.NullTime

	if err := rows.Scan(&record.BatchName, &entryIDsJSON, &state,
		&record.Error, &submittedAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("scanning ingestion record: %w", err)
	}

	return finishIngestionScan(&record, entryIDsJSON, state, submittedAt, updatedAt)
}

// finishIngestionScan decodes the JSON and time columns shared by both scanners.
func finishIngestionScan(
	record *domain.IngestionRecord,
	entryIDsJSON, state string,
	submittedAt, updatedAt sql.NullTime,
) (*domain.IngestionRecord, error) {
	if err := json.Unmarshal([]byte(entryIDsJSON), &record.EntryIDs); err != nil {
		return nil, fmt.Errorf("unmarshaling entry ids: %w", err)
	}

	record.State = domain.IngestionState(state)
	if submittedAt.Valid {
		record.SubmittedAt = submittedAt.Time
	}
	if updatedAt.Valid {
		record.UpdatedAt = updatedAt.Time
	}

	return record, nil
}
