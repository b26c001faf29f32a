package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clipseek/clipseek-cli/internal/core/domain"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	require.NotNil(t, store)

	t.Cleanup(func() {
		assert.NoError(t, store.Close())
	})

	return store
}

func TestNewStore_ErrorHandling(t *testing.T) {
	_, err := NewStore("/invalid\x00path")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "creating data directory")
}

func TestNewStore_Success(t *testing.T) {
	tempDir := t.TempDir()

	store, err := NewStore(tempDir)
	require.NoError(t, err)
	require.NotNil(t, store)
	defer store.Close()

	dbPath := filepath.Join(tempDir, "catalog.db")
	assert.Equal(t, dbPath, store.Path())
	assert.FileExists(t, dbPath)

	assert.NoError(t, store.db.Ping())
}

func TestNewStore_MigrationsIdempotent(t *testing.T) {
	tempDir := t.TempDir()

	store, err := NewStore(tempDir)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	// Reopening the same directory must not rerun applied migrations.
	store, err = NewStore(tempDir)
	require.NoError(t, err)
	assert.NoError(t, store.Close())
}

// ==================== Catalog Store Tests ====================

func TestCatalogStore_SaveAndGet(t *testing.T) {
	store := setupTestStore(t)
	catalog := store.CatalogStore()
	ctx := context.Background()

	entry := domain.CatalogEntry{
		ID:    "v1",
		URL:   "https://example.blob.core.windows.net/media/v1.mp4",
		Title: "First video",
		Kind:  domain.CatalogKindVideo,
	}
	require.NoError(t, catalog.Save(ctx, entry))

	got, err := catalog.Get(ctx, "v1")
	require.NoError(t, err)
	assert.Equal(t, entry.ID, got.ID)
	assert.Equal(t, entry.URL, got.URL)
	assert.Equal(t, entry.Title, got.Title)
	assert.Equal(t, entry.Kind, got.Kind)
	assert.False(t, got.CreatedAt.IsZero())
	assert.False(t, got.UpdatedAt.IsZero())
}

func TestCatalogStore_Save_DefaultsKind(t *testing.T) {
	store := setupTestStore(t)
	catalog := store.CatalogStore()
	ctx := context.Background()

	require.NoError(t, catalog.Save(ctx, domain.CatalogEntry{ID: "v1", URL: "https://e/a.mp4"}))

	got, err := catalog.Get(ctx, "v1")
	require.NoError(t, err)
	assert.Equal(t, domain.CatalogKindVideo, got.Kind)
}

func TestCatalogStore_Get_NotFound(t *testing.T) {
	store := setupTestStore(t)

	_, err := store.CatalogStore().Get(context.Background(), "missing")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCatalogStore_Save_Upserts(t *testing.T) {
	store := setupTestStore(t)
	catalog := store.CatalogStore()
	ctx := context.Background()

	require.NoError(t, catalog.Save(ctx, domain.CatalogEntry{ID: "v1", URL: "https://e/a.mp4", Title: "old"}))
	require.NoError(t, catalog.Save(ctx, domain.CatalogEntry{ID: "v1", URL: "https://e/b.mp4", Title: "new"}))

	got, err := catalog.Get(ctx, "v1")
	require.NoError(t, err)
	assert.Equal(t, "https://e/b.mp4", got.URL)
	assert.Equal(t, "new", got.Title)
}

func TestCatalogStore_Delete(t *testing.T) {
	store := setupTestStore(t)
	catalog := store.CatalogStore()
	ctx := context.Background()

	require.NoError(t, catalog.Save(ctx, domain.CatalogEntry{ID: "v1", URL: "https://e/a.mp4"}))
	require.NoError(t, catalog.Delete(ctx, "v1"))

	_, err := catalog.Get(ctx, "v1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCatalogStore_List(t *testing.T) {
	store := setupTestStore(t)
	catalog := store.CatalogStore()
	ctx := context.Background()

	entries, err := catalog.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)

	require.NoError(t, catalog.Save(ctx, domain.CatalogEntry{ID: "v1", URL: "https://e/a.mp4"}))
	require.NoError(t, catalog.Save(ctx, domain.CatalogEntry{ID: "v2", URL: "https://e/b.mp4"}))

	entries, err = catalog.List(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

// ==================== Ingestion Store Tests ====================

func TestIngestionStore_SaveAndGet(t *testing.T) {
	store := setupTestStore(t)
	ingestions := store.IngestionStore()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	record := domain.IngestionRecord{
		BatchName:   "ingest-1700000000",
		EntryIDs:    []string{"v1", "v2"},
		State:       domain.IngestionRunning,
		SubmittedAt: now,
		UpdatedAt:   now,
	}
	require.NoError(t, ingestions.Save(ctx, record))

	got, err := ingestions.Get(ctx, "ingest-1700000000")
	require.NoError(t, err)
	assert.Equal(t, record.EntryIDs, got.EntryIDs)
	assert.Equal(t, domain.IngestionRunning, got.State)
	assert.True(t, got.SubmittedAt.Equal(now))
}

func TestIngestionStore_Get_NotFound(t *testing.T) {
	store := setupTestStore(t)

	_, err := store.IngestionStore().Get(context.Background(), "missing")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestIngestionStore_Save_UpdatesState(t *testing.T) {
	store := setupTestStore(t)
	ingestions := store.IngestionStore()
	ctx := context.Background()

	require.NoError(t, ingestions.Save(ctx, domain.IngestionRecord{
		BatchName: "ingest-1",
		EntryIDs:  []string{"v1"},
		State:     domain.IngestionRunning,
	}))
	require.NoError(t, ingestions.Save(ctx, domain.IngestionRecord{
		BatchName: "ingest-1",
		EntryIDs:  []string{"v1"},
		State:     domain.IngestionFailed,
		Error:     "unsupported format",
	}))

	got, err := ingestions.Get(ctx, "ingest-1")
	require.NoError(t, err)
	assert.Equal(t, domain.IngestionFailed, got.State)
	assert.Equal(t, "unsupported format", got.Error)
}

func TestIngestionStore_List_NewestFirst(t *testing.T) {
	store := setupTestStore(t)
	ingestions := store.IngestionStore()
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, ingestions.Save(ctx, domain.IngestionRecord{
		BatchName:   "ingest-old",
		EntryIDs:    []string{"v1"},
		State:       domain.IngestionCompleted,
		SubmittedAt: base.Add(-time.Hour),
	}))
	require.NoError(t, ingestions.Save(ctx, domain.IngestionRecord{
		BatchName:   "ingest-new",
		EntryIDs:    []string{"v2"},
		State:       domain.IngestionRunning,
		SubmittedAt: base,
	}))

	records, err := ingestions.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "ingest-new", records[0].BatchName)
	assert.Equal(t, "ingest-old", records[1].BatchName)
}
