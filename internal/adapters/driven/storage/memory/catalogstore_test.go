package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clipseek/clipseek-cli/internal/core/domain"
)

func TestCatalogStore_SaveAndGet(t *testing.T) {
	store := NewCatalogStore()
	ctx := context.Background()

	entry := domain.CatalogEntry{
		ID:        "v1",
		URL:       "https://example.blob.core.windows.net/media/v1.mp4",
		Title:     "First video",
		CreatedAt: time.Now(),
	}

	require.NoError(t, store.Save(ctx, entry))

	got, err := store.Get(ctx, "v1")
	require.NoError(t, err)
	assert.Equal(t, entry, *got)
}

func TestCatalogStore_Get_NotFound(t *testing.T) {
	store := NewCatalogStore()

	_, err := store.Get(context.Background(), "missing")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCatalogStore_Save_Overwrites(t *testing.T) {
	store := NewCatalogStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, domain.CatalogEntry{ID: "v1", Title: "old"}))
	require.NoError(t, store.Save(ctx, domain.CatalogEntry{ID: "v1", Title: "new"}))

	got, err := store.Get(ctx, "v1")
	require.NoError(t, err)
	assert.Equal(t, "new", got.Title)
}

func TestCatalogStore_Delete(t *testing.T) {
	store := NewCatalogStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, domain.CatalogEntry{ID: "v1"}))
	require.NoError(t, store.Delete(ctx, "v1"))

	_, err := store.Get(ctx, "v1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCatalogStore_Delete_Idempotent(t *testing.T) {
	store := NewCatalogStore()

	assert.NoError(t, store.Delete(context.Background(), "missing"))
}

func TestCatalogStore_List(t *testing.T) {
	store := NewCatalogStore()
	ctx := context.Background()

	entries, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)

	require.NoError(t, store.Save(ctx, domain.CatalogEntry{ID: "v1"}))
	require.NoError(t, store.Save(ctx, domain.CatalogEntry{ID: "v2"}))

	entries, err = store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestCatalogStore_ConcurrentAccess(t *testing.T) {
	store := NewCatalogStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			entry := domain.CatalogEntry{ID: string(rune('a' + n))}
			assert.NoError(t, store.Save(ctx, entry))
			_, _ = store.List(ctx)
		}(i)
	}
	wg.Wait()

	entries, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 10)
}
