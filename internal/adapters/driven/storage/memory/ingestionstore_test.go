package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clipseek/clipseek-cli/internal/core/domain"
)

func TestIngestionStore_SaveAndGet(t *testing.T) {
	store := NewIngestionStore()
	ctx := context.Background()

	record := domain.IngestionRecord{
		BatchName:   "ingest-1700000000",
		EntryIDs:    []string{"v1", "v2"},
		State:       domain.IngestionRunning,
		SubmittedAt: time.Now(),
	}

	require.NoError(t, store.Save(ctx, record))

	got, err := store.Get(ctx, "ingest-1700000000")
	require.NoError(t, err)
	assert.Equal(t, record, *got)
}

func TestIngestionStore_Get_NotFound(t *testing.T) {
	store := NewIngestionStore()

	_, err := store.Get(context.Background(), "missing")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestIngestionStore_Save_UpdatesState(t *testing.T) {
	store := NewIngestionStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, domain.IngestionRecord{
		BatchName: "ingest-1",
		State:     domain.IngestionRunning,
	}))
	require.NoError(t, store.Save(ctx, domain.IngestionRecord{
		BatchName: "ingest-1",
		State:     domain.IngestionFailed,
		Error:     "unsupported format",
	}))

	got, err := store.Get(ctx, "ingest-1")
	require.NoError(t, err)
	assert.Equal(t, domain.IngestionFailed, got.State)
	assert.Equal(t, "unsupported format", got.Error)
}

func TestIngestionStore_List_NewestFirst(t *testing.T) {
	store := NewIngestionStore()
	ctx := context.Background()

	base := time.Now()
	require.NoError(t, store.Save(ctx, domain.IngestionRecord{
		BatchName:   "ingest-old",
		SubmittedAt: base.Add(-time.Hour),
	}))
	require.NoError(t, store.Save(ctx, domain.IngestionRecord{
		BatchName:   "ingest-new",
		SubmittedAt: base,
	}))

	records, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "ingest-new", records[0].BatchName)
	assert.Equal(t, "ingest-old", records[1].BatchName)
}
