package sqlite_test

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/dragkit/internal/domain/entity"
	"github.com/bnema/dragkit/internal/infrastructure/persistence/sqlite"
	"github.com/bnema/dragkit/internal/logging"
)

func testCtx() context.Context {
	logger := logging.NewFromConfigValues("debug", "console")
	return logging.WithContext(context.Background(), logger)
}

func openJournal(t *testing.T) (context.Context, *sqlite.LazyDB) {
	t.Helper()
	ctx := testCtx()
	lazy := sqlite.NewLazyDB(filepath.Join(t.TempDir(), "journal.sqlite"))
	t.Cleanup(func() { _ = lazy.Close() })
	return ctx, lazy
}

func entryAt(id string, ended time.Time, index *int) entity.JournalEntry {
	return entity.JournalEntry{
		OperationID: entity.OperationID(id),
		Source:      "card-1",
		FromZone:    "todo",
		ToZone:      "done",
		Area:        "board",
		Index:       index,
		Position:    entity.PositionAfter,
		Kinds:       []entity.PayloadKind{entity.KindResource, entity.KindString},
		StartedAt:   ended.Add(-2 * time.Second),
		EndedAt:     ended,
	}
}

func TestJournalRepository_RecordAndGetRecent(t *testing.T) {
	ctx, lazy := openJournal(t)
	db, err := lazy.DB(ctx)
	require.NoError(t, err)
	repo := sqlite.NewJournalRepository(db)

	base := time.UnixMilli(1_700_000_000_000)
	idx := 3
	require.NoError(t, repo.Record(ctx, entryAt("op-1", base, &idx)))
	require.NoError(t, repo.Record(ctx, entryAt("op-2", base.Add(time.Minute), nil)))

	cancelled := entryAt("op-3", base.Add(2*time.Minute), nil)
	cancelled.ToZone = ""
	cancelled.Area = ""
	cancelled.Position = entity.PositionNone
	cancelled.Cancelled = true
	require.NoError(t, repo.Record(ctx, cancelled))

	got, err := repo.GetRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, entity.OperationID("op-3"), got[0].OperationID)
	assert.True(t, got[0].Cancelled)
	assert.Nil(t, got[0].Index)
	assert.Equal(t, entity.PositionNone, got[0].Position)

	last := got[2]
	assert.Equal(t, entity.OperationID("op-1"), last.OperationID)
	require.NotNil(t, last.Index)
	assert.Equal(t, 3, *last.Index)
	assert.Equal(t, entity.PositionAfter, last.Position)
	assert.Equal(t, []entity.PayloadKind{entity.KindResource, entity.KindString}, last.Kinds)
	assert.Equal(t, entity.AreaID("board"), last.Area)
	assert.True(t, base.Equal(last.EndedAt))
	assert.Equal(t, 2*time.Second, last.Duration())
}

func TestJournalRepository_RecordIsIdempotentPerOperation(t *testing.T) {
	ctx, lazy := openJournal(t)
	db, err := lazy.DB(ctx)
	require.NoError(t, err)
	repo := sqlite.NewJournalRepository(db)

	now := time.UnixMilli(1_700_000_000_000)
	require.NoError(t, repo.Record(ctx, entryAt("op-1", now, nil)))
	require.NoError(t, repo.Record(ctx, entryAt("op-1", now.Add(time.Hour), nil)))

	got, err := repo.GetRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, now.Equal(got[0].EndedAt))
}

func TestJournalRepository_GetRecentLimit(t *testing.T) {
	ctx, lazy := openJournal(t)
	db, err := lazy.DB(ctx)
	require.NoError(t, err)
	repo := sqlite.NewJournalRepository(db)

	base := time.UnixMilli(1_700_000_000_000)
	for i, id := range []string{"a", "b", "c"} {
		require.NoError(t, repo.Record(ctx, entryAt(id, base.Add(time.Duration(i)*time.Second), nil)))
	}

	got, err := repo.GetRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, entity.OperationID("c"), got[0].OperationID)
	assert.Equal(t, entity.OperationID("b"), got[1].OperationID)

	none, err := repo.GetRecent(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestJournalRepository_DeleteBefore(t *testing.T) {
	ctx, lazy := openJournal(t)
	db, err := lazy.DB(ctx)
	require.NoError(t, err)
	repo := sqlite.NewJournalRepository(db)

	base := time.UnixMilli(1_700_000_000_000)
	require.NoError(t, repo.Record(ctx, entryAt("old", base, nil)))
	require.NoError(t, repo.Record(ctx, entryAt("new", base.Add(48*time.Hour), nil)))

	deleted, err := repo.DeleteBefore(ctx, base.Add(24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	got, err := repo.GetRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, entity.OperationID("new"), got[0].OperationID)
}

func TestMigrations_Version(t *testing.T) {
	ctx, lazy := openJournal(t)
	db, err := lazy.DB(ctx)
	require.NoError(t, err)

	version, err := sqlite.GetMigrationStatus(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)

	// Re-running is a no-op.
	require.NoError(t, sqlite.RunMigrations(ctx, db))
}

func TestNewConnection_EmptyPath(t *testing.T) {
	_, err := sqlite.NewConnection(testCtx(), "")
	require.Error(t, err)
}

func TestLazyDB_InitializesOnFirstAccess(t *testing.T) {
	ctx, lazy := openJournal(t)
	assert.False(t, lazy.IsInitialized())

	db1, err := lazy.DB(ctx)
	require.NoError(t, err)
	db2, err := lazy.DB(ctx)
	require.NoError(t, err)

	assert.Same(t, db1, db2)
	assert.True(t, lazy.IsInitialized())
}

func TestLazyDB_ConcurrentAccess(t *testing.T) {
	ctx, lazy := openJournal(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := lazy.DB(ctx)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.True(t, lazy.IsInitialized())
}

func TestLazyJournalRepository_OpensOnFirstCall(t *testing.T) {
	ctx, lazy := openJournal(t)
	repo := sqlite.NewLazyJournalRepository(lazy)
	assert.False(t, lazy.IsInitialized())

	require.NoError(t, repo.Record(ctx, entryAt("op-1", time.UnixMilli(1_700_000_000_000), nil)))
	assert.True(t, lazy.IsInitialized())

	got, err := repo.GetRecent(ctx, 5)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
