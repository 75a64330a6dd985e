package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/stagedock/internal/domain/entity"
	"github.com/bnema/stagedock/internal/domain/repository"
	"github.com/bnema/stagedock/internal/infrastructure/persistence/sqlite"
)

func sampleLayout() *entity.Layout {
	return &entity.Layout{Windows: []*entity.Window{{
		ID:    "w1",
		Frame: entity.Rect{X: 10, Y: 20, W: 1280, H: 800},
		Root: entity.NewSplit("s1", entity.AxisHorizontal,
			entity.NewTabGroup("g1",
				&entity.Tab{ID: "A", Title: "Alpha", Cargo: []byte(`{"cursor":3}`)},
				&entity.Tab{ID: "B", Title: "Beta"},
			),
			entity.NewStageHost("h1",
				&entity.Stage{ID: "st1", Title: "Main", Layout: entity.NewTabGroup("g2", &entity.Tab{ID: "C"})},
			),
		),
	}}}
}

func TestLayoutRepository_SaveAndGetRoundTrips(t *testing.T) {
	ctx := context.Background()
	db, err := sqlite.NewConnection(ctx, filepath.Join(t.TempDir(), "stagedock.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := sqlite.NewLayoutRepository(db)
	snap := entity.SnapshotFromLayout(sampleLayout())

	require.NoError(t, repo.SaveSnapshot(ctx, "work", snap))

	got, err := repo.GetSnapshot(ctx, "work")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, entity.LayoutSnapshotVersion, got.Version)
	assert.True(t, entity.LayoutsEqual(sampleLayout(), got.ToLayout()))

	// Cargo survives the database byte for byte.
	tabs := got.ToLayout().AllTabs()
	var cargo string
	for _, tab := range tabs {
		if tab.ID == "A" {
			cargo = string(tab.Cargo)
		}
	}
	assert.Equal(t, `{"cursor":3}`, cargo)
}

func TestLayoutRepository_SaveReplacesExisting(t *testing.T) {
	ctx := context.Background()
	db, err := sqlite.NewConnection(ctx, filepath.Join(t.TempDir(), "stagedock.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := sqlite.NewLayoutRepository(db)
	require.NoError(t, repo.SaveSnapshot(ctx, "work", entity.SnapshotFromLayout(sampleLayout())))

	smaller := &entity.Layout{Windows: []*entity.Window{{
		ID:   "w1",
		Root: entity.NewTabGroup("g1", &entity.Tab{ID: "A"}),
	}}}
	require.NoError(t, repo.SaveSnapshot(ctx, "work", entity.SnapshotFromLayout(smaller)))

	got, err := repo.GetSnapshot(ctx, "work")
	require.NoError(t, err)
	assert.True(t, entity.LayoutsEqual(smaller, got.ToLayout()))

	infos, err := repo.ListSnapshots(ctx)
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.Equal(t, 1, infos[0].TabCount)
}

func TestLayoutRepository_GetMissingFails(t *testing.T) {
	ctx := context.Background()
	db, err := sqlite.NewConnection(ctx, filepath.Join(t.TempDir(), "stagedock.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := sqlite.NewLayoutRepository(db)
	_, err = repo.GetSnapshot(ctx, "nope")
	assert.ErrorIs(t, err, repository.ErrLayoutNotFound)
}

func TestLayoutRepository_DeleteSnapshot(t *testing.T) {
	ctx := context.Background()
	db, err := sqlite.NewConnection(ctx, filepath.Join(t.TempDir(), "stagedock.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := sqlite.NewLayoutRepository(db)
	require.NoError(t, repo.SaveSnapshot(ctx, "gone", entity.SnapshotFromLayout(sampleLayout())))

	require.NoError(t, repo.DeleteSnapshot(ctx, "gone"))
	_, err = repo.GetSnapshot(ctx, "gone")
	assert.ErrorIs(t, err, repository.ErrLayoutNotFound)

	assert.ErrorIs(t, repo.DeleteSnapshot(ctx, "gone"), repository.ErrLayoutNotFound)
}

func TestLayoutRepository_ListOrdersByRecency(t *testing.T) {
	ctx := context.Background()
	db, err := sqlite.NewConnection(ctx, filepath.Join(t.TempDir(), "stagedock.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := sqlite.NewLayoutRepository(db)

	older := entity.SnapshotFromLayout(sampleLayout())
	older.SavedAt = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, repo.SaveSnapshot(ctx, "older", older))

	newer := entity.SnapshotFromLayout(sampleLayout())
	newer.SavedAt = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, repo.SaveSnapshot(ctx, "newer", newer))

	infos, err := repo.ListSnapshots(ctx)
	require.NoError(t, err)
	require.Len(t, infos, 2)
	assert.Equal(t, "newer", infos[0].Name)
	assert.Equal(t, "older", infos[1].Name)
	assert.Equal(t, 1, infos[0].WindowCount)
	assert.Greater(t, infos[0].SizeBytes, int64(0))
}
