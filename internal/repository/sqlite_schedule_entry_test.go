package repository

import (
	"context"
	"testing"
	"time"

	"github.com/bakeryops/ovenplan/internal/domain"
	"github.com/bakeryops/ovenplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduleEntryRepo_CreateAndGet(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	wcRepo := NewSQLiteWorkCenterRepo(database)
	repo := NewSQLiteScheduleEntryRepo(database)

	wc := testutil.NewTestWorkCenter("Mixer")
	require.NoError(t, wcRepo.Create(ctx, wc))

	arrival := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	e := testutil.NewTestEntry(wc.ID, "rye", arrival, 45, testutil.WithBatch(2, 3))
	require.NoError(t, repo.Create(ctx, e, "mixing"))

	got, err := repo.GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, e.OrderKey, got.OrderKey)
	assert.Equal(t, 2, got.BatchIndex)
	assert.Equal(t, 3, got.BatchTotal)
	assert.Equal(t, arrival, got.ArrivalTime)
	assert.True(t, got.IsExisting, "persisted entries load as existing")
}

func TestScheduleEntryRepo_ListWindowBounds(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	wcRepo := NewSQLiteWorkCenterRepo(database)
	repo := NewSQLiteScheduleEntryRepo(database)

	wc := testutil.NewTestWorkCenter("Oven")
	require.NoError(t, wcRepo.Create(ctx, wc))

	base := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	inside := testutil.NewTestEntry(wc.ID, "rye", base.Add(10*time.Hour), 60)
	straddling := testutil.NewTestEntry(wc.ID, "rye", base.Add(-time.Hour), 120)
	before := testutil.NewTestEntry(wc.ID, "rye", base.Add(-5*time.Hour), 60)
	after := testutil.NewTestEntry(wc.ID, "rye", base.Add(30*time.Hour), 60)
	for _, e := range []*domain.ScheduleEntry{inside, straddling, before, after} {
		require.NoError(t, repo.Create(ctx, e, "baking"))
	}

	entries, err := repo.ListWindow(ctx, wc.ID, base, base.Add(24*time.Hour))
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, straddling.ID, entries[0].ID, "entries straddling the window boundary are included")
	assert.Equal(t, inside.ID, entries[1].ID)
}

func TestScheduleEntryRepo_DerivedArrival(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	wcRepo := NewSQLiteWorkCenterRepo(database)
	restRepo := NewSQLiteRestTimeRepo(database)
	repo := NewSQLiteScheduleEntryRepo(database)

	mixer := testutil.NewTestWorkCenter("Mixer")
	oven := testutil.NewTestWorkCenter("Oven")
	require.NoError(t, wcRepo.Create(ctx, mixer))
	require.NoError(t, wcRepo.Create(ctx, oven))
	require.NoError(t, restRepo.Upsert(ctx, domain.RestTime{ProductID: "rye", Operation: "baking", Hours: 2}))

	t0 := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	upstream := testutil.NewTestEntry(mixer.ID, "rye", t0, 60)
	require.NoError(t, repo.Create(ctx, upstream, "mixing"))

	// Stored arrival is stale on purpose; loading must derive it from the
	// upstream end plus the configured rest time.
	downstream := testutil.NewTestEntry(oven.ID, "rye", t0, 30, testutil.WithSource(upstream.ID))
	require.NoError(t, repo.Create(ctx, downstream, "baking"))

	got, err := repo.GetByID(ctx, downstream.ID)
	require.NoError(t, err)
	assert.Equal(t, upstream.EndTime.Add(2*time.Hour), got.ArrivalTime)
}

func TestScheduleEntryRepo_DerivedArrivalWithoutRestTime(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	wcRepo := NewSQLiteWorkCenterRepo(database)
	repo := NewSQLiteScheduleEntryRepo(database)

	wc := testutil.NewTestWorkCenter("Packing")
	require.NoError(t, wcRepo.Create(ctx, wc))

	t0 := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	upstream := testutil.NewTestEntry(wc.ID, "rye", t0, 60)
	require.NoError(t, repo.Create(ctx, upstream, "baking"))

	downstream := testutil.NewTestEntry(wc.ID, "rye", t0, 30, testutil.WithSource(upstream.ID))
	require.NoError(t, repo.Create(ctx, downstream, "packing"))

	got, err := repo.GetByID(ctx, downstream.ID)
	require.NoError(t, err)
	assert.Equal(t, upstream.EndTime, got.ArrivalTime, "no rest record means zero rest hours")
}

func TestScheduleEntryRepo_UpdatePlacement(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	wcRepo := NewSQLiteWorkCenterRepo(database)
	repo := NewSQLiteScheduleEntryRepo(database)

	wc := testutil.NewTestWorkCenter("Mixer")
	require.NoError(t, wcRepo.Create(ctx, wc))

	t0 := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	e := testutil.NewTestEntry(wc.ID, "rye", t0, 60)
	require.NoError(t, repo.Create(ctx, e, "mixing"))

	e.StartTime = t0.Add(time.Hour)
	e.EndTime = t0.Add(2 * time.Hour)
	require.NoError(t, repo.UpdatePlacement(ctx, e))

	got, err := repo.GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, t0.Add(time.Hour), got.StartTime)
	assert.Equal(t, t0.Add(2*time.Hour), got.EndTime)
}

func TestScheduleEntryRepo_DeleteCascadeTransitive(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	wcRepo := NewSQLiteWorkCenterRepo(database)
	repo := NewSQLiteScheduleEntryRepo(database)

	wc := testutil.NewTestWorkCenter("Line")
	require.NoError(t, wcRepo.Create(ctx, wc))

	t0 := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

	// ORD-A feeds a dependent entry of ORD-B, which feeds ORD-C.
	root := testutil.NewTestEntry(wc.ID, "rye", t0, 60, testutil.WithOrderKey("ORD-A"))
	require.NoError(t, repo.Create(ctx, root, "mixing"))

	child := testutil.NewTestEntry(wc.ID, "rye", t0.Add(time.Hour), 60,
		testutil.WithOrderKey("ORD-B"), testutil.WithSource(root.ID))
	require.NoError(t, repo.Create(ctx, child, "baking"))

	grandchild := testutil.NewTestEntry(wc.ID, "rye", t0.Add(2*time.Hour), 60,
		testutil.WithOrderKey("ORD-C"), testutil.WithSource(child.ID))
	require.NoError(t, repo.Create(ctx, grandchild, "packing"))

	unrelated := testutil.NewTestEntry(wc.ID, "wheat", t0, 30, testutil.WithOrderKey("ORD-X"))
	require.NoError(t, repo.Create(ctx, unrelated, "mixing"))

	n, err := repo.DeleteCascade(ctx, "ORD-A")
	require.NoError(t, err)
	assert.Equal(t, 3, n, "root, child and grandchild must all be removed")

	for _, id := range []string{root.ID, child.ID, grandchild.ID} {
		_, err := repo.GetByID(ctx, id)
		assert.Error(t, err)
	}

	got, err := repo.GetByID(ctx, unrelated.ID)
	require.NoError(t, err)
	assert.Equal(t, "ORD-X", got.OrderKey, "unrelated orders survive the cascade")
}

func TestScheduleEntryRepo_DeleteCascadeMissingOrder(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteScheduleEntryRepo(database)

	n, err := repo.DeleteCascade(context.Background(), "NOPE")
	require.NoError(t, err)
	assert.Zero(t, n)
}
