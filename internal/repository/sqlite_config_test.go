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

func TestRouteRepo_ReplaceAndListOrdered(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	wcRepo := NewSQLiteWorkCenterRepo(database)
	repo := NewSQLiteRouteRepo(database)

	mixer := testutil.NewTestWorkCenter("Mixer")
	oven := testutil.NewTestWorkCenter("Oven")
	require.NoError(t, wcRepo.Create(ctx, mixer))
	require.NoError(t, wcRepo.Create(ctx, oven))

	steps := []domain.RouteStep{
		{ProductID: "rye", WorkCenterID: oven.ID, Operation: "baking", Sequence: 2},
		{ProductID: "rye", WorkCenterID: mixer.ID, Operation: "mixing", Sequence: 1},
	}
	require.NoError(t, repo.ReplaceForProduct(ctx, "rye", steps))

	got, err := repo.ListByProduct(ctx, "rye")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "mixing", got[0].Operation, "route must come back ordered by sequence")
	assert.Equal(t, "baking", got[1].Operation)

	// Replace drops the old route entirely.
	require.NoError(t, repo.ReplaceForProduct(ctx, "rye", steps[:1]))
	got, err = repo.ListByProduct(ctx, "rye")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestProductivityRepo_GetMissingIsNil(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	wcRepo := NewSQLiteWorkCenterRepo(database)
	repo := NewSQLiteProductivityRepo(database)

	wc := testutil.NewTestWorkCenter("Mixer")
	require.NoError(t, wcRepo.Create(ctx, wc))

	p, err := repo.Get(ctx, "rye", wc.ID)
	require.NoError(t, err, "a missing productivity record is not an error")
	assert.Nil(t, p)

	require.NoError(t, repo.Upsert(ctx, domain.ProductivityParam{
		ProductID: "rye", WorkCenterID: wc.ID, UnitsPerHour: 200,
	}))
	p, err = repo.Get(ctx, "rye", wc.ID)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, 200.0, p.UnitsPerHour)

	// Upsert overwrites in place.
	require.NoError(t, repo.Upsert(ctx, domain.ProductivityParam{
		ProductID: "rye", WorkCenterID: wc.ID, UseFixed: true, FixedMinutes: 40,
	}))
	p, err = repo.Get(ctx, "rye", wc.ID)
	require.NoError(t, err)
	assert.True(t, p.UseFixed)
	assert.Equal(t, 40, p.FixedMinutes)
}

func TestShiftBlockRepo_WindowIncludesNeighborDays(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	wcRepo := NewSQLiteWorkCenterRepo(database)
	repo := NewSQLiteShiftBlockRepo(database)

	wc := testutil.NewTestWorkCenter("Oven")
	require.NoError(t, wcRepo.Create(ctx, wc))

	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(ctx, domain.ShiftBlock{
		WorkCenterID: wc.ID, Date: day, Shift: domain.ShiftMorning, Reason: "maintenance",
	}))
	require.NoError(t, repo.Create(ctx, domain.ShiftBlock{
		WorkCenterID: wc.ID, Date: day.AddDate(0, 0, 1), Shift: domain.ShiftNight,
	}))

	// Window starting on the 3rd still needs the night shift row dated the
	// 3rd, whose real range begins on the 2nd at 22:00.
	blocks, err := repo.ListWindow(ctx, wc.ID, day.AddDate(0, 0, 1), day.AddDate(0, 0, 2))
	require.NoError(t, err)
	require.Len(t, blocks, 2)

	require.NoError(t, repo.Delete(ctx, wc.ID, day, domain.ShiftMorning))
	blocks, err = repo.ListWindow(ctx, wc.ID, day, day.AddDate(0, 0, 2))
	require.NoError(t, err)
	assert.Len(t, blocks, 1)
}

func TestShiftBlockRepo_CreateRejectsDuplicate(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	wcRepo := NewSQLiteWorkCenterRepo(database)
	repo := NewSQLiteShiftBlockRepo(database)

	wc := testutil.NewTestWorkCenter("Oven")
	require.NoError(t, wcRepo.Create(ctx, wc))

	block := domain.ShiftBlock{
		WorkCenterID: wc.ID,
		Date:         time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		Shift:        domain.ShiftMorning,
		Reason:       "maintenance",
	}
	require.NoError(t, repo.Create(ctx, block))

	block.Reason = "deep clean"
	assert.Error(t, repo.Create(ctx, block), "second insert for the same slot must fail")

	// Upsert overwrites the reason instead of failing.
	require.NoError(t, repo.Upsert(ctx, block))
	blocks, err := repo.ListWindow(ctx, wc.ID, block.Date, block.Date.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Len(t, blocks, 1)
	assert.Equal(t, "deep clean", blocks[0].Reason)
}

func TestStaffingRepo_HasStaff(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	wcRepo := NewSQLiteWorkCenterRepo(database)
	repo := NewSQLiteStaffingRepo(database)

	wc := testutil.NewTestWorkCenter("Oven")
	require.NoError(t, wcRepo.Create(ctx, wc))

	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	ok, err := repo.HasStaff(ctx, wc.ID, day, day.AddDate(0, 0, 7))
	require.NoError(t, err)
	assert.False(t, ok, "no staffing rows means not staffed")

	require.NoError(t, repo.Upsert(ctx, domain.Staffing{
		WorkCenterID: wc.ID, Date: day.AddDate(0, 0, 2), Shift: domain.ShiftMorning, Headcount: 3,
	}))

	ok, err = repo.HasStaff(ctx, wc.ID, day, day.AddDate(0, 0, 7))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.HasStaff(ctx, wc.ID, day.AddDate(0, 0, 3), day.AddDate(0, 0, 7))
	require.NoError(t, err)
	assert.False(t, ok, "staffing outside the window does not count")
}

func TestRestTimeRepo_ListByProduct(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	repo := NewSQLiteRestTimeRepo(database)

	require.NoError(t, repo.Upsert(ctx, domain.RestTime{ProductID: "rye", Operation: "baking", Hours: 2}))
	require.NoError(t, repo.Upsert(ctx, domain.RestTime{ProductID: "rye", Operation: "packing", Hours: 0.5}))
	require.NoError(t, repo.Upsert(ctx, domain.RestTime{ProductID: "wheat", Operation: "baking", Hours: 1}))

	rests, err := repo.ListByProduct(ctx, "rye")
	require.NoError(t, err)
	assert.Len(t, rests, 2)
}
