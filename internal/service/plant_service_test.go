package service

import (
	"context"
	"testing"
	"time"

	"github.com/bakeryops/ovenplan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlantService_WorkCenterValidation(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	err := env.plant.CreateWorkCenter(ctx, &domain.WorkCenter{Name: "No ID", MaxConcurrent: 1})
	assert.ErrorContains(t, err, "id is required")

	err = env.plant.CreateWorkCenter(ctx, &domain.WorkCenter{ID: "WC-1", Name: "Oven", MaxConcurrent: 0})
	assert.ErrorContains(t, err, "max concurrent")

	require.NoError(t, env.plant.CreateWorkCenter(ctx, &domain.WorkCenter{
		ID: "WC-1", Name: "Oven", CapacityUnit: "carts", MaxConcurrent: 4,
	}))

	err = env.plant.SetAlternates(ctx, "WC-1", []string{"WC-1"})
	assert.ErrorContains(t, err, "its own alternate")
}

func TestPlantService_RouteValidation(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	seedWorkCenter(t, env, "WC-1", "Mixer")

	err := env.plant.SetRoute(ctx, "P-1", nil)
	assert.ErrorContains(t, err, "at least one step")

	err = env.plant.SetRoute(ctx, "P-1", []domain.RouteStep{
		{WorkCenterID: "WC-1", Operation: "mixing", Sequence: 1},
		{WorkCenterID: "WC-1", Operation: "kneading", Sequence: 1},
	})
	assert.ErrorContains(t, err, "duplicate sequence")

	// Steps get sorted by sequence and stamped with the product.
	require.NoError(t, env.plant.SetRoute(ctx, "P-1", []domain.RouteStep{
		{WorkCenterID: "WC-1", Operation: "kneading", Sequence: 2},
		{WorkCenterID: "WC-1", Operation: "mixing", Sequence: 1},
	}))
	route, err := env.plant.Route(ctx, "P-1")
	require.NoError(t, err)
	require.Len(t, route, 2)
	assert.Equal(t, "mixing", route[0].Operation)
	assert.Equal(t, "P-1", route[0].ProductID)
}

func TestPlantService_ParameterValidation(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	seedWorkCenter(t, env, "WC-1", "Mixer")

	err := env.plant.SetProductivity(ctx, domain.ProductivityParam{
		ProductID: "P-1", WorkCenterID: "WC-1",
	})
	assert.ErrorContains(t, err, "units per hour")

	err = env.plant.SetProductivity(ctx, domain.ProductivityParam{
		ProductID: "P-1", WorkCenterID: "WC-1", UseFixed: true,
	})
	assert.ErrorContains(t, err, "fixed minutes")

	err = env.plant.SetRestTime(ctx, domain.RestTime{ProductID: "P-1", Operation: "baking", Hours: -1})
	assert.ErrorContains(t, err, "negative")

	err = env.plant.SetStaffing(ctx, domain.Staffing{WorkCenterID: "WC-1", Shift: 4, Headcount: 1})
	assert.ErrorContains(t, err, "invalid shift")

	err = env.plant.BlockShift(ctx, domain.ShiftBlock{WorkCenterID: "WC-1", Shift: 0})
	assert.ErrorContains(t, err, "invalid shift")
}

func TestPlantService_BlockedPeriods(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	seedWorkCenter(t, env, "WC-1", "Mixer")

	day := time.Date(2026, time.March, 3, 0, 0, 0, 0, time.UTC)
	require.NoError(t, env.plant.BlockShift(ctx, domain.ShiftBlock{
		WorkCenterID: "WC-1", Date: day, Shift: domain.ShiftNight, Reason: "maintenance",
	}))
	require.NoError(t, env.plant.BlockShift(ctx, domain.ShiftBlock{
		WorkCenterID: "WC-1", Date: day, Shift: domain.ShiftAfternoon,
	}))

	periods, err := env.plant.BlockedPeriods(ctx, "WC-1",
		time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, periods, 2)

	// Night shift of the 3rd starts the evening before.
	assert.Equal(t, time.Date(2026, time.March, 2, 22, 0, 0, 0, time.UTC), periods[0].Start)
	assert.Equal(t, time.Date(2026, time.March, 3, 6, 0, 0, 0, time.UTC), periods[0].End)
	assert.Equal(t, time.Date(2026, time.March, 3, 14, 0, 0, 0, time.UTC), periods[1].Start)
	assert.Equal(t, time.Date(2026, time.March, 3, 22, 0, 0, 0, time.UTC), periods[1].End)

	// Unblocking removes the stored record.
	require.NoError(t, env.plant.UnblockShift(ctx, "WC-1", day, domain.ShiftNight))
	periods, err = env.plant.BlockedPeriods(ctx, "WC-1",
		time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, periods, 1)
	assert.Equal(t, time.Date(2026, time.March, 3, 14, 0, 0, 0, time.UTC), periods[0].Start)
}
