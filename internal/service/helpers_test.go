package service

import (
	"context"
	"testing"
	"time"

	"github.com/bakeryops/ovenplan/internal/db"
	"github.com/bakeryops/ovenplan/internal/domain"
	"github.com/bakeryops/ovenplan/internal/repository"
	"github.com/bakeryops/ovenplan/internal/testutil"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	workCenters  repository.WorkCenterRepo
	routes       repository.RouteRepo
	productivity repository.ProductivityRepo
	restTimes    repository.RestTimeRepo
	shiftBlocks  repository.ShiftBlockRepo
	staffing     repository.StaffingRepo
	entries      repository.ScheduleEntryRepo
	orders       repository.OrderRepo
	windows      repository.ScheduleWindowRepo
	uow          db.UnitOfWork

	cascade  CascadeService
	schedule ScheduleService
	plant    PlantService
	imports  ImportService
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)
	env := &testEnv{
		workCenters:  repository.NewSQLiteWorkCenterRepo(database),
		routes:       repository.NewSQLiteRouteRepo(database),
		productivity: repository.NewSQLiteProductivityRepo(database),
		restTimes:    repository.NewSQLiteRestTimeRepo(database),
		shiftBlocks:  repository.NewSQLiteShiftBlockRepo(database),
		staffing:     repository.NewSQLiteStaffingRepo(database),
		entries:      repository.NewSQLiteScheduleEntryRepo(database),
		orders:       repository.NewSQLiteOrderRepo(database),
		windows:      repository.NewSQLiteScheduleWindowRepo(database),
		uow:          uow,
	}
	sequence := repository.NewSQLiteOrderSequenceRepo(database)
	env.cascade = NewCascadeService(
		env.workCenters, env.routes, env.productivity, env.restTimes,
		env.shiftBlocks, env.staffing, env.entries, env.orders,
		env.windows, sequence, uow,
	)
	env.schedule = NewScheduleService(env.entries, env.orders)
	env.plant = NewPlantService(
		env.workCenters, env.routes, env.productivity,
		env.restTimes, env.shiftBlocks, env.staffing,
	)
	env.imports = NewImportService(uow)
	return env
}

func seedWorkCenter(t *testing.T, env *testEnv, id, name string, opts ...testutil.WorkCenterOption) *domain.WorkCenter {
	t.Helper()
	wc := testutil.NewTestWorkCenter(name, opts...)
	wc.ID = id
	require.NoError(t, env.workCenters.Create(context.Background(), wc))
	return wc
}

func ts(y int, m time.Month, d, hour, min int) time.Time {
	return time.Date(y, m, d, hour, min, 0, 0, time.UTC)
}
