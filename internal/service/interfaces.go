package service

import (
	"context"
	"time"

	"github.com/bakeryops/ovenplan/internal/contract"
	"github.com/bakeryops/ovenplan/internal/domain"
	"github.com/bakeryops/ovenplan/internal/importer"
)

// CascadeService plans and commits production cascades: batch splitting,
// queue simulation per route step and work-center distribution, with
// follow-up steps fed by upstream end times plus rest time.
type CascadeService interface {
	// Plan computes a placement without persisting anything.
	Plan(ctx context.Context, req contract.PlanRequest) (*contract.PlanResponse, error)
	// Commit plans and persists the result transactionally. A concurrent
	// commit against the same schedule window surfaces as a
	// *contract.ConflictError; callers may retry.
	Commit(ctx context.Context, req contract.PlanRequest) (*contract.PlanResponse, error)
	// DeleteOrder removes a committed order's entries together with every
	// downstream entry fed by them and returns the count removed.
	DeleteOrder(ctx context.Context, orderKey string) (int, error)
}

// ScheduleService reads committed schedule data.
type ScheduleService interface {
	Window(ctx context.Context, workCenterID string, from, to time.Time) ([]domain.ScheduleEntry, error)
	ListByOrder(ctx context.Context, orderKey string) ([]domain.ScheduleEntry, error)
	Orders(ctx context.Context) ([]*domain.ProductionOrder, error)
	GetOrder(ctx context.Context, key string) (*domain.ProductionOrder, error)
}

// PlantService maintains the static plant configuration the planner reads.
type PlantService interface {
	CreateWorkCenter(ctx context.Context, wc *domain.WorkCenter) error
	GetWorkCenter(ctx context.Context, id string) (*domain.WorkCenter, error)
	ListWorkCenters(ctx context.Context) ([]*domain.WorkCenter, error)
	UpdateWorkCenter(ctx context.Context, wc *domain.WorkCenter) error
	DeleteWorkCenter(ctx context.Context, id string) error
	SetAlternates(ctx context.Context, id string, alternateIDs []string) error
	ListAlternates(ctx context.Context, id string) ([]*domain.WorkCenter, error)

	SetRoute(ctx context.Context, productID string, steps []domain.RouteStep) error
	Route(ctx context.Context, productID string) ([]domain.RouteStep, error)
	SetProductivity(ctx context.Context, p domain.ProductivityParam) error
	SetRestTime(ctx context.Context, r domain.RestTime) error
	SetStaffing(ctx context.Context, st domain.Staffing) error

	BlockShift(ctx context.Context, b domain.ShiftBlock) error
	UnblockShift(ctx context.Context, workCenterID string, date time.Time, shift domain.ShiftNumber) error
	// BlockedPeriods expands the stored blocking records overlapping
	// [from, to) into absolute periods.
	BlockedPeriods(ctx context.Context, workCenterID string, from, to time.Time) ([]domain.BlockedPeriod, error)
}

// ImportResult holds the outcome of a plant configuration import.
type ImportResult struct {
	WorkCenterCount   int
	RouteStepCount    int
	ProductivityCount int
	RestTimeCount     int
	StaffingCount     int
	ShiftBlockCount   int
}

type ImportService interface {
	ImportPlant(ctx context.Context, filePath string) (*ImportResult, error)
	ImportPlantFromSchema(ctx context.Context, schema *importer.PlantSchema) (*ImportResult, error)
}
