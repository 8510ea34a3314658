package repository

import (
	"context"
	"time"

	"github.com/bakeryops/ovenplan/internal/domain"
)

type WorkCenterRepo interface {
	Create(ctx context.Context, wc *domain.WorkCenter) error
	GetByID(ctx context.Context, id string) (*domain.WorkCenter, error)
	List(ctx context.Context) ([]*domain.WorkCenter, error)
	Update(ctx context.Context, wc *domain.WorkCenter) error
	Delete(ctx context.Context, id string) error

	// SetAlternates replaces the eligibility list for overflow from the
	// given work center; order defines priority.
	SetAlternates(ctx context.Context, id string, alternateIDs []string) error
	ListAlternates(ctx context.Context, id string) ([]*domain.WorkCenter, error)
}

type RouteRepo interface {
	ReplaceForProduct(ctx context.Context, productID string, steps []domain.RouteStep) error
	// ListByProduct returns the route ordered by sequence.
	ListByProduct(ctx context.Context, productID string) ([]domain.RouteStep, error)
}

type ProductivityRepo interface {
	Upsert(ctx context.Context, p domain.ProductivityParam) error
	// Get returns (nil, nil) when no record exists; missing productivity
	// is a documented default case, never an error.
	Get(ctx context.Context, productID, workCenterID string) (*domain.ProductivityParam, error)
}

type RestTimeRepo interface {
	Upsert(ctx context.Context, r domain.RestTime) error
	ListByProduct(ctx context.Context, productID string) ([]domain.RestTime, error)
}

type ShiftBlockRepo interface {
	// Create fails on a duplicate (work center, date, shift); Upsert
	// overwrites the reason instead.
	Create(ctx context.Context, b domain.ShiftBlock) error
	Upsert(ctx context.Context, b domain.ShiftBlock) error
	Delete(ctx context.Context, workCenterID string, date time.Time, shift domain.ShiftNumber) error
	ListWindow(ctx context.Context, workCenterID string, from, to time.Time) ([]domain.ShiftBlock, error)
}

type StaffingRepo interface {
	Upsert(ctx context.Context, s domain.Staffing) error
	// HasStaff reports whether any (date, shift) slot in [from, to) has a
	// positive headcount at the work center.
	HasStaff(ctx context.Context, workCenterID string, from, to time.Time) (bool, error)
}

type OrderRepo interface {
	Create(ctx context.Context, o *domain.ProductionOrder) error
	GetByKey(ctx context.Context, key string) (*domain.ProductionOrder, error)
	List(ctx context.Context) ([]*domain.ProductionOrder, error)
	UpdateState(ctx context.Context, key string, state domain.CascadeState) error
	Delete(ctx context.Context, key string) error
}

type OrderSequenceRepo interface {
	// NextOrderNumber allocates the next order number atomically.
	NextOrderNumber(ctx context.Context) (int, error)
}

type ScheduleEntryRepo interface {
	// Create persists an entry together with the route operation it
	// belongs to, so rest-time lookups can key on it later.
	Create(ctx context.Context, e *domain.ScheduleEntry, operation string) error
	GetByID(ctx context.Context, id string) (*domain.ScheduleEntry, error)
	// ListWindow returns the entries whose [start, end) intersects
	// [from, to) at a work center, arrival times derived from each entry's
	// source end time plus configured rest hours. Entries load with
	// IsExisting set.
	ListWindow(ctx context.Context, workCenterID string, from, to time.Time) ([]domain.ScheduleEntry, error)
	ListByOrder(ctx context.Context, orderKey string) ([]domain.ScheduleEntry, error)
	// UpdatePlacement rewrites the computed times of an entry after a
	// simulator re-run.
	UpdatePlacement(ctx context.Context, e *domain.ScheduleEntry) error
	// DeleteCascade removes the order's entries and every entry whose
	// source chain leads back to them, nulling source references first.
	// Returns the number of deleted entries.
	DeleteCascade(ctx context.Context, orderKey string) (int, error)
}

type ScheduleWindowRepo interface {
	// Version returns the current version of a (work center, week) window,
	// seeding the row at version 0 on first use.
	Version(ctx context.Context, workCenterID string, weekStart time.Time) (int, error)
	// BumpVersion increments the window version only if it still equals
	// expected, returning *contract.ConflictError otherwise.
	BumpVersion(ctx context.Context, workCenterID string, weekStart time.Time, expected int) error
}
