package testutil

import (
	"time"

	"github.com/bakeryops/ovenplan/internal/domain"
	"github.com/google/uuid"
)

// WorkCenter options
type WorkCenterOption func(*domain.WorkCenter)

func WithCapacity(unit string, maxConcurrent int) WorkCenterOption {
	return func(wc *domain.WorkCenter) {
		wc.CapacityUnit = unit
		wc.MaxConcurrent = maxConcurrent
	}
}

func WithCrossOrderParallel() WorkCenterOption {
	return func(wc *domain.WorkCenter) {
		wc.AllowsCrossOrderParallel = true
	}
}

// NewTestWorkCenter builds a sequential single-line work center by default.
func NewTestWorkCenter(name string, opts ...WorkCenterOption) *domain.WorkCenter {
	now := time.Now().UTC()
	wc := &domain.WorkCenter{
		ID:            uuid.New().String(),
		Name:          name,
		CapacityUnit:  "line",
		MaxConcurrent: 1,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	for _, opt := range opts {
		opt(wc)
	}
	return wc
}

// ScheduleEntry options
type EntryOption func(*domain.ScheduleEntry)

func WithOrderKey(key string) EntryOption {
	return func(e *domain.ScheduleEntry) {
		e.OrderKey = key
	}
}

func WithBatch(index, total int) EntryOption {
	return func(e *domain.ScheduleEntry) {
		e.BatchIndex = index
		e.BatchTotal = total
	}
}

func WithSource(sourceID string) EntryOption {
	return func(e *domain.ScheduleEntry) {
		e.SourceEntryID = &sourceID
	}
}

// NewTestEntry builds a placed schedule entry starting at arrival.
func NewTestEntry(workCenterID, productID string, arrival time.Time, durationMin int, opts ...EntryOption) *domain.ScheduleEntry {
	now := time.Now().UTC()
	e := &domain.ScheduleEntry{
		ID:           uuid.New().String(),
		WorkCenterID: workCenterID,
		ProductID:    productID,
		OrderKey:     "ORD-1",
		ArrivalTime:  arrival,
		StartTime:    arrival,
		EndTime:      arrival.Add(time.Duration(durationMin) * time.Minute),
		DurationMin:  durationMin,
		BatchIndex:   1,
		BatchTotal:   1,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NewTestOrder builds a committed production order.
func NewTestOrder(key, productID string, quantity int) *domain.ProductionOrder {
	now := time.Now().UTC()
	return &domain.ProductionOrder{
		OrderKey:       key,
		ProductID:      productID,
		Quantity:       quantity,
		State:          domain.CascadeCommitted,
		RequestedStart: now,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}
