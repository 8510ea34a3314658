package domain

import "time"

// WorkCenter is a physical or logical production resource (mixer line,
// oven group, packaging line) with a processing mode derived from its
// static configuration.
type WorkCenter struct {
	ID   string
	Name string

	// CapacityUnit names the resource slot type ("carts", "line", ...).
	CapacityUnit  string
	MaxConcurrent int

	// AllowsCrossOrderParallel marks work centers that process different
	// production orders at the same time while keeping one order's own
	// batches strictly sequential.
	AllowsCrossOrderParallel bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// WorkCenterContext bundles everything the distributor needs to know about
// one candidate work center: its mode, the entries already occupying it in
// the query window and the periods it cannot be used. Assembled per
// scheduling call, never persisted.
type WorkCenterContext struct {
	WorkCenter WorkCenter
	Mode       ProcessingMode
	Existing   []ScheduleEntry
	Blocked    []BlockedPeriod
}

// RouteStep is one step of a product's production route: where the
// operation happens and in which order. Read-only configuration.
type RouteStep struct {
	ProductID    string
	WorkCenterID string
	Operation    string
	Sequence     int
}

// ProductivityParam holds the throughput configuration for a product at a
// work center: either units per hour, or a fixed duration per batch.
type ProductivityParam struct {
	ProductID    string
	WorkCenterID string
	UnitsPerHour float64
	FixedMinutes int
	UseFixed     bool
}

// BatchMinutes returns the duration of one batch of the given quantity,
// in whole minutes.
func (p ProductivityParam) BatchMinutes(quantity int) int {
	if p.UseFixed || p.UnitsPerHour <= 0 {
		return p.FixedMinutes
	}
	minutes := float64(quantity) / p.UnitsPerHour * 60.0
	return int(minutes + 0.5)
}

// RestTime is the mandatory wait in hours between one process step's
// completion and the next step's eligibility (cooling, proofing).
type RestTime struct {
	ProductID string
	Operation string
	Hours     float64
}

// Staffing records how many people are assigned to a work center for one
// (date, shift) slot. Work centers without staff are not eligible
// distribution targets.
type Staffing struct {
	WorkCenterID string
	Date         time.Time
	Shift        ShiftNumber
	Headcount    int
}
