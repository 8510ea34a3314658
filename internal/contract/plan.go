package contract

import (
	"time"

	"github.com/bakeryops/ovenplan/internal/domain"
)

// PlanRequest asks for a production run of one product to be placed across
// its route.
type PlanRequest struct {
	ProductID      string
	Quantity       int
	MinLotSize     int
	RequestedStart time.Time
	Deadline       *time.Time

	// OrderKey groups the run's schedule entries. Left empty, the service
	// allocates the next order number.
	OrderKey string
}

// WarningCode classifies the non-fatal conditions a plan can accumulate.
type WarningCode string

const (
	// WarnDefaultProductivity: no productivity record for the
	// product/work-center pair; the default batch duration was used.
	WarnDefaultProductivity WarningCode = "DEFAULT_PRODUCTIVITY"
	// WarnDeadlineInfeasible: the distributor exhausted every eligible
	// work center and still misses the deadline; the result is best-effort.
	WarnDeadlineInfeasible WarningCode = "DEADLINE_INFEASIBLE"
	// WarnNoAlternates: overflow was needed but no staffed alternate work
	// center exists; distribution stayed on the work centers found.
	WarnNoAlternates WarningCode = "NO_ALTERNATES"
)

// Warning is a non-fatal planning condition reported alongside a
// successful placement.
type Warning struct {
	Code    WarningCode
	Message string
}

// PlannedStep is the placement result for one route step.
type PlannedStep struct {
	Operation    string
	WorkCenterID string // the step's primary work center
	Sequence     int
	Entries      []domain.ScheduleEntry
}

// PlanResponse is the outcome of planning or committing a cascade.
type PlanResponse struct {
	OrderKey string
	State    domain.CascadeState
	Steps    []PlannedStep
	Warnings []Warning
}

// Entries returns every placed entry across all steps in step order.
func (r *PlanResponse) Entries() []domain.ScheduleEntry {
	var out []domain.ScheduleEntry
	for _, s := range r.Steps {
		out = append(out, s.Entries...)
	}
	return out
}
