package domain

import "time"

// ScheduleEntry is one unit of planned work at one work center: a single
// batch of a production order, placed in time by the queue simulator.
type ScheduleEntry struct {
	ID           string
	WorkCenterID string
	ProductID    string

	// OrderKey groups the batches of one production order. The hybrid
	// queue policy keys its partitions on it.
	OrderKey string

	// ArrivalTime is when material becomes available at this work center:
	// the upstream step's end time plus rest time, or the requested start
	// for the first route step.
	ArrivalTime time.Time

	StartTime   time.Time
	EndTime     time.Time
	DurationMin int

	BatchIndex int // 1-based position within the run
	BatchTotal int

	// SourceEntryID links to the upstream schedule entry whose output
	// feeds this one. Cascade deletion follows these links.
	SourceEntryID *string

	// IsExisting distinguishes pre-existing committed entries from newly
	// proposed ones inside a simulation window.
	IsExisting bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// BlockedPeriod is an absolute [Start, End) range during which a work
// center is unusable. Derived from shift-blocking records per query and
// never persisted as placed data.
type BlockedPeriod struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the period.
func (p BlockedPeriod) Contains(t time.Time) bool {
	return !t.Before(p.Start) && t.Before(p.End)
}

// Overlaps reports whether [start, end) intersects the period.
// Zero-length intervals overlap only when their instant lies inside.
func (p BlockedPeriod) Overlaps(start, end time.Time) bool {
	if start.Equal(end) {
		return p.Contains(start)
	}
	return start.Before(p.End) && p.Start.Before(end)
}

// Batch is a sub-quantity of a production run sized to the minimum lot
// size. Ephemeral: it becomes a ScheduleEntry once placed.
type Batch struct {
	Quantity int
	Position int // 1-based
	Total    int
}

// ShiftBlock is one (work center, date, shift) blocking record as stored.
// Date carries only the calendar day; the shift calendar expands it to an
// absolute BlockedPeriod.
type ShiftBlock struct {
	WorkCenterID string
	Date         time.Time
	Shift        ShiftNumber
	Reason       string
}
