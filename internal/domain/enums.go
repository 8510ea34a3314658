package domain

// ProcessingMode describes how a work center consumes queued batches.
type ProcessingMode string

const (
	// ModeParallel: multi-slot resource (e.g. rack ovens loaded by cart),
	// batches from the queue can run at the same time.
	ModeParallel ProcessingMode = "parallel"
	// ModeHybrid: sequential within one production order, parallel across
	// different orders.
	ModeHybrid ProcessingMode = "hybrid"
	// ModeSequential: strict FIFO, one batch at a time.
	ModeSequential ProcessingMode = "sequential"
)

// ShiftNumber identifies one of the three production shifts of a day.
type ShiftNumber int

const (
	ShiftNight     ShiftNumber = 1 // previous day 22:00 – 06:00
	ShiftMorning   ShiftNumber = 2 // 06:00 – 14:00
	ShiftAfternoon ShiftNumber = 3 // 14:00 – 22:00
)

// Valid reports whether n is one of the three defined shifts.
func (n ShiftNumber) Valid() bool {
	return n >= ShiftNight && n <= ShiftAfternoon
}

// CapacityUnitCarts marks a work center whose capacity is counted in cart
// slots rather than single pieces of equipment.
const CapacityUnitCarts = "carts"

// DefaultMinLotSize is substituted when a product has no configured lot size.
const DefaultMinLotSize = 100

// DefaultBatchDurationMin is the fallback batch duration when no
// productivity record exists for a product/work-center pair.
const DefaultBatchDurationMin = 60
