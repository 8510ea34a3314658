package importer

import (
	"encoding/json"
	"fmt"
	"os"
)

// PlantSchema is the top-level JSON structure for plant configuration
// import: work centers and the static parameters the planner reads.
type PlantSchema struct {
	WorkCenters  []WorkCenterImport   `json:"work_centers"`
	Routes       []RouteImport        `json:"routes,omitempty"`
	Productivity []ProductivityImport `json:"productivity,omitempty"`
	RestTimes    []RestTimeImport     `json:"rest_times,omitempty"`
	Staffing     []StaffingImport     `json:"staffing,omitempty"`
	ShiftBlocks  []ShiftBlockImport   `json:"shift_blocks,omitempty"`
}

// WorkCenterImport defines one work center in the import file.
type WorkCenterImport struct {
	ID                       string   `json:"id"`
	Name                     string   `json:"name"`
	CapacityUnit             string   `json:"capacity_unit,omitempty"`
	MaxConcurrent            int      `json:"max_concurrent"`
	AllowsCrossOrderParallel bool     `json:"allows_cross_order_parallel,omitempty"`
	Alternates               []string `json:"alternates,omitempty"`
}

// RouteImport defines a product's production route.
type RouteImport struct {
	ProductID string            `json:"product_id"`
	Steps     []RouteStepImport `json:"steps"`
}

// RouteStepImport defines one step of a route.
type RouteStepImport struct {
	WorkCenterID string `json:"work_center_id"`
	Operation    string `json:"operation"`
	Sequence     int    `json:"sequence"`
}

// ProductivityImport defines throughput for a product/work-center pair.
// Exactly one of units_per_hour or fixed_minutes must be set.
type ProductivityImport struct {
	ProductID    string   `json:"product_id"`
	WorkCenterID string   `json:"work_center_id"`
	UnitsPerHour *float64 `json:"units_per_hour,omitempty"`
	FixedMinutes *int     `json:"fixed_minutes,omitempty"`
}

// RestTimeImport defines the mandatory wait before an operation may start.
type RestTimeImport struct {
	ProductID string  `json:"product_id"`
	Operation string  `json:"operation"`
	Hours     float64 `json:"hours"`
}

// StaffingImport defines the headcount for one (work center, date, shift).
type StaffingImport struct {
	WorkCenterID string `json:"work_center_id"`
	Date         string `json:"date"`
	Shift        int    `json:"shift"`
	Headcount    int    `json:"headcount"`
}

// ShiftBlockImport marks one (work center, date, shift) as unusable.
type ShiftBlockImport struct {
	WorkCenterID string `json:"work_center_id"`
	Date         string `json:"date"`
	Shift        int    `json:"shift"`
	Reason       string `json:"reason,omitempty"`
}

// LoadPlantSchema reads and parses a plant configuration JSON file.
func LoadPlantSchema(path string) (*PlantSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var schema PlantSchema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("parsing plant file: %w", err)
	}
	return &schema, nil
}
