package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func minimalSchema() *PlantSchema {
	return &PlantSchema{
		WorkCenters: []WorkCenterImport{
			{ID: "WC-1", Name: "Mixer", MaxConcurrent: 1},
		},
	}
}

func errorStrings(errs []error) []string {
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.Error())
	}
	return out
}

func TestValidatePlantSchema_Minimal(t *testing.T) {
	assert.Empty(t, ValidatePlantSchema(minimalSchema()))
}

func TestValidatePlantSchema_WorkCenters(t *testing.T) {
	errs := ValidatePlantSchema(&PlantSchema{})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "at least one work center")

	schema := &PlantSchema{
		WorkCenters: []WorkCenterImport{
			{ID: "WC-1", Name: "Mixer", MaxConcurrent: 1, Alternates: []string{"WC-1", "WC-9"}},
			{ID: "WC-1", Name: "Dup", MaxConcurrent: 0},
			{Name: "No ID", MaxConcurrent: 1},
		},
	}
	msgs := errorStrings(ValidatePlantSchema(schema))
	assert.Contains(t, msgs, `work_centers[1]: duplicate id "WC-1"`)
	assert.Contains(t, msgs, "work_centers[1].max_concurrent must be at least 1")
	assert.Contains(t, msgs, "work_centers[2].id is required")
	assert.Contains(t, msgs, `work_centers[0]: "WC-1" lists itself as alternate`)
	assert.Contains(t, msgs, `work_centers[0]: unknown alternate "WC-9"`)
}

func TestValidatePlantSchema_ForwardAlternateReference(t *testing.T) {
	schema := &PlantSchema{
		WorkCenters: []WorkCenterImport{
			{ID: "WC-1", Name: "Mixer", MaxConcurrent: 1, Alternates: []string{"WC-2"}},
			{ID: "WC-2", Name: "Backup", MaxConcurrent: 1},
		},
	}
	assert.Empty(t, ValidatePlantSchema(schema))
}

func TestValidatePlantSchema_Routes(t *testing.T) {
	schema := minimalSchema()
	schema.Routes = []RouteImport{
		{ProductID: "", Steps: nil},
		{ProductID: "P-1", Steps: []RouteStepImport{
			{WorkCenterID: "WC-1", Operation: "mixing", Sequence: 1},
			{WorkCenterID: "WC-9", Operation: "", Sequence: 1},
		}},
	}
	msgs := errorStrings(ValidatePlantSchema(schema))
	assert.Contains(t, msgs, "routes[0].product_id is required")
	assert.Contains(t, msgs, "routes[0]: at least one step is required")
	assert.Contains(t, msgs, "routes[1].steps[1].operation is required")
	assert.Contains(t, msgs, `routes[1].steps[1]: unknown work center "WC-9"`)
	assert.Contains(t, msgs, "routes[1].steps[1]: duplicate sequence 1")
}

func TestValidatePlantSchema_Productivity(t *testing.T) {
	u := 100.0
	m := 30
	bad := -1.0
	schema := minimalSchema()
	schema.Productivity = []ProductivityImport{
		{ProductID: "P-1", WorkCenterID: "WC-1"},
		{ProductID: "P-1", WorkCenterID: "WC-1", UnitsPerHour: &u, FixedMinutes: &m},
		{ProductID: "P-1", WorkCenterID: "WC-1", UnitsPerHour: &bad},
	}
	msgs := errorStrings(ValidatePlantSchema(schema))
	assert.Contains(t, msgs, "productivity[0]: either units_per_hour or fixed_minutes is required")
	assert.Contains(t, msgs, "productivity[1]: units_per_hour and fixed_minutes are mutually exclusive")
	assert.Contains(t, msgs, "productivity[2].units_per_hour must be positive")
}

func TestValidatePlantSchema_CalendarEntries(t *testing.T) {
	schema := minimalSchema()
	schema.Staffing = []StaffingImport{
		{WorkCenterID: "WC-1", Date: "03/02/2026", Shift: 2, Headcount: 1},
		{WorkCenterID: "WC-1", Date: "2026-03-02", Shift: 5, Headcount: -1},
	}
	schema.ShiftBlocks = []ShiftBlockImport{
		{WorkCenterID: "WC-9", Date: "2026-03-02", Shift: 1},
	}
	msgs := errorStrings(ValidatePlantSchema(schema))
	assert.Contains(t, msgs, `staffing[0].date: invalid date format "03/02/2026" (expected YYYY-MM-DD)`)
	assert.Contains(t, msgs, "staffing[1].shift: invalid shift 5")
	assert.Contains(t, msgs, "staffing[1].headcount cannot be negative")
	assert.Contains(t, msgs, `shift_blocks[0]: unknown work center "WC-9"`)
}
