package importer

import (
	"fmt"
	"time"

	"github.com/bakeryops/ovenplan/internal/domain"
)

const dateLayout = "2006-01-02"

// ValidatePlantSchema checks the plant schema for errors before conversion.
// Returns a slice of all validation errors found.
func ValidatePlantSchema(schema *PlantSchema) []error {
	var errs []error

	wcIDs := make(map[string]bool)
	errs = append(errs, validateWorkCenters(schema.WorkCenters, wcIDs)...)
	errs = append(errs, validateRoutes(schema.Routes, wcIDs)...)
	errs = append(errs, validateProductivity(schema.Productivity, wcIDs)...)
	errs = append(errs, validateRestTimes(schema.RestTimes)...)
	errs = append(errs, validateStaffing(schema.Staffing, wcIDs)...)
	errs = append(errs, validateShiftBlocks(schema.ShiftBlocks, wcIDs)...)

	return errs
}

func validateWorkCenters(wcs []WorkCenterImport, wcIDs map[string]bool) []error {
	var errs []error

	if len(wcs) == 0 {
		errs = append(errs, fmt.Errorf("work_centers: at least one work center is required"))
	}
	for i, wc := range wcs {
		prefix := fmt.Sprintf("work_centers[%d]", i)
		if wc.ID == "" {
			errs = append(errs, fmt.Errorf("%s.id is required", prefix))
			continue
		}
		if wcIDs[wc.ID] {
			errs = append(errs, fmt.Errorf("%s: duplicate id %q", prefix, wc.ID))
		}
		wcIDs[wc.ID] = true
		if wc.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		}
		if wc.MaxConcurrent < 1 {
			errs = append(errs, fmt.Errorf("%s.max_concurrent must be at least 1", prefix))
		}
	}
	// Alternates may point forward, so resolve after the full pass.
	for i, wc := range wcs {
		for _, alt := range wc.Alternates {
			if alt == wc.ID {
				errs = append(errs, fmt.Errorf("work_centers[%d]: %q lists itself as alternate", i, wc.ID))
			} else if !wcIDs[alt] {
				errs = append(errs, fmt.Errorf("work_centers[%d]: unknown alternate %q", i, alt))
			}
		}
	}

	return errs
}

func validateRoutes(routes []RouteImport, wcIDs map[string]bool) []error {
	var errs []error

	for i, r := range routes {
		prefix := fmt.Sprintf("routes[%d]", i)
		if r.ProductID == "" {
			errs = append(errs, fmt.Errorf("%s.product_id is required", prefix))
		}
		if len(r.Steps) == 0 {
			errs = append(errs, fmt.Errorf("%s: at least one step is required", prefix))
		}
		seen := make(map[int]bool)
		for j, s := range r.Steps {
			sp := fmt.Sprintf("%s.steps[%d]", prefix, j)
			if s.Operation == "" {
				errs = append(errs, fmt.Errorf("%s.operation is required", sp))
			}
			if !wcIDs[s.WorkCenterID] {
				errs = append(errs, fmt.Errorf("%s: unknown work center %q", sp, s.WorkCenterID))
			}
			if seen[s.Sequence] {
				errs = append(errs, fmt.Errorf("%s: duplicate sequence %d", sp, s.Sequence))
			}
			seen[s.Sequence] = true
		}
	}

	return errs
}

func validateProductivity(params []ProductivityImport, wcIDs map[string]bool) []error {
	var errs []error

	for i, p := range params {
		prefix := fmt.Sprintf("productivity[%d]", i)
		if p.ProductID == "" {
			errs = append(errs, fmt.Errorf("%s.product_id is required", prefix))
		}
		if !wcIDs[p.WorkCenterID] {
			errs = append(errs, fmt.Errorf("%s: unknown work center %q", prefix, p.WorkCenterID))
		}
		switch {
		case p.UnitsPerHour == nil && p.FixedMinutes == nil:
			errs = append(errs, fmt.Errorf("%s: either units_per_hour or fixed_minutes is required", prefix))
		case p.UnitsPerHour != nil && p.FixedMinutes != nil:
			errs = append(errs, fmt.Errorf("%s: units_per_hour and fixed_minutes are mutually exclusive", prefix))
		case p.UnitsPerHour != nil && *p.UnitsPerHour <= 0:
			errs = append(errs, fmt.Errorf("%s.units_per_hour must be positive", prefix))
		case p.FixedMinutes != nil && *p.FixedMinutes <= 0:
			errs = append(errs, fmt.Errorf("%s.fixed_minutes must be positive", prefix))
		}
	}

	return errs
}

func validateRestTimes(rests []RestTimeImport) []error {
	var errs []error

	for i, r := range rests {
		prefix := fmt.Sprintf("rest_times[%d]", i)
		if r.ProductID == "" {
			errs = append(errs, fmt.Errorf("%s.product_id is required", prefix))
		}
		if r.Operation == "" {
			errs = append(errs, fmt.Errorf("%s.operation is required", prefix))
		}
		if r.Hours < 0 {
			errs = append(errs, fmt.Errorf("%s.hours cannot be negative", prefix))
		}
	}

	return errs
}

func validateStaffing(staffing []StaffingImport, wcIDs map[string]bool) []error {
	var errs []error

	for i, s := range staffing {
		prefix := fmt.Sprintf("staffing[%d]", i)
		if !wcIDs[s.WorkCenterID] {
			errs = append(errs, fmt.Errorf("%s: unknown work center %q", prefix, s.WorkCenterID))
		}
		if _, err := time.Parse(dateLayout, s.Date); err != nil {
			errs = append(errs, fmt.Errorf("%s.date: invalid date format %q (expected YYYY-MM-DD)", prefix, s.Date))
		}
		if !domain.ShiftNumber(s.Shift).Valid() {
			errs = append(errs, fmt.Errorf("%s.shift: invalid shift %d", prefix, s.Shift))
		}
		if s.Headcount < 0 {
			errs = append(errs, fmt.Errorf("%s.headcount cannot be negative", prefix))
		}
	}

	return errs
}

func validateShiftBlocks(blocks []ShiftBlockImport, wcIDs map[string]bool) []error {
	var errs []error

	for i, b := range blocks {
		prefix := fmt.Sprintf("shift_blocks[%d]", i)
		if !wcIDs[b.WorkCenterID] {
			errs = append(errs, fmt.Errorf("%s: unknown work center %q", prefix, b.WorkCenterID))
		}
		if _, err := time.Parse(dateLayout, b.Date); err != nil {
			errs = append(errs, fmt.Errorf("%s.date: invalid date format %q (expected YYYY-MM-DD)", prefix, b.Date))
		}
		if !domain.ShiftNumber(b.Shift).Valid() {
			errs = append(errs, fmt.Errorf("%s.shift: invalid shift %d", prefix, b.Shift))
		}
	}

	return errs
}
