package importer

import (
	"fmt"
	"sort"
	"time"

	"github.com/bakeryops/ovenplan/internal/domain"
)

// PlantConfig holds the converted domain objects ready for persistence.
type PlantConfig struct {
	WorkCenters  []*domain.WorkCenter
	Alternates   map[string][]string
	Routes       map[string][]domain.RouteStep
	Productivity []domain.ProductivityParam
	RestTimes    []domain.RestTime
	Staffing     []domain.Staffing
	ShiftBlocks  []domain.ShiftBlock
}

// Convert transforms a validated PlantSchema into domain objects. Call
// ValidatePlantSchema first; Convert assumes the schema is valid.
func Convert(schema *PlantSchema) (*PlantConfig, error) {
	now := time.Now().UTC()
	cfg := &PlantConfig{
		Alternates: make(map[string][]string),
		Routes:     make(map[string][]domain.RouteStep),
	}

	for _, wc := range schema.WorkCenters {
		unit := wc.CapacityUnit
		if unit == "" {
			unit = domain.CapacityUnitCarts
		}
		cfg.WorkCenters = append(cfg.WorkCenters, &domain.WorkCenter{
			ID:                       wc.ID,
			Name:                     wc.Name,
			CapacityUnit:             unit,
			MaxConcurrent:            wc.MaxConcurrent,
			AllowsCrossOrderParallel: wc.AllowsCrossOrderParallel,
			CreatedAt:                now,
			UpdatedAt:                now,
		})
		if len(wc.Alternates) > 0 {
			cfg.Alternates[wc.ID] = wc.Alternates
		}
	}

	for _, r := range schema.Routes {
		steps := make([]domain.RouteStep, 0, len(r.Steps))
		for _, s := range r.Steps {
			steps = append(steps, domain.RouteStep{
				ProductID:    r.ProductID,
				WorkCenterID: s.WorkCenterID,
				Operation:    s.Operation,
				Sequence:     s.Sequence,
			})
		}
		sort.Slice(steps, func(i, j int) bool { return steps[i].Sequence < steps[j].Sequence })
		cfg.Routes[r.ProductID] = steps
	}

	for _, p := range schema.Productivity {
		param := domain.ProductivityParam{
			ProductID:    p.ProductID,
			WorkCenterID: p.WorkCenterID,
		}
		if p.FixedMinutes != nil {
			param.UseFixed = true
			param.FixedMinutes = *p.FixedMinutes
		} else {
			param.UnitsPerHour = *p.UnitsPerHour
		}
		cfg.Productivity = append(cfg.Productivity, param)
	}

	for _, r := range schema.RestTimes {
		cfg.RestTimes = append(cfg.RestTimes, domain.RestTime{
			ProductID: r.ProductID,
			Operation: r.Operation,
			Hours:     r.Hours,
		})
	}

	for _, s := range schema.Staffing {
		date, err := time.ParseInLocation(dateLayout, s.Date, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("parsing staffing date %q: %w", s.Date, err)
		}
		cfg.Staffing = append(cfg.Staffing, domain.Staffing{
			WorkCenterID: s.WorkCenterID,
			Date:         date,
			Shift:        domain.ShiftNumber(s.Shift),
			Headcount:    s.Headcount,
		})
	}

	for _, b := range schema.ShiftBlocks {
		date, err := time.ParseInLocation(dateLayout, b.Date, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("parsing shift block date %q: %w", b.Date, err)
		}
		cfg.ShiftBlocks = append(cfg.ShiftBlocks, domain.ShiftBlock{
			WorkCenterID: b.WorkCenterID,
			Date:         date,
			Shift:        domain.ShiftNumber(b.Shift),
			Reason:       b.Reason,
		})
	}

	return cfg, nil
}
