package scheduler

import (
	"sort"
	"time"

	"github.com/bakeryops/ovenplan/internal/domain"
)

// ShiftPeriod maps a (date, shift) pair to its absolute time range under
// the fixed three-shift day model:
//
//	shift 1 (night):   previous day 22:00 – date 06:00
//	shift 2 (morning): 06:00 – 14:00
//	shift 3 (afternoon): 14:00 – 22:00
func ShiftPeriod(date time.Time, shift domain.ShiftNumber) domain.BlockedPeriod {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	switch shift {
	case domain.ShiftNight:
		return domain.BlockedPeriod{Start: day.Add(-2 * time.Hour), End: day.Add(6 * time.Hour)}
	case domain.ShiftMorning:
		return domain.BlockedPeriod{Start: day.Add(6 * time.Hour), End: day.Add(14 * time.Hour)}
	case domain.ShiftAfternoon:
		return domain.BlockedPeriod{Start: day.Add(14 * time.Hour), End: day.Add(22 * time.Hour)}
	default:
		return domain.BlockedPeriod{}
	}
}

// BlockedPeriods converts shift-blocking records into absolute blocked
// ranges intersecting [from, to), sorted ascending by start. Overlapping or
// adjacent records are kept as-is, never merged; callers iterate over
// possibly-adjacent ranges.
func BlockedPeriods(blocks []domain.ShiftBlock, from, to time.Time) []domain.BlockedPeriod {
	var periods []domain.BlockedPeriod
	for _, b := range blocks {
		if !b.Shift.Valid() {
			continue
		}
		p := ShiftPeriod(b.Date, b.Shift)
		if !p.Start.Before(to) || !p.End.After(from) {
			continue
		}
		periods = append(periods, p)
	}
	sort.Slice(periods, func(i, j int) bool {
		return periods[i].Start.Before(periods[j].Start)
	})
	return periods
}
