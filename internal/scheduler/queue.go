package scheduler

import (
	"fmt"
	"sort"
	"time"

	"github.com/bakeryops/ovenplan/internal/domain"
)

// InvariantError reports a structural failure of the placement algorithm:
// the computation produced (or would produce) an invalid schedule and must
// not be persisted.
type InvariantError struct {
	Reason string
}

func (e *InvariantError) Error() string {
	return "placement invariant violated: " + e.Reason
}

// Recalculate assigns start/end times to the full entry set of one work
// center under the sequential (parallel-overflow) policy: entries are
// processed in arrival order, each starting no earlier than its arrival
// and no earlier than the previous entry's end, skipping blocked periods.
//
// The input is not mutated; the returned slice is a fresh copy in arrival
// order. blocked must be sorted ascending by start.
func Recalculate(entries []domain.ScheduleEntry, blocked []domain.BlockedPeriod) ([]domain.ScheduleEntry, error) {
	if len(entries) == 0 {
		return nil, nil
	}

	out := make([]domain.ScheduleEntry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ArrivalTime.Before(out[j].ArrivalTime)
	})

	var cursor time.Time
	haveCursor := false
	for i := range out {
		start := out[i].ArrivalTime
		if haveCursor && cursor.After(start) {
			start = cursor
		}

		dur := time.Duration(out[i].DurationMin) * time.Minute
		start, err := skipBlocked(start, dur, blocked)
		if err != nil {
			return nil, err
		}

		out[i].StartTime = start
		out[i].EndTime = start.Add(dur)
		cursor = out[i].EndTime
		haveCursor = true
	}

	if err := checkSequentialPlacement(out, blocked); err != nil {
		return nil, err
	}
	return out, nil
}

// RecalculateHybrid assigns start/end times under the hybrid policy:
// entries are partitioned by production-order key and each partition is
// queued sequentially with its own cursor, so different orders may overlap
// at the same work center while one order's own batches stay FIFO. The
// merged result is ordered by computed start time.
func RecalculateHybrid(entries []domain.ScheduleEntry, blocked []domain.BlockedPeriod) ([]domain.ScheduleEntry, error) {
	if len(entries) == 0 {
		return nil, nil
	}

	// Partitions keep first-appearance order for determinism.
	var keys []string
	partitions := make(map[string][]domain.ScheduleEntry)
	for _, e := range entries {
		if _, ok := partitions[e.OrderKey]; !ok {
			keys = append(keys, e.OrderKey)
		}
		partitions[e.OrderKey] = append(partitions[e.OrderKey], e)
	}

	out := make([]domain.ScheduleEntry, 0, len(entries))
	for _, k := range keys {
		placed, err := Recalculate(partitions[k], blocked)
		if err != nil {
			return nil, err
		}
		out = append(out, placed...)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartTime.Before(out[j].StartTime)
	})
	return out, nil
}

// skipBlocked advances start past every blocked period the [start,
// start+dur) interval would intersect. The scan restarts from the first
// period after each advance because jumping to one period's end can land
// the interval inside an earlier-sorted overlapping period.
//
// The iteration bound 2*len(blocked)+1 matches the worst case for sorted
// non-overlapping periods; exceeding it means the inputs broke that
// contract and the computation is aborted rather than truncated silently.
func skipBlocked(start time.Time, dur time.Duration, blocked []domain.BlockedPeriod) (time.Time, error) {
	if len(blocked) == 0 {
		return start, nil
	}

	limit := 2*len(blocked) + 1
	for iter := 0; iter <= limit; iter++ {
		advanced := false
		for _, p := range blocked {
			if p.Overlaps(start, start.Add(dur)) {
				start = p.End
				advanced = true
				break
			}
		}
		if !advanced {
			return start, nil
		}
	}
	return start, &InvariantError{
		Reason: fmt.Sprintf("blocked-period skip exceeded %d iterations", limit),
	}
}

// checkSequentialPlacement verifies the post-conditions of the sequential
// policy: entries in slice order never overlap, start no earlier than they
// arrive, and never intersect a blocked period.
func checkSequentialPlacement(entries []domain.ScheduleEntry, blocked []domain.BlockedPeriod) error {
	for i, e := range entries {
		if e.StartTime.Before(e.ArrivalTime) {
			return &InvariantError{Reason: fmt.Sprintf("entry %s starts before its arrival", e.ID)}
		}
		if i > 0 && entries[i-1].EndTime.After(e.StartTime) {
			return &InvariantError{
				Reason: fmt.Sprintf("entries %s and %s overlap after simulation", entries[i-1].ID, e.ID),
			}
		}
		for _, p := range blocked {
			if p.Overlaps(e.StartTime, e.EndTime) {
				return &InvariantError{
					Reason: fmt.Sprintf("entry %s placed inside blocked period starting %s", e.ID, p.Start),
				}
			}
		}
	}
	return nil
}
