package scheduler

import (
	"time"

	"github.com/bakeryops/ovenplan/internal/domain"
)

// BatchJob is one batch prepared for placement: the batch itself plus the
// arrival time and duration the orchestrator derived for it.
type BatchJob struct {
	Batch       domain.Batch
	Arrival     time.Time
	DurationMin int
}

// Assignment is the subsequence of batches routed to one work center,
// together with their simulated placements. Window holds the full
// recalculated entry set (existing entries included) because committing a
// plan writes the whole window back, not just the additions.
type Assignment struct {
	WorkCenterID string
	Jobs         []BatchJob
	Placed       []domain.ScheduleEntry
	Window       []domain.ScheduleEntry
	Finish       time.Time
}

// Distribution is the distributor's result. DeadlineMet is false when even
// the final best-effort split misses the deadline; the caller surfaces that
// as a warning, not a failure.
type Distribution struct {
	Assignments []Assignment
	DeadlineMet bool
}

// Distribute spreads a production run's batches across the given work
// centers so the run finishes by deadline. contexts is ordered with the
// primary work center first; each carries the existing entries and blocked
// periods of its candidate.
//
// The strategy is a greedy tail-to-head migration: while the current
// source work center misses the deadline, its last batch moves to the
// front of the next work center and both are re-simulated. A drained
// source makes the target the new source. This is best-effort, not
// makespan-optimal; overflow past the primary is the rare case.
func Distribute(jobs []BatchJob, contexts []domain.WorkCenterContext, deadline *time.Time, productID, orderKey string) (*Distribution, error) {
	if len(contexts) == 0 {
		return nil, &InvariantError{Reason: "distribute called without work-center contexts"}
	}

	assigned := make([][]BatchJob, len(contexts))
	assigned[0] = append([]BatchJob(nil), jobs...)

	finishes := make([]time.Time, len(contexts))
	placements := make([][]domain.ScheduleEntry, len(contexts))
	windows := make([][]domain.ScheduleEntry, len(contexts))

	resim := func(idx int) error {
		finish, placed, window, err := simulateAssignment(contexts[idx], assigned[idx], productID, orderKey)
		if err != nil {
			return err
		}
		finishes[idx] = finish
		placements[idx] = placed
		windows[idx] = window
		return nil
	}

	if err := resim(0); err != nil {
		return nil, err
	}

	deadlineMet := true
	if deadline != nil && len(contexts) > 1 && len(jobs) > 0 && finishes[0].After(*deadline) {
		deadlineMet = false

		// Every batch moves at most once per target; the cap guarantees
		// termination under any deadline/configuration combination.
		maxMoves := len(jobs) * len(contexts)
		moves := 0

		source := 0
	overflow:
		for target := 1; target < len(contexts); target++ {
			for len(assigned[source]) > 0 && moves < maxMoves {
				last := len(assigned[source]) - 1
				job := assigned[source][last]
				assigned[source] = assigned[source][:last]
				assigned[target] = append([]BatchJob{job}, assigned[target]...)
				moves++

				if err := resim(source); err != nil {
					return nil, err
				}
				if err := resim(target); err != nil {
					return nil, err
				}

				sourceOK := len(assigned[source]) == 0 || !finishes[source].After(*deadline)
				targetOK := !finishes[target].After(*deadline)
				if sourceOK && targetOK {
					deadlineMet = true
					break overflow
				}
			}
			// Source drained without meeting the deadline; the target
			// carries the overflow forward.
			source = target
		}
	} else if deadline != nil && len(jobs) > 0 {
		deadlineMet = !finishes[0].After(*deadline)
	}

	dist := &Distribution{DeadlineMet: deadlineMet}
	for i, ctx := range contexts {
		if i > 0 && len(assigned[i]) == 0 {
			continue
		}
		if placements[i] == nil && len(assigned[i]) > 0 {
			if err := resim(i); err != nil {
				return nil, err
			}
		}
		dist.Assignments = append(dist.Assignments, Assignment{
			WorkCenterID: ctx.WorkCenter.ID,
			Jobs:         assigned[i],
			Placed:       placements[i],
			Window:       windows[i],
			Finish:       finishes[i],
		})
	}
	return dist, nil
}

// simulateAssignment runs the queue simulator over a work center's existing
// entries plus the proposed batches and returns the latest end among the
// newly placed ones. The hybrid policy applies when the work center is
// hybrid, the sequential policy otherwise.
func simulateAssignment(ctx domain.WorkCenterContext, jobs []BatchJob, productID, orderKey string) (time.Time, []domain.ScheduleEntry, []domain.ScheduleEntry, error) {
	all := make([]domain.ScheduleEntry, 0, len(ctx.Existing)+len(jobs))
	for _, e := range ctx.Existing {
		e.IsExisting = true
		all = append(all, e)
	}
	for _, j := range jobs {
		all = append(all, domain.ScheduleEntry{
			WorkCenterID: ctx.WorkCenter.ID,
			ProductID:    productID,
			OrderKey:     orderKey,
			ArrivalTime:  j.Arrival,
			DurationMin:  j.DurationMin,
			BatchIndex:   j.Batch.Position,
			BatchTotal:   j.Batch.Total,
		})
	}

	var placed []domain.ScheduleEntry
	var err error
	if ctx.Mode == domain.ModeHybrid {
		placed, err = RecalculateHybrid(all, ctx.Blocked)
	} else {
		placed, err = Recalculate(all, ctx.Blocked)
	}
	if err != nil {
		return time.Time{}, nil, nil, err
	}

	var finish time.Time
	var proposed []domain.ScheduleEntry
	for _, e := range placed {
		if e.IsExisting {
			continue
		}
		proposed = append(proposed, e)
		if e.EndTime.After(finish) {
			finish = e.EndTime
		}
	}
	return finish, proposed, placed, nil
}
