package scheduler

import (
	"math/rand"
	"testing"
	"time"

	"github.com/bakeryops/ovenplan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seqContext(id string) domain.WorkCenterContext {
	wc := domain.WorkCenter{ID: id, Name: id, CapacityUnit: "line", MaxConcurrent: 1}
	return domain.WorkCenterContext{WorkCenter: wc, Mode: ClassifyMode(wc)}
}

func makeJobs(n int, arrival time.Time, durationMin int) []BatchJob {
	jobs := make([]BatchJob, n)
	for i := range jobs {
		jobs[i] = BatchJob{
			Batch:       domain.Batch{Quantity: 100, Position: i + 1, Total: n},
			Arrival:     arrival,
			DurationMin: durationMin,
		}
	}
	return jobs
}

func TestDistribute_NoDeadlineAllPrimary(t *testing.T) {
	t0 := at(2026, 3, 2, 8, 0)
	contexts := []domain.WorkCenterContext{seqContext("wc-1"), seqContext("wc-2")}

	dist, err := Distribute(makeJobs(4, t0, 60), contexts, nil, "prod-1", "ord-1")
	require.NoError(t, err)

	require.Len(t, dist.Assignments, 1)
	assert.Equal(t, "wc-1", dist.Assignments[0].WorkCenterID)
	assert.Len(t, dist.Assignments[0].Jobs, 4)
	assert.True(t, dist.DeadlineMet)
	assert.Equal(t, t0.Add(4*time.Hour), dist.Assignments[0].Finish)
}

func TestDistribute_SingleContextIgnoresDeadline(t *testing.T) {
	t0 := at(2026, 3, 2, 8, 0)
	deadline := t0.Add(time.Hour)

	dist, err := Distribute(makeJobs(4, t0, 60), []domain.WorkCenterContext{seqContext("wc-1")}, &deadline, "prod-1", "ord-1")
	require.NoError(t, err)

	require.Len(t, dist.Assignments, 1)
	assert.Len(t, dist.Assignments[0].Jobs, 4)
	assert.False(t, dist.DeadlineMet, "a single overloaded work center reports the miss")
}

func TestDistribute_DeadlineComfortableStaysOnPrimary(t *testing.T) {
	t0 := at(2026, 3, 2, 8, 0)
	deadline := t0.Add(8 * time.Hour)
	contexts := []domain.WorkCenterContext{seqContext("wc-1"), seqContext("wc-2")}

	dist, err := Distribute(makeJobs(4, t0, 60), contexts, &deadline, "prod-1", "ord-1")
	require.NoError(t, err)

	require.Len(t, dist.Assignments, 1)
	assert.Equal(t, "wc-1", dist.Assignments[0].WorkCenterID)
	assert.True(t, dist.DeadlineMet)
}

func TestDistribute_OverflowsToSecondWorkCenter(t *testing.T) {
	t0 := at(2026, 3, 2, 8, 0)
	deadline := t0.Add(3 * time.Hour)
	contexts := []domain.WorkCenterContext{seqContext("wc-1"), seqContext("wc-2")}

	dist, err := Distribute(makeJobs(6, t0, 60), contexts, &deadline, "prod-1", "ord-1")
	require.NoError(t, err)

	require.Len(t, dist.Assignments, 2)
	assert.True(t, dist.DeadlineMet)
	assert.Len(t, dist.Assignments[0].Jobs, 3)
	assert.Len(t, dist.Assignments[1].Jobs, 3)
	assert.False(t, dist.Assignments[0].Finish.After(deadline))
	assert.False(t, dist.Assignments[1].Finish.After(deadline))
}

func TestDistribute_BusyPrimaryDrainsFully(t *testing.T) {
	t0 := at(2026, 3, 2, 8, 0)
	deadline := t0.Add(2 * time.Hour)

	primary := seqContext("wc-1")
	primary.Existing = []domain.ScheduleEntry{{
		ID: "busy", WorkCenterID: "wc-1", OrderKey: "ord-0",
		ArrivalTime: t0, DurationMin: 240, IsExisting: true,
	}}
	contexts := []domain.WorkCenterContext{primary, seqContext("wc-2")}

	dist, err := Distribute(makeJobs(2, t0, 60), contexts, &deadline, "prod-1", "ord-1")
	require.NoError(t, err)

	require.Len(t, dist.Assignments, 2)
	assert.True(t, dist.DeadlineMet)
	assert.Empty(t, dist.Assignments[0].Jobs, "the occupied primary gives up every batch")
	assert.Len(t, dist.Assignments[1].Jobs, 2)
}

func TestDistribute_InfeasibleDeadlineBestEffort(t *testing.T) {
	t0 := at(2026, 3, 2, 8, 0)
	deadline := t0.Add(30 * time.Minute)
	contexts := []domain.WorkCenterContext{seqContext("wc-1"), seqContext("wc-2")}

	dist, err := Distribute(makeJobs(6, t0, 60), contexts, &deadline, "prod-1", "ord-1")
	require.NoError(t, err, "an infeasible deadline is a warning, not a failure")
	assert.False(t, dist.DeadlineMet)

	total := 0
	for _, a := range dist.Assignments {
		total += len(a.Jobs)
	}
	assert.Equal(t, 6, total, "best-effort result still covers every batch exactly once")
}

func TestDistribute_EmptyJobs(t *testing.T) {
	deadline := at(2026, 3, 2, 12, 0)
	contexts := []domain.WorkCenterContext{seqContext("wc-1"), seqContext("wc-2")}

	dist, err := Distribute(nil, contexts, &deadline, "prod-1", "ord-1")
	require.NoError(t, err)
	assert.True(t, dist.DeadlineMet)
}

func TestDistribute_NoContexts(t *testing.T) {
	_, err := Distribute(makeJobs(1, at(2026, 3, 2, 8, 0), 60), nil, nil, "prod-1", "ord-1")
	require.Error(t, err)

	var ierr *InvariantError
	assert.ErrorAs(t, err, &ierr)
}

func TestDistribute_PlacedEntriesCarryBatchIdentity(t *testing.T) {
	t0 := at(2026, 3, 2, 8, 0)
	contexts := []domain.WorkCenterContext{seqContext("wc-1")}

	dist, err := Distribute(makeJobs(3, t0, 30), contexts, nil, "prod-7", "ord-7")
	require.NoError(t, err)

	require.Len(t, dist.Assignments[0].Placed, 3)
	for i, e := range dist.Assignments[0].Placed {
		assert.Equal(t, "prod-7", e.ProductID)
		assert.Equal(t, "ord-7", e.OrderKey)
		assert.Equal(t, i+1, e.BatchIndex)
		assert.Equal(t, 3, e.BatchTotal)
		assert.False(t, e.IsExisting)
	}
}

func TestDistribute_RespectsBlockedPeriodsOnTarget(t *testing.T) {
	t0 := at(2026, 3, 2, 8, 0)
	deadline := t0.Add(3 * time.Hour)

	secondary := seqContext("wc-2")
	secondary.Blocked = []domain.BlockedPeriod{{Start: t0, End: t0.Add(time.Hour)}}
	contexts := []domain.WorkCenterContext{seqContext("wc-1"), secondary}

	dist, err := Distribute(makeJobs(6, t0, 60), contexts, &deadline, "prod-1", "ord-1")
	require.NoError(t, err)

	for _, a := range dist.Assignments {
		if a.WorkCenterID != "wc-2" {
			continue
		}
		for _, e := range a.Placed {
			assert.False(t, secondary.Blocked[0].Overlaps(e.StartTime, e.EndTime),
				"overflow placements must avoid the target's blocked periods")
		}
	}
}

// TestDistribute_Convergence property-tests termination and conservation:
// whatever the deadline and work-center count, distribution ends with every
// batch assigned exactly once.
func TestDistribute_Convergence(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	t0 := at(2026, 3, 2, 6, 0)

	for trial := 0; trial < 150; trial++ {
		numJobs := rng.Intn(10) + 1
		numWCs := rng.Intn(4) + 1
		dur := rng.Intn(120) + 1

		contexts := make([]domain.WorkCenterContext, numWCs)
		for i := range contexts {
			contexts[i] = seqContext("wc-" + string(rune('1'+i)))
		}

		var deadline *time.Time
		if rng.Intn(4) > 0 {
			d := t0.Add(time.Duration(rng.Intn(numJobs*dur+1)) * time.Minute)
			deadline = &d
		}

		dist, err := Distribute(makeJobs(numJobs, t0, dur), contexts, deadline, "prod-1", "ord-1")
		require.NoError(t, err, "trial %d", trial)

		seen := make(map[int]int)
		for _, a := range dist.Assignments {
			for _, j := range a.Jobs {
				seen[j.Batch.Position]++
			}
		}
		require.Len(t, seen, numJobs, "trial %d: every batch must be assigned", trial)
		for pos, count := range seen {
			assert.Equal(t, 1, count, "trial %d: batch %d assigned %d times", trial, pos, count)
		}
	}
}
