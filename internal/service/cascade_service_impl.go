package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/bakeryops/ovenplan/internal/contract"
	"github.com/bakeryops/ovenplan/internal/db"
	"github.com/bakeryops/ovenplan/internal/domain"
	"github.com/bakeryops/ovenplan/internal/repository"
	"github.com/bakeryops/ovenplan/internal/scheduler"
	"github.com/google/uuid"
)

// Planning window around the requested start. Entries outside it cannot
// influence the queue simulation for this run.
const (
	planWindowBack  = 7 * 24 * time.Hour
	planWindowAhead = 21 * 24 * time.Hour
)

type windowKey struct {
	workCenterID string
	weekStart    time.Time
}

type cascadeService struct {
	workCenters  repository.WorkCenterRepo
	routes       repository.RouteRepo
	productivity repository.ProductivityRepo
	restTimes    repository.RestTimeRepo
	shiftBlocks  repository.ShiftBlockRepo
	staffing     repository.StaffingRepo
	entries      repository.ScheduleEntryRepo
	orders       repository.OrderRepo
	windows      repository.ScheduleWindowRepo
	sequence     repository.OrderSequenceRepo
	uow          db.UnitOfWork
	observer     UseCaseObserver
}

func NewCascadeService(
	workCenters repository.WorkCenterRepo,
	routes repository.RouteRepo,
	productivity repository.ProductivityRepo,
	restTimes repository.RestTimeRepo,
	shiftBlocks repository.ShiftBlockRepo,
	staffing repository.StaffingRepo,
	entries repository.ScheduleEntryRepo,
	orders repository.OrderRepo,
	windows repository.ScheduleWindowRepo,
	sequence repository.OrderSequenceRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) CascadeService {
	return &cascadeService{
		workCenters:  workCenters,
		routes:       routes,
		productivity: productivity,
		restTimes:    restTimes,
		shiftBlocks:  shiftBlocks,
		staffing:     staffing,
		entries:      entries,
		orders:       orders,
		windows:      windows,
		sequence:     sequence,
		uow:          uow,
		observer:     useCaseObserverOrNoop(observers),
	}
}

// stepPlacement is one route step's planned outcome: the new entries to
// create and the already-persisted entries whose times the simulation moved.
type stepPlacement struct {
	operation string
	sequence  int
	primaryID string
	entries   []domain.ScheduleEntry
	updated   []domain.ScheduleEntry
}

// cascadePlan is a fully computed but unpersisted cascade. versions holds
// the window versions read while planning; Commit re-checks them with a
// compare-and-swap so a stale plan cannot overwrite a newer window.
type cascadePlan struct {
	resp       *contract.PlanResponse
	order      *domain.ProductionOrder
	placements []stepPlacement
	versions   map[windowKey]int
}

func (s *cascadeService) Plan(ctx context.Context, req contract.PlanRequest) (resp *contract.PlanResponse, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		event := UseCaseEvent{
			Name:      "plan-cascade",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"product": req.ProductID, "quantity": req.Quantity},
		}
		if resp != nil {
			event.Warnings = len(resp.Warnings)
		}
		s.observer.ObserveUseCase(ctx, event)
	}()

	plan, err := s.buildPlan(ctx, req)
	if err != nil {
		return nil, err
	}
	return plan.resp, nil
}

func (s *cascadeService) Commit(ctx context.Context, req contract.PlanRequest) (resp *contract.PlanResponse, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"product": req.ProductID, "quantity": req.Quantity}
	defer func() {
		event := UseCaseEvent{
			Name:      "commit-cascade",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		}
		if resp != nil {
			event.Warnings = len(resp.Warnings)
		}
		s.observer.ObserveUseCase(ctx, event)
	}()

	plan, err := s.buildPlan(ctx, req)
	if err != nil {
		return nil, err
	}
	fields["order_key"] = plan.order.OrderKey

	committed, err := plan.order.State.Transition(domain.CascadeCommitted)
	if err != nil {
		return nil, err
	}
	plan.order.State = committed

	if err = s.commitPlan(ctx, plan); err != nil {
		return nil, err
	}

	plan.resp.State = committed
	return plan.resp, nil
}

// commitPlan persists a computed plan. The window version compare-and-swap
// runs first: if any window moved since the plan was built, nothing is
// written and the caller gets a *contract.ConflictError.
func (s *cascadeService) commitPlan(ctx context.Context, plan *cascadePlan) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txWindows := repository.NewSQLiteScheduleWindowRepo(tx)
		for key, version := range plan.versions {
			if err := txWindows.BumpVersion(ctx, key.workCenterID, key.weekStart, version); err != nil {
				return err
			}
		}

		txOrders := repository.NewSQLiteOrderRepo(tx)
		if err := txOrders.Create(ctx, plan.order); err != nil {
			return fmt.Errorf("creating order %s: %w", plan.order.OrderKey, err)
		}

		// Steps persist in route order so every source entry exists before
		// the entries it feeds.
		txEntries := repository.NewSQLiteScheduleEntryRepo(tx)
		for _, p := range plan.placements {
			for i := range p.entries {
				e := p.entries[i]
				if err := txEntries.Create(ctx, &e, p.operation); err != nil {
					return fmt.Errorf("creating entry for %s batch %d: %w", p.operation, e.BatchIndex, err)
				}
			}
			for i := range p.updated {
				if err := txEntries.UpdatePlacement(ctx, &p.updated[i]); err != nil {
					return fmt.Errorf("moving existing entry %s: %w", p.updated[i].ID, err)
				}
			}
		}
		return nil
	})
}

func (s *cascadeService) DeleteOrder(ctx context.Context, orderKey string) (deleted int, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"order_key": orderKey}
	defer func() {
		fields["deleted_entries"] = deleted
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "delete-cascade",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	order, err := s.orders.GetByKey(ctx, orderKey)
	if err != nil {
		return 0, err
	}
	if _, terr := order.State.Transition(domain.CascadeDeleted); terr != nil {
		return 0, terr
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txEntries := repository.NewSQLiteScheduleEntryRepo(tx)
		n, err := txEntries.DeleteCascade(ctx, orderKey)
		if err != nil {
			return fmt.Errorf("cascade-deleting entries of %s: %w", orderKey, err)
		}
		deleted = n

		txOrders := repository.NewSQLiteOrderRepo(tx)
		return txOrders.UpdateState(ctx, orderKey, domain.CascadeDeleted)
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}

// buildPlan runs the full cascade: split the quantity into batches, then per
// route step assemble work-center contexts, distribute and simulate, and
// feed each batch's end time (plus rest) forward as the next step's arrival.
func (s *cascadeService) buildPlan(ctx context.Context, req contract.PlanRequest) (*cascadePlan, error) {
	if req.Quantity <= 0 {
		return nil, fmt.Errorf("quantity must be positive, got %d", req.Quantity)
	}
	if req.RequestedStart.IsZero() {
		return nil, fmt.Errorf("requested start is required")
	}

	route, err := s.routes.ListByProduct(ctx, req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("loading route: %w", err)
	}
	if len(route) == 0 {
		return nil, fmt.Errorf("product %q: %w", req.ProductID, contract.ErrRouteNotFound)
	}

	orderKey := req.OrderKey
	if orderKey == "" {
		n, err := s.sequence.NextOrderNumber(ctx)
		if err != nil {
			return nil, fmt.Errorf("allocating order number: %w", err)
		}
		orderKey = fmt.Sprintf("PO-%06d", n)
	}

	minLot := req.MinLotSize
	if minLot <= 0 {
		minLot = domain.DefaultMinLotSize
	}
	batches := scheduler.SplitBatches(req.Quantity, minLot)

	rests, err := s.restTimes.ListByProduct(ctx, req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("loading rest times: %w", err)
	}

	start := req.RequestedStart.UTC()
	windowFrom := start.Add(-planWindowBack)
	windowTo := start.Add(planWindowAhead)
	if req.Deadline != nil && req.Deadline.After(windowTo) {
		windowTo = req.Deadline.Add(7 * 24 * time.Hour)
	}

	arrivals := make([]time.Time, len(batches))
	for i := range arrivals {
		arrivals[i] = start
	}
	sourceIDs := make([]*string, len(batches))

	plan := &cascadePlan{versions: make(map[windowKey]int)}
	warnings := newWarningSet()
	now := time.Now().UTC()
	redistributed := false

	var prevEnds []time.Time
	var prevIDs []*string

	for si, step := range route {
		if si > 0 {
			restHours := scheduler.RestHoursFor(rests, req.ProductID, step.Operation)
			for i := range arrivals {
				arrivals[i] = scheduler.ArrivalTime(prevEnds[i], restHours)
			}
			sourceIDs = prevIDs
		}

		contexts, err := s.assembleContexts(ctx, step, req.Deadline != nil, windowFrom, windowTo, plan)
		if err != nil {
			return nil, err
		}

		prod, err := s.productivity.Get(ctx, req.ProductID, step.WorkCenterID)
		if err != nil {
			return nil, fmt.Errorf("loading productivity for %s: %w", step.WorkCenterID, err)
		}
		if prod == nil {
			warnings.add(contract.WarnDefaultProductivity,
				fmt.Sprintf("no productivity record for %s at %s, using %d min per batch",
					req.ProductID, step.WorkCenterID, domain.DefaultBatchDurationMin))
		}

		jobs := make([]scheduler.BatchJob, len(batches))
		for i, b := range batches {
			dur := domain.DefaultBatchDurationMin
			if prod != nil {
				dur = prod.BatchMinutes(b.Quantity)
			}
			jobs[i] = scheduler.BatchJob{Batch: b, Arrival: arrivals[i], DurationMin: dur}
		}

		dist, err := scheduler.Distribute(jobs, contexts, req.Deadline, req.ProductID, orderKey)
		if err != nil {
			return nil, fmt.Errorf("distributing %s: %w", step.Operation, err)
		}
		if req.Deadline != nil && !dist.DeadlineMet {
			warnings.add(contract.WarnDeadlineInfeasible,
				fmt.Sprintf("step %s cannot finish by %s on any eligible work center",
					step.Operation, req.Deadline.UTC().Format(time.RFC3339)))
			if len(contexts) == 1 {
				warnings.add(contract.WarnNoAlternates,
					fmt.Sprintf("no staffed alternate work center for %s", step.WorkCenterID))
			}
		}
		if len(dist.Assignments) > 1 {
			redistributed = true
		}

		placement := stepPlacement{
			operation: step.Operation,
			sequence:  step.Sequence,
			primaryID: step.WorkCenterID,
		}
		ends := make([]time.Time, len(batches))
		ids := make([]*string, len(batches))
		for ai := range dist.Assignments {
			a := &dist.Assignments[ai]
			for i := range a.Placed {
				e := a.Placed[i]
				e.ID = uuid.New().String()
				e.SourceEntryID = sourceIDs[e.BatchIndex-1]
				e.CreatedAt = now
				e.UpdatedAt = now
				ends[e.BatchIndex-1] = e.EndTime
				id := e.ID
				ids[e.BatchIndex-1] = &id
				placement.entries = append(placement.entries, e)
			}
			for _, e := range a.Window {
				if e.IsExisting {
					e.UpdatedAt = now
					placement.updated = append(placement.updated, e)
				}
			}
		}
		sort.Slice(placement.entries, func(i, j int) bool {
			return placement.entries[i].BatchIndex < placement.entries[j].BatchIndex
		})

		plan.placements = append(plan.placements, placement)
		prevEnds, prevIDs = ends, ids
	}

	state, err := domain.CascadePendingSplit.Transition(domain.CascadePlaced)
	if err != nil {
		return nil, err
	}
	if redistributed {
		if state, err = state.Transition(domain.CascadeRedistributed); err != nil {
			return nil, err
		}
	}

	plan.order = &domain.ProductionOrder{
		OrderKey:       orderKey,
		ProductID:      req.ProductID,
		Quantity:       req.Quantity,
		State:          state,
		RequestedStart: start,
		Deadline:       req.Deadline,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	resp := &contract.PlanResponse{
		OrderKey: orderKey,
		State:    state,
		Warnings: warnings.list(),
	}
	for _, p := range plan.placements {
		resp.Steps = append(resp.Steps, contract.PlannedStep{
			Operation:    p.operation,
			WorkCenterID: p.primaryID,
			Sequence:     p.sequence,
			Entries:      p.entries,
		})
	}
	plan.resp = resp
	return plan, nil
}

// assembleContexts loads the primary work center plus, when a deadline makes
// overflow possible, its staffed alternates. Each context records the window
// versions the commit-time compare-and-swap will re-check.
func (s *cascadeService) assembleContexts(
	ctx context.Context,
	step domain.RouteStep,
	wantAlternates bool,
	from, to time.Time,
	plan *cascadePlan,
) ([]domain.WorkCenterContext, error) {
	primary, err := s.workCenters.GetByID(ctx, step.WorkCenterID)
	if err != nil {
		return nil, fmt.Errorf("loading work center %s: %w", step.WorkCenterID, err)
	}

	contexts := make([]domain.WorkCenterContext, 0, 1)
	pctx, err := s.loadContext(ctx, *primary, from, to, plan)
	if err != nil {
		return nil, err
	}
	contexts = append(contexts, pctx)

	if !wantAlternates {
		return contexts, nil
	}

	alternates, err := s.workCenters.ListAlternates(ctx, step.WorkCenterID)
	if err != nil {
		return nil, fmt.Errorf("loading alternates of %s: %w", step.WorkCenterID, err)
	}
	for _, alt := range alternates {
		staffed, err := s.staffing.HasStaff(ctx, alt.ID, from, to)
		if err != nil {
			return nil, fmt.Errorf("checking staffing of %s: %w", alt.ID, err)
		}
		if !staffed {
			continue
		}
		actx, err := s.loadContext(ctx, *alt, from, to, plan)
		if err != nil {
			return nil, err
		}
		contexts = append(contexts, actx)
	}
	return contexts, nil
}

func (s *cascadeService) loadContext(
	ctx context.Context,
	wc domain.WorkCenter,
	from, to time.Time,
	plan *cascadePlan,
) (domain.WorkCenterContext, error) {
	existing, err := s.entries.ListWindow(ctx, wc.ID, from, to)
	if err != nil {
		return domain.WorkCenterContext{}, fmt.Errorf("loading window of %s: %w", wc.ID, err)
	}
	blocks, err := s.shiftBlocks.ListWindow(ctx, wc.ID, from, to)
	if err != nil {
		return domain.WorkCenterContext{}, fmt.Errorf("loading shift blocks of %s: %w", wc.ID, err)
	}

	// The simulation can move entries anywhere in [from, to), so every week
	// the span touches takes part in the compare-and-swap.
	for week := repository.WeekStart(from); week.Before(to); week = week.AddDate(0, 0, 7) {
		key := windowKey{workCenterID: wc.ID, weekStart: week}
		if _, seen := plan.versions[key]; seen {
			continue
		}
		version, err := s.windows.Version(ctx, wc.ID, week)
		if err != nil {
			return domain.WorkCenterContext{}, fmt.Errorf("reading window version of %s: %w", wc.ID, err)
		}
		plan.versions[key] = version
	}

	return domain.WorkCenterContext{
		WorkCenter: wc,
		Mode:       scheduler.ClassifyMode(wc),
		Existing:   existing,
		Blocked:    scheduler.BlockedPeriods(blocks, from, to),
	}, nil
}

// warningSet deduplicates plan warnings by code while keeping first-seen
// order.
type warningSet struct {
	seen map[contract.WarningCode]bool
	out  []contract.Warning
}

func newWarningSet() *warningSet {
	return &warningSet{seen: make(map[contract.WarningCode]bool)}
}

func (w *warningSet) add(code contract.WarningCode, message string) {
	if w.seen[code] {
		return
	}
	w.seen[code] = true
	w.out = append(w.out, contract.Warning{Code: code, Message: message})
}

func (w *warningSet) list() []contract.Warning {
	return w.out
}
