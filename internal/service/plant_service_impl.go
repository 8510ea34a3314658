package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/bakeryops/ovenplan/internal/domain"
	"github.com/bakeryops/ovenplan/internal/repository"
	"github.com/bakeryops/ovenplan/internal/scheduler"
)

type plantService struct {
	workCenters  repository.WorkCenterRepo
	routes       repository.RouteRepo
	productivity repository.ProductivityRepo
	restTimes    repository.RestTimeRepo
	shiftBlocks  repository.ShiftBlockRepo
	staffing     repository.StaffingRepo
}

func NewPlantService(
	workCenters repository.WorkCenterRepo,
	routes repository.RouteRepo,
	productivity repository.ProductivityRepo,
	restTimes repository.RestTimeRepo,
	shiftBlocks repository.ShiftBlockRepo,
	staffing repository.StaffingRepo,
) PlantService {
	return &plantService{
		workCenters:  workCenters,
		routes:       routes,
		productivity: productivity,
		restTimes:    restTimes,
		shiftBlocks:  shiftBlocks,
		staffing:     staffing,
	}
}

func validateWorkCenter(wc *domain.WorkCenter) error {
	if wc.ID == "" {
		return fmt.Errorf("work center id is required")
	}
	if wc.Name == "" {
		return fmt.Errorf("work center name is required")
	}
	if wc.MaxConcurrent < 1 {
		return fmt.Errorf("work center %s: max concurrent must be at least 1", wc.ID)
	}
	return nil
}

func (s *plantService) CreateWorkCenter(ctx context.Context, wc *domain.WorkCenter) error {
	if err := validateWorkCenter(wc); err != nil {
		return err
	}
	now := time.Now().UTC()
	wc.CreatedAt = now
	wc.UpdatedAt = now
	return s.workCenters.Create(ctx, wc)
}

func (s *plantService) GetWorkCenter(ctx context.Context, id string) (*domain.WorkCenter, error) {
	return s.workCenters.GetByID(ctx, id)
}

func (s *plantService) ListWorkCenters(ctx context.Context) ([]*domain.WorkCenter, error) {
	return s.workCenters.List(ctx)
}

func (s *plantService) UpdateWorkCenter(ctx context.Context, wc *domain.WorkCenter) error {
	if err := validateWorkCenter(wc); err != nil {
		return err
	}
	wc.UpdatedAt = time.Now().UTC()
	return s.workCenters.Update(ctx, wc)
}

func (s *plantService) DeleteWorkCenter(ctx context.Context, id string) error {
	return s.workCenters.Delete(ctx, id)
}

func (s *plantService) SetAlternates(ctx context.Context, id string, alternateIDs []string) error {
	for _, alt := range alternateIDs {
		if alt == id {
			return fmt.Errorf("work center %s cannot be its own alternate", id)
		}
	}
	return s.workCenters.SetAlternates(ctx, id, alternateIDs)
}

func (s *plantService) ListAlternates(ctx context.Context, id string) ([]*domain.WorkCenter, error) {
	return s.workCenters.ListAlternates(ctx, id)
}

func (s *plantService) SetRoute(ctx context.Context, productID string, steps []domain.RouteStep) error {
	if productID == "" {
		return fmt.Errorf("product id is required")
	}
	if len(steps) == 0 {
		return fmt.Errorf("route for %s needs at least one step", productID)
	}
	sorted := append([]domain.RouteStep(nil), steps...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Sequence < sorted[j].Sequence })
	for i := range sorted {
		if sorted[i].WorkCenterID == "" || sorted[i].Operation == "" {
			return fmt.Errorf("route step %d of %s: work center and operation are required", i+1, productID)
		}
		if i > 0 && sorted[i].Sequence == sorted[i-1].Sequence {
			return fmt.Errorf("route of %s: duplicate sequence %d", productID, sorted[i].Sequence)
		}
		sorted[i].ProductID = productID
	}
	return s.routes.ReplaceForProduct(ctx, productID, sorted)
}

func (s *plantService) Route(ctx context.Context, productID string) ([]domain.RouteStep, error) {
	return s.routes.ListByProduct(ctx, productID)
}

func (s *plantService) SetProductivity(ctx context.Context, p domain.ProductivityParam) error {
	if !p.UseFixed && p.UnitsPerHour <= 0 {
		return fmt.Errorf("productivity for %s at %s: units per hour must be positive", p.ProductID, p.WorkCenterID)
	}
	if p.UseFixed && p.FixedMinutes <= 0 {
		return fmt.Errorf("productivity for %s at %s: fixed minutes must be positive", p.ProductID, p.WorkCenterID)
	}
	return s.productivity.Upsert(ctx, p)
}

func (s *plantService) SetRestTime(ctx context.Context, r domain.RestTime) error {
	if r.Hours < 0 {
		return fmt.Errorf("rest time for %s/%s cannot be negative", r.ProductID, r.Operation)
	}
	return s.restTimes.Upsert(ctx, r)
}

func (s *plantService) SetStaffing(ctx context.Context, st domain.Staffing) error {
	if !st.Shift.Valid() {
		return fmt.Errorf("staffing at %s: invalid shift %d", st.WorkCenterID, st.Shift)
	}
	if st.Headcount < 0 {
		return fmt.Errorf("staffing at %s: headcount cannot be negative", st.WorkCenterID)
	}
	return s.staffing.Upsert(ctx, st)
}

func (s *plantService) BlockShift(ctx context.Context, b domain.ShiftBlock) error {
	if !b.Shift.Valid() {
		return fmt.Errorf("blocking at %s: invalid shift %d", b.WorkCenterID, b.Shift)
	}
	// Re-blocking an already blocked shift just updates the reason.
	return s.shiftBlocks.Upsert(ctx, b)
}

func (s *plantService) UnblockShift(ctx context.Context, workCenterID string, date time.Time, shift domain.ShiftNumber) error {
	if !shift.Valid() {
		return fmt.Errorf("unblocking at %s: invalid shift %d", workCenterID, shift)
	}
	return s.shiftBlocks.Delete(ctx, workCenterID, date, shift)
}

func (s *plantService) BlockedPeriods(ctx context.Context, workCenterID string, from, to time.Time) ([]domain.BlockedPeriod, error) {
	blocks, err := s.shiftBlocks.ListWindow(ctx, workCenterID, from, to)
	if err != nil {
		return nil, err
	}
	return scheduler.BlockedPeriods(blocks, from, to), nil
}
