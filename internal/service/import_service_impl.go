package service

import (
	"context"
	"fmt"
	"time"

	"github.com/bakeryops/ovenplan/internal/db"
	"github.com/bakeryops/ovenplan/internal/importer"
	"github.com/bakeryops/ovenplan/internal/repository"
)

type importService struct {
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewImportService(uow db.UnitOfWork, observers ...UseCaseObserver) ImportService {
	return &importService{uow: uow, observer: useCaseObserverOrNoop(observers)}
}

func (s *importService) ImportPlant(ctx context.Context, filePath string) (*ImportResult, error) {
	schema, err := importer.LoadPlantSchema(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading plant file: %w", err)
	}
	return s.ImportPlantFromSchema(ctx, schema)
}

func (s *importService) ImportPlantFromSchema(ctx context.Context, schema *importer.PlantSchema) (result *ImportResult, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		fields := map[string]any{}
		if result != nil {
			fields["work_centers"] = result.WorkCenterCount
			fields["route_steps"] = result.RouteStepCount
		}
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "import-plant",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	if errs := importer.ValidatePlantSchema(schema); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}

	cfg, err := importer.Convert(schema)
	if err != nil {
		return nil, fmt.Errorf("converting plant schema: %w", err)
	}

	// The whole configuration lands in one transaction: a plant file either
	// imports completely or not at all.
	res := &ImportResult{}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		workCenters := repository.NewSQLiteWorkCenterRepo(tx)
		for _, wc := range cfg.WorkCenters {
			if err := workCenters.Create(ctx, wc); err != nil {
				return fmt.Errorf("creating work center %q: %w", wc.ID, err)
			}
			res.WorkCenterCount++
		}
		for id, alts := range cfg.Alternates {
			if err := workCenters.SetAlternates(ctx, id, alts); err != nil {
				return fmt.Errorf("setting alternates of %q: %w", id, err)
			}
		}

		routes := repository.NewSQLiteRouteRepo(tx)
		for productID, steps := range cfg.Routes {
			if err := routes.ReplaceForProduct(ctx, productID, steps); err != nil {
				return fmt.Errorf("creating route of %q: %w", productID, err)
			}
			res.RouteStepCount += len(steps)
		}

		productivity := repository.NewSQLiteProductivityRepo(tx)
		for _, p := range cfg.Productivity {
			if err := productivity.Upsert(ctx, p); err != nil {
				return fmt.Errorf("creating productivity %s/%s: %w", p.ProductID, p.WorkCenterID, err)
			}
			res.ProductivityCount++
		}

		restTimes := repository.NewSQLiteRestTimeRepo(tx)
		for _, r := range cfg.RestTimes {
			if err := restTimes.Upsert(ctx, r); err != nil {
				return fmt.Errorf("creating rest time %s/%s: %w", r.ProductID, r.Operation, err)
			}
			res.RestTimeCount++
		}

		staffing := repository.NewSQLiteStaffingRepo(tx)
		for _, st := range cfg.Staffing {
			if err := staffing.Upsert(ctx, st); err != nil {
				return fmt.Errorf("creating staffing at %q: %w", st.WorkCenterID, err)
			}
			res.StaffingCount++
		}

		shiftBlocks := repository.NewSQLiteShiftBlockRepo(tx)
		for _, b := range cfg.ShiftBlocks {
			if err := shiftBlocks.Create(ctx, b); err != nil {
				return fmt.Errorf("creating shift block at %q: %w", b.WorkCenterID, err)
			}
			res.ShiftBlockCount++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("import validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}
