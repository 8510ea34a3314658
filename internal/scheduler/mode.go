package scheduler

import "github.com/bakeryops/ovenplan/internal/domain"

// ClassifyMode derives a work center's processing mode from its static
// configuration.
//
// Cart-based work centers with more than one slot run fully parallel.
// Work centers that explicitly allow cross-order parallelism are hybrid:
// sequential within one production order, parallel across orders.
// Everything else queues strictly sequentially.
func ClassifyMode(wc domain.WorkCenter) domain.ProcessingMode {
	if wc.CapacityUnit == domain.CapacityUnitCarts && wc.MaxConcurrent > 1 {
		return domain.ModeParallel
	}
	if wc.AllowsCrossOrderParallel {
		return domain.ModeHybrid
	}
	return domain.ModeSequential
}
