package scheduler

import "github.com/bakeryops/ovenplan/internal/domain"

// SplitBatches divides a requested production quantity into batches of
// minLotSize units plus one remainder batch. A non-positive quantity yields
// a single zero batch (degenerate request, not an error); a non-positive
// lot size falls back to domain.DefaultMinLotSize.
func SplitBatches(totalUnits, minLotSize int) []domain.Batch {
	if totalUnits <= 0 {
		return []domain.Batch{{Quantity: 0, Position: 1, Total: 1}}
	}
	if minLotSize <= 0 {
		minLotSize = domain.DefaultMinLotSize
	}

	full := totalUnits / minLotSize
	remainder := totalUnits % minLotSize

	total := full
	if remainder > 0 {
		total++
	}

	batches := make([]domain.Batch, 0, total)
	for i := 0; i < full; i++ {
		batches = append(batches, domain.Batch{Quantity: minLotSize, Position: i + 1, Total: total})
	}
	if remainder > 0 {
		batches = append(batches, domain.Batch{Quantity: remainder, Position: total, Total: total})
	}
	return batches
}
