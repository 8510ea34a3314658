package scheduler

import (
	"time"

	"github.com/bakeryops/ovenplan/internal/domain"
)

// ArrivalTime derives when material from an upstream step becomes available
// at the next work center: the upstream end plus the configured rest time.
// Pure: repeated calls with the same inputs yield the same instant.
func ArrivalTime(upstreamEnd time.Time, restHours float64) time.Time {
	if restHours <= 0 {
		return upstreamEnd
	}
	return upstreamEnd.Add(time.Duration(restHours * float64(time.Hour)))
}

// RestHoursFor looks up the rest time for a product/operation pair in a
// pre-loaded record set, defaulting to zero when nothing is configured.
func RestHoursFor(rests []domain.RestTime, productID, operation string) float64 {
	for _, r := range rests {
		if r.ProductID == productID && r.Operation == operation {
			return r.Hours
		}
	}
	return 0
}
