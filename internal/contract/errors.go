package contract

import (
	"errors"
	"fmt"
	"time"
)

// ErrRouteNotFound is returned when a product has no production route.
var ErrRouteNotFound = errors.New("no production route configured for product")

// ErrOrderNotFound is returned when an order key matches no schedule entries.
var ErrOrderNotFound = errors.New("order not found")

// ConflictError reports that another cascade mutated a work center's
// schedule window between load and persist. Retryable: reload and re-plan.
type ConflictError struct {
	WorkCenterID string
	WeekStart    time.Time
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("schedule window for %s (week of %s) was modified concurrently, retry",
		e.WorkCenterID, e.WeekStart.Format("2006-01-02"))
}

// IsConflict reports whether err is a retryable schedule conflict.
func IsConflict(err error) bool {
	var c *ConflictError
	return errors.As(err, &c)
}
