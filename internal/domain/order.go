package domain

import "time"

// ProductionOrder is one requested production run: the cascade's grouping
// root and the carrier of its lifecycle state.
type ProductionOrder struct {
	OrderKey       string
	ProductID      string
	Quantity       int
	State          CascadeState
	RequestedStart time.Time
	Deadline       *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
