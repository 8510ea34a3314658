package domain

import "fmt"

// CascadeState is the lifecycle of one cascade planning run.
type CascadeState string

const (
	CascadePendingSplit  CascadeState = "PENDING_SPLIT"
	CascadePlaced        CascadeState = "PLACED"
	CascadeRedistributed CascadeState = "REDISTRIBUTED"
	CascadeCommitted     CascadeState = "COMMITTED"
	CascadeDeleted       CascadeState = "DELETED"
)

// cascadeTransitions enumerates the legal state moves. Redistribution is
// optional: PLACED may commit directly.
var cascadeTransitions = map[CascadeState][]CascadeState{
	CascadePendingSplit:  {CascadePlaced},
	CascadePlaced:        {CascadeRedistributed, CascadeCommitted},
	CascadeRedistributed: {CascadeCommitted},
	CascadeCommitted:     {CascadeDeleted},
	CascadeDeleted:       {},
}

// StateTransitionError reports an attempt to move a cascade to a state not
// reachable from its current one.
type StateTransitionError struct {
	From CascadeState
	To   CascadeState
}

func (e *StateTransitionError) Error() string {
	return fmt.Sprintf("invalid cascade transition %s -> %s", e.From, e.To)
}

// CanTransition reports whether to is reachable from s in one step.
func (s CascadeState) CanTransition(to CascadeState) bool {
	for _, next := range cascadeTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// Transition returns to if the move is legal, or a *StateTransitionError.
func (s CascadeState) Transition(to CascadeState) (CascadeState, error) {
	if !s.CanTransition(to) {
		return s, &StateTransitionError{From: s, To: to}
	}
	return to, nil
}
