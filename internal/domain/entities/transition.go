package entities

import (
	"fmt"
	"time"
)

// ActorRole identifies who is asking for a transition. Authorization is
// enforced per edge: capture and timeout are system-only, release and refund
// require an administrator (or an automated policy acting as system).

type ActorRole string

const (
	RoleCompany ActorRole = "company"
	RoleStudent ActorRole = "student"
	RoleAdmin   ActorRole = "admin"
	RoleSystem  ActorRole = "system"
)

type Actor struct {
	ID   string    `json:"id"`
	Role ActorRole `json:"role"`
}

// SystemActor is the identity used for verified captures and timeout sweeps.
func SystemActor(component string) Actor {
	return Actor{ID: component, Role: RoleSystem}
}

// StateTransition is one immutable entry of the append-only transition log.
//
// Storage model (DynamoDB, table "payment_transitions"):
//   - PK: payment_id, SK: seq
//
// Seq 1 records the creation (from_state empty, to_state created); entry N
// commits in the same transaction that moves the projection row from version
// N-1 to N, so the cached Payment.State is always derivable by replay.

type StateTransition struct {
	PaymentID string            `json:"payment_id"`
	Seq       int               `json:"seq"`
	FromState PaymentState      `json:"from_state,omitempty"`
	ToState   PaymentState      `json:"to_state"`
	Event     TransitionEvent   `json:"event"`
	ActorID   string            `json:"actor_id"`
	ActorRole ActorRole         `json:"actor_role"`
	Timestamp time.Time         `json:"timestamp"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// ReplayState folds a transition log back into the final state, validating
// every edge on the way. Used to reconcile the cached projection with the log.
func ReplayState(log []StateTransition) (PaymentState, error) {
	if len(log) == 0 {
		return "", fmt.Errorf("empty transition log")
	}
	if log[0].FromState != "" || log[0].ToState != PaymentStateCreated {
		return "", fmt.Errorf("log does not start at created: %s -> %s", log[0].FromState, log[0].ToState)
	}

	state := PaymentStateCreated
	for _, entry := range log[1:] {
		if entry.FromState != state {
			return "", fmt.Errorf("seq %d: from_state %s does not match replayed state %s", entry.Seq, entry.FromState, state)
		}
		next, ok := state.Next(entry.Event)
		if !ok || next != entry.ToState {
			return "", fmt.Errorf("seq %d: illegal edge %s --%s--> %s", entry.Seq, entry.FromState, entry.Event, entry.ToState)
		}
		state = next
	}
	return state, nil
}
