package interfaces

import (
	"context"
	"errors"

	"github.com/seribro/escrow-service/internal/domain/entities"
)

// ErrTransitionConflict is returned by ApplyTransition when the conditional
// commit fails because the projection row no longer matches the expected state
// and version (another writer got there first).
var ErrTransitionConflict = errors.New("transition conflict")

// IPaymentRepository abstracts DynamoDB persistence for the payment ledger.
//
// Lookup methods follow the store convention of returning a zero-value entity
// and a nil error when nothing matches.
//
// Only the escrow state machine calls Create and ApplyTransition; every other
// component reads.

type IPaymentRepository interface {
	// Create persists a new payment row together with its seq-1 "created" log
	// entry as one transaction, conditioned on the id not existing.
	Create(ctx context.Context, p entities.Payment, entry entities.StateTransition) (entities.Payment, error)

	GetByID(ctx context.Context, id string) (entities.Payment, error)
	GetOpenByProjectID(ctx context.Context, projectID string) (entities.Payment, error)
	GetByGatewayOrderRef(ctx context.Context, orderRef string) (entities.Payment, error)
	FindByGatewayPaymentRef(ctx context.Context, paymentRef string) (entities.Payment, error)

	// ApplyTransition appends the log entry and updates the projection row in
	// one transaction, conditioned on the row still being at entry.FromState
	// with version entry.Seq-1. Returns ErrTransitionConflict when the
	// condition fails.
	ApplyTransition(ctx context.Context, p entities.Payment, entry entities.StateTransition) (entities.Payment, error)

	ListTransitions(ctx context.Context, paymentID string) ([]entities.StateTransition, error)
	ListByState(ctx context.Context, state entities.PaymentState) ([]entities.Payment, error)
	ListByCompanyID(ctx context.Context, companyID string) ([]entities.Payment, error)
	ListByStudentID(ctx context.Context, studentID string) ([]entities.Payment, error)
}
