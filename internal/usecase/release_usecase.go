package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/seribro/escrow-service/internal/domain/entities"

	"go.uber.org/zap"
)

var (
	ErrInvalidReleaseMethod = errors.New("invalid release method")
	ErrRefundReasonRequired = errors.New("refund reason of at least 5 characters is required")
)

// IReleaseUseCase moves captured escrow money out: to the student (release) or
// back to the company (refund). Refund after release is rejected by the state
// machine; clawing back released funds is an out-of-band dispute process.

type IReleaseUseCase interface {
	Release(ctx context.Context, paymentID string, actor entities.Actor, method entities.ReleaseMethod) (entities.Payment, error)
	Refund(ctx context.Context, paymentID string, actor entities.Actor, reason string) (entities.Payment, error)
	BulkRelease(ctx context.Context, paymentIDs []string, actor entities.Actor, method entities.ReleaseMethod) BulkReleaseResult
}

type BulkReleaseFailure struct {
	PaymentID string `json:"payment_id"`
	Code      string `json:"code"`
	Message   string `json:"message"`
}

// BulkReleaseResult enumerates per-id outcomes. Administrators batch-release
// many payments at once and must not lose visibility into partial failure.
type BulkReleaseResult struct {
	Succeeded []string             `json:"succeeded"`
	Failed    []BulkReleaseFailure `json:"failed"`
}

type ReleaseUseCase struct {
	machine IEscrowStateMachine
	logger  *zap.Logger
}

var _ IReleaseUseCase = (*ReleaseUseCase)(nil)

func NewReleaseUseCase(machine IEscrowStateMachine, logger *zap.Logger) *ReleaseUseCase {
	return &ReleaseUseCase{machine: machine, logger: logger}
}

func (u *ReleaseUseCase) Release(ctx context.Context, paymentID string, actor entities.Actor, method entities.ReleaseMethod) (entities.Payment, error) {
	paymentID = strings.TrimSpace(paymentID)
	if paymentID == "" {
		return entities.Payment{}, ErrPaymentNotFound
	}
	if method == "" {
		method = entities.ReleaseMethodManual
	}
	if !method.Valid() {
		return entities.Payment{}, ErrInvalidReleaseMethod
	}

	return u.machine.Transition(ctx, paymentID, entities.EventRelease, actor, map[string]string{
		MetaReleaseMethod: string(method),
	})
}

func (u *ReleaseUseCase) Refund(ctx context.Context, paymentID string, actor entities.Actor, reason string) (entities.Payment, error) {
	paymentID = strings.TrimSpace(paymentID)
	if paymentID == "" {
		return entities.Payment{}, ErrPaymentNotFound
	}
	reason = strings.TrimSpace(reason)
	if len(reason) < 5 {
		return entities.Payment{}, ErrRefundReasonRequired
	}

	return u.machine.Transition(ctx, paymentID, entities.EventRefund, actor, map[string]string{
		MetaRefundReason: reason,
	})
}

// BulkRelease processes each id independently: one payment's rejection does
// not abort the batch.
func (u *ReleaseUseCase) BulkRelease(ctx context.Context, paymentIDs []string, actor entities.Actor, method entities.ReleaseMethod) BulkReleaseResult {
	result := BulkReleaseResult{
		Succeeded: []string{},
		Failed:    []BulkReleaseFailure{},
	}

	for _, id := range paymentIDs {
		if _, err := u.Release(ctx, id, actor, method); err != nil {
			result.Failed = append(result.Failed, BulkReleaseFailure{
				PaymentID: id,
				Code:      bulkFailureCode(err),
				Message:   err.Error(),
			})
			continue
		}
		result.Succeeded = append(result.Succeeded, id)
	}

	u.logger.Info("bulk release finished",
		zap.String("actor_id", actor.ID),
		zap.Int("succeeded", len(result.Succeeded)),
		zap.Int("failed", len(result.Failed)))
	return result
}

func bulkFailureCode(err error) string {
	switch {
	case errors.Is(err, ErrIllegalTransition), errors.Is(err, ErrOpenEscrowExists):
		return "CONFLICT"
	case errors.Is(err, ErrPaymentNotFound):
		return "NOT_FOUND"
	case errors.Is(err, ErrActorNotAuthorized):
		return "AUTHORIZATION_ERROR"
	case errors.Is(err, ErrInvalidReleaseMethod):
		return "VALIDATION_ERROR"
	default:
		return "INTERNAL_ERROR"
	}
}
