package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/seribro/escrow-service/internal/domain/entities"
	"github.com/seribro/escrow-service/internal/usecase/interfaces"
	"github.com/seribro/escrow-service/pkg/keylock"

	"go.uber.org/zap"
)

var (
	ErrPaymentNotFound    = errors.New("payment not found")
	ErrIllegalTransition  = errors.New("illegal state transition")
	ErrOpenEscrowExists   = errors.New("project already has an open escrow payment")
	ErrActorNotAuthorized = errors.New("actor not authorized for this transition")
)

// Metadata keys recorded on transition log entries.
const (
	MetaGatewayPaymentRef = "gateway_payment_ref"
	MetaGatewaySignature  = "gateway_signature"
	MetaReleaseMethod     = "release_method"
	MetaRefundReason      = "refund_reason"
	MetaReason            = "reason"
)

// IEscrowStateMachine is the single writer of the payment ledger. Every other
// component requests transitions through it; none mutate ledger rows directly.

type IEscrowStateMachine interface {
	// CreatePayment opens an escrow for p.ProjectID. The bool reports whether a
	// new payment was created; when an open payment in created state already
	// exists it is returned unchanged with false (idempotent createOrder).
	CreatePayment(ctx context.Context, p entities.Payment, actor entities.Actor) (entities.Payment, bool, error)

	Transition(ctx context.Context, paymentID string, event entities.TransitionEvent, actor entities.Actor, metadata map[string]string) (entities.Payment, error)

	// Replay recomputes the state from the transition log, flagging any
	// divergence from the cached projection.
	Replay(ctx context.Context, paymentID string) (entities.PaymentState, error)
}

type EscrowStateMachine struct {
	repo     interfaces.IPaymentRepository
	notifier interfaces.IEventNotifier
	cache    interfaces.ISummaryCache
	logger   *zap.Logger

	paymentLocks *keylock.KeyedMutex
	projectLocks *keylock.KeyedMutex
}

var _ IEscrowStateMachine = (*EscrowStateMachine)(nil)

func NewEscrowStateMachine(repo interfaces.IPaymentRepository, notifier interfaces.IEventNotifier, cache interfaces.ISummaryCache, logger *zap.Logger) *EscrowStateMachine {
	return &EscrowStateMachine{
		repo:         repo,
		notifier:     notifier,
		cache:        cache,
		logger:       logger,
		paymentLocks: keylock.New(),
		projectLocks: keylock.New(),
	}
}

// CreatePayment serializes on the project id so two concurrent createOrder
// calls cannot open two escrows for the same project.
func (m *EscrowStateMachine) CreatePayment(ctx context.Context, p entities.Payment, actor entities.Actor) (entities.Payment, bool, error) {
	if p.ProjectID == "" {
		return entities.Payment{}, false, fmt.Errorf("payment has no project id")
	}

	m.projectLocks.Lock(p.ProjectID)
	defer m.projectLocks.Unlock(p.ProjectID)

	open, err := m.repo.GetOpenByProjectID(ctx, p.ProjectID)
	if err != nil {
		return entities.Payment{}, false, err
	}
	if open.ID != "" {
		if open.State == entities.PaymentStateCreated {
			m.logger.Info("createOrder absorbed as idempotent duplicate",
				zap.String("payment_id", open.ID),
				zap.String("project_id", p.ProjectID))
			return open, false, nil
		}
		return entities.Payment{}, false, fmt.Errorf("%w: payment %s is %s", ErrOpenEscrowExists, open.ID, open.State)
	}

	now := time.Now().UTC()
	p.State = entities.PaymentStateCreated
	p.Version = 1
	p.CreatedAt = now
	p.UpdatedAt = now

	entry := entities.StateTransition{
		PaymentID: p.ID,
		Seq:       1,
		ToState:   entities.PaymentStateCreated,
		ActorID:   actor.ID,
		ActorRole: actor.Role,
		Timestamp: now,
		Metadata:  map[string]string{"project_id": p.ProjectID},
	}

	created, err := m.repo.Create(ctx, p, entry)
	if err != nil {
		return entities.Payment{}, false, err
	}
	m.logger.Info("escrow payment created",
		zap.String("payment_id", created.ID),
		zap.String("project_id", created.ProjectID),
		zap.Int64("amount", created.Amount))
	return created, true, nil
}

// Transition is the read-validate-append-commit sequence of the state machine,
// serialized per payment id. The gateway is never called while the lock is
// held, and event publication happens after the lock is released.
func (m *EscrowStateMachine) Transition(ctx context.Context, paymentID string, event entities.TransitionEvent, actor entities.Actor, metadata map[string]string) (entities.Payment, error) {
	if err := authorizeEdge(event, actor); err != nil {
		m.logger.Warn("transition refused: actor not authorized",
			zap.String("payment_id", paymentID),
			zap.String("event", string(event)),
			zap.String("actor_id", actor.ID),
			zap.String("actor_role", string(actor.Role)))
		return entities.Payment{}, err
	}

	updated, err := m.commit(ctx, paymentID, event, actor, metadata)
	if err != nil {
		return entities.Payment{}, err
	}

	m.publish(ctx, updated, event)
	if m.cache != nil {
		m.cache.Invalidate(ctx, updated.CompanyID, updated.StudentID)
	}
	return updated, nil
}

func (m *EscrowStateMachine) commit(ctx context.Context, paymentID string, event entities.TransitionEvent, actor entities.Actor, metadata map[string]string) (entities.Payment, error) {
	m.paymentLocks.Lock(paymentID)
	defer m.paymentLocks.Unlock(paymentID)

	p, err := m.repo.GetByID(ctx, paymentID)
	if err != nil {
		return entities.Payment{}, err
	}
	if p.ID == "" {
		return entities.Payment{}, ErrPaymentNotFound
	}

	next, ok := p.State.Next(event)
	if !ok {
		return entities.Payment{}, fmt.Errorf("%w: cannot %s a payment in state %s", ErrIllegalTransition, event, p.State)
	}

	now := time.Now().UTC()
	from := p.State
	p.State = next
	p.Version++
	p.UpdatedAt = now

	switch event {
	case entities.EventCapture:
		p.GatewayPaymentRef = metadata[MetaGatewayPaymentRef]
		p.GatewaySignature = metadata[MetaGatewaySignature]
	case entities.EventRelease:
		p.ReleaseMethod = entities.ReleaseMethod(metadata[MetaReleaseMethod])
		p.ReleasedBy = actor.ID
		p.ReleasedAt = &now
	case entities.EventRefund:
		p.RefundReason = metadata[MetaRefundReason]
		p.RefundedBy = actor.ID
		p.RefundedAt = &now
	}

	entry := entities.StateTransition{
		PaymentID: p.ID,
		Seq:       p.Version,
		FromState: from,
		ToState:   next,
		Event:     event,
		ActorID:   actor.ID,
		ActorRole: actor.Role,
		Timestamp: now,
		Metadata:  metadata,
	}

	updated, err := m.repo.ApplyTransition(ctx, p, entry)
	if err != nil {
		if errors.Is(err, interfaces.ErrTransitionConflict) {
			// Another process committed between our read and write. Surface it
			// as an illegal transition against the fresh state.
			fresh, ferr := m.repo.GetByID(ctx, paymentID)
			if ferr == nil && fresh.ID != "" {
				return entities.Payment{}, fmt.Errorf("%w: cannot %s a payment in state %s", ErrIllegalTransition, event, fresh.State)
			}
		}
		return entities.Payment{}, err
	}

	m.logger.Info("escrow transition committed",
		zap.String("payment_id", updated.ID),
		zap.String("from", string(from)),
		zap.String("to", string(next)),
		zap.String("event", string(event)),
		zap.String("actor_id", actor.ID))
	return updated, nil
}

func (m *EscrowStateMachine) publish(ctx context.Context, p entities.Payment, event entities.TransitionEvent) {
	if m.notifier == nil {
		return
	}

	eventType := ""
	switch event {
	case entities.EventCapture:
		eventType = entities.EventTypeCaptured
	case entities.EventRelease:
		eventType = entities.EventTypeReleased
	case entities.EventRefund:
		eventType = entities.EventTypeRefunded
	case entities.EventTimeout:
		eventType = entities.EventTypeFailed
	default:
		return
	}

	m.notifier.Publish(ctx, entities.PaymentEvent{
		Type:       eventType,
		PaymentID:  p.ID,
		ProjectID:  p.ProjectID,
		CompanyID:  p.CompanyID,
		StudentID:  p.StudentID,
		Amount:     p.Amount,
		OccurredAt: p.UpdatedAt,
	})
}

func (m *EscrowStateMachine) Replay(ctx context.Context, paymentID string) (entities.PaymentState, error) {
	log, err := m.repo.ListTransitions(ctx, paymentID)
	if err != nil {
		return "", err
	}
	if len(log) == 0 {
		return "", ErrPaymentNotFound
	}

	replayed, err := entities.ReplayState(log)
	if err != nil {
		return "", err
	}

	p, err := m.repo.GetByID(ctx, paymentID)
	if err == nil && p.ID != "" && p.State != replayed {
		m.logger.Error("projection diverged from transition log",
			zap.String("payment_id", paymentID),
			zap.String("projection", string(p.State)),
			zap.String("replayed", string(replayed)))
	}
	return replayed, nil
}

// authorizeEdge re-validates actor permissions per edge even when upstream
// callers already checked, so a single validation bug elsewhere cannot corrupt
// the ledger. Capture and timeout are system-only: clients can never assert a
// capture directly.
func authorizeEdge(event entities.TransitionEvent, actor entities.Actor) error {
	switch event {
	case entities.EventCapture, entities.EventTimeout:
		if actor.Role != entities.RoleSystem {
			return fmt.Errorf("%w: %s requires the system role", ErrActorNotAuthorized, event)
		}
	case entities.EventRelease, entities.EventRefund:
		if actor.Role != entities.RoleAdmin && actor.Role != entities.RoleSystem {
			return fmt.Errorf("%w: %s requires an administrator", ErrActorNotAuthorized, event)
		}
	default:
		return fmt.Errorf("%w: unknown event %s", ErrIllegalTransition, event)
	}
	return nil
}
