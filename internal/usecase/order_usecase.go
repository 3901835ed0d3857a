package usecase

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/seribro/escrow-service/internal/domain/entities"
	"github.com/seribro/escrow-service/internal/usecase/interfaces"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrInvalidProjectID    = errors.New("invalid project id")
	ErrProjectNotFound     = errors.New("project not found")
	ErrNotProjectOwner     = errors.New("requester does not own this project")
	ErrProjectNotPayable   = errors.New("project is not in a payable state")
	ErrUpstreamUnavailable = errors.New("upstream dependency unavailable")
)

const defaultPlatformFeePercent = 7

// IOrderUseCase creates payment intents against the external gateway.

type IOrderUseCase interface {
	CreateOrder(ctx context.Context, projectID string, actor entities.Actor) (OrderResult, error)
}

// OrderResult carries what the checkout UI needs. GatewayLinked is false when
// the provider was unreachable or unconfigured: the payment intent is still
// durably recorded (pending-gateway) so an administrator can complete the
// transfer manually.
type OrderResult struct {
	Payment       entities.Payment
	GatewayKeyID  string
	GatewayLinked bool
	Reused        bool
}

type OrderUseCase struct {
	repo      interfaces.IPaymentRepository
	machine   IEscrowStateMachine
	gateway   interfaces.IPaymentGateway
	directory interfaces.IProjectDirectory
	logger    *zap.Logger
}

var _ IOrderUseCase = (*OrderUseCase)(nil)

func NewOrderUseCase(repo interfaces.IPaymentRepository, machine IEscrowStateMachine, gateway interfaces.IPaymentGateway, directory interfaces.IProjectDirectory, logger *zap.Logger) *OrderUseCase {
	return &OrderUseCase{repo: repo, machine: machine, gateway: gateway, directory: directory, logger: logger}
}

func (u *OrderUseCase) CreateOrder(ctx context.Context, projectID string, actor entities.Actor) (OrderResult, error) {
	projectID = strings.TrimSpace(projectID)
	if projectID == "" {
		return OrderResult{}, ErrInvalidProjectID
	}
	if actor.Role != entities.RoleCompany {
		return OrderResult{}, ErrNotProjectOwner
	}

	proj, err := u.directory.GetProject(ctx, projectID)
	if err != nil {
		// Without the directory we cannot validate ownership, so the order is
		// refused rather than recorded blind.
		return OrderResult{}, fmt.Errorf("%w: project directory: %v", ErrUpstreamUnavailable, err)
	}
	if proj.ID == "" {
		return OrderResult{}, ErrProjectNotFound
	}
	if proj.CompanyID != actor.ID {
		return OrderResult{}, ErrNotProjectOwner
	}

	// Fast idempotency path: an open order for this project is returned as-is
	// before we touch the gateway. The state machine re-checks under the
	// project lock, so this read racing another create is harmless.
	open, err := u.repo.GetOpenByProjectID(ctx, projectID)
	if err != nil {
		return OrderResult{}, err
	}
	if open.ID != "" && open.State == entities.PaymentStateCreated {
		return u.resultFor(open, true), nil
	}

	if !proj.Payable() || proj.BudgetAmount <= 0 {
		return OrderResult{}, ErrProjectNotPayable
	}

	amount := proj.BudgetAmount
	fee := amount * platformFeePercent() / 100
	currency := proj.Currency
	if currency == "" {
		currency = "INR"
	}

	p := entities.Payment{
		ID:            uuid.NewString(),
		ProjectID:     proj.ID,
		CompanyID:     proj.CompanyID,
		StudentID:     proj.StudentID,
		Amount:        amount,
		PlatformFee:   fee,
		NetAmount:     amount - fee,
		Currency:      currency,
		GatewayStatus: entities.GatewayStatusPending,
	}

	// The gateway call happens before any lock is taken: a slow provider must
	// not stall transitions on other payments.
	if u.gateway != nil {
		orderRef, gerr := u.gateway.CreateOrder(ctx, amount, currency, proj.ID, map[string]interface{}{
			"project_id": proj.ID,
			"payment_id": p.ID,
		})
		if gerr != nil {
			u.logger.Warn("gateway order creation failed; recording payment as pending-gateway",
				zap.String("project_id", proj.ID),
				zap.Error(gerr))
		} else {
			p.GatewayOrderRef = orderRef
			p.GatewayStatus = entities.GatewayStatusLinked
		}
	} else {
		u.logger.Warn("payment gateway not configured; recording payment as pending-gateway",
			zap.String("project_id", proj.ID))
	}

	created, isNew, err := u.machine.CreatePayment(ctx, p, actor)
	if err != nil {
		return OrderResult{}, err
	}
	if !isNew {
		// A concurrent call won the project lock; its order is the one to use.
		return u.resultFor(created, true), nil
	}
	return u.resultFor(created, false), nil
}

func (u *OrderUseCase) resultFor(p entities.Payment, reused bool) OrderResult {
	keyID := ""
	if u.gateway != nil {
		keyID = u.gateway.KeyID()
	}
	return OrderResult{
		Payment:       p,
		GatewayKeyID:  keyID,
		GatewayLinked: p.GatewayStatus == entities.GatewayStatusLinked,
		Reused:        reused,
	}
}

func platformFeePercent() int64 {
	v := strings.TrimSpace(os.Getenv("PLATFORM_FEE_PERCENT"))
	if v == "" {
		return defaultPlatformFeePercent
	}
	pct, err := strconv.ParseInt(v, 10, 64)
	if err != nil || pct < 0 || pct > 100 {
		return defaultPlatformFeePercent
	}
	return pct
}
