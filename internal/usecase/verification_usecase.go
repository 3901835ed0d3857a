package usecase

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"strings"

	"github.com/seribro/escrow-service/internal/domain/entities"
	"github.com/seribro/escrow-service/internal/usecase/interfaces"

	"go.uber.org/zap"
)

var (
	ErrInvalidSignature      = errors.New("gateway signature verification failed")
	ErrInvalidCapturePayload = errors.New("invalid capture payload")
	ErrDuplicateCaptureRef   = errors.New("gateway payment reference already applied to another payment")
)

// CaptureConfirmation is the synchronous client callback after checkout.
// GatewaySignature is the provider HMAC over "orderRef|paymentRef".
type CaptureConfirmation struct {
	GatewayOrderRef   string
	GatewayPaymentRef string
	GatewaySignature  string
	ProjectID         string
}

// IVerificationUseCase validates inbound capture confirmations and hands
// verified ones to the escrow state machine. Nothing in a payload is trusted
// before its signature checks out.

type IVerificationUseCase interface {
	VerifyCapture(ctx context.Context, conf CaptureConfirmation) (entities.Payment, error)
	VerifyWebhook(ctx context.Context, rawBody []byte, signatureHeader string) (entities.Payment, error)
}

type VerificationUseCase struct {
	repo    interfaces.IPaymentRepository
	machine IEscrowStateMachine
	secret  []byte
	logger  *zap.Logger
}

var _ IVerificationUseCase = (*VerificationUseCase)(nil)

func NewVerificationUseCase(repo interfaces.IPaymentRepository, machine IEscrowStateMachine, secret []byte, logger *zap.Logger) *VerificationUseCase {
	return &VerificationUseCase{repo: repo, machine: machine, secret: secret, logger: logger}
}

func (u *VerificationUseCase) VerifyCapture(ctx context.Context, conf CaptureConfirmation) (entities.Payment, error) {
	orderRef := strings.TrimSpace(conf.GatewayOrderRef)
	paymentRef := strings.TrimSpace(conf.GatewayPaymentRef)
	signature := strings.TrimSpace(conf.GatewaySignature)
	if orderRef == "" || paymentRef == "" || signature == "" {
		return entities.Payment{}, ErrInvalidCapturePayload
	}

	if !u.signatureMatches(orderRef+"|"+paymentRef, signature) {
		u.logger.Warn("capture signature mismatch: possible forgery attempt",
			zap.String("gateway_order_ref", orderRef),
			zap.String("gateway_payment_ref", paymentRef))
		return entities.Payment{}, ErrInvalidSignature
	}

	return u.applyVerifiedCapture(ctx, orderRef, paymentRef, signature)
}

// VerifyWebhook handles the asynchronous gateway webhook: HMAC over the raw
// body, then parse, then the same capture path as the client callback.
func (u *VerificationUseCase) VerifyWebhook(ctx context.Context, rawBody []byte, signatureHeader string) (entities.Payment, error) {
	signature := strings.TrimSpace(signatureHeader)
	if len(rawBody) == 0 || signature == "" {
		return entities.Payment{}, ErrInvalidCapturePayload
	}

	if !u.signatureMatches(string(rawBody), signature) {
		u.logger.Warn("webhook signature mismatch: possible forgery attempt",
			zap.Int("body_len", len(rawBody)))
		return entities.Payment{}, ErrInvalidSignature
	}

	var event struct {
		Event             string `json:"event"`
		GatewayOrderRef   string `json:"gateway_order_ref"`
		GatewayPaymentRef string `json:"gateway_payment_ref"`
	}
	if err := json.Unmarshal(rawBody, &event); err != nil {
		return entities.Payment{}, ErrInvalidCapturePayload
	}
	orderRef := strings.TrimSpace(event.GatewayOrderRef)
	paymentRef := strings.TrimSpace(event.GatewayPaymentRef)
	if orderRef == "" || paymentRef == "" {
		return entities.Payment{}, ErrInvalidCapturePayload
	}

	return u.applyVerifiedCapture(ctx, orderRef, paymentRef, signature)
}

func (u *VerificationUseCase) signatureMatches(message, signature string) bool {
	mac := hmac.New(sha256.New, u.secret)
	mac.Write([]byte(message))
	expected := hex.EncodeToString(mac.Sum(nil))
	// hmac.Equal keeps the comparison constant-time.
	return hmac.Equal([]byte(expected), []byte(signature))
}

func (u *VerificationUseCase) applyVerifiedCapture(ctx context.Context, orderRef, paymentRef, signature string) (entities.Payment, error) {
	p, err := u.repo.GetByGatewayOrderRef(ctx, orderRef)
	if err != nil {
		return entities.Payment{}, err
	}
	if p.ID == "" {
		return entities.Payment{}, ErrPaymentNotFound
	}

	// Gateway retries of the same callback must not produce duplicate side
	// effects: an identical already-applied capture is reported as success.
	if p.State == entities.PaymentStateCaptured && p.GatewayPaymentRef == paymentRef {
		return p, nil
	}
	if p.State != entities.PaymentStateCreated {
		// Replay against an already-settled or failed payment.
		return entities.Payment{}, ErrPaymentNotFound
	}

	dup, err := u.repo.FindByGatewayPaymentRef(ctx, paymentRef)
	if err != nil {
		return entities.Payment{}, err
	}
	if dup.ID != "" && dup.ID != p.ID {
		u.logger.Warn("gateway payment reference already bound to a different payment",
			zap.String("gateway_payment_ref", paymentRef),
			zap.String("payment_id", p.ID),
			zap.String("existing_payment_id", dup.ID))
		return entities.Payment{}, ErrDuplicateCaptureRef
	}

	updated, err := u.machine.Transition(ctx, p.ID, entities.EventCapture, entities.SystemActor("verification-service"), map[string]string{
		MetaGatewayPaymentRef: paymentRef,
		MetaGatewaySignature:  signature,
	})
	if err != nil {
		if errors.Is(err, ErrIllegalTransition) {
			// Lost a race with a concurrent delivery of the same callback.
			fresh, ferr := u.repo.GetByID(ctx, p.ID)
			if ferr == nil && fresh.State == entities.PaymentStateCaptured && fresh.GatewayPaymentRef == paymentRef {
				return fresh, nil
			}
		}
		return entities.Payment{}, err
	}
	return updated, nil
}
