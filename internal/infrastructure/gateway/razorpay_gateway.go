package gateway

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/seribro/escrow-service/internal/usecase/interfaces"

	razorpay "github.com/razorpay/razorpay-go"
	"go.uber.org/zap"
)

var ErrMissingRazorpayCredentials = errors.New("missing RAZORPAY_KEY_ID or RAZORPAY_KEY_SECRET")

// RazorpayGateway creates provider orders for escrow payments.
//
// Mock mode (PAYMENT_GATEWAY_MOCK) fabricates order references locally so the
// full flow can run against DynamoDB local without provider credentials.

type RazorpayGateway struct {
	client   *razorpay.Client
	keyID    string
	mockMode bool
	logger   *zap.Logger
}

var _ interfaces.IPaymentGateway = (*RazorpayGateway)(nil)

func NewRazorpayGateway(keyID, keySecret string, logger *zap.Logger) (*RazorpayGateway, error) {
	if isGatewayMockEnabled() {
		logger.Info("payment gateway mock mode enabled")
		return &RazorpayGateway{keyID: "rzp_test_mock", mockMode: true, logger: logger}, nil
	}

	if keyID == "" || keySecret == "" {
		return nil, ErrMissingRazorpayCredentials
	}

	return &RazorpayGateway{
		client: razorpay.NewClient(keyID, keySecret),
		keyID:  keyID,
		logger: logger,
	}, nil
}

func (g *RazorpayGateway) CreateOrder(ctx context.Context, amount int64, currency, receipt string, notes map[string]interface{}) (string, error) {
	if g.mockMode {
		ref := "order_mock_" + strconv.FormatInt(time.Now().UTC().UnixNano(), 10)
		g.logger.Info("mock gateway order created",
			zap.String("order_ref", ref),
			zap.Int64("amount", amount))
		return ref, nil
	}

	data := map[string]interface{}{
		"amount":   amount,
		"currency": currency,
		"receipt":  receipt,
		"notes":    notes,
	}

	order, err := g.client.Order.Create(data, nil)
	if err != nil {
		return "", fmt.Errorf("razorpay order create: %w", err)
	}

	id, ok := order["id"].(string)
	if !ok || id == "" {
		return "", fmt.Errorf("razorpay order create: response has no order id")
	}

	g.logger.Info("gateway order created",
		zap.String("order_ref", id),
		zap.Int64("amount", amount),
		zap.String("currency", currency))
	return id, nil
}

// KeyID is the public key the checkout widget needs.
func (g *RazorpayGateway) KeyID() string {
	return g.keyID
}

func isGatewayMockEnabled() bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv("PAYMENT_GATEWAY_MOCK")))
	switch v {
	case "1", "true", "yes", "on", "mock":
		return true
	}
	return false
}
