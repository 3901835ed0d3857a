package interfaces

import "context"

// IPaymentGateway abstracts the external payment provider (Razorpay).
//
// The escrow core only needs order creation; capture arrives through signed
// callbacks and is verified locally, and release/refund payouts are settled
// operationally outside this module.
type IPaymentGateway interface {
	// CreateOrder registers an order with the provider and returns its opaque
	// order reference. Amount is in minor currency units (paise).
	CreateOrder(ctx context.Context, amount int64, currency, receipt string, notes map[string]interface{}) (orderRef string, err error)

	// KeyID returns the public key identifier the UI needs to open the
	// provider checkout for this order.
	KeyID() string
}
