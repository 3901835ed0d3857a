package entities

import "time"

// PaymentState is the escrow lifecycle state of a Payment.
//
// Legal transitions:
//
//	created  --capture--> captured
//	created  --timeout--> failed
//	captured --release--> released
//	captured --refund---> refunded
//
// released, refunded and failed are terminal.

type PaymentState string

const (
	PaymentStateCreated  PaymentState = "created"
	PaymentStateCaptured PaymentState = "captured"
	PaymentStateReleased PaymentState = "released"
	PaymentStateRefunded PaymentState = "refunded"
	PaymentStateFailed   PaymentState = "failed"
)

func (s PaymentState) Terminal() bool {
	switch s {
	case PaymentStateReleased, PaymentStateRefunded, PaymentStateFailed:
		return true
	}
	return false
}

// Open reports whether the payment still holds (or may come to hold) funds in
// escrow. A project may have at most one open payment at a time.
func (s PaymentState) Open() bool {
	return s == PaymentStateCreated || s == PaymentStateCaptured
}

// TransitionEvent names an edge of the escrow state machine.

type TransitionEvent string

const (
	EventCapture TransitionEvent = "capture"
	EventTimeout TransitionEvent = "timeout"
	EventRelease TransitionEvent = "release"
	EventRefund  TransitionEvent = "refund"
)

var edges = map[PaymentState]map[TransitionEvent]PaymentState{
	PaymentStateCreated: {
		EventCapture: PaymentStateCaptured,
		EventTimeout: PaymentStateFailed,
	},
	PaymentStateCaptured: {
		EventRelease: PaymentStateReleased,
		EventRefund:  PaymentStateRefunded,
	},
}

// Next returns the target state for event from state s, or false when the edge
// does not exist (including every edge out of a terminal state).
func (s PaymentState) Next(event TransitionEvent) (PaymentState, bool) {
	to, ok := edges[s][event]
	return to, ok
}

// GatewayStatus records whether the external gateway issued an order reference
// for this payment. Orders created while the gateway was unreachable or
// unconfigured are kept as pending-gateway so an administrator can complete the
// transfer manually; the payment intent is never dropped.

type GatewayStatus string

const (
	GatewayStatusLinked  GatewayStatus = "linked"
	GatewayStatusPending GatewayStatus = "pending-gateway"
)

type ReleaseMethod string

const (
	ReleaseMethodPayout ReleaseMethod = "razorpay_payout"
	ReleaseMethodManual ReleaseMethod = "manual_transfer"
)

func (m ReleaseMethod) Valid() bool {
	return m == ReleaseMethodPayout || m == ReleaseMethodManual
}

// Payment is the escrow ledger row persisted by the service.
//
// Storage model (DynamoDB, table "payments"):
//   - PK: id
//   - GSIs: project_id-index, gateway_order_ref-index, gateway_payment_ref-index,
//     state-index, company_id-index, student_id-index
//
// Monetary representation: amounts are integer minor units (paise for INR),
// matching what the gateway itself accepts. Amount, PlatformFee and NetAmount
// are fixed at order creation and never mutated by capture, release or refund.
//
// Version counts committed transitions and is the optimistic-concurrency token
// for the projection row; the transition log entry for version N has seq N.

type Payment struct {
	ID        string `json:"id"`
	ProjectID string `json:"project_id"`
	CompanyID string `json:"company_id"`
	StudentID string `json:"student_id,omitempty"`

	Amount      int64  `json:"amount"`
	PlatformFee int64  `json:"platform_fee"`
	NetAmount   int64  `json:"net_amount"`
	Currency    string `json:"currency"`

	GatewayOrderRef   string        `json:"gateway_order_ref,omitempty"`
	GatewayPaymentRef string        `json:"gateway_payment_ref,omitempty"`
	GatewaySignature  string        `json:"gateway_signature,omitempty"`
	GatewayStatus     GatewayStatus `json:"gateway_status"`

	State   PaymentState `json:"state"`
	Version int          `json:"version"`

	ReleaseMethod ReleaseMethod `json:"release_method,omitempty"`
	ReleasedBy    string        `json:"released_by,omitempty"`
	ReleasedAt    *time.Time    `json:"released_at,omitempty"`

	RefundReason string     `json:"refund_reason,omitempty"`
	RefundedBy   string     `json:"refunded_by,omitempty"`
	RefundedAt   *time.Time `json:"refunded_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
