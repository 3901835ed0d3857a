package request

import "strings"

type CreateOrderRequest struct {
	ProjectID string `json:"project_id" binding:"required"`
}

// VerifyCaptureRequest is the client-side capture confirmation posted after
// checkout. The signature is the gateway HMAC over "orderRef|paymentRef".
type VerifyCaptureRequest struct {
	GatewayOrderRef   string `json:"gateway_order_ref" binding:"required"`
	GatewayPaymentRef string `json:"gateway_payment_ref" binding:"required"`
	GatewaySignature  string `json:"gateway_signature" binding:"required"`
	ProjectID         string `json:"project_id"`
}

type ReleaseRequest struct {
	Method string `json:"method"`
}

type RefundRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type BulkReleaseRequest struct {
	PaymentIDs []string `json:"payment_ids" binding:"required"`
	Method     string   `json:"method"`
}

func (r BulkReleaseRequest) CleanIDs() []string {
	out := make([]string, 0, len(r.PaymentIDs))
	for _, id := range r.PaymentIDs {
		if v := strings.TrimSpace(id); v != "" {
			out = append(out, v)
		}
	}
	return out
}
