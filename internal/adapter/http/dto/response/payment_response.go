package response

import (
	"time"

	"github.com/seribro/escrow-service/internal/domain/entities"
	"github.com/seribro/escrow-service/internal/usecase"
)

type PaymentResponse struct {
	ID                string     `json:"id"`
	ProjectID         string     `json:"project_id"`
	CompanyID         string     `json:"company_id"`
	StudentID         string     `json:"student_id"`
	Amount            int64      `json:"amount"`
	PlatformFee       int64      `json:"platform_fee"`
	NetAmount         int64      `json:"net_amount"`
	Currency          string     `json:"currency"`
	GatewayOrderRef   string     `json:"gateway_order_ref,omitempty"`
	GatewayPaymentRef string     `json:"gateway_payment_ref,omitempty"`
	GatewayStatus     string     `json:"gateway_status"`
	State             string     `json:"state"`
	ReleaseMethod     string     `json:"release_method,omitempty"`
	ReleasedBy        string     `json:"released_by,omitempty"`
	ReleasedAt        *time.Time `json:"released_at,omitempty"`
	RefundReason      string     `json:"refund_reason,omitempty"`
	RefundedBy        string     `json:"refunded_by,omitempty"`
	RefundedAt        *time.Time `json:"refunded_at,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

func FromPayment(p entities.Payment) PaymentResponse {
	return PaymentResponse{
		ID:                p.ID,
		ProjectID:         p.ProjectID,
		CompanyID:         p.CompanyID,
		StudentID:         p.StudentID,
		Amount:            p.Amount,
		PlatformFee:       p.PlatformFee,
		NetAmount:         p.NetAmount,
		Currency:          p.Currency,
		GatewayOrderRef:   p.GatewayOrderRef,
		GatewayPaymentRef: p.GatewayPaymentRef,
		GatewayStatus:     string(p.GatewayStatus),
		State:             string(p.State),
		ReleaseMethod:     string(p.ReleaseMethod),
		ReleasedBy:        p.ReleasedBy,
		ReleasedAt:        p.ReleasedAt,
		RefundReason:      p.RefundReason,
		RefundedBy:        p.RefundedBy,
		RefundedAt:        p.RefundedAt,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

// OrderResponse is what the checkout UI consumes to open the gateway widget.
// GatewayLinked=false tells the client the intent was recorded but the
// provider order is pending; the widget cannot open yet.
type OrderResponse struct {
	Payment         PaymentResponse `json:"payment"`
	GatewayOrderRef string          `json:"gateway_order_ref,omitempty"`
	GatewayKeyID    string          `json:"gateway_key_id,omitempty"`
	GatewayLinked   bool            `json:"gateway_linked"`
	Reused          bool            `json:"reused"`
}

func FromOrderResult(r usecase.OrderResult) OrderResponse {
	return OrderResponse{
		Payment:         FromPayment(r.Payment),
		GatewayOrderRef: r.Payment.GatewayOrderRef,
		GatewayKeyID:    r.GatewayKeyID,
		GatewayLinked:   r.GatewayLinked,
		Reused:          r.Reused,
	}
}

type PendingReleasesResponse struct {
	Payments []PaymentResponse `json:"payments"`
	Total    int               `json:"total"`
	Page     int               `json:"page"`
	Limit    int               `json:"limit"`
}

func FromPendingReleasePage(page usecase.PendingReleasePage) PendingReleasesResponse {
	payments := make([]PaymentResponse, 0, len(page.Payments))
	for _, p := range page.Payments {
		payments = append(payments, FromPayment(p))
	}
	return PendingReleasesResponse{
		Payments: payments,
		Total:    page.Total,
		Page:     page.Page,
		Limit:    page.Limit,
	}
}

type BulkReleaseResponse struct {
	Succeeded []string                     `json:"succeeded"`
	Failed    []usecase.BulkReleaseFailure `json:"failed"`
}

func FromBulkReleaseResult(r usecase.BulkReleaseResult) BulkReleaseResponse {
	return BulkReleaseResponse{Succeeded: r.Succeeded, Failed: r.Failed}
}

type CompanySummaryResponse struct {
	CompanyID         string    `json:"company_id"`
	TotalSpent        int64     `json:"total_spent"`
	ActiveProjects    int       `json:"active_projects"`
	CompletedProjects int       `json:"completed_projects"`
	RefundedTotal     int64     `json:"refunded_total"`
	GeneratedAt       time.Time `json:"generated_at"`
}

func FromCompanySummary(s entities.CompanySummary) CompanySummaryResponse {
	return CompanySummaryResponse{
		CompanyID:         s.CompanyID,
		TotalSpent:        s.TotalSpent,
		ActiveProjects:    s.ActiveProjects,
		CompletedProjects: s.CompletedProjects,
		RefundedTotal:     s.RefundedTotal,
		GeneratedAt:       s.GeneratedAt,
	}
}

type StudentEarningsResponse struct {
	StudentID       string            `json:"student_id"`
	TotalEarned     int64             `json:"total_earned"`
	PendingAmount   int64             `json:"pending_amount"`
	RecentPayments  []PaymentResponse `json:"recent_payments"`
	MonthlyEarnings map[string]int64  `json:"monthly_earnings"`
	GeneratedAt     time.Time         `json:"generated_at"`
}

func FromStudentEarnings(e entities.StudentEarnings) StudentEarningsResponse {
	recent := make([]PaymentResponse, 0, len(e.RecentPayments))
	for _, p := range e.RecentPayments {
		recent = append(recent, FromPayment(p))
	}
	return StudentEarningsResponse{
		StudentID:       e.StudentID,
		TotalEarned:     e.TotalEarned,
		PendingAmount:   e.PendingAmount,
		RecentPayments:  recent,
		MonthlyEarnings: e.MonthlyEarnings,
		GeneratedAt:     e.GeneratedAt,
	}
}
