package entities

import "time"

// CompanySummary is the company spend projection served by the query service.

type CompanySummary struct {
	CompanyID         string    `json:"company_id"`
	TotalSpent        int64     `json:"total_spent"`
	ActiveProjects    int       `json:"active_projects"`
	CompletedProjects int       `json:"completed_projects"`
	RefundedTotal     int64     `json:"refunded_total"`
	GeneratedAt       time.Time `json:"generated_at"`
}

// StudentEarnings is the student-side projection: released money is earned,
// captured money is pending until an administrator releases it.

type StudentEarnings struct {
	StudentID       string           `json:"student_id"`
	TotalEarned     int64            `json:"total_earned"`
	PendingAmount   int64            `json:"pending_amount"`
	RecentPayments  []Payment        `json:"recent_payments"`
	MonthlyEarnings map[string]int64 `json:"monthly_earnings"`
	GeneratedAt     time.Time        `json:"generated_at"`
}

// PaymentEvent is the state-change notification pushed to dashboards.
//
// Delivery is at-least-once and best-effort: receivers treat an event only as
// a cue to re-fetch authoritative state from the query service.

type PaymentEvent struct {
	Type       string    `json:"type"`
	PaymentID  string    `json:"payment_id"`
	ProjectID  string    `json:"project_id"`
	CompanyID  string    `json:"company_id"`
	StudentID  string    `json:"student_id,omitempty"`
	Amount     int64     `json:"amount"`
	OccurredAt time.Time `json:"occurred_at"`
}

const (
	EventTypeCaptured = "payment:captured"
	EventTypeReleased = "payment:released"
	EventTypeRefunded = "payment:refunded"
	EventTypeFailed   = "payment:failed"
)

// ProjectRef is the slice of project data the escrow core needs from the
// surrounding marketplace (an external collaborator reached over HTTP).

type ProjectRef struct {
	ID            string `json:"id"`
	CompanyID     string `json:"company_id"`
	StudentID     string `json:"student_id,omitempty"`
	BudgetAmount  int64  `json:"budget_amount"`
	Currency      string `json:"currency"`
	Status        string `json:"status"`
	PaymentLinked bool   `json:"payment_linked"`
}

const ProjectStatusAssigned = "assigned"

// Payable reports whether a payment order may be opened for the project.
func (p ProjectRef) Payable() bool {
	return p.Status == ProjectStatusAssigned && !p.PaymentLinked
}
