package usecase

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/seribro/escrow-service/internal/domain/entities"
	"github.com/seribro/escrow-service/internal/usecase/interfaces"

	"go.uber.org/zap"
)

var ErrAccessDenied = errors.New("access denied for this payment")

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
	recentPaymentCap = 10
)

// PendingReleaseQuery filters the captured payments awaiting release.
type PendingReleaseQuery struct {
	Page   int
	Limit  int
	From   *time.Time
	To     *time.Time
	Search string
	SortBy string // created_at (default) or amount
}

type PendingReleasePage struct {
	Payments []entities.Payment `json:"payments"`
	Total    int                `json:"total"`
	Page     int                `json:"page"`
	Limit    int                `json:"limit"`
}

// IQueryUseCase serves the read-only reporting views. None of these
// operations mutate payments or the transition log.

type IQueryUseCase interface {
	PendingReleases(ctx context.Context, q PendingReleaseQuery) (PendingReleasePage, error)
	CompanySummary(ctx context.Context, companyID string) (entities.CompanySummary, error)
	StudentEarnings(ctx context.Context, studentID string) (entities.StudentEarnings, error)
	GetPayment(ctx context.Context, paymentID string, actor entities.Actor) (entities.Payment, error)
}

type QueryUseCase struct {
	repo   interfaces.IPaymentRepository
	cache  interfaces.ISummaryCache
	logger *zap.Logger
}

var _ IQueryUseCase = (*QueryUseCase)(nil)

func NewQueryUseCase(repo interfaces.IPaymentRepository, cache interfaces.ISummaryCache, logger *zap.Logger) *QueryUseCase {
	return &QueryUseCase{repo: repo, cache: cache, logger: logger}
}

func (u *QueryUseCase) PendingReleases(ctx context.Context, q PendingReleaseQuery) (PendingReleasePage, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = defaultPageLimit
	}
	if q.Limit > maxPageLimit {
		q.Limit = maxPageLimit
	}

	captured, err := u.repo.ListByState(ctx, entities.PaymentStateCaptured)
	if err != nil {
		return PendingReleasePage{}, err
	}

	filtered := make([]entities.Payment, 0, len(captured))
	search := strings.ToLower(strings.TrimSpace(q.Search))
	for _, p := range captured {
		if q.From != nil && p.CreatedAt.Before(*q.From) {
			continue
		}
		if q.To != nil && p.CreatedAt.After(*q.To) {
			continue
		}
		if search != "" && !matchesSearch(p, search) {
			continue
		}
		filtered = append(filtered, p)
	}

	switch q.SortBy {
	case "amount":
		sort.Slice(filtered, func(i, j int) bool { return filtered[i].Amount > filtered[j].Amount })
	default:
		// Oldest first: the longest-waiting releases surface at the top.
		sort.Slice(filtered, func(i, j int) bool { return filtered[i].CreatedAt.Before(filtered[j].CreatedAt) })
	}

	total := len(filtered)
	start := (q.Page - 1) * q.Limit
	if start > total {
		start = total
	}
	end := start + q.Limit
	if end > total {
		end = total
	}

	return PendingReleasePage{
		Payments: filtered[start:end],
		Total:    total,
		Page:     q.Page,
		Limit:    q.Limit,
	}, nil
}

func matchesSearch(p entities.Payment, search string) bool {
	for _, field := range []string{p.ID, p.ProjectID, p.CompanyID, p.StudentID, p.GatewayOrderRef} {
		if strings.Contains(strings.ToLower(field), search) {
			return true
		}
	}
	return false
}

func (u *QueryUseCase) CompanySummary(ctx context.Context, companyID string) (entities.CompanySummary, error) {
	companyID = strings.TrimSpace(companyID)
	if companyID == "" {
		return entities.CompanySummary{}, ErrPaymentNotFound
	}

	if u.cache != nil {
		if cached, ok := u.cache.GetCompanySummary(ctx, companyID); ok {
			return cached, nil
		}
	}

	payments, err := u.repo.ListByCompanyID(ctx, companyID)
	if err != nil {
		return entities.CompanySummary{}, err
	}

	summary := entities.CompanySummary{CompanyID: companyID, GeneratedAt: time.Now().UTC()}
	for _, p := range payments {
		switch p.State {
		case entities.PaymentStateCreated:
			summary.ActiveProjects++
		case entities.PaymentStateCaptured:
			summary.ActiveProjects++
			summary.TotalSpent += p.Amount
		case entities.PaymentStateReleased:
			summary.CompletedProjects++
			summary.TotalSpent += p.Amount
		case entities.PaymentStateRefunded:
			summary.RefundedTotal += p.Amount
		}
	}

	if u.cache != nil {
		u.cache.SetCompanySummary(ctx, summary)
	}
	return summary, nil
}

func (u *QueryUseCase) StudentEarnings(ctx context.Context, studentID string) (entities.StudentEarnings, error) {
	studentID = strings.TrimSpace(studentID)
	if studentID == "" {
		return entities.StudentEarnings{}, ErrPaymentNotFound
	}

	if u.cache != nil {
		if cached, ok := u.cache.GetStudentEarnings(ctx, studentID); ok {
			return cached, nil
		}
	}

	payments, err := u.repo.ListByStudentID(ctx, studentID)
	if err != nil {
		return entities.StudentEarnings{}, err
	}

	earnings := entities.StudentEarnings{
		StudentID:       studentID,
		MonthlyEarnings: map[string]int64{},
		GeneratedAt:     time.Now().UTC(),
	}
	for _, p := range payments {
		switch p.State {
		case entities.PaymentStateCaptured:
			earnings.PendingAmount += p.NetAmount
		case entities.PaymentStateReleased:
			earnings.TotalEarned += p.NetAmount
			if p.ReleasedAt != nil {
				earnings.MonthlyEarnings[p.ReleasedAt.UTC().Format("2006-01")] += p.NetAmount
			}
		}
	}

	sort.Slice(payments, func(i, j int) bool { return payments[i].CreatedAt.After(payments[j].CreatedAt) })
	if len(payments) > recentPaymentCap {
		payments = payments[:recentPaymentCap]
	}
	earnings.RecentPayments = payments

	if u.cache != nil {
		u.cache.SetStudentEarnings(ctx, earnings)
	}
	return earnings, nil
}

// GetPayment enforces party scope: companies and students only see their own
// payments, administrators see everything.
func (u *QueryUseCase) GetPayment(ctx context.Context, paymentID string, actor entities.Actor) (entities.Payment, error) {
	paymentID = strings.TrimSpace(paymentID)
	if paymentID == "" {
		return entities.Payment{}, ErrPaymentNotFound
	}

	p, err := u.repo.GetByID(ctx, paymentID)
	if err != nil {
		return entities.Payment{}, err
	}
	if p.ID == "" {
		return entities.Payment{}, ErrPaymentNotFound
	}

	switch actor.Role {
	case entities.RoleAdmin, entities.RoleSystem:
	case entities.RoleCompany:
		if p.CompanyID != actor.ID {
			return entities.Payment{}, ErrAccessDenied
		}
	case entities.RoleStudent:
		if p.StudentID != actor.ID {
			return entities.Payment{}, ErrAccessDenied
		}
	default:
		return entities.Payment{}, ErrAccessDenied
	}
	return p, nil
}
