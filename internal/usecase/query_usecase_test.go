package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/seribro/escrow-service/internal/domain/entities"
	mock_interfaces "github.com/seribro/escrow-service/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func pendingFixtures() []entities.Payment {
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	out := make([]entities.Payment, 0, 5)
	for i, amount := range []int64{100, 500, 300, 200, 400} {
		out = append(out, entities.Payment{
			ID:        "pay-" + string(rune('a'+i)),
			ProjectID: "proj-" + string(rune('a'+i)),
			CompanyID: "comp-1",
			StudentID: "stud-1",
			Amount:    amount,
			State:     entities.PaymentStateCaptured,
			CreatedAt: base.AddDate(0, 0, i),
		})
	}
	return out
}

func TestQueryUseCase_PendingReleases(t *testing.T) {
	t.Run("default sort is oldest first with pagination", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		uc := NewQueryUseCase(repo, nil, zap.NewNop())

		repo.EXPECT().ListByState(gomock.Any(), entities.PaymentStateCaptured).Return(pendingFixtures(), nil)

		page, err := uc.PendingReleases(context.Background(), PendingReleaseQuery{Page: 1, Limit: 2})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if page.Total != 5 || len(page.Payments) != 2 {
			t.Fatalf("unexpected page: total=%d len=%d", page.Total, len(page.Payments))
		}
		if page.Payments[0].ID != "pay-a" || page.Payments[1].ID != "pay-b" {
			t.Fatalf("unexpected order: %s, %s", page.Payments[0].ID, page.Payments[1].ID)
		}
	})

	t.Run("amount sort is largest first", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		uc := NewQueryUseCase(repo, nil, zap.NewNop())

		repo.EXPECT().ListByState(gomock.Any(), entities.PaymentStateCaptured).Return(pendingFixtures(), nil)

		page, err := uc.PendingReleases(context.Background(), PendingReleaseQuery{SortBy: "amount"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if page.Payments[0].Amount != 500 || page.Payments[1].Amount != 400 {
			t.Fatalf("unexpected amounts: %d, %d", page.Payments[0].Amount, page.Payments[1].Amount)
		}
	})

	t.Run("date window filter", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		uc := NewQueryUseCase(repo, nil, zap.NewNop())

		repo.EXPECT().ListByState(gomock.Any(), entities.PaymentStateCaptured).Return(pendingFixtures(), nil)

		from := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
		to := time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)
		page, err := uc.PendingReleases(context.Background(), PendingReleaseQuery{From: &from, To: &to})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if page.Total != 3 {
			t.Fatalf("expected 3 payments in window, got %d", page.Total)
		}
	})

	t.Run("search matches the project id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		uc := NewQueryUseCase(repo, nil, zap.NewNop())

		repo.EXPECT().ListByState(gomock.Any(), entities.PaymentStateCaptured).Return(pendingFixtures(), nil)

		page, err := uc.PendingReleases(context.Background(), PendingReleaseQuery{Search: "PROJ-C"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if page.Total != 1 || page.Payments[0].ProjectID != "proj-c" {
			t.Fatalf("unexpected search result: %+v", page.Payments)
		}
	})

	t.Run("page past the end is empty not an error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		uc := NewQueryUseCase(repo, nil, zap.NewNop())

		repo.EXPECT().ListByState(gomock.Any(), entities.PaymentStateCaptured).Return(pendingFixtures(), nil)

		page, err := uc.PendingReleases(context.Background(), PendingReleaseQuery{Page: 9, Limit: 10})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(page.Payments) != 0 || page.Total != 5 {
			t.Fatalf("unexpected page: %+v", page)
		}
	})
}

func TestQueryUseCase_CompanySummary(t *testing.T) {
	t.Run("aggregates per state and writes the cache", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		cache := mock_interfaces.NewMockISummaryCache(ctrl)
		uc := NewQueryUseCase(repo, cache, zap.NewNop())

		payments := []entities.Payment{
			{State: entities.PaymentStateCreated, Amount: 100},
			{State: entities.PaymentStateCaptured, Amount: 200},
			{State: entities.PaymentStateReleased, Amount: 300},
			{State: entities.PaymentStateRefunded, Amount: 400},
			{State: entities.PaymentStateFailed, Amount: 500},
		}
		cache.EXPECT().GetCompanySummary(gomock.Any(), "comp-1").Return(entities.CompanySummary{}, false)
		repo.EXPECT().ListByCompanyID(gomock.Any(), "comp-1").Return(payments, nil)
		cache.EXPECT().SetCompanySummary(gomock.Any(), gomock.Any())

		summary, err := uc.CompanySummary(context.Background(), "comp-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if summary.TotalSpent != 500 {
			t.Fatalf("expected total spent 500, got %d", summary.TotalSpent)
		}
		if summary.ActiveProjects != 2 || summary.CompletedProjects != 1 {
			t.Fatalf("unexpected project counts: %+v", summary)
		}
		if summary.RefundedTotal != 400 {
			t.Fatalf("expected refunded total 400, got %d", summary.RefundedTotal)
		}
	})

	t.Run("cache hit skips the store", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		cache := mock_interfaces.NewMockISummaryCache(ctrl)
		uc := NewQueryUseCase(repo, cache, zap.NewNop())

		cached := entities.CompanySummary{CompanyID: "comp-1", TotalSpent: 999}
		cache.EXPECT().GetCompanySummary(gomock.Any(), "comp-1").Return(cached, true)

		summary, err := uc.CompanySummary(context.Background(), "comp-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if summary.TotalSpent != 999 {
			t.Fatalf("expected the cached summary, got %+v", summary)
		}
	})
}

func TestQueryUseCase_StudentEarnings(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
	uc := NewQueryUseCase(repo, nil, zap.NewNop())

	jan := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)
	payments := []entities.Payment{
		{State: entities.PaymentStateReleased, NetAmount: 930, ReleasedAt: &jan},
		{State: entities.PaymentStateReleased, NetAmount: 465, ReleasedAt: &feb},
		{State: entities.PaymentStateCaptured, NetAmount: 186},
		{State: entities.PaymentStateRefunded, NetAmount: 279},
	}
	repo.EXPECT().ListByStudentID(gomock.Any(), "stud-1").Return(payments, nil)

	earnings, err := uc.StudentEarnings(context.Background(), "stud-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if earnings.TotalEarned != 1395 {
		t.Fatalf("expected total earned 1395, got %d", earnings.TotalEarned)
	}
	if earnings.PendingAmount != 186 {
		t.Fatalf("expected pending 186, got %d", earnings.PendingAmount)
	}
	if earnings.MonthlyEarnings["2026-01"] != 930 || earnings.MonthlyEarnings["2026-02"] != 465 {
		t.Fatalf("unexpected monthly rollup: %+v", earnings.MonthlyEarnings)
	}
}

func TestQueryUseCase_GetPayment_Scope(t *testing.T) {
	payment := capturedPayment("pay-1")

	cases := []struct {
		name    string
		actor   entities.Actor
		wantErr error
	}{
		{"admin sees any payment", adminActor(), nil},
		{"owning company", entities.Actor{ID: "comp-1", Role: entities.RoleCompany}, nil},
		{"assigned student", entities.Actor{ID: "stud-1", Role: entities.RoleStudent}, nil},
		{"other company denied", entities.Actor{ID: "comp-2", Role: entities.RoleCompany}, ErrAccessDenied},
		{"other student denied", entities.Actor{ID: "stud-2", Role: entities.RoleStudent}, ErrAccessDenied},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
			uc := NewQueryUseCase(repo, nil, zap.NewNop())

			repo.EXPECT().GetByID(gomock.Any(), "pay-1").Return(payment, nil)

			_, err := uc.GetPayment(context.Background(), "pay-1", tc.actor)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}
