package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/seribro/escrow-service/internal/domain/entities"
	mock_interfaces "github.com/seribro/escrow-service/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func releaseFixture(t *testing.T, ctrl *gomock.Controller) (*ReleaseUseCase, *mock_interfaces.MockIPaymentRepository) {
	t.Helper()
	repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
	machine := NewEscrowStateMachine(repo, nil, nil, zap.NewNop())
	return NewReleaseUseCase(machine, zap.NewNop()), repo
}

func TestReleaseUseCase_Release(t *testing.T) {
	t.Run("releases a captured payment", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, repo := releaseFixture(t, ctrl)

		p := capturedPayment("pay-1")
		repo.EXPECT().GetByID(gomock.Any(), "pay-1").Return(p, nil)
		repo.EXPECT().ApplyTransition(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, up entities.Payment, _ entities.StateTransition) (entities.Payment, error) {
				return up, nil
			})

		updated, err := uc.Release(context.Background(), "pay-1", adminActor(), entities.ReleaseMethodPayout)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if updated.State != entities.PaymentStateReleased || updated.ReleaseMethod != entities.ReleaseMethodPayout {
			t.Fatalf("release not applied: %+v", updated)
		}
	})

	t.Run("empty method defaults to manual transfer", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, repo := releaseFixture(t, ctrl)

		repo.EXPECT().GetByID(gomock.Any(), "pay-1").Return(capturedPayment("pay-1"), nil)
		repo.EXPECT().ApplyTransition(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, up entities.Payment, _ entities.StateTransition) (entities.Payment, error) {
				return up, nil
			})

		updated, err := uc.Release(context.Background(), "pay-1", adminActor(), "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if updated.ReleaseMethod != entities.ReleaseMethodManual {
			t.Fatalf("expected manual transfer default, got %q", updated.ReleaseMethod)
		}
	})

	t.Run("unknown method", func(t *testing.T) {
		uc := NewReleaseUseCase(nil, zap.NewNop())
		_, err := uc.Release(context.Background(), "pay-1", adminActor(), "wire")
		if !errors.Is(err, ErrInvalidReleaseMethod) {
			t.Fatalf("expected ErrInvalidReleaseMethod, got %v", err)
		}
	})

	t.Run("release after refund is rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, repo := releaseFixture(t, ctrl)

		p := capturedPayment("pay-1")
		p.State = entities.PaymentStateRefunded
		repo.EXPECT().GetByID(gomock.Any(), "pay-1").Return(p, nil)

		_, err := uc.Release(context.Background(), "pay-1", adminActor(), entities.ReleaseMethodManual)
		if !errors.Is(err, ErrIllegalTransition) {
			t.Fatalf("expected ErrIllegalTransition, got %v", err)
		}
	})
}

func TestReleaseUseCase_Refund(t *testing.T) {
	t.Run("refunds a captured payment with the audit reason", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, repo := releaseFixture(t, ctrl)

		repo.EXPECT().GetByID(gomock.Any(), "pay-1").Return(capturedPayment("pay-1"), nil)
		repo.EXPECT().ApplyTransition(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, up entities.Payment, entry entities.StateTransition) (entities.Payment, error) {
				if entry.Metadata[MetaRefundReason] != "project cancelled by company" {
					t.Fatalf("reason not logged: %+v", entry.Metadata)
				}
				return up, nil
			})

		updated, err := uc.Refund(context.Background(), "pay-1", adminActor(), "project cancelled by company")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if updated.State != entities.PaymentStateRefunded || updated.RefundReason != "project cancelled by company" {
			t.Fatalf("refund not applied: %+v", updated)
		}
	})

	t.Run("reason shorter than five characters", func(t *testing.T) {
		uc := NewReleaseUseCase(nil, zap.NewNop())
		_, err := uc.Refund(context.Background(), "pay-1", adminActor(), "bad")
		if !errors.Is(err, ErrRefundReasonRequired) {
			t.Fatalf("expected ErrRefundReasonRequired, got %v", err)
		}
	})

	t.Run("refund after release is rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, repo := releaseFixture(t, ctrl)

		p := capturedPayment("pay-1")
		p.State = entities.PaymentStateReleased
		repo.EXPECT().GetByID(gomock.Any(), "pay-1").Return(p, nil)

		_, err := uc.Refund(context.Background(), "pay-1", adminActor(), "work rejected after review")
		if !errors.Is(err, ErrIllegalTransition) {
			t.Fatalf("expected ErrIllegalTransition, got %v", err)
		}
	})
}

// Batch of [captured, already released, captured]: the released one fails with
// a CONFLICT outcome while the other two go through.
func TestReleaseUseCase_BulkRelease(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc, repo := releaseFixture(t, ctrl)

	payA := capturedPayment("pay-a")
	payB := capturedPayment("pay-b")
	payB.State = entities.PaymentStateReleased
	payC := capturedPayment("pay-c")

	repo.EXPECT().GetByID(gomock.Any(), "pay-a").Return(payA, nil)
	repo.EXPECT().GetByID(gomock.Any(), "pay-b").Return(payB, nil)
	repo.EXPECT().GetByID(gomock.Any(), "pay-c").Return(payC, nil)
	repo.EXPECT().ApplyTransition(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, up entities.Payment, _ entities.StateTransition) (entities.Payment, error) {
			return up, nil
		}).Times(2)

	result := uc.BulkRelease(context.Background(), []string{"pay-a", "pay-b", "pay-c"}, adminActor(), entities.ReleaseMethodManual)

	if len(result.Succeeded) != 2 || result.Succeeded[0] != "pay-a" || result.Succeeded[1] != "pay-c" {
		t.Fatalf("unexpected succeeded list: %v", result.Succeeded)
	}
	if len(result.Failed) != 1 {
		t.Fatalf("expected one failure, got %v", result.Failed)
	}
	if result.Failed[0].PaymentID != "pay-b" || result.Failed[0].Code != "CONFLICT" {
		t.Fatalf("unexpected failure outcome: %+v", result.Failed[0])
	}
}

func TestReleaseUseCase_BulkRelease_Empty(t *testing.T) {
	uc := NewReleaseUseCase(nil, zap.NewNop())
	result := uc.BulkRelease(context.Background(), nil, adminActor(), entities.ReleaseMethodManual)
	if result.Succeeded == nil || result.Failed == nil {
		t.Fatal("outcome slices must be non-nil for an empty batch")
	}
	if len(result.Succeeded) != 0 || len(result.Failed) != 0 {
		t.Fatalf("unexpected outcomes: %+v", result)
	}
}
