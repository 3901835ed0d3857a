package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/seribro/escrow-service/internal/domain/entities"
	mock_interfaces "github.com/seribro/escrow-service/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func TestSweeper_SweepOnce(t *testing.T) {
	t.Run("fails stale created payments and leaves fresh ones alone", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		machineRepo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		machine := NewEscrowStateMachine(machineRepo, nil, nil, zap.NewNop())
		s := NewSweeper(repo, machine, 30*time.Minute, time.Minute, zap.NewNop())

		now := time.Now().UTC()
		stale := entities.Payment{ID: "pay-old", ProjectID: "proj-1", State: entities.PaymentStateCreated, Version: 1, CreatedAt: now.Add(-time.Hour)}
		fresh := entities.Payment{ID: "pay-new", ProjectID: "proj-2", State: entities.PaymentStateCreated, Version: 1, CreatedAt: now.Add(-time.Minute)}

		repo.EXPECT().ListByState(gomock.Any(), entities.PaymentStateCreated).Return([]entities.Payment{stale, fresh}, nil)
		machineRepo.EXPECT().GetByID(gomock.Any(), "pay-old").Return(stale, nil)
		machineRepo.EXPECT().ApplyTransition(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, up entities.Payment, entry entities.StateTransition) (entities.Payment, error) {
				if up.ID != "pay-old" || up.State != entities.PaymentStateFailed {
					t.Fatalf("unexpected sweep target: %+v", up)
				}
				if entry.Event != entities.EventTimeout {
					t.Fatalf("expected timeout event, got %s", entry.Event)
				}
				return up, nil
			})

		swept, err := s.SweepOnce(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if swept != 1 {
			t.Fatalf("expected 1 swept payment, got %d", swept)
		}
	})

	t.Run("a capture racing the sweep wins", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		machineRepo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		machine := NewEscrowStateMachine(machineRepo, nil, nil, zap.NewNop())
		s := NewSweeper(repo, machine, 30*time.Minute, time.Minute, zap.NewNop())

		now := time.Now().UTC()
		stale := entities.Payment{ID: "pay-old", ProjectID: "proj-1", State: entities.PaymentStateCreated, Version: 1, CreatedAt: now.Add(-time.Hour)}
		repo.EXPECT().ListByState(gomock.Any(), entities.PaymentStateCreated).Return([]entities.Payment{stale}, nil)

		// By the time the sweep takes the lock the payment is already captured.
		captured := stale
		captured.State = entities.PaymentStateCaptured
		captured.Version = 2
		machineRepo.EXPECT().GetByID(gomock.Any(), "pay-old").Return(captured, nil)

		swept, err := s.SweepOnce(context.Background())
		if err != nil {
			t.Fatalf("the lost race must not fail the sweep: %v", err)
		}
		if swept != 0 {
			t.Fatalf("expected 0 swept payments, got %d", swept)
		}
	})

	t.Run("nothing to sweep", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		s := NewSweeper(repo, nil, 30*time.Minute, time.Minute, zap.NewNop())

		repo.EXPECT().ListByState(gomock.Any(), entities.PaymentStateCreated).Return(nil, nil)

		swept, err := s.SweepOnce(context.Background())
		if err != nil || swept != 0 {
			t.Fatalf("unexpected result: swept=%d err=%v", swept, err)
		}
	})
}
