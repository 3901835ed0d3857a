package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/seribro/escrow-service/internal/domain/entities"
	"github.com/seribro/escrow-service/internal/usecase/interfaces"
	mock_interfaces "github.com/seribro/escrow-service/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func adminActor() entities.Actor {
	return entities.Actor{ID: "admin-1", Role: entities.RoleAdmin}
}

func capturedPayment(id string) entities.Payment {
	now := time.Now().UTC()
	return entities.Payment{
		ID:                id,
		ProjectID:         "proj-1",
		CompanyID:         "comp-1",
		StudentID:         "stud-1",
		Amount:            500000,
		PlatformFee:       35000,
		NetAmount:         465000,
		Currency:          "INR",
		GatewayOrderRef:   "order_abc",
		GatewayPaymentRef: "pay_abc",
		GatewayStatus:     entities.GatewayStatusLinked,
		State:             entities.PaymentStateCaptured,
		Version:           2,
		CreatedAt:         now.Add(-time.Hour),
		UpdatedAt:         now,
	}
}

func TestEscrowStateMachine_CreatePayment(t *testing.T) {
	t.Run("creates a new payment with a seq-1 log entry", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		m := NewEscrowStateMachine(repo, nil, nil, zap.NewNop())

		repo.EXPECT().GetOpenByProjectID(gomock.Any(), "proj-1").Return(entities.Payment{}, nil)
		repo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, p entities.Payment, entry entities.StateTransition) (entities.Payment, error) {
				if p.State != entities.PaymentStateCreated {
					t.Fatalf("expected created state, got %s", p.State)
				}
				if p.Version != 1 {
					t.Fatalf("expected version 1, got %d", p.Version)
				}
				if entry.Seq != 1 || entry.ToState != entities.PaymentStateCreated {
					t.Fatalf("unexpected log entry: %+v", entry)
				}
				return p, nil
			})

		created, isNew, err := m.CreatePayment(context.Background(), entities.Payment{ID: "pay-1", ProjectID: "proj-1", Amount: 1000}, adminActor())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !isNew {
			t.Fatal("expected isNew=true")
		}
		if created.ID != "pay-1" {
			t.Fatalf("unexpected payment id %s", created.ID)
		}
	})

	t.Run("returns the open created payment instead of a duplicate", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		m := NewEscrowStateMachine(repo, nil, nil, zap.NewNop())

		open := entities.Payment{ID: "pay-1", ProjectID: "proj-1", State: entities.PaymentStateCreated}
		repo.EXPECT().GetOpenByProjectID(gomock.Any(), "proj-1").Return(open, nil)

		got, isNew, err := m.CreatePayment(context.Background(), entities.Payment{ID: "pay-2", ProjectID: "proj-1"}, adminActor())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if isNew {
			t.Fatal("expected isNew=false for idempotent duplicate")
		}
		if got.ID != "pay-1" {
			t.Fatalf("expected existing payment, got %s", got.ID)
		}
	})

	t.Run("rejects a second escrow while one is captured", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		m := NewEscrowStateMachine(repo, nil, nil, zap.NewNop())

		repo.EXPECT().GetOpenByProjectID(gomock.Any(), "proj-1").Return(capturedPayment("pay-1"), nil)

		_, _, err := m.CreatePayment(context.Background(), entities.Payment{ID: "pay-2", ProjectID: "proj-1"}, adminActor())
		if !errors.Is(err, ErrOpenEscrowExists) {
			t.Fatalf("expected ErrOpenEscrowExists, got %v", err)
		}
	})
}

func TestEscrowStateMachine_Transition_Legal(t *testing.T) {
	t.Run("release on a captured payment", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		notifier := mock_interfaces.NewMockIEventNotifier(ctrl)
		cache := mock_interfaces.NewMockISummaryCache(ctrl)
		m := NewEscrowStateMachine(repo, notifier, cache, zap.NewNop())

		p := capturedPayment("pay-1")
		repo.EXPECT().GetByID(gomock.Any(), "pay-1").Return(p, nil)
		repo.EXPECT().ApplyTransition(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, up entities.Payment, entry entities.StateTransition) (entities.Payment, error) {
				if up.State != entities.PaymentStateReleased {
					t.Fatalf("expected released, got %s", up.State)
				}
				if up.Version != 3 {
					t.Fatalf("expected version 3, got %d", up.Version)
				}
				if up.ReleasedBy != "admin-1" || up.ReleasedAt == nil {
					t.Fatal("release audit fields not set")
				}
				if entry.Seq != 3 || entry.FromState != entities.PaymentStateCaptured || entry.Event != entities.EventRelease {
					t.Fatalf("unexpected log entry: %+v", entry)
				}
				return up, nil
			})
		notifier.EXPECT().Publish(gomock.Any(), gomock.Any()).Do(func(_ context.Context, ev entities.PaymentEvent) {
			if ev.Type != entities.EventTypeReleased || ev.PaymentID != "pay-1" {
				t.Fatalf("unexpected event: %+v", ev)
			}
		})
		cache.EXPECT().Invalidate(gomock.Any(), "comp-1", "stud-1")

		updated, err := m.Transition(context.Background(), "pay-1", entities.EventRelease, adminActor(), map[string]string{
			MetaReleaseMethod: string(entities.ReleaseMethodPayout),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if updated.ReleaseMethod != entities.ReleaseMethodPayout {
			t.Fatalf("expected release method recorded, got %q", updated.ReleaseMethod)
		}
	})

	t.Run("capture records the gateway references", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		m := NewEscrowStateMachine(repo, nil, nil, zap.NewNop())

		p := capturedPayment("pay-1")
		p.State = entities.PaymentStateCreated
		p.Version = 1
		p.GatewayPaymentRef = ""
		repo.EXPECT().GetByID(gomock.Any(), "pay-1").Return(p, nil)
		repo.EXPECT().ApplyTransition(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, up entities.Payment, _ entities.StateTransition) (entities.Payment, error) {
				return up, nil
			})

		updated, err := m.Transition(context.Background(), "pay-1", entities.EventCapture, entities.SystemActor("verification-service"), map[string]string{
			MetaGatewayPaymentRef: "pay_xyz",
			MetaGatewaySignature:  "sig",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if updated.State != entities.PaymentStateCaptured || updated.GatewayPaymentRef != "pay_xyz" {
			t.Fatalf("capture not applied: %+v", updated)
		}
	})
}

func TestEscrowStateMachine_Transition_Illegal(t *testing.T) {
	t.Run("refund after release is rejected naming the current state", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		m := NewEscrowStateMachine(repo, nil, nil, zap.NewNop())

		p := capturedPayment("pay-1")
		p.State = entities.PaymentStateReleased
		repo.EXPECT().GetByID(gomock.Any(), "pay-1").Return(p, nil)

		_, err := m.Transition(context.Background(), "pay-1", entities.EventRefund, adminActor(), nil)
		if !errors.Is(err, ErrIllegalTransition) {
			t.Fatalf("expected ErrIllegalTransition, got %v", err)
		}
		if !strings.Contains(err.Error(), string(entities.PaymentStateReleased)) {
			t.Fatalf("error should name the current state: %v", err)
		}
	})

	t.Run("release on a refunded payment is rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		m := NewEscrowStateMachine(repo, nil, nil, zap.NewNop())

		p := capturedPayment("pay-1")
		p.State = entities.PaymentStateRefunded
		repo.EXPECT().GetByID(gomock.Any(), "pay-1").Return(p, nil)

		_, err := m.Transition(context.Background(), "pay-1", entities.EventRelease, adminActor(), nil)
		if !errors.Is(err, ErrIllegalTransition) {
			t.Fatalf("expected ErrIllegalTransition, got %v", err)
		}
	})

	t.Run("unknown payment", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		m := NewEscrowStateMachine(repo, nil, nil, zap.NewNop())

		repo.EXPECT().GetByID(gomock.Any(), "nope").Return(entities.Payment{}, nil)

		_, err := m.Transition(context.Background(), "nope", entities.EventRelease, adminActor(), nil)
		if !errors.Is(err, ErrPaymentNotFound) {
			t.Fatalf("expected ErrPaymentNotFound, got %v", err)
		}
	})
}

func TestEscrowStateMachine_Transition_Authorization(t *testing.T) {
	cases := []struct {
		name  string
		event entities.TransitionEvent
		actor entities.Actor
	}{
		{"company cannot capture", entities.EventCapture, entities.Actor{ID: "comp-1", Role: entities.RoleCompany}},
		{"admin cannot capture", entities.EventCapture, adminActor()},
		{"student cannot release", entities.EventRelease, entities.Actor{ID: "stud-1", Role: entities.RoleStudent}},
		{"company cannot refund", entities.EventRefund, entities.Actor{ID: "comp-1", Role: entities.RoleCompany}},
		{"company cannot time out", entities.EventTimeout, entities.Actor{ID: "comp-1", Role: entities.RoleCompany}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := NewEscrowStateMachine(nil, nil, nil, zap.NewNop())
			_, err := m.Transition(context.Background(), "pay-1", tc.event, tc.actor, nil)
			if !errors.Is(err, ErrActorNotAuthorized) {
				t.Fatalf("expected ErrActorNotAuthorized, got %v", err)
			}
		})
	}
}

// Two concurrent release attempts on the same captured payment: the per-payment
// lock serializes them, so the loser reads the released state and is rejected.
func TestEscrowStateMachine_Transition_ConcurrentRelease(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
	m := NewEscrowStateMachine(repo, nil, nil, zap.NewNop())

	var mu sync.Mutex
	state := capturedPayment("pay-1")

	repo.EXPECT().GetByID(gomock.Any(), "pay-1").DoAndReturn(
		func(context.Context, string) (entities.Payment, error) {
			mu.Lock()
			defer mu.Unlock()
			return state, nil
		}).Times(2)
	repo.EXPECT().ApplyTransition(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, up entities.Payment, _ entities.StateTransition) (entities.Payment, error) {
			mu.Lock()
			defer mu.Unlock()
			state = up
			return up, nil
		})

	var wg sync.WaitGroup
	results := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = m.Transition(context.Background(), "pay-1", entities.EventRelease, adminActor(), map[string]string{
				MetaReleaseMethod: string(entities.ReleaseMethodManual),
			})
		}(i)
	}
	wg.Wait()

	var ok, rejected int
	for _, err := range results {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, ErrIllegalTransition):
			rejected++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if ok != 1 || rejected != 1 {
		t.Fatalf("expected exactly one winner, got ok=%d rejected=%d", ok, rejected)
	}
	if state.State != entities.PaymentStateReleased || state.Version != 3 {
		t.Fatalf("expected a single committed release, got %+v", state)
	}
}

func TestEscrowStateMachine_Transition_ConflictFromStore(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
	m := NewEscrowStateMachine(repo, nil, nil, zap.NewNop())

	p := capturedPayment("pay-1")
	repo.EXPECT().GetByID(gomock.Any(), "pay-1").Return(p, nil)
	repo.EXPECT().ApplyTransition(gomock.Any(), gomock.Any(), gomock.Any()).Return(entities.Payment{}, interfaces.ErrTransitionConflict)

	fresh := p
	fresh.State = entities.PaymentStateRefunded
	fresh.Version = 3
	repo.EXPECT().GetByID(gomock.Any(), "pay-1").Return(fresh, nil)

	_, err := m.Transition(context.Background(), "pay-1", entities.EventRelease, adminActor(), nil)
	if !errors.Is(err, ErrIllegalTransition) {
		t.Fatalf("expected ErrIllegalTransition after store conflict, got %v", err)
	}
	if !strings.Contains(err.Error(), string(entities.PaymentStateRefunded)) {
		t.Fatalf("error should name the fresh state: %v", err)
	}
}

func TestEscrowStateMachine_Replay(t *testing.T) {
	log := []entities.StateTransition{
		{PaymentID: "pay-1", Seq: 1, ToState: entities.PaymentStateCreated},
		{PaymentID: "pay-1", Seq: 2, FromState: entities.PaymentStateCreated, ToState: entities.PaymentStateCaptured, Event: entities.EventCapture},
		{PaymentID: "pay-1", Seq: 3, FromState: entities.PaymentStateCaptured, ToState: entities.PaymentStateReleased, Event: entities.EventRelease},
	}

	t.Run("log replays to the projection state", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		m := NewEscrowStateMachine(repo, nil, nil, zap.NewNop())

		repo.EXPECT().ListTransitions(gomock.Any(), "pay-1").Return(log, nil)
		p := capturedPayment("pay-1")
		p.State = entities.PaymentStateReleased
		repo.EXPECT().GetByID(gomock.Any(), "pay-1").Return(p, nil)

		state, err := m.Replay(context.Background(), "pay-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if state != entities.PaymentStateReleased {
			t.Fatalf("expected released, got %s", state)
		}
	})

	t.Run("empty log means not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		m := NewEscrowStateMachine(repo, nil, nil, zap.NewNop())

		repo.EXPECT().ListTransitions(gomock.Any(), "pay-1").Return(nil, nil)

		_, err := m.Replay(context.Background(), "pay-1")
		if !errors.Is(err, ErrPaymentNotFound) {
			t.Fatalf("expected ErrPaymentNotFound, got %v", err)
		}
	})
}
