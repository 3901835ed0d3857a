package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/seribro/escrow-service/internal/domain/entities"
	"github.com/seribro/escrow-service/internal/usecase/interfaces"

	"go.uber.org/zap"
)

// Sweeper fails created payments whose capture window elapsed without a
// confirmation. It goes through the state machine like every other writer, so
// a sweep can never race a late-arriving capture callback: whichever acquires
// the per-payment lock first wins and the loser gets a conflict.

type Sweeper struct {
	repo     interfaces.IPaymentRepository
	machine  IEscrowStateMachine
	window   time.Duration
	interval time.Duration
	logger   *zap.Logger
}

func NewSweeper(repo interfaces.IPaymentRepository, machine IEscrowStateMachine, window, interval time.Duration, logger *zap.Logger) *Sweeper {
	return &Sweeper{repo: repo, machine: machine, window: window, interval: interval, logger: logger}
}

// Run blocks until ctx is cancelled.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("timeout sweeper started",
		zap.Duration("capture_window", s.window),
		zap.Duration("interval", s.interval))

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("timeout sweeper stopped")
			return
		case <-ticker.C:
			if _, err := s.SweepOnce(ctx); err != nil {
				s.logger.Error("timeout sweep failed", zap.Error(err))
			}
		}
	}
}

// SweepOnce fails every stale created payment and returns how many it moved.
func (s *Sweeper) SweepOnce(ctx context.Context) (int, error) {
	created, err := s.repo.ListByState(ctx, entities.PaymentStateCreated)
	if err != nil {
		return 0, err
	}

	cutoff := time.Now().UTC().Add(-s.window)
	swept := 0
	for _, p := range created {
		if !p.CreatedAt.Before(cutoff) {
			continue
		}

		_, err := s.machine.Transition(ctx, p.ID, entities.EventTimeout, entities.SystemActor("timeout-sweep"), map[string]string{
			MetaReason: "capture window elapsed",
		})
		if err != nil {
			// A capture slipped in between the listing and the lock; that
			// payment is no longer ours to fail.
			if errors.Is(err, ErrIllegalTransition) || errors.Is(err, ErrPaymentNotFound) {
				continue
			}
			return swept, err
		}
		swept++
		s.logger.Info("stale payment failed by timeout sweep",
			zap.String("payment_id", p.ID),
			zap.Time("created_at", p.CreatedAt))
	}
	return swept, nil
}
