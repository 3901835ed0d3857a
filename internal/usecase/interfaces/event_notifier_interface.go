package interfaces

import (
	"context"

	"github.com/seribro/escrow-service/internal/domain/entities"
)

// IEventNotifier pushes payment state-change events to subscribed dashboards.
//
// Delivery is at-least-once and best-effort. Publish never returns an error:
// implementations log and swallow transport failures, because a dropped event
// must never fail or roll back the state transition that produced it.
type IEventNotifier interface {
	Publish(ctx context.Context, event entities.PaymentEvent)
}
