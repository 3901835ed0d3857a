package interfaces

import (
	"context"

	"github.com/seribro/escrow-service/internal/domain/entities"
)

// ISummaryCache is a read-through cache for the reporting projections.
//
// The ledger stays the source of truth: entries carry a short TTL and are
// invalidated after every committed transition, so a miss only costs a ledger
// scan. Implementations must treat cache failures as misses.
type ISummaryCache interface {
	GetCompanySummary(ctx context.Context, companyID string) (entities.CompanySummary, bool)
	SetCompanySummary(ctx context.Context, summary entities.CompanySummary)
	GetStudentEarnings(ctx context.Context, studentID string) (entities.StudentEarnings, bool)
	SetStudentEarnings(ctx context.Context, earnings entities.StudentEarnings)
	Invalidate(ctx context.Context, companyID, studentID string)
}
