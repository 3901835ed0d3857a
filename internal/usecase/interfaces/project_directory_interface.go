package interfaces

import (
	"context"

	"github.com/seribro/escrow-service/internal/domain/entities"
)

// IProjectDirectory looks up project ownership and payability in the
// surrounding marketplace application, which the escrow core treats as an
// external collaborator reached over HTTP.
//
// Follows the store convention: a zero-value ProjectRef with a nil error means
// the project does not exist.
type IProjectDirectory interface {
	GetProject(ctx context.Context, projectID string) (entities.ProjectRef, error)
}
