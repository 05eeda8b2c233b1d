package interfaces

import (
	"context"

	"github.com/secmon-lab/themis/pkg/domain/model"
	"github.com/secmon-lab/themis/pkg/domain/types"
)

// BoundaryControlRepository persists boundary-control associations. Create
// must fail with ErrDuplicateAssociation when an association for the same
// (boundary, control) pair already exists.
type BoundaryControlRepository interface {
	Create(ctx context.Context, bc *model.BoundaryControl) (*model.BoundaryControl, error)
	Get(ctx context.Context, id types.BoundaryControlID) (*model.BoundaryControl, error)
	GetByPair(ctx context.Context, boundaryID types.BoundaryID, controlID types.ControlID) (*model.BoundaryControl, error)
	ListByBoundary(ctx context.Context, boundaryID types.BoundaryID) ([]*model.BoundaryControl, error)
	ListByProject(ctx context.Context, projectID types.ProjectID) ([]*model.BoundaryControl, error)
	Update(ctx context.Context, bc *model.BoundaryControl) (*model.BoundaryControl, error)
	Delete(ctx context.Context, id types.BoundaryControlID) error
}
