package interfaces

import (
	"context"

	"github.com/secmon-lab/themis/pkg/domain/model"
	"github.com/secmon-lab/themis/pkg/domain/types"
)

// BoundaryRepository persists organizational boundaries
type BoundaryRepository interface {
	Create(ctx context.Context, boundary *model.Boundary) (*model.Boundary, error)
	Get(ctx context.Context, id types.BoundaryID) (*model.Boundary, error)
	ListByProject(ctx context.Context, projectID types.ProjectID) ([]*model.Boundary, error)
	Update(ctx context.Context, boundary *model.Boundary) (*model.Boundary, error)
	Delete(ctx context.Context, id types.BoundaryID) error

	// FindByName returns the boundary with the exact name within the
	// project, or ErrNotFound.
	FindByName(ctx context.Context, projectID types.ProjectID, name string) (*model.Boundary, error)
}
