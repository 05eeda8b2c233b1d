package interfaces

import (
	"context"

	"github.com/secmon-lab/themis/pkg/domain/model"
	"github.com/secmon-lab/themis/pkg/domain/types"
)

// GapRepository persists compliance gaps
type GapRepository interface {
	Create(ctx context.Context, gap *model.Gap) (*model.Gap, error)
	Get(ctx context.Context, id types.GapID) (*model.Gap, error)
	ListByProject(ctx context.Context, projectID types.ProjectID) ([]*model.Gap, error)
	ListByBoundaryControl(ctx context.Context, bcID types.BoundaryControlID) ([]*model.Gap, error)
	Update(ctx context.Context, gap *model.Gap) (*model.Gap, error)
	Delete(ctx context.Context, id types.GapID) error
}
