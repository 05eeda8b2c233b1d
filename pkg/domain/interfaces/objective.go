package interfaces

import (
	"context"

	"github.com/secmon-lab/themis/pkg/domain/model"
	"github.com/secmon-lab/themis/pkg/domain/types"
)

// ObjectiveRepository persists security objectives
type ObjectiveRepository interface {
	Create(ctx context.Context, o *model.Objective) (*model.Objective, error)
	Get(ctx context.Context, id types.ObjectiveID) (*model.Objective, error)
	ListByProject(ctx context.Context, projectID types.ProjectID) ([]*model.Objective, error)
	Update(ctx context.Context, o *model.Objective) (*model.Objective, error)
	Delete(ctx context.Context, id types.ObjectiveID) error
}
