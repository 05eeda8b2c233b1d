package interfaces

import (
	"context"

	"github.com/secmon-lab/themis/pkg/domain/model"
	"github.com/secmon-lab/themis/pkg/domain/types"
)

// StakeholderRepository persists stakeholders
type StakeholderRepository interface {
	Create(ctx context.Context, s *model.Stakeholder) (*model.Stakeholder, error)
	Get(ctx context.Context, id types.StakeholderID) (*model.Stakeholder, error)
	ListByProject(ctx context.Context, projectID types.ProjectID) ([]*model.Stakeholder, error)
	Update(ctx context.Context, s *model.Stakeholder) (*model.Stakeholder, error)
	Delete(ctx context.Context, id types.StakeholderID) error
}
