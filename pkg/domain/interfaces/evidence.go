package interfaces

import (
	"context"

	"github.com/secmon-lab/themis/pkg/domain/model"
	"github.com/secmon-lab/themis/pkg/domain/types"
)

// EvidenceRepository persists evidence records
type EvidenceRepository interface {
	Create(ctx context.Context, ev *model.Evidence) (*model.Evidence, error)
	Get(ctx context.Context, id types.EvidenceID) (*model.Evidence, error)
	ListByProject(ctx context.Context, projectID types.ProjectID) ([]*model.Evidence, error)
	ListByBoundaryControl(ctx context.Context, bcID types.BoundaryControlID) ([]*model.Evidence, error)
	// ListByControl returns project evidence for the control reference,
	// regardless of boundary-control attribution.
	ListByControl(ctx context.Context, projectID types.ProjectID, controlID types.ControlID) ([]*model.Evidence, error)
	Update(ctx context.Context, ev *model.Evidence) (*model.Evidence, error)
	Delete(ctx context.Context, id types.EvidenceID) error
}
