package interfaces

import (
	"context"
	"time"

	"github.com/secmon-lab/themis/pkg/domain/model"
	"github.com/secmon-lab/themis/pkg/domain/types"
)

// ProjectRepository persists ISMS projects
type ProjectRepository interface {
	Create(ctx context.Context, project *model.Project) (*model.Project, error)
	Get(ctx context.Context, id types.ProjectID) (*model.Project, error)
	List(ctx context.Context) ([]*model.Project, error)
	Update(ctx context.Context, project *model.Project) (*model.Project, error)
	Delete(ctx context.Context, id types.ProjectID) error

	// SetPhaseCompletion sets or clears (ts == nil) the completion
	// timestamp of one workflow phase.
	SetPhaseCompletion(ctx context.Context, id types.ProjectID, phase types.PhaseKey, ts *time.Time) error
}
