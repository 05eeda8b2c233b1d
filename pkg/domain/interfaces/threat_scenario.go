package interfaces

import (
	"context"

	"github.com/secmon-lab/themis/pkg/domain/model"
	"github.com/secmon-lab/themis/pkg/domain/types"
)

// ThreatScenarioRepository persists threat scenarios
type ThreatScenarioRepository interface {
	Create(ctx context.Context, scenario *model.ThreatScenario) (*model.ThreatScenario, error)
	Get(ctx context.Context, id types.ThreatScenarioID) (*model.ThreatScenario, error)
	ListByProject(ctx context.Context, projectID types.ProjectID) ([]*model.ThreatScenario, error)
	Update(ctx context.Context, scenario *model.ThreatScenario) (*model.ThreatScenario, error)
	Delete(ctx context.Context, id types.ThreatScenarioID) error
}
