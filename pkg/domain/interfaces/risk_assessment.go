package interfaces

import (
	"context"

	"github.com/secmon-lab/themis/pkg/domain/model"
	"github.com/secmon-lab/themis/pkg/domain/types"
)

// RiskAssessmentRepository persists risk assessments
type RiskAssessmentRepository interface {
	Create(ctx context.Context, assessment *model.RiskAssessment) (*model.RiskAssessment, error)
	Get(ctx context.Context, id types.RiskAssessmentID) (*model.RiskAssessment, error)
	ListByProject(ctx context.Context, projectID types.ProjectID) ([]*model.RiskAssessment, error)
	ListByThreatScenario(ctx context.Context, scenarioID types.ThreatScenarioID) ([]*model.RiskAssessment, error)
	Update(ctx context.Context, assessment *model.RiskAssessment) (*model.RiskAssessment, error)
	Delete(ctx context.Context, id types.RiskAssessmentID) error
}
