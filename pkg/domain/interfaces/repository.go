package interfaces

import (
	"context"

	"github.com/secmon-lab/themis/pkg/domain/model/auth"
)

// Repository defines the interface for data persistence
type Repository interface {
	Project() ProjectRepository
	Boundary() BoundaryRepository
	Control() ControlRepository
	BoundaryControl() BoundaryControlRepository
	Gap() GapRepository
	Evidence() EvidenceRepository
	ThreatScenario() ThreatScenarioRepository
	RiskAssessment() RiskAssessmentRepository
	Stakeholder() StakeholderRepository
	Objective() ObjectiveRepository
	Question() QuestionRepository
	Answer() AnswerRepository

	// Auth methods
	PutToken(ctx context.Context, token *auth.Token) error
	GetToken(ctx context.Context, tokenID auth.TokenID) (*auth.Token, error)
	DeleteToken(ctx context.Context, tokenID auth.TokenID) error

	Close() error
}
