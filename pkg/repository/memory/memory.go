package memory

import (
	"github.com/secmon-lab/themis/pkg/domain/interfaces"
)

// Repository is an alias for Memory to match the pattern
type Repository = Memory

// Memory is the in-memory repository backend used for development and tests.
type Memory struct {
	project         *projectRepository
	boundary        *boundaryRepository
	control         *controlRepository
	boundaryControl *boundaryControlRepository
	gap             *gapRepository
	evidence        *evidenceRepository
	threatScenario  *threatScenarioRepository
	riskAssessment  *riskAssessmentRepository
	stakeholder     *stakeholderRepository
	objective       *objectiveRepository
	question        *questionRepository
	answer          *answerRepository
	tokens          *tokenStore
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		project:         newProjectRepository(),
		boundary:        newBoundaryRepository(),
		control:         newControlRepository(),
		boundaryControl: newBoundaryControlRepository(),
		gap:             newGapRepository(),
		evidence:        newEvidenceRepository(),
		threatScenario:  newThreatScenarioRepository(),
		riskAssessment:  newRiskAssessmentRepository(),
		stakeholder:     newStakeholderRepository(),
		objective:       newObjectiveRepository(),
		question:        newQuestionRepository(),
		answer:          newAnswerRepository(),
		tokens:          newTokenStore(),
	}
}

func (m *Memory) Project() interfaces.ProjectRepository {
	return m.project
}

func (m *Memory) Boundary() interfaces.BoundaryRepository {
	return m.boundary
}

func (m *Memory) Control() interfaces.ControlRepository {
	return m.control
}

func (m *Memory) BoundaryControl() interfaces.BoundaryControlRepository {
	return m.boundaryControl
}

func (m *Memory) Gap() interfaces.GapRepository {
	return m.gap
}

func (m *Memory) Evidence() interfaces.EvidenceRepository {
	return m.evidence
}

func (m *Memory) ThreatScenario() interfaces.ThreatScenarioRepository {
	return m.threatScenario
}

func (m *Memory) RiskAssessment() interfaces.RiskAssessmentRepository {
	return m.riskAssessment
}

func (m *Memory) Stakeholder() interfaces.StakeholderRepository {
	return m.stakeholder
}

func (m *Memory) Objective() interfaces.ObjectiveRepository {
	return m.objective
}

func (m *Memory) Question() interfaces.QuestionRepository {
	return m.question
}

func (m *Memory) Answer() interfaces.AnswerRepository {
	return m.answer
}

func (m *Memory) Close() error {
	return nil
}
