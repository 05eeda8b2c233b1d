package types

import (
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

// ProjectID represents a unique identifier for an ISMS project
type ProjectID string

// NewProjectID generates a new random ProjectID
func NewProjectID() ProjectID {
	return ProjectID(uuid.New().String())
}

// Validate checks if the ProjectID is a valid UUID
func (id ProjectID) Validate() error {
	return validateUUID("project ID", string(id))
}

// String returns the string representation of ProjectID
func (id ProjectID) String() string {
	return string(id)
}

// BoundaryID represents a unique identifier for an organizational boundary
type BoundaryID string

// NewBoundaryID generates a new random BoundaryID
func NewBoundaryID() BoundaryID {
	return BoundaryID(uuid.New().String())
}

// Validate checks if the BoundaryID is a valid UUID
func (id BoundaryID) Validate() error {
	return validateUUID("boundary ID", string(id))
}

// String returns the string representation of BoundaryID
func (id BoundaryID) String() string {
	return string(id)
}

// ControlID represents a unique identifier for a catalog control
type ControlID string

// String returns the string representation of ControlID
func (id ControlID) String() string {
	return string(id)
}

// Validate checks if the ControlID is non-empty
func (id ControlID) Validate() error {
	if id == "" {
		return goerr.New("control ID cannot be empty")
	}
	return nil
}

// BoundaryControlID represents a unique identifier for a boundary-control association
type BoundaryControlID string

// NewBoundaryControlID builds the deterministic association ID for a
// (boundary, control) pair. The determinism is what lets the storage layer
// enforce the one-association-per-pair invariant.
func NewBoundaryControlID(boundaryID BoundaryID, controlID ControlID) BoundaryControlID {
	return BoundaryControlID(boundaryID.String() + "_" + controlID.String())
}

// String returns the string representation of BoundaryControlID
func (id BoundaryControlID) String() string {
	return string(id)
}

// GapID represents a unique identifier for a compliance gap
type GapID string

// NewGapID generates a new random GapID
func NewGapID() GapID {
	return GapID(uuid.New().String())
}

// String returns the string representation of GapID
func (id GapID) String() string {
	return string(id)
}

// EvidenceID represents a unique identifier for an evidence record
type EvidenceID string

// NewEvidenceID generates a new random EvidenceID
func NewEvidenceID() EvidenceID {
	return EvidenceID(uuid.New().String())
}

// String returns the string representation of EvidenceID
func (id EvidenceID) String() string {
	return string(id)
}

// ThreatScenarioID represents a unique identifier for a threat scenario
type ThreatScenarioID string

// NewThreatScenarioID generates a new random ThreatScenarioID
func NewThreatScenarioID() ThreatScenarioID {
	return ThreatScenarioID(uuid.New().String())
}

// String returns the string representation of ThreatScenarioID
func (id ThreatScenarioID) String() string {
	return string(id)
}

// RiskAssessmentID represents a unique identifier for a risk assessment
type RiskAssessmentID string

// NewRiskAssessmentID generates a new random RiskAssessmentID
func NewRiskAssessmentID() RiskAssessmentID {
	return RiskAssessmentID(uuid.New().String())
}

// String returns the string representation of RiskAssessmentID
func (id RiskAssessmentID) String() string {
	return string(id)
}

// StakeholderID represents a unique identifier for a stakeholder
type StakeholderID string

// NewStakeholderID generates a new random StakeholderID
func NewStakeholderID() StakeholderID {
	return StakeholderID(uuid.New().String())
}

// String returns the string representation of StakeholderID
func (id StakeholderID) String() string {
	return string(id)
}

// ObjectiveID represents a unique identifier for a security objective
type ObjectiveID string

// NewObjectiveID generates a new random ObjectiveID
func NewObjectiveID() ObjectiveID {
	return ObjectiveID(uuid.New().String())
}

// String returns the string representation of ObjectiveID
func (id ObjectiveID) String() string {
	return string(id)
}

// QuestionID represents a unique identifier for a questionnaire question
type QuestionID string

// NewQuestionID generates a new random QuestionID
func NewQuestionID() QuestionID {
	return QuestionID(uuid.New().String())
}

// String returns the string representation of QuestionID
func (id QuestionID) String() string {
	return string(id)
}

// AnswerID represents a unique identifier for a questionnaire answer
type AnswerID string

// NewAnswerID generates a new random AnswerID
func NewAnswerID() AnswerID {
	return AnswerID(uuid.New().String())
}

// String returns the string representation of AnswerID
func (id AnswerID) String() string {
	return string(id)
}

// UserID represents the identifier of an authenticated user
type UserID string

// String returns the string representation of UserID
func (id UserID) String() string {
	return string(id)
}

func validateUUID(label, s string) error {
	if s == "" {
		return goerr.New(label + " cannot be empty")
	}
	if _, err := uuid.Parse(s); err != nil {
		return goerr.Wrap(err, "invalid "+label, goerr.V("id", s))
	}
	return nil
}
