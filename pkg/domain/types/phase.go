package types

import "fmt"

// PhaseKey identifies one stage of the project workflow. Each phase carries
// its own completion timestamp on the project.
type PhaseKey string

const (
	PhaseBoundaries    PhaseKey = "boundaries"
	PhaseStakeholders  PhaseKey = "stakeholders"
	PhaseSOA           PhaseKey = "soa"
	PhaseEvidenceGaps  PhaseKey = "evidence_gaps"
	PhaseQuestionnaire PhaseKey = "questionnaire"
	PhaseObjectives    PhaseKey = "objectives"
)

// AllPhaseKeys returns all valid phase keys
func AllPhaseKeys() []PhaseKey {
	return []PhaseKey{
		PhaseBoundaries,
		PhaseStakeholders,
		PhaseSOA,
		PhaseEvidenceGaps,
		PhaseQuestionnaire,
		PhaseObjectives,
	}
}

// IsValid checks if the phase key is valid
func (p PhaseKey) IsValid() bool {
	switch p {
	case PhaseBoundaries,
		PhaseStakeholders,
		PhaseSOA,
		PhaseEvidenceGaps,
		PhaseQuestionnaire,
		PhaseObjectives:
		return true
	default:
		return false
	}
}

// String returns the string representation of the phase key
func (p PhaseKey) String() string {
	return string(p)
}

// ParsePhaseKey parses a string into a PhaseKey
func ParsePhaseKey(s string) (PhaseKey, error) {
	key := PhaseKey(s)
	if !key.IsValid() {
		return "", fmt.Errorf("invalid phase key: %s", s)
	}
	return key, nil
}
