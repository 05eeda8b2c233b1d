package types

import "fmt"

// ComplianceStatus represents the assessment state of a boundary-control association
type ComplianceStatus string

const (
	ComplianceStatusCompliant          ComplianceStatus = "COMPLIANT"
	ComplianceStatusPartiallyCompliant ComplianceStatus = "PARTIALLY_COMPLIANT"
	ComplianceStatusNonCompliant       ComplianceStatus = "NON_COMPLIANT"
	ComplianceStatusNotAssessed        ComplianceStatus = "NOT_ASSESSED"
)

// AllComplianceStatuses returns all valid compliance statuses
func AllComplianceStatuses() []ComplianceStatus {
	return []ComplianceStatus{
		ComplianceStatusCompliant,
		ComplianceStatusPartiallyCompliant,
		ComplianceStatusNonCompliant,
		ComplianceStatusNotAssessed,
	}
}

// IsValid checks if the compliance status is valid
func (s ComplianceStatus) IsValid() bool {
	switch s {
	case ComplianceStatusCompliant,
		ComplianceStatusPartiallyCompliant,
		ComplianceStatusNonCompliant,
		ComplianceStatusNotAssessed:
		return true
	default:
		return false
	}
}

// Normalize returns the status, treating empty as ComplianceStatusNotAssessed.
func (s ComplianceStatus) Normalize() ComplianceStatus {
	if s == "" {
		return ComplianceStatusNotAssessed
	}
	return s
}

// String returns the string representation of the compliance status
func (s ComplianceStatus) String() string {
	return string(s)
}

// ParseComplianceStatus parses a string into a ComplianceStatus
func ParseComplianceStatus(s string) (ComplianceStatus, error) {
	status := ComplianceStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid compliance status: %s", s)
	}
	return status, nil
}
