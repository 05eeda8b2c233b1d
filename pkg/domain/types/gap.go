package types

import "fmt"

// GapSeverity represents how serious a compliance gap is
type GapSeverity string

const (
	GapSeverityCritical GapSeverity = "CRITICAL"
	GapSeverityHigh     GapSeverity = "HIGH"
	GapSeverityMedium   GapSeverity = "MEDIUM"
	GapSeverityLow      GapSeverity = "LOW"
)

// AllGapSeverities returns all valid gap severities
func AllGapSeverities() []GapSeverity {
	return []GapSeverity{
		GapSeverityCritical,
		GapSeverityHigh,
		GapSeverityMedium,
		GapSeverityLow,
	}
}

// IsValid checks if the gap severity is valid
func (s GapSeverity) IsValid() bool {
	switch s {
	case GapSeverityCritical,
		GapSeverityHigh,
		GapSeverityMedium,
		GapSeverityLow:
		return true
	default:
		return false
	}
}

// String returns the string representation of the gap severity
func (s GapSeverity) String() string {
	return string(s)
}

// ParseGapSeverity parses a string into a GapSeverity
func ParseGapSeverity(s string) (GapSeverity, error) {
	sev := GapSeverity(s)
	if !sev.IsValid() {
		return "", fmt.Errorf("invalid gap severity: %s", s)
	}
	return sev, nil
}

// GapStatus represents the remediation lifecycle state of a gap
type GapStatus string

const (
	GapStatusIdentified GapStatus = "IDENTIFIED"
	GapStatusInReview   GapStatus = "IN_REVIEW"
	GapStatusConfirmed  GapStatus = "CONFIRMED"
	GapStatusRemediated GapStatus = "REMEDIATED"
	GapStatusClosed     GapStatus = "CLOSED"
)

// AllGapStatuses returns all valid gap statuses
func AllGapStatuses() []GapStatus {
	return []GapStatus{
		GapStatusIdentified,
		GapStatusInReview,
		GapStatusConfirmed,
		GapStatusRemediated,
		GapStatusClosed,
	}
}

// IsValid checks if the gap status is valid
func (s GapStatus) IsValid() bool {
	switch s {
	case GapStatusIdentified,
		GapStatusInReview,
		GapStatusConfirmed,
		GapStatusRemediated,
		GapStatusClosed:
		return true
	default:
		return false
	}
}

// Normalize returns the status, treating empty as GapStatusIdentified.
func (s GapStatus) Normalize() GapStatus {
	if s == "" {
		return GapStatusIdentified
	}
	return s
}

// String returns the string representation of the gap status
func (s GapStatus) String() string {
	return string(s)
}

// ParseGapStatus parses a string into a GapStatus
func ParseGapStatus(s string) (GapStatus, error) {
	status := GapStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid gap status: %s", s)
	}
	return status, nil
}
