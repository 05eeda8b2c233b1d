package types

import "fmt"

// RiskSeverity is the qualitative severity of a risk assessment
type RiskSeverity string

const (
	RiskSeverityLow    RiskSeverity = "low"
	RiskSeverityMedium RiskSeverity = "medium"
	RiskSeverityHigh   RiskSeverity = "high"
)

// AllRiskSeverities returns all valid risk severities
func AllRiskSeverities() []RiskSeverity {
	return []RiskSeverity{
		RiskSeverityLow,
		RiskSeverityMedium,
		RiskSeverityHigh,
	}
}

// IsValid checks if the risk severity is valid
func (s RiskSeverity) IsValid() bool {
	switch s {
	case RiskSeverityLow,
		RiskSeverityMedium,
		RiskSeverityHigh:
		return true
	default:
		return false
	}
}

// RiskValue maps the severity to its ordinal risk bucket value used by the
// risk register (high=8, medium=5, low=2). Returns 0 for unknown values.
func (s RiskSeverity) RiskValue() int {
	switch s {
	case RiskSeverityHigh:
		return 8
	case RiskSeverityMedium:
		return 5
	case RiskSeverityLow:
		return 2
	default:
		return 0
	}
}

// String returns the string representation of the risk severity
func (s RiskSeverity) String() string {
	return string(s)
}

// ParseRiskSeverity parses a string into a RiskSeverity
func ParseRiskSeverity(s string) (RiskSeverity, error) {
	sev := RiskSeverity(s)
	if !sev.IsValid() {
		return "", fmt.Errorf("invalid risk severity: %s", s)
	}
	return sev, nil
}
