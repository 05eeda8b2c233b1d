package types

import "fmt"

// ProjectStatus is the manually settable project status. It is stored as-is;
// the status shown to users is DerivedStatus, computed from this value, the
// phase completion timestamps and the project date range.
type ProjectStatus string

const (
	ProjectStatusInProgress ProjectStatus = "IN_PROGRESS"
	ProjectStatusCompleted  ProjectStatus = "COMPLETED"
	ProjectStatusOnHold     ProjectStatus = "ON_HOLD"
)

// AllProjectStatuses returns all valid manual project statuses
func AllProjectStatuses() []ProjectStatus {
	return []ProjectStatus{
		ProjectStatusInProgress,
		ProjectStatusCompleted,
		ProjectStatusOnHold,
	}
}

// IsValid checks if the project status is valid
func (s ProjectStatus) IsValid() bool {
	switch s {
	case ProjectStatusInProgress,
		ProjectStatusCompleted,
		ProjectStatusOnHold:
		return true
	default:
		return false
	}
}

// Normalize returns the status, treating empty as ProjectStatusInProgress.
func (s ProjectStatus) Normalize() ProjectStatus {
	if s == "" {
		return ProjectStatusInProgress
	}
	return s
}

// String returns the string representation of the project status
func (s ProjectStatus) String() string {
	return string(s)
}

// ParseProjectStatus parses a string into a ProjectStatus
func ParseProjectStatus(s string) (ProjectStatus, error) {
	status := ProjectStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid project status: %s", s)
	}
	return status, nil
}

// DerivedStatus is the computed display status of a project. Precedence:
// manual on-hold override, then all-required-phases-complete, then the
// project date range, then in-progress as the fallback.
type DerivedStatus string

const (
	DerivedStatusOnHold     DerivedStatus = "ON_HOLD"
	DerivedStatusCompleted  DerivedStatus = "COMPLETED"
	DerivedStatusUpcoming   DerivedStatus = "UPCOMING"
	DerivedStatusInProgress DerivedStatus = "IN_PROGRESS"
)

// String returns the string representation of the derived status
func (s DerivedStatus) String() string {
	return string(s)
}
