package model

import (
	"time"

	"github.com/secmon-lab/themis/pkg/domain/model/config"
	"github.com/secmon-lab/themis/pkg/domain/types"
)

// Project represents an ISMS project: the root aggregate that owns
// boundaries, stakeholders, the statement of applicability, evidence,
// gaps, the questionnaire and objectives.
type Project struct {
	ID          types.ProjectID     `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	StartDate   *time.Time          `json:"start_date,omitempty"`
	EndDate     *time.Time          `json:"end_date,omitempty"`
	Status      types.ProjectStatus `json:"status"`
	// PhaseCompletions holds the completion timestamp per workflow phase.
	// A missing key means the phase has not been marked complete.
	PhaseCompletions map[types.PhaseKey]time.Time `json:"phase_completions,omitempty"`
	UserID           types.UserID                 `json:"user_id"`
	CreatedAt        time.Time                    `json:"created_at"`
	UpdatedAt        time.Time                    `json:"updated_at"`
}

// PhaseCompletedAt returns the completion timestamp for the phase, or nil
// if the phase has not been marked complete.
func (p *Project) PhaseCompletedAt(key types.PhaseKey) *time.Time {
	if p.PhaseCompletions == nil {
		return nil
	}
	ts, ok := p.PhaseCompletions[key]
	if !ok {
		return nil
	}
	return &ts
}

// IsPhaseComplete reports whether the phase has a completion timestamp.
func (p *Project) IsPhaseComplete(key types.PhaseKey) bool {
	return p.PhaseCompletedAt(key) != nil
}

// DeriveStatus computes the display status of the project. Precedence:
// the manual on-hold override wins over everything, then completion of all
// phases the policy counts, then the project date range, then in-progress.
func (p *Project) DeriveStatus(policy *config.PhasePolicy, now time.Time) types.DerivedStatus {
	if p.Status.Normalize() == types.ProjectStatusOnHold {
		return types.DerivedStatusOnHold
	}

	phases := policy.CompletionPhases()
	if len(phases) > 0 {
		allComplete := true
		for _, key := range phases {
			if !p.IsPhaseComplete(key) {
				allComplete = false
				break
			}
		}
		if allComplete {
			return types.DerivedStatusCompleted
		}
	}

	if p.StartDate != nil && now.Before(*p.StartDate) {
		return types.DerivedStatusUpcoming
	}
	if p.EndDate != nil && now.After(*p.EndDate) {
		return types.DerivedStatusCompleted
	}

	return types.DerivedStatusInProgress
}
