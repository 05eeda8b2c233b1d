package config

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/themis/pkg/domain/types"
)

// PhasePolicy controls which workflow phases participate in project status
// derivation and whether the objectives phase guard is active. The objectives
// phase exists in the data model but is excluded from the completion
// derivation by default; both behaviors are kept configurable.
type PhasePolicy struct {
	// CompletionPhases are the phases that must all be complete for a
	// project to derive as COMPLETED.
	Completion []types.PhaseKey `toml:"completion_phases"`
	// GuardObjectives enables the completion guard for the objectives
	// phase even when it does not count toward completion.
	GuardObjectives bool `toml:"guard_objectives"`
}

// DefaultPhasePolicy returns the policy observed in production: four phases
// count toward completion, objectives is guarded but not counted.
func DefaultPhasePolicy() *PhasePolicy {
	return &PhasePolicy{
		Completion: []types.PhaseKey{
			types.PhaseBoundaries,
			types.PhaseStakeholders,
			types.PhaseSOA,
			types.PhaseEvidenceGaps,
		},
		GuardObjectives: true,
	}
}

// CompletionPhases returns the phases counted toward the COMPLETED
// derivation, falling back to the default set when unconfigured.
func (p *PhasePolicy) CompletionPhases() []types.PhaseKey {
	if p == nil || len(p.Completion) == 0 {
		return DefaultPhasePolicy().Completion
	}
	return p.Completion
}

// GuardsPhase reports whether mutations in the given phase are subject to
// the completion guard.
func (p *PhasePolicy) GuardsPhase(key types.PhaseKey) bool {
	if key == types.PhaseObjectives {
		if p == nil {
			return DefaultPhasePolicy().GuardObjectives
		}
		return p.GuardObjectives
	}
	return true
}

// Validate checks that every configured completion phase is a known key.
func (p *PhasePolicy) Validate() error {
	for _, key := range p.Completion {
		if !key.IsValid() {
			return goerr.New("invalid phase key in policy", goerr.V("key", key))
		}
	}
	return nil
}
