package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/themis/pkg/domain/interfaces"
	"github.com/secmon-lab/themis/pkg/domain/model"
	"github.com/secmon-lab/themis/pkg/domain/model/auth"
	"github.com/secmon-lab/themis/pkg/domain/types"
)

// AssessmentUseCase implements the two-step save protocol for risk
// assessments: the core fields (severity, SLE, ARO, notes) are saved first,
// and the cost breakdown second, with the sum invariant enforced only on the
// breakdown save. The server-side checks mirror the client editor on purpose.
type AssessmentUseCase struct {
	repo interfaces.Repository
}

func NewAssessmentUseCase(repo interfaces.Repository) *AssessmentUseCase {
	return &AssessmentUseCase{repo: repo}
}

func (uc *AssessmentUseCase) Create(ctx context.Context, assessment *model.RiskAssessment) (*model.RiskAssessment, error) {
	scenario, err := uc.repo.ThreatScenario().Get(ctx, assessment.ThreatScenarioID)
	if err != nil {
		return nil, err
	}
	if _, err := uc.repo.Boundary().Get(ctx, assessment.BoundaryID); err != nil {
		return nil, err
	}
	if err := assessment.ValidateCore(); err != nil {
		return nil, err
	}
	if err := assessment.ValidateBreakdown(); err != nil {
		return nil, err
	}

	assessment.ProjectID = scenario.ProjectID
	assessment.GapID = scenario.GapID
	assessment.AssessorID = auth.UserIDFromContext(ctx)

	created, err := uc.repo.RiskAssessment().Create(ctx, assessment)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create risk assessment")
	}
	return created, nil
}

func (uc *AssessmentUseCase) Get(ctx context.Context, id types.RiskAssessmentID) (*model.RiskAssessment, error) {
	return uc.repo.RiskAssessment().Get(ctx, id)
}

func (uc *AssessmentUseCase) ListByProject(ctx context.Context, projectID types.ProjectID) ([]*model.RiskAssessment, error) {
	return uc.repo.RiskAssessment().ListByProject(ctx, projectID)
}

func (uc *AssessmentUseCase) ListByThreatScenario(ctx context.Context, scenarioID types.ThreatScenarioID) ([]*model.RiskAssessment, error) {
	return uc.repo.RiskAssessment().ListByThreatScenario(ctx, scenarioID)
}

// CoreResult is the outcome of a core save: the persisted assessment plus
// any non-blocking advisories (e.g. an ARO above the soft limit).
type CoreResult struct {
	Assessment *model.RiskAssessment `json:"assessment"`
	Warnings   []string              `json:"warnings,omitempty"`
}

// SaveCore persists only the core fields. The breakdown is untouched and the
// sum invariant is not checked here; an out-of-range ARO yields a warning
// but never blocks.
func (uc *AssessmentUseCase) SaveCore(ctx context.Context, id types.RiskAssessmentID, core model.AssessmentCore) (*CoreResult, error) {
	existing, err := uc.repo.RiskAssessment().Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := checkOwnership(ctx, existing.AssessorID); err != nil {
		return nil, err
	}

	existing.Severity = core.Severity
	existing.SLE = core.SLE
	existing.ARO = core.ARO
	existing.AssessmentNotes = core.Notes
	if err := existing.ValidateCore(); err != nil {
		return nil, err
	}

	updated, err := uc.repo.RiskAssessment().Update(ctx, existing)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to save assessment core", goerr.V("id", id))
	}

	return &CoreResult{
		Assessment: updated,
		Warnings:   updated.CoreWarnings(),
	}, nil
}

// SaveBreakdown re-validates the core fields and the sum invariant before
// persisting the five cost components. A mismatching sum is rejected with
// ErrBreakdownMismatch carrying the remaining deficit.
func (uc *AssessmentUseCase) SaveBreakdown(ctx context.Context, id types.RiskAssessmentID, breakdown model.SLEBreakdown) (*model.RiskAssessment, error) {
	existing, err := uc.repo.RiskAssessment().Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := checkOwnership(ctx, existing.AssessorID); err != nil {
		return nil, err
	}

	existing.Breakdown = breakdown
	if err := existing.ValidateCore(); err != nil {
		return nil, err
	}
	if err := existing.ValidateBreakdown(); err != nil {
		return nil, err
	}

	updated, err := uc.repo.RiskAssessment().Update(ctx, existing)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to save assessment breakdown", goerr.V("id", id))
	}
	return updated, nil
}

func (uc *AssessmentUseCase) Delete(ctx context.Context, id types.RiskAssessmentID) error {
	existing, err := uc.repo.RiskAssessment().Get(ctx, id)
	if err != nil {
		return err
	}
	if err := checkOwnership(ctx, existing.AssessorID); err != nil {
		return err
	}

	return uc.repo.RiskAssessment().Delete(ctx, id)
}
