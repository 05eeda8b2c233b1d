package usecase

import (
	"context"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/themis/pkg/domain/interfaces"
	"github.com/secmon-lab/themis/pkg/domain/model"
	"github.com/secmon-lab/themis/pkg/domain/model/config"
	"github.com/secmon-lab/themis/pkg/domain/types"
	"golang.org/x/sync/errgroup"
)

// RegisterUseCase builds the denormalized risk register: one reporting row
// per threat scenario, joined with its linked gap, all assessments
// referencing it and the evidence reachable through the gap.
type RegisterUseCase struct {
	repo       interfaces.Repository
	thresholds *config.ALEThresholds
}

func NewRegisterUseCase(repo interfaces.Repository, thresholds *config.ALEThresholds) *RegisterUseCase {
	return &RegisterUseCase{
		repo:       repo,
		thresholds: thresholds,
	}
}

// Build assembles the register rows for the project. Row construction is
// fanned out per scenario; the result preserves the scenario listing order.
func (uc *RegisterUseCase) Build(ctx context.Context, projectID types.ProjectID) ([]*model.RegisterRow, error) {
	scenarios, err := uc.repo.ThreatScenario().ListByProject(ctx, projectID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list threat scenarios", goerr.V(ProjectIDKey, projectID))
	}

	rows := make([]*model.RegisterRow, len(scenarios))
	var mu sync.Mutex

	eg, ctx := errgroup.WithContext(ctx)
	for i, scenario := range scenarios {
		eg.Go(func() error {
			row, err := uc.buildRow(ctx, scenario)
			if err != nil {
				return err
			}
			mu.Lock()
			rows[i] = row
			mu.Unlock()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return rows, nil
}

func (uc *RegisterUseCase) buildRow(ctx context.Context, scenario *model.ThreatScenario) (*model.RegisterRow, error) {
	assessments, err := uc.repo.RiskAssessment().ListByThreatScenario(ctx, scenario.ID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list assessments", goerr.V("scenario_id", scenario.ID))
	}

	row := &model.RegisterRow{
		Scenario:    scenario,
		Assessments: assessments,
	}

	for _, a := range assessments {
		if a.SLE > row.HighestSLE {
			row.HighestSLE = a.SLE
		}
		if a.ARO > row.HighestARO {
			row.HighestARO = a.ARO
		}
		if v := a.Severity.RiskValue(); v > 0 {
			if row.HighestRiskValue == nil || v > *row.HighestRiskValue {
				value := v
				row.HighestRiskValue = &value
			}
		}
	}

	row.ALE = model.ALE(&row.HighestSLE, &row.HighestARO)
	row.AROFrequency = model.AROFrequencyText(row.HighestARO)

	if scenario.GapID != nil {
		gap, err := uc.repo.Gap().Get(ctx, *scenario.GapID)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to load linked gap", goerr.V("gap_id", *scenario.GapID))
		}
		row.Gap = gap
		row.GapCount = 1

		evidence, err := uc.resolveEvidence(ctx, gap)
		if err != nil {
			return nil, err
		}
		row.Evidence = evidence
	}

	return row, nil
}

// resolveEvidence finds the evidence supporting a gap. Evidence attached to
// the gap's boundary-control association takes priority; only a gap with no
// association falls back to control-level matching, and the fallback skips
// evidence that carries an association of its own so nothing attributable
// via the first path is counted twice.
func (uc *RegisterUseCase) resolveEvidence(ctx context.Context, gap *model.Gap) ([]*model.Evidence, error) {
	if gap.BoundaryControlID != nil {
		evidence, err := uc.repo.Evidence().ListByBoundaryControl(ctx, *gap.BoundaryControlID)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list evidence by association",
				goerr.V("boundary_control_id", *gap.BoundaryControlID))
		}
		return evidence, nil
	}

	if gap.ControlID == "" {
		return nil, nil
	}

	candidates, err := uc.repo.Evidence().ListByControl(ctx, gap.ProjectID, gap.ControlID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list evidence by control",
			goerr.V("control_id", gap.ControlID))
	}

	var evidence []*model.Evidence
	for _, e := range candidates {
		if e.BoundaryControlID == nil {
			evidence = append(evidence, e)
		}
	}
	return evidence, nil
}

// Summary produces the CRQ report over the register: only scenarios whose
// row has both a positive SLE path and an ARO qualify, bucketed by the ALE
// thresholds.
func (uc *RegisterUseCase) Summary(ctx context.Context, projectID types.ProjectID) (*model.RegisterSummary, error) {
	rows, err := uc.Build(ctx, projectID)
	if err != nil {
		return nil, err
	}

	summary := &model.RegisterSummary{
		Counts: make(map[types.RiskSeverity]int),
	}

	for _, row := range rows {
		if len(row.Assessments) == 0 || row.ALE == nil {
			continue
		}

		bucket := model.ALEBucket(*row.ALE, uc.thresholds)
		summary.Rows = append(summary.Rows, &model.RegisterSummaryRow{
			ScenarioID:   row.Scenario.ID,
			ScenarioName: row.Scenario.Name,
			SLE:          row.HighestSLE,
			ARO:          row.HighestARO,
			ALE:          *row.ALE,
			Bucket:       bucket,
		})
		summary.TotalALE += *row.ALE
		summary.Counts[bucket]++
	}

	return summary, nil
}
