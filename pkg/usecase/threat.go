package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/themis/pkg/domain/interfaces"
	"github.com/secmon-lab/themis/pkg/domain/model"
	"github.com/secmon-lab/themis/pkg/domain/model/auth"
	"github.com/secmon-lab/themis/pkg/domain/types"
)

// ThreatUseCase manages threat scenarios. Scenarios are not phase-scoped, so
// none of these operations run under a completion guard.
type ThreatUseCase struct {
	repo interfaces.Repository
}

func NewThreatUseCase(repo interfaces.Repository) *ThreatUseCase {
	return &ThreatUseCase{repo: repo}
}

func (uc *ThreatUseCase) Create(ctx context.Context, scenario *model.ThreatScenario) (*model.ThreatScenario, error) {
	if scenario.Name == "" {
		return nil, goerr.New("threat scenario name is required", goerr.T(TagInvalidInput))
	}
	if scenario.ActorType != "" && !scenario.ActorType.IsValid() {
		return nil, goerr.New("invalid threat actor type", goerr.T(TagInvalidInput), goerr.V("actor_type", scenario.ActorType))
	}
	if scenario.SLE != nil && *scenario.SLE < 0 {
		return nil, goerr.New("SLE must be non-negative", goerr.T(TagInvalidInput), goerr.V("sle", *scenario.SLE))
	}
	if scenario.ARO != nil && *scenario.ARO < 0 {
		return nil, goerr.New("ARO must be non-negative", goerr.T(TagInvalidInput), goerr.V("aro", *scenario.ARO))
	}
	if scenario.GapID != nil {
		gap, err := uc.repo.Gap().Get(ctx, *scenario.GapID)
		if err != nil {
			return nil, err
		}
		scenario.ProjectID = gap.ProjectID
	}
	scenario.UserID = auth.UserIDFromContext(ctx)

	created, err := uc.repo.ThreatScenario().Create(ctx, scenario)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create threat scenario")
	}
	return created, nil
}

func (uc *ThreatUseCase) Get(ctx context.Context, id types.ThreatScenarioID) (*model.ThreatScenario, error) {
	return uc.repo.ThreatScenario().Get(ctx, id)
}

func (uc *ThreatUseCase) ListByProject(ctx context.Context, projectID types.ProjectID) ([]*model.ThreatScenario, error) {
	return uc.repo.ThreatScenario().ListByProject(ctx, projectID)
}

func (uc *ThreatUseCase) Update(ctx context.Context, scenario *model.ThreatScenario) (*model.ThreatScenario, error) {
	if scenario.Name == "" {
		return nil, goerr.New("threat scenario name is required", goerr.T(TagInvalidInput))
	}

	existing, err := uc.repo.ThreatScenario().Get(ctx, scenario.ID)
	if err != nil {
		return nil, err
	}
	if err := checkOwnership(ctx, existing.UserID); err != nil {
		return nil, err
	}

	return uc.repo.ThreatScenario().Update(ctx, scenario)
}

func (uc *ThreatUseCase) Delete(ctx context.Context, id types.ThreatScenarioID) error {
	existing, err := uc.repo.ThreatScenario().Get(ctx, id)
	if err != nil {
		return err
	}
	if err := checkOwnership(ctx, existing.UserID); err != nil {
		return err
	}

	return uc.repo.ThreatScenario().Delete(ctx, id)
}
