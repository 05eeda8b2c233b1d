package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/themis/pkg/domain/interfaces"
	"github.com/secmon-lab/themis/pkg/domain/model"
	"github.com/secmon-lab/themis/pkg/domain/model/auth"
	"github.com/secmon-lab/themis/pkg/domain/types"
)

// ObjectiveUseCase manages security objectives. Whether objectives mutations
// run under the completion guard is decided by the phase policy.
type ObjectiveUseCase struct {
	repo  interfaces.Repository
	guard *phaseGuard
}

func NewObjectiveUseCase(repo interfaces.Repository, guard *phaseGuard) *ObjectiveUseCase {
	return &ObjectiveUseCase{repo: repo, guard: guard}
}

func (uc *ObjectiveUseCase) Create(ctx context.Context, o *model.Objective, confirmed bool) (*model.Objective, error) {
	if o.Title == "" {
		return nil, goerr.New("objective title is required", goerr.T(TagInvalidInput))
	}
	o.UserID = auth.UserIDFromContext(ctx)

	var created *model.Objective
	err := uc.guard.run(ctx, o.ProjectID, types.PhaseObjectives, confirmed, func(ctx context.Context) error {
		var err error
		created, err = uc.repo.Objective().Create(ctx, o)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (uc *ObjectiveUseCase) Get(ctx context.Context, id types.ObjectiveID) (*model.Objective, error) {
	return uc.repo.Objective().Get(ctx, id)
}

func (uc *ObjectiveUseCase) ListByProject(ctx context.Context, projectID types.ProjectID) ([]*model.Objective, error) {
	return uc.repo.Objective().ListByProject(ctx, projectID)
}

func (uc *ObjectiveUseCase) Update(ctx context.Context, o *model.Objective, confirmed bool) (*model.Objective, error) {
	if o.Title == "" {
		return nil, goerr.New("objective title is required", goerr.T(TagInvalidInput))
	}

	existing, err := uc.repo.Objective().Get(ctx, o.ID)
	if err != nil {
		return nil, err
	}

	var updated *model.Objective
	err = uc.guard.run(ctx, existing.ProjectID, types.PhaseObjectives, confirmed, func(ctx context.Context) error {
		var err error
		updated, err = uc.repo.Objective().Update(ctx, o)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (uc *ObjectiveUseCase) Delete(ctx context.Context, id types.ObjectiveID, confirmed bool) error {
	existing, err := uc.repo.Objective().Get(ctx, id)
	if err != nil {
		return err
	}

	return uc.guard.run(ctx, existing.ProjectID, types.PhaseObjectives, confirmed, func(ctx context.Context) error {
		return uc.repo.Objective().Delete(ctx, id)
	})
}
