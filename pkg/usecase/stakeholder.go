package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/themis/pkg/domain/interfaces"
	"github.com/secmon-lab/themis/pkg/domain/model"
	"github.com/secmon-lab/themis/pkg/domain/model/auth"
	"github.com/secmon-lab/themis/pkg/domain/types"
)

type StakeholderUseCase struct {
	repo  interfaces.Repository
	guard *phaseGuard
}

func NewStakeholderUseCase(repo interfaces.Repository, guard *phaseGuard) *StakeholderUseCase {
	return &StakeholderUseCase{repo: repo, guard: guard}
}

func (uc *StakeholderUseCase) Create(ctx context.Context, s *model.Stakeholder, confirmed bool) (*model.Stakeholder, error) {
	if s.Name == "" {
		return nil, goerr.New("stakeholder name is required", goerr.T(TagInvalidInput))
	}
	s.UserID = auth.UserIDFromContext(ctx)

	var created *model.Stakeholder
	err := uc.guard.run(ctx, s.ProjectID, types.PhaseStakeholders, confirmed, func(ctx context.Context) error {
		var err error
		created, err = uc.repo.Stakeholder().Create(ctx, s)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (uc *StakeholderUseCase) Get(ctx context.Context, id types.StakeholderID) (*model.Stakeholder, error) {
	return uc.repo.Stakeholder().Get(ctx, id)
}

func (uc *StakeholderUseCase) ListByProject(ctx context.Context, projectID types.ProjectID) ([]*model.Stakeholder, error) {
	return uc.repo.Stakeholder().ListByProject(ctx, projectID)
}

func (uc *StakeholderUseCase) Update(ctx context.Context, s *model.Stakeholder, confirmed bool) (*model.Stakeholder, error) {
	if s.Name == "" {
		return nil, goerr.New("stakeholder name is required", goerr.T(TagInvalidInput))
	}

	existing, err := uc.repo.Stakeholder().Get(ctx, s.ID)
	if err != nil {
		return nil, err
	}

	var updated *model.Stakeholder
	err = uc.guard.run(ctx, existing.ProjectID, types.PhaseStakeholders, confirmed, func(ctx context.Context) error {
		var err error
		updated, err = uc.repo.Stakeholder().Update(ctx, s)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (uc *StakeholderUseCase) Delete(ctx context.Context, id types.StakeholderID, confirmed bool) error {
	existing, err := uc.repo.Stakeholder().Get(ctx, id)
	if err != nil {
		return err
	}

	return uc.guard.run(ctx, existing.ProjectID, types.PhaseStakeholders, confirmed, func(ctx context.Context) error {
		return uc.repo.Stakeholder().Delete(ctx, id)
	})
}
