package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/themis/pkg/domain/interfaces"
	"github.com/secmon-lab/themis/pkg/domain/model"
	"github.com/secmon-lab/themis/pkg/domain/model/auth"
	"github.com/secmon-lab/themis/pkg/domain/types"
)

type BoundaryUseCase struct {
	repo  interfaces.Repository
	guard *phaseGuard
}

func NewBoundaryUseCase(repo interfaces.Repository, guard *phaseGuard) *BoundaryUseCase {
	return &BoundaryUseCase{repo: repo, guard: guard}
}

func (uc *BoundaryUseCase) Create(ctx context.Context, boundary *model.Boundary, confirmed bool) (*model.Boundary, error) {
	if boundary.Name == "" {
		return nil, goerr.New("boundary name is required", goerr.T(TagInvalidInput))
	}
	if boundary.Type != "" && !boundary.Type.IsValid() {
		return nil, goerr.New("invalid boundary type", goerr.T(TagInvalidInput), goerr.V("type", boundary.Type))
	}
	boundary.UserID = auth.UserIDFromContext(ctx)

	var created *model.Boundary
	err := uc.guard.run(ctx, boundary.ProjectID, types.PhaseBoundaries, confirmed, func(ctx context.Context) error {
		var err error
		created, err = uc.repo.Boundary().Create(ctx, boundary)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (uc *BoundaryUseCase) Get(ctx context.Context, id types.BoundaryID) (*model.Boundary, error) {
	return uc.repo.Boundary().Get(ctx, id)
}

func (uc *BoundaryUseCase) ListByProject(ctx context.Context, projectID types.ProjectID) ([]*model.Boundary, error) {
	return uc.repo.Boundary().ListByProject(ctx, projectID)
}

func (uc *BoundaryUseCase) Update(ctx context.Context, boundary *model.Boundary, confirmed bool) (*model.Boundary, error) {
	if boundary.Name == "" {
		return nil, goerr.New("boundary name is required", goerr.T(TagInvalidInput))
	}

	existing, err := uc.repo.Boundary().Get(ctx, boundary.ID)
	if err != nil {
		return nil, err
	}

	var updated *model.Boundary
	err = uc.guard.run(ctx, existing.ProjectID, types.PhaseBoundaries, confirmed, func(ctx context.Context) error {
		var err error
		updated, err = uc.repo.Boundary().Update(ctx, boundary)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (uc *BoundaryUseCase) Delete(ctx context.Context, id types.BoundaryID, confirmed bool) error {
	existing, err := uc.repo.Boundary().Get(ctx, id)
	if err != nil {
		return err
	}

	return uc.guard.run(ctx, existing.ProjectID, types.PhaseBoundaries, confirmed, func(ctx context.Context) error {
		return uc.repo.Boundary().Delete(ctx, id)
	})
}
