package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/themis/pkg/domain/interfaces"
	"github.com/secmon-lab/themis/pkg/domain/model"
	"github.com/secmon-lab/themis/pkg/domain/model/auth"
	"github.com/secmon-lab/themis/pkg/domain/types"
)

type GapUseCase struct {
	repo  interfaces.Repository
	guard *phaseGuard
}

func NewGapUseCase(repo interfaces.Repository, guard *phaseGuard) *GapUseCase {
	return &GapUseCase{repo: repo, guard: guard}
}

func (uc *GapUseCase) Create(ctx context.Context, gap *model.Gap, confirmed bool) (*model.Gap, error) {
	if gap.Description == "" {
		return nil, goerr.New("gap description is required", goerr.T(TagInvalidInput))
	}
	if gap.Severity != "" && !gap.Severity.IsValid() {
		return nil, goerr.New("invalid gap severity", goerr.T(TagInvalidInput), goerr.V("severity", gap.Severity))
	}
	if gap.BoundaryControlID != nil {
		bc, err := uc.repo.BoundaryControl().Get(ctx, *gap.BoundaryControlID)
		if err != nil {
			return nil, err
		}
		gap.ProjectID = bc.ProjectID
		gap.ControlID = bc.ControlID
	}
	gap.IdentifiedBy = auth.UserIDFromContext(ctx)

	var created *model.Gap
	err := uc.guard.run(ctx, gap.ProjectID, types.PhaseEvidenceGaps, confirmed, func(ctx context.Context) error {
		var err error
		created, err = uc.repo.Gap().Create(ctx, gap)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (uc *GapUseCase) Get(ctx context.Context, id types.GapID) (*model.Gap, error) {
	return uc.repo.Gap().Get(ctx, id)
}

func (uc *GapUseCase) ListByProject(ctx context.Context, projectID types.ProjectID) ([]*model.Gap, error) {
	return uc.repo.Gap().ListByProject(ctx, projectID)
}

func (uc *GapUseCase) ListByBoundaryControl(ctx context.Context, bcID types.BoundaryControlID) ([]*model.Gap, error) {
	return uc.repo.Gap().ListByBoundaryControl(ctx, bcID)
}

func (uc *GapUseCase) Update(ctx context.Context, gap *model.Gap, confirmed bool) (*model.Gap, error) {
	if gap.Description == "" {
		return nil, goerr.New("gap description is required", goerr.T(TagInvalidInput))
	}

	existing, err := uc.repo.Gap().Get(ctx, gap.ID)
	if err != nil {
		return nil, err
	}
	if err := checkOwnership(ctx, existing.IdentifiedBy); err != nil {
		return nil, err
	}

	var updated *model.Gap
	err = uc.guard.run(ctx, existing.ProjectID, types.PhaseEvidenceGaps, confirmed, func(ctx context.Context) error {
		var err error
		updated, err = uc.repo.Gap().Update(ctx, gap)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (uc *GapUseCase) Delete(ctx context.Context, id types.GapID, confirmed bool) error {
	existing, err := uc.repo.Gap().Get(ctx, id)
	if err != nil {
		return err
	}
	if err := checkOwnership(ctx, existing.IdentifiedBy); err != nil {
		return err
	}

	return uc.guard.run(ctx, existing.ProjectID, types.PhaseEvidenceGaps, confirmed, func(ctx context.Context) error {
		return uc.repo.Gap().Delete(ctx, id)
	})
}

// checkOwnership enforces the per-record ownership rule: only the recording
// user may update or delete the record. Records without an owner predate the
// rule and stay editable.
func checkOwnership(ctx context.Context, owner types.UserID) error {
	if owner == "" {
		return nil
	}
	if userID := auth.UserIDFromContext(ctx); userID != owner {
		return goerr.Wrap(ErrAccessDenied, "record is owned by another user",
			goerr.V("owner", owner), goerr.V("user_id", userID))
	}
	return nil
}
