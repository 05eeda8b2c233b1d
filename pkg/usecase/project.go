package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/themis/pkg/domain/interfaces"
	"github.com/secmon-lab/themis/pkg/domain/model"
	"github.com/secmon-lab/themis/pkg/domain/model/auth"
	"github.com/secmon-lab/themis/pkg/domain/model/config"
	"github.com/secmon-lab/themis/pkg/domain/types"
)

type ProjectUseCase struct {
	repo   interfaces.Repository
	guard  *phaseGuard
	policy *config.PhasePolicy
	clock  func() time.Time
}

func NewProjectUseCase(repo interfaces.Repository, guard *phaseGuard, policy *config.PhasePolicy, clock func() time.Time) *ProjectUseCase {
	return &ProjectUseCase{
		repo:   repo,
		guard:  guard,
		policy: policy,
		clock:  clock,
	}
}

// ProjectView is a project with its derived display status.
type ProjectView struct {
	*model.Project
	DerivedStatus types.DerivedStatus `json:"derived_status"`
}

func (uc *ProjectUseCase) view(p *model.Project) *ProjectView {
	return &ProjectView{
		Project:       p,
		DerivedStatus: p.DeriveStatus(uc.policy, uc.clock()),
	}
}

func (uc *ProjectUseCase) Create(ctx context.Context, project *model.Project) (*ProjectView, error) {
	if project.Name == "" {
		return nil, goerr.New("project name is required", goerr.T(TagInvalidInput))
	}
	project.UserID = auth.UserIDFromContext(ctx)
	project.Status = project.Status.Normalize()

	created, err := uc.repo.Project().Create(ctx, project)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create project")
	}

	return uc.view(created), nil
}

func (uc *ProjectUseCase) Get(ctx context.Context, id types.ProjectID) (*ProjectView, error) {
	project, err := uc.repo.Project().Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.view(project), nil
}

func (uc *ProjectUseCase) List(ctx context.Context) ([]*ProjectView, error) {
	projects, err := uc.repo.Project().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list projects")
	}

	views := make([]*ProjectView, 0, len(projects))
	for _, p := range projects {
		views = append(views, uc.view(p))
	}
	return views, nil
}

func (uc *ProjectUseCase) Update(ctx context.Context, project *model.Project) (*ProjectView, error) {
	if project.Name == "" {
		return nil, goerr.New("project name is required", goerr.T(TagInvalidInput))
	}
	project.Status = project.Status.Normalize()

	updated, err := uc.repo.Project().Update(ctx, project)
	if err != nil {
		return nil, err
	}
	return uc.view(updated), nil
}

func (uc *ProjectUseCase) Delete(ctx context.Context, id types.ProjectID) error {
	return uc.repo.Project().Delete(ctx, id)
}

// PhaseProgress is the completion state of one workflow phase.
type PhaseProgress struct {
	Key         types.PhaseKey `json:"key"`
	CompletedAt *time.Time     `json:"completed_at,omitempty"`
	Guarded     bool           `json:"guarded"`
}

// PhaseProgressList returns the completion state of every phase of the
// project, in workflow order.
func (uc *ProjectUseCase) PhaseProgressList(ctx context.Context, id types.ProjectID) ([]*PhaseProgress, error) {
	project, err := uc.repo.Project().Get(ctx, id)
	if err != nil {
		return nil, err
	}

	keys := types.AllPhaseKeys()
	progress := make([]*PhaseProgress, 0, len(keys))
	for _, key := range keys {
		progress = append(progress, &PhaseProgress{
			Key:         key,
			CompletedAt: project.PhaseCompletedAt(key),
			Guarded:     uc.policy.GuardsPhase(key),
		})
	}
	return progress, nil
}
