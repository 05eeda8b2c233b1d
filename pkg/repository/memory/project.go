package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/themis/pkg/domain/model"
	"github.com/secmon-lab/themis/pkg/domain/types"
)

type projectRepository struct {
	mu       sync.RWMutex
	projects map[types.ProjectID]*model.Project
}

func newProjectRepository() *projectRepository {
	return &projectRepository{
		projects: make(map[types.ProjectID]*model.Project),
	}
}

func copyProject(p *model.Project) *model.Project {
	copied := *p
	if p.PhaseCompletions != nil {
		copied.PhaseCompletions = make(map[types.PhaseKey]time.Time, len(p.PhaseCompletions))
		for k, v := range p.PhaseCompletions {
			copied.PhaseCompletions[k] = v
		}
	}
	if p.StartDate != nil {
		start := *p.StartDate
		copied.StartDate = &start
	}
	if p.EndDate != nil {
		end := *p.EndDate
		copied.EndDate = &end
	}
	return &copied
}

func (r *projectRepository) Create(ctx context.Context, project *model.Project) (*model.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := copyProject(project)
	if created.ID == "" {
		created.ID = types.NewProjectID()
	}
	created.Status = created.Status.Normalize()
	created.CreatedAt = now
	created.UpdatedAt = now

	r.projects[created.ID] = created
	return copyProject(created), nil
}

func (r *projectRepository) Get(ctx context.Context, id types.ProjectID) (*model.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	project, exists := r.projects[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "project not found", goerr.V("id", id))
	}

	return copyProject(project), nil
}

func (r *projectRepository) List(ctx context.Context) ([]*model.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	projects := make([]*model.Project, 0, len(r.projects))
	for _, p := range r.projects {
		projects = append(projects, copyProject(p))
	}

	sort.Slice(projects, func(i, j int) bool {
		return projects[i].CreatedAt.After(projects[j].CreatedAt)
	})

	return projects, nil
}

func (r *projectRepository) Update(ctx context.Context, project *model.Project) (*model.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.projects[project.ID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "project not found", goerr.V("id", project.ID))
	}

	updated := copyProject(project)
	updated.Status = updated.Status.Normalize()
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	r.projects[updated.ID] = updated
	return copyProject(updated), nil
}

func (r *projectRepository) Delete(ctx context.Context, id types.ProjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.projects[id]; !exists {
		return goerr.Wrap(ErrNotFound, "project not found", goerr.V("id", id))
	}

	delete(r.projects, id)
	return nil
}

func (r *projectRepository) SetPhaseCompletion(ctx context.Context, id types.ProjectID, phase types.PhaseKey, ts *time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	project, exists := r.projects[id]
	if !exists {
		return goerr.Wrap(ErrNotFound, "project not found", goerr.V("id", id))
	}

	if project.PhaseCompletions == nil {
		project.PhaseCompletions = make(map[types.PhaseKey]time.Time)
	}
	if ts == nil {
		delete(project.PhaseCompletions, phase)
	} else {
		project.PhaseCompletions[phase] = ts.UTC()
	}
	project.UpdatedAt = time.Now().UTC()

	return nil
}
