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

type objectiveRepository struct {
	mu         sync.RWMutex
	objectives map[types.ObjectiveID]*model.Objective
}

func newObjectiveRepository() *objectiveRepository {
	return &objectiveRepository{
		objectives: make(map[types.ObjectiveID]*model.Objective),
	}
}

func copyObjective(o *model.Objective) *model.Objective {
	copied := *o
	if o.TargetDate != nil {
		t := *o.TargetDate
		copied.TargetDate = &t
	}
	return &copied
}

func (r *objectiveRepository) Create(ctx context.Context, o *model.Objective) (*model.Objective, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := copyObjective(o)
	if created.ID == "" {
		created.ID = types.NewObjectiveID()
	}
	created.CreatedAt = now
	created.UpdatedAt = now

	r.objectives[created.ID] = created
	return copyObjective(created), nil
}

func (r *objectiveRepository) Get(ctx context.Context, id types.ObjectiveID) (*model.Objective, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, exists := r.objectives[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "objective not found", goerr.V("id", id))
	}

	return copyObjective(o), nil
}

func (r *objectiveRepository) ListByProject(ctx context.Context, projectID types.ProjectID) ([]*model.Objective, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var objectives []*model.Objective
	for _, o := range r.objectives {
		if o.ProjectID == projectID {
			objectives = append(objectives, copyObjective(o))
		}
	}

	sort.Slice(objectives, func(i, j int) bool {
		return objectives[i].CreatedAt.After(objectives[j].CreatedAt)
	})

	return objectives, nil
}

func (r *objectiveRepository) Update(ctx context.Context, o *model.Objective) (*model.Objective, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.objectives[o.ID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "objective not found", goerr.V("id", o.ID))
	}

	updated := copyObjective(o)
	updated.ProjectID = existing.ProjectID
	updated.UserID = existing.UserID
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	r.objectives[updated.ID] = updated
	return copyObjective(updated), nil
}

func (r *objectiveRepository) Delete(ctx context.Context, id types.ObjectiveID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.objectives[id]; !exists {
		return goerr.Wrap(ErrNotFound, "objective not found", goerr.V("id", id))
	}

	delete(r.objectives, id)
	return nil
}
