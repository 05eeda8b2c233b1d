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

type stakeholderRepository struct {
	mu           sync.RWMutex
	stakeholders map[types.StakeholderID]*model.Stakeholder
}

func newStakeholderRepository() *stakeholderRepository {
	return &stakeholderRepository{
		stakeholders: make(map[types.StakeholderID]*model.Stakeholder),
	}
}

func copyStakeholder(s *model.Stakeholder) *model.Stakeholder {
	copied := *s
	return &copied
}

func (r *stakeholderRepository) Create(ctx context.Context, s *model.Stakeholder) (*model.Stakeholder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := copyStakeholder(s)
	if created.ID == "" {
		created.ID = types.NewStakeholderID()
	}
	created.CreatedAt = now
	created.UpdatedAt = now

	r.stakeholders[created.ID] = created
	return copyStakeholder(created), nil
}

func (r *stakeholderRepository) Get(ctx context.Context, id types.StakeholderID) (*model.Stakeholder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, exists := r.stakeholders[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "stakeholder not found", goerr.V("id", id))
	}

	return copyStakeholder(s), nil
}

func (r *stakeholderRepository) ListByProject(ctx context.Context, projectID types.ProjectID) ([]*model.Stakeholder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*model.Stakeholder
	for _, s := range r.stakeholders {
		if s.ProjectID == projectID {
			result = append(result, copyStakeholder(s))
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})

	return result, nil
}

func (r *stakeholderRepository) Update(ctx context.Context, s *model.Stakeholder) (*model.Stakeholder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.stakeholders[s.ID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "stakeholder not found", goerr.V("id", s.ID))
	}

	updated := copyStakeholder(s)
	updated.ProjectID = existing.ProjectID
	updated.UserID = existing.UserID
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	r.stakeholders[updated.ID] = updated
	return copyStakeholder(updated), nil
}

func (r *stakeholderRepository) Delete(ctx context.Context, id types.StakeholderID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.stakeholders[id]; !exists {
		return goerr.Wrap(ErrNotFound, "stakeholder not found", goerr.V("id", id))
	}

	delete(r.stakeholders, id)
	return nil
}
