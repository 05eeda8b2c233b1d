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

type boundaryRepository struct {
	mu         sync.RWMutex
	boundaries map[types.BoundaryID]*model.Boundary
}

func newBoundaryRepository() *boundaryRepository {
	return &boundaryRepository{
		boundaries: make(map[types.BoundaryID]*model.Boundary),
	}
}

func copyBoundary(b *model.Boundary) *model.Boundary {
	copied := *b
	if b.AssetValueQuantitative != nil {
		v := *b.AssetValueQuantitative
		copied.AssetValueQuantitative = &v
	}
	return &copied
}

func (r *boundaryRepository) Create(ctx context.Context, boundary *model.Boundary) (*model.Boundary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, b := range r.boundaries {
		if b.ProjectID == boundary.ProjectID && b.Name == boundary.Name {
			return nil, goerr.Wrap(ErrDuplicateName, "boundary name already exists",
				goerr.V("project_id", boundary.ProjectID), goerr.V("name", boundary.Name))
		}
	}

	now := time.Now().UTC()
	created := copyBoundary(boundary)
	if created.ID == "" {
		created.ID = types.NewBoundaryID()
	}
	created.CreatedAt = now
	created.UpdatedAt = now

	r.boundaries[created.ID] = created
	return copyBoundary(created), nil
}

func (r *boundaryRepository) Get(ctx context.Context, id types.BoundaryID) (*model.Boundary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	boundary, exists := r.boundaries[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "boundary not found", goerr.V("id", id))
	}

	return copyBoundary(boundary), nil
}

func (r *boundaryRepository) ListByProject(ctx context.Context, projectID types.ProjectID) ([]*model.Boundary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var boundaries []*model.Boundary
	for _, b := range r.boundaries {
		if b.ProjectID == projectID {
			boundaries = append(boundaries, copyBoundary(b))
		}
	}

	sort.Slice(boundaries, func(i, j int) bool {
		return boundaries[i].Name < boundaries[j].Name
	})

	return boundaries, nil
}

func (r *boundaryRepository) Update(ctx context.Context, boundary *model.Boundary) (*model.Boundary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.boundaries[boundary.ID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "boundary not found", goerr.V("id", boundary.ID))
	}

	for _, b := range r.boundaries {
		if b.ID != boundary.ID && b.ProjectID == existing.ProjectID && b.Name == boundary.Name {
			return nil, goerr.Wrap(ErrDuplicateName, "boundary name already exists",
				goerr.V("project_id", existing.ProjectID), goerr.V("name", boundary.Name))
		}
	}

	updated := copyBoundary(boundary)
	updated.ProjectID = existing.ProjectID
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	r.boundaries[updated.ID] = updated
	return copyBoundary(updated), nil
}

func (r *boundaryRepository) Delete(ctx context.Context, id types.BoundaryID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.boundaries[id]; !exists {
		return goerr.Wrap(ErrNotFound, "boundary not found", goerr.V("id", id))
	}

	delete(r.boundaries, id)
	return nil
}

func (r *boundaryRepository) FindByName(ctx context.Context, projectID types.ProjectID, name string) (*model.Boundary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, b := range r.boundaries {
		if b.ProjectID == projectID && b.Name == name {
			return copyBoundary(b), nil
		}
	}

	return nil, goerr.Wrap(ErrNotFound, "boundary not found",
		goerr.V("project_id", projectID), goerr.V("name", name))
}
