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

type boundaryControlRepository struct {
	mu           sync.RWMutex
	associations map[types.BoundaryControlID]*model.BoundaryControl
}

func newBoundaryControlRepository() *boundaryControlRepository {
	return &boundaryControlRepository{
		associations: make(map[types.BoundaryControlID]*model.BoundaryControl),
	}
}

func copyBoundaryControl(bc *model.BoundaryControl) *model.BoundaryControl {
	copied := *bc
	if bc.Assessment.AssessedAt != nil {
		at := *bc.Assessment.AssessedAt
		copied.Assessment.AssessedAt = &at
	}
	return &copied
}

func (r *boundaryControlRepository) Create(ctx context.Context, bc *model.BoundaryControl) (*model.BoundaryControl, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := types.NewBoundaryControlID(bc.BoundaryID, bc.ControlID)
	if _, exists := r.associations[id]; exists {
		return nil, goerr.Wrap(ErrDuplicateAssociation, "association already exists",
			goerr.V("boundary_id", bc.BoundaryID), goerr.V("control_id", bc.ControlID))
	}

	now := time.Now().UTC()
	created := copyBoundaryControl(bc)
	created.ID = id
	created.Assessment.Status = created.Assessment.Status.Normalize()
	created.CreatedAt = now
	created.UpdatedAt = now

	r.associations[id] = created
	return copyBoundaryControl(created), nil
}

func (r *boundaryControlRepository) Get(ctx context.Context, id types.BoundaryControlID) (*model.BoundaryControl, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bc, exists := r.associations[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "boundary control not found", goerr.V("id", id))
	}

	return copyBoundaryControl(bc), nil
}

func (r *boundaryControlRepository) GetByPair(ctx context.Context, boundaryID types.BoundaryID, controlID types.ControlID) (*model.BoundaryControl, error) {
	return r.Get(ctx, types.NewBoundaryControlID(boundaryID, controlID))
}

func (r *boundaryControlRepository) ListByBoundary(ctx context.Context, boundaryID types.BoundaryID) ([]*model.BoundaryControl, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*model.BoundaryControl
	for _, bc := range r.associations {
		if bc.BoundaryID == boundaryID {
			result = append(result, copyBoundaryControl(bc))
		}
	}

	sortBoundaryControls(result)
	return result, nil
}

func (r *boundaryControlRepository) ListByProject(ctx context.Context, projectID types.ProjectID) ([]*model.BoundaryControl, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*model.BoundaryControl
	for _, bc := range r.associations {
		if bc.ProjectID == projectID {
			result = append(result, copyBoundaryControl(bc))
		}
	}

	sortBoundaryControls(result)
	return result, nil
}

func (r *boundaryControlRepository) Update(ctx context.Context, bc *model.BoundaryControl) (*model.BoundaryControl, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.associations[bc.ID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "boundary control not found", goerr.V("id", bc.ID))
	}

	updated := copyBoundaryControl(bc)
	// Identity fields are immutable regardless of the payload.
	updated.BoundaryID = existing.BoundaryID
	updated.ControlID = existing.ControlID
	updated.ProjectID = existing.ProjectID
	updated.UserID = existing.UserID
	updated.Assessment.Status = updated.Assessment.Status.Normalize()
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	r.associations[updated.ID] = updated
	return copyBoundaryControl(updated), nil
}

func (r *boundaryControlRepository) Delete(ctx context.Context, id types.BoundaryControlID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.associations[id]; !exists {
		return goerr.Wrap(ErrNotFound, "boundary control not found", goerr.V("id", id))
	}

	delete(r.associations, id)
	return nil
}

func sortBoundaryControls(bcs []*model.BoundaryControl) {
	sort.Slice(bcs, func(i, j int) bool {
		return bcs[i].ControlID < bcs[j].ControlID
	})
}
