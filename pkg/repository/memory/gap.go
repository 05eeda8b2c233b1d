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

type gapRepository struct {
	mu   sync.RWMutex
	gaps map[types.GapID]*model.Gap
}

func newGapRepository() *gapRepository {
	return &gapRepository{
		gaps: make(map[types.GapID]*model.Gap),
	}
}

func copyGap(g *model.Gap) *model.Gap {
	copied := *g
	if g.BoundaryControlID != nil {
		id := *g.BoundaryControlID
		copied.BoundaryControlID = &id
	}
	return &copied
}

func (r *gapRepository) Create(ctx context.Context, gap *model.Gap) (*model.Gap, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := copyGap(gap)
	if created.ID == "" {
		created.ID = types.NewGapID()
	}
	created.Status = created.Status.Normalize()
	created.CreatedAt = now
	created.UpdatedAt = now

	r.gaps[created.ID] = created
	return copyGap(created), nil
}

func (r *gapRepository) Get(ctx context.Context, id types.GapID) (*model.Gap, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	gap, exists := r.gaps[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "gap not found", goerr.V("id", id))
	}

	return copyGap(gap), nil
}

func (r *gapRepository) ListByProject(ctx context.Context, projectID types.ProjectID) ([]*model.Gap, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var gaps []*model.Gap
	for _, g := range r.gaps {
		if g.ProjectID == projectID {
			gaps = append(gaps, copyGap(g))
		}
	}

	sortGaps(gaps)
	return gaps, nil
}

func (r *gapRepository) ListByBoundaryControl(ctx context.Context, bcID types.BoundaryControlID) ([]*model.Gap, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var gaps []*model.Gap
	for _, g := range r.gaps {
		if g.BoundaryControlID != nil && *g.BoundaryControlID == bcID {
			gaps = append(gaps, copyGap(g))
		}
	}

	sortGaps(gaps)
	return gaps, nil
}

func (r *gapRepository) Update(ctx context.Context, gap *model.Gap) (*model.Gap, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.gaps[gap.ID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "gap not found", goerr.V("id", gap.ID))
	}

	updated := copyGap(gap)
	updated.ProjectID = existing.ProjectID
	updated.IdentifiedBy = existing.IdentifiedBy
	updated.Status = updated.Status.Normalize()
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	r.gaps[updated.ID] = updated
	return copyGap(updated), nil
}

func (r *gapRepository) Delete(ctx context.Context, id types.GapID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.gaps[id]; !exists {
		return goerr.Wrap(ErrNotFound, "gap not found", goerr.V("id", id))
	}

	delete(r.gaps, id)
	return nil
}

func sortGaps(gaps []*model.Gap) {
	sort.Slice(gaps, func(i, j int) bool {
		return gaps[i].CreatedAt.After(gaps[j].CreatedAt)
	})
}
