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

type evidenceRepository struct {
	mu      sync.RWMutex
	records map[types.EvidenceID]*model.Evidence
}

func newEvidenceRepository() *evidenceRepository {
	return &evidenceRepository{
		records: make(map[types.EvidenceID]*model.Evidence),
	}
}

func copyEvidence(e *model.Evidence) *model.Evidence {
	copied := *e
	if e.BoundaryControlID != nil {
		id := *e.BoundaryControlID
		copied.BoundaryControlID = &id
	}
	if e.File != nil {
		f := *e.File
		copied.File = &f
	}
	return &copied
}

func (r *evidenceRepository) Create(ctx context.Context, ev *model.Evidence) (*model.Evidence, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := copyEvidence(ev)
	if created.ID == "" {
		created.ID = types.NewEvidenceID()
	}
	created.CreatedAt = now
	created.UpdatedAt = now

	r.records[created.ID] = created
	return copyEvidence(created), nil
}

func (r *evidenceRepository) Get(ctx context.Context, id types.EvidenceID) (*model.Evidence, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ev, exists := r.records[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "evidence not found", goerr.V("id", id))
	}

	return copyEvidence(ev), nil
}

func (r *evidenceRepository) ListByProject(ctx context.Context, projectID types.ProjectID) ([]*model.Evidence, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var records []*model.Evidence
	for _, e := range r.records {
		if e.ProjectID == projectID {
			records = append(records, copyEvidence(e))
		}
	}

	sortEvidence(records)
	return records, nil
}

func (r *evidenceRepository) ListByBoundaryControl(ctx context.Context, bcID types.BoundaryControlID) ([]*model.Evidence, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var records []*model.Evidence
	for _, e := range r.records {
		if e.BoundaryControlID != nil && *e.BoundaryControlID == bcID {
			records = append(records, copyEvidence(e))
		}
	}

	sortEvidence(records)
	return records, nil
}

func (r *evidenceRepository) ListByControl(ctx context.Context, projectID types.ProjectID, controlID types.ControlID) ([]*model.Evidence, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var records []*model.Evidence
	for _, e := range r.records {
		if e.ProjectID == projectID && e.ControlID == controlID {
			records = append(records, copyEvidence(e))
		}
	}

	sortEvidence(records)
	return records, nil
}

func (r *evidenceRepository) Update(ctx context.Context, ev *model.Evidence) (*model.Evidence, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.records[ev.ID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "evidence not found", goerr.V("id", ev.ID))
	}

	updated := copyEvidence(ev)
	updated.ProjectID = existing.ProjectID
	updated.UploadedBy = existing.UploadedBy
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	r.records[updated.ID] = updated
	return copyEvidence(updated), nil
}

func (r *evidenceRepository) Delete(ctx context.Context, id types.EvidenceID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.records[id]; !exists {
		return goerr.Wrap(ErrNotFound, "evidence not found", goerr.V("id", id))
	}

	delete(r.records, id)
	return nil
}

func sortEvidence(records []*model.Evidence) {
	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
}
