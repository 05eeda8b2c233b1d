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

type threatScenarioRepository struct {
	mu        sync.RWMutex
	scenarios map[types.ThreatScenarioID]*model.ThreatScenario
}

func newThreatScenarioRepository() *threatScenarioRepository {
	return &threatScenarioRepository{
		scenarios: make(map[types.ThreatScenarioID]*model.ThreatScenario),
	}
}

func copyThreatScenario(s *model.ThreatScenario) *model.ThreatScenario {
	copied := *s
	if s.GapID != nil {
		id := *s.GapID
		copied.GapID = &id
	}
	if s.SLE != nil {
		v := *s.SLE
		copied.SLE = &v
	}
	if s.ARO != nil {
		v := *s.ARO
		copied.ARO = &v
	}
	if s.TechniqueIDs != nil {
		copied.TechniqueIDs = make([]string, len(s.TechniqueIDs))
		copy(copied.TechniqueIDs, s.TechniqueIDs)
	}
	return &copied
}

func (r *threatScenarioRepository) Create(ctx context.Context, scenario *model.ThreatScenario) (*model.ThreatScenario, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := copyThreatScenario(scenario)
	if created.ID == "" {
		created.ID = types.NewThreatScenarioID()
	}
	created.CreatedAt = now
	created.UpdatedAt = now

	r.scenarios[created.ID] = created
	return copyThreatScenario(created), nil
}

func (r *threatScenarioRepository) Get(ctx context.Context, id types.ThreatScenarioID) (*model.ThreatScenario, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	scenario, exists := r.scenarios[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "threat scenario not found", goerr.V("id", id))
	}

	return copyThreatScenario(scenario), nil
}

func (r *threatScenarioRepository) ListByProject(ctx context.Context, projectID types.ProjectID) ([]*model.ThreatScenario, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var scenarios []*model.ThreatScenario
	for _, s := range r.scenarios {
		if s.ProjectID == projectID {
			scenarios = append(scenarios, copyThreatScenario(s))
		}
	}

	sort.Slice(scenarios, func(i, j int) bool {
		return scenarios[i].CreatedAt.After(scenarios[j].CreatedAt)
	})

	return scenarios, nil
}

func (r *threatScenarioRepository) Update(ctx context.Context, scenario *model.ThreatScenario) (*model.ThreatScenario, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.scenarios[scenario.ID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "threat scenario not found", goerr.V("id", scenario.ID))
	}

	updated := copyThreatScenario(scenario)
	updated.ProjectID = existing.ProjectID
	updated.UserID = existing.UserID
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	r.scenarios[updated.ID] = updated
	return copyThreatScenario(updated), nil
}

func (r *threatScenarioRepository) Delete(ctx context.Context, id types.ThreatScenarioID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.scenarios[id]; !exists {
		return goerr.Wrap(ErrNotFound, "threat scenario not found", goerr.V("id", id))
	}

	delete(r.scenarios, id)
	return nil
}
