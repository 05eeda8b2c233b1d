package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/themis/pkg/domain/model"
	"github.com/secmon-lab/themis/pkg/domain/types"
)

type controlRepository struct {
	mu       sync.RWMutex
	controls map[types.ControlID]*model.Control
}

func newControlRepository() *controlRepository {
	return &controlRepository{
		controls: make(map[types.ControlID]*model.Control),
	}
}

func copyControl(c *model.Control) *model.Control {
	copied := *c
	return &copied
}

func (r *controlRepository) Seed(ctx context.Context, controls []*model.Control) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range controls {
		if err := c.ID.Validate(); err != nil {
			return goerr.Wrap(err, "invalid control in catalog")
		}
		r.controls[c.ID] = copyControl(c)
	}
	return nil
}

func (r *controlRepository) Get(ctx context.Context, id types.ControlID) (*model.Control, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	control, exists := r.controls[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "control not found", goerr.V("id", id))
	}

	return copyControl(control), nil
}

func (r *controlRepository) List(ctx context.Context) ([]*model.Control, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	controls := make([]*model.Control, 0, len(r.controls))
	for _, c := range r.controls {
		controls = append(controls, copyControl(c))
	}

	sort.Slice(controls, func(i, j int) bool {
		return controls[i].ID < controls[j].ID
	})

	return controls, nil
}
