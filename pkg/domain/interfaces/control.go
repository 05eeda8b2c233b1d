package interfaces

import (
	"context"

	"github.com/secmon-lab/themis/pkg/domain/model"
	"github.com/secmon-lab/themis/pkg/domain/types"
)

// ControlRepository holds the global control catalog. The catalog is
// read-only from the workflow's perspective; Seed is called at startup with
// the parsed catalog configuration.
type ControlRepository interface {
	Seed(ctx context.Context, controls []*model.Control) error
	Get(ctx context.Context, id types.ControlID) (*model.Control, error)
	List(ctx context.Context) ([]*model.Control, error)
}
