package model

import (
	"time"

	"github.com/secmon-lab/themis/pkg/domain/types"
)

// Gap is a documented compliance shortfall. It is normally tied to a
// boundary-control association; older records may carry only the control
// reference, which the register aggregation falls back to when resolving
// evidence.
type Gap struct {
	ID                types.GapID              `json:"id"`
	ProjectID         types.ProjectID          `json:"project_id"`
	BoundaryControlID *types.BoundaryControlID `json:"boundary_control_id,omitempty"`
	ControlID         types.ControlID          `json:"control_id"`
	Description       string                   `json:"description"`
	Severity          types.GapSeverity        `json:"severity"`
	Status            types.GapStatus          `json:"status"`
	IdentifiedBy      types.UserID             `json:"identified_by"`
	CreatedAt         time.Time                `json:"created_at"`
	UpdatedAt         time.Time                `json:"updated_at"`
}
