package model

import (
	"time"

	"github.com/secmon-lab/themis/pkg/domain/types"
)

// ThreatScenario is a named risk scenario, optionally tied to a gap, used as
// the subject of risk assessments. The SLE/ARO estimates recorded here are
// the scenario author's first guess; the assessments hold the reviewed
// figures.
type ThreatScenario struct {
	ID           types.ThreatScenarioID `json:"id"`
	ProjectID    types.ProjectID        `json:"project_id"`
	GapID        *types.GapID           `json:"gap_id,omitempty"`
	Name         string                 `json:"name"`
	Description  string                 `json:"description"`
	ActorType    types.ThreatActorType  `json:"actor_type"`
	SLE          *float64               `json:"sle,omitempty"`
	ARO          *float64               `json:"aro,omitempty"`
	TechniqueIDs []string               `json:"technique_ids,omitempty"`
	UserID       types.UserID           `json:"user_id"`
	CreatedAt    time.Time              `json:"created_at"`
	UpdatedAt    time.Time              `json:"updated_at"`
}
