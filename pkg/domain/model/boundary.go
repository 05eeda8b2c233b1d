package model

import (
	"time"

	"github.com/secmon-lab/themis/pkg/domain/types"
)

// Boundary represents an organizational scoping unit (department, system,
// location or other) that defines what is in or out of ISMS scope.
type Boundary struct {
	ID          types.BoundaryID   `json:"id"`
	ProjectID   types.ProjectID    `json:"project_id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Type        types.BoundaryType `json:"type"`
	Included    bool               `json:"included"`
	// Asset value may be recorded qualitatively, quantitatively, or not at all.
	AssetValueQualitative  string       `json:"asset_value_qualitative,omitempty"`
	AssetValueQuantitative *float64     `json:"asset_value_quantitative,omitempty"`
	UserID                 types.UserID `json:"user_id"`
	CreatedAt              time.Time    `json:"created_at"`
	UpdatedAt              time.Time    `json:"updated_at"`
}
