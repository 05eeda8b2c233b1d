package model

import (
	"time"

	"github.com/secmon-lab/themis/pkg/domain/types"
)

// Stakeholder is a party with an interest in the ISMS project.
type Stakeholder struct {
	ID        types.StakeholderID `json:"id"`
	ProjectID types.ProjectID     `json:"project_id"`
	Name      string              `json:"name"`
	Role      string              `json:"role"`
	// Influence and Interest are free-form qualitative ratings.
	Influence string       `json:"influence"`
	Interest  string       `json:"interest"`
	UserID    types.UserID `json:"user_id"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}
