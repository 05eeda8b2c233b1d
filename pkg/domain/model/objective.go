package model

import (
	"time"

	"github.com/secmon-lab/themis/pkg/domain/types"
)

// Objective is a security objective tracked by the project.
type Objective struct {
	ID          types.ObjectiveID `json:"id"`
	ProjectID   types.ProjectID   `json:"project_id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	TargetDate  *time.Time        `json:"target_date,omitempty"`
	Achieved    bool              `json:"achieved"`
	UserID      types.UserID      `json:"user_id"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}
