package model

import (
	"time"

	"github.com/secmon-lab/themis/pkg/domain/types"
)

// FileRef points at an uploaded evidence attachment in blob storage.
type FileRef struct {
	Key         string `json:"key"`
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

// Evidence is a document or artifact supporting compliance with a
// boundary-control association. BoundaryControlID may be unset for evidence
// attached at the control level only.
type Evidence struct {
	ID                types.EvidenceID         `json:"id"`
	ProjectID         types.ProjectID          `json:"project_id"`
	BoundaryControlID *types.BoundaryControlID `json:"boundary_control_id,omitempty"`
	ControlID         types.ControlID          `json:"control_id,omitempty"`
	Title             string                   `json:"title"`
	Description       string                   `json:"description"`
	File              *FileRef                 `json:"file,omitempty"`
	UploadedBy        types.UserID             `json:"uploaded_by"`
	CreatedAt         time.Time                `json:"created_at"`
	UpdatedAt         time.Time                `json:"updated_at"`
}
