package model

import (
	"strings"
	"time"

	"github.com/secmon-lab/themis/pkg/domain/types"
)

// ComplianceAssessment is the assessment sub-state carried by a
// boundary-control association.
type ComplianceAssessment struct {
	Status     types.ComplianceStatus `json:"status"`
	AssessedAt *time.Time             `json:"assessed_at,omitempty"`
	Notes      string                 `json:"notes"`
}

// BoundaryControl is the applicability and compliance record for one catalog
// control against one boundary. At most one association may exist per
// (boundary, control) pair.
type BoundaryControl struct {
	ID              types.BoundaryControlID `json:"id"`
	BoundaryID      types.BoundaryID        `json:"boundary_id"`
	ControlID       types.ControlID         `json:"control_id"`
	ProjectID       types.ProjectID         `json:"project_id"`
	IsApplicable    bool                    `json:"is_applicable"`
	ReasonInclusion string                  `json:"reason_inclusion"`
	ReasonExclusion string                  `json:"reason_exclusion"`
	Assessment      ComplianceAssessment    `json:"assessment"`
	UserID          types.UserID            `json:"user_id"`
	CreatedAt       time.Time               `json:"created_at"`
	UpdatedAt       time.Time               `json:"updated_at"`
}

// BoundaryControlUpdate carries the mutable fields of an association. The
// identity fields (association ID, boundary, control, owner) are not
// represented here at all, so they cannot be changed through an update.
type BoundaryControlUpdate struct {
	IsApplicable     *bool                   `json:"is_applicable,omitempty"`
	ReasonInclusion  *string                 `json:"reason_inclusion,omitempty"`
	ReasonExclusion  *string                 `json:"reason_exclusion,omitempty"`
	AssessmentStatus *types.ComplianceStatus `json:"assessment_status,omitempty"`
	AssessedAt       *time.Time              `json:"assessed_at,omitempty"`
	AssessmentNotes  *string                 `json:"assessment_notes,omitempty"`
}

// Apply copies the set fields of the update onto the association.
func (u *BoundaryControlUpdate) Apply(bc *BoundaryControl) {
	if u.IsApplicable != nil {
		bc.IsApplicable = *u.IsApplicable
	}
	if u.ReasonInclusion != nil {
		bc.ReasonInclusion = *u.ReasonInclusion
	}
	if u.ReasonExclusion != nil {
		bc.ReasonExclusion = *u.ReasonExclusion
	}
	if u.AssessmentStatus != nil {
		bc.Assessment.Status = *u.AssessmentStatus
	}
	if u.AssessedAt != nil {
		bc.Assessment.AssessedAt = u.AssessedAt
	}
	if u.AssessmentNotes != nil {
		bc.Assessment.Notes = *u.AssessmentNotes
	}
}

// TouchesAssessment reports whether the update changes the compliance
// assessment sub-state. Assessment changes invalidate the evidence/gaps
// phase rather than the SOA phase.
func (u *BoundaryControlUpdate) TouchesAssessment() bool {
	return u.AssessmentStatus != nil || u.AssessedAt != nil || u.AssessmentNotes != nil
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
