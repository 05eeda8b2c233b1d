package firestore

import (
	"context"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/themis/pkg/domain/model"
	"github.com/secmon-lab/themis/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type boundaryControlDocument struct {
	ID               string     `firestore:"id"`
	BoundaryID       string     `firestore:"boundary_id"`
	ControlID        string     `firestore:"control_id"`
	ProjectID        string     `firestore:"project_id"`
	IsApplicable     bool       `firestore:"is_applicable"`
	ReasonInclusion  string     `firestore:"reason_inclusion"`
	ReasonExclusion  string     `firestore:"reason_exclusion"`
	AssessmentStatus string     `firestore:"assessment_status"`
	AssessedAt       *time.Time `firestore:"assessed_at"`
	AssessmentNotes  string     `firestore:"assessment_notes"`
	UserID           string     `firestore:"user_id"`
	CreatedAt        time.Time  `firestore:"created_at"`
	UpdatedAt        time.Time  `firestore:"updated_at"`
}

func toBoundaryControlDocument(bc *model.BoundaryControl) *boundaryControlDocument {
	return &boundaryControlDocument{
		ID:               bc.ID.String(),
		BoundaryID:       bc.BoundaryID.String(),
		ControlID:        bc.ControlID.String(),
		ProjectID:        bc.ProjectID.String(),
		IsApplicable:     bc.IsApplicable,
		ReasonInclusion:  bc.ReasonInclusion,
		ReasonExclusion:  bc.ReasonExclusion,
		AssessmentStatus: bc.Assessment.Status.String(),
		AssessedAt:       bc.Assessment.AssessedAt,
		AssessmentNotes:  bc.Assessment.Notes,
		UserID:           bc.UserID.String(),
		CreatedAt:        bc.CreatedAt,
		UpdatedAt:        bc.UpdatedAt,
	}
}

func (d *boundaryControlDocument) toModel() *model.BoundaryControl {
	return &model.BoundaryControl{
		ID:              types.BoundaryControlID(d.ID),
		BoundaryID:      types.BoundaryID(d.BoundaryID),
		ControlID:       types.ControlID(d.ControlID),
		ProjectID:       types.ProjectID(d.ProjectID),
		IsApplicable:    d.IsApplicable,
		ReasonInclusion: d.ReasonInclusion,
		ReasonExclusion: d.ReasonExclusion,
		Assessment: model.ComplianceAssessment{
			Status:     types.ComplianceStatus(d.AssessmentStatus).Normalize(),
			AssessedAt: d.AssessedAt,
			Notes:      d.AssessmentNotes,
		},
		UserID:    types.UserID(d.UserID),
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

type boundaryControlRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newBoundaryControlRepository(client *firestore.Client) *boundaryControlRepository {
	return &boundaryControlRepository{client: client}
}

func (r *boundaryControlRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_boundary_controls"
	}
	return "boundary_controls"
}

// Create enforces pair uniqueness with a deterministic document ID derived
// from the boundary and control, created inside a transaction.
func (r *boundaryControlRepository) Create(ctx context.Context, bc *model.BoundaryControl) (*model.BoundaryControl, error) {
	created := *bc
	created.ID = types.NewBoundaryControlID(bc.BoundaryID, bc.ControlID)
	now := time.Now().UTC()
	created.CreatedAt = now
	created.UpdatedAt = now

	docRef := r.client.Collection(r.collection()).Doc(created.ID.String())
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if _, err := tx.Get(docRef); err == nil {
			return goerr.Wrap(ErrDuplicateAssociation, "association already exists",
				goerr.V("boundary_id", bc.BoundaryID), goerr.V("control_id", bc.ControlID))
		} else if status.Code(err) != codes.NotFound {
			return goerr.Wrap(err, "failed to check association")
		}
		return tx.Set(docRef, toBoundaryControlDocument(&created))
	})
	if err != nil {
		return nil, err
	}

	return &created, nil
}

func (r *boundaryControlRepository) Get(ctx context.Context, id types.BoundaryControlID) (*model.BoundaryControl, error) {
	docRef := r.client.Collection(r.collection()).Doc(id.String())
	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "association not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get association", goerr.V("id", id))
	}

	var bcDoc boundaryControlDocument
	if err := doc.DataTo(&bcDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal association", goerr.V("id", id))
	}

	return bcDoc.toModel(), nil
}

func (r *boundaryControlRepository) GetByPair(ctx context.Context, boundaryID types.BoundaryID, controlID types.ControlID) (*model.BoundaryControl, error) {
	return r.Get(ctx, types.NewBoundaryControlID(boundaryID, controlID))
}

func (r *boundaryControlRepository) ListByBoundary(ctx context.Context, boundaryID types.BoundaryID) ([]*model.BoundaryControl, error) {
	return r.list(ctx, "boundary_id", boundaryID.String())
}

func (r *boundaryControlRepository) ListByProject(ctx context.Context, projectID types.ProjectID) ([]*model.BoundaryControl, error) {
	return r.list(ctx, "project_id", projectID.String())
}

func (r *boundaryControlRepository) list(ctx context.Context, field, value string) ([]*model.BoundaryControl, error) {
	iter := r.client.Collection(r.collection()).Where(field, "==", value).Documents(ctx)
	defer iter.Stop()

	var records []*model.BoundaryControl
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate associations")
		}

		var bcDoc boundaryControlDocument
		if err := doc.DataTo(&bcDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal association")
		}

		records = append(records, bcDoc.toModel())
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].ControlID < records[j].ControlID
	})

	return records, nil
}

func (r *boundaryControlRepository) Update(ctx context.Context, bc *model.BoundaryControl) (*model.BoundaryControl, error) {
	docRef := r.client.Collection(r.collection()).Doc(bc.ID.String())

	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "association not found", goerr.V("id", bc.ID))
		}
		return nil, goerr.Wrap(err, "failed to get association", goerr.V("id", bc.ID))
	}

	var existing boundaryControlDocument
	if err := doc.DataTo(&existing); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal association", goerr.V("id", bc.ID))
	}

	updated := *bc
	updated.BoundaryID = types.BoundaryID(existing.BoundaryID)
	updated.ControlID = types.ControlID(existing.ControlID)
	updated.ProjectID = types.ProjectID(existing.ProjectID)
	updated.UserID = types.UserID(existing.UserID)
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	if _, err := docRef.Set(ctx, toBoundaryControlDocument(&updated)); err != nil {
		return nil, goerr.Wrap(err, "failed to update association", goerr.V("id", bc.ID))
	}

	return &updated, nil
}

func (r *boundaryControlRepository) Delete(ctx context.Context, id types.BoundaryControlID) error {
	docRef := r.client.Collection(r.collection()).Doc(id.String())

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "association not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to get association", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete association", goerr.V("id", id))
	}

	return nil
}
