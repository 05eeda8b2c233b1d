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

type fileRefDocument struct {
	Key         string `firestore:"key"`
	Filename    string `firestore:"filename"`
	ContentType string `firestore:"content_type"`
	Size        int64  `firestore:"size"`
}

type evidenceDocument struct {
	ID                string           `firestore:"id"`
	ProjectID         string           `firestore:"project_id"`
	BoundaryControlID string           `firestore:"boundary_control_id"`
	ControlID         string           `firestore:"control_id"`
	Title             string           `firestore:"title"`
	Description       string           `firestore:"description"`
	File              *fileRefDocument `firestore:"file"`
	UploadedBy        string           `firestore:"uploaded_by"`
	CreatedAt         time.Time        `firestore:"created_at"`
	UpdatedAt         time.Time        `firestore:"updated_at"`
}

func toEvidenceDocument(e *model.Evidence) *evidenceDocument {
	doc := &evidenceDocument{
		ID:          e.ID.String(),
		ProjectID:   e.ProjectID.String(),
		ControlID:   e.ControlID.String(),
		Title:       e.Title,
		Description: e.Description,
		UploadedBy:  e.UploadedBy.String(),
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
	if e.BoundaryControlID != nil {
		doc.BoundaryControlID = e.BoundaryControlID.String()
	}
	if e.File != nil {
		doc.File = &fileRefDocument{
			Key:         e.File.Key,
			Filename:    e.File.Filename,
			ContentType: e.File.ContentType,
			Size:        e.File.Size,
		}
	}
	return doc
}

func (d *evidenceDocument) toModel() *model.Evidence {
	e := &model.Evidence{
		ID:          types.EvidenceID(d.ID),
		ProjectID:   types.ProjectID(d.ProjectID),
		ControlID:   types.ControlID(d.ControlID),
		Title:       d.Title,
		Description: d.Description,
		UploadedBy:  types.UserID(d.UploadedBy),
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
	if d.BoundaryControlID != "" {
		id := types.BoundaryControlID(d.BoundaryControlID)
		e.BoundaryControlID = &id
	}
	if d.File != nil {
		e.File = &model.FileRef{
			Key:         d.File.Key,
			Filename:    d.File.Filename,
			ContentType: d.File.ContentType,
			Size:        d.File.Size,
		}
	}
	return e
}

type evidenceRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newEvidenceRepository(client *firestore.Client) *evidenceRepository {
	return &evidenceRepository{client: client}
}

func (r *evidenceRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_evidence"
	}
	return "evidence"
}

func (r *evidenceRepository) Create(ctx context.Context, ev *model.Evidence) (*model.Evidence, error) {
	created := *ev
	if created.ID == "" {
		created.ID = types.NewEvidenceID()
	}
	now := time.Now().UTC()
	created.CreatedAt = now
	created.UpdatedAt = now

	docRef := r.client.Collection(r.collection()).Doc(created.ID.String())
	if _, err := docRef.Set(ctx, toEvidenceDocument(&created)); err != nil {
		return nil, goerr.Wrap(err, "failed to create evidence", goerr.V("id", created.ID))
	}

	return &created, nil
}

func (r *evidenceRepository) Get(ctx context.Context, id types.EvidenceID) (*model.Evidence, error) {
	docRef := r.client.Collection(r.collection()).Doc(id.String())
	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "evidence not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get evidence", goerr.V("id", id))
	}

	var evDoc evidenceDocument
	if err := doc.DataTo(&evDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal evidence", goerr.V("id", id))
	}

	return evDoc.toModel(), nil
}

func (r *evidenceRepository) ListByProject(ctx context.Context, projectID types.ProjectID) ([]*model.Evidence, error) {
	query := r.client.Collection(r.collection()).Where("project_id", "==", projectID.String())
	return r.list(ctx, query)
}

func (r *evidenceRepository) ListByBoundaryControl(ctx context.Context, bcID types.BoundaryControlID) ([]*model.Evidence, error) {
	query := r.client.Collection(r.collection()).Where("boundary_control_id", "==", bcID.String())
	return r.list(ctx, query)
}

func (r *evidenceRepository) ListByControl(ctx context.Context, projectID types.ProjectID, controlID types.ControlID) ([]*model.Evidence, error) {
	query := r.client.Collection(r.collection()).
		Where("project_id", "==", projectID.String()).
		Where("control_id", "==", controlID.String())
	return r.list(ctx, query)
}

func (r *evidenceRepository) list(ctx context.Context, query firestore.Query) ([]*model.Evidence, error) {
	iter := query.Documents(ctx)
	defer iter.Stop()

	var records []*model.Evidence
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate evidence")
		}

		var evDoc evidenceDocument
		if err := doc.DataTo(&evDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal evidence")
		}

		records = append(records, evDoc.toModel())
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})

	return records, nil
}

func (r *evidenceRepository) Update(ctx context.Context, ev *model.Evidence) (*model.Evidence, error) {
	docRef := r.client.Collection(r.collection()).Doc(ev.ID.String())

	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "evidence not found", goerr.V("id", ev.ID))
		}
		return nil, goerr.Wrap(err, "failed to get evidence", goerr.V("id", ev.ID))
	}

	var existing evidenceDocument
	if err := doc.DataTo(&existing); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal evidence", goerr.V("id", ev.ID))
	}

	updated := *ev
	updated.ProjectID = types.ProjectID(existing.ProjectID)
	updated.UploadedBy = types.UserID(existing.UploadedBy)
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	if _, err := docRef.Set(ctx, toEvidenceDocument(&updated)); err != nil {
		return nil, goerr.Wrap(err, "failed to update evidence", goerr.V("id", ev.ID))
	}

	return &updated, nil
}

func (r *evidenceRepository) Delete(ctx context.Context, id types.EvidenceID) error {
	docRef := r.client.Collection(r.collection()).Doc(id.String())

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "evidence not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to get evidence", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete evidence", goerr.V("id", id))
	}

	return nil
}
