package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/themis/pkg/domain/model"
	"github.com/secmon-lab/themis/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type boundaryDocument struct {
	ID                     string    `firestore:"id"`
	ProjectID              string    `firestore:"project_id"`
	Name                   string    `firestore:"name"`
	Description            string    `firestore:"description"`
	Type                   string    `firestore:"type"`
	Included               bool      `firestore:"included"`
	AssetValueQualitative  string    `firestore:"asset_value_qualitative"`
	AssetValueQuantitative *float64  `firestore:"asset_value_quantitative"`
	UserID                 string    `firestore:"user_id"`
	CreatedAt              time.Time `firestore:"created_at"`
	UpdatedAt              time.Time `firestore:"updated_at"`
}

func toBoundaryDocument(b *model.Boundary) *boundaryDocument {
	return &boundaryDocument{
		ID:                     b.ID.String(),
		ProjectID:              b.ProjectID.String(),
		Name:                   b.Name,
		Description:            b.Description,
		Type:                   b.Type.String(),
		Included:               b.Included,
		AssetValueQualitative:  b.AssetValueQualitative,
		AssetValueQuantitative: b.AssetValueQuantitative,
		UserID:                 b.UserID.String(),
		CreatedAt:              b.CreatedAt,
		UpdatedAt:              b.UpdatedAt,
	}
}

func (d *boundaryDocument) toModel() *model.Boundary {
	return &model.Boundary{
		ID:                     types.BoundaryID(d.ID),
		ProjectID:              types.ProjectID(d.ProjectID),
		Name:                   d.Name,
		Description:            d.Description,
		Type:                   types.BoundaryType(d.Type),
		Included:               d.Included,
		AssetValueQualitative:  d.AssetValueQualitative,
		AssetValueQuantitative: d.AssetValueQuantitative,
		UserID:                 types.UserID(d.UserID),
		CreatedAt:              d.CreatedAt,
		UpdatedAt:              d.UpdatedAt,
	}
}

type boundaryRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newBoundaryRepository(client *firestore.Client) *boundaryRepository {
	return &boundaryRepository{client: client}
}

func (r *boundaryRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_boundaries"
	}
	return "boundaries"
}

func (r *boundaryRepository) findByName(ctx context.Context, projectID types.ProjectID, name string) (*boundaryDocument, error) {
	iter := r.client.Collection(r.collection()).
		Where("project_id", "==", projectID.String()).
		Where("name", "==", name).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, nil
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query boundary by name",
			goerr.V("project_id", projectID), goerr.V("name", name))
	}

	var boundaryDoc boundaryDocument
	if err := doc.DataTo(&boundaryDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal boundary")
	}

	return &boundaryDoc, nil
}

func (r *boundaryRepository) Create(ctx context.Context, boundary *model.Boundary) (*model.Boundary, error) {
	existing, err := r.findByName(ctx, boundary.ProjectID, boundary.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, goerr.Wrap(ErrDuplicateName, "boundary name already in use",
			goerr.V("project_id", boundary.ProjectID), goerr.V("name", boundary.Name))
	}

	created := *boundary
	if created.ID == "" {
		created.ID = types.NewBoundaryID()
	}
	now := time.Now().UTC()
	created.CreatedAt = now
	created.UpdatedAt = now

	docRef := r.client.Collection(r.collection()).Doc(created.ID.String())
	if _, err := docRef.Set(ctx, toBoundaryDocument(&created)); err != nil {
		return nil, goerr.Wrap(err, "failed to create boundary", goerr.V("id", created.ID))
	}

	return &created, nil
}

func (r *boundaryRepository) Get(ctx context.Context, id types.BoundaryID) (*model.Boundary, error) {
	docRef := r.client.Collection(r.collection()).Doc(id.String())
	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "boundary not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get boundary", goerr.V("id", id))
	}

	var boundaryDoc boundaryDocument
	if err := doc.DataTo(&boundaryDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal boundary", goerr.V("id", id))
	}

	return boundaryDoc.toModel(), nil
}

func (r *boundaryRepository) ListByProject(ctx context.Context, projectID types.ProjectID) ([]*model.Boundary, error) {
	iter := r.client.Collection(r.collection()).
		Where("project_id", "==", projectID.String()).
		Documents(ctx)
	defer iter.Stop()

	var boundaries []*model.Boundary
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate boundaries")
		}

		var boundaryDoc boundaryDocument
		if err := doc.DataTo(&boundaryDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal boundary")
		}

		boundaries = append(boundaries, boundaryDoc.toModel())
	}

	return boundaries, nil
}

func (r *boundaryRepository) Update(ctx context.Context, boundary *model.Boundary) (*model.Boundary, error) {
	docRef := r.client.Collection(r.collection()).Doc(boundary.ID.String())

	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "boundary not found", goerr.V("id", boundary.ID))
		}
		return nil, goerr.Wrap(err, "failed to get boundary", goerr.V("id", boundary.ID))
	}

	var existing boundaryDocument
	if err := doc.DataTo(&existing); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal boundary", goerr.V("id", boundary.ID))
	}

	if boundary.Name != existing.Name {
		dup, err := r.findByName(ctx, types.ProjectID(existing.ProjectID), boundary.Name)
		if err != nil {
			return nil, err
		}
		if dup != nil && dup.ID != existing.ID {
			return nil, goerr.Wrap(ErrDuplicateName, "boundary name already in use",
				goerr.V("project_id", existing.ProjectID), goerr.V("name", boundary.Name))
		}
	}

	updated := *boundary
	updated.ProjectID = types.ProjectID(existing.ProjectID)
	updated.UserID = types.UserID(existing.UserID)
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	if _, err := docRef.Set(ctx, toBoundaryDocument(&updated)); err != nil {
		return nil, goerr.Wrap(err, "failed to update boundary", goerr.V("id", boundary.ID))
	}

	return &updated, nil
}

func (r *boundaryRepository) Delete(ctx context.Context, id types.BoundaryID) error {
	docRef := r.client.Collection(r.collection()).Doc(id.String())

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "boundary not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to get boundary", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete boundary", goerr.V("id", id))
	}

	return nil
}

func (r *boundaryRepository) FindByName(ctx context.Context, projectID types.ProjectID, name string) (*model.Boundary, error) {
	doc, err := r.findByName(ctx, projectID, name)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, goerr.Wrap(ErrNotFound, "boundary not found",
			goerr.V("project_id", projectID), goerr.V("name", name))
	}
	return doc.toModel(), nil
}
