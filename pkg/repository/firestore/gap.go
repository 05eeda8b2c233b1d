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

type gapDocument struct {
	ID                string    `firestore:"id"`
	ProjectID         string    `firestore:"project_id"`
	BoundaryControlID string    `firestore:"boundary_control_id"`
	ControlID         string    `firestore:"control_id"`
	Description       string    `firestore:"description"`
	Severity          string    `firestore:"severity"`
	Status            string    `firestore:"status"`
	IdentifiedBy      string    `firestore:"identified_by"`
	CreatedAt         time.Time `firestore:"created_at"`
	UpdatedAt         time.Time `firestore:"updated_at"`
}

func toGapDocument(g *model.Gap) *gapDocument {
	doc := &gapDocument{
		ID:           g.ID.String(),
		ProjectID:    g.ProjectID.String(),
		ControlID:    g.ControlID.String(),
		Description:  g.Description,
		Severity:     g.Severity.String(),
		Status:       g.Status.String(),
		IdentifiedBy: g.IdentifiedBy.String(),
		CreatedAt:    g.CreatedAt,
		UpdatedAt:    g.UpdatedAt,
	}
	if g.BoundaryControlID != nil {
		doc.BoundaryControlID = g.BoundaryControlID.String()
	}
	return doc
}

func (d *gapDocument) toModel() *model.Gap {
	g := &model.Gap{
		ID:           types.GapID(d.ID),
		ProjectID:    types.ProjectID(d.ProjectID),
		ControlID:    types.ControlID(d.ControlID),
		Description:  d.Description,
		Severity:     types.GapSeverity(d.Severity),
		Status:       types.GapStatus(d.Status).Normalize(),
		IdentifiedBy: types.UserID(d.IdentifiedBy),
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
	if d.BoundaryControlID != "" {
		id := types.BoundaryControlID(d.BoundaryControlID)
		g.BoundaryControlID = &id
	}
	return g
}

type gapRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newGapRepository(client *firestore.Client) *gapRepository {
	return &gapRepository{client: client}
}

func (r *gapRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_gaps"
	}
	return "gaps"
}

func (r *gapRepository) Create(ctx context.Context, gap *model.Gap) (*model.Gap, error) {
	created := *gap
	if created.ID == "" {
		created.ID = types.NewGapID()
	}
	created.Status = created.Status.Normalize()
	now := time.Now().UTC()
	created.CreatedAt = now
	created.UpdatedAt = now

	docRef := r.client.Collection(r.collection()).Doc(created.ID.String())
	if _, err := docRef.Set(ctx, toGapDocument(&created)); err != nil {
		return nil, goerr.Wrap(err, "failed to create gap", goerr.V("id", created.ID))
	}

	return &created, nil
}

func (r *gapRepository) Get(ctx context.Context, id types.GapID) (*model.Gap, error) {
	docRef := r.client.Collection(r.collection()).Doc(id.String())
	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "gap not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get gap", goerr.V("id", id))
	}

	var gapDoc gapDocument
	if err := doc.DataTo(&gapDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal gap", goerr.V("id", id))
	}

	return gapDoc.toModel(), nil
}

func (r *gapRepository) ListByProject(ctx context.Context, projectID types.ProjectID) ([]*model.Gap, error) {
	return r.list(ctx, "project_id", projectID.String())
}

func (r *gapRepository) ListByBoundaryControl(ctx context.Context, bcID types.BoundaryControlID) ([]*model.Gap, error) {
	return r.list(ctx, "boundary_control_id", bcID.String())
}

func (r *gapRepository) list(ctx context.Context, field, value string) ([]*model.Gap, error) {
	iter := r.client.Collection(r.collection()).Where(field, "==", value).Documents(ctx)
	defer iter.Stop()

	var gaps []*model.Gap
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate gaps")
		}

		var gapDoc gapDocument
		if err := doc.DataTo(&gapDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal gap")
		}

		gaps = append(gaps, gapDoc.toModel())
	}

	sort.Slice(gaps, func(i, j int) bool {
		return gaps[i].CreatedAt.After(gaps[j].CreatedAt)
	})

	return gaps, nil
}

func (r *gapRepository) Update(ctx context.Context, gap *model.Gap) (*model.Gap, error) {
	docRef := r.client.Collection(r.collection()).Doc(gap.ID.String())

	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "gap not found", goerr.V("id", gap.ID))
		}
		return nil, goerr.Wrap(err, "failed to get gap", goerr.V("id", gap.ID))
	}

	var existing gapDocument
	if err := doc.DataTo(&existing); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal gap", goerr.V("id", gap.ID))
	}

	updated := *gap
	updated.ProjectID = types.ProjectID(existing.ProjectID)
	updated.IdentifiedBy = types.UserID(existing.IdentifiedBy)
	updated.Status = updated.Status.Normalize()
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	if _, err := docRef.Set(ctx, toGapDocument(&updated)); err != nil {
		return nil, goerr.Wrap(err, "failed to update gap", goerr.V("id", gap.ID))
	}

	return &updated, nil
}

func (r *gapRepository) Delete(ctx context.Context, id types.GapID) error {
	docRef := r.client.Collection(r.collection()).Doc(id.String())

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "gap not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to get gap", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete gap", goerr.V("id", id))
	}

	return nil
}
