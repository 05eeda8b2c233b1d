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

type objectiveDocument struct {
	ID          string     `firestore:"id"`
	ProjectID   string     `firestore:"project_id"`
	Title       string     `firestore:"title"`
	Description string     `firestore:"description"`
	TargetDate  *time.Time `firestore:"target_date"`
	Achieved    bool       `firestore:"achieved"`
	UserID      string     `firestore:"user_id"`
	CreatedAt   time.Time  `firestore:"created_at"`
	UpdatedAt   time.Time  `firestore:"updated_at"`
}

func toObjectiveDocument(o *model.Objective) *objectiveDocument {
	return &objectiveDocument{
		ID:          o.ID.String(),
		ProjectID:   o.ProjectID.String(),
		Title:       o.Title,
		Description: o.Description,
		TargetDate:  o.TargetDate,
		Achieved:    o.Achieved,
		UserID:      o.UserID.String(),
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}

func (d *objectiveDocument) toModel() *model.Objective {
	return &model.Objective{
		ID:          types.ObjectiveID(d.ID),
		ProjectID:   types.ProjectID(d.ProjectID),
		Title:       d.Title,
		Description: d.Description,
		TargetDate:  d.TargetDate,
		Achieved:    d.Achieved,
		UserID:      types.UserID(d.UserID),
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

type objectiveRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newObjectiveRepository(client *firestore.Client) *objectiveRepository {
	return &objectiveRepository{client: client}
}

func (r *objectiveRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_objectives"
	}
	return "objectives"
}

func (r *objectiveRepository) Create(ctx context.Context, o *model.Objective) (*model.Objective, error) {
	created := *o
	if created.ID == "" {
		created.ID = types.NewObjectiveID()
	}
	now := time.Now().UTC()
	created.CreatedAt = now
	created.UpdatedAt = now

	docRef := r.client.Collection(r.collection()).Doc(created.ID.String())
	if _, err := docRef.Set(ctx, toObjectiveDocument(&created)); err != nil {
		return nil, goerr.Wrap(err, "failed to create objective", goerr.V("id", created.ID))
	}

	return &created, nil
}

func (r *objectiveRepository) Get(ctx context.Context, id types.ObjectiveID) (*model.Objective, error) {
	docRef := r.client.Collection(r.collection()).Doc(id.String())
	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "objective not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get objective", goerr.V("id", id))
	}

	var objectiveDoc objectiveDocument
	if err := doc.DataTo(&objectiveDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal objective", goerr.V("id", id))
	}

	return objectiveDoc.toModel(), nil
}

func (r *objectiveRepository) ListByProject(ctx context.Context, projectID types.ProjectID) ([]*model.Objective, error) {
	iter := r.client.Collection(r.collection()).
		Where("project_id", "==", projectID.String()).
		Documents(ctx)
	defer iter.Stop()

	var objectives []*model.Objective
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate objectives")
		}

		var objectiveDoc objectiveDocument
		if err := doc.DataTo(&objectiveDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal objective")
		}

		objectives = append(objectives, objectiveDoc.toModel())
	}

	sort.Slice(objectives, func(i, j int) bool {
		return objectives[i].CreatedAt.After(objectives[j].CreatedAt)
	})

	return objectives, nil
}

func (r *objectiveRepository) Update(ctx context.Context, o *model.Objective) (*model.Objective, error) {
	docRef := r.client.Collection(r.collection()).Doc(o.ID.String())

	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "objective not found", goerr.V("id", o.ID))
		}
		return nil, goerr.Wrap(err, "failed to get objective", goerr.V("id", o.ID))
	}

	var existing objectiveDocument
	if err := doc.DataTo(&existing); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal objective", goerr.V("id", o.ID))
	}

	updated := *o
	updated.ProjectID = types.ProjectID(existing.ProjectID)
	updated.UserID = types.UserID(existing.UserID)
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	if _, err := docRef.Set(ctx, toObjectiveDocument(&updated)); err != nil {
		return nil, goerr.Wrap(err, "failed to update objective", goerr.V("id", o.ID))
	}

	return &updated, nil
}

func (r *objectiveRepository) Delete(ctx context.Context, id types.ObjectiveID) error {
	docRef := r.client.Collection(r.collection()).Doc(id.String())

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "objective not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to get objective", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete objective", goerr.V("id", id))
	}

	return nil
}
