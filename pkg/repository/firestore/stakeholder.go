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

type stakeholderDocument struct {
	ID        string    `firestore:"id"`
	ProjectID string    `firestore:"project_id"`
	Name      string    `firestore:"name"`
	Role      string    `firestore:"role"`
	Influence string    `firestore:"influence"`
	Interest  string    `firestore:"interest"`
	UserID    string    `firestore:"user_id"`
	CreatedAt time.Time `firestore:"created_at"`
	UpdatedAt time.Time `firestore:"updated_at"`
}

func toStakeholderDocument(s *model.Stakeholder) *stakeholderDocument {
	return &stakeholderDocument{
		ID:        s.ID.String(),
		ProjectID: s.ProjectID.String(),
		Name:      s.Name,
		Role:      s.Role,
		Influence: s.Influence,
		Interest:  s.Interest,
		UserID:    s.UserID.String(),
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func (d *stakeholderDocument) toModel() *model.Stakeholder {
	return &model.Stakeholder{
		ID:        types.StakeholderID(d.ID),
		ProjectID: types.ProjectID(d.ProjectID),
		Name:      d.Name,
		Role:      d.Role,
		Influence: d.Influence,
		Interest:  d.Interest,
		UserID:    types.UserID(d.UserID),
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

type stakeholderRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newStakeholderRepository(client *firestore.Client) *stakeholderRepository {
	return &stakeholderRepository{client: client}
}

func (r *stakeholderRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_stakeholders"
	}
	return "stakeholders"
}

func (r *stakeholderRepository) Create(ctx context.Context, s *model.Stakeholder) (*model.Stakeholder, error) {
	created := *s
	if created.ID == "" {
		created.ID = types.NewStakeholderID()
	}
	now := time.Now().UTC()
	created.CreatedAt = now
	created.UpdatedAt = now

	docRef := r.client.Collection(r.collection()).Doc(created.ID.String())
	if _, err := docRef.Set(ctx, toStakeholderDocument(&created)); err != nil {
		return nil, goerr.Wrap(err, "failed to create stakeholder", goerr.V("id", created.ID))
	}

	return &created, nil
}

func (r *stakeholderRepository) Get(ctx context.Context, id types.StakeholderID) (*model.Stakeholder, error) {
	docRef := r.client.Collection(r.collection()).Doc(id.String())
	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "stakeholder not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get stakeholder", goerr.V("id", id))
	}

	var stakeholderDoc stakeholderDocument
	if err := doc.DataTo(&stakeholderDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal stakeholder", goerr.V("id", id))
	}

	return stakeholderDoc.toModel(), nil
}

func (r *stakeholderRepository) ListByProject(ctx context.Context, projectID types.ProjectID) ([]*model.Stakeholder, error) {
	iter := r.client.Collection(r.collection()).
		Where("project_id", "==", projectID.String()).
		Documents(ctx)
	defer iter.Stop()

	var stakeholders []*model.Stakeholder
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate stakeholders")
		}

		var stakeholderDoc stakeholderDocument
		if err := doc.DataTo(&stakeholderDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal stakeholder")
		}

		stakeholders = append(stakeholders, stakeholderDoc.toModel())
	}

	sort.Slice(stakeholders, func(i, j int) bool {
		return stakeholders[i].Name < stakeholders[j].Name
	})

	return stakeholders, nil
}

func (r *stakeholderRepository) Update(ctx context.Context, s *model.Stakeholder) (*model.Stakeholder, error) {
	docRef := r.client.Collection(r.collection()).Doc(s.ID.String())

	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "stakeholder not found", goerr.V("id", s.ID))
		}
		return nil, goerr.Wrap(err, "failed to get stakeholder", goerr.V("id", s.ID))
	}

	var existing stakeholderDocument
	if err := doc.DataTo(&existing); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal stakeholder", goerr.V("id", s.ID))
	}

	updated := *s
	updated.ProjectID = types.ProjectID(existing.ProjectID)
	updated.UserID = types.UserID(existing.UserID)
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	if _, err := docRef.Set(ctx, toStakeholderDocument(&updated)); err != nil {
		return nil, goerr.Wrap(err, "failed to update stakeholder", goerr.V("id", s.ID))
	}

	return &updated, nil
}

func (r *stakeholderRepository) Delete(ctx context.Context, id types.StakeholderID) error {
	docRef := r.client.Collection(r.collection()).Doc(id.String())

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "stakeholder not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to get stakeholder", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete stakeholder", goerr.V("id", id))
	}

	return nil
}
