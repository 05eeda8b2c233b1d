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

type projectDocument struct {
	ID               string               `firestore:"id"`
	Name             string               `firestore:"name"`
	Description      string               `firestore:"description"`
	StartDate        *time.Time           `firestore:"start_date"`
	EndDate          *time.Time           `firestore:"end_date"`
	Status           string               `firestore:"status"`
	PhaseCompletions map[string]time.Time `firestore:"phase_completions"`
	UserID           string               `firestore:"user_id"`
	CreatedAt        time.Time            `firestore:"created_at"`
	UpdatedAt        time.Time            `firestore:"updated_at"`
}

func toProjectDocument(p *model.Project) *projectDocument {
	doc := &projectDocument{
		ID:          p.ID.String(),
		Name:        p.Name,
		Description: p.Description,
		StartDate:   p.StartDate,
		EndDate:     p.EndDate,
		Status:      p.Status.String(),
		UserID:      p.UserID.String(),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if len(p.PhaseCompletions) > 0 {
		doc.PhaseCompletions = make(map[string]time.Time, len(p.PhaseCompletions))
		for key, ts := range p.PhaseCompletions {
			doc.PhaseCompletions[key.String()] = ts
		}
	}
	return doc
}

func (d *projectDocument) toModel() *model.Project {
	p := &model.Project{
		ID:          types.ProjectID(d.ID),
		Name:        d.Name,
		Description: d.Description,
		StartDate:   d.StartDate,
		EndDate:     d.EndDate,
		Status:      types.ProjectStatus(d.Status),
		UserID:      types.UserID(d.UserID),
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
	if len(d.PhaseCompletions) > 0 {
		p.PhaseCompletions = make(map[types.PhaseKey]time.Time, len(d.PhaseCompletions))
		for key, ts := range d.PhaseCompletions {
			p.PhaseCompletions[types.PhaseKey(key)] = ts
		}
	}
	return p
}

type projectRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newProjectRepository(client *firestore.Client) *projectRepository {
	return &projectRepository{client: client}
}

func (r *projectRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_projects"
	}
	return "projects"
}

func (r *projectRepository) Create(ctx context.Context, project *model.Project) (*model.Project, error) {
	created := *project
	if created.ID == "" {
		created.ID = types.NewProjectID()
	}
	now := time.Now().UTC()
	created.CreatedAt = now
	created.UpdatedAt = now

	docRef := r.client.Collection(r.collection()).Doc(created.ID.String())
	if _, err := docRef.Set(ctx, toProjectDocument(&created)); err != nil {
		return nil, goerr.Wrap(err, "failed to create project", goerr.V("id", created.ID))
	}

	return &created, nil
}

func (r *projectRepository) Get(ctx context.Context, id types.ProjectID) (*model.Project, error) {
	docRef := r.client.Collection(r.collection()).Doc(id.String())
	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "project not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get project", goerr.V("id", id))
	}

	var projectDoc projectDocument
	if err := doc.DataTo(&projectDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal project", goerr.V("id", id))
	}

	return projectDoc.toModel(), nil
}

func (r *projectRepository) List(ctx context.Context) ([]*model.Project, error) {
	iter := r.client.Collection(r.collection()).OrderBy("created_at", firestore.Desc).Documents(ctx)
	defer iter.Stop()

	var projects []*model.Project
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate projects")
		}

		var projectDoc projectDocument
		if err := doc.DataTo(&projectDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal project")
		}

		projects = append(projects, projectDoc.toModel())
	}

	return projects, nil
}

func (r *projectRepository) Update(ctx context.Context, project *model.Project) (*model.Project, error) {
	docRef := r.client.Collection(r.collection()).Doc(project.ID.String())

	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "project not found", goerr.V("id", project.ID))
		}
		return nil, goerr.Wrap(err, "failed to get project", goerr.V("id", project.ID))
	}

	var existing projectDocument
	if err := doc.DataTo(&existing); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal project", goerr.V("id", project.ID))
	}

	updated := *project
	updated.UserID = types.UserID(existing.UserID)
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	// Phase completions are managed through SetPhaseCompletion only.
	updatedDoc := toProjectDocument(&updated)
	updatedDoc.PhaseCompletions = existing.PhaseCompletions

	if _, err := docRef.Set(ctx, updatedDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to update project", goerr.V("id", project.ID))
	}

	return updatedDoc.toModel(), nil
}

func (r *projectRepository) Delete(ctx context.Context, id types.ProjectID) error {
	docRef := r.client.Collection(r.collection()).Doc(id.String())

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "project not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to get project", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete project", goerr.V("id", id))
	}

	return nil
}

func (r *projectRepository) SetPhaseCompletion(ctx context.Context, id types.ProjectID, phase types.PhaseKey, ts *time.Time) error {
	docRef := r.client.Collection(r.collection()).Doc(id.String())

	value := interface{}(firestore.Delete)
	if ts != nil {
		value = ts.UTC()
	}

	_, err := docRef.Update(ctx, []firestore.Update{
		{Path: "phase_completions." + phase.String(), Value: value},
		{Path: "updated_at", Value: time.Now().UTC()},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "project not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to set phase completion",
			goerr.V("id", id), goerr.V("phase", phase))
	}

	return nil
}
