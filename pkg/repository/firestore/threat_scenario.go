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

type threatScenarioDocument struct {
	ID           string    `firestore:"id"`
	ProjectID    string    `firestore:"project_id"`
	GapID        string    `firestore:"gap_id"`
	Name         string    `firestore:"name"`
	Description  string    `firestore:"description"`
	ActorType    string    `firestore:"actor_type"`
	SLE          *float64  `firestore:"sle"`
	ARO          *float64  `firestore:"aro"`
	TechniqueIDs []string  `firestore:"technique_ids"`
	UserID       string    `firestore:"user_id"`
	CreatedAt    time.Time `firestore:"created_at"`
	UpdatedAt    time.Time `firestore:"updated_at"`
}

func toThreatScenarioDocument(s *model.ThreatScenario) *threatScenarioDocument {
	doc := &threatScenarioDocument{
		ID:           s.ID.String(),
		ProjectID:    s.ProjectID.String(),
		Name:         s.Name,
		Description:  s.Description,
		ActorType:    s.ActorType.String(),
		SLE:          s.SLE,
		ARO:          s.ARO,
		TechniqueIDs: s.TechniqueIDs,
		UserID:       s.UserID.String(),
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
	if s.GapID != nil {
		doc.GapID = s.GapID.String()
	}
	return doc
}

func (d *threatScenarioDocument) toModel() *model.ThreatScenario {
	s := &model.ThreatScenario{
		ID:           types.ThreatScenarioID(d.ID),
		ProjectID:    types.ProjectID(d.ProjectID),
		Name:         d.Name,
		Description:  d.Description,
		ActorType:    types.ThreatActorType(d.ActorType),
		SLE:          d.SLE,
		ARO:          d.ARO,
		TechniqueIDs: d.TechniqueIDs,
		UserID:       types.UserID(d.UserID),
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
	if d.GapID != "" {
		id := types.GapID(d.GapID)
		s.GapID = &id
	}
	return s
}

type threatScenarioRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newThreatScenarioRepository(client *firestore.Client) *threatScenarioRepository {
	return &threatScenarioRepository{client: client}
}

func (r *threatScenarioRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_threat_scenarios"
	}
	return "threat_scenarios"
}

func (r *threatScenarioRepository) Create(ctx context.Context, scenario *model.ThreatScenario) (*model.ThreatScenario, error) {
	created := *scenario
	if created.ID == "" {
		created.ID = types.NewThreatScenarioID()
	}
	now := time.Now().UTC()
	created.CreatedAt = now
	created.UpdatedAt = now

	docRef := r.client.Collection(r.collection()).Doc(created.ID.String())
	if _, err := docRef.Set(ctx, toThreatScenarioDocument(&created)); err != nil {
		return nil, goerr.Wrap(err, "failed to create threat scenario", goerr.V("id", created.ID))
	}

	return &created, nil
}

func (r *threatScenarioRepository) Get(ctx context.Context, id types.ThreatScenarioID) (*model.ThreatScenario, error) {
	docRef := r.client.Collection(r.collection()).Doc(id.String())
	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "threat scenario not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get threat scenario", goerr.V("id", id))
	}

	var scenarioDoc threatScenarioDocument
	if err := doc.DataTo(&scenarioDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal threat scenario", goerr.V("id", id))
	}

	return scenarioDoc.toModel(), nil
}

func (r *threatScenarioRepository) ListByProject(ctx context.Context, projectID types.ProjectID) ([]*model.ThreatScenario, error) {
	iter := r.client.Collection(r.collection()).
		Where("project_id", "==", projectID.String()).
		Documents(ctx)
	defer iter.Stop()

	var scenarios []*model.ThreatScenario
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate threat scenarios")
		}

		var scenarioDoc threatScenarioDocument
		if err := doc.DataTo(&scenarioDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal threat scenario")
		}

		scenarios = append(scenarios, scenarioDoc.toModel())
	}

	sort.Slice(scenarios, func(i, j int) bool {
		return scenarios[i].CreatedAt.After(scenarios[j].CreatedAt)
	})

	return scenarios, nil
}

func (r *threatScenarioRepository) Update(ctx context.Context, scenario *model.ThreatScenario) (*model.ThreatScenario, error) {
	docRef := r.client.Collection(r.collection()).Doc(scenario.ID.String())

	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "threat scenario not found", goerr.V("id", scenario.ID))
		}
		return nil, goerr.Wrap(err, "failed to get threat scenario", goerr.V("id", scenario.ID))
	}

	var existing threatScenarioDocument
	if err := doc.DataTo(&existing); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal threat scenario", goerr.V("id", scenario.ID))
	}

	updated := *scenario
	updated.ProjectID = types.ProjectID(existing.ProjectID)
	updated.UserID = types.UserID(existing.UserID)
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	if _, err := docRef.Set(ctx, toThreatScenarioDocument(&updated)); err != nil {
		return nil, goerr.Wrap(err, "failed to update threat scenario", goerr.V("id", scenario.ID))
	}

	return &updated, nil
}

func (r *threatScenarioRepository) Delete(ctx context.Context, id types.ThreatScenarioID) error {
	docRef := r.client.Collection(r.collection()).Doc(id.String())

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "threat scenario not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to get threat scenario", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete threat scenario", goerr.V("id", id))
	}

	return nil
}
