package firestore

import (
	"context"
	"sort"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/themis/pkg/domain/model"
	"github.com/secmon-lab/themis/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type controlDocument struct {
	ID          string `firestore:"id"`
	Name        string `firestore:"name"`
	Description string `firestore:"description"`
	Domain      string `firestore:"domain"`
}

func toControlDocument(c *model.Control) *controlDocument {
	return &controlDocument{
		ID:          c.ID.String(),
		Name:        c.Name,
		Description: c.Description,
		Domain:      c.Domain,
	}
}

func (d *controlDocument) toModel() *model.Control {
	return &model.Control{
		ID:          types.ControlID(d.ID),
		Name:        d.Name,
		Description: d.Description,
		Domain:      d.Domain,
	}
}

type controlRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newControlRepository(client *firestore.Client) *controlRepository {
	return &controlRepository{client: client}
}

func (r *controlRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_controls"
	}
	return "controls"
}

func (r *controlRepository) Seed(ctx context.Context, controls []*model.Control) error {
	bw := r.client.BulkWriter(ctx)

	for _, c := range controls {
		if c.ID == "" {
			return goerr.New("control ID cannot be empty", goerr.V("name", c.Name))
		}
		docRef := r.client.Collection(r.collection()).Doc(c.ID.String())
		if _, err := bw.Set(docRef, toControlDocument(c)); err != nil {
			return goerr.Wrap(err, "failed to enqueue control", goerr.V("id", c.ID))
		}
	}

	bw.End()
	return nil
}

func (r *controlRepository) Get(ctx context.Context, id types.ControlID) (*model.Control, error) {
	docRef := r.client.Collection(r.collection()).Doc(id.String())
	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "control not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get control", goerr.V("id", id))
	}

	var controlDoc controlDocument
	if err := doc.DataTo(&controlDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal control", goerr.V("id", id))
	}

	return controlDoc.toModel(), nil
}

func (r *controlRepository) List(ctx context.Context) ([]*model.Control, error) {
	iter := r.client.Collection(r.collection()).Documents(ctx)
	defer iter.Stop()

	var controls []*model.Control
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate controls")
		}

		var controlDoc controlDocument
		if err := doc.DataTo(&controlDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal control")
		}

		controls = append(controls, controlDoc.toModel())
	}

	sort.Slice(controls, func(i, j int) bool {
		return controls[i].ID < controls[j].ID
	})

	return controls, nil
}
