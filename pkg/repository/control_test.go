package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/themis/pkg/domain/interfaces"
	"github.com/secmon-lab/themis/pkg/domain/model"
	"github.com/secmon-lab/themis/pkg/domain/types"
)

func runControlRepositoryTest(t *testing.T, newRepo repoFactory) {
	t.Helper()

	catalog := []*model.Control{
		{ID: "A.5.1", Name: "Policies for information security", Domain: "Organizational"},
		{ID: "A.8.7", Name: "Protection against malware", Domain: "Technological"},
		{ID: "A.7.1", Name: "Physical security perimeters", Domain: "Physical"},
	}

	t.Run("Seed then Get", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		gt.NoError(t, repo.Control().Seed(ctx, catalog)).Required()

		got, err := repo.Control().Get(ctx, "A.8.7")
		gt.NoError(t, err).Required()
		gt.Value(t, got.Name).Equal("Protection against malware")
		gt.Value(t, got.Domain).Equal("Technological")
	})

	t.Run("Get unknown control", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Control().Get(ctx, "A.99.99")
		gt.Bool(t, errors.Is(err, interfaces.ErrNotFound)).True()
	})

	t.Run("List returns the catalog ordered by reference code", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		gt.NoError(t, repo.Control().Seed(ctx, catalog)).Required()

		controls, err := repo.Control().List(ctx)
		gt.NoError(t, err).Required()
		gt.Array(t, controls).Length(3)
		gt.Value(t, controls[0].ID).Equal(types.ControlID("A.5.1"))
		gt.Value(t, controls[1].ID).Equal(types.ControlID("A.7.1"))
		gt.Value(t, controls[2].ID).Equal(types.ControlID("A.8.7"))
	})

	t.Run("re-seeding updates existing entries", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		gt.NoError(t, repo.Control().Seed(ctx, catalog)).Required()
		gt.NoError(t, repo.Control().Seed(ctx, []*model.Control{
			{ID: "A.5.1", Name: "Renamed policy control", Domain: "Organizational"},
		})).Required()

		got, err := repo.Control().Get(ctx, "A.5.1")
		gt.NoError(t, err).Required()
		gt.Value(t, got.Name).Equal("Renamed policy control")
	})

	t.Run("Seed rejects an empty control ID", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		err := repo.Control().Seed(ctx, []*model.Control{{ID: "", Name: "bad"}})
		gt.Error(t, err)
	})
}

func TestControlRepository_Memory(t *testing.T) {
	runControlRepositoryTest(t, newMemoryRepo)
}

func TestControlRepository_Firestore(t *testing.T) {
	runControlRepositoryTest(t, newFirestoreRepo)
}
