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

func runBoundaryRepositoryTest(t *testing.T, newRepo repoFactory) {
	t.Helper()

	projectID := types.NewProjectID()

	t.Run("Create and Get", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		value := 250000.0
		created, err := repo.Boundary().Create(ctx, &model.Boundary{
			ProjectID:              projectID,
			Name:                   "Payment Processing",
			Description:            "Card data environment",
			Type:                   types.BoundaryTypeSystem,
			Included:               true,
			AssetValueQuantitative: &value,
			UserID:                 "user-1",
		})
		gt.NoError(t, err).Required()
		gt.Value(t, created.ID).NotEqual(types.BoundaryID(""))

		got, err := repo.Boundary().Get(ctx, created.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.Name).Equal("Payment Processing")
		gt.Value(t, got.Type).Equal(types.BoundaryTypeSystem)
		gt.Bool(t, got.Included).True()
		gt.Value(t, got.AssetValueQuantitative).NotNil()
		gt.Value(t, *got.AssetValueQuantitative).Equal(250000.0)
	})

	t.Run("Create rejects duplicate name within project", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Boundary().Create(ctx, &model.Boundary{
			ProjectID: projectID, Name: "HR Department", Type: types.BoundaryTypeDepartment, UserID: "user-1",
		})
		gt.NoError(t, err).Required()

		_, err = repo.Boundary().Create(ctx, &model.Boundary{
			ProjectID: projectID, Name: "HR Department", Type: types.BoundaryTypeDepartment, UserID: "user-2",
		})
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, interfaces.ErrDuplicateName)).True()
	})

	t.Run("same name is allowed in a different project", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Boundary().Create(ctx, &model.Boundary{
			ProjectID: projectID, Name: "Tokyo Office", Type: types.BoundaryTypeLocation, UserID: "user-1",
		})
		gt.NoError(t, err).Required()

		_, err = repo.Boundary().Create(ctx, &model.Boundary{
			ProjectID: types.NewProjectID(), Name: "Tokyo Office", Type: types.BoundaryTypeLocation, UserID: "user-1",
		})
		gt.NoError(t, err)
	})

	t.Run("FindByName", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Boundary().Create(ctx, &model.Boundary{
			ProjectID: projectID, Name: "Data Warehouse", Type: types.BoundaryTypeSystem, UserID: "user-1",
		})
		gt.NoError(t, err).Required()

		found, err := repo.Boundary().FindByName(ctx, projectID, "Data Warehouse")
		gt.NoError(t, err).Required()
		gt.Value(t, found.ID).Equal(created.ID)

		_, err = repo.Boundary().FindByName(ctx, projectID, "No Such Boundary")
		gt.Bool(t, errors.Is(err, interfaces.ErrNotFound)).True()
	})

	t.Run("Update rejects rename onto an existing name", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Boundary().Create(ctx, &model.Boundary{
			ProjectID: projectID, Name: "Network", Type: types.BoundaryTypeSystem, UserID: "user-1",
		})
		gt.NoError(t, err).Required()

		second, err := repo.Boundary().Create(ctx, &model.Boundary{
			ProjectID: projectID, Name: "Endpoints", Type: types.BoundaryTypeSystem, UserID: "user-1",
		})
		gt.NoError(t, err).Required()

		second.Name = "Network"
		_, err = repo.Boundary().Update(ctx, second)
		gt.Bool(t, errors.Is(err, interfaces.ErrDuplicateName)).True()
	})

	t.Run("ListByProject scopes to the project", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		otherProject := types.NewProjectID()
		_, err := repo.Boundary().Create(ctx, &model.Boundary{
			ProjectID: projectID, Name: "Mine", Type: types.BoundaryTypeOther, UserID: "user-1",
		})
		gt.NoError(t, err).Required()
		_, err = repo.Boundary().Create(ctx, &model.Boundary{
			ProjectID: otherProject, Name: "Theirs", Type: types.BoundaryTypeOther, UserID: "user-1",
		})
		gt.NoError(t, err).Required()

		boundaries, err := repo.Boundary().ListByProject(ctx, projectID)
		gt.NoError(t, err).Required()
		gt.Array(t, boundaries).Length(1)
		gt.Value(t, boundaries[0].Name).Equal("Mine")
	})

	t.Run("Delete", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Boundary().Create(ctx, &model.Boundary{
			ProjectID: projectID, Name: "Temp", Type: types.BoundaryTypeOther, UserID: "user-1",
		})
		gt.NoError(t, err).Required()

		gt.NoError(t, repo.Boundary().Delete(ctx, created.ID))
		_, err = repo.Boundary().Get(ctx, created.ID)
		gt.Bool(t, errors.Is(err, interfaces.ErrNotFound)).True()
	})
}

func TestBoundaryRepository_Memory(t *testing.T) {
	runBoundaryRepositoryTest(t, newMemoryRepo)
}

func TestBoundaryRepository_Firestore(t *testing.T) {
	runBoundaryRepositoryTest(t, newFirestoreRepo)
}
