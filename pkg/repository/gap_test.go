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

func runGapRepositoryTest(t *testing.T, newRepo repoFactory) {
	t.Helper()

	projectID := types.NewProjectID()

	t.Run("Create and Get", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		bcID := types.NewBoundaryControlID(types.NewBoundaryID(), "A.8.7")
		created, err := repo.Gap().Create(ctx, &model.Gap{
			ProjectID:         projectID,
			BoundaryControlID: &bcID,
			ControlID:         "A.8.7",
			Description:       "No EDR coverage on build servers",
			Severity:          types.GapSeverityHigh,
			Status:            types.GapStatusIdentified,
			IdentifiedBy:      "user-1",
		})
		gt.NoError(t, err).Required()
		gt.Value(t, created.ID).NotEqual(types.GapID(""))

		got, err := repo.Gap().Get(ctx, created.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.Severity).Equal(types.GapSeverityHigh)
		gt.Value(t, got.Status).Equal(types.GapStatusIdentified)
		gt.Value(t, got.BoundaryControlID).NotNil()
	})

	t.Run("gap without association keeps the control reference", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Gap().Create(ctx, &model.Gap{
			ProjectID:    projectID,
			ControlID:    "A.5.1",
			Description:  "legacy record",
			Severity:     types.GapSeverityLow,
			Status:       types.GapStatusIdentified,
			IdentifiedBy: "user-1",
		})
		gt.NoError(t, err).Required()

		got, err := repo.Gap().Get(ctx, created.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.BoundaryControlID).Nil()
		gt.Value(t, got.ControlID).Equal(types.ControlID("A.5.1"))
	})

	t.Run("ListByBoundaryControl", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		bcID := types.NewBoundaryControlID(types.NewBoundaryID(), "A.6.1")
		otherBC := types.NewBoundaryControlID(types.NewBoundaryID(), "A.6.2")
		_, err := repo.Gap().Create(ctx, &model.Gap{
			ProjectID: projectID, BoundaryControlID: &bcID, ControlID: "A.6.1",
			Description: "mine", Severity: types.GapSeverityMedium, Status: types.GapStatusIdentified, IdentifiedBy: "user-1",
		})
		gt.NoError(t, err).Required()
		_, err = repo.Gap().Create(ctx, &model.Gap{
			ProjectID: projectID, BoundaryControlID: &otherBC, ControlID: "A.6.2",
			Description: "other", Severity: types.GapSeverityMedium, Status: types.GapStatusIdentified, IdentifiedBy: "user-1",
		})
		gt.NoError(t, err).Required()

		listed, err := repo.Gap().ListByBoundaryControl(ctx, bcID)
		gt.NoError(t, err).Required()
		gt.Array(t, listed).Length(1)
		gt.Value(t, listed[0].Description).Equal("mine")
	})

	t.Run("Update transitions the status", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Gap().Create(ctx, &model.Gap{
			ProjectID: projectID, ControlID: "A.5.2",
			Description: "open gap", Severity: types.GapSeverityCritical, Status: types.GapStatusIdentified, IdentifiedBy: "user-1",
		})
		gt.NoError(t, err).Required()

		created.Status = types.GapStatusRemediated
		updated, err := repo.Gap().Update(ctx, created)
		gt.NoError(t, err).Required()
		gt.Value(t, updated.Status).Equal(types.GapStatusRemediated)
	})

	t.Run("Delete", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Gap().Create(ctx, &model.Gap{
			ProjectID: projectID, ControlID: "A.5.3",
			Description: "temp", Severity: types.GapSeverityLow, Status: types.GapStatusIdentified, IdentifiedBy: "user-1",
		})
		gt.NoError(t, err).Required()

		gt.NoError(t, repo.Gap().Delete(ctx, created.ID))
		_, err = repo.Gap().Get(ctx, created.ID)
		gt.Bool(t, errors.Is(err, interfaces.ErrNotFound)).True()
	})
}

func TestGapRepository_Memory(t *testing.T) {
	runGapRepositoryTest(t, newMemoryRepo)
}

func TestGapRepository_Firestore(t *testing.T) {
	runGapRepositoryTest(t, newFirestoreRepo)
}
