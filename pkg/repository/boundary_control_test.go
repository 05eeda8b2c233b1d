package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/themis/pkg/domain/interfaces"
	"github.com/secmon-lab/themis/pkg/domain/model"
	"github.com/secmon-lab/themis/pkg/domain/types"
)

func runBoundaryControlRepositoryTest(t *testing.T, newRepo repoFactory) {
	t.Helper()

	projectID := types.NewProjectID()

	newAssociation := func(boundaryID types.BoundaryID, controlID types.ControlID) *model.BoundaryControl {
		return &model.BoundaryControl{
			BoundaryID:      boundaryID,
			ControlID:       controlID,
			ProjectID:       projectID,
			IsApplicable:    true,
			ReasonInclusion: "required by scope",
			UserID:          "user-1",
		}
	}

	t.Run("Create and Get", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		boundaryID := types.NewBoundaryID()
		created, err := repo.BoundaryControl().Create(ctx, newAssociation(boundaryID, "A.5.1"))
		gt.NoError(t, err).Required()
		gt.Value(t, created.ID).NotEqual(types.BoundaryControlID(""))
		gt.Bool(t, created.CreatedAt.IsZero()).False()

		got, err := repo.BoundaryControl().Get(ctx, created.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.BoundaryID).Equal(boundaryID)
		gt.Value(t, got.ControlID).Equal(types.ControlID("A.5.1"))
		gt.Bool(t, got.IsApplicable).True()
	})

	t.Run("Create rejects a second association for the same pair", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		boundaryID := types.NewBoundaryID()
		_, err := repo.BoundaryControl().Create(ctx, newAssociation(boundaryID, "A.5.2"))
		gt.NoError(t, err).Required()

		_, err = repo.BoundaryControl().Create(ctx, newAssociation(boundaryID, "A.5.2"))
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, interfaces.ErrDuplicateAssociation)).True()
	})

	t.Run("same control on a different boundary is allowed", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.BoundaryControl().Create(ctx, newAssociation(types.NewBoundaryID(), "A.5.3"))
		gt.NoError(t, err).Required()
		_, err = repo.BoundaryControl().Create(ctx, newAssociation(types.NewBoundaryID(), "A.5.3"))
		gt.NoError(t, err)
	})

	t.Run("GetByPair", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		boundaryID := types.NewBoundaryID()
		created, err := repo.BoundaryControl().Create(ctx, newAssociation(boundaryID, "A.6.1"))
		gt.NoError(t, err).Required()

		got, err := repo.BoundaryControl().GetByPair(ctx, boundaryID, "A.6.1")
		gt.NoError(t, err).Required()
		gt.Value(t, got.ID).Equal(created.ID)

		_, err = repo.BoundaryControl().GetByPair(ctx, boundaryID, "A.6.2")
		gt.Bool(t, errors.Is(err, interfaces.ErrNotFound)).True()
	})

	t.Run("ListByBoundary and ListByProject", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		boundaryID := types.NewBoundaryID()
		for _, controlID := range []types.ControlID{"A.7.1", "A.7.2", "A.7.3"} {
			_, err := repo.BoundaryControl().Create(ctx, newAssociation(boundaryID, controlID))
			gt.NoError(t, err).Required()
		}
		_, err := repo.BoundaryControl().Create(ctx, newAssociation(types.NewBoundaryID(), "A.7.1"))
		gt.NoError(t, err).Required()

		byBoundary, err := repo.BoundaryControl().ListByBoundary(ctx, boundaryID)
		gt.NoError(t, err).Required()
		gt.Array(t, byBoundary).Length(3)

		byProject, err := repo.BoundaryControl().ListByProject(ctx, projectID)
		gt.NoError(t, err).Required()
		gt.Array(t, byProject).Length(4)
	})

	t.Run("Update mutates applicability and assessment", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.BoundaryControl().Create(ctx, newAssociation(types.NewBoundaryID(), "A.8.1"))
		gt.NoError(t, err).Required()

		assessedAt := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
		created.IsApplicable = false
		created.ReasonExclusion = "out of scope for this boundary"
		created.Assessment = model.ComplianceAssessment{
			Status:     types.ComplianceStatusNonCompliant,
			AssessedAt: &assessedAt,
			Notes:      "no controls in place",
		}

		updated, err := repo.BoundaryControl().Update(ctx, created)
		gt.NoError(t, err).Required()
		gt.Bool(t, updated.IsApplicable).False()
		gt.Value(t, updated.Assessment.Status).Equal(types.ComplianceStatusNonCompliant)
		gt.Value(t, updated.Assessment.AssessedAt).NotNil()
	})

	t.Run("Delete frees the pair for re-association", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		boundaryID := types.NewBoundaryID()
		created, err := repo.BoundaryControl().Create(ctx, newAssociation(boundaryID, "A.9.1"))
		gt.NoError(t, err).Required()

		gt.NoError(t, repo.BoundaryControl().Delete(ctx, created.ID))

		_, err = repo.BoundaryControl().Create(ctx, newAssociation(boundaryID, "A.9.1"))
		gt.NoError(t, err)
	})
}

func TestBoundaryControlRepository_Memory(t *testing.T) {
	runBoundaryControlRepositoryTest(t, newMemoryRepo)
}

func TestBoundaryControlRepository_Firestore(t *testing.T) {
	runBoundaryControlRepositoryTest(t, newFirestoreRepo)
}
