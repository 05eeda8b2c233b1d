package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/themis/pkg/domain/interfaces"
	"github.com/secmon-lab/themis/pkg/domain/model"
	"github.com/secmon-lab/themis/pkg/domain/types"
	"github.com/secmon-lab/themis/pkg/usecase"
)

func TestSOAAssign(t *testing.T) {
	t.Run("assign stamps project and user from context", func(t *testing.T) {
		env := newTestEnv(t)
		env.seedCatalog(t)
		projectID := env.createProject(t, "soa")
		boundaryID := env.createBoundary(t, projectID, "Core")

		created, err := env.uc.SOA.Assign(ctxAs("user-7"), &model.BoundaryControl{
			BoundaryID:      boundaryID,
			ControlID:       "A.5.1",
			IsApplicable:    true,
			ReasonInclusion: "policy requirement",
		}, false)
		gt.NoError(t, err).Required()

		gt.Value(t, created.ProjectID).Equal(projectID)
		gt.Value(t, created.UserID).Equal(types.UserID("user-7"))
		gt.Value(t, created.Assessment.Status).Equal(types.ComplianceStatusNotAssessed)
	})

	t.Run("assigning twice fails with duplicate association", func(t *testing.T) {
		env := newTestEnv(t)
		env.seedCatalog(t)
		projectID := env.createProject(t, "soa")
		boundaryID := env.createBoundary(t, projectID, "Core")

		_, err := env.uc.SOA.Assign(ctxAs("user-1"), &model.BoundaryControl{
			BoundaryID: boundaryID, ControlID: "A.5.1", IsApplicable: true,
		}, false)
		gt.NoError(t, err).Required()

		_, err = env.uc.SOA.Assign(ctxAs("user-1"), &model.BoundaryControl{
			BoundaryID: boundaryID, ControlID: "A.5.1", IsApplicable: true,
		}, false)
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, interfaces.ErrDuplicateAssociation)).True()
	})

	t.Run("assign rejects unknown control or boundary", func(t *testing.T) {
		env := newTestEnv(t)
		env.seedCatalog(t)
		projectID := env.createProject(t, "soa")
		boundaryID := env.createBoundary(t, projectID, "Core")

		_, err := env.uc.SOA.Assign(ctxAs("user-1"), &model.BoundaryControl{
			BoundaryID: boundaryID, ControlID: "A.99.1",
		}, false)
		gt.Bool(t, errors.Is(err, interfaces.ErrNotFound)).True()

		_, err = env.uc.SOA.Assign(ctxAs("user-1"), &model.BoundaryControl{
			BoundaryID: types.NewBoundaryID(), ControlID: "A.5.1",
		}, false)
		gt.Bool(t, errors.Is(err, interfaces.ErrNotFound)).True()
	})

	t.Run("assign under a completed soa phase needs confirmation", func(t *testing.T) {
		env := newTestEnv(t)
		env.seedCatalog(t)
		projectID := env.createProject(t, "soa")
		boundaryID := env.createBoundary(t, projectID, "Core")
		env.completePhase(t, projectID, types.PhaseSOA)

		_, err := env.uc.SOA.Assign(ctxAs("user-1"), &model.BoundaryControl{
			BoundaryID: boundaryID, ControlID: "A.5.1",
		}, false)
		gt.Bool(t, errors.Is(err, usecase.ErrPhaseCompleted)).True()

		_, err = env.uc.SOA.Assign(ctxAs("user-1"), &model.BoundaryControl{
			BoundaryID: boundaryID, ControlID: "A.5.1",
		}, true)
		gt.NoError(t, err)
		gt.Bool(t, env.isPhaseComplete(t, projectID, types.PhaseSOA)).False()
	})
}

func TestSOACanAssign(t *testing.T) {
	env := newTestEnv(t)
	env.seedCatalog(t)
	projectID := env.createProject(t, "soa")
	boundaryID := env.createBoundary(t, projectID, "Core")

	ok, err := env.uc.SOA.CanAssign(context.Background(), boundaryID, "A.5.1")
	gt.NoError(t, err).Required()
	gt.Bool(t, ok).True()

	_, err = env.uc.SOA.Assign(ctxAs("user-1"), &model.BoundaryControl{
		BoundaryID: boundaryID, ControlID: "A.5.1",
	}, false)
	gt.NoError(t, err).Required()

	ok, err = env.uc.SOA.CanAssign(context.Background(), boundaryID, "A.5.1")
	gt.NoError(t, err).Required()
	gt.Bool(t, ok).False()
}

func TestSOAUpdate(t *testing.T) {
	setup := func(t *testing.T) (*testEnv, types.ProjectID, types.BoundaryControlID) {
		env := newTestEnv(t)
		env.seedCatalog(t)
		projectID := env.createProject(t, "soa")
		boundaryID := env.createBoundary(t, projectID, "Core")
		created, err := env.uc.SOA.Assign(ctxAs("user-1"), &model.BoundaryControl{
			BoundaryID: boundaryID, ControlID: "A.5.1", IsApplicable: true,
		}, false)
		gt.NoError(t, err).Required()
		return env, projectID, created.ID
	}

	t.Run("partial update only touches the set fields", func(t *testing.T) {
		env, _, bcID := setup(t)

		applicable := false
		reason := "superseded by A.5.2"
		updated, err := env.uc.SOA.Update(ctxAs("user-1"), bcID, &model.BoundaryControlUpdate{
			IsApplicable:    &applicable,
			ReasonExclusion: &reason,
		}, false)
		gt.NoError(t, err).Required()

		gt.Bool(t, updated.IsApplicable).False()
		gt.Value(t, updated.ReasonExclusion).Equal(reason)
		gt.Value(t, updated.ControlID).Equal(types.ControlID("A.5.1"))
	})

	t.Run("invalid assessment status yields validation error", func(t *testing.T) {
		env, _, bcID := setup(t)

		bad := types.ComplianceStatus("WONKY")
		_, err := env.uc.SOA.Update(ctxAs("user-1"), bcID, &model.BoundaryControlUpdate{
			AssessmentStatus: &bad,
		}, false)
		gt.Error(t, err)
	})

	t.Run("assessment-only update is guarded by the evidence phase", func(t *testing.T) {
		env, projectID, bcID := setup(t)
		env.completePhase(t, projectID, types.PhaseEvidenceGaps)

		status := types.ComplianceStatusCompliant
		_, err := env.uc.SOA.Update(ctxAs("user-1"), bcID, &model.BoundaryControlUpdate{
			AssessmentStatus: &status,
		}, false)
		gt.Bool(t, errors.Is(err, usecase.ErrPhaseCompleted)).True()

		// The soa phase being complete does not block an assessment update.
		env2, projectID2, bcID2 := setup(t)
		env2.completePhase(t, projectID2, types.PhaseSOA)

		_, err = env2.uc.SOA.Update(ctxAs("user-1"), bcID2, &model.BoundaryControlUpdate{
			AssessmentStatus: &status,
		}, false)
		gt.NoError(t, err)
	})

	t.Run("applicability update is guarded by the soa phase", func(t *testing.T) {
		env, projectID, bcID := setup(t)
		env.completePhase(t, projectID, types.PhaseSOA)

		applicable := false
		_, err := env.uc.SOA.Update(ctxAs("user-1"), bcID, &model.BoundaryControlUpdate{
			IsApplicable: &applicable,
		}, false)
		gt.Bool(t, errors.Is(err, usecase.ErrPhaseCompleted)).True()
	})
}

func TestSOARemove(t *testing.T) {
	env := newTestEnv(t)
	env.seedCatalog(t)
	projectID := env.createProject(t, "soa")
	boundaryID := env.createBoundary(t, projectID, "Core")

	created, err := env.uc.SOA.Assign(ctxAs("user-1"), &model.BoundaryControl{
		BoundaryID: boundaryID, ControlID: "A.5.1",
	}, false)
	gt.NoError(t, err).Required()

	gt.NoError(t, env.uc.SOA.Remove(ctxAs("user-1"), created.ID, false))

	ok, err := env.uc.SOA.CanAssign(context.Background(), boundaryID, "A.5.1")
	gt.NoError(t, err).Required()
	gt.Bool(t, ok).True()
}

func TestSearchControls(t *testing.T) {
	env := newTestEnv(t)
	env.seedCatalog(t)
	ctx := context.Background()

	t.Run("empty query returns everything grouped by domain", func(t *testing.T) {
		groups, err := env.uc.SOA.SearchControls(ctx, "", "")
		gt.NoError(t, err).Required()
		gt.Array(t, groups).Length(3)
		gt.Value(t, groups[0].Domain).Equal("Organizational")
		gt.Array(t, groups[0].Controls).Length(2)
		gt.Value(t, groups[1].Domain).Equal("Physical")
		gt.Value(t, groups[2].Domain).Equal("Technological")
	})

	t.Run("query matches case-insensitively over name", func(t *testing.T) {
		groups, err := env.uc.SOA.SearchControls(ctx, "MALWARE", "")
		gt.NoError(t, err).Required()
		gt.Array(t, groups).Length(1)
		gt.Value(t, groups[0].Controls[0].ID).Equal(types.ControlID("A.8.7"))
	})

	t.Run("query matches the reference code", func(t *testing.T) {
		groups, err := env.uc.SOA.SearchControls(ctx, "a.5", "")
		gt.NoError(t, err).Required()
		gt.Array(t, groups).Length(1)
		gt.Array(t, groups[0].Controls).Length(2)
	})

	t.Run("domain filter", func(t *testing.T) {
		groups, err := env.uc.SOA.SearchControls(ctx, "", "Physical")
		gt.NoError(t, err).Required()
		gt.Array(t, groups).Length(1)
		gt.Value(t, groups[0].Domain).Equal("Physical")
	})

	t.Run("no matches yields empty result", func(t *testing.T) {
		groups, err := env.uc.SOA.SearchControls(ctx, "quantum", "")
		gt.NoError(t, err).Required()
		gt.Array(t, groups).Length(0)
	})
}
