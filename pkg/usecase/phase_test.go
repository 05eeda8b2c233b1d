package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/themis/pkg/domain/model"
	"github.com/secmon-lab/themis/pkg/domain/model/config"
	"github.com/secmon-lab/themis/pkg/domain/types"
	"github.com/secmon-lab/themis/pkg/usecase"
)

func TestPhaseGuard(t *testing.T) {
	t.Run("mutation in an incomplete phase passes through", func(t *testing.T) {
		env := newTestEnv(t)
		projectID := env.createProject(t, "guarded")

		_, err := env.uc.Boundary.Create(ctxAs("user-1"), &model.Boundary{
			ProjectID: projectID, Name: "Core Network", Type: types.BoundaryTypeSystem,
		}, false)
		gt.NoError(t, err)
	})

	t.Run("mutation in a completed phase requires confirmation", func(t *testing.T) {
		env := newTestEnv(t)
		projectID := env.createProject(t, "guarded")
		env.completePhase(t, projectID, types.PhaseBoundaries)

		_, err := env.uc.Boundary.Create(ctxAs("user-1"), &model.Boundary{
			ProjectID: projectID, Name: "Late Addition", Type: types.BoundaryTypeSystem,
		}, false)
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, usecase.ErrPhaseCompleted)).True()

		// The mutation must not have been applied.
		boundaries, err := env.repo.Boundary().ListByProject(context.Background(), projectID)
		gt.NoError(t, err).Required()
		gt.Array(t, boundaries).Length(0)

		// The completion mark stays.
		gt.Bool(t, env.isPhaseComplete(t, projectID, types.PhaseBoundaries)).True()
	})

	t.Run("confirmed mutation applies and resets the completion", func(t *testing.T) {
		env := newTestEnv(t)
		projectID := env.createProject(t, "guarded")
		env.completePhase(t, projectID, types.PhaseBoundaries)

		_, err := env.uc.Boundary.Create(ctxAs("user-1"), &model.Boundary{
			ProjectID: projectID, Name: "Confirmed Addition", Type: types.BoundaryTypeSystem,
		}, true)
		gt.NoError(t, err).Required()

		gt.Bool(t, env.isPhaseComplete(t, projectID, types.PhaseBoundaries)).False()
	})

	t.Run("mutation in an incomplete phase never unmarks anything", func(t *testing.T) {
		env := newTestEnv(t)
		projectID := env.createProject(t, "guarded")
		env.completePhase(t, projectID, types.PhaseStakeholders)

		_, err := env.uc.Boundary.Create(ctxAs("user-1"), &model.Boundary{
			ProjectID: projectID, Name: "Unrelated", Type: types.BoundaryTypeSystem,
		}, false)
		gt.NoError(t, err).Required()

		gt.Bool(t, env.isPhaseComplete(t, projectID, types.PhaseStakeholders)).True()
	})

	t.Run("failed mutation leaves the completion mark in place", func(t *testing.T) {
		env := newTestEnv(t)
		projectID := env.createProject(t, "guarded")
		env.createBoundary(t, projectID, "Existing")
		env.completePhase(t, projectID, types.PhaseBoundaries)

		// Duplicate name fails inside the guard even with confirmation.
		_, err := env.uc.Boundary.Create(ctxAs("user-1"), &model.Boundary{
			ProjectID: projectID, Name: "Existing", Type: types.BoundaryTypeSystem,
		}, true)
		gt.Error(t, err)

		gt.Bool(t, env.isPhaseComplete(t, projectID, types.PhaseBoundaries)).True()
	})

	t.Run("objectives guard can be disabled by policy", func(t *testing.T) {
		env := newTestEnv(t, usecase.WithPhasePolicy(&config.PhasePolicy{GuardObjectives: false}))
		projectID := env.createProject(t, "ungated")
		env.completePhase(t, projectID, types.PhaseObjectives)

		_, err := env.uc.Objective.Create(ctxAs("user-1"), &model.Objective{
			ProjectID: projectID, Title: "New objective",
		}, false)
		gt.NoError(t, err)

		gt.Bool(t, env.isPhaseComplete(t, projectID, types.PhaseObjectives)).True()
	})
}

func TestMarkPhaseComplete(t *testing.T) {
	t.Run("mark then unmark", func(t *testing.T) {
		env := newTestEnv(t)
		projectID := env.createProject(t, "phases")

		gt.NoError(t, env.uc.Project.MarkPhaseComplete(context.Background(), projectID, types.PhaseSOA))
		gt.Bool(t, env.isPhaseComplete(t, projectID, types.PhaseSOA)).True()

		gt.NoError(t, env.uc.Project.UnmarkPhaseComplete(context.Background(), projectID, types.PhaseSOA))
		gt.Bool(t, env.isPhaseComplete(t, projectID, types.PhaseSOA)).False()
	})

	t.Run("invalid phase key rejected", func(t *testing.T) {
		env := newTestEnv(t)
		projectID := env.createProject(t, "phases")

		gt.Error(t, env.uc.Project.MarkPhaseComplete(context.Background(), projectID, "no_such_phase"))
		gt.Error(t, env.uc.Project.UnmarkPhaseComplete(context.Background(), projectID, "no_such_phase"))
	})
}

func TestRequiresConfirmation(t *testing.T) {
	env := newTestEnv(t)
	projectID := env.createProject(t, "precheck")

	needed, err := env.uc.Project.RequiresConfirmation(context.Background(), projectID, types.PhaseSOA)
	gt.NoError(t, err).Required()
	gt.Bool(t, needed).False()

	env.completePhase(t, projectID, types.PhaseSOA)

	needed, err = env.uc.Project.RequiresConfirmation(context.Background(), projectID, types.PhaseSOA)
	gt.NoError(t, err).Required()
	gt.Bool(t, needed).True()
}
