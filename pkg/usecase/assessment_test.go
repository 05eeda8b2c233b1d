package usecase_test

import (
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/themis/pkg/domain/interfaces"
	"github.com/secmon-lab/themis/pkg/domain/model"
	"github.com/secmon-lab/themis/pkg/domain/types"
	"github.com/secmon-lab/themis/pkg/usecase"
)

func ptr(v float64) *float64 { return &v }

func assessmentFixture(t *testing.T, env *testEnv) (types.ProjectID, types.BoundaryID, *model.ThreatScenario) {
	t.Helper()

	projectID := env.createProject(t, "risk")
	boundaryID := env.createBoundary(t, projectID, "Core")

	scenario, err := env.uc.Threat.Create(ctxAs("user-1"), &model.ThreatScenario{
		ProjectID: projectID,
		Name:      "Ransomware via phishing",
		ActorType: types.ThreatActorExternal,
	})
	gt.NoError(t, err).Required()

	return projectID, boundaryID, scenario
}

func TestAssessmentCreate(t *testing.T) {
	t.Run("create inherits project and gap from the scenario", func(t *testing.T) {
		env := newTestEnv(t)
		projectID, boundaryID, scenario := assessmentFixture(t, env)

		created, err := env.uc.Assessment.Create(ctxAs("user-3"), &model.RiskAssessment{
			BoundaryID:       boundaryID,
			ThreatScenarioID: scenario.ID,
			Severity:         types.RiskSeverityHigh,
			SLE:              100000,
			ARO:              0.5,
		})
		gt.NoError(t, err).Required()

		gt.Value(t, created.ProjectID).Equal(projectID)
		gt.Value(t, created.AssessorID).Equal(types.UserID("user-3"))
	})

	t.Run("unknown scenario rejected", func(t *testing.T) {
		env := newTestEnv(t)
		_, boundaryID, _ := assessmentFixture(t, env)

		_, err := env.uc.Assessment.Create(ctxAs("user-1"), &model.RiskAssessment{
			BoundaryID:       boundaryID,
			ThreatScenarioID: types.NewThreatScenarioID(),
		})
		gt.Bool(t, errors.Is(err, interfaces.ErrNotFound)).True()
	})

	t.Run("invalid core fields rejected", func(t *testing.T) {
		env := newTestEnv(t)
		_, boundaryID, scenario := assessmentFixture(t, env)

		_, err := env.uc.Assessment.Create(ctxAs("user-1"), &model.RiskAssessment{
			BoundaryID:       boundaryID,
			ThreatScenarioID: scenario.ID,
			SLE:              -1,
		})
		gt.Error(t, err)
	})
}

func TestAssessmentTwoStepSave(t *testing.T) {
	setup := func(t *testing.T) (*testEnv, types.RiskAssessmentID) {
		env := newTestEnv(t)
		_, boundaryID, scenario := assessmentFixture(t, env)
		created, err := env.uc.Assessment.Create(ctxAs("user-1"), &model.RiskAssessment{
			BoundaryID:       boundaryID,
			ThreatScenarioID: scenario.ID,
		})
		gt.NoError(t, err).Required()
		return env, created.ID
	}

	t.Run("core save skips the breakdown invariant", func(t *testing.T) {
		env, id := setup(t)

		result, err := env.uc.Assessment.SaveCore(ctxAs("user-1"), id, model.AssessmentCore{
			Severity: types.RiskSeverityHigh,
			SLE:      100000,
			ARO:      0.5,
			Notes:    "quick estimate",
		})
		gt.NoError(t, err).Required()

		gt.Value(t, result.Assessment.SLE).Equal(100000.0)
		gt.Value(t, result.Assessment.ALE()).Equal(50000.0)
		gt.Array(t, result.Warnings).Length(0)
	})

	t.Run("core save warns on an ARO above the soft limit", func(t *testing.T) {
		env, id := setup(t)

		result, err := env.uc.Assessment.SaveCore(ctxAs("user-1"), id, model.AssessmentCore{
			SLE: 10, ARO: 500,
		})
		gt.NoError(t, err).Required()
		gt.Array(t, result.Warnings).Length(1)
	})

	t.Run("breakdown save enforces the sum invariant", func(t *testing.T) {
		env, id := setup(t)

		_, err := env.uc.Assessment.SaveCore(ctxAs("user-1"), id, model.AssessmentCore{
			SLE: 1000, ARO: 1,
		})
		gt.NoError(t, err).Required()

		_, err = env.uc.Assessment.SaveBreakdown(ctxAs("user-1"), id, model.SLEBreakdown{
			DirectOperational: ptr(400),
		})
		gt.Bool(t, errors.Is(err, model.ErrBreakdownMismatch)).True()

		saved, err := env.uc.Assessment.SaveBreakdown(ctxAs("user-1"), id, model.SLEBreakdown{
			DirectOperational: ptr(400),
			DataRelated:       ptr(600),
		})
		gt.NoError(t, err).Required()
		sum, any := saved.Breakdown.Sum()
		gt.Bool(t, any).True()
		gt.Value(t, sum).Equal(1000.0)
	})

	t.Run("only the assessor may save", func(t *testing.T) {
		env, id := setup(t)

		_, err := env.uc.Assessment.SaveCore(ctxAs("user-2"), id, model.AssessmentCore{SLE: 1, ARO: 1})
		gt.Bool(t, errors.Is(err, usecase.ErrAccessDenied)).True()

		_, err = env.uc.Assessment.SaveBreakdown(ctxAs("user-2"), id, model.SLEBreakdown{})
		gt.Bool(t, errors.Is(err, usecase.ErrAccessDenied)).True()

		err = env.uc.Assessment.Delete(ctxAs("user-2"), id)
		gt.Bool(t, errors.Is(err, usecase.ErrAccessDenied)).True()
	})
}
