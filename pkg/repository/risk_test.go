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

func runThreatScenarioRepositoryTest(t *testing.T, newRepo repoFactory) {
	t.Helper()

	projectID := types.NewProjectID()

	t.Run("Create and Get", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		sle := 80000.0
		aro := 0.5
		gapID := types.NewGapID()
		created, err := repo.ThreatScenario().Create(ctx, &model.ThreatScenario{
			ProjectID:    projectID,
			GapID:        &gapID,
			Name:         "Ransomware via phishing",
			Description:  "Initial access through credential phishing",
			ActorType:    types.ThreatActorExternal,
			SLE:          &sle,
			ARO:          &aro,
			TechniqueIDs: []string{"T1566", "T1486"},
			UserID:       "user-1",
		})
		gt.NoError(t, err).Required()
		gt.Value(t, created.ID).NotEqual(types.ThreatScenarioID(""))

		got, err := repo.ThreatScenario().Get(ctx, created.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.Name).Equal("Ransomware via phishing")
		gt.Value(t, got.ActorType).Equal(types.ThreatActorExternal)
		gt.Value(t, got.GapID).NotNil()
		gt.Value(t, got.SLE).NotNil()
		gt.Value(t, *got.SLE).Equal(80000.0)
		gt.Array(t, got.TechniqueIDs).Length(2)
	})

	t.Run("estimates may be absent", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.ThreatScenario().Create(ctx, &model.ThreatScenario{
			ProjectID: projectID,
			Name:      "Insider data exfiltration",
			ActorType: types.ThreatActorInsider,
			UserID:    "user-1",
		})
		gt.NoError(t, err).Required()

		got, err := repo.ThreatScenario().Get(ctx, created.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.SLE).Nil()
		gt.Value(t, got.ARO).Nil()
		gt.Value(t, got.GapID).Nil()
	})

	t.Run("ListByProject, Update, Delete", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.ThreatScenario().Create(ctx, &model.ThreatScenario{
			ProjectID: projectID, Name: "DDoS", ActorType: types.ThreatActorExternal, UserID: "user-1",
		})
		gt.NoError(t, err).Required()

		listed, err := repo.ThreatScenario().ListByProject(ctx, projectID)
		gt.NoError(t, err).Required()
		gt.Array(t, listed).Length(1)

		created.Name = "DDoS on public API"
		updated, err := repo.ThreatScenario().Update(ctx, created)
		gt.NoError(t, err).Required()
		gt.Value(t, updated.Name).Equal("DDoS on public API")

		gt.NoError(t, repo.ThreatScenario().Delete(ctx, created.ID))
		_, err = repo.ThreatScenario().Get(ctx, created.ID)
		gt.Bool(t, errors.Is(err, interfaces.ErrNotFound)).True()
	})
}

func runRiskAssessmentRepositoryTest(t *testing.T, newRepo repoFactory) {
	t.Helper()

	projectID := types.NewProjectID()

	newAssessment := func(scenarioID types.ThreatScenarioID) *model.RiskAssessment {
		return &model.RiskAssessment{
			ProjectID:        projectID,
			BoundaryID:       types.NewBoundaryID(),
			ThreatScenarioID: scenarioID,
			Severity:         types.RiskSeverityHigh,
			SLE:              100000,
			ARO:              0.25,
			AssessorID:       "user-1",
		}
	}

	t.Run("Create and Get with breakdown", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		direct := 60000.0
		tech := 40000.0
		assessment := newAssessment(types.NewThreatScenarioID())
		assessment.Breakdown = model.SLEBreakdown{
			DirectOperational:    &direct,
			TechnicalRemediation: &tech,
		}

		created, err := repo.RiskAssessment().Create(ctx, assessment)
		gt.NoError(t, err).Required()
		gt.Value(t, created.ID).NotEqual(types.RiskAssessmentID(""))

		got, err := repo.RiskAssessment().Get(ctx, created.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.SLE).Equal(100000.0)
		gt.Value(t, got.ARO).Equal(0.25)
		gt.Value(t, got.Breakdown.DirectOperational).NotNil()
		gt.Value(t, *got.Breakdown.DirectOperational).Equal(60000.0)
		gt.Value(t, got.Breakdown.DataRelated).Nil()
	})

	t.Run("ListByThreatScenario", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		scenarioID := types.NewThreatScenarioID()
		_, err := repo.RiskAssessment().Create(ctx, newAssessment(scenarioID))
		gt.NoError(t, err).Required()
		_, err = repo.RiskAssessment().Create(ctx, newAssessment(scenarioID))
		gt.NoError(t, err).Required()
		_, err = repo.RiskAssessment().Create(ctx, newAssessment(types.NewThreatScenarioID()))
		gt.NoError(t, err).Required()

		listed, err := repo.RiskAssessment().ListByThreatScenario(ctx, scenarioID)
		gt.NoError(t, err).Required()
		gt.Array(t, listed).Length(2)

		byProject, err := repo.RiskAssessment().ListByProject(ctx, projectID)
		gt.NoError(t, err).Required()
		gt.Array(t, byProject).Length(3)
	})

	t.Run("Update and Delete", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.RiskAssessment().Create(ctx, newAssessment(types.NewThreatScenarioID()))
		gt.NoError(t, err).Required()

		created.Severity = types.RiskSeverityMedium
		created.SLE = 20000
		updated, err := repo.RiskAssessment().Update(ctx, created)
		gt.NoError(t, err).Required()
		gt.Value(t, updated.Severity).Equal(types.RiskSeverityMedium)
		gt.Value(t, updated.SLE).Equal(20000.0)

		gt.NoError(t, repo.RiskAssessment().Delete(ctx, created.ID))
		_, err = repo.RiskAssessment().Get(ctx, created.ID)
		gt.Bool(t, errors.Is(err, interfaces.ErrNotFound)).True()
	})
}

func TestThreatScenarioRepository_Memory(t *testing.T) {
	runThreatScenarioRepositoryTest(t, newMemoryRepo)
}

func TestThreatScenarioRepository_Firestore(t *testing.T) {
	runThreatScenarioRepositoryTest(t, newFirestoreRepo)
}

func TestRiskAssessmentRepository_Memory(t *testing.T) {
	runRiskAssessmentRepositoryTest(t, newMemoryRepo)
}

func TestRiskAssessmentRepository_Firestore(t *testing.T) {
	runRiskAssessmentRepositoryTest(t, newFirestoreRepo)
}
