package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/themis/pkg/domain/model"
	"github.com/secmon-lab/themis/pkg/domain/model/auth"
	"github.com/secmon-lab/themis/pkg/domain/types"
	"github.com/secmon-lab/themis/pkg/repository/memory"
	"github.com/secmon-lab/themis/pkg/service/storage"
	"github.com/secmon-lab/themis/pkg/usecase"
)

var testNow = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

type testEnv struct {
	repo    *memory.Memory
	storage *storage.Memory
	uc      *usecase.UseCases
}

func newTestEnv(t *testing.T, opts ...usecase.Option) *testEnv {
	t.Helper()

	repo := memory.New()
	store := storage.NewMemory()

	base := []usecase.Option{
		usecase.WithStorage(store),
		usecase.WithClock(func() time.Time { return testNow }),
	}
	uc := usecase.New(repo, append(base, opts...)...)

	return &testEnv{repo: repo, storage: store, uc: uc}
}

// seedCatalog loads a small control catalog.
func (e *testEnv) seedCatalog(t *testing.T) {
	t.Helper()
	gt.NoError(t, e.repo.Control().Seed(context.Background(), []*model.Control{
		{ID: "A.5.1", Name: "Policies for information security", Domain: "Organizational"},
		{ID: "A.5.2", Name: "Information security roles", Domain: "Organizational"},
		{ID: "A.7.1", Name: "Physical security perimeters", Domain: "Physical"},
		{ID: "A.8.7", Name: "Protection against malware", Domain: "Technological"},
	})).Required()
}

func (e *testEnv) createProject(t *testing.T, name string) types.ProjectID {
	t.Helper()
	created, err := e.repo.Project().Create(context.Background(), &model.Project{
		Name: name, UserID: "user-1",
	})
	gt.NoError(t, err).Required()
	return created.ID
}

func (e *testEnv) createBoundary(t *testing.T, projectID types.ProjectID, name string) types.BoundaryID {
	t.Helper()
	created, err := e.repo.Boundary().Create(context.Background(), &model.Boundary{
		ProjectID: projectID, Name: name, Type: types.BoundaryTypeSystem, Included: true, UserID: "user-1",
	})
	gt.NoError(t, err).Required()
	return created.ID
}

func (e *testEnv) completePhase(t *testing.T, projectID types.ProjectID, phase types.PhaseKey) {
	t.Helper()
	ts := testNow.Add(-time.Hour)
	gt.NoError(t, e.repo.Project().SetPhaseCompletion(context.Background(), projectID, phase, &ts)).Required()
}

func (e *testEnv) isPhaseComplete(t *testing.T, projectID types.ProjectID, phase types.PhaseKey) bool {
	t.Helper()
	project, err := e.repo.Project().Get(context.Background(), projectID)
	gt.NoError(t, err).Required()
	return project.IsPhaseComplete(phase)
}

// ctxAs returns a context authenticated as the given user.
func ctxAs(userID types.UserID) context.Context {
	return auth.ContextWithToken(context.Background(), &auth.Token{
		ID:     "test-token",
		UserID: userID,
	})
}
