package worker_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/themis/pkg/domain/model"
	"github.com/secmon-lab/themis/pkg/domain/types"
	"github.com/secmon-lab/themis/pkg/repository/memory"
	"github.com/secmon-lab/themis/pkg/service/worker"
)

type stubBuilder struct {
	mu        sync.Mutex
	summaries map[types.ProjectID]*model.RegisterSummary
	failing   map[types.ProjectID]bool
}

func (b *stubBuilder) setFailing(projectID types.ProjectID) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failing[projectID] = true
}

func (b *stubBuilder) Summary(ctx context.Context, projectID types.ProjectID) (*model.RegisterSummary, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.failing[projectID] {
		return nil, goerr.New("summary failed", goerr.V("project_id", projectID))
	}
	if s, ok := b.summaries[projectID]; ok {
		return s, nil
	}
	return &model.RegisterSummary{Counts: map[types.RiskSeverity]int{}}, nil
}

// waitForSnapshot polls the worker cache until the project shows up.
func waitForSnapshot(t *testing.T, w *worker.RegisterSnapshotWorker, projectID types.ProjectID) *worker.Snapshot {
	t.Helper()

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if snapshot, ok := w.Get(projectID); ok {
			return snapshot
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("snapshot was not computed before the deadline")
	return nil
}

func TestRegisterSnapshotWorker(t *testing.T) {
	t.Run("initial pass caches every project", func(t *testing.T) {
		repo := memory.New()
		ctx := context.Background()

		project, err := repo.Project().Create(ctx, &model.Project{Name: "p1", UserID: "user-1"})
		gt.NoError(t, err).Required()

		builder := &stubBuilder{
			summaries: map[types.ProjectID]*model.RegisterSummary{
				project.ID: {TotalALE: 42000},
			},
		}

		w := worker.NewRegisterSnapshotWorker(repo, builder, time.Hour)
		gt.NoError(t, w.Start(ctx)).Required()
		defer w.Stop()

		snapshot := waitForSnapshot(t, w, project.ID)
		gt.Value(t, snapshot.Summary.TotalALE).Equal(42000.0)
		gt.Bool(t, snapshot.ComputedAt.IsZero()).False()
	})

	t.Run("unknown project yields no snapshot", func(t *testing.T) {
		repo := memory.New()
		w := worker.NewRegisterSnapshotWorker(repo, &stubBuilder{}, time.Hour)
		gt.NoError(t, w.Start(context.Background())).Required()
		defer w.Stop()

		_, ok := w.Get(types.NewProjectID())
		gt.Bool(t, ok).False()
	})

	t.Run("recompute failure keeps the previous snapshot", func(t *testing.T) {
		repo := memory.New()
		ctx := context.Background()

		project, err := repo.Project().Create(ctx, &model.Project{Name: "p1", UserID: "user-1"})
		gt.NoError(t, err).Required()

		builder := &stubBuilder{
			summaries: map[types.ProjectID]*model.RegisterSummary{
				project.ID: {TotalALE: 100},
			},
			failing: map[types.ProjectID]bool{},
		}

		w := worker.NewRegisterSnapshotWorker(repo, builder, 20*time.Millisecond)
		gt.NoError(t, w.Start(ctx)).Required()
		defer w.Stop()

		first := waitForSnapshot(t, w, project.ID)
		gt.Value(t, first.Summary.TotalALE).Equal(100.0)

		builder.setFailing(project.ID)
		time.Sleep(100 * time.Millisecond)

		kept, ok := w.Get(project.ID)
		gt.Bool(t, ok).True()
		gt.Value(t, kept.Summary.TotalALE).Equal(100.0)
	})

	t.Run("Stop terminates the loop", func(t *testing.T) {
		repo := memory.New()
		w := worker.NewRegisterSnapshotWorker(repo, &stubBuilder{}, 10*time.Millisecond)
		gt.NoError(t, w.Start(context.Background())).Required()

		done := make(chan struct{})
		go func() {
			w.Stop()
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("Stop did not return")
		}
	})
}
