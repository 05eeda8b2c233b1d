package worker

import (
	"context"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/themis/pkg/domain/interfaces"
	"github.com/secmon-lab/themis/pkg/domain/model"
	"github.com/secmon-lab/themis/pkg/domain/types"
	"github.com/secmon-lab/themis/pkg/utils/logging"
)

// SummaryBuilder computes the risk register summary for a project.
type SummaryBuilder interface {
	Summary(ctx context.Context, projectID types.ProjectID) (*model.RegisterSummary, error)
}

// Snapshot is one cached register summary with its computation time.
type Snapshot struct {
	Summary    *model.RegisterSummary
	ComputedAt time.Time
}

// RegisterSnapshotWorker periodically recomputes the risk register summary
// of every project and caches the result for the reporting endpoint.
//
// Architecture assumptions:
// - Single server instance (no distributed locking)
// - For future horizontal scaling, implement distributed locking or leader election
type RegisterSnapshotWorker struct {
	repo     interfaces.Repository
	builder  SummaryBuilder
	interval time.Duration
	stopCh   chan struct{}
	doneCh   chan struct{}

	mu        sync.RWMutex
	snapshots map[types.ProjectID]*Snapshot
}

func NewRegisterSnapshotWorker(repo interfaces.Repository, builder SummaryBuilder, interval time.Duration) *RegisterSnapshotWorker {
	return &RegisterSnapshotWorker{
		repo:      repo,
		builder:   builder,
		interval:  interval,
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
		snapshots: make(map[types.ProjectID]*Snapshot),
	}
}

// Start begins the background recompute loop. The initial pass runs in the
// background goroutine as well, so server startup is not blocked.
func (w *RegisterSnapshotWorker) Start(ctx context.Context) error {
	logging.Default().Info("register snapshot worker starting",
		"interval", w.interval.String())

	go w.run(ctx)

	return nil
}

// Stop signals the worker to stop and waits for completion
func (w *RegisterSnapshotWorker) Stop() {
	logging.Default().Info("register snapshot worker stopping")
	close(w.stopCh)
	<-w.doneCh
	logging.Default().Info("register snapshot worker stopped")
}

// Get returns the cached snapshot for the project, if one has been computed.
func (w *RegisterSnapshotWorker) Get(projectID types.ProjectID) (*Snapshot, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	snapshot, ok := w.snapshots[projectID]
	return snapshot, ok
}

func (w *RegisterSnapshotWorker) run(ctx context.Context) {
	defer close(w.doneCh)

	if err := w.refresh(ctx); err != nil {
		logging.Default().Error("initial register snapshot failed (will retry next interval)",
			"error", err.Error())
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := w.refresh(ctx); err != nil {
				// Log error but continue worker
				logging.Default().Error("register snapshot failed (will retry next interval)",
					"error", err.Error())
			}

		case <-w.stopCh:
			return

		case <-ctx.Done():
			return
		}
	}
}

// refresh recomputes the summary of every project. Snapshots of deleted
// projects are dropped on the same pass.
func (w *RegisterSnapshotWorker) refresh(ctx context.Context) error {
	startTime := time.Now()

	projects, err := w.repo.Project().List(ctx)
	if err != nil {
		return goerr.Wrap(err, "failed to list projects")
	}

	fresh := make(map[types.ProjectID]*Snapshot, len(projects))
	for _, project := range projects {
		summary, err := w.builder.Summary(ctx, project.ID)
		if err != nil {
			// Keep the previous snapshot for this project
			logging.Default().Error("failed to recompute register summary",
				"error", err.Error(), "project_id", project.ID)
			if prev, ok := w.Get(project.ID); ok {
				fresh[project.ID] = prev
			}
			continue
		}
		fresh[project.ID] = &Snapshot{
			Summary:    summary,
			ComputedAt: startTime,
		}
	}

	w.mu.Lock()
	w.snapshots = fresh
	w.mu.Unlock()

	logging.Default().Info("register snapshots recomputed",
		"projects", len(projects),
		"duration", time.Since(startTime).String())

	return nil
}
