package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/secmon-lab/themis/pkg/domain/interfaces"
	"github.com/secmon-lab/themis/pkg/domain/model/config"
	"github.com/secmon-lab/themis/pkg/domain/types"
	"github.com/secmon-lab/themis/pkg/utils/logging"
)

// phaseUnmarkFailures counts best-effort phase unmarks that failed after a
// successful mutation. The mutation itself is already committed at that
// point, so the failure is observable here instead of being propagated.
var phaseUnmarkFailures = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "themis",
	Name:      "phase_unmark_failures_total",
	Help:      "Number of failed phase completion resets after a guarded mutation",
}, []string{"phase"})

// phaseGuard wraps phase-scoped mutations with the completion guard: a
// mutation against a completed phase requires confirmation, and a confirmed
// mutation resets the completion timestamp afterwards.
type phaseGuard struct {
	repo   interfaces.Repository
	policy *config.PhasePolicy
	clock  func() time.Time
}

// run executes mutate under the guard for the given phase. When the phase is
// already complete and the caller has not confirmed, ErrPhaseCompleted is
// returned before the mutation runs. After a successful mutation the
// completion timestamp is cleared; a phase that was not complete is left
// untouched. The unmark is best effort: its failure is logged and counted,
// never propagated, since the mutation is already committed.
func (g *phaseGuard) run(ctx context.Context, projectID types.ProjectID, phase types.PhaseKey, confirmed bool, mutate func(context.Context) error) error {
	if !g.policy.GuardsPhase(phase) {
		return mutate(ctx)
	}

	project, err := g.repo.Project().Get(ctx, projectID)
	if err != nil {
		return goerr.Wrap(err, "failed to load project for phase guard", goerr.V(ProjectIDKey, projectID))
	}

	wasComplete := project.IsPhaseComplete(phase)
	if wasComplete && !confirmed {
		return goerr.Wrap(ErrPhaseCompleted, "mutation touches a completed phase",
			goerr.V(ProjectIDKey, projectID), goerr.V(PhaseKeyKey, phase))
	}

	if err := mutate(ctx); err != nil {
		return err
	}

	if wasComplete {
		if err := g.repo.Project().SetPhaseCompletion(ctx, projectID, phase, nil); err != nil {
			logging.From(ctx).Error("failed to reset phase completion after mutation",
				"error", err, "project_id", projectID, "phase", phase)
			phaseUnmarkFailures.WithLabelValues(phase.String()).Inc()
		}
	}

	return nil
}

// MarkPhaseComplete stamps the completion timestamp for the phase.
func (uc *ProjectUseCase) MarkPhaseComplete(ctx context.Context, projectID types.ProjectID, phase types.PhaseKey) error {
	if !phase.IsValid() {
		return goerr.New("invalid phase key", goerr.T(TagInvalidInput), goerr.V(PhaseKeyKey, phase))
	}
	now := uc.clock()
	if err := uc.repo.Project().SetPhaseCompletion(ctx, projectID, phase, &now); err != nil {
		return goerr.Wrap(err, "failed to mark phase complete",
			goerr.V(ProjectIDKey, projectID), goerr.V(PhaseKeyKey, phase))
	}
	return nil
}

// UnmarkPhaseComplete clears the completion timestamp for the phase.
func (uc *ProjectUseCase) UnmarkPhaseComplete(ctx context.Context, projectID types.ProjectID, phase types.PhaseKey) error {
	if !phase.IsValid() {
		return goerr.New("invalid phase key", goerr.T(TagInvalidInput), goerr.V(PhaseKeyKey, phase))
	}
	if err := uc.repo.Project().SetPhaseCompletion(ctx, projectID, phase, nil); err != nil {
		return goerr.Wrap(err, "failed to unmark phase",
			goerr.V(ProjectIDKey, projectID), goerr.V(PhaseKeyKey, phase))
	}
	return nil
}

// RequiresConfirmation reports whether a mutation in the phase would prompt
// for confirmation, without mutating anything. It backs the drag pre-check.
func (uc *ProjectUseCase) RequiresConfirmation(ctx context.Context, projectID types.ProjectID, phase types.PhaseKey) (bool, error) {
	if !uc.guard.policy.GuardsPhase(phase) {
		return false, nil
	}
	project, err := uc.repo.Project().Get(ctx, projectID)
	if err != nil {
		return false, goerr.Wrap(err, "failed to load project", goerr.V(ProjectIDKey, projectID))
	}
	return project.IsPhaseComplete(phase), nil
}
