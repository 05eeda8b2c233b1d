package usecase

import (
	"context"
	"errors"
	"sort"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/themis/pkg/domain/interfaces"
	"github.com/secmon-lab/themis/pkg/domain/model"
	"github.com/secmon-lab/themis/pkg/domain/model/auth"
	"github.com/secmon-lab/themis/pkg/domain/types"
)

// SOAUseCase drives the statement-of-applicability workflow: associating
// catalog controls with boundaries and recording applicability and
// compliance assessments on those associations.
type SOAUseCase struct {
	repo  interfaces.Repository
	guard *phaseGuard
}

func NewSOAUseCase(repo interfaces.Repository, guard *phaseGuard) *SOAUseCase {
	return &SOAUseCase{repo: repo, guard: guard}
}

// CanAssign reports whether the control can be dropped onto the boundary.
// An already-associated pair yields false without an error; the drop target
// simply rejects the drag.
func (uc *SOAUseCase) CanAssign(ctx context.Context, boundaryID types.BoundaryID, controlID types.ControlID) (bool, error) {
	_, err := uc.repo.BoundaryControl().GetByPair(ctx, boundaryID, controlID)
	if err == nil {
		return false, nil
	}
	if errors.Is(err, interfaces.ErrNotFound) {
		return true, nil
	}
	return false, goerr.Wrap(err, "failed to check association",
		goerr.V("boundary_id", boundaryID), goerr.V("control_id", controlID))
}

// Assign creates the association. The pre-check and the repository's
// uniqueness constraint are redundant layers on purpose; a race between them
// still surfaces as ErrDuplicateAssociation.
func (uc *SOAUseCase) Assign(ctx context.Context, bc *model.BoundaryControl, confirmed bool) (*model.BoundaryControl, error) {
	boundary, err := uc.repo.Boundary().Get(ctx, bc.BoundaryID)
	if err != nil {
		return nil, err
	}
	if _, err := uc.repo.Control().Get(ctx, bc.ControlID); err != nil {
		return nil, err
	}

	ok, err := uc.CanAssign(ctx, bc.BoundaryID, bc.ControlID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, goerr.Wrap(interfaces.ErrDuplicateAssociation, "control is already associated with the boundary",
			goerr.V("boundary_id", bc.BoundaryID), goerr.V("control_id", bc.ControlID))
	}

	bc.ProjectID = boundary.ProjectID
	bc.UserID = auth.UserIDFromContext(ctx)
	bc.Assessment.Status = bc.Assessment.Status.Normalize()

	var created *model.BoundaryControl
	err = uc.guard.run(ctx, boundary.ProjectID, types.PhaseSOA, confirmed, func(ctx context.Context) error {
		var err error
		created, err = uc.repo.BoundaryControl().Create(ctx, bc)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Update applies a partial update to the association. Identity fields are
// not part of the update type, so they cannot change. Pure assessment
// updates run under the evidence_gaps guard; anything touching applicability
// or justification runs under the soa guard.
func (uc *SOAUseCase) Update(ctx context.Context, id types.BoundaryControlID, update *model.BoundaryControlUpdate, confirmed bool) (*model.BoundaryControl, error) {
	existing, err := uc.repo.BoundaryControl().Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.AssessmentStatus != nil && !update.AssessmentStatus.Normalize().IsValid() {
		return nil, goerr.New("invalid compliance status", goerr.T(TagInvalidInput), goerr.V("status", *update.AssessmentStatus))
	}

	phase := types.PhaseSOA
	if update.TouchesAssessment() &&
		update.IsApplicable == nil && update.ReasonInclusion == nil && update.ReasonExclusion == nil {
		phase = types.PhaseEvidenceGaps
	}

	var updated *model.BoundaryControl
	err = uc.guard.run(ctx, existing.ProjectID, phase, confirmed, func(ctx context.Context) error {
		update.Apply(existing)
		existing.Assessment.Status = existing.Assessment.Status.Normalize()
		var err error
		updated, err = uc.repo.BoundaryControl().Update(ctx, existing)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Remove deletes the association entirely. This is distinct from setting
// IsApplicable to false, which keeps the record but scopes it out.
func (uc *SOAUseCase) Remove(ctx context.Context, id types.BoundaryControlID, confirmed bool) error {
	existing, err := uc.repo.BoundaryControl().Get(ctx, id)
	if err != nil {
		return err
	}

	return uc.guard.run(ctx, existing.ProjectID, types.PhaseSOA, confirmed, func(ctx context.Context) error {
		return uc.repo.BoundaryControl().Delete(ctx, id)
	})
}

func (uc *SOAUseCase) Get(ctx context.Context, id types.BoundaryControlID) (*model.BoundaryControl, error) {
	return uc.repo.BoundaryControl().Get(ctx, id)
}

func (uc *SOAUseCase) ListByBoundary(ctx context.Context, boundaryID types.BoundaryID) ([]*model.BoundaryControl, error) {
	return uc.repo.BoundaryControl().ListByBoundary(ctx, boundaryID)
}

func (uc *SOAUseCase) ListByProject(ctx context.Context, projectID types.ProjectID) ([]*model.BoundaryControl, error) {
	return uc.repo.BoundaryControl().ListByProject(ctx, projectID)
}

// SearchControls filters the catalog with a case-insensitive substring query
// over code, name, description and domain, plus an optional domain equality
// filter, and groups the results by domain in ascending order.
func (uc *SOAUseCase) SearchControls(ctx context.Context, query, domain string) ([]*model.ControlGroup, error) {
	controls, err := uc.repo.Control().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list controls")
	}

	byDomain := make(map[string][]*model.Control)
	for _, c := range controls {
		if domain != "" && c.Domain != domain {
			continue
		}
		if !c.Matches(query) {
			continue
		}
		byDomain[c.Domain] = append(byDomain[c.Domain], c)
	}

	domains := make([]string, 0, len(byDomain))
	for d := range byDomain {
		domains = append(domains, d)
	}
	sort.Strings(domains)

	groups := make([]*model.ControlGroup, 0, len(domains))
	for _, d := range domains {
		group := byDomain[d]
		sort.Slice(group, func(i, j int) bool {
			return group[i].ID < group[j].ID
		})
		groups = append(groups, &model.ControlGroup{Domain: d, Controls: group})
	}

	return groups, nil
}
