package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/themis/pkg/domain/model"
	"github.com/secmon-lab/themis/pkg/domain/types"
)

type riskAssessmentRepository struct {
	mu          sync.RWMutex
	assessments map[types.RiskAssessmentID]*model.RiskAssessment
}

func newRiskAssessmentRepository() *riskAssessmentRepository {
	return &riskAssessmentRepository{
		assessments: make(map[types.RiskAssessmentID]*model.RiskAssessment),
	}
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func copyRiskAssessment(a *model.RiskAssessment) *model.RiskAssessment {
	copied := *a
	if a.GapID != nil {
		id := *a.GapID
		copied.GapID = &id
	}
	copied.Breakdown = model.SLEBreakdown{
		DirectOperational:    copyFloat(a.Breakdown.DirectOperational),
		TechnicalRemediation: copyFloat(a.Breakdown.TechnicalRemediation),
		DataRelated:          copyFloat(a.Breakdown.DataRelated),
		ComplianceLegal:      copyFloat(a.Breakdown.ComplianceLegal),
		Reputational:         copyFloat(a.Breakdown.Reputational),
	}
	return &copied
}

func (r *riskAssessmentRepository) Create(ctx context.Context, assessment *model.RiskAssessment) (*model.RiskAssessment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := copyRiskAssessment(assessment)
	if created.ID == "" {
		created.ID = types.NewRiskAssessmentID()
	}
	created.CreatedAt = now
	created.UpdatedAt = now

	r.assessments[created.ID] = created
	return copyRiskAssessment(created), nil
}

func (r *riskAssessmentRepository) Get(ctx context.Context, id types.RiskAssessmentID) (*model.RiskAssessment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	assessment, exists := r.assessments[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "risk assessment not found", goerr.V("id", id))
	}

	return copyRiskAssessment(assessment), nil
}

func (r *riskAssessmentRepository) ListByProject(ctx context.Context, projectID types.ProjectID) ([]*model.RiskAssessment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var assessments []*model.RiskAssessment
	for _, a := range r.assessments {
		if a.ProjectID == projectID {
			assessments = append(assessments, copyRiskAssessment(a))
		}
	}

	sortRiskAssessments(assessments)
	return assessments, nil
}

func (r *riskAssessmentRepository) ListByThreatScenario(ctx context.Context, scenarioID types.ThreatScenarioID) ([]*model.RiskAssessment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var assessments []*model.RiskAssessment
	for _, a := range r.assessments {
		if a.ThreatScenarioID == scenarioID {
			assessments = append(assessments, copyRiskAssessment(a))
		}
	}

	sortRiskAssessments(assessments)
	return assessments, nil
}

func (r *riskAssessmentRepository) Update(ctx context.Context, assessment *model.RiskAssessment) (*model.RiskAssessment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.assessments[assessment.ID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "risk assessment not found", goerr.V("id", assessment.ID))
	}

	updated := copyRiskAssessment(assessment)
	updated.ProjectID = existing.ProjectID
	updated.AssessorID = existing.AssessorID
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	r.assessments[updated.ID] = updated
	return copyRiskAssessment(updated), nil
}

func (r *riskAssessmentRepository) Delete(ctx context.Context, id types.RiskAssessmentID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.assessments[id]; !exists {
		return goerr.Wrap(ErrNotFound, "risk assessment not found", goerr.V("id", id))
	}

	delete(r.assessments, id)
	return nil
}

func sortRiskAssessments(assessments []*model.RiskAssessment) {
	sort.Slice(assessments, func(i, j int) bool {
		return assessments[i].CreatedAt.After(assessments[j].CreatedAt)
	})
}
