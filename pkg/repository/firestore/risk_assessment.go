package firestore

import (
	"context"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/themis/pkg/domain/model"
	"github.com/secmon-lab/themis/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type sleBreakdownDocument struct {
	DirectOperational    *float64 `firestore:"direct_operational"`
	TechnicalRemediation *float64 `firestore:"technical_remediation"`
	DataRelated          *float64 `firestore:"data_related"`
	ComplianceLegal      *float64 `firestore:"compliance_legal"`
	Reputational         *float64 `firestore:"reputational"`
}

type riskAssessmentDocument struct {
	ID               string               `firestore:"id"`
	ProjectID        string               `firestore:"project_id"`
	BoundaryID       string               `firestore:"boundary_id"`
	ThreatScenarioID string               `firestore:"threat_scenario_id"`
	GapID            string               `firestore:"gap_id"`
	Severity         string               `firestore:"severity"`
	SLE              float64              `firestore:"sle"`
	ARO              float64              `firestore:"aro"`
	Breakdown        sleBreakdownDocument `firestore:"breakdown"`
	AssessmentNotes  string               `firestore:"assessment_notes"`
	AssessorID       string               `firestore:"assessor_id"`
	CreatedAt        time.Time            `firestore:"created_at"`
	UpdatedAt        time.Time            `firestore:"updated_at"`
}

func toRiskAssessmentDocument(a *model.RiskAssessment) *riskAssessmentDocument {
	doc := &riskAssessmentDocument{
		ID:               a.ID.String(),
		ProjectID:        a.ProjectID.String(),
		BoundaryID:       a.BoundaryID.String(),
		ThreatScenarioID: a.ThreatScenarioID.String(),
		Severity:         a.Severity.String(),
		SLE:              a.SLE,
		ARO:              a.ARO,
		Breakdown: sleBreakdownDocument{
			DirectOperational:    a.Breakdown.DirectOperational,
			TechnicalRemediation: a.Breakdown.TechnicalRemediation,
			DataRelated:          a.Breakdown.DataRelated,
			ComplianceLegal:      a.Breakdown.ComplianceLegal,
			Reputational:         a.Breakdown.Reputational,
		},
		AssessmentNotes: a.AssessmentNotes,
		AssessorID:      a.AssessorID.String(),
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
	if a.GapID != nil {
		doc.GapID = a.GapID.String()
	}
	return doc
}

func (d *riskAssessmentDocument) toModel() *model.RiskAssessment {
	a := &model.RiskAssessment{
		ID:               types.RiskAssessmentID(d.ID),
		ProjectID:        types.ProjectID(d.ProjectID),
		BoundaryID:       types.BoundaryID(d.BoundaryID),
		ThreatScenarioID: types.ThreatScenarioID(d.ThreatScenarioID),
		Severity:         types.RiskSeverity(d.Severity),
		SLE:              d.SLE,
		ARO:              d.ARO,
		Breakdown: model.SLEBreakdown{
			DirectOperational:    d.Breakdown.DirectOperational,
			TechnicalRemediation: d.Breakdown.TechnicalRemediation,
			DataRelated:          d.Breakdown.DataRelated,
			ComplianceLegal:      d.Breakdown.ComplianceLegal,
			Reputational:         d.Breakdown.Reputational,
		},
		AssessmentNotes: d.AssessmentNotes,
		AssessorID:      types.UserID(d.AssessorID),
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
	if d.GapID != "" {
		id := types.GapID(d.GapID)
		a.GapID = &id
	}
	return a
}

type riskAssessmentRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newRiskAssessmentRepository(client *firestore.Client) *riskAssessmentRepository {
	return &riskAssessmentRepository{client: client}
}

func (r *riskAssessmentRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_risk_assessments"
	}
	return "risk_assessments"
}

func (r *riskAssessmentRepository) Create(ctx context.Context, assessment *model.RiskAssessment) (*model.RiskAssessment, error) {
	created := *assessment
	if created.ID == "" {
		created.ID = types.NewRiskAssessmentID()
	}
	now := time.Now().UTC()
	created.CreatedAt = now
	created.UpdatedAt = now

	docRef := r.client.Collection(r.collection()).Doc(created.ID.String())
	if _, err := docRef.Set(ctx, toRiskAssessmentDocument(&created)); err != nil {
		return nil, goerr.Wrap(err, "failed to create risk assessment", goerr.V("id", created.ID))
	}

	return &created, nil
}

func (r *riskAssessmentRepository) Get(ctx context.Context, id types.RiskAssessmentID) (*model.RiskAssessment, error) {
	docRef := r.client.Collection(r.collection()).Doc(id.String())
	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "risk assessment not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get risk assessment", goerr.V("id", id))
	}

	var assessmentDoc riskAssessmentDocument
	if err := doc.DataTo(&assessmentDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal risk assessment", goerr.V("id", id))
	}

	return assessmentDoc.toModel(), nil
}

func (r *riskAssessmentRepository) ListByProject(ctx context.Context, projectID types.ProjectID) ([]*model.RiskAssessment, error) {
	return r.list(ctx, "project_id", projectID.String())
}

func (r *riskAssessmentRepository) ListByThreatScenario(ctx context.Context, scenarioID types.ThreatScenarioID) ([]*model.RiskAssessment, error) {
	return r.list(ctx, "threat_scenario_id", scenarioID.String())
}

func (r *riskAssessmentRepository) list(ctx context.Context, field, value string) ([]*model.RiskAssessment, error) {
	iter := r.client.Collection(r.collection()).Where(field, "==", value).Documents(ctx)
	defer iter.Stop()

	var assessments []*model.RiskAssessment
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate risk assessments")
		}

		var assessmentDoc riskAssessmentDocument
		if err := doc.DataTo(&assessmentDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal risk assessment")
		}

		assessments = append(assessments, assessmentDoc.toModel())
	}

	sort.Slice(assessments, func(i, j int) bool {
		return assessments[i].CreatedAt.After(assessments[j].CreatedAt)
	})

	return assessments, nil
}

func (r *riskAssessmentRepository) Update(ctx context.Context, assessment *model.RiskAssessment) (*model.RiskAssessment, error) {
	docRef := r.client.Collection(r.collection()).Doc(assessment.ID.String())

	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "risk assessment not found", goerr.V("id", assessment.ID))
		}
		return nil, goerr.Wrap(err, "failed to get risk assessment", goerr.V("id", assessment.ID))
	}

	var existing riskAssessmentDocument
	if err := doc.DataTo(&existing); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal risk assessment", goerr.V("id", assessment.ID))
	}

	updated := *assessment
	updated.ProjectID = types.ProjectID(existing.ProjectID)
	updated.AssessorID = types.UserID(existing.AssessorID)
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	if _, err := docRef.Set(ctx, toRiskAssessmentDocument(&updated)); err != nil {
		return nil, goerr.Wrap(err, "failed to update risk assessment", goerr.V("id", assessment.ID))
	}

	return &updated, nil
}

func (r *riskAssessmentRepository) Delete(ctx context.Context, id types.RiskAssessmentID) error {
	docRef := r.client.Collection(r.collection()).Doc(id.String())

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "risk assessment not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to get risk assessment", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete risk assessment", goerr.V("id", id))
	}

	return nil
}
