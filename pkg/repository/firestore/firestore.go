package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/themis/pkg/domain/interfaces"
)

// Firestore is the Cloud Firestore repository backend.
type Firestore struct {
	client          *firestore.Client
	project         *projectRepository
	boundary        *boundaryRepository
	control         *controlRepository
	boundaryControl *boundaryControlRepository
	gap             *gapRepository
	evidence        *evidenceRepository
	threatScenario  *threatScenarioRepository
	riskAssessment  *riskAssessmentRepository
	stakeholder     *stakeholderRepository
	objective       *objectiveRepository
	question        *questionRepository
	answer          *answerRepository

	tokenCollectionPrefix string
}

var _ interfaces.Repository = &Firestore{}

type Option func(*Firestore)

// WithCollectionPrefix prefixes every collection name, used to isolate
// test runs sharing one database.
func WithCollectionPrefix(prefix string) Option {
	return func(f *Firestore) {
		f.project.collectionPrefix = prefix
		f.boundary.collectionPrefix = prefix
		f.control.collectionPrefix = prefix
		f.boundaryControl.collectionPrefix = prefix
		f.gap.collectionPrefix = prefix
		f.evidence.collectionPrefix = prefix
		f.threatScenario.collectionPrefix = prefix
		f.riskAssessment.collectionPrefix = prefix
		f.stakeholder.collectionPrefix = prefix
		f.objective.collectionPrefix = prefix
		f.question.collectionPrefix = prefix
		f.answer.collectionPrefix = prefix
		f.tokenCollectionPrefix = prefix
	}
}

func New(ctx context.Context, projectID, databaseID string, opts ...Option) (*Firestore, error) {
	var client *firestore.Client
	var err error
	if databaseID != "" && databaseID != firestore.DefaultDatabaseID {
		client, err = firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	} else {
		client, err = firestore.NewClient(ctx, projectID)
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("projectID", projectID), goerr.V("databaseID", databaseID))
	}

	f := &Firestore{
		client:          client,
		project:         newProjectRepository(client),
		boundary:        newBoundaryRepository(client),
		control:         newControlRepository(client),
		boundaryControl: newBoundaryControlRepository(client),
		gap:             newGapRepository(client),
		evidence:        newEvidenceRepository(client),
		threatScenario:  newThreatScenarioRepository(client),
		riskAssessment:  newRiskAssessmentRepository(client),
		stakeholder:     newStakeholderRepository(client),
		objective:       newObjectiveRepository(client),
		question:        newQuestionRepository(client),
		answer:          newAnswerRepository(client),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

func (f *Firestore) Project() interfaces.ProjectRepository {
	return f.project
}

func (f *Firestore) Boundary() interfaces.BoundaryRepository {
	return f.boundary
}

func (f *Firestore) Control() interfaces.ControlRepository {
	return f.control
}

func (f *Firestore) BoundaryControl() interfaces.BoundaryControlRepository {
	return f.boundaryControl
}

func (f *Firestore) Gap() interfaces.GapRepository {
	return f.gap
}

func (f *Firestore) Evidence() interfaces.EvidenceRepository {
	return f.evidence
}

func (f *Firestore) ThreatScenario() interfaces.ThreatScenarioRepository {
	return f.threatScenario
}

func (f *Firestore) RiskAssessment() interfaces.RiskAssessmentRepository {
	return f.riskAssessment
}

func (f *Firestore) Stakeholder() interfaces.StakeholderRepository {
	return f.stakeholder
}

func (f *Firestore) Objective() interfaces.ObjectiveRepository {
	return f.objective
}

func (f *Firestore) Question() interfaces.QuestionRepository {
	return f.question
}

func (f *Firestore) Answer() interfaces.AnswerRepository {
	return f.answer
}

func (f *Firestore) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}
