package usecase

import (
	"time"

	"github.com/secmon-lab/themis/pkg/domain/interfaces"
	"github.com/secmon-lab/themis/pkg/domain/model/config"
)

// UseCases aggregates the application services behind the HTTP controller.
type UseCases struct {
	repo       interfaces.Repository
	storage    interfaces.StorageClient
	policy     *config.PhasePolicy
	thresholds *config.ALEThresholds
	clock      func() time.Time

	Project       *ProjectUseCase
	Boundary      *BoundaryUseCase
	SOA           *SOAUseCase
	Gap           *GapUseCase
	Evidence      *EvidenceUseCase
	Threat        *ThreatUseCase
	Assessment    *AssessmentUseCase
	Register      *RegisterUseCase
	Stakeholder   *StakeholderUseCase
	Objective     *ObjectiveUseCase
	Questionnaire *QuestionnaireUseCase
	Auth          AuthUseCaseInterface
}

type Option func(*UseCases)

func WithStorage(storage interfaces.StorageClient) Option {
	return func(uc *UseCases) {
		uc.storage = storage
	}
}

func WithAuth(auth AuthUseCaseInterface) Option {
	return func(uc *UseCases) {
		uc.Auth = auth
	}
}

func WithPhasePolicy(policy *config.PhasePolicy) Option {
	return func(uc *UseCases) {
		uc.policy = policy
	}
}

func WithThresholds(thresholds *config.ALEThresholds) Option {
	return func(uc *UseCases) {
		uc.thresholds = thresholds
	}
}

// WithClock overrides the time source, used by tests.
func WithClock(clock func() time.Time) Option {
	return func(uc *UseCases) {
		uc.clock = clock
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:       repo,
		policy:     config.DefaultPhasePolicy(),
		thresholds: config.DefaultALEThresholds(),
		clock:      func() time.Time { return time.Now().UTC() },
	}

	for _, opt := range opts {
		opt(uc)
	}

	guard := &phaseGuard{
		repo:   repo,
		policy: uc.policy,
		clock:  uc.clock,
	}

	uc.Project = NewProjectUseCase(repo, guard, uc.policy, uc.clock)
	uc.Boundary = NewBoundaryUseCase(repo, guard)
	uc.SOA = NewSOAUseCase(repo, guard)
	uc.Gap = NewGapUseCase(repo, guard)
	uc.Evidence = NewEvidenceUseCase(repo, guard, uc.storage)
	uc.Threat = NewThreatUseCase(repo)
	uc.Assessment = NewAssessmentUseCase(repo)
	uc.Register = NewRegisterUseCase(repo, uc.thresholds)
	uc.Stakeholder = NewStakeholderUseCase(repo, guard)
	uc.Objective = NewObjectiveUseCase(repo, guard)
	uc.Questionnaire = NewQuestionnaireUseCase(repo, guard)

	if uc.Auth == nil {
		uc.Auth = NewNoAuthnUseCase()
	}

	return uc
}
