package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/secmon-lab/themis/pkg/service/worker"
	"github.com/secmon-lab/themis/pkg/usecase"
)

type Server struct {
	router   *chi.Mux
	uc       *usecase.UseCases
	snapshot *worker.RegisterSnapshotWorker
}

type Options func(*Server)

// WithSnapshotWorker serves the register summary from the worker's cache
// when a fresh snapshot is available.
func WithSnapshotWorker(w *worker.RegisterSnapshotWorker) Options {
	return func(s *Server) {
		s.snapshot = w
	}
}

func New(uc *usecase.UseCases, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router: r,
		uc:     uc,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(metricsMiddleware)
	r.Use(middleware.Recoverer)

	r.Get("/health", healthHandler)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(authMiddleware(uc.Auth))

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", s.authLogin)
			r.Post("/logout", s.authLogout)
			r.Get("/me", s.authMe)
		})

		r.Route("/projects", func(r chi.Router) {
			r.Get("/", s.listProjects)
			r.Post("/", s.createProject)

			r.Route("/{projectID}", func(r chi.Router) {
				r.Get("/", s.getProject)
				r.Put("/", s.updateProject)
				r.Delete("/", s.deleteProject)

				r.Get("/phases", s.listPhaseProgress)
				r.Post("/phases/{phaseKey}/complete", s.completePhase)
				r.Post("/phases/{phaseKey}/uncomplete", s.uncompletePhase)

				r.Get("/boundaries", s.listBoundaries)
				r.Post("/boundaries", s.createBoundary)
				r.Get("/boundary-controls", s.listBoundaryControlsByProject)
				r.Get("/gaps", s.listGaps)
				r.Get("/evidence", s.listEvidence)
				r.Get("/threat-scenarios", s.listThreatScenarios)
				r.Get("/risk-assessments", s.listRiskAssessments)
				r.Get("/register", s.getRegister)
				r.Get("/register/summary", s.getRegisterSummary)

				r.Get("/stakeholders", s.listStakeholders)
				r.Post("/stakeholders", s.createStakeholder)
				r.Get("/objectives", s.listObjectives)
				r.Post("/objectives", s.createObjective)
				r.Get("/questions", s.listQuestions)
				r.Post("/questions", s.createQuestion)
				r.Get("/answers", s.listAnswers)
			})
		})

		r.Route("/boundaries/{boundaryID}", func(r chi.Router) {
			r.Get("/", s.getBoundary)
			r.Put("/", s.updateBoundary)
			r.Delete("/", s.deleteBoundary)
			r.Get("/controls", s.listBoundaryControlsByBoundary)
			r.Get("/controls/{controlID}/can-assign", s.canAssignControl)
			r.Post("/controls/{controlID}", s.assignControl)
		})

		r.Get("/controls", s.searchControls)

		r.Route("/boundary-controls/{boundaryControlID}", func(r chi.Router) {
			r.Get("/", s.getBoundaryControl)
			r.Patch("/", s.updateBoundaryControl)
			r.Delete("/", s.removeBoundaryControl)
			r.Get("/evidence", s.listEvidenceByBoundaryControl)
			r.Get("/gaps", s.listGapsByBoundaryControl)
		})

		r.Post("/gaps", s.createGap)
		r.Route("/gaps/{gapID}", func(r chi.Router) {
			r.Get("/", s.getGap)
			r.Put("/", s.updateGap)
			r.Delete("/", s.deleteGap)
		})

		r.Post("/evidence/upload", s.uploadEvidence)
		r.Route("/evidence/{evidenceID}", func(r chi.Router) {
			r.Get("/", s.getEvidence)
			r.Put("/", s.updateEvidence)
			r.Delete("/", s.deleteEvidence)
			r.Get("/download-url", s.evidenceDownloadURL)
		})

		r.Post("/threat-scenarios", s.createThreatScenario)
		r.Route("/threat-scenarios/{scenarioID}", func(r chi.Router) {
			r.Get("/", s.getThreatScenario)
			r.Put("/", s.updateThreatScenario)
			r.Delete("/", s.deleteThreatScenario)
			r.Get("/risk-assessments", s.listRiskAssessmentsByScenario)
		})

		r.Post("/risk-assessments", s.createRiskAssessment)
		r.Route("/risk-assessments/{assessmentID}", func(r chi.Router) {
			r.Get("/", s.getRiskAssessment)
			r.Put("/core", s.saveAssessmentCore)
			r.Put("/breakdown", s.saveAssessmentBreakdown)
			r.Delete("/", s.deleteRiskAssessment)
		})

		r.Route("/stakeholders/{stakeholderID}", func(r chi.Router) {
			r.Get("/", s.getStakeholder)
			r.Put("/", s.updateStakeholder)
			r.Delete("/", s.deleteStakeholder)
		})

		r.Route("/objectives/{objectiveID}", func(r chi.Router) {
			r.Get("/", s.getObjective)
			r.Put("/", s.updateObjective)
			r.Delete("/", s.deleteObjective)
		})

		r.Route("/questions/{questionID}", func(r chi.Router) {
			r.Put("/", s.updateQuestion)
			r.Delete("/", s.deleteQuestion)
			r.Post("/answer", s.answerQuestion)
		})
		r.Delete("/answers/{answerID}", s.deleteAnswer)
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
}
