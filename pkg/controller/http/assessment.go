package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/secmon-lab/themis/pkg/domain/model"
	"github.com/secmon-lab/themis/pkg/domain/types"
)

func assessmentID(r *http.Request) types.RiskAssessmentID {
	return types.RiskAssessmentID(chi.URLParam(r, "assessmentID"))
}

func (s *Server) createRiskAssessment(w http.ResponseWriter, r *http.Request) {
	var assessment model.RiskAssessment
	if err := decodeJSON(r, &assessment); err != nil {
		handleError(r.Context(), w, err)
		return
	}

	created, err := s.uc.Assessment.Create(r.Context(), &assessment)
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusCreated, created)
}

func (s *Server) getRiskAssessment(w http.ResponseWriter, r *http.Request) {
	assessment, err := s.uc.Assessment.Get(r.Context(), assessmentID(r))
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, assessment)
}

func (s *Server) listRiskAssessments(w http.ResponseWriter, r *http.Request) {
	list, err := s.uc.Assessment.ListByProject(r.Context(), projectID(r))
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, list)
}

func (s *Server) listRiskAssessmentsByScenario(w http.ResponseWriter, r *http.Request) {
	list, err := s.uc.Assessment.ListByThreatScenario(r.Context(), scenarioID(r))
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, list)
}

// saveAssessmentCore is the first step of the two-step save. The response
// carries non-blocking warnings alongside the persisted assessment.
func (s *Server) saveAssessmentCore(w http.ResponseWriter, r *http.Request) {
	var core model.AssessmentCore
	if err := decodeJSON(r, &core); err != nil {
		handleError(r.Context(), w, err)
		return
	}

	result, err := s.uc.Assessment.SaveCore(r.Context(), assessmentID(r), core)
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, result)
}

// saveAssessmentBreakdown is the second step; the sum invariant is enforced
// here and a mismatch surfaces as 422 with the remaining deficit.
func (s *Server) saveAssessmentBreakdown(w http.ResponseWriter, r *http.Request) {
	var breakdown model.SLEBreakdown
	if err := decodeJSON(r, &breakdown); err != nil {
		handleError(r.Context(), w, err)
		return
	}

	updated, err := s.uc.Assessment.SaveBreakdown(r.Context(), assessmentID(r), breakdown)
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, updated)
}

func (s *Server) deleteRiskAssessment(w http.ResponseWriter, r *http.Request) {
	if err := s.uc.Assessment.Delete(r.Context(), assessmentID(r)); err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, successResponse{Success: true})
}
