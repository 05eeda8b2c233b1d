package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/secmon-lab/themis/pkg/domain/model"
	"github.com/secmon-lab/themis/pkg/domain/types"
)

func scenarioID(r *http.Request) types.ThreatScenarioID {
	return types.ThreatScenarioID(chi.URLParam(r, "scenarioID"))
}

func (s *Server) createThreatScenario(w http.ResponseWriter, r *http.Request) {
	var scenario model.ThreatScenario
	if err := decodeJSON(r, &scenario); err != nil {
		handleError(r.Context(), w, err)
		return
	}

	created, err := s.uc.Threat.Create(r.Context(), &scenario)
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusCreated, created)
}

func (s *Server) getThreatScenario(w http.ResponseWriter, r *http.Request) {
	scenario, err := s.uc.Threat.Get(r.Context(), scenarioID(r))
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, scenario)
}

func (s *Server) listThreatScenarios(w http.ResponseWriter, r *http.Request) {
	scenarios, err := s.uc.Threat.ListByProject(r.Context(), projectID(r))
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, scenarios)
}

func (s *Server) updateThreatScenario(w http.ResponseWriter, r *http.Request) {
	var scenario model.ThreatScenario
	if err := decodeJSON(r, &scenario); err != nil {
		handleError(r.Context(), w, err)
		return
	}
	scenario.ID = scenarioID(r)

	updated, err := s.uc.Threat.Update(r.Context(), &scenario)
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, updated)
}

func (s *Server) deleteThreatScenario(w http.ResponseWriter, r *http.Request) {
	if err := s.uc.Threat.Delete(r.Context(), scenarioID(r)); err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, successResponse{Success: true})
}
