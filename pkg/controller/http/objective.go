package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/secmon-lab/themis/pkg/domain/model"
	"github.com/secmon-lab/themis/pkg/domain/types"
)

func objectiveID(r *http.Request) types.ObjectiveID {
	return types.ObjectiveID(chi.URLParam(r, "objectiveID"))
}

func (s *Server) listObjectives(w http.ResponseWriter, r *http.Request) {
	list, err := s.uc.Objective.ListByProject(r.Context(), projectID(r))
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, list)
}

func (s *Server) createObjective(w http.ResponseWriter, r *http.Request) {
	var objective model.Objective
	if err := decodeJSON(r, &objective); err != nil {
		handleError(r.Context(), w, err)
		return
	}
	objective.ProjectID = projectID(r)

	created, err := s.uc.Objective.Create(r.Context(), &objective, confirmed(r))
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusCreated, created)
}

func (s *Server) getObjective(w http.ResponseWriter, r *http.Request) {
	objective, err := s.uc.Objective.Get(r.Context(), objectiveID(r))
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, objective)
}

func (s *Server) updateObjective(w http.ResponseWriter, r *http.Request) {
	var objective model.Objective
	if err := decodeJSON(r, &objective); err != nil {
		handleError(r.Context(), w, err)
		return
	}
	objective.ID = objectiveID(r)

	updated, err := s.uc.Objective.Update(r.Context(), &objective, confirmed(r))
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, updated)
}

func (s *Server) deleteObjective(w http.ResponseWriter, r *http.Request) {
	if err := s.uc.Objective.Delete(r.Context(), objectiveID(r), confirmed(r)); err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, successResponse{Success: true})
}
