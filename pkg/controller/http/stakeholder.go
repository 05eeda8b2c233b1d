package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/secmon-lab/themis/pkg/domain/model"
	"github.com/secmon-lab/themis/pkg/domain/types"
)

func stakeholderID(r *http.Request) types.StakeholderID {
	return types.StakeholderID(chi.URLParam(r, "stakeholderID"))
}

func (s *Server) listStakeholders(w http.ResponseWriter, r *http.Request) {
	list, err := s.uc.Stakeholder.ListByProject(r.Context(), projectID(r))
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, list)
}

func (s *Server) createStakeholder(w http.ResponseWriter, r *http.Request) {
	var stakeholder model.Stakeholder
	if err := decodeJSON(r, &stakeholder); err != nil {
		handleError(r.Context(), w, err)
		return
	}
	stakeholder.ProjectID = projectID(r)

	created, err := s.uc.Stakeholder.Create(r.Context(), &stakeholder, confirmed(r))
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusCreated, created)
}

func (s *Server) getStakeholder(w http.ResponseWriter, r *http.Request) {
	stakeholder, err := s.uc.Stakeholder.Get(r.Context(), stakeholderID(r))
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, stakeholder)
}

func (s *Server) updateStakeholder(w http.ResponseWriter, r *http.Request) {
	var stakeholder model.Stakeholder
	if err := decodeJSON(r, &stakeholder); err != nil {
		handleError(r.Context(), w, err)
		return
	}
	stakeholder.ID = stakeholderID(r)

	updated, err := s.uc.Stakeholder.Update(r.Context(), &stakeholder, confirmed(r))
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, updated)
}

func (s *Server) deleteStakeholder(w http.ResponseWriter, r *http.Request) {
	if err := s.uc.Stakeholder.Delete(r.Context(), stakeholderID(r), confirmed(r)); err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, successResponse{Success: true})
}
