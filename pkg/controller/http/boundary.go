package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/secmon-lab/themis/pkg/domain/model"
	"github.com/secmon-lab/themis/pkg/domain/types"
)

func boundaryID(r *http.Request) types.BoundaryID {
	return types.BoundaryID(chi.URLParam(r, "boundaryID"))
}

func (s *Server) listBoundaries(w http.ResponseWriter, r *http.Request) {
	boundaries, err := s.uc.Boundary.ListByProject(r.Context(), projectID(r))
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, boundaries)
}

func (s *Server) createBoundary(w http.ResponseWriter, r *http.Request) {
	var boundary model.Boundary
	if err := decodeJSON(r, &boundary); err != nil {
		handleError(r.Context(), w, err)
		return
	}
	boundary.ProjectID = projectID(r)

	created, err := s.uc.Boundary.Create(r.Context(), &boundary, confirmed(r))
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusCreated, created)
}

func (s *Server) getBoundary(w http.ResponseWriter, r *http.Request) {
	boundary, err := s.uc.Boundary.Get(r.Context(), boundaryID(r))
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, boundary)
}

func (s *Server) updateBoundary(w http.ResponseWriter, r *http.Request) {
	var boundary model.Boundary
	if err := decodeJSON(r, &boundary); err != nil {
		handleError(r.Context(), w, err)
		return
	}
	boundary.ID = boundaryID(r)

	updated, err := s.uc.Boundary.Update(r.Context(), &boundary, confirmed(r))
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, updated)
}

func (s *Server) deleteBoundary(w http.ResponseWriter, r *http.Request) {
	if err := s.uc.Boundary.Delete(r.Context(), boundaryID(r), confirmed(r)); err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, successResponse{Success: true})
}
