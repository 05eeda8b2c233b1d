package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/secmon-lab/themis/pkg/domain/model"
	"github.com/secmon-lab/themis/pkg/domain/types"
)

func projectID(r *http.Request) types.ProjectID {
	return types.ProjectID(chi.URLParam(r, "projectID"))
}

func (s *Server) listProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := s.uc.Project.List(r.Context())
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, projects)
}

func (s *Server) createProject(w http.ResponseWriter, r *http.Request) {
	var project model.Project
	if err := decodeJSON(r, &project); err != nil {
		handleError(r.Context(), w, err)
		return
	}

	created, err := s.uc.Project.Create(r.Context(), &project)
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusCreated, created)
}

func (s *Server) getProject(w http.ResponseWriter, r *http.Request) {
	project, err := s.uc.Project.Get(r.Context(), projectID(r))
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, project)
}

func (s *Server) updateProject(w http.ResponseWriter, r *http.Request) {
	var project model.Project
	if err := decodeJSON(r, &project); err != nil {
		handleError(r.Context(), w, err)
		return
	}
	project.ID = projectID(r)

	updated, err := s.uc.Project.Update(r.Context(), &project)
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, updated)
}

func (s *Server) deleteProject(w http.ResponseWriter, r *http.Request) {
	if err := s.uc.Project.Delete(r.Context(), projectID(r)); err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, successResponse{Success: true})
}

func (s *Server) listPhaseProgress(w http.ResponseWriter, r *http.Request) {
	progress, err := s.uc.Project.PhaseProgressList(r.Context(), projectID(r))
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, progress)
}

func (s *Server) completePhase(w http.ResponseWriter, r *http.Request) {
	phase := types.PhaseKey(chi.URLParam(r, "phaseKey"))
	if err := s.uc.Project.MarkPhaseComplete(r.Context(), projectID(r), phase); err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, successResponse{Success: true})
}

func (s *Server) uncompletePhase(w http.ResponseWriter, r *http.Request) {
	phase := types.PhaseKey(chi.URLParam(r, "phaseKey"))
	if err := s.uc.Project.UnmarkPhaseComplete(r.Context(), projectID(r), phase); err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, successResponse{Success: true})
}
