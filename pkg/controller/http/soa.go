package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/secmon-lab/themis/pkg/domain/model"
	"github.com/secmon-lab/themis/pkg/domain/types"
)

func boundaryControlID(r *http.Request) types.BoundaryControlID {
	return types.BoundaryControlID(chi.URLParam(r, "boundaryControlID"))
}

// searchControls serves the catalog panel: an optional substring query and
// an optional domain filter, grouped by domain.
func (s *Server) searchControls(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	domain := r.URL.Query().Get("domain")

	groups, err := s.uc.SOA.SearchControls(r.Context(), query, domain)
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, groups)
}

type canAssignResponse struct {
	CanAssign bool `json:"can_assign"`
}

func (s *Server) canAssignControl(w http.ResponseWriter, r *http.Request) {
	ok, err := s.uc.SOA.CanAssign(r.Context(), boundaryID(r), types.ControlID(chi.URLParam(r, "controlID")))
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, canAssignResponse{CanAssign: ok})
}

type assignRequest struct {
	IsApplicable    bool   `json:"is_applicable"`
	ReasonInclusion string `json:"reason_inclusion"`
	ReasonExclusion string `json:"reason_exclusion"`
}

func (s *Server) assignControl(w http.ResponseWriter, r *http.Request) {
	var req assignRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(r.Context(), w, err)
		return
	}

	bc := &model.BoundaryControl{
		BoundaryID:      boundaryID(r),
		ControlID:       types.ControlID(chi.URLParam(r, "controlID")),
		IsApplicable:    req.IsApplicable,
		ReasonInclusion: req.ReasonInclusion,
		ReasonExclusion: req.ReasonExclusion,
	}

	created, err := s.uc.SOA.Assign(r.Context(), bc, confirmed(r))
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusCreated, created)
}

func (s *Server) getBoundaryControl(w http.ResponseWriter, r *http.Request) {
	bc, err := s.uc.SOA.Get(r.Context(), boundaryControlID(r))
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, bc)
}

func (s *Server) listBoundaryControlsByBoundary(w http.ResponseWriter, r *http.Request) {
	list, err := s.uc.SOA.ListByBoundary(r.Context(), boundaryID(r))
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, list)
}

func (s *Server) listBoundaryControlsByProject(w http.ResponseWriter, r *http.Request) {
	list, err := s.uc.SOA.ListByProject(r.Context(), projectID(r))
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, list)
}

// updateBoundaryControl applies a partial update; unset fields are left
// alone. Applicability and assessment edits share this endpoint, the phase
// guard distinguishes them server-side.
func (s *Server) updateBoundaryControl(w http.ResponseWriter, r *http.Request) {
	var update model.BoundaryControlUpdate
	if err := decodeJSON(r, &update); err != nil {
		handleError(r.Context(), w, err)
		return
	}

	updated, err := s.uc.SOA.Update(r.Context(), boundaryControlID(r), &update, confirmed(r))
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, updated)
}

func (s *Server) removeBoundaryControl(w http.ResponseWriter, r *http.Request) {
	if err := s.uc.SOA.Remove(r.Context(), boundaryControlID(r), confirmed(r)); err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, successResponse{Success: true})
}
