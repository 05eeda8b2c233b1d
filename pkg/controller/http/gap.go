package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/secmon-lab/themis/pkg/domain/model"
	"github.com/secmon-lab/themis/pkg/domain/types"
)

func gapID(r *http.Request) types.GapID {
	return types.GapID(chi.URLParam(r, "gapID"))
}

func (s *Server) createGap(w http.ResponseWriter, r *http.Request) {
	var gap model.Gap
	if err := decodeJSON(r, &gap); err != nil {
		handleError(r.Context(), w, err)
		return
	}

	created, err := s.uc.Gap.Create(r.Context(), &gap, confirmed(r))
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusCreated, created)
}

func (s *Server) getGap(w http.ResponseWriter, r *http.Request) {
	gap, err := s.uc.Gap.Get(r.Context(), gapID(r))
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, gap)
}

func (s *Server) listGaps(w http.ResponseWriter, r *http.Request) {
	gaps, err := s.uc.Gap.ListByProject(r.Context(), projectID(r))
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, gaps)
}

func (s *Server) listGapsByBoundaryControl(w http.ResponseWriter, r *http.Request) {
	gaps, err := s.uc.Gap.ListByBoundaryControl(r.Context(), boundaryControlID(r))
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, gaps)
}

func (s *Server) updateGap(w http.ResponseWriter, r *http.Request) {
	var gap model.Gap
	if err := decodeJSON(r, &gap); err != nil {
		handleError(r.Context(), w, err)
		return
	}
	gap.ID = gapID(r)

	updated, err := s.uc.Gap.Update(r.Context(), &gap, confirmed(r))
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, updated)
}

func (s *Server) deleteGap(w http.ResponseWriter, r *http.Request) {
	if err := s.uc.Gap.Delete(r.Context(), gapID(r), confirmed(r)); err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, successResponse{Success: true})
}
