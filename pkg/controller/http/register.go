package http

import (
	"net/http"
	"time"

	"github.com/secmon-lab/themis/pkg/domain/model"
)

func (s *Server) getRegister(w http.ResponseWriter, r *http.Request) {
	rows, err := s.uc.Register.Build(r.Context(), projectID(r))
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, rows)
}

type summaryResponse struct {
	*model.RegisterSummary
	ComputedAt *time.Time `json:"computed_at,omitempty"`
	Cached     bool       `json:"cached"`
}

// getRegisterSummary serves the CRQ report. The snapshot worker's cache is
// preferred when available; ?fresh=true forces a live recompute.
func (s *Server) getRegisterSummary(w http.ResponseWriter, r *http.Request) {
	id := projectID(r)

	if s.snapshot != nil && r.URL.Query().Get("fresh") != "true" {
		if snap, ok := s.snapshot.Get(id); ok {
			writeJSON(r.Context(), w, http.StatusOK, summaryResponse{
				RegisterSummary: snap.Summary,
				ComputedAt:      &snap.ComputedAt,
				Cached:          true,
			})
			return
		}
	}

	summary, err := s.uc.Register.Summary(r.Context(), id)
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, summaryResponse{RegisterSummary: summary})
}
