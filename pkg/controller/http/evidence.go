package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/themis/pkg/domain/model"
	"github.com/secmon-lab/themis/pkg/domain/types"
	"github.com/secmon-lab/themis/pkg/usecase"
	"github.com/secmon-lab/themis/pkg/utils/safe"
)

// maxUploadSize bounds the in-memory part of a multipart evidence upload.
// Larger files spill to disk.
const maxUploadSize = 32 << 20

func evidenceID(r *http.Request) types.EvidenceID {
	return types.EvidenceID(chi.URLParam(r, "evidenceID"))
}

// uploadEvidence accepts a multipart form: the attachment under "file" plus
// the metadata fields. When boundary_control_id is given the project and
// control are inherited from the association.
func (s *Server) uploadEvidence(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		handleError(r.Context(), w, goerr.Wrap(err, "invalid multipart form", goerr.T(usecase.TagInvalidInput)))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		handleError(r.Context(), w, goerr.Wrap(err, "file part is required", goerr.T(usecase.TagInvalidInput)))
		return
	}
	defer safe.Close(r.Context(), file)

	input := &usecase.UploadInput{
		ProjectID:   types.ProjectID(r.FormValue("project_id")),
		ControlID:   types.ControlID(r.FormValue("control_id")),
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Body:        file,
	}
	if v := r.FormValue("boundary_control_id"); v != "" {
		bcID := types.BoundaryControlID(v)
		input.BoundaryControlID = &bcID
	}

	created, err := s.uc.Evidence.Upload(r.Context(), input, confirmed(r))
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusCreated, created)
}

func (s *Server) getEvidence(w http.ResponseWriter, r *http.Request) {
	ev, err := s.uc.Evidence.Get(r.Context(), evidenceID(r))
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, ev)
}

func (s *Server) listEvidence(w http.ResponseWriter, r *http.Request) {
	list, err := s.uc.Evidence.ListByProject(r.Context(), projectID(r))
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, list)
}

func (s *Server) listEvidenceByBoundaryControl(w http.ResponseWriter, r *http.Request) {
	list, err := s.uc.Evidence.ListByBoundaryControl(r.Context(), boundaryControlID(r))
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, list)
}

type downloadURLResponse struct {
	URL string `json:"url"`
}

func (s *Server) evidenceDownloadURL(w http.ResponseWriter, r *http.Request) {
	url, err := s.uc.Evidence.DownloadURL(r.Context(), evidenceID(r))
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, downloadURLResponse{URL: url})
}

func (s *Server) updateEvidence(w http.ResponseWriter, r *http.Request) {
	var ev model.Evidence
	if err := decodeJSON(r, &ev); err != nil {
		handleError(r.Context(), w, err)
		return
	}
	ev.ID = evidenceID(r)

	updated, err := s.uc.Evidence.Update(r.Context(), &ev, confirmed(r))
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, updated)
}

func (s *Server) deleteEvidence(w http.ResponseWriter, r *http.Request) {
	if err := s.uc.Evidence.Delete(r.Context(), evidenceID(r), confirmed(r)); err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, successResponse{Success: true})
}
