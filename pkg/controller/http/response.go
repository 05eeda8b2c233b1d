package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/themis/pkg/domain/interfaces"
	"github.com/secmon-lab/themis/pkg/domain/model"
	"github.com/secmon-lab/themis/pkg/usecase"
	"github.com/secmon-lab/themis/pkg/utils/errutil"
)

type errorResponse struct {
	Error                string `json:"error"`
	RequiresConfirmation bool   `json:"requires_confirmation,omitempty"`
}

type successResponse struct {
	Success bool `json:"success"`
}

// writeJSON writes a JSON response with proper error handling
func writeJSON(ctx context.Context, w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		errutil.Handle(ctx, err, "failed to encode JSON response")
	}
}

// decodeJSON reads the request body into dst. A malformed body is the
// client's fault and is reported as such.
func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return goerr.New("request body is required")
		}
		return goerr.Wrap(err, "invalid JSON body")
	}
	return nil
}

// confirmed reports whether the request acknowledges the phase-reset prompt.
func confirmed(r *http.Request) bool {
	return r.URL.Query().Get("confirm") == "true"
}

// handleError maps domain errors onto HTTP status codes and writes the JSON
// error body. ErrPhaseCompleted additionally signals that a retry with
// ?confirm=true will go through.
func handleError(ctx context.Context, w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, interfaces.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, interfaces.ErrDuplicateAssociation),
		errors.Is(err, interfaces.ErrDuplicateName):
		status = http.StatusConflict
	case errors.Is(err, usecase.ErrPhaseCompleted):
		writeJSON(ctx, w, http.StatusConflict, errorResponse{
			Error:                err.Error(),
			RequiresConfirmation: true,
		})
		return
	case errors.Is(err, usecase.ErrAccessDenied):
		status = http.StatusForbidden
	case errors.Is(err, usecase.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, model.ErrBreakdownMismatch),
		errors.Is(err, model.ErrInvalidSeverity),
		goerr.HasTag(err, usecase.TagInvalidInput):
		status = http.StatusUnprocessableEntity
	}

	if status >= http.StatusInternalServerError {
		errutil.HandleHTTP(ctx, w, err, status)
		return
	}

	writeJSON(ctx, w, status, errorResponse{Error: err.Error()})
}
