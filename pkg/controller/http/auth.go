package http

import (
	"net/http"

	"github.com/secmon-lab/themis/pkg/domain/model/auth"
	"github.com/secmon-lab/themis/pkg/domain/types"
)

type loginRequest struct {
	UserID types.UserID `json:"user_id"`
}

type meResponse struct {
	UserID    types.UserID `json:"user_id"`
	Anonymous bool         `json:"anonymous"`
}

// authLogin issues a session token for the user and sets the token cookies.
// Identity verification happens upstream at the identity-aware proxy; this
// endpoint only mints the session credentials.
func (s *Server) authLogin(w http.ResponseWriter, r *http.Request) {
	if s.uc.Auth.IsNoAuthn() {
		writeJSON(r.Context(), w, http.StatusOK, successResponse{Success: true})
		return
	}

	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(r.Context(), w, err)
		return
	}

	token, err := s.uc.Auth.IssueToken(r.Context(), req.UserID)
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "token_id",
		Value:    token.ID.String(),
		Path:     "/",
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
		Expires:  token.ExpiresAt,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     "token_secret",
		Value:    string(token.Secret),
		Path:     "/",
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
		Expires:  token.ExpiresAt,
	})

	writeJSON(r.Context(), w, http.StatusOK, successResponse{Success: true})
}

// authLogout deletes the session token and clears the cookies.
func (s *Server) authLogout(w http.ResponseWriter, r *http.Request) {
	if tokenIDCookie, err := r.Cookie("token_id"); err == nil {
		if err := s.uc.Auth.Logout(r.Context(), auth.TokenID(tokenIDCookie.Value)); err != nil {
			handleError(r.Context(), w, err)
			return
		}
	}

	for _, name := range []string{"token_id", "token_secret"} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			HttpOnly: true,
			Secure:   r.TLS != nil,
			SameSite: http.SameSiteLaxMode,
			MaxAge:   -1,
		})
	}

	writeJSON(r.Context(), w, http.StatusOK, successResponse{Success: true})
}

// authMe returns the identity attached to the request.
func (s *Server) authMe(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	writeJSON(r.Context(), w, http.StatusOK, meResponse{
		UserID:    userID,
		Anonymous: userID == auth.AnonymousUserID,
	})
}
