package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/inventory/internal/inventory/domain"
	"github.com/aussiebroadwan/inventory/internal/inventory/service"
	"github.com/aussiebroadwan/inventory/pkg/authsdk"
	"github.com/aussiebroadwan/inventory/pkg/httpx"
	"github.com/aussiebroadwan/inventory/pkg/slogx"
)

type SessionsHandler struct {
	Sessions *service.SessionService
}

// HandleLogin exchanges credentials for a session pair.
//
//	@Summary		Log in
//	@Description	Exchanges a username and password for an access token and a single-use refresh token.
//	@Description	Unknown usernames and wrong passwords produce the same response.
//	@Tags			Sessions
//	@Accept			json
//	@Produce		json
//	@Param			body	body		authsdk.Credentials	true	"Credentials"
//	@Success		200		{object}	authsdk.Tokens
//	@Failure		400		{object}	authsdk.APIError	"Malformed body or missing field"
//	@Failure		401		{object}	authsdk.APIError	"Invalid username or password"
//	@Failure		429		{object}	authsdk.APIError	"Rate limited"
//	@Router			/v1/sessions [post].
func (h *SessionsHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var body authsdk.Credentials
	if err := httpx.DecodeJSON(r, &body); err != nil {
		authsdk.ErrInvalidBody.WriteError(w)
		return
	}

	pair, err := h.Sessions.Login(r.Context(), body.Username, body.Password)
	if err != nil {
		if errors.Is(err, service.ErrAuthentication) {
			authsdk.ErrInvalidCredentials.WriteError(w)
			return
		}
		writeServiceError(w, r, err, authsdk.ErrUserNotFound)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, tokens(pair))
}

// HandleRefresh rotates a refresh token.
//
//	@Summary		Refresh a session
//	@Description	Redeems a refresh token for a new pair. The presented token can never be used again,
//	@Description	whether or not the call succeeds. An optional bearer (expired is fine) binds the
//	@Description	refresh to that user; a refresh token belonging to someone else is then rejected.
//	@Tags			Sessions
//	@Accept			json
//	@Produce		json
//	@Param			body	body		authsdk.RefreshRequest	true	"Refresh token"
//	@Success		200		{object}	authsdk.Tokens
//	@Failure		400		{object}	authsdk.APIError	"Malformed body or token"
//	@Failure		401		{object}	authsdk.APIError	"Unknown, used or expired refresh token"
//	@Router			/v1/sessions/refresh [post].
func (h *SessionsHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	var body authsdk.RefreshRequest
	if err := httpx.DecodeJSON(r, &body); err != nil {
		authsdk.ErrInvalidBody.WriteError(w)
		return
	}

	pair, err := h.Sessions.RefreshFor(r.Context(), body.RefreshToken, caller(r.Context()))
	if err != nil {
		if errors.Is(err, service.ErrAuthentication) {
			authsdk.ErrInvalidRefreshToken.WriteError(w)
			return
		}
		writeServiceError(w, r, err, authsdk.ErrUserNotFound)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, tokens(pair))
}

// HandleLogout deletes a session.
//
//	@Summary		Log out
//	@Description	Deletes the session behind a refresh token. Succeeds whether or not the session exists.
//	@Tags			Sessions
//	@Accept			json
//	@Param			body	body	authsdk.RefreshRequest	true	"Refresh token"
//	@Success		204
//	@Failure		400	{object}	authsdk.APIError	"Malformed body"
//	@Router			/v1/sessions [delete].
func (h *SessionsHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	var body authsdk.RefreshRequest
	if err := httpx.DecodeJSON(r, &body); err != nil {
		authsdk.ErrInvalidBody.WriteError(w)
		return
	}

	err := h.Sessions.Logout(r.Context(), body.RefreshToken)
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		writeServiceError(w, r, err, authsdk.ErrUserNotFound)
		return
	case err != nil:
		// Store faults stay server side; the token expires on its own.
		slogx.FromContext(r.Context()).Error("logout failed", slog.Any("err", err))
	}

	w.WriteHeader(http.StatusNoContent)
}

func tokens(p *domain.SessionPair) authsdk.Tokens {
	return authsdk.Tokens{AccessToken: p.AccessToken, RefreshToken: p.RefreshToken}
}
