package http

import (
	"net/http"

	"github.com/aussiebroadwan/inventory/internal/inventory/service"
	"github.com/aussiebroadwan/inventory/pkg/authsdk"
	"github.com/aussiebroadwan/inventory/pkg/httpx"
)

type UsersHandler struct {
	Sessions *service.SessionService
	Users    *service.UserService
}

// HandleSignup creates an account.
//
//	@Summary		Sign up
//	@Description	Creates an account and returns its first session pair. Usernames are 3-20 letters,
//	@Description	digits, dashes or underscores and are unique ignoring case.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			body	body		authsdk.Credentials	true	"Credentials"
//	@Success		201		{object}	authsdk.Tokens
//	@Failure		400		{object}	authsdk.APIError	"Invalid username or password"
//	@Failure		409		{object}	authsdk.APIError	"Username taken"
//	@Router			/v1/users [post].
func (h *UsersHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	var body authsdk.Credentials
	if err := httpx.DecodeJSON(r, &body); err != nil {
		authsdk.ErrInvalidBody.WriteError(w)
		return
	}

	pair, err := h.Sessions.Signup(r.Context(), body.Username, body.Password)
	if err != nil {
		writeServiceError(w, r, err, authsdk.ErrUserNotFound)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, tokens(pair))
}

// HandleMe returns the caller.
//
//	@Summary		Current user
//	@Tags			Users
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	authsdk.MeResponse
//	@Failure		401	{object}	authsdk.APIError	"Missing, invalid or expired access token"
//	@Failure		404	{object}	authsdk.APIError	"Account no longer exists"
//	@Router			/v1/users/me [get].
func (h *UsersHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	u, err := h.Users.Me(r.Context(), caller(r.Context()))
	if err != nil {
		writeServiceError(w, r, err, authsdk.ErrUserNotFound)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.MeResponse{Username: u.Username})
}

// HandleGet returns a public profile.
//
//	@Summary		User profile
//	@Description	Public. When a valid bearer is sent, self reports whether it is this user.
//	@Tags			Users
//	@Security		BearerAuth
//	@Produce		json
//	@Param			username	path		string	true	"Username"
//	@Success		200			{object}	authsdk.UserProfile
//	@Failure		404			{object}	authsdk.APIError	"No such user"
//	@Router			/v1/users/{username} [get].
func (h *UsersHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	p, err := h.Users.Profile(r.Context(), caller(r.Context()), r.PathValue("username"))
	if err != nil {
		writeServiceError(w, r, err, authsdk.ErrUserNotFound)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.UserProfile{
		Username:  p.Username,
		CreatedAt: p.CreatedAt,
		Self:      p.Self,
	})
}

// HandleDelete deletes the caller's own account.
//
//	@Summary		Delete account
//	@Description	Deletes the account with its sessions and vendors. Other users' accounts report 404.
//	@Tags			Users
//	@Security		BearerAuth
//	@Param			username	path	string	true	"Username"
//	@Success		204
//	@Failure		401	{object}	authsdk.APIError	"Missing, invalid or expired access token"
//	@Failure		404	{object}	authsdk.APIError	"No such user, or not the caller"
//	@Router			/v1/users/{username} [delete].
func (h *UsersHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.Users.DeleteAccount(r.Context(), caller(r.Context()), r.PathValue("username")); err != nil {
		writeServiceError(w, r, err, authsdk.ErrUserNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
