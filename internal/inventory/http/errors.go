package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/inventory/internal/inventory/service"
	"github.com/aussiebroadwan/inventory/pkg/authsdk"
	"github.com/aussiebroadwan/inventory/pkg/httpx"
	"github.com/aussiebroadwan/inventory/pkg/idx"
	"github.com/aussiebroadwan/inventory/pkg/slogx"
)

// writeServiceError maps a service error to its wire payload. notFound is
// the 404 to use for this resource. Anything unrecognised is logged and
// surfaced as a server error.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, notFound *authsdk.APIError) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		authsdk.NewValidationError(verr.Field, verr.Message).WriteError(w)
	case errors.Is(err, service.ErrNotFound):
		notFound.WriteError(w)
	case errors.Is(err, service.ErrUsernameTaken):
		authsdk.ErrUsernameTaken.WriteError(w)
	case errors.Is(err, service.ErrAuthentication):
		httpx.WriteAuthError(w, "Access token is invalid.")
	default:
		slogx.FromContext(r.Context()).Error("request failed", slog.Any("err", err))
		authsdk.ErrServerError.WriteError(w)
	}
}

// caller returns the verified subject, or idx.Zero on routes that let
// anonymous requests through.
func caller(ctx context.Context) idx.ID {
	sub, ok := httpx.UserIDFromContext(ctx)
	if !ok {
		return idx.Zero
	}
	return idx.ID(sub)
}
