package httpx

import (
	"context"

	"github.com/aussiebroadwan/inventory/pkg/jwtx"
)

type ctxKey string

const (
	CtxKeyUserID    ctxKey = "user_id"
	CtxKeyClaims    ctxKey = "claims"
	CtxKeyAuthState ctxKey = "auth_state"
)

// UserIDFromContext returns the verified subject, if the request carried a
// valid access token.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(CtxKeyUserID).(string)
	return id, ok && id != ""
}

// ClaimsFromContext returns the verified claims of the request.
func ClaimsFromContext(ctx context.Context) (jwtx.Claims, bool) {
	c, ok := ctx.Value(CtxKeyClaims).(jwtx.Claims)
	return c, ok
}

// StateFromContext returns how the authenticate middleware classified the
// request. Requests that never passed through it report StateNoHeader.
func StateFromContext(ctx context.Context) AuthState {
	if s, ok := ctx.Value(CtxKeyAuthState).(AuthState); ok {
		return s
	}
	return StateNoHeader
}

func contextWithAuth(ctx context.Context, c jwtx.Claims) context.Context {
	ctx = context.WithValue(ctx, CtxKeyUserID, c.Subject)
	ctx = context.WithValue(ctx, CtxKeyClaims, c)
	return ctx
}

func withState(ctx context.Context, s AuthState) context.Context {
	return context.WithValue(ctx, CtxKeyAuthState, s)
}
