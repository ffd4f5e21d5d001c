package httpx

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/inventory/pkg/jwtx"
	"github.com/aussiebroadwan/inventory/pkg/slogx"
)

// AuthState is the outcome of inspecting a request's bearer credential.
type AuthState int

const (
	StateNoHeader AuthState = iota
	StateParseFailed
	StateVerifyFailed
	StateExpired
	StateAuthorized
)

func (s AuthState) String() string {
	switch s {
	case StateNoHeader:
		return "no_header"
	case StateParseFailed:
		return "parse_failed"
	case StateVerifyFailed:
		return "verify_failed"
	case StateExpired:
		return "expired"
	case StateAuthorized:
		return "authorized"
	default:
		return "unknown"
	}
}

// Policy is the per-route authentication requirement.
type Policy struct {
	// RequireToken rejects every request that does not reach
	// StateAuthorized. When false the request continues without identity.
	RequireToken bool

	// ValidateExpiry treats expired tokens as failures. When false an
	// expired but correctly signed token is authorized.
	ValidateExpiry bool
}

var (
	// DefaultPolicy requires an unexpired token.
	DefaultPolicy = Policy{RequireToken: true, ValidateExpiry: true}

	// OptionalToken attaches identity when a valid token is present and
	// lets anonymous requests through.
	OptionalToken = Policy{RequireToken: false, ValidateExpiry: true}

	// AllowExpired is OptionalToken that also accepts expired tokens. Only
	// the refresh endpoint uses it, to learn who the caller was.
	AllowExpired = Policy{RequireToken: false, ValidateExpiry: false}
)

// Authenticate classifies the Authorization header of every request and,
// once a token verifies, attaches its subject and claims to the context.
func Authenticate(v jwtx.Verifier, p Policy) Middleware {
	var opts []jwtx.VerifyOption
	if !p.ValidateExpiry {
		opts = append(opts, jwtx.SkipExpiry())
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			state, claims, err := classify(v, r.Header.Get("Authorization"), opts)
			ctx = withState(ctx, state)

			if state == StateAuthorized {
				ctx = contextWithAuth(ctx, claims)
				ctx = slogx.Annotate(ctx, slog.String("user_id", claims.Subject))
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			if !p.RequireToken {
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			if err != nil {
				log.Debug("bearer rejected", "state", state.String(), "err", err)
			}
			WriteAuthError(w, authMessage(state))
		})
	}
}

// classify walks NO_HEADER -> PARSE_FAILED -> VERIFY_FAILED -> EXPIRED ->
// AUTHORIZED, stopping at the first state the credential fails to leave.
func classify(v jwtx.Verifier, header string, opts []jwtx.VerifyOption) (AuthState, jwtx.Claims, error) {
	scheme, raw, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return StateNoHeader, jwtx.Claims{}, nil
	}

	raw = strings.TrimSpace(raw)
	if strings.Count(raw, ".") != 2 || strings.ContainsAny(raw, " \t") {
		return StateParseFailed, jwtx.Claims{}, jwtx.ErrMalformed
	}

	claims, err := v.Verify(raw, opts...)
	switch {
	case err == nil:
		return StateAuthorized, claims, nil
	case errors.Is(err, jwtx.ErrExpired):
		return StateExpired, jwtx.Claims{}, err
	case errors.Is(err, jwtx.ErrInvalidSig), errors.Is(err, jwtx.ErrInvalidClaim), errors.Is(err, jwtx.ErrIssuer):
		return StateVerifyFailed, jwtx.Claims{}, err
	default:
		return StateParseFailed, jwtx.Claims{}, err
	}
}

func authMessage(s AuthState) string {
	switch s {
	case StateNoHeader:
		return "Authorization header is missing."
	case StateExpired:
		return "Access token has expired."
	default:
		return "Access token is invalid."
	}
}
