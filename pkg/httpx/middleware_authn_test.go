package httpx_test

import (
	"crypto/rand"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aussiebroadwan/inventory/pkg/httpx"
	"github.com/aussiebroadwan/inventory/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

func newCodec(t *testing.T, now time.Time) *jwtx.Codec {
	t.Helper()

	secret := make([]byte, 32)
	_, err := rand.Read(secret)
	require.NoError(t, err)

	signer, err := jwtx.NewHS256Signer(secret)
	require.NoError(t, err)

	codec, err := jwtx.NewCodec(signer, "", time.Minute)
	require.NoError(t, err)
	codec.Now = func() time.Time { return now }
	return codec
}

// downstream records what the wrapped handler saw.
type downstream struct {
	called bool
	userID string
	state  httpx.AuthState
}

func (p *downstream) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p.called = true
	p.userID, _ = httpx.UserIDFromContext(r.Context())
	p.state = httpx.StateFromContext(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func TestAuthenticateStates(t *testing.T) {
	t.Parallel()

	codec := newCodec(t, epoch)
	valid, err := codec.Issue("user-1")
	require.NoError(t, err)

	forged, err := newCodec(t, epoch).Issue("user-1")
	require.NoError(t, err)

	// Same codec, clock moved past expiry.
	later := *codec
	later.Now = func() time.Time { return epoch.Add(time.Hour) }

	tests := []struct {
		name   string
		v      jwtx.Verifier
		header string
		want   httpx.AuthState
	}{
		{"no header", codec, "", httpx.StateNoHeader},
		{"wrong scheme", codec, "Basic dXNlcjpwYXNz", httpx.StateNoHeader},
		{"scheme only", codec, "bearer", httpx.StateNoHeader},
		{"garbled token", codec, "bearer not-a-jwt", httpx.StateParseFailed},
		{"bad segments", codec, "bearer a.b.c", httpx.StateParseFailed},
		{"forged signature", codec, "bearer " + forged, httpx.StateVerifyFailed},
		{"expired", &later, "bearer " + valid, httpx.StateExpired},
		{"lowercase scheme", codec, "bearer " + valid, httpx.StateAuthorized},
		{"capitalised scheme", codec, "Bearer " + valid, httpx.StateAuthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name+"/required", func(t *testing.T) {
			p := &downstream{}
			rec := serve(httpx.Authenticate(tt.v, httpx.DefaultPolicy)(p), tt.header)

			if tt.want == httpx.StateAuthorized {
				require.True(t, p.called)
				require.Equal(t, "user-1", p.userID)
				require.Equal(t, httpx.StateAuthorized, p.state)
				return
			}

			require.False(t, p.called, "terminal state must not reach handler")
			require.Equal(t, http.StatusUnauthorized, rec.Code)
			require.Contains(t, rec.Header().Get("WWW-Authenticate"), "Bearer")

			var body httpx.ErrorBody
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			require.Equal(t, httpx.CodeAuthentication, body.Error)
		})

		t.Run(tt.name+"/optional", func(t *testing.T) {
			p := &downstream{}
			serve(httpx.Authenticate(tt.v, httpx.OptionalToken)(p), tt.header)

			require.True(t, p.called)
			require.Equal(t, tt.want, p.state)
			if tt.want == httpx.StateAuthorized {
				require.Equal(t, "user-1", p.userID)
			} else {
				require.Empty(t, p.userID)
			}
		})
	}
}

func TestAuthenticateSkipExpiry(t *testing.T) {
	t.Parallel()

	codec := newCodec(t, epoch)
	token, err := codec.Issue("user-9")
	require.NoError(t, err)

	later := *codec
	later.Now = func() time.Time { return epoch.Add(24 * time.Hour) }

	p := &downstream{}
	rec := serve(httpx.Authenticate(&later, httpx.Policy{RequireToken: true, ValidateExpiry: false})(p), "bearer "+token)

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, "user-9", p.userID)
}

func TestChainOrder(t *testing.T) {
	t.Parallel()

	var order []string
	mark := func(name string) httpx.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := httpx.Chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		order = append(order, "handler")
	}), mark("a"), mark("b"))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, []string{"a", "b", "handler"}, order)
}

func serve(h http.Handler, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}
