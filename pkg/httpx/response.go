package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// MaxBodyBytes caps JSON request bodies.
const MaxBodyBytes = 1 << 20

// Error codes written in the "error" field of failure payloads.
const (
	CodeValidation     = "validation_error"
	CodeAuthentication = "authentication_error"
	CodeNotFound       = "not_found"
	CodeConflict       = "conflict"
	CodeRateLimited    = "rate_limited"
	CodeServerError    = "server_error"
)

// ErrorBody is the JSON shape of every failure response.
type ErrorBody struct {
	Error      string `json:"error"`
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
	Field      string `json:"field,omitempty"`
}

// WriteJSON writes v as a non-cacheable JSON response.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes an ErrorBody with the given status.
func WriteError(w http.ResponseWriter, body ErrorBody) {
	if body.StatusCode == 0 {
		body.StatusCode = http.StatusInternalServerError
	}
	WriteJSON(w, body.StatusCode, body)
}

// WriteAuthError writes a 401 with a bearer challenge.
func WriteAuthError(w http.ResponseWriter, message string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token"`)
	WriteError(w, ErrorBody{
		Error:      CodeAuthentication,
		Message:    message,
		StatusCode: http.StatusUnauthorized,
	})
}

// NoCache prevents intermediaries from storing the response.
func NoCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
}

// ErrBadBody is returned by DecodeJSON for unreadable or invalid bodies.
var ErrBadBody = errors.New("request body must be a single JSON object")

// DecodeJSON reads one JSON object from the request body into v. Fields v
// does not declare are rejected.
func DecodeJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return ErrBadBody
	}

	dec := json.NewDecoder(io.LimitReader(r.Body, MaxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %v", ErrBadBody, err)
	}
	if dec.More() {
		return ErrBadBody
	}
	return nil
}
