package authsdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/aussiebroadwan/inventory/pkg/httpx"
)

// APIError is the failure payload of every inventory endpoint. It is used
// by the server to write responses and by the client to report them.
type APIError struct {
	Code       string `json:"error"`
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
	Field      string `json:"field,omitempty"`
}

func (e *APIError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Field)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// WriteError writes e as a non-cacheable JSON response. 401s carry a
// bearer challenge.
func (e *APIError) WriteError(w http.ResponseWriter) {
	if e.StatusCode == http.StatusUnauthorized {
		httpx.WriteAuthError(w, e.Message)
		return
	}

	httpx.WriteError(w, httpx.ErrorBody{
		Error:      e.Code,
		Message:    e.Message,
		StatusCode: e.StatusCode,
		Field:      e.Field,
	})
}

// Is matches on code and status so callers can compare against the
// predefined errors with errors.Is.
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.StatusCode == t.StatusCode && (t.Message == "" || t.Message == e.Message)
}

var (
	// ErrInvalidCredentials is the single payload for every failed login.
	ErrInvalidCredentials = &APIError{
		Code:       httpx.CodeAuthentication,
		Message:    "Invalid username or password.",
		StatusCode: http.StatusUnauthorized,
	}

	// ErrInvalidRefreshToken covers unknown, used and expired refresh tokens.
	ErrInvalidRefreshToken = &APIError{
		Code:       httpx.CodeAuthentication,
		Message:    "Refresh token is invalid or expired.",
		StatusCode: http.StatusUnauthorized,
	}

	ErrUsernameTaken = &APIError{
		Code:       httpx.CodeConflict,
		Message:    "Username is already taken.",
		StatusCode: http.StatusConflict,
	}

	ErrUserNotFound = &APIError{
		Code:       httpx.CodeNotFound,
		Message:    "User does not exist.",
		StatusCode: http.StatusNotFound,
	}

	ErrVendorNotFound = &APIError{
		Code:       httpx.CodeNotFound,
		Message:    "Vendor does not exist.",
		StatusCode: http.StatusNotFound,
	}

	ErrInvalidBody = &APIError{
		Code:       httpx.CodeValidation,
		Message:    "Request body must be a single JSON object.",
		StatusCode: http.StatusBadRequest,
	}

	ErrServerError = &APIError{
		Code:       httpx.CodeServerError,
		Message:    "Internal server error.",
		StatusCode: http.StatusInternalServerError,
	}

	// ErrNoSession is returned by Session when no tokens are held.
	ErrNoSession = errors.New("authsdk: not logged in")
)

// NewValidationError builds a 400 for field.
func NewValidationError(field, message string) *APIError {
	return &APIError{
		Code:       httpx.CodeValidation,
		Message:    message,
		StatusCode: http.StatusBadRequest,
		Field:      field,
	}
}

// IsAuthenticationError reports whether err is a 401 from the server.
func IsAuthenticationError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

// IsNotFound reports whether err is a 404 from the server.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// parseErrorResponse turns a non-2xx response into an *APIError. Bodies
// that are not in the expected shape fall back to the status text.
func parseErrorResponse(resp *http.Response, body []byte) error {
	var apiErr APIError
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Code != "" {
		if apiErr.StatusCode == 0 {
			apiErr.StatusCode = resp.StatusCode
		}
		return &apiErr
	}

	code := httpx.CodeServerError
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		code = httpx.CodeAuthentication
	case http.StatusNotFound:
		code = httpx.CodeNotFound
	case http.StatusTooManyRequests:
		code = httpx.CodeRateLimited
	}

	return &APIError{
		Code:       code,
		Message:    fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
		StatusCode: resp.StatusCode,
	}
}
