package authsdk

import "time"

// Credentials is the body of login and signup.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RefreshRequest is the body of refresh and logout.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// Tokens is the session pair granted by login, signup and refresh.
type Tokens struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Empty reports whether no session is held.
func (t Tokens) Empty() bool {
	return t.AccessToken == "" && t.RefreshToken == ""
}

// MeResponse is returned by GET /v1/users/me.
type MeResponse struct {
	Username string `json:"username"`
}

// UserProfile is the public view of an account.
type UserProfile struct {
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`

	// Self is true when the bearer identifies this user.
	Self bool `json:"self"`
}

// VendorRequest is the body of vendor create and update.
type VendorRequest struct {
	Vendor string `json:"vendor"`
}

type Vendor struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type VendorList struct {
	Vendors []Vendor `json:"vendors"`
}

// HealthResponse is returned by /livez and /readyz. Only readyz fills
// Checks.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime,omitempty"`
	Version string        `json:"version,omitempty"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks is the status of each dependency checked by /readyz.
type HealthChecks struct {
	Database string `json:"database"`
	Signer   string `json:"signer"`
}
