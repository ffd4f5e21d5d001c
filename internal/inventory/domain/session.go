package domain

import (
	"time"

	"github.com/aussiebroadwan/inventory/pkg/idx"
)

// SessionPair is what login, signup and refresh hand back to the client.
type SessionPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Session is the stored side of a refresh token. The raw token is never
// persisted; rows are keyed by its fingerprint.
type Session struct {
	TokenHash string
	UserID    idx.ID
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the session is past its expiry at now.
func (s Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
