package service

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/aussiebroadwan/inventory/pkg/cryptox"
	"github.com/aussiebroadwan/inventory/pkg/idx"
)

const (
	MinUsernameLength   = 3
	MaxUsernameLength   = 20
	MinPasswordLength   = 8
	MaxPasswordLength   = 72
	MaxVendorNameLength = 50
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

func validateUsername(username string) error {
	if username == "" {
		return invalid("username", "Username is required")
	}
	if !usernamePattern.MatchString(username) {
		return invalid("username", "Letters, numbers, dashes, and underscores only")
	}
	if len(username) < MinUsernameLength || len(username) > MaxUsernameLength {
		return invalid("username", "Username must be between 3 and 20 characters")
	}
	return nil
}

func validatePassword(password string) error {
	if password == "" {
		return invalid("password", "Password is required")
	}
	n := utf8.RuneCountInString(password)
	if n < MinPasswordLength || n > MaxPasswordLength {
		return invalid("password", "Password must be between 8 and 72 characters")
	}
	return nil
}

func validateRefreshToken(token string) error {
	if token == "" {
		return invalid("refreshToken", "Refresh token is required")
	}
	if cryptox.ValidateToken(token, cryptox.TokenSize256) != nil {
		return invalid("refreshToken", "Refresh token is malformed")
	}
	return nil
}

func normaliseVendorName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", invalid("vendor", "Vendor name is required")
	}
	if utf8.RuneCountInString(name) > MaxVendorNameLength {
		return "", invalid("vendor", "Vendor name must be at most 50 characters")
	}
	return name, nil
}

func parseID(field, raw string) (idx.ID, error) {
	id, err := idx.Parse(raw)
	if err != nil {
		return idx.Zero, invalid(field, "IDs provided is not valid.")
	}
	return id, nil
}
