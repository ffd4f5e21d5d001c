package domain

import (
	"time"

	"github.com/aussiebroadwan/inventory/pkg/idx"
)

type User struct {
	ID           idx.ID
	Username     string
	PasswordHash string // argon2id PHC string
	CreatedAt    time.Time
}
