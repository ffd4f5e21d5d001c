package domain

import (
	"time"

	"github.com/aussiebroadwan/inventory/pkg/idx"
)

// Vendor is a tenant-scoped resource: only its owner may see or change it.
type Vendor struct {
	ID        idx.ID
	UserID    idx.ID
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
