package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/inventory/internal/inventory/domain"
	"github.com/aussiebroadwan/inventory/pkg/idx"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface implemented by the sqlite and
// postgres drivers. Repositories hang off it so a Tx exposes the same ones.
type Store interface {
	Users() Users
	Sessions() Sessions
	Vendors() Vendors

	ApplyMigrations() error

	// WithTx runs fn in a read/write transaction, committing when fn
	// returns nil and rolling back otherwise.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error
	Ping(ctx context.Context) error
}

// Tx is a Store bound to one transaction. Nested transactions are not
// supported.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// CreateUser inserts u. A taken username yields ErrAlreadyExists.
	CreateUser(ctx context.Context, u domain.User) error

	// GetUserByID returns ErrNotFound when no such user exists.
	GetUserByID(ctx context.Context, id idx.ID) (domain.User, error)

	// GetUserByUsername matches case-insensitively.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// DeleteUser removes the user together with its sessions and vendors.
	DeleteUser(ctx context.Context, id idx.ID) error
}

type Sessions interface {
	CreateSession(ctx context.Context, s domain.Session) error

	// RedeemSession deletes the session keyed by tokenHash and returns the
	// deleted row in one statement. Of any number of concurrent callers
	// with the same hash exactly one gets the row; the rest get
	// ErrNotFound.
	RedeemSession(ctx context.Context, tokenHash string) (domain.Session, error)

	// DeleteSession removes the session if present. Absence is not an error.
	DeleteSession(ctx context.Context, tokenHash string) error

	// DeleteExpiredSessions purges rows that expired before now.
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error)

	// CountSessionsByUser returns the number of live rows for userID.
	CountSessionsByUser(ctx context.Context, userID idx.ID) (int64, error)
}

type Vendors interface {
	CreateVendor(ctx context.Context, v domain.Vendor) error

	// GetVendor fetches by ID regardless of owner; callers enforce
	// ownership.
	GetVendor(ctx context.Context, id idx.ID) (domain.Vendor, error)

	// ListVendorsByUser returns the owner's vendors, oldest first.
	ListVendorsByUser(ctx context.Context, userID idx.ID) ([]domain.Vendor, error)

	// UpdateVendorName renames a vendor and bumps updated_at.
	UpdateVendorName(ctx context.Context, id idx.ID, name string, at time.Time) error

	DeleteVendor(ctx context.Context, id idx.ID) error
}
