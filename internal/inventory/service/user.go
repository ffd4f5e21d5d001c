package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/inventory/internal/inventory/domain"
	"github.com/aussiebroadwan/inventory/internal/inventory/store"
	"github.com/aussiebroadwan/inventory/pkg/idx"
	"github.com/aussiebroadwan/inventory/pkg/slogx"
)

type UserService struct {
	Store store.Store
}

// Profile is the public view of an account.
type Profile struct {
	Username  string
	CreatedAt time.Time

	// Self is set when the caller is the account holder.
	Self bool
}

// Me returns the account behind caller.
func (s *UserService) Me(ctx context.Context, caller idx.ID) (domain.User, error) {
	if caller.IsZero() {
		return domain.User{}, ErrAuthentication
	}

	u, err := s.Store.Users().GetUserByID(ctx, caller)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrNotFound
		}
		return domain.User{}, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// Profile looks up username for anyone. caller may be zero.
func (s *UserService) Profile(ctx context.Context, caller idx.ID, username string) (Profile, error) {
	u, err := s.Store.Users().GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Profile{}, ErrNotFound
		}
		return Profile{}, fmt.Errorf("get user: %w", err)
	}

	return Profile{
		Username:  u.Username,
		CreatedAt: u.CreatedAt,
		Self:      !caller.IsZero() && u.ID == caller,
	}, nil
}

// DeleteAccount removes username together with its sessions and vendors.
// Only the account holder may do this; anyone else gets ErrNotFound.
func (s *UserService) DeleteAccount(ctx context.Context, caller idx.ID, username string) error {
	if caller.IsZero() {
		return ErrAuthentication
	}

	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		u, err := tx.Users().GetUserByUsername(ctx, username)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("get user: %w", err)
		}
		if u.ID != caller {
			return ErrNotFound
		}

		if err := tx.Users().DeleteUser(ctx, u.ID); err != nil {
			return fmt.Errorf("delete user: %w", err)
		}

		slogx.FromContext(ctx).Info("user deleted", slog.String("user_id", u.ID.String()))
		return nil
	})
}
