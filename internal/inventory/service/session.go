package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/inventory/internal/inventory/domain"
	"github.com/aussiebroadwan/inventory/internal/inventory/store"
	"github.com/aussiebroadwan/inventory/pkg/cryptox"
	"github.com/aussiebroadwan/inventory/pkg/idx"
	"github.com/aussiebroadwan/inventory/pkg/jwtx"
	"github.com/aussiebroadwan/inventory/pkg/slogx"
)

// AccessIssuer mints access tokens for a subject. *jwtx.Codec satisfies it.
type AccessIssuer interface {
	Issue(subject string) (string, error)
}

// SessionService issues, rotates and destroys sessions.
type SessionService struct {
	Store      store.Store
	Tokens     AccessIssuer
	RefreshTTL time.Duration
	Metrics    *SessionMetrics

	// Now defaults to time.Now.
	Now func() time.Time
}

func (s *SessionService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *SessionService) refreshTTL() time.Duration {
	if s.RefreshTTL <= 0 {
		return jwtx.DefaultRefreshTokenTTL
	}
	return s.RefreshTTL
}

// Login exchanges a username and password for a session pair. An unknown
// username and a wrong password both yield ErrAuthentication after the
// same amount of hashing work.
func (s *SessionService) Login(ctx context.Context, username, password string) (*domain.SessionPair, error) {
	l := slogx.FromContext(ctx)

	if username == "" {
		return nil, invalid("username", "Username is required")
	}
	if password == "" {
		return nil, invalid("password", "Password is required")
	}

	user, err := s.Store.Users().GetUserByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("lookup user: %w", err)
		}
		_ = cryptox.VerifyDummy(password)
		s.Metrics.loginFailed()
		l.Info("login rejected", slog.String("reason", "unknown_user"))
		return nil, ErrAuthentication
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		if !errors.Is(err, cryptox.ErrPasswordMismatch) {
			l.Error("stored password hash unusable", slog.String("user_id", user.ID.String()), slog.Any("error", err))
		}
		s.Metrics.loginFailed()
		l.Info("login rejected", slog.String("reason", "bad_password"))
		return nil, ErrAuthentication
	}

	pair, err := s.issue(ctx, s.Store.Sessions(), user.ID)
	if err != nil {
		return nil, err
	}

	s.Metrics.issuedFor(ReasonLogin)
	l.Info("session issued", slog.String("user_id", user.ID.String()), slog.String("reason", ReasonLogin))
	return pair, nil
}

// Signup creates an account and logs it in.
func (s *SessionService) Signup(ctx context.Context, username, password string) (*domain.SessionPair, error) {
	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := domain.User{
		ID:           idx.New(),
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    s.now(),
	}

	var pair *domain.SessionPair
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().CreateUser(ctx, user); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return ErrUsernameTaken
			}
			return fmt.Errorf("create user: %w", err)
		}

		var err error
		pair, err = s.issue(ctx, tx.Sessions(), user.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.Metrics.issuedFor(ReasonSignup)
	slogx.FromContext(ctx).Info("user created", slog.String("user_id", user.ID.String()))
	return pair, nil
}

// Refresh redeems refreshToken and returns a new pair. The redeemed row is
// deleted before anything else is checked, so the presented token is dead
// whether or not a new pair comes back. Unknown, already used and expired
// tokens all yield ErrAuthentication.
func (s *SessionService) Refresh(ctx context.Context, refreshToken string) (*domain.SessionPair, error) {
	return s.RefreshFor(ctx, refreshToken, idx.Zero)
}

// RefreshFor is Refresh bound to holder, the subject of an access token
// sent with the request (expired tokens count). A session owned by anyone
// else is rejected after it has been consumed. A zero holder skips the check.
func (s *SessionService) RefreshFor(ctx context.Context, refreshToken string, holder idx.ID) (*domain.SessionPair, error) {
	l := slogx.FromContext(ctx)

	if err := validateRefreshToken(refreshToken); err != nil {
		return nil, err
	}

	session, err := s.Store.Sessions().RedeemSession(ctx, cryptox.FingerprintToken(refreshToken))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.Metrics.refreshFailed()
			l.Info("refresh rejected", slog.String("reason", "unknown_token"))
			return nil, ErrAuthentication
		}
		return nil, fmt.Errorf("redeem session: %w", err)
	}

	if session.Expired(s.now()) {
		s.Metrics.refreshFailed()
		l.Info("refresh rejected", slog.String("reason", "expired"), slog.String("user_id", session.UserID.String()))
		return nil, ErrAuthentication
	}

	if !holder.IsZero() && holder != session.UserID {
		s.Metrics.refreshFailed()
		l.Warn("refresh rejected",
			slog.String("reason", "holder_mismatch"),
			slog.String("user_id", session.UserID.String()),
			slog.String("holder", holder.String()),
		)
		return nil, ErrAuthentication
	}

	pair, err := s.issue(ctx, s.Store.Sessions(), session.UserID)
	if err != nil {
		return nil, err
	}

	s.Metrics.issuedFor(ReasonRefresh)
	l.Debug("session rotated", slog.String("user_id", session.UserID.String()))
	return pair, nil
}

// Logout deletes the session behind refreshToken if there is one. Unknown
// and malformed tokens are not errors.
func (s *SessionService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return invalid("refreshToken", "Refresh token is required")
	}

	s.Metrics.loggedOut()
	if cryptox.ValidateToken(refreshToken, cryptox.TokenSize256) != nil {
		return nil
	}

	if err := s.Store.Sessions().DeleteSession(ctx, cryptox.FingerprintToken(refreshToken)); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// issue writes a fresh session row through sessions and signs an access
// token for userID.
func (s *SessionService) issue(ctx context.Context, sessions store.Sessions, userID idx.ID) (*domain.SessionPair, error) {
	now := s.now()

	raw, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return nil, err
	}

	err = sessions.CreateSession(ctx, domain.Session{
		TokenHash: cryptox.FingerprintToken(raw),
		UserID:    userID,
		ExpiresAt: now.Add(s.refreshTTL()),
		CreatedAt: now,
	})
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	access, err := s.Tokens.Issue(userID.String())
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}

	return &domain.SessionPair{AccessToken: access, RefreshToken: raw}, nil
}
