package authsdk

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"
)

// DefaultRefreshTimeout bounds a refresh call when WithRefreshTimeout is
// not given.
const DefaultRefreshTimeout = 10 * time.Second

// Session attaches the held access token to requests and recovers from
// access token expiry. However many requests fail with an authentication
// error at once, one refresh call is made; every request then retries once
// with the new token. A failed refresh clears the store.
//
// A Session is safe for concurrent use.
type Session struct {
	client         *Client
	store          SessionStore
	refreshTimeout time.Duration
	logger         *slog.Logger

	// flight is keyed by the refresh token being redeemed.
	flight singleflight.Group
}

type SessionOption func(*Session)

// WithRefreshTimeout bounds each refresh call. A timeout counts as a
// failed refresh.
func WithRefreshTimeout(d time.Duration) SessionOption {
	return func(s *Session) {
		if d > 0 {
			s.refreshTimeout = d
		}
	}
}

func WithLogger(l *slog.Logger) SessionOption {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

func NewSession(client *Client, store SessionStore, opts ...SessionOption) *Session {
	s := &Session{
		client:         client,
		store:          store,
		refreshTimeout: DefaultRefreshTimeout,
		logger:         slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Tokens returns the pair currently held.
func (s *Session) Tokens() (Tokens, error) {
	return s.store.Load()
}

// Do runs req with the held access token. If req fails with an
// authentication error and a refresh token is held, Do refreshes (joining
// any refresh already in flight for that token) and runs req once more. If
// the refresh fails the original error is returned; a second
// authentication failure is returned as is. Other errors pass through. An
// authentication failure with nothing held also matches ErrNoSession.
func (s *Session) Do(ctx context.Context, req func(ctx context.Context, accessToken string) error) error {
	held, err := s.store.Load()
	if err != nil {
		return err
	}

	err = req(ctx, held.AccessToken)
	if err == nil || !IsAuthenticationError(err) {
		return err
	}
	if held.RefreshToken == "" {
		if held.Empty() {
			return fmt.Errorf("%w: %w", ErrNoSession, err)
		}
		return err
	}

	fresh, rerr := s.refresh(ctx, held.RefreshToken)
	if rerr != nil {
		if errors.Is(rerr, context.Canceled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}

	return req(ctx, fresh.AccessToken)
}

// refresh redeems stale. Concurrent callers holding the same token share
// one call.
func (s *Session) refresh(ctx context.Context, stale string) (Tokens, error) {
	ch := s.flight.DoChan(stale, func() (any, error) {
		return s.redeem(ctx, stale)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return Tokens{}, res.Err
		}
		return res.Val.(Tokens), nil
	case <-ctx.Done():
		return Tokens{}, ctx.Err()
	}
}

// redeem runs inside the flight. A caller that failed with an old token
// after a rotation already landed picks up the stored pair instead of
// replaying the dead token.
func (s *Session) redeem(ctx context.Context, stale string) (Tokens, error) {
	current, err := s.store.Load()
	if err != nil {
		return Tokens{}, err
	}
	if current.RefreshToken == "" {
		return Tokens{}, ErrNoSession
	}
	if current.RefreshToken != stale {
		return current, nil
	}

	// Detached so a waiter giving up does not fail the refresh for others.
	rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.refreshTimeout)
	defer cancel()

	granted, err := s.client.RefreshWithBearer(rctx, stale, current.AccessToken)
	if err != nil {
		s.logger.Info("session refresh failed, logging out", "err", err)
		if cerr := s.store.Clear(); cerr != nil {
			s.logger.Warn("failed to clear session", "err", cerr)
		}
		return Tokens{}, err
	}

	// The server has already consumed stale, so a store that cannot take
	// the new pair must not keep the old one either.
	if err := s.store.Save(*granted); err != nil {
		s.logger.Warn("failed to save refreshed session, logging out", "err", err)
		if cerr := s.store.Clear(); cerr != nil {
			s.logger.Warn("failed to clear session", "err", cerr)
		}
		return Tokens{}, err
	}
	return *granted, nil
}

// Login authenticates and stores the granted pair.
func (s *Session) Login(ctx context.Context, username, password string) error {
	t, err := s.client.Login(ctx, username, password)
	if err != nil {
		return err
	}
	return s.store.Save(*t)
}

// Signup creates an account and stores its first pair.
func (s *Session) Signup(ctx context.Context, username, password string) error {
	t, err := s.client.Signup(ctx, username, password)
	if err != nil {
		return err
	}
	return s.store.Save(*t)
}

// Logout deletes the server-side session and clears the store. The store
// is cleared even if the server call fails.
func (s *Session) Logout(ctx context.Context) error {
	held, err := s.store.Load()
	if err != nil {
		return err
	}

	var callErr error
	if held.RefreshToken != "" {
		callErr = s.client.Logout(ctx, held.RefreshToken)
	}

	if err := s.store.Clear(); err != nil {
		return err
	}
	return callErr
}
