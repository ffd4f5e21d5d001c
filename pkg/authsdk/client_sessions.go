package authsdk

import (
	"context"
	"net/http"
)

// Login exchanges credentials for a session pair.
func (c *Client) Login(ctx context.Context, username, password string) (*Tokens, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/sessions", Credentials{Username: username, Password: password}, "")
	if err != nil {
		return nil, err
	}

	var out Tokens
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// Signup creates an account and returns its first session pair.
func (c *Client) Signup(ctx context.Context, username, password string) (*Tokens, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/users", Credentials{Username: username, Password: password}, "")
	if err != nil {
		return nil, err
	}

	var out Tokens
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// Refresh redeems refreshToken for a new pair. The presented token is
// dead afterwards whatever the outcome.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*Tokens, error) {
	return c.RefreshWithBearer(ctx, refreshToken, "")
}

// RefreshWithBearer is Refresh sending the access token the pair was issued
// with. The server then refuses a refresh token that belongs to another user.
func (c *Client) RefreshWithBearer(ctx context.Context, refreshToken, accessToken string) (*Tokens, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/sessions/refresh", RefreshRequest{RefreshToken: refreshToken}, accessToken)
	if err != nil {
		return nil, err
	}

	var out Tokens
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout deletes the session behind refreshToken.
func (c *Client) Logout(ctx context.Context, refreshToken string) error {
	resp, err := c.doRequest(ctx, http.MethodDelete, "/v1/sessions", RefreshRequest{RefreshToken: refreshToken}, "")
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}
