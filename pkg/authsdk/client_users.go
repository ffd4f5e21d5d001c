package authsdk

import (
	"context"
	"net/http"
)

func (c *Client) Me(ctx context.Context, accessToken string) (*MeResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/v1/users/me", nil, accessToken)
	if err != nil {
		return nil, err
	}

	var out MeResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetUser fetches a public profile. accessToken may be empty.
func (c *Client) GetUser(ctx context.Context, accessToken, username string) (*UserProfile, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/v1/users/"+escape(username), nil, accessToken)
	if err != nil {
		return nil, err
	}

	var out UserProfile
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteUser removes the caller's own account.
func (c *Client) DeleteUser(ctx context.Context, accessToken, username string) error {
	resp, err := c.doRequest(ctx, http.MethodDelete, "/v1/users/"+escape(username), nil, accessToken)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}
