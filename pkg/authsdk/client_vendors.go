package authsdk

import (
	"context"
	"net/http"
)

func (c *Client) ListVendors(ctx context.Context, accessToken string) ([]Vendor, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/v1/vendors", nil, accessToken)
	if err != nil {
		return nil, err
	}

	var out VendorList
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out.Vendors, nil
}

func (c *Client) CreateVendor(ctx context.Context, accessToken, name string) (*Vendor, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/vendors", VendorRequest{Vendor: name}, accessToken)
	if err != nil {
		return nil, err
	}

	var out Vendor
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetVendor(ctx context.Context, accessToken, id string) (*Vendor, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/v1/vendors/"+escape(id), nil, accessToken)
	if err != nil {
		return nil, err
	}

	var out Vendor
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateVendor(ctx context.Context, accessToken, id, name string) (*Vendor, error) {
	resp, err := c.doRequest(ctx, http.MethodPut, "/v1/vendors/"+escape(id), VendorRequest{Vendor: name}, accessToken)
	if err != nil {
		return nil, err
	}

	var out Vendor
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteVendor(ctx context.Context, accessToken, id string) error {
	resp, err := c.doRequest(ctx, http.MethodDelete, "/v1/vendors/"+escape(id), nil, accessToken)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}
