package opshubsdk

import (
	"context"
	"net/http"
	"net/url"
)

// ListRoles returns all roles ordered by code, with user counts.
func (c *Client) ListRoles(ctx context.Context) ([]Role, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/v1/roles", nil, nil)
	if err != nil {
		return nil, err
	}

	var roles []Role
	if err := decodeJSON(resp, &roles, http.StatusOK); err != nil {
		return nil, err
	}

	return roles, nil
}

func (c *Client) CreateRole(ctx context.Context, req CreateRoleRequest) (*Role, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/v1/roles", req)
	if err != nil {
		return nil, err
	}

	var role Role
	if err := decodeJSON(resp, &role, http.StatusCreated); err != nil {
		return nil, err
	}

	return &role, nil
}

func (c *Client) UpdateRole(ctx context.Context, roleID string, req UpdateRoleRequest) (*Role, error) {
	resp, err := c.doJSON(ctx, http.MethodPatch, "/v1/roles/"+url.PathEscape(roleID), req)
	if err != nil {
		return nil, err
	}

	var role Role
	if err := decodeJSON(resp, &role, http.StatusOK); err != nil {
		return nil, err
	}

	return &role, nil
}

// DeleteRole removes a role that no user holds.
func (c *Client) DeleteRole(ctx context.Context, roleID string) error {
	resp, err := c.doRequest(ctx, http.MethodDelete, "/v1/roles/"+url.PathEscape(roleID), nil, nil)
	if err != nil {
		return err
	}

	return checkStatusNoContent(resp)
}
