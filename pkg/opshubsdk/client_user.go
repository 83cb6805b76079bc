package opshubsdk

import (
	"context"
	"net/http"
	"net/url"
)

// ListUsers returns every user, most recently updated first.
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/v1/users", nil, nil)
	if err != nil {
		return nil, err
	}

	var users []User
	if err := decodeJSON(resp, &users, http.StatusOK); err != nil {
		return nil, err
	}

	return users, nil
}

func (c *Client) UpdateUserStatus(ctx context.Context, userID, status string) (*User, error) {
	resp, err := c.doJSON(ctx, http.MethodPatch, "/v1/users/"+url.PathEscape(userID)+"/status",
		UpdateUserStatusRequest{Status: status})
	if err != nil {
		return nil, err
	}

	var user User
	if err := decodeJSON(resp, &user, http.StatusOK); err != nil {
		return nil, err
	}

	return &user, nil
}

// SetUserRoles replaces the user's roles with roleIDs.
func (c *Client) SetUserRoles(ctx context.Context, userID string, roleIDs []string) (*User, error) {
	if roleIDs == nil {
		roleIDs = []string{}
	}

	resp, err := c.doJSON(ctx, http.MethodPut, "/v1/users/"+url.PathEscape(userID)+"/roles",
		SetUserRolesRequest{RoleIDs: roleIDs})
	if err != nil {
		return nil, err
	}

	var user User
	if err := decodeJSON(resp, &user, http.StatusOK); err != nil {
		return nil, err
	}

	return &user, nil
}
