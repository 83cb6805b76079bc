package opshubsdk

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// IssueInvite creates a single-use invite for email.
func (c *Client) IssueInvite(ctx context.Context, email string) (*IssueInviteResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/v1/users/invite", IssueInviteRequest{Email: email})
	if err != nil {
		return nil, err
	}

	var out IssueInviteResponse
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}

	return &out, nil
}

// VerifyInvite checks that token is redeemable without consuming it.
func (c *Client) VerifyInvite(ctx context.Context, token string) (*VerifyInviteResponse, error) {
	path := "/v1/users/invites/verify?" + url.Values{"token": {token}}.Encode()

	resp, err := c.doRequest(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}

	var out VerifyInviteResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}

	return &out, nil
}

// AcceptInvite redeems token and returns the newly created user.
func (c *Client) AcceptInvite(ctx context.Context, req AcceptInviteRequest) (*User, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/v1/users/accept-invite", req)
	if err != nil {
		return nil, err
	}

	var user User
	if err := decodeJSON(resp, &user, http.StatusCreated); err != nil {
		return nil, err
	}

	return &user, nil
}

// ListInvites lists invites newest first. An empty status lists all of them.
func (c *Client) ListInvites(ctx context.Context, status string, limit int) ([]Invite, error) {
	q := url.Values{}
	if status != "" {
		q.Set("status", status)
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	path := "/v1/invites"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	resp, err := c.doRequest(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}

	var invites []Invite
	if err := decodeJSON(resp, &invites, http.StatusOK); err != nil {
		return nil, err
	}

	return invites, nil
}

// RevokeInvite supersedes a pending invite.
func (c *Client) RevokeInvite(ctx context.Context, inviteID string) error {
	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/invites/"+url.PathEscape(inviteID)+"/revoke", nil, nil)
	if err != nil {
		return err
	}

	return checkStatusNoContent(resp)
}
