package opshubsdk

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	return NewClient(srv.URL + "/")
}

func TestNewClientTrimsSlash(t *testing.T) {
	t.Parallel()

	c := NewClient("http://opshub.local/")
	require.Equal(t, "http://opshub.local", c.BaseURL)
	require.NotNil(t, c.HTTPClient)
}

func TestIssueInvite(t *testing.T) {
	t.Parallel()

	expires := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/users/invite", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.Equal(t, "admin-1", r.Header.Get(ActorHeader))

		var req IssueInviteRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "a@example.com", req.Email)

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(IssueInviteResponse{
			InviteURL: "http://localhost:3000/accept-invite?token=abc",
			ExpiresAt: expires,
		})
	}).As("admin-1")

	out, err := c.IssueInvite(context.Background(), "a@example.com")
	require.NoError(t, err)
	require.Equal(t, "http://localhost:3000/accept-invite?token=abc", out.InviteURL)
	require.True(t, expires.Equal(out.ExpiresAt))
}

func TestVerifyInviteEscapesToken(t *testing.T) {
	t.Parallel()

	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/users/invites/verify", r.URL.Path)
		require.Equal(t, "a+b/c=", r.URL.Query().Get("token"))
		require.Empty(t, r.Header.Get(ActorHeader))

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(VerifyInviteResponse{Email: "a@example.com"})
	})

	out, err := c.VerifyInvite(context.Background(), "a+b/c=")
	require.NoError(t, err)
	require.Equal(t, "a@example.com", out.Email)
}

func TestAPIErrorDecoding(t *testing.T) {
	t.Parallel()

	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(ErrorResponse{
			Error:            ErrorCodeInvalidState,
			ErrorDescription: "invite token already used",
		})
	})

	_, err := c.AcceptInvite(context.Background(), AcceptInviteRequest{Token: "t", Name: "n"})
	require.Error(t, err)
	require.True(t, IsCode(err, ErrorCodeInvalidState))

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	require.Equal(t, "invite token already used", apiErr.Description)
	require.Contains(t, apiErr.Error(), "invalid_state")
}

func TestAPIErrorFallback(t *testing.T) {
	t.Parallel()

	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	})

	_, err := c.ListUsers(context.Background())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	require.Equal(t, ErrorCodeServerError, apiErr.Code)
}

func TestRevokeAndDeleteExpectNoContent(t *testing.T) {
	t.Parallel()

	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/invites/inv-1/revoke":
			require.Equal(t, http.MethodPost, r.Method)
			w.WriteHeader(http.StatusNoContent)
		case "/v1/roles/role-1":
			require.Equal(t, http.MethodDelete, r.Method)
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(ErrorResponse{Error: ErrorCodeNotFound, ErrorDescription: "role not found"})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})

	require.NoError(t, c.RevokeInvite(context.Background(), "inv-1"))
	require.True(t, IsCode(c.DeleteRole(context.Background(), "role-1"), ErrorCodeNotFound))
}

func TestListAuditLogsQuery(t *testing.T) {
	t.Parallel()

	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		require.Equal(t, "USER_INVITED", q.Get("action"))
		require.Equal(t, "invite", q.Get("target_type"))
		require.Equal(t, "example", q.Get("q"))
		require.Equal(t, "7d", q.Get("since"))
		require.Equal(t, "5", q.Get("limit"))

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode([]AuditLog{{ID: "a1", Action: "USER_INVITED"}})
	})

	logs, err := c.ListAuditLogs(context.Background(), AuditLogQuery{
		Action:     "USER_INVITED",
		TargetType: "invite",
		Query:      "example",
		Since:      "7d",
		Limit:      5,
	})
	require.NoError(t, err)
	require.Len(t, logs, 1)
}

func TestSetUserRolesSendsEmptyList(t *testing.T) {
	t.Parallel()

	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, []any{}, body["role_ids"])

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(User{ID: "u1", RoleIDs: []string{}})
	})

	user, err := c.SetUserRoles(context.Background(), "u1", nil)
	require.NoError(t, err)
	require.Equal(t, "u1", user.ID)
}
