//go:build e2e

package opshub_test

import (
	"net/http"
	"sync"
	"testing"

	"github.com/aussiebroadwan/opshub/pkg/opshubsdk"
	"github.com/stretchr/testify/require"
)

// runInviteLifecycle drives issue, verify and accept and checks that the
// token cannot be reused.
func runInviteLifecycle(t *testing.T, client *opshubsdk.Client) {
	t.Helper()
	ctx := t.Context()
	admin := client.As(adminID(t, client))

	issued, err := admin.IssueInvite(ctx, " Jane.Doe@Example.com ")
	require.NoError(t, err)
	token := tokenFromInviteURL(t, issued.InviteURL)

	verified, err := client.VerifyInvite(ctx, token)
	require.NoError(t, err)
	require.Equal(t, "jane.doe@example.com", verified.Email)

	user, err := client.AcceptInvite(ctx, opshubsdk.AcceptInviteRequest{Token: token, Name: "Jane Doe"})
	require.NoError(t, err)
	require.Equal(t, "jane.doe@example.com", user.Email)
	require.Equal(t, "ACTIVE", user.Status)
	require.Len(t, user.RoleIDs, 1)

	_, err = client.AcceptInvite(ctx, opshubsdk.AcceptInviteRequest{Token: token, Name: "Jane Again"})
	assertAPIError(t, err, http.StatusBadRequest, opshubsdk.ErrorCodeInvalidState)

	_, err = client.VerifyInvite(ctx, token)
	assertAPIError(t, err, http.StatusBadRequest, opshubsdk.ErrorCodeInvalidState)

	_, err = admin.IssueInvite(ctx, "jane.doe@example.com")
	assertAPIError(t, err, http.StatusConflict, opshubsdk.ErrorCodeConflict)

	invites, err := client.ListInvites(ctx, "used", 0)
	require.NoError(t, err)
	require.Len(t, invites, 1)
	require.Equal(t, user.ID, invites[0].UsedBy)

	logs, err := client.ListAuditLogs(ctx, opshubsdk.AuditLogQuery{Query: "jane.doe"})
	require.NoError(t, err)
	require.Len(t, logs, 2)
	require.Equal(t, "USER_INVITE_ACCEPTED", logs[0].Action)
	require.Equal(t, "USER_INVITED", logs[1].Action)
}

// TestInviteLifecycleSQLite runs the lifecycle on the default sqlite store.
func TestInviteLifecycleSQLite(t *testing.T) {
	runInviteLifecycle(t, setupOpsHub(t))
}

// TestInviteLifecyclePostgres runs the same lifecycle on postgres.
func TestInviteLifecyclePostgres(t *testing.T) {
	runInviteLifecycle(t, setupOpsHubWithPostgres(t))
}

// TestUnknownToken verifies that an unknown token is reported as not found.
func TestUnknownToken(t *testing.T) {
	client := setupOpsHub(t)

	_, err := client.VerifyInvite(t.Context(), "definitely-not-issued")
	assertAPIError(t, err, http.StatusNotFound, opshubsdk.ErrorCodeNotFound)

	_, err = client.AcceptInvite(t.Context(), opshubsdk.AcceptInviteRequest{Token: "definitely-not-issued", Name: "X"})
	assertAPIError(t, err, http.StatusNotFound, opshubsdk.ErrorCodeNotFound)
}

// TestConcurrentAccept fires several redemptions of one token at once;
// exactly one may succeed.
func TestConcurrentAccept(t *testing.T) {
	for name, setup := range map[string]func(*testing.T) *opshubsdk.Client{
		"sqlite":   setupOpsHub,
		"postgres": setupOpsHubWithPostgres,
	} {
		t.Run(name, func(t *testing.T) {
			client := setup(t)

			issued, err := client.IssueInvite(t.Context(), "race@example.com")
			require.NoError(t, err)
			token := tokenFromInviteURL(t, issued.InviteURL)

			const workers = 8
			var (
				wg        sync.WaitGroup
				mu        sync.Mutex
				successes int
			)
			for i := range workers {
				wg.Add(1)
				go func() {
					defer wg.Done()
					_, err := client.AcceptInvite(t.Context(), opshubsdk.AcceptInviteRequest{
						Token: token,
						Name:  "Racer",
					})
					if err == nil {
						mu.Lock()
						successes++
						mu.Unlock()
						return
					}
					if !opshubsdk.IsCode(err, opshubsdk.ErrorCodeInvalidState) &&
						!opshubsdk.IsCode(err, opshubsdk.ErrorCodeConflict) {
						t.Errorf("worker %d: unexpected error: %v", i, err)
					}
				}()
			}
			wg.Wait()

			require.Equal(t, 1, successes)

			users, err := client.ListUsers(t.Context())
			require.NoError(t, err)
			require.Len(t, users, 2) // admin and the single winner
		})
	}
}

// TestReissueSupersedes checks OPSHUB_INVITE_SUPERSEDE retires the earlier
// token when a new invite is issued for the same address.
func TestReissueSupersedes(t *testing.T) {
	extra := relaxedRateLimits()
	extra["OPSHUB_INVITE_SUPERSEDE"] = "true"
	client := opshubsdk.NewClient(startOpsHub(t, baseEnv(extra)))
	ctx := t.Context()

	first, err := client.IssueInvite(ctx, "twice@example.com")
	require.NoError(t, err)
	second, err := client.IssueInvite(ctx, "twice@example.com")
	require.NoError(t, err)

	_, err = client.VerifyInvite(ctx, tokenFromInviteURL(t, first.InviteURL))
	assertAPIError(t, err, http.StatusBadRequest, opshubsdk.ErrorCodeInvalidState)

	_, err = client.VerifyInvite(ctx, tokenFromInviteURL(t, second.InviteURL))
	require.NoError(t, err)
}
