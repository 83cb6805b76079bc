package service

import (
	"context"
	"testing"

	"github.com/aussiebroadwan/opshub/internal/opshub/domain"
	"github.com/stretchr/testify/require"
)

func TestUserStatusAndRoles(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, true)

	issued, err := h.invites.Issue(ctx, "member@example.com")
	require.NoError(t, err)
	member, err := h.invites.Accept(ctx, tokenFromURL(t, issued.InviteURL), "Member")
	require.NoError(t, err)

	admin := h.roleByCode(t, domain.AdminRoleCode)
	viewer := h.roleByCode(t, domain.DefaultRoleCode)

	t.Run("status", func(t *testing.T) {
		u, err := h.users.UpdateStatus(ctx, member.ID, "inactive")
		require.NoError(t, err)
		require.Equal(t, domain.UserStatusInactive, u.Status)

		_, err = h.users.UpdateStatus(ctx, member.ID, "BANNED")
		require.ErrorIs(t, err, ErrValidation)

		_, err = h.users.UpdateStatus(ctx, "missing", "ACTIVE")
		require.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("roles", func(t *testing.T) {
		u, err := h.users.SetRoles(ctx, member.ID, []string{admin.ID, viewer.ID, admin.ID})
		require.NoError(t, err)
		require.Equal(t, []string{admin.ID, viewer.ID}, u.RoleIDs)

		u, err = h.users.SetRoles(ctx, member.ID, nil)
		require.NoError(t, err)
		require.Empty(t, u.RoleIDs)

		_, err = h.users.SetRoles(ctx, member.ID, []string{"missing"})
		require.ErrorIs(t, err, ErrNotFound)

		_, err = h.users.SetRoles(ctx, member.ID, []string{" "})
		require.ErrorIs(t, err, ErrValidation)
	})

	users, err := h.users.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	require.Equal(t, member.ID, users[0].ID, "most recently updated first")

	logs, err := h.audit.List(ctx, AuditQuery{Query: "member@"})
	require.NoError(t, err)

	var actions []domain.AuditAction
	for _, l := range logs {
		actions = append(actions, l.Action)
	}
	require.Contains(t, actions, domain.AuditUserStatusUpdated)
	require.Contains(t, actions, domain.AuditUserRolesUpdated)
	require.Contains(t, actions, domain.AuditUserInviteAccepted)
}
