package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/aussiebroadwan/opshub/internal/opshub/domain"
	"github.com/aussiebroadwan/opshub/internal/opshub/store"
	"github.com/aussiebroadwan/opshub/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func createRole(t *testing.T, s store.Store, code string) domain.Role {
	t.Helper()

	role := domain.Role{ID: idx.New().String(), Code: code, Name: code, Type: domain.RoleTypeSystem}
	require.NoError(t, s.Roles().CreateRole(context.Background(), role))
	return role
}

func createUser(t *testing.T, s store.Store, email string) domain.User {
	t.Helper()

	u := domain.User{ID: idx.New().String(), Email: email, Name: "Test", Status: domain.UserStatusActive}
	require.NoError(t, s.Users().CreateUser(context.Background(), u))
	return u
}

func TestApplyMigrationsIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.ApplyMigrations())
	require.NoError(t, s.Ping(context.Background()))
}

func TestUsersUniqueEmail(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	createUser(t, s, "a@example.com")

	err := s.Users().CreateUser(ctx, domain.User{
		ID: idx.New().String(), Email: "a@example.com", Name: "Dup", Status: domain.UserStatusActive,
	})
	require.ErrorIs(t, err, store.ErrAlreadyExists)

	_, err = s.Users().GetUserByEmail(ctx, "missing@example.com")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestUserRolesRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	viewer := createRole(t, s, "VIEWER")
	admin := createRole(t, s, "ADMIN")
	u := createUser(t, s, "b@example.com")

	require.NoError(t, s.UserRoles().AssignRole(ctx, u.ID, viewer.ID))
	require.ErrorIs(t, s.UserRoles().AssignRole(ctx, u.ID, viewer.ID), store.ErrAlreadyExists)

	got, err := s.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, []string{viewer.ID}, got.RoleIDs)

	require.NoError(t, s.UserRoles().ReplaceRoles(ctx, u.ID, []string{admin.ID, viewer.ID, admin.ID}))
	ids, err := s.UserRoles().ListRoleIDs(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, []string{admin.ID, viewer.ID}, ids)

	n, err := s.UserRoles().CountUsersWithRole(ctx, admin.ID)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	users, err := s.Users().ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	require.Equal(t, []string{admin.ID, viewer.ID}, users[0].RoleIDs)
}

func TestRolesListAndDelete(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	viewer := createRole(t, s, "VIEWER")
	admin := createRole(t, s, "ADMIN")
	u := createUser(t, s, "c@example.com")
	require.NoError(t, s.UserRoles().AssignRole(ctx, u.ID, viewer.ID))

	err := s.Roles().CreateRole(ctx, domain.Role{ID: idx.New().String(), Code: "VIEWER", Name: "x", Type: domain.RoleTypeCustom})
	require.ErrorIs(t, err, store.ErrAlreadyExists)

	roles, err := s.Roles().ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, roles, 2)
	require.Equal(t, "ADMIN", roles[0].Code)
	require.Equal(t, 0, roles[0].UserCount)
	require.Equal(t, "VIEWER", roles[1].Code)
	require.Equal(t, 1, roles[1].UserCount)

	require.ErrorIs(t, s.Roles().DeleteRole(ctx, viewer.ID), store.ErrInUse)
	require.NoError(t, s.Roles().DeleteRole(ctx, admin.ID))
	require.ErrorIs(t, s.Roles().DeleteRole(ctx, admin.ID), store.ErrNotFound)

	desc := "read only"
	viewer.Description = &desc
	viewer.Name = "Viewer"
	require.NoError(t, s.Roles().UpdateRole(ctx, viewer))

	got, err := s.Roles().GetRoleByCode(ctx, "VIEWER")
	require.NoError(t, err)
	require.Equal(t, "Viewer", got.Name)
	require.Equal(t, &desc, got.Description)
}

func TestInviteConditionalUpdates(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	now := time.Now().UTC()
	inv := domain.Invite{
		ID:        idx.New().String(),
		TokenHash: "hash-1",
		Email:     "d@example.com",
		IssuedAt:  now,
		ExpiresAt: now.Add(time.Hour),
	}
	require.NoError(t, s.Invites().CreateInvite(ctx, inv))

	got, err := s.Invites().GetInviteByTokenHash(ctx, "hash-1")
	require.NoError(t, err)
	require.Equal(t, inv.Email, got.Email)
	require.WithinDuration(t, inv.ExpiresAt, got.ExpiresAt, time.Microsecond)
	require.Nil(t, got.UsedAt)

	u := createUser(t, s, "d@example.com")
	require.NoError(t, s.Invites().MarkInviteUsed(ctx, inv.ID, u.ID, now))
	require.ErrorIs(t, s.Invites().MarkInviteUsed(ctx, inv.ID, u.ID, now), store.ErrStale)

	got, err = s.Invites().GetInviteByID(ctx, inv.ID)
	require.NoError(t, err)
	require.NotNil(t, got.UsedAt)
	require.Equal(t, u.ID, got.UsedBy)
	require.Equal(t, domain.InviteStatusUsed, got.StatusAt(now))

	require.ErrorIs(t, s.Invites().SupersedeInvite(ctx, inv.ID, now), store.ErrStale)

	_, err = s.Invites().GetInviteByTokenHash(ctx, "nope")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestListInvitesByStatus(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	now := time.Now().UTC()

	mk := func(hash string, expires time.Time) domain.Invite {
		inv := domain.Invite{
			ID: idx.New().String(), TokenHash: hash, Email: hash + "@example.com",
			IssuedAt: now.Add(-2 * time.Hour), ExpiresAt: expires,
		}
		require.NoError(t, s.Invites().CreateInvite(ctx, inv))
		return inv
	}

	pending := mk("pending", now.Add(time.Hour))
	expired := mk("expired", now.Add(-time.Hour))
	superseded := mk("superseded", now.Add(time.Hour))

	n, err := s.Invites().SupersedeLiveInvites(ctx, superseded.Email, now)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	list := func(st domain.InviteStatus) []string {
		invites, err := s.Invites().ListInvites(ctx, store.InviteFilter{Status: st, Now: now})
		require.NoError(t, err)
		ids := make([]string, len(invites))
		for i, inv := range invites {
			ids[i] = inv.ID
		}
		return ids
	}

	require.Equal(t, []string{pending.ID}, list(domain.InviteStatusPending))
	require.Equal(t, []string{expired.ID}, list(domain.InviteStatusExpired))
	require.Equal(t, []string{superseded.ID}, list(domain.InviteStatusSuperseded))
	require.Empty(t, list(domain.InviteStatusUsed))
	require.Len(t, list(""), 3)
}

func TestAuditLogsFilterAndPrune(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	now := time.Now().UTC()

	entries := []domain.AuditLog{
		{Action: domain.AuditUserInvited, TargetType: domain.AuditTargetInvite, TargetLabel: "Alice@Example.com", CreatedAt: now.Add(-40 * 24 * time.Hour)},
		{Action: domain.AuditRoleCreated, TargetType: domain.AuditTargetRole, TargetLabel: "OPS_100%", CreatedAt: now.Add(-time.Hour), Meta: map[string]any{"code": "OPS"}},
		{Action: domain.AuditUserInvited, TargetType: domain.AuditTargetInvite, TargetLabel: "bob@example.com", CreatedAt: now},
	}
	for _, e := range entries {
		e.ID = idx.NewAt(e.CreatedAt).String()
		e.TargetID = e.ID
		require.NoError(t, s.AuditLogs().CreateAuditLog(ctx, e))
	}

	all, err := s.AuditLogs().ListAuditLogs(ctx, domain.AuditFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, "bob@example.com", all[0].TargetLabel)
	require.Equal(t, map[string]any{"code": "OPS"}, all[1].Meta)

	got, err := s.AuditLogs().ListAuditLogs(ctx, domain.AuditFilter{Query: "ALICE"})
	require.NoError(t, err)
	require.Len(t, got, 1)

	got, err = s.AuditLogs().ListAuditLogs(ctx, domain.AuditFilter{Query: "100%"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, domain.AuditRoleCreated, got[0].Action)

	got, err = s.AuditLogs().ListAuditLogs(ctx, domain.AuditFilter{Action: domain.AuditUserInvited, Since: now.Add(-7 * 24 * time.Hour)})
	require.NoError(t, err)
	require.Len(t, got, 1)

	pruned, err := s.AuditLogs().DeleteAuditLogsBefore(ctx, now.Add(-30*24*time.Hour))
	require.NoError(t, err)
	require.EqualValues(t, 1, pruned)
}

func TestWithTxRollsBackAndRejectsNesting(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	err := s.WithTx(ctx, func(tx store.Tx) error {
		createUser(t, tx, "e@example.com")
		require.Error(t, tx.WithTx(ctx, func(store.Tx) error { return nil }))
		return store.ErrStale
	})
	require.ErrorIs(t, err, store.ErrStale)

	_, err = s.Users().GetUserByEmail(ctx, "e@example.com")
	require.ErrorIs(t, err, store.ErrNotFound)
}
