package service

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/aussiebroadwan/opshub/internal/opshub/domain"
	"github.com/aussiebroadwan/opshub/pkg/slogx"
	"github.com/stretchr/testify/require"
)

func TestSeedIsIdempotent(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, false)

	var missing *DefaultRoleMissingError
	require.ErrorAs(t, h.seed.CheckDefaultRole(ctx), &missing)

	res, err := h.seed.Seed(ctx, domain.DefaultSeed("Admin@OpsHub.io"))
	require.NoError(t, err)
	require.Equal(t, 2, res.RolesCreated)
	require.True(t, res.AdminCreated)
	require.NoError(t, h.seed.CheckDefaultRole(ctx))

	res, err = h.seed.Seed(ctx, domain.DefaultSeed("admin@opshub.io"))
	require.NoError(t, err)
	require.Zero(t, res.RolesCreated)
	require.False(t, res.AdminCreated)

	admin, err := h.store.Users().GetUserByEmail(ctx, "admin@opshub.io")
	require.NoError(t, err)
	require.Equal(t, []string{h.roleByCode(t, domain.AdminRoleCode).ID}, admin.RoleIDs)

	logs, err := h.audit.List(ctx, AuditQuery{Action: string(domain.AuditSeedInit)})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	require.Equal(t, admin.ID, logs[0].ActorID)
}

func TestHousekeepingPrunesAuditLogs(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, true) // SEED_INIT at the start time

	h.clock.Advance(40 * 24 * time.Hour)
	_, err := h.invites.Issue(ctx, "recent@example.com")
	require.NoError(t, err)

	hk := NewHousekeepingService(h.store, slogx.Discard(), time.Hour, 30*24*time.Hour)
	hk.Now = h.clock.Now
	require.EqualValues(t, 1, hk.Cleanup(ctx))

	logs, err := h.audit.List(ctx, AuditQuery{})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	require.Equal(t, domain.AuditUserInvited, logs[0].Action)

	disabled := NewHousekeepingService(h.store, slog.Default(), 0, 0)
	require.Equal(t, time.Hour, disabled.Interval)
	require.Zero(t, disabled.Cleanup(ctx))
}

func TestHousekeepingStartStop(t *testing.T) {
	h := newHarness(t, false)

	hk := NewHousekeepingService(h.store, slogx.Discard(), time.Minute, time.Hour)
	hk.Start()
	hk.Stop()
}
