package service

import (
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/opshub/internal/opshub/audit"
	"github.com/aussiebroadwan/opshub/internal/opshub/domain"
	"github.com/aussiebroadwan/opshub/internal/opshub/store/drivers/sqlite"
	"github.com/stretchr/testify/require"
)

type testClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

type harness struct {
	store   *sqlite.Store
	clock   *testClock
	feed    *audit.Feed
	audit   *AuditService
	invites *InviteService
	users   *UserService
	roles   *RolesService
	seed    *SeedService
}

// newHarness wires every service to a fresh in-memory store. With seed set,
// the default roles and admin account exist.
func newHarness(t *testing.T, seed bool) *harness {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	clock := &testClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	feed := audit.NewFeed()
	auditSvc := &AuditService{Store: st, Feed: feed, Now: clock.Now}

	h := &harness{
		store: st,
		clock: clock,
		feed:  feed,
		audit: auditSvc,
		invites: &InviteService{
			Store:         st,
			Audit:         auditSvc,
			AcceptURLBase: "https://opshub.test/accept-invite",
			TTL:           24 * time.Hour,
			Now:           clock.Now,
		},
		users: &UserService{Store: st, Audit: auditSvc},
		roles: &RolesService{Store: st, Audit: auditSvc},
		seed:  &SeedService{Store: st, Audit: auditSvc, Now: clock.Now},
	}

	if seed {
		_, err := h.seed.Seed(t.Context(), domain.DefaultSeed("admin@opshub.io"))
		require.NoError(t, err)
	}
	return h
}

func tokenFromURL(t *testing.T, inviteURL string) string {
	t.Helper()

	u, err := url.Parse(inviteURL)
	require.NoError(t, err)
	token := u.Query().Get("token")
	require.NotEmpty(t, token)
	return token
}

func (h *harness) roleByCode(t *testing.T, code string) domain.Role {
	t.Helper()

	role, err := h.store.Roles().GetRoleByCode(t.Context(), code)
	require.NoError(t, err)
	return role
}
