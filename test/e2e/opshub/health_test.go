//go:build e2e

package opshub_test

import (
	"testing"
)

// TestHealthEndpoints verifies liveness and readiness on a freshly seeded
// service.
func TestHealthEndpoints(t *testing.T) {
	client := setupOpsHub(t)

	live, err := client.GetLiveness(t.Context())
	assertHealthy(t, live, err)

	ready, err := client.GetReadiness(t.Context())
	assertHealthy(t, ready, err)

	t.Logf("readyz checks: database=%s default_role=%s", ready.Checks.Database, ready.Checks.DefaultRole)
}
