package http

import (
	"context"
	"net/http"
	"time"

	"github.com/aussiebroadwan/opshub/pkg/httpx"
	"github.com/aussiebroadwan/opshub/pkg/opshubsdk"
)

// Pinger reports database reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// DefaultRoleChecker reports whether invite redemption can grant the
// default role.
type DefaultRoleChecker interface {
	CheckDefaultRole(ctx context.Context) error
}

// ReadyzHandler godoc
//
//	@Summary		Readiness Check Endpoint
//	@Description	Readiness probe: the database answers and the default role exists.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	opshubsdk.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	opshubsdk.HealthResponse	"service not ready"
//	@Router			/readyz [get].
func ReadyzHandler(startTime time.Time, version string, db Pinger, roles DefaultRoleChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &opshubsdk.HealthChecks{
			Database:    "ok",
			DefaultRole: "ok",
		}
		overallStatus := "ok"
		statusCode := http.StatusOK

		if err := db.Ping(r.Context()); err != nil {
			checks.Database = "error: " + err.Error()
			checks.DefaultRole = "skipped"
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		} else if err := roles.CheckDefaultRole(r.Context()); err != nil {
			checks.DefaultRole = "error: " + err.Error()
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		httpx.WriteJSON(w, statusCode, opshubsdk.HealthResponse{
			Status:  overallStatus,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		})
	}
}
