package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/opshub/internal/opshub/service"
	"github.com/aussiebroadwan/opshub/internal/opshub/store"
	"github.com/aussiebroadwan/opshub/pkg/httpx"
	"github.com/aussiebroadwan/opshub/pkg/slogx"

	_ "github.com/aussiebroadwan/opshub/api/opshub" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store         store.Store
	InviteService *service.InviteService
	UserService   *service.UserService
	RolesService  *service.RolesService
	AuditService  *service.AuditService
	SeedService   *service.SeedService
}

func NewRouter(buildVersion string, st store.Store, logger *slog.Logger) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		ActorMiddleware(),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerInviteLifecycle()
	r.registerInvites()
	r.registerUsers()
	r.registerRoles()
	r.registerAuditLogs()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			OpsHub User Administration API
//	@version		0.1.0
//	@description	Invite-based onboarding and administration of users, roles and the audit log.
//	@description
//	@description	Invites carry a single-use opaque token. Only its SHA-256 fingerprint is stored.
//
//	@contact.name	AussieBroadWAN Team
//	@contact.url	https://github.com/aussiebroadwan/opshub
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host			localhost:8080
//	@BasePath		/
//
//	@schemes		http https
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerInviteLifecycle() {
	issue := &InviteIssueHandler{InviteService: r.InviteService}
	verify := &InviteVerifyHandler{InviteService: r.InviteService}
	accept := &InviteAcceptHandler{InviteService: r.InviteService}

	// POST /users/invite - moderate rate limit (admin write)
	r.Mux.Handle("POST /v1/users/invite",
		httpx.Chain(issue,
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	// Public token endpoints - strict limit per route so probing verify
	// does not lock a browser out of accept.
	r.Mux.Handle("GET /v1/users/invites/verify",
		httpx.Chain(verify,
			httpx.RateLimitByIPAndRoute(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /v1/users/accept-invite",
		httpx.Chain(accept,
			httpx.RateLimitByIPAndRoute(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerInvites() {
	h := &InvitesHandler{InviteService: r.InviteService}

	r.Mux.Handle("GET /v1/invites",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("POST /v1/invites/{id}/revoke",
		httpx.Chain(http.HandlerFunc(h.HandleRevoke),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerUsers() {
	h := &UsersHandler{UserService: r.UserService}

	r.Mux.Handle("GET /v1/users",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("PATCH /v1/users/{id}/status",
		httpx.Chain(http.HandlerFunc(h.HandleUpdateStatus),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("PUT /v1/users/{id}/roles",
		httpx.Chain(http.HandlerFunc(h.HandleSetRoles),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerRoles() {
	h := &RolesHandler{RolesService: r.RolesService}

	r.Mux.Handle("GET /v1/roles",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	// Role writes share one moderate bucket per client.
	writes := httpx.RateLimitByIP(httpx.ModerateLimit)
	r.Mux.Handle("POST /v1/roles", httpx.Chain(http.HandlerFunc(h.HandleCreate), writes))
	r.Mux.Handle("PATCH /v1/roles/{id}", httpx.Chain(http.HandlerFunc(h.HandleUpdate), writes))
	r.Mux.Handle("DELETE /v1/roles/{id}", httpx.Chain(http.HandlerFunc(h.HandleDelete), writes))
}

func (r *Router) registerAuditLogs() {
	r.Mux.Handle("GET /v1/audit-logs",
		httpx.Chain(&AuditLogsHandler{AuditService: r.AuditService},
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.SeedService),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
