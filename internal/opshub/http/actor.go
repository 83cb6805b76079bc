package http

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/opshub/internal/opshub/service"
	"github.com/aussiebroadwan/opshub/pkg/httpx"
	"github.com/aussiebroadwan/opshub/pkg/idx"
	"github.com/aussiebroadwan/opshub/pkg/opshubsdk"
	"github.com/aussiebroadwan/opshub/pkg/slogx"
)

// ActorMiddleware attributes the request to the user named by the optional
// X-Actor-ID header. The value must be a well formed user id; it is not
// authenticated.
func ActorMiddleware() httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get(opshubsdk.ActorHeader))
			if raw == "" {
				next.ServeHTTP(w, r)
				return
			}

			id, err := idx.Parse(raw)
			if err != nil {
				writeBadRequest(w, "invalid "+opshubsdk.ActorHeader+" header")
				return
			}

			ctx := service.WithActor(r.Context(), id.String())
			log := slogx.FromContext(ctx).With(slog.String("actor_id", id.String()))
			ctx = slogx.WithContext(ctx, log)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
