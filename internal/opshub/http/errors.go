package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/opshub/internal/opshub/service"
	"github.com/aussiebroadwan/opshub/pkg/httpx"
	"github.com/aussiebroadwan/opshub/pkg/opshubsdk"
	"github.com/aussiebroadwan/opshub/pkg/slogx"
)

// statusFor maps a service error kind to its HTTP status. Unknown errors
// are server errors.
func statusFor(kind error) int {
	switch {
	case errors.Is(kind, service.ErrValidation), errors.Is(kind, service.ErrInvalidState):
		return http.StatusBadRequest
	case errors.Is(kind, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(kind, service.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeServiceError writes err as an ErrorResponse. Errors without a kind
// are logged with msg and hidden behind a generic description.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	kind := service.Kind(err)
	if kind == nil {
		slogx.FromContext(r.Context()).Error(msg, slog.Any("error", err))
		httpx.WriteError(w, http.StatusInternalServerError,
			opshubsdk.ErrorCodeServerError, "internal server error")
		return
	}

	httpx.WriteError(w, statusFor(kind), kind.Error(), service.Describe(err))
}

// writeBadRequest reports a malformed request body or query.
func writeBadRequest(w http.ResponseWriter, description string) {
	httpx.WriteError(w, http.StatusBadRequest, opshubsdk.ErrorCodeValidation, description)
}
