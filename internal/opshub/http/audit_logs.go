package http

import (
	"net/http"

	"github.com/aussiebroadwan/opshub/internal/opshub/service"
	"github.com/aussiebroadwan/opshub/pkg/httpx"
)

type AuditLogsHandler struct {
	AuditService *service.AuditService
}

// ServeHTTP godoc
//
//	@Summary		List Audit Logs
//	@Description	List audit entries newest first.
//	@Tags			Audit
//	@Produce		json
//	@Param			action		query		string	false	"Exact action, e.g. USER_INVITED"
//	@Param			target_type	query		string	false	"user, role, invite or system"
//	@Param			q			query		string	false	"Case-insensitive match on target_label"
//	@Param			since		query		string	false	"7d, 30d or an RFC3339 time"
//	@Param			limit		query		int		false	"Maximum entries (default 100, max 500)"
//	@Success		200			{array}		opshubsdk.AuditLog
//	@Failure		400			{object}	opshubsdk.ErrorResponse	"invalid filter"
//	@Router			/v1/audit-logs [get].
func (h *AuditLogsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	limit, ok := parseLimit(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	logs, err := h.AuditService.List(r.Context(), service.AuditQuery{
		Action:     q.Get("action"),
		TargetType: q.Get("target_type"),
		Query:      q.Get("q"),
		Since:      q.Get("since"),
		Limit:      limit,
	})
	if err != nil {
		writeServiceError(w, r, err, "failed to list audit logs")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, mapSlice(logs, toAuditLog))
}
