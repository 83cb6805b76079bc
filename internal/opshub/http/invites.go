package http

import (
	"net/http"
	"strconv"

	"github.com/aussiebroadwan/opshub/internal/opshub/service"
	"github.com/aussiebroadwan/opshub/pkg/httpx"
)

// InvitesHandler exposes invite administration.
type InvitesHandler struct {
	InviteService *service.InviteService
}

// HandleList godoc
//
//	@Summary		List Invitations
//	@Description	List invites newest first with their status derived at request time.
//	@Tags			Invitations
//	@Produce		json
//	@Param			status	query		string	false	"pending, used, expired or superseded"
//	@Param			limit	query		int		false	"Maximum entries (default 100, max 500)"
//	@Success		200		{array}		opshubsdk.Invite
//	@Failure		400		{object}	opshubsdk.ErrorResponse	"invalid status or limit"
//	@Router			/v1/invites [get].
func (h *InvitesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	limit, ok := parseLimit(w, r)
	if !ok {
		return
	}

	invites, err := h.InviteService.List(r.Context(), r.URL.Query().Get("status"), limit)
	if err != nil {
		writeServiceError(w, r, err, "failed to list invites")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, mapSlice(invites, toInvite))
}

// HandleRevoke godoc
//
//	@Summary		Revoke Invitation
//	@Description	Supersede a pending invite so its token can no longer be redeemed.
//	@Tags			Invitations
//	@Param			X-Actor-ID	header	string	false	"Acting user id, recorded in the audit log"
//	@Param			id			path	string	true	"Invite id"
//	@Success		204
//	@Failure		400	{object}	opshubsdk.ErrorResponse	"invite used, superseded or expired"
//	@Failure		404	{object}	opshubsdk.ErrorResponse	"invite not found"
//	@Router			/v1/invites/{id}/revoke [post].
func (h *InvitesHandler) HandleRevoke(w http.ResponseWriter, r *http.Request) {
	if err := h.InviteService.Revoke(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err, "failed to revoke invite")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// parseLimit reads the optional limit query parameter. Zero means the
// service default.
func parseLimit(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0, true
	}

	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		writeBadRequest(w, "limit must be a non-negative integer")
		return 0, false
	}
	return n, true
}
